package world

import (
	"math"

	"mini-mc/internal/config"
	"mini-mc/internal/culling"
	"mini-mc/internal/profiling"

	"github.com/go-gl/mathgl/mgl32"
)

func clampInt(v, lo, hi int) int {
	if v < lo {
		return lo
	}
	if v > hi {
		return hi
	}
	return v
}

// CullAndSort rebuilds the occlusion culler's section registry from every
// loaded column within viewDistanceChunks of camera and runs the frustum/
// fog + BFS occlusion cull, returning region render lists in first-touch
// order, outward from the camera's region. camera is in block-space; clip is the
// combined projection*view matrix for the current frame.
func (w *World) CullAndSort(camera mgl32.Vec3, clip mgl32.Mat4, viewDistanceChunks int) []culling.RegionRenderList {
	defer profiling.Track("world.CullAndSort")()

	cameraChunkX := floorDiv(int(math.Floor(float64(camera.X()))), ChunkSizeX)
	cameraChunkZ := floorDiv(int(math.Floor(float64(camera.Z()))), ChunkSizeZ)
	cameraSectionY := clampInt(int(math.Floor(float64(camera.Y())))/SectionHeight, 0, NumSections-1)

	cameraWorldSection := [3]int32{int32(cameraChunkX), int32(cameraSectionY), int32(cameraChunkZ)}
	origin := culling.GraphOrigin(cameraWorldSection)

	if w.cullGraph == nil || origin != w.cullGraphOrigin {
		w.cullGraph = culling.NewGraph(origin, viewDistanceChunks, NumSections)
		w.cullGraphOrigin = origin
	}

	func() {
		defer profiling.Track("world.CullAndSort.registerSections")()
		w.cullScratch = w.store.AppendColumnsInRadius(cameraChunkX, cameraChunkZ, viewDistanceChunks, w.cullScratch[:0])
		for _, c := range w.cullScratch {
			for secIdx := 0; secIdx < NumSections; secIdx++ {
				worldCoord := [3]int32{int32(c.X), int32(secIdx), int32(c.Z)}
				if !c.SectionHasBlocks(secIdx) {
					w.cullGraph.RemoveSection(worldCoord)
					continue
				}
				w.cullGraph.SetSection(worldCoord, BuildSectionVisibility(c, secIdx), culling.HasBlockGeometry)
			}
		}
	}()

	fogRadius := config.GetFogRadius()
	ctx := culling.NewFrustumFogContext(cameraWorldSection, camera, clip, fogRadius, viewDistanceChunks, NumSections)
	return w.cullGraph.CullAndSort(ctx, config.GetOcclusionCullingEnabled())
}
