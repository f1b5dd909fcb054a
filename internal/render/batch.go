package render

import (
	"mini-mc/internal/culling"

	"github.com/go-gl/mathgl/mgl32"
)

// SectionDraw is one section's draw command: the section's world-space
// coordinates and its block-space bounding box, which is what a GPU
// backend binds its per-draw uniforms from.
type SectionDraw struct {
	WorldSection [3]int32
	AABBMin      mgl32.Vec3
	AABBMax      mgl32.Vec3
}

// Batch groups the draw commands of one region. Batches are submitted in
// slice order, which preserves the first-touch region order the culler
// produced.
type Batch struct {
	RegionCoords  [3]int32
	Geometry      []SectionDraw
	Sprites       []SectionDraw
	BlockEntities []SectionDraw
}

func appendDraws(dst []SectionDraw, list *culling.RegionRenderList, indices []culling.RegionSectionIndex) []SectionDraw {
	for _, idx := range indices {
		coord := list.SectionWorldCoord(idx)
		min := mgl32.Vec3{
			float32(coord[0]) * culling.SectionBlockSize,
			float32(coord[1]) * culling.SectionBlockSize,
			float32(coord[2]) * culling.SectionBlockSize,
		}
		dst = append(dst, SectionDraw{
			WorldSection: coord,
			AABBMin:      min,
			AABBMax:      min.Add(mgl32.Vec3{culling.SectionBlockSize, culling.SectionBlockSize, culling.SectionBlockSize}),
		})
	}
	return dst
}

// BuildBatches flattens region render lists into per-region draw batches,
// one batch per region, in the order the culler emitted them. dst is
// reused when non-nil.
func BuildBatches(lists []culling.RegionRenderList, dst []Batch) []Batch {
	dst = dst[:0]
	for i := range lists {
		list := &lists[i]
		b := Batch{RegionCoords: list.RegionCoords}
		b.Geometry = appendDraws(b.Geometry, list, list.GeometryIndices)
		b.Sprites = appendDraws(b.Sprites, list, list.SpriteIndices)
		b.BlockEntities = appendDraws(b.BlockEntities, list, list.BlockEntityIndices)
		dst = append(dst, b)
	}
	return dst
}

// SectionCount returns the total number of geometry draws across batches.
func SectionCount(batches []Batch) int {
	n := 0
	for i := range batches {
		n += len(batches[i].Geometry)
	}
	return n
}
