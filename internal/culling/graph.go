package culling

import (
	"fmt"

	"mini-mc/internal/profiling"
)

// Graph is the persistent per-section visibility registry and the
// entry point for the per-frame cull: SetSection/RemoveSection maintain the
// section topology as chunks load and unload, and CullAndSort runs the
// frustum/fog pass followed by the BFS occlusion pass to produce the
// region-grouped render lists in first-touch order.
type Graph struct {
	originWorldSection [3]int32

	sectionVisibility []VisibilityData
	sectionFlags      []SectionFlagSet

	frustumFogVisible LinearBitOctree

	incomingDirections []GraphDirectionSet
	queues             [2]*bfsQueue

	staging *StagingRegionRenderLists
	results []RegionRenderList
}

// NewGraph allocates a graph whose local 256^3 window is anchored at
// originWorldSection (the world-space section coordinates that map to
// local (0, 0, 0)). viewDistance and worldHeight (both in sections) size
// the BFS frontier queues; see ComputeBFSQueueCapacity.
func NewGraph(originWorldSection [3]int32, viewDistance, worldHeight int) *Graph {
	capacity := ComputeBFSQueueCapacity(viewDistance, worldHeight)
	return &Graph{
		originWorldSection:  originWorldSection,
		sectionVisibility:   make([]VisibilityData, SectionsInGraph),
		sectionFlags:        make([]SectionFlagSet, SectionsInGraph),
		incomingDirections:  make([]GraphDirectionSet, SectionsInGraph),
		queues:              [2]*bfsQueue{newBFSQueue(capacity), newBFSQueue(capacity)},
		staging:             newStagingRegionRenderLists(),
		results:             make([]RegionRenderList, 0, RegionsInGraph),
	}
}

func (g *Graph) localCoordOf(worldCoord [3]int32) (x, y, z uint8) {
	lx := worldCoord[0] - g.originWorldSection[0]
	ly := worldCoord[1] - g.originWorldSection[1]
	lz := worldCoord[2] - g.originWorldSection[2]
	if lx < 0 || lx >= GridSize || ly < 0 || ly >= GridSize || lz < 0 || lz >= GridSize {
		panic(fmt.Sprintf("culling: world section %v is outside the graph's local window (origin %v)", worldCoord, g.originWorldSection))
	}
	return uint8(lx), uint8(ly), uint8(lz)
}

// SetSection registers or updates a section's visibility data and render
// flags. worldCoord must fall inside the graph's local window.
func (g *Graph) SetSection(worldCoord [3]int32, visibility VisibilityData, flags SectionFlagSet) {
	x, y, z := g.localCoordOf(worldCoord)
	index := PackNodeIndex(x, y, z)
	g.sectionVisibility[index] = visibility
	g.sectionFlags[index] = flags
}

// RemoveSection unregisters a section, resetting its visibility data to the
// zero value (fully opaque to BFS) and clearing its render flags
// so it no longer contributes to any region bucket.
func (g *Graph) RemoveSection(worldCoord [3]int32) {
	x, y, z := g.localCoordOf(worldCoord)
	index := PackNodeIndex(x, y, z)
	g.sectionVisibility[index] = VisibilityData{}
	g.sectionFlags[index] = SectionFlagNone
}

// CullAndSort runs the two-pass cull (frustum/fog, then BFS occlusion) and
// returns the region render lists in BFS first-touch order, starting with
// the camera's own region and moving outward from it. The
// returned slice is reused across calls; callers must finish with it before
// calling CullAndSort again. Before returning, the graph's scratch state
// (staging buckets, frustum/fog bits, incoming-direction marks) is cleared
// so the Graph starts its next call clean without requiring callers to
// clear anything themselves.
func (g *Graph) CullAndSort(ctx CoordContext, useOcclusionCulling bool) []RegionRenderList {
	defer profiling.Track("culling.CullAndSort")()

	func() {
		defer profiling.Track("culling.FrustumFogPass")()
		g.frustumFogPass(ctx)
	}()

	func() {
		defer profiling.Track("culling.OcclusionPass")()
		g.bfsAndOcclusionCull(ctx, useOcclusionCulling)
	}()

	g.results = g.results[:0]
	g.staging.CompileRenderLists(&g.results)

	g.staging.Clear()
	g.frustumFogVisible.Clear()
	for i := range g.incomingDirections {
		g.incomingDirections[i] = DirectionSetNone
	}

	return g.results
}

// frustumFogPass walks every level-3 node the context's sweep window
// covers and hierarchically descends into the ones that are only partially
// inside the combined frustum/fog volume.
func (g *Graph) frustumFogPass(ctx CoordContext) {
	start := ctx.IterStartIndex()
	sx, sy, sz := start.Unpack()
	counts := ctx.Level3NodeIterCounts()

	const step = 1 << MaxLevel
	for ix := 0; ix < int(counts[0]); ix++ {
		x := sx + uint8(ix*step)
		for iy := 0; iy < int(counts[1]); iy++ {
			y := sy + uint8(iy*step)
			for iz := 0; iz < int(counts[2]); iz++ {
				z := sz + uint8(iz*step)
				g.checkNode(ctx, PackNodeIndex(x, y, z), MaxLevel)
			}
		}
	}
}

// checkNode classifies one hierarchical node against the frustum/fog
// volume, marking the bit octree when the node (or its descendants) is at
// least partially visible, and recursing into children on a partial
// result above level 0.
func (g *Graph) checkNode(ctx CoordContext, index NodeIndex, level int) {
	switch ctx.TestNode(index, level) {
	case Outside:
		return
	case Inside:
		g.frustumFogVisible.Set(index, level, true)
	case Partial:
		if level == 0 {
			g.frustumFogVisible.Set(index, 0, true)
			return
		}
		for _, child := range index.IterLowerNodes(level) {
			g.checkNode(ctx, child, level-1)
		}
	}
}

// bfsAndOcclusionCull breadth-first-searches outward from the camera
// section, following each section's visibility data (or, with occlusion
// culling disabled, every valid direction regardless of visibility data) to
// decide which neighbors to enqueue. A section is pushed onto the queue at
// most once, the instant its first incoming direction is recorded; whether
// it is actually frustum/fog-visible is only checked once it is popped.
// A section's region is touched unconditionally before that
// visibility check, so fog/frustum-culled sections still anchor stable
// region ordering even though they contribute nothing to any bucket and
// never propagate the frontier past themselves.
func (g *Graph) bfsAndOcclusionCull(ctx CoordContext, useOcclusionCulling bool) {
	directionsModifier := DirectionSetNone
	if !useOcclusionCulling {
		directionsModifier = DirectionSetAll
	}

	current, next := g.queues[0], g.queues[1]
	current.Reset()
	next.Reset()

	cameraIndex := ctx.CameraSectionIndex()
	g.incomingDirections[cameraIndex] = DirectionSetAll
	current.Push(cameraIndex)

	for current.Len() > 0 {
		for {
			index, ok := current.Pop()
			if !ok {
				break
			}

			x, y, z := index.Unpack()
			list := g.staging.TouchRegion(ctx, x, y, z)

			if !g.frustumFogVisible.Get(index, 0) {
				continue
			}
			list.AddSection(IndexArrayUnchecked(g.sectionFlags, index), x, y, z)

			incoming := IndexArrayUnchecked(g.incomingDirections, index)
			outgoing := IndexArrayUnchecked(g.sectionVisibility, index).GetOutgoingDirections(incoming)
			outgoing = outgoing.AddAll(directionsModifier)
			outgoing = outgoing.Intersect(ctx.GetValidDirections(x, y, z))

			neighbors := index.GetAllNeighbors()
			for _, d := range outgoing.Directions() {
				neighbor := neighbors.Get(d)

				neighborIncoming := IndexArrayUnchecked(g.incomingDirections, neighbor)
				IndexArrayUnsafeSet(g.incomingDirections, neighbor, neighborIncoming.Add(d.Opposite()))
				next.PushConditionally(neighbor, neighborIncoming.IsEmpty())
			}
		}
		current, next = next, current
		next.Reset()
	}
}
