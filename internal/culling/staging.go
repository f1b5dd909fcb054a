package culling

import "fmt"

func regionOffsetFromLocal(x, y, z uint8) [3]int32 {
	return [3]int32{int32(x >> 3), int32(y >> 2), int32(z >> 3)}
}

// StagingRegionRenderLists is the per-frame working table of region render
// lists, indexed by LocalRegionIndex, plus the order in which regions were
// first touched by the BFS. Preserving first-touch order is what makes
// region appearance in the final output deterministic w.r.t. the BFS
// frontier expansion from the camera.
type StagingRegionRenderLists struct {
	orderedRegionIndices []LocalRegionIndex
	regionRenderLists    []RegionRenderList
}

func newStagingRegionRenderLists() *StagingRegionRenderLists {
	lists := make([]RegionRenderList, RegionsInGraph)
	for i := range lists {
		lists[i] = newRegionRenderList()
	}
	return &StagingRegionRenderLists{
		orderedRegionIndices: make([]LocalRegionIndex, 0, RegionsInGraph),
		regionRenderLists:    lists,
	}
}

// TouchRegion computes the region index and global region coordinates for
// local_section_coord; if that region's slot is not yet initialised, it
// initialises it and records it in first-touch order. Callers must touch
// the region for every visited section, even ones later found invisible,
// or region ordering can become inconsistent with the BFS frontier.
func (s *StagingRegionRenderLists) TouchRegion(ctx CoordContext, x, y, z uint8) *RegionRenderList {
	localRegionIndex := LocalRegionIndexFromLocalSection(x, y, z)
	list := &s.regionRenderLists[localRegionIndex]

	origin := ctx.OriginRegionCoords()
	offset := regionOffsetFromLocal(x, y, z)
	globalRegionCoords := [3]int32{origin[0] + offset[0], origin[1] + offset[1], origin[2] + offset[2]}

	if !list.IsInitialized() {
		list.Initialize(globalRegionCoords)
		s.orderedRegionIndices = append(s.orderedRegionIndices, localRegionIndex)
	} else if debugAssertions && list.RegionCoords != globalRegionCoords {
		panic(fmt.Sprintf("culling: region %v touched with inconsistent global coords (had %v, got %v)",
			localRegionIndex, list.RegionCoords, globalRegionCoords))
	}

	return list
}

// CompileRenderLists appends every non-empty region, in first-touch order,
// to out. Regions that were touched but never had a visible section added
// to them are skipped.
func (s *StagingRegionRenderLists) CompileRenderLists(out *[]RegionRenderList) {
	for _, localRegionIndex := range s.orderedRegionIndices {
		list := &s.regionRenderLists[localRegionIndex]
		if !list.IsEmpty() {
			*out = append(*out, *list)
		}
	}
}

// Clear wipes every touched region's state and the first-touch order.
func (s *StagingRegionRenderLists) Clear() {
	for _, localRegionIndex := range s.orderedRegionIndices {
		s.regionRenderLists[localRegionIndex].Clear()
	}
	s.orderedRegionIndices = s.orderedRegionIndices[:0]
}
