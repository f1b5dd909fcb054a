package render

import (
	"testing"

	"mini-mc/internal/culling"

	"github.com/go-gl/mathgl/mgl32"
)

func regionList(coords [3]int32, sections ...[3]uint8) culling.RegionRenderList {
	list := culling.RegionRenderList{RegionCoords: coords}
	for _, s := range sections {
		list.GeometryIndices = append(list.GeometryIndices, culling.RegionSectionIndexFromLocal(s[0], s[1], s[2]))
	}
	return list
}

func TestBuildBatchesPreservesRegionOrder(t *testing.T) {
	lists := []culling.RegionRenderList{
		regionList([3]int32{2, 0, 0}, [3]uint8{0, 0, 0}),
		regionList([3]int32{1, 0, 0}, [3]uint8{1, 0, 0}),
		regionList([3]int32{0, 1, 0}, [3]uint8{0, 1, 0}),
	}

	batches := BuildBatches(lists, nil)
	if len(batches) != 3 {
		t.Fatalf("expected 3 batches, got %d", len(batches))
	}
	for i := range lists {
		if batches[i].RegionCoords != lists[i].RegionCoords {
			t.Fatalf("batch %d region = %v, want %v (order must match the culler's output)",
				i, batches[i].RegionCoords, lists[i].RegionCoords)
		}
	}
}

func TestBuildBatchesComputesSectionBounds(t *testing.T) {
	lists := []culling.RegionRenderList{
		regionList([3]int32{1, 2, 3}, [3]uint8{5, 2, 1}),
	}

	batches := BuildBatches(lists, nil)
	if len(batches) != 1 || len(batches[0].Geometry) != 1 {
		t.Fatalf("expected a single draw, got %+v", batches)
	}

	draw := batches[0].Geometry[0]
	wantSection := [3]int32{
		1*culling.RegionSizeX + 5,
		2*culling.RegionSizeY + 2,
		3*culling.RegionSizeZ + 1,
	}
	if draw.WorldSection != wantSection {
		t.Fatalf("WorldSection = %v, want %v", draw.WorldSection, wantSection)
	}
	if draw.AABBMin.X() != float32(wantSection[0])*culling.SectionBlockSize {
		t.Fatalf("AABBMin.X = %v, want %v", draw.AABBMin.X(), float32(wantSection[0])*culling.SectionBlockSize)
	}
	extent := draw.AABBMax.Sub(draw.AABBMin)
	want := mgl32.Vec3{culling.SectionBlockSize, culling.SectionBlockSize, culling.SectionBlockSize}
	if extent != want {
		t.Fatalf("AABB extent = %v, want %v", extent, want)
	}
}

func TestBuildBatchesReusesDst(t *testing.T) {
	lists := []culling.RegionRenderList{
		regionList([3]int32{0, 0, 0}, [3]uint8{0, 0, 0}, [3]uint8{1, 0, 0}),
	}
	batches := BuildBatches(lists, nil)
	batches = BuildBatches(lists[:0], batches)
	if len(batches) != 0 {
		t.Fatalf("rebuilding from no lists should empty the batch slice, got %d", len(batches))
	}
	if SectionCount(batches) != 0 {
		t.Fatal("SectionCount over no batches should be 0")
	}
}
