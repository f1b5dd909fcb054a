package culling

import "testing"

func TestRegionSectionIndexFromLocalPacksBits(t *testing.T) {
	idx := RegionSectionIndexFromLocal(3, 2, 5)
	want := RegionSectionIndex((3 << 5) | (2 << 3) | 5)
	if idx != want {
		t.Fatalf("RegionSectionIndexFromLocal(3,2,5) = %v, want %v", idx, want)
	}
}

func TestRegionSectionIndexFromLocalMasksToRegionBounds(t *testing.T) {
	a := RegionSectionIndexFromLocal(3, 2, 5)
	b := RegionSectionIndexFromLocal(3+8, 2+4, 5+8)
	if a != b {
		t.Fatalf("section index should only depend on position within the region: %v != %v", a, b)
	}
}

func TestLocalRegionIndexDistinctForDistinctRegions(t *testing.T) {
	a := LocalRegionIndexFromLocalSection(0, 0, 0)
	b := LocalRegionIndexFromLocalSection(8, 0, 0)
	c := LocalRegionIndexFromLocalSection(0, 4, 0)
	d := LocalRegionIndexFromLocalSection(0, 0, 8)
	if a == b || a == c || a == d || b == c || b == d || c == d {
		t.Fatalf("expected distinct region indices, got a=%v b=%v c=%v d=%v", a, b, c, d)
	}
}

func TestLocalRegionIndexSameWithinRegion(t *testing.T) {
	a := LocalRegionIndexFromLocalSection(0, 0, 0)
	b := LocalRegionIndexFromLocalSection(7, 3, 7)
	if a != b {
		t.Fatalf("sections within the same region should share an index: %v != %v", a, b)
	}
}

func TestRegionRenderListInitializeAndClear(t *testing.T) {
	r := newRegionRenderList()
	if r.IsInitialized() {
		t.Fatal("fresh render list should be uninitialized")
	}
	r.Initialize([3]int32{1, 2, 3})
	if !r.IsInitialized() {
		t.Fatal("expected render list to be initialized")
	}
	r.AddSection(SectionFlagAll, 1, 1, 1)
	if r.IsEmpty() {
		t.Fatal("render list with an added section should not be empty")
	}
	r.Clear()
	if r.IsInitialized() || !r.IsEmpty() {
		t.Fatal("Clear should reset to the uninitialized, empty state")
	}
}

func TestRegionRenderListAddSectionRoutesByFlag(t *testing.T) {
	r := newRegionRenderList()
	r.Initialize([3]int32{0, 0, 0})
	r.AddSection(HasBlockGeometry, 1, 0, 0)
	r.AddSection(HasAnimatedSprites, 0, 1, 0)
	r.AddSection(HasBlockEntities, 0, 0, 1)

	if len(r.GeometryIndices) != 1 || len(r.SpriteIndices) != 1 || len(r.BlockEntityIndices) != 1 {
		t.Fatalf("expected one entry per bucket, got geometry=%d sprites=%d blockEntities=%d",
			len(r.GeometryIndices), len(r.SpriteIndices), len(r.BlockEntityIndices))
	}
}

func TestRegionRenderListSectionWorldCoordRoundTrip(t *testing.T) {
	r := newRegionRenderList()
	r.Initialize([3]int32{2, 3, 4})
	r.AddSection(HasBlockGeometry, 5, 2, 1)

	got := r.SectionWorldCoord(r.GeometryIndices[0])
	want := [3]int32{2*RegionSizeX + 5, 3*RegionSizeY + 2, 4*RegionSizeZ + 1}
	if got != want {
		t.Fatalf("SectionWorldCoord = %v, want %v", got, want)
	}
}

func TestGraphOriginIsRegionAligned(t *testing.T) {
	for _, cam := range [][3]int32{
		{0, 0, 0}, {1, 0, 0}, {3, 50, -3}, {100, 200, -999}, {-7, 0, 7},
	} {
		origin := GraphOrigin(cam)
		if origin[0]%RegionSizeX != 0 || origin[1]%RegionSizeY != 0 || origin[2]%RegionSizeZ != 0 {
			t.Fatalf("GraphOrigin(%v) = %v is not region-aligned", cam, origin)
		}
		if origin[1] != 0 {
			t.Fatalf("GraphOrigin(%v)[1] = %d, want 0", cam, origin[1])
		}
	}
}

// TestSectionWorldCoordExactAcrossRegionWithUnalignedCamera reproduces the
// off-by-origin-remainder bug: when the camera sits off a region boundary,
// the region an out-of-region-aligned origin would have produced a
// different (wrong) world coordinate than the section actually occupies.
func TestSectionWorldCoordExactAcrossRegionWithUnalignedCamera(t *testing.T) {
	cameraWorldSection := [3]int32{103, 10, -205}
	origin := GraphOrigin(cameraWorldSection)

	const localX, localY, localZ = 5, 2, 3
	worldSection := [3]int32{origin[0] + localX, origin[1] + localY, origin[2] + localZ}

	regionCoords := [3]int32{
		floorDivInt32(worldSection[0], RegionSizeX),
		floorDivInt32(worldSection[1], RegionSizeY),
		floorDivInt32(worldSection[2], RegionSizeZ),
	}
	r := newRegionRenderList()
	r.Initialize(regionCoords)
	r.AddSection(HasBlockGeometry, uint8(localX%RegionSizeX), uint8(localY%RegionSizeY), uint8(localZ%RegionSizeZ))

	got := r.SectionWorldCoord(r.GeometryIndices[0])
	if got != worldSection {
		t.Fatalf("SectionWorldCoord = %v, want %v (origin %v was not region-aligned)", got, worldSection, origin)
	}
}
