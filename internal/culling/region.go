package culling

import "math"

// Region dimensions: an 8x4x8 brick of sections, the batching unit for GPU
// submission.
const (
	RegionSizeX = 8
	RegionSizeY = 4
	RegionSizeZ = 8

	SectionsInRegion = RegionSizeX * RegionSizeY * RegionSizeZ // 256

	RegionsInGraphX = GridSize / RegionSizeX // 32
	RegionsInGraphY = GridSize / RegionSizeY // 64
	RegionsInGraphZ = GridSize / RegionSizeZ // 32

	RegionsInGraph = RegionsInGraphX * RegionsInGraphY * RegionsInGraphZ // 65536
)

// RegionSectionIndex packs a section's position within its region (8x4x8)
// into a single byte: 3 bits of X, 2 bits of Y, 3 bits of Z.
type RegionSectionIndex uint8

// RegionSectionIndexFromLocal computes the in-region index from a
// section's local grid coordinates.
func RegionSectionIndexFromLocal(x, y, z uint8) RegionSectionIndex {
	return RegionSectionIndex(((x & 0b111) << 5) | ((y & 0b11) << 3) | (z & 0b111))
}

// LocalRegionIndex packs a region's position (derived from the high bits of
// a section's local coordinates) into a single value in [0, RegionsInGraph).
type LocalRegionIndex uint16

// LocalRegionIndexFromLocalSection derives the region index containing a
// given section's local grid coordinates.
func LocalRegionIndexFromLocalSection(x, y, z uint8) LocalRegionIndex {
	rx := uint16(x) >> 3
	ry := uint16(y) >> 2
	rz := uint16(z) >> 3
	return LocalRegionIndex(rx*RegionsInGraphY*RegionsInGraphZ + ry*RegionsInGraphZ + rz)
}

// GraphOrigin computes the local grid's origin (the world-space section
// coordinates that map to local (0, 0, 0)) for a camera at
// cameraWorldSection. The origin is centered on the camera on X/Z and
// floor-aligned to the region size on every axis, so that the region
// coordinate arithmetic TouchRegion and SectionWorldCoord perform (origin
// region plus a local-to-region shift) is always exact instead of losing
// the camera's offset into its region when it isn't region-aligned.
// Vertically the origin is always 0: world section Y is never negative,
// and MaxWorldHeight already fits inside GridSize without needing a
// centering offset, which would also have to be region-aligned.
func GraphOrigin(cameraWorldSection [3]int32) [3]int32 {
	rawX := cameraWorldSection[0] - GridSize/2
	rawZ := cameraWorldSection[2] - GridSize/2
	return [3]int32{
		floorDivInt32(rawX, RegionSizeX) * RegionSizeX,
		0,
		floorDivInt32(rawZ, RegionSizeZ) * RegionSizeZ,
	}
}

// sentinelRegionCoord marks a RegionRenderList slot as not yet initialised.
var sentinelRegionCoord = [3]int32{math.MinInt32, math.MinInt32, math.MinInt32}

// RegionRenderList holds, for one region, the region-space section indices
// that belong to each render category.
type RegionRenderList struct {
	RegionCoords       [3]int32
	GeometryIndices    []RegionSectionIndex
	SpriteIndices      []RegionSectionIndex
	BlockEntityIndices []RegionSectionIndex
}

func newRegionRenderList() RegionRenderList {
	return RegionRenderList{
		RegionCoords:       sentinelRegionCoord,
		GeometryIndices:    make([]RegionSectionIndex, 0, SectionsInRegion),
		SpriteIndices:      make([]RegionSectionIndex, 0, SectionsInRegion),
		BlockEntityIndices: make([]RegionSectionIndex, 0, SectionsInRegion),
	}
}

// AddSection pushes local_section_coord's region-space index onto each
// bucket whose flag predicate is satisfied. Passing SectionFlagAll routes
// the section into every bucket.
func (r *RegionRenderList) AddSection(flags SectionFlagSet, x, y, z uint8) {
	idx := RegionSectionIndexFromLocal(x, y, z)
	if flags.Contains(HasBlockGeometry) {
		r.GeometryIndices = append(r.GeometryIndices, idx)
	}
	if flags.Contains(HasAnimatedSprites) {
		r.SpriteIndices = append(r.SpriteIndices, idx)
	}
	if flags.Contains(HasBlockEntities) {
		r.BlockEntityIndices = append(r.BlockEntityIndices, idx)
	}
}

// SectionWorldCoord decodes a region-space section index back into global
// world-space section coordinates, given the region it belongs to. It is
// the inverse of the packing AddSection performs via
// RegionSectionIndexFromLocal.
func (r *RegionRenderList) SectionWorldCoord(idx RegionSectionIndex) [3]int32 {
	localX := int32((idx >> 5) & 0b111)
	localY := int32((idx >> 3) & 0b11)
	localZ := int32(idx & 0b111)
	return [3]int32{
		r.RegionCoords[0]*RegionSizeX + localX,
		r.RegionCoords[1]*RegionSizeY + localY,
		r.RegionCoords[2]*RegionSizeZ + localZ,
	}
}

// IsInitialized reports whether Initialize has been called since the last Clear.
func (r *RegionRenderList) IsInitialized() bool {
	return r.RegionCoords != sentinelRegionCoord
}

// Initialize records the global region coordinates on first touch.
func (r *RegionRenderList) Initialize(regionCoords [3]int32) {
	r.RegionCoords = regionCoords
}

// IsEmpty reports whether no section has been added to any bucket.
func (r *RegionRenderList) IsEmpty() bool {
	return len(r.GeometryIndices) == 0 && len(r.SpriteIndices) == 0 && len(r.BlockEntityIndices) == 0
}

// Clear resets the slot back to uninitialised, keeping the backing arrays.
func (r *RegionRenderList) Clear() {
	r.RegionCoords = sentinelRegionCoord
	r.GeometryIndices = r.GeometryIndices[:0]
	r.SpriteIndices = r.SpriteIndices[:0]
	r.BlockEntityIndices = r.BlockEntityIndices[:0]
}
