package culling

import (
	"math"

	"github.com/go-gl/mathgl/mgl32"
)

// BoundsResult is the outcome of testing a node's bounding cube against the
// combined frustum+fog volume.
type BoundsResult int

const (
	Outside BoundsResult = iota
	Inside
	Partial
)

// CoordContext is the coordinate/visibility collaborator the graph culler
// depends on but does not construct itself: it knows
// where the camera sits in the local grid, how to sweep level-3 nodes, how
// to bounds-test a node, and which directions are still inside the render
// window. FrustumFogContext below is this package's own default
// implementation of it.
type CoordContext interface {
	// CameraSectionIndex is the level-0 index BFS seeds from.
	CameraSectionIndex() NodeIndex
	// OriginRegionCoords is the global region coordinates of the region
	// containing local section (0, 0, 0).
	OriginRegionCoords() [3]int32
	// IterStartIndex is the level-3 node the frustum/fog sweep starts from.
	IterStartIndex() NodeIndex
	// Level3NodeIterCounts is how many level-3 nodes the sweep visits along
	// each axis, starting from IterStartIndex.
	Level3NodeIterCounts() [3]uint8
	// TestNode classifies a node (at the given hierarchical level) against
	// the frustum and fog volume.
	TestNode(index NodeIndex, level int) BoundsResult
	// GetValidDirections returns the directions out of a section that stay
	// inside the local grid and the configured render distance.
	GetValidDirections(x, y, z uint8) GraphDirectionSet
}

type plane struct{ a, b, c, d float32 }

func normalizePlane(p plane) plane {
	length := float32(math.Sqrt(float64(p.a*p.a + p.b*p.b + p.c*p.c)))
	if length == 0 {
		return p
	}
	return plane{p.a / length, p.b / length, p.c / length, p.d / length}
}

// extractFrustumPlanes builds six planes (left, right, bottom, top, near,
// far) from a combined projection*view clip matrix, for this package's
// tri-state (Inside/Outside/Partial) AABB test.
func extractFrustumPlanes(clip mgl32.Mat4) [6]plane {
	m00, m01, m02, m03 := clip[0], clip[4], clip[8], clip[12]
	m10, m11, m12, m13 := clip[1], clip[5], clip[9], clip[13]
	m20, m21, m22, m23 := clip[2], clip[6], clip[10], clip[14]
	m30, m31, m32, m33 := clip[3], clip[7], clip[11], clip[15]

	var pl [6]plane
	pl[0] = normalizePlane(plane{m30 + m00, m31 + m01, m32 + m02, m33 + m03}) // left
	pl[1] = normalizePlane(plane{m30 - m00, m31 - m01, m32 - m02, m33 - m03}) // right
	pl[2] = normalizePlane(plane{m30 + m10, m31 + m11, m32 + m12, m33 + m13}) // bottom
	pl[3] = normalizePlane(plane{m30 - m10, m31 - m11, m32 - m12, m33 - m13}) // top
	pl[4] = normalizePlane(plane{m30 + m20, m31 + m21, m32 + m22, m33 + m23}) // near
	pl[5] = normalizePlane(plane{m30 - m20, m31 - m21, m32 - m22, m33 - m23}) // far
	return pl
}

// aabbVsPlane returns the signed distance of the AABB's positive vertex
// (the corner furthest along the plane normal) and negative vertex (the
// corner furthest against it).
func aabbVsPlane(min, max mgl32.Vec3, p plane) (posDist, negDist float32) {
	px, nx := max.X(), min.X()
	if p.a < 0 {
		px, nx = min.X(), max.X()
	}
	py, ny := max.Y(), min.Y()
	if p.b < 0 {
		py, ny = min.Y(), max.Y()
	}
	pz, nz := max.Z(), min.Z()
	if p.c < 0 {
		pz, nz = min.Z(), max.Z()
	}
	posDist = p.a*px + p.b*py + p.c*pz + p.d
	negDist = p.a*nx + p.b*ny + p.c*nz + p.d
	return
}

func aabbVsFrustum(min, max mgl32.Vec3, planes [6]plane) BoundsResult {
	result := Inside
	for _, p := range planes {
		posDist, negDist := aabbVsPlane(min, max, p)
		if posDist < 0 {
			return Outside
		}
		if negDist < 0 {
			result = Partial
		}
	}
	return result
}

func clampF(v, lo, hi float32) float32 {
	if v < lo {
		return lo
	}
	if v > hi {
		return hi
	}
	return v
}

func aabbVsFogSphere(min, max, camera mgl32.Vec3, fogRadius float32) BoundsResult {
	nearest := mgl32.Vec3{
		clampF(camera.X(), min.X(), max.X()),
		clampF(camera.Y(), min.Y(), max.Y()),
		clampF(camera.Z(), min.Z(), max.Z()),
	}
	nearestDistSq := nearest.Sub(camera).Len()
	nearestDistSq *= nearestDistSq

	radiusSq := fogRadius * fogRadius
	if nearestDistSq > radiusSq {
		return Outside
	}

	// farthest corner per axis is whichever of min/max is further from camera
	fx := min.X()
	if absF(max.X()-camera.X()) > absF(min.X()-camera.X()) {
		fx = max.X()
	}
	fy := min.Y()
	if absF(max.Y()-camera.Y()) > absF(min.Y()-camera.Y()) {
		fy = max.Y()
	}
	fz := min.Z()
	if absF(max.Z()-camera.Z()) > absF(min.Z()-camera.Z()) {
		fz = max.Z()
	}
	farDist := mgl32.Vec3{fx, fy, fz}.Sub(camera).Len()
	if farDist*farDist > radiusSq {
		return Partial
	}
	return Inside
}

func absF(v float32) float32 {
	if v < 0 {
		return -v
	}
	return v
}

func combineBounds(a, b BoundsResult) BoundsResult {
	if a == Outside || b == Outside {
		return Outside
	}
	if a == Inside && b == Inside {
		return Inside
	}
	return Partial
}

// FrustumFogContext is the default CoordContext: a camera position, a
// frustum clip matrix, a fog radius and a render distance (in sections).
// The camera position, clip matrix and fog radius are in block space; the
// camera's world section is translated into the local 256^3 window. It owns the frustum/fog math so the graph itself can
// stay a pure computation over pre-tested bounds.
type FrustumFogContext struct {
	originWorldSection [3]int32
	cameraLocalSection [3]uint8
	cameraWorldPos     mgl32.Vec3
	planes             [6]plane
	fogRadius          float32
	viewDistance       int
	worldHeight        int
}

// NewFrustumFogContext builds a coordinate context for one frame.
//
//   - cameraWorldSection is the camera's section coordinates in world
//     space (not yet windowed/offset).
//   - cameraWorldPos is the camera's position in block-space, used for the
//     frustum/fog math.
//   - clip is the combined projection*view matrix.
//   - viewDistance and worldHeight are both in sections and must satisfy
//     viewDistance <= MaxViewDistance, worldHeight <= MaxWorldHeight.
func NewFrustumFogContext(cameraWorldSection [3]int32, cameraWorldPos mgl32.Vec3, clip mgl32.Mat4, fogRadius float32, viewDistance, worldHeight int) *FrustumFogContext {
	if viewDistance > MaxViewDistance {
		panic("culling: view distance exceeds MaxViewDistance")
	}
	if worldHeight > MaxWorldHeight {
		panic("culling: world height exceeds MaxWorldHeight")
	}

	origin := GraphOrigin(cameraWorldSection)

	local := [3]uint8{
		uint8(cameraWorldSection[0] - origin[0]),
		uint8(cameraWorldSection[1] - origin[1]),
		uint8(cameraWorldSection[2] - origin[2]),
	}

	return &FrustumFogContext{
		originWorldSection: origin,
		cameraLocalSection: local,
		cameraWorldPos:     cameraWorldPos,
		planes:             extractFrustumPlanes(clip),
		fogRadius:          fogRadius,
		viewDistance:       viewDistance,
		worldHeight:        worldHeight,
	}
}

func (c *FrustumFogContext) worldSectionOf(x, y, z uint8) [3]int32 {
	return [3]int32{
		c.originWorldSection[0] + int32(x),
		c.originWorldSection[1] + int32(y),
		c.originWorldSection[2] + int32(z),
	}
}

// CameraSectionIndex implements CoordContext.
func (c *FrustumFogContext) CameraSectionIndex() NodeIndex {
	return PackNodeIndex(c.cameraLocalSection[0], c.cameraLocalSection[1], c.cameraLocalSection[2])
}

// OriginRegionCoords implements CoordContext.
func (c *FrustumFogContext) OriginRegionCoords() [3]int32 {
	return [3]int32{
		floorDivInt32(c.originWorldSection[0], RegionSizeX),
		floorDivInt32(c.originWorldSection[1], RegionSizeY),
		floorDivInt32(c.originWorldSection[2], RegionSizeZ),
	}
}

func floorDivInt32(a int32, b int32) int32 {
	q := a / b
	if a%b != 0 && (a < 0) != (b < 0) {
		q--
	}
	return q
}

// IterStartIndex implements CoordContext. The frustum/fog sweep covers the
// entire local grid rather than a tight rectangle around the render
// distance: correctness (every section gets tested) does not depend on a
// tight sweep, and the hierarchical level-3/2/1/0 pruning keeps the wide
// sweep cheap since whole out-of-view level-3 nodes cost one test each.
func (c *FrustumFogContext) IterStartIndex() NodeIndex {
	return NodeIndex(0)
}

// Level3NodeIterCounts implements CoordContext.
func (c *FrustumFogContext) Level3NodeIterCounts() [3]uint8 {
	const level3NodesPerAxis = GridSize / 8
	return [3]uint8{level3NodesPerAxis, level3NodesPerAxis, level3NodesPerAxis}
}

// TestNode implements CoordContext.
func (c *FrustumFogContext) TestNode(index NodeIndex, level int) BoundsResult {
	x, y, z := index.Unpack()
	worldSection := c.worldSectionOf(x, y, z)
	nodeSections := float32(int(1) << uint(level))

	min := mgl32.Vec3{
		float32(worldSection[0]) * SectionBlockSize,
		float32(worldSection[1]) * SectionBlockSize,
		float32(worldSection[2]) * SectionBlockSize,
	}
	size := nodeSections * SectionBlockSize
	max := min.Add(mgl32.Vec3{size, size, size})

	frustumResult := aabbVsFrustum(min, max, c.planes)
	if frustumResult == Outside {
		return Outside
	}
	fogResult := aabbVsFogSphere(min, max, c.cameraWorldPos, c.fogRadius)
	return combineBounds(frustumResult, fogResult)
}

// GetValidDirections implements CoordContext: a direction is valid when its
// neighbor section stays inside the local 256^3 grid (no wraparound), keeps
// Y within the configured world height band, and keeps X/Z within the
// configured render distance of the camera.
func (c *FrustumFogContext) GetValidDirections(x, y, z uint8) GraphDirectionSet {
	valid := DirectionSetNone
	for _, d := range allDirections {
		nx, ny, nz, ok := stepLocalCoord(x, y, z, d)
		if !ok {
			continue
		}
		if int(ny) >= c.worldHeight {
			continue
		}
		dx := absInt(int(nx) - int(c.cameraLocalSection[0]))
		dz := absInt(int(nz) - int(c.cameraLocalSection[2]))
		if dx > c.viewDistance || dz > c.viewDistance {
			continue
		}
		valid = valid.Add(d)
	}
	return valid
}

func stepLocalCoord(x, y, z uint8, d Direction) (nx, ny, nz uint8, ok bool) {
	nx, ny, nz = x, y, z
	switch d {
	case DirPosX:
		if x == GridSize-1 {
			return 0, 0, 0, false
		}
		nx = x + 1
	case DirNegX:
		if x == 0 {
			return 0, 0, 0, false
		}
		nx = x - 1
	case DirPosY:
		if y == GridSize-1 {
			return 0, 0, 0, false
		}
		ny = y + 1
	case DirNegY:
		if y == 0 {
			return 0, 0, 0, false
		}
		ny = y - 1
	case DirPosZ:
		if z == GridSize-1 {
			return 0, 0, 0, false
		}
		nz = z + 1
	case DirNegZ:
		if z == 0 {
			return 0, 0, 0, false
		}
		nz = z - 1
	}
	return nx, ny, nz, true
}

func absInt(v int) int {
	if v < 0 {
		return -v
	}
	return v
}
