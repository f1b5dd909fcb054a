package world

import "mini-mc/internal/culling"

// BuildSectionVisibility flood-fills the see-through interior cells of one
// section of a column to determine which of its 6 faces are mutually
// reachable through non-opaque space, producing the per-entry-direction
// exit sets the occlusion culler consumes (culling.VisibilityData).
//
// A section with no opaque blocks reports every face connected to every
// other face; a fully opaque section reports no connections at all.
func BuildSectionVisibility(c *Chunk, sectionIndex int) culling.VisibilityData {
	var vis culling.VisibilityData
	var visited [SectionHeight][SectionHeight][SectionHeight]bool

	open := func(x, y, z int) bool {
		return !c.SectionBlock(sectionIndex, x, y, z).Opaque()
	}

	facesOf := func(x, y, z int) culling.GraphDirectionSet {
		faces := culling.DirectionSetNone
		if x == 0 {
			faces = faces.Add(culling.DirNegX)
		}
		if x == SectionHeight-1 {
			faces = faces.Add(culling.DirPosX)
		}
		if y == 0 {
			faces = faces.Add(culling.DirNegY)
		}
		if y == SectionHeight-1 {
			faces = faces.Add(culling.DirPosY)
		}
		if z == 0 {
			faces = faces.Add(culling.DirNegZ)
		}
		if z == SectionHeight-1 {
			faces = faces.Add(culling.DirPosZ)
		}
		return faces
	}

	type cell struct{ x, y, z int }

	for x := 0; x < SectionHeight; x++ {
		for y := 0; y < SectionHeight; y++ {
			for z := 0; z < SectionHeight; z++ {
				if visited[x][y][z] || !open(x, y, z) {
					continue
				}

				// Flood one connected component of open cells, collecting
				// every face it touches.
				touched := culling.DirectionSetNone
				stack := []cell{{x, y, z}}
				visited[x][y][z] = true

				for len(stack) > 0 {
					cur := stack[len(stack)-1]
					stack = stack[:len(stack)-1]
					touched = touched.AddAll(facesOf(cur.x, cur.y, cur.z))

					neighbors := [6]cell{
						{cur.x + 1, cur.y, cur.z}, {cur.x - 1, cur.y, cur.z},
						{cur.x, cur.y + 1, cur.z}, {cur.x, cur.y - 1, cur.z},
						{cur.x, cur.y, cur.z + 1}, {cur.x, cur.y, cur.z - 1},
					}
					for _, n := range neighbors {
						if n.x < 0 || n.x >= SectionHeight || n.y < 0 || n.y >= SectionHeight || n.z < 0 || n.z >= SectionHeight {
							continue
						}
						if visited[n.x][n.y][n.z] || !open(n.x, n.y, n.z) {
							continue
						}
						visited[n.x][n.y][n.z] = true
						stack = append(stack, n)
					}
				}

				// Every face this component touches can see every other
				// face it touches.
				for _, d := range touched.Directions() {
					vis.SetRow(d, vis.Row(d).AddAll(touched))
				}
			}
		}
	}

	return vis
}
