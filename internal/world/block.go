package world

// BlockType identifies the material stored in one voxel cell.
type BlockType uint16

const (
	BlockTypeAir BlockType = iota
	BlockTypeGrass
	BlockTypeDirt
	BlockTypeStone
	BlockTypeGlass
)

// Opaque reports whether the block stops a line of sight. Air and glass
// let sight pass through; everything else blocks it. Section visibility
// (BuildSectionVisibility) is computed from this, so a block that is
// drawn but see-through must return false here.
func (b BlockType) Opaque() bool {
	switch b {
	case BlockTypeAir, BlockTypeGlass:
		return false
	}
	return true
}
