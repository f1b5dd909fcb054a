package culling

// SectionFlagSet describes which render categories a section contributes
// to. The original per-section flag array is elided from this core (see
// the "Elided section flags" design note); callers that can't tell the
// categories apart yet should pass SectionFlagAll so every section still
// lands in every bucket.
type SectionFlagSet uint8

const (
	HasBlockGeometry SectionFlagSet = 1 << iota
	HasAnimatedSprites
	HasBlockEntities

	SectionFlagNone SectionFlagSet = 0
	SectionFlagAll  SectionFlagSet = HasBlockGeometry | HasAnimatedSprites | HasBlockEntities
)

// Contains reports whether f is set in s.
func (s SectionFlagSet) Contains(f SectionFlagSet) bool {
	return s&f == f
}
