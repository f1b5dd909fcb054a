package culling

// Constants binding the external schema shared with the coord-context and
// visibility-data producers.
const (
	SectionsInGraph = 1 << (3 * GridBits) // 256^3

	MaxViewDistance = 127
	MaxWorldHeight  = 254

	// SectionBlockSize is the edge length, in blocks, of one section;
	// matches world.SectionHeight / world.ChunkSizeX in the game layer.
	SectionBlockSize = 16
)

// debugAssertions gates the extra consistency checks (queue capacity,
// region coordinate consistency). A plain constant so the compiler can
// dead-code-eliminate the checks if ever flipped off.
const debugAssertions = true
