package world

import "mini-mc/internal/culling"

// World is the chunk-column source the visibility culler is fed from: a
// store of loaded columns plus an optional terrain generator that fills
// missing ones on demand.
type World struct {
	store *ChunkStore
	gen   Generator

	// Occlusion culling graph, rebuilt whenever the camera crosses into a
	// new local window; see CullAndSort.
	cullGraph       *culling.Graph
	cullGraphOrigin [3]int32
	cullScratch     []*Chunk
}

// New creates a world backed by the given generator. gen may be nil, in
// which case columns only exist where blocks have been Set explicitly.
func New(gen Generator) *World {
	return &World{store: NewChunkStore(), gen: gen}
}

// NewEmpty creates a world with no terrain generator.
func NewEmpty() *World {
	return New(nil)
}

// GetChunk returns the column at chunk coordinates (cx, cz), creating it
// empty when create is true.
func (w *World) GetChunk(cx, cz int, create bool) *Chunk {
	return w.store.GetChunk(cx, cz, create)
}

// Get returns the block at world block coordinates.
func (w *World) Get(x, y, z int) BlockType {
	return w.store.Get(x, y, z)
}

// Set writes the block at world block coordinates.
func (w *World) Set(x, y, z int, b BlockType) {
	w.store.Set(x, y, z, b)
}

// IsAir reports whether the block at world block coordinates is air.
func (w *World) IsAir(x, y, z int) bool {
	return w.Get(x, y, z) == BlockTypeAir
}

// EnsureColumns generates every missing column within radius chunks of
// chunk (cx, cz). A no-op without a generator.
func (w *World) EnsureColumns(cx, cz, radius int) {
	if w.gen == nil {
		return
	}
	for dx := -radius; dx <= radius; dx++ {
		for dz := -radius; dz <= radius; dz++ {
			if dx*dx+dz*dz > radius*radius {
				continue
			}
			if w.store.GetChunk(cx+dx, cz+dz, false) != nil {
				continue
			}
			c := NewChunk(cx+dx, cz+dz)
			w.gen.GenerateColumn(c)
			w.store.AddChunk(c)
		}
	}
}
