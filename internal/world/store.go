package world

import "sync"

// ChunkStore holds loaded chunk columns keyed by their (X, Z) chunk
// coordinates. Reads and writes are guarded so a generator can fill
// columns while the render thread queries them.
type ChunkStore struct {
	mu      sync.RWMutex
	columns map[[2]int]*Chunk
}

// NewChunkStore creates an empty store.
func NewChunkStore() *ChunkStore {
	return &ChunkStore{columns: make(map[[2]int]*Chunk)}
}

// GetChunk returns the column at chunk coordinates (cx, cz). When create
// is true a missing column is created empty (not generated).
func (cs *ChunkStore) GetChunk(cx, cz int, create bool) *Chunk {
	key := [2]int{cx, cz}
	cs.mu.RLock()
	c := cs.columns[key]
	cs.mu.RUnlock()
	if c != nil || !create {
		return c
	}

	cs.mu.Lock()
	defer cs.mu.Unlock()
	if existing := cs.columns[key]; existing != nil {
		return existing
	}
	c = NewChunk(cx, cz)
	cs.columns[key] = c
	return c
}

// AddChunk inserts a pre-generated column, replacing any existing one at
// the same coordinates.
func (cs *ChunkStore) AddChunk(c *Chunk) {
	cs.mu.Lock()
	cs.columns[[2]int{c.X, c.Z}] = c
	cs.mu.Unlock()
}

// Get returns the block at world block coordinates.
func (cs *ChunkStore) Get(x, y, z int) BlockType {
	c := cs.GetChunk(floorDiv(x, ChunkSizeX), floorDiv(z, ChunkSizeZ), false)
	if c == nil {
		return BlockTypeAir
	}
	return c.Get(mod(x, ChunkSizeX), y, mod(z, ChunkSizeZ))
}

// Set writes the block at world block coordinates, creating the column if
// needed.
func (cs *ChunkStore) Set(x, y, z int, b BlockType) {
	c := cs.GetChunk(floorDiv(x, ChunkSizeX), floorDiv(z, ChunkSizeZ), true)
	c.Set(mod(x, ChunkSizeX), y, mod(z, ChunkSizeZ), b)
}

// AppendColumnsInRadius appends every loaded column within radius chunks
// (euclidean, in the XZ plane) of (cx, cz) to dst and returns the result.
func (cs *ChunkStore) AppendColumnsInRadius(cx, cz, radius int, dst []*Chunk) []*Chunk {
	cs.mu.RLock()
	defer cs.mu.RUnlock()
	for dx := -radius; dx <= radius; dx++ {
		for dz := -radius; dz <= radius; dz++ {
			if dx*dx+dz*dz > radius*radius {
				continue
			}
			if c := cs.columns[[2]int{cx + dx, cz + dz}]; c != nil {
				dst = append(dst, c)
			}
		}
	}
	return dst
}

func floorDiv(a, b int) int {
	q := a / b
	if a%b != 0 && (a < 0) != (b < 0) {
		q--
	}
	return q
}

func mod(a, b int) int {
	m := a % b
	if m < 0 {
		m += b
	}
	return m
}
