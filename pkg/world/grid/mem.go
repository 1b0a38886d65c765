package grid

import "sync"

// Mem is a dense in-memory Grid. Index = y*width + x.
type Mem struct {
	mu     sync.RWMutex
	width  int
	height int
	cells  []Cell
	dirty  []Rect
}

// NewMem creates an empty width×height grid.
func NewMem(width, height int) *Mem {
	return &Mem{
		width:  width,
		height: height,
		cells:  make([]Cell, width*height),
	}
}

func (m *Mem) Size() (int, int) {
	return m.width, m.height
}

func (m *Mem) inBounds(x, y int) bool {
	return x >= 0 && x < m.width && y >= 0 && y < m.height
}

// Cell returns the cell at (x, y), or the zero Cell when out of range.
func (m *Mem) Cell(x, y int) Cell {
	if !m.inBounds(x, y) {
		return Cell{}
	}
	m.mu.RLock()
	defer m.mu.RUnlock()
	return m.cells[y*m.width+x]
}

// SetCell stores c at (x, y). Writes outside the grid are dropped.
func (m *Mem) SetCell(x, y int, c Cell) {
	if !m.inBounds(x, y) {
		return
	}
	m.mu.Lock()
	m.cells[y*m.width+x] = c
	m.mu.Unlock()
}

// MarkDirty records r so hosts and tests can see which regions changed.
func (m *Mem) MarkDirty(r Rect) {
	m.mu.Lock()
	m.dirty = append(m.dirty, r)
	m.mu.Unlock()
}

// IsEmpty reports whether (x, y) holds no active tile. Cells outside the
// grid are never empty, so envelope checks fail at the edges.
func (m *Mem) IsEmpty(x, y int) bool {
	if !m.inBounds(x, y) {
		return false
	}
	return !m.Cell(x, y).Active
}

func (m *Mem) LiquidAmount(x, y int) uint8 {
	return m.Cell(x, y).Liquid
}

// Dirty returns and clears the recorded dirty rectangles.
func (m *Mem) Dirty() []Rect {
	m.mu.Lock()
	defer m.mu.Unlock()
	out := m.dirty
	m.dirty = nil
	return out
}

// ForEach calls fn for every cell in row-major order under a read lock.
func (m *Mem) ForEach(fn func(x, y int, c Cell)) {
	m.mu.RLock()
	defer m.mu.RUnlock()

	for i, c := range m.cells {
		fn(i%m.width, i/m.width, c)
	}
}

// Cells returns a copy of the backing cells.
func (m *Mem) Cells() []Cell {
	m.mu.RLock()
	defer m.mu.RUnlock()
	out := make([]Cell, len(m.cells))
	copy(out, m.cells)
	return out
}

// Load replaces the backing cells. cells must hold exactly width*height
// entries; it reports false otherwise.
func (m *Mem) Load(cells []Cell) bool {
	if len(cells) != m.width*m.height {
		return false
	}
	m.mu.Lock()
	copy(m.cells, cells)
	m.mu.Unlock()
	return true
}
