package grid

// Pos identifies a cell. Y grows downward: the ground is below a tree, so
// "up" means y-1.
type Pos struct{ X, Y int }

// Rect is an inclusive cell rectangle.
type Rect struct {
	MinX, MinY, MaxX, MaxY int
}

// Contains reports whether p lies inside r.
func (r Rect) Contains(p Pos) bool {
	return p.X >= r.MinX && p.X <= r.MaxX && p.Y >= r.MinY && p.Y <= r.MaxY
}

// Union returns the smallest rectangle covering both r and o.
func (r Rect) Union(o Rect) Rect {
	return Rect{
		MinX: min(r.MinX, o.MinX),
		MinY: min(r.MinY, o.MinY),
		MaxX: max(r.MaxX, o.MaxX),
		MaxY: max(r.MaxY, o.MaxY),
	}
}

// Cell is one grid tile. FrameX/FrameY are the sprite-sheet offsets that
// encode a tree tile's descriptor.
type Cell struct {
	Type     uint16
	FrameX   int16
	FrameY   int16
	Color    uint8
	Wall     uint16
	Liquid   uint8
	Active   bool
	Actuated bool
	Half     bool
	Slope    uint8
}

// Solid reports whether the cell is a full, unsloped, unactuated tile that
// something can stand on.
func (c Cell) Solid() bool {
	return c.Active && !c.Actuated && !c.Half && c.Slope == 0
}

// Grid is the host-owned tile storage the tree engine reads and writes.
// Out-of-range coordinates are the implementation's concern.
type Grid interface {
	Size() (width, height int)
	Cell(x, y int) Cell
	SetCell(x, y int, c Cell)
	MarkDirty(r Rect)
	IsEmpty(x, y int) bool
	LiquidAmount(x, y int) uint8
}
