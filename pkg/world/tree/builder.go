package tree

import "github.com/OCharnyshevich/tile-trees/pkg/world/grid"

// Rand is the random source the builder draws from. The number and order
// of draws is part of the output: the same seed and call sequence must
// produce the same trees.
type Rand interface {
	Next(n int) int
	Range(lo, hi int) int
	OneIn(n int) bool
}

// envelopeHalfWidth is the horizontal clearance on each side of a trunk.
const envelopeHalfWidth = 2

// Builder lays out tree columns in a grid.
type Builder struct {
	grid  grid.Grid
	codec Codec
}

// NewBuilder creates a Builder writing through g.
func NewBuilder(g grid.Grid, c Codec) *Builder {
	return &Builder{grid: g, codec: c}
}

// Grow tries to build a whole tree standing on the ground below (x, y).
// Saplings at (x, y) and below are skipped to find the ground row. It
// returns false without touching the grid when the spot is unsuitable.
func (b *Builder) Grow(x, y int, s Settings, r Rand) bool {
	groundY := b.groundRow(x, y, s)

	if !b.canRoot(x, groundY, s) {
		return false
	}

	height := r.Range(s.MinHeight, s.MaxHeight)
	if !b.envelopeClear(x, groundY-(height+s.TopPadding), groundY-1, s) {
		return false
	}

	bottom := groundY - 1
	top := bottom - height
	col := b.column(x, b.grid.Cell(x, groundY).Color, s, r)

	for row := bottom; row >= top; row-- {
		switch {
		case row == bottom:
			col.placeBottom(row, height == 1)
		case row > top:
			col.placeMiddle(row)
		default:
			col.placeTop(row)
		}
	}

	b.grid.MarkDirty(grid.Rect{MinX: x - 1, MinY: top - 1, MaxX: x + 1, MaxY: bottom + 1})
	return true
}

func (b *Builder) groundRow(x, y int, s Settings) int {
	if s.SaplingType == 0 {
		return y
	}
	_, h := b.grid.Size()
	for y < h {
		c := b.grid.Cell(x, y)
		if !c.Active || c.Type != s.SaplingType {
			break
		}
		y++
	}
	return y
}

// canRoot runs every ground-level check: dry surroundings, a solid valid
// ground tile with valid ground beside it, and an acceptable wall.
func (b *Builder) canRoot(x, groundY int, s Settings) bool {
	for dx := -1; dx <= 1; dx++ {
		if b.grid.LiquidAmount(x+dx, groundY-1) != 0 {
			return false
		}
	}

	ground := b.grid.Cell(x, groundY)
	if !ground.Solid() || !s.validGround(ground.Type) {
		return false
	}
	if !s.validWall(b.grid.Cell(x, groundY-1).Wall) {
		return false
	}

	left := b.grid.Cell(x-1, groundY)
	right := b.grid.Cell(x+1, groundY)
	if (!left.Active || !s.validGround(left.Type)) && (!right.Active || !s.validGround(right.Type)) {
		return false
	}
	return true
}

// envelopeClear reports whether the 5-wide block of rows [minY, maxY]
// around x is empty. The kind's own saplings count as empty.
func (b *Builder) envelopeClear(x, minY, maxY int, s Settings) bool {
	for cy := minY; cy <= maxY; cy++ {
		for cx := x - envelopeHalfWidth; cx <= x+envelopeHalfWidth; cx++ {
			if b.grid.IsEmpty(cx, cy) {
				continue
			}
			if s.SaplingType != 0 {
				if c := b.grid.Cell(cx, cy); c.Active && c.Type == s.SaplingType {
					continue
				}
			}
			return false
		}
	}
	return true
}

// column carries the per-tree placement state across rows. prevLeft and
// prevRight remember which sides the row below branched on.
type column struct {
	b         *Builder
	x         int
	color     uint8
	s         Settings
	r         Rand
	prevLeft  bool
	prevRight bool
}

func (b *Builder) column(x int, color uint8, s Settings, r Rand) *column {
	return &column{b: b, x: x, color: color, s: s, r: r}
}

func (c *column) placeBottom(y int, single bool) {
	rootRight := c.r.OneIn(c.s.RootChance)
	rootLeft := c.r.OneIn(c.s.RootChance)

	if !rootLeft && !rootRight {
		c.placeBark(y)
		return
	}

	style := c.r.Next(styles)
	if rootRight {
		c.place(c.x+1, y, Descriptor{Style: style, Side: Right, Role: Root})
	}
	if rootLeft {
		c.place(c.x-1, y, Descriptor{Style: style, Side: Left, Role: Root})
	}

	role := WithRoots
	if single {
		role = TopWithRoots
	}
	c.place(c.x, y, Descriptor{Style: style, Side: sideOf(rootLeft, rootRight), Role: role})
}

func (c *column) placeMiddle(y int) {
	// Both rolls are always drawn so suppression never shifts the sequence.
	branchRight := c.r.OneIn(c.s.BranchChance)
	branchLeft := c.r.OneIn(c.s.BranchChance)

	if c.prevLeft {
		branchLeft = false
	}
	if c.prevRight {
		branchRight = false
	}
	c.prevLeft = branchLeft
	c.prevRight = branchRight

	if !branchLeft && !branchRight {
		c.placeBark(y)
		return
	}

	style := c.r.Next(styles)
	if branchRight {
		c.place(c.x+1, y, Descriptor{Style: style, Side: Right, Role: c.branchRole()})
	}
	if branchLeft {
		c.place(c.x-1, y, Descriptor{Style: style, Side: Left, Role: c.branchRole()})
	}
	c.place(c.x, y, Descriptor{Style: style, Side: sideOf(branchLeft, branchRight), Role: WithBranches})
}

func (c *column) branchRole() Role {
	if c.r.OneIn(c.s.NotLeafyBranchChance) {
		return Branch
	}
	return LeafyBranch
}

// placeBark writes a plain trunk tile, possibly with less or more bark on
// one side. When both rolls fire, more bark wins.
func (c *column) placeBark(y int) {
	lessBark := c.r.OneIn(c.s.LessBarkChance)
	moreBark := c.r.OneIn(c.s.MoreBarkChance)

	side := Right
	if c.r.OneIn(2) {
		side = Left
	}
	style := c.r.Next(styles)

	d := Descriptor{Style: style, Side: Center, Role: Normal}
	if lessBark {
		d.Side, d.Role = side, LessBark
	}
	if moreBark {
		d.Side, d.Role = side, MoreBark
	}
	c.place(c.x, y, d)
}

func (c *column) placeTop(y int) {
	role := LeafyTop
	if c.r.OneIn(c.s.BrokenTopChance) {
		role = BrokenTop
	}
	c.place(c.x, y, Descriptor{Style: c.r.Next(styles), Side: Center, Role: role})
}

func (c *column) place(x, y int, d Descriptor) {
	c.b.place(x, y, d, c.color, c.s.TrunkType)
}

func (b *Builder) place(x, y int, d Descriptor, color uint8, trunkType uint16) {
	cell := b.grid.Cell(x, y)
	cell.Active = true
	cell.Actuated = false
	cell.Half = false
	cell.Slope = 0
	cell.Type = trunkType
	cell.Color = color
	b.codec.Encode(d, &cell)
	b.grid.SetCell(x, y, cell)
}
