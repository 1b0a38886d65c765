package tree

import "github.com/OCharnyshevich/tile-trees/pkg/world/grid"

// TryGrowHigher extends a live tree by one row. The tile at top is rebuilt
// as a middle segment and its old top is moved one row up. It returns false
// without touching the grid when top is not a tree top of s.TrunkType or
// the space above is occupied.
func (b *Builder) TryGrowHigher(top grid.Pos, s Settings, r Rand) bool {
	cell := b.grid.Cell(top.X, top.Y)
	if !cell.Active || cell.Type != s.TrunkType {
		return false
	}
	oldTop := b.codec.Decode(cell)
	if !oldTop.IsTop() {
		return false
	}

	if !b.envelopeClear(top.X, top.Y-1-s.TopPadding, top.Y-1, s) {
		return false
	}

	col := b.column(top.X, cell.Color, s, r)
	below := b.grid.Cell(top.X, top.Y+1)
	if below.Active && below.Type == s.TrunkType {
		if d := b.codec.Decode(below); d.Role == WithBranches {
			col.prevLeft, col.prevRight = d.Side.split()
		}
	}

	col.placeMiddle(top.Y)
	b.place(top.X, top.Y-1, oldTop, cell.Color, s.TrunkType)

	b.grid.MarkDirty(grid.Rect{MinX: top.X - 2, MinY: top.Y - 2, MaxX: top.X + 2, MaxY: top.Y + 1})
	return true
}
