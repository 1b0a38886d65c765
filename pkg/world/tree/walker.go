package tree

import (
	"iter"

	"github.com/OCharnyshevich/tile-trees/pkg/world/grid"
)

// Placed is a decoded tree tile at its grid position.
type Placed struct {
	Pos  grid.Pos
	Tile Descriptor
}

// Walker follows the structural links between tree tiles.
type Walker struct {
	grid    grid.Grid
	codec   Codec
	isTrunk func(tileType uint16) bool
}

// NewWalker creates a Walker. isTrunk bounds the walk: cells whose type it
// rejects are never visited.
func NewWalker(g grid.Grid, c Codec, isTrunk func(tileType uint16) bool) *Walker {
	return &Walker{grid: g, codec: c, isTrunk: isTrunk}
}

// Walk returns the tiles reachable from start, breadth first. Nothing is
// read until the sequence is ranged over, and every range starts a fresh
// walk against the grid's current contents.
func (w *Walker) Walk(start grid.Pos) iter.Seq[Placed] {
	return func(yield func(Placed) bool) {
		visited := make(map[grid.Pos]struct{})
		queue := []grid.Pos{start}

		for len(queue) > 0 {
			p := queue[0]
			queue = queue[1:]

			if _, seen := visited[p]; seen {
				continue
			}
			visited[p] = struct{}{}

			cell := w.grid.Cell(p.X, p.Y)
			if !cell.Active || w.isTrunk == nil || !w.isTrunk(cell.Type) {
				continue
			}

			d := w.codec.Decode(cell)
			if !yield(Placed{Pos: p, Tile: d}) {
				return
			}

			up, down, left, right := links(d)
			if up {
				queue = append(queue, grid.Pos{X: p.X, Y: p.Y - 1})
			}
			if down {
				queue = append(queue, grid.Pos{X: p.X, Y: p.Y + 1})
			}
			if left {
				queue = append(queue, grid.Pos{X: p.X - 1, Y: p.Y})
			}
			if right {
				queue = append(queue, grid.Pos{X: p.X + 1, Y: p.Y})
			}
		}
	}
}

// links lists the directions a tile connects to.
func links(d Descriptor) (up, down, left, right bool) {
	switch d.Role {
	case WithBranches, WithRoots:
		left, right = d.Side.split()
		return true, true, left, right
	case Branch, LeafyBranch, Root:
		// Appendages only lead back to the trunk.
		l, r := d.Side.split()
		return false, false, r, l
	case BrokenTop, LeafyTop:
		return false, true, true, true
	default:
		return true, true, true, true
	}
}

// Stats walks the tree containing start and summarizes it.
func (w *Walker) Stats(start grid.Pos) Stats {
	var (
		s     Stats
		found bool
	)

	for t := range w.Walk(start) {
		s.TotalTiles++

		switch t.Tile.Role {
		case Branch:
			s.TotalBranches++
		case LeafyBranch:
			s.TotalBranches++
			s.LeafyBranches++
		case Root:
			if t.Tile.Side == Left {
				s.LeftRoot = true
			} else {
				s.RightRoot = true
			}
		case BrokenTop:
			s.HasTop = true
			s.BrokenTop = true
		case LeafyTop:
			s.HasTop = true
		}

		if !t.Tile.IsCenter() {
			continue
		}
		if !found || t.Pos.Y < s.Top.Y {
			s.Top = t.Pos
		}
		if !found || t.Pos.Y > s.Bottom.Y {
			s.Bottom = t.Pos
		}
		found = true
	}

	if found {
		s.GroundType = w.grid.Cell(s.Bottom.X, s.Bottom.Y+1).Type
	}
	return s
}
