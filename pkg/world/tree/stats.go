package tree

import (
	"fmt"
	"strings"

	"github.com/OCharnyshevich/tile-trees/pkg/world/grid"
)

// Stats summarizes one connected tree.
type Stats struct {
	TotalTiles    int
	TotalBranches int
	LeafyBranches int

	HasTop    bool
	BrokenTop bool
	LeftRoot  bool
	RightRoot bool

	// Top and Bottom are the highest and lowest trunk-column tiles.
	Top    grid.Pos
	Bottom grid.Pos

	// GroundType is the tile type directly below Bottom.
	GroundType uint16
}

// Height is the number of trunk-column rows, or 0 for an empty tree.
func (s Stats) Height() int {
	if s.TotalTiles == 0 {
		return 0
	}
	return s.Bottom.Y - s.Top.Y + 1
}

func (s Stats) String() string {
	var b strings.Builder
	fmt.Fprintf(&b, "T:%d B:%d BL:%d ", s.TotalTiles, s.TotalBranches, s.LeafyBranches)
	switch {
	case s.BrokenTop:
		b.WriteString("TB ")
	case s.HasTop:
		b.WriteString("TL ")
	}
	if s.LeftRoot {
		b.WriteString("Rl ")
	}
	if s.RightRoot {
		b.WriteString("Rr ")
	}
	fmt.Fprintf(&b, "X:%d Y:%d-%d G:%d", s.Top.X, s.Top.Y, s.Bottom.Y, s.GroundType)
	return b.String()
}
