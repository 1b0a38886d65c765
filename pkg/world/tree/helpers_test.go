package tree

import (
	"testing"

	"github.com/OCharnyshevich/tile-trees/pkg/world/grid"
)

const (
	dirt        = 2
	stone       = 1
	groundColor = 3
)

// scriptRand replays queued answers. Empty queues give OneIn=false,
// Next=0 and Range=lo.
type scriptRand struct {
	ones   []bool
	nexts  []int
	ranges []int
}

func (r *scriptRand) OneIn(int) bool {
	if len(r.ones) == 0 {
		return false
	}
	v := r.ones[0]
	r.ones = r.ones[1:]
	return v
}

func (r *scriptRand) Next(int) int {
	if len(r.nexts) == 0 {
		return 0
	}
	v := r.nexts[0]
	r.nexts = r.nexts[1:]
	return v
}

func (r *scriptRand) Range(lo, _ int) int {
	if len(r.ranges) == 0 {
		return lo
	}
	v := r.ranges[0]
	r.ranges = r.ranges[1:]
	return v
}

// field returns a grid with a dirt strip at y=200 for x in 90..110.
func field() *grid.Mem {
	g := grid.NewMem(128, 210)
	for x := 90; x <= 110; x++ {
		g.SetCell(x, 200, grid.Cell{Type: dirt, Active: true, Color: groundColor})
	}
	return g
}

func testSettings() Settings {
	s := CommonTree(customTrunk)
	s.GroundTest = func(t uint16) bool { return t == dirt }
	return s
}

func isTestTrunk(t uint16) bool { return t == customTrunk }

func tileAt(t *testing.T, g grid.Grid, x, y int) Descriptor {
	t.Helper()
	c := g.Cell(x, y)
	if !c.Active || c.Type != customTrunk {
		t.Fatalf("(%d,%d) is not a trunk tile: %+v", x, y, c)
	}
	return testCodec().Decode(c)
}
