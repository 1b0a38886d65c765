package gen

import (
	"github.com/OCharnyshevich/tile-trees/pkg/world/grid"
	"github.com/OCharnyshevich/tile-trees/pkg/world/kinds"
	"github.com/OCharnyshevich/tile-trees/pkg/world/tree"
)

// Ticker applies live growth to individual cells, the way a host's random
// tile updates reach them.
type Ticker struct {
	grid     grid.Grid
	registry *kinds.Registry
	codec    tree.Codec
	builder  *tree.Builder
	walker   *tree.Walker
	rng      tree.Rand
}

// NewTicker creates a Ticker sharing r with the rest of generation.
func NewTicker(g grid.Grid, reg *kinds.Registry, r tree.Rand) *Ticker {
	codec := reg.Codec()
	return &Ticker{
		grid:     g,
		registry: reg,
		codec:    codec,
		builder:  tree.NewBuilder(g, codec),
		walker:   tree.NewWalker(g, codec, reg.IsTrunk),
		rng:      r,
	}
}

// RandomUpdate runs one growth tick at pos. A leafy top of a registered
// kind grows one row when the registry's policy allows it. A sapling
// grows into a full tree with its kind's 1-in-GrowChance odds. It reports
// whether the grid changed.
func (t *Ticker) RandomUpdate(pos grid.Pos) bool {
	cell := t.grid.Cell(pos.X, pos.Y)
	if !cell.Active {
		return false
	}

	if k, ok := t.registry.ByTrunk(cell.Type); ok {
		if t.codec.Decode(cell).Role != tree.LeafyTop {
			return false
		}
		s := t.registry.Resolve(k, pos)
		if !t.registry.CanGrowMore(pos, s, t.walker.Stats(pos)) {
			return false
		}
		return t.builder.TryGrowHigher(pos, s, t.rng)
	}

	if k, ok := t.registry.BySapling(cell.Type); ok {
		if !t.rng.OneIn(k.GrowChance) {
			return false
		}
		return t.builder.Grow(pos.X, pos.Y, t.registry.Resolve(k, pos), t.rng)
	}
	return false
}

// Tick picks n random cells and updates each. It returns how many grew.
func (t *Ticker) Tick(n int) int {
	w, h := t.grid.Size()
	if w <= 0 || h <= 0 {
		return 0
	}

	grown := 0
	for range n {
		pos := grid.Pos{X: t.rng.Next(w), Y: t.rng.Next(h)}
		if t.RandomUpdate(pos) {
			grown++
		}
	}
	return grown
}
