package gen

import (
	"context"
	"io"
	"log/slog"
	"slices"
	"time"

	"github.com/OCharnyshevich/tile-trees/pkg/world/grid"
	"github.com/OCharnyshevich/tile-trees/pkg/world/kinds"
	"github.com/OCharnyshevich/tile-trees/pkg/world/tree"
)

// Default scan margins in cells.
const (
	DefaultBorder          = 20
	DefaultGroundClearance = 20
)

// Options tunes the area a Scanner covers.
type Options struct {
	// Border is skipped on the left and right edges.
	Border int
	// GroundClearance rows at the bottom of the grid are never scanned.
	GroundClearance int
}

func (o Options) withDefaults() Options {
	if o.Border <= 0 {
		o.Border = DefaultBorder
	}
	if o.GroundClearance <= 0 {
		o.GroundClearance = DefaultGroundClearance
	}
	return o
}

// Scanner plants trees over a whole grid and runs bulk queries on them.
type Scanner struct {
	grid     grid.Grid
	registry *kinds.Registry
	builder  *tree.Builder
	walker   *tree.Walker
	rng      tree.Rand
	opts     Options
	log      *slog.Logger
}

// NewScanner creates a Scanner drawing from r. The codec follows reg, so
// kinds must be registered before trees are decoded.
func NewScanner(g grid.Grid, reg *kinds.Registry, r tree.Rand, opts Options, log *slog.Logger) *Scanner {
	if log == nil {
		log = slog.New(slog.NewTextHandler(io.Discard, nil))
	}
	codec := reg.Codec()
	return &Scanner{
		grid:     g,
		registry: reg,
		builder:  tree.NewBuilder(g, codec),
		walker:   tree.NewWalker(g, codec, reg.IsTrunk),
		rng:      r,
		opts:     opts.withDefaults(),
		log:      log,
	}
}

type candidate struct {
	kind kinds.Kind
	base tree.Settings
}

// Generate scans every column inside the border, top to bottom, and tries
// the given kinds on each cell whose tile they accept as ground. Kinds are
// tried in random order and every candidate is tried even after one has
// planted a tree on that cell. progress, if set, receives 0, the fraction
// done after each column, and finally 1. It returns the number of trees
// planted; ctx is checked between cells.
func (s *Scanner) Generate(ctx context.Context, ks []kinds.Kind, progress func(float64)) (int, error) {
	if progress == nil {
		progress = func(float64) {}
	}
	start := time.Now()

	all := make([]candidate, 0, len(ks))
	for _, k := range ks {
		all = append(all, candidate{kind: k, base: k.Build()})
	}

	w, h := s.grid.Size()
	border := s.opts.Border
	span := float64(w - 2*border)

	planted := 0
	pool := make([]candidate, 0, len(all))

	progress(0)
	for x := border; x < w-border; x++ {
		for y := 0; y < h-s.opts.GroundClearance; y++ {
			if err := ctx.Err(); err != nil {
				return planted, err
			}

			ground := s.grid.Cell(x, y).Type
			pool = pool[:0]
			for _, c := range all {
				if y-c.base.MinHeight >= 0 && c.base.GroundTest(ground) {
					pool = append(pool, c)
				}
			}

			for len(pool) > 0 {
				i := s.rng.Next(len(pool))
				c := pool[i]
				pool = slices.Delete(pool, i, i+1)

				if s.tryGenerate(c.kind, x, y) {
					planted++
				}
			}
		}
		progress(float64(x-border) / span)
	}
	progress(1)

	s.log.Info("trees generated",
		"planted", planted,
		"kinds", len(ks),
		"elapsed", time.Since(start).Round(time.Millisecond),
	)
	return planted, nil
}

func (s *Scanner) tryGenerate(k kinds.Kind, x, y int) bool {
	if k.GenerateChance > 1 && !s.rng.OneIn(k.GenerateChance) {
		return false
	}
	settings := s.registry.Resolve(k, grid.Pos{X: x, Y: y})
	return s.builder.Grow(x, y, settings, s.rng)
}

// Clear empties every cell holding the trunk of one of ks and returns how
// many cells it reset.
func (s *Scanner) Clear(ks []kinds.Kind) int {
	types := make(map[uint16]struct{}, len(ks))
	for _, k := range ks {
		types[k.TrunkType] = struct{}{}
	}

	w, h := s.grid.Size()
	cleared := 0
	for y := range h {
		for x := range w {
			c := s.grid.Cell(x, y)
			if !c.Active {
				continue
			}
			if _, ok := types[c.Type]; !ok {
				continue
			}
			s.grid.SetCell(x, y, grid.Cell{})
			cleared++
		}
	}
	if cleared > 0 {
		s.grid.MarkDirty(grid.Rect{MinX: 0, MinY: 0, MaxX: w - 1, MaxY: h - 1})
	}
	s.log.Info("trees cleared", "kinds", len(ks), "cells", cleared)
	return cleared
}

// Count returns the number of separate trees of kind k in the grid.
func (s *Scanner) Count(k kinds.Kind) int {
	w, h := s.grid.Size()
	claimed := make(map[grid.Pos]struct{})
	trees := 0

	for y := range h {
		for x := range w {
			p := grid.Pos{X: x, Y: y}
			if _, ok := claimed[p]; ok {
				continue
			}
			c := s.grid.Cell(x, y)
			if !c.Active || c.Type != k.TrunkType {
				continue
			}

			trees++
			for t := range s.walker.Walk(p) {
				claimed[t.Pos] = struct{}{}
			}
		}
	}
	return trees
}
