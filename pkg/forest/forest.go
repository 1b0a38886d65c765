// Package forest wires tree kinds, generation, live growth and snapshots
// around one host grid.
package forest

import (
	"context"
	"errors"
	"fmt"
	"io"
	"log/slog"

	"github.com/OCharnyshevich/tile-trees/internal/storage"
	"github.com/OCharnyshevich/tile-trees/pkg/config"
	"github.com/OCharnyshevich/tile-trees/pkg/world/gen"
	"github.com/OCharnyshevich/tile-trees/pkg/world/grid"
	"github.com/OCharnyshevich/tile-trees/pkg/world/kinds"
	"github.com/OCharnyshevich/tile-trees/pkg/world/rng"
	"github.com/OCharnyshevich/tile-trees/pkg/world/tree"
)

// ErrNoSnapshots is returned by Save and Restore when the grid cannot be
// snapshotted.
var ErrNoSnapshots = errors.New("grid does not support snapshots")

// Forest owns the tree engine for one grid.
type Forest struct {
	cfg      *config.Config
	log      *slog.Logger
	grid     grid.Grid
	registry *kinds.Registry
	scanner  *gen.Scanner
	ticker   *gen.Ticker
	walker   *tree.Walker
}

// New creates a Forest over g. A nil cfg uses config.Default.
func New(cfg *config.Config, g grid.Grid, log *slog.Logger) *Forest {
	if cfg == nil {
		cfg = config.Default()
	}
	if log == nil {
		log = slog.New(slog.NewTextHandler(io.Discard, nil))
	}

	reg := kinds.NewRegistry(log, cfg.VanillaTrunks...)
	r := rng.New(cfg.Seed)
	opts := gen.Options{Border: cfg.Border, GroundClearance: cfg.GroundClearance}

	return &Forest{
		cfg:      cfg,
		log:      log,
		grid:     g,
		registry: reg,
		scanner:  gen.NewScanner(g, reg, r, opts, log),
		ticker:   gen.NewTicker(g, reg, r),
		walker:   tree.NewWalker(g, reg.Codec(), reg.IsTrunk),
	}
}

// Registry exposes the kind registry, e.g. for global hooks.
func (f *Forest) Registry() *kinds.Registry { return f.registry }

// Register adds kinds, stopping at the first one rejected.
func (f *Forest) Register(ks ...kinds.Kind) error {
	for _, k := range ks {
		if err := f.registry.Register(k); err != nil {
			return err
		}
	}
	return nil
}

// LoadKinds fetches the configured definition source into KindsDir and
// registers every kind in it. It does nothing when no source is set.
func (f *Forest) LoadKinds(ctx context.Context) (int, error) {
	if f.cfg.Kinds == "" {
		return 0, nil
	}

	path, err := kinds.Fetch(ctx, f.cfg.Kinds, f.cfg.KindsDir)
	if err != nil {
		return 0, err
	}
	ks, err := kinds.LoadFile(path)
	if err != nil {
		return 0, err
	}
	if err := f.Register(ks...); err != nil {
		return 0, err
	}

	f.log.Info("tree kinds loaded", "source", f.cfg.Kinds, "count", len(ks))
	return len(ks), nil
}

// Generate plants every registered kind across the grid.
func (f *Forest) Generate(ctx context.Context, progress func(float64)) (int, error) {
	ks := f.registry.Kinds()
	if len(ks) == 0 {
		return 0, nil
	}
	return f.scanner.Generate(ctx, ks, progress)
}

// Tick runs n random growth updates and returns how many grew.
func (f *Forest) Tick(n int) int {
	return f.ticker.Tick(n)
}

// Update runs one growth update at pos.
func (f *Forest) Update(pos grid.Pos) bool {
	return f.ticker.RandomUpdate(pos)
}

// Stats describes the tree containing pos.
func (f *Forest) Stats(pos grid.Pos) tree.Stats {
	return f.walker.Stats(pos)
}

// Count returns how many trees of the named kind stand in the grid.
func (f *Forest) Count(name string) (int, error) {
	k, ok := f.registry.ByName(name)
	if !ok {
		return 0, fmt.Errorf("count %q: %w", name, kinds.ErrUnknownKind)
	}
	return f.scanner.Count(k), nil
}

// Clear removes every tree of the named kinds, or of all registered kinds
// when no name is given. It returns the number of cells reset.
func (f *Forest) Clear(names ...string) (int, error) {
	if len(names) == 0 {
		return f.scanner.Clear(f.registry.Kinds()), nil
	}

	ks := make([]kinds.Kind, 0, len(names))
	for _, name := range names {
		k, ok := f.registry.ByName(name)
		if !ok {
			return 0, fmt.Errorf("clear %q: %w", name, kinds.ErrUnknownKind)
		}
		ks = append(ks, k)
	}
	return f.scanner.Clear(ks), nil
}

// Save writes the grid to the snapshot called name in SnapshotDir.
func (f *Forest) Save(name string) error {
	m, st, err := f.snapshots()
	if err != nil {
		return err
	}
	return st.SaveGrid(name, m)
}

// Restore replaces the grid with the snapshot called name.
func (f *Forest) Restore(name string) error {
	m, st, err := f.snapshots()
	if err != nil {
		return err
	}
	if err := st.LoadGrid(name, m); err != nil {
		return err
	}
	w, h := m.Size()
	m.MarkDirty(grid.Rect{MinX: 0, MinY: 0, MaxX: w - 1, MaxY: h - 1})
	return nil
}

func (f *Forest) snapshots() (*grid.Mem, *storage.Storage, error) {
	m, ok := f.grid.(*grid.Mem)
	if !ok {
		return nil, nil, ErrNoSnapshots
	}
	st, err := storage.New(f.cfg.SnapshotDir, f.log)
	if err != nil {
		return nil, nil, err
	}
	return m, st, nil
}
