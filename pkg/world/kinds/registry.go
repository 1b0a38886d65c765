package kinds

import (
	"errors"
	"fmt"
	"io"
	"log/slog"
	"sync"

	"github.com/OCharnyshevich/tile-trees/pkg/world/grid"
	"github.com/OCharnyshevich/tile-trees/pkg/world/tree"
)

var (
	ErrUnknownKind   = errors.New("unknown tree kind")
	ErrDuplicateKind = errors.New("duplicate tree kind")
)

// Registry maps tile types to tree kinds and holds the global hooks.
// It is safe for concurrent use.
type Registry struct {
	mu      sync.RWMutex
	kinds   []Kind
	globals []Global
	vanilla map[uint16]struct{}
	log     *slog.Logger
}

// NewRegistry creates an empty registry. vanillaTrunks are tile types
// that count as tree trunks without a registered kind; they use the
// default frame pitch.
func NewRegistry(log *slog.Logger, vanillaTrunks ...uint16) *Registry {
	if log == nil {
		log = slog.New(slog.NewTextHandler(io.Discard, nil))
	}
	r := &Registry{
		vanilla: make(map[uint16]struct{}, len(vanillaTrunks)),
		log:     log,
	}
	for _, t := range vanillaTrunks {
		r.vanilla[t] = struct{}{}
	}
	return r
}

// Register adds k. Names and trunk types must be unique.
func (r *Registry) Register(k Kind) error {
	if err := k.Validate(); err != nil {
		return fmt.Errorf("register: %w", err)
	}

	r.mu.Lock()
	defer r.mu.Unlock()

	for _, have := range r.kinds {
		switch {
		case have.Name == k.Name:
			return fmt.Errorf("register %q: %w", k.Name, ErrDuplicateKind)
		case have.TrunkType == k.TrunkType:
			return fmt.Errorf("register %q: trunk type %d already used by %q: %w", k.Name, k.TrunkType, have.Name, ErrDuplicateKind)
		}
	}
	r.kinds = append(r.kinds, k)
	r.log.Info("tree kind registered", "name", k.Name, "trunk", k.TrunkType, "sapling", k.SaplingType)
	return nil
}

// Unregister removes the kind called name.
func (r *Registry) Unregister(name string) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	for i, k := range r.kinds {
		if k.Name == name {
			r.kinds = append(r.kinds[:i], r.kinds[i+1:]...)
			r.log.Info("tree kind unregistered", "name", name)
			return nil
		}
	}
	return fmt.Errorf("unregister %q: %w", name, ErrUnknownKind)
}

// AddGlobal installs hooks applied to every kind, in insertion order.
func (r *Registry) AddGlobal(g Global) {
	r.mu.Lock()
	r.globals = append(r.globals, g)
	r.mu.Unlock()
}

func (r *Registry) find(match func(Kind) bool) (Kind, bool) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	for _, k := range r.kinds {
		if match(k) {
			return k, true
		}
	}
	return Kind{}, false
}

func (r *Registry) ByName(name string) (Kind, bool) {
	return r.find(func(k Kind) bool { return k.Name == name })
}

func (r *Registry) ByTrunk(tileType uint16) (Kind, bool) {
	return r.find(func(k Kind) bool { return k.TrunkType == tileType })
}

func (r *Registry) BySapling(tileType uint16) (Kind, bool) {
	if tileType == 0 {
		return Kind{}, false
	}
	return r.find(func(k Kind) bool { return k.SaplingType == tileType })
}

// Kinds returns the registered kinds in registration order.
func (r *Registry) Kinds() []Kind {
	r.mu.RLock()
	defer r.mu.RUnlock()
	out := make([]Kind, len(r.kinds))
	copy(out, r.kinds)
	return out
}

// IsCustom reports whether tileType is the trunk of a registered kind.
func (r *Registry) IsCustom(tileType uint16) bool {
	_, ok := r.ByTrunk(tileType)
	return ok
}

// IsTrunk reports whether tileType is any tree trunk, registered or vanilla.
func (r *Registry) IsTrunk(tileType uint16) bool {
	if _, ok := r.vanilla[tileType]; ok {
		return true
	}
	return r.IsCustom(tileType)
}

// Codec returns a codec whose pitch follows the registry.
func (r *Registry) Codec() tree.Codec {
	return tree.NewCodec(r.IsCustom)
}

// Resolve builds settings for k at pos and runs the global
// ModifySettings hooks over them.
func (r *Registry) Resolve(k Kind, pos grid.Pos) tree.Settings {
	s := k.Build()

	r.mu.RLock()
	globals := r.globals
	r.mu.RUnlock()

	for _, g := range globals {
		if g.ModifySettings != nil {
			g.ModifySettings(pos, k.TrunkType, &s)
		}
	}
	return s
}

// Settings resolves the kind owning a trunk or sapling tile of tileType at
// pos. ok is false when no registered kind uses that tile type.
func (r *Registry) Settings(pos grid.Pos, tileType uint16) (Kind, tree.Settings, bool) {
	k, ok := r.ByTrunk(tileType)
	if !ok {
		k, ok = r.BySapling(tileType)
	}
	if !ok {
		return Kind{}, tree.Settings{}, false
	}
	return k, r.Resolve(k, pos), true
}

// CanGrowMore asks every global hook, then the tree's own policy.
func (r *Registry) CanGrowMore(top grid.Pos, s tree.Settings, stats tree.Stats) bool {
	r.mu.RLock()
	globals := r.globals
	r.mu.RUnlock()

	for _, g := range globals {
		if g.CanGrowMore != nil && !g.CanGrowMore(top, s, stats) {
			return false
		}
	}
	return s.GrowsMore(top, stats)
}
