package kinds

import (
	"errors"
	"fmt"
	"slices"

	"github.com/OCharnyshevich/tile-trees/pkg/world/grid"
	"github.com/OCharnyshevich/tile-trees/pkg/world/tree"
)

// Kind is the capability record of one tree kind: its tile types, its
// settings template and the hooks that override the stock behavior.
type Kind struct {
	Name        string
	TrunkType   uint16
	SaplingType uint16

	// Settings is the template every resolved tree.Settings starts from.
	// Its tile types and predicates are filled in from the Kind.
	Settings tree.Settings

	// GrowChance is the 1-in-N chance a sapling grows on a random tick.
	GrowChance int
	// GenerateChance gates world generation attempts; 0 and 1 always try.
	GenerateChance int

	ValidGround []uint16
	ValidWalls  []uint16 // nil means {0}, no wall

	GroundTest  func(tileType uint16) bool
	WallTest    func(wallType uint16) bool
	CanGrowMore tree.GrowMoreFunc
}

// Global hooks apply to every registered kind.
type Global struct {
	Name string

	// ModifySettings may adjust the settings resolved for a tree at pos.
	ModifySettings func(pos grid.Pos, trunkType uint16, s *tree.Settings)
	// CanGrowMore can veto live growth. Every global must allow it.
	CanGrowMore tree.GrowMoreFunc
}

// Build returns fresh settings for the kind. The template is copied, so
// callers may mutate the result freely.
func (k Kind) Build() tree.Settings {
	s := k.Settings
	s.TrunkType = k.TrunkType
	s.SaplingType = k.SaplingType
	s.GroundTest = k.groundTest()
	s.WallTest = k.wallTest()
	if k.CanGrowMore != nil {
		s.CanGrowMore = k.CanGrowMore
	}
	return s
}

func (k Kind) groundTest() func(uint16) bool {
	if k.GroundTest != nil {
		return k.GroundTest
	}
	ground := slices.Clone(k.ValidGround)
	return func(t uint16) bool { return slices.Contains(ground, t) }
}

func (k Kind) wallTest() func(uint16) bool {
	if k.WallTest != nil {
		return k.WallTest
	}
	walls := k.ValidWalls
	if walls == nil {
		walls = []uint16{0}
	}
	walls = slices.Clone(walls)
	return func(w uint16) bool { return slices.Contains(walls, w) }
}

// Validate checks the kind is usable for generation.
func (k Kind) Validate() error {
	var errs []error
	if k.Name == "" {
		errs = append(errs, errors.New("name is required"))
	}
	if k.TrunkType == k.SaplingType && k.SaplingType != 0 {
		errs = append(errs, errors.New("trunk and sapling types must differ"))
	}

	s := k.Settings
	if s.MinHeight < 1 {
		errs = append(errs, fmt.Errorf("minHeight %d must be at least 1", s.MinHeight))
	}
	if s.MaxHeight <= s.MinHeight {
		errs = append(errs, fmt.Errorf("maxHeight %d must exceed minHeight %d", s.MaxHeight, s.MinHeight))
	}
	if s.TopPadding < 0 {
		errs = append(errs, fmt.Errorf("topPadding %d must not be negative", s.TopPadding))
	}
	for _, c := range []struct {
		name string
		v    int
	}{
		{"rootChance", s.RootChance},
		{"branchChance", s.BranchChance},
		{"notLeafyBranchChance", s.NotLeafyBranchChance},
		{"brokenTopChance", s.BrokenTopChance},
		{"lessBarkChance", s.LessBarkChance},
		{"moreBarkChance", s.MoreBarkChance},
	} {
		if c.v < 1 {
			errs = append(errs, fmt.Errorf("%s %d must be at least 1", c.name, c.v))
		}
	}
	if k.GroundTest == nil && len(k.ValidGround) == 0 {
		errs = append(errs, errors.New("validGround or a ground test is required"))
	}

	if err := errors.Join(errs...); err != nil {
		return fmt.Errorf("kind %q: %w", k.Name, err)
	}
	return nil
}
