package kinds

import (
	"errors"
	"testing"

	"github.com/OCharnyshevich/tile-trees/pkg/world/grid"
	"github.com/OCharnyshevich/tile-trees/pkg/world/tree"
)

func oak() Kind {
	return Kind{
		Name:        "oak",
		TrunkType:   600,
		SaplingType: 601,
		Settings:    tree.CommonTree(600),
		GrowChance:  5,
		ValidGround: []uint16{2, 109},
	}
}

func TestRegistryRegister(t *testing.T) {
	r := NewRegistry(nil, 5)
	if err := r.Register(oak()); err != nil {
		t.Fatalf("Register: %v", err)
	}

	if _, ok := r.ByName("oak"); !ok {
		t.Error("ByName(oak) not found")
	}
	if k, ok := r.BySapling(601); !ok || k.Name != "oak" {
		t.Errorf("BySapling(601) = %v, %v", k.Name, ok)
	}
	if _, ok := r.BySapling(0); ok {
		t.Error("BySapling(0) matched")
	}

	dup := oak()
	if err := r.Register(dup); !errors.Is(err, ErrDuplicateKind) {
		t.Errorf("duplicate name: err = %v, want ErrDuplicateKind", err)
	}
	dup.Name = "birch"
	if err := r.Register(dup); !errors.Is(err, ErrDuplicateKind) {
		t.Errorf("duplicate trunk: err = %v, want ErrDuplicateKind", err)
	}

	bad := oak()
	bad.Name, bad.TrunkType = "bad", 700
	bad.Settings.MaxHeight = bad.Settings.MinHeight
	if err := r.Register(bad); err == nil {
		t.Error("Register accepted maxHeight == minHeight")
	}

	if got := len(r.Kinds()); got != 1 {
		t.Errorf("len(Kinds()) = %d, want 1", got)
	}
}

func TestRegistryUnregister(t *testing.T) {
	r := NewRegistry(nil)
	if err := r.Register(oak()); err != nil {
		t.Fatal(err)
	}
	if err := r.Unregister("oak"); err != nil {
		t.Fatalf("Unregister: %v", err)
	}
	if err := r.Unregister("oak"); !errors.Is(err, ErrUnknownKind) {
		t.Errorf("second Unregister err = %v, want ErrUnknownKind", err)
	}
	if r.IsTrunk(600) {
		t.Error("unregistered trunk still counts as a trunk")
	}
}

func TestRegistryTrunkTypes(t *testing.T) {
	r := NewRegistry(nil, 5)
	if err := r.Register(oak()); err != nil {
		t.Fatal(err)
	}

	tests := []struct {
		tileType      uint16
		trunk, custom bool
		pitch         int
	}{
		{600, true, true, tree.PitchCustom},
		{5, true, false, tree.PitchDefault},
		{601, false, false, tree.PitchDefault},
		{2, false, false, tree.PitchDefault},
	}
	codec := r.Codec()
	for _, tt := range tests {
		if got := r.IsTrunk(tt.tileType); got != tt.trunk {
			t.Errorf("IsTrunk(%d) = %v, want %v", tt.tileType, got, tt.trunk)
		}
		if got := r.IsCustom(tt.tileType); got != tt.custom {
			t.Errorf("IsCustom(%d) = %v, want %v", tt.tileType, got, tt.custom)
		}
		if got := codec.Pitch(tt.tileType); got != tt.pitch {
			t.Errorf("Pitch(%d) = %d, want %d", tt.tileType, got, tt.pitch)
		}
	}
}

func TestKindBuild(t *testing.T) {
	k := oak()
	s := k.Build()

	if s.TrunkType != 600 || s.SaplingType != 601 {
		t.Errorf("types = %d/%d", s.TrunkType, s.SaplingType)
	}
	if !s.GroundTest(109) || s.GroundTest(1) {
		t.Error("ground test does not follow ValidGround")
	}
	if !s.WallTest(0) || s.WallTest(4) {
		t.Error("default wall test should accept only no wall")
	}

	k.ValidGround[0] = 1
	if s.GroundTest(1) {
		t.Error("built settings share the kind's ground slice")
	}

	k.WallTest = func(uint16) bool { return true }
	if !k.Build().WallTest(4) {
		t.Error("WallTest hook ignored")
	}
}

func TestRegistrySettingsAndHooks(t *testing.T) {
	r := NewRegistry(nil)
	k := oak()
	k.CanGrowMore = func(grid.Pos, tree.Settings, tree.Stats) bool { return true }
	if err := r.Register(k); err != nil {
		t.Fatal(err)
	}

	var seen []uint16
	r.AddGlobal(Global{
		Name: "taller",
		ModifySettings: func(_ grid.Pos, trunk uint16, s *tree.Settings) {
			seen = append(seen, trunk)
			s.MaxHeight += 10
		},
	})

	pos := grid.Pos{X: 3, Y: 4}
	got, s, ok := r.Settings(pos, 601)
	if !ok || got.Name != "oak" {
		t.Fatalf("Settings(sapling) = %v, %v", got.Name, ok)
	}
	if s.MaxHeight != 27 {
		t.Errorf("MaxHeight = %d, want 27", s.MaxHeight)
	}
	if len(seen) != 1 || seen[0] != 600 {
		t.Errorf("hook saw %v", seen)
	}
	if _, _, ok := r.Settings(pos, 2); ok {
		t.Error("Settings resolved a non-tree tile")
	}

	big := tree.Stats{TotalTiles: 1000}
	if !r.CanGrowMore(pos, s, big) {
		t.Error("kind hook should allow growth")
	}

	r.AddGlobal(Global{
		Name:        "veto",
		CanGrowMore: func(grid.Pos, tree.Settings, tree.Stats) bool { return false },
	})
	if r.CanGrowMore(pos, s, tree.Stats{}) {
		t.Error("global veto ignored")
	}
}

func TestRegistryDefaultGrowPolicy(t *testing.T) {
	r := NewRegistry(nil)
	if err := r.Register(oak()); err != nil {
		t.Fatal(err)
	}
	_, s, _ := r.Settings(grid.Pos{}, 600)

	if !r.CanGrowMore(grid.Pos{}, s, tree.Stats{TotalTiles: 10}) {
		t.Error("small tree should grow")
	}
	if r.CanGrowMore(grid.Pos{}, s, tree.Stats{TotalTiles: 20}) {
		t.Error("tree at the tile limit should not grow")
	}
}
