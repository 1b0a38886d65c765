package tree

import "github.com/OCharnyshevich/tile-trees/pkg/world/grid"

// GrowMoreFunc decides whether a live tree may grow one tile higher.
type GrowMoreFunc func(top grid.Pos, s Settings, stats Stats) bool

// Settings controls one tree's generation. Chance fields are "1 in N"
// denominators. A Settings value is built fresh per call and never shared
// mutably.
type Settings struct {
	TrunkType   uint16
	SaplingType uint16

	GroundTest  func(tileType uint16) bool
	WallTest    func(wallType uint16) bool
	CanGrowMore GrowMoreFunc

	MinHeight  int
	MaxHeight  int // exclusive
	TopPadding int

	RootChance           int
	BranchChance         int
	NotLeafyBranchChance int
	BrokenTopChance      int
	LessBarkChance       int
	MoreBarkChance       int
}

// CommonTree returns the stock forest tree settings.
func CommonTree(trunkType uint16) Settings {
	return Settings{
		TrunkType:            trunkType,
		MinHeight:            5,
		MaxHeight:            17,
		TopPadding:           4,
		RootChance:           3,
		BranchChance:         4,
		NotLeafyBranchChance: 3,
		BrokenTopChance:      13,
		LessBarkChance:       7,
		MoreBarkChance:       7,
	}
}

func (s Settings) validGround(t uint16) bool {
	return s.GroundTest != nil && s.GroundTest(t)
}

func (s Settings) validWall(w uint16) bool {
	if s.WallTest == nil {
		return w == 0
	}
	return s.WallTest(w)
}

// GrowsMore applies the settings' growth policy, falling back to
// DefaultCanGrowMore.
func (s Settings) GrowsMore(top grid.Pos, stats Stats) bool {
	if s.CanGrowMore != nil {
		return s.CanGrowMore(top, s, stats)
	}
	return DefaultCanGrowMore(top, s, stats)
}

// DefaultCanGrowMore scales the stock limits by MaxHeight/17.
func DefaultCanGrowMore(_ grid.Pos, s Settings, stats Stats) bool {
	k := float64(s.MaxHeight) / 17
	return float64(stats.LeafyBranches) < 3*k &&
		float64(stats.TotalBranches) < 5*k &&
		float64(stats.TotalTiles) < 20*k
}
