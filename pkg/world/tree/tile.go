package tree

import "fmt"

// Side is the side of the trunk column a tile belongs to or carries
// appendages on. Center on a WithBranches/WithRoots tile means both sides.
type Side uint8

const (
	Left Side = iota
	Center
	Right
)

func (s Side) String() string {
	switch s {
	case Left:
		return "Left"
	case Right:
		return "Right"
	default:
		return "Center"
	}
}

// Opposite returns the mirrored side. Center maps to itself.
func (s Side) Opposite() Side {
	switch s {
	case Left:
		return Right
	case Right:
		return Left
	default:
		return Center
	}
}

// sideOf folds two appendage flags into a Side.
func sideOf(left, right bool) Side {
	switch {
	case left && !right:
		return Left
	case right && !left:
		return Right
	default:
		return Center
	}
}

// split expands a Side into left/right flags; Center sets both.
func (s Side) split() (left, right bool) {
	switch s {
	case Left:
		return true, false
	case Right:
		return false, true
	default:
		return true, true
	}
}

// Role is the structural meaning of a tree tile.
type Role uint8

const (
	None Role = iota
	Normal
	LessBark
	MoreBark
	WithBranches
	Branch
	LeafyBranch
	WithRoots
	Root
	Top
	TopWithBranches
	TopWithRoots
	BrokenTop
	LeafyTop
)

var roleNames = [...]string{
	None:            "None",
	Normal:          "Normal",
	LessBark:        "LessBark",
	MoreBark:        "MoreBark",
	WithBranches:    "WithBranches",
	Branch:          "Branch",
	LeafyBranch:     "LeafyBranch",
	WithRoots:       "WithRoots",
	Root:            "Root",
	Top:             "Top",
	TopWithBranches: "TopWithBranches",
	TopWithRoots:    "TopWithRoots",
	BrokenTop:       "BrokenTop",
	LeafyTop:        "LeafyTop",
}

func (r Role) String() string {
	if int(r) < len(roleNames) {
		return roleNames[r]
	}
	return fmt.Sprintf("Role(%d)", r)
}

// Descriptor is the semantic view of one tree tile. It is always derived
// from, or written into, a grid cell's frame coordinates.
type Descriptor struct {
	Style int // cosmetic variant, 0..2
	Side  Side
	Role  Role
}

// IsLeafy reports whether the tile carries foliage.
func (d Descriptor) IsLeafy() bool {
	return d.Role == LeafyBranch || d.Role == LeafyTop
}

// IsWoody is the complement of IsLeafy.
func (d Descriptor) IsWoody() bool { return !d.IsLeafy() }

// IsCenter reports whether the tile sits in the trunk column rather than
// hanging off it.
func (d Descriptor) IsCenter() bool {
	return d.Role != Branch && d.Role != LeafyBranch && d.Role != Root
}

func (d Descriptor) IsTop() bool {
	switch d.Role {
	case Top, TopWithBranches, TopWithRoots, BrokenTop, LeafyTop:
		return true
	}
	return false
}

func (d Descriptor) HasBranches() bool {
	return d.Role == WithBranches || d.Role == TopWithBranches
}

func (d Descriptor) HasRoots() bool {
	return d.Role == WithRoots || d.Role == TopWithRoots
}

func (d Descriptor) String() string {
	return fmt.Sprintf("%s %s (%d)", d.Side, d.Role, d.Style)
}
