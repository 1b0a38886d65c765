package tree

import (
	"testing"

	"github.com/OCharnyshevich/tile-trees/pkg/world/grid"
)

const customTrunk = 600

func testCodec() Codec {
	return NewCodec(func(t uint16) bool { return t == customTrunk })
}

func TestCodecRoundTrip(t *testing.T) {
	c := testCodec()

	for _, tileType := range []uint16{customTrunk, 5} {
		for _, sr := range frameTable {
			for style := 0; style < 3; style++ {
				d := Descriptor{Style: style, Side: sr.side, Role: sr.role}
				cell := grid.Cell{Type: tileType, Color: 7}
				c.Encode(d, &cell)

				if got := c.Decode(cell); got != d {
					t.Errorf("type %d: Decode(Encode(%v)) = %v", tileType, d, got)
				}
				if cell.Type != tileType || cell.Color != 7 {
					t.Errorf("Encode touched type/color: %+v", cell)
				}
			}
		}
	}
}

func TestCodecPitch(t *testing.T) {
	c := testCodec()
	if got := c.Pitch(customTrunk); got != PitchCustom {
		t.Errorf("Pitch(custom) = %d, want %d", got, PitchCustom)
	}
	if got := c.Pitch(5); got != PitchDefault {
		t.Errorf("Pitch(5) = %d, want %d", got, PitchDefault)
	}
	if got := NewCodec(nil).Pitch(customTrunk); got != PitchDefault {
		t.Errorf("nil predicate Pitch = %d, want %d", got, PitchDefault)
	}
}

func TestCodecEncodeFrames(t *testing.T) {
	c := testCodec()

	tests := []struct {
		d      Descriptor
		fx, fy int16
	}{
		{Descriptor{0, Center, Normal}, 0, 0},
		{Descriptor{2, Center, LeafyTop}, 1 * 18, (9 + 2) * 18},
		{Descriptor{1, Right, WithBranches}, 3 * 18, (3 + 1) * 18},
		{Descriptor{0, Left, Root}, 2 * 18, 6 * 18},
		{Descriptor{0, Center, BrokenTop}, 0, 9 * 18},
	}
	for _, tt := range tests {
		cell := grid.Cell{Type: customTrunk}
		c.Encode(tt.d, &cell)
		if cell.FrameX != tt.fx || cell.FrameY != tt.fy {
			t.Errorf("Encode(%v) = (%d,%d), want (%d,%d)", tt.d, cell.FrameX, cell.FrameY, tt.fx, tt.fy)
		}
	}
}

func TestCodecDecodeOutsideTable(t *testing.T) {
	c := testCodec()

	tests := []struct {
		name   string
		fx, fy int16
	}{
		{"column 9", 9 * 18, 0},
		{"column 4 row group 3", 4 * 18, 9 * 18},
		{"row group 5", 0, 15 * 18},
		{"negative", -18, 0},
	}
	for _, tt := range tests {
		got := c.Decode(grid.Cell{Type: customTrunk, FrameX: tt.fx, FrameY: tt.fy})
		if got.Role != None || got.Side != Center {
			t.Errorf("%s: Decode = %v, want Center None", tt.name, got)
		}
	}
}

func TestCodecStyleDoesNotChangeRole(t *testing.T) {
	c := testCodec()
	for style := 0; style < 3; style++ {
		cell := grid.Cell{Type: customTrunk, FrameX: 2 * 18, FrameY: int16((3 + style) * 18)}
		got := c.Decode(cell)
		if got.Role != MoreBark || got.Side != Left || got.Style != style {
			t.Errorf("style %d decoded as %v", style, got)
		}
	}
}

func TestDescriptorPredicates(t *testing.T) {
	if !(Descriptor{Role: LeafyBranch}).IsLeafy() || (Descriptor{Role: Branch}).IsLeafy() {
		t.Error("IsLeafy wrong for branches")
	}
	if (Descriptor{Role: Root}).IsCenter() || !(Descriptor{Role: WithRoots}).IsCenter() {
		t.Error("IsCenter wrong for roots")
	}
	for _, r := range []Role{Top, TopWithBranches, TopWithRoots, BrokenTop, LeafyTop} {
		if !(Descriptor{Role: r}).IsTop() {
			t.Errorf("%v should be a top", r)
		}
	}
	if (Descriptor{Role: WithBranches}).IsTop() {
		t.Error("WithBranches is not a top")
	}
	if !Encodable(Right, WithBranches) || Encodable(Center, Branch) {
		t.Error("Encodable gave wrong answers")
	}
}
