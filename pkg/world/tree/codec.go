package tree

import "github.com/OCharnyshevich/tile-trees/pkg/world/grid"

// Frame pitches in grid units. Registered custom kinds use the compact
// sheet; everything else uses the wide one.
const (
	PitchCustom  = 18
	PitchDefault = 22

	styles = 3
)

type frameKey struct{ col, row int }

type sideRole struct {
	side Side
	role Role
}

// frameTable maps a sheet cell (column, row group) to the tile it draws.
// Several cells may draw the same tile; encodeTable picks one of them.
var frameTable = map[frameKey]sideRole{
	{0, 0}: {Center, Normal},
	{0, 1}: {Left, LessBark},
	{0, 2}: {Right, WithRoots},
	{0, 3}: {Center, BrokenTop},

	{1, 0}: {Right, LessBark},
	{1, 1}: {Right, MoreBark},
	{1, 2}: {Right, Root},
	{1, 3}: {Center, LeafyTop},

	{2, 0}: {Right, WithBranches},
	{2, 1}: {Left, MoreBark},
	{2, 2}: {Left, Root},
	{2, 3}: {Left, LeafyBranch},

	{3, 0}: {Left, Branch},
	{3, 1}: {Right, WithBranches},
	{3, 2}: {Left, WithRoots},
	{3, 3}: {Right, LeafyBranch},

	{4, 0}: {Left, WithBranches},
	{4, 1}: {Right, Branch},
	{4, 2}: {Center, WithRoots},

	{5, 0}: {Center, Top},
	{5, 1}: {Center, WithBranches},

	{6, 0}: {Left, TopWithBranches},
	{6, 1}: {Right, TopWithBranches},
	{6, 2}: {Center, TopWithBranches},

	{7, 0}: {Left, TopWithRoots},
	{7, 1}: {Right, TopWithRoots},
	{7, 2}: {Center, TopWithRoots},
}

// encodeTable is built once from frameTable. Where a tile appears in more
// than one sheet cell the preferred cell wins.
var encodeTable = buildEncodeTable()

var preferredFrames = map[sideRole]frameKey{
	{Right, WithBranches}: {3, 1},
}

func buildEncodeTable() map[sideRole]frameKey {
	out := make(map[sideRole]frameKey, len(frameTable))
	for k, v := range frameTable {
		if prev, ok := out[v]; ok && (prev.col < k.col || prev.col == k.col && prev.row < k.row) {
			continue
		}
		out[v] = k
	}
	for v, k := range preferredFrames {
		out[v] = k
	}
	return out
}

// Codec converts between grid cells and Descriptors.
type Codec struct {
	custom func(tileType uint16) bool
}

// NewCodec creates a Codec. isCustom selects the compact frame pitch for a
// tile type; nil means every type uses the default pitch.
func NewCodec(isCustom func(tileType uint16) bool) Codec {
	return Codec{custom: isCustom}
}

// Pitch returns the frame pitch used for cells of tileType.
func (c Codec) Pitch(tileType uint16) int {
	if c.custom != nil && c.custom(tileType) {
		return PitchCustom
	}
	return PitchDefault
}

// Decode reads the descriptor stored in cell. Frames outside the table
// decode to (style, Center, None).
func (c Codec) Decode(cell grid.Cell) Descriptor {
	pitch := c.Pitch(cell.Type)
	if cell.FrameX < 0 || cell.FrameY < 0 {
		return Descriptor{Side: Center, Role: None}
	}

	col := int(cell.FrameX) / pitch
	row := int(cell.FrameY) / pitch
	style := row % styles
	row /= styles

	sr, ok := frameTable[frameKey{col, row}]
	if !ok {
		return Descriptor{Style: style, Side: Center, Role: None}
	}
	return Descriptor{Style: style, Side: sr.side, Role: sr.role}
}

// Encode writes d into cell's frame coordinates, leaving type and color
// alone. Pairs missing from the table encode to the plain trunk frame.
func (c Codec) Encode(d Descriptor, cell *grid.Cell) {
	k := encodeTable[sideRole{d.Side, d.Role}]
	pitch := c.Pitch(cell.Type)

	style := d.Style
	if style < 0 || style >= styles {
		style = 0
	}
	cell.FrameX = int16(k.col * pitch)
	cell.FrameY = int16((k.row*styles + style) * pitch)
}

// Encodable reports whether (side, role) has a frame of its own.
func Encodable(side Side, role Role) bool {
	_, ok := encodeTable[sideRole{side, role}]
	return ok
}
