package gen

import (
	"github.com/aquilax/go-perlin"

	"github.com/OCharnyshevich/tile-trees/pkg/world/grid"
)

// Tile types painted by Terrain unless overridden.
const (
	TileStone uint16 = 1
	TileGrass uint16 = 2
	TileDirt  uint16 = 3
)

// Terrain paints a side-view world: rolling grass hills over dirt and
// stone, with optional water pooled in the valleys.
type Terrain struct {
	Seed int64

	// Surface is the mean surface row and Amplitude the largest deviation
	// from it, both in cells.
	Surface   int
	Amplitude float64
	// DirtDepth rows of dirt sit below the grass.
	DirtDepth int
	// WaterLevel fills open cells below this row with water. Zero means dry.
	WaterLevel int

	Grass, Dirt, Stone uint16
}

// DefaultTerrain returns hills centered at surface.
func DefaultTerrain(seed int64, surface int) Terrain {
	return Terrain{
		Seed:      seed,
		Surface:   surface,
		Amplitude: 12,
		DirtDepth: 4,
		Grass:     TileGrass,
		Dirt:      TileDirt,
		Stone:     TileStone,
	}
}

// Heights returns the surface row of every column of a grid width wide.
func (t Terrain) Heights(width int) []int {
	p := perlin.NewPerlin(2, 2, 3, t.Seed)
	out := make([]int, width)
	for x := range width {
		h := p.Noise1D(float64(x)*0.01)*t.Amplitude +
			p.Noise1D(float64(x)*0.05+100)*t.Amplitude/3
		out[x] = t.Surface + int(h)
	}
	return out
}

// Build paints the terrain into g and returns the surface rows.
func (t Terrain) Build(g grid.Grid) []int {
	w, h := g.Size()
	heights := t.Heights(w)

	for x, top := range heights {
		top = max(0, min(top, h-1))
		heights[x] = top

		for y := top; y < h; y++ {
			c := grid.Cell{Active: true, Type: t.Stone}
			switch {
			case y == top:
				c.Type = t.Grass
			case y <= top+t.DirtDepth:
				c.Type = t.Dirt
			}
			g.SetCell(x, y, c)
		}

		if t.WaterLevel > 0 {
			for y := t.WaterLevel; y < top; y++ {
				g.SetCell(x, y, grid.Cell{Liquid: 255})
			}
		}
	}

	g.MarkDirty(grid.Rect{MinX: 0, MinY: 0, MaxX: w - 1, MaxY: h - 1})
	return heights
}
