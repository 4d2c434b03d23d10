// Package sightmap rasterises a line-of-sight region onto the tile grid,
// one cell per tile, for terminal and text output.
package sightmap

import (
	"strings"

	"chosenoffset.com/sightline/internal/core/los"
	"chosenoffset.com/sightline/internal/perception"
	"chosenoffset.com/sightline/internal/world/maploader"
)

// State is how much of a tile the observer knows about
type State int

const (
	Hidden     State = iota // never seen
	Remembered              // seen before, not in view now
	Visible                 // in view now
)

// Cell is one rasterised tile
type Cell struct {
	Glyph rune
	Color string // tile colour, hex, may be empty
	State State
	Agent *perception.Agent // set when a visible agent stands here
	Self  bool              // the observer stands here
}

// Frame is a rasterised view of the whole map
type Frame struct {
	Width, Height int
	Cells         []Cell
}

// At returns the cell of tile (x, y)
func (f *Frame) At(x, y int) Cell {
	return f.Cells[y*f.Width+x]
}

// Lines renders the frame as text: hidden tiles are blank, the observer is
// '@' and visible agents 'a'.
func (f *Frame) Lines() []string {
	lines := make([]string, f.Height)
	var b strings.Builder
	for y := 0; y < f.Height; y++ {
		b.Reset()
		for x := 0; x < f.Width; x++ {
			b.WriteRune(f.At(x, y).Rune())
		}
		lines[y] = b.String()
	}
	return lines
}

// Rune is the character Lines uses for c
func (c Cell) Rune() rune {
	switch {
	case c.Self:
		return maploader.GlyphSpawn
	case c.Agent != nil:
		return maploader.GlyphAgent
	case c.State == Hidden:
		return ' '
	default:
		return c.Glyph
	}
}

// Memory records which tiles an observer has seen
type Memory struct {
	width int
	seen  []bool
}

// NewMemory creates an empty memory for a map of the given size
func NewMemory(width, height int) *Memory {
	return &Memory{width: width, seen: make([]bool, width*height)}
}

// Seen reports whether tile (x, y) was ever visible
func (m *Memory) Seen(x, y int) bool {
	return m.seen[y*m.width+x]
}

// Forget clears the memory
func (m *Memory) Forget() {
	clear(m.seen)
}

// Build rasterises region over gameMap. mem may be nil; when given, tiles
// visible now are recorded in it and earlier ones come out Remembered.
// visible lists the agents to draw, normally the result of
// perception.Index.Visible.
func Build(gameMap *maploader.Map, region los.Region, mem *Memory, self los.Point, visible []*perception.Agent) *Frame {
	w, h := gameMap.Width(), gameMap.Height()
	f := &Frame{Width: w, Height: h, Cells: make([]Cell, w*h)}

	for y := 0; y < h; y++ {
		for x := 0; x < w; x++ {
			c := &f.Cells[y*w+x]
			if tile, err := gameMap.GetTileAt(x, y); err == nil && tile != nil {
				c.Glyph = tile.Rune()
				c.Color = tile.Color
			}

			switch {
			case TileVisible(gameMap, region, x, y):
				c.State = Visible
				if mem != nil {
					mem.seen[y*w+x] = true
				}
			case mem != nil && mem.Seen(x, y):
				c.State = Remembered
			}
		}
	}

	ts := gameMap.TileSize()
	if cell := los.CellOf(int(self.X), int(self.Y), ts); gameMap.InBounds(cell.X, cell.Y) {
		f.Cells[cell.Y*w+cell.X].Self = true
	}
	for _, a := range visible {
		cell := los.CellOf(int(a.X), int(a.Y), ts)
		if gameMap.InBounds(cell.X, cell.Y) {
			f.Cells[cell.Y*w+cell.X].Agent = a
		}
	}

	return f
}

// TileVisible decides whether any part of tile (x, y) lies in region.
// Open tiles are sampled at their centre and near their corners. Opaque
// tiles are seen by their faces, so they are sampled just outside each
// face that borders an open tile.
func TileVisible(gameMap *maploader.Map, region los.Region, x, y int) bool {
	if region.Empty() {
		return false
	}

	ts := float64(gameMap.TileSize())
	x0, y0 := float64(x)*ts, float64(y)*ts
	x1, y1 := x0+ts, y0+ts
	cx, cy := x0+ts/2, y0+ts/2

	var samples []los.Point
	if gameMap.Transparent(x, y) {
		in := ts / 4
		samples = []los.Point{
			{X: cx, Y: cy},
			{X: x0 + in, Y: y0 + in}, {X: x1 - in, Y: y0 + in},
			{X: x0 + in, Y: y1 - in}, {X: x1 - in, Y: y1 - in},
		}
	} else {
		const out = 0.5
		if gameMap.Transparent(x, y-1) {
			samples = append(samples, los.Point{X: cx, Y: y0 - out})
		}
		if gameMap.Transparent(x, y+1) {
			samples = append(samples, los.Point{X: cx, Y: y1 + out})
		}
		if gameMap.Transparent(x-1, y) {
			samples = append(samples, los.Point{X: x0 - out, Y: cy})
		}
		if gameMap.Transparent(x+1, y) {
			samples = append(samples, los.Point{X: x1 + out, Y: cy})
		}
	}

	for _, p := range samples {
		if region.Contains(p) {
			return true
		}
	}
	return false
}
