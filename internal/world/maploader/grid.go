package maploader

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"chosenoffset.com/sightline/internal/world/atlas"
)

// Glyphs understood by ParseGrid
const (
	GlyphWall  = '#'
	GlyphFloor = '.'
	GlyphSpawn = '@'
	GlyphAgent = 'a'
	GlyphLight = '*'
)

// DefaultLightRadius is the radius in tiles of lights placed by ParseGrid
const DefaultLightRadius = 4

func gridTileset() *atlas.Atlas {
	a, _ := atlas.New(atlas.Config{
		Name: "grid",
		Tiles: []atlas.TileDefinition{
			{Name: "floor", Glyph: ".", Color: "#2b2b33", Properties: map[string]interface{}{
				atlas.PropBlocksSight: false, atlas.PropWalkable: true, atlas.PropType: "floor",
			}},
			{Name: "wall", Glyph: "#", Color: "#6e6e82", Properties: map[string]interface{}{
				atlas.PropBlocksSight: true, atlas.PropWalkable: false, atlas.PropType: "wall",
			}},
		},
	})
	return a
}

// ParseGrid builds a map from rows of glyphs: '#' is a wall, '.' floor,
// '@' the player spawn, 'a' an agent and '*' a light, all three on floor.
// Rows must have equal length.
func ParseGrid(rows []string, tileSize int) (*Map, error) {
	if len(rows) == 0 {
		return nil, fmt.Errorf("empty grid")
	}

	data := &MapData{
		Name:     "grid",
		Width:    len([]rune(rows[0])),
		Height:   len(rows),
		TileSize: tileSize,
		Tiles:    make([][]string, len(rows)),
	}

	for y, row := range rows {
		runes := []rune(row)
		if len(runes) != data.Width {
			return nil, fmt.Errorf("row %d has %d tiles, expected %d", y, len(runes), data.Width)
		}

		data.Tiles[y] = make([]string, len(runes))
		for x, r := range runes {
			name := "floor"
			switch r {
			case GlyphWall:
				name = "wall"
			case GlyphFloor:
			case GlyphSpawn:
				data.PlayerSpawn = SpawnPoint{X: x, Y: y}
			case GlyphAgent:
				data.Agents = append(data.Agents, AgentSpawn{
					Name: fmt.Sprintf("agent-%d", len(data.Agents)+1),
					X:    x,
					Y:    y,
				})
			case GlyphLight:
				data.Lights = append(data.Lights, LightSpawn{X: x, Y: y, Radius: DefaultLightRadius})
			default:
				return nil, fmt.Errorf("unknown glyph %q at (%d, %d)", r, x, y)
			}
			data.Tiles[y][x] = name
		}
	}

	return NewMap(data, gridTileset())
}

// LoadGrid reads a text file of glyph rows, see ParseGrid. Blank lines at
// the end of the file are ignored.
func LoadGrid(path string, tileSize int) (*Map, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read grid file %s: %w", path, err)
	}

	rows := strings.Split(strings.ReplaceAll(string(data), "\r\n", "\n"), "\n")
	for len(rows) > 0 && strings.TrimSpace(rows[len(rows)-1]) == "" {
		rows = rows[:len(rows)-1]
	}

	m, err := ParseGrid(rows, tileSize)
	if err != nil {
		return nil, fmt.Errorf("invalid grid in %s: %w", path, err)
	}
	m.Data.Name = strings.TrimSuffix(filepath.Base(path), filepath.Ext(path))
	return m, nil
}

// Load picks LoadMap for .json files and LoadGrid for anything else.
// tileSize only applies to grids; JSON maps carry their own.
func Load(path string, tileSize int) (*Map, error) {
	if strings.EqualFold(filepath.Ext(path), ".json") {
		return LoadMap(path)
	}
	return LoadGrid(path, tileSize)
}
