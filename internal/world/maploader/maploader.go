// Package maploader loads tile maps and exposes them as line-of-sight grids.
package maploader

import (
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"

	"chosenoffset.com/sightline/internal/world/atlas"
)

// SpawnPoint is a tile coordinate
type SpawnPoint struct {
	X int `json:"x"`
	Y int `json:"y"`
}

// AgentSpawn places a named agent on the map
type AgentSpawn struct {
	Name string `json:"name"`
	X    int    `json:"x"`
	Y    int    `json:"y"`
}

// LightSpawn places a light source on the map
type LightSpawn struct {
	X      int     `json:"x"`
	Y      int     `json:"y"`
	Radius int     `json:"radius"` // In tiles
	Angle  float64 `json:"angle"`  // Cone width in degrees, 0 or >= 360 for omnidirectional
	Facing float64 `json:"facing"` // Degrees, screen convention
	Color  string  `json:"color"`  // Hex, optional
}

// MapData represents the loaded map configuration
type MapData struct {
	Name        string       `json:"name"`
	Width       int          `json:"width"`
	Height      int          `json:"height"`
	TileSize    int          `json:"tile_size"` // World units per tile
	TilesetPath string       `json:"tileset"`   // Relative to the map file
	PlayerSpawn SpawnPoint   `json:"player_spawn"`
	Agents      []AgentSpawn `json:"agents"`
	Lights      []LightSpawn `json:"lights"`
	Tiles       [][]string   `json:"tiles"` // 2D array of tile names [y][x]
}

// Map is a loaded map with its tileset. It implements los.TileOracle;
// tiles outside the map are opaque.
type Map struct {
	Data  *MapData
	Atlas *atlas.Atlas

	opaque []bool
}

// LoadMap loads a map from a JSON file and its associated tileset
func LoadMap(mapPath string) (*Map, error) {
	data, err := os.ReadFile(mapPath)
	if err != nil {
		return nil, fmt.Errorf("failed to read map file %s: %w", mapPath, err)
	}

	var mapData MapData
	if err := json.Unmarshal(data, &mapData); err != nil {
		return nil, fmt.Errorf("failed to parse map file %s: %w", mapPath, err)
	}

	if mapData.TilesetPath == "" {
		return nil, fmt.Errorf("invalid map data in %s: tileset path is required", mapPath)
	}

	tilesetPath := mapData.TilesetPath
	if !filepath.IsAbs(tilesetPath) {
		tilesetPath = filepath.Join(filepath.Dir(mapPath), tilesetPath)
	}

	tiles, err := atlas.LoadAtlas(tilesetPath)
	if err != nil {
		return nil, fmt.Errorf("failed to load tileset for %s: %w", mapPath, err)
	}

	m, err := NewMap(&mapData, tiles)
	if err != nil {
		return nil, fmt.Errorf("invalid map data in %s: %w", mapPath, err)
	}
	return m, nil
}

// NewMap validates data against tiles and precomputes tile opacity
func NewMap(data *MapData, tiles *atlas.Atlas) (*Map, error) {
	if err := validateMapData(data); err != nil {
		return nil, err
	}

	m := &Map{
		Data:   data,
		Atlas:  tiles,
		opaque: make([]bool, data.Width*data.Height),
	}

	for y, row := range data.Tiles {
		for x, name := range row {
			tile, ok := tiles.GetTile(name)
			if !ok {
				return nil, fmt.Errorf("tile not found in tileset at (%d, %d): %s", x, y, name)
			}
			m.opaque[y*data.Width+x] = tile.BlocksSight()
		}
	}

	if !m.InBounds(data.PlayerSpawn.X, data.PlayerSpawn.Y) {
		return nil, fmt.Errorf("player spawn (%d, %d) is outside the map", data.PlayerSpawn.X, data.PlayerSpawn.Y)
	}
	for _, a := range data.Agents {
		if !m.InBounds(a.X, a.Y) {
			return nil, fmt.Errorf("agent %q at (%d, %d) is outside the map", a.Name, a.X, a.Y)
		}
	}

	return m, nil
}

// validateMapData checks if the map data is valid
func validateMapData(data *MapData) error {
	if data.Width <= 0 || data.Height <= 0 {
		return fmt.Errorf("invalid map dimensions: %dx%d", data.Width, data.Height)
	}

	if data.TileSize <= 0 {
		return fmt.Errorf("invalid tile size: %d", data.TileSize)
	}

	if len(data.Tiles) != data.Height {
		return fmt.Errorf("tiles array height mismatch: expected %d, got %d", data.Height, len(data.Tiles))
	}

	for y, row := range data.Tiles {
		if len(row) != data.Width {
			return fmt.Errorf("tiles array width mismatch at row %d: expected %d, got %d", y, data.Width, len(row))
		}
	}

	return nil
}

// Width returns the map width in tiles
func (m *Map) Width() int { return m.Data.Width }

// Height returns the map height in tiles
func (m *Map) Height() int { return m.Data.Height }

// TileSize returns the edge length of a tile in world units
func (m *Map) TileSize() int { return m.Data.TileSize }

// InBounds reports whether (x, y) is a tile of the map
func (m *Map) InBounds(x, y int) bool {
	return x >= 0 && x < m.Data.Width && y >= 0 && y < m.Data.Height
}

// BlocksSight returns whether the tile at the given coordinates blocks line of sight
func (m *Map) BlocksSight(x, y int) bool {
	if !m.InBounds(x, y) {
		return true
	}
	return m.opaque[y*m.Data.Width+x]
}

// Walkable returns whether an entity may stand on the tile. Tiles without
// a walkable property are walkable unless they block sight.
func (m *Map) Walkable(x, y int) bool {
	if !m.InBounds(x, y) {
		return false
	}
	tile, _ := m.Atlas.GetTile(m.Data.Tiles[y][x])
	return tile.Bool(atlas.PropWalkable, !m.BlocksSight(x, y))
}

// Transparent is the inverse of BlocksSight
func (m *Map) Transparent(x, y int) bool {
	return !m.BlocksSight(x, y)
}

// SetBlocking overrides the opacity of a tile, e.g. for a door opening.
// Trackers over this map must be invalidated afterwards.
func (m *Map) SetBlocking(x, y int, blocks bool) error {
	if !m.InBounds(x, y) {
		return fmt.Errorf("coordinates out of bounds: (%d, %d)", x, y)
	}
	m.opaque[y*m.Data.Width+x] = blocks
	return nil
}

// GetTileAt returns the tile definition at the given grid coordinates
func (m *Map) GetTileAt(x, y int) (*atlas.TileDefinition, error) {
	if !m.InBounds(x, y) {
		return nil, fmt.Errorf("coordinates out of bounds: (%d, %d)", x, y)
	}
	tile, _ := m.Atlas.GetTile(m.Data.Tiles[y][x])
	return tile, nil
}

// CellCenter returns the world position of the centre of tile (x, y)
func (m *Map) CellCenter(x, y int) (int, int) {
	ts := m.Data.TileSize
	return x*ts + ts/2, y*ts + ts/2
}

// Spawn returns the world position of the player spawn
func (m *Map) Spawn() (int, int) {
	return m.CellCenter(m.Data.PlayerSpawn.X, m.Data.PlayerSpawn.Y)
}
