// Package atlas describes tilesets: named tile definitions with the
// properties line-of-sight and the viewers care about.
package atlas

import (
	"encoding/json"
	"fmt"
	"os"
)

// Property keys understood by the rest of the module
const (
	PropBlocksSight = "blocks_sight"
	PropWalkable    = "walkable"
	PropType        = "type"
)

// TileDefinition defines a single tile within a tileset
type TileDefinition struct {
	Name       string                 `json:"name"`       // Semantic name (e.g., "stone_wall")
	Glyph      string                 `json:"glyph"`      // Terminal rendering (e.g., "#")
	Color      string                 `json:"color"`      // Hex colour for the viewers (e.g., "#5a5a6e")
	Properties map[string]interface{} `json:"properties"` // Custom properties (blocks_sight, walkable, type)
}

// Config is the JSON form of a tileset
type Config struct {
	Name  string           `json:"name"`  // Tileset name
	Tiles []TileDefinition `json:"tiles"` // Array of tile definitions
}

// Atlas is a loaded tileset
type Atlas struct {
	Config      *Config
	TilesByName map[string]*TileDefinition // Quick lookup by name
}

// LoadAtlas loads a tileset from a JSON file
func LoadAtlas(configPath string) (*Atlas, error) {
	data, err := os.ReadFile(configPath)
	if err != nil {
		return nil, fmt.Errorf("failed to read tileset %s: %w", configPath, err)
	}

	a, err := ParseAtlas(data)
	if err != nil {
		return nil, fmt.Errorf("tileset %s: %w", configPath, err)
	}
	return a, nil
}

// ParseAtlas builds a tileset from its JSON form
func ParseAtlas(data []byte) (*Atlas, error) {
	var config Config
	if err := json.Unmarshal(data, &config); err != nil {
		return nil, fmt.Errorf("failed to parse tileset: %w", err)
	}
	return New(config)
}

// New indexes a tileset config. Every tile needs a unique name.
func New(config Config) (*Atlas, error) {
	if len(config.Tiles) == 0 {
		return nil, fmt.Errorf("tileset %q defines no tiles", config.Name)
	}

	tilesByName := make(map[string]*TileDefinition, len(config.Tiles))
	for i := range config.Tiles {
		tile := &config.Tiles[i]
		if tile.Name == "" {
			return nil, fmt.Errorf("tile %d has no name", i)
		}
		if _, dup := tilesByName[tile.Name]; dup {
			return nil, fmt.Errorf("duplicate tile name: %s", tile.Name)
		}
		tilesByName[tile.Name] = tile
	}

	return &Atlas{Config: &config, TilesByName: tilesByName}, nil
}

// GetTile returns a tile definition by name
func (a *Atlas) GetTile(name string) (*TileDefinition, bool) {
	tile, ok := a.TilesByName[name]
	return tile, ok
}

// Property retrieves a property from a tile definition
func (td *TileDefinition) Property(key string) (interface{}, bool) {
	if td.Properties == nil {
		return nil, false
	}
	val, ok := td.Properties[key]
	return val, ok
}

// Bool retrieves a boolean property
func (td *TileDefinition) Bool(key string, defaultVal bool) bool {
	if val, ok := td.Property(key); ok {
		if b, ok := val.(bool); ok {
			return b
		}
	}
	return defaultVal
}

// String retrieves a string property
func (td *TileDefinition) String(key string, defaultVal string) string {
	if val, ok := td.Property(key); ok {
		if s, ok := val.(string); ok {
			return s
		}
	}
	return defaultVal
}

// Int retrieves an integer property
func (td *TileDefinition) Int(key string, defaultVal int) int {
	if val, ok := td.Property(key); ok {
		// JSON numbers are float64
		if f, ok := val.(float64); ok {
			return int(f)
		}
	}
	return defaultVal
}

// BlocksSight reports whether the tile is opaque. Tiles are transparent
// unless they say otherwise.
func (td *TileDefinition) BlocksSight() bool {
	return td.Bool(PropBlocksSight, false)
}

// Rune returns the glyph used by terminal views, '?' when unset.
func (td *TileDefinition) Rune() rune {
	for _, r := range td.Glyph {
		return r
	}
	return '?'
}
