// Package lighting tracks light sources and the region each one lights.
// A light is an observer: its lit area is its line-of-sight region.
package lighting

import (
	"fmt"
	"image/color"
	"log"
	"math"
	"sort"

	"chosenoffset.com/sightline/internal/core/los"
	"chosenoffset.com/sightline/internal/render"
	"chosenoffset.com/sightline/internal/world/maploader"
)

// DefaultLightColor is a warm torch colour
var DefaultLightColor = color.NRGBA{255, 200, 100, 255}

// LightSource represents a single light source in the world
type LightSource struct {
	X         int         // World X position
	Y         int         // World Y position
	Radius    int         // Light radius (world units)
	Angle     float64     // Cone width in radians, 2*pi for omnidirectional
	Facing    float64     // Cone bisector in radians, screen convention
	Intensity float64     // Light intensity (0.0 to 1.0)
	Color     color.NRGBA // Light color
}

func (l LightSource) observer() los.Observer {
	return los.Observer{X: l.X, Y: l.Y, Range: l.Radius, Angle: l.Angle, Direction: l.Facing}
}

// Lit is the region lit by one light
type Lit struct {
	ID     string
	Light  LightSource
	Region los.Region
}

type entry struct {
	light   LightSource
	tracker *los.Tracker
}

// Manager handles all light sources over one grid. Each light owns a
// tracker, so a light that does not leave its cell reuses its edge cache.
type Manager struct {
	grid          los.TileOracle
	opts          los.Options
	ambientLight  float64 // Global ambient light level (0.0 = pitch black, 1.0 = fully lit)
	playerLightOn bool
	playerLight   *entry
	lights        map[string]*entry
}

// NewManager creates a new lighting manager
func NewManager(grid los.TileOracle, opts los.Options) *Manager {
	return &Manager{
		grid:         grid,
		opts:         opts,
		ambientLight: 0.15,
		lights:       make(map[string]*entry),
	}
}

// SetAmbientLight sets the global ambient light level
func (m *Manager) SetAmbientLight(level float64) {
	m.ambientLight = math.Max(0, math.Min(1, level))
}

// GetAmbientLight returns the current ambient light level
func (m *Manager) GetAmbientLight() float64 {
	return m.ambientLight
}

// SetPlayerLight configures the player's carried light
func (m *Manager) SetPlayerLight(light LightSource) {
	if m.playerLight == nil {
		m.playerLight = &entry{tracker: los.NewTracker(m.grid, m.opts)}
	}
	m.playerLight.light = light
}

// EnablePlayerLight turns on/off the player's light source
func (m *Manager) EnablePlayerLight(enabled bool) {
	m.playerLightOn = enabled
}

// IsPlayerLightOn returns whether the player's light is currently on
func (m *Manager) IsPlayerLightOn() bool {
	return m.playerLightOn && m.playerLight != nil
}

// UpdatePlayerLight moves and turns the player's light (called each frame)
func (m *Manager) UpdatePlayerLight(x, y int, facing float64) {
	if m.playerLight != nil {
		m.playerLight.light.X = x
		m.playerLight.light.Y = y
		m.playerLight.light.Facing = facing
	}
}

// AddLight places a fixed light. Adding an existing id replaces it.
func (m *Manager) AddLight(id string, light LightSource) {
	m.lights[id] = &entry{light: light, tracker: los.NewTracker(m.grid, m.opts)}
}

// RemoveLight removes a fixed light
func (m *Manager) RemoveLight(id string) {
	delete(m.lights, id)
}

// AddMapLights places the lights a map declares
func (m *Manager) AddMapLights(gameMap *maploader.Map) {
	for i, spawn := range gameMap.Data.Lights {
		if spawn.Radius <= 0 {
			log.Printf("WARNING: light %d at (%d, %d) has no radius, skipped", i, spawn.X, spawn.Y)
			continue
		}

		angle := 2 * math.Pi
		if spawn.Angle > 0 && spawn.Angle < 360 {
			angle = spawn.Angle * math.Pi / 180
		}

		x, y := gameMap.CellCenter(spawn.X, spawn.Y)
		m.AddLight(lightID(i), LightSource{
			X:         x,
			Y:         y,
			Radius:    spawn.Radius * gameMap.TileSize(),
			Angle:     angle,
			Facing:    spawn.Facing * math.Pi / 180,
			Intensity: 1,
			Color:     render.HexColorOr(spawn.Color, DefaultLightColor),
		})
	}
}

func lightID(i int) string {
	return fmt.Sprintf("map-light-%03d", i)
}

// Invalidate drops every light's edge cache. Call it after the grid changes.
func (m *Manager) Invalidate() {
	if m.playerLight != nil {
		m.playerLight.tracker.Invalidate()
	}
	for _, e := range m.lights {
		e.tracker.Invalidate()
	}
}

// Regions computes the lit region of every active light, fixed lights in
// id order followed by the player light. Lights whose computation fails
// are logged and skipped.
func (m *Manager) Regions() []Lit {
	ids := make([]string, 0, len(m.lights))
	for id := range m.lights {
		ids = append(ids, id)
	}
	sort.Strings(ids)

	out := make([]Lit, 0, len(ids)+1)
	for _, id := range ids {
		if lit, ok := compute(id, m.lights[id]); ok {
			out = append(out, lit)
		}
	}

	if m.IsPlayerLightOn() {
		if lit, ok := compute("player", m.playerLight); ok {
			out = append(out, lit)
		}
	}

	return out
}

func compute(id string, e *entry) (Lit, bool) {
	region, err := e.tracker.Compute(e.light.observer())
	if err != nil {
		log.Printf("WARNING: light %s: %v", id, err)
		return Lit{}, false
	}
	return Lit{ID: id, Light: e.light, Region: region}, true
}

// IsLit reports whether p is inside any lit region
func IsLit(lits []Lit, p los.Point) bool {
	for _, l := range lits {
		if l.Region.Contains(p) {
			return true
		}
	}
	return false
}
