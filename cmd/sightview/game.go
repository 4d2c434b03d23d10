package main

import (
	"errors"
	"fmt"
	"image/color"
	"log"
	"math"

	"chosenoffset.com/sightline/internal/config"
	"chosenoffset.com/sightline/internal/core/los"
	"chosenoffset.com/sightline/internal/perception"
	"chosenoffset.com/sightline/internal/render"
	"chosenoffset.com/sightline/internal/render/lighting"
	"chosenoffset.com/sightline/internal/world/maploader"
)

var errQuit = errors.New("quit")

var (
	floorColor   = color.NRGBA{60, 60, 70, 255}
	edgeColor    = color.RGBA{255, 220, 0, 255}
	projectColor = color.RGBA{0, 200, 255, 255}
	agentColor   = color.RGBA{220, 40, 40, 255}
	playerColor  = color.RGBA{255, 255, 100, 255}
)

// Player is the observer the view follows
type Player struct {
	X, Y   float64
	Facing float64
	Speed  float64
}

// Game renders one observer's view of a map.
type Game struct {
	screenWidth  int
	screenHeight int
	cfg          *config.Config
	gameMap      *maploader.Map
	tracker      *los.Tracker
	agents       *perception.Index
	lights       *lighting.Manager
	player       Player

	coneOn  bool
	edgesOn bool

	trace   *los.Trace
	seen    []*perception.Agent
	lit     []lighting.Lit
	mask    render.Image
	lastErr string

	renderer render.Renderer
	inputMgr render.InputManager
}

func (g *Game) Update() error {
	if g.inputMgr.IsKeyJustPressed(render.KeyEscape) {
		return errQuit
	}

	// WASD movement
	dx, dy := 0.0, 0.0
	if g.inputMgr.IsKeyPressed(render.KeyW) || g.inputMgr.IsKeyPressed(render.KeyUp) {
		dy -= g.player.Speed
	}
	if g.inputMgr.IsKeyPressed(render.KeyS) || g.inputMgr.IsKeyPressed(render.KeyDown) {
		dy += g.player.Speed
	}
	if g.inputMgr.IsKeyPressed(render.KeyA) || g.inputMgr.IsKeyPressed(render.KeyLeft) {
		dx -= g.player.Speed
	}
	if g.inputMgr.IsKeyPressed(render.KeyD) || g.inputMgr.IsKeyPressed(render.KeyRight) {
		dx += g.player.Speed
	}
	// Axes are tried separately so the player slides along walls
	if dx != 0 && g.canStand(g.player.X+dx, g.player.Y) {
		g.player.X += dx
	}
	if dy != 0 && g.canStand(g.player.X, g.player.Y+dy) {
		g.player.Y += dy
	}

	// Face the cursor
	mx, my := g.inputMgr.GetCursorPosition()
	if fx, fy := float64(mx)-g.player.X, float64(my)-g.player.Y; fx != 0 || fy != 0 {
		g.player.Facing = math.Atan2(fy, fx)
	}

	if g.inputMgr.IsKeyJustPressed(render.KeyC) || g.inputMgr.IsMouseButtonJustPressed(render.MouseButtonRight) {
		g.coneOn = !g.coneOn
	}
	if g.inputMgr.IsKeyJustPressed(render.KeyE) || g.inputMgr.IsMouseButtonJustPressed(render.MouseButtonLeft) {
		g.edgesOn = !g.edgesOn
	}
	if g.inputMgr.IsKeyJustPressed(render.KeyL) {
		g.lights.EnablePlayerLight(!g.lights.IsPlayerLightOn())
	}

	g.compute()
	return nil
}

func (g *Game) canStand(x, y float64) bool {
	ts := float64(g.gameMap.TileSize())
	if x < 0 || y < 0 {
		return false
	}
	return g.gameMap.Walkable(int(x/ts), int(y/ts))
}

func (g *Game) compute() {
	px, py := int(g.player.X), int(g.player.Y)

	o := g.cfg.Observer(px, py, g.gameMap.TileSize(), g.player.Facing)
	if !g.coneOn {
		o.Angle = 2 * math.Pi
	}

	trace, err := g.tracker.Trace(o)
	if err != nil {
		// Keep the last good view rather than flashing black
		if msg := err.Error(); msg != g.lastErr {
			log.Printf("WARNING: view from (%d, %d): %v", px, py, err)
			g.lastErr = msg
		}
	} else {
		g.trace = trace
		g.lastErr = ""
	}

	if g.trace != nil {
		g.seen = g.agents.Visible(g.trace.Region, 0)
	}

	g.lights.UpdatePlayerLight(px, py, g.player.Facing)
	g.lit = g.lights.Regions()
}

func (g *Game) Draw(screen render.Image) {
	// Step 1: Draw all tiles (the world)
	g.drawTiles(screen)

	// Step 2: Tint whatever the lights reach
	for _, l := range g.lit {
		c := l.Light.Color
		c.A = uint8(60 * l.Light.Intensity)
		for _, contour := range l.Region.Contours() {
			g.renderer.FillPolygon(screen, outline(contour), c)
		}
	}

	// Step 3: Darken everything the player cannot see
	if g.mask == nil {
		g.mask = g.renderer.NewImage(g.screenWidth, g.screenHeight)
	}
	g.mask.Fill(color.RGBA{0, 0, 0, uint8(255 * (1 - g.lights.GetAmbientLight()))})
	if g.trace != nil {
		for _, contour := range g.trace.Region.Contours() {
			g.renderer.ErasePolygon(g.mask, outline(contour))
		}
	}
	screen.DrawImage(g.mask)

	if g.edgesOn && g.trace != nil {
		g.drawEdges(screen)
	}

	// Step 4: Agents in view, then the player on top
	for _, a := range g.seen {
		g.renderer.FillCircle(screen, float32(a.X), float32(a.Y), 7, agentColor)
	}

	px, py := float32(g.player.X), float32(g.player.Y)
	g.renderer.FillCircle(screen, px, py, 8, playerColor)
	g.renderer.StrokeCircle(screen, px, py, 8, 2, color.RGBA{200, 200, 50, 255})
	g.renderer.StrokeLine(screen, px, py,
		px+float32(14*math.Cos(g.player.Facing)),
		py+float32(14*math.Sin(g.player.Facing)),
		2, color.RGBA{200, 200, 50, 255})

	g.drawStatus(screen)
}

// drawStatus writes the query summary along the bottom of the screen.
func (g *Game) drawStatus(screen render.Image) {
	mode := "disc"
	if g.coneOn {
		mode = "cone"
	}
	hits, misses := g.tracker.Cache().Stats()
	line := fmt.Sprintf("%s | %d of %d agents in view | cache %d/%d", mode, len(g.seen), g.agents.Len(), hits, misses)
	if g.lastErr != "" {
		line += " | " + g.lastErr
	}

	_, sh := screen.Size()
	tw, th := g.renderer.MeasureText(line)
	g.renderer.FillRect(screen, 0, float32(sh-th), float32(tw+8), float32(th), color.RGBA{0, 0, 0, 180})
	g.renderer.DrawText(screen, line, 4, sh-th)
}

func (g *Game) drawTiles(screen render.Image) {
	ts := float32(g.gameMap.TileSize())

	for y := 0; y < g.gameMap.Height(); y++ {
		for x := 0; x < g.gameMap.Width(); x++ {
			tile, err := g.gameMap.GetTileAt(x, y)
			if err != nil {
				continue
			}

			c := render.HexColorOr(tile.Color, floorColor)
			g.renderer.FillRect(screen, float32(x)*ts, float32(y)*ts, ts, ts, c)
			if tile.BlocksSight() {
				g.renderer.StrokeRect(screen, float32(x)*ts, float32(y)*ts, ts, ts, 1, color.RGBA{0, 0, 0, 120})
			}
		}
	}
}

// drawEdges shows the working edge list: tile faces in yellow, projected
// shadow edges in blue.
func (g *Game) drawEdges(screen render.Image) {
	for _, e := range g.trace.Edges {
		c := edgeColor
		if e.Projection {
			c = projectColor
		}
		g.renderer.StrokeLine(screen, float32(e.A.X), float32(e.A.Y), float32(e.B.X), float32(e.B.Y), 1, c)
	}

	poly := g.trace.Polygon
	for i := 1; i < len(poly); i++ {
		g.renderer.StrokeLine(screen,
			float32(poly[i-1].X), float32(poly[i-1].Y),
			float32(poly[i].X), float32(poly[i].Y),
			2, color.White)
	}
}

func (g *Game) Layout(outsideWidth, outsideHeight int) (int, int) {
	return g.screenWidth, g.screenHeight
}

func outline(contour []los.Point) []render.Vec2 {
	out := make([]render.Vec2, len(contour))
	for i, p := range contour {
		out[i] = render.Vec2{X: float32(p.X), Y: float32(p.Y)}
	}
	return out
}
