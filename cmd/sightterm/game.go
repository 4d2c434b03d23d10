package main

import (
	"fmt"
	"log"
	"math"
	"math/rand"
	"time"

	"github.com/gdamore/tcell/v2"

	"chosenoffset.com/sightline/internal/config"
	"chosenoffset.com/sightline/internal/core/los"
	"chosenoffset.com/sightline/internal/perception"
	"chosenoffset.com/sightline/internal/render"
	"chosenoffset.com/sightline/internal/ui/sightmap"
	"chosenoffset.com/sightline/internal/world/maploader"
)

const (
	agentStepMs = 600
	turnStep    = math.Pi / 4
)

var (
	styleSelf   = tcell.StyleDefault.Foreground(tcell.ColorYellow).Bold(true)
	styleAgent  = tcell.StyleDefault.Foreground(tcell.ColorRed).Bold(true)
	styleStatus = tcell.StyleDefault.Foreground(tcell.ColorWhite).Reverse(true)
	styleMemory = tcell.StyleDefault.Foreground(tcell.NewRGBColor(70, 70, 80))
)

// Game is a turn-free terminal view of one observer walking a map
type Game struct {
	screen tcell.Screen

	cfg     *config.Config
	gameMap *maploader.Map
	tracker *los.Tracker
	index   *perception.Index
	agents  []*perception.Agent
	memory  *sightmap.Memory

	// Player tile and facing
	px, py int
	facing float64
	coneOn bool

	frame    *sightmap.Frame
	spotted  map[int]bool
	lastStep time.Time
	status   string
	rng      *rand.Rand
	sound    *sound
}

func NewGame(cfg *config.Config, gameMap *maploader.Map, withSound bool) (*Game, error) {
	agents := make([]*perception.Agent, 0, len(gameMap.Data.Agents))
	for i, spawn := range gameMap.Data.Agents {
		x, y := gameMap.CellCenter(spawn.X, spawn.Y)
		agents = append(agents, &perception.Agent{ID: i + 1, Name: spawn.Name, X: float64(x), Y: float64(y)})
	}
	index, err := perception.NewIndex(agents...)
	if err != nil {
		return nil, err
	}

	screen, err := tcell.NewScreen()
	if err != nil {
		return nil, err
	}
	if err := screen.Init(); err != nil {
		return nil, err
	}

	g := &Game{
		screen:   screen,
		cfg:      cfg,
		gameMap:  gameMap,
		tracker:  los.NewTracker(gameMap, cfg.Options()),
		index:    index,
		agents:   agents,
		memory:   sightmap.NewMemory(gameMap.Width(), gameMap.Height()),
		px:       gameMap.Data.PlayerSpawn.X,
		py:       gameMap.Data.PlayerSpawn.Y,
		spotted:  make(map[int]bool),
		lastStep: time.Now(),
		rng:      rand.New(rand.NewSource(time.Now().UnixNano())),
		sound:    &sound{},
	}

	if withSound {
		s, err := newSound()
		if err != nil {
			// Non-fatal, the view works without sound
			log.Printf("Audio initialization failed: %v", err)
		}
		g.sound = s
	}

	g.look()
	return g, nil
}

// observer is the player standing in the centre of their tile
func (g *Game) observer() los.Observer {
	x, y := g.gameMap.CellCenter(g.px, g.py)
	o := g.cfg.Observer(x, y, g.gameMap.TileSize(), g.facing)
	if !g.coneOn {
		o.Angle = 2 * math.Pi
	}
	return o
}

// look recomputes the view and announces agents that just came into sight
func (g *Game) look() {
	o := g.observer()
	region, err := g.tracker.Compute(o)
	if err != nil {
		log.Printf("WARNING: view from tile (%d, %d): %v", g.px, g.py, err)
		g.status = err.Error()
		return
	}

	visible := g.index.Visible(region, 0)
	now := make(map[int]bool, len(visible))
	for _, a := range visible {
		now[a.ID] = true
		if !g.spotted[a.ID] {
			g.status = "spotted " + a.Name
			g.sound.blip()
		}
	}
	g.spotted = now

	self := los.Point{X: float64(o.X), Y: float64(o.Y)}
	g.frame = sightmap.Build(g.gameMap, region, g.memory, self, visible)
}

func (g *Game) canStand(x, y int) bool {
	return g.gameMap.Walkable(x, y) && g.gameMap.Transparent(x, y)
}

func (g *Game) move(dx, dy int) {
	if g.canStand(g.px+dx, g.py+dy) {
		g.px += dx
		g.py += dy
	}
}

// facingTile is the tile one step along the facing
func (g *Game) facingTile() (int, int) {
	return g.px + int(math.Round(math.Cos(g.facing))), g.py + int(math.Round(math.Sin(g.facing)))
}

// toggleFacing opens or closes the tile in front, like a door
func (g *Game) toggleFacing() {
	x, y := g.facingTile()
	if !g.gameMap.InBounds(x, y) {
		return
	}
	for _, a := range g.agents {
		if c := los.CellOf(int(a.X), int(a.Y), g.gameMap.TileSize()); c.X == x && c.Y == y {
			g.status = a.Name + " is in the way"
			return
		}
	}

	if err := g.gameMap.SetBlocking(x, y, !g.gameMap.BlocksSight(x, y)); err != nil {
		log.Printf("WARNING: %v", err)
		return
	}
	g.tracker.Invalidate()
}

// stepAgents moves every agent one random walkable tile
func (g *Game) stepAgents() {
	ts := g.gameMap.TileSize()
	dirs := [][2]int{{1, 0}, {-1, 0}, {0, 1}, {0, -1}}

	for _, a := range g.agents {
		cell := los.CellOf(int(a.X), int(a.Y), ts)
		d := dirs[g.rng.Intn(len(dirs))]
		nx, ny := cell.X+d[0], cell.Y+d[1]
		if !g.canStand(nx, ny) || (nx == g.px && ny == g.py) {
			continue
		}

		x, y := g.gameMap.CellCenter(nx, ny)
		if err := g.index.Move(a.ID, float64(x), float64(y)); err != nil {
			log.Printf("WARNING: agent %s: %v", a.Name, err)
		}
	}
}

func (g *Game) draw() {
	g.screen.Clear()

	if g.frame != nil {
		for y := 0; y < g.frame.Height; y++ {
			for x := 0; x < g.frame.Width; x++ {
				cell := g.frame.At(x, y)
				r, style := g.cellLook(x, y, cell)
				g.screen.SetContent(x, y, r, nil, style)
			}
		}
	}

	mode := "360"
	if g.coneOn {
		mode = "cone"
	}
	hits, misses := g.tracker.Cache().Stats()
	status := []rune(fmt.Sprintf(" %s | cache %d/%d | %s ", mode, hits, hits+misses, g.status))
	for i, r := range status {
		g.screen.SetContent(i, g.gameMap.Height()+1, r, nil, styleStatus)
	}

	g.screen.Show()
}

func (g *Game) cellLook(x, y int, cell sightmap.Cell) (rune, tcell.Style) {
	switch {
	case cell.Self:
		return facingRune(g.facing), styleSelf
	case cell.Agent != nil:
		return cell.Rune(), styleAgent
	case cell.State == sightmap.Hidden:
		return ' ', tcell.StyleDefault
	}

	r := cell.Rune()
	// Tiles toggled away from their definition
	if tile, err := g.gameMap.GetTileAt(x, y); err == nil && tile.BlocksSight() != g.gameMap.BlocksSight(x, y) {
		if g.gameMap.BlocksSight(x, y) {
			r = '+'
		} else {
			r = '\''
		}
	}

	if cell.State == sightmap.Remembered {
		return r, styleMemory
	}

	style := tcell.StyleDefault
	if c, err := render.ParseHexColor(cell.Color); err == nil {
		style = style.Foreground(tcell.NewRGBColor(int32(c.R), int32(c.G), int32(c.B)))
	}
	return r, style
}

// facingRune draws the player as an arrow along one of eight directions
func facingRune(facing float64) rune {
	arrows := []rune{'→', '↘', '↓', '↙', '←', '↖', '↑', '↗'}
	i := int(math.Round(facing/turnStep)) % len(arrows)
	if i < 0 {
		i += len(arrows)
	}
	return arrows[i]
}

func (g *Game) handleInput(ev tcell.Event) bool {
	switch ev := ev.(type) {
	case *tcell.EventKey:
		switch ev.Key() {
		case tcell.KeyEscape, tcell.KeyCtrlC:
			return false
		case tcell.KeyUp:
			g.move(0, -1)
		case tcell.KeyDown:
			g.move(0, 1)
		case tcell.KeyLeft:
			g.move(-1, 0)
		case tcell.KeyRight:
			g.move(1, 0)
		case tcell.KeyRune:
			switch ev.Rune() {
			case 'x':
				return false
			case 'k', 'w':
				g.move(0, -1)
			case 'j', 's':
				g.move(0, 1)
			case 'h', 'a':
				g.move(-1, 0)
			case 'l', 'd':
				g.move(1, 0)
			case 'q':
				g.facing = math.Remainder(g.facing-turnStep, 2*math.Pi)
			case 'e':
				g.facing = math.Remainder(g.facing+turnStep, 2*math.Pi)
			case 'c':
				g.coneOn = !g.coneOn
			case 'f', ' ':
				g.toggleFacing()
			case 'm':
				g.memory.Forget()
			}
		}
		g.look()

	case *tcell.EventResize:
		g.screen.Sync()
	}

	return true
}

func (g *Game) run() {
	ticker := time.NewTicker(16 * time.Millisecond) // ~60 FPS
	defer ticker.Stop()

	eventChan := make(chan tcell.Event, 100)
	go func() {
		for {
			eventChan <- g.screen.PollEvent()
		}
	}()

	for {
		select {
		case ev := <-eventChan:
			if !g.handleInput(ev) {
				return
			}

		case <-ticker.C:
			if time.Since(g.lastStep).Milliseconds() > agentStepMs {
				g.stepAgents()
				g.lastStep = time.Now()
				g.look()
			}
			g.draw()
		}
	}
}

func (g *Game) cleanup() {
	g.sound.close()
	g.screen.Fini()
}
