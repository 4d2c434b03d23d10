package main

import (
	"fmt"
	"log"
	"math"
	"strings"

	"github.com/davecgh/go-spew/spew"
	"github.com/pkg/errors"
	"github.com/ttacon/chalk"
	"github.com/urfave/cli"

	"chosenoffset.com/sightline/internal/config"
	"chosenoffset.com/sightline/internal/core/los"
	"chosenoffset.com/sightline/internal/perception"
	"chosenoffset.com/sightline/internal/render/lighting"
	"chosenoffset.com/sightline/internal/ui/sightmap"
	"chosenoffset.com/sightline/internal/world/maploader"
)

type world struct {
	cfg     *config.Config
	gameMap *maploader.Map
	agents  *perception.Index
}

func loadWorld(c *cli.Context) (*world, error) {
	cfg, err := config.LoadConfig(c.GlobalString("config"))
	if err != nil {
		return nil, err
	}

	gameMap, err := maploader.Load(c.GlobalString("map"), c.GlobalInt("tile-size"))
	if err != nil {
		return nil, err
	}

	agents := make([]*perception.Agent, 0, len(gameMap.Data.Agents))
	for i, spawn := range gameMap.Data.Agents {
		x, y := gameMap.CellCenter(spawn.X, spawn.Y)
		agents = append(agents, &perception.Agent{ID: i + 1, Name: spawn.Name, X: float64(x), Y: float64(y)})
	}
	index, err := perception.NewIndex(agents...)
	if err != nil {
		return nil, err
	}

	log.Printf("loaded %s: %dx%d tiles of %d, %d agents, %d lights",
		gameMap.Data.Name, gameMap.Width(), gameMap.Height(), gameMap.TileSize(),
		len(gameMap.Data.Agents), len(gameMap.Data.Lights))

	return &world{cfg: cfg, gameMap: gameMap, agents: index}, nil
}

func (w *world) observer(c *cli.Context) los.Observer {
	ts := w.gameMap.TileSize()

	x, y := w.gameMap.Spawn()
	if c.IsSet("x") {
		x = c.Int("x")
	}
	if c.IsSet("y") {
		y = c.Int("y")
	}

	o := w.cfg.Observer(x, y, ts, c.Float64("facing")*math.Pi/180)
	if c.IsSet("range") {
		o.Range = c.Int("range") * ts
	}
	if c.IsSet("angle") {
		o.Angle = c.Float64("angle") * math.Pi / 180
	}
	return o
}

func traceAction(c *cli.Context) error {
	w, err := loadWorld(c)
	if err != nil {
		return cli.NewExitError(chalk.Red.Color(err.Error()), 1)
	}

	o := w.observer(c)
	tracker := los.NewTracker(w.gameMap, w.cfg.Options())

	trace, err := tracker.Trace(o)
	if c.Bool("dump") && trace != nil {
		spew.Dump(trace.Edges)
	}
	if err != nil {
		return cli.NewExitError(chalk.Red.Color(err.Error()), 1)
	}

	if trace.Region.Empty() {
		log.Println(chalk.Yellow.Color(fmt.Sprintf("observer at (%d, %d) sees nothing", o.X, o.Y)))
		return nil
	}

	projections := 0
	for _, e := range trace.Edges {
		if e.Projection {
			projections++
		}
	}

	log.Printf("observer (%d, %d) cell %v range %d cone %.0f° facing %.0f°",
		o.X, o.Y, trace.Cell, o.Range, o.Angle*180/math.Pi, o.Direction*180/math.Pi)
	log.Printf("edges %d (%d projected), polygon %d vertices, region %d contours",
		len(trace.Edges), projections, len(trace.Polygon)-1, len(trace.Region.Contours()))
	log.Println(chalk.Green.Color(fmt.Sprintf("visible area %.1f", trace.Region.Area())))

	self := los.Point{X: float64(o.X), Y: float64(o.Y)}
	seen := w.agents.Visible(trace.Region, 0)
	for _, a := range seen {
		log.Println(chalk.Magenta.Color(fmt.Sprintf("spotted %s at (%.0f, %.0f)", a.Name, a.X, a.Y)))
	}

	if !c.Bool("no-map") {
		frame := sightmap.Build(w.gameMap, trace.Region, nil, self, seen)
		fmt.Println(strings.Join(frame.Lines(), "\n"))
	}

	return nil
}

func sweepAction(c *cli.Context) error {
	w, err := loadWorld(c)
	if err != nil {
		return cli.NewExitError(chalk.Red.Color(err.Error()), 1)
	}

	opts := w.cfg.Options()
	if c.IsSet("cap") {
		opts.IterationCap = c.Int("cap")
	}
	tracker := los.NewTracker(w.gameMap, opts)

	rangeTiles := w.cfg.Perception.VisionRange
	if c.IsSet("range") {
		rangeTiles = c.Int("range")
	}

	queries, failures := 0, 0
	for y := 0; y < w.gameMap.Height(); y++ {
		for x := 0; x < w.gameMap.Width(); x++ {
			if w.gameMap.BlocksSight(x, y) {
				continue
			}

			cx, cy := w.gameMap.CellCenter(x, y)
			o := los.Observer{X: cx, Y: cy, Range: rangeTiles * w.gameMap.TileSize(), Angle: 2 * math.Pi}

			queries++
			region, err := tracker.Compute(o)
			switch {
			case err != nil:
			case region.Empty():
				err = errors.New("empty region")
			case !region.Contains(los.Point{X: float64(cx), Y: float64(cy)}):
				err = errors.New("region excludes the observer")
			}
			if err != nil {
				failures++
				log.Println(chalk.Red.Color(fmt.Sprintf("tile (%d, %d): %v", x, y, err)))
			}
		}
	}

	hits, misses := tracker.Cache().Stats()
	log.Printf("%d queries, cache %d hits / %d misses", queries, hits, misses)

	if failures > 0 {
		return cli.NewExitError(chalk.Red.Color(fmt.Sprintf("%d of %d queries failed", failures, queries)), 1)
	}
	log.Println(chalk.Green.Color("every region closed and holds its observer"))
	return nil
}

func lightsAction(c *cli.Context) error {
	w, err := loadWorld(c)
	if err != nil {
		return cli.NewExitError(chalk.Red.Color(err.Error()), 1)
	}

	mgr := lighting.NewManager(w.gameMap, w.cfg.Options())
	mgr.AddMapLights(w.gameMap)
	lits := mgr.Regions()
	if len(lits) == 0 {
		log.Println(chalk.Yellow.Color("map has no lights"))
		return nil
	}

	for _, l := range lits {
		log.Printf("%s at (%d, %d) radius %d: area %.1f", l.ID, l.Light.X, l.Light.Y, l.Light.Radius, l.Region.Area())
	}

	var b strings.Builder
	for y := 0; y < w.gameMap.Height(); y++ {
		for x := 0; x < w.gameMap.Width(); x++ {
			tile, _ := w.gameMap.GetTileAt(x, y)
			glyph := tile.Rune()

			lit := false
			for _, l := range lits {
				if sightmap.TileVisible(w.gameMap, l.Region, x, y) {
					lit = true
					break
				}
			}
			if lit {
				b.WriteString(chalk.Yellow.Color(string(glyph)))
			} else {
				b.WriteRune(glyph)
			}
		}
		b.WriteByte('\n')
	}
	fmt.Print(b.String())

	return nil
}
