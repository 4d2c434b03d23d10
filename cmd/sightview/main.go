package main

import (
	"errors"
	"flag"
	"fmt"
	"log"

	"chosenoffset.com/sightline/internal/config"
	"chosenoffset.com/sightline/internal/core/los"
	"chosenoffset.com/sightline/internal/perception"
	"chosenoffset.com/sightline/internal/render/lighting"
	ebitenrender "chosenoffset.com/sightline/internal/render/ebiten"
	"chosenoffset.com/sightline/internal/world/maploader"
)

func main() {
	// Command-line flags
	mapFile := flag.String("map", "data/maps/outpost.json", "Map to load (.json map or text grid)")
	configFile := flag.String("config", "data/config.json", "Config file")
	tileSize := flag.Int("tile-size", 32, "Tile size for text grids")
	flag.Parse()

	cfg, err := config.LoadConfig(*configFile)
	if err != nil {
		log.Fatalf("Failed to load config: %v", err)
	}

	log.Printf("Loading map: %s", *mapFile)
	gameMap, err := maploader.Load(*mapFile, *tileSize)
	if err != nil {
		log.Fatalf("Failed to load map: %v", err)
	}

	log.Printf("Loaded map: %s (%dx%d, tile size: %dpx)",
		gameMap.Data.Name,
		gameMap.Width(),
		gameMap.Height(),
		gameMap.TileSize())

	agents := make([]*perception.Agent, 0, len(gameMap.Data.Agents))
	for i, spawn := range gameMap.Data.Agents {
		x, y := gameMap.CellCenter(spawn.X, spawn.Y)
		agents = append(agents, &perception.Agent{ID: i + 1, Name: spawn.Name, X: float64(x), Y: float64(y)})
	}
	index, err := perception.NewIndex(agents...)
	if err != nil {
		log.Fatalf("Failed to index agents: %v", err)
	}

	lights := lighting.NewManager(gameMap, cfg.Options())
	lights.AddMapLights(gameMap)
	lights.SetPlayerLight(lighting.LightSource{
		Radius:    maploader.DefaultLightRadius * gameMap.TileSize(),
		Angle:     cfg.ConeRadians(),
		Intensity: 1,
		Color:     lighting.DefaultLightColor,
	})

	screenWidth := gameMap.Width() * gameMap.TileSize()
	screenHeight := gameMap.Height() * gameMap.TileSize()

	// Initialize the renderer backend (ebiten)
	rend := ebitenrender.NewRenderer()
	inputMgr := ebitenrender.NewInputManager()
	engine := ebitenrender.NewEngine()

	spawnX, spawnY := gameMap.Spawn()
	game := &Game{
		screenWidth:  screenWidth,
		screenHeight: screenHeight,
		cfg:          cfg,
		gameMap:      gameMap,
		tracker:      los.NewTracker(gameMap, cfg.Options()),
		agents:       index,
		lights:       lights,
		player: Player{
			X:     float64(spawnX),
			Y:     float64(spawnY),
			Speed: 2.0,
		},
		renderer: rend,
		inputMgr: inputMgr,
	}

	engine.SetWindowSize(screenWidth, screenHeight)
	engine.SetWindowResizable(false)
	engine.SetWindowTitle(fmt.Sprintf("Sightline [%s] - WASD move, mouse aim, C/right click cone, E/left click edges, L lamp", gameMap.Data.Name))

	log.Printf("Starting viewer...")
	if err := engine.RunGame(game); err != nil && !errors.Is(err, errQuit) {
		log.Fatal(err)
	}
}
