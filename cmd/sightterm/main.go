package main

import (
	"flag"
	"fmt"
	"io"
	"log"
	"os"

	"chosenoffset.com/sightline/internal/config"
	"chosenoffset.com/sightline/internal/world/maploader"
)

func main() {
	mapFile := flag.String("map", "data/maps/bunker.txt", "Map to load (.json map or text grid)")
	configFile := flag.String("config", "data/config.json", "Config file")
	logFile := flag.String("log", "", "Write logs to this file instead of discarding them")
	mute := flag.Bool("mute", false, "Disable sound")
	tileSize := flag.Int("tile-size", 32, "Tile size for text grids")
	flag.Parse()

	// The terminal is taken over by the screen, so logs go to a file or nowhere
	if *logFile != "" {
		f, err := os.OpenFile(*logFile, os.O_CREATE|os.O_WRONLY|os.O_APPEND, 0o644)
		if err != nil {
			fmt.Fprintf(os.Stderr, "Failed to open log: %v\n", err)
			os.Exit(1)
		}
		defer f.Close()
		log.SetOutput(f)
	} else {
		log.SetOutput(io.Discard)
	}

	cfg, err := config.LoadConfig(*configFile)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Failed to load config: %v\n", err)
		os.Exit(1)
	}

	gameMap, err := maploader.Load(*mapFile, *tileSize)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Failed to load map: %v\n", err)
		os.Exit(1)
	}

	game, err := NewGame(cfg, gameMap, !*mute)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Failed to initialize: %v\n", err)
		os.Exit(1)
	}
	defer game.cleanup()

	game.run()
}
