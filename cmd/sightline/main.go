package main

import (
	"log"
	"os"

	"github.com/urfave/cli"
)

func main() {
	log.SetFlags(0)

	app := makeapp()
	if err := app.Run(os.Args); err != nil {
		log.Fatal(err)
	}
}

func makeapp() *cli.App {
	app := cli.NewApp()
	app.Name = "sightline"
	app.Usage = "line-of-sight queries on tile maps"
	app.Description = "Computes what an observer standing on a tile map can see"

	app.Flags = []cli.Flag{
		cli.StringFlag{Name: "map", Value: "data/maps/outpost.json", Usage: "Map to load (.json map or text grid)"},
		cli.StringFlag{Name: "config", Value: "data/config.json", Usage: "Config file; defaults apply when missing"},
		cli.IntFlag{Name: "tile-size", Value: 32, Usage: "Tile size for text grids"},
	}

	observerFlags := []cli.Flag{
		cli.IntFlag{Name: "x", Usage: "Observer world X; defaults to the player spawn"},
		cli.IntFlag{Name: "y", Usage: "Observer world Y; defaults to the player spawn"},
		cli.IntFlag{Name: "range", Usage: "View range in tiles; defaults to the config"},
		cli.Float64Flag{Name: "angle", Usage: "View cone in degrees; defaults to the config"},
		cli.Float64Flag{Name: "facing", Value: 0, Usage: "Facing in degrees, 0 is east, 90 is south"},
	}

	app.Commands = []cli.Command{
		{
			Name:    "trace",
			Aliases: []string{"t"},
			Usage:   "Compute one line-of-sight region and print it",
			Flags: append(observerFlags,
				cli.BoolFlag{Name: "dump", Usage: "Dump the working edge list"},
				cli.BoolFlag{Name: "no-map", Usage: "Do not print the map"},
			),
			Action: traceAction,
		},
		{
			Name:  "sweep",
			Usage: "Compute the region from every open tile and report failures",
			Flags: []cli.Flag{
				cli.IntFlag{Name: "range", Usage: "View range in tiles; defaults to the config"},
				cli.IntFlag{Name: "cap", Usage: "Iteration cap; defaults to the config"},
			},
			Action: sweepAction,
		},
		{
			Name:   "lights",
			Usage:  "Print the area lit by the map's light sources",
			Action: lightsAction,
		},
	}

	return app
}
