package main

import (
	"context"
	"errors"
	"time"

	"github.com/urfave/cli/v2"

	"github.com/mmhobi7/apds9960"
	"github.com/mmhobi7/apds9960/cmd/apds9960/console"
)

var lightCmd = cli.Command{
	Name: "light",
	Subcommands: []*cli.Command{
		&lightReadCmd,
	},
}

var lightReadCmd = cli.Command{
	Name:    "read",
	Aliases: []string{"rd"},
	Flags: append([]cli.Flag{
		&cli.BoolFlag{Name: "watch,w", Usage: "keep polling"},
	}, busFlags...),
	Action: func(c *cli.Context) error {
		ctx := console.SetVerbose(context.Background(), c.Bool("verbose"))
		bus, err := newBus(c)
		if err != nil {
			return console.Exit(1, "adapter initialization error: %s", console.Red(err))
		}
		d := apds9960.New(bus)
		if err := d.Enable(ctx); err != nil {
			return console.Exit(1, "error powering on: %s", console.Red(err))
		}
		if err := d.EnableLight(ctx); err != nil {
			return console.Exit(1, "error enabling light engine: %s", console.Red(err))
		}
		for {
			data, err := d.ReadLight(ctx)
			switch {
			case errors.Is(err, apds9960.ErrNotReady):
				time.Sleep(50 * time.Millisecond)
				continue
			case err != nil && c.Bool("watch"):
				console.Errorf("error reading light data: %s", console.Red(err))
				time.Sleep(200 * time.Millisecond)
				continue
			case err != nil:
				return console.Exit(1, "error reading light data: %s", console.Red(err))
			}
			console.Printf("clear: %s red: %s green: %s blue: %s\n",
				console.White(data.Clear), console.Red(data.Red), console.Green(data.Green), console.Blue(data.Blue))
			if !c.Bool("watch") {
				return nil
			}
			time.Sleep(200 * time.Millisecond)
		}
	},
}
