package main

import (
	"context"
	"errors"
	"time"

	"github.com/urfave/cli/v2"

	"github.com/mmhobi7/apds9960"
	"github.com/mmhobi7/apds9960/cmd/apds9960/console"
)

var proximityCmd = cli.Command{
	Name:    "proximity",
	Aliases: []string{"prox"},
	Subcommands: []*cli.Command{
		&proximityReadCmd,
	},
}

var proximityReadCmd = cli.Command{
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
		if err := d.EnableProximitySensor(ctx, false); err != nil {
			return console.Exit(1, "error enabling proximity engine: %s", console.Red(err))
		}
		for {
			prox, err := d.ReadProximity(ctx)
			switch {
			case errors.Is(err, apds9960.ErrNotReady):
				time.Sleep(10 * time.Millisecond)
				continue
			case err != nil && c.Bool("watch"):
				console.Errorf("error reading proximity: %s", console.Red(err))
				time.Sleep(100 * time.Millisecond)
				continue
			case err != nil:
				return console.Exit(1, "error reading proximity: %s", console.Red(err))
			}
			console.Printf("proximity: %s\n", console.White(prox))
			if !c.Bool("watch") {
				return nil
			}
			time.Sleep(100 * time.Millisecond)
		}
	},
}
