package main

import (
	"context"
	"errors"
	"log/slog"
	"time"

	"github.com/urfave/cli/v2"

	"github.com/mmhobi7/apds9960"
	"github.com/mmhobi7/apds9960/cmd/apds9960/console"
)

var gestureCmd = cli.Command{
	Name: "gesture",
	Subcommands: []*cli.Command{
		&gestureWatchCmd,
	},
}

var gestureWatchCmd = cli.Command{
	Name: "watch",
	Flags: append([]cli.Flag{
		&cli.IntFlag{
			Name:  "rotation,r",
			Usage: "sensor mounting rotation (0, 90, 180 or 270 degrees)",
		},
		&cli.StringFlag{
			Name:  "profile,p",
			Usage: "yaml sensor profile to apply before watching",
		},
	}, busFlags...),
	Action: func(c *cli.Context) error {
		ctx := console.SetVerbose(context.Background(), c.Bool("verbose"))
		bus, err := newBus(c)
		if err != nil {
			return console.Exit(1, "adapter initialization error: %s", console.Red(err))
		}
		d := apds9960.New(bus)
		if err := d.Init(ctx); err != nil {
			return console.Exit(1, "initialization error: %s", console.Red(err))
		}
		if path := c.String("profile"); path != "" {
			profile, err := loadProfile(path)
			if err != nil {
				return console.Exit(1, "profile error: %s", console.Red(err))
			}
			if err := profile.apply(ctx, d); err != nil {
				return console.Exit(1, "profile apply error: %s", console.Red(err))
			}
		}
		if c.IsSet("rotation") {
			if err := d.SetRotation(c.Int("rotation")); err != nil {
				return console.Exit(1, "rotation error: %s", console.Red(err))
			}
		}
		if err := d.EnableGesture(ctx); err != nil {
			return console.Exit(1, "error enabling gesture engine: %s", console.Red(err))
		}
		if err := d.EnableGestureMode(ctx); err != nil {
			return console.Exit(1, "error entering gesture mode: %s", console.Red(err))
		}
		console.Printf("watching for gestures (rotation %s), ctrl-c to stop\n", console.White(d.Rotation()))
		for {
			dir, err := d.DecodeGesture(ctx)
			switch {
			case errors.Is(err, apds9960.ErrNotReady):
				// nothing buffered yet; we own the poll cadence
				time.Sleep(20 * time.Millisecond)
				continue
			case err != nil:
				return console.Exit(1, "decode error: %s", console.Red(err))
			}
			if overflown, err := d.HasGestureDataOverflown(ctx); err == nil && overflown {
				console.Warnf("gesture FIFO overflowed, datasets were dropped")
			}
			if dir == apds9960.DirectionNone {
				slog.Debug("drained gesture data without a confident direction")
				continue
			}
			console.Printf("gesture: %s\n", console.Green(dir))
		}
	},
}
