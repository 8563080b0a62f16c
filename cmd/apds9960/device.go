package main

import (
	"context"

	"github.com/urfave/cli/v2"

	"github.com/mmhobi7/apds9960"
	"github.com/mmhobi7/apds9960/cmd/apds9960/console"
)

var idCmd = cli.Command{
	Name:  "id",
	Usage: "read the device identification register",
	Flags: busFlags,
	Action: func(c *cli.Context) error {
		ctx := console.SetVerbose(context.Background(), c.Bool("verbose"))
		bus, err := newBus(c)
		if err != nil {
			return console.Exit(1, "adapter initialization error: %s", console.Red(err))
		}
		d := apds9960.New(bus)
		id, err := d.DeviceID(ctx)
		if err != nil {
			return console.Exit(1, "error reading device id: %s", console.Red(err))
		}
		console.Printf("device id: %s\n", console.White(id))
		return nil
	},
}

var initCmd = cli.Command{
	Name:  "init",
	Usage: "program the power-on configuration",
	Flags: append([]cli.Flag{
		&cli.BoolFlag{Name: "yes,y", Usage: "skip confirmation"},
	}, busFlags...),
	Action: func(c *cli.Context) error {
		ctx := console.SetVerbose(context.Background(), c.Bool("verbose"))
		if !c.Bool("yes") {
			ok, err := console.Confirm("this will reprogram all sensor configuration registers, continue?", false)
			if err != nil {
				return err
			}
			if !ok {
				console.Print("aborted")
				return nil
			}
		}
		bus, err := newBus(c)
		if err != nil {
			return console.Exit(1, "adapter initialization error: %s", console.Red(err))
		}
		d := apds9960.New(bus)
		if err := d.Init(ctx); err != nil {
			return console.Exit(1, "initialization error: %s", console.Red(err))
		}
		console.Printf("sensor initialized\n")
		return nil
	},
}
