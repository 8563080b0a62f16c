package main

import (
	"github.com/urfave/cli/v2"
	"gobot.io/x/gobot/v2/platforms/friendlyelec/nanopi"

	"github.com/mmhobi7/apds9960"
	"github.com/mmhobi7/apds9960/adapter"
	"github.com/mmhobi7/apds9960/i2c"
)

var busFlags = []cli.Flag{
	&cli.StringFlag{
		Name:  "adapter,a",
		Value: "mcp2221",
		Usage: "bus transport: mcp2221, i2c or gobot",
	},
	&cli.StringFlag{
		Name:  "bus,b",
		Value: "/dev/i2c-1",
		Usage: "i2c bus device (i2c adapter only)",
	},
	&cli.BoolFlag{Name: "verbose,v"},
}

// newBus opens the transport selected with --adapter the way the other
// sensor commands do.
func newBus(c *cli.Context) (apds9960.I2CBus, error) {
	switch c.String("adapter") {
	case "i2c":
		return i2c.NewGenericBus(c.String("bus"))
	case "gobot":
		npi := nanopi.NewNeoAdaptor()
		if err := npi.I2cBusAdaptor.Connect(); err != nil {
			return nil, err
		}
		return adapter.NewGobotBus(npi, -1), nil
	default:
		a := adapter.NewMCP2221()
		if err := a.Init(); err != nil {
			return nil, err
		}
		return a, nil
	}
}
