package i2c

import (
	"context"
	"fmt"

	"github.com/mmhobi7/apds9960"
	"periph.io/x/conn/v3/i2c"
	"periph.io/x/conn/v3/i2c/i2creg"
	"periph.io/x/host/v3"
)

var _ apds9960.I2CBus = &GenericBus{}

// GenericBus adapts a periph.io I2C bus to the apds9960 bus contract. A
// kernel i2c-dev transaction either transfers the full buffer or fails, so
// reads always report len(buffer) on success.
type GenericBus struct {
	bus i2c.BusCloser
}

func NewGenericBus(dev string) (*GenericBus, error) {
	if _, err := host.Init(); err != nil {
		return nil, fmt.Errorf("could not init host: %w", err)
	}
	bus, err := i2creg.Open(dev)
	if err != nil {
		return nil, fmt.Errorf("could not open i2c bus: %w", err)
	}
	return &GenericBus{
		bus: bus,
	}, nil
}

func (b *GenericBus) ReadFromAddr(ctx context.Context, address byte, buffer []byte) (int, error) {
	err := b.bus.Tx(uint16(address), nil, buffer)
	if err != nil {
		return 0, fmt.Errorf("could not read from i2c bus %x: %w", address, err)
	}
	return len(buffer), nil
}

func (b *GenericBus) WriteToAddr(ctx context.Context, address byte, buffer []byte) error {
	err := b.bus.Tx(uint16(address), buffer, nil)
	if err != nil {
		return fmt.Errorf("could not write to i2c bus %x: %w", address, err)
	}
	return nil
}

func (b *GenericBus) Release(ctx context.Context) error {
	return nil
}

func (b *GenericBus) Close() error {
	return b.bus.Close()
}
