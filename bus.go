package apds9960

import (
	"context"
	"fmt"
)

var ErrBusBusy = fmt.Errorf("I2C engine is busy (command not completed)")

type AddressableReader interface {
	// ReadFromAddr fills buffer with data read from the device at the given
	// bus address. It may return fewer bytes than requested when the device
	// has less data available; n reports how many bytes of buffer are valid.
	ReadFromAddr(ctx context.Context, address byte, buffer []byte) (n int, err error)
}

type AddressableWriter interface {
	WriteToAddr(ctx context.Context, address byte, buffer []byte) error
	Release(ctx context.Context) error
}

type I2CBus interface {
	AddressableReader
	AddressableWriter
}
