// Package adapter provides desktop-side transports for talking to the sensor
// without a native I2C bus: the Microchip MCP2221 USB-to-I2C bridge and a
// gobot connector wrapper.
package adapter

import (
	"context"
	"encoding/binary"
	"encoding/hex"
	"errors"
	"fmt"
	"sync"
	"time"

	"github.com/karalabe/hid"

	"github.com/mmhobi7/apds9960"
	"github.com/mmhobi7/apds9960/cmd/apds9960/console"
)

// MCP2221 USB identifiers
const (
	VendorID  = 0x04D8
	ProductID = 0x00DD
)

// HID command codes (datasheet DS20005565B, section 3.1)
const (
	cmdStatusSetParameters = 0x10
	cmdGetI2CData          = 0x40
	cmdI2CWriteData        = 0x90
	cmdI2CReadData         = 0x91
)

// hidChunkLen is the largest I2C payload one 64-byte HID report can carry.
const hidChunkLen = 60

var ErrDeviceNotFound = errors.New("MCP2221 device not found")
var ErrCommandFailed = errors.New("command failed")

// MCP2221 drives the Microchip USB-to-I2C bridge over raw HID reports. The
// 64-byte request/response buffers are reused between commands; the mutex
// serializes access so a single adapter can be shared between drivers.
type MCP2221 struct {
	mx           sync.Mutex
	dev          *hid.Device
	request      [64]byte
	response     [64]byte
	responseWait time.Duration
}

func NewMCP2221() *MCP2221 {
	return &MCP2221{responseWait: 50 * time.Millisecond}
}

// Init opens the HID device. With more than one bridge attached the first
// enumerated device is used.
func (d *MCP2221) Init() error {
	d.mx.Lock()
	defer d.mx.Unlock()
	if d.dev != nil {
		return nil
	}
	devs := hid.Enumerate(VendorID, ProductID)
	if len(devs) == 0 {
		return ErrDeviceNotFound
	}
	dev, err := devs[0].Open()
	if err != nil {
		return fmt.Errorf("error opening device: %w", err)
	}
	d.dev = dev
	return nil
}

// Close releases the HID handle.
func (d *MCP2221) Close() error {
	d.mx.Lock()
	defer d.mx.Unlock()
	if d.dev == nil {
		return nil
	}
	err := d.dev.Close()
	d.dev = nil
	return err
}

func (d *MCP2221) WriteToAddr(ctx context.Context, address byte, buffer []byte) error {
	d.mx.Lock()
	defer d.mx.Unlock()
	d.resetBuffers()
	d.request[0] = cmdI2CWriteData
	binary.LittleEndian.PutUint16(d.request[1:3], uint16(len(buffer)))
	d.request[3] = address << 1
	copy(d.request[4:], buffer)
	if err := d.transfer(ctx); err != nil {
		return fmt.Errorf("write to %x failed: %w", address, err)
	}
	if d.response[1] != 0x00 {
		// the I2C engine has not completed the previous command
		return apds9960.ErrBusBusy
	}
	return nil
}

func (d *MCP2221) ReadFromAddr(ctx context.Context, address byte, buffer []byte) (int, error) {
	d.mx.Lock()
	defer d.mx.Unlock()
	d.resetBuffers()
	d.request[0] = cmdI2CReadData
	binary.LittleEndian.PutUint16(d.request[1:3], uint16(len(buffer)))
	d.request[3] = address<<1 | 1
	if err := d.transfer(ctx); err != nil {
		return 0, fmt.Errorf("bus read from %x failed: %w", address, err)
	}
	if d.response[1] != 0x00 {
		return 0, apds9960.ErrBusBusy
	}

	// the engine hands the data back in up to 60-byte chunks; a chunk shorter
	// than the maximum means the slave had no more data to give
	read := 0
	for read < len(buffer) {
		d.resetBuffers()
		d.request[0] = cmdGetI2CData
		if err := d.transfer(ctx); err != nil {
			return read, fmt.Errorf("error getting read data from adapter: %w", err)
		}
		if d.response[1] != 0x00 {
			return read, fmt.Errorf("get data: %w", ErrCommandFailed)
		}
		size := int(d.response[3])
		if size == 127 {
			return read, fmt.Errorf("I2C engine reported a read error")
		}
		if size > len(buffer)-read {
			size = len(buffer) - read
		}
		copy(buffer[read:], d.response[4:4+size])
		read += size
		if size < hidChunkLen {
			break
		}
	}
	return read, nil
}

// Release cancels the current I2C transfer and frees the bus, recovering the
// engine after an aborted transaction.
func (d *MCP2221) Release(ctx context.Context) error {
	d.mx.Lock()
	defer d.mx.Unlock()
	d.resetBuffers()
	d.request[0] = cmdStatusSetParameters
	d.request[2] = 0x10 // cancel current transfer
	if err := d.transfer(ctx); err != nil {
		return fmt.Errorf("bus release failed: %w", err)
	}
	return nil
}

// Status describes the state of the bridge's I2C engine.
type Status struct {
	RequestedTransferLen uint16
	TransferredLen       uint16
	DataBufferCounter    int
	SpeedDivider         int
	Timeout              int
	ReadPending          int
}

func (d *MCP2221) Status(ctx context.Context) (*Status, error) {
	d.mx.Lock()
	defer d.mx.Unlock()
	d.resetBuffers()
	d.request[0] = cmdStatusSetParameters
	if err := d.transfer(ctx); err != nil {
		return nil, fmt.Errorf("status request failed: %w", err)
	}
	return &Status{
		RequestedTransferLen: binary.LittleEndian.Uint16(d.response[9:11]),
		TransferredLen:       binary.LittleEndian.Uint16(d.response[11:13]),
		DataBufferCounter:    int(d.response[13]),
		SpeedDivider:         int(d.response[14]),
		Timeout:              int(d.response[15]),
		ReadPending:          int(d.response[25]),
	}, nil
}

// transfer sends the prepared request report and reads the response report.
// The bridge needs a moment between the two; the wait is also the point where
// a cancelled context is honored.
func (d *MCP2221) transfer(ctx context.Context) error {
	if d.dev == nil {
		return ErrDeviceNotFound
	}
	verbose := console.IsVerbose(ctx)
	if verbose {
		console.Printf("sending message to adapter:\n%s\n", hex.Dump(d.request[:]))
	}
	n, err := d.dev.Write(d.request[:])
	if err != nil {
		return fmt.Errorf("could not write request: %w", err)
	}
	if n != len(d.request) {
		return fmt.Errorf("short write: %d", n)
	}
	timer := time.NewTimer(d.responseWait)
	defer timer.Stop()
	select {
	case <-timer.C:
	case <-ctx.Done():
		return ctx.Err()
	}
	n, err = d.dev.Read(d.response[:])
	if err != nil {
		return fmt.Errorf("could not read response: %w", err)
	}
	if n != len(d.response) {
		return fmt.Errorf("short read: %d", n)
	}
	if verbose {
		console.Printf("adapter response:\n%s\n", hex.Dump(d.response[:]))
	}
	return nil
}

func (d *MCP2221) resetBuffers() {
	clear(d.request[:])
	clear(d.response[:])
}
