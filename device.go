package apds9960

import (
	"context"
	"encoding/binary"
	"fmt"
)

// APDS-9960 7-bit I2C address. The chip has no address pins, so every part
// answers at 0x39.
const DefaultAddress = 0x39

var ErrNotReady = fmt.Errorf("apds9960: data not ready")
var ErrInvalidRotation = fmt.Errorf("apds9960: rotation must be 0, 90, 180 or 270 degrees")

// Device represents a Broadcom APDS-9960 proximity, ambient light, RGB and
// gesture sensor. Typical usage:
//
//	d := apds9960.New(bus)
//	if err := d.Init(ctx); err != nil { ... }
//	if err := d.EnableGesture(ctx); err != nil { ... }
//	if err := d.EnableGestureMode(ctx); err != nil { ... }
//	for {
//		dir, err := d.DecodeGesture(ctx)
//		if errors.Is(err, apds9960.ErrNotReady) {
//			continue
//		}
//		...
//	}
//
// The device is not safe for concurrent use; the shadow register cache and the
// gesture FIFO buffer are owned by a single call path.
type Device struct {
	transport I2CBus
	addr      byte
	fifo      [fifoBufferLen]byte

	// Shadow copies of the multiplexed configuration registers. Each field
	// always holds the last value successfully written to hardware; a failed
	// write leaves the shadow at its prior, still hardware-consistent value.
	enable  byte
	config1 byte
	config2 byte
	config3 byte
	pers    byte
	gconf1  byte
	gconf4  byte

	rotation int
}

func New(transport I2CBus) *Device {
	return &Device{
		transport: transport,
		addr:      DefaultAddress,
		// power-on register defaults per datasheet
		config1: 0x40,
		config2: 0x01,
	}
}

// Init probes the device and programs the power-on configuration used by the
// reference drivers: all engines disabled, proximity 4x gain with a 100mA LED
// and 0-50 thresholds, light 4x gain with 256 integration cycles (712ms),
// gesture 4x gain with entry/exit thresholds 40/30. Engines still have to be
// enabled individually afterwards.
func (d *Device) Init(ctx context.Context) error {
	// a successful ID read confirms the device answers on the bus
	if _, err := d.DeviceID(ctx); err != nil {
		return fmt.Errorf("apds9960: probe failed: %w", err)
	}

	if err := d.Disable(ctx); err != nil {
		return err
	}

	seq := []struct {
		reg   byte
		value byte
	}{
		{regPPulse, 0x87},    // 16us, 8 pulses
		{regPOffsetUR, 0x00},
		{regPOffsetDL, 0x00},
		{regPILT, 0x00},
		{regPIHT, 50},
		{regATime, 0x00},     // 256 cycles = 712ms
		{regPers, 0x40},      // 4 proximity cycles, 0 ALS cycles
		{regWTime, 246},      // 27ms
		{regConfig1, 0x60},   // no 12x wait
		{regConfig2, 0x01},   // LED boost 100%, no saturation interrupts
		{regConfig3, 0x00},   // all photodiodes enabled
		{regGPEnTh, 40},
		{regGExTh, 30},
		{regGConf1, 0x40},    // 4 datasets for interrupt, 1 for exit
		{regGConf2, 0x41},    // 4x gain, 100mA LED, 2.8ms wait
		{regGPulse, 0xC9},    // 32us, 10 pulses
		{regGConf3, 0x00},    // all photodiodes active
		{regGConf4, 0x00},    // gesture interrupts disabled
		{regGOffsetU, 0x00},
		{regGOffsetD, 0x00},
		{regGOffsetL, 0x00},
		{regGOffsetR, 0x00},
		{regControl, 0x09},   // 100mA LED, 4x proximity gain, 4x ALS gain
	}
	for _, w := range seq {
		if err := d.writeRegister(ctx, w.reg, w.value); err != nil {
			return fmt.Errorf("apds9960: init failed: %w", err)
		}
	}

	// registers written directly above are also mirrored in the shadow cache
	d.config1 = 0x60
	d.config2 = 0x01
	d.config3 = 0x00
	d.pers = 0x40
	d.gconf1 = 0x40
	d.gconf4 = 0x00

	return d.Enable(ctx)
}

// Enable turns the oscillator on (PON).
func (d *Device) Enable(ctx context.Context) error {
	return d.setFlagEnable(ctx, enablePON, true)
}

// Disable deactivates all engines and puts the device to sleep.
func (d *Device) Disable(ctx context.Context) error {
	return d.setFlagEnable(ctx, enableAll, false)
}

// SetMode overwrites all ENABLE register bits at once. This bypasses the
// shadow cache on read so an externally modified register is picked up; the
// cache is updated after a successful write.
func (d *Device) SetMode(ctx context.Context, mode byte) error {
	enable, err := d.readRegister(ctx, regEnable)
	if err != nil {
		return fmt.Errorf("apds9960: could not read mode: %w", err)
	}
	enable &^= enableAll
	enable |= mode
	if err := d.writeRegister(ctx, regEnable, enable); err != nil {
		return fmt.Errorf("apds9960: could not set mode: %w", err)
	}
	d.enable = enable
	return nil
}

// Mode returns the current ENABLE register contents.
func (d *Device) Mode(ctx context.Context) (byte, error) {
	return d.readRegister(ctx, regEnable)
}

// EnableWait enables the delay between proximity and/or light cycles. The
// duration is configured with SetWaitTime and EnableWaitLong.
func (d *Device) EnableWait(ctx context.Context) error {
	return d.setFlagEnable(ctx, enableWEN, true)
}

func (d *Device) DisableWait(ctx context.Context) error {
	return d.setFlagEnable(ctx, enableWEN, false)
}

// EnableWaitLong multiplies the wait time by 12 so each cycle takes 0.03s.
func (d *Device) EnableWaitLong(ctx context.Context) error {
	return d.setFlagConfig1(ctx, configWLong, true)
}

func (d *Device) DisableWaitLong(ctx context.Context) error {
	return d.setFlagConfig1(ctx, configWLong, false)
}

// SetWaitTime sets the wait time between cycles as a 2's complement of the
// number of 2.78ms cycles (0xFF = 1 cycle).
func (d *Device) SetWaitTime(ctx context.Context, value byte) error {
	return d.writeRegister(ctx, regWTime, value)
}

// ForceInterrupt asserts the interrupt line regardless of thresholds.
func (d *Device) ForceInterrupt(ctx context.Context) error {
	return d.touchRegister(ctx, regIForce)
}

// ClearInterrupts clears all non-gesture interrupts.
func (d *Device) ClearInterrupts(ctx context.Context) error {
	return d.touchRegister(ctx, regAIClear)
}

// DeviceID reads the device identification register.
func (d *Device) DeviceID(ctx context.Context) (byte, error) {
	return d.readRegister(ctx, regID)
}

// setFlag implements the read-modify-write block every configuration setter
// is built on: compute the new register value from the shadow copy, write it,
// and commit to the shadow only once the write succeeded. On failure the
// shadow keeps its prior value so it never diverges from hardware.
func (d *Device) setFlag(ctx context.Context, address byte, shadow *byte, mask byte, on bool) error {
	next := applyFlag(*shadow, mask, on)
	if err := d.writeRegister(ctx, address, next); err != nil {
		return err
	}
	*shadow = next
	return nil
}

func (d *Device) setFlagEnable(ctx context.Context, mask byte, on bool) error {
	return d.setFlag(ctx, regEnable, &d.enable, mask, on)
}

func (d *Device) setFlagConfig1(ctx context.Context, mask byte, on bool) error {
	return d.setFlag(ctx, regConfig1, &d.config1, mask, on)
}

func (d *Device) setFlagConfig2(ctx context.Context, mask byte, on bool) error {
	return d.setFlag(ctx, regConfig2, &d.config2, mask, on)
}

func (d *Device) setFlagConfig3(ctx context.Context, mask byte, on bool) error {
	return d.setFlag(ctx, regConfig3, &d.config3, mask, on)
}

func (d *Device) setFlagGConf4(ctx context.Context, mask byte, on bool) error {
	return d.setFlag(ctx, regGConf4, &d.gconf4, mask, on)
}

// setField is the multi-bit sibling of setFlag: it replaces the masked bits of
// a shadowed register and commits the shadow after a successful write.
func (d *Device) setField(ctx context.Context, address byte, shadow *byte, mask, value byte) error {
	next := (*shadow &^ mask) | (value & mask)
	if err := d.writeRegister(ctx, address, next); err != nil {
		return err
	}
	*shadow = next
	return nil
}

func (d *Device) writeRegister(ctx context.Context, address, value byte) error {
	err := d.transport.WriteToAddr(ctx, d.addr, []byte{address, value})
	if err != nil {
		return fmt.Errorf("apds9960: could not write register %#x: %w", address, err)
	}
	return nil
}

// writeDoubleRegister writes a 16-bit value to two sequential registers,
// low byte first.
func (d *Device) writeDoubleRegister(ctx context.Context, start byte, value uint16) error {
	err := d.transport.WriteToAddr(ctx, d.addr, []byte{start, byte(value), byte(value >> 8)})
	if err != nil {
		return fmt.Errorf("apds9960: could not write registers %#x-%#x: %w", start, start+1, err)
	}
	return nil
}

// touchRegister addresses a register without data; the device treats the bare
// access as the command (used by the interrupt clear registers).
func (d *Device) touchRegister(ctx context.Context, address byte) error {
	err := d.transport.WriteToAddr(ctx, d.addr, []byte{address})
	if err != nil {
		return fmt.Errorf("apds9960: could not touch register %#x: %w", address, err)
	}
	return nil
}

func (d *Device) readRegister(ctx context.Context, address byte) (byte, error) {
	var buf [1]byte
	if err := d.readRegisterBlockFull(ctx, address, buf[:]); err != nil {
		return 0, err
	}
	return buf[0], nil
}

func (d *Device) readDoubleRegister(ctx context.Context, start byte) (uint16, error) {
	var buf [2]byte
	if err := d.readRegisterBlockFull(ctx, start, buf[:]); err != nil {
		return 0, err
	}
	return binary.LittleEndian.Uint16(buf[:]), nil
}

// readRegisterBlock sets the register pointer and reads up to len(buffer)
// sequential bytes. The device may deliver fewer bytes than requested; n
// reports how many are valid.
func (d *Device) readRegisterBlock(ctx context.Context, address byte, buffer []byte) (int, error) {
	err := d.transport.WriteToAddr(ctx, d.addr, []byte{address})
	if err != nil {
		return 0, fmt.Errorf("apds9960: could not set register pointer to %#x: %w", address, err)
	}
	n, err := d.transport.ReadFromAddr(ctx, d.addr, buffer)
	if err != nil {
		return 0, fmt.Errorf("apds9960: could not read register %#x: %w", address, err)
	}
	return n, nil
}

func (d *Device) readRegisterBlockFull(ctx context.Context, address byte, buffer []byte) error {
	n, err := d.readRegisterBlock(ctx, address, buffer)
	if err != nil {
		return err
	}
	if n != len(buffer) {
		return fmt.Errorf("apds9960: short read from register %#x: expected %d bytes, got %d", address, len(buffer), n)
	}
	return nil
}
