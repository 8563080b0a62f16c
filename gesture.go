package apds9960

import "context"

// GestureFIFOThreshold selects how many datasets must be in the FIFO before
// gesture data is flagged valid and an interrupt is generated.
type GestureFIFOThreshold byte

const (
	GestureFIFOThreshold1  GestureFIFOThreshold = 0
	GestureFIFOThreshold4  GestureFIFOThreshold = 1
	GestureFIFOThreshold8  GestureFIFOThreshold = 2
	GestureFIFOThreshold16 GestureFIFOThreshold = 3
)

// EnableGesture enables the gesture engine.
func (d *Device) EnableGesture(ctx context.Context) error {
	return d.setFlagEnable(ctx, enableGEN, true)
}

// DisableGesture disables the gesture engine.
func (d *Device) DisableGesture(ctx context.Context) error {
	return d.setFlagEnable(ctx, enableGEN, false)
}

// EnableGestureMode forces the state machine into gesture mode. The device
// can also enter and leave gesture mode on its own depending on the proximity
// entry and exit thresholds (GMODE on the datasheet).
func (d *Device) EnableGestureMode(ctx context.Context) error {
	return d.setFlagGConf4(ctx, gconf4GMode, true)
}

// DisableGestureMode leaves gesture mode.
func (d *Device) DisableGestureMode(ctx context.Context) error {
	return d.setFlagGConf4(ctx, gconf4GMode, false)
}

// EnableGestureInterrupts enables gesture interrupt generation.
func (d *Device) EnableGestureInterrupts(ctx context.Context) error {
	return d.setFlagGConf4(ctx, gconf4GIEN, true)
}

// DisableGestureInterrupts disables gesture interrupt generation.
func (d *Device) DisableGestureInterrupts(ctx context.Context) error {
	return d.setFlagGConf4(ctx, gconf4GIEN, false)
}

// SetGestureFIFOThreshold sets the FIFO fill level at which gesture data
// becomes valid.
func (d *Device) SetGestureFIFOThreshold(ctx context.Context, threshold GestureFIFOThreshold) error {
	return d.updateGConf1(ctx, gconf1FIFOTh1|gconf1FIFOTh0, byte(threshold)<<6)
}

// SetGestureProximityEntryThreshold sets the proximity level that makes the
// device enter gesture mode.
func (d *Device) SetGestureProximityEntryThreshold(ctx context.Context, threshold byte) error {
	return d.writeRegister(ctx, regGPEnTh, threshold)
}

// GestureProximityEntryThreshold reads the gesture entry threshold.
func (d *Device) GestureProximityEntryThreshold(ctx context.Context) (byte, error) {
	return d.readRegister(ctx, regGPEnTh)
}

// SetGestureProximityExitThreshold sets the proximity level that makes the
// device leave gesture mode.
func (d *Device) SetGestureProximityExitThreshold(ctx context.Context, threshold byte) error {
	return d.writeRegister(ctx, regGExTh, threshold)
}

// GestureProximityExitThreshold reads the gesture exit threshold.
func (d *Device) GestureProximityExitThreshold(ctx context.Context) (byte, error) {
	return d.readRegister(ctx, regGExTh)
}

// SetGestureUpOffset sets the offset of the up photodiode.
func (d *Device) SetGestureUpOffset(ctx context.Context, offset int8) error {
	return d.writeRegister(ctx, regGOffsetU, byte(offset))
}

// SetGestureDownOffset sets the offset of the down photodiode.
func (d *Device) SetGestureDownOffset(ctx context.Context, offset int8) error {
	return d.writeRegister(ctx, regGOffsetD, byte(offset))
}

// SetGestureLeftOffset sets the offset of the left photodiode.
func (d *Device) SetGestureLeftOffset(ctx context.Context, offset int8) error {
	return d.writeRegister(ctx, regGOffsetL, byte(offset))
}

// SetGestureRightOffset sets the offset of the right photodiode.
func (d *Device) SetGestureRightOffset(ctx context.Context, offset int8) error {
	return d.writeRegister(ctx, regGOffsetR, byte(offset))
}

// SetGestureOffsets sets all four photodiode offsets. The offset registers
// are not sequential (GPULSE and a reserved register sit between them), so
// this is four bus writes.
func (d *Device) SetGestureOffsets(ctx context.Context, up, down, left, right int8) error {
	if err := d.SetGestureUpOffset(ctx, up); err != nil {
		return err
	}
	if err := d.SetGestureDownOffset(ctx, down); err != nil {
		return err
	}
	if err := d.SetGestureLeftOffset(ctx, left); err != nil {
		return err
	}
	return d.SetGestureRightOffset(ctx, right)
}

// SetGestureGain sets the gesture photodiode gain.
func (d *Device) SetGestureGain(ctx context.Context, gain GestureGain) error {
	return d.updateRegisterField(ctx, regGConf2, 0b0110_0000, byte(gain)<<5)
}

// GestureGain reads the gesture photodiode gain.
func (d *Device) GestureGain(ctx context.Context) (GestureGain, error) {
	gconf2, err := d.readRegister(ctx, regGConf2)
	if err != nil {
		return 0, err
	}
	return GestureGain((gconf2 >> 5) & 0x03), nil
}

// SetGestureLedDrive sets the LED drive current during gesture mode.
func (d *Device) SetGestureLedDrive(ctx context.Context, drive LedDrive) error {
	return d.updateRegisterField(ctx, regGConf2, 0b0001_1000, byte(drive)<<3)
}

// GestureLedDrive reads the LED drive current during gesture mode.
func (d *Device) GestureLedDrive(ctx context.Context) (LedDrive, error) {
	gconf2, err := d.readRegister(ctx, regGConf2)
	if err != nil {
		return 0, err
	}
	return LedDrive((gconf2 >> 3) & 0x03), nil
}

// SetGestureWaitTime sets the wait time between gesture detection cycles
// (0=0ms up to 7=39.2ms in 2.8ms-ish steps, see datasheet GWTIME).
func (d *Device) SetGestureWaitTime(ctx context.Context, time byte) error {
	return d.updateRegisterField(ctx, regGConf2, 0b0000_0111, time)
}

// GestureWaitTime reads the wait time between gesture detection cycles.
func (d *Device) GestureWaitTime(ctx context.Context) (byte, error) {
	gconf2, err := d.readRegister(ctx, regGConf2)
	if err != nil {
		return 0, err
	}
	return gconf2 & 0x07, nil
}

// SetGesturePulse sets the gesture pulse count (0-63, actual pulses =
// count + 1) and length (0=4us, 1=8us, 2=16us, 3=32us).
func (d *Device) SetGesturePulse(ctx context.Context, count, length byte) error {
	return d.writeRegister(ctx, regGPulse, ((length&0x03)<<6)|(count&0x3F))
}

// EnableAllGesturePhotodiodes includes all four photodiodes in gesture
// measurements.
func (d *Device) EnableAllGesturePhotodiodes(ctx context.Context) error {
	return d.writeRegister(ctx, regGConf3, 0)
}

// SetGestureDimensions selects which photodiode pairs participate in gesture
// measurements.
func (d *Device) SetGestureDimensions(ctx context.Context, upDown, leftRight bool) error {
	var mask byte
	if !upDown {
		mask |= 0b0000_0011
	}
	if !leftRight {
		mask |= 0b0000_1100
	}
	return d.writeRegister(ctx, regGConf3, mask)
}

// SetGestureExitPersistence sets the number of consecutive gesture-end
// occurrences (1, 2, 4 or 7) required to leave gesture mode.
func (d *Device) SetGestureExitPersistence(ctx context.Context, persistence byte) error {
	var value byte
	switch persistence {
	case 1:
		value = 0b00
	case 2:
		value = 0b01
	case 4:
		value = 0b10
	case 7:
		value = 0b11
	default:
		value = 0b01
	}
	return d.updateGConf1(ctx, 0b0000_0011, value)
}

// SetGestureExitMask selects which photodiodes are excluded from the exit
// threshold comparison (bit per diode: UDLR).
func (d *Device) SetGestureExitMask(ctx context.Context, mask byte) error {
	return d.updateGConf1(ctx, 0b0011_1100, (mask&0x0F)<<2)
}

func (d *Device) updateGConf1(ctx context.Context, mask, value byte) error {
	return d.setField(ctx, regGConf1, &d.gconf1, mask, value)
}

// IsGestureDataValid reports whether the FIFO holds at least the configured
// threshold of datasets.
func (d *Device) IsGestureDataValid(ctx context.Context) (bool, error) {
	status, err := d.readRegister(ctx, regGStatus)
	if err != nil {
		return false, err
	}
	return status&gstatusGValid != 0, nil
}

// HasGestureDataOverflown reports whether the FIFO has filled up and dropped
// datasets since it was last drained.
func (d *Device) HasGestureDataOverflown(ctx context.Context) (bool, error) {
	status, err := d.readRegister(ctx, regGStatus)
	if err != nil {
		return false, err
	}
	return status&gstatusGFOv != 0, nil
}

// GestureDataLevel reads the number of four-byte datasets currently buffered
// in the FIFO.
func (d *Device) GestureDataLevel(ctx context.Context) (byte, error) {
	return d.readRegister(ctx, regGFLvl)
}

// ReadGestureFIFO reads raw FIFO contents into buffer. It returns ErrNotReady
// while gesture data is not valid; n may be smaller than len(buffer) when the
// FIFO holds less data.
func (d *Device) ReadGestureFIFO(ctx context.Context, buffer []byte) (int, error) {
	valid, err := d.IsGestureDataValid(ctx)
	if err != nil {
		return 0, err
	}
	if !valid {
		return 0, ErrNotReady
	}
	return d.readRegisterBlock(ctx, regGFIFOU, buffer)
}

// ClearGestureFIFO empties the FIFO and clears GVALID. The clear bit is
// self-clearing in hardware, so the shadow copy keeps it unset.
func (d *Device) ClearGestureFIFO(ctx context.Context) error {
	return d.writeRegister(ctx, regGConf4, d.gconf4|gconf4FIFOClr)
}
