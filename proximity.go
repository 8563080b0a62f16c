package apds9960

import (
	"context"
	"fmt"
)

// EnableProximity enables the proximity engine.
func (d *Device) EnableProximity(ctx context.Context) error {
	return d.setFlagEnable(ctx, enablePEN, true)
}

// DisableProximity disables the proximity engine.
func (d *Device) DisableProximity(ctx context.Context) error {
	return d.setFlagEnable(ctx, enablePEN, false)
}

// EnableProximitySensor configures the proximity engine with the reference
// defaults (4x gain) and powers it up, optionally with interrupt generation.
func (d *Device) EnableProximitySensor(ctx context.Context, interrupts bool) error {
	if err := d.SetProximityGain(ctx, ProximityGain4x); err != nil {
		return err
	}
	if err := d.setFlagEnable(ctx, enablePIEN, interrupts); err != nil {
		return err
	}
	if err := d.Enable(ctx); err != nil {
		return err
	}
	return d.EnableProximity(ctx)
}

// DisableProximitySensor disables proximity interrupts and the engine.
func (d *Device) DisableProximitySensor(ctx context.Context) error {
	if err := d.DisableProximityInterrupts(ctx); err != nil {
		return err
	}
	return d.DisableProximity(ctx)
}

// EnableProximityInterrupts enables proximity interrupt generation.
func (d *Device) EnableProximityInterrupts(ctx context.Context) error {
	return d.setFlagEnable(ctx, enablePIEN, true)
}

// DisableProximityInterrupts disables proximity interrupt generation.
func (d *Device) DisableProximityInterrupts(ctx context.Context) error {
	return d.setFlagEnable(ctx, enablePIEN, false)
}

// EnableProximitySaturationInterrupts enables interrupt generation on
// proximity ADC saturation.
func (d *Device) EnableProximitySaturationInterrupts(ctx context.Context) error {
	return d.setFlagConfig2(ctx, config2PSIEN, true)
}

// DisableProximitySaturationInterrupts disables interrupt generation on
// proximity ADC saturation.
func (d *Device) DisableProximitySaturationInterrupts(ctx context.Context) error {
	return d.setFlagConfig2(ctx, config2PSIEN, false)
}

// SetProximityLowThreshold sets the proximity interrupt low threshold.
func (d *Device) SetProximityLowThreshold(ctx context.Context, threshold byte) error {
	return d.writeRegister(ctx, regPILT, threshold)
}

// ProximityLowThreshold reads the proximity interrupt low threshold.
func (d *Device) ProximityLowThreshold(ctx context.Context) (byte, error) {
	return d.readRegister(ctx, regPILT)
}

// SetProximityHighThreshold sets the proximity interrupt high threshold.
func (d *Device) SetProximityHighThreshold(ctx context.Context, threshold byte) error {
	return d.writeRegister(ctx, regPIHT, threshold)
}

// ProximityHighThreshold reads the proximity interrupt high threshold.
func (d *Device) ProximityHighThreshold(ctx context.Context) (byte, error) {
	return d.readRegister(ctx, regPIHT)
}

// SetProximityUpRightOffset sets the offset of the UR photodiode pair.
func (d *Device) SetProximityUpRightOffset(ctx context.Context, offset int8) error {
	return d.writeRegister(ctx, regPOffsetUR, byte(offset))
}

// SetProximityDownLeftOffset sets the offset of the DL photodiode pair.
func (d *Device) SetProximityDownLeftOffset(ctx context.Context, offset int8) error {
	return d.writeRegister(ctx, regPOffsetDL, byte(offset))
}

// SetProximityOffsets sets both photodiode pair offsets in one bus write; the
// two offset registers are sequential.
func (d *Device) SetProximityOffsets(ctx context.Context, upRight, downLeft int8) error {
	err := d.transport.WriteToAddr(ctx, d.addr, []byte{regPOffsetUR, byte(upRight), byte(downLeft)})
	if err != nil {
		return fmt.Errorf("apds9960: could not write proximity offsets: %w", err)
	}
	return nil
}

// SetProximityInterruptPersistence sets how many consecutive out-of-threshold
// proximity cycles (0-15) are required before an interrupt fires.
func (d *Device) SetProximityInterruptPersistence(ctx context.Context, cycles byte) error {
	return d.setField(ctx, regPers, &d.pers, persPPersMask, (cycles&0x0F)<<persPPersShift)
}

// ProximityInterruptPersistence reads the proximity interrupt persistence.
func (d *Device) ProximityInterruptPersistence(ctx context.Context) (byte, error) {
	pers, err := d.readRegister(ctx, regPers)
	if err != nil {
		return 0, err
	}
	return (pers & persPPersMask) >> persPPersShift, nil
}

// EnableProximityGainCompensation enables gain compensation on masked
// photodiodes.
func (d *Device) EnableProximityGainCompensation(ctx context.Context) error {
	return d.setFlagConfig3(ctx, config3PCMP, true)
}

// DisableProximityGainCompensation disables proximity gain compensation.
func (d *Device) DisableProximityGainCompensation(ctx context.Context) error {
	return d.setFlagConfig3(ctx, config3PCMP, false)
}

// SetProximityPhotodiodeMask disables individual photodiodes during proximity
// measurements. Bit 0=Right, 1=Left, 2=Down, 3=Up; a set bit disables the
// photodiode.
func (d *Device) SetProximityPhotodiodeMask(ctx context.Context, mask byte) error {
	return d.setField(ctx, regConfig3, &d.config3, 0x0F, mask&0x0F)
}

// ProximityPhotodiodeMask reads the proximity photodiode mask.
func (d *Device) ProximityPhotodiodeMask(ctx context.Context) (byte, error) {
	config3, err := d.readRegister(ctx, regConfig3)
	if err != nil {
		return 0, err
	}
	return config3 & 0x0F, nil
}

// SetProximityPulse sets the proximity pulse count (0-63, actual pulses =
// count + 1) and length (0=4us, 1=8us, 2=16us, 3=32us).
func (d *Device) SetProximityPulse(ctx context.Context, count, length byte) error {
	return d.writeRegister(ctx, regPPulse, ((length&0x03)<<6)|(count&0x3F))
}

// ProximityPulse reads the proximity pulse count and length.
func (d *Device) ProximityPulse(ctx context.Context) (count, length byte, err error) {
	value, err := d.readRegister(ctx, regPPulse)
	if err != nil {
		return 0, 0, err
	}
	return value & 0x3F, (value >> 6) & 0x03, nil
}

// ClearProximityInterrupt clears a pending proximity interrupt.
func (d *Device) ClearProximityInterrupt(ctx context.Context) error {
	return d.touchRegister(ctx, regPIClear)
}

// ReadProximity reads the proximity value. It returns ErrNotReady while the
// proximity data is not yet valid; the caller decides the retry cadence.
func (d *Device) ReadProximity(ctx context.Context) (byte, error) {
	valid, err := d.IsProximityDataValid(ctx)
	if err != nil {
		return 0, err
	}
	if !valid {
		return 0, ErrNotReady
	}
	return d.readRegister(ctx, regPData)
}

// IsProximityDataValid reports whether a proximity measurement has completed
// since PDATA was last read.
func (d *Device) IsProximityDataValid(ctx context.Context) (bool, error) {
	status, err := d.readRegister(ctx, regStatus)
	if err != nil {
		return false, err
	}
	return status&statusPValid != 0, nil
}
