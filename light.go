package apds9960

import "context"

// LightData holds one color / ambient light measurement.
type LightData struct {
	Clear uint16
	Red   uint16
	Green uint16
	Blue  uint16
}

// EnableLight enables the color / ambient light engine.
func (d *Device) EnableLight(ctx context.Context) error {
	return d.setFlagEnable(ctx, enableAEN, true)
}

// DisableLight disables the color / ambient light engine.
func (d *Device) DisableLight(ctx context.Context) error {
	return d.setFlagEnable(ctx, enableAEN, false)
}

// EnableLightInterrupts enables ambient light interrupt generation.
func (d *Device) EnableLightInterrupts(ctx context.Context) error {
	return d.setFlagEnable(ctx, enableAIEN, true)
}

// DisableLightInterrupts disables ambient light interrupt generation.
func (d *Device) DisableLightInterrupts(ctx context.Context) error {
	return d.setFlagEnable(ctx, enableAIEN, false)
}

// EnableLightSaturationInterrupts enables interrupt generation on clear
// channel saturation.
func (d *Device) EnableLightSaturationInterrupts(ctx context.Context) error {
	return d.setFlagConfig2(ctx, config2CPSIEN, true)
}

// DisableLightSaturationInterrupts disables interrupt generation on clear
// channel saturation.
func (d *Device) DisableLightSaturationInterrupts(ctx context.Context) error {
	return d.setFlagConfig2(ctx, config2CPSIEN, false)
}

// SetLightIntegrationTime sets the ALS integration time as a 2's complement
// of the number of 2.78ms cycles (0x00 = 256 cycles = 712ms).
func (d *Device) SetLightIntegrationTime(ctx context.Context, value byte) error {
	return d.writeRegister(ctx, regATime, value)
}

// LightIntegrationTime reads the ALS integration time register.
func (d *Device) LightIntegrationTime(ctx context.Context) (byte, error) {
	return d.readRegister(ctx, regATime)
}

// SetLightLowThreshold sets the clear channel interrupt low threshold.
func (d *Device) SetLightLowThreshold(ctx context.Context, threshold uint16) error {
	return d.writeDoubleRegister(ctx, regAILTL, threshold)
}

// LightLowThreshold reads the clear channel interrupt low threshold.
func (d *Device) LightLowThreshold(ctx context.Context) (uint16, error) {
	return d.readDoubleRegister(ctx, regAILTL)
}

// SetLightHighThreshold sets the clear channel interrupt high threshold.
func (d *Device) SetLightHighThreshold(ctx context.Context, threshold uint16) error {
	return d.writeDoubleRegister(ctx, regAIHTL, threshold)
}

// LightHighThreshold reads the clear channel interrupt high threshold.
func (d *Device) LightHighThreshold(ctx context.Context) (uint16, error) {
	return d.readDoubleRegister(ctx, regAIHTL)
}

// SetLightInterruptPersistence sets how many consecutive out-of-threshold ALS
// cycles (0-15) are required before an interrupt fires.
func (d *Device) SetLightInterruptPersistence(ctx context.Context, cycles byte) error {
	return d.setField(ctx, regPers, &d.pers, persAPersMask, cycles)
}

// ClearLightInterrupt clears a pending ambient light interrupt.
func (d *Device) ClearLightInterrupt(ctx context.Context) error {
	return d.touchRegister(ctx, regCIClear)
}

// IsLightDataValid reports whether an ALS measurement has completed since the
// data registers were last read.
func (d *Device) IsLightDataValid(ctx context.Context) (bool, error) {
	status, err := d.readRegister(ctx, regStatus)
	if err != nil {
		return false, err
	}
	return status&statusAValid != 0, nil
}

// ReadLight reads all four color channels. It returns ErrNotReady while the
// light data is not yet valid.
func (d *Device) ReadLight(ctx context.Context) (LightData, error) {
	valid, err := d.IsLightDataValid(ctx)
	if err != nil {
		return LightData{}, err
	}
	if !valid {
		return LightData{}, ErrNotReady
	}
	// CDATAL..BDATAH are sequential, low byte first
	var buf [8]byte
	if err := d.readRegisterBlockFull(ctx, regCDataL, buf[:]); err != nil {
		return LightData{}, err
	}
	return LightData{
		Clear: uint16(buf[0]) | uint16(buf[1])<<8,
		Red:   uint16(buf[2]) | uint16(buf[3])<<8,
		Green: uint16(buf[4]) | uint16(buf[5])<<8,
		Blue:  uint16(buf[6]) | uint16(buf[7])<<8,
	}, nil
}

// ReadLightClear reads the clear channel value.
func (d *Device) ReadLightClear(ctx context.Context) (uint16, error) {
	return d.readLightChannel(ctx, regCDataL)
}

// ReadLightRed reads the red channel value.
func (d *Device) ReadLightRed(ctx context.Context) (uint16, error) {
	return d.readLightChannel(ctx, regRDataL)
}

// ReadLightGreen reads the green channel value.
func (d *Device) ReadLightGreen(ctx context.Context) (uint16, error) {
	return d.readLightChannel(ctx, regGDataL)
}

// ReadLightBlue reads the blue channel value.
func (d *Device) ReadLightBlue(ctx context.Context) (uint16, error) {
	return d.readLightChannel(ctx, regBDataL)
}

func (d *Device) readLightChannel(ctx context.Context, start byte) (uint16, error) {
	valid, err := d.IsLightDataValid(ctx)
	if err != nil {
		return 0, err
	}
	if !valid {
		return 0, ErrNotReady
	}
	return d.readDoubleRegister(ctx, start)
}
