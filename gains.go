package apds9960

import "context"

// ProximityGain is the proximity sensor gain multiplier.
type ProximityGain byte

const (
	ProximityGain1x ProximityGain = 0
	ProximityGain2x ProximityGain = 1
	ProximityGain4x ProximityGain = 2
	ProximityGain8x ProximityGain = 3
)

func (g ProximityGain) String() string {
	return [...]string{"1x", "2x", "4x", "8x"}[g&0x03]
}

// LightGain is the ambient light / color sensor gain multiplier.
type LightGain byte

const (
	LightGain1x  LightGain = 0
	LightGain4x  LightGain = 1
	LightGain16x LightGain = 2
	LightGain64x LightGain = 3
)

func (g LightGain) String() string {
	return [...]string{"1x", "4x", "16x", "64x"}[g&0x03]
}

// GestureGain is the gesture photodiode gain multiplier.
type GestureGain byte

const (
	GestureGain1x GestureGain = 0
	GestureGain2x GestureGain = 1
	GestureGain4x GestureGain = 2
	GestureGain8x GestureGain = 3
)

func (g GestureGain) String() string {
	return [...]string{"1x", "2x", "4x", "8x"}[g&0x03]
}

// LedDrive is the LED drive current for proximity and gesture engines.
type LedDrive byte

const (
	LedDrive100mA  LedDrive = 0
	LedDrive50mA   LedDrive = 1
	LedDrive25mA   LedDrive = 2
	LedDrive12_5mA LedDrive = 3
)

func (l LedDrive) String() string {
	return [...]string{"100mA", "50mA", "25mA", "12.5mA"}[l&0x03]
}

// LedBoost is the additional LDR current during proximity and gesture pulses.
type LedBoost byte

const (
	LedBoost100 LedBoost = 0
	LedBoost150 LedBoost = 1
	LedBoost200 LedBoost = 2
	LedBoost300 LedBoost = 3
)

func (l LedBoost) String() string {
	return [...]string{"100%", "150%", "200%", "300%"}[l&0x03]
}

// SetProximityGain sets the proximity sensor gain.
func (d *Device) SetProximityGain(ctx context.Context, gain ProximityGain) error {
	return d.updateRegisterField(ctx, regControl, controlPGainMask, byte(gain)<<controlPGainShift)
}

// ProximityGain reads the proximity sensor gain.
func (d *Device) ProximityGain(ctx context.Context) (ProximityGain, error) {
	control, err := d.readRegister(ctx, regControl)
	if err != nil {
		return 0, err
	}
	return ProximityGain((control & controlPGainMask) >> controlPGainShift), nil
}

// SetLightGain sets the ambient light / color sensor gain.
func (d *Device) SetLightGain(ctx context.Context, gain LightGain) error {
	return d.updateRegisterField(ctx, regControl, controlAGainMask, byte(gain))
}

// LightGain reads the ambient light / color sensor gain.
func (d *Device) LightGain(ctx context.Context) (LightGain, error) {
	control, err := d.readRegister(ctx, regControl)
	if err != nil {
		return 0, err
	}
	return LightGain(control & controlAGainMask), nil
}

// SetLedDrive sets the LED drive current for proximity and light cycles.
func (d *Device) SetLedDrive(ctx context.Context, drive LedDrive) error {
	return d.updateRegisterField(ctx, regControl, controlLEDDriveMask, byte(drive)<<controlLEDDriveShift)
}

// LedDrive reads the LED drive current for proximity and light cycles.
func (d *Device) LedDrive(ctx context.Context) (LedDrive, error) {
	control, err := d.readRegister(ctx, regControl)
	if err != nil {
		return 0, err
	}
	return LedDrive((control & controlLEDDriveMask) >> controlLEDDriveShift), nil
}

// SetLedBoost sets the LED boost current. CONFIG2 is shadowed, so this goes
// through the cache instead of a hardware read-modify-write.
func (d *Device) SetLedBoost(ctx context.Context, boost LedBoost) error {
	return d.setField(ctx, regConfig2, &d.config2, 0b0011_0000, byte(boost)<<4)
}

// LedBoost reads the LED boost current.
func (d *Device) LedBoost(ctx context.Context) (LedBoost, error) {
	config2, err := d.readRegister(ctx, regConfig2)
	if err != nil {
		return 0, err
	}
	return LedBoost((config2 >> 4) & 0x03), nil
}

// updateRegisterField replaces the masked bits of a hardware register keeping
// the remaining bits. Unlike setFlag this targets registers the driver does
// not shadow, so the current value is read back first.
func (d *Device) updateRegisterField(ctx context.Context, address, mask, value byte) error {
	current, err := d.readRegister(ctx, address)
	if err != nil {
		return err
	}
	return d.writeRegister(ctx, address, (current&^mask)|(value&mask))
}
