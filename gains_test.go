package apds9960

import (
	"context"
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
)

func TestGainStrings(t *testing.T) {
	assert.Equal(t, "1x", ProximityGain1x.String())
	assert.Equal(t, "8x", ProximityGain8x.String())
	assert.Equal(t, "64x", LightGain64x.String())
	assert.Equal(t, "4x", GestureGain4x.String())
	assert.Equal(t, "100mA", LedDrive100mA.String())
	assert.Equal(t, "12.5mA", LedDrive12_5mA.String())
	assert.Equal(t, "300%", LedBoost300.String())
}

func TestControlRegisterFields(t *testing.T) {
	bus := new(MockI2CBus)
	d := New(bus)
	ctx := context.Background()

	// CONTROL is not shadowed; each setter reads the register back first and
	// only replaces its own field
	expectRegisterRead(bus, regControl, 0x00)
	expectRegisterWrite(bus, regControl, 0x0C)
	assert.NoError(t, d.SetProximityGain(ctx, ProximityGain8x))

	expectRegisterRead(bus, regControl, 0x0C)
	expectRegisterWrite(bus, regControl, 0x0E)
	assert.NoError(t, d.SetLightGain(ctx, LightGain16x))

	expectRegisterRead(bus, regControl, 0x0E)
	expectRegisterWrite(bus, regControl, 0x8E)
	assert.NoError(t, d.SetLedDrive(ctx, LedDrive25mA))

	expectRegisterRead(bus, regControl, 0x8E)
	gain, err := d.ProximityGain(ctx)
	assert.NoError(t, err)
	assert.Equal(t, ProximityGain8x, gain)

	expectRegisterRead(bus, regControl, 0x8E)
	drive, err := d.LedDrive(ctx)
	assert.NoError(t, err)
	assert.Equal(t, LedDrive25mA, drive)

	bus.AssertExpectations(t)
}

func TestSetLedBoost(t *testing.T) {
	bus := new(MockI2CBus)
	d := New(bus)
	ctx := context.Background()

	// CONFIG2 is shadowed, so no read-back happens and the reserved low bit
	// from the power-on default is preserved
	expectRegisterWrite(bus, regConfig2, 0x31)
	assert.NoError(t, d.SetLedBoost(ctx, LedBoost300))
	assert.Equal(t, byte(0x31), d.config2)

	// saturation interrupt flags keep the boost field intact
	expectRegisterWrite(bus, regConfig2, 0xB1)
	assert.NoError(t, d.EnableProximitySaturationInterrupts(ctx))
	assert.Equal(t, byte(0xB1), d.config2)

	bus.AssertExpectations(t)
}

func TestUpdateRegisterFieldReadError(t *testing.T) {
	bus := new(MockI2CBus)
	d := New(bus)

	bus.On("WriteToAddr", mock.Anything, byte(DefaultAddress), []byte{regControl}).
		Return(errors.New("i2c write failed")).Once()

	err := d.SetProximityGain(context.Background(), ProximityGain2x)
	assert.Error(t, err)
	assert.Contains(t, err.Error(), "could not set register pointer")

	bus.AssertExpectations(t)
}
