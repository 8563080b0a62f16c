package apds9960

import (
	"context"
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
)

func TestReadProximity(t *testing.T) {
	tests := []struct {
		name          string
		setupMock     func(*MockI2CBus)
		expected      byte
		expectedError string
	}{
		{
			name: "valid measurement",
			setupMock: func(bus *MockI2CBus) {
				expectRegisterRead(bus, regStatus, statusPValid)
				expectRegisterRead(bus, regPData, 0x7F)
			},
			expected: 0x7F,
		},
		{
			name: "measurement not finished",
			setupMock: func(bus *MockI2CBus) {
				expectRegisterRead(bus, regStatus, 0x00)
			},
			expectedError: ErrNotReady.Error(),
		},
		{
			name: "status read error",
			setupMock: func(bus *MockI2CBus) {
				bus.On("WriteToAddr", mock.Anything, byte(DefaultAddress), []byte{regStatus}).
					Return(errors.New("i2c write failed")).Once()
			},
			expectedError: "could not set register pointer",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			bus := new(MockI2CBus)
			d := New(bus)

			tt.setupMock(bus)

			value, err := d.ReadProximity(context.Background())
			if tt.expectedError != "" {
				assert.Error(t, err)
				assert.Contains(t, err.Error(), tt.expectedError)
			} else {
				assert.NoError(t, err)
				assert.Equal(t, tt.expected, value)
			}

			bus.AssertExpectations(t)
		})
	}
}

func TestProximityThresholds(t *testing.T) {
	bus := new(MockI2CBus)
	d := New(bus)
	ctx := context.Background()

	expectRegisterWrite(bus, regPILT, 10)
	assert.NoError(t, d.SetProximityLowThreshold(ctx, 10))

	expectRegisterWrite(bus, regPIHT, 200)
	assert.NoError(t, d.SetProximityHighThreshold(ctx, 200))

	expectRegisterRead(bus, regPILT, 10)
	low, err := d.ProximityLowThreshold(ctx)
	assert.NoError(t, err)
	assert.Equal(t, byte(10), low)

	expectRegisterRead(bus, regPIHT, 200)
	high, err := d.ProximityHighThreshold(ctx)
	assert.NoError(t, err)
	assert.Equal(t, byte(200), high)

	bus.AssertExpectations(t)
}

func TestSetProximityOffsets(t *testing.T) {
	bus := new(MockI2CBus)
	d := New(bus)

	// both offset registers are written in a single transfer
	bus.On("WriteToAddr", mock.Anything, byte(DefaultAddress), []byte{regPOffsetUR, 0x05, 0xFB}).
		Return(nil).Once()

	assert.NoError(t, d.SetProximityOffsets(context.Background(), 5, -5))

	bus.AssertExpectations(t)
}

func TestSetProximityInterruptPersistence(t *testing.T) {
	bus := new(MockI2CBus)
	d := New(bus)
	ctx := context.Background()

	// proximity cycles land in the upper nibble
	expectRegisterWrite(bus, regPers, 0x70)
	assert.NoError(t, d.SetProximityInterruptPersistence(ctx, 7))
	assert.Equal(t, byte(0x70), d.pers)

	// the light nibble is preserved
	expectRegisterWrite(bus, regPers, 0x73)
	assert.NoError(t, d.SetLightInterruptPersistence(ctx, 3))
	assert.Equal(t, byte(0x73), d.pers)

	expectRegisterWrite(bus, regPers, 0x23)
	assert.NoError(t, d.SetProximityInterruptPersistence(ctx, 2))
	assert.Equal(t, byte(0x23), d.pers)

	bus.AssertExpectations(t)
}

func TestSetProximityPulse(t *testing.T) {
	bus := new(MockI2CBus)
	d := New(bus)

	// 8 pulses of 16us, the init default
	expectRegisterWrite(bus, regPPulse, 0x87)
	assert.NoError(t, d.SetProximityPulse(context.Background(), 7, 2))

	expectRegisterRead(bus, regPPulse, 0x87)
	count, length, err := d.ProximityPulse(context.Background())
	assert.NoError(t, err)
	assert.Equal(t, byte(7), count)
	assert.Equal(t, byte(2), length)

	bus.AssertExpectations(t)
}

func TestProximityPhotodiodeMask(t *testing.T) {
	bus := new(MockI2CBus)
	d := New(bus)
	ctx := context.Background()

	expectRegisterWrite(bus, regConfig3, config3PMaskU|config3PMaskD)
	assert.NoError(t, d.SetProximityPhotodiodeMask(ctx, config3PMaskU|config3PMaskD))
	assert.Equal(t, config3PMaskU|config3PMaskD, d.config3)

	// gain compensation keeps the mask bits intact
	expectRegisterWrite(bus, regConfig3, config3PCMP|config3PMaskU|config3PMaskD)
	assert.NoError(t, d.EnableProximityGainCompensation(ctx))

	bus.AssertExpectations(t)
}

func TestEnableProximitySensor(t *testing.T) {
	bus := new(MockI2CBus)
	d := New(bus)

	// 4x gain into CONTROL
	expectRegisterRead(bus, regControl, 0x00)
	expectRegisterWrite(bus, regControl, 0x08)
	// interrupts, power, engine
	expectRegisterWrite(bus, regEnable, 0x20)
	expectRegisterWrite(bus, regEnable, 0x21)
	expectRegisterWrite(bus, regEnable, 0x25)

	assert.NoError(t, d.EnableProximitySensor(context.Background(), true))
	assert.Equal(t, byte(0x25), d.enable)

	bus.AssertExpectations(t)
}

func TestClearProximityInterrupt(t *testing.T) {
	bus := new(MockI2CBus)
	d := New(bus)

	bus.On("WriteToAddr", mock.Anything, byte(DefaultAddress), []byte{regPIClear}).
		Return(nil).Once()

	assert.NoError(t, d.ClearProximityInterrupt(context.Background()))

	bus.AssertExpectations(t)
}
