package apds9960

import (
	"context"
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
)

func TestDeviceID(t *testing.T) {
	tests := []struct {
		name          string
		setupMock     func(*MockI2CBus)
		expected      byte
		expectedError string
	}{
		{
			name: "reads the identification register",
			setupMock: func(bus *MockI2CBus) {
				expectRegisterRead(bus, regID, 0xAB)
			},
			expected: 0xAB,
		},
		{
			name: "pointer write error",
			setupMock: func(bus *MockI2CBus) {
				bus.On("WriteToAddr", mock.Anything, byte(DefaultAddress), []byte{regID}).
					Return(errors.New("i2c write failed")).Once()
			},
			expectedError: "could not set register pointer to 0x92",
		},
		{
			name: "short read",
			setupMock: func(bus *MockI2CBus) {
				expectRegisterRead(bus, regID)
			},
			expectedError: "short read from register 0x92",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			bus := new(MockI2CBus)
			d := New(bus)

			tt.setupMock(bus)

			id, err := d.DeviceID(context.Background())
			if tt.expectedError != "" {
				assert.Error(t, err)
				assert.Contains(t, err.Error(), tt.expectedError)
			} else {
				assert.NoError(t, err)
				assert.Equal(t, tt.expected, id)
			}

			bus.AssertExpectations(t)
		})
	}
}

func TestInit(t *testing.T) {
	bus := new(MockI2CBus)
	d := New(bus)

	expectRegisterRead(bus, regID, 0xAB)

	var writes [][]byte
	bus.On("WriteToAddr", mock.Anything, byte(DefaultAddress), mock.Anything).
		Run(func(args mock.Arguments) {
			writes = append(writes, append([]byte(nil), args.Get(2).([]byte)...))
		}).
		Return(nil)

	assert.NoError(t, d.Init(context.Background()))

	// disable, 23 configuration registers, power on
	assert.Len(t, writes, 25)
	assert.Equal(t, []byte{regEnable, 0x00}, writes[0], "all engines off before configuring")
	assert.Equal(t, []byte{regPPulse, 0x87}, writes[1])
	assert.Equal(t, []byte{regEnable, 0x01}, writes[len(writes)-1], "oscillator on last")
	assert.Contains(t, writes, []byte{regControl, 0x09})
	assert.Contains(t, writes, []byte{regGPEnTh, 40})
	assert.Contains(t, writes, []byte{regGExTh, 30})

	// the shadow cache mirrors what was programmed
	assert.Equal(t, byte(0x01), d.enable)
	assert.Equal(t, byte(0x60), d.config1)
	assert.Equal(t, byte(0x01), d.config2)
	assert.Equal(t, byte(0x00), d.config3)
	assert.Equal(t, byte(0x40), d.pers)
	assert.Equal(t, byte(0x40), d.gconf1)
	assert.Equal(t, byte(0x00), d.gconf4)

	bus.AssertExpectations(t)
}

func TestInit_ProbeFailed(t *testing.T) {
	bus := new(MockI2CBus)
	d := New(bus)

	bus.On("WriteToAddr", mock.Anything, byte(DefaultAddress), []byte{regID}).
		Return(errors.New("no ack")).Once()

	err := d.Init(context.Background())
	assert.Error(t, err)
	assert.Contains(t, err.Error(), "probe failed")

	bus.AssertExpectations(t)
}

func TestInit_WriteFailedMidSequence(t *testing.T) {
	bus := new(MockI2CBus)
	d := New(bus)

	expectRegisterRead(bus, regID, 0xAB)
	expectRegisterWrite(bus, regEnable, 0x00)
	bus.On("WriteToAddr", mock.Anything, byte(DefaultAddress), mock.Anything).
		Return(errors.New("i2c write failed"))

	err := d.Init(context.Background())
	assert.Error(t, err)
	assert.Contains(t, err.Error(), "init failed")

	// a failed init must not pretend the cache matches hardware
	assert.Equal(t, byte(0x40), d.config1, "shadow keeps the power-on default")
	assert.Equal(t, byte(0x00), d.pers)

	bus.AssertExpectations(t)
}

func TestShadowCommitOnSuccessfulWriteOnly(t *testing.T) {
	bus := new(MockI2CBus)
	d := New(bus)
	ctx := context.Background()

	expectRegisterWrite(bus, regEnable, 0x04)
	assert.NoError(t, d.EnableProximity(ctx))
	assert.Equal(t, byte(0x04), d.enable)

	expectRegisterWrite(bus, regEnable, 0x24)
	assert.NoError(t, d.EnableProximityInterrupts(ctx))
	assert.Equal(t, byte(0x24), d.enable)

	bus.On("WriteToAddr", mock.Anything, byte(DefaultAddress), mock.Anything).
		Return(errors.New("i2c write failed")).Once()
	err := d.EnableGesture(ctx)
	assert.Error(t, err)
	assert.Contains(t, err.Error(), "could not write register")
	assert.Equal(t, byte(0x24), d.enable, "failed write leaves the shadow untouched")

	bus.AssertExpectations(t)
}

func TestSetMode(t *testing.T) {
	bus := new(MockI2CBus)
	d := New(bus)

	// the current register contents come from hardware, not the cache, so
	// externally modified bits are picked up
	expectRegisterRead(bus, regEnable, 0x45)
	expectRegisterWrite(bus, regEnable, 0x05)

	assert.NoError(t, d.SetMode(context.Background(), 0x05))
	assert.Equal(t, byte(0x05), d.enable)

	bus.AssertExpectations(t)
}

func TestWaitConfiguration(t *testing.T) {
	bus := new(MockI2CBus)
	d := New(bus)
	ctx := context.Background()

	expectRegisterWrite(bus, regEnable, 0x08)
	assert.NoError(t, d.EnableWait(ctx))

	expectRegisterWrite(bus, regConfig1, 0x42)
	assert.NoError(t, d.EnableWaitLong(ctx))
	assert.Equal(t, byte(0x42), d.config1)

	expectRegisterWrite(bus, regConfig1, 0x40)
	assert.NoError(t, d.DisableWaitLong(ctx))
	assert.Equal(t, byte(0x40), d.config1)

	expectRegisterWrite(bus, regWTime, 246)
	assert.NoError(t, d.SetWaitTime(ctx, 246))

	bus.AssertExpectations(t)
}

func TestInterruptCommands(t *testing.T) {
	bus := new(MockI2CBus)
	d := New(bus)
	ctx := context.Background()

	bus.On("WriteToAddr", mock.Anything, byte(DefaultAddress), []byte{regIForce}).
		Return(nil).Once()
	assert.NoError(t, d.ForceInterrupt(ctx))

	bus.On("WriteToAddr", mock.Anything, byte(DefaultAddress), []byte{regAIClear}).
		Return(nil).Once()
	assert.NoError(t, d.ClearInterrupts(ctx))

	bus.AssertExpectations(t)
}
