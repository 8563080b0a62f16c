package apds9960

import (
	"context"

	"github.com/stretchr/testify/mock"
)

// MockI2CBus is a mock implementation of I2CBus using testify/mock
type MockI2CBus struct {
	mock.Mock
}

func (m *MockI2CBus) WriteToAddr(ctx context.Context, address byte, buffer []byte) error {
	args := m.Called(ctx, address, buffer)
	return args.Error(0)
}

func (m *MockI2CBus) ReadFromAddr(ctx context.Context, address byte, buffer []byte) (int, error) {
	args := m.Called(ctx, address, buffer)
	if args.Error(1) != nil {
		return 0, args.Error(1)
	}
	// Copy mock data to buffer if provided; the copied length is the read size
	// so short reads are staged by handing over less data than requested.
	if data, ok := args.Get(0).([]byte); ok {
		return copy(buffer, data), nil
	}
	return 0, nil
}

func (m *MockI2CBus) Release(ctx context.Context) error {
	args := m.Called(ctx)
	return args.Error(0)
}

// expectRegisterRead stages a register read: the pointer write followed by the
// data transfer.
func expectRegisterRead(bus *MockI2CBus, register byte, data ...byte) {
	bus.On("WriteToAddr", mock.Anything, byte(DefaultAddress), []byte{register}).
		Return(nil).Once()
	bus.On("ReadFromAddr", mock.Anything, byte(DefaultAddress), mock.Anything).
		Return(data, nil).Once()
}

// expectRegisterWrite stages a single register write.
func expectRegisterWrite(bus *MockI2CBus, register, value byte) {
	bus.On("WriteToAddr", mock.Anything, byte(DefaultAddress), []byte{register, value}).
		Return(nil).Once()
}
