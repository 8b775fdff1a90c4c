package eeprom24

import (
	"io"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
)

// MockMemory is a mock implementation of bbi2c.AddressableMemory using
// testify/mock.
type MockMemory struct {
	mock.Mock
}

func (m *MockMemory) ReadFromAddr(addr uint32, buffer []byte) error {
	args := m.Called(addr, buffer)
	if data, ok := args.Get(0).([]byte); ok && len(data) <= len(buffer) {
		copy(buffer, data)
	}
	return args.Error(1)
}

func (m *MockMemory) WriteToAddr(addr uint32, buffer []byte) error {
	args := m.Called(addr, buffer)
	return args.Error(0)
}

func testConfig() Config {
	return Config{Size: 32, PageSize: 8, WriteDelay: time.Millisecond}
}

func TestWriteSplitsOnPageBoundaries(t *testing.T) {
	mem := new(MockMemory)
	e, err := New(mem, testConfig())
	require.NoError(t, err)

	_, err = e.Seek(4, io.SeekStart)
	require.NoError(t, err)

	payload := []byte{1, 2, 3, 4, 5, 6, 7, 8, 9, 10}
	mem.On("WriteToAddr", uint32(4), payload[:4]).Return(nil).Once()
	mem.On("WriteToAddr", uint32(8), payload[4:]).Return(nil).Once()

	n, err := e.Write(payload)
	require.NoError(t, err)
	assert.Equal(t, 10, n)
	mem.AssertExpectations(t)
}

func TestWritePastEndReturnsEOF(t *testing.T) {
	mem := new(MockMemory)
	e, err := New(mem, testConfig())
	require.NoError(t, err)

	_, err = e.Seek(28, io.SeekStart)
	require.NoError(t, err)

	payload := []byte{1, 2, 3, 4, 5, 6}
	mem.On("WriteToAddr", uint32(28), payload[:4]).Return(nil).Once()

	n, err := e.Write(payload)
	assert.ErrorIs(t, err, io.EOF)
	assert.Equal(t, 4, n)
	mem.AssertExpectations(t)
}

func TestReadTrimsToArrayEnd(t *testing.T) {
	mem := new(MockMemory)
	e, err := New(mem, testConfig())
	require.NoError(t, err)

	_, err = e.Seek(30, io.SeekStart)
	require.NoError(t, err)

	mem.On("ReadFromAddr", uint32(30), mock.Anything).Return([]byte{0xAA, 0xBB}, nil).Once()

	buf := make([]byte, 8)
	n, err := e.Read(buf)
	require.NoError(t, err)
	assert.Equal(t, 2, n)
	assert.Equal(t, []byte{0xAA, 0xBB}, buf[:n])

	_, err = e.Read(buf)
	assert.ErrorIs(t, err, io.EOF)
	mem.AssertExpectations(t)
}

func TestSeek(t *testing.T) {
	tests := []struct {
		name    string
		offset  int64
		whence  int
		want    int64
		wantErr bool
	}{
		{name: "start", offset: 10, whence: io.SeekStart, want: 10},
		{name: "current", offset: 5, whence: io.SeekCurrent, want: 15},
		{name: "end", offset: -2, whence: io.SeekEnd, want: 30},
		{name: "negative", offset: -1, whence: io.SeekStart, wantErr: true},
		{name: "beyond end", offset: 1, whence: io.SeekEnd, wantErr: true},
	}

	e, err := New(new(MockMemory), testConfig())
	require.NoError(t, err)

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			pos, err := e.Seek(tt.offset, tt.whence)
			if tt.wantErr {
				assert.Error(t, err)
				return
			}
			require.NoError(t, err)
			assert.Equal(t, tt.want, pos)
		})
	}
}

func TestConfigValidation(t *testing.T) {
	_, err := New(new(MockMemory), Config{Size: 256, PageSize: 6})
	assert.Error(t, err)
	_, err = New(new(MockMemory), Config{})
	assert.Error(t, err)
}
