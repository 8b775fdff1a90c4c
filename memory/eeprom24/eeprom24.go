// Package eeprom24 drives 24-series I2C EEPROMs through the addressed
// access surface of the bit-bashed master. The device is exposed as a
// seekable byte stream; writes are split on page boundaries and each page
// is followed by the device's internal write-cycle delay.
package eeprom24

import (
	"errors"
	"fmt"
	"io"
	"time"

	"github.com/mklimuk/bbi2c"
)

// Config describes one EEPROM's geometry and write-cycle timing.
type Config struct {
	Size       uint          `yaml:"size"`
	PageSize   uint          `yaml:"page_size"`
	WriteDelay time.Duration `yaml:"write_delay"`
}

var (
	Conf24C02  = Config{Size: 256, PageSize: 8, WriteDelay: 5 * time.Millisecond}
	Conf24C32  = Config{Size: 4096, PageSize: 32, WriteDelay: 5 * time.Millisecond}
	Conf24C256 = Config{Size: 32768, PageSize: 64, WriteDelay: 5 * time.Millisecond}
)

// EEPROM24 maintains a file pointer over the memory array.
// Not safe for concurrent use.
type EEPROM24 struct {
	config Config
	mem    bbi2c.AddressableMemory
	pos    uint
}

var _ io.Reader = &EEPROM24{}
var _ io.Writer = &EEPROM24{}
var _ io.Seeker = &EEPROM24{}

func New(mem bbi2c.AddressableMemory, config Config) (*EEPROM24, error) {
	if config.Size == 0 || config.PageSize == 0 {
		return nil, errors.New("eeprom24: size and page size must be set")
	}
	if config.PageSize&(config.PageSize-1) != 0 {
		return nil, fmt.Errorf("eeprom24: page size %d is not a power of two", config.PageSize)
	}
	return &EEPROM24{config: config, mem: mem}, nil
}

func (e *EEPROM24) Read(b []byte) (int, error) {
	if e.pos >= e.config.Size {
		return 0, io.EOF
	}
	end := e.pos + uint(len(b))
	if end > e.config.Size {
		end = e.config.Size
	}
	n := int(end - e.pos)
	if n == 0 {
		return 0, nil
	}
	if err := e.mem.ReadFromAddr(uint32(e.pos), b[:n]); err != nil {
		return 0, fmt.Errorf("eeprom24: read at %#x failed: %w", e.pos, err)
	}
	e.pos = end
	return n, nil
}

// Write stores b starting at the file pointer. Each chunk is trimmed to
// the device page holding it; writing across a page boundary without
// splitting would wrap inside the page.
func (e *EEPROM24) Write(b []byte) (int, error) {
	written := 0
	for len(b) > 0 && e.pos < e.config.Size {
		room := e.config.PageSize - e.pos&(e.config.PageSize-1)
		if room > uint(len(b)) {
			room = uint(len(b))
		}
		if remaining := e.config.Size - e.pos; room > remaining {
			room = remaining
		}
		if err := e.mem.WriteToAddr(uint32(e.pos), b[:room]); err != nil {
			return written, fmt.Errorf("eeprom24: write at %#x failed: %w", e.pos, err)
		}
		time.Sleep(e.config.WriteDelay)
		e.pos += room
		written += int(room)
		b = b[room:]
	}
	if len(b) > 0 {
		return written, io.EOF
	}
	return written, nil
}

func (e *EEPROM24) Seek(offset int64, whence int) (int64, error) {
	var pos int64
	switch whence {
	case io.SeekStart:
		pos = offset
	case io.SeekCurrent:
		pos = int64(e.pos) + offset
	case io.SeekEnd:
		pos = int64(e.config.Size) + offset
	default:
		return int64(e.pos), fmt.Errorf("eeprom24: invalid whence %d", whence)
	}
	if pos < 0 {
		return int64(e.pos), errors.New("eeprom24: negative position")
	}
	if pos > int64(e.config.Size) {
		return int64(e.pos), errors.New("eeprom24: position beyond end of array")
	}
	e.pos = uint(pos)
	return pos, nil
}
