// Package gpio provides bbi2c.Lines implementations over host GPIO pins.
package gpio

import (
	"fmt"
	"time"

	"periph.io/x/conn/v3/gpio"
	"periph.io/x/conn/v3/gpio/gpioreg"
	"periph.io/x/host/v3"

	"github.com/mklimuk/bbi2c"
)

// Bus timing is fixed: a quarter-period hold of 4µs (roughly 60kHz with
// stretch waits included) and a 25ms bound on slave clock stretching.
const (
	holdTime       = 4 * time.Microsecond
	stretchTimeout = 25 * time.Millisecond
)

var _ bbi2c.Lines = &PeriphLines{}

// PeriphLines drives the two bus lines through periph.io pins. Lines are
// released by switching the pin to input with the pull-up enabled and
// driven by switching it to output low, which gives open-drain behavior
// on ordinary push-pull GPIOs.
type PeriphLines struct {
	scl gpio.PinIO
	sda gpio.PinIO
}

// NewPeriphLines initializes the periph host and resolves the configured
// pin names.
func NewPeriphLines(cfg bbi2c.BusConfig) (*PeriphLines, error) {
	if _, err := host.Init(); err != nil {
		return nil, fmt.Errorf("could not init host: %w", err)
	}
	scl := gpioreg.ByName(cfg.SCL)
	if scl == nil {
		return nil, fmt.Errorf("unknown SCL pin %q", cfg.SCL)
	}
	sda := gpioreg.ByName(cfg.SDA)
	if sda == nil {
		return nil, fmt.Errorf("unknown SDA pin %q", cfg.SDA)
	}
	return &PeriphLines{scl: scl, sda: sda}, nil
}

func (l *PeriphLines) SetSCL(high bool) error {
	if err := set(l.scl, high); err != nil {
		return fmt.Errorf("could not set SCL: %w", err)
	}
	return nil
}

func (l *PeriphLines) SetSDA(high bool) error {
	if err := set(l.sda, high); err != nil {
		return fmt.Errorf("could not set SDA: %w", err)
	}
	return nil
}

func set(pin gpio.PinIO, high bool) error {
	if high {
		return pin.In(gpio.PullUp, gpio.NoEdge)
	}
	return pin.Out(gpio.Low)
}

func (l *PeriphLines) SDA() (bool, error) {
	return l.sda.Read() == gpio.High, nil
}

// WaitSCL busy-polls the clock line until it reads high. Clock stretch
// timing is sub-millisecond, so polling beats any cooperative wait here.
func (l *PeriphLines) WaitSCL() error {
	deadline := time.Now().Add(stretchTimeout)
	for l.scl.Read() != gpio.High {
		if time.Now().After(deadline) {
			return bbi2c.ErrClockTimeout
		}
	}
	return nil
}

// Hold busy-waits for the quarter-period timing margin. time.Sleep is too
// coarse at this scale.
func (l *PeriphLines) Hold() {
	for end := time.Now().Add(holdTime); time.Now().Before(end); {
	}
}
