package gpio

import (
	"fmt"
	"time"

	"gobot.io/x/gobot/v2/drivers/gpio"

	"github.com/mklimuk/bbi2c"
)

// DigitalPinner is the slice of a gobot adaptor the bus lines need.
type DigitalPinner interface {
	gpio.DigitalReader
	gpio.DigitalWriter
}

var _ bbi2c.Lines = &GobotLines{}

// GobotLines drives the bus lines through a gobot adaptor's digital pins.
// Driving low is a digital write of 0; releasing is done with a digital
// read, which flips the pin to input and lets the bus pull-up raise the
// line. External pull-ups on both lines are required.
type GobotLines struct {
	conn DigitalPinner
	cfg  bbi2c.BusConfig
}

func NewGobotLines(conn DigitalPinner, cfg bbi2c.BusConfig) *GobotLines {
	return &GobotLines{conn: conn, cfg: cfg}
}

func (l *GobotLines) SetSCL(high bool) error {
	if err := l.set(l.cfg.SCL, high); err != nil {
		return fmt.Errorf("could not set SCL: %w", err)
	}
	return nil
}

func (l *GobotLines) SetSDA(high bool) error {
	if err := l.set(l.cfg.SDA, high); err != nil {
		return fmt.Errorf("could not set SDA: %w", err)
	}
	return nil
}

func (l *GobotLines) set(pin string, high bool) error {
	if high {
		_, err := l.conn.DigitalRead(pin)
		return err
	}
	return l.conn.DigitalWrite(pin, 0)
}

func (l *GobotLines) SDA() (bool, error) {
	val, err := l.conn.DigitalRead(l.cfg.SDA)
	if err != nil {
		return false, fmt.Errorf("could not read SDA: %w", err)
	}
	return val != 0, nil
}

func (l *GobotLines) WaitSCL() error {
	deadline := time.Now().Add(stretchTimeout)
	for {
		val, err := l.conn.DigitalRead(l.cfg.SCL)
		if err != nil {
			return fmt.Errorf("could not read SCL: %w", err)
		}
		if val != 0 {
			return nil
		}
		if time.Now().After(deadline) {
			return bbi2c.ErrClockTimeout
		}
	}
}

func (l *GobotLines) Hold() {
	for end := time.Now().Add(holdTime); time.Now().Before(end); {
	}
}
