package master

import (
	"errors"
	"fmt"

	"github.com/mklimuk/bbi2c"
)

// sendStart generates a start condition: SDA falls while SCL is high.
//
// On an unclaimed bus both lines are expected to idle high; SDA already
// reading low means another master got in first and the call fails with
// bbi2c.ErrBusConflict. On a bus this master already claimed the call is
// a repeated start: both lines are first walked back high (SDA while SCL
// is still low, then SCL released and stretch-waited) so the SDA fall
// below again happens under a high clock.
func (d *Device) sendStart() error {
	if d.claimed {
		if err := d.lines.SetSDA(true); err != nil {
			return err
		}
		d.lines.Hold()
		if err := d.lines.SetSCL(true); err != nil {
			return err
		}
		if err := d.lines.WaitSCL(); err != nil {
			return err
		}
		d.lines.Hold()
	} else {
		sda, err := d.lines.SDA()
		if err != nil {
			return err
		}
		if !sda {
			return bbi2c.ErrBusConflict
		}
	}
	if err := d.lines.SetSDA(false); err != nil {
		return err
	}
	d.lines.Hold()
	if err := d.lines.SetSCL(false); err != nil {
		return err
	}
	d.claimed = true
	return nil
}

// sendStop generates a stop condition: SDA rises while SCL is high. The
// transaction is logically complete at this point, so a stretch-wait
// timeout is ignored and arbitration is not checked; the stop is best
// effort.
func (d *Device) sendStop() error {
	if err := d.lines.SetSDA(false); err != nil {
		return err
	}
	d.lines.Hold()
	if err := d.lines.SetSCL(true); err != nil {
		return err
	}
	_ = d.lines.WaitSCL()
	d.lines.Hold()
	if err := d.lines.SetSDA(true); err != nil {
		return err
	}
	d.claimed = false
	return nil
}

// sendAddr frames the slave address: the 7-bit identifier shifted left
// by one, with the least significant bit set for a read transaction.
// 10-bit addressing is not implemented. A NACK on the address byte means
// nothing answered at that address.
func (d *Device) sendAddr(read bool) error {
	value := d.slave.Addr << 1
	if read {
		value |= 1
	}
	err := d.sendByte(value)
	if errors.Is(err, bbi2c.ErrNACKReceived) {
		return fmt.Errorf("address %#02x: %w", d.slave.Addr, bbi2c.ErrNoSuchDevice)
	}
	return err
}
