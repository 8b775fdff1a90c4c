package master

import "github.com/mklimuk/bbi2c"

// sendBit clocks one bit out to the bus.
//
// Preconditions: SCL driven low. Postconditions: SCL driven low, SDA left
// at whatever was driven; when the stretch wait fails the clock stays
// released and the error is returned as is.
func (d *Device) sendBit(bit bool) error {
	// SDA may only change while SCL is low
	if err := d.lines.SetSDA(bit); err != nil {
		return err
	}
	if err := d.lines.SetSCL(true); err != nil {
		return err
	}
	// The receiver samples on the rising edge, but on an open-drain bus
	// that edge is slow and a slave may hold SCL low to stretch the
	// clock. Only once the line actually reads high has the bit been
	// seen.
	if err := d.lines.WaitSCL(); err != nil {
		return err
	}
	if bit {
		sda, err := d.lines.SDA()
		if err != nil {
			return err
		}
		// we drove high but the bus reads low: another master won
		if !sda {
			return bbi2c.ErrArbitrationLost
		}
	}
	d.lines.Hold()
	return d.lines.SetSCL(false)
}

// recvBit samples one bit from the bus over a single clock pulse.
//
// Preconditions: SCL driven low. Postconditions: SCL driven low, SDA
// released to input.
func (d *Device) recvBit() (bool, error) {
	if err := d.lines.SetSDA(true); err != nil {
		return false, err
	}
	d.lines.Hold()
	if err := d.lines.SetSCL(true); err != nil {
		return false, err
	}
	if err := d.lines.WaitSCL(); err != nil {
		return false, err
	}
	bit, err := d.lines.SDA()
	if err != nil {
		return false, err
	}
	d.lines.Hold()
	if err = d.lines.SetSCL(false); err != nil {
		return false, err
	}
	return bit, nil
}
