package master

import "github.com/mklimuk/bbi2c"

// sendByte shifts one byte out MSB-first and reads back the
// acknowledgment bit. A low ACK bit means the receiver accepted the
// byte; a high one yields bbi2c.ErrNACKReceived. Bit-level failures
// (arbitration loss, stretch timeout) abort immediately.
func (d *Device) sendByte(value byte) error {
	for i := 0; i < 8; i++ {
		if err := d.sendBit(value&0x80 != 0); err != nil {
			return err
		}
		value <<= 1
	}
	ack, err := d.recvBit()
	if err != nil {
		return err
	}
	if ack {
		return bbi2c.ErrNACKReceived
	}
	return nil
}

// recvByte shifts one byte in MSB-first and acknowledges it. Withholding
// the ACK on the last byte of a read is not modeled at this layer.
func (d *Device) recvByte() (byte, error) {
	var value byte
	for i := 0; i < 8; i++ {
		bit, err := d.recvBit()
		if err != nil {
			return 0, err
		}
		value <<= 1
		if bit {
			value |= 1
		}
	}
	return value, d.sendBit(false)
}
