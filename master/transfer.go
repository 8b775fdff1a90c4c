package master

// Action selects which pieces of a bus transaction a Transfer call
// performs. Combining flags lets callers chain partial transfers:
// start only, data only to continue a claimed transaction, or stop only.
type Action uint8

const (
	// ActionStart emits a start condition followed by the address byte.
	ActionStart Action = 1 << iota
	// ActionStop emits a stop condition after the data phase.
	ActionStop
	// ActionRead receives data bytes from the slave.
	ActionRead
	// ActionWrite sends data bytes to the slave.
	ActionWrite
)

// Transfer performs one logical bus transaction composed per the action
// flags: optional start condition plus address byte, a data phase of
// len(buffer) bytes in the flagged direction, and an optional stop
// condition. It aborts on the first failure, returning the number of data
// bytes completed before it; on full success it returns len(buffer).
func (d *Device) Transfer(buffer []byte, action Action) (int, error) {
	if action&ActionStart != 0 {
		if err := d.sendStart(); err != nil {
			return 0, err
		}
		if err := d.sendAddr(action&ActionRead != 0); err != nil {
			return 0, err
		}
	}
	for i := range buffer {
		var err error
		if action&ActionWrite != 0 {
			err = d.sendByte(buffer[i])
		} else {
			buffer[i], err = d.recvByte()
		}
		if err != nil {
			return i, err
		}
	}
	if action&ActionStop != 0 {
		if err := d.sendStop(); err != nil {
			return len(buffer), err
		}
	}
	return len(buffer), nil
}

// WriteToAddr writes buffer to the slave's memory at addr: one transfer
// sending the address field, then a second carrying the payload and the
// stop condition. The first failure short-circuits the operation.
func (d *Device) WriteToAddr(addr uint32, buffer []byte) error {
	if _, err := d.Transfer(d.encodeAddr(addr), ActionStart|ActionWrite); err != nil {
		return err
	}
	_, err := d.Transfer(buffer, ActionWrite|ActionStop)
	return err
}

// ReadFromAddr fills buffer from the slave's memory at addr. The address
// field is written first, then a repeated start with the read direction
// bit precedes the payload phase.
func (d *Device) ReadFromAddr(addr uint32, buffer []byte) error {
	if _, err := d.Transfer(d.encodeAddr(addr), ActionStart|ActionWrite); err != nil {
		return err
	}
	_, err := d.Transfer(buffer, ActionStart|ActionRead|ActionStop)
	return err
}

// encodeAddr renders addr big-endian over the slave's configured address
// field width, high byte first as 24-series EEPROMs expect.
func (d *Device) encodeAddr(addr uint32) []byte {
	buf := make([]byte, d.slave.AddrBytes)
	for i := len(buf) - 1; i >= 0; i-- {
		buf[i] = byte(addr)
		addr >>= 8
	}
	return buf
}
