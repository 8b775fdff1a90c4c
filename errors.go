package bbi2c

import "errors"

// ErrBusConflict signals that a start condition found the data line
// already low: another master claimed the bus first.
var ErrBusConflict = errors.New("bus conflict: SDA low at start condition")

// ErrArbitrationLost signals that a transmitted high bit read back low,
// meaning another master overrode it and this master must stop driving.
var ErrArbitrationLost = errors.New("arbitration lost")

// ErrClockTimeout signals that the bounded wait for a stretched clock
// line to be released expired.
var ErrClockTimeout = errors.New("clock stretch wait timed out")

// ErrNACKReceived signals that the device did not ACK a byte.
var ErrNACKReceived = errors.New("NACK received")

// ErrNoSuchDevice signals that no device acknowledged the address byte.
var ErrNoSuchDevice = errors.New("no such device")

// ErrRegistryFull signals that the device registry capacity is exhausted.
var ErrRegistryFull = errors.New("device registry capacity exhausted")
