package bbi2c

// Lines is the hardware contract consumed by the bit-bashed master. One
// implementation drives the two open-drain lines of a single physical bus.
//
// high=true releases a line to input, letting the bus pull-up raise it;
// high=false actively drives it low. A released line can therefore still
// read low when another device holds it down.
type Lines interface {
	SetSCL(high bool) error
	SetSDA(high bool) error
	// SDA samples the data line.
	SDA() (bool, error)
	// WaitSCL blocks until the clock line reads high or the
	// implementation's stretch bound elapses, in which case it returns
	// ErrClockTimeout. A slave stretching the clock holds the line low
	// after the master has released it.
	WaitSCL() error
	// Hold busy-waits for the fixed bus timing margin between line
	// transitions.
	Hold()
}

// BusConfig assigns the physical pins implementing one bus. Pin names are
// resolved by the line driver (gpio package).
type BusConfig struct {
	SCL string `yaml:"scl"`
	SDA string `yaml:"sda"`
}

// SlaveConfig describes the target device on the bus.
type SlaveConfig struct {
	// Addr is the 7-bit bus identifier.
	Addr byte `yaml:"address"`
	// AddrBytes is the width of the device's memory address field, used
	// by the addressed read/write helpers.
	AddrBytes int `yaml:"address_bytes"`
}

type AddressableReader interface {
	ReadFromAddr(addr uint32, buffer []byte) error
}

type AddressableWriter interface {
	WriteToAddr(addr uint32, buffer []byte) error
}

// AddressableMemory is the surface memory-mapped device drivers bind to.
type AddressableMemory interface {
	AddressableReader
	AddressableWriter
}
