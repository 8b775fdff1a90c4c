// Package master implements a bit-bashed (software) I2C master on top of
// two open-drain lines exposed through the bbi2c.Lines contract. It is
// meant for platforms without a dedicated I2C controller: every clock
// pulse, start/stop condition and acknowledgment bit is produced in
// software, including arbitration-loss detection against other masters
// and tolerance for slave clock stretching.
//
// The engine is synchronous and single-threaded. A device handle must not
// be used from more than one goroutine or interrupt context at a time;
// serialization is the caller's responsibility.
package master

import (
	"github.com/mklimuk/bbi2c"
)

// Device binds one bus (through its line driver) to one slave. Handles
// are owned by the registry and stay valid for its whole life.
type Device struct {
	lines bbi2c.Lines
	slave bbi2c.SlaveConfig
	// claimed tracks whether this master currently holds the bus between
	// a start and a stop condition. It selects between an initial start
	// (bus-conflict checked) and a repeated start.
	claimed bool
}

// Slave returns the slave configuration the device was registered with.
func (d *Device) Slave() bbi2c.SlaveConfig {
	return d.slave
}

// Registry is a fixed-capacity table of devices. Registration is not
// synchronized; concurrent initialization must be serialized externally.
type Registry struct {
	devices []Device
}

func NewRegistry(capacity int) *Registry {
	return &Registry{devices: make([]Device, 0, capacity)}
}

// Register binds a line driver and a slave configuration into a new
// device handle and releases both lines so the bus idles high. It fails
// with bbi2c.ErrRegistryFull once capacity is reached and never disturbs
// already registered devices.
func (r *Registry) Register(lines bbi2c.Lines, slave bbi2c.SlaveConfig) (*Device, error) {
	if len(r.devices) == cap(r.devices) {
		return nil, bbi2c.ErrRegistryFull
	}
	// capacity is fixed up front so append never reallocates and handed
	// out pointers stay stable
	r.devices = append(r.devices, Device{lines: lines, slave: slave})
	dev := &r.devices[len(r.devices)-1]
	if err := dev.lines.SetSDA(true); err != nil {
		return nil, err
	}
	if err := dev.lines.SetSCL(true); err != nil {
		return nil, err
	}
	return dev, nil
}

// Len returns the number of registered devices.
func (r *Registry) Len() int {
	return len(r.devices)
}
