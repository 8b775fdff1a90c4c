package master

import "fmt"

// simBus implements bbi2c.Lines over an in-memory wire model with an
// optional attached slave state machine. Both open-drain lines resolve to
// the AND of every party's contribution; a released line reads high.
type simBus struct {
	mSCL, mSDA bool // master contributions, true = released
	forceSDA   bool // simulates another master holding SDA low
	waitErr    error

	slave  *simSlave
	trace  []string // every line operation, in order
	starts int
	stops  int
}

func newSimBus(slave *simSlave) *simBus {
	return &simBus{mSCL: true, mSDA: true, slave: slave}
}

func (b *simBus) sdaLine() bool {
	v := b.mSDA && !b.forceSDA
	if b.slave != nil {
		v = v && b.slave.sda
	}
	return v
}

func (b *simBus) SetSCL(high bool) error {
	b.trace = append(b.trace, fmt.Sprintf("scl=%t", high))
	if high == b.mSCL {
		return nil
	}
	b.mSCL = high
	if b.slave != nil {
		if high {
			b.slave.rise(b.sdaLine())
		} else {
			b.slave.fall()
		}
	}
	return nil
}

func (b *simBus) SetSDA(high bool) error {
	b.trace = append(b.trace, fmt.Sprintf("sda=%t", high))
	before := b.sdaLine()
	b.mSDA = high
	after := b.sdaLine()
	if b.mSCL && before != after {
		// data transitions under a high clock are the start and stop
		// conditions
		if after {
			b.stops++
			if b.slave != nil {
				b.slave.stopCond()
			}
		} else {
			b.starts++
			if b.slave != nil {
				b.slave.startCond()
			}
		}
	}
	return nil
}

func (b *simBus) SDA() (bool, error) {
	return b.sdaLine(), nil
}

func (b *simBus) WaitSCL() error {
	return b.waitErr
}

func (b *simBus) Hold() {}

// idle reports whether every party released both lines.
func (b *simBus) idle() bool {
	if !b.mSCL || !b.mSDA {
		return false
	}
	return b.slave == nil || (b.slave.sda && !b.slave.started)
}

// simSlave models one addressed slave. It samples SDA on SCL rising
// edges, changes its own SDA drive only on falling edges, acknowledges
// per policy and serves read data MSB-first.
type simSlave struct {
	address byte
	// ackData decides whether the n-th data byte of a write is
	// acknowledged; nil acknowledges everything.
	ackData  func(n int) bool
	readData []byte

	sda bool // slave contribution, true = released

	started   bool
	reading   bool
	phase     int // 0 = address byte, 1 = data
	slot      int // rising edges seen in the current byte (0..9)
	shift     byte
	nData     int
	readIdx   int
	lastAck   bool
	seen      []byte // write bytes observed on the wire
	committed []byte // write bytes acknowledged
}

func newSimSlave(address byte) *simSlave {
	return &simSlave{address: address, sda: true}
}

func (s *simSlave) startCond() {
	s.started = true
	s.phase = 0
	s.slot = 0
	s.shift = 0
	s.reading = false
	s.sda = true
}

func (s *simSlave) stopCond() {
	s.started = false
	s.sda = true
}

func (s *simSlave) rise(sda bool) {
	if !s.started {
		return
	}
	if s.slot < 8 && !(s.phase == 1 && s.reading) {
		s.shift <<= 1
		if sda {
			s.shift |= 1
		}
	}
	s.slot++
}

func (s *simSlave) fall() {
	if !s.started {
		s.sda = true
		return
	}
	if s.slot == 9 {
		s.commit()
		s.slot = 0
	}
	switch {
	case s.slot < 8 && s.phase == 1 && s.reading:
		s.driveBit(s.slot)
	case s.slot == 8:
		if s.phase == 1 && s.reading {
			s.sda = true // the master drives the ack slot on reads
		} else {
			s.lastAck = s.acks()
			s.sda = !s.lastAck
		}
	default:
		s.sda = true
	}
}

func (s *simSlave) acks() bool {
	if s.phase == 0 {
		return s.shift>>1 == s.address
	}
	if s.ackData != nil {
		return s.ackData(s.nData)
	}
	return true
}

func (s *simSlave) commit() {
	if s.phase == 0 {
		if s.shift>>1 != s.address {
			// not for us: go inert until the next start condition
			s.started = false
			s.sda = true
			return
		}
		s.reading = s.shift&1 == 1
		s.phase = 1
		s.nData = 0
		s.readIdx = 0
		return
	}
	if s.reading {
		s.readIdx++
		s.nData++
		return
	}
	s.seen = append(s.seen, s.shift)
	if s.lastAck {
		s.committed = append(s.committed, s.shift)
	}
	s.nData++
}

func (s *simSlave) driveBit(k int) {
	b := byte(0xFF) // past the end the slave leaves the line released
	if s.readIdx < len(s.readData) {
		b = s.readData[s.readIdx]
	}
	s.sda = b&(0x80>>k) != 0
}

// load flips the slave into the read data phase with the given payload,
// first bit already driven, as if a read-addressed byte just completed.
// Used by byte-level loopback tests that bypass the condition layer.
func (s *simSlave) load(data []byte) {
	s.started = true
	s.phase = 1
	s.reading = true
	s.readData = data
	s.readIdx = 0
	s.slot = 0
	s.shift = 0
	s.driveBit(0)
}
