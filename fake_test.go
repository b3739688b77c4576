package cc1101

import (
	"errors"
	"time"
)

// fakeConn simulates the register file and state machine of a CC1101.
type fakeConn struct {
	regs    [numConfigRegisters]byte
	pa      [8]byte
	status  [RCCTRL0_STATUS - PARTNUM + 1]byte
	state   State
	strobes []Strobe
	log     [][]byte // headers and payloads as sent

	// rssi returns the raw RSSI reading for the current configuration.
	rssi func(f *fakeConn) byte

	// stuckRX is the number of SRX strobes that leave the radio idle.
	stuckRX int

	// failAt makes the transaction with this index (counting from 1) fail.
	failAt int
	closed bool

	// retuned records the state of every rejected CHANNR or FREQ write.
	retuned []State
}

var (
	errFakeTransfer  = errors.New("fake transfer failure")
	errRetuneNotIdle = errors.New("synthesizer register written outside IDLE")
)

// tuning reports whether addr selects the carrier or channel.
func tuning(addr byte) bool {
	return addr == CHANNR || addr >= FREQ2 && addr <= FREQ0
}

func newFakeConn() *fakeConn {
	f := &fakeConn{state: StateIdle}
	f.status[VERSION-PARTNUM] = 0x14
	return f
}

func (f *fakeConn) Transfer(buf []byte) error {
	f.log = append(f.log, append([]byte(nil), buf...))
	if f.failAt != 0 && len(f.log) == f.failAt {
		return errFakeTransfer
	}
	header := buf[0]
	addr := header & addrMask
	read := header&ReadSingle != 0
	burst := header&WriteBurst != 0
	buf[0] = byte(f.state) << 4 & 0x70
	if len(buf) == 1 {
		f.strobe(Strobe(addr))
		return nil
	}
	switch {
	case addr >= PARTNUM && addr <= RCCTRL0_STATUS:
		if !read || !burst {
			return errors.New("status register accessed without read burst header")
		}
		buf[1] = f.statusRegister(addr)
	case addr == PATABLE:
		for i := 1; i < len(buf); i++ {
			if read {
				buf[i] = f.pa[(i-1)%len(f.pa)]
			} else {
				f.pa[(i-1)%len(f.pa)] = buf[i]
			}
		}
	default:
		for i := 1; i < len(buf); i++ {
			a := int(addr) + i - 1
			if !burst {
				a = int(addr)
			}
			if a >= len(f.regs) {
				break
			}
			if !read && tuning(byte(a)) && f.state != StateIdle {
				f.retuned = append(f.retuned, f.state)
				return errRetuneNotIdle
			}
			if read {
				buf[i] = f.regs[a]
			} else {
				f.regs[a] = buf[i]
			}
		}
	}
	return nil
}

func (f *fakeConn) statusRegister(addr byte) byte {
	switch addr {
	case MARCSTATE:
		return byte(f.state)
	case RSSI:
		if f.rssi != nil {
			return f.rssi(f)
		}
	}
	return f.status[addr-PARTNUM]
}

func (f *fakeConn) strobe(s Strobe) {
	f.strobes = append(f.strobes, s)
	switch s {
	case SIDLE, SCAL, SFRX, SFTX:
		f.state = StateIdle
	case SRX:
		if f.stuckRX > 0 {
			f.stuckRX--
			return
		}
		f.state = StateRX
	case SRES:
		f.regs = [numConfigRegisters]byte{}
		f.state = StateIdle
	}
}

func (f *fakeConn) Close() error {
	f.closed = true
	return nil
}

// count returns the number of strobes of kind s.
func (f *fakeConn) count(s Strobe) int {
	n := 0
	for _, x := range f.strobes {
		if x == s {
			n++
		}
	}
	return n
}

func noSleep(time.Duration) {}

func newTestRadio(options ...func(r *Radio)) (*Radio, *fakeConn) {
	f := newFakeConn()
	r := New(NewBus(f), options...)
	r.mode.sleep = noSleep
	return r, f
}
