package cc1101

import (
	"log"
	"sync"
)

// Conn is a full-duplex synchronous serial connection to the radio.
// Transfer clocks out the contents of buf as a single transaction
// and replaces them with the bytes clocked in at the same time.
type Conn interface {
	Transfer(buf []byte) error
	Close() error
}

// Statistics counts bus traffic.
// Write transactions are counted as packets sent, read transactions as packets received.
type Statistics struct {
	Packets struct {
		Sent     int
		Received int
	}
	Bytes struct {
		Sent     int
		Received int
	}
}

// Bus frames register transactions over a Conn.
// Transactions are serialized; a burst is never interleaved with another transaction.
type Bus struct {
	mu    sync.Mutex
	conn  Conn
	stats Statistics
}

// NewBus returns a Bus using the given connection.
func NewBus(conn Conn) *Bus {
	return &Bus{conn: conn}
}

// Close closes the underlying connection.
func (b *Bus) Close() error {
	b.mu.Lock()
	defer b.mu.Unlock()
	return b.conn.Close()
}

// Statistics returns the byte and transaction counts for the bus.
func (b *Bus) Statistics() Statistics {
	b.mu.Lock()
	defer b.mu.Unlock()
	return b.stats
}

func (b *Bus) transfer(op string, addr byte, buf []byte, read bool) error {
	b.mu.Lock()
	defer b.mu.Unlock()
	if verboseSPI {
		log.Printf("%s %02X: % X", op, addr, buf)
	}
	if err := b.conn.Transfer(buf); err != nil {
		return &BusError{Op: op, Addr: addr, Err: err}
	}
	if verboseSPI {
		log.Printf("%s %02X -> % X", op, addr, buf)
	}
	if read {
		b.stats.Packets.Received++
		b.stats.Bytes.Received += len(buf) - 1
	} else {
		b.stats.Packets.Sent++
		b.stats.Bytes.Sent += len(buf)
	}
	return nil
}

// Strobe sends a one-byte command with no data payload.
func (b *Bus) Strobe(s Strobe) error {
	return b.transfer("strobe", byte(s), []byte{byte(s)}, false)
}

// WriteRegister writes a single configuration register.
// Callers changing a bit-field must read the register first
// so that unrelated fields are preserved.
func (b *Bus) WriteRegister(addr byte, value byte) error {
	if err := checkWritable(addr); err != nil {
		return err
	}
	return b.transfer("write", addr, []byte{addr&addrMask | WriteSingle, value}, false)
}

// WriteBurst writes data to consecutive registers starting at addr in one transaction.
func (b *Bus) WriteBurst(addr byte, data []byte) error {
	if err := checkWritable(addr); err != nil {
		return err
	}
	buf := make([]byte, 1+len(data))
	buf[0] = addr&addrMask | WriteBurst
	copy(buf[1:], data)
	return b.transfer("write burst", addr, buf, false)
}

// ReadRegister returns the value of a single register.
// Status registers are read with the burst offset, as the device requires.
// The first byte clocked in is the chip status byte sent while the
// address was being decoded, so it is discarded.
func (b *Bus) ReadRegister(addr byte) (byte, error) {
	offset := byte(ReadSingle)
	if isStatus(addr) {
		offset = ReadBurst
	}
	buf := []byte{addr&addrMask | offset, 0}
	if err := b.transfer("read", addr, buf, true); err != nil {
		return 0, err
	}
	return buf[1], nil
}

// ReadBurst reads n consecutive registers starting at addr in one transaction.
func (b *Bus) ReadBurst(addr byte, n int) ([]byte, error) {
	if n <= 0 {
		return nil, &RangeError{Param: "burst length", Value: float64(n), Min: 1, Max: 64}
	}
	buf := make([]byte, n+1)
	buf[0] = addr&addrMask | ReadBurst
	if err := b.transfer("read burst", addr, buf, true); err != nil {
		return nil, err
	}
	return buf[1:], nil
}

func checkWritable(addr byte) error {
	if isStatus(addr) || addr > FIFO {
		return &RangeError{Param: "register address", Value: float64(addr), Min: IOCFG2, Max: TEST0}
	}
	return nil
}
