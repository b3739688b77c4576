package cc1101

import (
	"fmt"
	"log"
	"time"

	"github.com/ecc1/gpio"
	"github.com/ecc1/spi"
)

const (
	verbose    = false
	verboseSPI = false

	// DefaultSPISpeed is used when the configuration does not name one.
	DefaultSPISpeed = 8000000 // Hz

	chipReadyTimeout = 10 * time.Millisecond
)

func init() {
	if verbose || verboseSPI {
		log.SetFlags(log.Ltime | log.Lmicroseconds | log.LUTC)
	}
}

// SPIConn is a connection through the kernel spidev driver.
type SPIConn struct {
	device *spi.Device
	path   string
}

// OpenSPI opens the spidev device at path.
// An empty path selects the board's default device.
func OpenSPI(path string, speed int) (*SPIConn, error) {
	if path == "" {
		path = spiDevice
	}
	if speed == 0 {
		speed = DefaultSPISpeed
	}
	dev, err := spi.Open(path, speed, customCS)
	if err != nil {
		return nil, err
	}
	return &SPIConn{device: dev, path: path}, nil
}

// Transfer implements Conn. The received bytes replace buf in place.
func (c *SPIConn) Transfer(buf []byte) error {
	return c.device.Transfer(buf, buf)
}

// Close implements Conn.
func (c *SPIConn) Close() error {
	return c.device.Close()
}

// Device returns the pathname of the spidev device.
func (c *SPIConn) Device() string {
	return c.path
}

// Pins are the GPIO numbers used for a bit-banged connection.
type Pins struct {
	SCLK int `yaml:"sclk"`
	MOSI int `yaml:"mosi"`
	MISO int `yaml:"miso"`
	CS   int `yaml:"cs"`
}

// DefaultPins returns the board's bit-bang wiring.
func DefaultPins() Pins {
	return Pins{SCLK: sclkPin, MOSI: mosiPin, MISO: misoPin, CS: csPin}
}

// BitBangConn drives the SPI signals directly through GPIO pins (mode 0, MSB first).
type BitBangConn struct {
	sclk gpio.OutputPin
	mosi gpio.OutputPin
	cs   gpio.OutputPin
	miso gpio.InputPin

	halfPeriod time.Duration
}

// OpenBitBang configures the given pins for a bit-banged connection.
// A zero halfPeriod clocks as fast as the GPIO writes allow.
func OpenBitBang(pins Pins, halfPeriod time.Duration) (*BitBangConn, error) {
	c := &BitBangConn{halfPeriod: halfPeriod}
	var err error
	if c.cs, err = gpio.Output(pins.CS, false, true); err != nil {
		return nil, fmt.Errorf("CS pin %d: %w", pins.CS, err)
	}
	if c.sclk, err = gpio.Output(pins.SCLK, false, false); err != nil {
		return nil, fmt.Errorf("SCLK pin %d: %w", pins.SCLK, err)
	}
	if c.mosi, err = gpio.Output(pins.MOSI, false, false); err != nil {
		return nil, fmt.Errorf("MOSI pin %d: %w", pins.MOSI, err)
	}
	if c.miso, err = gpio.Input(pins.MISO, false); err != nil {
		return nil, fmt.Errorf("MISO pin %d: %w", pins.MISO, err)
	}
	return c, nil
}

// Transfer implements Conn.
// After CS is asserted the chip drives MISO low once its crystal is running.
func (c *BitBangConn) Transfer(buf []byte) error {
	if err := c.cs.Write(false); err != nil {
		return err
	}
	defer func() { _ = c.cs.Write(true) }()
	if err := c.waitChipReady(); err != nil {
		return err
	}
	for i, b := range buf {
		rx, err := c.xfer(b)
		if err != nil {
			return err
		}
		buf[i] = rx
	}
	return nil
}

func (c *BitBangConn) waitChipReady() error {
	deadline := time.Now().Add(chipReadyTimeout)
	for {
		so, err := c.miso.Read()
		if err != nil {
			return err
		}
		if !so {
			return nil
		}
		if time.Now().After(deadline) {
			return fmt.Errorf("chip not ready after %v", chipReadyTimeout)
		}
		time.Sleep(10 * time.Microsecond)
	}
}

func (c *BitBangConn) xfer(b byte) (byte, error) {
	var rx byte
	for bit := 7; bit >= 0; bit-- {
		if err := c.mosi.Write(b&(1<<uint(bit)) != 0); err != nil {
			return 0, err
		}
		c.delay()
		if err := c.sclk.Write(true); err != nil {
			return 0, err
		}
		so, err := c.miso.Read()
		if err != nil {
			return 0, err
		}
		if so {
			rx |= 1 << uint(bit)
		}
		c.delay()
		if err := c.sclk.Write(false); err != nil {
			return 0, err
		}
	}
	if verboseSPI {
		log.Printf("xfer %02X -> %02X", b, rx)
	}
	return rx, nil
}

func (c *BitBangConn) delay() {
	if c.halfPeriod > 0 {
		time.Sleep(c.halfPeriod)
	}
}

// Close implements Conn by releasing chip select.
func (c *BitBangConn) Close() error {
	return c.cs.Write(true)
}
