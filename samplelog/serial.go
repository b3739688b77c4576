package samplelog

import (
	"log"

	"github.com/ecc1/serial"
)

const (
	verbose = false

	// DefaultSerialSpeed is used when no baud rate is configured.
	DefaultSerialSpeed = 19200
)

// serialPort adapts a serial.Port to io.WriteCloser.
type serialPort struct {
	port   *serial.Port
	device string
}

func (p *serialPort) Write(data []byte) (int, error) {
	if verbose {
		log.Printf("%s: % X", p.device, data)
	}
	if err := p.port.Write(data); err != nil {
		return 0, err
	}
	return len(data), nil
}

func (p *serialPort) Close() error {
	return p.port.Close()
}

// OpenSerial returns a Writer that streams samples to a serial device.
func OpenSerial(device string, speed int) (*Writer, error) {
	if speed == 0 {
		speed = DefaultSerialSpeed
	}
	port, err := serial.Open(device, speed)
	if err != nil {
		return nil, err
	}
	return New(&serialPort{port: port, device: device}), nil
}
