package cc1101

// Configuration for an x86 host with a CC1101 module on a USB SPI bridge.

const (
	spiDevice = "/dev/spidev1.0"
	customCS  = 0

	sclkPin = 14
	mosiPin = 15
	misoPin = 16
	csPin   = 17
)
