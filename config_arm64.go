package cc1101

// Configuration for Raspberry Pi 3/4 in 64-bit mode with a CC1101 module on SPI0.

const (
	spiDevice = "/dev/spidev0.0"
	customCS  = 0

	sclkPin = 11
	mosiPin = 10
	misoPin = 9
	csPin   = 8
)
