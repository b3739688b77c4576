package cc1101

// Configuration for Raspberry Pi Zero W with a CC1101 module on SPI0.

const (
	spiDevice = "/dev/spidev0.0"
	customCS  = 0

	sclkPin = 11
	mosiPin = 10
	misoPin = 9
	csPin   = 8
)
