package cc1101

// Address offsets in the header byte of a bus transaction.
const (
	WriteSingle = 0x00
	WriteBurst  = 0x40
	ReadSingle  = 0x80
	ReadBurst   = 0xC0

	addrMask = 0x3F
)

// Configuration registers.
const (
	IOCFG2   = 0x00 // GDO2 output pin configuration
	IOCFG1   = 0x01 // GDO1 output pin configuration
	IOCFG0   = 0x02 // GDO0 output pin configuration
	FIFOTHR  = 0x03 // RX FIFO and TX FIFO thresholds
	SYNC1    = 0x04 // Sync word, high byte
	SYNC0    = 0x05 // Sync word, low byte
	PKTLEN   = 0x06 // Packet length
	PKTCTRL1 = 0x07 // Packet automation control
	PKTCTRL0 = 0x08 // Packet automation control
	ADDR     = 0x09 // Device address
	CHANNR   = 0x0A // Channel number
	FSCTRL1  = 0x0B // Frequency synthesizer control
	FSCTRL0  = 0x0C // Frequency synthesizer control
	FREQ2    = 0x0D // Frequency control word, high byte
	FREQ1    = 0x0E // Frequency control word, middle byte
	FREQ0    = 0x0F // Frequency control word, low byte
	MDMCFG4  = 0x10 // Channel bandwidth, data rate exponent
	MDMCFG3  = 0x11 // Data rate mantissa
	MDMCFG2  = 0x12 // Modulation format, sync mode
	MDMCFG1  = 0x13 // FEC, preamble, channel spacing exponent
	MDMCFG0  = 0x14 // Channel spacing mantissa
	DEVIATN  = 0x15 // Modem deviation setting
	MCSM2    = 0x16 // Main radio control state machine configuration
	MCSM1    = 0x17
	MCSM0    = 0x18
	FOCCFG   = 0x19 // Frequency offset compensation configuration
	BSCFG    = 0x1A // Bit synchronization configuration
	AGCCTRL2 = 0x1B // AGC control
	AGCCTRL1 = 0x1C
	AGCCTRL0 = 0x1D
	WOREVT1  = 0x1E // High byte event 0 timeout
	WOREVT0  = 0x1F // Low byte event 0 timeout
	WORCTRL  = 0x20 // Wake on radio control
	FREND1   = 0x21 // Front end RX configuration
	FREND0   = 0x22 // Front end TX configuration, PA power selector
	FSCAL3   = 0x23 // Frequency synthesizer calibration
	FSCAL2   = 0x24
	FSCAL1   = 0x25
	FSCAL0   = 0x26
	RCCTRL1  = 0x27 // RC oscillator configuration
	RCCTRL0  = 0x28
	FSTEST   = 0x29 // Frequency synthesizer calibration control
	PTEST    = 0x2A // Production test
	AGCTEST  = 0x2B // AGC test
	TEST2    = 0x2C // Various test settings
	TEST1    = 0x2D
	TEST0    = 0x2E

	PATABLE = 0x3E // Power amplifier table (8 bytes)
	FIFO    = 0x3F // TX and RX FIFOs

	numConfigRegisters = TEST0 + 1
)

// Status registers.
// These share addresses with the command strobes and are only
// reachable with the burst bit set.
const (
	PARTNUM        = 0x30 // Part number
	VERSION        = 0x31 // Current version number
	FREQEST        = 0x32 // Frequency offset estimate
	LQI            = 0x33 // Demodulator estimate for link quality
	RSSI           = 0x34 // Received signal strength indication
	MARCSTATE      = 0x35 // Control state machine state
	WORTIME1       = 0x36 // High byte of WOR timer
	WORTIME0       = 0x37 // Low byte of WOR timer
	PKTSTATUS      = 0x38 // Current GDOx status and packet status
	VCO_VC_DAC     = 0x39 // Current setting from PLL calibration module
	TXBYTES        = 0x3A // Underflow and number of bytes in TX FIFO
	RXBYTES        = 0x3B // Overflow and number of bytes in RX FIFO
	RCCTRL1_STATUS = 0x3C // Last RC oscillator calibration result
	RCCTRL0_STATUS = 0x3D
)

// Class distinguishes the kinds of addressable locations.
type Class byte

const (
	Configuration Class = iota
	Status
	CommandStrobe
)

func (c Class) String() string {
	switch c {
	case Configuration:
		return "configuration"
	case Status:
		return "status"
	case CommandStrobe:
		return "strobe"
	default:
		return "unknown"
	}
}

// Access describes which directions a register supports.
type Access byte

const (
	ReadOnly Access = 1 << iota
	WriteOnly
	ReadWrite = ReadOnly | WriteOnly
)

// Register describes one entry of the register map.
type Register struct {
	Name   string
	Addr   byte
	Class  Class
	Access Access
}

// isStatus reports whether a read of addr must use the burst offset.
func isStatus(addr byte) bool {
	return addr >= PARTNUM && addr <= RCCTRL0_STATUS
}

var configNames = [numConfigRegisters]string{
	"IOCFG2", "IOCFG1", "IOCFG0", "FIFOTHR", "SYNC1", "SYNC0", "PKTLEN", "PKTCTRL1",
	"PKTCTRL0", "ADDR", "CHANNR", "FSCTRL1", "FSCTRL0", "FREQ2", "FREQ1", "FREQ0",
	"MDMCFG4", "MDMCFG3", "MDMCFG2", "MDMCFG1", "MDMCFG0", "DEVIATN", "MCSM2", "MCSM1",
	"MCSM0", "FOCCFG", "BSCFG", "AGCCTRL2", "AGCCTRL1", "AGCCTRL0", "WOREVT1", "WOREVT0",
	"WORCTRL", "FREND1", "FREND0", "FSCAL3", "FSCAL2", "FSCAL1", "FSCAL0", "RCCTRL1",
	"RCCTRL0", "FSTEST", "PTEST", "AGCTEST", "TEST2", "TEST1", "TEST0",
}

var statusNames = [...]string{
	"PARTNUM", "VERSION", "FREQEST", "LQI", "RSSI", "MARCSTATE", "WORTIME1", "WORTIME0",
	"PKTSTATUS", "VCO_VC_DAC", "TXBYTES", "RXBYTES", "RCCTRL1_STATUS", "RCCTRL0_STATUS",
}

// RegisterMap returns the static register table:
// configuration registers, the PA table, status registers and command strobes.
func RegisterMap() []Register {
	m := make([]Register, 0, numConfigRegisters+1+len(statusNames)+len(strobeNames))
	for i, name := range configNames {
		m = append(m, Register{Name: name, Addr: byte(i), Class: Configuration, Access: ReadWrite})
	}
	m = append(m, Register{Name: "PATABLE", Addr: PATABLE, Class: Configuration, Access: ReadWrite})
	for i, name := range statusNames {
		m = append(m, Register{Name: name, Addr: PARTNUM + byte(i), Class: Status, Access: ReadOnly})
	}
	for s := SRES; s <= SNOP; s++ {
		m = append(m, Register{Name: s.String(), Addr: byte(s), Class: CommandStrobe, Access: WriteOnly})
	}
	return m
}

// LookupRegister finds a register by name.
func LookupRegister(name string) (Register, bool) {
	for _, r := range RegisterMap() {
		if r.Name == name {
			return r, true
		}
	}
	return Register{}, false
}
