package cc1101

// Strobe is a one-byte command that triggers an immediate device action.
type Strobe byte

const (
	SRES    Strobe = 0x30 // Reset chip
	SFSTXON Strobe = 0x31 // Enable and calibrate frequency synthesizer
	SXOFF   Strobe = 0x32 // Turn off crystal oscillator
	SCAL    Strobe = 0x33 // Calibrate frequency synthesizer and turn it off
	SRX     Strobe = 0x34 // Enable RX
	STX     Strobe = 0x35 // Enable TX
	SIDLE   Strobe = 0x36 // Exit RX / TX
	SAFC    Strobe = 0x37 // AFC adjustment of frequency synthesizer
	SWOR    Strobe = 0x38 // Start automatic RX polling sequence
	SPWD    Strobe = 0x39 // Enter power down mode when CSn goes high
	SFRX    Strobe = 0x3A // Flush the RX FIFO buffer
	SFTX    Strobe = 0x3B // Flush the TX FIFO buffer
	SWORRST Strobe = 0x3C // Reset real time clock
	SNOP    Strobe = 0x3D // No operation
)

var strobeNames = [...]string{
	"SRES", "SFSTXON", "SXOFF", "SCAL", "SRX", "STX", "SIDLE",
	"SAFC", "SWOR", "SPWD", "SFRX", "SFTX", "SWORRST", "SNOP",
}

func (s Strobe) String() string {
	if s < SRES || s > SNOP {
		return "Strobe(invalid)"
	}
	return strobeNames[s-SRES]
}

// State is the main radio control state machine state reported by MARCSTATE.
type State byte

const (
	StateSleep           State = 0x00
	StateIdle            State = 0x01
	StateXOff            State = 0x02
	StateVCOOnMC         State = 0x03
	StateRegOnMC         State = 0x04
	StateManCal          State = 0x05
	StateVCOOn           State = 0x06
	StateRegOn           State = 0x07
	StateStartCal        State = 0x08
	StateBWBoost         State = 0x09
	StateFSLock          State = 0x0A
	StateIFADCOn         State = 0x0B
	StateEndCal          State = 0x0C
	StateRX              State = 0x0D
	StateRXEnd           State = 0x0E
	StateRXRst           State = 0x0F
	StateTXRXSwitch      State = 0x10
	StateRXFIFOOverflow  State = 0x11
	StateFSTXOn          State = 0x12
	StateTX              State = 0x13
	StateTXEnd           State = 0x14
	StateRXTXSwitch      State = 0x15
	StateTXFIFOUnderflow State = 0x16

	// Placeholder until MARCSTATE has been read.
	stateUnknown State = 0xFF

	marcStateMask = 0x1F
)

var stateNames = [...]string{
	"SLEEP", "IDLE", "XOFF", "VCOON_MC", "REGON_MC", "MANCAL", "VCOON", "REGON",
	"STARTCAL", "BWBOOST", "FS_LOCK", "IFADCON", "ENDCAL", "RX", "RX_END", "RX_RST",
	"TXRX_SWITCH", "RXFIFO_OVERFLOW", "FSTXON", "TX", "TX_END", "RXTX_SWITCH", "TXFIFO_UNDERFLOW",
}

func (s State) String() string {
	if int(s) < len(stateNames) {
		return stateNames[s]
	}
	return "UNKNOWN"
}
