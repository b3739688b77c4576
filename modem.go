package cc1101

// ModemConfig holds the decoded fields of MDMCFG4 through MDMCFG0.
type ModemConfig struct {
	ChanBWE      uint8
	ChanBWM      uint8
	DataRateE    uint8
	DataRateM    uint8
	DCFilterOff  bool
	Modulation   Modulation
	Manchester   bool
	SyncMode     uint8
	FEC          bool
	NumPreamble  uint8
	ChanSpacingE uint8
	ChanSpacingM uint8
}

// DecodeModemConfig decodes the five modem configuration registers, MDMCFG4 first.
func DecodeModemConfig(regs []byte) ModemConfig {
	return ModemConfig{
		ChanBWE:      chanbwE.get(regs[0]),
		ChanBWM:      chanbwM.get(regs[0]),
		DataRateE:    drateE.get(regs[0]),
		DataRateM:    regs[1],
		DCFilterOff:  demDCFiltOff.get(regs[2]) != 0,
		Modulation:   Modulation(modFormat.get(regs[2])),
		Manchester:   manchesterEn.get(regs[2]) != 0,
		SyncMode:     syncMode.get(regs[2]),
		FEC:          fecEn.get(regs[3]) != 0,
		NumPreamble:  numPreamble.get(regs[3]),
		ChanSpacingE: chanspcE.get(regs[3]),
		ChanSpacingM: regs[4],
	}
}

// PacketConfig holds the decoded fields of SYNC1 through PKTCTRL0.
type PacketConfig struct {
	SyncWord     uint16
	Length       uint8
	AppendStatus bool
	AddressCheck uint8
	Whitening    bool
	Format       uint8
	CRC          bool
	LengthConfig uint8
}

// DecodePacketConfig decodes SYNC1, SYNC0, PKTLEN, PKTCTRL1 and PKTCTRL0.
func DecodePacketConfig(regs []byte) PacketConfig {
	return PacketConfig{
		SyncWord:     uint16(regs[0])<<8 | uint16(regs[1]),
		Length:       regs[2],
		AppendStatus: appendStatus.get(regs[3]) != 0,
		AddressCheck: adrCheck.get(regs[3]),
		Whitening:    whiteData.get(regs[4]) != 0,
		Format:       pktFormat.get(regs[4]),
		CRC:          crcEn.get(regs[4]) != 0,
		LengthConfig: lengthConfig.get(regs[4]),
	}
}
