package cc1101

// Preset is a complete image of the configuration registers IOCFG2 through TEST0.
type Preset struct {
	Name      string
	Registers [numConfigRegisters]byte
}

// Register images for common modem settings at 868.3 MHz with a 26 MHz crystal.
var PresetGFSK1k2 = Preset{"GFSK 1.2 kbps", [numConfigRegisters]byte{
	0x07, 0x2E, 0x80, 0x07, 0x57, 0x43, 0x3E, 0x0E,
	0x45, 0xFF, 0x00, 0x08, 0x00, 0x21, 0x65, 0x6A,
	0xF5, 0x83, 0x13, 0xA0, 0xF8, 0x15, 0x07, 0x0C,
	0x18, 0x16, 0x6C, 0x03, 0x40, 0x91, 0x02, 0x26,
	0x09, 0x56, 0x17, 0xA9, 0x0A, 0x00, 0x11, 0x41,
	0x00, 0x59, 0x7F, 0x3F, 0x81, 0x3F, 0x0B,
}}

var PresetGFSK38k4 = Preset{"GFSK 38.4 kbps", [numConfigRegisters]byte{
	0x07, 0x2E, 0x80, 0x07, 0x57, 0x43, 0x3E, 0x0E,
	0x45, 0xFF, 0x00, 0x06, 0x00, 0x21, 0x65, 0x6A,
	0xCA, 0x83, 0x13, 0xA0, 0xF8, 0x34, 0x07, 0x0C,
	0x18, 0x16, 0x6C, 0x43, 0x40, 0x91, 0x02, 0x26,
	0x09, 0x56, 0x17, 0xA9, 0x0A, 0x00, 0x11, 0x41,
	0x00, 0x59, 0x7F, 0x3F, 0x81, 0x3F, 0x0B,
}}

var PresetGFSK100k = Preset{"GFSK 100 kbps", [numConfigRegisters]byte{
	0x07, 0x2E, 0x80, 0x07, 0x57, 0x43, 0x3E, 0x0E,
	0x45, 0xFF, 0x00, 0x08, 0x00, 0x21, 0x65, 0x6A,
	0x5B, 0xF8, 0x13, 0xA0, 0xF8, 0x47, 0x07, 0x0C,
	0x18, 0x1D, 0x1C, 0xC7, 0x00, 0xB2, 0x02, 0x26,
	0x09, 0xB6, 0x17, 0xEA, 0x0A, 0x00, 0x11, 0x41,
	0x00, 0x59, 0x7F, 0x3F, 0x81, 0x3F, 0x0B,
}}

var PresetMSK250k = Preset{"MSK 250 kbps", [numConfigRegisters]byte{
	0x07, 0x2E, 0x80, 0x07, 0x57, 0x43, 0x3E, 0x0E,
	0x45, 0xFF, 0x00, 0x0B, 0x00, 0x21, 0x65, 0x6A,
	0x2D, 0x3B, 0x73, 0xA0, 0xF8, 0x00, 0x07, 0x0C,
	0x18, 0x1D, 0x1C, 0xC7, 0x00, 0xB2, 0x02, 0x26,
	0x09, 0xB6, 0x17, 0xEA, 0x0A, 0x00, 0x11, 0x41,
	0x00, 0x59, 0x7F, 0x3F, 0x81, 0x3F, 0x0B,
}}

var PresetMSK500k = Preset{"MSK 500 kbps", [numConfigRegisters]byte{
	0x07, 0x2E, 0x80, 0x07, 0x57, 0x43, 0x3E, 0x0E,
	0x45, 0xFF, 0x00, 0x0C, 0x00, 0x21, 0x65, 0x6A,
	0x0E, 0x3B, 0x73, 0xA0, 0xF8, 0x00, 0x07, 0x0C,
	0x18, 0x1D, 0x1C, 0xC7, 0x40, 0xB2, 0x02, 0x26,
	0x09, 0xB6, 0x17, 0xEA, 0x0A, 0x00, 0x19, 0x41,
	0x00, 0x59, 0x7F, 0x3F, 0x81, 0x3F, 0x0B,
}}

var PresetOOK4k8 = Preset{"OOK 4.8 kbps", [numConfigRegisters]byte{
	0x06, 0x2E, 0x06, 0x47, 0x57, 0x43, 0xFF, 0x04,
	0x05, 0x00, 0x00, 0x06, 0x00, 0x21, 0x65, 0x6A,
	0x87, 0x83, 0x3B, 0x22, 0xF8, 0x15, 0x07, 0x30,
	0x18, 0x14, 0x6C, 0x07, 0x00, 0x92, 0x87, 0x6B,
	0xFB, 0x56, 0x17, 0xE9, 0x2A, 0x00, 0x1F, 0x41,
	0x00, 0x59, 0x7F, 0x3F, 0x81, 0x35, 0x09,
}}

// Presets lists the predefined register images.
var Presets = []Preset{
	PresetGFSK1k2,
	PresetGFSK38k4,
	PresetGFSK100k,
	PresetMSK250k,
	PresetMSK500k,
	PresetOOK4k8,
}

// LookupPreset finds a preset by name.
func LookupPreset(name string) (Preset, bool) {
	for _, p := range Presets {
		if p.Name == name {
			return p, true
		}
	}
	return Preset{}, false
}
