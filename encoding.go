package cc1101

import "math"

// Closed-form conversions between register bit-fields and physical quantities.
// See the CC1101 data sheet, sections 12 (data rate), 13 (channel filter)
// and 21 (frequency programming).

const (
	// DefaultCrystal is the crystal frequency of common CC1101 modules, in Hertz.
	DefaultCrystal = 26000000

	// MaxFrequencyWord is the largest value of the 24-bit FREQ word.
	MaxFrequencyWord = 1<<24 - 1

	// Data rate limits, in kbps.
	MinDataRate = 0.6
	MaxDataRate = 500.0
)

// A field is a sub-range of a register's bits.
type field struct {
	shift uint8
	width uint8
}

func (f field) mask() byte {
	return byte(1<<f.width-1) << f.shift
}

func (f field) get(reg byte) byte {
	return reg & f.mask() >> f.shift
}

// set returns reg with the field replaced by v and all other bits unchanged.
func (f field) set(reg byte, v byte) byte {
	return reg&^f.mask() | v<<f.shift&f.mask()
}

func (f field) max() byte {
	return byte(1<<f.width - 1)
}

// Bit-fields of the modem, front end and packet control registers.
var (
	drateE       = field{0, 4} // MDMCFG4
	chanbwM      = field{4, 2}
	chanbwE      = field{6, 2}
	syncMode     = field{0, 3} // MDMCFG2
	manchesterEn = field{3, 1}
	modFormat    = field{4, 3}
	demDCFiltOff = field{7, 1}
	chanspcE     = field{0, 2} // MDMCFG1
	numPreamble  = field{4, 3}
	fecEn        = field{7, 1}
	paPower      = field{0, 3} // FREND0
	adrCheck     = field{0, 2} // PKTCTRL1
	appendStatus = field{2, 1}
	lengthConfig = field{0, 2} // PKTCTRL0
	crcEn        = field{2, 1}
	pktFormat    = field{4, 2}
	whiteData    = field{6, 1}
)

// FrequencyWord returns the FREQ register value for the given carrier frequency.
func FrequencyWord(hz float64, crystal float64) (uint32, error) {
	w := math.Round(hz * (1 << 16) / crystal)
	if w < 0 || w > MaxFrequencyWord {
		return 0, &RangeError{Param: "frequency (Hz)", Value: hz, Min: 0, Max: WordFrequency(MaxFrequencyWord, crystal)}
	}
	return uint32(w), nil
}

// WordFrequency returns the carrier frequency in Hertz for a FREQ register value.
func WordFrequency(w uint32, crystal float64) float64 {
	return float64(w) * crystal / (1 << 16)
}

// DataRate returns the data rate in kbps for the DRATE exponent and mantissa.
// The data sheet formula yields baud when the crystal frequency is in Hertz.
func DataRate(e, m uint8, crystal float64) float64 {
	baud := float64(256+int(m)) * math.Ldexp(1, int(e)) * crystal / (1 << 28)
	return baud / 1000
}

// EncodeDataRate returns the DRATE exponent and mantissa closest to kbps.
// The exponent is the floor of the exact value and the mantissa is rounded;
// a mantissa that rounds up to 256 rolls over into the next exponent.
func EncodeDataRate(kbps float64, crystal float64) (e, m uint8, err error) {
	if err = checkRange("data rate (kbps)", kbps, MinDataRate, MaxDataRate); err != nil {
		return
	}
	baud := kbps * 1000
	exp := math.Floor(math.Log2(baud * (1 << 20) / crystal))
	mant := math.Round(baud*(1<<28)/(crystal*math.Ldexp(1, int(exp)))) - 256
	if mant > 255 {
		exp++
		mant = 0
	}
	if exp < 0 || exp > float64(drateE.max()) {
		err = &RangeError{Param: "data rate (kbps)", Value: kbps, Min: DataRate(0, 0, crystal), Max: DataRate(15, 255, crystal)}
		return
	}
	return uint8(exp), uint8(mant), nil
}

// ChannelSpacing returns the channel spacing in Hertz for the CHANSPC exponent and mantissa.
func ChannelSpacing(e, m uint8, crystal float64) float64 {
	return crystal / (1 << 18) * float64(256+int(m)) * math.Ldexp(1, int(e))
}

// EncodeChannelSpacing returns the CHANSPC exponent and mantissa closest to hz.
func EncodeChannelSpacing(hz float64, crystal float64) (e, m uint8, err error) {
	lo := ChannelSpacing(0, 0, crystal)
	hi := ChannelSpacing(chanspcE.max(), 255, crystal)
	if err = checkRange("channel spacing (Hz)", hz, lo, hi); err != nil {
		return
	}
	exp := math.Max(0, math.Floor(math.Log2(hz*(1<<10)/crystal)))
	if exp > float64(chanspcE.max()) {
		exp = float64(chanspcE.max())
	}
	mant := math.Round(hz*(1<<18)/(crystal*math.Ldexp(1, int(exp)))) - 256
	if mant > 255 {
		if exp < float64(chanspcE.max()) {
			exp++
			mant = 0
		} else {
			mant = 255
		}
	}
	return uint8(exp), uint8(mant), nil
}

// ChannelBandwidth returns the receive filter bandwidth in Hertz for the CHANBW exponent and mantissa.
func ChannelBandwidth(e, m uint8, crystal float64) float64 {
	return crystal / (8 * float64(4+int(m)) * math.Ldexp(1, int(e)))
}

// EncodeChannelBandwidth returns the narrowest filter setting at least hz wide.
func EncodeChannelBandwidth(hz float64, crystal float64) (e, m uint8, err error) {
	lo := ChannelBandwidth(chanbwE.max(), chanbwM.max(), crystal)
	hi := ChannelBandwidth(0, 0, crystal)
	if err = checkRange("channel bandwidth (Hz)", hz, lo, hi); err != nil {
		return
	}
	// Bandwidth increases as the exponent and mantissa decrease.
	for e = chanbwE.max(); ; e-- {
		for m = chanbwM.max(); ; m-- {
			if ChannelBandwidth(e, m, crystal) >= hz {
				return e, m, nil
			}
			if m == 0 {
				break
			}
		}
		if e == 0 {
			break
		}
	}
	return 0, 0, nil
}

// StrengthToDBm converts a raw RSSI reading to dBm.
// The reading is a two's complement value in half-dB steps.
func StrengthToDBm(raw byte, offset float64) float64 {
	return float64(int8(raw))/2 - offset
}

// Calibration converts raw RSSI readings using a fixed offset.
type Calibration struct {
	Name   string
	Offset float64
}

// LegacyCalibration applies the same 74 dB offset regardless of band.
var LegacyCalibration = Calibration{Name: "legacy", Offset: 74}

// BandCalibration returns the data sheet calibration for the given ISM band.
func BandCalibration(b Band) Calibration {
	return Calibration{Name: b.String(), Offset: b.RSSIOffset()}
}

// DBm converts a raw RSSI reading to dBm.
func (c Calibration) DBm(raw byte) float64 {
	return StrengthToDBm(raw, c.Offset)
}
