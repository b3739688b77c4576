package cc1101

import (
	"fmt"
	"strings"
)

// Band is one of the ISM bands the CC1101 can be tuned into.
type Band byte

const (
	Band315 Band = iota + 1
	Band433
	Band868
	Band915
)

type bandInfo struct {
	name       string
	rssiOffset byte
	freqWord   uint32 // canonical carrier
	paTable    [8]byte
}

// PA table index:      -30   -20   -15   -10     0     5     7    10 dBm
var bands = [...]bandInfo{
	Band315: {"315MHz", 0x40, 0x0C1D89, [8]byte{0x17, 0x1D, 0x26, 0x69, 0x51, 0x86, 0xCC, 0xC3}},
	Band433: {"433MHz", 0x41, 0x10B071, [8]byte{0x6C, 0x1C, 0x06, 0x3A, 0x51, 0x85, 0xC8, 0xC0}},
	Band868: {"868MHz", 0x4A, 0x21656A, [8]byte{0x03, 0x17, 0x1D, 0x26, 0x50, 0x86, 0xCD, 0xC0}},
	Band915: {"915MHz", 0x48, 0x23313B, [8]byte{0x0B, 0x1B, 0x6D, 0x67, 0x50, 0x85, 0xC9, 0xC1}},
}

// Frequency ranges the synthesizer can tune, in Hertz.
var tuningRanges = [...]struct {
	low, high float64
	band      Band
}{
	{300e6, 348e6, Band315},
	{387e6, 464e6, Band433},
	{779e6, 900e6, Band868},
	{900e6, 928e6, Band915},
}

func (b Band) valid() bool {
	return b >= Band315 && b <= Band915
}

func (b Band) String() string {
	if !b.valid() {
		return fmt.Sprintf("Band(%d)", b)
	}
	return bands[b].name
}

// RSSIOffset returns the data sheet RSSI offset for the band, in dB.
func (b Band) RSSIOffset() float64 {
	if !b.valid() {
		return LegacyCalibration.Offset
	}
	return float64(bands[b].rssiOffset)
}

// FrequencyWord returns the FREQ register value of the band's canonical carrier,
// or 0 for an invalid band.
func (b Band) FrequencyWord() uint32 {
	if !b.valid() {
		return 0
	}
	return bands[b].freqWord
}

// PATable returns the power amplifier table for the band,
// or an all-zero table for an invalid band.
func (b Band) PATable() [8]byte {
	if !b.valid() {
		return [8]byte{}
	}
	return bands[b].paTable
}

// BandFor returns the band containing the given frequency.
func BandFor(hz float64) (Band, error) {
	for _, r := range tuningRanges {
		if hz >= r.low && hz <= r.high {
			return r.band, nil
		}
	}
	return 0, &RangeError{Param: "frequency (Hz)", Value: hz, Min: tuningRanges[0].low, Max: tuningRanges[len(tuningRanges)-1].high}
}

// ParseBand accepts names such as "433", "433MHz" or "433mhz".
func ParseBand(s string) (Band, error) {
	s = strings.TrimSuffix(strings.ToLower(strings.TrimSpace(s)), "mhz")
	for b := Band315; b <= Band915; b++ {
		if strings.TrimSuffix(strings.ToLower(bands[b].name), "mhz") == s {
			return b, nil
		}
	}
	return 0, fmt.Errorf("unknown band %q", s)
}

// PowerIndex returns the PA table index for the requested output power in dBm.
func PowerIndex(dBm int) byte {
	switch {
	case dBm <= -30:
		return 0
	case dBm <= -20:
		return 1
	case dBm <= -15:
		return 2
	case dBm <= -10:
		return 3
	case dBm <= 0:
		return 4
	case dBm <= 5:
		return 5
	case dBm <= 7:
		return 6
	default:
		return 7
	}
}
