package cc1101

import (
	"errors"
	"testing"
)

func TestBandFor(t *testing.T) {
	cases := []struct {
		hz   float64
		band Band
		ok   bool
	}{
		{299.9e6, 0, false},
		{300e6, Band315, true},
		{348e6, Band315, true},
		{350e6, 0, false},
		{433.92e6, Band433, true},
		{464e6, Band433, true},
		{500e6, 0, false},
		{868.3e6, Band868, true},
		{915e6, Band915, true},
		{928e6, Band915, true},
		{928.1e6, 0, false},
	}
	for _, c := range cases {
		b, err := BandFor(c.hz)
		if c.ok {
			if err != nil || b != c.band {
				t.Errorf("BandFor(%g) == %v, %v, want %v", c.hz, b, err, c.band)
			}
		} else if !errors.Is(err, ErrOutOfRange) {
			t.Errorf("BandFor(%g) returned %v, want ErrOutOfRange", c.hz, err)
		}
	}
}

func TestBandFrequencyWords(t *testing.T) {
	for b := Band315; b <= Band915; b++ {
		hz := WordFrequency(b.FrequencyWord(), DefaultCrystal)
		got, err := BandFor(hz)
		if err != nil || got != b {
			t.Errorf("%v carrier %g Hz is in band %v (%v)", b, hz, got, err)
		}
	}
}

func TestInvalidBand(t *testing.T) {
	for _, b := range []Band{0, Band915 + 1, 9, 255} {
		if w := b.FrequencyWord(); w != 0 {
			t.Errorf("%v.FrequencyWord() == %06X, want 0", b, w)
		}
		if pa := b.PATable(); pa != ([8]byte{}) {
			t.Errorf("%v.PATable() == % X, want zeros", b, pa)
		}
		if off := b.RSSIOffset(); off != LegacyCalibration.Offset {
			t.Errorf("%v.RSSIOffset() == %g, want %g", b, off, LegacyCalibration.Offset)
		}
	}
}

func TestParseBand(t *testing.T) {
	cases := []struct {
		s    string
		band Band
	}{
		{"315", Band315},
		{"433MHz", Band433},
		{"868mhz", Band868},
		{" 915 ", Band915},
	}
	for _, c := range cases {
		b, err := ParseBand(c.s)
		if err != nil || b != c.band {
			t.Errorf("ParseBand(%q) == %v, %v, want %v", c.s, b, err, c.band)
		}
	}
	if _, err := ParseBand("2400"); err == nil {
		t.Errorf("ParseBand(2400) succeeded")
	}
}

func TestPowerIndex(t *testing.T) {
	cases := []struct {
		dBm   int
		index byte
	}{
		{-40, 0}, {-30, 0}, {-25, 1}, {-15, 2}, {-10, 3}, {0, 4}, {5, 5}, {6, 6}, {10, 7}, {20, 7},
	}
	for _, c := range cases {
		if got := PowerIndex(c.dBm); got != c.index {
			t.Errorf("PowerIndex(%d) == %d, want %d", c.dBm, got, c.index)
		}
	}
}

func TestParseModulation(t *testing.T) {
	cases := []struct {
		s string
		m Modulation
	}{
		{"2-FSK", Mod2FSK},
		{"2fsk", Mod2FSK},
		{"gfsk", ModGFSK},
		{"ASK/OOK", ModASKOOK},
		{"ook", ModASKOOK},
		{"4-FSK", Mod4FSK},
		{"MSK", ModMSK},
	}
	for _, c := range cases {
		m, err := ParseModulation(c.s)
		if err != nil || m != c.m {
			t.Errorf("ParseModulation(%q) == %v, %v, want %v", c.s, m, err, c.m)
		}
	}
	if _, err := ParseModulation("qpsk"); err == nil {
		t.Errorf("ParseModulation(qpsk) succeeded")
	}
	if Modulation(2).Valid() {
		t.Errorf("Modulation(2) is valid")
	}
}

func TestLookupPreset(t *testing.T) {
	p, ok := LookupPreset("MSK 500 kbps")
	if !ok {
		t.Fatal("preset not found")
	}
	if m := Modulation(modFormat.get(p.Registers[MDMCFG2])); m != ModMSK {
		t.Errorf("preset modulation == %v, want %v", m, ModMSK)
	}
	if _, ok = LookupPreset("FM 1 Mbps"); ok {
		t.Errorf("unknown preset found")
	}
}

func TestNames(t *testing.T) {
	cases := []struct {
		got, want string
	}{
		{SRX.String(), "SRX"},
		{SNOP.String(), "SNOP"},
		{StateRX.String(), "RX"},
		{StateIdle.String(), "IDLE"},
		{Band433.String(), "433MHz"},
		{Receiving.String(), "receiving"},
		{ModASKOOK.String(), "ASK/OOK"},
	}
	for _, c := range cases {
		if c.got != c.want {
			t.Errorf("String() == %q, want %q", c.got, c.want)
		}
	}
}
