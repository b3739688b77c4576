package cc1101

import (
	"fmt"
	"strings"
)

// Modulation is the MOD_FORMAT field of MDMCFG2.
type Modulation byte

const (
	Mod2FSK   Modulation = 0
	ModGFSK   Modulation = 1
	ModASKOOK Modulation = 3
	Mod4FSK   Modulation = 4
	ModMSK    Modulation = 7
)

var modulationNames = map[Modulation]string{
	Mod2FSK:   "2-FSK",
	ModGFSK:   "GFSK",
	ModASKOOK: "ASK/OOK",
	Mod4FSK:   "4-FSK",
	ModMSK:    "MSK",
}

func (m Modulation) String() string {
	if name, ok := modulationNames[m]; ok {
		return name
	}
	return fmt.Sprintf("Modulation(%d)", byte(m))
}

// Valid reports whether m is a supported modulation format.
func (m Modulation) Valid() bool {
	_, ok := modulationNames[m]
	return ok
}

// ParseModulation accepts the names returned by String,
// case-insensitively and with or without punctuation ("ook", "2fsk").
func ParseModulation(s string) (Modulation, error) {
	norm := func(s string) string {
		return strings.NewReplacer("-", "", "/", "", " ", "").Replace(strings.ToLower(s))
	}
	want := norm(s)
	for m, name := range modulationNames {
		n := norm(name)
		if n == want || (m == ModASKOOK && (want == "ask" || want == "ook")) {
			return m, nil
		}
	}
	return 0, fmt.Errorf("unknown modulation %q", s)
}
