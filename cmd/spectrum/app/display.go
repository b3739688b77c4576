package app

import (
	"fmt"
	"io"
	"math"
	"strings"

	"github.com/ecc1/cc1101scan"
)

var levels = []rune(" ▁▂▃▄▅▆▇█")

// display renders one spectrum per line, one cell per channel.
type display struct {
	out         io.Writer
	floor, span float64
}

func newDisplay(out io.Writer, floor, ceiling float64) *display {
	return &display{out: out, floor: floor, span: ceiling - floor}
}

func (d *display) header(freqs []float64) {
	if len(freqs) == 0 {
		return
	}
	lo := cc1101.FormatSI(freqs[0], 3, "Hz")
	hi := cc1101.FormatSI(freqs[len(freqs)-1], 3, "Hz")
	pad := len(freqs) - len(lo) - len(hi)
	if pad < 1 {
		pad = 1
	}
	fmt.Fprintf(d.out, "%s%s%s\n", lo, strings.Repeat(" ", pad), hi)
}

// level maps dBm onto a cell index, clamped to the display range.
func (d *display) level(dBm float64) int {
	top := len(levels) - 1
	i := int(math.Round((dBm - d.floor) / d.span * float64(top)))
	switch {
	case i < 0:
		return 0
	case i > top:
		return top
	}
	return i
}

func (d *display) row(spectrum []float64) {
	var b strings.Builder
	peak := 0
	for i, v := range spectrum {
		b.WriteRune(levels[d.level(v)])
		if v > spectrum[peak] {
			peak = i
		}
	}
	if len(spectrum) != 0 {
		fmt.Fprintf(&b, "  peak %.1f dBm @ ch %d", spectrum[peak], peak)
	}
	b.WriteByte('\n')
	io.WriteString(d.out, b.String())
}
