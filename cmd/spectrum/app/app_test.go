package app

import (
	"bytes"
	"context"
	"io"
	"log/slog"
	"os"
	"path/filepath"
	"strings"
	"testing"
	"time"

	"github.com/ecc1/cc1101scan"
)

// chip answers bus transactions like an idle CC1101 with a flat noise floor.
type chip struct {
	regs  [0x2F]byte
	state byte
}

func (c *chip) Transfer(buf []byte) error {
	addr := buf[0] & 0x3F
	if len(buf) == 1 {
		switch cc1101.Strobe(addr) {
		case cc1101.SRX:
			c.state = byte(cc1101.StateRX)
		default:
			c.state = byte(cc1101.StateIdle)
		}
		return nil
	}
	read := buf[0]&cc1101.ReadSingle != 0
	burst := buf[0]&cc1101.WriteBurst != 0
	switch {
	case addr == cc1101.VERSION:
		buf[1] = 0x14
	case addr == cc1101.MARCSTATE:
		buf[1] = c.state
	case addr == cc1101.RSSI:
		buf[1] = 0xD0 // -24 dB before offset
	case int(addr) < len(c.regs):
		for i := 1; i < len(buf); i++ {
			a := int(addr)
			if burst {
				a += i - 1
			}
			if a >= len(c.regs) {
				break
			}
			if read {
				buf[i] = c.regs[a]
			} else {
				c.regs[a] = buf[i]
			}
		}
	}
	return nil
}

func (*chip) Close() error { return nil }

func discard() *slog.Logger {
	return slog.New(slog.NewTextHandler(io.Discard, nil))
}

func TestRun(t *testing.T) {
	dir := t.TempDir()
	config := DefaultConfig()
	config.Radio.Preset = "GFSK 38.4 kbps"
	config.Radio.Timing = cc1101.Timing{PollRetries: 10}
	config.Scan.Channels = 8
	config.Scan.Depth = 4
	config.Scan.Settle = 0
	config.Scan.Interval = time.Millisecond
	config.Output.LogFile = filepath.Join(dir, "samples.txt")
	if err := config.Validate(); err != nil {
		t.Fatal(err)
	}

	r, err := cc1101.Open(&chip{}, cc1101.WithTiming(config.Radio.Timing))
	if err != nil {
		t.Fatal(err)
	}
	ctx, cancel := context.WithTimeout(context.Background(), 50*time.Millisecond)
	defer cancel()
	var out bytes.Buffer
	if err = run(ctx, r, config, &out, discard()); err != nil {
		t.Fatal(err)
	}

	lines := strings.Split(strings.TrimSuffix(out.String(), "\n"), "\n")
	if len(lines) < 2 {
		t.Fatalf("display output %q has no spectrum rows", out.String())
	}
	if !strings.HasPrefix(lines[0], "433.92 MHz") {
		t.Errorf("header %q does not start at the 433.92 MHz carrier", lines[0])
	}
	if !strings.Contains(lines[1], "peak -89.0 dBm") {
		t.Errorf("row %q does not report the noise floor", lines[1])
	}

	data, err := os.ReadFile(config.Output.LogFile)
	if err != nil {
		t.Fatal(err)
	}
	samples := strings.Fields(string(data))
	if len(samples) == 0 || len(samples)%8 != 0 {
		t.Fatalf("sample log has %d values, want a multiple of 8", len(samples))
	}
	if samples[0] != "-89.00" {
		t.Errorf("first sample %s, want -89.00", samples[0])
	}
}

func TestDisplayLevel(t *testing.T) {
	d := newDisplay(io.Discard, -100, -20)
	cases := []struct {
		dBm   float64
		level int
	}{
		{-138, 0},
		{-100, 0},
		{-60, 4},
		{-20, 8},
		{0, 8},
	}
	for _, c := range cases {
		if got := d.level(c.dBm); got != c.level {
			t.Errorf("level(%g) == %d, want %d", c.dBm, got, c.level)
		}
	}
}
