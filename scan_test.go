package cc1101

import (
	"context"
	"errors"
	"math"
	"testing"
)

// rssiByChannel reports a strength that rises by 1 dB per channel.
func rssiByChannel(f *fakeConn) byte {
	return byte(int8(2 * f.regs[CHANNR]))
}

func newTestScanner(t *testing.T, config ScanConfig) (*Scanner, *fakeConn) {
	t.Helper()
	timing := DefaultTiming()
	timing.PollRetries = 3
	r, f := newTestRadio(WithTiming(timing))
	f.rssi = rssiByChannel
	s, err := NewScanner(r, config)
	if err != nil {
		t.Fatal(err)
	}
	s.sleep = noSleep
	return s, f
}

func channelConfig(n int) ScanConfig {
	c := DefaultScanConfig()
	c.Channels = n
	c.BaseFrequency = 433.92e6
	c.Depth = 4
	return c
}

func TestScanChannels(t *testing.T) {
	s, f := newTestScanner(t, channelConfig(10))
	if err := s.Scan(context.Background()); err != nil {
		t.Fatal(err)
	}
	got := s.History().Current()
	if len(got) != 10 {
		t.Fatalf("spectrum has %d channels, want 10", len(got))
	}
	offset := Band433.RSSIOffset()
	for i, v := range got {
		if want := float64(i) - offset; v != want {
			t.Errorf("channel %d == %g dBm, want %g", i, v, want)
		}
	}
	// CHANNR is written once per channel, in ascending order.
	var channels []byte
	for _, tx := range f.log {
		if tx[0] == CHANNR|WriteSingle && len(tx) == 2 {
			channels = append(channels, tx[1])
		}
	}
	if len(channels) != 10 {
		t.Fatalf("CHANNR written %d times, want 10", len(channels))
	}
	for i, ch := range channels {
		if ch != byte(i) {
			t.Errorf("write %d selected channel %d", i, ch)
		}
	}
	if n := f.count(SRX); n != 10 {
		t.Errorf("SRX issued %d times, want 10", n)
	}
	freqs := s.Frequencies()
	// The simulated register file starts zeroed.
	spacing := ChannelSpacing(0, 0, DefaultCrystal)
	if d := freqs[1] - freqs[0]; math.Abs(d-spacing) > 1 {
		t.Errorf("channel spacing %g, want %g", d, spacing)
	}
}

func TestScanFrequencyStep(t *testing.T) {
	c := DefaultScanConfig()
	c.Strategy = FrequencyStep
	c.Channels = 5
	c.BaseFrequency = 868e6
	c.Step = 100e3
	c.Depth = 2
	s, f := newTestScanner(t, c)
	if err := s.Scan(context.Background()); err != nil {
		t.Fatal(err)
	}
	var words []uint32
	for _, tx := range f.log {
		if tx[0] == FREQ2|WriteBurst {
			words = append(words, unmarshalFreqWord(tx[1:]))
		}
	}
	if len(words) != 5 {
		t.Fatalf("FREQ written %d times, want 5", len(words))
	}
	for i, w := range words {
		want := 868e6 + float64(i)*100e3
		if hz := WordFrequency(w, DefaultCrystal); math.Abs(hz-want) > 500 {
			t.Errorf("channel %d tuned to %g, want %g", i, hz, want)
		}
		if i > 0 && w <= words[i-1] {
			t.Errorf("channel %d not above channel %d", i, i-1)
		}
	}
	if s.Config().Calibration.Offset != Band868.RSSIOffset() {
		t.Errorf("calibration offset %g, want %g", s.Config().Calibration.Offset, Band868.RSSIOffset())
	}
}

func TestScanRetunesFromIdle(t *testing.T) {
	step := DefaultScanConfig()
	step.Strategy = FrequencyStep
	step.Channels = 5
	step.BaseFrequency = 433e6
	step.Step = 200e3
	step.Depth = 2
	cases := []struct {
		name   string
		config ScanConfig
	}{
		{"channel", channelConfig(5)},
		{"frequency", step},
	}
	for _, c := range cases {
		t.Run(c.name, func(t *testing.T) {
			s, f := newTestScanner(t, c.config)
			f.state = StateRX
			for pass := 0; pass < 2; pass++ {
				if err := s.Scan(context.Background()); err != nil {
					t.Fatalf("pass %d: %v", pass, err)
				}
			}
			if len(f.retuned) != 0 {
				t.Errorf("retuned outside IDLE in states %v", f.retuned)
			}
			// One SIDLE before tuning, then one per channel per pass.
			if n, want := f.count(SIDLE), 1+2*5; n != want {
				t.Errorf("SIDLE issued %d times, want %d", n, want)
			}
		})
	}
}

func TestScanBaseOutsideBand(t *testing.T) {
	c := channelConfig(4)
	c.BaseFrequency = 0
	s, f := newTestScanner(t, c)
	// FREQ2..0 read back as zero.
	err := s.Scan(context.Background())
	if !errors.Is(err, ErrOutOfRange) {
		t.Fatalf("Scan returned %v, want ErrOutOfRange", err)
	}
	if f.count(SRX) != 0 {
		t.Errorf("scan started with an untunable base frequency")
	}
	if s.History().Snapshot().Scans != 0 {
		t.Errorf("pass recorded without a calibration")
	}
}

func TestScanRetry(t *testing.T) {
	s, f := newTestScanner(t, channelConfig(4))
	f.stuckRX = 1
	if err := s.Scan(context.Background()); err != nil {
		t.Fatal(err)
	}
	if f.count(SFRX) != 1 {
		t.Errorf("SFRX issued %d times, want 1", f.count(SFRX))
	}
	if s.Skipped() != 0 {
		t.Errorf("Skipped() == %d, want 0", s.Skipped())
	}
	if got := s.History().Current()[0]; got != -Band433.RSSIOffset() {
		t.Errorf("channel 0 == %g after retry", got)
	}
}

func TestScanSkip(t *testing.T) {
	s, f := newTestScanner(t, channelConfig(4))
	f.stuckRX = 2
	if err := s.Scan(context.Background()); err != nil {
		t.Fatal(err)
	}
	if s.Skipped() != 1 {
		t.Errorf("Skipped() == %d, want 1", s.Skipped())
	}
	got := s.History().Current()
	if got[0] != FloorDBm {
		t.Errorf("channel 0 == %g, want %g", got[0], FloorDBm)
	}
	if got[1] != 1-Band433.RSSIOffset() {
		t.Errorf("channel 1 == %g, scan did not continue", got[1])
	}
}

func TestScanBusError(t *testing.T) {
	s, f := newTestScanner(t, channelConfig(4))
	f.failAt = 12
	err := s.Scan(context.Background())
	if !errors.Is(err, ErrBus) {
		t.Fatalf("Scan returned %v, want ErrBus", err)
	}
	if s.History().Snapshot().Scans != 0 {
		t.Errorf("failed pass was recorded")
	}
}

func TestScanCancel(t *testing.T) {
	s, f := newTestScanner(t, channelConfig(10))
	ctx, cancel := context.WithCancel(context.Background())
	reads := 0
	f.rssi = func(f *fakeConn) byte {
		reads++
		if reads == 4 {
			cancel()
		}
		return rssiByChannel(f)
	}
	err := s.Scan(ctx)
	if !errors.Is(err, context.Canceled) {
		t.Fatalf("Scan returned %v, want context.Canceled", err)
	}
	if reads != 4 {
		t.Errorf("%d channels sampled, want 4", reads)
	}
	if s.History().Snapshot().Scans != 0 {
		t.Errorf("cancelled pass was recorded")
	}
	for _, v := range s.History().Current() {
		if v != FloorDBm {
			t.Fatalf("history modified by cancelled pass")
		}
	}
}

func TestRun(t *testing.T) {
	s, _ := newTestScanner(t, channelConfig(3))
	ctx, cancel := context.WithCancel(context.Background())
	var snapshots []Snapshot
	err := s.Run(ctx, 0, func(snap Snapshot) {
		snapshots = append(snapshots, snap)
		if len(snapshots) == 3 {
			cancel()
		}
	})
	if !errors.Is(err, context.Canceled) {
		t.Fatalf("Run returned %v, want context.Canceled", err)
	}
	if len(snapshots) != 3 {
		t.Fatalf("%d snapshots, want 3", len(snapshots))
	}
	for i, snap := range snapshots {
		if snap.Scans != i+1 {
			t.Errorf("snapshot %d has Scans == %d", i, snap.Scans)
		}
	}
	last := snapshots[2]
	if len(last.Waterfall) != 4 || last.Waterfall[3][0] != FloorDBm || last.Waterfall[2][0] == FloorDBm {
		t.Errorf("waterfall after 3 scans == %v", last.Waterfall)
	}
}

func TestScanConfigValidate(t *testing.T) {
	cases := []struct {
		name   string
		config func(c *ScanConfig)
	}{
		{"no channels", func(c *ScanConfig) { c.Channels = 0 }},
		{"no depth", func(c *ScanConfig) { c.Depth = 0 }},
		{"channel number overflow", func(c *ScanConfig) { c.FirstChannel = 250; c.Channels = 10 }},
		{"base outside band", func(c *ScanConfig) { c.BaseFrequency = 500e6 }},
		{"sweep outside band", func(c *ScanConfig) {
			c.Strategy = FrequencyStep
			c.BaseFrequency = 460e6
			c.Step = 1e6
		}},
		{"sweep without step", func(c *ScanConfig) {
			c.Strategy = FrequencyStep
			c.Step = 0
		}},
	}
	for _, c := range cases {
		t.Run(c.name, func(t *testing.T) {
			config := channelConfig(10)
			c.config(&config)
			r, f := newTestRadio()
			if _, err := NewScanner(r, config); !errors.Is(err, ErrOutOfRange) {
				t.Errorf("NewScanner returned %v, want ErrOutOfRange", err)
			}
			if len(f.log) != 0 {
				t.Errorf("%d bus transactions before validation failed", len(f.log))
			}
		})
	}
}

func TestParseStrategy(t *testing.T) {
	for _, s := range []Strategy{ChannelNumber, FrequencyStep} {
		got, err := ParseStrategy(s.String())
		if err != nil || got != s {
			t.Errorf("ParseStrategy(%q) == %v, %v", s.String(), got, err)
		}
	}
	if _, err := ParseStrategy("sweep"); err == nil {
		t.Errorf("ParseStrategy(sweep) succeeded")
	}
}
