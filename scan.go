package cc1101

import (
	"context"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"strings"
	"time"
)

// Strategy selects how the scanner moves between channels.
type Strategy byte

const (
	// ChannelNumber writes CHANNR against a fixed base frequency.
	// Resolution is limited to the channel spacing.
	ChannelNumber Strategy = iota

	// FrequencyStep reprograms the FREQ registers for every channel.
	FrequencyStep
)

func (s Strategy) String() string {
	switch s {
	case ChannelNumber:
		return "channel"
	case FrequencyStep:
		return "frequency"
	default:
		return fmt.Sprintf("Strategy(%d)", byte(s))
	}
}

// ParseStrategy accepts "channel" or "frequency".
func ParseStrategy(s string) (Strategy, error) {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "channel", "":
		return ChannelNumber, nil
	case "frequency":
		return FrequencyStep, nil
	}
	return 0, fmt.Errorf("unknown scan strategy %q", s)
}

// ScanConfig defines the channel set and timing of a scan.
type ScanConfig struct {
	Channels int
	Strategy Strategy

	// BaseFrequency is the frequency of the first channel for FrequencyStep,
	// and the frequency programmed into FREQ for ChannelNumber.
	// Zero keeps the radio's current frequency for ChannelNumber.
	BaseFrequency float64
	Step          float64 // Hz, FrequencyStep only
	FirstChannel  uint8   // ChannelNumber only

	// Settle is the wait between reaching RX and reading RSSI.
	Settle time.Duration

	// Calibration converts raw readings. The zero value selects
	// the calibration of the band containing the base frequency.
	Calibration Calibration

	// Depth is the number of waterfall rows.
	Depth int
}

// DefaultScanConfig returns a 100-channel scan of the channel register
// with a 100-row waterfall.
func DefaultScanConfig() ScanConfig {
	return ScanConfig{
		Channels: 100,
		Strategy: ChannelNumber,
		Settle:   500 * time.Microsecond,
		Depth:    100,
	}
}

// Validate checks the configuration before any bus transaction.
func (c *ScanConfig) Validate() error {
	if c.Channels <= 0 {
		return &RangeError{Param: "channel count", Value: float64(c.Channels), Min: 1, Max: 256}
	}
	if c.Depth <= 0 {
		return &RangeError{Param: "waterfall depth", Value: float64(c.Depth), Min: 1, Max: 1 << 16}
	}
	switch c.Strategy {
	case ChannelNumber:
		last := int(c.FirstChannel) + c.Channels - 1
		if last > 255 {
			return &RangeError{Param: "channel number", Value: float64(last), Min: 0, Max: 255}
		}
		if c.BaseFrequency != 0 {
			if _, err := BandFor(c.BaseFrequency); err != nil {
				return err
			}
		}
	case FrequencyStep:
		if c.Channels > 1 && c.Step <= 0 {
			return &RangeError{Param: "frequency step (Hz)", Value: c.Step, Min: 1, Max: 1e9}
		}
		first, err := BandFor(c.BaseFrequency)
		if err != nil {
			return err
		}
		lastHz := c.BaseFrequency + float64(c.Channels-1)*c.Step
		last, err := BandFor(lastHz)
		if err != nil {
			return err
		}
		if tuningRange(first) != tuningRange(last) {
			return fmt.Errorf("%w: sweep %g-%g Hz crosses a gap between bands", ErrOutOfRange, c.BaseFrequency, lastHz)
		}
	default:
		return fmt.Errorf("%w: %v", ErrOutOfRange, c.Strategy)
	}
	return nil
}

// tuningRange groups bands that share a contiguous synthesizer range.
func tuningRange(b Band) int {
	if b == Band915 {
		return int(Band868)
	}
	return int(b)
}

// Scanner samples signal strength across a fixed channel set.
// It owns the current spectrum and is the only writer of its History.
type Scanner struct {
	radio   *Radio
	config  ScanConfig
	history *History

	spectrum    []float64
	frequencies []float64
	prepared    bool
	skipped     int

	logger *slog.Logger
	sleep  func(time.Duration)
}

// WithLogger sets the logger for the scanner.
func WithLogger(logger *slog.Logger) func(s *Scanner) {
	return func(s *Scanner) {
		s.logger = logger.With(slog.String("radio", s.radio.Name()))
	}
}

// NewScanner validates config and returns a Scanner with a discard logger.
func NewScanner(r *Radio, config ScanConfig, options ...func(s *Scanner)) (*Scanner, error) {
	if err := config.Validate(); err != nil {
		return nil, err
	}
	history, err := NewHistory(config.Depth, config.Channels)
	if err != nil {
		return nil, err
	}
	s := &Scanner{
		radio:    r,
		config:   config,
		history:  history,
		spectrum: make([]float64, config.Channels),
		logger:   slog.New(slog.NewTextHandler(io.Discard, nil)),
		sleep:    time.Sleep,
	}
	for _, option := range options {
		option(s)
	}
	return s, nil
}

// History returns the scanner's sample history for read-only use.
func (s *Scanner) History() *History {
	return s.history
}

// Config returns the scan configuration.
func (s *Scanner) Config() ScanConfig {
	return s.config
}

// Skipped returns the number of channel readings replaced by FloorDBm
// because the radio did not enter RX.
func (s *Scanner) Skipped() int {
	return s.skipped
}

// Frequencies returns the center frequency of each channel, in Hertz.
// It is valid after the first scan.
func (s *Scanner) Frequencies() []float64 {
	return append([]float64(nil), s.frequencies...)
}

func (s *Scanner) prepare() error {
	c := &s.config
	s.frequencies = make([]float64, c.Channels)
	if err := s.radio.mode.Idle(); err != nil {
		return err
	}
	switch c.Strategy {
	case ChannelNumber:
		if c.BaseFrequency != 0 {
			if err := s.radio.SetFrequency(c.BaseFrequency); err != nil {
				return err
			}
		}
		base, err := s.radio.Frequency()
		if err != nil {
			return err
		}
		spacing, err := s.radio.ChannelSpacing()
		if err != nil {
			return err
		}
		band, err := BandFor(base)
		if err != nil {
			return fmt.Errorf("base frequency read back from the radio: %w", err)
		}
		for i := range s.frequencies {
			s.frequencies[i] = base + float64(int(c.FirstChannel)+i)*spacing
		}
		if c.Calibration.Name == "" {
			c.Calibration = BandCalibration(band)
		}
	case FrequencyStep:
		for i := range s.frequencies {
			s.frequencies[i] = c.BaseFrequency + float64(i)*c.Step
		}
		if c.Calibration.Name == "" {
			band, err := BandFor(c.BaseFrequency)
			if err != nil {
				return err
			}
			c.Calibration = BandCalibration(band)
		}
	}
	s.logger.Info("scanner prepared",
		slog.String("strategy", c.Strategy.String()),
		slog.Int("channels", c.Channels),
		slog.Float64("firstHz", s.frequencies[0]),
		slog.Float64("lastHz", s.frequencies[len(s.frequencies)-1]),
		slog.String("calibration", c.Calibration.Name),
	)
	s.prepared = true
	return nil
}

func (s *Scanner) selectChannel(i int) error {
	if s.config.Strategy == FrequencyStep {
		return s.radio.SetFrequency(s.frequencies[i])
	}
	return s.radio.SetChannel(s.config.FirstChannel + uint8(i))
}

// Synthesizer registers may only change while the radio is idle.
func (s *Scanner) sample(i int) (float64, error) {
	if err := s.radio.mode.Idle(); err != nil {
		return 0, err
	}
	if err := s.selectChannel(i); err != nil {
		return 0, err
	}
	if err := s.radio.mode.startReceive(); err != nil {
		return 0, err
	}
	s.sleep(s.config.Settle)
	raw, err := s.radio.RSSI()
	if err != nil {
		return 0, err
	}
	return s.config.Calibration.DBm(raw), nil
}

// Scan performs one pass over all channels in ascending order and records
// the result in the history. A channel whose RX transition times out is
// retried once after flushing the RX FIFO, then recorded as FloorDBm.
// Cancellation is checked before each channel; a cancelled pass is not recorded.
func (s *Scanner) Scan(ctx context.Context) error {
	if !s.prepared {
		if err := s.prepare(); err != nil {
			return err
		}
	}
	for i := range s.spectrum {
		if err := ctx.Err(); err != nil {
			return err
		}
		dbm, err := s.sample(i)
		if errors.Is(err, ErrStateTimeout) {
			s.logger.Warn(fmt.Sprintf("channel %d: %s; flushing RX", i, err.Error()))
			if err = s.radio.mode.FlushRX(); err == nil {
				dbm, err = s.sample(i)
			}
			if errors.Is(err, ErrStateTimeout) {
				s.logger.Warn(fmt.Sprintf("channel %d skipped: %s", i, err.Error()))
				s.skipped++
				dbm, err = FloorDBm, nil
			}
		}
		if err != nil {
			return fmt.Errorf("channel %d: %w", i, err)
		}
		s.spectrum[i] = dbm
	}
	return s.history.Record(s.spectrum)
}

// Run alternates scan passes with calls to render until ctx is cancelled
// or a scan fails. render receives a snapshot taken after each complete pass.
func (s *Scanner) Run(ctx context.Context, interval time.Duration, render func(Snapshot)) error {
	for {
		if err := s.Scan(ctx); err != nil {
			return err
		}
		if render != nil {
			render(s.history.Snapshot())
		}
		select {
		case <-ctx.Done():
			return ctx.Err()
		case <-time.After(interval):
		}
	}
}
