package app

import (
	"errors"
	"fmt"
	"os"
	"strings"
	"time"

	"gopkg.in/yaml.v3"

	"github.com/ecc1/cc1101scan"
)

const (
	// BusSPI opens the kernel spidev device.
	BusSPI BusKind = "spi"

	// BusBitBang drives the SPI signals through GPIO pins.
	BusBitBang BusKind = "bitbang"

	// CalibrationBand converts RSSI with the offset of the scanned band.
	CalibrationBand = "band"

	// CalibrationLegacy converts RSSI with a fixed 74 dB offset.
	CalibrationLegacy = "legacy"

	// DefaultFrequency is the carrier used when neither frequency nor band is set.
	DefaultFrequency = 433.92e6
)

// BusKind names a connection type in the configuration file.
type BusKind string

// Config represents the spectrum scanner configuration.
type Config struct {
	Settings Settings     `yaml:"settings"`
	Bus      BusConfig    `yaml:"bus"`
	Radio    RadioConfig  `yaml:"radio"`
	Scan     ScanConfig   `yaml:"scan"`
	Output   OutputConfig `yaml:"output"`
}

// Settings represents global application settings.
type Settings struct {
	LogLevel string `yaml:"logLevel"`
}

// BusConfig selects the connection to the radio.
type BusConfig struct {
	Kind       BusKind       `yaml:"kind"`
	Device     string        `yaml:"device"`
	Speed      int           `yaml:"speed"`
	Pins       cc1101.Pins   `yaml:"pins"`
	HalfPeriod time.Duration `yaml:"halfPeriod"`
}

// Register is an exponent and mantissa pair.
type Register struct {
	E uint8 `yaml:"e"`
	M uint8 `yaml:"m"`
}

// RadioConfig holds the modem settings applied before scanning.
// Unset fields keep the value loaded by the preset, or the chip's,
// except the carrier (see Carrier).
type RadioConfig struct {
	Crystal          float64       `yaml:"crystal"`
	Preset           string        `yaml:"preset"`
	Band             string        `yaml:"band"`
	Frequency        float64       `yaml:"frequency"`
	Modulation       string        `yaml:"modulation"`
	DataRate         float64       `yaml:"dataRate"` // kbps
	ChannelSpacing   *Register     `yaml:"channelSpacing"`
	ChannelBandwidth *Register     `yaml:"channelBandwidth"`
	Timing           cc1101.Timing `yaml:"timing"`
}

// ScanConfig describes the channel set.
type ScanConfig struct {
	Strategy     string        `yaml:"strategy"`
	Channels     int           `yaml:"channels"`
	FirstChannel uint8         `yaml:"firstChannel"`
	Step         float64       `yaml:"step"` // Hz
	Settle       time.Duration `yaml:"settle"`
	Interval     time.Duration `yaml:"interval"`
	Calibration  string        `yaml:"calibration"`
	Depth        int           `yaml:"depth"`
}

// Carrier returns the frequency to tune in Hertz: the configured frequency,
// else the canonical carrier of the configured band, else DefaultFrequency.
func (c *RadioConfig) Carrier() float64 {
	if c.Frequency != 0 {
		return c.Frequency
	}
	if c.Band != "" {
		if b, err := cc1101.ParseBand(c.Band); err == nil {
			return cc1101.WordFrequency(b.FrequencyWord(), c.Crystal)
		}
	}
	return DefaultFrequency
}

// OutputConfig selects where samples go.
type OutputConfig struct {
	Display    bool    `yaml:"display"`
	Floor      float64 `yaml:"floor"`   // dBm shown as an empty cell
	Ceiling    float64 `yaml:"ceiling"` // dBm shown as a full cell
	LogFile    string  `yaml:"logFile"`
	SerialPort string  `yaml:"serialPort"`
	BaudRate   int     `yaml:"baudRate"`
}

// DefaultConfig returns a 100-channel scan at 433.92 MHz over spidev.
func DefaultConfig() *Config {
	sc := cc1101.DefaultScanConfig()
	return &Config{
		Settings: Settings{LogLevel: "info"},
		Bus: BusConfig{
			Kind:       BusSPI,
			Pins:       cc1101.DefaultPins(),
			HalfPeriod: time.Microsecond,
		},
		Radio: RadioConfig{
			Crystal: cc1101.DefaultCrystal,
			Timing:  cc1101.DefaultTiming(),
		},
		Scan: ScanConfig{
			Strategy:    cc1101.ChannelNumber.String(),
			Channels:    sc.Channels,
			Settle:      sc.Settle,
			Interval:    100 * time.Millisecond,
			Calibration: CalibrationBand,
			Depth:       sc.Depth,
		},
		Output: OutputConfig{
			Display: true,
			Floor:   cc1101.FloorDBm,
			Ceiling: -20,
		},
	}
}

// LoadConfig reads a YAML configuration file over the defaults and validates it.
func LoadConfig(path string) (*Config, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, err
	}
	c := DefaultConfig()
	if err = yaml.Unmarshal(data, c); err != nil {
		return nil, fmt.Errorf("parsing %s: %w", path, err)
	}
	if err = c.Validate(); err != nil {
		return nil, err
	}
	return c, nil
}

// Validate checks the values that can be checked without a radio.
func (c *Config) Validate() error {
	switch c.Bus.Kind {
	case BusSPI, BusBitBang:
	default:
		return fmt.Errorf("invalid bus kind '%s'", c.Bus.Kind)
	}
	if c.Radio.Crystal <= 0 {
		return fmt.Errorf("invalid crystal frequency %g", c.Radio.Crystal)
	}
	if c.Radio.Preset != "" {
		if _, ok := cc1101.LookupPreset(c.Radio.Preset); !ok {
			return fmt.Errorf("unknown preset '%s'", c.Radio.Preset)
		}
	}
	if c.Radio.Band != "" {
		if _, err := cc1101.ParseBand(c.Radio.Band); err != nil {
			return err
		}
	}
	if c.Radio.Modulation != "" {
		if _, err := cc1101.ParseModulation(c.Radio.Modulation); err != nil {
			return err
		}
	}
	if _, err := cc1101.ParseStrategy(c.Scan.Strategy); err != nil {
		return err
	}
	switch strings.ToLower(c.Scan.Calibration) {
	case CalibrationBand, CalibrationLegacy, "":
	default:
		return fmt.Errorf("invalid calibration '%s'", c.Scan.Calibration)
	}
	if c.Output.Ceiling <= c.Output.Floor {
		return errors.New("display ceiling must be above floor")
	}
	if c.Output.LogFile != "" && c.Output.SerialPort != "" {
		return errors.New("logFile and serialPort are mutually exclusive")
	}
	sc, err := c.scanConfig()
	if err != nil {
		return err
	}
	return sc.Validate()
}

// scanConfig converts the file's scan section.
func (c *Config) scanConfig() (cc1101.ScanConfig, error) {
	strategy, err := cc1101.ParseStrategy(c.Scan.Strategy)
	if err != nil {
		return cc1101.ScanConfig{}, err
	}
	sc := cc1101.ScanConfig{
		Channels:      c.Scan.Channels,
		Strategy:      strategy,
		BaseFrequency: c.Radio.Carrier(),
		Step:          c.Scan.Step,
		FirstChannel:  c.Scan.FirstChannel,
		Settle:        c.Scan.Settle,
		Depth:         c.Scan.Depth,
	}
	if strings.ToLower(c.Scan.Calibration) == CalibrationLegacy {
		sc.Calibration = cc1101.LegacyCalibration
	}
	return sc, nil
}
