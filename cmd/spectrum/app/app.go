package app

import (
	"context"
	"errors"
	"fmt"
	"io"
	"log/slog"

	"github.com/ecc1/cc1101scan"
	"github.com/ecc1/cc1101scan/samplelog"
)

// Run opens the radio, applies the configuration and scans until ctx is cancelled.
func Run(ctx context.Context, config *Config, out io.Writer, logger *slog.Logger) error {
	conn, err := openConn(&config.Bus)
	if err != nil {
		return fmt.Errorf("failed to open %s bus: %w", config.Bus.Kind, err)
	}
	r, err := cc1101.Open(conn, cc1101.WithCrystal(config.Radio.Crystal), cc1101.WithTiming(config.Radio.Timing))
	if err != nil {
		return fmt.Errorf("failed to open radio: %w", err)
	}
	defer r.Close()

	return run(ctx, r, config, out, logger)
}

func run(ctx context.Context, r *cc1101.Radio, config *Config, out io.Writer, logger *slog.Logger) error {
	if err := configureRadio(r, &config.Radio, logger); err != nil {
		return fmt.Errorf("failed to configure radio: %w", err)
	}

	sc, err := config.scanConfig()
	if err != nil {
		return err
	}
	scanner, err := cc1101.NewScanner(r, sc, cc1101.WithLogger(logger))
	if err != nil {
		return fmt.Errorf("creating scanner: %w", err)
	}

	sink, err := createSampleLog(&config.Output)
	if err != nil {
		return fmt.Errorf("creating sample log: %w", err)
	}
	if sink != nil {
		defer sink.Close()
	}

	d := newDisplay(out, config.Output.Floor, config.Output.Ceiling)
	render := func(snap cc1101.Snapshot) {
		if config.Output.Display {
			if snap.Scans == 1 {
				d.header(scanner.Frequencies())
			}
			d.row(snap.Spectrum)
		}
		if sink != nil {
			if err := sink.WriteSpectrum(snap.Spectrum); err != nil {
				logger.Warn(fmt.Sprintf("sample log: %s", err.Error()))
			}
		}
	}

	err = scanner.Run(ctx, config.Scan.Interval, render)
	stats := r.Statistics()
	logger.Info("scanner stopped",
		slog.Int("scans", scanner.History().Snapshot().Scans),
		slog.Int("skipped", scanner.Skipped()),
		slog.Int("busWrites", stats.Packets.Sent),
		slog.Int("busReads", stats.Packets.Received),
	)
	if errors.Is(err, context.Canceled) || errors.Is(err, context.DeadlineExceeded) {
		return nil
	}
	return err
}

func openConn(config *BusConfig) (cc1101.Conn, error) {
	switch config.Kind {
	case BusSPI:
		return cc1101.OpenSPI(config.Device, config.Speed)
	case BusBitBang:
		return cc1101.OpenBitBang(config.Pins, config.HalfPeriod)
	default:
		return nil, fmt.Errorf("unknown bus kind '%s'", config.Kind)
	}
}

func configureRadio(r *cc1101.Radio, config *RadioConfig, logger *slog.Logger) error {
	if config.Preset != "" {
		p, ok := cc1101.LookupPreset(config.Preset)
		if !ok {
			return fmt.Errorf("unknown preset '%s'", config.Preset)
		}
		if err := r.LoadPreset(p); err != nil {
			return err
		}
		logger.Debug("preset loaded", slog.String("preset", p.Name))
	}
	if config.Band != "" {
		b, err := cc1101.ParseBand(config.Band)
		if err != nil {
			return err
		}
		if err = r.SetBand(b); err != nil {
			return err
		}
	}
	if err := r.SetFrequency(config.Carrier()); err != nil {
		return err
	}
	if config.Modulation != "" {
		m, err := cc1101.ParseModulation(config.Modulation)
		if err != nil {
			return err
		}
		if err = r.SetModulation(m); err != nil {
			return err
		}
	}
	if config.DataRate != 0 {
		if err := r.SetDataRate(config.DataRate); err != nil {
			return err
		}
	}
	if s := config.ChannelSpacing; s != nil {
		if err := r.SetChannelSpacing(s.E, s.M); err != nil {
			return err
		}
	}
	if bw := config.ChannelBandwidth; bw != nil {
		if err := r.SetChannelBandwidth(bw.E, bw.M); err != nil {
			return err
		}
	}
	if err := r.Modes().Calibrate(); err != nil {
		return err
	}
	summary, err := r.Summary()
	if err != nil {
		return err
	}
	logger.Info(summary.String())
	return nil
}

func createSampleLog(config *OutputConfig) (*samplelog.Writer, error) {
	switch {
	case config.LogFile != "":
		return samplelog.Create(config.LogFile)
	case config.SerialPort != "":
		return samplelog.OpenSerial(config.SerialPort, config.BaudRate)
	default:
		return nil, nil
	}
}
