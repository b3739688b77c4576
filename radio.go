package cc1101

import (
	"fmt"
	"math"
	"time"

	"github.com/dustin/go-humanize"
)

// Radio represents an open CC1101 device.
type Radio struct {
	bus     *Bus
	mode    *Controller
	crystal float64
	timing  Timing
}

// WithCrystal sets the crystal frequency in Hertz.
func WithCrystal(hz float64) func(r *Radio) {
	return func(r *Radio) {
		r.crystal = hz
	}
}

// WithTiming sets the mode transition timing.
func WithTiming(t Timing) func(r *Radio) {
	return func(r *Radio) {
		r.timing = t
	}
}

// New returns a Radio on the given bus without touching the device.
func New(bus *Bus, options ...func(r *Radio)) *Radio {
	r := &Radio{
		bus:     bus,
		crystal: DefaultCrystal,
		timing:  DefaultTiming(),
	}
	for _, option := range options {
		option(r)
	}
	r.mode = NewController(bus, r.timing)
	return r
}

// Open checks that a CC1101 answers on conn and flushes its FIFOs.
func Open(conn Conn, options ...func(r *Radio)) (*Radio, error) {
	r := New(NewBus(conn), options...)
	v, err := r.Version()
	if err != nil {
		_ = r.Close()
		return nil, err
	}
	if v == 0x00 || v == 0xFF {
		_ = r.Close()
		return nil, fmt.Errorf("no CC1101 found: VERSION register reads 0x%02X", v)
	}
	if err = r.mode.FlushTX(); err == nil {
		err = r.mode.FlushRX()
	}
	if err != nil {
		_ = r.Close()
		return nil, err
	}
	return r, nil
}

// Close closes the radio device.
func (r *Radio) Close() error {
	return r.bus.Close()
}

// Name returns the radio's name.
func (r *Radio) Name() string {
	return "CC1101"
}

// Crystal returns the crystal frequency in Hertz.
func (r *Radio) Crystal() float64 {
	return r.crystal
}

// Modes returns the radio's mode controller.
func (r *Radio) Modes() *Controller {
	return r.mode
}

// Statistics returns the bus traffic counts for the radio device.
func (r *Radio) Statistics() Statistics {
	return r.bus.Statistics()
}

// Reset issues the reset strobe and waits for the chip to restart.
func (r *Radio) Reset() error {
	if err := r.bus.Strobe(SRES); err != nil {
		return err
	}
	r.mode.sleep(time.Millisecond)
	r.mode.mode = Idle
	return nil
}

// PartNum returns the chip part number.
func (r *Radio) PartNum() (byte, error) {
	return r.bus.ReadRegister(PARTNUM)
}

// Version returns the chip version number.
func (r *Radio) Version() (byte, error) {
	return r.bus.ReadRegister(VERSION)
}

// State returns the radio's state machine state.
func (r *Radio) State() (State, error) {
	return r.mode.State()
}

// RSSI returns the raw signal strength reading.
func (r *Radio) RSSI() (byte, error) {
	return r.bus.ReadRegister(RSSI)
}

func (r *Radio) readField(addr byte, f field) (byte, error) {
	v, err := r.bus.ReadRegister(addr)
	if err != nil {
		return 0, err
	}
	return f.get(v), nil
}

// writeField replaces one bit-field with a read-modify-write.
func (r *Radio) writeField(addr byte, f field, v byte) error {
	old, err := r.bus.ReadRegister(addr)
	if err != nil {
		return err
	}
	return r.bus.WriteRegister(addr, f.set(old, v))
}

func checkField(param string, f field, v byte) error {
	return checkRange(param, float64(v), 0, float64(f.max()))
}

// Frequency returns the radio's carrier frequency, in Hertz.
func (r *Radio) Frequency() (float64, error) {
	b, err := r.bus.ReadBurst(FREQ2, 3)
	if err != nil {
		return 0, err
	}
	return WordFrequency(unmarshalFreqWord(b), r.crystal), nil
}

// SetFrequency sets the radio to the given carrier frequency, in Hertz.
// Frequencies outside the synthesizer's bands are rejected.
func (r *Radio) SetFrequency(hz float64) error {
	if _, err := BandFor(hz); err != nil {
		return err
	}
	w, err := FrequencyWord(hz, r.crystal)
	if err != nil {
		return err
	}
	return r.SetFrequencyWord(w)
}

// SetFrequencyWord writes the three FREQ registers in one burst.
func (r *Radio) SetFrequencyWord(w uint32) error {
	if w > MaxFrequencyWord {
		return &RangeError{Param: "frequency word", Value: float64(w), Min: 0, Max: MaxFrequencyWord}
	}
	return r.bus.WriteBurst(FREQ2, marshalFreqWord(w))
}

// SetBand tunes to the band's canonical carrier and loads its PA table.
func (r *Radio) SetBand(b Band) error {
	if !b.valid() {
		return &RangeError{Param: "band", Value: float64(b), Min: float64(Band315), Max: float64(Band915)}
	}
	if err := r.WritePATable(b); err != nil {
		return err
	}
	return r.SetFrequencyWord(b.FrequencyWord())
}

// WritePATable loads the band's power amplifier table.
func (r *Radio) WritePATable(b Band) error {
	pa := b.PATable()
	return r.bus.WriteBurst(PATABLE, pa[:])
}

// SetPowerLevel selects the PA table entry closest to dBm.
func (r *Radio) SetPowerLevel(dBm int) error {
	return r.writeField(FREND0, paPower, PowerIndex(dBm))
}

// Channel returns the channel number.
func (r *Radio) Channel() (uint8, error) {
	return r.bus.ReadRegister(CHANNR)
}

// SetChannel sets the channel number, counted in channel spacings from the base frequency.
func (r *Radio) SetChannel(ch uint8) error {
	return r.bus.WriteRegister(CHANNR, ch)
}

// Modulation returns the modulation format.
func (r *Radio) Modulation() (Modulation, error) {
	v, err := r.readField(MDMCFG2, modFormat)
	return Modulation(v), err
}

// SetModulation sets the modulation format.
func (r *Radio) SetModulation(m Modulation) error {
	if !m.Valid() {
		return &RangeError{Param: "modulation", Value: float64(m), Min: float64(Mod2FSK), Max: float64(ModMSK)}
	}
	return r.writeField(MDMCFG2, modFormat, byte(m))
}

// DataRate returns the data rate in kbps.
func (r *Radio) DataRate() (float64, error) {
	b, err := r.bus.ReadBurst(MDMCFG4, 2)
	if err != nil {
		return 0, err
	}
	return DataRate(drateE.get(b[0]), b[1], r.crystal), nil
}

// SetDataRate sets the data rate in kbps.
func (r *Radio) SetDataRate(kbps float64) error {
	e, m, err := EncodeDataRate(kbps, r.crystal)
	if err != nil {
		return err
	}
	if err = r.writeField(MDMCFG4, drateE, e); err != nil {
		return err
	}
	return r.bus.WriteRegister(MDMCFG3, m)
}

// ChannelSpacing returns the channel spacing in Hertz.
func (r *Radio) ChannelSpacing() (float64, error) {
	b, err := r.bus.ReadBurst(MDMCFG1, 2)
	if err != nil {
		return 0, err
	}
	return ChannelSpacing(chanspcE.get(b[0]), b[1], r.crystal), nil
}

// SetChannelSpacing sets the channel spacing exponent (0-3) and mantissa.
func (r *Radio) SetChannelSpacing(e, m uint8) error {
	if err := checkField("channel spacing exponent", chanspcE, e); err != nil {
		return err
	}
	if err := r.writeField(MDMCFG1, chanspcE, e); err != nil {
		return err
	}
	return r.bus.WriteRegister(MDMCFG0, m)
}

// SetChannelSpacingHz sets the channel spacing closest to hz.
func (r *Radio) SetChannelSpacingHz(hz float64) error {
	e, m, err := EncodeChannelSpacing(hz, r.crystal)
	if err != nil {
		return err
	}
	return r.SetChannelSpacing(e, m)
}

// ChannelBandwidth returns the receive filter bandwidth in Hertz.
func (r *Radio) ChannelBandwidth() (float64, error) {
	v, err := r.bus.ReadRegister(MDMCFG4)
	if err != nil {
		return 0, err
	}
	return ChannelBandwidth(chanbwE.get(v), chanbwM.get(v), r.crystal), nil
}

// SetChannelBandwidth sets the receive filter exponent and mantissa (0-3 each).
func (r *Radio) SetChannelBandwidth(e, m uint8) error {
	if err := checkField("channel bandwidth exponent", chanbwE, e); err != nil {
		return err
	}
	if err := checkField("channel bandwidth mantissa", chanbwM, m); err != nil {
		return err
	}
	v, err := r.bus.ReadRegister(MDMCFG4)
	if err != nil {
		return err
	}
	v = chanbwE.set(v, e)
	v = chanbwM.set(v, m)
	return r.bus.WriteRegister(MDMCFG4, v)
}

// LoadPreset writes a complete register image in one burst.
func (r *Radio) LoadPreset(p Preset) error {
	return r.bus.WriteBurst(IOCFG2, p.Registers[:])
}

// ReadModemConfig reads and decodes MDMCFG4 through MDMCFG0.
func (r *Radio) ReadModemConfig() (ModemConfig, error) {
	b, err := r.bus.ReadBurst(MDMCFG4, 5)
	if err != nil {
		return ModemConfig{}, err
	}
	return DecodeModemConfig(b), nil
}

// ReadPacketConfig reads and decodes SYNC1 through PKTCTRL0.
func (r *Radio) ReadPacketConfig() (PacketConfig, error) {
	b, err := r.bus.ReadBurst(SYNC1, 5)
	if err != nil {
		return PacketConfig{}, err
	}
	return DecodePacketConfig(b), nil
}

// Summary describes the resolved configuration for display.
type Summary struct {
	Modulation       Modulation
	Frequency        float64 // Hz
	ChannelSpacing   float64 // Hz
	ChannelBandwidth float64 // Hz
	DataRate         float64 // kbps
	Channel          uint8
}

// Summary reads back the modem and frequency registers.
func (r *Radio) Summary() (Summary, error) {
	f, err := r.Frequency()
	if err != nil {
		return Summary{}, err
	}
	mc, err := r.ReadModemConfig()
	if err != nil {
		return Summary{}, err
	}
	ch, err := r.Channel()
	if err != nil {
		return Summary{}, err
	}
	return Summary{
		Modulation:       mc.Modulation,
		Frequency:        f,
		ChannelSpacing:   ChannelSpacing(mc.ChanSpacingE, mc.ChanSpacingM, r.crystal),
		ChannelBandwidth: ChannelBandwidth(mc.ChanBWE, mc.ChanBWM, r.crystal),
		DataRate:         DataRate(mc.DataRateE, mc.DataRateM, r.crystal),
		Channel:          ch,
	}, nil
}

func (s Summary) String() string {
	return fmt.Sprintf("Mod: %v  Freq: %s  ChSpc: %s  ChBW: %s  Rate: %s",
		s.Modulation,
		FormatSI(s.Frequency, 3, "Hz"),
		FormatSI(s.ChannelSpacing, 1, "Hz"),
		FormatSI(s.ChannelBandwidth, 1, "Hz"),
		FormatSI(s.DataRate*1000, 2, "bps"),
	)
}

// FormatSI formats v with an SI prefix, rounded to the given number of decimals.
func FormatSI(v float64, decimals int, unit string) string {
	value, prefix := humanize.ComputeSI(v)
	p := math.Pow10(decimals)
	return humanize.FtoaWithDigits(math.Round(value*p)/p, decimals) + " " + prefix + unit
}
