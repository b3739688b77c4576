package cc1101

import "time"

// Mode is the operating mode driven by the Controller.
type Mode byte

const (
	Idle Mode = iota
	Calibrating
	Receiving
)

func (m Mode) String() string {
	switch m {
	case Idle:
		return "idle"
	case Calibrating:
		return "calibrating"
	case Receiving:
		return "receiving"
	default:
		return "unknown"
	}
}

// Timing holds the delays and polling budget for mode transitions.
type Timing struct {
	IdleSettle   time.Duration `yaml:"idleSettle"`
	PollRetries  int           `yaml:"pollRetries"`
	PollInterval time.Duration `yaml:"pollInterval"`
}

// DefaultTiming returns the settle time and polling budget used by default.
func DefaultTiming() Timing {
	return Timing{
		IdleSettle:   100 * time.Microsecond,
		PollRetries:  1000,
		PollInterval: 100 * time.Microsecond,
	}
}

// Controller drives the radio through its operating modes using
// command strobes and MARCSTATE polling. Every wait is bounded.
type Controller struct {
	bus    *Bus
	timing Timing
	mode   Mode
	sleep  func(time.Duration)
}

// NewController returns a Controller for the radio on bus.
// A non-positive retry count selects the default budget.
func NewController(bus *Bus, timing Timing) *Controller {
	if timing.PollRetries <= 0 {
		timing.PollRetries = DefaultTiming().PollRetries
	}
	return &Controller{bus: bus, timing: timing, sleep: time.Sleep}
}

// Mode returns the mode the controller last brought the radio into.
func (c *Controller) Mode() Mode {
	return c.mode
}

// Timing returns the controller's timing parameters.
func (c *Controller) Timing() Timing {
	return c.timing
}

// State reads the radio's state machine state.
func (c *Controller) State() (State, error) {
	v, err := c.bus.ReadRegister(MARCSTATE)
	if err != nil {
		return stateUnknown, err
	}
	return State(v & marcStateMask), nil
}

// Idle brings the radio into the idle state.
// Idle entry is unconditional, so it waits a fixed settle time instead of polling.
func (c *Controller) Idle() error {
	if err := c.bus.Strobe(SIDLE); err != nil {
		return err
	}
	c.sleep(c.timing.IdleSettle)
	c.mode = Idle
	return nil
}

// Receive brings the radio into receive mode, starting from idle,
// and waits until MARCSTATE reports RX.
func (c *Controller) Receive() error {
	if err := c.Idle(); err != nil {
		return err
	}
	return c.startReceive()
}

// startReceive issues SRX and waits for RX. The radio must already be idle.
func (c *Controller) startReceive() error {
	if err := c.bus.Strobe(SRX); err != nil {
		return err
	}
	if err := c.waitFor(StateRX); err != nil {
		return err
	}
	c.mode = Receiving
	return nil
}

// Calibrate runs a frequency synthesizer calibration from idle
// and waits for the radio to return to idle.
func (c *Controller) Calibrate() error {
	if err := c.Idle(); err != nil {
		return err
	}
	if err := c.bus.Strobe(SCAL); err != nil {
		return err
	}
	c.mode = Calibrating
	if err := c.waitFor(StateIdle); err != nil {
		return err
	}
	c.mode = Idle
	return nil
}

// FlushRX empties the RX FIFO. The radio is left idle.
func (c *Controller) FlushRX() error {
	if err := c.Idle(); err != nil {
		return err
	}
	return c.bus.Strobe(SFRX)
}

// FlushTX empties the TX FIFO. The radio is left idle.
func (c *Controller) FlushTX() error {
	if err := c.Idle(); err != nil {
		return err
	}
	return c.bus.Strobe(SFTX)
}

func (c *Controller) waitFor(want State) error {
	last := stateUnknown
	for i := 0; i < c.timing.PollRetries; i++ {
		s, err := c.State()
		if err != nil {
			return err
		}
		if s == want {
			return nil
		}
		last = s
		c.sleep(c.timing.PollInterval)
	}
	return &StateError{Want: want, Last: last, Polls: c.timing.PollRetries}
}
