package cc1101

import (
	"errors"
	"fmt"
)

var (
	// ErrBus indicates that a bus transaction could not be completed.
	ErrBus = errors.New("bus transaction failed")

	// ErrStateTimeout indicates that the radio did not reach the expected
	// state within the polling budget.
	ErrStateTimeout = errors.New("radio state transition timed out")

	// ErrOutOfRange indicates a configuration value outside the device's valid domain.
	ErrOutOfRange = errors.New("configuration value out of range")
)

// BusError records the failed transaction and the transport error.
type BusError struct {
	Op   string
	Addr byte
	Err  error
}

func (e *BusError) Error() string {
	return fmt.Sprintf("%s 0x%02X: %v", e.Op, e.Addr, e.Err)
}

func (e *BusError) Unwrap() []error {
	return []error{ErrBus, e.Err}
}

// StateError reports a mode transition that did not complete.
type StateError struct {
	Want  State
	Last  State
	Polls int
}

func (e *StateError) Error() string {
	return fmt.Sprintf("waiting for %v: state still %v after %d polls", e.Want, e.Last, e.Polls)
}

func (e *StateError) Unwrap() error {
	return ErrStateTimeout
}

// RangeError reports a rejected configuration value and its valid range.
type RangeError struct {
	Param string
	Value float64
	Min   float64
	Max   float64
}

func (e *RangeError) Error() string {
	return fmt.Sprintf("%s %g not in range [%g, %g]", e.Param, e.Value, e.Min, e.Max)
}

func (e *RangeError) Unwrap() error {
	return ErrOutOfRange
}

func checkRange(param string, v, lo, hi float64) error {
	if v < lo || v > hi {
		return &RangeError{Param: param, Value: v, Min: lo, Max: hi}
	}
	return nil
}
