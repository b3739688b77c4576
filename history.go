package cc1101

import (
	"fmt"
	"sync"
	"time"
)

// FloorDBm is the value of every history slot before it has been written.
const FloorDBm = -100.0

// History keeps the most recent spectrum and a fixed-depth waterfall
// of previous spectra, newest first.
type History struct {
	mu       sync.RWMutex
	rows     [][]float64
	channels int
	scans    int
	updated  time.Time
}

// Snapshot is a copy of the history that is safe to keep after further scans.
type Snapshot struct {
	Spectrum  []float64
	Waterfall [][]float64
	Scans     int
	Updated   time.Time
}

// NewHistory returns a history of depth rows of channels samples each,
// pre-filled with FloorDBm.
func NewHistory(depth, channels int) (*History, error) {
	if depth <= 0 || channels <= 0 {
		return nil, fmt.Errorf("invalid history dimensions: depth=%d, channels=%d", depth, channels)
	}
	rows := make([][]float64, depth)
	for i := range rows {
		rows[i] = make([]float64, channels)
		for j := range rows[i] {
			rows[i][j] = FloorDBm
		}
	}
	return &History{rows: rows, channels: channels}, nil
}

// Depth returns the number of waterfall rows.
func (h *History) Depth() int {
	return len(h.rows)
}

// Channels returns the length of each spectrum.
func (h *History) Channels() int {
	return h.channels
}

// Record evicts the oldest row and inserts a copy of spectrum at the front.
func (h *History) Record(spectrum []float64) error {
	if len(spectrum) != h.channels {
		return fmt.Errorf("spectrum has %d channels, history expects %d", len(spectrum), h.channels)
	}
	h.mu.Lock()
	defer h.mu.Unlock()
	oldest := h.rows[len(h.rows)-1]
	copy(h.rows[1:], h.rows[:len(h.rows)-1])
	copy(oldest, spectrum)
	h.rows[0] = oldest
	h.scans++
	h.updated = time.Now()
	return nil
}

// Current returns a copy of the most recent spectrum.
func (h *History) Current() []float64 {
	h.mu.RLock()
	defer h.mu.RUnlock()
	return append([]float64(nil), h.rows[0]...)
}

// Waterfall returns a copy of all rows, newest first.
func (h *History) Waterfall() [][]float64 {
	h.mu.RLock()
	defer h.mu.RUnlock()
	return h.waterfall()
}

func (h *History) waterfall() [][]float64 {
	wf := make([][]float64, len(h.rows))
	for i, row := range h.rows {
		wf[i] = append([]float64(nil), row...)
	}
	return wf
}

// Snapshot returns a consistent copy of the spectrum and waterfall.
func (h *History) Snapshot() Snapshot {
	h.mu.RLock()
	defer h.mu.RUnlock()
	wf := h.waterfall()
	return Snapshot{
		Spectrum:  wf[0],
		Waterfall: wf,
		Scans:     h.scans,
		Updated:   h.updated,
	}
}
