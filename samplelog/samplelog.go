// Package samplelog writes signal strength samples as a flat text log,
// one dBm value per line.
package samplelog

import (
	"bufio"
	"io"
	"os"
	"strconv"
)

// Writer appends samples to an underlying stream.
type Writer struct {
	w      *bufio.Writer
	closer io.Closer
	count  int
}

// New returns a Writer on w. If w is an io.Closer, Close closes it.
func New(w io.Writer) *Writer {
	lw := &Writer{w: bufio.NewWriter(w)}
	if c, ok := w.(io.Closer); ok {
		lw.closer = c
	}
	return lw
}

// Create opens the log file at path for appending, creating it if necessary.
func Create(path string) (*Writer, error) {
	f, err := os.OpenFile(path, os.O_WRONLY|os.O_CREATE|os.O_APPEND, 0o644)
	if err != nil {
		return nil, err
	}
	return New(f), nil
}

// WriteSample writes one value with two decimals.
func (lw *Writer) WriteSample(dBm float64) error {
	b := strconv.AppendFloat(make([]byte, 0, 16), dBm, 'f', 2, 64)
	b = append(b, '\n')
	if _, err := lw.w.Write(b); err != nil {
		return err
	}
	lw.count++
	return nil
}

// WriteSpectrum writes every value of spectrum in channel order and flushes.
func (lw *Writer) WriteSpectrum(spectrum []float64) error {
	for _, v := range spectrum {
		if err := lw.WriteSample(v); err != nil {
			return err
		}
	}
	return lw.w.Flush()
}

// Count returns the number of samples written.
func (lw *Writer) Count() int {
	return lw.count
}

// Flush writes any buffered samples to the underlying stream.
func (lw *Writer) Flush() error {
	return lw.w.Flush()
}

// Close flushes the log and closes the underlying stream.
func (lw *Writer) Close() error {
	err := lw.w.Flush()
	if lw.closer != nil {
		if cerr := lw.closer.Close(); err == nil {
			err = cerr
		}
	}
	return err
}
