// Package trace records per-instruction CPU state as text lines, hashes
// them, and compares recorded traces against reference logs.
package trace

import (
	"bufio"
	"fmt"
	"hash"
	"io"

	"github.com/cespare/xxhash"

	"github.com/valerio/go-jeebie-cpu/jeebie/cpu"
)

// Sink receives the state captured before each executed instruction.
type Sink interface {
	Write(s cpu.Snapshot) error
}

// Writer emits one line per snapshot in the register order
// A F B C D E H L SP PC, followed by the 4 bytes at PC.
type Writer struct {
	w     *bufio.Writer
	lines uint64
}

func NewWriter(w io.Writer) *Writer {
	return &Writer{w: bufio.NewWriter(w)}
}

func (w *Writer) Write(s cpu.Snapshot) error {
	if _, err := w.w.WriteString(s.String()); err != nil {
		return fmt.Errorf("writing trace line %d: %w", w.lines+1, err)
	}
	if err := w.w.WriteByte('\n'); err != nil {
		return fmt.Errorf("writing trace line %d: %w", w.lines+1, err)
	}
	w.lines++
	return nil
}

// Flush writes any buffered lines to the underlying writer.
func (w *Writer) Flush() error {
	return w.w.Flush()
}

// Lines returns the number of lines written so far.
func (w *Writer) Lines() uint64 {
	return w.lines
}

// Digest is a running xxhash over the trace lines, a compact fingerprint of
// a run. Two runs of the same program from the same state have equal digests.
type Digest struct {
	h     hash.Hash64
	lines uint64
}

func NewDigest() *Digest {
	return &Digest{h: xxhash.New()}
}

func (d *Digest) Write(s cpu.Snapshot) error {
	// hash.Hash never returns an error on Write
	d.h.Write([]byte(s.String()))
	d.h.Write([]byte{'\n'})
	d.lines++
	return nil
}

func (d *Digest) Sum64() uint64 {
	return d.h.Sum64()
}

// Lines returns the number of snapshots hashed so far.
func (d *Digest) Lines() uint64 {
	return d.lines
}

func (d *Digest) String() string {
	return fmt.Sprintf("%016x", d.h.Sum64())
}

// Multi fans a snapshot out to several sinks, stopping at the first error.
func Multi(sinks ...Sink) Sink {
	return multiSink(sinks)
}

type multiSink []Sink

func (m multiSink) Write(s cpu.Snapshot) error {
	for _, sink := range m {
		if err := sink.Write(s); err != nil {
			return err
		}
	}
	return nil
}
