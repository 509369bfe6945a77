package jeebie

import (
	"io"

	"github.com/valerio/go-jeebie-cpu/jeebie/timing"
	"github.com/valerio/go-jeebie-cpu/jeebie/trace"
)

// Option configures an Emulator at construction time.
type Option func(*Emulator)

// WithBootROM maps a 256 byte boot ROM over the cartridge. Execution starts
// at 0x0000 with every register zeroed, as on hardware.
func WithBootROM(data []byte) Option {
	return func(e *Emulator) { e.bootROM = data }
}

// WithTrace writes a line per executed instruction to w. Call Close to flush
// the last lines.
func WithTrace(w io.Writer) Option {
	return func(e *Emulator) {
		tw := trace.NewWriter(w)
		e.traceWriter = tw
		e.sinks = append(e.sinks, tw)
	}
}

// WithDigest hashes every trace line into d.
func WithDigest(d *trace.Digest) Option {
	return func(e *Emulator) { e.sinks = append(e.sinks, d) }
}

// WithSink adds a custom trace sink.
func WithSink(s trace.Sink) Option {
	return func(e *Emulator) { e.sinks = append(e.sinks, s) }
}

// WithThrottle paces execution, timing.NoThrottle by default.
func WithThrottle(t timing.Throttle) Option {
	return func(e *Emulator) { e.throttle = t }
}

// WithSerialOutput copies everything the program sends over the link port
// to w.
func WithSerialOutput(w io.Writer) Option {
	return func(e *Emulator) { e.serialOut = w }
}
