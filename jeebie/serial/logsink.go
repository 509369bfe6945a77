package serial

import (
	"io"
	"log/slog"

	"github.com/valerio/go-jeebie-cpu/jeebie/addr"
	"github.com/valerio/go-jeebie-cpu/jeebie/bit"
)

// transferCycles is how long a byte takes on the internal clock, in M-cycles.
const transferCycles = 1024

// LogSink is a link port with nothing plugged in. Outgoing bytes are logged
// as text lines and optionally copied to a writer, which is how test ROMs
// report their results.
type LogSink struct {
	irqHandler     func()
	sb, sc         byte
	transferActive bool
	countdown      int
	logger         *slog.Logger
	out            io.Writer

	// settings
	immediate bool
	defaultRX byte // shifted in from the unconnected port

	line []byte
}

type LogSinkOption func(*LogSink)

// WithFixedTiming completes transfers after the hardware transfer time
// instead of immediately. Requires Tick to be called.
func WithFixedTiming() LogSinkOption { return func(s *LogSink) { s.immediate = false } }

// WithOutput copies every outgoing byte to w.
func WithOutput(w io.Writer) LogSinkOption { return func(s *LogSink) { s.out = w } }

// WithLogger replaces slog.Default for the text lines.
func WithLogger(l *slog.Logger) LogSinkOption { return func(s *LogSink) { s.logger = l } }

// NewLogSink creates a new logging serial device. irq is called when a
// transfer completes and should request the serial interrupt; it may be nil.
func NewLogSink(irq func(), opts ...LogSinkOption) *LogSink {
	s := &LogSink{
		irqHandler: irq,
		immediate:  true,
		defaultRX:  0xFF,
		logger:     slog.Default(),
	}
	for _, opt := range opts {
		opt(s)
	}
	s.Reset()
	return s
}

func (s *LogSink) Write(address uint16, value byte) {
	switch address {
	case addr.SB:
		s.sb = value
	case addr.SC:
		s.sc = value
		s.maybeStartTransfer()
	default:
		panic("serial.LogSink: invalid write address")
	}
}

func (s *LogSink) Read(address uint16) byte {
	switch address {
	case addr.SB:
		return s.sb
	case addr.SC:
		return s.sc | 0x7E // unused bits read as 1
	default:
		panic("serial.LogSink: invalid read address")
	}
}

// Tick advances a pending transfer by cycles M-cycles.
func (s *LogSink) Tick(cycles int) {
	if s.immediate || !s.transferActive {
		return
	}
	s.countdown -= cycles
	if s.countdown <= 0 {
		s.completeTransfer()
		s.countdown = 0
	}
}

func (s *LogSink) Reset() {
	s.sb = 0x00
	s.sc = 0x00
	s.transferActive = false
	s.countdown = 0
	s.line = s.line[:0]
}

// Flush logs a partial line, if any.
func (s *LogSink) Flush() {
	if len(s.line) > 0 {
		s.logger.Info("Serial output", "line", string(s.line))
		s.line = s.line[:0]
	}
}

func (s *LogSink) maybeStartTransfer() {
	if s.transferActive {
		return
	}
	// only transfers on the internal clock (bit 0) ever complete with nothing
	// on the other end.
	if !bit.IsSet(7, s.sc) || !bit.IsSet(0, s.sc) {
		return
	}

	b := s.sb
	if s.out != nil {
		s.out.Write([]byte{b})
	}
	if b == 0 || b == '\n' || b == '\r' {
		s.Flush()
	} else {
		s.line = append(s.line, b)
	}

	if s.immediate {
		s.completeTransfer()
		return
	}

	s.transferActive = true
	s.countdown = transferCycles
}

func (s *LogSink) completeTransfer() {
	s.sb = s.defaultRX
	s.sc = bit.Reset(7, s.sc)
	s.transferActive = false
	if s.irqHandler != nil {
		s.irqHandler()
	}
}
