package jeebie

import (
	"context"
	"fmt"
	"io"
	"log/slog"

	"github.com/valerio/go-jeebie-cpu/jeebie/addr"
	"github.com/valerio/go-jeebie-cpu/jeebie/cpu"
	"github.com/valerio/go-jeebie-cpu/jeebie/memory"
	"github.com/valerio/go-jeebie-cpu/jeebie/serial"
	"github.com/valerio/go-jeebie-cpu/jeebie/timing"
	"github.com/valerio/go-jeebie-cpu/jeebie/trace"
)

// ctxCheckInterval is how many steps Run executes between context checks.
const ctxCheckInterval = 4096

// Stats counts what a run has done so far.
type Stats struct {
	Steps      uint64
	Cycles     uint64
	Interrupts uint64
}

// Emulator represents the root struct and entry point for running the emulation
type Emulator struct {
	cpu *cpu.CPU
	mem *memory.MMU

	bootROM     []byte
	sinks       []trace.Sink
	sink        trace.Sink
	traceWriter *trace.Writer
	serialOut   io.Writer
	serial      *serial.LogSink
	throttle    timing.Throttle

	stats Stats
}

// New creates an emulator running cart. Without a boot ROM the CPU starts
// from the state the DMG boot ROM leaves behind, at the cartridge entry point.
func New(cart *memory.Cartridge, opts ...Option) (*Emulator, error) {
	e := &Emulator{
		cpu:      cpu.New(),
		mem:      memory.NewWithCartridge(cart),
		throttle: timing.NoThrottle,
	}
	for _, opt := range opts {
		opt(e)
	}

	e.serial = serial.NewLogSink(func() { e.mem.RequestInterrupt(addr.SerialInterrupt) },
		serial.WithOutput(e.serialOut))
	e.mem.SetSerial(e.serial)

	if e.bootROM != nil {
		if err := e.mem.SetBootROM(e.bootROM); err != nil {
			return nil, err
		}
		slog.Info("Boot ROM loaded", "model", memory.BootROMModel(e.bootROM))
	} else {
		e.cpu.ResetPostBoot()
		e.mem.UnlockBootROM()
	}

	switch len(e.sinks) {
	case 0:
	case 1:
		e.sink = e.sinks[0]
	default:
		e.sink = trace.Multi(e.sinks...)
	}
	e.cpu.EnableSnapshots(e.sink != nil)

	return e, nil
}

// NewWithFile creates a new emulator instance and loads the file specified into it.
func NewWithFile(path string, opts ...Option) (*Emulator, error) {
	cart, err := memory.LoadCartridge(path)
	if err != nil {
		return nil, err
	}

	slog.Info("Loaded cartridge", "title", cart.Title(), "type", cart.TypeName(), "size", cart.Size())
	if !cart.HeaderChecksumValid() {
		slog.Warn("Cartridge header checksum mismatch", "checksum", fmt.Sprintf("0x%02X", cart.HeaderChecksum()))
	}

	return New(cart, opts...)
}

// Step executes one instruction, services any interrupt that became pending,
// and returns the M-cycles spent. It returns an error wrapping
// cpu.ErrInvalidOpcode when the CPU fetches an opcode it cannot execute.
func (e *Emulator) Step() (int, error) {
	cycles := e.cpu.Step(e.mem)

	if e.sink != nil {
		if err := e.sink.Write(e.cpu.Snapshot()); err != nil {
			return 0, fmt.Errorf("trace: %w", err)
		}
	}

	if cycles == cpu.InvalidOpcode {
		return 0, e.cpu.Err()
	}

	cycles += e.handleInterrupts()

	e.mem.Tick(cycles)
	e.throttle.Advance(cycles)

	e.stats.Steps++
	e.stats.Cycles += uint64(cycles)
	return cycles, nil
}

// Run steps until maxSteps instructions have run (0 means no limit), ctx is
// done, or the CPU hits an invalid opcode.
func (e *Emulator) Run(ctx context.Context, maxSteps uint64) (Stats, error) {
	e.throttle.Reset()

	for n := uint64(0); maxSteps == 0 || n < maxSteps; n++ {
		if n%ctxCheckInterval == 0 {
			if err := ctx.Err(); err != nil {
				return e.stats, err
			}
		}
		if _, err := e.Step(); err != nil {
			return e.stats, err
		}
	}

	return e.stats, nil
}

// Close flushes the trace writer and any partial serial line.
func (e *Emulator) Close() error {
	e.serial.Flush()
	if e.traceWriter != nil {
		return e.traceWriter.Flush()
	}
	return nil
}

func (e *Emulator) CPU() *cpu.CPU {
	return e.cpu
}

func (e *Emulator) Memory() *memory.MMU {
	return e.mem
}

func (e *Emulator) Stats() Stats {
	return e.stats
}
