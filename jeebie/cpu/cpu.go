package cpu

import (
	"errors"
	"fmt"
	"log/slog"

	"github.com/valerio/go-jeebie-cpu/jeebie/addr"
	"github.com/valerio/go-jeebie-cpu/jeebie/bit"
)

// Bus is the address space the CPU executes against, along with the boot ROM
// latch that the boot program flips when it hands control to the cartridge.
type Bus interface {
	Read(address uint16) uint8
	Write(address uint16, value uint8)
	UnlockBootROM()
	IsBootROMUnlocked() bool
}

// InvalidOpcode is returned by Step when the fetched opcode has no handler.
// The caller is expected to stop stepping.
const InvalidOpcode = -1

const cbPrefix uint8 = 0xCB

// ErrInvalidOpcode is the error form of the InvalidOpcode sentinel.
var ErrInvalidOpcode = errors.New("invalid opcode")

// InvalidOpcodeError describes the fetch that produced InvalidOpcode.
type InvalidOpcodeError struct {
	// PC is the address of the opcode byte (of the 0xCB prefix when Prefixed).
	PC       uint16
	Opcode   uint8
	Prefixed bool
}

func (e *InvalidOpcodeError) Error() string {
	if e.Prefixed {
		return fmt.Sprintf("invalid opcode $CB $%02X at $%04X", e.Opcode, e.PC)
	}
	return fmt.Sprintf("invalid opcode $%02X at $%04X", e.Opcode, e.PC)
}

func (e *InvalidOpcodeError) Unwrap() error {
	return ErrInvalidOpcode
}

// CPU holds the LR35902 state. It owns its registers; the bus is handed in
// on every Step and is only referenced for the duration of that call.
type CPU struct {
	regs Registers

	ime       bool
	eiPending bool // EI takes effect after the following instruction
	halted    bool
	stopped   bool

	cycles uint64

	// per-instruction state, valid only inside Step
	bus      Bus
	operandA uint8
	operandB uint8

	snapshots bool
	snapshot  Snapshot

	err *InvalidOpcodeError
}

// New returns a CPU in its power-on state: every register zero and PC at the
// start of the boot ROM.
func New() *CPU {
	return &CPU{}
}

// ResetPostBoot loads the register values the DMG boot ROM leaves behind, for
// running a cartridge without a boot ROM image.
func (c *CPU) ResetPostBoot() {
	c.setAF(0x01B0)
	c.regs.BC.Set(0x0013)
	c.regs.DE.Set(0x00D8)
	c.regs.HL.Set(0x014D)
	c.regs.SP.Set(0xFFFE)
	c.regs.PC.Set(addr.EntryPoint)
	c.ime = false
	c.eiPending = false
	c.halted = false
	c.stopped = false
}

// Step executes a single instruction and returns its cost in M-cycles, or
// InvalidOpcode when the opcode (or the byte after a 0xCB prefix) has no
// handler. On InvalidOpcode the PC is left where the fetch moved it.
func (c *CPU) Step(bus Bus) int {
	if c.snapshots {
		c.snapshot = c.Capture(bus)
	}

	if c.halted || c.stopped {
		c.cycles++
		return 1
	}

	c.err = nil

	opcodePC := c.regs.PC.Get()
	opcode := bus.Read(opcodePC)
	c.regs.PC.incr()

	// both operand bytes are always fetched, instructions that don't need
	// them just ignore them.
	c.operandA = bus.Read(c.regs.PC.Get())
	c.operandB = bus.Read(c.regs.PC.Get() + 1)

	var instruction Opcode
	if opcode == cbPrefix {
		instruction = opcodesCB[c.operandA]
		c.regs.PC.incr()
		if instruction == nil {
			return c.invalid(opcodePC, c.operandA, true)
		}
	} else {
		instruction = opcodes[opcode]
		if instruction == nil {
			return c.invalid(opcodePC, opcode, false)
		}
	}

	enableInterrupts := c.eiPending

	c.bus = bus
	cycles := instruction(c)
	c.bus = nil

	if enableInterrupts && c.eiPending {
		c.eiPending = false
		c.ime = true
	}

	c.cycles += uint64(cycles)
	return cycles
}

func (c *CPU) invalid(pc uint16, opcode uint8, prefixed bool) int {
	c.err = &InvalidOpcodeError{PC: pc, Opcode: opcode, Prefixed: prefixed}
	slog.Error("Opcode invalid", "opcode", fmt.Sprintf("0x%02X", opcode), "prefixed", prefixed, "pc", fmt.Sprintf("0x%04X", pc))
	return InvalidOpcode
}

// Err returns the reason for the last InvalidOpcode, or nil if the last Step
// succeeded.
func (c *CPU) Err() error {
	if c.err == nil {
		return nil
	}
	return c.err
}

// imm8 consumes the first prefetched operand byte.
func (c *CPU) imm8() uint8 {
	c.regs.PC.incr()
	return c.operandA
}

// imm16 consumes both prefetched operand bytes, little endian.
func (c *CPU) imm16() uint16 {
	c.regs.PC.Set(c.regs.PC.Get() + 2)
	return bit.Combine(c.operandB, c.operandA)
}

// read8 returns the value of an 8 bit operand, going through the bus for (HL).
func (c *CPU) read8(r Register8) uint8 {
	if r == RegHLIndirect {
		return c.bus.Read(c.regs.HL.Get())
	}
	return *c.reg8(r)
}

func (c *CPU) write8(r Register8, value uint8) {
	if r == RegHLIndirect {
		c.bus.Write(c.regs.HL.Get(), value)
		return
	}
	*c.reg8(r) = value
}

// Resume clears the HALT and STOP latches. The interrupt controller, which
// lives outside the CPU, calls it when a pending interrupt wakes the core.
func (c *CPU) Resume() {
	c.halted = false
	c.stopped = false
}

// ServiceInterrupt dispatches to an interrupt vector: IME is cleared, PC is
// pushed and execution continues at vector. It costs 5 M-cycles.
func (c *CPU) ServiceInterrupt(bus Bus, vector uint16) int {
	c.Resume()
	c.ime = false
	c.eiPending = false

	c.bus = bus
	c.push(c.regs.PC.Get())
	c.bus = nil

	c.regs.PC.Set(vector)
	c.cycles += 5
	return 5
}

func (c *CPU) IME() bool       { return c.ime }
func (c *CPU) Halted() bool    { return c.halted }
func (c *CPU) Stopped() bool   { return c.stopped }
func (c *CPU) Cycles() uint64  { return c.cycles }
func (c *CPU) SetIME(ime bool) { c.ime = ime }
