package cpu

import "github.com/valerio/go-jeebie-cpu/jeebie/bit"

// RegisterPair is a 16 bit register stored as its two 8 bit halves.
// The 16 bit value is composed on read and split on write, so the byte order
// is fixed here rather than depending on how the platform lays out memory.
type RegisterPair struct {
	hi uint8
	lo uint8
}

func newRegisterPair(value uint16) RegisterPair {
	var r RegisterPair
	r.Set(value)
	return r
}

// Get returns the composed 16 bit value.
func (r RegisterPair) Get() uint16 {
	return bit.Combine(r.hi, r.lo)
}

// Set splits value into the two halves.
func (r *RegisterPair) Set(value uint16) {
	r.hi, r.lo = bit.Split(value)
}

// High returns the most significant half (B in BC, A in AF).
func (r RegisterPair) High() uint8 { return r.hi }

// Low returns the least significant half (C in BC, F in AF).
func (r RegisterPair) Low() uint8 { return r.lo }

func (r *RegisterPair) SetHigh(value uint8) { r.hi = value }
func (r *RegisterPair) SetLow(value uint8)  { r.lo = value }

func (r *RegisterPair) incr() { r.Set(r.Get() + 1) }
func (r *RegisterPair) decr() { r.Set(r.Get() - 1) }

// Registers is the full register file. For AF the high half is the
// accumulator and the low half the flag register, whose low nibble is
// always zero.
type Registers struct {
	AF RegisterPair
	BC RegisterPair
	DE RegisterPair
	HL RegisterPair
	SP RegisterPair
	PC RegisterPair
}

// Register8 names one of the 8 bit registers in the order the opcode encoding
// uses for its 3 bit register fields: B, C, D, E, H, L, (HL), A.
type Register8 uint8

const (
	RegB Register8 = iota
	RegC
	RegD
	RegE
	RegH
	RegL
	RegHLIndirect
	RegA
)

var register8Names = [...]string{"B", "C", "D", "E", "H", "L", "(HL)", "A"}

func (r Register8) String() string {
	return register8Names[r&7]
}

// reg8 returns a pointer to the storage of an 8 bit register, so handlers can
// mutate it in place. (HL) is not a register and has no storage here.
func (c *CPU) reg8(r Register8) *uint8 {
	switch r {
	case RegB:
		return &c.regs.BC.hi
	case RegC:
		return &c.regs.BC.lo
	case RegD:
		return &c.regs.DE.hi
	case RegE:
		return &c.regs.DE.lo
	case RegH:
		return &c.regs.HL.hi
	case RegL:
		return &c.regs.HL.lo
	case RegA:
		return &c.regs.AF.hi
	}
	panic("cpu: (HL) has no register storage")
}

func (c *CPU) setAF(value uint16) {
	c.regs.AF.Set(value & 0xFFF0)
}

// Register accessors, mostly used by tools and tests.

func (c *CPU) A() uint8 { return c.regs.AF.hi }
func (c *CPU) F() uint8 { return c.regs.AF.lo }
func (c *CPU) B() uint8 { return c.regs.BC.hi }
func (c *CPU) C() uint8 { return c.regs.BC.lo }
func (c *CPU) D() uint8 { return c.regs.DE.hi }
func (c *CPU) E() uint8 { return c.regs.DE.lo }
func (c *CPU) H() uint8 { return c.regs.HL.hi }
func (c *CPU) L() uint8 { return c.regs.HL.lo }

func (c *CPU) AF() uint16 { return c.regs.AF.Get() }
func (c *CPU) BC() uint16 { return c.regs.BC.Get() }
func (c *CPU) DE() uint16 { return c.regs.DE.Get() }
func (c *CPU) HL() uint16 { return c.regs.HL.Get() }
func (c *CPU) SP() uint16 { return c.regs.SP.Get() }
func (c *CPU) PC() uint16 { return c.regs.PC.Get() }

func (c *CPU) SetAF(value uint16) { c.setAF(value) }
func (c *CPU) SetBC(value uint16) { c.regs.BC.Set(value) }
func (c *CPU) SetDE(value uint16) { c.regs.DE.Set(value) }
func (c *CPU) SetHL(value uint16) { c.regs.HL.Set(value) }
func (c *CPU) SetSP(value uint16) { c.regs.SP.Set(value) }
func (c *CPU) SetPC(value uint16) { c.regs.PC.Set(value) }

// Registers returns a copy of the register file.
func (c *CPU) Registers() Registers {
	return c.regs
}
