package cpu

import "github.com/valerio/go-jeebie-cpu/jeebie/bit"

// The accumulator rotates (RLCA, RLA, RRCA, RRA) always clear Z. Their CB
// counterparts set Z from the result.

func (c *CPU) rlca() {
	a := c.regs.AF.hi
	out := a >> 7
	c.regs.AF.hi = a<<1 | out
	c.SetZNHC(false, false, false, out == 1)
}

func (c *CPU) rla() {
	a := c.regs.AF.hi
	c.regs.AF.hi = a<<1 | c.carry()
	c.SetZNHC(false, false, false, a&0x80 != 0)
}

func (c *CPU) rrca() {
	a := c.regs.AF.hi
	out := a & 1
	c.regs.AF.hi = a>>1 | out<<7
	c.SetZNHC(false, false, false, out == 1)
}

func (c *CPU) rra() {
	a := c.regs.AF.hi
	c.regs.AF.hi = a>>1 | c.carry()<<7
	c.SetZNHC(false, false, false, a&1 == 1)
}

func (c *CPU) rlc(value uint8) uint8 {
	r := value<<1 | value>>7
	c.SetZNHC(r == 0, false, false, value&0x80 != 0)
	return r
}

func (c *CPU) rrc(value uint8) uint8 {
	r := value>>1 | value<<7
	c.SetZNHC(r == 0, false, false, value&1 == 1)
	return r
}

func (c *CPU) rl(value uint8) uint8 {
	r := value<<1 | c.carry()
	c.SetZNHC(r == 0, false, false, value&0x80 != 0)
	return r
}

func (c *CPU) rr(value uint8) uint8 {
	r := value>>1 | c.carry()<<7
	c.SetZNHC(r == 0, false, false, value&1 == 1)
	return r
}

func (c *CPU) sla(value uint8) uint8 {
	r := value << 1
	c.SetZNHC(r == 0, false, false, value&0x80 != 0)
	return r
}

// sra keeps bit 7.
func (c *CPU) sra(value uint8) uint8 {
	r := value>>1 | value&0x80
	c.SetZNHC(r == 0, false, false, value&1 == 1)
	return r
}

func (c *CPU) swap(value uint8) uint8 {
	r := value<<4 | value>>4
	c.SetZNHC(r == 0, false, false, false)
	return r
}

func (c *CPU) srl(value uint8) uint8 {
	r := value >> 1
	c.SetZNHC(r == 0, false, false, value&1 == 1)
	return r
}

// bitTest sets Z when the bit is clear. C is untouched.
func (c *CPU) bitTest(index, value uint8) {
	c.SetFlag(ZeroFlag, !bit.IsSet(index, value))
	c.SetFlag(SubFlag, false)
	c.SetFlag(HalfCarryFlag, true)
}

// shiftOps are the CB 0x00-0x3F operations in encoding order.
var shiftOps = [8]struct {
	name string
	op   func(c *CPU, value uint8) uint8
}{
	{"RLC", (*CPU).rlc},
	{"RRC", (*CPU).rrc},
	{"RL", (*CPU).rl},
	{"RR", (*CPU).rr},
	{"SLA", (*CPU).sla},
	{"SRA", (*CPU).sra},
	{"SWAP", (*CPU).swap},
	{"SRL", (*CPU).srl},
}
