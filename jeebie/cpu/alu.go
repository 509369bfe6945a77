package cpu

// Half carry and carry are derived from the bits where the sum differs from
// the plain XOR of its operands: a bit that differs received a carry.

// add8 returns a+b and sets every flag.
func (c *CPU) add8(a, b uint8) uint8 {
	result := uint16(a) + uint16(b)
	carryBits := result ^ uint16(a) ^ uint16(b)
	r := uint8(result)

	c.SetZNHC(r == 0, false, carryBits&0x10 != 0, carryBits&0x100 != 0)
	return r
}

// adc8 returns a+b+carry and sets every flag.
func (c *CPU) adc8(a, b uint8) uint8 {
	result := uint16(a) + uint16(b) + uint16(c.carry())
	carryBits := result ^ uint16(a) ^ uint16(b)
	r := uint8(result)

	c.SetZNHC(r == 0, false, carryBits&0x10 != 0, carryBits&0x100 != 0)
	return r
}

// sub8 returns a-b. H is set on a borrow from bit 4 and C on a full borrow.
func (c *CPU) sub8(a, b uint8) uint8 {
	r := a - b
	carryBits := r ^ a ^ ^b

	c.SetZNHC(r == 0, true, carryBits&0x10 == 0, b > a)
	return r
}

// sbc8 returns a-b-carry and sets every flag.
func (c *CPU) sbc8(a, b uint8) uint8 {
	result := uint16(a) - uint16(b) - uint16(c.carry())
	carryBits := result ^ uint16(a) ^ uint16(b)
	r := uint8(result)

	c.SetZNHC(r == 0, true, carryBits&0x10 != 0, carryBits&0x100 != 0)
	return r
}

// cp8 compares a with b, setting the flags of a-b and discarding the result.
func (c *CPU) cp8(a, b uint8) {
	c.sub8(a, b)
}

func (c *CPU) and8(a, b uint8) uint8 {
	r := a & b
	c.SetZNHC(r == 0, false, true, false)
	return r
}

func (c *CPU) xor8(a, b uint8) uint8 {
	r := a ^ b
	c.SetZNHC(r == 0, false, false, false)
	return r
}

func (c *CPU) or8(a, b uint8) uint8 {
	r := a | b
	c.SetZNHC(r == 0, false, false, false)
	return r
}

// inc8 adds 1 to value. The carry flag is left untouched.
func (c *CPU) inc8(value uint8) uint8 {
	r := value + 1
	carryBits := r ^ value ^ 1

	c.SetFlag(ZeroFlag, r == 0)
	c.SetFlag(SubFlag, false)
	c.SetFlag(HalfCarryFlag, carryBits&0x10 != 0)
	return r
}

// dec8 subtracts 1 from value. The carry flag is left untouched.
func (c *CPU) dec8(value uint8) uint8 {
	r := value - 1
	carryBits := r ^ value ^ 0xFE

	c.SetFlag(ZeroFlag, r == 0)
	c.SetFlag(SubFlag, true)
	c.SetFlag(HalfCarryFlag, carryBits&0x10 == 0)
	return r
}

// addHL adds value to HL. H comes from bit 11 and C from bit 15, Z is kept.
func (c *CPU) addHL(value uint16) {
	hl := c.regs.HL.Get()
	result := uint32(hl) + uint32(value)
	carryBits := result ^ uint32(hl) ^ uint32(value)

	c.SetFlag(SubFlag, false)
	c.SetFlag(HalfCarryFlag, carryBits&0x1000 != 0)
	c.SetFlag(CarryFlag, carryBits&0x10000 != 0)
	c.regs.HL.Set(uint16(result))
}

// addSPSigned returns SP+offset for ADD SP,e and LD HL,SP+e. The flags come
// from the unsigned low byte addition; Z and N are cleared.
func (c *CPU) addSPSigned(offset uint8) uint16 {
	sp := c.regs.SP.Get()
	value := uint16(int16(int8(offset)))
	result := sp + value
	carryBits := sp ^ value ^ result

	c.SetZNHC(false, false, carryBits&0x10 != 0, carryBits&0x100 != 0)
	return result
}

// daa adjusts A to packed BCD after an addition or subtraction.
func (c *CPU) daa() {
	a := c.regs.AF.hi
	subtract := c.GetFlag(SubFlag)

	var adjust uint8
	carry := false
	if c.GetFlag(HalfCarryFlag) || (!subtract && a&0x0F > 0x09) {
		adjust |= 0x06
	}
	if c.GetFlag(CarryFlag) || (!subtract && a > 0x99) {
		adjust |= 0x60
		carry = true
	}

	if subtract {
		a -= adjust
	} else {
		a += adjust
	}

	c.regs.AF.hi = a
	c.SetFlag(ZeroFlag, a == 0)
	c.SetFlag(HalfCarryFlag, false)
	c.SetFlag(CarryFlag, carry)
}

func (c *CPU) cpl() {
	c.regs.AF.hi = ^c.regs.AF.hi
	c.SetFlag(SubFlag, true)
	c.SetFlag(HalfCarryFlag, true)
}

func (c *CPU) scf() {
	c.SetFlag(SubFlag, false)
	c.SetFlag(HalfCarryFlag, false)
	c.SetFlag(CarryFlag, true)
}

func (c *CPU) ccf() {
	c.SetFlag(SubFlag, false)
	c.SetFlag(HalfCarryFlag, false)
	c.SetFlag(CarryFlag, !c.GetFlag(CarryFlag))
}

// aluOps are the 8 accumulator operations in encoding order, used by the
// 0x80-0xBF block and the immediate forms at 0xC6+8*n.
var aluOps = [8]struct {
	name string
	op   func(c *CPU, value uint8)
}{
	{"ADD", func(c *CPU, v uint8) { c.regs.AF.hi = c.add8(c.regs.AF.hi, v) }},
	{"ADC", func(c *CPU, v uint8) { c.regs.AF.hi = c.adc8(c.regs.AF.hi, v) }},
	{"SUB", func(c *CPU, v uint8) { c.regs.AF.hi = c.sub8(c.regs.AF.hi, v) }},
	{"SBC", func(c *CPU, v uint8) { c.regs.AF.hi = c.sbc8(c.regs.AF.hi, v) }},
	{"AND", func(c *CPU, v uint8) { c.regs.AF.hi = c.and8(c.regs.AF.hi, v) }},
	{"XOR", func(c *CPU, v uint8) { c.regs.AF.hi = c.xor8(c.regs.AF.hi, v) }},
	{"OR", func(c *CPU, v uint8) { c.regs.AF.hi = c.or8(c.regs.AF.hi, v) }},
	{"CP", func(c *CPU, v uint8) { c.cp8(c.regs.AF.hi, v) }},
}
