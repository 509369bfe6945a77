package cpu

// Flag is one of the 4 flags packed in the high nibble of F.
type Flag uint8

const (
	ZeroFlag      Flag = 0x80
	SubFlag       Flag = 0x40
	HalfCarryFlag Flag = 0x20
	CarryFlag     Flag = 0x10
)

// SetFlag sets or clears a single flag.
func (c *CPU) SetFlag(flag Flag, value bool) {
	if value {
		c.regs.AF.lo |= uint8(flag)
		return
	}
	c.regs.AF.lo &^= uint8(flag)
}

// GetFlag reports whether a flag is set.
func (c *CPU) GetFlag(flag Flag) bool {
	return c.regs.AF.lo&uint8(flag) != 0
}

// SetZNHC writes all four flags at once.
func (c *CPU) SetZNHC(z, n, h, carry bool) {
	c.SetFlag(ZeroFlag, z)
	c.SetFlag(SubFlag, n)
	c.SetFlag(HalfCarryFlag, h)
	c.SetFlag(CarryFlag, carry)
}

// carry returns the carry flag as 0 or 1, for the rotate and with-carry ops.
func (c *CPU) carry() uint8 {
	if c.GetFlag(CarryFlag) {
		return 1
	}
	return 0
}

// FlagString renders F as "ZNHC" with '-' for cleared flags.
func (c *CPU) FlagString() string {
	return FormatFlags(c.regs.AF.lo)
}

// FormatFlags renders a flag byte as "ZNHC" with '-' for cleared flags.
func FormatFlags(f uint8) string {
	out := []byte("----")
	for i, flag := range []Flag{ZeroFlag, SubFlag, HalfCarryFlag, CarryFlag} {
		if f&uint8(flag) != 0 {
			out[i] = "ZNHC"[i]
		}
	}
	return string(out)
}
