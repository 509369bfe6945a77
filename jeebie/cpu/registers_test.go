package cpu

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestRegisterPair(t *testing.T) {
	r := newRegisterPair(0xBEEF)

	assert.Equal(t, uint16(0xBEEF), r.Get())
	assert.Equal(t, uint8(0xBE), r.High())
	assert.Equal(t, uint8(0xEF), r.Low())

	r.SetLow(0x01)
	assert.Equal(t, uint16(0xBE01), r.Get())
	r.SetHigh(0x20)
	assert.Equal(t, uint16(0x2001), r.Get())

	r.Set(0xFFFF)
	r.incr()
	assert.Equal(t, uint16(0x0000), r.Get())
	r.decr()
	assert.Equal(t, uint16(0xFFFF), r.Get())
}

func TestRegisters_AFLowNibbleIsZero(t *testing.T) {
	c := New()

	c.SetAF(0x12FF)
	assert.Equal(t, uint16(0x12F0), c.AF())
	assert.Equal(t, uint8(0x12), c.A())
	assert.Equal(t, uint8(0xF0), c.F())
}

func TestRegisters_Reg8Mapping(t *testing.T) {
	c := New()
	c.SetBC(0x0102)
	c.SetDE(0x0304)
	c.SetHL(0x0506)
	c.SetAF(0x0700)

	testCases := []struct {
		reg      Register8
		expected uint8
	}{
		{RegB, 0x01},
		{RegC, 0x02},
		{RegD, 0x03},
		{RegE, 0x04},
		{RegH, 0x05},
		{RegL, 0x06},
		{RegA, 0x07},
	}
	for _, tC := range testCases {
		t.Run(tC.reg.String(), func(t *testing.T) {
			assert.Equal(t, tC.expected, *c.reg8(tC.reg))
		})
	}

	assert.Panics(t, func() { c.reg8(RegHLIndirect) })
	assert.Equal(t, "(HL)", RegHLIndirect.String())
}

func TestResetPostBoot(t *testing.T) {
	c := New()
	assert.Equal(t, uint16(0x0000), c.PC())

	c.ResetPostBoot()

	assert.Equal(t, uint16(0x01B0), c.AF())
	assert.Equal(t, uint16(0x0013), c.BC())
	assert.Equal(t, uint16(0x00D8), c.DE())
	assert.Equal(t, uint16(0x014D), c.HL())
	assert.Equal(t, uint16(0xFFFE), c.SP())
	assert.Equal(t, uint16(0x0100), c.PC())
}

func TestFlags(t *testing.T) {
	c := New()

	c.SetFlag(ZeroFlag, true)
	c.SetFlag(CarryFlag, true)
	assert.True(t, c.GetFlag(ZeroFlag))
	assert.False(t, c.GetFlag(SubFlag))
	assert.Equal(t, uint8(0x90), c.F())
	assert.Equal(t, "Z--C", c.FlagString())
	assert.Equal(t, uint8(1), c.carry())

	c.SetZNHC(false, true, true, false)
	assert.Equal(t, uint8(0x60), c.F())
	assert.Equal(t, "-NH-", FormatFlags(c.F()))
	assert.Equal(t, uint8(0), c.carry())
}
