package cpu

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestStack_PushPopRoundTrip(t *testing.T) {
	c, bus := newTestCPU()
	c.bus = bus
	c.SetSP(0xFFFE)

	for v := 0; v <= 0xFFFF; v++ {
		c.push(uint16(v))
		require.Equal(t, uint16(0xFFFC), c.SP())
		require.Equal(t, uint16(v), c.pop())
		require.Equal(t, uint16(0xFFFE), c.SP())
	}
}

func TestStack_Layout(t *testing.T) {
	c, bus := newTestCPU(0xC5, 0xD1) // PUSH BC; POP DE
	c.SetSP(0xD000)
	c.SetBC(0xBEEF)

	assert.Equal(t, 4, c.Step(bus))
	assert.Equal(t, uint16(0xCFFE), c.SP())
	assert.Equal(t, uint8(0xBE), bus.mem[0xCFFF], "high byte at the higher address")
	assert.Equal(t, uint8(0xEF), bus.mem[0xCFFE])

	assert.Equal(t, 3, c.Step(bus))
	assert.Equal(t, uint16(0xBEEF), c.DE())
	assert.Equal(t, uint16(0xD000), c.SP())
}

func TestStack_PopAFMasksFlags(t *testing.T) {
	c, bus := newTestCPU(0xF1) // POP AF
	c.SetSP(0xD000)
	bus.mem[0xD000] = 0xFF
	bus.mem[0xD001] = 0x12

	c.Step(bus)
	assert.Equal(t, uint16(0x12F0), c.AF())
}

func TestJump_JRConditional(t *testing.T) {
	testCases := []struct {
		desc       string
		program    []uint8
		zero       bool
		expectedPC uint16
		cycles     int
	}{
		{desc: "NZ taken", program: []uint8{0x20, 0x05}, zero: false, expectedPC: 0x0007, cycles: 3},
		{desc: "NZ not taken", program: []uint8{0x20, 0x05}, zero: true, expectedPC: 0x0002, cycles: 2},
		{desc: "NZ backwards", program: []uint8{0x20, 0xFE}, zero: false, expectedPC: 0x0000, cycles: 3},
		{desc: "Z taken", program: []uint8{0x28, 0x10}, zero: true, expectedPC: 0x0012, cycles: 3},
		{desc: "unconditional", program: []uint8{0x18, 0x80}, zero: true, expectedPC: 0xFF82, cycles: 3},
	}
	for _, tC := range testCases {
		t.Run(tC.desc, func(t *testing.T) {
			c, bus := newTestCPU(tC.program...)
			c.SetFlag(ZeroFlag, tC.zero)

			assert.Equal(t, tC.cycles, c.Step(bus))
			assert.Equal(t, tC.expectedPC, c.PC())
		})
	}
}

func TestJump_JPConditional(t *testing.T) {
	c, bus := newTestCPU(0xDA, 0x00, 0x20) // JP C,$2000
	assert.Equal(t, 3, c.Step(bus))
	assert.Equal(t, uint16(0x0003), c.PC())

	c.SetPC(0x0000)
	c.SetFlag(CarryFlag, true)
	assert.Equal(t, 4, c.Step(bus))
	assert.Equal(t, uint16(0x2000), c.PC())
}

func TestJump_JPHL(t *testing.T) {
	c, bus := newTestCPU(0xE9)
	c.SetHL(0x4321)

	assert.Equal(t, 1, c.Step(bus))
	assert.Equal(t, uint16(0x4321), c.PC())
}

func TestJump_CallAndReturn(t *testing.T) {
	c, bus := newTestCPU(0xCD, 0x10, 0x00) // CALL $0010
	bus.mem[0x0010] = 0xC9                  // RET
	c.SetSP(0xFFFE)

	assert.Equal(t, 6, c.Step(bus))
	assert.Equal(t, uint16(0x0010), c.PC())
	assert.Equal(t, uint16(0xFFFC), c.SP())
	assert.Equal(t, uint8(0x03), bus.mem[0xFFFC])
	assert.Equal(t, uint8(0x00), bus.mem[0xFFFD])

	assert.Equal(t, 4, c.Step(bus))
	assert.Equal(t, uint16(0x0003), c.PC())
	assert.Equal(t, uint16(0xFFFE), c.SP())
}

func TestJump_ConditionalCallAndReturn(t *testing.T) {
	c, bus := newTestCPU(0xC4, 0x10, 0x00, 0xC4, 0x10, 0x00) // CALL NZ,$0010 twice
	bus.mem[0x0010] = 0xC8                                    // RET Z
	bus.mem[0x0011] = 0xC9                                    // RET
	c.SetSP(0xFFFE)
	c.SetFlag(ZeroFlag, true)

	assert.Equal(t, 3, c.Step(bus), "CALL NZ not taken")
	assert.Equal(t, uint16(0x0003), c.PC())

	c.SetFlag(ZeroFlag, false)
	assert.Equal(t, 6, c.Step(bus), "CALL NZ taken")
	assert.Equal(t, 2, c.Step(bus), "RET Z not taken")
	assert.Equal(t, uint16(0x0011), c.PC())
	assert.Equal(t, 4, c.Step(bus))
	assert.Equal(t, uint16(0x0006), c.PC())
}

func TestJump_RST(t *testing.T) {
	c, bus := newTestCPU(0x00, 0xEF) // NOP; RST $28
	c.SetSP(0xD000)

	stepN(c, bus, 2)
	assert.Equal(t, uint16(0x0028), c.PC())
	assert.Equal(t, uint8(0x02), bus.mem[0xCFFE])
}

func TestRotate_RLCAIsIdentityAfterEight(t *testing.T) {
	for a := 0; a < 256; a++ {
		c, bus := newTestCPU(0x07, 0x07, 0x07, 0x07, 0x07, 0x07, 0x07, 0x07)
		c.regs.AF.hi = uint8(a)

		assert.Equal(t, 8, stepN(c, bus, 8))
		require.Equal(t, uint8(a), c.A())
		require.False(t, c.GetFlag(ZeroFlag))
	}
}

func TestRotate_Accumulator(t *testing.T) {
	testCases := []struct {
		desc      string
		opcode    uint8
		a         uint8
		carry     bool
		expectedA uint8
		flags     uint8
	}{
		{desc: "RLCA", opcode: 0x07, a: 0x85, expectedA: 0x0B, flags: 0x10},
		{desc: "RLCA zero keeps Z clear", opcode: 0x07, a: 0x00, expectedA: 0x00, flags: 0x00},
		{desc: "RLA", opcode: 0x17, a: 0x95, carry: true, expectedA: 0x2B, flags: 0x10},
		{desc: "RLA to zero", opcode: 0x17, a: 0x80, expectedA: 0x00, flags: 0x10},
		{desc: "RRCA", opcode: 0x0F, a: 0x3B, expectedA: 0x9D, flags: 0x10},
		{desc: "RRA", opcode: 0x1F, a: 0x81, expectedA: 0x40, flags: 0x10},
		{desc: "RRA carry in", opcode: 0x1F, a: 0x00, carry: true, expectedA: 0x80, flags: 0x00},
	}
	for _, tC := range testCases {
		t.Run(tC.desc, func(t *testing.T) {
			c, bus := newTestCPU(tC.opcode)
			c.regs.AF.hi = tC.a
			c.SetFlag(ZeroFlag, true)
			c.SetFlag(CarryFlag, tC.carry)

			assert.Equal(t, 1, c.Step(bus))
			assert.Equal(t, tC.expectedA, c.A())
			assert.Equal(t, tC.flags, c.F())
		})
	}
}

func TestRotate_Prefixed(t *testing.T) {
	testCases := []struct {
		desc     string
		opcode   uint8
		value    uint8
		carry    bool
		expected uint8
		flags    uint8
	}{
		{desc: "RLC B", opcode: 0x00, value: 0x80, expected: 0x01, flags: 0x10},
		{desc: "RLC B zero", opcode: 0x00, value: 0x00, expected: 0x00, flags: 0x80},
		{desc: "RRC B", opcode: 0x08, value: 0x01, expected: 0x80, flags: 0x10},
		{desc: "RL B", opcode: 0x10, value: 0x80, expected: 0x00, flags: 0x90},
		{desc: "RR B", opcode: 0x18, value: 0x01, carry: true, expected: 0x80, flags: 0x10},
		{desc: "SLA B", opcode: 0x20, value: 0xFF, expected: 0xFE, flags: 0x10},
		{desc: "SRA B", opcode: 0x28, value: 0x81, expected: 0xC0, flags: 0x10},
		{desc: "SWAP B", opcode: 0x30, value: 0xF1, carry: true, expected: 0x1F, flags: 0x00},
		{desc: "SRL B", opcode: 0x38, value: 0x01, expected: 0x00, flags: 0x90},
	}
	for _, tC := range testCases {
		t.Run(tC.desc, func(t *testing.T) {
			c, bus := newTestCPU(0xCB, tC.opcode)
			c.regs.BC.hi = tC.value
			c.SetFlag(CarryFlag, tC.carry)

			assert.Equal(t, 2, c.Step(bus))
			assert.Equal(t, tC.expected, c.B())
			assert.Equal(t, tC.flags, c.F())
		})
	}
}

func TestBit(t *testing.T) {
	c, bus := newTestCPU(0xCB, 0x7C, 0xCB, 0x46) // BIT 7,H; BIT 0,(HL)
	c.SetHL(0x8001)
	bus.mem[0x8001] = 0xFE
	c.SetFlag(CarryFlag, true)

	assert.Equal(t, 2, c.Step(bus))
	assert.Equal(t, "--HC", c.FlagString(), "bit set clears Z, C untouched")

	assert.Equal(t, 3, c.Step(bus))
	assert.Equal(t, "Z-HC", c.FlagString())
}

func TestResSet(t *testing.T) {
	c, bus := newTestCPU(0xCB, 0x86, 0xCB, 0xFF) // RES 0,(HL); SET 7,A
	c.SetHL(0xC000)
	bus.mem[0xC000] = 0xFF
	c.SetAF(0x00F0)

	assert.Equal(t, 4, c.Step(bus))
	assert.Equal(t, uint8(0xFE), bus.mem[0xC000])

	assert.Equal(t, 2, c.Step(bus))
	assert.Equal(t, uint8(0x80), c.A())
	assert.Equal(t, uint8(0xF0), c.F(), "flags untouched")
}

func TestLoad_RegisterToRegister(t *testing.T) {
	c, bus := newTestCPU(0x41, 0x70, 0x7E) // LD B,C; LD (HL),B; LD A,(HL)
	c.SetBC(0x0042)
	c.SetHL(0xC123)

	assert.Equal(t, 1, c.Step(bus))
	assert.Equal(t, uint8(0x42), c.B())

	assert.Equal(t, 2, c.Step(bus))
	assert.Equal(t, uint8(0x42), bus.mem[0xC123])

	assert.Equal(t, 2, c.Step(bus))
	assert.Equal(t, uint8(0x42), c.A())
}

func TestLoad_HLIncrementDecrement(t *testing.T) {
	c, bus := newTestCPU(0x22, 0x32, 0x2A, 0x3A) // LD (HL+),A; LD (HL-),A; LD A,(HL+); LD A,(HL-)
	c.SetHL(0xC000)
	c.regs.AF.hi = 0x11

	c.Step(bus)
	assert.Equal(t, uint16(0xC001), c.HL())
	assert.Equal(t, uint8(0x11), bus.mem[0xC000])

	c.Step(bus)
	assert.Equal(t, uint16(0xC000), c.HL())
	assert.Equal(t, uint8(0x11), bus.mem[0xC001])

	bus.mem[0xC000] = 0x22
	c.Step(bus)
	assert.Equal(t, uint8(0x22), c.A())
	assert.Equal(t, uint16(0xC001), c.HL())

	c.Step(bus)
	assert.Equal(t, uint8(0x11), c.A())
	assert.Equal(t, uint16(0xC000), c.HL())
}

func TestLoad_StoreSP(t *testing.T) {
	c, bus := newTestCPU(0x08, 0x00, 0xC0) // LD ($C000),SP
	c.SetSP(0xFFF8)

	assert.Equal(t, 5, c.Step(bus))
	assert.Equal(t, uint16(0x0003), c.PC())
	assert.Equal(t, uint8(0xF8), bus.mem[0xC000])
	assert.Equal(t, uint8(0xFF), bus.mem[0xC001])
}

func TestLoad_HighPage(t *testing.T) {
	c, bus := newTestCPU(0xF0, 0x44, 0x0E, 0x47, 0xE2, 0xF2) // LDH A,($44); LD C,$47; LD (C),A; LD A,(C)
	bus.mem[0xFF44] = 0x90

	assert.Equal(t, 3, c.Step(bus))
	assert.Equal(t, uint8(0x90), c.A())

	stepN(c, bus, 2)
	assert.Equal(t, uint8(0x90), bus.mem[0xFF47])

	bus.mem[0xFF47] = 0xE4
	assert.Equal(t, 2, c.Step(bus))
	assert.Equal(t, uint8(0xE4), c.A())
}

func TestLoad_Absolute(t *testing.T) {
	c, bus := newTestCPU(0xEA, 0x00, 0xD0, 0x3E, 0x00, 0xFA, 0x00, 0xD0) // LD ($D000),A; LD A,$00; LD A,($D000)
	c.regs.AF.hi = 0x77

	stepN(c, bus, 3)
	assert.Equal(t, uint8(0x77), c.A())
	assert.Equal(t, uint8(0x77), bus.mem[0xD000])
	assert.Equal(t, uint16(0x0008), c.PC())
}
