package disasm

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

type flatMemory [0x10000]uint8

func (m *flatMemory) Read(address uint16) uint8 { return m[address] }

func load(at uint16, program ...uint8) *flatMemory {
	var m flatMemory
	copy(m[at:], program)
	return &m
}

func TestAt(t *testing.T) {
	testCases := []struct {
		desc     string
		program  []uint8
		expected Line
	}{
		{desc: "no operand", program: []uint8{0x00}, expected: Line{Address: 0x100, Text: "NOP", Length: 1}},
		{desc: "u16", program: []uint8{0xC3, 0x50, 0x01}, expected: Line{Address: 0x100, Text: "JP $0150", Length: 3}},
		{desc: "u8", program: []uint8{0x3E, 0x42}, expected: Line{Address: 0x100, Text: "LD A,$42", Length: 2}},
		{desc: "LDH", program: []uint8{0xE0, 0x50}, expected: Line{Address: 0x100, Text: "LDH ($50),A", Length: 2}},
		{desc: "JR target", program: []uint8{0x20, 0xFE}, expected: Line{Address: 0x100, Text: "JR NZ,$0100", Length: 2}},
		{desc: "JR forward", program: []uint8{0x18, 0x10}, expected: Line{Address: 0x100, Text: "JR $0112", Length: 2}},
		{desc: "SP offset", program: []uint8{0xF8, 0xFE}, expected: Line{Address: 0x100, Text: "LD HL,SP-2", Length: 2}},
		{desc: "ADD SP", program: []uint8{0xE8, 0x04}, expected: Line{Address: 0x100, Text: "ADD SP,+4", Length: 2}},
		{desc: "prefixed", program: []uint8{0xCB, 0x7C}, expected: Line{Address: 0x100, Text: "BIT 7,H", Length: 2}},
		{desc: "STOP", program: []uint8{0x10, 0x00}, expected: Line{Address: 0x100, Text: "STOP", Length: 2}},
		{desc: "invalid", program: []uint8{0xD3}, expected: Line{Address: 0x100, Text: "DB $D3", Length: 1}},
	}
	for _, tC := range testCases {
		t.Run(tC.desc, func(t *testing.T) {
			assert.Equal(t, tC.expected, At(load(0x100, tC.program...), 0x100))
		})
	}
}

func TestRange(t *testing.T) {
	m := load(0x0000, 0x31, 0xFE, 0xFF, 0xAF, 0x21, 0xFF, 0x9F, 0x32)

	lines := Range(m, 0x0000, 4)

	assert.Equal(t, []Line{
		{Address: 0x0000, Text: "LD SP,$FFFE", Length: 3},
		{Address: 0x0003, Text: "XOR A,A", Length: 1},
		{Address: 0x0004, Text: "LD HL,$9FFF", Length: 3},
		{Address: 0x0007, Text: "LD (HL-),A", Length: 1},
	}, lines)
}

func TestAround(t *testing.T) {
	m := load(0x0000, 0x31, 0xFE, 0xFF, 0xAF, 0x21, 0xFF, 0x9F, 0x32, 0xCB, 0x7C, 0x20, 0xFB)

	lines := Around(m, 0x0007, 2, 2)

	var addresses []uint16
	for _, l := range lines {
		addresses = append(addresses, l.Address)
	}
	assert.Equal(t, []uint16{0x0003, 0x0004, 0x0007, 0x0008, 0x000A}, addresses)
	assert.Equal(t, "JR NZ,$0007", lines[4].Text)
}

func TestAround_AtStart(t *testing.T) {
	m := load(0x0000, 0x00, 0x00, 0x00)

	lines := Around(m, 0x0000, 3, 1)

	assert.Len(t, lines, 2)
	assert.Equal(t, uint16(0x0000), lines[0].Address)
}

func TestFormat(t *testing.T) {
	line := Line{Address: 0x0150, Text: "NOP", Length: 1}

	assert.Equal(t, ">0x0150: NOP", Format(line, true))
	assert.Equal(t, " 0x0150: NOP", Format(line, false))
}
