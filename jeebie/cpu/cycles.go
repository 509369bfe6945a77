package cpu

// baseCycles is the M-cycle cost of every unprefixed opcode. For conditional
// instructions it is the cost when the condition fails. 0 marks the 0xCB
// prefix and the opcodes with no handler.
var baseCycles = [256]uint8{
	//x0 x1 x2 x3 x4 x5 x6 x7 x8 x9 xA xB xC xD xE xF
	1, 3, 2, 2, 1, 1, 2, 1, 5, 2, 2, 2, 1, 1, 2, 1, // 0x
	1, 3, 2, 2, 1, 1, 2, 1, 3, 2, 2, 2, 1, 1, 2, 1, // 1x
	2, 3, 2, 2, 1, 1, 2, 1, 2, 2, 2, 2, 1, 1, 2, 1, // 2x
	2, 3, 2, 2, 3, 3, 3, 1, 2, 2, 2, 2, 1, 1, 2, 1, // 3x
	1, 1, 1, 1, 1, 1, 2, 1, 1, 1, 1, 1, 1, 1, 2, 1, // 4x
	1, 1, 1, 1, 1, 1, 2, 1, 1, 1, 1, 1, 1, 1, 2, 1, // 5x
	1, 1, 1, 1, 1, 1, 2, 1, 1, 1, 1, 1, 1, 1, 2, 1, // 6x
	2, 2, 2, 2, 2, 2, 1, 2, 1, 1, 1, 1, 1, 1, 2, 1, // 7x
	1, 1, 1, 1, 1, 1, 2, 1, 1, 1, 1, 1, 1, 1, 2, 1, // 8x
	1, 1, 1, 1, 1, 1, 2, 1, 1, 1, 1, 1, 1, 1, 2, 1, // 9x
	1, 1, 1, 1, 1, 1, 2, 1, 1, 1, 1, 1, 1, 1, 2, 1, // Ax
	1, 1, 1, 1, 1, 1, 2, 1, 1, 1, 1, 1, 1, 1, 2, 1, // Bx
	2, 3, 3, 4, 3, 4, 2, 4, 2, 4, 3, 0, 3, 6, 2, 4, // Cx
	2, 3, 3, 0, 3, 4, 2, 4, 2, 4, 3, 0, 3, 0, 2, 4, // Dx
	3, 3, 2, 0, 0, 4, 2, 4, 4, 1, 4, 0, 0, 0, 2, 4, // Ex
	3, 3, 2, 1, 0, 4, 2, 4, 3, 2, 4, 1, 0, 0, 2, 4, // Fx
}

// takenCycles is the cost of conditional instructions when the branch is taken.
var takenCycles = map[uint8]uint8{
	0x20: 3, 0x28: 3, 0x30: 3, 0x38: 3, // JR cc
	0xC0: 5, 0xC8: 5, 0xD0: 5, 0xD8: 5, // RET cc
	0xC2: 4, 0xCA: 4, 0xD2: 4, 0xDA: 4, // JP cc
	0xC4: 6, 0xCC: 6, 0xD4: 6, 0xDC: 6, // CALL cc
}

// BaseCycles returns the documented cost of an unprefixed opcode, the
// untaken cost for conditional ones.
func BaseCycles(opcode uint8) int {
	return int(baseCycles[opcode])
}

// TakenCycles returns the cost of a conditional opcode when its condition
// holds. For every other opcode it is the same as BaseCycles.
func TakenCycles(opcode uint8) int {
	if taken, ok := takenCycles[opcode]; ok {
		return int(taken)
	}
	return BaseCycles(opcode)
}

// CBCycles returns the cost of a 0xCB prefixed instruction, prefix included.
func CBCycles(opcode uint8) int {
	if opcode&7 != uint8(RegHLIndirect) {
		return 2
	}
	if opcode>>6 == 1 {
		return 3
	}
	return 4
}

// IsConditional reports whether an unprefixed opcode has a taken and an
// untaken cost.
func IsConditional(opcode uint8) bool {
	_, ok := takenCycles[opcode]
	return ok
}
