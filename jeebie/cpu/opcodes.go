package cpu

import (
	"fmt"
	"strings"

	"github.com/valerio/go-jeebie-cpu/jeebie/addr"
)

// Opcode executes one decoded instruction and returns its cost in M-cycles.
// Operand bytes are taken from the values prefetched by Step, through imm8
// and imm16, which also move PC past them.
type Opcode func(*CPU) int

// The two dispatch tables. A nil entry is an opcode without a handler, which
// Step reports as InvalidOpcode. The 0xCB entry of the primary table is
// always nil: Step switches to opcodesCB on that byte.
var (
	opcodes   [256]Opcode
	opcodesCB [256]Opcode

	opcodeNames   [256]string
	opcodeNamesCB [256]string

	opcodeLengths [256]uint8
)

func init() {
	defineMisc()
	defineLoads()
	defineALU()
	defineJumps()
	defineCB()

	// STOP is followed by a padding byte it consumes.
	opcodeLengths[0x10] = 2
}

func define(opcode uint8, name string, fn Opcode) {
	if opcodes[opcode] != nil {
		panic(fmt.Sprintf("cpu: opcode 0x%02X defined twice (%s, %s)", opcode, opcodeNames[opcode], name))
	}
	opcodes[opcode] = fn
	opcodeNames[opcode] = name

	switch {
	case strings.Contains(name, "u16"):
		opcodeLengths[opcode] = 3
	case strings.Contains(name, "u8"), strings.Contains(name, "i8"):
		opcodeLengths[opcode] = 2
	default:
		opcodeLengths[opcode] = 1
	}
}

// Mnemonic returns the assembler template of an opcode, with u8, i8 and u16
// standing for its immediate operands. When prefixed is set opcode is looked
// up in the 0xCB table. Opcodes without a handler return "".
func Mnemonic(opcode uint8, prefixed bool) string {
	if prefixed {
		return opcodeNamesCB[opcode]
	}
	return opcodeNames[opcode]
}

// Length returns the size in bytes of an unprefixed instruction, or 0 for
// opcodes without a handler. Every 0xCB instruction is 2 bytes long.
func Length(opcode uint8) int {
	if opcode == cbPrefix {
		return 2
	}
	return int(opcodeLengths[opcode])
}

func defineMisc() {
	//NOP
	//#0x00:
	define(0x00, "NOP", func(c *CPU) int {
		return 1
	})

	//STOP
	//#0x10:
	define(0x10, "STOP", func(c *CPU) int {
		c.imm8()
		c.stopped = true
		return 1
	})

	//HALT
	//#0x76:
	define(0x76, "HALT", func(c *CPU) int {
		c.halted = true
		return 1
	})

	//DI
	//#0xF3:
	define(0xF3, "DI", func(c *CPU) int {
		c.ime = false
		c.eiPending = false
		return 1
	})

	//EI
	//#0xFB:
	define(0xFB, "EI", func(c *CPU) int {
		c.eiPending = true
		return 1
	})

	define(0x07, "RLCA", func(c *CPU) int { c.rlca(); return 1 })
	define(0x0F, "RRCA", func(c *CPU) int { c.rrca(); return 1 })
	define(0x17, "RLA", func(c *CPU) int { c.rla(); return 1 })
	define(0x1F, "RRA", func(c *CPU) int { c.rra(); return 1 })
	define(0x27, "DAA", func(c *CPU) int { c.daa(); return 1 })
	define(0x2F, "CPL", func(c *CPU) int { c.cpl(); return 1 })
	define(0x37, "SCF", func(c *CPU) int { c.scf(); return 1 })
	define(0x3F, "CCF", func(c *CPU) int { c.ccf(); return 1 })
}

func defineLoads() {
	for p := uint8(0); p < 4; p++ {
		rr := pairNames[p]

		//LD rr, nn
		//#0x01, 0x11, 0x21, 0x31:
		define(0x01+p<<4, "LD "+rr+",u16", func(c *CPU) int {
			c.pair(p).Set(c.imm16())
			return 3
		})

		//INC rr
		//#0x03, 0x13, 0x23, 0x33:
		define(0x03+p<<4, "INC "+rr, func(c *CPU) int {
			c.pair(p).incr()
			return 2
		})

		//DEC rr
		//#0x0B, 0x1B, 0x2B, 0x3B:
		define(0x0B+p<<4, "DEC "+rr, func(c *CPU) int {
			c.pair(p).decr()
			return 2
		})

		//ADD HL, rr
		//#0x09, 0x19, 0x29, 0x39:
		define(0x09+p<<4, "ADD HL,"+rr, func(c *CPU) int {
			c.addHL(c.pair(p).Get())
			return 2
		})

		//POP rr
		//#0xC1, 0xD1, 0xE1, 0xF1:
		define(0xC1+p<<4, "POP "+stackPairNames[p], func(c *CPU) int {
			value := c.pop()
			if p == 3 {
				c.setAF(value)
			} else {
				c.stackPair(p).Set(value)
			}
			return 3
		})

		//PUSH rr
		//#0xC5, 0xD5, 0xE5, 0xF5:
		define(0xC5+p<<4, "PUSH "+stackPairNames[p], func(c *CPU) int {
			c.push(c.stackPair(p).Get())
			return 4
		})
	}

	for r := RegB; r <= RegA; r++ {
		y := uint8(r) << 3
		indirect := r == RegHLIndirect

		//INC r
		//#0x04, 0x0C, ..., 0x3C:
		define(0x04+y, "INC "+r.String(), func(c *CPU) int {
			c.write8(r, c.inc8(c.read8(r)))
			if indirect {
				return 3
			}
			return 1
		})

		//DEC r
		//#0x05, 0x0D, ..., 0x3D:
		define(0x05+y, "DEC "+r.String(), func(c *CPU) int {
			c.write8(r, c.dec8(c.read8(r)))
			if indirect {
				return 3
			}
			return 1
		})

		//LD r, n
		//#0x06, 0x0E, ..., 0x3E:
		define(0x06+y, "LD "+r.String()+",u8", func(c *CPU) int {
			c.write8(r, c.imm8())
			if indirect {
				return 3
			}
			return 2
		})
	}

	//LD r, r'
	//#0x40-0x7F, except 0x76 (HALT)
	for i := 0x40; i < 0x80; i++ {
		opcode := uint8(i)
		if opcode == 0x76 {
			continue
		}

		dst := Register8(opcode >> 3 & 7)
		src := Register8(opcode & 7)
		cycles := 1
		if dst == RegHLIndirect || src == RegHLIndirect {
			cycles = 2
		}

		define(opcode, "LD "+dst.String()+","+src.String(), func(c *CPU) int {
			c.write8(dst, c.read8(src))
			return cycles
		})
	}

	//LD (BC), A
	//#0x02:
	define(0x02, "LD (BC),A", func(c *CPU) int {
		c.bus.Write(c.regs.BC.Get(), c.regs.AF.hi)
		return 2
	})

	//LD (DE), A
	//#0x12:
	define(0x12, "LD (DE),A", func(c *CPU) int {
		c.bus.Write(c.regs.DE.Get(), c.regs.AF.hi)
		return 2
	})

	//LD A, (BC)
	//#0x0A:
	define(0x0A, "LD A,(BC)", func(c *CPU) int {
		c.regs.AF.hi = c.bus.Read(c.regs.BC.Get())
		return 2
	})

	//LD A, (DE)
	//#0x1A:
	define(0x1A, "LD A,(DE)", func(c *CPU) int {
		c.regs.AF.hi = c.bus.Read(c.regs.DE.Get())
		return 2
	})

	//LD (HL+), A
	//#0x22:
	define(0x22, "LD (HL+),A", func(c *CPU) int {
		c.bus.Write(c.regs.HL.Get(), c.regs.AF.hi)
		c.regs.HL.incr()
		return 2
	})

	//LD (HL-), A
	//#0x32:
	define(0x32, "LD (HL-),A", func(c *CPU) int {
		c.bus.Write(c.regs.HL.Get(), c.regs.AF.hi)
		c.regs.HL.decr()
		return 2
	})

	//LD A, (HL+)
	//#0x2A:
	define(0x2A, "LD A,(HL+)", func(c *CPU) int {
		c.regs.AF.hi = c.bus.Read(c.regs.HL.Get())
		c.regs.HL.incr()
		return 2
	})

	//LD A, (HL-)
	//#0x3A:
	define(0x3A, "LD A,(HL-)", func(c *CPU) int {
		c.regs.AF.hi = c.bus.Read(c.regs.HL.Get())
		c.regs.HL.decr()
		return 2
	})

	//LD (nn), SP
	//#0x08:
	define(0x08, "LD (u16),SP", func(c *CPU) int {
		c.storeSP(c.imm16())
		return 5
	})

	//LDH (n), A
	//#0xE0:
	define(0xE0, "LDH (u8),A", func(c *CPU) int {
		c.ldhStore(c.imm8())
		return 3
	})

	//LDH A, (n)
	//#0xF0:
	define(0xF0, "LDH A,(u8)", func(c *CPU) int {
		c.ldhLoad(c.imm8())
		return 3
	})

	//LD (C), A
	//#0xE2:
	define(0xE2, "LD (C),A", func(c *CPU) int {
		c.bus.Write(addr.IOBase+uint16(c.regs.BC.lo), c.regs.AF.hi)
		return 2
	})

	//LD A, (C)
	//#0xF2:
	define(0xF2, "LD A,(C)", func(c *CPU) int {
		c.regs.AF.hi = c.bus.Read(addr.IOBase + uint16(c.regs.BC.lo))
		return 2
	})

	//LD (nn), A
	//#0xEA:
	define(0xEA, "LD (u16),A", func(c *CPU) int {
		c.bus.Write(c.imm16(), c.regs.AF.hi)
		return 4
	})

	//LD A, (nn)
	//#0xFA:
	define(0xFA, "LD A,(u16)", func(c *CPU) int {
		c.regs.AF.hi = c.bus.Read(c.imm16())
		return 4
	})

	//LD HL, SP+e
	//#0xF8:
	define(0xF8, "LD HL,SP+i8", func(c *CPU) int {
		c.regs.HL.Set(c.addSPSigned(c.imm8()))
		return 3
	})

	//LD SP, HL
	//#0xF9:
	define(0xF9, "LD SP,HL", func(c *CPU) int {
		c.regs.SP.Set(c.regs.HL.Get())
		return 2
	})
}

func defineALU() {
	for k := uint8(0); k < 8; k++ {
		alu := aluOps[k]

		//ALU A, r
		//#0x80-0xBF:
		for r := RegB; r <= RegA; r++ {
			cycles := 1
			if r == RegHLIndirect {
				cycles = 2
			}

			define(0x80+k<<3+uint8(r), alu.name+" A,"+r.String(), func(c *CPU) int {
				alu.op(c, c.read8(r))
				return cycles
			})
		}

		//ALU A, n
		//#0xC6, 0xCE, ..., 0xFE:
		define(0xC6+k<<3, alu.name+" A,u8", func(c *CPU) int {
			alu.op(c, c.imm8())
			return 2
		})
	}

	//ADD SP, e
	//#0xE8:
	define(0xE8, "ADD SP,i8", func(c *CPU) int {
		c.regs.SP.Set(c.addSPSigned(c.imm8()))
		return 4
	})
}

func defineJumps() {
	//JR e
	//#0x18:
	define(0x18, "JR i8", func(c *CPU) int {
		return c.jr(true)
	})

	//JP nn
	//#0xC3:
	define(0xC3, "JP u16", func(c *CPU) int {
		return c.jp(true)
	})

	//JP HL
	//#0xE9:
	define(0xE9, "JP HL", func(c *CPU) int {
		c.regs.PC.Set(c.regs.HL.Get())
		return 1
	})

	//CALL nn
	//#0xCD:
	define(0xCD, "CALL u16", func(c *CPU) int {
		return c.call(true)
	})

	//RET
	//#0xC9:
	define(0xC9, "RET", func(c *CPU) int {
		return c.ret()
	})

	//RETI
	//#0xD9:
	define(0xD9, "RETI", func(c *CPU) int {
		c.ime = true
		return c.ret()
	})

	for cc := condNZ; cc <= condC; cc++ {
		y := uint8(cc) << 3

		//JR cc, e
		//#0x20, 0x28, 0x30, 0x38:
		define(0x20+y, "JR "+cc.String()+",i8", func(c *CPU) int {
			return c.jr(c.check(cc))
		})

		//JP cc, nn
		//#0xC2, 0xCA, 0xD2, 0xDA:
		define(0xC2+y, "JP "+cc.String()+",u16", func(c *CPU) int {
			return c.jp(c.check(cc))
		})

		//CALL cc, nn
		//#0xC4, 0xCC, 0xD4, 0xDC:
		define(0xC4+y, "CALL "+cc.String()+",u16", func(c *CPU) int {
			return c.call(c.check(cc))
		})

		//RET cc
		//#0xC0, 0xC8, 0xD0, 0xD8:
		define(0xC0+y, "RET "+cc.String(), func(c *CPU) int {
			return c.retIf(c.check(cc))
		})
	}

	//RST n
	//#0xC7, 0xCF, ..., 0xFF:
	for n := uint8(0); n < 8; n++ {
		vector := uint16(n) << 3
		define(0xC7+n<<3, fmt.Sprintf("RST $%02X", vector), func(c *CPU) int {
			return c.rst(vector)
		})
	}
}
