package cpu

import (
	"fmt"

	"github.com/valerio/go-jeebie-cpu/jeebie/bit"
)

func defineCB() {
	for i := 0; i < 256; i++ {
		opcode := uint8(i)
		r := Register8(opcode & 7)
		y := opcode >> 3 & 7
		indirect := r == RegHLIndirect

		var name string
		var fn Opcode

		switch opcode >> 6 {
		case 0:
			shift := shiftOps[y]
			name = shift.name + " " + r.String()
			fn = func(c *CPU) int {
				c.write8(r, shift.op(c, c.read8(r)))
				if indirect {
					return 4
				}
				return 2
			}
		case 1:
			name = fmt.Sprintf("BIT %d,%s", y, r)
			fn = func(c *CPU) int {
				c.bitTest(y, c.read8(r))
				if indirect {
					return 3
				}
				return 2
			}
		case 2:
			name = fmt.Sprintf("RES %d,%s", y, r)
			fn = func(c *CPU) int {
				c.write8(r, bit.Reset(y, c.read8(r)))
				if indirect {
					return 4
				}
				return 2
			}
		default:
			name = fmt.Sprintf("SET %d,%s", y, r)
			fn = func(c *CPU) int {
				c.write8(r, bit.Set(y, c.read8(r)))
				if indirect {
					return 4
				}
				return 2
			}
		}

		if opcodesCB[opcode] != nil {
			panic(fmt.Sprintf("cpu: opcode 0xCB 0x%02X defined twice", opcode))
		}
		opcodesCB[opcode] = fn
		opcodeNamesCB[opcode] = name
	}
}
