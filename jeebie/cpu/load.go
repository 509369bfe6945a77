package cpu

import (
	"log/slog"

	"github.com/valerio/go-jeebie-cpu/jeebie/addr"
	"github.com/valerio/go-jeebie-cpu/jeebie/bit"
)

// ldhStore implements LDH (u8),A. Writing to $FF50 is how the boot ROM hands
// over to the cartridge, so that store also flips the bus latch, once.
func (c *CPU) ldhStore(offset uint8) {
	c.bus.Write(addr.IOBase+uint16(offset), c.regs.AF.hi)

	if offset == addr.BootROMDisableOffset && !c.bus.IsBootROMUnlocked() {
		c.bus.UnlockBootROM()
		slog.Info("Boot ROM unlocked", "pc", c.regs.PC.Get())
	}
}

func (c *CPU) ldhLoad(offset uint8) {
	c.regs.AF.hi = c.bus.Read(addr.IOBase + uint16(offset))
}

// storeSP writes SP little endian at address, for LD (u16),SP.
func (c *CPU) storeSP(address uint16) {
	high, low := bit.Split(c.regs.SP.Get())
	c.bus.Write(address, low)
	c.bus.Write(address+1, high)
}

// pair returns the 16 bit register selected by a 2 bit field in the
// BC, DE, HL, SP group.
func (c *CPU) pair(index uint8) *RegisterPair {
	switch index & 3 {
	case 0:
		return &c.regs.BC
	case 1:
		return &c.regs.DE
	case 2:
		return &c.regs.HL
	default:
		return &c.regs.SP
	}
}

// stackPair is like pair for PUSH and POP, where AF takes the place of SP.
func (c *CPU) stackPair(index uint8) *RegisterPair {
	if index&3 == 3 {
		return &c.regs.AF
	}
	return c.pair(index)
}

var pairNames = [...]string{"BC", "DE", "HL", "SP"}
var stackPairNames = [...]string{"BC", "DE", "HL", "AF"}
