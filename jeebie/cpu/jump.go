package cpu

import "github.com/valerio/go-jeebie-cpu/jeebie/bit"

// push stores value on the stack, high byte at the higher address.
func (c *CPU) push(value uint16) {
	high, low := bit.Split(value)

	c.regs.SP.decr()
	c.bus.Write(c.regs.SP.Get(), high)
	c.regs.SP.decr()
	c.bus.Write(c.regs.SP.Get(), low)
}

// pop is the inverse of push.
func (c *CPU) pop() uint16 {
	low := c.bus.Read(c.regs.SP.Get())
	c.regs.SP.incr()
	high := c.bus.Read(c.regs.SP.Get())
	c.regs.SP.incr()

	return bit.Combine(high, low)
}

type condition uint8

// conditions in encoding order
const (
	condNZ condition = iota
	condZ
	condNC
	condC
)

var conditionNames = [...]string{"NZ", "Z", "NC", "C"}

func (cc condition) String() string {
	return conditionNames[cc&3]
}

func (c *CPU) check(cc condition) bool {
	switch cc {
	case condNZ:
		return !c.GetFlag(ZeroFlag)
	case condZ:
		return c.GetFlag(ZeroFlag)
	case condNC:
		return !c.GetFlag(CarryFlag)
	default:
		return c.GetFlag(CarryFlag)
	}
}

// jr adds the signed immediate to PC (already past the operand) when taken.
func (c *CPU) jr(taken bool) int {
	offset := int8(c.imm8())
	if !taken {
		return 2
	}

	c.regs.PC.Set(c.regs.PC.Get() + uint16(int16(offset)))
	return 3
}

func (c *CPU) jp(taken bool) int {
	address := c.imm16()
	if !taken {
		return 3
	}

	c.regs.PC.Set(address)
	return 4
}

func (c *CPU) call(taken bool) int {
	address := c.imm16()
	if !taken {
		return 3
	}

	c.push(c.regs.PC.Get())
	c.regs.PC.Set(address)
	return 6
}

func (c *CPU) retIf(taken bool) int {
	if !taken {
		return 2
	}

	c.regs.PC.Set(c.pop())
	return 5
}

func (c *CPU) ret() int {
	c.regs.PC.Set(c.pop())
	return 4
}

func (c *CPU) rst(vector uint16) int {
	c.push(c.regs.PC.Get())
	c.regs.PC.Set(vector)
	return 4
}
