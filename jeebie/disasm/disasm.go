package disasm

import (
	"fmt"
	"strings"

	"github.com/valerio/go-jeebie-cpu/jeebie/bit"
	"github.com/valerio/go-jeebie-cpu/jeebie/cpu"
)

// Reader is the read half of the CPU bus.
type Reader interface {
	Read(address uint16) uint8
}

// Line represents a single disassembled instruction.
type Line struct {
	Address uint16
	Text    string
	Length  int
}

// At disassembles the instruction at the given program counter. Bytes that
// don't start a valid instruction come out as a one byte "DB $xx".
func At(r Reader, pc uint16) Line {
	opcode := r.Read(pc)

	if opcode == 0xCB {
		return Line{
			Address: pc,
			Text:    cpu.Mnemonic(r.Read(pc+1), true),
			Length:  2,
		}
	}

	template := cpu.Mnemonic(opcode, false)
	if template == "" {
		return Line{Address: pc, Text: fmt.Sprintf("DB $%02X", opcode), Length: 1}
	}

	return Line{
		Address: pc,
		Text:    expand(template, r, pc),
		Length:  cpu.Length(opcode),
	}
}

// expand replaces the operand placeholder of a mnemonic template with the
// immediate bytes that follow the opcode.
func expand(template string, r Reader, pc uint16) string {
	switch {
	case strings.Contains(template, "u16"):
		nn := bit.Combine(r.Read(pc+2), r.Read(pc+1))
		return strings.Replace(template, "u16", fmt.Sprintf("$%04X", nn), 1)
	case strings.Contains(template, "u8"):
		return strings.Replace(template, "u8", fmt.Sprintf("$%02X", r.Read(pc+1)), 1)
	case strings.HasPrefix(template, "JR"):
		// show the jump target rather than the offset
		target := pc + 2 + uint16(int16(int8(r.Read(pc+1))))
		return strings.Replace(template, "i8", fmt.Sprintf("$%04X", target), 1)
	case strings.Contains(template, "+i8"):
		return strings.Replace(template, "+i8", fmt.Sprintf("%+d", int8(r.Read(pc+1))), 1)
	case strings.Contains(template, "i8"):
		return strings.Replace(template, "i8", fmt.Sprintf("%+d", int8(r.Read(pc+1))), 1)
	}
	return template
}

// Range disassembles count consecutive instructions starting from pc.
func Range(r Reader, pc uint16, count int) []Line {
	lines := make([]Line, 0, count)

	for i := 0; i < count; i++ {
		line := At(r, pc)
		lines = append(lines, line)
		pc += uint16(line.Length)
	}

	return lines
}

// Around disassembles up to before instructions leading to pc, the one at
// pc, and after more. Instructions have variable length so there's no
// reliable way to walk backwards: the lead-in is the longest decoding, from at
// most 3 bytes per instruction back, that lands exactly on pc.
func Around(r Reader, pc uint16, before, after int) []Line {
	var lead []Line

	for back := before * 3; back > 0; back-- {
		if back > int(pc) {
			continue
		}
		if lines, ok := decodeUntil(r, int(pc)-back, int(pc)); ok {
			lead = lines
			break
		}
	}

	if len(lead) > before {
		lead = lead[len(lead)-before:]
	}

	return append(lead, Range(r, pc, after+1)...)
}

func decodeUntil(r Reader, start, end int) ([]Line, bool) {
	var lines []Line

	pc := start
	for pc < end {
		line := At(r, uint16(pc))
		lines = append(lines, line)
		pc += line.Length
	}

	return lines, pc == end
}

// Format renders a line for display, marking the current instruction.
func Format(line Line, current bool) string {
	prefix := " "
	if current {
		prefix = ">"
	}

	return fmt.Sprintf("%s0x%04X: %s", prefix, line.Address, line.Text)
}
