package cpu

import "fmt"

// Snapshot is the register file plus the 4 bytes at PC, captured before an
// instruction executes. It is the unit of the execution trace.
type Snapshot struct {
	A, F, B, C, D, E, H, L uint8
	SP, PC                 uint16
	Mem                    [4]uint8
}

// String renders the snapshot as a trace line, e.g.
//
//	A: 01 F: B0 B: 00 C: 13 D: 00 E: D8 H: 01 L: 4D SP: FFFE PC: 00:0100 (00 C3 13 02)
func (s Snapshot) String() string {
	return fmt.Sprintf("A: %02X F: %02X B: %02X C: %02X D: %02X E: %02X H: %02X L: %02X SP: %04X PC: 00:%04X (%02X %02X %02X %02X)",
		s.A, s.F, s.B, s.C, s.D, s.E, s.H, s.L, s.SP, s.PC, s.Mem[0], s.Mem[1], s.Mem[2], s.Mem[3])
}

// Capture reads the current state. It only reads from bus.
func (c *CPU) Capture(bus Bus) Snapshot {
	pc := c.regs.PC.Get()
	return Snapshot{
		A:  c.regs.AF.hi,
		F:  c.regs.AF.lo,
		B:  c.regs.BC.hi,
		C:  c.regs.BC.lo,
		D:  c.regs.DE.hi,
		E:  c.regs.DE.lo,
		H:  c.regs.HL.hi,
		L:  c.regs.HL.lo,
		SP: c.regs.SP.Get(),
		PC: pc,
		Mem: [4]uint8{
			bus.Read(pc),
			bus.Read(pc + 1),
			bus.Read(pc + 2),
			bus.Read(pc + 3),
		},
	}
}

// EnableSnapshots makes every Step capture the pre-execution state, which
// Snapshot then returns.
func (c *CPU) EnableSnapshots(enabled bool) {
	c.snapshots = enabled
}

// Snapshot returns the state captured at the start of the last Step. It is
// the zero value until snapshots are enabled.
func (c *CPU) Snapshot() Snapshot {
	return c.snapshot
}
