package jeebie

import "github.com/valerio/go-jeebie-cpu/jeebie/addr"

// handleInterrupts wakes the CPU when an enabled interrupt is requested and,
// if IME is set, dispatches the highest priority one. Returns the extra
// M-cycles spent.
func (e *Emulator) handleInterrupts() int {
	pending := e.mem.PendingInterrupts()
	if pending == 0 {
		return 0
	}

	// a pending interrupt ends HALT even with IME off
	e.cpu.Resume()
	if !e.cpu.IME() {
		return 0
	}

	for _, i := range addr.Interrupts {
		if pending&uint8(i) == 0 {
			continue
		}
		e.mem.ClearInterrupt(i)
		e.stats.Interrupts++
		return e.cpu.ServiceInterrupt(e.mem, i.Vector())
	}
	return 0
}
