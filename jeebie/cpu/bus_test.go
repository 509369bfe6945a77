package cpu

// testBus is a flat, fully writable 64KiB address space.
type testBus struct {
	mem         [0x10000]uint8
	unlocked    bool
	unlockCalls int
}

func (b *testBus) Read(address uint16) uint8 {
	return b.mem[address]
}

func (b *testBus) Write(address uint16, value uint8) {
	b.mem[address] = value
}

func (b *testBus) UnlockBootROM() {
	b.unlocked = true
	b.unlockCalls++
}

func (b *testBus) IsBootROMUnlocked() bool {
	return b.unlocked
}

// newTestCPU returns a zeroed CPU and a bus with program loaded at 0x0000.
func newTestCPU(program ...uint8) (*CPU, *testBus) {
	bus := &testBus{}
	copy(bus.mem[:], program)
	return New(), bus
}

// stepN runs n instructions and returns the sum of their cycles.
func stepN(c *CPU, bus Bus, n int) int {
	total := 0
	for i := 0; i < n; i++ {
		total += c.Step(bus)
	}
	return total
}
