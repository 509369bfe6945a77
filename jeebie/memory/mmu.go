package memory

import (
	"fmt"
	"log/slog"

	"github.com/valerio/go-jeebie-cpu/jeebie/addr"
	"github.com/valerio/go-jeebie-cpu/jeebie/serial"
)

type memRegion uint8

const (
	regionROM memRegion = iota
	regionRAM
	regionEcho
	regionIO
)

// SerialPort is the minimal interface for a serial device connected to SB/SC.
// Implementations MUST only accept reads/writes to addr.SB and addr.SC.
type SerialPort interface {
	Write(address uint16, value byte)
	Read(address uint16) byte
	Tick(cycles int)
	Reset()
}

// MMU is a flat 64KiB address space with the cartridge ROM mapped at
// 0x0000-0x7FFF and an optional boot ROM overlaid on its first 256 bytes
// until the program unlocks it.
type MMU struct {
	cart      *Cartridge
	memory    []byte
	regionMap [256]memRegion

	bootROM      []byte
	bootUnlocked bool

	serial SerialPort
}

// New creates a new memory unit with default data, i.e. no cartridge loaded.
// Equivalent to turning on a Gameboy without a cartridge in.
func New() *MMU {
	mmu := &MMU{
		memory: make([]byte, 0x10000),
	}
	mmu.serial = serial.NewLogSink(func() { mmu.RequestInterrupt(addr.SerialInterrupt) })
	initRegionMap(mmu)
	return mmu
}

// SetSerial replaces the device on the link port.
func (m *MMU) SetSerial(port SerialPort) {
	m.serial = port
}

// Tick advances any i/o that needs it, if any.
func (m *MMU) Tick(cycles int) {
	if m.serial != nil {
		m.serial.Tick(cycles)
	}
}

// RequestInterrupt sets the interrupt's bit in IF.
func (m *MMU) RequestInterrupt(interrupt addr.Interrupt) {
	m.memory[addr.IF] |= uint8(interrupt)
}

// PendingInterrupts returns the interrupts both requested and enabled.
func (m *MMU) PendingInterrupts() uint8 {
	return m.memory[addr.IF] & m.memory[addr.IE] & 0x1F
}

// ClearInterrupt acknowledges a serviced interrupt.
func (m *MMU) ClearInterrupt(interrupt addr.Interrupt) {
	m.memory[addr.IF] &^= uint8(interrupt)
}

// NewWithCartridge creates a new memory unit with the provided cartridge loaded.
// Equivalent to turning on a Gameboy with a cartridge in.
func NewWithCartridge(cart *Cartridge) *MMU {
	mmu := New()
	mmu.cart = cart
	return mmu
}

func initRegionMap(m *MMU) {
	// ROM: 0x0000-0x7FFF
	for i := 0x00; i <= 0x7F; i++ {
		m.regionMap[i] = regionROM
	}
	// VRAM, external RAM, work RAM: 0x8000-0xDFFF
	for i := 0x80; i <= 0xDF; i++ {
		m.regionMap[i] = regionRAM
	}
	// Echo RAM: 0xE000-0xFDFF
	for i := 0xE0; i <= 0xFD; i++ {
		m.regionMap[i] = regionEcho
	}
	// OAM and unused
	m.regionMap[0xFE] = regionRAM
	// IO + HRAM: 0xFF00-0xFFFF
	m.regionMap[0xFF] = regionIO
}

// SetBootROM maps a 256 byte DMG boot ROM over 0x0000-0x00FF and locks the
// overlay in place.
func (m *MMU) SetBootROM(data []byte) error {
	if len(data) != addr.BootROMSize {
		return fmt.Errorf("boot rom must be %d bytes, got %d", addr.BootROMSize, len(data))
	}

	m.bootROM = make([]byte, addr.BootROMSize)
	copy(m.bootROM, data)
	m.bootUnlocked = false
	return nil
}

// UnlockBootROM removes the boot ROM overlay. It can't be undone.
func (m *MMU) UnlockBootROM() {
	m.bootUnlocked = true
}

func (m *MMU) IsBootROMUnlocked() bool {
	return m.bootUnlocked
}

// Cartridge returns the loaded cartridge, nil if there is none.
func (m *MMU) Cartridge() *Cartridge {
	return m.cart
}

func (m *MMU) Read(address uint16) byte {
	switch m.regionMap[address>>8] {
	case regionROM:
		if address <= addr.BootROMEnd && m.bootROM != nil && !m.bootUnlocked {
			return m.bootROM[address]
		}
		if m.cart == nil {
			return 0xFF
		}
		return m.cart.Read(address)
	case regionRAM:
		return m.memory[address]
	case regionEcho:
		return m.memory[address-0x2000]
	case regionIO:
		if (address == addr.SB || address == addr.SC) && m.serial != nil {
			return m.serial.Read(address)
		}
		// The upper 3 bits of IF are unused and always read as 1.
		if address == addr.IF {
			return m.memory[address] | 0xE0
		}
		return m.memory[address]
	default:
		panic(fmt.Sprintf("Attempted read at unmapped address: 0x%X", address))
	}
}

func (m *MMU) Write(address uint16, value byte) {
	switch m.regionMap[address>>8] {
	case regionROM:
		slog.Debug("Ignoring write to ROM", "addr", fmt.Sprintf("0x%04X", address), "value", fmt.Sprintf("0x%02X", value))
	case regionRAM:
		m.memory[address] = value
	case regionEcho:
		m.memory[address-0x2000] = value
	case regionIO:
		if (address == addr.SB || address == addr.SC) && m.serial != nil {
			m.serial.Write(address, value)
			return
		}
		if address == addr.IF {
			m.memory[address] = value | 0xE0
			return
		}
		m.memory[address] = value
	default:
		panic(fmt.Sprintf("Attempted write at unmapped address: 0x%X", address))
	}
}
