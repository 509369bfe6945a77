package addr

// memory map
const (
	// BootROMStart is where the boot ROM overlay begins; the CPU starts fetching here at power on.
	BootROMStart uint16 = 0x0000
	// BootROMEnd is the last byte covered by the DMG boot ROM overlay.
	BootROMEnd uint16 = 0x00FF
	// BootROMSize is the size in bytes of a DMG boot ROM image.
	BootROMSize = 0x100

	// CartROMEnd is the last byte of the cartridge ROM window (banks 0 and 1).
	CartROMEnd uint16 = 0x7FFF
	// CartROMSize is the size of the unbanked cartridge ROM window.
	CartROMSize = 0x8000

	// WRAMStart is the start of internal work RAM.
	WRAMStart uint16 = 0xC000
	// HRAMStart is the start of high RAM, where the stack usually lives.
	HRAMStart uint16 = 0xFF80
)

// I/O registers
const (
	// IOBase is the base of the "LDH" addressing mode, $FF00+u8.
	IOBase uint16 = 0xFF00
	// BootROMDisable (BANK) unmaps the boot ROM. The boot program stores to it with LDH ($50),A.
	BootROMDisable uint16 = 0xFF50
	// BootROMDisableOffset is the LDH offset of BootROMDisable.
	BootROMDisableOffset uint8 = 0x50

	// SB (Serial transfer data) holds the byte shifted out on the link port.
	SB uint16 = 0xFF01
	// SC (Serial transfer control): bit 7 starts a transfer, bit 0 selects the internal clock.
	SC uint16 = 0xFF02

	// IF is the address for the Interrupt Flags register.
	IF uint16 = 0xFF0F
	// IE is the address for the Interrupt Enable register.
	IE uint16 = 0xFFFF
)

// cartridge header
const (
	EntryPoint      uint16 = 0x0100
	HeaderTitle     uint16 = 0x0134
	HeaderCGBFlag   uint16 = 0x0143
	HeaderCartType  uint16 = 0x0147
	HeaderROMSize   uint16 = 0x0148
	HeaderRAMSize   uint16 = 0x0149
	HeaderVersion   uint16 = 0x014C
	HeaderChecksum  uint16 = 0x014D
	GlobalChecksum  uint16 = 0x014E
	HeaderEnd       uint16 = 0x014F
	HeaderTitleSize        = 15
)

// Interrupt is an enum that represents one of the possible interrupts, as
// its bit in IF and IE.
type Interrupt uint8

const (
	VBlankInterrupt  Interrupt = 1
	LCDSTATInterrupt Interrupt = 1 << 1
	TimerInterrupt   Interrupt = 1 << 2
	SerialInterrupt  Interrupt = 1 << 3
	JoypadInterrupt  Interrupt = 1 << 4
)

// Interrupts lists every interrupt, highest priority first.
var Interrupts = [...]Interrupt{VBlankInterrupt, LCDSTATInterrupt, TimerInterrupt, SerialInterrupt, JoypadInterrupt}

// Vector returns the address the CPU jumps to when servicing i.
func (i Interrupt) Vector() uint16 {
	switch i {
	case VBlankInterrupt:
		return VBlankVector
	case LCDSTATInterrupt:
		return LCDSTATVector
	case TimerInterrupt:
		return TimerVector
	case SerialInterrupt:
		return SerialVector
	default:
		return JoypadVector
	}
}

// Interrupt vectors, in priority order.
const (
	VBlankVector  uint16 = 0x0040
	LCDSTATVector uint16 = 0x0048
	TimerVector   uint16 = 0x0050
	SerialVector  uint16 = 0x0058
	JoypadVector  uint16 = 0x0060
)
