package memory

import (
	"errors"
	"fmt"
	"strings"
	"unicode"

	"github.com/valerio/go-jeebie-cpu/jeebie/addr"
	"github.com/valerio/go-jeebie-cpu/jeebie/bit"
)

// ErrROMTooSmall is returned for images that end before the cartridge header does.
var ErrROMTooSmall = errors.New("rom image too small")

var cartTypeNames = map[uint8]string{
	0x00: "ROM ONLY",
	0x01: "MBC1",
	0x02: "MBC1+RAM",
	0x03: "MBC1+RAM+BATTERY",
	0x05: "MBC2",
	0x06: "MBC2+BATTERY",
	0x08: "ROM+RAM",
	0x09: "ROM+RAM+BATTERY",
	0x0F: "MBC3+TIMER+BATTERY",
	0x10: "MBC3+TIMER+RAM+BATTERY",
	0x11: "MBC3",
	0x12: "MBC3+RAM",
	0x13: "MBC3+RAM+BATTERY",
	0x19: "MBC5",
	0x1A: "MBC5+RAM",
	0x1B: "MBC5+RAM+BATTERY",
	0x1C: "MBC5+RUMBLE",
	0x1D: "MBC5+RUMBLE+RAM",
	0x1E: "MBC5+RUMBLE+RAM+BATTERY",
}

// ramSizes maps the header RAM size code to a size in bytes.
var ramSizes = map[uint8]int{
	0x00: 0,
	0x01: 2 * 1024,
	0x02: 8 * 1024,
	0x03: 32 * 1024,
	0x04: 128 * 1024,
	0x05: 64 * 1024,
}

// Cartridge is a ROM image plus its parsed header. Only the first 32KiB are
// visible on the bus, there is no bank switching.
type Cartridge struct {
	data           []byte
	title          string
	cgbFlag        uint8
	cartType       uint8
	romSize        uint8
	ramSize        uint8
	version        uint8
	headerChecksum uint8
	globalChecksum uint16
}

// NewCartridge creates an empty cartridge, useful only for debugging purposes.
func NewCartridge() *Cartridge {
	return &Cartridge{
		data:  make([]byte, addr.CartROMSize),
		title: "(Untitled)",
	}
}

// NewCartridgeWithData parses the header of a ROM image. The data is copied.
func NewCartridgeWithData(data []byte) (*Cartridge, error) {
	if len(data) <= int(addr.HeaderEnd) {
		return nil, fmt.Errorf("%w: %d bytes, header ends at 0x%04X", ErrROMTooSmall, len(data), addr.HeaderEnd)
	}

	cart := &Cartridge{
		data:           make([]byte, len(data)),
		cgbFlag:        data[addr.HeaderCGBFlag],
		cartType:       data[addr.HeaderCartType],
		romSize:        data[addr.HeaderROMSize],
		ramSize:        data[addr.HeaderRAMSize],
		version:        data[addr.HeaderVersion],
		headerChecksum: data[addr.HeaderChecksum],
		globalChecksum: bit.Combine(data[addr.GlobalChecksum], data[addr.GlobalChecksum+1]),
	}
	copy(cart.data, data)

	// older cartridges use the CGB flag byte as the last title character
	titleEnd := int(addr.HeaderTitle) + addr.HeaderTitleSize
	if cart.cgbFlag&0x80 == 0 {
		titleEnd++
	}
	cart.title = cleanTitle(data[addr.HeaderTitle:titleEnd])

	return cart, nil
}

// Read returns the ROM byte at address, 0xFF past the end of the image.
func (c *Cartridge) Read(address uint16) uint8 {
	if int(address) >= len(c.data) {
		return 0xFF
	}
	return c.data[address]
}

func (c *Cartridge) Title() string { return c.title }

func (c *Cartridge) Version() uint8 { return c.version }

// CGB reports whether the cartridge supports Game Boy Color features.
func (c *Cartridge) CGB() bool { return c.cgbFlag&0x80 != 0 }

func (c *Cartridge) Type() uint8 { return c.cartType }

// TypeName returns the cartridge hardware as listed in the header.
func (c *Cartridge) TypeName() string {
	if name, ok := cartTypeNames[c.cartType]; ok {
		return name
	}
	return fmt.Sprintf("UNKNOWN (0x%02X)", c.cartType)
}

// ROMSize returns the ROM size declared in the header, in bytes.
func (c *Cartridge) ROMSize() int {
	if c.romSize > 8 {
		return 0
	}
	return addr.CartROMSize << c.romSize
}

// RAMSize returns the external RAM size declared in the header, in bytes.
func (c *Cartridge) RAMSize() int {
	return ramSizes[c.ramSize]
}

// Size returns the length of the loaded image.
func (c *Cartridge) Size() int { return len(c.data) }

func (c *Cartridge) HeaderChecksum() uint8 { return c.headerChecksum }

func (c *Cartridge) GlobalChecksum() uint16 { return c.globalChecksum }

// HeaderChecksumValid recomputes the checksum over 0x0134-0x014C, which the
// boot ROM verifies before handing over control.
func (c *Cartridge) HeaderChecksumValid() bool {
	return computeHeaderChecksum(c.data) == c.headerChecksum
}

func computeHeaderChecksum(data []byte) uint8 {
	var sum uint8
	for _, b := range data[addr.HeaderTitle:addr.HeaderChecksum] {
		sum = sum - b - 1
	}
	return sum
}

// cleanTitle turns the raw title bytes into something printable: padding
// NULs become spaces, other control bytes become '?'.
func cleanTitle(raw []byte) string {
	title := strings.Map(func(r rune) rune {
		switch {
		case r == 0:
			return ' '
		case !unicode.IsPrint(r):
			return '?'
		}
		return r
	}, string(raw))

	title = strings.TrimSpace(title)
	if title == "" {
		return "(Untitled)"
	}
	return title
}
