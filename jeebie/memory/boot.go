package memory

import (
	"crypto/md5"
	"encoding/hex"
)

// MD5 checksums of the known DMG-family boot ROM dumps.
const (
	DMG0 = "a8f84a0ac44da5d3f0ee19f9cea80a8c"
	DMG  = "32fbbd84168d3482956eb3c5051637f5"
	MGB  = "71a378e71ff30b2d8a1f02bf5c7896aa"
	SGB  = "d574d4f9c12f305074798f54c091a8b4"
	SGB2 = "e0430bca9925fb9882148fd2dc2418c1"
)

var knownBootROMs = map[string]string{
	DMG0: "Game Boy (DMG-0)",
	DMG:  "Game Boy (DMG-01)",
	MGB:  "Game Boy Pocket",
	SGB:  "Super Game Boy",
	SGB2: "Super Game Boy 2",
}

// BootROMChecksum returns the hex MD5 of a boot ROM image.
func BootROMChecksum(data []byte) string {
	sum := md5.Sum(data)
	return hex.EncodeToString(sum[:])
}

// BootROMModel names the hardware a boot ROM image was dumped from, or
// "unknown" for images that don't match a known dump.
func BootROMModel(data []byte) string {
	if model, ok := knownBootROMs[BootROMChecksum(data)]; ok {
		return model
	}
	return "unknown"
}
