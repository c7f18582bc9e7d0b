// Package boot maps a boot ROM over the start of the address space.
// The boot ROM runs first, and unmaps itself by writing to types.BDIS,
// handing control to the cartridge at the entry point.
package boot

import (
	"crypto/md5"
	"encoding/hex"
	"errors"
	"fmt"

	"github.com/thelolagemann/gbcore/internal/types"
)

const (
	dmgSize = 0x100 // DMG/MGB/SGB, 0x0000 - 0x00FF
	cgbSize = 0x900 // CGB, 0x0000 - 0x00FF & 0x0200 - 0x08FF
)

// ErrInvalidSize is returned for images that are neither a DMG nor a
// CGB boot ROM.
var ErrInvalidSize = errors.New("boot: invalid boot rom size")

// Bus is the part of the MMU the boot ROM is mapped onto.
type Bus interface {
	Overlay(start, end uint16, read func(uint16) uint8) (restore func())
	RegisterHardware(address types.HardwareAddress, write func(v uint8), read func() uint8)
}

// ROM represents a boot ROM for the Game Boy.
type ROM struct {
	raw      []byte // the raw boot rom
	checksum string // the MD5 checksum of the boot rom

	restore []func()
}

// LoadBootROM validates the size of b and returns the boot ROM it holds.
func LoadBootROM(b []byte) (*ROM, error) {
	if len(b) != dmgSize && len(b) != cgbSize {
		return nil, fmt.Errorf("%w: %d bytes", ErrInvalidSize, len(b))
	}
	sum := md5.Sum(b)

	return &ROM{
		raw:      b,
		checksum: hex.EncodeToString(sum[:]),
	}, nil
}

// Read returns the byte at the given address.
func (b *ROM) Read(addr uint16) uint8 {
	return b.raw[addr]
}

// Map overlays the boot ROM on bus. It stays mapped until a non-zero
// value is written to types.BDIS, after which the cartridge is visible
// again and BDIS ignores further writes.
func (b *ROM) Map(bus Bus) {
	b.restore = append(b.restore, bus.Overlay(0x0000, dmgSize-1, b.Read))
	if len(b.raw) == cgbSize {
		// 0x0100 - 0x01FF stays the cartridge header
		b.restore = append(b.restore, bus.Overlay(0x0200, cgbSize-1, b.Read))
	}

	bus.RegisterHardware(types.BDIS, func(v uint8) {
		if v == 0 || !b.Mapped() {
			return
		}
		for _, restore := range b.restore {
			restore()
		}
		b.restore = nil
	}, nil)
}

// Mapped returns true while the boot ROM is visible.
func (b *ROM) Mapped() bool {
	return len(b.restore) > 0
}

// Checksum returns the MD5 checksum of the boot rom.
func (b *ROM) Checksum() string {
	if b == nil {
		return ""
	}
	return b.checksum
}

// Model returns the hardware the boot rom belongs to, identified by its
// checksum.
func (b *ROM) Model() string {
	if b == nil {
		return "none"
	}
	if model, ok := knownBootROMChecksums[b.checksum]; ok {
		return model
	}
	return "unknown"
}

// knownBootROMChecksums maps the MD5 of a boot ROM to its hardware.
var knownBootROMChecksums = map[string]string{
	DMG0:         "Game Boy (DMG-0)",
	DMG:          "Game Boy (DMG-01)",
	MGB:          "Game Boy Pocket",
	SGB:          "Super Game Boy",
	SGB2:         "Super Game Boy 2",
	CGB0:         "Game Boy Color (CGB-0)",
	CGB:          "Game Boy Color (CGB-A/B/C/D/E)",
	CGB_AGB:      "Game Boy Advance (AGB-001)",
	FORTUNE:      "Fortune/Bitman 3000B",
	GAME_FIGHTER: "Game Fighter",
	MAX_STATION:  "Max Station",
}

// MD5 checksums of the boot ROMs found in the wild.
const (
	DMG0         = "a8f84a0ac44da5d3f0ee19f9cea80a8c"
	DMG          = "32fbbd84168d3482956eb3c5051637f5"
	MGB          = "71a378e71ff30b2d8a1f02bf5c7896aa"
	SGB          = "d574d4f9c12f305074798f54c091a8b4"
	SGB2         = "e0430bca9925fb9882148fd2dc2418c1"
	CGB0         = "7c773f3c0b01cb73bca8e83227287b7f"
	CGB          = "dbfce9db9deaa2567f6a84fde55f9680"
	CGB_AGB      = "e6cefb5f7d352fab6681989763917c73"
	FORTUNE      = "92ed4eca17d61fcd53f8a64c3ce84743"
	GAME_FIGHTER = "6a7b8ee12a793f66a969c6a2b8926cc9"
	MAX_STATION  = "77a7021db824010a678791f6d062943d"
)
