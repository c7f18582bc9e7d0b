// Package cartridge parses and validates Game Boy cartridge images.
// Validation is informational: the core will run any image that holds
// at least one ROM bank.
package cartridge

import (
	"errors"
	"fmt"
)

var (
	// ErrMalformedROM is the parent of every error describing an
	// image that cannot or should not be executed.
	ErrMalformedROM = errors.New("malformed rom")
	// ErrROMTooShort is returned for images smaller than a ROM bank.
	ErrROMTooShort = fmt.Errorf("%w: image too short", ErrMalformedROM)
	// ErrLogoMismatch is returned when the boot logo at 0x0104 is wrong.
	ErrLogoMismatch = fmt.Errorf("%w: logo mismatch", ErrMalformedROM)
)

const (
	headerStart = 0x0100
	headerEnd   = 0x0150
	logoStart   = 0x0104
	logoEnd     = 0x0134

	minimumSize = 0x4000
)

// Logo is the bitmap the boot ROM compares against 0x0104-0x0133
// before handing control to the cartridge.
var Logo = [48]byte{
	0xCE, 0xED, 0x66, 0x66, 0xCC, 0x0D, 0x00, 0x0B, 0x03, 0x73, 0x00, 0x83, 0x00, 0x0C, 0x00, 0x0D,
	0x00, 0x08, 0x11, 0x1F, 0x88, 0x89, 0x00, 0x0E, 0xDC, 0xCC, 0x6E, 0xE6, 0xDD, 0xDD, 0xD9, 0x99,
	0xBB, 0xBB, 0x67, 0x63, 0x6E, 0x0E, 0xEC, 0xCC, 0xDD, 0xDC, 0x99, 0x9F, 0xBB, 0xB9, 0x33, 0x3E,
}

// checkLogo returns the index of the first byte that differs from
// Logo, or -1 if the logo matches.
func checkLogo(logo []byte) int {
	for i := range Logo {
		if logo[i] != Logo[i] {
			return i
		}
	}
	return -1
}

// Validate reports whether rom is fit to run: it must hold at least one
// ROM bank, and carry the boot logo.
func Validate(rom []byte) error {
	if len(rom) < minimumSize {
		return fmt.Errorf("cartridge: %w: got %d bytes, need at least %d", ErrROMTooShort, len(rom), minimumSize)
	}
	if i := checkLogo(rom[logoStart:logoEnd]); i != -1 {
		return fmt.Errorf("cartridge: %w at 0x%04X: expected 0x%02X, got 0x%02X",
			ErrLogoMismatch, logoStart+i, Logo[i], rom[logoStart+i])
	}

	return nil
}
