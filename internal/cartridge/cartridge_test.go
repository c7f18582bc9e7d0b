package cartridge

import (
	"errors"
	"testing"
)

// newROM returns a 32kB image with a valid logo, title and header checksum.
func newROM(title string) []byte {
	rom := make([]byte, 0x8000)
	copy(rom[logoStart:], Logo[:])
	copy(rom[0x0134:], title)
	rom[0x0147] = byte(ROM)
	rom[0x014D] = headerChecksum(rom)
	return rom
}

func TestValidate(t *testing.T) {
	if err := Validate(newROM("TETRIS")); err != nil {
		t.Errorf("expected valid ROM, got %v", err)
	}

	err := Validate(make([]byte, 0x3FFF))
	if !errors.Is(err, ErrROMTooShort) || !errors.Is(err, ErrMalformedROM) {
		t.Errorf("expected ErrROMTooShort, got %v", err)
	}

	rom := newROM("TETRIS")
	rom[0x0110] ^= 0xFF
	err = Validate(rom)
	if !errors.Is(err, ErrLogoMismatch) || !errors.Is(err, ErrMalformedROM) {
		t.Errorf("expected ErrLogoMismatch, got %v", err)
	}
}

func TestParseHeader(t *testing.T) {
	rom := newROM("TETRIS")
	rom[0x0148] = 0x01 // 64kB
	rom[0x0149] = 0x02 // 8kB
	rom[0x014E], rom[0x014F] = 0xBE, 0xEF
	rom[0x014D] = headerChecksum(rom)

	h, err := ParseHeader(rom)
	if err != nil {
		t.Fatal(err)
	}
	if h.Title != "TETRIS" {
		t.Errorf("expected title TETRIS, got %q", h.Title)
	}
	if h.RawTitle[0] != 'T' || h.RawTitle[15] != 0 {
		t.Errorf("expected raw title to hold all 16 bytes")
	}
	if h.ROMSize != 64*1024 || h.RAMSize != 8*1024 {
		t.Errorf("expected 64kB/8kB, got %d/%d", h.ROMSize, h.RAMSize)
	}
	if h.GlobalChecksum != 0xBEEF {
		t.Errorf("expected global checksum 0xBEEF, got 0x%04X", h.GlobalChecksum)
	}
	if !h.LogoValid || !h.HeaderChecksumValid {
		t.Errorf("expected logo and checksum to be valid")
	}
	if h.Hardware() != "DMG" || h.CartridgeType.String() != "ROM" {
		t.Errorf("unexpected hardware %s / type %s", h.Hardware(), h.CartridgeType)
	}
	if h.Fingerprint == 0 {
		t.Errorf("expected a fingerprint")
	}

	other := newROM("TETRIS")
	other[0x7FFF] = 1
	h2, _ := ParseHeader(other)
	if h2.Fingerprint == h.Fingerprint {
		t.Errorf("expected different images to have different fingerprints")
	}
}

func TestParseHeader_CGB(t *testing.T) {
	rom := newROM("POKEMON CRYSTAL")
	rom[0x0143] = 0xC0
	h, err := ParseHeader(rom)
	if err != nil {
		t.Fatal(err)
	}
	if h.Title != "POKEMON CRYSTAL" {
		t.Errorf("expected title without the CGB flag byte, got %q", h.Title)
	}
	if !h.GameboyColor() || h.HeaderChecksumValid {
		t.Errorf("expected CGB header with stale checksum")
	}
}

func TestParseHeader_Short(t *testing.T) {
	if _, err := ParseHeader(make([]byte, 0x14F)); !errors.Is(err, ErrROMTooShort) {
		t.Errorf("expected ErrROMTooShort, got %v", err)
	}
}
