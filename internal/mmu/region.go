package mmu

import "github.com/thelolagemann/gbcore/internal/types"

// Region identifies an area of the memory map.
type Region uint8

const (
	RegionROM0 Region = iota
	RegionROMX
	RegionVRAM
	RegionERAM
	RegionWRAM
	RegionEcho
	RegionOAM
	RegionUnusable
	RegionIO
	RegionHRAM
	RegionIE
)

var regionNames = [...]string{
	RegionROM0:     "ROM0",
	RegionROMX:     "ROMX",
	RegionVRAM:     "VRAM",
	RegionERAM:     "ERAM",
	RegionWRAM:     "WRAM",
	RegionEcho:     "ECHO",
	RegionOAM:      "OAM",
	RegionUnusable: "UNUSABLE",
	RegionIO:       "IO",
	RegionHRAM:     "HRAM",
	RegionIE:       "IE",
}

func (r Region) String() string {
	if int(r) < len(regionNames) {
		return regionNames[r]
	}
	return "UNKNOWN"
}

// RegionOf returns the region that address belongs to.
func RegionOf(address uint16) Region {
	switch {
	case address < types.ROMXStart:
		return RegionROM0
	case address < types.VRAMStart:
		return RegionROMX
	case address < types.ERAMStart:
		return RegionVRAM
	case address < types.WRAMStart:
		return RegionERAM
	case address < types.EchoStart:
		return RegionWRAM
	case address < types.OAMStart:
		return RegionEcho
	case address < types.UnusableStart:
		return RegionOAM
	case address < types.IOStart:
		return RegionUnusable
	case address < types.HRAMStart:
		return RegionIO
	case address < types.IE:
		return RegionHRAM
	default:
		return RegionIE
	}
}
