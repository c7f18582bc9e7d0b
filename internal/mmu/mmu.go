// Package mmu provides the address space of the Game Boy. The MMU
// is a flat 64kB byte store with an optional handler per address, so
// that regions such as ROM, echo RAM and the I/O registers can
// intercept reads and writes without the CPU special casing them.
package mmu

import (
	"fmt"

	"github.com/thelolagemann/gbcore/internal/cartridge"
	"github.com/thelolagemann/gbcore/internal/types"
	"github.com/thelolagemann/gbcore/pkg/log"
)

// MMU is the memory management unit for the Game Boy. It handles all
// memory reads and writes to the Game Boy's 64kB of memory, and
// delegates to the mapped handlers where one is installed.
type MMU struct {
	// 64kB address space
	raw [0x10000]uint8

	// handlers intercept accesses per address, nil falls through to raw
	handlers [0x10000]*types.Address

	// 0xFF00 - 0xFF7F & 0xFFFF - I/O Registers
	registers types.HardwareRegisters
	io        *types.Address

	Log log.Logger
}

// Opt configures an MMU.
type Opt func(m *MMU)

// WithLogger sets the logger used by the MMU.
func WithLogger(l log.Logger) Opt {
	return func(m *MMU) {
		m.Log = l
	}
}

// WithROMProtection drops every write to 0x0000 - 0x7FFF. Without a
// memory bank controller there is nothing in that range to receive them.
func WithROMProtection() Opt {
	return func(m *MMU) {
		m.Map(types.ROM0Start, types.VRAMStart-1, &types.Address{
			Read: m.Peek,
			Write: func(address uint16, value uint8) {
				m.Log.Debugf("mmu: dropped write of 0x%02X to %s at 0x%04X", value, RegionOf(address), address)
			},
		})
	}
}

// WithEchoRAM mirrors 0xC000 - 0xDDFF into 0xE000 - 0xFDFF.
func WithEchoRAM() Opt {
	return func(m *MMU) {
		m.Map(types.EchoStart, types.OAMStart-1, &types.Address{
			Read:  readOffset(m.Peek, 0x2000),
			Write: writeOffset(m.Poke, 0x2000),
		})
	}
}

func readOffset(read func(uint16) uint8, offset uint16) func(uint16) uint8 {
	return func(addr uint16) uint8 {
		return read(addr - offset)
	}
}

func writeOffset(write func(uint16, uint8), offset uint16) func(uint16, uint8) {
	return func(addr uint16, v uint8) {
		write(addr-offset, v)
	}
}

// NewMMU returns a new, zeroed MMU.
func NewMMU(opts ...Opt) *MMU {
	m := &MMU{
		Log: log.NewNullLogger(),
	}
	m.io = &types.Address{
		Read:  m.registers.Read,
		Write: m.registers.Write,
	}
	for _, opt := range opts {
		opt(m)
	}

	return m
}

// LoadROM copies the fixed ROM bank of rom into 0x0000 - 0x3FFF. If the
// image also holds a second bank it is copied into 0x4000 - 0x7FFF, as a
// cartridge without a bank controller would present it.
func (m *MMU) LoadROM(rom []byte) error {
	if len(rom) < types.ROMBankSize {
		return fmt.Errorf("mmu: %w: got %d bytes, need at least %d", cartridge.ErrROMTooShort, len(rom), types.ROMBankSize)
	}

	n := types.ROMBankSize
	if len(rom) >= 2*types.ROMBankSize {
		n = 2 * types.ROMBankSize
	}
	copy(m.raw[:n], rom[:n])
	m.Log.Debugf("mmu: mapped %d bytes of ROM", n)

	return nil
}

// Map installs handler for every address in [start, end]. Installing nil
// restores the flat behaviour for the range.
func (m *MMU) Map(start, end uint16, handler *types.Address) {
	for i := int(start); i <= int(end); i++ {
		m.handlers[i] = handler
	}
}

// Overlay maps read over [start, end], leaving writes to whatever
// handled them before. The returned func removes the overlay, restoring
// the previous handlers.
func (m *MMU) Overlay(start, end uint16, read func(uint16) uint8) (restore func()) {
	saved := make([]*types.Address, int(end)-int(start)+1)
	copy(saved, m.handlers[start:int(end)+1])

	for i, prev := range saved {
		write := m.Poke
		if prev != nil {
			write = prev.Write
		}
		m.handlers[int(start)+i] = &types.Address{Read: read, Write: write}
	}

	return func() {
		copy(m.handlers[start:int(end)+1], saved)
	}
}

// RegisterHardware installs a hardware register at address, which must
// lie in 0xFF00 - 0xFF7F or be 0xFFFF.
func (m *MMU) RegisterHardware(address types.HardwareAddress, write func(v uint8), read func() uint8) {
	m.registers.Register(address, write, read)
	m.handlers[address] = m.io
}

// Read returns the value at the given address, through its handler if
// one is mapped.
func (m *MMU) Read(address uint16) uint8 {
	if h := m.handlers[address]; h != nil && h.Read != nil {
		return h.Read(address)
	}
	return m.raw[address]
}

// Write writes value to the given address, through its handler if one
// is mapped.
func (m *MMU) Write(address uint16, value uint8) {
	if h := m.handlers[address]; h != nil {
		if h.Write != nil {
			h.Write(address, value)
		}
		return
	}
	m.raw[address] = value
}

// Read16 reads a little-endian word, low byte at address.
func (m *MMU) Read16(address uint16) uint16 {
	return uint16(m.Read(address)) | uint16(m.Read(address+1))<<8
}

// Write16 writes a little-endian word, low byte at address.
func (m *MMU) Write16(address uint16, value uint16) {
	m.Write(address, uint8(value))
	m.Write(address+1, uint8(value>>8))
}

// Peek reads the backing store directly, ignoring any handler.
func (m *MMU) Peek(address uint16) uint8 {
	return m.raw[address]
}

// Poke writes the backing store directly, ignoring any handler.
func (m *MMU) Poke(address uint16, value uint8) {
	m.raw[address] = value
}

// Range returns a copy of the backing store for [start, end].
func (m *MMU) Range(start, end uint16) []byte {
	b := make([]byte, int(end)-int(start)+1)
	copy(b, m.raw[start:int(end)+1])
	return b
}
