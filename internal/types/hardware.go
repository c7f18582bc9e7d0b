package types

import "fmt"

// HardwareRegisters holds the hardware registers of a single
// machine. The array is indexed by the address of the hardware
// register ANDed with 0x007F, which places IE at index 0x7F.
type HardwareRegisters [0x80]*HardwareRegister

// Read returns the value of the hardware register for
// the given address. If no hardware register is mapped, or
// it is not readable, it returns 0xFF.
func (h *HardwareRegisters) Read(address uint16) uint8 {
	// 0xFF7F aliases the IE slot, but is not IE
	if address == 0xFF7F {
		return 0xFF
	}
	if reg := h[address&0x007F]; reg != nil {
		return reg.Read()
	}
	return 0xFF
}

// Write writes the given value to the hardware register
// for the given address. If the hardware register is not
// writable, it does nothing.
func (h *HardwareRegisters) Write(address uint16, value uint8) {
	if address == 0xFF7F {
		return
	}
	if reg := h[address&0x007F]; reg != nil {
		reg.Write(value)
	}
}

// Register installs a hardware register with the given address and
// read/write functions. The read and write functions are optional, and
// may be nil, in which case the register reads as 0xFF or ignores writes.
func (h *HardwareRegisters) Register(address HardwareAddress, write func(v uint8), read func() uint8) {
	if address != IE && (address < IOStart || address >= HRAMStart) {
		panic(fmt.Sprintf("hardware: 0x%04X is not an I/O address", address))
	}
	h[address&0x007F] = &HardwareRegister{
		address: address,
		write:   write,
		read:    read,
	}
}

// HardwareRegister represents a hardware register of the Game
// Boy. The hardware registers are used to control and
// read the state of the hardware.
type HardwareRegister struct {
	address HardwareAddress
	write   func(v uint8)
	read    func() uint8
}

// Address returns the address the register is mapped to.
func (h *HardwareRegister) Address() HardwareAddress {
	return h.address
}

func (h *HardwareRegister) Read() uint8 {
	if h.read != nil {
		return h.read()
	}
	return NoRead()
}

func (h *HardwareRegister) Write(value uint8) {
	if h.write != nil {
		h.write(value)
	}
}

// NoRead is a convenience function to return a read function that
// always returns 0xFF. This is useful for hardware registers that
// are not readable.
func NoRead() uint8 {
	return 0xFF
}
