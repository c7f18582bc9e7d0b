package types

// Address represents a memory address in the Game Boy's memory,
// which can be read from or written to. It is used to intercept
// accesses to a range of the address space, and instead use a more
// specific implementation than the flat backing store.
type Address struct {
	// Read is a function that is called when the CPU reads from
	// the address.
	Read func(address uint16) uint8
	// Write is a function that is called when the CPU writes to
	// the address.
	Write func(address uint16, value uint8)
}

// EntryPoint is where execution starts once the boot ROM has handed
// over control to the cartridge.
const EntryPoint uint16 = 0x0100

// ROMBankSize is the size of a single 16KB ROM bank.
const ROMBankSize = 0x4000

// Memory map boundaries. Each constant marks the first address
// of its region.
const (
	ROM0Start     uint16 = 0x0000 // fixed ROM bank
	ROMXStart     uint16 = 0x4000 // switchable ROM bank
	VRAMStart     uint16 = 0x8000 // video RAM
	ERAMStart     uint16 = 0xA000 // external (cartridge) RAM
	WRAMStart     uint16 = 0xC000 // work RAM
	EchoStart     uint16 = 0xE000 // mirror of C000-DDFF
	OAMStart      uint16 = 0xFE00 // sprite attribute table
	UnusableStart uint16 = 0xFEA0
	IOStart       uint16 = 0xFF00 // I/O registers
	HRAMStart     uint16 = 0xFF80 // high RAM
)

// HardwareAddress represents the address of a hardware
// register of the Game Boy. The hardware registers are mapped
// to memory addresses 0xFF00 - 0xFF7F & 0xFFFF.
type HardwareAddress = uint16

const (
	// P1 is the joypad register.
	P1 HardwareAddress = 0xFF00
	// SB is the serial transfer data register.
	SB HardwareAddress = 0xFF01
	// SC is the serial transfer control register.
	SC HardwareAddress = 0xFF02
	// DIV is the divider register.
	DIV HardwareAddress = 0xFF04
	// IF is the address of the IF hardware register. The IF
	// hardware register is used to request interrupts. Writing a 1
	// to a bit in IF requests an interrupt, and writing a 0 clears
	// the request.
	//
	//  Bit 0: V-Blank Interrupt Request (INT 40h)  (1=Request)
	//  Bit 1: LCD STAT Interrupt Request (INT 48h) (1=Request)
	//  Bit 2: Timer Interrupt Request (INT 50h)    (1=Request)
	//  Bit 3: Serial Interrupt Request (INT 58h)   (1=Request)
	//  Bit 4: Joypad Interrupt Request (INT 60h)   (1=Request)
	IF HardwareAddress = 0xFF0F
	// LCDC is the LCD control register.
	LCDC HardwareAddress = 0xFF40
	// BDIS unmaps the boot ROM when written to.
	BDIS HardwareAddress = 0xFF50
	// IE is the address of the IE hardware register. The IE
	// hardware register selects which interrupts may be serviced,
	// using the same bit layout as IF.
	IE HardwareAddress = 0xFFFF
)
