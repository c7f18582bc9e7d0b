package cpu

import (
	"fmt"

	"github.com/thelolagemann/gbcore/internal/types"
)

// Trace describes the outcome of a single Step, so that a caller can
// log or display execution without the CPU performing any I/O.
type Trace struct {
	// PC is the address the instruction was fetched from.
	PC uint16
	// Opcode is the opcode byte, the second byte for prefixed instructions.
	Opcode uint8
	// Prefixed is true for instructions behind the 0xCB prefix.
	Prefixed bool
	// Mnemonic is the disassembled instruction, empty for an idle step.
	Mnemonic string
	// Halted is true if the CPU is halted after the step.
	Halted bool
	// Interrupt is the vector jumped to after the instruction, or 0.
	Interrupt uint16
	// Registers holds the register file after the step.
	Registers types.RegisterSnapshot
}

func (t Trace) String() string {
	mnemonic := t.Mnemonic
	if mnemonic == "" && t.Halted {
		mnemonic = "(halted)"
	}
	s := fmt.Sprintf("%04X %-18s %s", t.PC, mnemonic, t.Registers)
	if t.Interrupt != 0 {
		s += fmt.Sprintf(" INT %02Xh", t.Interrupt)
	}
	return s
}

// Fields returns the trace as structured key/value pairs.
func (t Trace) Fields() map[string]interface{} {
	f := t.Registers.Fields()
	f["at"] = fmt.Sprintf("%04X", t.PC)
	f["opcode"] = fmt.Sprintf("%02X", t.Opcode)
	if t.Prefixed {
		f["opcode"] = fmt.Sprintf("CB%02X", t.Opcode)
	}
	f["mnemonic"] = t.Mnemonic
	if t.Halted {
		f["halted"] = true
	}
	if t.Interrupt != 0 {
		f["interrupt"] = fmt.Sprintf("%02X", t.Interrupt)
	}
	return f
}
