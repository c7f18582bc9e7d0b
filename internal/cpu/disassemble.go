package cpu

import (
	"fmt"
	"strings"
)

// Disassemble renders the instruction at addr with its operands filled
// in, and returns its length. Undefined opcodes render as DB.
func Disassemble(bus Bus, addr uint16) (string, uint8) {
	opcode := bus.Read(addr)
	if opcode == 0xCB {
		return InstructionSetCB[bus.Read(addr+1)].name, 2
	}

	instruction := InstructionSet[opcode]
	if !instruction.Defined() {
		return fmt.Sprintf("DB $%02X", opcode), 1
	}

	name := instruction.name
	switch {
	case strings.Contains(name, "d16"), strings.Contains(name, "a16"):
		word := uint16(bus.Read(addr+1)) | uint16(bus.Read(addr+2))<<8
		name = strings.NewReplacer("d16", fmt.Sprintf("$%04X", word), "a16", fmt.Sprintf("$%04X", word)).Replace(name)
	case strings.Contains(name, "r8"):
		offset := int8(bus.Read(addr + 1))
		if strings.HasPrefix(name, "JR") {
			// show the target rather than the offset
			target := addr + 2 + uint16(int16(offset))
			name = strings.Replace(name, "r8", fmt.Sprintf("$%04X", target), 1)
		} else {
			name = strings.Replace(strings.Replace(name, "+r8", "r8", 1), "r8", fmt.Sprintf("%+d", offset), 1)
		}
	case strings.Contains(name, "d8"), strings.Contains(name, "a8"):
		b := bus.Read(addr + 1)
		name = strings.NewReplacer("d8", fmt.Sprintf("$%02X", b), "a8", fmt.Sprintf("$%02X", b)).Replace(name)
	}

	return name, instruction.length
}
