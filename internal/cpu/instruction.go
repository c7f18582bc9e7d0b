package cpu

import "fmt"

// Instruction represents a single instruction of the
// CPU.
type Instruction struct {
	name   string     // name of the instruction
	length uint8      // length of the instruction in bytes, prefix included
	fn     func(*CPU) // fn called when executing the instruction
}

// Name returns the mnemonic of the instruction, with operand
// placeholders (d8, d16, a8, a16, r8) left in place.
func (i Instruction) Name() string {
	return i.name
}

// Length returns the length of the instruction in bytes.
func (i Instruction) Length() uint8 {
	return i.length
}

// Defined returns false for opcodes that have no instruction.
func (i Instruction) Defined() bool {
	return i.fn != nil
}

var (
	// InstructionSet holds the first 256 instructions.
	InstructionSet [256]Instruction
	// InstructionSetCB holds the 256 instructions prefixed by 0xCB.
	InstructionSetCB [256]Instruction
)

// DefineInstruction defines the instruction in the InstructionSet,
// with the provided opcode. The handler is responsible for moving the
// program counter, either with advance or by assigning it directly.
func DefineInstruction(opcode uint8, name string, length uint8, fn func(*CPU)) {
	if InstructionSet[opcode].fn != nil {
		panic(fmt.Sprintf("cpu: opcode 0x%02X already defined as %s", opcode, InstructionSet[opcode].name))
	}
	InstructionSet[opcode] = Instruction{
		name:   name,
		length: length,
		fn:     fn,
	}
}

// DefineInstructionCB defines the instruction in the InstructionSetCB.
func DefineInstructionCB(opcode uint8, name string, fn func(*CPU)) {
	InstructionSetCB[opcode] = Instruction{
		name:   name,
		length: 2,
		fn:     fn,
	}
}

// disallowedOpcodes have no instruction on the SM83. Fetching one
// faults the CPU.
var disallowedOpcodes = []uint8{
	0xD3, 0xDB, 0xDD, 0xE3, 0xE4, 0xEB, 0xEC, 0xED, 0xF4, 0xFC, 0xFD,
}

// registerNames are the 8-bit operands in the order they are encoded
// in the low 3 bits of an opcode.
var registerNames = [8]string{"B", "C", "D", "E", "H", "L", "(HL)", "A"}

// pairNames are the 16-bit operands in the order they are encoded in
// bits 4-5 of an opcode.
var pairNames = [4]string{"BC", "DE", "HL", "SP"}

// stackPairNames replace SP with AF for PUSH and POP.
var stackPairNames = [4]string{"BC", "DE", "HL", "AF"}

// conditionNames are the branch conditions encoded in bits 3-4.
var conditionNames = [4]string{"NZ", "Z", "NC", "C"}
