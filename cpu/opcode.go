package cpu

import (
	"fmt"
)

// Architectural constants.
const (
	MEMORY_SIZE  = 4096   // Memory size in words.
	OPCODE_SHIFT = 12     // Position of the opcode in a word.
	OPERAND_MASK = 0x0fff // Operand bits of a word.
	WORD_LIMIT   = 0x10000
)

// Opcode is the 4-bit instruction selector.
//
//	LDA  A = operand
//	LAA  A = memory[operand]
//	ADD  B = operand, add
//	SBD  B = operand, subtract
//	ADA  B = memory[operand], add
//	SBA  B = memory[operand], subtract
//	STR  memory[operand] = C
//	STD  C = A &^ B, memory[operand] = C
//	SSD  C = A rotated right by B mod 16
//	JMP  jump
//	JIZ  jump if zero
//	JIE  jump if carry
//	JII  jump if input available
//	JBT  jump if bits of B set in A
//	GIN  memory[operand] = input
//	SOT  device[A] <- operand
type Opcode int

//go:generate go tool stringer -linecomment -type=Opcode
const (
	OP_LDA = Opcode(0)  // LDA
	OP_LAA = Opcode(1)  // LAA
	OP_ADD = Opcode(2)  // ADD
	OP_SBD = Opcode(3)  // SBD
	OP_ADA = Opcode(4)  // ADA
	OP_SBA = Opcode(5)  // SBA
	OP_STR = Opcode(6)  // STR
	OP_STD = Opcode(7)  // STD
	OP_SSD = Opcode(8)  // SSD
	OP_JMP = Opcode(9)  // JMP
	OP_JIZ = Opcode(10) // JIZ
	OP_JIE = Opcode(11) // JIE
	OP_JII = Opcode(12) // JII
	OP_JBT = Opcode(13) // JBT
	OP_GIN = Opcode(14) // GIN
	OP_SOT = Opcode(15) // SOT
)

// mnemonicMap maps upper case mnemonics to opcodes.
var mnemonicMap = func() map[string]Opcode {
	mnemonics := make(map[string]Opcode, OP_SOT+1)
	for op := OP_LDA; op <= OP_SOT; op++ {
		mnemonics[op.String()] = op
	}
	return mnemonics
}()

// LookupMnemonic returns the opcode for an upper case mnemonic.
func LookupMnemonic(name string) (op Opcode, ok bool) {
	op, ok = mnemonicMap[name]
	return
}

// Valid returns true if the opcode is one of the sixteen defined opcodes.
func (op Opcode) Valid() bool {
	return op >= OP_LDA && op <= OP_SOT
}

// Code is a single encoded instruction word.
type Code uint16

// MakeCode encodes an opcode and operand.
func MakeCode(op Opcode, operand uint16) Code {
	return Code((uint16(op) << OPCODE_SHIFT) | (operand & OPERAND_MASK))
}

// Opcode returns the opcode from the instruction word.
func (code Code) Opcode() Opcode {
	return Opcode(uint16(code) >> OPCODE_SHIFT)
}

// Operand returns the operand from the instruction word.
func (code Code) Operand() uint16 {
	return uint16(code) & OPERAND_MASK
}

// String returns the assembly language representation of this instruction.
func (code Code) String() string {
	return fmt.Sprintf("%v %d", code.Opcode(), code.Operand())
}
