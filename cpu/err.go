package cpu

import (
	"github.com/ezrec/vcomp/translate"
)

var f = translate.From

// AsmError is the kind of an assembly failure.
type AsmError int

const (
	ASM_ERR_NONE                       = AsmError(0)
	ASM_ERR_COMMENT_INSIDE_INSTRUCTION = AsmError(1)
	ASM_ERR_UNEXPECTED_END_OF_FILE     = AsmError(2)
	ASM_ERR_UNEXPECTED_CHARACTER       = AsmError(3)
	ASM_ERR_UNKNOWN_OPERAND_TYPE       = AsmError(4)
	ASM_ERR_UNKNOWN_INSTRUCTION        = AsmError(5)
	ASM_ERR_INCOMPLETE_INSTRUCTION     = AsmError(6)
	ASM_ERR_WORD_TOO_LONG              = AsmError(7)
	ASM_ERR_VALUE_TOO_LARGE            = AsmError(8)
	ASM_ERR_SPACER_IN_TOKEN            = AsmError(9)
	ASM_ERR_MISPLACED_PERIOD           = AsmError(10)
	ASM_ERR_MISPLACED_EQUALS           = AsmError(11)
	ASM_ERR_EQUALS_EXPECTED            = AsmError(12)
	ASM_ERR_MISPLACED_OPEN_PAREN       = AsmError(13)
	ASM_ERR_MISPLACED_CLOSE_PAREN      = AsmError(14)
	ASM_ERR_INSTRUCTION_OVERFLOW       = AsmError(15)
	ASM_ERR_DUPLICATE_DECLARATION      = AsmError(16)
	ASM_ERR_UNRESOLVED_REFERENCE       = AsmError(17)
	ASM_ERR_PROGRAM_TOO_LARGE          = AsmError(18)
)

var asmErrorText = map[AsmError]string{
	ASM_ERR_NONE:                       "no error",
	ASM_ERR_COMMENT_INSIDE_INSTRUCTION: "comments cannot be used inside of instructions",
	ASM_ERR_UNEXPECTED_END_OF_FILE:     "unexpected end of file",
	ASM_ERR_UNEXPECTED_CHARACTER:       "unexpected character",
	ASM_ERR_UNKNOWN_OPERAND_TYPE:       "unknown operand type identifier",
	ASM_ERR_UNKNOWN_INSTRUCTION:        "unknown instruction",
	ASM_ERR_INCOMPLETE_INSTRUCTION:     "incomplete instruction",
	ASM_ERR_WORD_TOO_LONG:              "word is too long (exceeds 25 characters)",
	ASM_ERR_VALUE_TOO_LARGE:            "provided value is too large (exceeds 4095)",
	ASM_ERR_SPACER_IN_TOKEN:            "spacers cannot be used in either instruction names or operands",
	ASM_ERR_MISPLACED_PERIOD:           "periods can only be used to begin or end label declarations",
	ASM_ERR_MISPLACED_EQUALS:           "equal signs can only be used to set default values for label declarations",
	ASM_ERR_EQUALS_EXPECTED:            "an equal sign was expected but was not encountered",
	ASM_ERR_MISPLACED_OPEN_PAREN:       "open parentheses can only be used to begin label references",
	ASM_ERR_MISPLACED_CLOSE_PAREN:      "close parentheses can only be used to end label references",
	ASM_ERR_INSTRUCTION_OVERFLOW:       "instruction output value is too large (exceeds 65535)",
	ASM_ERR_DUPLICATE_DECLARATION:      "duplicate label declaration",
	ASM_ERR_UNRESOLVED_REFERENCE:       "label reference without a matching label declaration",
	ASM_ERR_PROGRAM_TOO_LARGE:          "program is larger than memory",
}

func (kind AsmError) Error() string {
	text, ok := asmErrorText[kind]
	if !ok {
		return f("assembler error %d", int(kind))
	}
	return f(text)
}

// ErrSyntax is the location of an assembly failure.
// Label resolution failures have no location, and report LineNo 0.
type ErrSyntax struct {
	Kind   AsmError
	LineNo int
	Column int
}

func (err *ErrSyntax) Error() string {
	if err.LineNo == 0 {
		return f("syntax error (location unknown): %v", err.Kind)
	}
	return f("syntax error at line %d, column %d: %v", err.LineNo, err.Column, err.Kind)
}

func (err *ErrSyntax) Unwrap() error {
	return err.Kind
}
