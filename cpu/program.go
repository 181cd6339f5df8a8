package cpu

import (
	"iter"
	"slices"

	"github.com/ezrec/vcomp/io"
)

// Program is an assembled program image.
type Program struct {
	Words  []uint16 // Image, loaded at address 0.
	LineNo []int    // Source line of each word; may be empty.
}

// NewProgram wraps a raw image, such as one read from a ROM.
func NewProgram(words []uint16) (prog *Program) {
	prog = &Program{
		Words: slices.Clone(words),
	}

	return
}

// Debug returns the source line that emitted the word at iar,
// or 0 if it is unknown.
func (prog *Program) Debug(iar uint16) (lineno int) {
	if int(iar) < len(prog.LineNo) {
		lineno = prog.LineNo[iar]
	}

	return
}

// Codes iterates over the image as instructions.
func (prog *Program) Codes() iter.Seq2[uint16, Code] {
	return func(yield func(iar uint16, code Code) bool) {
		for n, word := range prog.Words {
			if !yield(uint16(n), Code(word)) {
				return
			}
		}
	}
}

// Rom returns the image in its storage form.
func (prog *Program) Rom() *io.Rom {
	return &io.Rom{Data: slices.Clone(prog.Words)}
}
