// Copyright 2024, Jason S. McMullan <jason.mcmullan@gmail.com>

package cpu

import (
	"io"
	"log"
	"slices"
)

// Assembler is a two pass assembler for the virtual computer.
//
// The first pass reads the source one character at a time, driven by
// Transit, emitting a word for every instruction or literal and recording
// label declarations and references. The second pass patches every
// reference with the position of its declaration.
type Assembler struct {
	Verbose bool // If set, verbosely logs the assembler actions.

	Declarations []Label // Label declarations of the last run.
	References   []Label // Label references of the last run.

	state     AsmState
	word      []byte // Folded characters of the current token.
	pending   uint32 // Instruction value under construction.
	hasOpcode bool   // pending carries an opcode.
	inDefault bool   // pending is a declaration's default value.

	pos         int // Offset of the current character.
	lineno      int // Line of the current character.
	lastNewline int // Offset of the last newline, or -1.

	words   []uint16
	linenos []int
}

// Parse assembles an input stream into a Program.
func (asm *Assembler) Parse(input io.Reader) (prog *Program, err error) {
	source, err := io.ReadAll(input)
	if err != nil {
		return
	}

	return asm.Assemble(source)
}

// Assemble assembles source text into a Program.
// The first failure stops the run and is returned as an *ErrSyntax.
func (asm *Assembler) Assemble(source []byte) (prog *Program, err error) {
	asm.reset()

	for asm.pos = 0; asm.pos < len(source); asm.pos++ {
		class, ch := Classify(source[asm.pos])
		newline := class == CHAR_NEWLINE
		if newline {
			class = CHAR_OTHER
		}

		tr := Transit(asm.state, class, ch, len(asm.word))
		if tr.Err != ASM_ERR_NONE {
			err = asm.fail(tr.Err)
			return
		}

		err = asm.apply(tr, ch, source)
		if err != nil {
			return
		}

		if newline {
			asm.newline()
		}
	}

	err = asm.finish(len(source))
	if err != nil {
		return
	}

	err = Resolve(asm.words, asm.Declarations, asm.References)
	if err != nil {
		return
	}

	prog = &Program{
		Words:  slices.Clone(asm.words),
		LineNo: slices.Clone(asm.linenos),
	}

	return
}

// reset clears all state from a previous run.
func (asm *Assembler) reset() {
	asm.Declarations = nil
	asm.References = nil
	asm.state = STATE_OPCODE
	asm.word = asm.word[:0]
	asm.pending = 0
	asm.hasOpcode = false
	asm.inDefault = false
	asm.pos = 0
	asm.lineno = 1
	asm.lastNewline = -1
	asm.words = asm.words[:0]
	asm.linenos = asm.linenos[:0]
}

func (asm *Assembler) newline() {
	asm.lineno++
	asm.lastNewline = asm.pos
}

// fail returns the error located at the current character.
func (asm *Assembler) fail(kind AsmError) error {
	err := &ErrSyntax{
		Kind:   kind,
		LineNo: asm.lineno,
		Column: asm.pos - asm.lastNewline,
	}
	if asm.Verbose {
		log.Printf("asm: %v (state %v)", err, asm.state)
	}
	return err
}

// label creates a label record at the current output position.
func (asm *Assembler) label() Label {
	return Label{
		Position: len(asm.words),
		LineNo:   asm.lineno,
		Column:   asm.pos - asm.lastNewline,
	}
}

// apply performs the side effect of a transition.
func (asm *Assembler) apply(tr Transition, ch byte, source []byte) (err error) {
	prior := asm.state
	asm.state = tr.Next

	switch tr.Effect {
	case EFFECT_NONE:
	case EFFECT_ACCUMULATE:
		asm.word = append(asm.word, ch)
	case EFFECT_MNEMONIC:
		asm.word = append(asm.word, ch)
		op, ok := LookupMnemonic(string(asm.word))
		if !ok {
			err = asm.fail(ASM_ERR_UNKNOWN_INSTRUCTION)
			return
		}
		asm.pending = uint32(op) << OPCODE_SHIFT
		asm.hasOpcode = true
		asm.word = asm.word[:0]
	case EFFECT_DECL_BEGIN:
		if prior == STATE_OPCODE {
			// A bare declaration starts a new word.
			asm.pending = 0
			asm.hasOpcode = false
		}
		asm.Declarations = append(asm.Declarations, asm.label())
	case EFFECT_DECL_END:
		asm.Declarations[len(asm.Declarations)-1].Name = string(asm.word)
		asm.word = asm.word[:0]
	case EFFECT_EQUALS:
		asm.inDefault = true
	case EFFECT_REF_BEGIN:
		if prior == STATE_OPCODE {
			asm.pending = 0
			asm.hasOpcode = false
		}
		asm.References = append(asm.References, asm.label())
	case EFFECT_REF_END:
		asm.References[len(asm.References)-1].Name = string(asm.word)
		asm.word = asm.word[:0]
		// References carry no default, so the word is complete.
		err = asm.commit()
	case EFFECT_COMMENT:
		if len(asm.word) != 0 {
			// The comment ends the literal.
			asm.state = STATE_OPCODE
			err = asm.flush(prior)
			if err != nil {
				return
			}
		}
		for asm.pos+1 < len(source) && source[asm.pos+1] != '\n' {
			asm.pos++
		}
		if asm.pos+1 < len(source) {
			asm.pos++
			asm.newline()
		}
	case EFFECT_FLUSH:
		err = asm.flush(prior)
	}

	return
}

// flush converts the buffered literal, read in state, and commits the word.
func (asm *Assembler) flush(state AsmState) (err error) {
	base := uint32(10)
	if state == STATE_BINARY {
		base = 2
	}

	var value uint32
	for _, digit := range asm.word {
		value = value*base + uint32(digit-'0')
		if value >= WORD_LIMIT {
			err = asm.fail(ASM_ERR_INSTRUCTION_OVERFLOW)
			return
		}
	}
	asm.word = asm.word[:0]

	if asm.inDefault && asm.hasOpcode && value > OPERAND_MASK {
		err = asm.fail(ASM_ERR_VALUE_TOO_LARGE)
		return
	}

	asm.pending += value
	if asm.pending >= WORD_LIMIT {
		err = asm.fail(ASM_ERR_INSTRUCTION_OVERFLOW)
		return
	}

	return asm.commit()
}

// commit appends the pending word to the program.
func (asm *Assembler) commit() (err error) {
	if len(asm.words) >= MEMORY_SIZE {
		err = asm.fail(ASM_ERR_PROGRAM_TOO_LARGE)
		return
	}

	word := uint16(asm.pending)
	if asm.inDefault && len(asm.Declarations) != 0 {
		decl := &asm.Declarations[len(asm.Declarations)-1]
		decl.HasDefault = true
		decl.Default = word
	}

	if asm.Verbose {
		log.Printf("asm: %03x: %04x (line %d)", len(asm.words), word, asm.lineno)
	}

	asm.words = append(asm.words, word)
	asm.linenos = append(asm.linenos, asm.lineno)

	asm.pending = 0
	asm.hasOpcode = false
	asm.inDefault = false

	return
}

// finish handles the end of input.
func (asm *Assembler) finish(size int) (err error) {
	asm.pos = max(size-1, 0)

	switch {
	case len(asm.word) != 0 && asm.state.Numeric():
		// End of input terminates a literal.
		err = asm.flush(asm.state)
		asm.state = STATE_OPCODE
	case len(asm.word) != 0 && (asm.state == STATE_LABEL_DECL || asm.state == STATE_LABEL_REF):
		err = asm.fail(ASM_ERR_UNEXPECTED_END_OF_FILE)
	case len(asm.word) != 0:
		err = asm.fail(ASM_ERR_INCOMPLETE_INSTRUCTION)
	case asm.state == STATE_EQUALS && asm.hasOpcode:
		// Only a bare declaration may end the input without a value.
		err = asm.fail(ASM_ERR_INCOMPLETE_INSTRUCTION)
	case asm.state == STATE_LABEL_DECL, asm.state == STATE_LABEL_REF, asm.state == STATE_DEFAULT:
		err = asm.fail(ASM_ERR_UNEXPECTED_END_OF_FILE)
	case asm.state == STATE_OPERAND, asm.state == STATE_DEFAULT_OPERAND, asm.state == STATE_BINARY:
		err = asm.fail(ASM_ERR_INCOMPLETE_INSTRUCTION)
	}

	return
}
