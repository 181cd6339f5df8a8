package cpu

// CharClass is the lexical class of a source character.
type CharClass int

const (
	CHAR_OTHER       = CharClass(0) // Spacers and anything unlisted.
	CHAR_LETTER      = CharClass(1) // a-z, A-Z and '_'.
	CHAR_DIGIT       = CharClass(2) // 0-9
	CHAR_PERIOD      = CharClass(3) // Begins or ends a label declaration.
	CHAR_EQUALS      = CharClass(4) // Assigns a declaration's default value.
	CHAR_OPEN_PAREN  = CharClass(5) // Begins a label reference.
	CHAR_CLOSE_PAREN = CharClass(6) // Ends a label reference.
	CHAR_SEMICOLON   = CharClass(7) // Begins a comment.
	CHAR_NEWLINE     = CharClass(8)
)

// Classify returns the class of ch, and ch folded to upper case.
func Classify(ch byte) (class CharClass, folded byte) {
	folded = ch
	switch {
	case ch >= 'a' && ch <= 'z':
		folded = ch - 'a' + 'A'
		class = CHAR_LETTER
	case ch >= 'A' && ch <= 'Z', ch == '_':
		class = CHAR_LETTER
	case ch >= '0' && ch <= '9':
		class = CHAR_DIGIT
	case ch == '.':
		class = CHAR_PERIOD
	case ch == '=':
		class = CHAR_EQUALS
	case ch == '(':
		class = CHAR_OPEN_PAREN
	case ch == ')':
		class = CHAR_CLOSE_PAREN
	case ch == ';':
		class = CHAR_SEMICOLON
	case ch == '\n':
		class = CHAR_NEWLINE
	default:
		class = CHAR_OTHER
	}

	return
}

// AsmState is the kind of token the assembler expects next.
//
// STATE_OPCODE accepts an instruction, declaration, reference or literal.
// STATE_OPERAND follows an instruction. STATE_LABEL_DECL and STATE_LABEL_REF
// are inside .name. and (name). STATE_BINARY reads digits after the 'B'
// prefix. STATE_EQUALS expects the '=' after a declaration. STATE_DEFAULT
// reads the default value, whose instruction operand is read in
// STATE_DEFAULT_OPERAND.
type AsmState int

//go:generate go tool stringer -linecomment -type=AsmState
const (
	STATE_OPCODE          = AsmState(0) // opcode
	STATE_OPERAND         = AsmState(1) // operand
	STATE_LABEL_DECL      = AsmState(2) // label declaration
	STATE_LABEL_REF       = AsmState(3) // label reference
	STATE_BINARY          = AsmState(4) // binary
	STATE_DECIMAL         = AsmState(5) // decimal
	STATE_EQUALS          = AsmState(6) // equals
	STATE_DEFAULT         = AsmState(7) // default
	STATE_DEFAULT_OPERAND = AsmState(8) // default operand
)

// Numeric returns true while a literal is being read.
func (state AsmState) Numeric() bool {
	return state == STATE_BINARY || state == STATE_DECIMAL
}

// operandStart returns true if a literal or reference may begin here.
func (state AsmState) operandStart() bool {
	switch state {
	case STATE_OPCODE, STATE_OPERAND, STATE_DEFAULT, STATE_DEFAULT_OPERAND:
		return true
	}
	return false
}

// Effect is the side effect the assembler applies for a transition.
type Effect int

const (
	EFFECT_NONE       = Effect(0) // Nothing; the character is ignored.
	EFFECT_ACCUMULATE = Effect(1) // Append the character to the word buffer.
	EFFECT_MNEMONIC   = Effect(2) // Append, then decode the 3-letter mnemonic.
	EFFECT_DECL_BEGIN = Effect(3) // Record a declaration at the output position.
	EFFECT_DECL_END   = Effect(4) // Name the declaration from the buffer.
	EFFECT_EQUALS     = Effect(5) // Start the default value.
	EFFECT_REF_BEGIN  = Effect(6) // Record a reference at the output position.
	EFFECT_REF_END    = Effect(7) // Name the reference and commit the pending word.
	EFFECT_COMMENT    = Effect(8) // Skip to end of line, then end any literal.
	EFFECT_FLUSH      = Effect(9) // Convert the literal and commit the pending word.
)

// Transition is the outcome of one character.
type Transition struct {
	Next   AsmState
	Effect Effect
	Err    AsmError // ASM_ERR_NONE when the character is accepted.
}

// MAX_WORD_LENGTH is the longest name or literal accepted.
const MAX_WORD_LENGTH = 25

func reject(state AsmState, err AsmError) Transition {
	return Transition{Next: state, Err: err}
}

// Transit computes the transition for a character ch of the given class
// (ch already folded), when buffered characters are held in the word buffer.
// Newlines must be passed as CHAR_OTHER once the line has been counted.
func Transit(state AsmState, class CharClass, ch byte, buffered int) (tr Transition) {
	tr = Transition{Next: state}

	switch class {
	case CHAR_LETTER:
		tr = transitLetter(state, ch, buffered)
	case CHAR_DIGIT:
		tr = transitDigit(state, ch, buffered)
	case CHAR_PERIOD:
		switch {
		case (state == STATE_OPCODE || state == STATE_OPERAND) && buffered == 0:
			tr = Transition{Next: STATE_LABEL_DECL, Effect: EFFECT_DECL_BEGIN}
		case state == STATE_LABEL_DECL && buffered != 0:
			tr = Transition{Next: STATE_EQUALS, Effect: EFFECT_DECL_END}
		default:
			tr = reject(state, ASM_ERR_MISPLACED_PERIOD)
		}
	case CHAR_EQUALS:
		if state == STATE_EQUALS {
			tr = Transition{Next: STATE_DEFAULT, Effect: EFFECT_EQUALS}
		} else {
			tr = reject(state, ASM_ERR_MISPLACED_EQUALS)
		}
	case CHAR_OPEN_PAREN:
		if state.operandStart() && buffered == 0 {
			tr = Transition{Next: STATE_LABEL_REF, Effect: EFFECT_REF_BEGIN}
		} else {
			tr = reject(state, ASM_ERR_MISPLACED_OPEN_PAREN)
		}
	case CHAR_CLOSE_PAREN:
		if state == STATE_LABEL_REF && buffered != 0 {
			tr = Transition{Next: STATE_OPCODE, Effect: EFFECT_REF_END}
		} else {
			tr = reject(state, ASM_ERR_MISPLACED_CLOSE_PAREN)
		}
	case CHAR_SEMICOLON:
		if (state == STATE_OPCODE && buffered == 0) || state.Numeric() {
			tr = Transition{Next: state, Effect: EFFECT_COMMENT}
		} else {
			tr = reject(state, ASM_ERR_COMMENT_INSIDE_INSTRUCTION)
		}
	default:
		switch {
		case buffered == 0:
			// Spacer between tokens.
		case state.Numeric():
			tr = Transition{Next: STATE_OPCODE, Effect: EFFECT_FLUSH}
		default:
			tr = reject(state, ASM_ERR_SPACER_IN_TOKEN)
		}
	}

	if tr.Effect == EFFECT_ACCUMULATE || tr.Effect == EFFECT_MNEMONIC {
		if buffered+1 > MAX_WORD_LENGTH {
			tr = reject(state, ASM_ERR_WORD_TOO_LONG)
		}
	}

	return
}

func transitLetter(state AsmState, ch byte, buffered int) Transition {
	switch state {
	case STATE_OPCODE, STATE_DEFAULT:
		if buffered == 0 && ch == 'B' {
			return Transition{Next: STATE_BINARY}
		}
		if buffered+1 == 3 {
			next := STATE_OPERAND
			if state == STATE_DEFAULT {
				next = STATE_DEFAULT_OPERAND
			}
			return Transition{Next: next, Effect: EFFECT_MNEMONIC}
		}
		return Transition{Next: state, Effect: EFFECT_ACCUMULATE}
	case STATE_OPERAND, STATE_DEFAULT_OPERAND:
		if ch == 'B' {
			return Transition{Next: STATE_BINARY}
		}
		return reject(state, ASM_ERR_UNKNOWN_OPERAND_TYPE)
	case STATE_LABEL_DECL, STATE_LABEL_REF:
		return Transition{Next: state, Effect: EFFECT_ACCUMULATE}
	case STATE_EQUALS:
		return reject(state, ASM_ERR_EQUALS_EXPECTED)
	}

	// Letters never continue a literal.
	return reject(state, ASM_ERR_UNEXPECTED_CHARACTER)
}

func transitDigit(state AsmState, ch byte, buffered int) Transition {
	switch state {
	case STATE_EQUALS:
		return reject(state, ASM_ERR_EQUALS_EXPECTED)
	case STATE_BINARY:
		if ch != '0' && ch != '1' {
			return reject(state, ASM_ERR_UNEXPECTED_CHARACTER)
		}
	case STATE_OPCODE, STATE_OPERAND, STATE_DEFAULT, STATE_DEFAULT_OPERAND:
		if buffered == 0 {
			return Transition{Next: STATE_DECIMAL, Effect: EFFECT_ACCUMULATE}
		}
	}

	return Transition{Next: state, Effect: EFFECT_ACCUMULATE}
}
