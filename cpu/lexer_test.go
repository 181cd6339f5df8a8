package cpu

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestClassify(t *testing.T) {
	assert := assert.New(t)

	table := [](struct {
		ch     byte
		class  CharClass
		folded byte
	}){
		{'a', CHAR_LETTER, 'A'},
		{'z', CHAR_LETTER, 'Z'},
		{'Q', CHAR_LETTER, 'Q'},
		{'_', CHAR_LETTER, '_'},
		{'0', CHAR_DIGIT, '0'},
		{'9', CHAR_DIGIT, '9'},
		{'.', CHAR_PERIOD, '.'},
		{'=', CHAR_EQUALS, '='},
		{'(', CHAR_OPEN_PAREN, '('},
		{')', CHAR_CLOSE_PAREN, ')'},
		{';', CHAR_SEMICOLON, ';'},
		{'\n', CHAR_NEWLINE, '\n'},
		{' ', CHAR_OTHER, ' '},
		{'\t', CHAR_OTHER, '\t'},
		{'#', CHAR_OTHER, '#'},
		{0xff, CHAR_OTHER, 0xff},
	}

	for _, entry := range table {
		class, folded := Classify(entry.ch)
		assert.Equal(entry.class, class, "%q", entry.ch)
		assert.Equal(entry.folded, folded, "%q", entry.ch)
	}
}

func TestTransit(t *testing.T) {
	assert := assert.New(t)

	table := [](struct {
		name     string
		state    AsmState
		ch       byte
		buffered int
		expected Transition
	}){
		{"letter", STATE_OPCODE, 'L', 0, Transition{Next: STATE_OPCODE, Effect: EFFECT_ACCUMULATE}},
		{"mnemonic", STATE_OPCODE, 'A', 2, Transition{Next: STATE_OPERAND, Effect: EFFECT_MNEMONIC}},
		{"default_mnemonic", STATE_DEFAULT, 'A', 2, Transition{Next: STATE_DEFAULT_OPERAND, Effect: EFFECT_MNEMONIC}},
		{"binary_prefix", STATE_OPCODE, 'B', 0, Transition{Next: STATE_BINARY}},
		{"binary_operand", STATE_OPERAND, 'B', 0, Transition{Next: STATE_BINARY}},
		{"binary_default", STATE_DEFAULT_OPERAND, 'B', 0, Transition{Next: STATE_BINARY}},
		{"bad_operand", STATE_OPERAND, 'Q', 0, Transition{Next: STATE_OPERAND, Err: ASM_ERR_UNKNOWN_OPERAND_TYPE}},
		{"decimal", STATE_OPERAND, '7', 0, Transition{Next: STATE_DECIMAL, Effect: EFFECT_ACCUMULATE}},
		{"decimal_more", STATE_DECIMAL, '7', 1, Transition{Next: STATE_DECIMAL, Effect: EFFECT_ACCUMULATE}},
		{"binary_digit", STATE_BINARY, '1', 0, Transition{Next: STATE_BINARY, Effect: EFFECT_ACCUMULATE}},
		{"binary_bad", STATE_BINARY, '2', 1, Transition{Next: STATE_BINARY, Err: ASM_ERR_UNEXPECTED_CHARACTER}},
		{"decimal_letter", STATE_DECIMAL, 'A', 1, Transition{Next: STATE_DECIMAL, Err: ASM_ERR_UNEXPECTED_CHARACTER}},
		{"label_letter", STATE_LABEL_DECL, 'X', 3, Transition{Next: STATE_LABEL_DECL, Effect: EFFECT_ACCUMULATE}},
		{"label_digit", STATE_LABEL_REF, '3', 3, Transition{Next: STATE_LABEL_REF, Effect: EFFECT_ACCUMULATE}},
		{"decl_begin", STATE_OPCODE, '.', 0, Transition{Next: STATE_LABEL_DECL, Effect: EFFECT_DECL_BEGIN}},
		{"decl_operand", STATE_OPERAND, '.', 0, Transition{Next: STATE_LABEL_DECL, Effect: EFFECT_DECL_BEGIN}},
		{"decl_end", STATE_LABEL_DECL, '.', 1, Transition{Next: STATE_EQUALS, Effect: EFFECT_DECL_END}},
		{"decl_empty", STATE_LABEL_DECL, '.', 0, Transition{Next: STATE_LABEL_DECL, Err: ASM_ERR_MISPLACED_PERIOD}},
		{"decl_in_default", STATE_DEFAULT, '.', 0, Transition{Next: STATE_DEFAULT, Err: ASM_ERR_MISPLACED_PERIOD}},
		{"equals", STATE_EQUALS, '=', 0, Transition{Next: STATE_DEFAULT, Effect: EFFECT_EQUALS}},
		{"equals_misplaced", STATE_OPCODE, '=', 0, Transition{Next: STATE_OPCODE, Err: ASM_ERR_MISPLACED_EQUALS}},
		{"equals_expected", STATE_EQUALS, 'L', 0, Transition{Next: STATE_EQUALS, Err: ASM_ERR_EQUALS_EXPECTED}},
		{"equals_space", STATE_EQUALS, ' ', 0, Transition{Next: STATE_EQUALS}},
		{"ref_begin", STATE_DEFAULT_OPERAND, '(', 0, Transition{Next: STATE_LABEL_REF, Effect: EFFECT_REF_BEGIN}},
		{"ref_misplaced", STATE_LABEL_REF, '(', 0, Transition{Next: STATE_LABEL_REF, Err: ASM_ERR_MISPLACED_OPEN_PAREN}},
		{"ref_end", STATE_LABEL_REF, ')', 2, Transition{Next: STATE_OPCODE, Effect: EFFECT_REF_END}},
		{"ref_empty", STATE_LABEL_REF, ')', 0, Transition{Next: STATE_LABEL_REF, Err: ASM_ERR_MISPLACED_CLOSE_PAREN}},
		{"comment", STATE_OPCODE, ';', 0, Transition{Next: STATE_OPCODE, Effect: EFFECT_COMMENT}},
		{"comment_literal", STATE_DECIMAL, ';', 2, Transition{Next: STATE_DECIMAL, Effect: EFFECT_COMMENT}},
		{"comment_operand", STATE_OPERAND, ';', 0, Transition{Next: STATE_OPERAND, Err: ASM_ERR_COMMENT_INSIDE_INSTRUCTION}},
		{"spacer", STATE_OPERAND, ' ', 0, Transition{Next: STATE_OPERAND}},
		{"flush", STATE_BINARY, ' ', 4, Transition{Next: STATE_OPCODE, Effect: EFFECT_FLUSH}},
		{"spacer_in_token", STATE_LABEL_DECL, ' ', 2, Transition{Next: STATE_LABEL_DECL, Err: ASM_ERR_SPACER_IN_TOKEN}},
		{"word_limit", STATE_LABEL_DECL, 'X', MAX_WORD_LENGTH - 1, Transition{Next: STATE_LABEL_DECL, Effect: EFFECT_ACCUMULATE}},
		{"word_too_long", STATE_LABEL_DECL, 'X', MAX_WORD_LENGTH, Transition{Next: STATE_LABEL_DECL, Err: ASM_ERR_WORD_TOO_LONG}},
	}

	for _, entry := range table {
		class, ch := Classify(entry.ch)
		tr := Transit(entry.state, class, ch, entry.buffered)
		assert.Equal(entry.expected, tr, entry.name)
	}
}

func TestAsmState(t *testing.T) {
	assert := assert.New(t)

	assert.Equal("opcode", STATE_OPCODE.String())
	assert.Equal("default operand", STATE_DEFAULT_OPERAND.String())
	assert.Equal("AsmState(42)", AsmState(42).String())

	assert.True(STATE_BINARY.Numeric())
	assert.True(STATE_DECIMAL.Numeric())
	assert.False(STATE_OPERAND.Numeric())
}
