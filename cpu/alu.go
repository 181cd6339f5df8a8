package cpu

// AluMode is the operation the ALU performs on every run.
type AluMode int

// ALU_OTHER performs no arithmetic; only the zero flag is derived.
// ALU_ADD sets C = A + B, and ALU_SUB sets C = A - B.
//
//go:generate go tool stringer -linecomment -type=AluMode
const (
	ALU_OTHER = AluMode(0) // other
	ALU_ADD   = AluMode(1) // add
	ALU_SUB   = AluMode(2) // sub
)

// Alu runs the ALU in mode over a and b. c and carry are the current C
// register and carry flag, returned unchanged by ALU_OTHER.
// zero is always derived from the resulting C.
func Alu(mode AluMode, a, b, c uint16, carry bool) (result uint16, carryOut bool, zero bool) {
	result = c
	carryOut = carry

	switch mode {
	case ALU_ADD:
		sum := uint32(a) + uint32(b)
		carryOut = sum >= WORD_LIMIT
		result = uint16(sum)
	case ALU_SUB:
		carryOut = a < b
		result = a - b
	}

	zero = result == 0

	return
}
