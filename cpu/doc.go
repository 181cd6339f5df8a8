// Package cpu implements the processor and assembler for the virtual computer.
//
// The CPU consists of an instruction address register (IAR), three 16-bit
// registers (A, B and C), an ALU with add, subtract and pass-through modes,
// zero, carry and input-available flags, and a 4096 word memory. Every
// instruction is a single word: the top four bits select one of sixteen
// opcodes and the low twelve bits are an address or immediate operand.
//
// The assembler translates the three-letter mnemonic language, with
// decimal and binary literals, label declarations and label references,
// into a Program image for the CPU.
package cpu
