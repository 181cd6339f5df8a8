// Copyright 2024, Jason S. McMullan <jason.mcmullan@gmail.com>

package cpu

import (
	"fmt"
	"iter"
	"log"
	"maps"
	"slices"

	"github.com/ezrec/vcomp/io"
)

// BitTest selects how JBT compares registers A and B.
type BitTest int

const (
	BIT_TEST_MASK    = BitTest(0) // Jump if (A & B) == B.
	BIT_TEST_LOW_BIT = BitTest(1) // Jump if A & 1; the legacy reading.
)

// Cpu is the simulation context of the virtual computer.
type Cpu struct {
	Verbose bool    // Set to enable verbose logging.
	BitTest BitTest // JBT comparison.

	Ticks int // Instructions executed since reset.

	memory [MEMORY_SIZE]uint16

	iar     uint16
	a, b, c uint16

	zero           bool
	carry          bool
	inputAvailable bool
	alu            AluMode

	input  io.InputQueue
	trace  TraceLog
	device map[uint16]io.Device
}

var _ io.Input = (*Cpu)(nil)

// NewCpu creates a powered on CPU with the system, keyboard and mouse
// devices attached.
func NewCpu() (cpu *Cpu) {
	cpu = &Cpu{
		device: map[uint16]io.Device{
			io.DEVICE_SYSTEM:   &io.System{},
			io.DEVICE_KEYBOARD: &io.Keyboard{},
			io.DEVICE_MOUSE:    &io.Mouse{},
		},
	}

	cpu.Reset()

	return
}

// Reset the CPU to its power-on state.
// - Clears memory, registers and flags.
// - Discards queued input and the trace log.
// - Rewinds all devices.
func (cpu *Cpu) Reset() {
	if cpu.Verbose {
		log.Printf("cpu: reset")
	}

	clear(cpu.memory[:])
	cpu.iar = 0
	cpu.a, cpu.b, cpu.c = 0, 0, 0
	cpu.zero = false
	cpu.carry = false
	cpu.inputAvailable = false
	cpu.alu = ALU_OTHER
	cpu.Ticks = 0

	cpu.input.Reset()
	cpu.trace.Reset()

	for _, id := range slices.Sorted(maps.Keys(cpu.device)) {
		cpu.device[id].Rewind()
	}
}

// Load copies a program image into memory starting at address 0.
func (cpu *Cpu) Load(words []uint16) (err error) {
	if len(words) > MEMORY_SIZE {
		err = io.ErrRomTooLarge
		return
	}

	copy(cpu.memory[:], words)

	if cpu.Verbose {
		log.Printf("cpu: loaded %d words", len(words))
	}

	return
}

// SetDevice attaches an output device to an id. A nil device detaches it.
func (cpu *Cpu) SetDevice(id uint16, dev io.Device) {
	if dev == nil {
		delete(cpu.device, id)
		return
	}

	cpu.device[id] = dev
}

// Device returns the device attached to an id.
func (cpu *Cpu) Device(id uint16) (dev io.Device, ok bool) {
	dev, ok = cpu.device[id]
	return
}

// System returns the attached system device, or nil.
func (cpu *Cpu) System() (sys *io.System) {
	sys, _ = cpu.device[io.DEVICE_SYSTEM].(*io.System)
	return
}

// PushInput stores an input event for GIN.
func (cpu *Cpu) PushInput(device, data uint16) {
	cpu.input.Push(device, data)
	cpu.inputAvailable = true
}

// Push implements io.Input, so devices and hosts can feed the CPU directly.
func (cpu *Cpu) Push(device, data uint16) {
	cpu.PushInput(device, data)
}

// InputPending returns the number of stored input events.
func (cpu *Cpu) InputPending() int {
	return cpu.input.Len()
}

func (cpu *Cpu) A() uint16            { return cpu.a }
func (cpu *Cpu) B() uint16            { return cpu.b }
func (cpu *Cpu) C() uint16            { return cpu.c }
func (cpu *Cpu) Iar() uint16          { return cpu.iar }
func (cpu *Cpu) Zero() bool           { return cpu.zero }
func (cpu *Cpu) Carry() bool          { return cpu.carry }
func (cpu *Cpu) InputAvailable() bool { return cpu.inputAvailable }
func (cpu *Cpu) AluMode() AluMode     { return cpu.alu }

// Memory returns the word at addr, or 0 outside of memory.
func (cpu *Cpu) Memory(addr uint16) (value uint16) {
	if int(addr) < MEMORY_SIZE {
		value = cpu.memory[addr]
	}

	return
}

// Trace iterates over the trace log, oldest first, leaving it intact.
func (cpu *Cpu) Trace() iter.Seq[TraceEntry] {
	return cpu.trace.All()
}

// DrainTrace returns the trace log, oldest first, and empties it.
func (cpu *Cpu) DrainTrace() []TraceEntry {
	return cpu.trace.Drain()
}

// TraceOverflow returns true once the trace log has dropped an entry.
func (cpu *Cpu) TraceOverflow() bool {
	return cpu.trace.Overflow
}

// String returns the current CPU state as a string.
func (cpu *Cpu) String() (text string) {
	regs := []string{"iar", "a", "b", "c", "alu", "flags", "input"}
	for _, reg := range regs {
		var strval string
		switch reg {
		case "iar":
			strval = fmt.Sprintf("%03X (%v)", cpu.iar, Code(cpu.memory[cpu.iar]))
		case "a":
			strval = fmt.Sprintf("%04X", cpu.a)
		case "b":
			strval = fmt.Sprintf("%04X", cpu.b)
		case "c":
			strval = fmt.Sprintf("%04X", cpu.c)
		case "alu":
			strval = cpu.alu.String()
		case "flags":
			strval = flagString('Z', cpu.zero) + flagString('C', cpu.carry) + flagString('I', cpu.inputAvailable)
		case "input":
			strval = fmt.Sprintf("%d", cpu.input.Len())
		}
		text += fmt.Sprintf("% 5s: %v\n", reg, strval)
	}

	return
}

func flagString(name byte, set bool) string {
	if set {
		return string(name)
	}
	return "-"
}

// runAlu recomputes C and the flags in the current ALU mode.
func (cpu *Cpu) runAlu() {
	cpu.c, cpu.carry, cpu.zero = Alu(cpu.alu, cpu.a, cpu.b, cpu.c, cpu.carry)
}

// bitTest evaluates the JBT condition.
func (cpu *Cpu) bitTest() bool {
	if cpu.BitTest == BIT_TEST_LOW_BIT {
		return cpu.a&1 != 0
	}
	return cpu.a&cpu.b == cpu.b
}

// rotate returns A rotated right by B mod 16, carrying the low bit through
// bit 16 of a 17-bit work value.
func (cpu *Cpu) rotate() uint16 {
	work := uint32(cpu.a)
	for range cpu.b % 16 {
		if work&1 != 0 {
			work += WORD_LIMIT
		}
		work >>= 1
	}
	return uint16(work)
}

// Step executes exactly one instruction, and returns the trace entry
// recorded for it.
func (cpu *Cpu) Step() (entry TraceEntry) {
	code := Code(cpu.memory[cpu.iar])
	op, operand := code.Opcode(), code.Operand()

	if cpu.Verbose {
		log.Printf("%03x: %v", cpu.iar, code)
	}

	entry = TraceEntry{Iar: cpu.iar, Opcode: op}
	jumped := false

	jump := func(cond bool) {
		if cond {
			entry.Field2 = 1
			entry.Field3 = operand
			cpu.iar = operand
			jumped = true
		}
	}

	switch op {
	case OP_LDA:
		cpu.a = operand
		cpu.runAlu()
		entry.Field2 = cpu.a
	case OP_LAA:
		cpu.a = cpu.memory[operand]
		cpu.runAlu()
		entry.Field2, entry.Field3 = cpu.a, operand
	case OP_ADD, OP_SBD:
		cpu.b = operand
		cpu.alu = ALU_ADD
		if op == OP_SBD {
			cpu.alu = ALU_SUB
		}
		cpu.runAlu()
		entry.Field2 = cpu.b
	case OP_ADA, OP_SBA:
		cpu.b = cpu.memory[operand]
		cpu.alu = ALU_ADD
		if op == OP_SBA {
			cpu.alu = ALU_SUB
		}
		cpu.runAlu()
		entry.Field2, entry.Field3 = cpu.b, operand
	case OP_STR:
		cpu.memory[operand] = cpu.c
		entry.Field2, entry.Field3 = cpu.c, operand
	case OP_STD:
		cpu.c = cpu.a &^ cpu.b
		cpu.memory[operand] = cpu.c
		cpu.alu = ALU_OTHER
		cpu.runAlu()
		entry.Field2, entry.Field3 = cpu.c, operand
	case OP_SSD:
		cpu.c = cpu.rotate()
		cpu.alu = ALU_OTHER
		cpu.runAlu()
		entry.Field2, entry.Field3 = cpu.c, operand
	case OP_JMP:
		cpu.iar = operand
		jumped = true
		entry.Field2 = operand
	case OP_JIZ:
		jump(cpu.zero)
	case OP_JIE:
		jump(cpu.carry)
	case OP_JII:
		jump(cpu.inputAvailable)
	case OP_JBT:
		jump(cpu.bitTest())
	case OP_GIN:
		event, _ := cpu.input.Pop()
		cpu.memory[operand] = event.Data
		entry.Field2, entry.Field3 = operand, event.Data
	case OP_SOT:
		if dev, ok := cpu.device[cpu.a]; ok {
			dev.Send(operand, cpu)
		}
		entry.Field2, entry.Field3 = cpu.a, operand
	default:
		// Undecodable; treated as a no-op.
	}

	if !jumped {
		cpu.iar++
		if cpu.iar >= MEMORY_SIZE {
			cpu.iar = 0
		}
	}

	cpu.inputAvailable = !cpu.input.Empty()
	cpu.trace.Record(entry)
	cpu.Ticks++

	return
}
