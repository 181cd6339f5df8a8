package cpu

import (
	"bytes"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/ezrec/vcomp/io"
)

// runProgram assembles source, loads it into a new CPU, and executes steps
// instructions.
func runProgram(t *testing.T, source string, steps int) (cpu *Cpu) {
	asm := &Assembler{}
	prog, err := asm.Assemble([]byte(source))
	if err != nil {
		t.Fatalf("%v: %v", source, err)
	}

	cpu = NewCpu()
	err = cpu.Load(prog.Words)
	assert.NoError(t, err)

	for range steps {
		cpu.Step()
	}

	return
}

func TestCpu(t *testing.T) {
	assert := assert.New(t)

	cpu := NewCpu()
	assert.Equal(uint16(0), cpu.Iar())
	assert.Equal(ALU_OTHER, cpu.AluMode())
	assert.False(cpu.Zero())
	assert.False(cpu.Carry())
	assert.False(cpu.InputAvailable())
	assert.False(cpu.TraceOverflow())

	sys := cpu.System()
	if assert.NotNil(sys) {
		assert.Equal(io.SYSTEM_DEFAULT_CLOCK_SPEED, sys.ClockSpeed)
	}

	for _, id := range []uint16{io.DEVICE_SYSTEM, io.DEVICE_KEYBOARD, io.DEVICE_MOUSE} {
		_, ok := cpu.Device(id)
		assert.True(ok, id)
	}
	_, ok := cpu.Device(4)
	assert.False(ok)

	assert.Contains(cpu.String(), "iar")
}

func TestCpu_Arithmetic(t *testing.T) {
	assert := assert.New(t)

	table := [](struct {
		name   string
		source string
		steps  int
		a, b   uint16
		c      uint16
		zero   bool
		carry  bool
		mode   AluMode
	}){
		{"add", "LDA 5\nADD 7\nSTR 100", 3, 5, 7, 12, false, false, ALU_ADD},
		{"lda_reruns_alu", "LDA 1\nADD 2\nLDA 10", 3, 10, 2, 12, false, false, ALU_ADD},
		{"lda_other", "LDA 0", 1, 0, 0, 0, true, false, ALU_OTHER},
		{"add_overflow", "LAA (x)\nADA (y)\n.x. = 60000\n.y. = 10000", 2, 60000, 10000, 4464, false, true, ALU_ADD},
		{"sub", "LDA 10\nSBD 3", 2, 10, 3, 7, false, false, ALU_SUB},
		{"sub_underflow", "LDA 5\nSBD 10", 2, 5, 10, 65531, false, true, ALU_SUB},
		{"sub_zero", "LDA 5\nSBA (x)\n.x. = 5", 2, 5, 5, 0, true, false, ALU_SUB},
		{"std", "LDA B1111\nADD B0101\nSTD 50", 3, 15, 5, 10, false, false, ALU_OTHER},
		{"std_zero", "LDA 5\nADD 5\nSTD 50", 3, 5, 5, 0, true, false, ALU_OTHER},
		{"std_keeps_carry", "LDA 5\nSBD 10\nSTD 50", 3, 5, 10, 5, false, true, ALU_OTHER},
		{"ssd_one", "LDA 1\nADD 1\nSSD 0", 3, 1, 1, 0x8000, false, false, ALU_OTHER},
		{"ssd_four", "LAA (x)\nADD 4\nSSD 0\n.x. = 4660", 3, 0x1234, 4, 0x4123, false, false, ALU_OTHER},
		{"ssd_mod16", "LDA 3\nADD 17\nSSD 0", 3, 3, 17, 0x8001, false, false, ALU_OTHER},
		{"ssd_zero", "LDA 0\nADD 3\nSSD 0", 3, 0, 3, 0, true, false, ALU_OTHER},
	}

	for _, entry := range table {
		cpu := runProgram(t, entry.source, entry.steps)
		assert.Equal(entry.a, cpu.A(), entry.name)
		assert.Equal(entry.b, cpu.B(), entry.name)
		assert.Equal(entry.c, cpu.C(), entry.name)
		assert.Equal(entry.zero, cpu.Zero(), entry.name)
		assert.Equal(entry.carry, cpu.Carry(), entry.name)
		assert.Equal(entry.mode, cpu.AluMode(), entry.name)
		assert.Equal(uint16(entry.steps), cpu.Iar(), entry.name)
	}
}

func TestCpu_Store(t *testing.T) {
	assert := assert.New(t)

	cpu := runProgram(t, "LDA 5\nADD 7\nSTR 100\nLDA B1111\nADD B0101\nSTD 101", 6)
	assert.Equal(uint16(12), cpu.Memory(100))
	assert.Equal(uint16(10), cpu.Memory(101))
	assert.Equal(uint16(0), cpu.Memory(MEMORY_SIZE))
}

func TestCpu_Jump(t *testing.T) {
	assert := assert.New(t)

	table := [](struct {
		name   string
		source string
		steps  int
		iar    uint16
	}){
		{"jmp", "JMP 100", 1, 100},
		{"jiz_taken", "LDA 5\nSBD 5\nJIZ 40", 3, 40},
		{"jiz_not_taken", "LDA 5\nSBD 4\nJIZ 40", 3, 3},
		{"jie_taken", "LDA 5\nSBD 10\nJIE 50", 3, 50},
		{"jie_not_taken", "LDA 5\nSBD 1\nJIE 50", 3, 3},
		{"jii_not_taken", "JII 60", 1, 1},
		{"jbt_taken", "LDA 12\nADD 4\nJBT 100", 3, 100},
		{"jbt_not_taken", "LDA 5\nADD 6\nJBT 100", 3, 3},
		{"jbt_empty_mask", "LDA 0\nADD 0\nJBT 100", 3, 100},
		{"loop", ".top. = JMP (top)", 5, 0},
	}

	for _, entry := range table {
		cpu := runProgram(t, entry.source, entry.steps)
		assert.Equal(entry.iar, cpu.Iar(), entry.name)
	}
}

func TestCpu_BitTestLowBit(t *testing.T) {
	assert := assert.New(t)

	table := [](struct {
		source string
		mask   uint16
		low    uint16
	}){
		// A=12 B=4: all of B set in A; A is even.
		{"LDA 12\nADD 4\nJBT 100", 100, 3},
		// A=5 B=6: bit 1 of B missing from A; A is odd.
		{"LDA 5\nADD 6\nJBT 100", 3, 100},
		// A=7 B=3: both readings jump.
		{"LDA 7\nADD 3\nJBT 100", 100, 100},
	}

	for _, entry := range table {
		asm := &Assembler{}
		prog, err := asm.Assemble([]byte(entry.source))
		assert.NoError(err)

		for _, mode := range []BitTest{BIT_TEST_MASK, BIT_TEST_LOW_BIT} {
			cpu := NewCpu()
			cpu.BitTest = mode
			cpu.Load(prog.Words)
			for range 3 {
				cpu.Step()
			}

			expected := entry.mask
			if mode == BIT_TEST_LOW_BIT {
				expected = entry.low
			}
			assert.Equal(expected, cpu.Iar(), entry.source)
		}
	}
}

func TestCpu_Input(t *testing.T) {
	assert := assert.New(t)

	cpu := runProgram(t, "GIN 10\nGIN 11\nGIN 12", 0)
	cpu.PushInput(io.DEVICE_SYSTEM, 100)
	cpu.PushInput(io.DEVICE_KEYBOARD, 200)
	assert.True(cpu.InputAvailable())
	assert.Equal(2, cpu.InputPending())

	cpu.Step()
	assert.Equal(uint16(200), cpu.Memory(10))
	assert.True(cpu.InputAvailable())

	cpu.Step()
	assert.Equal(uint16(100), cpu.Memory(11))
	assert.False(cpu.InputAvailable())

	cpu.Step()
	assert.Equal(uint16(0), cpu.Memory(12))
	assert.Equal(0, cpu.InputPending())
}

func TestCpu_InputJump(t *testing.T) {
	assert := assert.New(t)

	cpu := runProgram(t, ".wait. = JII (got)\nJMP (wait)\n.got. = GIN 100", 0)

	for range 4 {
		cpu.Step()
	}
	assert.Equal(uint16(0), cpu.Iar())

	dev, ok := cpu.Device(io.DEVICE_KEYBOARD)
	if assert.True(ok) {
		dev.(*io.Keyboard).Press(cpu, 'x', 'y', 'z')
	}
	assert.Equal(3, cpu.InputPending())

	cpu.Step()
	assert.Equal(uint16(2), cpu.Iar())

	// The last word of the event is read first.
	cpu.Step()
	assert.Equal(uint16('z'), cpu.Memory(100))
}

func TestCpu_System(t *testing.T) {
	assert := assert.New(t)

	cpu := runProgram(t, "LDA 1\nSOT 0\nGIN 20\nSOT 1\nSOT 250\nSOT 0\nGIN 21\nSOT 3", 8)
	assert.Equal(uint16(1001), cpu.Memory(20))
	assert.Equal(uint16(250), cpu.Memory(21))

	sys := cpu.System()
	assert.Equal(uint16(250), sys.ClockSpeed)
	assert.True(sys.ShutdownRequested)

	cpu.Reset()
	assert.Equal(io.SYSTEM_DEFAULT_CLOCK_SPEED, sys.ClockSpeed)
	assert.False(sys.ShutdownRequested)
}

func TestCpu_Devices(t *testing.T) {
	assert := assert.New(t)

	source := "LDA 9\nSOT 72\nSOT 105\nLDA 2\nSOT 1\nLDA 3\nSOT 1\nLDA 77\nSOT 1"

	cpu := runProgram(t, source, 9)
	assert.Equal(0, cpu.InputPending())

	buff := &bytes.Buffer{}
	cpu = runProgram(t, source, 0)
	cpu.SetDevice(9, &io.Console{Output: buff})
	for range 9 {
		cpu.Step()
	}
	assert.Equal("Hi", buff.String())
	assert.Equal(0, cpu.InputPending())

	cpu.SetDevice(9, nil)
	_, ok := cpu.Device(9)
	assert.False(ok)
}

func TestCpu_IarWrap(t *testing.T) {
	assert := assert.New(t)

	words := make([]uint16, MEMORY_SIZE)
	words[0] = uint16(MakeCode(OP_JMP, MEMORY_SIZE-1))
	words[MEMORY_SIZE-1] = uint16(MakeCode(OP_LDA, 7))

	cpu := NewCpu()
	err := cpu.Load(words)
	assert.NoError(err)

	cpu.Step()
	assert.Equal(uint16(MEMORY_SIZE-1), cpu.Iar())

	cpu.Step()
	assert.Equal(uint16(7), cpu.A())
	assert.Equal(uint16(0), cpu.Iar())

	err = cpu.Load(make([]uint16, MEMORY_SIZE+1))
	assert.ErrorIs(err, io.ErrRomTooLarge)
}

func TestCpu_Trace(t *testing.T) {
	assert := assert.New(t)

	cpu := runProgram(t, "LDA 5\nADD 7\nSTR 100\nLDA 5\nSBD 5\nJIZ 7\nLDA 1\nLDA 1\nSOT 3", 0)

	expected := []TraceEntry{
		{0, OP_LDA, 5, 0},
		{1, OP_ADD, 7, 0},
		{2, OP_STR, 12, 100},
		{3, OP_LDA, 5, 0},
		{4, OP_SBD, 5, 0},
		{5, OP_JIZ, 1, 7},
		{7, OP_LDA, 1, 0},
		{8, OP_SOT, 1, 3},
	}

	for _, entry := range expected {
		assert.Equal(entry, cpu.Step())
	}

	var lines []string
	for entry := range cpu.Trace() {
		lines = append(lines, entry.String())
	}
	assert.Len(lines, len(expected))
	assert.Equal("iar: 5   | JIZ | jump: 7   | zero flag was true", lines[5])

	assert.Equal(expected, cpu.DrainTrace())
	assert.Empty(cpu.DrainTrace())
	assert.Equal(len(expected), cpu.Ticks)
}

func TestCpu_TraceOverflow(t *testing.T) {
	assert := assert.New(t)

	// Memory of zeros is LDA 0 everywhere.
	cpu := NewCpu()
	for range 4097 {
		cpu.Step()
	}

	assert.True(cpu.TraceOverflow())

	entries := cpu.DrainTrace()
	assert.Len(entries, TRACE_CAPACITY-1)
	assert.Equal(uint16(2), entries[0].Iar)
	assert.Equal(uint16(0), entries[len(entries)-1].Iar)
	assert.False(cpu.TraceOverflow())
}

func TestCpu_Reset(t *testing.T) {
	assert := assert.New(t)

	cpu := runProgram(t, "LDA 5\nSBD 10\nSTR 100", 3)
	cpu.PushInput(io.DEVICE_MOUSE, 1)
	assert.True(cpu.Carry())

	cpu.Reset()
	assert.Equal(uint16(0), cpu.A())
	assert.Equal(uint16(0), cpu.B())
	assert.Equal(uint16(0), cpu.C())
	assert.Equal(uint16(0), cpu.Iar())
	assert.Equal(uint16(0), cpu.Memory(100))
	assert.Equal(uint16(0), cpu.Memory(0))
	assert.False(cpu.Carry())
	assert.False(cpu.InputAvailable())
	assert.Equal(ALU_OTHER, cpu.AluMode())
	assert.Equal(0, cpu.InputPending())
	assert.Equal(0, cpu.Ticks)
	assert.Empty(cpu.DrainTrace())
}

func TestCpu_Independent(t *testing.T) {
	assert := assert.New(t)

	one := runProgram(t, "LDA 1\nADD 1\nSTR 0", 3)
	two := runProgram(t, "LDA 2\nADD 2\nSTR 0", 3)

	assert.Equal(uint16(2), one.Memory(0))
	assert.Equal(uint16(4), two.Memory(0))
	assert.True(strings.Contains(two.String(), "0004"))
}
