// Copyright 2024, Jason S. McMullan <jason.mcmullan@gmail.com>

package emulator

import (
	"time"

	"github.com/ezrec/vcomp/cpu"
	"github.com/ezrec/vcomp/io"
)

// Emulator state. CPU + program listing + devices.
type Emulator struct {
	Verbose  bool         // If set, enables verbose logging.
	*cpu.Cpu              // Reference to the CPU simulation.
	Program  *cpu.Program // Reference to the currently loaded program listing.

	Sys      io.System   // System device.
	Keyboard io.Keyboard // Keyboard device.
	Mouse    io.Mouse    // Mouse device.
	Console  io.Console  // Console device, when attached.
}

// NewEmulator creates a new emulator with an empty program.
func NewEmulator() (emu *Emulator) {
	emu = &Emulator{
		Cpu:     cpu.NewCpu(),
		Program: &cpu.Program{},
	}

	emu.Cpu.SetDevice(io.DEVICE_SYSTEM, &emu.Sys)
	emu.Cpu.SetDevice(io.DEVICE_KEYBOARD, &emu.Keyboard)
	emu.Cpu.SetDevice(io.DEVICE_MOUSE, &emu.Mouse)

	emu.Sys.Rewind()

	return
}

// AttachConsole attaches the console device at id.
func (emu *Emulator) AttachConsole(id uint16) (err error) {
	switch id {
	case io.DEVICE_SYSTEM, io.DEVICE_KEYBOARD, io.DEVICE_MOUSE:
		err = ErrDeviceReserved
		return
	}

	emu.Cpu.SetDevice(id, &emu.Console)

	return
}

// Assemble assembles source into the emulator's program.
func (emu *Emulator) Assemble(source []byte) (err error) {
	asm := &cpu.Assembler{Verbose: emu.Verbose}
	prog, err := asm.Assemble(source)
	if err != nil {
		return
	}

	emu.Program = prog

	return
}

// Reset the machine, and load the program into memory.
func (emu *Emulator) Reset() (err error) {
	emu.Cpu.Verbose = emu.Verbose
	emu.Sys.Verbose = emu.Verbose

	emu.Cpu.Reset()

	err = emu.Cpu.Load(emu.Program.Words)
	if err != nil {
		return
	}

	return
}

// Ticks returns the total ticks since a reset.
func (emu *Emulator) Ticks() int {
	return emu.Cpu.Ticks
}

// Code returns the current instruction code.
func (emu *Emulator) Code() cpu.Code {
	return cpu.Code(emu.Cpu.Memory(emu.Cpu.Iar()))
}

// LineNo returns the current line number for the executing opcode,
// or 0 if it is unknown.
func (emu *Emulator) LineNo() int {
	return emu.Program.Debug(emu.Cpu.Iar())
}

// Done returns true once the program has asked the system to shut down.
func (emu *Emulator) Done() bool {
	return emu.Sys.ShutdownRequested
}

// Delay returns the time each instruction should take at the requested
// clock speed, or 0 when running unpaced.
func (emu *Emulator) Delay() time.Duration {
	if !emu.Sys.Paced() {
		return 0
	}

	return time.Second / time.Duration(emu.Sys.ClockSpeed)
}

// Tick performs a single tick of the emulator.
// Returns done when the program has requested a shutdown.
func (emu *Emulator) Tick() (done bool) {
	if emu.Done() {
		done = true
		return
	}

	emu.Cpu.Verbose = emu.Verbose
	emu.Cpu.Step()

	done = emu.Done()

	return
}

// Run ticks until the program shuts down, or limit ticks have elapsed.
// A limit of 0 or less runs without limit.
func (emu *Emulator) Run(limit int) (err error) {
	for n := 0; limit <= 0 || n < limit; n++ {
		if emu.Tick() {
			return
		}
	}

	err = &ErrRuntime{LineNo: emu.LineNo(), Err: ErrTickLimit}

	return
}
