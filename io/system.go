package io

import (
	"log"
)

const (
	// SYSTEM_OP_CLOCK_QUERY pushes (DEVICE_SYSTEM, clock speed) onto the input queue.
	SYSTEM_OP_CLOCK_QUERY = uint16(0)
	// SYSTEM_OP_CLOCK_SET stages a clock speed change; the next operand is the speed.
	SYSTEM_OP_CLOCK_SET = uint16(1)
	// SYSTEM_OP_RESTART is reserved for a machine restart. Currently ignored.
	SYSTEM_OP_RESTART = uint16(2)
	// SYSTEM_OP_SHUTDOWN requests that the host stops the machine.
	SYSTEM_OP_SHUTDOWN = uint16(3)

	// SYSTEM_DEFAULT_CLOCK_SPEED is the power-on clock speed in instructions
	// per second. Speeds above SYSTEM_UNPACED_CLOCK_SPEED run without delay.
	SYSTEM_DEFAULT_CLOCK_SPEED = uint16(1001)
	SYSTEM_UNPACED_CLOCK_SPEED = uint16(1000)
)

// System is device 1. Commands that need an argument are staged by one
// Send, and the following Send supplies the argument.
type System struct {
	Verbose bool

	ClockSpeed        uint16 // Requested instructions per second.
	ShutdownRequested bool   // Set by SYSTEM_OP_SHUTDOWN.

	pending bool   // A command is staged.
	command uint16 // The staged command.
}

var _ Device = (*System)(nil)

// Rewind restores the power-on clock speed and clears all requests.
func (sys *System) Rewind() {
	sys.ClockSpeed = SYSTEM_DEFAULT_CLOCK_SPEED
	sys.ShutdownRequested = false
	sys.pending = false
	sys.command = 0
}

// Pending returns the staged command, if any.
func (sys *System) Pending() (command uint16, ok bool) {
	return sys.command, sys.pending
}

// Paced returns true if the host should delay between instructions.
func (sys *System) Paced() bool {
	return sys.ClockSpeed > 0 && sys.ClockSpeed <= SYSTEM_UNPACED_CLOCK_SPEED
}

// Send handles one word of the system command protocol.
func (sys *System) Send(value uint16, input Input) {
	if sys.pending {
		switch sys.command {
		case SYSTEM_OP_CLOCK_SET:
			sys.ClockSpeed = value
			if sys.Verbose {
				log.Printf("system: clock speed %d", value)
			}
		}
		sys.pending = false
		return
	}

	switch value {
	case SYSTEM_OP_CLOCK_QUERY:
		input.Push(DEVICE_SYSTEM, sys.ClockSpeed)
	case SYSTEM_OP_CLOCK_SET:
		sys.command = value
		sys.pending = true
	case SYSTEM_OP_RESTART:
		if sys.Verbose {
			log.Printf("system: restart not supported")
		}
	case SYSTEM_OP_SHUTDOWN:
		sys.ShutdownRequested = true
		if sys.Verbose {
			log.Printf("system: shutdown requested")
		}
	default:
		// Unknown commands are ignored.
	}
}
