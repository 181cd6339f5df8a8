// Package io provides the peripheral side of the virtual computer.
// It includes the CPU input event store, the output device interface
// addressed by the SOT instruction, the system device with its two-phase
// command protocol, the input-only keyboard and mouse, a console output
// device, and the ROM image codec.
package io

// Device identifiers carried in register A by SOT, and recorded as the
// origin of input events.
const (
	DEVICE_SYSTEM   = uint16(1) // System control and status.
	DEVICE_KEYBOARD = uint16(2) // Keyboard (input only).
	DEVICE_MOUSE    = uint16(3) // Mouse (input only).
)

// Input accepts (device, data) events destined for the CPU.
type Input interface {
	// Push stores an event from device.
	Push(device, data uint16)
}

// Device defines the interface for all output peripherals.
// Devices are stepped synchronously by the CPU and must not block.
type Device interface {
	// Rewind resets the device to its power-on state.
	Rewind()
	// Send delivers an SOT operand to the device. Devices that answer a
	// request push the response onto input.
	Send(value uint16, input Input)
}
