package io

// Keyboard is an input-only device. Output sent to it is discarded.
type Keyboard struct{}

var _ Device = (*Keyboard)(nil)

func (kb *Keyboard) Rewind() {}

func (kb *Keyboard) Send(value uint16, input Input) {}

// Press pushes a key event as three words: key, x, y.
func (kb *Keyboard) Press(input Input, key, x, y uint16) {
	input.Push(DEVICE_KEYBOARD, key)
	input.Push(DEVICE_KEYBOARD, x)
	input.Push(DEVICE_KEYBOARD, y)
}

// Mouse is an input-only device. Output sent to it is discarded.
type Mouse struct{}

var _ Device = (*Mouse)(nil)

func (ms *Mouse) Rewind() {}

func (ms *Mouse) Send(value uint16, input Input) {}

// Click pushes a mouse event as four words: button, state, x, y.
func (ms *Mouse) Click(input Input, button, state, x, y uint16) {
	input.Push(DEVICE_MOUSE, button)
	input.Push(DEVICE_MOUSE, state)
	input.Push(DEVICE_MOUSE, x)
	input.Push(DEVICE_MOUSE, y)
}
