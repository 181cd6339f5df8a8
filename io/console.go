package io

import (
	"io"
)

// Console is an optional output device that writes the low byte of every
// operand sent to it. It is not part of the default device table; hosts
// attach it at a device id of their choosing.
type Console struct {
	Output io.Writer

	Written int // Bytes written since the last rewind.
	Err     error
}

var _ Device = (*Console)(nil)

// Rewind clears the write counter and any latched error.
func (con *Console) Rewind() {
	con.Written = 0
	con.Err = nil
}

// Send writes the low byte of value. The first write error is latched in
// Err and further output is dropped.
func (con *Console) Send(value uint16, input Input) {
	if con.Output == nil || con.Err != nil {
		return
	}

	n, err := con.Output.Write([]byte{byte(value & 0xff)})
	con.Written += n
	if err != nil {
		con.Err = err
	}
}
