package main

import (
	"os"
	"sync"

	"github.com/pkg/errors"
	"golang.org/x/term"
)

const (
	KEY_INTERRUPT = 0x03 // Ctrl-C; raw mode delivers it as a key.
)

// TerminalKeyboard reads raw keys from stdin on its own goroutine.
// Keys are handed to the run loop over Keys; the machine is never
// touched from the reader.
type TerminalKeyboard struct {
	Keys chan byte

	fd       int
	oldState *term.State
	stopped  sync.Once
}

// NewTerminalKeyboard creates a keyboard reader for stdin.
func NewTerminalKeyboard() *TerminalKeyboard {
	return &TerminalKeyboard{
		Keys: make(chan byte, 256),
		fd:   int(os.Stdin.Fd()),
	}
}

// Start puts the terminal into raw mode and begins reading.
func (tk *TerminalKeyboard) Start() (err error) {
	if !term.IsTerminal(tk.fd) {
		err = errors.New("stdin is not a terminal")
		return
	}

	tk.oldState, err = term.MakeRaw(tk.fd)
	if err != nil {
		err = errors.Wrap(err, "terminal raw mode")
		return
	}

	go func() {
		buf := make([]byte, 1)
		for {
			n, err := os.Stdin.Read(buf)
			if err != nil {
				close(tk.Keys)
				return
			}
			if n == 0 {
				continue
			}

			key := buf[0]
			switch key {
			case '\r':
				key = '\n'
			case 0x7f:
				key = 0x08
			}

			tk.Keys <- key
		}
	}()

	return
}

// Stop restores the terminal. The reader goroutine ends with the process.
func (tk *TerminalKeyboard) Stop() {
	tk.stopped.Do(func() {
		if tk.oldState != nil {
			_ = term.Restore(tk.fd, tk.oldState)
		}
	})
}
