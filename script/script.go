// Package script drives an emulator from Starlark programs.
//
// The predeclared builtins are:
//
//	assemble(src)            assemble src, reset, and load; returns the word count
//	image(words)             load a raw image; returns the word count
//	step(n=1)                execute up to n instructions; returns the count run
//	push(device, data)       push an input event
//	press(key, x=0, y=0)     push a keyboard event
//	click(button, state, x=0, y=0)  push a mouse event
//	reg(name)                read register a, b, c or iar
//	flag(name)               read flag zero, carry or input
//	mem(addr)                read a memory word
//	trace()                  list of rendered trace entries, oldest first
//	shutdown()               true once the program requested shutdown
//	clock()                  the requested clock speed
package script

import (
	"fmt"
	"io"
	"log"
	"strings"

	"github.com/pkg/errors"
	"go.starlark.net/starlark"
	"go.starlark.net/syntax"

	"github.com/ezrec/vcomp/cpu"
	"github.com/ezrec/vcomp/emulator"
	vio "github.com/ezrec/vcomp/io"
	"github.com/ezrec/vcomp/translate"
)

var f = translate.From

var (
	ErrUnknownRegister = errors.New(f("unknown register"))
	ErrUnknownFlag     = errors.New(f("unknown flag"))
	ErrWordRange       = errors.New(f("value is not a 16-bit word"))
)

// Script is a Starlark harness bound to one emulator.
type Script struct {
	Verbose  bool
	Emulator *emulator.Emulator
	Output   io.Writer // Destination of print(); discarded if nil.
}

// NewScript creates a harness around emu.
func NewScript(emu *emulator.Emulator) (sc *Script) {
	sc = &Script{
		Emulator: emu,
	}

	return
}

// Exec runs a Starlark program, returning its globals.
// src may be a string, []byte or io.Reader, as for starlark.ExecFile.
func (sc *Script) Exec(filename string, src any) (globals starlark.StringDict, err error) {
	thread := &starlark.Thread{
		Name: filename,
		Print: func(_ *starlark.Thread, msg string) {
			if sc.Output != nil {
				fmt.Fprintln(sc.Output, msg)
			}
		},
	}

	opts := syntax.FileOptions{}
	globals, err = starlark.ExecFileOptions(&opts, thread, filename, src, sc.Builtins())
	if err != nil {
		if evalErr, ok := err.(*starlark.EvalError); ok && sc.Verbose {
			log.Printf("script: %v", evalErr.Backtrace())
		}
		err = errors.Wrap(err, filename)
		return
	}

	return
}

// Builtins returns the predeclared functions bound to the emulator.
func (sc *Script) Builtins() starlark.StringDict {
	builtins := []*starlark.Builtin{
		starlark.NewBuiltin("assemble", sc.assemble),
		starlark.NewBuiltin("image", sc.image),
		starlark.NewBuiltin("step", sc.step),
		starlark.NewBuiltin("push", sc.push),
		starlark.NewBuiltin("press", sc.press),
		starlark.NewBuiltin("click", sc.click),
		starlark.NewBuiltin("reg", sc.reg),
		starlark.NewBuiltin("flag", sc.flag),
		starlark.NewBuiltin("mem", sc.mem),
		starlark.NewBuiltin("trace", sc.trace),
		starlark.NewBuiltin("shutdown", sc.shutdown),
		starlark.NewBuiltin("clock", sc.clock),
	}

	dict := starlark.StringDict{}
	for _, builtin := range builtins {
		dict[builtin.Name()] = builtin
	}

	return dict
}

func toWord(value int) (word uint16, err error) {
	if value < 0 || value >= cpu.WORD_LIMIT {
		err = ErrWordRange
		return
	}

	word = uint16(value)
	return
}

func (sc *Script) assemble(thread *starlark.Thread, b *starlark.Builtin, args starlark.Tuple, kwargs []starlark.Tuple) (rc starlark.Value, err error) {
	var src string
	err = starlark.UnpackArgs(b.Name(), args, kwargs, "src", &src)
	if err != nil {
		return
	}

	emu := sc.Emulator
	err = emu.Assemble([]byte(src))
	if err == nil {
		err = emu.Reset()
	}
	if err != nil {
		err = errors.Wrap(err, b.Name())
		return
	}

	rc = starlark.MakeInt(len(emu.Program.Words))
	return
}

func (sc *Script) image(thread *starlark.Thread, b *starlark.Builtin, args starlark.Tuple, kwargs []starlark.Tuple) (rc starlark.Value, err error) {
	var list starlark.Iterable
	err = starlark.UnpackArgs(b.Name(), args, kwargs, "words", &list)
	if err != nil {
		return
	}

	var words []uint16
	iter := list.Iterate()
	defer iter.Done()

	var item starlark.Value
	for iter.Next(&item) {
		var value int
		value, err = starlark.AsInt32(item)
		if err == nil {
			var word uint16
			word, err = toWord(value)
			words = append(words, word)
		}
		if err != nil {
			err = errors.Wrapf(err, "%s: word %d", b.Name(), len(words))
			return
		}
	}

	emu := sc.Emulator
	emu.Program = cpu.NewProgram(words)
	err = emu.Reset()
	if err != nil {
		err = errors.Wrap(err, b.Name())
		return
	}

	rc = starlark.MakeInt(len(words))
	return
}

func (sc *Script) step(thread *starlark.Thread, b *starlark.Builtin, args starlark.Tuple, kwargs []starlark.Tuple) (rc starlark.Value, err error) {
	n := 1
	err = starlark.UnpackArgs(b.Name(), args, kwargs, "n?", &n)
	if err != nil {
		return
	}

	var count int
	for count < n && !sc.Emulator.Done() {
		sc.Emulator.Tick()
		count++
	}

	rc = starlark.MakeInt(count)
	return
}

func (sc *Script) push(thread *starlark.Thread, b *starlark.Builtin, args starlark.Tuple, kwargs []starlark.Tuple) (rc starlark.Value, err error) {
	var device, data int
	err = starlark.UnpackArgs(b.Name(), args, kwargs, "device", &device, "data", &data)
	if err != nil {
		return
	}

	words, err := toWords(device, data)
	if err != nil {
		err = errors.Wrap(err, b.Name())
		return
	}

	sc.Emulator.PushInput(words[0], words[1])

	rc = starlark.None
	return
}

func (sc *Script) press(thread *starlark.Thread, b *starlark.Builtin, args starlark.Tuple, kwargs []starlark.Tuple) (rc starlark.Value, err error) {
	var key, x, y int
	err = starlark.UnpackArgs(b.Name(), args, kwargs, "key", &key, "x?", &x, "y?", &y)
	if err != nil {
		return
	}

	words, err := toWords(key, x, y)
	if err != nil {
		err = errors.Wrap(err, b.Name())
		return
	}

	emu := sc.Emulator
	emu.Keyboard.Press(emu.Cpu, words[0], words[1], words[2])

	rc = starlark.None
	return
}

func (sc *Script) click(thread *starlark.Thread, b *starlark.Builtin, args starlark.Tuple, kwargs []starlark.Tuple) (rc starlark.Value, err error) {
	var button, state, x, y int
	err = starlark.UnpackArgs(b.Name(), args, kwargs, "button", &button, "state", &state, "x?", &x, "y?", &y)
	if err != nil {
		return
	}

	words, err := toWords(button, state, x, y)
	if err != nil {
		err = errors.Wrap(err, b.Name())
		return
	}

	emu := sc.Emulator
	emu.Mouse.Click(emu.Cpu, words[0], words[1], words[2], words[3])

	rc = starlark.None
	return
}

func toWords(values ...int) (words []uint16, err error) {
	words = make([]uint16, len(values))
	for n, value := range values {
		words[n], err = toWord(value)
		if err != nil {
			return
		}
	}

	return
}

func (sc *Script) reg(thread *starlark.Thread, b *starlark.Builtin, args starlark.Tuple, kwargs []starlark.Tuple) (rc starlark.Value, err error) {
	var name string
	err = starlark.UnpackArgs(b.Name(), args, kwargs, "name", &name)
	if err != nil {
		return
	}

	emu := sc.Emulator
	var value uint16
	switch strings.ToLower(name) {
	case "a":
		value = emu.A()
	case "b":
		value = emu.B()
	case "c":
		value = emu.C()
	case "iar":
		value = emu.Iar()
	default:
		err = errors.Wrapf(ErrUnknownRegister, "%s: %q", b.Name(), name)
		return
	}

	rc = starlark.MakeInt(int(value))
	return
}

func (sc *Script) flag(thread *starlark.Thread, b *starlark.Builtin, args starlark.Tuple, kwargs []starlark.Tuple) (rc starlark.Value, err error) {
	var name string
	err = starlark.UnpackArgs(b.Name(), args, kwargs, "name", &name)
	if err != nil {
		return
	}

	emu := sc.Emulator
	var value bool
	switch strings.ToLower(name) {
	case "zero":
		value = emu.Zero()
	case "carry":
		value = emu.Carry()
	case "input":
		value = emu.InputAvailable()
	default:
		err = errors.Wrapf(ErrUnknownFlag, "%s: %q", b.Name(), name)
		return
	}

	rc = starlark.Bool(value)
	return
}

func (sc *Script) mem(thread *starlark.Thread, b *starlark.Builtin, args starlark.Tuple, kwargs []starlark.Tuple) (rc starlark.Value, err error) {
	var addr int
	err = starlark.UnpackArgs(b.Name(), args, kwargs, "addr", &addr)
	if err != nil {
		return
	}

	if addr < 0 || addr >= cpu.MEMORY_SIZE {
		err = errors.Wrapf(vio.ErrAddressRange, "%s: %d", b.Name(), addr)
		return
	}

	rc = starlark.MakeInt(int(sc.Emulator.Memory(uint16(addr))))
	return
}

func (sc *Script) trace(thread *starlark.Thread, b *starlark.Builtin, args starlark.Tuple, kwargs []starlark.Tuple) (rc starlark.Value, err error) {
	err = starlark.UnpackArgs(b.Name(), args, kwargs)
	if err != nil {
		return
	}

	var lines []starlark.Value
	for entry := range sc.Emulator.Trace() {
		lines = append(lines, starlark.String(entry.String()))
	}

	rc = starlark.NewList(lines)
	return
}

func (sc *Script) shutdown(thread *starlark.Thread, b *starlark.Builtin, args starlark.Tuple, kwargs []starlark.Tuple) (rc starlark.Value, err error) {
	err = starlark.UnpackArgs(b.Name(), args, kwargs)
	if err != nil {
		return
	}

	rc = starlark.Bool(sc.Emulator.Done())
	return
}

func (sc *Script) clock(thread *starlark.Thread, b *starlark.Builtin, args starlark.Tuple, kwargs []starlark.Tuple) (rc starlark.Value, err error) {
	err = starlark.UnpackArgs(b.Name(), args, kwargs)
	if err != nil {
		return
	}

	rc = starlark.MakeInt(int(sc.Emulator.Sys.ClockSpeed))
	return
}
