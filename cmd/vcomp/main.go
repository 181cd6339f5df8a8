// Copyright 2025, Jason S. McMullan <jason.mcmullan@gmail.com>

package main

import (
	"bufio"
	"fmt"
	"log"
	"os"
	"time"

	"github.com/pkg/errors"

	"github.com/ezrec/vcomp/cpu"
	"github.com/ezrec/vcomp/emulator"
	"github.com/ezrec/vcomp/io"
	"github.com/ezrec/vcomp/script"
)

func main() {
	cfg := parseArgs()

	err := run(cfg)
	if err != nil {
		log.Fatalf("%v: %v", os.Args[0], err)
	}
}

// load fills in the emulator's program from the configured source.
func load(cfg *Config, emu *emulator.Emulator) (err error) {
	switch {
	case len(cfg.Compile) != 0:
		var source []byte
		source, err = os.ReadFile(cfg.Compile)
		if err != nil {
			err = errors.Wrap(err, "compile")
			return
		}
		err = emu.Assemble(source)
		if err != nil {
			err = errors.Wrap(err, cfg.Compile)
			return
		}
	case len(cfg.Image) != 0:
		rom := &io.Rom{}
		err = rom.Open(cfg.Image)
		if err != nil {
			return
		}
		emu.Program = cpu.NewProgram(rom.Data)
	}

	return
}

func run(cfg *Config) (err error) {
	emu := emulator.NewEmulator()
	emu.Verbose = cfg.Verbose

	err = load(cfg, emu)
	if err != nil {
		return
	}

	if len(cfg.Save) != 0 {
		err = emu.Program.Rom().Save(cfg.Save)
		return
	}

	if cfg.Console != 0 {
		emu.Console.Output = os.Stdout
		err = emu.AttachConsole(uint16(cfg.Console))
		if err != nil {
			err = errors.Wrapf(err, "console %d", cfg.Console)
			return
		}
	}

	err = emu.Reset()
	if err != nil {
		return
	}

	if len(cfg.Script) != 0 {
		sc := script.NewScript(emu)
		sc.Verbose = cfg.Verbose
		sc.Output = os.Stdout
		_, err = sc.Exec(cfg.Script, nil)
		if err != nil {
			return
		}
		return dumpTrace(cfg, emu)
	}

	var keys chan byte
	if cfg.Keyboard {
		tk := NewTerminalKeyboard()
		err = tk.Start()
		if err != nil {
			return
		}
		defer tk.Stop()
		keys = tk.Keys
	}

	err = execute(cfg, emu, keys)
	if err != nil {
		return
	}

	if cfg.Verbose {
		log.Printf("%d ticks\n%v", emu.Ticks(), emu.Cpu)
	}

	return dumpTrace(cfg, emu)
}

// execute runs the machine, pacing it to the requested clock speed.
func execute(cfg *Config, emu *emulator.Emulator, keys chan byte) (err error) {
	for n := 0; cfg.Limit <= 0 || n < cfg.Limit; n++ {
	drain:
		for {
			select {
			case key, ok := <-keys:
				if !ok {
					if cfg.Verbose {
						log.Printf("keyboard input ended at tick %d", emu.Ticks())
					}
					keys = nil
					break drain
				}
				if key == KEY_INTERRUPT {
					return
				}
				emu.Keyboard.Press(emu.Cpu, uint16(key), 0, 0)
			default:
				break drain
			}
		}

		if emu.Tick() {
			return
		}

		if delay := emu.Delay(); delay > 0 {
			time.Sleep(delay)
		}
	}

	if cfg.Verbose {
		log.Printf("stopped at line %d after %d ticks", emu.LineNo(), emu.Ticks())
	}

	return
}

// dumpTrace writes the trace log, oldest first.
func dumpTrace(cfg *Config, emu *emulator.Emulator) (err error) {
	if len(cfg.Trace) == 0 {
		return
	}

	ouf, err := os.Create(cfg.Trace)
	if err != nil {
		err = errors.Wrap(err, "trace")
		return
	}
	defer ouf.Close()

	out := bufio.NewWriter(ouf)
	if emu.TraceOverflow() {
		fmt.Fprintln(out, "... earlier entries dropped")
	}
	for _, entry := range emu.DrainTrace() {
		fmt.Fprintln(out, entry)
	}

	err = errors.Wrap(out.Flush(), "trace")

	return
}
