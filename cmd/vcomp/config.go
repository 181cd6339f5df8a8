package main

import (
	"flag"
	"fmt"
	"os"
)

// Config defines program configuration.
type Config struct {
	Compile  string // Assembly source to compile.
	Image    string // Program image to load, when not compiling.
	Save     string // Save the program image here, and do not execute.
	Limit    int    // Maximum instructions to execute; 0 is unlimited.
	Trace    string // Write the trace log here after execution.
	Script   string // Starlark script to run instead of the program.
	Console  uint   // Device id of the console; 0 for none.
	Keyboard bool   // Feed terminal keys to the keyboard device.
	Verbose  bool   // Verbose mode.
}

// parseArgs parses command line arguments.
//
// If an error occurred, this exits the program with an appropriate message.
func parseArgs() *Config {
	var c Config

	flag.Usage = func() {
		fmt.Fprintf(flag.CommandLine.Output(), "%s [options]\n", os.Args[0])
		flag.PrintDefaults()
	}

	flag.StringVar(&c.Compile, "c", "", ".asm file to compile")
	flag.StringVar(&c.Image, "i", "", "program image to load")
	flag.StringVar(&c.Save, "o", "", "save program image, do not execute")
	flag.IntVar(&c.Limit, "n", 0, "instruction limit (0 for none)")
	flag.StringVar(&c.Trace, "t", "", "trace dump file")
	flag.StringVar(&c.Script, "x", "", "Starlark script to run")
	flag.UintVar(&c.Console, "console", 0, "attach the console output device at this id")
	flag.BoolVar(&c.Keyboard, "k", false, "read the terminal as the keyboard device")
	flag.BoolVar(&c.Verbose, "v", false, "Verbose mode")

	flag.Parse()

	if flag.NArg() != 0 {
		fmt.Fprintf(os.Stderr, "%v: Unknown arguments: %v\n", os.Args[0], flag.Args())
		flag.Usage()
		os.Exit(1)
	}

	if len(c.Compile) != 0 && len(c.Image) != 0 {
		fmt.Fprintf(os.Stderr, "%v: -c and -i are exclusive\n", os.Args[0])
		os.Exit(1)
	}

	if c.Console > 0xffff {
		fmt.Fprintf(os.Stderr, "%v: -console %d is not a device id\n", os.Args[0], c.Console)
		os.Exit(1)
	}

	return &c
}
