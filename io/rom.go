package io

import (
	"bufio"
	"io"
	"os"

	"github.com/pkg/errors"
)

const (
	ROM_CAPACITY = 4096 // Words; matches the memory size.
)

// Rom is a program image. On disk each word is two bytes, high byte first.
type Rom struct {
	Data []uint16
}

// Unmarshal reads an image from r, replacing any existing data.
// Reading stops at end of input or after ROM_CAPACITY words; a trailing
// odd byte is ignored.
func (rom *Rom) Unmarshal(r io.Reader) (err error) {
	in := bufio.NewReader(r)

	rom.Data = rom.Data[:0]
	var pair [2]byte
	for len(rom.Data) < ROM_CAPACITY {
		_, err = io.ReadFull(in, pair[:])
		if err == io.EOF || err == io.ErrUnexpectedEOF {
			err = nil
			break
		}
		if err != nil {
			err = errors.Wrap(err, "rom")
			return
		}
		rom.Data = append(rom.Data, uint16(pair[0])<<8|uint16(pair[1]))
	}

	return
}

// Marshal writes the image to w.
func (rom *Rom) Marshal(w io.Writer) (err error) {
	if len(rom.Data) > ROM_CAPACITY {
		err = ErrRomTooLarge
		return
	}

	out := bufio.NewWriter(w)
	for _, word := range rom.Data {
		err = out.WriteByte(byte(word >> 8))
		if err == nil {
			err = out.WriteByte(byte(word))
		}
		if err != nil {
			err = errors.Wrap(err, "rom")
			return
		}
	}

	err = errors.Wrap(out.Flush(), "rom")

	return
}

// Open loads an image from a file.
func (rom *Rom) Open(path string) (err error) {
	inf, err := os.Open(path)
	if err != nil {
		err = errors.Wrapf(err, "rom %v", path)
		return
	}
	defer inf.Close()

	return rom.Unmarshal(inf)
}

// Save writes the image to a file.
func (rom *Rom) Save(path string) (err error) {
	ouf, err := os.Create(path)
	if err != nil {
		err = errors.Wrapf(err, "rom %v", path)
		return
	}

	err = rom.Marshal(ouf)
	if cerr := ouf.Close(); err == nil && cerr != nil {
		err = errors.Wrapf(cerr, "rom %v", path)
	}

	return
}
