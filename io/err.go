package io

import (
	"errors"

	"github.com/ezrec/vcomp/translate"
)

var f = translate.From

var (
	// ROM errors
	ErrRomTooLarge = errors.New(f("rom larger than memory"))

	// Memory errors
	ErrAddressRange = errors.New(f("address outside of memory"))
)
