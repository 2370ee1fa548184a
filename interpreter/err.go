package interpreter

import (
	"errors"

	"github.com/ezrec/chip8/translate"
)

var f = translate.From

var (
	// Configuration errors
	ErrFrequencyRange = errors.New(f("frequency out of range"))
	ErrScreenSize     = errors.New(f("unknown screen size"))
	ErrColorFormat    = errors.New(f("colors are R,G,B with components 0-255"))
)

// ErrRuntime indicates the source location of a runtime error.
type ErrRuntime struct {
	LineNo int
	Err    error
}

func (err *ErrRuntime) Error() string {
	return f("line %d %v", err.LineNo, err.Err)
}

func (err *ErrRuntime) Unwrap() error {
	return err.Err
}
