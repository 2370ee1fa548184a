package chip8

import (
	"errors"

	"github.com/ezrec/chip8/translate"
)

var f = translate.From

var (
	// Machine errors
	ErrRomTooLarge    = errors.New(f("rom too large"))
	ErrStackOverflow  = errors.New(f("stack overflow"))
	ErrStackUnderflow = errors.New(f("stack underflow"))
	ErrHalted         = errors.New(f("machine halted"))
	ErrPaused         = errors.New(f("machine paused"))
)

// ErrUnknownOpcode reports an unrecognized instruction word. Execution
// treats these as no-ops; the type exists for logging and decode reporting.
type ErrUnknownOpcode Opcode

func (eo ErrUnknownOpcode) Error() string {
	return f("unknown opcode 0x%04x", uint16(eo))
}

func (eo ErrUnknownOpcode) Is(err error) (ok bool) {
	_, ok = err.(ErrUnknownOpcode)
	return
}
