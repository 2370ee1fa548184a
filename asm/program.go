package asm

import (
	"iter"

	"github.com/ezrec/chip8/chip8"
)

// Opcode is one assembled source line: a single instruction, or a run of
// data bytes from a db directive.
type Opcode struct {
	LineNo    int      // Source line number.
	Addr      uint16   // Memory address of the first assembled byte.
	Words     []string // Source words after equate and $() expansion.
	Data      []byte   // Assembled bytes, big-endian for instructions.
	LinkLabel string   // Label linked into the instruction's address field.
}

type Program struct {
	Opcodes []Opcode
}

type Debug struct {
	*Opcode
	Index int
}

// Debug finds the source record covering a memory address.
func (prog *Program) Debug(addr uint16) (dbg Debug) {
	for n, op := range prog.Opcodes {
		if addr >= op.Addr && addr < op.Addr+uint16(len(op.Data)) {
			dbg = Debug{
				Opcode: &prog.Opcodes[n],
				Index:  int(addr - op.Addr),
			}
			break
		}
	}

	return
}

// Binary produces the headerless ROM image, loadable at PROGRAM_START.
func (prog *Program) Binary() (rom []byte) {
	for addr, b := range prog.Bytes() {
		offset := int(addr) - chip8.PROGRAM_START
		for len(rom) <= offset {
			rom = append(rom, 0)
		}
		rom[offset] = b
	}

	return
}

// Bytes iterates the assembled bytes with their memory addresses.
func (prog *Program) Bytes() iter.Seq2[uint16, byte] {
	return func(yield func(addr uint16, b byte) bool) {
		for _, op := range prog.Opcodes {
			addr := op.Addr
			for n, b := range op.Data {
				if !yield(addr+uint16(n), b) {
					return
				}
			}
		}
	}
}
