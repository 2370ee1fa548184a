package chip8

import (
	"fmt"
)

// Opcode is a single 16-bit CHIP-8 instruction word, stored big-endian in
// memory: high byte at PC, low byte at PC+1.
type Opcode uint16

// MakeOpcode builds an instruction word from its two memory bytes.
func MakeOpcode(hi, lo byte) Opcode {
	return Opcode(uint16(hi)<<8 | uint16(lo))
}

// OpKind is the decoded operation variant of an instruction word.
type OpKind int

//go:generate go tool stringer -linecomment -type=OpKind
const (
	OpUnknown     = OpKind(0)  // ???
	OpCls         = OpKind(1)  // cls
	OpRet         = OpKind(2)  // ret
	OpJp          = OpKind(3)  // jp
	OpCall        = OpKind(4)  // call
	OpSeByte      = OpKind(5)  // se.b
	OpSneByte     = OpKind(6)  // sne.b
	OpSeReg       = OpKind(7)  // se.v
	OpLdByte      = OpKind(8)  // ld.b
	OpAddByte     = OpKind(9)  // add.b
	OpLdReg       = OpKind(10) // ld.v
	OpOr          = OpKind(11) // or
	OpAnd         = OpKind(12) // and
	OpXor         = OpKind(13) // xor
	OpAddReg      = OpKind(14) // add.v
	OpSub         = OpKind(15) // sub
	OpShr         = OpKind(16) // shr
	OpSubn        = OpKind(17) // subn
	OpShl         = OpKind(18) // shl
	OpSneReg      = OpKind(19) // sne.v
	OpLdI         = OpKind(20) // ld.i
	OpJpV0        = OpKind(21) // jp.v0
	OpRnd         = OpKind(22) // rnd
	OpDrw         = OpKind(23) // drw
	OpSkp         = OpKind(24) // skp
	OpSknp        = OpKind(25) // sknp
	OpLdFromDelay = OpKind(26) // ld.vx.dt
	OpLdKey       = OpKind(27) // ld.vx.k
	OpLdToDelay   = OpKind(28) // ld.dt.vx
	OpLdToSound   = OpKind(29) // ld.st.vx
	OpAddI        = OpKind(30) // add.i
	OpLdFont      = OpKind(31) // ld.f
	OpLdBCD       = OpKind(32) // ld.bcd
	OpStoreRegs   = OpKind(33) // ld.i.vx
	OpLoadRegs    = OpKind(34) // ld.vx.i
)

// X returns the second nibble, the VX register selector.
func (op Opcode) X() uint8 {
	return uint8(op>>8) & 0xf
}

// Y returns the third nibble, the VY register selector.
func (op Opcode) Y() uint8 {
	return uint8(op>>4) & 0xf
}

// N returns the low nibble.
func (op Opcode) N() uint8 {
	return uint8(op) & 0xf
}

// NN returns the low byte.
func (op Opcode) NN() uint8 {
	return uint8(op)
}

// NNN returns the low 12 bits, the address operand.
func (op Opcode) NNN() uint16 {
	return uint16(op) & 0xfff
}

// Fields holds the operand fields extracted from an instruction word.
type Fields struct {
	X   uint8
	Y   uint8
	N   uint8
	NN  uint8
	NNN uint16
}

// Fields extracts every operand field of the instruction word. Which fields
// are meaningful depends on the Kind.
func (op Opcode) Fields() Fields {
	return Fields{
		X:   op.X(),
		Y:   op.Y(),
		N:   op.N(),
		NN:  op.NN(),
		NNN: op.NNN(),
	}
}

// Kind decodes the instruction word into its tagged operation variant.
// Decoding is pure: it neither reads nor mutates machine state.
// Unrecognized and reserved patterns (including 0NNN machine-call words and
// 5XY?/9XY? words with a nonzero low nibble) decode to OpUnknown.
func (op Opcode) Kind() OpKind {
	switch op >> 12 {
	case 0x0:
		switch op {
		case 0x00E0:
			return OpCls
		case 0x00EE:
			return OpRet
		}
	case 0x1:
		return OpJp
	case 0x2:
		return OpCall
	case 0x3:
		return OpSeByte
	case 0x4:
		return OpSneByte
	case 0x5:
		if op.N() == 0 {
			return OpSeReg
		}
	case 0x6:
		return OpLdByte
	case 0x7:
		return OpAddByte
	case 0x8:
		switch op.N() {
		case 0x0:
			return OpLdReg
		case 0x1:
			return OpOr
		case 0x2:
			return OpAnd
		case 0x3:
			return OpXor
		case 0x4:
			return OpAddReg
		case 0x5:
			return OpSub
		case 0x6:
			return OpShr
		case 0x7:
			return OpSubn
		case 0xE:
			return OpShl
		}
	case 0x9:
		if op.N() == 0 {
			return OpSneReg
		}
	case 0xA:
		return OpLdI
	case 0xB:
		return OpJpV0
	case 0xC:
		return OpRnd
	case 0xD:
		return OpDrw
	case 0xE:
		switch op.NN() {
		case 0x9E:
			return OpSkp
		case 0xA1:
			return OpSknp
		}
	case 0xF:
		switch op.NN() {
		case 0x07:
			return OpLdFromDelay
		case 0x0A:
			return OpLdKey
		case 0x15:
			return OpLdToDelay
		case 0x18:
			return OpLdToSound
		case 0x1E:
			return OpAddI
		case 0x29:
			return OpLdFont
		case 0x33:
			return OpLdBCD
		case 0x55:
			return OpStoreRegs
		case 0x65:
			return OpLoadRegs
		}
	}

	return OpUnknown
}

// Assemble is the inverse of Kind/Fields: it encodes an operation variant
// and its operand fields into an instruction word. Only the fields the
// variant consumes are encoded; OpUnknown assembles to the zero word.
func Assemble(kind OpKind, f Fields) (op Opcode) {
	x := Opcode(f.X&0xf) << 8
	y := Opcode(f.Y&0xf) << 4
	n := Opcode(f.N & 0xf)
	nn := Opcode(f.NN)
	nnn := Opcode(f.NNN & 0xfff)

	switch kind {
	case OpCls:
		op = 0x00E0
	case OpRet:
		op = 0x00EE
	case OpJp:
		op = 0x1000 | nnn
	case OpCall:
		op = 0x2000 | nnn
	case OpSeByte:
		op = 0x3000 | x | nn
	case OpSneByte:
		op = 0x4000 | x | nn
	case OpSeReg:
		op = 0x5000 | x | y
	case OpLdByte:
		op = 0x6000 | x | nn
	case OpAddByte:
		op = 0x7000 | x | nn
	case OpLdReg:
		op = 0x8000 | x | y
	case OpOr:
		op = 0x8001 | x | y
	case OpAnd:
		op = 0x8002 | x | y
	case OpXor:
		op = 0x8003 | x | y
	case OpAddReg:
		op = 0x8004 | x | y
	case OpSub:
		op = 0x8005 | x | y
	case OpShr:
		op = 0x8006 | x | y
	case OpSubn:
		op = 0x8007 | x | y
	case OpShl:
		op = 0x800E | x | y
	case OpSneReg:
		op = 0x9000 | x | y
	case OpLdI:
		op = 0xA000 | nnn
	case OpJpV0:
		op = 0xB000 | nnn
	case OpRnd:
		op = 0xC000 | x | nn
	case OpDrw:
		op = 0xD000 | x | y | n
	case OpSkp:
		op = 0xE09E | x
	case OpSknp:
		op = 0xE0A1 | x
	case OpLdFromDelay:
		op = 0xF007 | x
	case OpLdKey:
		op = 0xF00A | x
	case OpLdToDelay:
		op = 0xF015 | x
	case OpLdToSound:
		op = 0xF018 | x
	case OpAddI:
		op = 0xF01E | x
	case OpLdFont:
		op = 0xF029 | x
	case OpLdBCD:
		op = 0xF033 | x
	case OpStoreRegs:
		op = 0xF055 | x
	case OpLoadRegs:
		op = 0xF065 | x
	}

	return
}

// Bytes returns the big-endian memory representation of the word.
func (op Opcode) Bytes() (hi, lo byte) {
	return byte(op >> 8), byte(op)
}

// String returns a disassembly of the instruction word.
func (op Opcode) String() (out string) {
	kind := op.Kind()

	switch kind {
	case OpCls, OpRet:
		out = kind.String()
	case OpJp, OpCall, OpLdI, OpJpV0:
		out = fmt.Sprintf("%v 0x%03X", kind, op.NNN())
	case OpSeByte, OpSneByte, OpLdByte, OpAddByte, OpRnd:
		out = fmt.Sprintf("%v v%X,0x%02X", kind, op.X(), op.NN())
	case OpSeReg, OpSneReg, OpLdReg, OpOr, OpAnd, OpXor, OpAddReg, OpSub, OpSubn, OpShr, OpShl:
		out = fmt.Sprintf("%v v%X,v%X", kind, op.X(), op.Y())
	case OpDrw:
		out = fmt.Sprintf("%v v%X,v%X,%d", kind, op.X(), op.Y(), op.N())
	case OpSkp, OpSknp, OpLdFromDelay, OpLdKey, OpLdToDelay, OpLdToSound, OpAddI, OpLdFont, OpLdBCD, OpStoreRegs, OpLoadRegs:
		out = fmt.Sprintf("%v v%X", kind, op.X())
	default:
		out = fmt.Sprintf("%v 0x%04X", kind, uint16(op))
	}

	return
}
