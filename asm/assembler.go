// Copyright 2024, Jason S. McMullan <jason.mcmullan@gmail.com>

// Package asm implements a single pass assembler for CHIP-8 sources,
// using the conventional mnemonics. Lines hold one instruction or data
// directive, ';' starts a comment, 'label:' prefixes define jump targets,
// '.equ NAME VALUE' defines equates, and $(...) evaluates a compile-time
// constant expression over the equates.
package asm

import (
	"bufio"
	"fmt"
	"io"
	"log"
	"maps"
	"regexp"
	"slices"
	"strconv"
	"strings"

	"go.starlark.net/starlark"
	"go.starlark.net/syntax"

	"github.com/ezrec/chip8/chip8"
)

// Predefined system equates
var sysEquate = func() map[string]string {
	equ := map[string]string{"LINENO": "0"}
	for name, value := range chip8.Defines() {
		equ[name] = value
	}
	return equ
}()

// regMap maps register names to their V register index.
var regMap = map[string]uint8{
	"v0": 0x0, "v1": 0x1, "v2": 0x2, "v3": 0x3,
	"v4": 0x4, "v5": 0x5, "v6": 0x6, "v7": 0x7,
	"v8": 0x8, "v9": 0x9, "va": 0xa, "vb": 0xb,
	"vc": 0xc, "vd": 0xd, "ve": 0xe, "vf": 0xf,
}

// Assembler is a single pass assembler for the CHIP-8 machine.
type Assembler struct {
	Verbose bool     // If set, verbosely logs the assembler actions.
	Opcode  []Opcode // List of generated opcodes.

	predefine map[string]string // Predefines
	Label     map[string]uint16 // Map of jump labels to memory addresses.
	Equate    map[string]string // Map of equates.
}

// Predefine defines a new equate or redefines an existing equate.
func (asm *Assembler) Predefine(equ string, value string) {
	if asm.predefine == nil {
		asm.predefine = map[string]string{equ: value}
	} else {
		asm.predefine[equ] = value
	}
}

// valueOf returns the value of a simple word.
func (asm *Assembler) valueOf(word string) (value uint16, err error) {
	v64, err := strconv.ParseInt(word, 0, 17)
	if err != nil {
		err = ErrParseNumber(word)
		return
	}

	if v64 < 0 {
		v64 += 0x10000
	}
	value = uint16(v64)

	return
}

// regOf returns the register index of a vN word.
func (asm *Assembler) regOf(word string) (reg uint8, err error) {
	reg, ok := regMap[word]
	if !ok {
		err = ErrRegisterInvalid
	}

	return
}

// byteOf returns an 8-bit operand value.
func (asm *Assembler) byteOf(word string) (value uint8, err error) {
	v16, err := asm.valueOf(word)
	if err != nil {
		return
	}
	if v16 > 0xff {
		err = ErrValueRange(word)
		return
	}
	value = uint8(v16)

	return
}

// nibbleOf returns a 4-bit operand value.
func (asm *Assembler) nibbleOf(word string) (value uint8, err error) {
	v16, err := asm.valueOf(word)
	if err != nil {
		return
	}
	if v16 > 0xf {
		err = ErrValueRange(word)
		return
	}
	value = uint8(v16)

	return
}

// addrOf returns a 12-bit address operand. A word that is not a number is
// a jump label, linked in the final pass.
func (asm *Assembler) addrOf(word string) (addr uint16, label string, err error) {
	value, verr := asm.valueOf(word)
	if verr != nil {
		label = word
		return
	}
	if value > 0xfff {
		err = ErrValueRange(word)
		return
	}
	addr = value

	return
}

// parenEval does compile-time $(...) evaluations
func (asm *Assembler) parenEval(expr string) (value uint32, err error) {
	thread := starlark.Thread{}
	opts := syntax.FileOptions{}
	pred := starlark.StringDict{}
	for key, str := range asm.Equate {
		var value16 uint16
		value16, err = asm.valueOf(str)
		if err != nil {
			// Ignore non-integer equates. They may be registers
			// or something else.
			continue
		}
		pred[key] = starlark.MakeInt(int(value16))
	}
	prog := "rc=" + expr + "\n"
	dict, err := starlark.ExecFileOptions(&opts, &thread, "expr", prog, pred)
	if err != nil {
		return
	}
	st_rc, ok := dict["rc"]
	if !ok {
		err = ErrParseExpression(expr)
		return
	}
	st_int, ok := st_rc.(starlark.Int)
	if !ok {
		err = ErrParseExpression(expr)
		return
	}
	st_int64, ok := st_int.Int64()
	if !ok {
		err = ErrParseExpression(expr)
		return
	}
	value = uint32(st_int64)
	return
}

// parseLine expands a single source line into opcode words.
func (asm *Assembler) parseLine(line string, lineno int) (words []string, err error) {
	// Set line number.
	asm.Equate["LINENO"] = fmt.Sprintf("%v", lineno)

	// Do $() evaluations
	re := regexp.MustCompile(`\$\([^\$]*\)`)
	line = re.ReplaceAllStringFunc(line, func(str string) string {
		value, _err := asm.parenEval(str[2 : len(str)-1])
		if _err != nil {
			err = _err
		}
		return fmt.Sprintf("%#v", value)
	})
	if err != nil {
		return
	}

	// Commas and tabs separate words just like spaces.
	line = strings.ReplaceAll(line, ",", " ")
	line = strings.ReplaceAll(line, "\t", " ")

	words = slices.DeleteFunc(strings.Split(line, " "), func(a string) bool { return len(a) == 0 })

	if len(words) == 0 {
		return
	}

	// .equ CONST VALUE
	if words[0] == ".equ" {
		if len(words) != 3 {
			err = ErrEquateSyntax
			return
		}
		_, ok := asm.Equate[words[1]]
		if ok {
			err = ErrEquateDuplicate
			return
		}
		asm.Equate[words[1]] = words[2]
		words = words[:0]
		return
	}

	for n, word := range words {
		// Check for equate next
		equate, ok := asm.Equate[word]
		if ok {
			words[n] = equate
		}
	}

	for strings.HasSuffix(words[0], ":") {
		label := words[0][:len(words[0])-1]
		_, ok := asm.Label[label]
		if ok {
			err = ErrLabelDuplicate
			return
		}

		if asm.Label == nil {
			asm.Label = make(map[string]uint16, 16)
		}
		asm.Label[label] = asm.currentAddr()
		words = words[1:]
		if len(words) == 0 {
			return
		}
	}

	return
}

// currentAddr gets the memory address of the next assembled byte.
func (asm *Assembler) currentAddr() uint16 {
	if len(asm.Opcode) == 0 {
		return chip8.PROGRAM_START
	}

	last := asm.Opcode[len(asm.Opcode)-1]

	return last.Addr + uint16(len(last.Data))
}

// Parse parses an input stream into a Program containing opcodes.
func (asm *Assembler) Parse(input io.Reader) (prog *Program, err error) {

	scanner := bufio.NewScanner(input)

	var line string
	var lineno int

	defer func() {
		if err != nil {
			err = &ErrSyntax{LineNo: lineno, Line: line, Err: err}
		}
	}()

	clear(asm.Label)
	asm.Opcode = asm.Opcode[:0]
	asm.Equate = maps.Clone(sysEquate)
	for attr, val := range asm.predefine {
		asm.Equate[attr] = val
	}

	for scanner.Scan() {
		text := scanner.Text()
		lineno += 1

		if asm.Verbose {
			log.Printf("%v: %v\n", lineno, text)
		}

		text_comment := strings.Split(text, ";")
		line = strings.TrimSpace(text_comment[0])

		var words []string
		words, err = asm.parseLine(line, lineno)
		if err != nil {
			return
		}

		err = asm.parseWords(words, lineno)
		if err != nil {
			return
		}
	}

	if int(asm.currentAddr())-chip8.PROGRAM_START > chip8.MAX_ROM_SIZE {
		err = ErrProgramTooLarge
		return
	}

	// Final linking of jump labels.
	for n := range asm.Opcode {
		op := &asm.Opcode[n]

		if len(op.LinkLabel) == 0 {
			continue
		}
		addr, ok := asm.Label[op.LinkLabel]
		if !ok {
			err = ErrLabelMissing(op.LinkLabel)
			return
		}
		op.Data[0] |= byte(addr>>8) & 0xf
		op.Data[1] |= byte(addr)
	}

	prog = &Program{
		Opcodes: slices.Clone(asm.Opcode),
	}

	return
}

// parseWords evaluates the words in a line of assembly text.
func (asm *Assembler) parseWords(words []string, lineno int) (err error) {
	var data []byte
	var label string

	// no-op
	if len(words) == 0 {
		return
	}

	defer func() {
		if err != nil || len(data) == 0 {
			return
		}
		opcode := Opcode{LineNo: lineno, Addr: asm.currentAddr(), Words: words, Data: data, LinkLabel: label}
		asm.Opcode = append(asm.Opcode, opcode)
	}()

	emit := func(kind chip8.OpKind, fields chip8.Fields) {
		hi, lo := chip8.Assemble(kind, fields).Bytes()
		data = append(data, hi, lo)
	}

	// wantArgs checks the operand count of the mnemonic.
	wantArgs := func(count int) error {
		switch {
		case len(words) < count+1:
			return ErrOpcodeValueMissing
		case len(words) > count+1:
			return ErrOpcodeExtraArgs
		default:
			return nil
		}
	}

	switch words[0] {
	case "db":
		if len(words) < 2 {
			err = ErrOpcodeValueMissing
			return
		}
		for _, word := range words[1:] {
			var b uint8
			b, err = asm.byteOf(word)
			if err != nil {
				return
			}
			data = append(data, b)
		}
	case "cls":
		if err = wantArgs(0); err != nil {
			return
		}
		emit(chip8.OpCls, chip8.Fields{})
	case "ret":
		if err = wantArgs(0); err != nil {
			return
		}
		emit(chip8.OpRet, chip8.Fields{})
	case "jp":
		var addr uint16
		switch len(words) {
		case 2:
			addr, label, err = asm.addrOf(words[1])
			if err != nil {
				return
			}
			emit(chip8.OpJp, chip8.Fields{NNN: addr})
		case 3:
			// jp v0, addr
			if words[1] != "v0" {
				err = ErrRegisterInvalid
				return
			}
			addr, label, err = asm.addrOf(words[2])
			if err != nil {
				return
			}
			emit(chip8.OpJpV0, chip8.Fields{NNN: addr})
		default:
			err = wantArgs(1)
			return
		}
	case "call":
		if err = wantArgs(1); err != nil {
			return
		}
		var addr uint16
		addr, label, err = asm.addrOf(words[1])
		if err != nil {
			return
		}
		emit(chip8.OpCall, chip8.Fields{NNN: addr})
	case "se", "sne":
		if err = wantArgs(2); err != nil {
			return
		}
		var x uint8
		x, err = asm.regOf(words[1])
		if err != nil {
			return
		}
		regKind, byteKind := chip8.OpSeReg, chip8.OpSeByte
		if words[0] == "sne" {
			regKind, byteKind = chip8.OpSneReg, chip8.OpSneByte
		}
		if y, rerr := asm.regOf(words[2]); rerr == nil {
			emit(regKind, chip8.Fields{X: x, Y: y})
		} else {
			var nn uint8
			nn, err = asm.byteOf(words[2])
			if err != nil {
				return
			}
			emit(byteKind, chip8.Fields{X: x, NN: nn})
		}
	case "ld":
		if err = wantArgs(2); err != nil {
			return
		}
		label, err = asm.parseLd(words[1], words[2], emit)
		if err != nil {
			return
		}
	case "add":
		if err = wantArgs(2); err != nil {
			return
		}
		if words[1] == "i" {
			var x uint8
			x, err = asm.regOf(words[2])
			if err != nil {
				return
			}
			emit(chip8.OpAddI, chip8.Fields{X: x})
			return
		}
		var x uint8
		x, err = asm.regOf(words[1])
		if err != nil {
			return
		}
		if y, rerr := asm.regOf(words[2]); rerr == nil {
			emit(chip8.OpAddReg, chip8.Fields{X: x, Y: y})
		} else {
			var nn uint8
			nn, err = asm.byteOf(words[2])
			if err != nil {
				return
			}
			emit(chip8.OpAddByte, chip8.Fields{X: x, NN: nn})
		}
	case "or", "and", "xor", "sub", "subn":
		if err = wantArgs(2); err != nil {
			return
		}
		kinds := map[string]chip8.OpKind{
			"or": chip8.OpOr, "and": chip8.OpAnd, "xor": chip8.OpXor,
			"sub": chip8.OpSub, "subn": chip8.OpSubn,
		}
		var x, y uint8
		x, err = asm.regOf(words[1])
		if err != nil {
			return
		}
		y, err = asm.regOf(words[2])
		if err != nil {
			return
		}
		emit(kinds[words[0]], chip8.Fields{X: x, Y: y})
	case "shr", "shl":
		// shr vx [, vy] - vy defaults to vx.
		if len(words) < 2 {
			err = ErrOpcodeValueMissing
			return
		}
		if len(words) > 3 {
			err = ErrOpcodeExtraArgs
			return
		}
		var x uint8
		x, err = asm.regOf(words[1])
		if err != nil {
			return
		}
		y := x
		if len(words) == 3 {
			y, err = asm.regOf(words[2])
			if err != nil {
				return
			}
		}
		kind := chip8.OpShr
		if words[0] == "shl" {
			kind = chip8.OpShl
		}
		emit(kind, chip8.Fields{X: x, Y: y})
	case "rnd":
		if err = wantArgs(2); err != nil {
			return
		}
		var x, nn uint8
		x, err = asm.regOf(words[1])
		if err != nil {
			return
		}
		nn, err = asm.byteOf(words[2])
		if err != nil {
			return
		}
		emit(chip8.OpRnd, chip8.Fields{X: x, NN: nn})
	case "drw":
		if err = wantArgs(3); err != nil {
			return
		}
		var x, y, n uint8
		x, err = asm.regOf(words[1])
		if err != nil {
			return
		}
		y, err = asm.regOf(words[2])
		if err != nil {
			return
		}
		n, err = asm.nibbleOf(words[3])
		if err != nil {
			return
		}
		emit(chip8.OpDrw, chip8.Fields{X: x, Y: y, N: n})
	case "skp", "sknp":
		if err = wantArgs(1); err != nil {
			return
		}
		var x uint8
		x, err = asm.regOf(words[1])
		if err != nil {
			return
		}
		kind := chip8.OpSkp
		if words[0] == "sknp" {
			kind = chip8.OpSknp
		}
		emit(kind, chip8.Fields{X: x})
	default:
		err = ErrInstructionInvalid
		return
	}

	return
}

// parseLd handles the many ld operand forms.
func (asm *Assembler) parseLd(dst, src string, emit func(chip8.OpKind, chip8.Fields)) (label string, err error) {
	switch dst {
	case "i":
		var addr uint16
		addr, label, err = asm.addrOf(src)
		if err != nil {
			return
		}
		emit(chip8.OpLdI, chip8.Fields{NNN: addr})
	case "dt":
		var x uint8
		x, err = asm.regOf(src)
		if err != nil {
			return
		}
		emit(chip8.OpLdToDelay, chip8.Fields{X: x})
	case "st":
		var x uint8
		x, err = asm.regOf(src)
		if err != nil {
			return
		}
		emit(chip8.OpLdToSound, chip8.Fields{X: x})
	case "f":
		var x uint8
		x, err = asm.regOf(src)
		if err != nil {
			return
		}
		emit(chip8.OpLdFont, chip8.Fields{X: x})
	case "b":
		var x uint8
		x, err = asm.regOf(src)
		if err != nil {
			return
		}
		emit(chip8.OpLdBCD, chip8.Fields{X: x})
	case "[i]":
		var x uint8
		x, err = asm.regOf(src)
		if err != nil {
			return
		}
		emit(chip8.OpStoreRegs, chip8.Fields{X: x})
	default:
		var x uint8
		x, err = asm.regOf(dst)
		if err != nil {
			return
		}
		switch src {
		case "dt":
			emit(chip8.OpLdFromDelay, chip8.Fields{X: x})
		case "k":
			emit(chip8.OpLdKey, chip8.Fields{X: x})
		case "[i]":
			emit(chip8.OpLoadRegs, chip8.Fields{X: x})
		default:
			if y, rerr := asm.regOf(src); rerr == nil {
				emit(chip8.OpLdReg, chip8.Fields{X: x, Y: y})
			} else {
				var nn uint8
				nn, err = asm.byteOf(src)
				if err != nil {
					return
				}
				emit(chip8.OpLdByte, chip8.Fields{X: x, NN: nn})
			}
		}
	}

	return
}
