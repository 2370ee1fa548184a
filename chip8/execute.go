package chip8

import (
	"log"
)

// execute applies a single decoded instruction to machine state. The
// default PC advance of 2 has already happened at fetch; opcodes that jump,
// call, return or skip adjust PC from there and never double-advance.
//
// Unknown words are logged and skipped, never fatal: malformed ROMs must
// not crash the interpreter. Stack overflow on call and underflow on return
// are the two fatal conditions and are returned to the caller.
func (c *Chip8) execute(op Opcode) (err error) {
	if c.Verbose {
		log.Printf("chip8: %03x: %v", c.PC-2, op)
	}

	switch op.Kind() {
	case OpCls:
		c.Display.Clear()
	case OpRet:
		addr, ok := c.Stack.Pop()
		if !ok {
			err = ErrStackUnderflow
			return
		}
		c.PC = addr
	case OpJp:
		c.PC = op.NNN()
	case OpCall:
		if c.Stack.Full() {
			err = ErrStackOverflow
			return
		}
		c.Stack.Push(c.PC)
		c.PC = op.NNN()
	case OpSeByte:
		c.skipIf(c.V[op.X()] == op.NN())
	case OpSneByte:
		c.skipIf(c.V[op.X()] != op.NN())
	case OpSeReg:
		c.skipIf(c.V[op.X()] == c.V[op.Y()])
	case OpLdByte:
		c.V[op.X()] = op.NN()
	case OpAddByte:
		// No carry flag; wraps mod 256.
		c.V[op.X()] += op.NN()
	case OpLdReg:
		c.V[op.X()] = c.V[op.Y()]
	case OpOr:
		c.V[op.X()] |= c.V[op.Y()]
	case OpAnd:
		c.V[op.X()] &= c.V[op.Y()]
	case OpXor:
		c.V[op.X()] ^= c.V[op.Y()]
	case OpAddReg:
		sum := uint16(c.V[op.X()]) + uint16(c.V[op.Y()])
		c.V[op.X()] = uint8(sum)
		c.setFlag(sum > 0xff)
	case OpSub:
		x, y := c.V[op.X()], c.V[op.Y()]
		c.V[op.X()] = x - y
		c.setFlag(x >= y)
	case OpShr:
		if !c.c48Mode {
			// Legacy mode shifts VY into VX.
			c.V[op.X()] = c.V[op.Y()]
		}
		bit := c.V[op.X()] & 0x01
		c.V[op.X()] >>= 1
		c.setFlag(bit != 0)
	case OpSubn:
		x, y := c.V[op.X()], c.V[op.Y()]
		c.V[op.X()] = y - x
		c.setFlag(y >= x)
	case OpShl:
		if !c.c48Mode {
			c.V[op.X()] = c.V[op.Y()]
		}
		bit := c.V[op.X()] & 0x80
		c.V[op.X()] <<= 1
		c.setFlag(bit != 0)
	case OpSneReg:
		c.skipIf(c.V[op.X()] != c.V[op.Y()])
	case OpLdI:
		c.I = op.NNN()
	case OpJpV0:
		if c.c48Mode {
			// CHIP-48 reads this as BXNN: jump to NN + VX.
			c.PC = uint16(op.NN()) + uint16(c.V[op.X()])
		} else {
			c.PC = op.NNN() + uint16(c.V[0])
		}
	case OpRnd:
		c.V[op.X()] = c.Rand() & op.NN()
	case OpDrw:
		c.draw(op)
	case OpSkp:
		c.skipIf(c.Keypad.Pressed(c.V[op.X()]))
	case OpSknp:
		c.skipIf(!c.Keypad.Pressed(c.V[op.X()]))
	case OpLdFromDelay:
		c.V[op.X()] = c.Delay
	case OpLdKey:
		c.waitKey(op)
	case OpLdToDelay:
		c.Delay = c.V[op.X()]
	case OpLdToSound:
		c.Sound = c.V[op.X()]
	case OpAddI:
		c.I += uint16(c.V[op.X()])
		if c.I > 0x1000 {
			// Overflow past the address range sets the flag.
			c.setFlag(true)
		}
	case OpLdFont:
		c.I = FONT_START + FONT_GLYPH_SIZE*uint16(c.V[op.X()]&0xf)
	case OpLdBCD:
		val := c.V[op.X()]
		c.Memory[c.I&0xfff] = val / 100
		c.Memory[(c.I+1)&0xfff] = val / 10 % 10
		c.Memory[(c.I+2)&0xfff] = val % 10
	case OpStoreRegs:
		x := uint16(op.X())
		for n := uint16(0); n <= x; n++ {
			c.Memory[(c.I+n)&0xfff] = c.V[n]
		}
		if !c.c48Mode {
			// Legacy mode leaves I past the stored block.
			c.I += x + 1
		}
	case OpLoadRegs:
		x := uint16(op.X())
		for n := uint16(0); n <= x; n++ {
			c.V[n] = c.Memory[(c.I+n)&0xfff]
		}
		if !c.c48Mode {
			c.I += x + 1
		}
	default:
		log.Printf("chip8: %03x: %v, skipping", c.PC-2, ErrUnknownOpcode(op))
	}

	return
}

// skipIf advances PC over the next instruction when the condition holds.
func (c *Chip8) skipIf(condition bool) {
	if condition {
		c.PC += 2
	}
}

// setFlag sets VF to 1 when the condition holds, else 0. Flag writes happen
// after the result write, so VF-targeted arithmetic keeps the flag.
func (c *Chip8) setFlag(condition bool) {
	if condition {
		c.V[0xf] = 1
	} else {
		c.V[0xf] = 0
	}
}

// waitKey handles the key wait opcode. If a key is already held it
// completes immediately; otherwise PC rolls back onto the opcode, the
// target register is latched, and the machine suspends until a key press
// is observed by a later Step.
func (c *Chip8) waitKey(op Opcode) {
	if key, ok := c.Keypad.FirstPressed(); ok {
		c.V[op.X()] = key
		return
	}

	c.PC -= 2
	c.waitReg = op.X()
	c.state = WaitingForKey
}

// draw XOR-blits an 8-pixel-wide, N-pixel-tall sprite read from memory at I
// onto the display at (VX mod width, VY mod height), wrapping at both
// edges. VF reports whether any pixel flipped from set to unset.
func (c *Chip8) draw(op Opcode) {
	x := int(c.V[op.X()]) % DISPLAY_WIDTH
	y := int(c.V[op.Y()]) % DISPLAY_HEIGHT

	c.V[0xf] = 0
	for row := range int(op.N()) {
		sprite := c.Memory[(c.I+uint16(row))&0xfff]
		for bit := range 8 {
			if sprite&(0x80>>bit) == 0 {
				continue
			}
			px := (x + bit) % DISPLAY_WIDTH
			py := (y + row) % DISPLAY_HEIGHT
			if c.Display.flip(px, py) {
				c.V[0xf] = 1
			}
		}
	}

	c.Display.refresh = true
}
