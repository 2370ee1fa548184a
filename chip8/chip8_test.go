package chip8

import (
	"bytes"
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// loadOps encodes a program into memory at PROGRAM_START.
func loadOps(t *testing.T, c *Chip8, ops ...Opcode) {
	rom := make([]byte, 0, len(ops)*2)
	for _, op := range ops {
		hi, lo := op.Bytes()
		rom = append(rom, hi, lo)
	}
	require.NoError(t, c.LoadROM(rom))
}

func TestNew(t *testing.T) {
	assert := assert.New(t)

	c := New(false)
	assert.Equal(uint16(PROGRAM_START), c.PC)
	assert.Equal(Running, c.State())
	assert.False(c.C48Mode())
	assert.NoError(c.Err())

	assert.Equal(fontSet[:], c.Memory[FONT_START:FONT_START+len(fontSet)])

	c48 := New(true)
	assert.True(c48.C48Mode())
}

func TestLoadROM(t *testing.T) {
	assert := assert.New(t)

	c := New(false)

	rom := bytes.Repeat([]byte{0xAA}, MAX_ROM_SIZE)
	assert.NoError(c.LoadROM(rom))
	assert.Equal(byte(0xAA), c.Memory[PROGRAM_START])
	assert.Equal(byte(0xAA), c.Memory[MEMORY_SIZE-1])

	rom = append(rom, 0xAA)
	assert.ErrorIs(c.LoadROM(rom), ErrRomTooLarge)
}

func TestReset(t *testing.T) {
	assert := assert.New(t)

	c := New(false)
	loadOps(t, c, 0x6542, 0x00E0)

	c.V[3] = 0x42
	c.I = 0x666
	c.PC = 0x456
	c.Stack.Push(0x234)
	c.Delay = 10
	c.Sound = 10
	c.Keypad.Press(0x4)
	c.Memory[FONT_START] = 0x00
	c.halt(ErrStackOverflow)

	c.Reset()

	assert.Equal(uint16(PROGRAM_START), c.PC)
	assert.Equal([16]uint8{}, c.V)
	assert.Equal(uint16(0), c.I)
	assert.True(c.Stack.Empty())
	assert.Equal(uint8(0), c.Delay)
	assert.Equal(uint8(0), c.Sound)
	assert.False(c.Keypad.Pressed(0x4))
	assert.Equal(Running, c.State())
	assert.NoError(c.Err())
	assert.Equal(fontSet[:], c.Memory[FONT_START:FONT_START+len(fontSet)])

	// The loaded program stays resident.
	assert.Equal(byte(0x65), c.Memory[PROGRAM_START])

	// Resetting a fresh machine leaves registers zero for any ROM size.
	for _, size := range []int{0, 1, 100, MAX_ROM_SIZE} {
		c := New(false)
		assert.NoError(c.LoadROM(make([]byte, size)))
		c.Reset()
		assert.Equal(uint16(PROGRAM_START), c.PC, size)
		assert.Equal([16]uint8{}, c.V, size)
	}
}

func TestStepAdvance(t *testing.T) {
	assert := assert.New(t)

	c := New(false)
	loadOps(t, c, 0x6542, 0x8650)

	op, err := c.Step()
	assert.NoError(err)
	assert.Equal(Opcode(0x6542), op)
	assert.Equal(uint8(0x42), c.V[5])
	assert.Equal(uint16(PROGRAM_START+2), c.PC)

	op, err = c.Step()
	assert.NoError(err)
	assert.Equal(Opcode(0x8650), op)
	assert.Equal(uint8(0x42), c.V[6])
	assert.Equal(uint16(PROGRAM_START+4), c.PC)

	assert.Equal(2, c.Ticks)
}

func TestUnknownOpcodeSkips(t *testing.T) {
	assert := assert.New(t)

	c := New(false)
	loadOps(t, c, 0xFFFF, 0x6511)

	op, err := c.Step()
	assert.NoError(err)
	assert.Equal(OpUnknown, op.Kind())
	assert.Equal(Running, c.State())
	assert.Equal(uint16(PROGRAM_START+2), c.PC)

	_, err = c.Step()
	assert.NoError(err)
	assert.Equal(uint8(0x11), c.V[5])
}

func TestCallAndReturn(t *testing.T) {
	assert := assert.New(t)

	c := New(false)
	loadOps(t, c,
		0x2204, // call 0x204
		0x0000,
		0x6101, // 0x204: ld v1,1
		0x00EE, // ret
	)

	_, err := c.Step()
	assert.NoError(err)
	assert.Equal(uint16(0x204), c.PC)
	assert.Equal(1, c.Stack.Depth())

	_, err = c.Step()
	assert.NoError(err)

	_, err = c.Step()
	assert.NoError(err)
	assert.Equal(uint16(0x202), c.PC)
	assert.True(c.Stack.Empty())
	assert.Equal(uint8(1), c.V[1])
}

func TestStackOverflowHalts(t *testing.T) {
	assert := assert.New(t)

	c := New(false)
	// call 0x200: an endless self-call.
	loadOps(t, c, 0x2200)

	for n := 0; n < STACK_LIMIT; n++ {
		_, err := c.Step()
		assert.NoError(err)
	}
	assert.Equal(STACK_LIMIT, c.Stack.Depth())

	_, err := c.Step()
	assert.ErrorIs(err, ErrStackOverflow)
	assert.Equal(Halted, c.State())
	assert.ErrorIs(c.Err(), ErrStackOverflow)

	// Halted is terminal until Reset.
	_, err = c.Step()
	assert.ErrorIs(err, ErrHalted)

	c.Reset()
	assert.Equal(Running, c.State())
	_, err = c.Step()
	assert.NoError(err)
}

func TestStackUnderflowHalts(t *testing.T) {
	assert := assert.New(t)

	c := New(false)
	loadOps(t, c, 0x00EE)

	_, err := c.Step()
	assert.ErrorIs(err, ErrStackUnderflow)
	assert.Equal(Halted, c.State())
	assert.ErrorIs(c.Err(), ErrStackUnderflow)
}

func TestWaitingForKey(t *testing.T) {
	assert := assert.New(t)

	c := New(false)
	loadOps(t, c, 0xF60A, 0x6101)

	op, err := c.Step()
	assert.NoError(err)
	assert.Equal(Opcode(0xF60A), op)
	assert.Equal(WaitingForKey, c.State())
	assert.Equal(uint16(PROGRAM_START), c.PC)

	// Re-entrant: repeated steps keep waiting without consuming cycles.
	ticks := c.Ticks
	for range 5 {
		op, err = c.Step()
		assert.NoError(err)
		assert.Equal(Opcode(0xF60A), op)
		assert.Equal(WaitingForKey, c.State())
	}
	assert.Equal(ticks, c.Ticks)

	c.Keypad.Press(0xB)
	_, err = c.Step()
	assert.NoError(err)
	assert.Equal(Running, c.State())
	assert.Equal(uint8(0xB), c.V[6])
	assert.Equal(uint16(PROGRAM_START+2), c.PC)

	_, err = c.Step()
	assert.NoError(err)
	assert.Equal(uint8(0x01), c.V[1])
}

func TestWaitKeyAlreadyHeld(t *testing.T) {
	assert := assert.New(t)

	c := New(false)
	loadOps(t, c, 0xF60A)
	c.Keypad.Press(0x3)

	_, err := c.Step()
	assert.NoError(err)
	assert.Equal(Running, c.State())
	assert.Equal(uint8(0x3), c.V[6])
	assert.Equal(uint16(PROGRAM_START+2), c.PC)
}

func TestPauseRejectsStep(t *testing.T) {
	assert := assert.New(t)

	c := New(false)
	loadOps(t, c, 0x6542, 0x6643)

	c.Pause()
	assert.Equal(Paused, c.State())

	before := c.Dump()
	_, err := c.Step()
	assert.ErrorIs(err, ErrPaused)
	assert.Equal(before, c.Dump())

	c.Resume()
	assert.Equal(Running, c.State())
	_, err = c.Step()
	assert.NoError(err)
	assert.Equal(uint8(0x42), c.V[5])
}

func TestDebugStep(t *testing.T) {
	assert := assert.New(t)

	c := New(false)
	loadOps(t, c, 0x6542, 0x6643)
	c.Pause()

	op, err := c.DebugStep()
	assert.NoError(err)
	assert.Equal(Opcode(0x6542), op)
	assert.Equal(uint8(0x42), c.V[5])
	assert.Equal(Paused, c.State())

	op, err = c.DebugStep()
	assert.NoError(err)
	assert.Equal(Opcode(0x6643), op)
	assert.Equal(uint8(0x43), c.V[6])
	assert.Equal(Paused, c.State())
}

func TestDump(t *testing.T) {
	assert := assert.New(t)

	c := New(true)
	c.V[0xA] = 0x42
	c.I = 0x345
	c.Stack.Push(0x222)
	c.Delay = 3
	c.Sound = 4

	dump := c.Dump()
	assert.Equal(uint16(PROGRAM_START), dump.PC)
	assert.Equal(uint16(0x345), dump.I)
	assert.Equal(uint8(0x42), dump.V[0xA])
	assert.Equal([]uint16{0x222}, dump.Stack)
	assert.Equal(uint8(3), dump.Delay)
	assert.Equal(uint8(4), dump.Sound)
	assert.True(dump.C48Mode)
	assert.Equal(Running, dump.State)

	// The dump is a copy; mutating it leaves the machine alone.
	dump.Stack[0] = 0
	val, _ := c.Stack.Peek()
	assert.Equal(uint16(0x222), val)

	text := c.String()
	assert.Contains(text, "pc: 200")
	assert.Contains(text, "va: 42")
	assert.Contains(text, "chip-48")
	assert.Contains(text, "running")
}

func TestErrUnknownOpcodeIs(t *testing.T) {
	assert := assert.New(t)

	err := error(ErrUnknownOpcode(0x5121))
	assert.True(errors.Is(err, ErrUnknownOpcode(0)))
	assert.Contains(err.Error(), "5121")
}
