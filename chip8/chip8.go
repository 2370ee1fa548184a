package chip8

import (
	"fmt"
	"iter"
	"log"
	"maps"
	"math/rand/v2"
	"slices"
)

const (
	MEMORY_SIZE   = 4096  // Addressable memory, 0x000-0xFFF.
	PROGRAM_START = 0x200 // Load address of program ROMs.
	MAX_ROM_SIZE  = MEMORY_SIZE - PROGRAM_START
)

var _machine_defines = map[string]string{
	"MEMORY_SIZE":    fmt.Sprintf("%v", MEMORY_SIZE),
	"PROGRAM_START":  fmt.Sprintf("0x%x", PROGRAM_START),
	"FONT_START":     fmt.Sprintf("0x%x", FONT_START),
	"DISPLAY_WIDTH":  fmt.Sprintf("%v", DISPLAY_WIDTH),
	"DISPLAY_HEIGHT": fmt.Sprintf("%v", DISPLAY_HEIGHT),
	"STACK_LIMIT":    fmt.Sprintf("%v", STACK_LIMIT),
}

// Defines for the machine, consumed by assembler sources as equates.
func Defines() iter.Seq2[string, string] {
	return maps.All(_machine_defines)
}

// State is the execution engine state.
type State int

//go:generate go tool stringer -linecomment -type=State
const (
	Running       = State(0) // running
	Paused        = State(1) // paused
	WaitingForKey = State(2) // waiting-for-key
	Halted        = State(3) // halted
)

// Chip8 is one virtual machine instance. All state is owned exclusively by
// the instance; nothing is shared between machines, and nothing here is
// safe for concurrent mutation.
type Chip8 struct {
	Verbose bool // Set to enable verbose logging.

	Memory [MEMORY_SIZE]byte // Flat address space; font below 0x200, program above.
	V      [16]uint8         // General purpose registers; VF doubles as the flag register.
	I      uint16            // Index register.
	PC     uint16            // Program counter.
	Stack  Stack             // Subroutine return addresses.

	Delay uint8 // Delay timer, decremented at 60Hz by DecayTimers.
	Sound uint8 // Sound timer; nonzero means the tone is on.

	Display Display // Monochrome pixel buffer.
	Keypad  Keypad  // Input latch, written by the input collaborator.

	// Rand supplies the byte consumed by the rnd opcode. Overridable for
	// deterministic tests.
	Rand func() uint8

	Ticks int // Executed instruction counter.

	state   State
	waitReg uint8 // Target register latched by the key wait opcode.
	err     error // Fatal error that halted the machine.

	c48Mode bool
}

// New creates a machine in its power-on state. The CHIP-48 mode flag is
// fixed for the life of the instance.
func New(c48Mode bool) (c *Chip8) {
	c = &Chip8{
		c48Mode: c48Mode,
		Rand:    func() uint8 { return uint8(rand.Uint32()) },
	}
	c.Reset()

	return
}

// C48Mode reports whether CHIP-48 semantics are selected.
func (c *Chip8) C48Mode() bool {
	return c.c48Mode
}

// State returns the current engine state.
func (c *Chip8) State() State {
	return c.state
}

// Err returns the fatal error that halted the machine, if any.
func (c *Chip8) Err() error {
	return c.err
}

// LoadROM copies a headerless program image into memory at PROGRAM_START.
func (c *Chip8) LoadROM(rom []byte) (err error) {
	if len(rom) > MAX_ROM_SIZE {
		err = ErrRomTooLarge
		return
	}

	copy(c.Memory[PROGRAM_START:], rom)

	return
}

// Reset returns the machine to its power-on state:
//   - Zeroes the registers, stack, timers, display and keypad.
//   - Resets PC to the program start address.
//   - Reloads the font set. This is the only write below 0x200.
//   - Clears any halt or key-wait condition; state becomes Running.
//
// The loaded program, if any, is left in memory.
func (c *Chip8) Reset() {
	if c.Verbose {
		log.Printf("chip8: reset")
	}

	clear(c.V[:])
	c.I = 0
	c.PC = PROGRAM_START
	c.Stack.Reset()
	c.Delay = 0
	c.Sound = 0
	c.Display.Reset()
	c.Keypad.Reset()
	c.Ticks = 0
	c.state = Running
	c.waitReg = 0
	c.err = nil

	copy(c.Memory[FONT_START:], fontSet[:])
}

// fetch reads the big-endian instruction word at PC and applies the default
// advance of 2. Addresses are masked to the 12-bit memory range.
func (c *Chip8) fetch() (op Opcode) {
	op = MakeOpcode(c.Memory[c.PC&0xfff], c.Memory[(c.PC+1)&0xfff])
	c.PC += 2

	return
}

// current reads the instruction word at PC without advancing.
func (c *Chip8) current() Opcode {
	return MakeOpcode(c.Memory[c.PC&0xfff], c.Memory[(c.PC+1)&0xfff])
}

// Step runs one fetch-decode-execute cycle and returns the instruction word
// that was handled.
//
// While waiting for a key, Step polls the keypad instead of consuming a
// cycle, completing the latched key wait on the first held key. While
// paused, Step is rejected with ErrPaused; use DebugStep. Once halted, Step
// is rejected with ErrHalted until Reset.
func (c *Chip8) Step() (op Opcode, err error) {
	switch c.state {
	case Halted:
		err = ErrHalted
		return
	case Paused:
		err = ErrPaused
		return
	case WaitingForKey:
		op = c.current()
		key, ok := c.Keypad.FirstPressed()
		if !ok {
			// Still waiting.
			return
		}
		c.V[c.waitReg] = key
		c.PC += 2
		c.state = Running
		return
	}

	op = c.fetch()
	err = c.execute(op)
	c.Ticks += 1
	if err != nil {
		c.halt(err)
	}

	return
}

// Pause suspends execution. Only a running machine can pause.
func (c *Chip8) Pause() {
	if c.state == Running {
		c.state = Paused
	}
}

// Resume continues execution after a Pause.
func (c *Chip8) Resume() {
	if c.state == Paused {
		c.state = Running
	}
}

// DebugStep executes exactly one cycle while the machine is paused and
// returns it to the paused state. On any other state it behaves as Step.
func (c *Chip8) DebugStep() (op Opcode, err error) {
	if c.state != Paused {
		return c.Step()
	}

	c.state = Running
	op, err = c.Step()
	if c.state == Running {
		c.state = Paused
	}

	return
}

// halt records a fatal condition. Terminal until Reset.
func (c *Chip8) halt(cause error) {
	if c.Verbose {
		log.Printf("chip8: halted at 0x%03x: %v", c.PC, cause)
	}
	c.err = cause
	c.state = Halted
}

// Dump is a point-in-time copy of the externally visible machine state,
// for the debug surface.
type Dump struct {
	PC      uint16
	I       uint16
	V       [16]uint8
	Stack   []uint16
	Delay   uint8
	Sound   uint8
	C48Mode bool
	State   State
}

// Dump snapshots the machine state.
func (c *Chip8) Dump() Dump {
	return Dump{
		PC:      c.PC,
		I:       c.I,
		V:       c.V,
		Stack:   slices.Clone(c.Stack.Data),
		Delay:   c.Delay,
		Sound:   c.Sound,
		C48Mode: c.c48Mode,
		State:   c.state,
	}
}

// String returns the current machine state as a string.
func (c *Chip8) String() (text string) {
	regs := []string{
		"pc", "i",
		"v0", "v1", "v2", "v3", "v4", "v5", "v6", "v7",
		"v8", "v9", "va", "vb", "vc", "vd", "ve", "vf",
		"stack", "delay", "sound", "mode", "state",
	}
	for _, reg := range regs {
		var strval string
		switch reg {
		case "pc":
			strval = fmt.Sprintf("%03X", c.PC)
		case "i":
			strval = fmt.Sprintf("%03X", c.I)
		case "stack":
			val, ok := c.Stack.Peek()
			if ok {
				strval = fmt.Sprintf("%03X (depth %d)", val, c.Stack.Depth())
			} else {
				strval = "--- (depth 0)"
			}
		case "delay":
			strval = fmt.Sprintf("%02X", c.Delay)
		case "sound":
			strval = fmt.Sprintf("%02X", c.Sound)
		case "mode":
			strval = "chip-8"
			if c.c48Mode {
				strval = "chip-48"
			}
		case "state":
			strval = c.state.String()
		default:
			n := int(reg[1] - '0')
			if reg[1] >= 'a' {
				n = int(reg[1]-'a') + 10
			}
			strval = fmt.Sprintf("%02X", c.V[n])
		}
		text += fmt.Sprintf("% 6s: %v\n", reg, strval)
	}

	return
}
