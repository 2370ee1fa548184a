// Copyright 2024, Jason S. McMullan <jason.mcmullan@gmail.com>

package interpreter

import (
	"fmt"
	"iter"
	"log"
	"maps"
	"time"

	"github.com/ezrec/chip8/asm"
	"github.com/ezrec/chip8/chip8"
	"github.com/ezrec/chip8/internal"
)

var _interpreter_defines = map[string]string{
	"MAIN_LOOP_HZ": fmt.Sprintf("%v", MainLoopFrequency),
	"DEFAULT_HZ":   fmt.Sprintf("%v", DefaultFrequency),
}

// Frame is one display refresh handed to the renderer.
type Frame struct {
	Pixels     []bool // Row-major pixel snapshot, Width*Height entries.
	Width      int
	Height     int
	Scale      int
	Foreground Color
	Background Color
}

// Renderer displays frames.
type Renderer interface {
	Render(frame Frame) error
}

// Beeper switches the single tone on and off.
type Beeper interface {
	SetTone(on bool) error
}

// Input snapshots the keypad, called once per outer tick.
type Input interface {
	Poll() chip8.Keypad
}

// Interpreter drives one machine: input snapshot, CPU instruction budget,
// 60Hz timer decay, and the audio and video refresh, one Tick per outer
// loop pass. Collaborators left nil are skipped.
type Interpreter struct {
	Verbose      bool // If set, enables verbose logging.
	*chip8.Chip8      // The driven machine.

	Config  Config
	Program *asm.Program // Source listing when running assembled code; may be nil.

	Renderer Renderer
	Beeper   Beeper
	Input    Input

	timers chip8.TimerClock
}

// New creates an interpreter and its machine from a validated Config.
func New(config Config) (in *Interpreter, err error) {
	err = config.Validate()
	if err != nil {
		return
	}

	in = &Interpreter{
		Chip8:  chip8.New(config.C48Mode),
		Config: config,
	}

	return
}

// Defines returns an iterator over all of the defines, for assembler
// predefinition.
func (in *Interpreter) Defines() iter.Seq2[string, string] {
	return internal.IterSeq2Concat(maps.All(_interpreter_defines),
		chip8.Defines(),
	)
}

// LoadProgram loads an assembled program and keeps its listing for the
// debug surface.
func (in *Interpreter) LoadProgram(prog *asm.Program) (err error) {
	err = in.LoadROM(prog.Binary())
	if err != nil {
		return
	}
	in.Program = prog

	return
}

// Reset returns the machine and the timer clock to their power-on state.
func (in *Interpreter) Reset() {
	in.Chip8.Reset()
	in.timers.Reset()
}

// LineNo returns the source line of the instruction at PC, or 0 when no
// listing covers it.
func (in *Interpreter) LineNo() int {
	if in.Program == nil {
		return 0
	}

	dbg := in.Program.Debug(in.PC)
	if dbg.Opcode == nil {
		return 0
	}

	return dbg.Opcode.LineNo
}

// Tick runs one outer loop pass at now: polls the input snapshot, decays
// the timers when due, runs the tick's instruction budget, and refreshes
// audio and video. A paused machine skips execution but still refreshes,
// keeping the debug surface visible.
func (in *Interpreter) Tick(now time.Time) (err error) {
	// Set machine verbosity
	in.Chip8.Verbose = in.Verbose

	if in.Input != nil {
		in.Keypad.Set(in.Input.Poll())
	}

	if in.State() != chip8.Paused {
		if in.timers.TickIfDue(now) {
			in.DecayTimers()
		}

		for range in.Config.InstructionsPerTick() {
			lineno := in.LineNo()
			_, err = in.Step()
			if err != nil {
				err = &ErrRuntime{LineNo: lineno, Err: err}
				return
			}
			if in.State() == chip8.WaitingForKey {
				// The latch cannot change until the next input snapshot.
				break
			}
		}
	}

	err = in.refresh()

	return
}

// Pause suspends the machine. Pausing is a debug mode feature.
func (in *Interpreter) Pause() {
	if in.Config.DebugMode {
		in.Chip8.Pause()
	}
}

// TogglePause flips between the paused and running states.
func (in *Interpreter) TogglePause() {
	switch in.State() {
	case chip8.Running:
		in.Pause()
	case chip8.Paused:
		in.Resume()
	}
}

// SingleStep advances a paused machine by one tick's worth of
// instructions, logging each executed instruction, then refreshes the
// display. Stepping granularity matches Tick so the debug view moves at
// the same rate as normal execution.
func (in *Interpreter) SingleStep() (err error) {
	if in.State() != chip8.Paused {
		return
	}

	for range in.Config.InstructionsPerTick() {
		pc := in.PC
		lineno := in.LineNo()

		var op chip8.Opcode
		op, err = in.DebugStep()
		if err != nil {
			err = &ErrRuntime{LineNo: lineno, Err: err}
			return
		}

		if lineno > 0 {
			log.Printf("chip8: %03x: %v (line %d)", pc, op, lineno)
		} else {
			log.Printf("chip8: %03x: %v", pc, op)
		}

		if in.State() != chip8.Paused {
			// Key waits and halts end the step run.
			break
		}
	}

	err = in.refresh()

	return
}

// refresh pushes tone state every tick and a frame when the display
// buffer changed.
func (in *Interpreter) refresh() (err error) {
	if in.Beeper != nil {
		err = in.Beeper.SetTone(in.ToneOn())
		if err != nil {
			return
		}
	}

	if in.Renderer != nil && in.Display.ShouldRefresh() {
		err = in.Renderer.Render(in.frame())
	}

	return
}

func (in *Interpreter) frame() Frame {
	return Frame{
		Pixels:     in.Display.Snapshot(),
		Width:      chip8.DISPLAY_WIDTH,
		Height:     chip8.DISPLAY_HEIGHT,
		Scale:      in.Config.Scale,
		Foreground: in.Config.Foreground,
		Background: in.Config.Background,
	}
}
