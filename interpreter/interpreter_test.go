package interpreter

import (
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/ezrec/chip8/asm"
	"github.com/ezrec/chip8/chip8"
)

type fakeRenderer struct {
	frames []Frame
}

func (fr *fakeRenderer) Render(frame Frame) error {
	fr.frames = append(fr.frames, frame)
	return nil
}

type fakeBeeper struct {
	tones []bool
}

func (fb *fakeBeeper) SetTone(on bool) error {
	fb.tones = append(fb.tones, on)
	return nil
}

type fakeInput struct {
	keys chip8.Keypad
}

func (fi *fakeInput) Poll() chip8.Keypad {
	return fi.keys
}

// newInterpreter builds a debug mode interpreter running an assembled
// source, with fake collaborators attached.
func newInterpreter(t *testing.T, lines ...string) (in *Interpreter, fr *fakeRenderer, fb *fakeBeeper, fi *fakeInput) {
	config := DefaultConfig()
	config.DebugMode = true

	in, err := New(config)
	require.NoError(t, err)

	a := &asm.Assembler{}
	prog, err := a.Parse(strings.NewReader(strings.Join(lines, "\n")))
	require.NoError(t, err)
	require.NoError(t, in.LoadProgram(prog))

	fr = &fakeRenderer{}
	fb = &fakeBeeper{}
	fi = &fakeInput{}
	in.Renderer = fr
	in.Beeper = fb
	in.Input = fi

	return
}

func TestNew(t *testing.T) {
	assert := assert.New(t)

	config := DefaultConfig()
	config.C48Mode = true
	in, err := New(config)
	assert.NoError(err)
	assert.True(in.C48Mode())
	assert.Equal(chip8.Running, in.State())

	config.Frequency = 0
	_, err = New(config)
	assert.ErrorIs(err, ErrFrequencyRange)
}

func TestTickBudget(t *testing.T) {
	assert := assert.New(t)

	in, _, _, _ := newInterpreter(t,
		"loop: add v0, 1",
		"jp loop",
	)

	now := time.Unix(1000, 0)
	assert.NoError(in.Tick(now))
	assert.Equal(in.Config.InstructionsPerTick(), in.Ticks)

	assert.NoError(in.Tick(now.Add(time.Second / MainLoopFrequency)))
	assert.Equal(2*in.Config.InstructionsPerTick(), in.Ticks)
}

func TestTickRendersOnDraw(t *testing.T) {
	assert := assert.New(t)

	in, fr, _, _ := newInterpreter(t,
		"cls",
		"spin: jp spin",
	)

	now := time.Unix(1000, 0)
	assert.NoError(in.Tick(now))
	assert.Len(fr.frames, 1)

	frame := fr.frames[0]
	assert.Equal(chip8.DISPLAY_WIDTH, frame.Width)
	assert.Equal(chip8.DISPLAY_HEIGHT, frame.Height)
	assert.Equal(in.Config.Scale, frame.Scale)
	assert.Equal(in.Config.Foreground, frame.Foreground)
	assert.Equal(in.Config.Background, frame.Background)
	assert.Len(frame.Pixels, chip8.DISPLAY_WIDTH*chip8.DISPLAY_HEIGHT)

	// The display did not change; no extra frame.
	assert.NoError(in.Tick(now.Add(time.Second / MainLoopFrequency)))
	assert.Len(fr.frames, 1)
}

func TestTickBeeper(t *testing.T) {
	assert := assert.New(t)

	in, _, fb, _ := newInterpreter(t,
		"ld v0, 120",
		"ld st, v0",
		"spin: jp spin",
	)

	now := time.Unix(1000, 0)
	assert.NoError(in.Tick(now))

	// Tone state is pushed every tick.
	assert.Len(fb.tones, 1)
	assert.True(fb.tones[0])
}

func TestTickTimerDecay(t *testing.T) {
	assert := assert.New(t)

	in, _, _, _ := newInterpreter(t, "spin: jp spin")
	in.Delay = 10

	now := time.Unix(1000, 0)
	assert.NoError(in.Tick(now))
	assert.Equal(uint8(10), in.Delay, "first tick only arms the clock")

	assert.NoError(in.Tick(now.Add(chip8.TimerPeriod)))
	assert.Equal(uint8(9), in.Delay)

	assert.NoError(in.Tick(now.Add(chip8.TimerPeriod + time.Millisecond)))
	assert.Equal(uint8(9), in.Delay, "decay is at most 60Hz")
}

func TestTickWaitKey(t *testing.T) {
	assert := assert.New(t)

	in, _, _, fi := newInterpreter(t,
		"ld v5, k",
		"spin: jp spin",
	)

	now := time.Unix(1000, 0)
	assert.NoError(in.Tick(now))
	assert.Equal(chip8.WaitingForKey, in.State())
	assert.Equal(1, in.Ticks, "the wait ends the tick's budget")

	fi.keys.Press(0xB)
	assert.NoError(in.Tick(now.Add(time.Second / MainLoopFrequency)))
	assert.Equal(chip8.Running, in.State())
	assert.Equal(uint8(0xB), in.V[5])
}

func TestPauseGating(t *testing.T) {
	assert := assert.New(t)

	config := DefaultConfig()
	in, err := New(config)
	assert.NoError(err)

	// Without debug mode, pausing is refused.
	in.Pause()
	assert.Equal(chip8.Running, in.State())

	config.DebugMode = true
	in, err = New(config)
	assert.NoError(err)

	in.Pause()
	assert.Equal(chip8.Paused, in.State())

	in.TogglePause()
	assert.Equal(chip8.Running, in.State())

	in.TogglePause()
	assert.Equal(chip8.Paused, in.State())
}

func TestTickWhilePaused(t *testing.T) {
	assert := assert.New(t)

	in, _, fb, _ := newInterpreter(t, "spin: jp spin")
	in.Pause()

	now := time.Unix(1000, 0)
	assert.NoError(in.Tick(now))
	assert.Equal(0, in.Ticks, "paused machines do not execute")
	assert.Len(fb.tones, 1, "paused machines still refresh")
}

func TestSingleStep(t *testing.T) {
	assert := assert.New(t)

	in, _, _, _ := newInterpreter(t,
		"loop: add v0, 1",
		"jp loop",
	)

	// Running machines ignore SingleStep.
	assert.NoError(in.SingleStep())
	assert.Equal(0, in.Ticks)

	in.Pause()
	assert.NoError(in.SingleStep())
	assert.Equal(in.Config.InstructionsPerTick(), in.Ticks)
	assert.Equal(chip8.Paused, in.State())

	assert.NoError(in.SingleStep())
	assert.Equal(2*in.Config.InstructionsPerTick(), in.Ticks)
}

func TestTickRuntimeError(t *testing.T) {
	assert := assert.New(t)

	in, _, _, _ := newInterpreter(t, "ret ; no caller")

	err := in.Tick(time.Unix(1000, 0))
	assert.ErrorIs(err, chip8.ErrStackUnderflow)

	var re *ErrRuntime
	assert.ErrorAs(err, &re)
	assert.Equal(1, re.LineNo)

	assert.Equal(chip8.Halted, in.State())
}

func TestLineNo(t *testing.T) {
	assert := assert.New(t)

	in, _, _, _ := newInterpreter(t,
		"ld v0, 1",
		"spin: jp spin",
	)

	assert.Equal(1, in.LineNo())

	_, err := in.Step()
	assert.NoError(err)
	assert.Equal(2, in.LineNo())

	// Without a listing there is no line information.
	in.Program = nil
	assert.Equal(0, in.LineNo())
}

func TestDefines(t *testing.T) {
	assert := assert.New(t)

	in, _, _, _ := newInterpreter(t, "cls")

	defines := map[string]string{}
	for name, value := range in.Defines() {
		defines[name] = value
	}

	assert.Equal("60", defines["MAIN_LOOP_HZ"])
	assert.Equal("0x200", defines["PROGRAM_START"])
	assert.Equal("64", defines["DISPLAY_WIDTH"])
}
