// Copyright 2024, Jason S. McMullan <jason.mcmullan@gmail.com>

// Package gui is the SDL2 front end: the scaled display window, the
// square-wave beeper, and the keyboard-to-keypad mapping. It satisfies
// the interpreter's Renderer, Beeper, and Input interfaces.
package gui

import (
	"github.com/veandco/go-sdl2/sdl"

	"github.com/ezrec/chip8/interpreter"
)

// Event is an out-of-band user action picked off the SDL event queue,
// separate from the CHIP-8 keypad state.
type Event int

const (
	EventQuit        = Event(iota) // window close requested
	EventDump                      // dump machine state (debug)
	EventTogglePause               // pause or resume (debug)
	EventStep                      // single step while paused (debug)
)

// UI owns the SDL subsystems for the lifetime of a session.
type UI struct {
	Video    *Video
	Beeper   *Beeper
	Keyboard *Keyboard

	debugMode bool
}

// New initializes SDL and opens the window and audio device.
func New(title string, config interpreter.Config) (ui *UI, err error) {
	err = sdl.Init(sdl.INIT_VIDEO | sdl.INIT_AUDIO | sdl.INIT_EVENTS)
	if err != nil {
		return nil, err
	}

	ui = &UI{
		Keyboard:  &Keyboard{},
		debugMode: config.DebugMode,
	}

	ui.Video, err = NewVideo(title, config)
	if err != nil {
		sdl.Quit()
		return nil, err
	}

	ui.Beeper, err = NewBeeper()
	if err != nil {
		_ = ui.Video.Close()
		sdl.Quit()
		return nil, err
	}

	return ui, nil
}

// PollEvents drains the SDL event queue. Debug actions are reported on
// key release so a held key does not auto-repeat through the machine.
func (ui *UI) PollEvents() (events []Event) {
	for ev := sdl.PollEvent(); ev != nil; ev = sdl.PollEvent() {
		switch ev := ev.(type) {
		case *sdl.QuitEvent:
			events = append(events, EventQuit)
		case *sdl.KeyboardEvent:
			if !ui.debugMode || ev.Type != sdl.KEYUP {
				continue
			}
			switch ev.Keysym.Scancode {
			case sdl.SCANCODE_P:
				events = append(events, EventDump)
			case sdl.SCANCODE_END:
				events = append(events, EventTogglePause)
			case sdl.SCANCODE_PAGEDOWN:
				events = append(events, EventStep)
			}
		}
	}

	return events
}

// Close releases the SDL resources.
func (ui *UI) Close() (err error) {
	ui.Beeper.Close()
	err = ui.Video.Close()
	sdl.Quit()

	return err
}
