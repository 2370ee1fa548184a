// Copyright 2024, Jason S. McMullan <jason.mcmullan@gmail.com>

package main

import (
	"flag"
	"fmt"
	"log"
	"os"
	"time"

	"github.com/ezrec/chip8/asm"
	"github.com/ezrec/chip8/gui"
	"github.com/ezrec/chip8/interpreter"
)

func main() {
	var compile string
	var output string
	var size string
	var frequency int
	var foreground string
	var background string
	var debug bool
	var chip48 bool
	var verbose bool

	flag.StringVar(&compile, "a", "", ".asm file to assemble")
	flag.StringVar(&output, "o", "", "Save assembled ROM to file, do not execute")
	flag.StringVar(&size, "s", "small", "Screen size (small, medium, large)")
	flag.IntVar(&frequency, "f", interpreter.DefaultFrequency, "CPU frequency in Hz")
	flag.StringVar(&foreground, "fg", "", "Foreground color as R,G,B")
	flag.StringVar(&background, "bg", "", "Background color as R,G,B")
	flag.BoolVar(&debug, "d", false, "Debug mode (End pauses, PageDown steps, P dumps)")
	flag.BoolVar(&chip48, "c", false, "CHIP-48 opcode semantics")
	flag.BoolVar(&verbose, "v", false, "Verbose mode")

	flag.Parse()

	config := interpreter.DefaultConfig()
	config.Frequency = frequency
	config.DebugMode = debug
	config.C48Mode = chip48

	var err error
	config.Scale, err = interpreter.ParseScale(size)
	if err != nil {
		log.Fatalf("%v: %v", size, err)
	}

	if len(foreground) != 0 {
		config.Foreground, err = interpreter.ParseColor(foreground)
		if err != nil {
			log.Fatalf("%v: %v", foreground, err)
		}
	}

	if len(background) != 0 {
		config.Background, err = interpreter.ParseColor(background)
		if err != nil {
			log.Fatalf("%v: %v", background, err)
		}
	}

	interp, err := interpreter.New(config)
	if err != nil {
		log.Fatal(err)
	}
	interp.Verbose = verbose

	title := compile

	// Assemble a new ROM.
	if len(compile) != 0 {
		if flag.NArg() != 0 {
			log.Fatalf("%v: Unknown arguments: %v", os.Args[0], flag.Args())
		}

		inf, err := os.Open(compile)
		if err != nil {
			log.Fatalf("%v: %v", compile, err)
		}
		defer inf.Close()

		assembler := &asm.Assembler{Verbose: verbose}
		for equ, value := range interp.Defines() {
			assembler.Predefine(equ, value)
		}

		prog, err := assembler.Parse(inf)
		if err != nil {
			log.Fatalf("%v: %v", compile, err)
		}

		if len(output) != 0 {
			err = os.WriteFile(output, prog.Binary(), 0o644)
			if err != nil {
				log.Fatalf("%v: %v", output, err)
			}
			return
		}

		err = interp.LoadProgram(prog)
		if err != nil {
			log.Fatalf("%v: %v", compile, err)
		}
	} else {
		if flag.NArg() != 1 {
			log.Fatalf("%v: Expected a single ROM file argument", os.Args[0])
		}
		title = flag.Arg(0)

		rom, err := os.ReadFile(title)
		if err != nil {
			log.Fatalf("%v: %v", title, err)
		}

		err = interp.LoadROM(rom)
		if err != nil {
			log.Fatalf("%v: %v", title, err)
		}
	}

	ui, err := gui.New(title, config)
	if err != nil {
		log.Fatal(err)
	}
	defer ui.Close()

	interp.Renderer = ui.Video
	interp.Beeper = ui.Beeper
	interp.Input = ui.Keyboard

	interp.Reset()

	// The outer loop runs at the main loop rate; the interpreter spends
	// the tick's instruction budget within each pass.
	period := time.Second / interpreter.MainLoopFrequency
	for running := true; running; {
		start := time.Now()

		for _, event := range ui.PollEvents() {
			switch event {
			case gui.EventQuit:
				running = false
			case gui.EventDump:
				fmt.Print(interp.Chip8)
			case gui.EventTogglePause:
				interp.TogglePause()
			case gui.EventStep:
				err = interp.SingleStep()
				if err != nil {
					log.Print(err)
					running = false
				}
			}
		}

		if !running {
			break
		}

		err = interp.Tick(start)
		if err != nil {
			log.Print(err)
			break
		}

		time.Sleep(period - time.Since(start))
	}
}
