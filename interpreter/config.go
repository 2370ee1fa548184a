package interpreter

import (
	"fmt"
	"strings"
)

const (
	MainLoopFrequency = 60 // Outer loop rate, Hz. Timers decay at this rate.

	MinFrequency     = 200  // Smallest usable CPU frequency, Hz.
	MaxFrequency     = 1000 // Largest usable CPU frequency, Hz.
	DefaultFrequency = 500  // CPU frequency when unconfigured, Hz.
)

// Color is a 24-bit RGB display color.
type Color struct {
	R uint8
	G uint8
	B uint8
}

// Default display palette.
var (
	DefaultBackground = Color{R: 0, G: 0, B: 0}
	DefaultForeground = Color{R: 0, G: 255, B: 102}
)

// Pixel scale factors for the named screen sizes.
var scaleMap = map[string]int{
	"small":  10,
	"medium": 12,
	"large":  16,
}

// Config carries the interpreter settings, fixed before the run starts.
type Config struct {
	Scale      int   // Display pixel scale factor.
	Frequency  int   // CPU frequency in instructions per second.
	Background Color // Unset pixel color.
	Foreground Color // Set pixel color.
	DebugMode  bool  // Enables pause, resume and single stepping.
	C48Mode    bool  // Selects CHIP-48 opcode semantics.
}

// DefaultConfig returns the settings used when nothing is configured.
func DefaultConfig() Config {
	return Config{
		Scale:      scaleMap["small"],
		Frequency:  DefaultFrequency,
		Background: DefaultBackground,
		Foreground: DefaultForeground,
	}
}

// InstructionsPerTick is the number of machine instructions per outer loop
// tick. The machine runs at half the nominal frequency, leaving the rest of
// the tick for rendering and input.
func (config *Config) InstructionsPerTick() int {
	return (config.Frequency / MainLoopFrequency) / 2
}

// Validate reports the first invalid configuration setting.
func (config *Config) Validate() (err error) {
	if config.Frequency < MinFrequency || config.Frequency > MaxFrequency {
		err = ErrFrequencyRange
		return
	}
	if config.Scale < 1 {
		err = ErrScreenSize
		return
	}

	return
}

// ParseScale maps a screen size name to its pixel scale factor.
func ParseScale(name string) (scale int, err error) {
	scale, ok := scaleMap[strings.ToLower(name)]
	if !ok {
		err = ErrScreenSize
		return
	}

	return
}

// ParseColor parses an "R,G,B" color triple with components 0-255.
func ParseColor(text string) (color Color, err error) {
	var r, g, b uint8
	n, err := fmt.Sscanf(strings.TrimSpace(text), "%d,%d,%d", &r, &g, &b)
	if err != nil || n != 3 {
		err = ErrColorFormat
		return
	}
	color = Color{R: r, G: g, B: b}

	return
}
