package gui

import (
	"github.com/veandco/go-sdl2/sdl"

	"github.com/ezrec/chip8/chip8"
	"github.com/ezrec/chip8/interpreter"
)

// Video is the scaled CHIP-8 display window.
type Video struct {
	window   *sdl.Window
	renderer *sdl.Renderer
}

// NewVideo opens a window sized to the display buffer times the
// configured scale factor.
func NewVideo(title string, config interpreter.Config) (v *Video, err error) {
	v = &Video{}

	v.window, err = sdl.CreateWindow(title,
		sdl.WINDOWPOS_CENTERED, sdl.WINDOWPOS_CENTERED,
		int32(chip8.DISPLAY_WIDTH*config.Scale),
		int32(chip8.DISPLAY_HEIGHT*config.Scale),
		sdl.WINDOW_SHOWN)
	if err != nil {
		return nil, err
	}

	v.renderer, err = sdl.CreateRenderer(v.window, -1, sdl.RENDERER_ACCELERATED|sdl.RENDERER_PRESENTVSYNC)
	if err != nil {
		_ = v.window.Destroy()
		return nil, err
	}

	return v, nil
}

// Render implements interpreter.Renderer. Each set pixel is drawn as a
// filled scale-by-scale rectangle over the background color.
func (v *Video) Render(frame interpreter.Frame) (err error) {
	err = v.renderer.SetDrawColor(frame.Background.R, frame.Background.G, frame.Background.B, 255)
	if err != nil {
		return err
	}

	err = v.renderer.Clear()
	if err != nil {
		return err
	}

	err = v.renderer.SetDrawColor(frame.Foreground.R, frame.Foreground.G, frame.Foreground.B, 255)
	if err != nil {
		return err
	}

	scale := int32(frame.Scale)
	for y := 0; y < frame.Height; y++ {
		for x := 0; x < frame.Width; x++ {
			if !frame.Pixels[y*frame.Width+x] {
				continue
			}

			rect := sdl.Rect{X: int32(x) * scale, Y: int32(y) * scale, W: scale, H: scale}
			err = v.renderer.FillRect(&rect)
			if err != nil {
				return err
			}
		}
	}

	v.renderer.Present()

	return nil
}

// Close destroys the renderer and window.
func (v *Video) Close() (err error) {
	err = v.renderer.Destroy()
	if err != nil {
		return err
	}

	return v.window.Destroy()
}
