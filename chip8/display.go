package chip8

// Display buffer dimensions in pixels.
const (
	DISPLAY_WIDTH  = 64
	DISPLAY_HEIGHT = 32
)

// Display is the monochrome pixel buffer. Only the draw and clear opcodes
// and a machine reset mutate it; collaborators read it through Pixel or
// Snapshot.
type Display struct {
	pixels  [DISPLAY_WIDTH * DISPLAY_HEIGHT]bool
	refresh bool
}

// Clear zeroes every pixel and marks the buffer for refresh.
func (d *Display) Clear() {
	clear(d.pixels[:])
	d.refresh = true
}

// Reset returns the buffer to its initial blank state with no refresh
// pending.
func (d *Display) Reset() {
	clear(d.pixels[:])
	d.refresh = false
}

// Pixel reports the pixel at (x, y). Out of range coordinates are unset.
func (d *Display) Pixel(x, y int) bool {
	if x < 0 || x >= DISPLAY_WIDTH || y < 0 || y >= DISPLAY_HEIGHT {
		return false
	}

	return d.pixels[y*DISPLAY_WIDTH+x]
}

// flip XORs the pixel at (x, y) and reports whether it flipped from set to
// unset (a sprite collision). Coordinates must already be wrapped.
func (d *Display) flip(x, y int) (collision bool) {
	pos := y*DISPLAY_WIDTH + x
	collision = d.pixels[pos]
	d.pixels[pos] = !d.pixels[pos]
	return
}

// ShouldRefresh reports a pending refresh and consumes the flag.
func (d *Display) ShouldRefresh() bool {
	if !d.refresh {
		return false
	}

	d.refresh = false
	return true
}

// Snapshot copies the pixel grid, row-major, for a renderer.
func (d *Display) Snapshot() (pixels []bool) {
	pixels = make([]bool, len(d.pixels))
	copy(pixels, d.pixels[:])
	return
}
