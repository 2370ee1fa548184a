package chip8

const (
	KEY_COUNT = 16 // Keys 0x0 through 0xF.
)

// Keypad is the sixteen key input latch. The input collaborator writes a
// snapshot once per outer tick; the machine only reads it. Mapping physical
// keys to CHIP-8 key indexes is the collaborator's business.
type Keypad [KEY_COUNT]bool

// Set replaces the latch with a fresh snapshot.
func (k *Keypad) Set(keys Keypad) {
	*k = keys
}

// Press marks a single key as held.
func (k *Keypad) Press(key uint8) {
	if key < KEY_COUNT {
		k[key] = true
	}
}

// Release marks a single key as up.
func (k *Keypad) Release(key uint8) {
	if key < KEY_COUNT {
		k[key] = false
	}
}

// Pressed reports whether a key is held. Indexes beyond the keypad are
// never pressed.
func (k *Keypad) Pressed(key uint8) bool {
	return key < KEY_COUNT && k[key]
}

// FirstPressed returns the lowest held key index, if any.
func (k *Keypad) FirstPressed() (key uint8, ok bool) {
	for n, held := range k {
		if held {
			return uint8(n), true
		}
	}

	return
}

// Reset releases every key.
func (k *Keypad) Reset() {
	clear(k[:])
}
