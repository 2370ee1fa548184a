package gui

import (
	"github.com/veandco/go-sdl2/sdl"
)

const (
	SAMPLE_RATE    = 44100 // Samples per second.
	TONE_FREQUENCY = 330   // Square wave pitch, in Hz.
	TONE_AMPLITUDE = 48    // Offset from silence, in U8 sample units.
)

// Beeper plays a fixed-pitch square wave while the sound timer runs.
type Beeper struct {
	id   sdl.AudioDeviceID
	spec sdl.AudioSpec
	wave []byte
	on   bool
}

// NewBeeper opens the default audio device for 8-bit mono playback.
func NewBeeper() (b *Beeper, err error) {
	b = &Beeper{}

	want := &sdl.AudioSpec{
		Freq:     SAMPLE_RATE,
		Format:   sdl.AUDIO_U8,
		Channels: 1,
		Samples:  512,
	}

	b.id, err = sdl.OpenAudioDevice("", false, want, &b.spec, 0)
	if err != nil {
		return nil, err
	}

	b.wave = squareWave(b.spec.Silence)

	return b, nil
}

// squareWave builds one main-loop tick's worth of square wave samples.
func squareWave(silence uint8) (wave []byte) {
	half := SAMPLE_RATE / TONE_FREQUENCY / 2

	wave = make([]byte, SAMPLE_RATE/60)
	for n := range wave {
		if (n/half)%2 == 0 {
			wave[n] = silence + TONE_AMPLITUDE
		} else {
			wave[n] = silence - TONE_AMPLITUDE
		}
	}

	return wave
}

// SetTone implements interpreter.Beeper. While the tone is on, the
// device queue is kept topped up with square wave samples; turning the
// tone off pauses the device rather than draining the queue.
func (b *Beeper) SetTone(on bool) (err error) {
	if on && sdl.GetQueuedAudioSize(b.id) < uint32(len(b.wave)) {
		err = sdl.QueueAudio(b.id, b.wave)
		if err != nil {
			return err
		}
	}

	if on != b.on {
		sdl.PauseAudioDevice(b.id, !on)
		b.on = on
	}

	return nil
}

// Close releases the audio device.
func (b *Beeper) Close() {
	sdl.CloseAudioDevice(b.id)
}
