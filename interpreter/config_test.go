package interpreter

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestDefaultConfig(t *testing.T) {
	assert := assert.New(t)

	config := DefaultConfig()
	assert.NoError(config.Validate())
	assert.Equal(10, config.Scale)
	assert.Equal(DefaultFrequency, config.Frequency)
	assert.Equal(DefaultBackground, config.Background)
	assert.Equal(DefaultForeground, config.Foreground)
	assert.False(config.DebugMode)
	assert.False(config.C48Mode)
}

func TestConfigValidate(t *testing.T) {
	assert := assert.New(t)

	config := DefaultConfig()

	config.Frequency = MinFrequency - 1
	assert.ErrorIs(config.Validate(), ErrFrequencyRange)

	config.Frequency = MaxFrequency + 1
	assert.ErrorIs(config.Validate(), ErrFrequencyRange)

	config.Frequency = MinFrequency
	assert.NoError(config.Validate())

	config.Frequency = MaxFrequency
	assert.NoError(config.Validate())

	config.Scale = 0
	assert.ErrorIs(config.Validate(), ErrScreenSize)
}

func TestInstructionsPerTick(t *testing.T) {
	type testCase struct {
		frequency int
		want      int
	}

	testCases := []testCase{
		{frequency: 200, want: 1},
		{frequency: 500, want: 4},
		{frequency: 600, want: 5},
		{frequency: 1000, want: 8},
	}

	for _, tc := range testCases {
		assert := assert.New(t)

		config := DefaultConfig()
		config.Frequency = tc.frequency
		assert.Equal(tc.want, config.InstructionsPerTick(), "%dHz", tc.frequency)
	}
}

func TestParseScale(t *testing.T) {
	assert := assert.New(t)

	scale, err := ParseScale("small")
	assert.NoError(err)
	assert.Equal(10, scale)

	scale, err = ParseScale("Medium")
	assert.NoError(err)
	assert.Equal(12, scale)

	scale, err = ParseScale("LARGE")
	assert.NoError(err)
	assert.Equal(16, scale)

	_, err = ParseScale("enormous")
	assert.ErrorIs(err, ErrScreenSize)
}

func TestParseColor(t *testing.T) {
	assert := assert.New(t)

	color, err := ParseColor("0,255,102")
	assert.NoError(err)
	assert.Equal(Color{R: 0, G: 255, B: 102}, color)

	color, err = ParseColor(" 16,32,48 ")
	assert.NoError(err)
	assert.Equal(Color{R: 16, G: 32, B: 48}, color)

	for _, bad := range []string{"", "1,2", "256,0,0", "-1,0,0", "r,g,b"} {
		_, err = ParseColor(bad)
		assert.ErrorIs(err, ErrColorFormat, bad)
	}
}
