package audio

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
)

func TestCalibrateNoiseTrimsWindow(t *testing.T) {
	rate := 16000
	window := 500 * time.Millisecond
	windowSamples := rate / 2

	samples := make([]int16, rate*2) // 2 seconds
	for i := range samples {
		if i < windowSamples {
			samples[i] = 100 // quiet ambient lead-in
		} else {
			samples[i] = 10000
		}
	}

	trimmed, ambient := CalibrateNoise(samples, rate, window)

	assert.Len(t, trimmed, len(samples)-windowSamples)
	assert.InDelta(t, 100, ambient, 1, "ambient energy reflects the lead-in only")
	assert.Equal(t, int16(10000), trimmed[0], "trim removes exactly the calibration window")
}

func TestCalibrateNoiseKeepsShortClips(t *testing.T) {
	rate := 16000
	samples := make([]int16, rate/2) // 0.5s, too short to trim

	trimmed, _ := CalibrateNoise(samples, rate, 500*time.Millisecond)

	assert.Len(t, trimmed, len(samples))
}

func TestCalibrateNoiseHandlesEmptyInput(t *testing.T) {
	trimmed, ambient := CalibrateNoise(nil, 16000, 500*time.Millisecond)

	assert.Empty(t, trimmed)
	assert.Zero(t, ambient)
}
