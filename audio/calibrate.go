package audio

import (
	"math"
	"time"
)

// DefaultCalibrationWindow is the slice of leading audio sampled for
// ambient-noise energy and discarded before recognition.
const DefaultCalibrationWindow = 500 * time.Millisecond

// CalibrateNoise measures the RMS energy of the leading window and returns
// the samples with that window trimmed off. Clips shorter than twice the
// window are returned untouched; trimming them would eat the speech itself.
func CalibrateNoise(samples []int16, sampleRate int, window time.Duration) ([]int16, float64) {
	if sampleRate <= 0 || len(samples) == 0 {
		return samples, 0
	}

	n := int(float64(sampleRate) * window.Seconds())
	if n <= 0 || len(samples) < 2*n {
		return samples, rms(samples)
	}

	ambient := rms(samples[:n])
	return samples[n:], ambient
}

func rms(samples []int16) float64 {
	if len(samples) == 0 {
		return 0
	}

	var sum float64
	for _, s := range samples {
		v := float64(s)
		sum += v * v
	}

	return math.Sqrt(sum / float64(len(samples)))
}
