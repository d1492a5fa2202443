package conv

import "math"

const (
	gainCalibration           = 0.00125
	gainCalibrationSampleRate = 44100.0
	minPower                  = 0.000125
)

// NormalizationScale returns the gain applied to an impulse response so
// that responses of different energy produce comparable loudness. The
// calibration matches the normalize flag of browser convolver nodes: the
// RMS over all channels is mapped to a fixed reference and corrected for
// the sample rate of the response.
func NormalizationScale(channels [][]float64, sampleRate float64) float64 {
	var (
		sum   float64
		count int
	)
	for _, ch := range channels {
		for _, v := range ch {
			sum += v * v
		}
		count += len(ch)
	}

	power := 0.0
	if count > 0 {
		power = math.Sqrt(sum / float64(count))
	}
	if math.IsNaN(power) || math.IsInf(power, 0) || power < minPower {
		power = minPower
	}

	scale := gainCalibration / power
	if sampleRate > 0 {
		scale *= gainCalibrationSampleRate / sampleRate
	}

	return scale
}
