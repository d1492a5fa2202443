package voicefx

import "fmt"

// MaxFeedback is the largest loop gain any topology may use. It keeps
// every feedback path strictly decaying.
const MaxFeedback = 0.6

// Intensity is the user-chosen effect strength.
type Intensity int

// Intensity bounds.
const (
	MinIntensity Intensity = 0
	MaxIntensity Intensity = 100
)

// Clamp limits i to [0, 100].
func (i Intensity) Clamp() Intensity {
	return max(MinIntensity, min(MaxIntensity, i))
}

// Mix returns the clamped intensity as a fraction in [0, 1].
func (i Intensity) Mix() float64 {
	return float64(i.Clamp()) / 100
}

// Mix holds the dry and wet path gains.
type Mix struct {
	Dry float64 `json:"dry"`
	Wet float64 `json:"wet"`
}

// MixFor returns the dry/wet gains of an effect. Unknown ids pass the
// input through unchanged.
func MixFor(id ID, intensity Intensity) Mix {
	m := intensity.Mix()
	switch id {
	case Delay:
		return Mix{Dry: 1 - 0.5*m, Wet: 0.8 * m}
	case Reverb:
		return Mix{Dry: 1 - 0.3*m, Wet: 0.6 * m}
	case Tremolo, Phaser, Telephone, Echo, Underwater, Radio:
		return Mix{Dry: 1 - m, Wet: m}
	default:
		return Mix{Dry: 1, Wet: 0}
	}
}

// DelaySettings are the intensity-dependent delay parameters.
type DelaySettings struct {
	Time     float64 // seconds
	Feedback float64
}

// DelayFor maps intensity to delay time (0.1 s to 0.5 s) and feedback
// (0 to 0.6).
func DelayFor(intensity Intensity) DelaySettings {
	m := intensity.Mix()
	return DelaySettings{
		Time:     0.1 + 0.4*m,
		Feedback: MaxFeedback * m,
	}
}

// ReverbLength maps intensity to the impulse response length: one second
// plus up to two more at full intensity.
func ReverbLength(intensity Intensity) float64 {
	return 1 + float64(intensity.Clamp())/50
}

// echoTap is one delay line of the echo effect.
type echoTap struct {
	time     float64
	feedback float64
}

var echoTaps = []echoTap{
	{time: 0.2, feedback: 0.3},
	{time: 0.4, feedback: 0.2},
	{time: 0.6, feedback: 0.1},
}

// Fixed topology constants.
const (
	tremoloRate  = 4.0
	tremoloDepth = 0.5

	phaserStages   = 4
	phaserBaseFreq = 200.0
	phaserStep     = 100.0
	phaserQ        = 1.0
	phaserRate     = 0.8
	phaserDepth    = 200.0
	phaserFeedback = 0.5

	telephoneLow  = 300.0
	telephoneHigh = 3000.0
	defaultQ      = 1.0 // dB
	telephoneGain = 2.0

	underwaterCutoff = 800.0
	underwaterDelay  = 0.02
	underwaterRate   = 2.0
	underwaterDepth  = 0.005

	radioCurvePoints = 44100
	radioDrive       = 3.0
	radioEQFreq      = 2000.0
	radioEQQ         = 1.0
	radioEQGain      = 6.0
)

func checkFeedback(name string, gain float64) error {
	if gain < 0 || gain > MaxFeedback {
		return fmt.Errorf("%w: %s gain %v", ErrFeedbackLimit, name, gain)
	}
	return nil
}
