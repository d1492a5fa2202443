package dynamics

import (
	"fmt"
	"math"

	"github.com/cwbudde/algo-voicefx/dsp/core"
)

const (
	defaultThresholdDB = -24.0
	defaultKneeDB      = 30.0
	defaultRatio       = 12.0
	defaultAttack      = 0.003
	defaultRelease     = 0.25

	minThresholdDB = -100.0
	maxThresholdDB = 0.0
	minKneeDB      = 0.0
	maxKneeDB      = 40.0
	minRatio       = 1.0
	maxRatio       = 20.0
	maxTime        = 1.0

	// makeupExponent shapes the automatic makeup gain: (1/fullScaleGain)^0.6.
	makeupExponent = 0.6
)

// Compressor is a feed-forward peak compressor with a soft knee.
//
// The static curve leaves levels below the threshold untouched, bends
// quadratically over the knee width above the threshold and continues
// with slope 1/ratio beyond it. The detector is a peak follower whose
// attack and release are half-life times.
//
// This implementation is single-threaded and not thread-safe.
type Compressor struct {
	thresholdDB float64
	kneeDB      float64
	ratio       float64
	attack      float64
	release     float64

	sampleRate float64

	peakLevel float64

	attackCoeff  float64
	releaseCoeff float64
	makeupLin    float64

	// last gain reduction in dB, <= 0
	reductionDB float64
}

// NewCompressor creates a compressor with browser-default parameters:
// threshold -24 dB, knee 30 dB, ratio 12, attack 3 ms, release 250 ms.
func NewCompressor(sampleRate float64) (*Compressor, error) {
	if sampleRate <= 0 || math.IsNaN(sampleRate) || math.IsInf(sampleRate, 0) {
		return nil, fmt.Errorf("compressor sample rate must be positive and finite: %f", sampleRate)
	}

	c := &Compressor{
		thresholdDB: defaultThresholdDB,
		kneeDB:      defaultKneeDB,
		ratio:       defaultRatio,
		attack:      defaultAttack,
		release:     defaultRelease,
		sampleRate:  sampleRate,
	}

	c.updateCoefficients()
	return c, nil
}

// SetThreshold sets the threshold in dB, range [-100, 0].
func (c *Compressor) SetThreshold(dB float64) error {
	if err := checkRange("threshold", dB, minThresholdDB, maxThresholdDB); err != nil {
		return err
	}
	c.thresholdDB = dB
	c.updateCoefficients()
	return nil
}

// SetKnee sets the knee width in dB above the threshold, range [0, 40].
func (c *Compressor) SetKnee(dB float64) error {
	if err := checkRange("knee", dB, minKneeDB, maxKneeDB); err != nil {
		return err
	}
	c.kneeDB = dB
	c.updateCoefficients()
	return nil
}

// SetRatio sets the compression ratio, range [1, 20].
func (c *Compressor) SetRatio(ratio float64) error {
	if err := checkRange("ratio", ratio, minRatio, maxRatio); err != nil {
		return err
	}
	c.ratio = ratio
	c.updateCoefficients()
	return nil
}

// SetAttack sets the attack time in seconds, range [0, 1].
func (c *Compressor) SetAttack(seconds float64) error {
	if err := checkRange("attack", seconds, 0, maxTime); err != nil {
		return err
	}
	c.attack = seconds
	c.updateTimeConstants()
	return nil
}

// SetRelease sets the release time in seconds, range [0, 1].
func (c *Compressor) SetRelease(seconds float64) error {
	if err := checkRange("release", seconds, 0, maxTime); err != nil {
		return err
	}
	c.release = seconds
	c.updateTimeConstants()
	return nil
}

// Threshold returns the threshold in dB.
func (c *Compressor) Threshold() float64 { return c.thresholdDB }

// Knee returns the knee width in dB.
func (c *Compressor) Knee() float64 { return c.kneeDB }

// Ratio returns the compression ratio.
func (c *Compressor) Ratio() float64 { return c.ratio }

// Attack returns the attack time in seconds.
func (c *Compressor) Attack() float64 { return c.attack }

// Release returns the release time in seconds.
func (c *Compressor) Release() float64 { return c.release }

// MakeupGain returns the automatic makeup gain as a linear factor.
func (c *Compressor) MakeupGain() float64 { return c.makeupLin }

// Reduction returns the gain reduction applied to the last sample in dB.
func (c *Compressor) Reduction() float64 { return c.reductionDB }

// ProcessSample processes one sample through the compressor.
func (c *Compressor) ProcessSample(input float64) float64 {
	level := math.Abs(input)

	if level > c.peakLevel {
		c.peakLevel += (level - c.peakLevel) * c.attackCoeff
	} else {
		c.peakLevel = level + (c.peakLevel-level)*c.releaseCoeff
	}

	gainDB := c.staticGainDB(c.peakLevel)
	c.reductionDB = gainDB

	return input * core.DBToLinear(gainDB) * c.makeupLin
}

// ProcessBlockTo compresses src into dst. The slices may alias.
func (c *Compressor) ProcessBlockTo(dst, src []float64) {
	for i, x := range src {
		dst[i] = c.ProcessSample(x)
	}
}

// CurveDB returns the static output level in dB for an input level in dB,
// before makeup gain.
func (c *Compressor) CurveDB(inputDB float64) float64 {
	return inputDB + c.gainForLevelDB(inputDB)
}

// Reset clears the detector state.
func (c *Compressor) Reset() {
	c.peakLevel = 0
	c.reductionDB = 0
}

func (c *Compressor) updateCoefficients() {
	fullScaleGain := core.DBToLinear(c.gainForLevelDB(0))
	c.makeupLin = math.Pow(1/fullScaleGain, makeupExponent)

	c.updateTimeConstants()
}

// updateTimeConstants derives half-life smoothing coefficients.
func (c *Compressor) updateTimeConstants() {
	if c.attack <= 0 {
		c.attackCoeff = 1
	} else {
		c.attackCoeff = 1.0 - math.Exp(-math.Ln2/(c.attack*c.sampleRate))
	}

	if c.release <= 0 {
		c.releaseCoeff = 0
	} else {
		c.releaseCoeff = math.Exp(-math.Ln2 / (c.release * c.sampleRate))
	}
}

func (c *Compressor) staticGainDB(peak float64) float64 {
	if peak <= 0 {
		return 0
	}
	return c.gainForLevelDB(core.LinearToDB(peak))
}

// gainForLevelDB evaluates the static curve as a gain change in dB.
func (c *Compressor) gainForLevelDB(x float64) float64 {
	over := x - c.thresholdDB
	if over <= 0 {
		return 0
	}

	slope := 1/c.ratio - 1
	if over < c.kneeDB {
		return slope * over * over / (2 * c.kneeDB)
	}

	// Continuous with the knee: at over == knee both branches give slope*knee/2.
	return slope * (over - c.kneeDB/2)
}

func checkRange(name string, v, lo, hi float64) error {
	if v < lo || v > hi || math.IsNaN(v) {
		return fmt.Errorf("compressor %s must be in [%g, %g]: %f", name, lo, hi, v)
	}
	return nil
}
