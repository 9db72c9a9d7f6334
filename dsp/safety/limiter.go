package safety

import (
	"math"

	"github.com/cwbudde/algo-vecmath"

	"github.com/ken0182/synthgraph/dsp/core"
)

const (
	// DefaultTruePeakLimitDB is the uniform-scaling limit used by
	// EmergencyLimit's second pass.
	DefaultTruePeakLimitDB = -1.0

	// DefaultSoftLimitThresholdDB and DefaultSoftLimitRatio describe
	// the stock soft knee.
	DefaultSoftLimitThresholdDB = -3.0
	DefaultSoftLimitRatio       = 4.0

	// DefaultHardLimitDB is the emergency clamp ceiling.
	DefaultHardLimitDB = -0.1
)

// TruePeak returns the linear sample peak of buf. The scan is direct;
// no oversampling, so inter-sample peaks are not modeled.
func TruePeak(buf []float64) float64 {
	return vecmath.MaxAbs(buf)
}

// LimitTruePeak scales the whole buffer down uniformly when its peak
// exceeds limitDB. Buffers already under the limit are untouched, so
// the pass never pumps quiet material up.
func LimitTruePeak(buf []float64, limitDB float64) {
	peak := TruePeak(buf)
	limit := core.DBToLinear(limitDB)
	if peak > limit {
		vecmath.ScaleBlockInPlace(buf, limit/peak)
	}
}

// SoftLimit compresses the per-sample excess above thresholdDB by
// 1/ratio, preserving sign. Samples under the threshold pass through.
func SoftLimit(buf []float64, thresholdDB, ratio float64) {
	threshold := core.DBToLinear(thresholdDB)
	inverse := 1 / ratio

	for i, sample := range buf {
		abs := math.Abs(sample)
		if abs <= threshold {
			continue
		}
		limited := threshold + (abs-threshold)*inverse
		if sample < 0 {
			buf[i] = -limited
		} else {
			buf[i] = limited
		}
	}
}

// HardLimit clamps every sample into [-limit, limit] where limit is
// the linear form of limitDB. Afterward no sample magnitude exceeds
// the limit, whatever the input held.
func HardLimit(buf []float64, limitDB float64) {
	limit := core.DBToLinear(limitDB)
	for i, sample := range buf {
		if sample > limit {
			buf[i] = limit
		} else if sample < -limit {
			buf[i] = -limit
		}
	}
}
