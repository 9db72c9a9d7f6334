package core

import "math"

const (
	defaultEpsilon = 1e-12

	// minLinearAmplitude floors dB conversions so silent material maps to
	// -200 dB instead of -Inf.
	minLinearAmplitude = 1e-10
)

// Clamp limits value to the inclusive range [min, max].
func Clamp(value, min, max float64) float64 {
	if min > max {
		min, max = max, min
	}

	if value < min {
		return min
	}

	if value > max {
		return max
	}

	return value
}

// NearlyEqual reports whether a and b are equal within eps.
func NearlyEqual(a, b, eps float64) bool {
	if eps <= 0 {
		eps = defaultEpsilon
	}

	diff := math.Abs(a - b)
	if diff <= eps {
		return true
	}

	largest := math.Max(math.Abs(a), math.Abs(b))
	if largest == 0 {
		return diff <= eps
	}

	return diff/largest <= eps
}

// FlushDenormals converts tiny denormal-like values to exact zero.
// This can reduce denormal-related CPU slowdowns in hot DSP loops.
func FlushDenormals(x float64) float64 {
	const epsilon = 1e-30
	if x > -epsilon && x < epsilon {
		return 0
	}

	return x
}

// IsSubnormal reports whether x is an IEEE 754 subnormal value: nonzero,
// with a zero biased exponent. Subnormals are a known source of large
// per-sample slowdowns in audio loops.
func IsSubnormal(x float64) bool {
	bits := math.Float64bits(x)
	exponent := bits >> 52 & 0x7ff
	mantissa := bits & (1<<52 - 1)

	return exponent == 0 && mantissa != 0
}

// DBToLinear converts dB to linear amplitude (20*log10 convention).
func DBToLinear(db float64) float64 {
	return math.Pow(10, db/20)
}

// LinearToDB converts linear amplitude to dB (20*log10 convention).
// Returns -Inf for zero and NaN for negative values.
func LinearToDB(linear float64) float64 {
	if linear < 0 {
		return math.NaN()
	}

	if linear == 0 {
		return math.Inf(-1)
	}

	return 20 * math.Log10(linear)
}

// AmplitudeToDB converts linear amplitude to dB with the input floored at
// 1e-10, so the result is always finite. Safety metering uses this form:
// a silent buffer reads as -200 dB rather than -Inf.
func AmplitudeToDB(linear float64) float64 {
	return 20 * math.Log10(math.Max(linear, minLinearAmplitude))
}
