package safety

import (
	"fmt"
	"math"

	"github.com/cwbudde/algo-vecmath"

	"github.com/ken0182/synthgraph/dsp/core"
)

const (
	// maxTruePeakDB is the highest buffer peak CheckThresholds
	// accepts. It matches the hard limiter ceiling.
	maxTruePeakDB = -0.1

	// maxDCOffsetDB is the highest DC level CheckThresholds accepts.
	maxDCOffsetDB = -60.0
)

// Metrics summarizes a rendered buffer for safety monitoring. All dB
// fields are floored at -200 dB (a 1e-10 linear floor), so silence
// reads as -200 dB rather than -Inf.
type Metrics struct {
	TruePeakDB    float64
	RMSDB         float64
	CrestFactorDB float64
	DCOffsetDB    float64
	Clipping      bool
	Denormals     bool
	HeadroomDB    float64
}

// Monitor measures one buffer. Crest factor is 0 for a silent buffer;
// headroom is the negated peak level, so silence reports 200 dB of
// headroom.
func Monitor(buf []float64) Metrics {
	var m Metrics

	peak := vecmath.MaxAbs(buf)
	m.TruePeakDB = core.AmplitudeToDB(peak)

	rms := 0.0
	if len(buf) > 0 {
		rms = math.Sqrt(vecmath.DotProduct(buf, buf) / float64(len(buf)))
	}
	m.RMSDB = core.AmplitudeToDB(rms)

	if rms > 0 {
		m.CrestFactorDB = 20 * math.Log10(peak/rms)
	}

	mean := 0.0
	if len(buf) > 0 {
		mean = vecmath.Sum(buf) / float64(len(buf))
	}
	m.DCOffsetDB = core.AmplitudeToDB(math.Abs(mean))

	m.Clipping = CheckClipping(buf)
	m.Denormals = CheckDenormals(buf)
	m.HeadroomDB = -core.AmplitudeToDB(peak)

	return m
}

// CheckThresholds reports whether the metrics sit inside the safe
// operating region: no clipping, no denormals, peak at or below
// -0.1 dB, DC at or below -60 dB, and at least 3 dB of headroom.
func CheckThresholds(m Metrics) bool {
	if m.Clipping || m.Denormals {
		return false
	}
	if m.TruePeakDB > maxTruePeakDB {
		return false
	}
	if m.DCOffsetDB > maxDCOffsetDB {
		return false
	}
	if m.HeadroomDB < DefaultMinHeadroomDB {
		return false
	}
	return true
}

// MonitorSafety measures a buffer and checks it against the safety
// thresholds in one call.
func MonitorSafety(buf []float64) bool {
	return CheckThresholds(Monitor(buf))
}

// Report renders metrics as a one-line summary for logs.
func Report(m Metrics) string {
	return fmt.Sprintf(
		"peak %.2f dB, rms %.2f dB, crest %.2f dB, dc %.2f dB, headroom %.2f dB, clipping %t, denormals %t",
		m.TruePeakDB, m.RMSDB, m.CrestFactorDB, m.DCOffsetDB, m.HeadroomDB, m.Clipping, m.Denormals)
}
