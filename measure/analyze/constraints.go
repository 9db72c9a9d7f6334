package analyze

import (
	"math"

	"github.com/cwbudde/algo-vecmath"

	"github.com/ken0182/synthgraph/dsp/core"
	"github.com/ken0182/synthgraph/dsp/safety"
)

// lufsToleranceDB is how far loudness may stray from the target
// before CheckConstraints flags it.
const lufsToleranceDB = 3.0

// Violation reports one constraint breach: the measured value and the
// limit it crossed.
type Violation struct {
	Name  string
	Value float64
	Limit float64
}

// CheckConstraints measures a buffer against the safety constraints
// and returns one violation per breached bound. The hard clip
// violation reports the first offending sample; the crest factor
// window is checked only when its max exceeds its min.
func CheckConstraints(buf []float64, c safety.Constraints) []Violation {
	var violations []Violation

	if c.NoHardClips {
		for _, sample := range buf {
			if math.Abs(sample) >= 1.0 {
				violations = append(violations, Violation{
					Name:  "hard_clip",
					Value: math.Abs(sample),
					Limit: 1.0,
				})
				break
			}
		}
	}

	truePeakDB := core.AmplitudeToDB(vecmath.MaxAbs(buf))
	if truePeakDB > c.TruePeakLimitDB {
		violations = append(violations, Violation{
			Name:  "true_peak",
			Value: truePeakDB,
			Limit: c.TruePeakLimitDB,
		})
	}

	lufs := Loudness(buf)
	if math.Abs(lufs-c.LUFSTarget) > lufsToleranceDB {
		violations = append(violations, Violation{
			Name:  "lufs_target",
			Value: lufs,
			Limit: c.LUFSTarget,
		})
	}

	if c.CrestFactorMaxDB > c.CrestFactorMinDB {
		crest := CrestFactor(buf)
		switch {
		case crest < c.CrestFactorMinDB:
			violations = append(violations, Violation{
				Name:  "crest_factor",
				Value: crest,
				Limit: c.CrestFactorMinDB,
			})
		case crest > c.CrestFactorMaxDB:
			violations = append(violations, Violation{
				Name:  "crest_factor",
				Value: crest,
				Limit: c.CrestFactorMaxDB,
			})
		}
	}

	return violations
}
