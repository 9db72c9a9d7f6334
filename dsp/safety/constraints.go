package safety

// Constraints bounds what a rendered program is allowed to do. Use
// DefaultConstraints for the production limits.
type Constraints struct {
	// MaxCPU is the allowed CPU share, 1.0 meaning one full core.
	MaxCPU float64

	// MaxLatencyMS bounds the render time for one block.
	MaxLatencyMS float64

	// NoHardClips requires rendered audio to stay below full scale.
	NoHardClips bool

	// TruePeakLimitDB is the ceiling applied by the true peak
	// limiter.
	TruePeakLimitDB float64

	// LUFSTarget is the integrated loudness target.
	LUFSTarget float64

	// CrestFactorMinDB and CrestFactorMaxDB bound the peak-to-RMS
	// ratio of acceptable program material.
	CrestFactorMinDB float64
	CrestFactorMaxDB float64
}

// DefaultConstraints returns the production limits.
func DefaultConstraints() Constraints {
	return Constraints{
		MaxCPU:           1.0,
		MaxLatencyMS:     10.0,
		NoHardClips:      true,
		TruePeakLimitDB:  -1.0,
		LUFSTarget:       -18.0,
		CrestFactorMinDB: 6.0,
		CrestFactorMaxDB: 14.0,
	}
}
