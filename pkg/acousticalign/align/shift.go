package align

import "time"

// SampleShift is the number of samples B's content trails A's content.
// Negative values mean B's content comes first.
type SampleShift int

// Duration converts the shift to wall-clock time at sampleRate.
func (s SampleShift) Duration(sampleRate int) time.Duration {
	if sampleRate <= 0 {
		return 0
	}
	return time.Duration(float64(s) / float64(sampleRate) * float64(time.Second))
}

// ResolveShift maps an envelope lag back to raw samples. The result is only as
// precise as hop.
func ResolveShift(lag LagEstimate, hop int) (SampleShift, error) {
	if hop <= 0 {
		return 0, invalidInput("hop", hop, "must be positive")
	}
	return SampleShift(lag.Frames * hop), nil
}
