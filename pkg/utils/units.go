package utils

import "math"

// MsToSamples converts a duration in milliseconds to a whole number of samples
// at rate, rounding to the nearest sample.
func MsToSamples(ms float64, rate int) int {
	return int(math.Round(ms * float64(rate) / 1000))
}

// SecToFrames converts seconds to envelope frames of hop samples each,
// rounding up so a requested minimum is never undershot.
func SecToFrames(sec float64, rate, hop int) int {
	if hop <= 0 || sec <= 0 {
		return 0
	}
	return int(math.Ceil(sec * float64(rate) / float64(hop)))
}

// SamplesToSec converts a sample count at rate to seconds.
func SamplesToSec(n, rate int) float64 {
	if rate <= 0 {
		return 0
	}
	return float64(n) / float64(rate)
}
