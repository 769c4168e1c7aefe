package align

import "math"

// Envelope is a coarse loudness curve: one RMS value per Hop samples of the
// source signal.
type Envelope struct {
	Values     []float64
	Hop        int
	Window     int
	SampleRate int
}

// Len returns the number of frames.
func (e Envelope) Len() int {
	return len(e.Values)
}

// ExtractEnvelope computes the RMS of successive windows of length window,
// advancing hop samples each frame. Frame j covers samples
// [j*hop, j*hop+window). Trailing windows that would run past the end of the
// signal are dropped, so a signal shorter than window yields an empty envelope.
func ExtractEnvelope(sig Signal, hop, window int) (Envelope, error) {
	if hop <= 0 {
		return Envelope{}, invalidInput("hop", hop, "must be positive")
	}
	if window <= 0 {
		return Envelope{}, invalidInput("window", window, "must be positive")
	}
	if err := sig.validate("signal"); err != nil {
		return Envelope{}, err
	}

	n := len(sig.Samples)
	frames := 0
	if n >= window {
		frames = (n-window)/hop + 1
	}

	values := make([]float64, frames)
	for j := range values {
		start := j * hop
		values[j] = rms(sig.Samples[start : start+window])
	}

	return Envelope{
		Values:     values,
		Hop:        hop,
		Window:     window,
		SampleRate: sig.SampleRate,
	}, nil
}

func rms(x []float64) float64 {
	var sumSq float64
	for _, v := range x {
		sumSq += v * v
	}
	return math.Sqrt(sumSq / float64(len(x)))
}
