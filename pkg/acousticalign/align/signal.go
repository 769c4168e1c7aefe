package align

import "time"

// Signal is a mono sample sequence plus its sample rate.
// Functions in this package never modify a Signal they receive.
type Signal struct {
	Samples    []float64
	SampleRate int
}

// NewSignal validates samples and rate and returns a Signal owning a copy of samples.
func NewSignal(samples []float64, sampleRate int) (Signal, error) {
	sig := Signal{Samples: samples, SampleRate: sampleRate}
	if err := sig.validate("signal"); err != nil {
		return Signal{}, err
	}
	sig.Samples = append([]float64(nil), samples...)
	return sig, nil
}

// Len returns the number of samples.
func (s Signal) Len() int {
	return len(s.Samples)
}

// Duration returns the signal length in wall-clock time.
func (s Signal) Duration() time.Duration {
	if s.SampleRate <= 0 {
		return 0
	}
	return time.Duration(float64(len(s.Samples)) / float64(s.SampleRate) * float64(time.Second))
}

func (s Signal) validate(name string) error {
	if s.SampleRate <= 0 {
		return invalidInput(name+".sample_rate", s.SampleRate, "must be positive")
	}
	if len(s.Samples) == 0 {
		return invalidInput(name+".samples", 0, "signal has no samples")
	}
	return nil
}

// AlignedPair holds two signals of identical length and sample rate.
type AlignedPair struct {
	A Signal
	B Signal
}

// Len returns the common length of both signals.
func (p AlignedPair) Len() int {
	return p.A.Len()
}
