package align

import (
	"math"
	"math/rand"
)

// burstSignal returns noise whose loudness jumps every 400 samples, which
// gives the envelope a distinctive shape.
func burstSignal(seed int64, n, sampleRate int) Signal {
	rng := rand.New(rand.NewSource(seed))
	samples := make([]float64, n)
	amp := 0.0
	for i := range samples {
		if i%400 == 0 {
			amp = 0.02
			if rng.Float64() < 0.3 {
				amp = 0.3 + 0.7*rng.Float64()
			}
		}
		samples[i] = amp * (2*rng.Float64() - 1)
	}
	return Signal{Samples: samples, SampleRate: sampleRate}
}

// delayed returns sig with d leading zeros, truncated to its original length.
func delayed(sig Signal, d int) Signal {
	out := make([]float64, len(sig.Samples))
	copy(out[d:], sig.Samples)
	return Signal{Samples: out, SampleRate: sig.SampleRate}
}

func tone(freq float64, sampleRate, n int) Signal {
	samples := make([]float64, n)
	for i := range samples {
		samples[i] = 0.5 * math.Sin(2*math.Pi*freq*float64(i)/float64(sampleRate))
	}
	return Signal{Samples: samples, SampleRate: sampleRate}
}

func sig(rate int, samples ...float64) Signal {
	return Signal{Samples: samples, SampleRate: rate}
}

func env(values ...float64) Envelope {
	return Envelope{Values: values, Hop: 1, Window: 1, SampleRate: 1}
}
