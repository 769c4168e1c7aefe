package align

import (
	"math"
	"math/cmplx"
	"slices"

	"github.com/mjibson/go-dsp/fft"
)

// Method selects how the cross-correlation is computed.
type Method int

const (
	// MethodAuto uses MethodFFT once lenA*lenB exceeds fftThreshold.
	MethodAuto Method = iota
	// MethodDirect sums every lag explicitly in O(lenA*lenB).
	MethodDirect
	// MethodFFT correlates in the frequency domain in O(n log n).
	MethodFFT
)

const (
	fftThreshold = 1 << 22

	// Scores within this fraction of the maximum count as ties.
	tieTolerance = 1e-9
)

func (m Method) String() string {
	switch m {
	case MethodAuto:
		return "auto"
	case MethodDirect:
		return "direct"
	case MethodFFT:
		return "fft"
	default:
		return "unknown"
	}
}

// ParseMethod resolves "auto", "direct" or "fft".
func ParseMethod(name string) (Method, error) {
	for _, m := range []Method{MethodAuto, MethodDirect, MethodFFT} {
		if m.String() == name {
			return m, nil
		}
	}
	return 0, invalidInput("method", name, "expected one of auto, direct, fft")
}

// LagEstimate is the winning lag in envelope frames. Frames > 0 means B's
// content trails A's by that many frames. Score is the overlap-normalized
// correlation at that lag and Overlap the number of frame pairs it averaged.
type LagEstimate struct {
	Frames  int
	Score   float64
	Overlap int
}

// EstimateLag cross-correlates two envelopes and returns the lag with the
// highest score. For lag k the score is
//
//	sum(A[i] * B[i+k]) / overlap(k)
//
// over every i where both indices are in range, with k spanning
// [-(len(A)-1), len(B)-1]. Dividing by the overlap keeps lags with a long
// overlap from winning on volume alone. Among tied maxima the lag closest to
// zero wins. A tie between +k and -k goes to the sign that flips when A and B
// swap roles: +k when A is the shorter envelope, or for equal lengths when A
// sorts first element-wise. Identical envelopes keep +k.
func EstimateLag(envA, envB Envelope, opts ...Option) (LagEstimate, error) {
	cfg, err := applyOptions(opts)
	if err != nil {
		return LagEstimate{}, err
	}
	if envA.Len() == 0 {
		return LagEstimate{}, invalidInput("envelope_a", 0, "envelope has no frames")
	}
	if envB.Len() == 0 {
		return LagEstimate{}, invalidInput("envelope_b", 0, "envelope has no frames")
	}
	if envA.Hop != envB.Hop {
		return LagEstimate{}, invalidInput("hop", envB.Hop, "envelopes were extracted with different hops")
	}

	la, lb := envA.Len(), envB.Len()
	corr := correlate(envA.Values, envB.Values, cfg.method)

	minOverlap := cfg.minOverlap
	if shortest := min(la, lb); minOverlap > shortest {
		minOverlap = shortest
	}
	if minOverlap < 1 {
		minOverlap = 1
	}

	scores := make([]float64, len(corr))
	eligible := make([]bool, len(corr))
	best := math.Inf(-1)
	for idx := range corr {
		k := idx - (la - 1)
		ov := overlap(la, lb, k)
		if ov < minOverlap || (cfg.maxShift > 0 && abs(2*k+la-lb) > 2*cfg.maxShift) {
			continue
		}
		scores[idx] = corr[idx] / float64(ov)
		eligible[idx] = true
		if scores[idx] > best {
			best = scores[idx]
		}
	}

	preferPositive := la < lb || (la == lb && slices.Compare(envA.Values, envB.Values) <= 0)

	tol := tieTolerance * math.Max(math.Abs(best), math.SmallestNonzeroFloat64)
	chosen := -1
	for idx := range scores {
		if !eligible[idx] || scores[idx] < best-tol {
			continue
		}
		k := idx - (la - 1)
		if chosen < 0 || closerToZero(k, chosen-(la-1), preferPositive) {
			chosen = idx
		}
	}

	k := chosen - (la - 1)
	return LagEstimate{
		Frames:  k,
		Score:   scores[chosen],
		Overlap: overlap(la, lb, k),
	}, nil
}

// overlap counts the index pairs (i, i+k) valid in both sequences.
func overlap(la, lb, k int) int {
	lo := max(0, -k)
	hi := min(la, lb-k)
	if hi < lo {
		return 0
	}
	return hi - lo
}

func closerToZero(k, than int, preferPositive bool) bool {
	if abs(k) != abs(than) {
		return abs(k) < abs(than)
	}
	if preferPositive {
		return k > than
	}
	return k < than
}

// correlate returns raw correlation sums; index idx holds lag idx-(len(a)-1).
func correlate(a, b []float64, method Method) []float64 {
	if method == MethodAuto {
		method = MethodDirect
		if len(a)*len(b) > fftThreshold {
			method = MethodFFT
		}
	}
	if method == MethodFFT {
		return correlateFFT(a, b)
	}
	return correlateDirect(a, b)
}

func correlateDirect(a, b []float64) []float64 {
	la, lb := len(a), len(b)
	out := make([]float64, la+lb-1)
	for k := -(la - 1); k <= lb-1; k++ {
		var sum float64
		for i := max(0, -k); i < min(la, lb-k); i++ {
			sum += a[i] * b[i+k]
		}
		out[k+la-1] = sum
	}
	return out
}

// correlateFFT uses IFFT(conj(FFT(a)) * FFT(b)), zero-padded past
// len(a)+len(b)-1 so the circular result has no wrap-around.
func correlateFFT(a, b []float64) []float64 {
	la, lb := len(a), len(b)
	n := nextPowerOf2(la + lb - 1)

	xa := make([]float64, n)
	xb := make([]float64, n)
	copy(xa, a)
	copy(xb, b)

	fa := fft.FFTReal(xa)
	fb := fft.FFTReal(xb)
	prod := make([]complex128, n)
	for i := range prod {
		prod[i] = cmplx.Conj(fa[i]) * fb[i]
	}
	r := fft.IFFT(prod)

	out := make([]float64, la+lb-1)
	for k := -(la - 1); k <= lb-1; k++ {
		out[k+la-1] = real(r[(k+n)%n])
	}
	return out
}

func nextPowerOf2(n int) int {
	p := 1
	for p < n {
		p <<= 1
	}
	return p
}

func abs(x int) int {
	if x < 0 {
		return -x
	}
	return x
}
