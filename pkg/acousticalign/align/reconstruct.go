package align

// Reconstruct reshapes a and b so that content shared under shift starts at
// the same index in both outputs. shift > 0 means B's content trails A's by
// shift samples.
//
//   - ModePadBoth: A gets max(shift,0) leading zeros, B gets max(-shift,0);
//     the shorter result is then zero-padded at the tail.
//   - ModeCropBoth: B loses max(shift,0) leading samples, A loses
//     max(-shift,0); the longer result is trimmed at the tail.
//   - ModeCropPadLeading: leading crop as in ModeCropBoth, then the shorter
//     result is zero-padded to the longer one.
//   - ModeMatchReference: A is returned as is; B is shifted and padded or
//     trimmed to len(A).
//
// Both outputs always share length and sample rate. The cropping modes fail
// with *NoOverlapError when the shift leaves no common span.
func Reconstruct(a, b Signal, shift SampleShift, mode AlignMode) (AlignedPair, error) {
	if err := a.validate("signal_a"); err != nil {
		return AlignedPair{}, err
	}
	if err := b.validate("signal_b"); err != nil {
		return AlignedPair{}, err
	}
	if a.SampleRate != b.SampleRate {
		return AlignedPair{}, &SampleRateMismatchError{RateA: a.SampleRate, RateB: b.SampleRate}
	}

	s := int(shift)
	leadA := max(-s, 0) // samples of A before B's first sample
	leadB := max(s, 0)  // samples of B before A's first sample
	la, lb := a.Len(), b.Len()

	switch mode {
	case ModePadBoth:
		n := max(la+leadB, lb+leadA)
		return pair(
			place(a.Samples, leadB, n),
			place(b.Samples, leadA, n),
			a.SampleRate,
		), nil

	case ModeCropBoth:
		ca, cb, err := cropLeading(a, b, shift, mode)
		if err != nil {
			return AlignedPair{}, err
		}
		n := min(len(ca), len(cb))
		return pair(place(ca, 0, n), place(cb, 0, n), a.SampleRate), nil

	case ModeCropPadLeading:
		ca, cb, err := cropLeading(a, b, shift, mode)
		if err != nil {
			return AlignedPair{}, err
		}
		n := max(len(ca), len(cb))
		return pair(place(ca, 0, n), place(cb, 0, n), a.SampleRate), nil

	case ModeMatchReference:
		return pair(place(a.Samples, 0, la), place(b.Samples, -s, la), a.SampleRate), nil

	default:
		return AlignedPair{}, invalidInput("mode", int(mode), "unrecognized alignment mode")
	}
}

// cropLeading drops each signal's head that precedes the other's start and
// verifies that a common span remains.
func cropLeading(a, b Signal, shift SampleShift, mode AlignMode) ([]float64, []float64, error) {
	s := int(shift)
	cutA, cutB := max(-s, 0), max(s, 0)
	if a.Len()-cutA <= 0 || b.Len()-cutB <= 0 {
		return nil, nil, &NoOverlapError{Mode: mode, Shift: shift, LenA: a.Len(), LenB: b.Len()}
	}
	return a.Samples[cutA:], b.Samples[cutB:], nil
}

// place returns a fresh slice of length n holding src moved by offset:
// positive offsets insert leading zeros, negative offsets drop leading
// samples, and anything past n is cut off.
func place(src []float64, offset, n int) []float64 {
	out := make([]float64, n)
	if offset >= 0 {
		if offset < n {
			copy(out[offset:], src)
		}
		return out
	}
	if -offset < len(src) {
		copy(out, src[-offset:])
	}
	return out
}

func pair(a, b []float64, sampleRate int) AlignedPair {
	return AlignedPair{
		A: Signal{Samples: a, SampleRate: sampleRate},
		B: Signal{Samples: b, SampleRate: sampleRate},
	}
}
