package align

// Result is the outcome of ShiftAlign: the aligned pair plus the numbers that
// produced it.
type Result struct {
	AlignedPair
	Shift SampleShift
	Lag   LagEstimate
	Hop   int
}

// ShiftAlign estimates the offset between a and b and reconstructs both under
// mode. hop and window are in samples. Errors from each stage are returned
// unchanged.
func ShiftAlign(a, b Signal, mode AlignMode, hop, window int, opts ...Option) (Result, error) {
	if err := a.validate("signal_a"); err != nil {
		return Result{}, err
	}
	if err := b.validate("signal_b"); err != nil {
		return Result{}, err
	}
	if a.SampleRate != b.SampleRate {
		return Result{}, &SampleRateMismatchError{RateA: a.SampleRate, RateB: b.SampleRate}
	}
	if !mode.Valid() {
		return Result{}, invalidInput("mode", int(mode), "unrecognized alignment mode")
	}

	lag, err := Estimate(a, b, hop, window, opts...)
	if err != nil {
		return Result{}, err
	}

	shift, err := ResolveShift(lag, hop)
	if err != nil {
		return Result{}, err
	}

	aligned, err := Reconstruct(a, b, shift, mode)
	if err != nil {
		return Result{}, err
	}

	return Result{
		AlignedPair: aligned,
		Shift:       shift,
		Lag:         lag,
		Hop:         hop,
	}, nil
}

// Estimate runs envelope extraction on both signals and the lag search,
// without reconstructing.
func Estimate(a, b Signal, hop, window int, opts ...Option) (LagEstimate, error) {
	if a.SampleRate != b.SampleRate {
		return LagEstimate{}, &SampleRateMismatchError{RateA: a.SampleRate, RateB: b.SampleRate}
	}

	envA, err := ExtractEnvelope(a, hop, window)
	if err != nil {
		return LagEstimate{}, err
	}

	envB, err := ExtractEnvelope(b, hop, window)
	if err != nil {
		return LagEstimate{}, err
	}

	return EstimateLag(envA, envB, opts...)
}
