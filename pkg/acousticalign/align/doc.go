// Package align finds the rigid time offset between two recordings of the
// same acoustic event and reshapes both so their shared content lines up
// sample for sample.
//
// The pipeline runs strictly forward:
//
//	signals -> RMS envelopes -> frame lag -> sample shift -> aligned pair
//
//	env, err := align.ExtractEnvelope(sig, hop, window)
//	lag, err := align.EstimateLag(envA, envB)
//	shift, err := align.ResolveShift(lag, hop)
//	pair, err := align.Reconstruct(a, b, shift, align.ModeCropBoth)
//
// or in one call:
//
//	res, err := align.ShiftAlign(a, b, align.ModePadBoth, hop, window)
//
// Every function is pure. Nothing is retained between calls, so concurrent
// use on separate inputs needs no coordination.
package align
