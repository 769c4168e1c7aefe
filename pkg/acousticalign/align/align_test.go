package align

import (
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const (
	testRate   = 8000
	testHop    = 80  // 10 ms
	testWindow = 200 // 25 ms
)

func TestShiftAlignRecoversDelay(t *testing.T) {
	base := burstSignal(42, 4*testRate, testRate)

	for _, d := range []int{0, 160, 1234, 4000, 9001} {
		b := delayed(base, d)

		res, err := ShiftAlign(base, b, ModeCropBoth, testHop, testWindow, WithMinOverlap(100))
		require.NoError(t, err, "delay %d", d)
		assert.InDelta(t, d, int(res.Shift), testHop, "delay %d", d)
		assert.Equal(t, testHop, res.Hop)
		assert.Equal(t, res.A.Len(), res.B.Len())

		// B trails, so it loses its head.
		res, err = ShiftAlign(b, base, ModeCropBoth, testHop, testWindow, WithMinOverlap(100))
		require.NoError(t, err, "delay %d", d)
		assert.InDelta(t, -d, int(res.Shift), testHop, "reversed delay %d", d)
	}
}

func TestShiftAlignSignSymmetry(t *testing.T) {
	a := burstSignal(7, 3*testRate, testRate)
	b := delayed(burstSignal(7, 3*testRate, testRate), 2345)

	for _, mode := range Modes() {
		ab, err := ShiftAlign(a, b, mode, testHop, testWindow, WithMinOverlap(100))
		require.NoError(t, err)
		ba, err := ShiftAlign(b, a, mode, testHop, testWindow, WithMinOverlap(100))
		require.NoError(t, err)

		assert.Equal(t, ab.Shift, -ba.Shift, "mode %s", mode)
		if mode == ModeMatchReference {
			// The reference role does not swap.
			continue
		}
		assert.Equal(t, ab.A.Samples, ba.B.Samples, "mode %s", mode)
		assert.Equal(t, ab.B.Samples, ba.A.Samples, "mode %s", mode)
	}
}

func TestShiftAlignToneWithLeadingSilence(t *testing.T) {
	const (
		rate   = 16000
		hop    = 160 // 10 ms
		window = 400 // 25 ms
		delay  = 8000
	)
	a := tone(440, rate, 10*rate)
	b := delayed(a, delay)

	lag, err := Estimate(a, b, hop, window, WithMinOverlap(100))
	require.NoError(t, err)
	shift, err := ResolveShift(lag, hop)
	require.NoError(t, err)
	assert.InDelta(t, delay, int(shift), hop)

	cropped, err := ShiftAlign(a, b, ModeCropBoth, hop, window, WithMinOverlap(100))
	require.NoError(t, err)
	assert.InDelta(t, 9.5*rate, cropped.Len(), hop)
	assert.Equal(t, cropped.A.Len(), cropped.B.Len())
	assert.Equal(t, cropped.A.Samples, cropped.B.Samples)

	padded, err := ShiftAlign(a, b, ModePadBoth, hop, window, WithMinOverlap(100))
	require.NoError(t, err)
	assert.InDelta(t, 10.5*rate, padded.Len(), hop)
	assert.Equal(t, padded.A.Len(), padded.B.Len())

	s := int(padded.Shift)
	for i := 0; i < s; i++ {
		require.Zero(t, padded.A.Samples[i], "A leading pad at %d", i)
		require.Zero(t, padded.B.Samples[i], "B leading silence at %d", i)
	}
	for i := padded.Len() - s; i < padded.Len(); i++ {
		require.Zero(t, padded.B.Samples[i], "B trailing pad at %d", i)
	}
}

func TestShiftAlignPropagatesErrors(t *testing.T) {
	a := burstSignal(1, testRate, testRate)

	t.Run("sample rate mismatch", func(t *testing.T) {
		b := burstSignal(1, testRate, 44100)
		_, err := ShiftAlign(a, b, ModePadBoth, testHop, testWindow)
		require.ErrorIs(t, err, ErrSampleRateMismatch)

		var mismatch *SampleRateMismatchError
		require.True(t, errors.As(err, &mismatch))
		assert.Equal(t, testRate, mismatch.RateA)
		assert.Equal(t, 44100, mismatch.RateB)
	})

	t.Run("bad hop", func(t *testing.T) {
		_, err := ShiftAlign(a, a, ModePadBoth, 0, testWindow)
		var inv *InvalidInputError
		require.True(t, errors.As(err, &inv))
		assert.Equal(t, "hop", inv.Param)
	})

	t.Run("bad mode", func(t *testing.T) {
		_, err := ShiftAlign(a, a, AlignMode(-1), testHop, testWindow)
		var inv *InvalidInputError
		require.True(t, errors.As(err, &inv))
		assert.Equal(t, "mode", inv.Param)
	})

	t.Run("signal shorter than window", func(t *testing.T) {
		short := sig(testRate, 0.1, 0.2, 0.3)
		_, err := ShiftAlign(short, a, ModePadBoth, testHop, testWindow)
		var inv *InvalidInputError
		require.True(t, errors.As(err, &inv))
		assert.Equal(t, "envelope_a", inv.Param)
	})

	t.Run("empty signal", func(t *testing.T) {
		_, err := ShiftAlign(a, Signal{SampleRate: testRate}, ModePadBoth, testHop, testWindow)
		var inv *InvalidInputError
		require.True(t, errors.As(err, &inv))
		assert.Equal(t, "signal_b.samples", inv.Param)
	})
}

func TestShiftAlignIdenticalInputs(t *testing.T) {
	a := burstSignal(9, 2*testRate, testRate)

	for _, mode := range Modes() {
		res, err := ShiftAlign(a, a, mode, testHop, testWindow, WithMinOverlap(100))
		require.NoError(t, err)
		assert.Equal(t, SampleShift(0), res.Shift)
		assert.Equal(t, a.Samples, res.A.Samples)
		assert.Equal(t, a.Samples, res.B.Samples)
	}
}

func TestNewSignal(t *testing.T) {
	samples := []float64{0.1, 0.2}
	s, err := NewSignal(samples, 8000)
	require.NoError(t, err)
	samples[0] = 9
	assert.Equal(t, 0.1, s.Samples[0])
	assert.Equal(t, "250µs", s.Duration().String())

	_, err = NewSignal(nil, 8000)
	assert.ErrorIs(t, err, ErrInvalidInput)
	_, err = NewSignal([]float64{1}, -1)
	assert.ErrorIs(t, err, ErrInvalidInput)
}
