package cli

import (
	"bytes"
	"errors"
	"fmt"
	"os"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/himanishpuri/AcousticAlign/pkg/acousticalign"
	"github.com/himanishpuri/AcousticAlign/pkg/acousticalign/align"
)

type stringer string

func (s stringer) String() string { return "rendered " + string(s) }

func TestOutputFormatterSuccess(t *testing.T) {
	var buf bytes.Buffer
	f := &OutputFormatter{Format: "text", Writer: &buf}
	require.NoError(t, f.Success(stringer("x")))
	assert.Equal(t, "rendered x\n", buf.String())

	buf.Reset()
	f.Format = "json"
	require.NoError(t, f.Success(map[string]int{"n": 1}))
	assert.JSONEq(t, `{"status":"ok","data":{"n":1}}`, buf.String())
}

func TestOutputFormatterErrorGoesToErrWriter(t *testing.T) {
	var out, errOut bytes.Buffer
	f := &OutputFormatter{Format: "text", Writer: &out, ErrWriter: &errOut, Verbose: true}

	require.NoError(t, f.Error(ErrCodeNoOverlap, "nothing in common", map[string]int{"len_a": 3}))
	assert.Empty(t, out.String())
	assert.Contains(t, errOut.String(), "Error [E003]: nothing in common")
	assert.Contains(t, errOut.String(), "Details:")
}

func TestFailJSON(t *testing.T) {
	var buf bytes.Buffer
	f := &OutputFormatter{Format: "json", Writer: &buf}

	err := f.Fail("alignment failed", &align.NoOverlapError{Mode: align.ModeCropBoth, Shift: 10, LenA: 5, LenB: 3})
	assert.Equal(t, ExitFailure, GetExitCode(err))
	assert.ErrorIs(t, err, align.ErrNoOverlap)

	assert.JSONEq(t, `{
		"status": "error",
		"error": {
			"code": "E003",
			"message": "alignment failed: align: crop_both leaves no overlap: shift=10 samples, len(a)=5, len(b)=3",
			"details": {"mode": "crop_both", "shift": 10, "len_a": 5, "len_b": 3}
		}
	}`, buf.String())
}

func TestClassify(t *testing.T) {
	tests := []struct {
		err  error
		code string
		exit int
	}{
		{&align.NoOverlapError{}, ErrCodeNoOverlap, ExitFailure},
		{fmt.Errorf("wrapped: %w", &align.SampleRateMismatchError{RateA: 1, RateB: 2}), ErrCodeRateMismatch, ExitFailure},
		{&align.InvalidInputError{Param: "hop"}, ErrCodeInvalidInput, ExitCommandError},
		{acousticalign.ErrNotFound, ErrCodeNotFound, ExitCommandError},
		{fmt.Errorf("x: %w", os.ErrNotExist), ErrCodeNotFound, ExitCommandError},
		{acousticalign.ErrHistoryDisabled, ErrCodeHistoryDisabled, ExitCommandError},
		{errors.New("boom"), ErrCodeGeneric, ExitCommandError},
	}

	for _, tt := range tests {
		t.Run(tt.err.Error(), func(t *testing.T) {
			code, exit := classify(tt.err)
			assert.Equal(t, tt.code, code)
			assert.Equal(t, tt.exit, exit)
		})
	}
}

func TestGetExitCode(t *testing.T) {
	assert.Equal(t, ExitCommandError, GetExitCode(WrapExitError(ExitCommandError, "x", nil)))
	assert.Equal(t, ExitFailure, GetExitCode(errors.New("plain")))

	err := WrapExitError(ExitFailure, "align", errors.New("inner"))
	assert.Equal(t, "align: inner", err.Error())
	assert.Equal(t, "x", WrapExitError(2, "x", nil).Error())
}

func TestDescribeShift(t *testing.T) {
	assert.Equal(t, "0 samples, already aligned", describeShift(0, 0))
	assert.Contains(t, describeShift(160, 10), "+160 samples (+10.0 ms)")
	assert.Contains(t, describeShift(-160, -10), "-160 samples (-10.0 ms)")
}
