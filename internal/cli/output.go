package cli

import (
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"os"

	"github.com/himanishpuri/AcousticAlign/pkg/acousticalign"
	"github.com/himanishpuri/AcousticAlign/pkg/acousticalign/align"
)

// Exit codes for CLI commands.
const (
	ExitSuccess      = 0 // Successful execution
	ExitFailure      = 1 // Alignment failure (no overlap, sample rate mismatch)
	ExitCommandError = 2 // Command error (bad flags, missing files, unreadable audio)
)

// Error codes reported in CLI output.
const (
	ErrCodeGeneric         = "E000"
	ErrCodeInvalidInput    = "E001"
	ErrCodeRateMismatch    = "E002"
	ErrCodeNoOverlap       = "E003"
	ErrCodeNotFound        = "E004"
	ErrCodeHistoryDisabled = "E005"
)

// ExitError represents an error with a specific exit code.
type ExitError struct {
	Code    int    // Exit code (use ExitFailure or ExitCommandError)
	Message string // Error message
	Err     error  // Underlying error (optional)
}

func (e *ExitError) Error() string {
	if e.Err != nil {
		return fmt.Sprintf("%s: %v", e.Message, e.Err)
	}
	return e.Message
}

func (e *ExitError) Unwrap() error {
	return e.Err
}

// WrapExitError wraps an existing error with an exit code.
func WrapExitError(code int, message string, err error) *ExitError {
	return &ExitError{Code: code, Message: message, Err: err}
}

// GetExitCode extracts the exit code from an error.
// Returns ExitFailure (1) if the error is not an ExitError.
func GetExitCode(err error) int {
	var exitErr *ExitError
	if errors.As(err, &exitErr) {
		return exitErr.Code
	}
	return ExitFailure
}

// classify maps an error to its output code and exit code.
func classify(err error) (string, int) {
	switch {
	case errors.Is(err, align.ErrNoOverlap):
		return ErrCodeNoOverlap, ExitFailure
	case errors.Is(err, align.ErrSampleRateMismatch):
		return ErrCodeRateMismatch, ExitFailure
	case errors.Is(err, align.ErrInvalidInput):
		return ErrCodeInvalidInput, ExitCommandError
	case errors.Is(err, acousticalign.ErrNotFound), errors.Is(err, os.ErrNotExist):
		return ErrCodeNotFound, ExitCommandError
	case errors.Is(err, acousticalign.ErrHistoryDisabled):
		return ErrCodeHistoryDisabled, ExitCommandError
	default:
		return ErrCodeGeneric, ExitCommandError
	}
}

// errorDetails exposes the structured fields of core errors in JSON output.
func errorDetails(err error) any {
	var inv *align.InvalidInputError
	var mismatch *align.SampleRateMismatchError
	var noOverlap *align.NoOverlapError
	switch {
	case errors.As(err, &inv):
		return map[string]any{"param": inv.Param, "value": inv.Value, "reason": inv.Reason}
	case errors.As(err, &mismatch):
		return map[string]any{"rate_a": mismatch.RateA, "rate_b": mismatch.RateB}
	case errors.As(err, &noOverlap):
		return map[string]any{
			"mode":  noOverlap.Mode.String(),
			"shift": int(noOverlap.Shift),
			"len_a": noOverlap.LenA,
			"len_b": noOverlap.LenB,
		}
	}
	return nil
}

// OutputFormatter handles JSON vs text output for CLI commands.
type OutputFormatter struct {
	Format    string
	Writer    io.Writer
	ErrWriter io.Writer // Separate writer for verbose/diagnostic output (defaults to Writer)
	Verbose   bool
}

// CLIResponse is the standard JSON response format for CLI output.
type CLIResponse struct {
	Status string    `json:"status"`          // "ok" or "error"
	Data   any       `json:"data,omitempty"`  // success payload
	Error  *CLIError `json:"error,omitempty"` // error details
}

// CLIError is the error structure for CLI responses.
type CLIError struct {
	Code    string `json:"code"`
	Message string `json:"message"`
	Details any    `json:"details,omitempty"`
}

// Success outputs a successful result in the configured format. Text output
// relies on data implementing fmt.Stringer.
func (f *OutputFormatter) Success(data any) error {
	if f.Format == "json" {
		return json.NewEncoder(f.Writer).Encode(CLIResponse{
			Status: "ok",
			Data:   data,
		})
	}

	fmt.Fprintln(f.Writer, data)
	return nil
}

// Error outputs an error in the configured format.
func (f *OutputFormatter) Error(code, message string, details any) error {
	if f.Format == "json" {
		return json.NewEncoder(f.Writer).Encode(CLIResponse{
			Status: "error",
			Error: &CLIError{
				Code:    code,
				Message: message,
				Details: details,
			},
		})
	}

	w := f.ErrWriter
	if w == nil {
		w = f.Writer
	}
	fmt.Fprintf(w, "Error [%s]: %s\n", code, message)
	if f.Verbose && details != nil {
		fmt.Fprintf(w, "Details: %v\n", details)
	}
	return nil
}

// Fail reports err and returns the matching ExitError.
func (f *OutputFormatter) Fail(message string, err error) error {
	code, exit := classify(err)
	if outErr := f.Error(code, fmt.Sprintf("%s: %v", message, err), errorDetails(err)); outErr != nil {
		return outErr
	}
	return WrapExitError(exit, message, err)
}

// VerboseLog outputs a message only if verbose mode is enabled.
func (f *OutputFormatter) VerboseLog(format string, args ...any) {
	if !f.Verbose {
		return
	}
	w := f.ErrWriter
	if w == nil {
		w = f.Writer
	}
	fmt.Fprintf(w, format+"\n", args...)
}
