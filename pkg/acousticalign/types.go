package acousticalign

import (
	"errors"
	"time"

	"github.com/himanishpuri/AcousticAlign/pkg/acousticalign/align"
)

var (
	// ErrHistoryDisabled is returned by history operations on a service
	// created without storage.
	ErrHistoryDisabled = errors.New("alignment history is disabled")
	// ErrNotFound is returned when no stored alignment has the requested ID.
	ErrNotFound = errors.New("alignment not found")
)

// AlignRequest names the two inputs and where to write their aligned versions.
// Inputs may be local files in any format ffmpeg reads, or http(s) URLs.
// Empty outputs default to "<input>_aligned.wav".
type AlignRequest struct {
	InputA  string
	InputB  string
	OutputA string
	OutputB string
}

// ShiftResult describes the estimated offset of B relative to A.
// A positive shift means B's content occurs later than A's.
type ShiftResult struct {
	ShiftSamples int     `json:"shift_samples"`
	ShiftMs      float64 `json:"shift_ms"`
	LagFrames    int     `json:"lag_frames"`
	Score        float64 `json:"score"`
	Overlap      int     `json:"overlap_frames"`
	SampleRate   int     `json:"sample_rate"`
	Hop          int     `json:"hop"`
	Window       int     `json:"window"`
}

type AlignResult struct {
	ShiftResult
	ID           string          `json:"id,omitempty"`
	Mode         align.AlignMode `json:"mode"`
	OutputLength int             `json:"output_length"`
	OutputA      string          `json:"output_a,omitempty"`
	OutputB      string          `json:"output_b,omitempty"`

	Aligned align.AlignedPair `json:"-"`
}

// Alignment is a recorded alignment run.
type Alignment struct {
	ID           string    `json:"id"`
	InputA       string    `json:"input_a"`
	InputB       string    `json:"input_b"`
	OutputA      string    `json:"output_a"`
	OutputB      string    `json:"output_b"`
	Mode         string    `json:"mode"`
	Method       string    `json:"method"`
	SampleRate   int       `json:"sample_rate"`
	Hop          int       `json:"hop"`
	Window       int       `json:"window"`
	ShiftSamples int       `json:"shift_samples"`
	LagFrames    int       `json:"lag_frames"`
	Score        float64   `json:"score"`
	Overlap      int       `json:"overlap_frames"`
	OutputLength int       `json:"output_length"`
	CreatedAt    time.Time `json:"created_at"`
}

// ShiftMs is the recorded shift in milliseconds.
func (a Alignment) ShiftMs() float64 {
	return shiftMs(a.ShiftSamples, a.SampleRate)
}

func shiftMs(samples, rate int) float64 {
	if rate <= 0 {
		return 0
	}
	return float64(samples) * 1000 / float64(rate)
}
