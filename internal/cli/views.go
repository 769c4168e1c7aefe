package cli

import (
	"fmt"
	"strings"
	"text/tabwriter"

	"github.com/himanishpuri/AcousticAlign/pkg/acousticalign"
	"github.com/himanishpuri/AcousticAlign/pkg/acousticalign/audio"
)

// The view types carry command results. JSON output encodes the embedded
// value directly; text output uses String.

type alignView struct{ *acousticalign.AlignResult }

func (v alignView) String() string {
	var b strings.Builder
	fmt.Fprintf(&b, "Shift:   %s\n", describeShift(v.ShiftSamples, v.ShiftMs))
	fmt.Fprintf(&b, "Lag:     %d frames (hop %d, window %d samples), score %.6g over %d frames\n",
		v.LagFrames, v.Hop, v.Window, v.Score, v.Overlap)
	fmt.Fprintf(&b, "Mode:    %s\n", v.Mode)
	fmt.Fprintf(&b, "Output:  %s\n         %s\n", v.OutputA, v.OutputB)
	fmt.Fprintf(&b, "Length:  %d samples @ %d Hz (%.3f s)",
		v.OutputLength, v.SampleRate, float64(v.OutputLength)/float64(max(v.SampleRate, 1)))
	if v.ID != "" {
		fmt.Fprintf(&b, "\nHistory: %s", v.ID)
	}
	return b.String()
}

type shiftView struct{ *acousticalign.ShiftResult }

func (v shiftView) String() string {
	return fmt.Sprintf("Shift:   %s\nLag:     %d frames (hop %d, window %d samples), score %.6g over %d frames",
		describeShift(v.ShiftSamples, v.ShiftMs), v.LagFrames, v.Hop, v.Window, v.Score, v.Overlap)
}

func describeShift(samples int, ms float64) string {
	switch {
	case samples > 0:
		return fmt.Sprintf("%+d samples (%+.1f ms), B's content is later than A's", samples, ms)
	case samples < 0:
		return fmt.Sprintf("%+d samples (%+.1f ms), B's content is earlier than A's", samples, ms)
	default:
		return "0 samples, already aligned"
	}
}

type metadataView struct{ *audio.Metadata }

func (v metadataView) String() string {
	return fmt.Sprintf("File:      %s\nFormat:    %s (%s)\nRate:      %d Hz\nChannels:  %d\nBit depth: %d\nDuration:  %.3f s",
		v.Filename, v.Format, v.Codec, v.SampleRate, v.Channels, v.BitDepth, v.DurationSec)
}

type historyView struct {
	Total      int                       `json:"total"`
	Alignments []acousticalign.Alignment `json:"alignments"`
}

func (v historyView) String() string {
	if len(v.Alignments) == 0 {
		return "No alignments recorded."
	}
	var b strings.Builder
	fmt.Fprintf(&b, "Showing %d of %d alignments\n\n", len(v.Alignments), v.Total)
	tw := tabwriter.NewWriter(&b, 0, 0, 2, ' ', 0)
	fmt.Fprintln(tw, "ID\tCREATED\tMODE\tSHIFT (ms)\tINPUTS")
	for _, rec := range v.Alignments {
		fmt.Fprintf(tw, "%s\t%s\t%s\t%+.1f\t%s, %s\n",
			rec.ID, rec.CreatedAt.Local().Format("2006-01-02 15:04:05"), rec.Mode, rec.ShiftMs(), rec.InputA, rec.InputB)
	}
	tw.Flush()
	return strings.TrimRight(b.String(), "\n")
}

type alignmentView struct{ *acousticalign.Alignment }

func (v alignmentView) String() string {
	return fmt.Sprintf(`ID:       %s
Created:  %s
Inputs:   %s
          %s
Outputs:  %s
          %s
Mode:     %s (method %s)
Shift:    %s
Lag:      %d frames (hop %d, window %d samples), score %.6g over %d frames
Length:   %d samples @ %d Hz`,
		v.ID, v.CreatedAt.Local().Format("2006-01-02 15:04:05"),
		v.InputA, v.InputB, v.OutputA, v.OutputB,
		v.Mode, v.Method,
		describeShift(v.ShiftSamples, v.ShiftMs()),
		v.LagFrames, v.Hop, v.Window, v.Score, v.Overlap,
		v.OutputLength, v.SampleRate)
}

type deletedView struct {
	ID string `json:"deleted"`
}

func (v deletedView) String() string {
	return "Deleted alignment " + v.ID
}
