package cli

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/himanishpuri/AcousticAlign/pkg/acousticalign"
	"github.com/himanishpuri/AcousticAlign/pkg/acousticalign/align"
	"github.com/himanishpuri/AcousticAlign/pkg/logger"
)

// NewAlignCommand creates the align command.
func NewAlignCommand(rootOpts *RootOptions) *cobra.Command {
	var (
		tuning  tuningFlags
		inputs  []string
		outputs []string
		history bool
	)

	cmd := &cobra.Command{
		Use:   "align <input-a> <input-b>",
		Short: "Align two recordings and write the aligned pair",
		Long: `Estimate the offset of input B relative to input A and write both
recordings back out on a common timeline as mono 16-bit WAV.

Inputs may be WAV files, any format ffmpeg can read, or http(s) URLs
(downloaded with yt-dlp). Inputs can be given as arguments or with -i.

Length handling (--align-how):
  pad_both          pad leading and trailing silence so nothing is lost
  crop_both         keep only the span both recordings cover
  crop_pad_leading  crop the leading offset, pad the shorter tail
  match_reference   leave A untouched and fit B onto A's timeline`,
		Args: func(cmd *cobra.Command, args []string) error {
			if n := len(inputs) + len(args); n != 2 {
				return fmt.Errorf("align needs exactly two inputs, got %d", n)
			}
			return nil
		},
		RunE: func(cmd *cobra.Command, args []string) error {
			all := append(append([]string{}, inputs...), args...)
			return runAlign(cmd, rootOpts, &tuning, all, outputs, history)
		},
	}

	cmd.Flags().StringSliceVarP(&inputs, "input", "i", nil, "input A and B (alternative to arguments)")
	cmd.Flags().StringSliceVarP(&outputs, "output", "o", nil, "output paths for aligned A and B (default <input>_aligned.wav)")
	cmd.Flags().StringVar(&tuning.alignHow, "align-how", align.ModePadBoth.String(),
		"length handling (pad_both|crop_both|crop_pad_leading|match_reference)")
	cmd.Flags().BoolVar(&history, "history", false, "record this run in the history database")
	addTuningFlags(cmd, &tuning)

	return cmd
}

func runAlign(cmd *cobra.Command, rootOpts *RootOptions, tuning *tuningFlags, inputs, outputs []string, history bool) error {
	f := newFormatter(rootOpts, cmd)

	settings, err := resolveSettings(cmd, rootOpts, tuning)
	if err != nil {
		return f.Fail("loading configuration", err)
	}
	if cmd.Flags().Changed("history") {
		settings.History = history
	}

	req := acousticalign.AlignRequest{InputA: inputs[0], InputB: inputs[1]}
	switch len(outputs) {
	case 0:
	case 2:
		req.OutputA, req.OutputB = outputs[0], outputs[1]
	default:
		return f.Fail("parsing flags", &align.InvalidInputError{
			Param:  "output",
			Value:  outputs,
			Reason: "give either no outputs or exactly two",
		})
	}

	svc, err := newService(settings)
	if err != nil {
		return f.Fail("initializing service", err)
	}
	defer svc.Close()

	f.VerboseLog("Settings: mode=%s method=%s hop=%gms window=%gms rate=%d",
		settings.AlignHow, settings.Method, settings.HopMs, settings.WindowMs, settings.SampleRate)

	res, err := svc.AlignFiles(cmd.Context(), req)
	if err != nil {
		return f.Fail("alignment failed", err)
	}

	return f.Success(alignView{res})
}

func newService(s Settings) (acousticalign.Service, error) {
	opts, err := s.Options()
	if err != nil {
		return nil, err
	}
	opts = append(opts, acousticalign.WithLogger(logger.GetLogger()))
	return acousticalign.NewService(opts...)
}
