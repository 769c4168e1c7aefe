package cli

import (
	"github.com/spf13/cobra"
)

// NewShiftCommand creates the shift command.
func NewShiftCommand(rootOpts *RootOptions) *cobra.Command {
	var tuning tuningFlags

	cmd := &cobra.Command{
		Use:   "shift <input-a> <input-b>",
		Short: "Estimate the offset between two recordings without writing anything",
		Long: `Estimate how far input B's content is displaced from input A's.

A positive shift means the shared content occurs later in B than in A.`,
		Args: cobra.ExactArgs(2),
		RunE: func(cmd *cobra.Command, args []string) error {
			return runShift(cmd, rootOpts, &tuning, args[0], args[1])
		},
	}

	addTuningFlags(cmd, &tuning)
	return cmd
}

func runShift(cmd *cobra.Command, rootOpts *RootOptions, tuning *tuningFlags, inputA, inputB string) error {
	f := newFormatter(rootOpts, cmd)

	settings, err := resolveSettings(cmd, rootOpts, tuning)
	if err != nil {
		return f.Fail("loading configuration", err)
	}
	settings.History = false

	svc, err := newService(settings)
	if err != nil {
		return f.Fail("initializing service", err)
	}
	defer svc.Close()

	res, err := svc.EstimateShift(cmd.Context(), inputA, inputB)
	if err != nil {
		return f.Fail("shift estimation failed", err)
	}

	return f.Success(shiftView{res})
}
