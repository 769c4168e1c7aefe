package cli

import (
	"github.com/spf13/cobra"

	"github.com/himanishpuri/AcousticAlign/pkg/acousticalign/audio"
)

// NewInfoCommand creates the info command.
func NewInfoCommand(rootOpts *RootOptions) *cobra.Command {
	return &cobra.Command{
		Use:   "info <file>",
		Short: "Show format, rate and duration of an audio file (requires ffprobe)",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			f := newFormatter(rootOpts, cmd)
			md, err := audio.ReadMetadataFFmpeg(cmd.Context(), args[0])
			if err != nil {
				return f.Fail("reading metadata", err)
			}
			return f.Success(metadataView{md})
		},
	}
}
