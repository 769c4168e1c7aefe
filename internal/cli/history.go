package cli

import (
	"github.com/spf13/cobra"

	"github.com/himanishpuri/AcousticAlign/pkg/acousticalign"
)

// NewHistoryCommand creates the history command group.
func NewHistoryCommand(rootOpts *RootOptions) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "history",
		Short: "Inspect recorded alignments",
	}

	var limit int
	list := &cobra.Command{
		Use:   "list",
		Short: "List recent alignments, newest first",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			return withHistory(cmd, rootOpts, func(f *OutputFormatter, svc acousticalign.Service) error {
				recs, err := svc.ListAlignments(limit)
				if err != nil {
					return f.Fail("listing alignments", err)
				}
				total, err := svc.CountAlignments()
				if err != nil {
					return f.Fail("counting alignments", err)
				}
				return f.Success(historyView{Total: total, Alignments: recs})
			})
		},
	}
	list.Flags().IntVarP(&limit, "limit", "n", 20, "maximum number of entries (0 = all)")

	show := &cobra.Command{
		Use:   "show <id>",
		Short: "Show one recorded alignment",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return withHistory(cmd, rootOpts, func(f *OutputFormatter, svc acousticalign.Service) error {
				rec, err := svc.GetAlignment(args[0])
				if err != nil {
					return f.Fail("loading alignment", err)
				}
				return f.Success(alignmentView{rec})
			})
		},
	}

	del := &cobra.Command{
		Use:   "delete <id>",
		Short: "Delete a recorded alignment",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return withHistory(cmd, rootOpts, func(f *OutputFormatter, svc acousticalign.Service) error {
				if err := svc.DeleteAlignment(args[0]); err != nil {
					return f.Fail("deleting alignment", err)
				}
				return f.Success(deletedView{ID: args[0]})
			})
		},
	}

	cmd.AddCommand(list, show, del)
	return cmd
}

func withHistory(cmd *cobra.Command, rootOpts *RootOptions, fn func(*OutputFormatter, acousticalign.Service) error) error {
	f := newFormatter(rootOpts, cmd)

	settings, err := resolveSettings(cmd, rootOpts, nil)
	if err != nil {
		return f.Fail("loading configuration", err)
	}
	settings.History = true

	svc, err := newService(settings)
	if err != nil {
		return f.Fail("opening history", err)
	}
	defer svc.Close()

	return fn(f, svc)
}
