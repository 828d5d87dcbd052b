package cli

import (
	"errors"

	"github.com/spf13/cobra"
)

func newRunCommand(opts Options, flags *rootFlags) *cobra.Command {
	var (
		all    bool
		source string
	)
	cmd := &cobra.Command{
		Use:   "run [job...]",
		Short: "Runs the named jobs in order, or every job with --all.",
		RunE: func(cmd *cobra.Command, args []string) error {
			if len(args) == 0 && !all && source == "" {
				return errors.New("name at least one job, or pass --all or --source")
			}
			if len(args) > 0 && all {
				return errors.New("--all cannot be combined with job names")
			}
			a, err := buildApp(opts, flags, nil)
			if err != nil {
				return err
			}
			return a.Run(cmd.Context(), args, source)
		},
	}
	cmd.Flags().BoolVar(&all, "all", false, "run every configured job")
	cmd.Flags().StringVar(&source, "source", "", "limit to one upstream: football-data, fbref or sofifa")
	return cmd
}
