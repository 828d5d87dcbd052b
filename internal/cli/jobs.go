package cli

import (
	"strings"

	"github.com/jedib0t/go-pretty/v6/table"
	"github.com/spf13/cobra"

	"footstats-collector/internal/config"
)

func newJobsCommand(opts Options, flags *rootFlags) *cobra.Command {
	return &cobra.Command{
		Use:   "jobs",
		Short: "Prints the configured jobs.",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			a, err := buildApp(opts, flags, func(cfg *config.Config) {
				cfg.Metrics.Enabled = false
			})
			if err != nil {
				return err
			}

			t := table.NewWriter()
			t.SetOutputMirror(cmd.OutOrStdout())
			t.AppendHeader(table.Row{"Job", "Source", "Kind", "Entities", "Seasons", "Variants", "Description"})
			for _, j := range a.Jobs() {
				t.AppendRow(table.Row{
					j.Name,
					j.Upstream,
					j.Kind,
					strings.Join(j.Entities, ", "),
					j.Seasons.String(),
					len(j.Variants),
					j.Description,
				})
			}
			t.SetStyle(table.StyleRounded)
			t.Render()
			return nil
		},
	}
}
