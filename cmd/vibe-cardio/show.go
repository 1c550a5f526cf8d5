package main

import (
	"github.com/spf13/cobra"

	"github.com/inodb/vibe-cardio/internal/output"
	"github.com/inodb/vibe-cardio/internal/sink"
)

func newShowCmd() *cobra.Command {
	return &cobra.Command{
		Use:     "show <result-store>",
		Short:   "Print the rows of a result store as tab-separated text",
		Example: `  vibe-cardio show results/sample1_longevity.sqlite`,
		Args:    exactArgs(1, "result store argument required"),
		RunE: func(cmd *cobra.Command, args []string) error {
			rows, err := sink.ReadRows(args[0])
			if err != nil {
				return err
			}

			w := output.NewTabWriter(cmd.OutOrStdout())
			if err := w.WriteHeader(); err != nil {
				return err
			}
			for i := range rows {
				if err := w.Write(&rows[i]); err != nil {
					return err
				}
			}
			return w.Flush()
		},
	}
}
