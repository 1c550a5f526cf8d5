package main

import (
	"fmt"

	"github.com/spf13/cobra"
	"github.com/spf13/viper"

	"github.com/inodb/vibe-cardio/internal/genes"
)

func newGenesCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "genes",
		Short: "Print the gene list used for filtering",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			path, _ := cmd.Flags().GetString("genes")
			if path == "" {
				path = viper.GetString(keyGenes)
			}

			gs := genes.Default()
			if path != "" {
				var err error
				gs, err = genes.Load(path)
				if err != nil {
					return err
				}
			}

			out := cmd.OutOrStdout()
			for _, sym := range gs.Symbols() {
				fmt.Fprintln(out, sym)
			}
			return nil
		},
	}
	cmd.Flags().String("genes", "", "Gene list file (default: configured or bundled list)")
	return cmd
}
