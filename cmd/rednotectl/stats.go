package main

import (
	"fmt"

	"github.com/spf13/cobra"
)

func newStatsCmd(a *app) *cobra.Command {
	return &cobra.Command{
		Use:   "stats",
		Short: "Show library counters",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			stats := a.library.Stats(cmd.Context(), a.now())
			out := cmd.OutOrStdout()
			fmt.Fprintf(out, "total:         %d\n", stats.Total)
			fmt.Fprintf(out, "created today: %d\n", stats.CreatedToday)
			fmt.Fprintf(out, "with cover:    %d\n", stats.WithCover)
			return nil
		},
	}
}
