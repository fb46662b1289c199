package main

import (
	"fmt"

	"github.com/spf13/cobra"
)

func newDeleteCmd(a *app) *cobra.Command {
	return &cobra.Command{
		Use:   "delete <id>...",
		Short: "Delete saved notes by id",
		Args:  cobra.MinimumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			before := len(a.library.List(cmd.Context()))
			remaining, err := a.library.Delete(cmd.Context(), args)
			if err != nil {
				return fmt.Errorf("error deleting notes: %w", err)
			}
			fmt.Fprintf(cmd.OutOrStdout(), "Deleted %d note(s), %d remaining\n", before-len(remaining), len(remaining))
			return nil
		},
	}
}
