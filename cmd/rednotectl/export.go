package main

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"rednote-ops/internal/export"
)

func newExportCmd(a *app) *cobra.Command {
	var ids []string

	cmd := &cobra.Command{
		Use:   "export [file]",
		Short: "Export saved notes as a ZIP archive",
		Long: `Export writes the selected notes (all of them unless --id is given) to a ZIP
archive. The file defaults to RedNote_Batch_<date>.zip in the current directory.`,
		Args: cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx := cmd.Context()
			now := a.now()

			selected := ids
			if len(selected) == 0 {
				for _, n := range a.library.List(ctx) {
					selected = append(selected, n.ID)
				}
				if len(selected) == 0 {
					return fmt.Errorf("the library is empty, nothing to export")
				}
			}

			path := export.FolderName(now) + ".zip"
			if len(args) == 1 {
				path = args[0]
			}

			f, err := os.Create(path)
			if err != nil {
				return fmt.Errorf("error creating archive: %w", err)
			}

			n, err := a.library.Export(ctx, selected, f, now)
			if closeErr := f.Close(); err == nil {
				err = closeErr
			}
			if err != nil {
				_ = os.Remove(path)
				return fmt.Errorf("error exporting notes: %w", err)
			}

			fmt.Fprintf(cmd.OutOrStdout(), "Exported %d note(s) to %s\n", n, path)
			return nil
		},
	}

	cmd.Flags().StringSliceVar(&ids, "id", nil, "Note id to export (repeatable)")
	return cmd
}
