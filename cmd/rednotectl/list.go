package main

import (
	"encoding/json"
	"fmt"
	"text/tabwriter"

	"github.com/spf13/cobra"

	"rednote-ops/internal/notes"
)

func newListCmd(a *app) *cobra.Command {
	var (
		asJSON    bool
		filterTag string
		search    string
	)

	cmd := &cobra.Command{
		Use:   "list",
		Short: "List saved notes, newest first",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			var filtered []notes.SavedNote
			for _, n := range a.library.Search(cmd.Context(), search) {
				if filterTag != "" && !hasTag(n, filterTag) {
					continue
				}
				filtered = append(filtered, n)
			}

			out := cmd.OutOrStdout()
			if asJSON {
				for i := range filtered {
					filtered[i].CoverImageBase64 = ""
				}
				encoder := json.NewEncoder(out)
				encoder.SetIndent("", "  ")
				return encoder.Encode(filtered)
			}

			tw := tabwriter.NewWriter(out, 0, 4, 2, ' ', 0)
			for _, n := range filtered {
				cover := ""
				if n.HasCover() {
					cover = "cover"
				}
				fmt.Fprintf(tw, "%s\t%s\t%s\t%s\n", n.ID, n.Created().Format("2006-01-02 15:04"), n.Title, cover)
			}
			return tw.Flush()
		},
	}

	cmd.Flags().BoolVar(&asJSON, "json", false, "Output in JSON format (covers omitted)")
	cmd.Flags().StringVar(&filterTag, "tag", "", "Only list notes carrying this tag")
	cmd.Flags().StringVarP(&search, "search", "s", "", "Only list notes whose title or tags contain this text (case-insensitive)")
	return cmd
}

func hasTag(n notes.SavedNote, tag string) bool {
	for _, t := range n.Tags {
		if t == tag {
			return true
		}
	}
	return false
}
