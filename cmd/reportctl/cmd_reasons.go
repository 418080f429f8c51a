package main

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/ignatzorin/lenstube-reports/internal/models"
)

// reasonsCmd prints the report taxonomy
var reasonsCmd = &cobra.Command{
	Use:   "reasons",
	Short: "List report reasons",
	Args:  cobra.NoArgs,
	RunE:  listReasons,
}

func listReasons(cmd *cobra.Command, args []string) error {
	out := cmd.OutOrStdout()
	for _, group := range models.ReasonGroups() {
		fmt.Fprintf(out, "%s\n", group.Category)
		for _, opt := range group.Options {
			marker := " "
			if opt.ID == models.DefaultReasonID {
				marker = "*"
			}
			fmt.Fprintf(out, " %s %-28s %s\n", marker, opt.ID, opt.Label)
		}
	}
	return nil
}
