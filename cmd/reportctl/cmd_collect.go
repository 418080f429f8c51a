package main

import (
	"encoding/json"
	"fmt"

	"github.com/spf13/cobra"

	"github.com/ignatzorin/lenstube-reports/internal/models"
)

var collectPublication string

// collectCmd prints collect module settings of a publication
var collectCmd = &cobra.Command{
	Use:   "collect",
	Short: "Show collect module settings of a publication",
	Args:  cobra.NoArgs,
	RunE:  showCollectModule,
}

func init() {
	collectCmd.Flags().StringVar(&collectPublication, "publication", "", "Publication id (required)")
	_ = collectCmd.MarkFlagRequired("publication")
}

func showCollectModule(cmd *cobra.Command, args []string) error {
	module, err := newLensClient().CollectModule(cmd.Context(), collectPublication)
	if err != nil {
		return fmt.Errorf("collect: %w", err)
	}

	body, err := json.MarshalIndent(models.CollectModuleSettings{Module: module}, "", "  ")
	if err != nil {
		return fmt.Errorf("collect: %w", err)
	}
	fmt.Fprintf(cmd.OutOrStdout(), "%s\n", body)
	return nil
}
