package main

import (
	"errors"
	"fmt"
	"io"

	"github.com/spf13/cobra"

	"github.com/ignatzorin/lenstube-reports/internal/analytics"
	"github.com/ignatzorin/lenstube-reports/internal/models"
	"github.com/ignatzorin/lenstube-reports/internal/report"
)

var (
	reportPublication string
	reportReason      string
)

// reportCmd submits a report for one publication
var reportCmd = &cobra.Command{
	Use:   "report",
	Short: "Report a publication",
	Long: `Submits a report for a publication through the Lens API.

Without --reason the default reason is used.

Example:
  reportctl report --publication 0x01-0x02 --reason SPAM-FAKE_ENGAGEMENT`,
	Args: cobra.NoArgs,
	RunE: runReport,
}

func init() {
	reportCmd.Flags().StringVar(&reportPublication, "publication", "", "Publication id (required)")
	reportCmd.Flags().StringVar(&reportReason, "reason", models.DefaultReasonID, "Reason id <CATEGORY>-<SUBREASON>")
	_ = reportCmd.MarkFlagRequired("publication")
}

// consoleNotifier печатает уведомления формы в терминал.
type consoleNotifier struct {
	out io.Writer
}

func (n consoleNotifier) Success(message string) { fmt.Fprintf(n.out, "✓ %s\n", message) }
func (n consoleNotifier) Error(message string)   { fmt.Fprintf(n.out, "✗ %s\n", message) }

func runReport(cmd *cobra.Command, args []string) error {
	out := cmd.OutOrStdout()

	dialog := report.NewDialog(reportPublication, report.Dependencies{
		Reporter: newLensClient(),
		Notifier: consoleNotifier{out: out},
		Tracker:  analytics.LogTracker{},
	})
	defer dialog.Close()

	if err := dialog.Select(reportReason); err != nil {
		return fmt.Errorf("report: %w (run `reportctl reasons`)", err)
	}

	fmt.Fprintf(out, "Reporting %s as %s...\n", reportPublication, dialog.Selected())
	if err := <-dialog.SubmitAsync(cmd.Context()); err != nil {
		// Ошибка уже показана уведомлением.
		return errors.New("report failed")
	}
	return nil
}
