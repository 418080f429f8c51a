package main

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/ignatzorin/lenstube-reports/internal/lens"
	"github.com/ignatzorin/lenstube-reports/internal/logger"
)

const defaultAPIURL = "https://api-mumbai.lens.dev"

var (
	// Global flags
	apiURL    string
	lensToken string
	verbose   bool
)

var rootCmd = &cobra.Command{
	Use:   "reportctl",
	Short: "Report Lens publications from the terminal",
	Long: `reportctl talks to the Lens API directly.

It lists the report taxonomy, submits a report for a publication
and shows the collect module settings of a publication.`,
	SilenceUsage: true,
	PersistentPreRun: func(cmd *cobra.Command, args []string) {
		level := "warn"
		if verbose {
			level = "debug"
		}
		logger.Init(level)
		logger.SetTextFormatter()
		logger.Log.SetOutput(cmd.ErrOrStderr())
	},
}

func init() {
	rootCmd.PersistentFlags().StringVar(&apiURL, "api", "", "Lens API URL (or set LENS_API_URL env)")
	rootCmd.PersistentFlags().StringVar(&lensToken, "token", "", "Lens access token (or set LENS_ACCESS_TOKEN env)")
	rootCmd.PersistentFlags().BoolVarP(&verbose, "verbose", "v", false, "Enable verbose logging")

	rootCmd.AddCommand(reasonsCmd)
	rootCmd.AddCommand(reportCmd)
	rootCmd.AddCommand(collectCmd)
}

func main() {
	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}

// newLensClient собирает клиента из флагов и окружения.
func newLensClient() *lens.Client {
	endpoint := apiURL
	if endpoint == "" {
		endpoint = os.Getenv("LENS_API_URL")
	}
	if endpoint == "" {
		endpoint = defaultAPIURL
	}

	token := lensToken
	if token == "" {
		token = os.Getenv("LENS_ACCESS_TOKEN")
	}

	client := lens.NewClient(endpoint)
	if token != "" {
		client = client.WithAccessToken(token)
	}
	return client
}
