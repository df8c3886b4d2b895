package commands

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"
)

var (
	apiURL  string
	verbose bool
	jsonOut bool
)

// rootCmd represents the base command
var rootCmd = &cobra.Command{
	Use:   "daily-claim",
	Short: "Daily incentive token claim CLI",
	Long: `A CLI tool for the daily incentive claim service.

Examples:
  daily-claim claim                   # Claim today's tokens
  daily-claim status 0xYOUR_ADDRESS   # Check cooldown status for an address
  daily-claim watch                   # Live countdown to the next claim
  daily-claim info                    # View claim service information
  daily-claim reset                   # Recover from a stuck wallet prompt

One claim per 24-hour window; the reward amount is decided at claim time.`,
	Version: "1.0.0",
}

// Execute runs the root command
func Execute() {
	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}

func init() {
	// Global flags
	rootCmd.PersistentFlags().StringVar(&apiURL, "api-url", "http://localhost:3000", "Claim service API URL")
	rootCmd.PersistentFlags().BoolVarP(&verbose, "verbose", "v", false, "Verbose output")
	rootCmd.PersistentFlags().BoolVar(&jsonOut, "json", false, "Output in JSON format")

	// Add subcommands
	rootCmd.AddCommand(claimCmd)
	rootCmd.AddCommand(statusCmd)
	rootCmd.AddCommand(infoCmd)
	rootCmd.AddCommand(watchCmd)
	rootCmd.AddCommand(resetCmd)
}
