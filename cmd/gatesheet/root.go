package main

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"syscall"

	"github.com/spf13/cobra"
)

var (
	version    = "dev"
	configPath string
)

// rootCmd represents the base command when called without any subcommands
var rootCmd = &cobra.Command{
	Use:   "gatesheet [flags] INPUT",
	Short: "Gatesheet - timesheet reports from gate swipe logs",
	Long: `Gatesheet turns a semicolon-separated log of building gate swipes into a
daily timesheet. Each day reports the time worked and flags anomalies
(inconclusive pairing, overtime, undertime, weekend work); the last day of
every week carries the weekly total and its balance against the expected time.`,
	Version: version,
	Args:    cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		// Default to report command when no subcommand is provided
		return runReport(cmd, args)
	},
	SilenceUsage: true,
}

func init() {
	// Global flags
	rootCmd.PersistentFlags().StringVarP(&configPath, "config", "c", "", "Path to configuration file (optional)")
	addReportFlags(rootCmd)
}

// Execute adds all child commands to the root command and sets flags appropriately.
func Execute() {
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	if err := rootCmd.ExecuteContext(ctx); err != nil {
		fmt.Fprintln(os.Stderr, err)
		stop()
		os.Exit(1)
	}
}
