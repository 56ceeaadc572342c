package main

import (
	"os"

	"github.com/joho/godotenv"
	"github.com/spf13/cobra"

	"renewcalc/internal/charts"
)

func main() {
	_ = godotenv.Load()

	if err := newRootCmd().Execute(); err != nil {
		os.Exit(1)
	}
}

func newRootCmd() *cobra.Command {
	rootCmd := &cobra.Command{
		Use:          "renewcalc",
		Short:        "Renewable energy feasibility reports and unit formatting",
		SilenceUsage: true,
	}
	rootCmd.PersistentPreRun = func(*cobra.Command, []string) {
		charts.Init()
	}

	rootCmd.AddCommand(serveCmd())
	rootCmd.AddCommand(scaleCmd())
	rootCmd.AddCommand(currencyCmd())
	rootCmd.AddCommand(chartCmd())
	rootCmd.AddCommand(reportCmd())
	rootCmd.AddCommand(turbinesCmd())
	return rootCmd
}
