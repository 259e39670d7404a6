package commands

import (
	"github.com/spf13/cobra"
)

var (
	// Global flags
	configFile string
	verbose    bool
)

// rootCmd represents the base command when called without any subcommands
var rootCmd = &cobra.Command{
	Use:   "lmed",
	Short: "LME copper spread market data engine",
	Long: `lmed acquires intraday trade data for LME copper spread contracts.

It generates the tradable contract universe (Cash, 3Month, and monthly
third-Wednesday expiries), enumerates every spread combination, pulls
minute bars from the Eikon proxy, and aggregates the results into daily
CSV reports.

Examples:
  lmed run --date 2025-06-19
  lmed universe --horizon 25
  lmed curve
  lmed scheduler start`,
}

// Execute adds all child commands to the root command and sets flags appropriately.
// This is called by main.main(). It only needs to happen once to the rootCmd.
func Execute() error {
	return rootCmd.Execute()
}

func init() {
	rootCmd.PersistentFlags().StringVar(&configFile, "config", "", "config file (default is .env)")
	rootCmd.PersistentFlags().BoolVarP(&verbose, "verbose", "v", false, "verbose output")
}
