package commands

import (
	"fmt"
	"os"
	"time"

	"github.com/olekukonko/tablewriter"
	"github.com/spf13/cobra"

	"github.com/wonny/lmed/internal/instrument"
)

var (
	universeAsOf    string
	universeHorizon int
)

// universeCmd represents the universe command
var universeCmd = &cobra.Command{
	Use:   "universe",
	Short: "Show the contract universe and spread count",
	Long: `Generates the contract universe for an as-of date without touching
the provider: Cash, 3Month, and the forward monthly third-Wednesday
expiries, plus the number of spread combinations they produce.

Examples:
  lmed universe
  lmed universe --asof 2025-06-10 --horizon 3`,
	RunE: showUniverse,
}

func init() {
	rootCmd.AddCommand(universeCmd)
	universeCmd.Flags().StringVar(&universeAsOf, "asof", "", "as-of date (YYYY-MM-DD, default: today)")
	universeCmd.Flags().IntVar(&universeHorizon, "horizon", instrument.DefaultHorizonMonths, "forward months to generate")
}

func showUniverse(cmd *cobra.Command, args []string) error {
	asOf := time.Now()
	if universeAsOf != "" {
		parsed, err := time.Parse("2006-01-02", universeAsOf)
		if err != nil {
			return fmt.Errorf("invalid --asof %q: %w", universeAsOf, err)
		}
		asOf = parsed
	}

	u, err := instrument.BuildUniverse(asOf, universeHorizon)
	if err != nil {
		return fmt.Errorf("build universe: %w", err)
	}

	spreads, err := instrument.Combinations(u)
	if err != nil {
		return fmt.Errorf("enumerate spreads: %w", err)
	}

	fmt.Printf("Universe as of %s: %d instruments, %d spreads\n\n",
		asOf.Format("2006-01-02"), u.Len(), len(spreads))

	table := tablewriter.NewWriter(os.Stdout)
	table.Header("Code", "Kind", "RIC", "Expiry")
	for _, ins := range u.Instruments {
		expiry := "-"
		if !ins.Expiry.IsZero() {
			expiry = ins.Expiry.Format("2006-01-02")
		}
		table.Append(ins.Code, ins.Kind.String(), ins.RIC(), expiry)
	}
	table.Render()

	return nil
}
