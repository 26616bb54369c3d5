package cmd

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/smallbooks/books-admin/pkg/store"
)

// statsCmd represents the stats command.
var statsCmd = &cobra.Command{
	Use:   "stats",
	Short: "Display snapshot statistics",
	Long: `Display statistics about the local document snapshot.

Shows:
- Number of snapshotted invoices, quotations, purchase orders and bills
- Number of recorded pulls
- Last pull timestamp

Example:
  books-admin stats`,
	Run: runStats,
}

func init() {
	rootCmd.AddCommand(statsCmd)
}

func runStats(cmd *cobra.Command, args []string) {
	cfg := loadConfig()

	conn, err := store.Open(cfg.SnapshotDBPath())
	exitOnError(err, "failed to open snapshot database")
	defer conn.Close()

	snap := store.NewSnapshot(conn)
	stats, err := snap.GetStats()
	exitOnError(err, "failed to get statistics")

	fmt.Println("\n=== Snapshot Statistics ===")
	fmt.Printf("Invoices:        %d\n", stats.TotalInvoices)
	fmt.Printf("Quotations:      %d\n", stats.TotalQuotations)
	fmt.Printf("Purchase orders: %d\n", stats.TotalPurchaseOrders)
	fmt.Printf("Bills:           %d\n", stats.TotalBills)
	fmt.Printf("Pulls:           %d\n", stats.TotalPulls)

	if stats.LastPull.Valid {
		fmt.Printf("Last pull:       %s\n", stats.LastPull.String)
	} else {
		fmt.Printf("Last pull:       (never)\n")
	}

	fmt.Println()
}
