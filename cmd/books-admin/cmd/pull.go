package cmd

import (
	"time"

	"github.com/rs/zerolog/log"
	"github.com/spf13/cobra"

	"github.com/smallbooks/books-admin/pkg/store"
)

// pullCmd represents the pull command.
var pullCmd = &cobra.Command{
	Use:   "pull",
	Short: "Download all documents into the local snapshot",
	Long: `Download every invoice, quotation, purchase order and bill from the
backend and store them in the local SQLite snapshot. Reports run with
--offline read from this snapshot.

Example:
  books-admin pull`,
	Run: runPull,
}

func init() {
	rootCmd.AddCommand(pullCmd)
}

func runPull(cmd *cobra.Command, args []string) {
	cfg, client, _ := requireSession(cmd.Context())
	ctx := cmd.Context()

	conn, err := store.Open(cfg.SnapshotDBPath())
	exitOnError(err, "failed to open snapshot database")
	defer conn.Close()

	snap := store.NewSnapshot(conn)

	log.Info().Str("url", cfg.API.URL).Msg("pulling documents")

	invoices, err := client.ListSalesInvoices(ctx, nil)
	exitOnError(err, "failed to fetch invoices")
	exitOnError(snap.SaveInvoices(invoices), "failed to save invoices")
	exitOnError(snap.RecordPull("sales-invoices", len(invoices)), "failed to record pull")
	log.Info().Int("count", len(invoices)).Msg("saved invoices")

	quotations, err := client.ListQuotations(ctx, nil)
	exitOnError(err, "failed to fetch quotations")
	exitOnError(snap.SaveQuotations(quotations), "failed to save quotations")
	exitOnError(snap.RecordPull("quotations", len(quotations)), "failed to record pull")
	log.Info().Int("count", len(quotations)).Msg("saved quotations")

	orders, err := client.ListPurchaseOrders(ctx, nil)
	exitOnError(err, "failed to fetch purchase orders")
	exitOnError(snap.SavePurchaseOrders(orders), "failed to save purchase orders")
	exitOnError(snap.RecordPull("purchase-orders", len(orders)), "failed to record pull")
	log.Info().Int("count", len(orders)).Msg("saved purchase orders")

	bills, err := client.ListBills(ctx, nil)
	exitOnError(err, "failed to fetch bills")
	exitOnError(snap.SaveBills(bills), "failed to save bills")
	exitOnError(snap.RecordPull("bills", len(bills)), "failed to record pull")
	log.Info().Int("count", len(bills)).Msg("saved bills")

	exitOnError(snap.SetMetadata("last_pull_at", time.Now().UTC().Format(time.RFC3339)),
		"failed to record pull time")

	log.Info().
		Int("invoices", len(invoices)).
		Int("quotations", len(quotations)).
		Int("purchase_orders", len(orders)).
		Int("bills", len(bills)).
		Msg("pull complete")
}
