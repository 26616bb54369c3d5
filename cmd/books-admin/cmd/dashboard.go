package cmd

import (
	"fmt"
	"os"
	"text/tabwriter"
	"time"

	"github.com/spf13/cobra"

	"github.com/smallbooks/books-admin/pkg/api"
	"github.com/smallbooks/books-admin/pkg/report"
)

var (
	dashWindow string
	dashFrom   string
	dashTo     string
)

// dashboardCmd represents the dashboard command.
var dashboardCmd = &cobra.Command{
	Use:   "dashboard",
	Short: "Show the cash-flow and receivables overview",
	Long: `Show an overview of the books: cash flow over the selected window,
outstanding receivables and payables, and the aging buckets.

Windows: week (daily), month (daily, sampled), year (monthly),
custom (requires --from and --to).`,
	Run: runDashboard,
}

func init() {
	dashboardCmd.Flags().StringVar(&dashWindow, "window", "month", "Cash-flow window (week, month, year, custom)")
	dashboardCmd.Flags().StringVar(&dashFrom, "from", "", "Start date for --window=custom (YYYY-MM-DD)")
	dashboardCmd.Flags().StringVar(&dashTo, "to", "", "End date for --window=custom (YYYY-MM-DD)")

	rootCmd.AddCommand(dashboardCmd)
}

func runDashboard(cmd *cobra.Command, args []string) {
	cfg, client, _ := requireSession(cmd.Context())
	currency := cfg.Currency

	invoices, err := client.ListSalesInvoices(cmd.Context(), nil)
	exitOnError(err, "failed to fetch invoices")
	bills, err := client.ListBills(cmd.Context(), nil)
	exitOnError(err, "failed to fetch bills")

	now := time.Now()
	var start, end time.Time
	if report.Window(dashWindow) == report.WindowCustom {
		if dashFrom == "" || dashTo == "" {
			exitOnError(fmt.Errorf("--from and --to are required with --window=custom"), "missing date range")
		}
		start, err = time.Parse("2006-01-02", dashFrom)
		exitOnError(err, "invalid --from date")
		end, err = time.Parse("2006-01-02", dashTo)
		exitOnError(err, "invalid --to date")
	}

	points, err := report.CashFlow(invoices, bills, report.Window(dashWindow), now, start, end)
	exitOnError(err, "failed to compute cash flow")

	fmt.Printf("=== Cash Flow (%s) ===\n", dashWindow)
	w := tabwriter.NewWriter(os.Stdout, 0, 4, 2, ' ', 0)
	fmt.Fprintln(w, "PERIOD\tIN\tOUT\tNET")
	var totalIn, totalOut float64
	for _, p := range points {
		fmt.Fprintf(w, "%s\t%s\t%s\t%s\n",
			p.Label, money(currency, p.Income), money(currency, p.Expense),
			money(currency, p.Income-p.Expense))
		totalIn += p.Income
		totalOut += p.Expense
	}
	fmt.Fprintf(w, "TOTAL\t%s\t%s\t%s\n",
		money(currency, totalIn), money(currency, totalOut), money(currency, totalIn-totalOut))
	w.Flush()

	receivable := outstandingInvoiceTotal(invoices)
	payable := outstandingBillTotal(bills)
	fmt.Println()
	fmt.Println("=== Outstanding ===")
	fmt.Printf("Receivable: %s\n", money(currency, receivable))
	fmt.Printf("Payable:    %s\n", money(currency, payable))

	fmt.Println()
	fmt.Println("=== Aging ===")
	printAgingTotals(currency, "Receivables", report.AgedReceivables(invoices, now).Totals)
	printAgingTotals(currency, "Payables", report.AgedPayables(bills, now).Totals)
}

func outstandingInvoiceTotal(invoices []api.SalesInvoice) float64 {
	var total float64
	for _, inv := range invoices {
		if inv.Status != api.StatusPaid && inv.Status != api.StatusCancelled {
			total += inv.GrandTotal
		}
	}
	return total
}

func outstandingBillTotal(bills []api.Bill) float64 {
	var total float64
	for _, bill := range bills {
		if bill.Status != api.StatusPaid && bill.Status != api.StatusCancelled {
			total += bill.GrandTotal
		}
	}
	return total
}

func printAgingTotals(currency, label string, t report.AgingTotals) {
	fmt.Printf("%-12s current %s, 1-30 %s, 31-60 %s, 61-90 %s, 90+ %s\n",
		label+":",
		money(currency, t.Current),
		money(currency, t.Days30),
		money(currency, t.Days60),
		money(currency, t.Days90),
		money(currency, t.Days90Plus))
}
