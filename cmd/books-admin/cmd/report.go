package cmd

import (
	"context"
	"fmt"
	"os"
	"text/tabwriter"
	"time"

	"github.com/spf13/cobra"

	"github.com/smallbooks/books-admin/pkg/api"
	"github.com/smallbooks/books-admin/pkg/config"
	"github.com/smallbooks/books-admin/pkg/report"
	"github.com/smallbooks/books-admin/pkg/store"
)

var (
	reportFrom    string
	reportTo      string
	reportOffline bool
)

var reportNames = []string{
	"profit-loss",
	"sales-summary", "purchase-summary",
	"sales-by-customer", "purchases-by-vendor",
	"customer-balances", "vendor-balances",
	"aged-receivables", "aged-payables",
	"invoice-details", "bill-details",
	"tax-summary", "sales-tax", "purchase-tax",
	"contact-list",
}

// reportCmd represents the report command.
var reportCmd = &cobra.Command{
	Use:   "report <name>",
	Short: "Run a financial report",
	Long: `Run a financial report over invoices and bills.

Date-ranged reports require --from and --to. Balance and aging reports
ignore the range and use today as the reference date. With --offline
the report reads the local snapshot instead of the backend; run
"books-admin pull" first.

Available reports:
  profit-loss          revenue vs expenses
  sales-summary        invoice totals, paid vs outstanding
  purchase-summary     bill totals, paid vs outstanding
  sales-by-customer    invoiced amount per customer
  purchases-by-vendor  billed amount per vendor
  customer-balances    customers with open balances
  vendor-balances      vendors with open balances
  aged-receivables     open invoices by days overdue
  aged-payables        open bills by days overdue
  invoice-details      row per invoice in the range
  bill-details         row per bill in the range
  tax-summary          tax collected vs tax paid
  sales-tax            per-invoice tax listing
  purchase-tax         per-bill tax listing
  contact-list         all contacts by name (online only)`,
	Args:      cobra.ExactArgs(1),
	ValidArgs: reportNames,
	Run:       runReport,
}

func init() {
	reportCmd.Flags().StringVar(&reportFrom, "from", "", "Start date (YYYY-MM-DD)")
	reportCmd.Flags().StringVar(&reportTo, "to", "", "End date (YYYY-MM-DD)")
	reportCmd.Flags().BoolVar(&reportOffline, "offline", false, "Read the local snapshot instead of the backend")

	rootCmd.AddCommand(reportCmd)
}

// loadDocuments fetches invoices and bills from the backend, or from
// the snapshot when offline.
func loadDocuments(ctx context.Context, cfg *config.Config, client *api.Client) ([]api.SalesInvoice, []api.Bill) {
	if reportOffline {
		conn, err := store.Open(cfg.SnapshotDBPath())
		exitOnError(err, "failed to open snapshot database")
		defer conn.Close()

		snap := store.NewSnapshot(conn)
		invoices, err := snap.LoadInvoices()
		exitOnError(err, "failed to load snapshotted invoices")
		bills, err := snap.LoadBills()
		exitOnError(err, "failed to load snapshotted bills")
		return invoices, bills
	}

	invoices, err := client.ListSalesInvoices(ctx, nil)
	exitOnError(err, "failed to fetch invoices")
	bills, err := client.ListBills(ctx, nil)
	exitOnError(err, "failed to fetch bills")
	return invoices, bills
}

// reportRange parses --from/--to, required for the date-ranged reports.
func reportRange() report.Range {
	if reportFrom == "" || reportTo == "" {
		exitOnError(fmt.Errorf("--from and --to are required for this report"), "missing date range")
	}
	from, err := time.Parse("2006-01-02", reportFrom)
	exitOnError(err, "invalid --from date")
	to, err := time.Parse("2006-01-02", reportTo)
	exitOnError(err, "invalid --to date")
	if to.Before(from) {
		exitOnError(fmt.Errorf("--to is before --from"), "invalid date range")
	}
	return report.Range{From: from, To: to}
}

func runReport(cmd *cobra.Command, args []string) {
	var cfg *config.Config
	var client *api.Client
	if reportOffline {
		cfg = loadConfig()
	} else {
		cfg, client, _ = requireSession(cmd.Context())
	}

	// Contacts are not snapshotted, so the contact list is online only.
	if args[0] == "contact-list" {
		if reportOffline {
			exitOnError(fmt.Errorf("contact-list is only available online"), "unsupported report")
		}
		contacts, err := client.ListContacts(cmd.Context(), nil)
		exitOnError(err, "failed to fetch contacts")
		printContactList(report.ContactList(contacts))
		return
	}

	invoices, bills := loadDocuments(cmd.Context(), cfg, client)
	currency := cfg.Currency
	today := time.Now()

	switch args[0] {
	case "profit-loss":
		r := report.ProfitLoss(invoices, bills, reportRange())
		fmt.Printf("Revenue:    %s  (%d invoices)\n", money(currency, r.Revenue), r.InvoiceCount)
		fmt.Printf("Expenses:   %s  (%d bills)\n", money(currency, r.Expenses), r.BillCount)
		fmt.Printf("Net profit: %s\n", money(currency, r.NetProfit))

	case "sales-summary":
		printSummary(currency, report.SalesSummary(invoices, reportRange()), "invoices")
	case "purchase-summary":
		printSummary(currency, report.PurchaseSummary(bills, reportRange()), "bills")

	case "sales-by-customer":
		printPartyTotals(currency, report.SalesByCustomer(invoices, reportRange()), "CUSTOMER")
	case "purchases-by-vendor":
		printPartyTotals(currency, report.PurchaseByVendor(bills, reportRange()), "VENDOR")

	case "customer-balances":
		printBalances(currency, report.CustomerBalances(invoices), "CUSTOMER")
	case "vendor-balances":
		printBalances(currency, report.VendorBalances(bills), "VENDOR")

	case "aged-receivables":
		printAging(currency, report.AgedReceivables(invoices, today))
	case "aged-payables":
		printAging(currency, report.AgedPayables(bills, today))

	case "invoice-details":
		printDetails(currency, report.InvoiceDetails(invoices, reportRange()))
	case "bill-details":
		printDetails(currency, report.BillDetails(bills, reportRange()))

	case "tax-summary":
		r := report.TaxSummary(invoices, bills, reportRange())
		fmt.Printf("Tax on sales:     %s  (%d invoices)\n", money(currency, r.SalesTax), r.SalesCount)
		fmt.Printf("Tax on purchases: %s  (%d bills)\n", money(currency, r.PurchaseTax), r.PurchaseCount)
		fmt.Printf("Net tax:          %s\n", money(currency, r.NetTax))

	case "sales-tax":
		r := report.SalesTax(invoices, reportRange())
		printDetails(currency, r.Details)
		fmt.Printf("\nTotal tax: %s\n", money(currency, r.TotalTax))
	case "purchase-tax":
		r := report.PurchaseTax(bills, reportRange())
		printDetails(currency, r.Details)
		fmt.Printf("\nTotal tax: %s\n", money(currency, r.TotalTax))

	default:
		exitOnError(fmt.Errorf("unknown report %q", args[0]), "invalid report name")
	}
}

func printSummary(currency string, r report.SummaryReport, noun string) {
	fmt.Printf("Total:       %s  (%d %s)\n", money(currency, r.Total), r.Count, noun)
	fmt.Printf("Tax:         %s\n", money(currency, r.TotalTax))
	fmt.Printf("Paid:        %s  (%d)\n", money(currency, r.TotalPaid), r.PaidCount)
	fmt.Printf("Outstanding: %s  (%d)\n", money(currency, r.TotalOutstanding), r.OutstandingCount)
}

func printPartyTotals(currency string, totals []report.PartyTotal, header string) {
	w := tabwriter.NewWriter(os.Stdout, 0, 4, 2, ' ', 0)
	fmt.Fprintf(w, "%s\tDOCS\tTOTAL\n", header)
	for _, t := range totals {
		fmt.Fprintf(w, "%s\t%d\t%s\n", t.Name, t.Count, money(currency, t.Total))
	}
	w.Flush()
}

func printBalances(currency string, balances []report.PartyBalance, header string) {
	w := tabwriter.NewWriter(os.Stdout, 0, 4, 2, ' ', 0)
	fmt.Fprintf(w, "%s\tINVOICED\tPAID\tBALANCE\n", header)
	for _, b := range balances {
		fmt.Fprintf(w, "%s\t%s\t%s\t%s\n",
			b.Name, money(currency, b.Invoiced), money(currency, b.Paid), money(currency, b.Balance))
	}
	w.Flush()
}

func printAging(currency string, r report.AgingReport) {
	w := tabwriter.NewWriter(os.Stdout, 0, 4, 2, ' ', 0)
	fmt.Fprintln(w, "PARTY\tNUMBER\tDAYS OVERDUE\tAMOUNT")
	for _, e := range r.Flatten() {
		days := fmt.Sprintf("%d", e.DaysOverdue)
		if e.DaysOverdue <= 0 {
			days = "current"
		}
		fmt.Fprintf(w, "%s\t%s\t%s\t%s\n", e.Party, e.Number, days, money(currency, e.Amount))
	}
	w.Flush()

	fmt.Println()
	fmt.Printf("Current: %s  1-30: %s  31-60: %s  61-90: %s  90+: %s\n",
		money(currency, r.Totals.Current),
		money(currency, r.Totals.Days30),
		money(currency, r.Totals.Days60),
		money(currency, r.Totals.Days90),
		money(currency, r.Totals.Days90Plus))
}

func printContactList(rows []report.ContactRow) {
	w := tabwriter.NewWriter(os.Stdout, 0, 4, 2, ' ', 0)
	fmt.Fprintln(w, "NAME\tTYPE\tEMAIL\tPHONE")
	for _, r := range rows {
		fmt.Fprintf(w, "%s\t%s\t%s\t%s\n", r.Name, r.Type, r.Email, r.Phone)
	}
	w.Flush()
}

func printDetails(currency string, details []report.DocumentDetail) {
	w := tabwriter.NewWriter(os.Stdout, 0, 4, 2, ' ', 0)
	fmt.Fprintln(w, "NUMBER\tDATE\tPARTY\tSTATUS\tSUBTOTAL\tTAX\tTOTAL")
	for _, d := range details {
		fmt.Fprintf(w, "%s\t%s\t%s\t%s\t%s\t%s\t%s\n",
			d.Number, d.Date, d.Party, d.Status,
			money(currency, d.Subtotal), money(currency, d.Tax), money(currency, d.Total))
	}
	w.Flush()
}
