package cmd

import (
	"context"
	"fmt"
	"os"
	"text/tabwriter"

	"github.com/rs/zerolog/log"
	"github.com/spf13/cobra"
	"gopkg.in/yaml.v3"

	"github.com/smallbooks/books-admin/pkg/api"
	"github.com/smallbooks/books-admin/pkg/calc"
)

// docFile is the YAML document description accepted by the create
// commands.
type docFile struct {
	Contact         string        `yaml:"contact"`
	IssueDate       string        `yaml:"issueDate"`
	DueDate         string        `yaml:"dueDate"`
	Reference       string        `yaml:"reference"`
	AmountTreatment string        `yaml:"amountTreatment"`
	Status          string        `yaml:"status"`
	Notes           string        `yaml:"notes"`
	Lines           []docFileLine `yaml:"lines"`
}

type docFileLine struct {
	Item        string  `yaml:"item"`
	Description string  `yaml:"description"`
	Qty         float64 `yaml:"qty"`
	Price       float64 `yaml:"price"`
	Discount    float64 `yaml:"discount"`
	Account     string  `yaml:"account"`
	TaxRate     string  `yaml:"taxRate"`
	Project     string  `yaml:"project"`
}

// docRow is one line of a document list.
type docRow struct {
	ID     string
	Number string
	Party  string
	Date   string
	Status string
	Total  float64
}

// docDetail is the shared shape of a single document for display.
type docDetail struct {
	Number     string
	Party      string
	IssueDate  string
	DueDate    string
	Status     string
	TaxMode    string
	Reference  string
	Notes      string
	Lines      []api.LineItem
	Subtotal   float64
	TotalTax   float64
	GrandTotal float64
}

// docAdapter binds the generic document commands to one collection.
type docAdapter struct {
	use      string
	short    string
	dueCol   string // second date column header, "" to hide
	purchase bool   // use cost-side item defaults

	list   func(ctx context.Context, c *api.Client, status string) ([]docRow, error)
	get    func(ctx context.Context, c *api.Client, id string) (*docDetail, error)
	create func(ctx context.Context, c *api.Client, p api.DocumentPayload) (docRow, error)
	patch  func(ctx context.Context, c *api.Client, id string, p api.DocumentPayload) (docRow, error)
	del    func(ctx context.Context, c *api.Client, id string) error
}

var (
	docStatusFilter string
	docCreateFile   string
	docDryRun       bool
)

func newDocCommand(a docAdapter) *cobra.Command {
	parent := &cobra.Command{
		Use:   a.use,
		Short: a.short,
	}

	listCmd := &cobra.Command{
		Use:   "list",
		Short: "List " + a.use + " documents",
		Run: func(cmd *cobra.Command, args []string) {
			cfg, client, _ := requireSession(cmd.Context())

			rows, err := a.list(cmd.Context(), client, docStatusFilter)
			exitOnError(err, "failed to list documents")

			w := tabwriter.NewWriter(os.Stdout, 0, 4, 2, ' ', 0)
			header := "NUMBER\tPARTY\tDATE\tSTATUS\tTOTAL\tID"
			fmt.Fprintln(w, header)
			for _, row := range rows {
				fmt.Fprintf(w, "%s\t%s\t%s\t%s\t%s\t%s\n",
					row.Number, row.Party, row.Date, row.Status,
					money(cfg.Currency, row.Total), row.ID)
			}
			w.Flush()
		},
	}
	listCmd.Flags().StringVar(&docStatusFilter, "status", "", "Filter by status")

	showCmd := &cobra.Command{
		Use:   "show <id>",
		Short: "Show one document with its line items",
		Args:  cobra.ExactArgs(1),
		Run: func(cmd *cobra.Command, args []string) {
			cfg, client, _ := requireSession(cmd.Context())

			detail, err := a.get(cmd.Context(), client, args[0])
			exitOnError(err, "failed to get document")

			printDetail(cfg.Currency, a, detail)
		},
	}

	createCmd := &cobra.Command{
		Use:   "create --file <doc.yaml>",
		Short: "Create a document from a YAML file",
		Long: `Create a document from a YAML description.

Lines without an item are dropped before submission; a file with no
usable lines is rejected. Totals are previewed locally and derived
again on the backend.

Example file:
  contact: cont-000001
  issueDate: 2026-03-01
  dueDate: 2026-03-31
  amountTreatment: Excluding
  lines:
    - item: item-000001
      qty: 2
      price: 100
      discount: 10
      taxRate: tax-000001`,
		Run: func(cmd *cobra.Command, args []string) {
			runDocCreate(cmd.Context(), a)
		},
	}
	createCmd.Flags().StringVar(&docCreateFile, "file", "", "YAML document file (required)")
	createCmd.Flags().BoolVar(&docDryRun, "dry-run", false, "Preview totals without creating")
	createCmd.MarkFlagRequired("file")

	statusCmd := &cobra.Command{
		Use:   "status <id> <status>",
		Short: "Request a status change",
		Args:  cobra.ExactArgs(2),
		Run: func(cmd *cobra.Command, args []string) {
			_, client, _ := requireSession(cmd.Context())

			row, err := a.patch(cmd.Context(), client, args[0], api.DocumentPayload{Status: args[1]})
			exitOnError(err, "failed to update status")

			fmt.Printf("%s is now %s\n", row.Number, row.Status)
		},
	}

	deleteCmd := &cobra.Command{
		Use:   "delete <id>",
		Short: "Delete a document",
		Args:  cobra.ExactArgs(1),
		Run: func(cmd *cobra.Command, args []string) {
			_, client, _ := requireSession(cmd.Context())

			err := a.del(cmd.Context(), client, args[0])
			exitOnError(err, "failed to delete document")

			fmt.Println("Deleted", args[0])
		},
	}

	parent.AddCommand(listCmd, showCmd, createCmd, statusCmd, deleteCmd)
	return parent
}

func runDocCreate(ctx context.Context, a docAdapter) {
	cfg, client, _ := requireSession(ctx)

	data, err := os.ReadFile(docCreateFile)
	exitOnError(err, "failed to read document file")

	var file docFile
	err = yaml.Unmarshal(data, &file)
	exitOnError(err, "failed to parse document file")

	mode, err := calc.ParseTaxMode(file.AmountTreatment)
	exitOnError(err, "invalid amountTreatment")

	lines := make([]calc.Line, len(file.Lines))
	for i, l := range file.Lines {
		line := calc.Line{
			ItemID:          l.Item,
			Description:     l.Description,
			Quantity:        l.Qty,
			UnitPrice:       l.Price,
			DiscountPercent: l.Discount,
			AccountID:       l.Account,
			TaxRateID:       l.TaxRate,
			ProjectID:       l.Project,
		}
		// A line that names an item but no price takes the catalog
		// defaults; values given in the file still win.
		if l.Item != "" && l.Price == 0 {
			item, err := fetchItem(ctx, client, a.purchase, l.Item)
			exitOnError(err, "failed to fetch item "+l.Item)

			var defaults calc.ItemDefaults
			if a.purchase {
				defaults = item.PurchaseDefaults(0)
			} else {
				defaults = item.SaleDefaults(0)
			}
			line = calc.ApplyItemDefaults(line, defaults)
			line.Quantity = l.Qty
			line.DiscountPercent = l.Discount
			line.ProjectID = l.Project
			if l.Description != "" {
				line.Description = l.Description
			}
			if l.Account != "" {
				line.AccountID = l.Account
			}
			if l.TaxRate != "" {
				line.TaxRateID = l.TaxRate
			}
		}
		lines[i] = line
	}

	lines, err = calc.SubmitLines(lines)
	exitOnError(err, "no usable line items")

	rates, err := client.TaxRateTable(ctx)
	exitOnError(err, "failed to fetch tax rates")
	lines = calc.ResolveTaxPercents(lines, rates)

	totals := calc.DocumentTotals(lines, mode)
	fmt.Printf("Subtotal:   %s\n", money(cfg.Currency, totals.Subtotal))
	fmt.Printf("Tax:        %s\n", money(cfg.Currency, totals.TotalTax))
	fmt.Printf("Total:      %s\n", money(cfg.Currency, totals.GrandTotal))

	if docDryRun {
		fmt.Println("Dry run, nothing created")
		return
	}

	payload := api.DocumentPayload{
		Contact:         file.Contact,
		IssueDate:       file.IssueDate,
		DueDate:         file.DueDate,
		Reference:       file.Reference,
		AmountTreatment: string(mode),
		LineItems:       api.PayloadLines(lines),
		Notes:           file.Notes,
		Status:          file.Status,
	}

	row, err := a.create(ctx, client, payload)
	exitOnError(err, "failed to create document")

	log.Info().Str("id", row.ID).Str("number", row.Number).Msg("document created")
	fmt.Printf("Created %s (%s), backend total %s\n",
		row.Number, row.ID, money(cfg.Currency, row.Total))
}

// fetchItem resolves catalog defaults for a line. Sale-side documents use
// the trimmed sale-details endpoint, purchase-side documents the full item.
func fetchItem(ctx context.Context, c *api.Client, purchase bool, id string) (*api.Item, error) {
	if purchase {
		return c.GetItem(ctx, id)
	}
	return c.GetItemSaleDetails(ctx, id)
}

func printDetail(currency string, a docAdapter, d *docDetail) {
	fmt.Printf("%s  [%s]\n", d.Number, d.Status)
	fmt.Printf("Party:     %s\n", d.Party)
	fmt.Printf("Issued:    %s\n", d.IssueDate)
	if a.dueCol != "" && d.DueDate != "" {
		fmt.Printf("%s:       %s\n", a.dueCol, d.DueDate)
	}
	fmt.Printf("Tax mode:  %s\n", d.TaxMode)
	if d.Reference != "" {
		fmt.Printf("Reference: %s\n", d.Reference)
	}

	fmt.Println()
	w := tabwriter.NewWriter(os.Stdout, 0, 4, 2, ' ', 0)
	fmt.Fprintln(w, "ITEM\tQTY\tPRICE\tDISC%\tTAX\tAMOUNT")
	for _, l := range d.Lines {
		fmt.Fprintf(w, "%s\t%g\t%.2f\t%g\t%.2f\t%.2f\n",
			l.Item.DisplayName(), l.Qty, l.Price, l.Discount, l.TaxAmount, l.Amount)
	}
	w.Flush()

	fmt.Println()
	fmt.Printf("Subtotal:  %s\n", money(currency, d.Subtotal))
	fmt.Printf("Tax:       %s\n", money(currency, d.TotalTax))
	fmt.Printf("Total:     %s\n", money(currency, d.GrandTotal))
	if d.Notes != "" {
		fmt.Printf("\nNotes: %s\n", d.Notes)
	}
}

func money(currency string, v float64) string {
	return fmt.Sprintf("%.2f %s", v, currency)
}

func fmtDate(d api.Date) string {
	if d.IsZero() {
		return ""
	}
	return d.Format("2006-01-02")
}

func statusParams(status string) map[string]string {
	if status == "" {
		return nil
	}
	return map[string]string{"status": status}
}

func init() {
	invoiceCmd := newDocCommand(docAdapter{
		use:    "invoice",
		short:  "Manage sales invoices",
		dueCol: "Due",
		list: func(ctx context.Context, c *api.Client, status string) ([]docRow, error) {
			docs, err := c.ListSalesInvoices(ctx, statusParams(status))
			if err != nil {
				return nil, err
			}
			rows := make([]docRow, len(docs))
			for i, d := range docs {
				rows[i] = docRow{
					ID: d.ID, Number: d.InvoiceNumber,
					Party: d.Party().DisplayName(), Date: fmtDate(d.IssueDate),
					Status: d.Status, Total: d.GrandTotal,
				}
			}
			return rows, nil
		},
		get: func(ctx context.Context, c *api.Client, id string) (*docDetail, error) {
			d, err := c.GetSalesInvoice(ctx, id)
			if err != nil {
				return nil, err
			}
			return &docDetail{
				Number: d.InvoiceNumber, Party: d.Party().DisplayName(),
				IssueDate: fmtDate(d.IssueDate), DueDate: fmtDate(d.DueDate),
				Status: d.Status, TaxMode: string(d.TaxMode()),
				Reference: d.Reference, Notes: d.Notes, Lines: d.LineItems,
				Subtotal: d.Subtotal, TotalTax: d.TotalTax, GrandTotal: d.GrandTotal,
			}, nil
		},
		create: func(ctx context.Context, c *api.Client, p api.DocumentPayload) (docRow, error) {
			d, err := c.CreateSalesInvoice(ctx, p)
			if err != nil {
				return docRow{}, err
			}
			return docRow{ID: d.ID, Number: d.InvoiceNumber, Status: d.Status, Total: d.GrandTotal}, nil
		},
		patch: func(ctx context.Context, c *api.Client, id string, p api.DocumentPayload) (docRow, error) {
			d, err := c.UpdateSalesInvoice(ctx, id, p)
			if err != nil {
				return docRow{}, err
			}
			return docRow{ID: d.ID, Number: d.InvoiceNumber, Status: d.Status, Total: d.GrandTotal}, nil
		},
		del: func(ctx context.Context, c *api.Client, id string) error {
			return c.DeleteSalesInvoice(ctx, id)
		},
	})

	quotationCmd := newDocCommand(docAdapter{
		use:   "quotation",
		short: "Manage quotations",
		list: func(ctx context.Context, c *api.Client, status string) ([]docRow, error) {
			docs, err := c.ListQuotations(ctx, statusParams(status))
			if err != nil {
				return nil, err
			}
			rows := make([]docRow, len(docs))
			for i, d := range docs {
				rows[i] = docRow{
					ID: d.ID, Number: d.QuotationNumber,
					Party: d.Contact.DisplayName(), Date: fmtDate(d.IssueDate),
					Status: d.Status, Total: d.GrandTotal,
				}
			}
			return rows, nil
		},
		get: func(ctx context.Context, c *api.Client, id string) (*docDetail, error) {
			d, err := c.GetQuotation(ctx, id)
			if err != nil {
				return nil, err
			}
			return &docDetail{
				Number: d.QuotationNumber, Party: d.Contact.DisplayName(),
				IssueDate: fmtDate(d.IssueDate),
				Status:    d.Status, TaxMode: string(d.TaxMode()),
				Reference: d.Reference, Notes: d.Notes, Lines: d.LineItems,
				Subtotal: d.Subtotal, TotalTax: d.TotalTax, GrandTotal: d.GrandTotal,
			}, nil
		},
		create: func(ctx context.Context, c *api.Client, p api.DocumentPayload) (docRow, error) {
			d, err := c.CreateQuotation(ctx, p)
			if err != nil {
				return docRow{}, err
			}
			return docRow{ID: d.ID, Number: d.QuotationNumber, Status: d.Status, Total: d.GrandTotal}, nil
		},
		patch: func(ctx context.Context, c *api.Client, id string, p api.DocumentPayload) (docRow, error) {
			d, err := c.UpdateQuotation(ctx, id, p)
			if err != nil {
				return docRow{}, err
			}
			return docRow{ID: d.ID, Number: d.QuotationNumber, Status: d.Status, Total: d.GrandTotal}, nil
		},
		del: func(ctx context.Context, c *api.Client, id string) error {
			return c.DeleteQuotation(ctx, id)
		},
	})

	poCmd := newDocCommand(docAdapter{
		use:      "po",
		short:    "Manage purchase orders",
		dueCol:   "Delivery",
		purchase: true,
		list: func(ctx context.Context, c *api.Client, status string) ([]docRow, error) {
			docs, err := c.ListPurchaseOrders(ctx, statusParams(status))
			if err != nil {
				return nil, err
			}
			rows := make([]docRow, len(docs))
			for i, d := range docs {
				rows[i] = docRow{
					ID: d.ID, Number: d.OrderNumber,
					Party: d.Contact.DisplayName(), Date: fmtDate(d.IssueDate),
					Status: d.Status, Total: d.GrandTotal,
				}
			}
			return rows, nil
		},
		get: func(ctx context.Context, c *api.Client, id string) (*docDetail, error) {
			d, err := c.GetPurchaseOrder(ctx, id)
			if err != nil {
				return nil, err
			}
			return &docDetail{
				Number: d.OrderNumber, Party: d.Contact.DisplayName(),
				IssueDate: fmtDate(d.IssueDate), DueDate: fmtDate(d.DeliveryDate),
				Status: d.Status, TaxMode: string(d.TaxMode()),
				Reference: d.Reference, Notes: d.Notes, Lines: d.LineItems,
				Subtotal: d.Subtotal, TotalTax: d.TotalTax, GrandTotal: d.GrandTotal,
			}, nil
		},
		create: func(ctx context.Context, c *api.Client, p api.DocumentPayload) (docRow, error) {
			d, err := c.CreatePurchaseOrder(ctx, p)
			if err != nil {
				return docRow{}, err
			}
			return docRow{ID: d.ID, Number: d.OrderNumber, Status: d.Status, Total: d.GrandTotal}, nil
		},
		patch: func(ctx context.Context, c *api.Client, id string, p api.DocumentPayload) (docRow, error) {
			d, err := c.UpdatePurchaseOrder(ctx, id, p)
			if err != nil {
				return docRow{}, err
			}
			return docRow{ID: d.ID, Number: d.OrderNumber, Status: d.Status, Total: d.GrandTotal}, nil
		},
		del: func(ctx context.Context, c *api.Client, id string) error {
			return c.DeletePurchaseOrder(ctx, id)
		},
	})

	billCmd := newDocCommand(docAdapter{
		use:      "bill",
		short:    "Manage bills",
		dueCol:   "Due",
		purchase: true,
		list: func(ctx context.Context, c *api.Client, status string) ([]docRow, error) {
			docs, err := c.ListBills(ctx, statusParams(status))
			if err != nil {
				return nil, err
			}
			rows := make([]docRow, len(docs))
			for i, d := range docs {
				rows[i] = docRow{
					ID: d.ID, Number: d.BillNumber,
					Party: d.Party().DisplayName(), Date: fmtDate(d.IssueDate),
					Status: d.Status, Total: d.GrandTotal,
				}
			}
			return rows, nil
		},
		get: func(ctx context.Context, c *api.Client, id string) (*docDetail, error) {
			d, err := c.GetBill(ctx, id)
			if err != nil {
				return nil, err
			}
			return &docDetail{
				Number: d.BillNumber, Party: d.Party().DisplayName(),
				IssueDate: fmtDate(d.IssueDate), DueDate: fmtDate(d.DueDate),
				Status: d.Status, TaxMode: string(d.TaxMode()),
				Reference: d.Reference, Notes: d.Notes, Lines: d.LineItems,
				Subtotal: d.Subtotal, TotalTax: d.TotalTax, GrandTotal: d.GrandTotal,
			}, nil
		},
		create: func(ctx context.Context, c *api.Client, p api.DocumentPayload) (docRow, error) {
			d, err := c.CreateBill(ctx, p)
			if err != nil {
				return docRow{}, err
			}
			return docRow{ID: d.ID, Number: d.BillNumber, Status: d.Status, Total: d.GrandTotal}, nil
		},
		patch: func(ctx context.Context, c *api.Client, id string, p api.DocumentPayload) (docRow, error) {
			d, err := c.UpdateBill(ctx, id, p)
			if err != nil {
				return docRow{}, err
			}
			return docRow{ID: d.ID, Number: d.BillNumber, Status: d.Status, Total: d.GrandTotal}, nil
		},
		del: func(ctx context.Context, c *api.Client, id string) error {
			return c.DeleteBill(ctx, id)
		},
	})

	rootCmd.AddCommand(invoiceCmd, quotationCmd, poCmd, billCmd)
}
