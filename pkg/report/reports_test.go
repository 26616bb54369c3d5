package report

import (
	"testing"

	"github.com/smallbooks/books-admin/pkg/api"
)

func period(from, to string) Range {
	return Range{From: day(from), To: day(to)}
}

func TestProfitLoss(t *testing.T) {
	invoices := []api.SalesInvoice{
		{IssueDate: date("2026-01-10"), GrandTotal: 500, Status: api.StatusPaid},
		{IssueDate: date("2026-01-20"), GrandTotal: 300, Status: api.StatusSent},
		{IssueDate: date("2025-12-31"), GrandTotal: 999, Status: api.StatusPaid}, // before range
	}
	bills := []api.Bill{
		{IssueDate: date("2026-01-15"), GrandTotal: 200, Status: api.StatusPaid},
	}

	r := ProfitLoss(invoices, bills, period("2026-01-01", "2026-01-31"))

	if r.Revenue != 800 || r.InvoiceCount != 2 {
		t.Errorf("revenue = %v (%d invoices), expected 800 (2)", r.Revenue, r.InvoiceCount)
	}
	if r.Expenses != 200 || r.BillCount != 1 {
		t.Errorf("expenses = %v (%d bills), expected 200 (1)", r.Expenses, r.BillCount)
	}
	if r.NetProfit != 600 {
		t.Errorf("net profit = %v, expected 600", r.NetProfit)
	}
}

func TestSalesSummary(t *testing.T) {
	invoices := []api.SalesInvoice{
		{IssueDate: date("2026-01-10"), GrandTotal: 100, TotalTax: 10, Status: api.StatusPaid},
		{IssueDate: date("2026-01-11"), GrandTotal: 200, TotalTax: 20, Status: api.StatusSent},
		{IssueDate: date("2026-01-12"), GrandTotal: 300, TotalTax: 30, Status: api.StatusCancelled},
	}

	r := SalesSummary(invoices, period("2026-01-01", "2026-01-31"))

	if r.Total != 600 || r.TotalTax != 60 || r.Count != 3 {
		t.Errorf("totals = %+v", r)
	}
	if r.TotalPaid != 100 || r.PaidCount != 1 {
		t.Errorf("paid = %v (%d)", r.TotalPaid, r.PaidCount)
	}
	// Cancelled documents never count as outstanding.
	if r.TotalOutstanding != 200 || r.OutstandingCount != 1 {
		t.Errorf("outstanding = %v (%d), expected 200 (1)", r.TotalOutstanding, r.OutstandingCount)
	}
}

func TestSalesByCustomer(t *testing.T) {
	acme := api.Ref{ID: "c1", Name: "Acme"}
	globex := api.Ref{ID: "c2", Name: "Globex"}
	invoices := []api.SalesInvoice{
		{IssueDate: date("2026-01-10"), Customer: acme, GrandTotal: 100},
		{IssueDate: date("2026-01-11"), Customer: globex, GrandTotal: 500},
		{IssueDate: date("2026-01-12"), Customer: acme, GrandTotal: 50},
		{IssueDate: date("2026-01-13"), GrandTotal: 25}, // no customer
	}

	r := SalesByCustomer(invoices, period("2026-01-01", "2026-01-31"))

	if len(r) != 3 {
		t.Fatalf("expected 3 groups, got %d", len(r))
	}
	if r[0].Name != "Globex" || r[0].Total != 500 {
		t.Errorf("largest group = %+v", r[0])
	}
	if r[1].Name != "Acme" || r[1].Total != 150 || r[1].Count != 2 {
		t.Errorf("acme group = %+v", r[1])
	}
	if r[2].Name != "Unknown" {
		t.Errorf("missing customer should group as Unknown, got %+v", r[2])
	}
}

func TestCustomerBalances(t *testing.T) {
	acme := api.Ref{ID: "c1", Name: "Acme"}
	globex := api.Ref{ID: "c2", Name: "Globex"}
	invoices := []api.SalesInvoice{
		{Customer: acme, GrandTotal: 100, Status: api.StatusSent},
		{Customer: acme, GrandTotal: 50, Status: api.StatusPaid},
		{Customer: globex, GrandTotal: 80, Status: api.StatusPaid}, // fully settled
	}

	r := CustomerBalances(invoices)

	if len(r) != 1 {
		t.Fatalf("expected only customers with open balances, got %+v", r)
	}
	if r[0].Name != "Acme" || r[0].Balance != 100 || r[0].Invoiced != 150 || r[0].Paid != 50 {
		t.Errorf("acme balance = %+v", r[0])
	}
}

func TestTaxSummary(t *testing.T) {
	invoices := []api.SalesInvoice{
		{IssueDate: date("2026-01-10"), TotalTax: 30},
		{IssueDate: date("2026-01-11"), TotalTax: 20},
	}
	bills := []api.Bill{
		{IssueDate: date("2026-01-12"), TotalTax: 15},
	}

	r := TaxSummary(invoices, bills, period("2026-01-01", "2026-01-31"))

	if r.SalesTax != 50 || r.PurchaseTax != 15 || r.NetTax != 35 {
		t.Errorf("tax summary = %+v", r)
	}
	if r.SalesCount != 2 || r.PurchaseCount != 1 {
		t.Errorf("counts = %d/%d", r.SalesCount, r.PurchaseCount)
	}
}

func TestInvoiceDetailsAndSalesTax(t *testing.T) {
	invoices := []api.SalesInvoice{
		{
			InvoiceNumber: "INV-1",
			IssueDate:     date("2026-01-10"),
			Customer:      api.Ref{ID: "c1", Name: "Acme"},
			Status:        api.StatusSent,
			Subtotal:      100,
			TotalTax:      10,
			GrandTotal:    110,
		},
		{InvoiceNumber: "INV-2", IssueDate: date("2026-02-10"), TotalTax: 99}, // outside range
	}

	p := period("2026-01-01", "2026-01-31")
	details := InvoiceDetails(invoices, p)
	if len(details) != 1 {
		t.Fatalf("expected 1 detail row, got %d", len(details))
	}
	d := details[0]
	if d.Number != "INV-1" || d.Party != "Acme" || d.Date != "2026-01-10" || d.Total != 110 {
		t.Errorf("detail = %+v", d)
	}

	tax := SalesTax(invoices, p)
	if tax.TotalTax != 10 {
		t.Errorf("SalesTax total = %v, expected 10", tax.TotalTax)
	}
}

func TestRangeBoundariesInclusive(t *testing.T) {
	p := period("2026-01-01", "2026-01-31")
	if !p.Contains(date("2026-01-01")) || !p.Contains(date("2026-01-31")) {
		t.Error("range must be inclusive on both ends")
	}
	if p.Contains(date("2025-12-31")) || p.Contains(date("2026-02-01")) {
		t.Error("range must exclude dates outside")
	}
	if p.Contains(api.Date{}) {
		t.Error("zero dates never match")
	}
}

func TestContactList(t *testing.T) {
	contacts := []api.Contact{
		{ContactName: "Globex Inc", Type: "Customer", Email: "ap@globex.example"},
		{ContactName: "Acme Ltd", Type: "Customer", Email: "billing@acme.example"},
		{ContactName: "Paper Supplies Co", Type: "Supplier", Phone: "555-0100"},
	}

	rows := ContactList(contacts)
	if len(rows) != 3 {
		t.Fatalf("ContactList() returned %d rows, want 3", len(rows))
	}
	if rows[0].Name != "Acme Ltd" || rows[1].Name != "Globex Inc" || rows[2].Name != "Paper Supplies Co" {
		t.Errorf("rows not sorted by name: %+v", rows)
	}
	if rows[2].Type != "Supplier" || rows[2].Phone != "555-0100" {
		t.Errorf("supplier row = %+v", rows[2])
	}
}
