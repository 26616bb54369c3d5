package report

import (
	"sort"
	"time"

	"github.com/smallbooks/books-admin/pkg/api"
	"github.com/smallbooks/books-admin/pkg/calc"
)

// Range is an inclusive issue-date range.
type Range struct {
	From time.Time
	To   time.Time
}

// Contains reports whether the date falls within the range. Zero dates
// never match.
func (r Range) Contains(d api.Date) bool {
	if d.IsZero() {
		return false
	}
	day := startOfDay(d.Time)
	return !day.Before(startOfDay(r.From)) && !day.After(startOfDay(r.To))
}

// ProfitLossReport is revenue vs expenses over a period.
type ProfitLossReport struct {
	Revenue      float64
	Expenses     float64
	NetProfit    float64
	InvoiceCount int
	BillCount    int
}

// ProfitLoss sums invoice grand totals against bill grand totals within
// the range, regardless of payment status.
func ProfitLoss(invoices []api.SalesInvoice, bills []api.Bill, period Range) ProfitLossReport {
	var r ProfitLossReport
	for _, inv := range invoices {
		if period.Contains(inv.IssueDate) {
			r.Revenue += inv.GrandTotal
			r.InvoiceCount++
		}
	}
	for _, bill := range bills {
		if period.Contains(bill.IssueDate) {
			r.Expenses += bill.GrandTotal
			r.BillCount++
		}
	}
	r.Revenue = calc.Round2(r.Revenue)
	r.Expenses = calc.Round2(r.Expenses)
	r.NetProfit = calc.Round2(r.Revenue - r.Expenses)
	return r
}

// SummaryReport covers both sales and purchase summaries: totals split by
// paid vs outstanding.
type SummaryReport struct {
	Total            float64
	TotalTax         float64
	TotalPaid        float64
	TotalOutstanding float64
	Count            int
	PaidCount        int
	OutstandingCount int
}

// SalesSummary summarizes invoices in the range. Outstanding means any
// status other than Paid or Cancelled.
func SalesSummary(invoices []api.SalesInvoice, period Range) SummaryReport {
	var r SummaryReport
	for _, inv := range invoices {
		if !period.Contains(inv.IssueDate) {
			continue
		}
		r.Total += inv.GrandTotal
		r.TotalTax += inv.TotalTax
		r.Count++
		if inv.Status == api.StatusPaid {
			r.TotalPaid += inv.GrandTotal
			r.PaidCount++
		} else if inv.Status != api.StatusCancelled {
			r.TotalOutstanding += inv.GrandTotal
			r.OutstandingCount++
		}
	}
	r.roundAll()
	return r
}

// PurchaseSummary summarizes bills in the range.
func PurchaseSummary(bills []api.Bill, period Range) SummaryReport {
	var r SummaryReport
	for _, bill := range bills {
		if !period.Contains(bill.IssueDate) {
			continue
		}
		r.Total += bill.GrandTotal
		r.TotalTax += bill.TotalTax
		r.Count++
		if bill.Status == api.StatusPaid {
			r.TotalPaid += bill.GrandTotal
			r.PaidCount++
		} else if bill.Status != api.StatusCancelled {
			r.TotalOutstanding += bill.GrandTotal
			r.OutstandingCount++
		}
	}
	r.roundAll()
	return r
}

func (r *SummaryReport) roundAll() {
	r.Total = calc.Round2(r.Total)
	r.TotalTax = calc.Round2(r.TotalTax)
	r.TotalPaid = calc.Round2(r.TotalPaid)
	r.TotalOutstanding = calc.Round2(r.TotalOutstanding)
}

// PartyTotal is one customer's or vendor's accumulated document total.
type PartyTotal struct {
	Name  string
	Total float64
	Count int
}

// SalesByCustomer groups invoice totals by customer, largest first.
func SalesByCustomer(invoices []api.SalesInvoice, period Range) []PartyTotal {
	acc := map[string]*PartyTotal{}
	for _, inv := range invoices {
		if !period.Contains(inv.IssueDate) {
			continue
		}
		addPartyTotal(acc, inv.Party(), inv.GrandTotal)
	}
	return sortedPartyTotals(acc)
}

// PurchaseByVendor groups bill totals by vendor, largest first.
func PurchaseByVendor(bills []api.Bill, period Range) []PartyTotal {
	acc := map[string]*PartyTotal{}
	for _, bill := range bills {
		if !period.Contains(bill.IssueDate) {
			continue
		}
		addPartyTotal(acc, bill.Party(), bill.GrandTotal)
	}
	return sortedPartyTotals(acc)
}

func addPartyTotal(acc map[string]*PartyTotal, party api.Ref, amount float64) {
	key := party.ID
	if key == "" {
		key = "unknown"
	}
	pt, ok := acc[key]
	if !ok {
		pt = &PartyTotal{Name: party.DisplayName()}
		acc[key] = pt
	}
	pt.Total += amount
	pt.Count++
}

func sortedPartyTotals(acc map[string]*PartyTotal) []PartyTotal {
	out := make([]PartyTotal, 0, len(acc))
	for _, pt := range acc {
		pt.Total = calc.Round2(pt.Total)
		out = append(out, *pt)
	}
	sort.Slice(out, func(i, j int) bool {
		if out[i].Total != out[j].Total {
			return out[i].Total > out[j].Total
		}
		return out[i].Name < out[j].Name
	})
	return out
}

// DocumentDetail is one row of a details or tax-detail report.
type DocumentDetail struct {
	Number   string
	Date     string
	Party    string
	Status   string
	Subtotal float64
	Tax      float64
	Total    float64
}

// InvoiceDetails lists invoices in the range, row per invoice.
func InvoiceDetails(invoices []api.SalesInvoice, period Range) []DocumentDetail {
	var out []DocumentDetail
	for _, inv := range invoices {
		if !period.Contains(inv.IssueDate) {
			continue
		}
		out = append(out, DocumentDetail{
			Number:   inv.InvoiceNumber,
			Date:     inv.IssueDate.Format("2006-01-02"),
			Party:    inv.Party().DisplayName(),
			Status:   inv.Status,
			Subtotal: inv.Subtotal,
			Tax:      inv.TotalTax,
			Total:    inv.GrandTotal,
		})
	}
	return out
}

// BillDetails lists bills in the range, row per bill.
func BillDetails(bills []api.Bill, period Range) []DocumentDetail {
	var out []DocumentDetail
	for _, bill := range bills {
		if !period.Contains(bill.IssueDate) {
			continue
		}
		out = append(out, DocumentDetail{
			Number:   bill.BillNumber,
			Date:     bill.IssueDate.Format("2006-01-02"),
			Party:    bill.Party().DisplayName(),
			Status:   bill.Status,
			Subtotal: bill.Subtotal,
			Tax:      bill.TotalTax,
			Total:    bill.GrandTotal,
		})
	}
	return out
}

// PartyBalance is the outstanding balance for one customer or vendor.
type PartyBalance struct {
	Name     string
	Invoiced float64
	Paid     float64
	Balance  float64
}

// CustomerBalances reports customers with a positive outstanding balance,
// largest first. All invoices count toward the balance; only Paid ones
// count as settled.
func CustomerBalances(invoices []api.SalesInvoice) []PartyBalance {
	acc := map[string]*PartyBalance{}
	for _, inv := range invoices {
		addBalance(acc, inv.Party(), inv.GrandTotal, inv.Status == api.StatusPaid)
	}
	return sortedBalances(acc)
}

// VendorBalances reports vendors with a positive outstanding balance,
// largest first.
func VendorBalances(bills []api.Bill) []PartyBalance {
	acc := map[string]*PartyBalance{}
	for _, bill := range bills {
		addBalance(acc, bill.Party(), bill.GrandTotal, bill.Status == api.StatusPaid)
	}
	return sortedBalances(acc)
}

func addBalance(acc map[string]*PartyBalance, party api.Ref, amount float64, paid bool) {
	key := party.ID
	if key == "" {
		key = "unknown"
	}
	b, ok := acc[key]
	if !ok {
		b = &PartyBalance{Name: party.DisplayName()}
		acc[key] = b
	}
	b.Invoiced += amount
	if paid {
		b.Paid += amount
	}
}

func sortedBalances(acc map[string]*PartyBalance) []PartyBalance {
	var out []PartyBalance
	for _, b := range acc {
		b.Invoiced = calc.Round2(b.Invoiced)
		b.Paid = calc.Round2(b.Paid)
		b.Balance = calc.Round2(b.Invoiced - b.Paid)
		if b.Balance > 0 {
			out = append(out, *b)
		}
	}
	sort.Slice(out, func(i, j int) bool {
		if out[i].Balance != out[j].Balance {
			return out[i].Balance > out[j].Balance
		}
		return out[i].Name < out[j].Name
	})
	return out
}

// TaxSummaryReport nets tax collected on sales against tax paid on
// purchases.
type TaxSummaryReport struct {
	SalesTax      float64
	PurchaseTax   float64
	NetTax        float64
	SalesCount    int
	PurchaseCount int
}

// TaxSummary sums tax over both document sides within the range.
func TaxSummary(invoices []api.SalesInvoice, bills []api.Bill, period Range) TaxSummaryReport {
	var r TaxSummaryReport
	for _, inv := range invoices {
		if period.Contains(inv.IssueDate) {
			r.SalesTax += inv.TotalTax
			r.SalesCount++
		}
	}
	for _, bill := range bills {
		if period.Contains(bill.IssueDate) {
			r.PurchaseTax += bill.TotalTax
			r.PurchaseCount++
		}
	}
	r.SalesTax = calc.Round2(r.SalesTax)
	r.PurchaseTax = calc.Round2(r.PurchaseTax)
	r.NetTax = calc.Round2(r.SalesTax - r.PurchaseTax)
	return r
}

// TaxDetailReport is a per-document tax listing with its grand total.
type TaxDetailReport struct {
	Details  []DocumentDetail
	TotalTax float64
}

// SalesTax lists per-invoice tax within the range.
func SalesTax(invoices []api.SalesInvoice, period Range) TaxDetailReport {
	details := InvoiceDetails(invoices, period)
	var total float64
	for _, d := range details {
		total += d.Tax
	}
	return TaxDetailReport{Details: details, TotalTax: calc.Round2(total)}
}

// PurchaseTax lists per-bill tax within the range.
func PurchaseTax(bills []api.Bill, period Range) TaxDetailReport {
	details := BillDetails(bills, period)
	var total float64
	for _, d := range details {
		total += d.Tax
	}
	return TaxDetailReport{Details: details, TotalTax: calc.Round2(total)}
}

// ContactRow is one row of the contact list report.
type ContactRow struct {
	Name  string
	Type  string
	Email string
	Phone string
}

// ContactList lists all contacts sorted by name. Contacts have no dates,
// so the report ignores any range.
func ContactList(contacts []api.Contact) []ContactRow {
	rows := make([]ContactRow, 0, len(contacts))
	for _, c := range contacts {
		rows = append(rows, ContactRow{
			Name:  c.ContactName,
			Type:  c.Type,
			Email: c.Email,
			Phone: c.Phone,
		})
	}
	sort.Slice(rows, func(i, j int) bool {
		return rows[i].Name < rows[j].Name
	})
	return rows
}
