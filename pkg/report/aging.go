package report

import (
	"math"
	"time"

	"github.com/smallbooks/books-admin/pkg/api"
	"github.com/smallbooks/books-admin/pkg/calc"
)

// AgingEntry is one unpaid document classified by days overdue.
type AgingEntry struct {
	Party       string
	Number      string
	Amount      float64
	DaysOverdue int
}

// AgingTotals holds the per-bucket running sums.
type AgingTotals struct {
	Current    float64
	Days30     float64
	Days60     float64
	Days90     float64
	Days90Plus float64
}

// AgingReport classifies unpaid documents into five mutually exclusive
// buckets by days overdue relative to the reference date: current
// (not yet overdue), 1-30, 31-60, 61-90, and over 90.
type AgingReport struct {
	Current    []AgingEntry
	Days30     []AgingEntry
	Days60     []AgingEntry
	Days90     []AgingEntry
	Days90Plus []AgingEntry
	Totals     AgingTotals
}

// Flatten returns all entries in bucket order for tabular display.
func (r AgingReport) Flatten() []AgingEntry {
	out := make([]AgingEntry, 0,
		len(r.Current)+len(r.Days30)+len(r.Days60)+len(r.Days90)+len(r.Days90Plus))
	out = append(out, r.Current...)
	out = append(out, r.Days30...)
	out = append(out, r.Days60...)
	out = append(out, r.Days90...)
	out = append(out, r.Days90Plus...)
	return out
}

// AgedReceivables buckets open sales invoices by days overdue. Paid and
// cancelled invoices are excluded.
func AgedReceivables(invoices []api.SalesInvoice, today time.Time) AgingReport {
	var r AgingReport
	for _, inv := range invoices {
		if !open(inv.Status) {
			continue
		}
		r.add(AgingEntry{
			Party:       inv.Party().DisplayName(),
			Number:      inv.InvoiceNumber,
			Amount:      inv.GrandTotal,
			DaysOverdue: daysOverdue(today, inv.DueDate.Time),
		})
	}
	r.round()
	return r
}

// AgedPayables buckets open bills by days overdue. Paid and cancelled
// bills are excluded.
func AgedPayables(bills []api.Bill, today time.Time) AgingReport {
	var r AgingReport
	for _, bill := range bills {
		if !open(bill.Status) {
			continue
		}
		r.add(AgingEntry{
			Party:       bill.Party().DisplayName(),
			Number:      bill.BillNumber,
			Amount:      bill.GrandTotal,
			DaysOverdue: daysOverdue(today, bill.DueDate.Time),
		})
	}
	r.round()
	return r
}

// open reports whether a document still counts toward aging.
func open(status string) bool {
	return status != api.StatusPaid && status != api.StatusCancelled
}

// daysOverdue is floor((today - dueDate) / 1 day); zero or negative means
// not yet due.
func daysOverdue(today, due time.Time) int {
	return int(math.Floor(today.Sub(due).Hours() / 24))
}

func (r *AgingReport) add(e AgingEntry) {
	switch {
	case e.DaysOverdue <= 0:
		r.Current = append(r.Current, e)
		r.Totals.Current += e.Amount
	case e.DaysOverdue <= 30:
		r.Days30 = append(r.Days30, e)
		r.Totals.Days30 += e.Amount
	case e.DaysOverdue <= 60:
		r.Days60 = append(r.Days60, e)
		r.Totals.Days60 += e.Amount
	case e.DaysOverdue <= 90:
		r.Days90 = append(r.Days90, e)
		r.Totals.Days90 += e.Amount
	default:
		r.Days90Plus = append(r.Days90Plus, e)
		r.Totals.Days90Plus += e.Amount
	}
}

func (r *AgingReport) round() {
	r.Totals.Current = calc.Round2(r.Totals.Current)
	r.Totals.Days30 = calc.Round2(r.Totals.Days30)
	r.Totals.Days60 = calc.Round2(r.Totals.Days60)
	r.Totals.Days90 = calc.Round2(r.Totals.Days90)
	r.Totals.Days90Plus = calc.Round2(r.Totals.Days90Plus)
}
