// Package report implements the dashboard and reporting aggregations. All
// functions are pure reducers over document lists fetched in full; they
// never touch the network.
package report

import (
	"fmt"
	"time"

	"github.com/smallbooks/books-admin/pkg/api"
	"github.com/smallbooks/books-admin/pkg/calc"
)

// Window selects the cash-flow bucketing mode.
type Window string

const (
	WindowWeek   Window = "week"   // last 7 calendar days, one bucket per day
	WindowMonth  Window = "month"  // last 30 days, sparse-sampled
	WindowYear   Window = "year"   // last 12 calendar months
	WindowCustom Window = "custom" // arbitrary range, thinned for long spans
)

// customSampleTarget bounds the point count for long custom ranges.
const customSampleTarget = 10

// CashFlowPoint is one chart point: paid-invoice income vs paid-bill
// expense for a bucket. A bucket with no matching documents reports zero,
// not absence.
type CashFlowPoint struct {
	Label   string
	Income  float64
	Expense float64
}

// CashFlow buckets paid invoices (income) and paid bills (expense) by
// issue date. Output is chronological, oldest first. start and end are
// only consulted for WindowCustom.
func CashFlow(invoices []api.SalesInvoice, bills []api.Bill, window Window, now, start, end time.Time) ([]CashFlowPoint, error) {
	switch window {
	case WindowWeek:
		return dailyBuckets(invoices, bills, now.AddDate(0, 0, -6), now, 1), nil
	case WindowMonth:
		return dailyBuckets(invoices, bills, now.AddDate(0, 0, -29), now, 5), nil
	case WindowYear:
		return monthlyBuckets(invoices, bills, now), nil
	case WindowCustom:
		if start.IsZero() || end.IsZero() || end.Before(start) {
			return nil, fmt.Errorf("custom window needs a valid start and end date")
		}
		days := daysBetween(start, end) + 1
		step := 1
		if days > customSampleTarget {
			step = (days + customSampleTarget - 1) / customSampleTarget
		}
		return dailyBuckets(invoices, bills, start, end, step), nil
	}
	return nil, fmt.Errorf("unknown window: %q", window)
}

// dailyBuckets emits one bucket per day from start to end inclusive.
// With step > 1 a bucket is only emitted when its oldest-first index is a
// multiple of step or it has nonzero activity, so sparse sampling never
// hides real data.
func dailyBuckets(invoices []api.SalesInvoice, bills []api.Bill, start, end time.Time, step int) []CashFlowPoint {
	var points []CashFlowPoint
	idx := 0
	for day := startOfDay(start); !day.After(end); day = day.AddDate(0, 0, 1) {
		var income, expense float64
		for _, inv := range invoices {
			if inv.Status == api.StatusPaid && sameDay(inv.IssueDate.Time, day) {
				income += inv.GrandTotal
			}
		}
		for _, bill := range bills {
			if bill.Status == api.StatusPaid && sameDay(bill.IssueDate.Time, day) {
				expense += bill.GrandTotal
			}
		}
		if idx%step == 0 || income != 0 || expense != 0 {
			points = append(points, CashFlowPoint{
				Label:   day.Format("Jan 02"),
				Income:  calc.Round2(income),
				Expense: calc.Round2(expense),
			})
		}
		idx++
	}
	return points
}

// monthlyBuckets emits the last 12 calendar months, matching documents by
// (month, year) of the issue date rather than a rolling window.
func monthlyBuckets(invoices []api.SalesInvoice, bills []api.Bill, now time.Time) []CashFlowPoint {
	points := make([]CashFlowPoint, 0, 12)
	for i := 11; i >= 0; i-- {
		month := time.Date(now.Year(), now.Month(), 1, 0, 0, 0, 0, now.Location()).AddDate(0, -i, 0)

		var income, expense float64
		for _, inv := range invoices {
			if inv.Status == api.StatusPaid && sameMonth(inv.IssueDate.Time, month) {
				income += inv.GrandTotal
			}
		}
		for _, bill := range bills {
			if bill.Status == api.StatusPaid && sameMonth(bill.IssueDate.Time, month) {
				expense += bill.GrandTotal
			}
		}

		points = append(points, CashFlowPoint{
			Label:   month.Format("Jan 2006"),
			Income:  calc.Round2(income),
			Expense: calc.Round2(expense),
		})
	}
	return points
}

func startOfDay(t time.Time) time.Time {
	return time.Date(t.Year(), t.Month(), t.Day(), 0, 0, 0, 0, t.Location())
}

func sameDay(a, b time.Time) bool {
	return a.Year() == b.Year() && a.Month() == b.Month() && a.Day() == b.Day()
}

func sameMonth(a, b time.Time) bool {
	return a.Year() == b.Year() && a.Month() == b.Month()
}

func daysBetween(start, end time.Time) int {
	return int(startOfDay(end).Sub(startOfDay(start)).Hours() / 24)
}
