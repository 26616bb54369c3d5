package store

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/smallbooks/books-admin/pkg/api"
)

func openTestStore(t *testing.T) *Snapshot {
	t.Helper()

	conn, err := Open(filepath.Join(t.TempDir(), "snapshot.db"))
	if err != nil {
		t.Fatalf("Open() error = %v", err)
	}
	t.Cleanup(func() { conn.Close() })

	return NewSnapshot(conn)
}

func TestOpenCreatesParentDir(t *testing.T) {
	path := filepath.Join(t.TempDir(), "nested", "dir", "snapshot.db")

	conn, err := Open(path)
	if err != nil {
		t.Fatalf("Open() error = %v", err)
	}
	defer conn.Close()

	if conn.Path() != path {
		t.Errorf("Path() = %q, want %q", conn.Path(), path)
	}
	if _, err := os.Stat(path); err != nil {
		t.Errorf("database file not created: %v", err)
	}
}

func testInvoice(id, number, status string, total float64) api.SalesInvoice {
	return api.SalesInvoice{
		ID:            id,
		InvoiceNumber: number,
		Customer:      api.Ref{ID: "c1", Name: "Acme Ltd"},
		IssueDate:     api.Date{Time: time.Date(2026, 3, 10, 0, 0, 0, 0, time.UTC)},
		DueDate:       api.Date{Time: time.Date(2026, 4, 10, 0, 0, 0, 0, time.UTC)},
		GrandTotal:    total,
		Status:        status,
	}
}

func TestSaveAndLoadInvoices(t *testing.T) {
	s := openTestStore(t)

	docs := []api.SalesInvoice{
		testInvoice("inv-1", "INV-0001", api.StatusPaid, 353),
		testInvoice("inv-2", "INV-0002", api.StatusUnpaid, 120.50),
	}
	if err := s.SaveInvoices(docs); err != nil {
		t.Fatalf("SaveInvoices() error = %v", err)
	}

	got, err := s.LoadInvoices()
	if err != nil {
		t.Fatalf("LoadInvoices() error = %v", err)
	}
	if len(got) != 2 {
		t.Fatalf("LoadInvoices() returned %d documents, want 2", len(got))
	}

	byID := map[string]api.SalesInvoice{}
	for _, d := range got {
		byID[d.ID] = d
	}
	inv := byID["inv-1"]
	if inv.InvoiceNumber != "INV-0001" || inv.GrandTotal != 353 || inv.Status != api.StatusPaid {
		t.Errorf("inv-1 round-trip mismatch: %+v", inv)
	}
	if inv.Party().DisplayName() != "Acme Ltd" {
		t.Errorf("Party() = %q, want Acme Ltd", inv.Party().DisplayName())
	}
}

func TestSaveInvoicesUpsert(t *testing.T) {
	s := openTestStore(t)

	if err := s.SaveInvoices([]api.SalesInvoice{testInvoice("inv-1", "INV-0001", api.StatusUnpaid, 100)}); err != nil {
		t.Fatalf("SaveInvoices() error = %v", err)
	}
	if err := s.SaveInvoices([]api.SalesInvoice{testInvoice("inv-1", "INV-0001", api.StatusPaid, 100)}); err != nil {
		t.Fatalf("SaveInvoices() second save error = %v", err)
	}

	got, err := s.LoadInvoices()
	if err != nil {
		t.Fatalf("LoadInvoices() error = %v", err)
	}
	if len(got) != 1 {
		t.Fatalf("LoadInvoices() returned %d documents after upsert, want 1", len(got))
	}
	if got[0].Status != api.StatusPaid {
		t.Errorf("Status = %q, want updated %q", got[0].Status, api.StatusPaid)
	}
}

func TestBillsAndStats(t *testing.T) {
	s := openTestStore(t)

	bills := []api.Bill{
		{
			ID:         "bill-1",
			BillNumber: "BILL-0001",
			Vendor:     api.Ref{ID: "v1", Name: "Paper Co"},
			IssueDate:  api.Date{Time: time.Date(2026, 2, 1, 0, 0, 0, 0, time.UTC)},
			GrandTotal: 75.25,
			Status:     api.StatusUnpaid,
		},
	}
	if err := s.SaveBills(bills); err != nil {
		t.Fatalf("SaveBills() error = %v", err)
	}
	if err := s.RecordPull("bills", len(bills)); err != nil {
		t.Fatalf("RecordPull() error = %v", err)
	}

	got, err := s.LoadBills()
	if err != nil {
		t.Fatalf("LoadBills() error = %v", err)
	}
	if len(got) != 1 || got[0].Party().DisplayName() != "Paper Co" {
		t.Fatalf("LoadBills() = %+v", got)
	}

	stats, err := s.GetStats()
	if err != nil {
		t.Fatalf("GetStats() error = %v", err)
	}
	if stats.TotalBills != 1 || stats.TotalInvoices != 0 {
		t.Errorf("Stats counts = %+v", stats)
	}
	if stats.TotalPulls != 1 {
		t.Errorf("TotalPulls = %d, want 1", stats.TotalPulls)
	}
	if !stats.LastPull.Valid {
		t.Error("LastPull should be set after RecordPull")
	}
}

func TestMetadata(t *testing.T) {
	s := openTestStore(t)

	v, err := s.GetMetadata("last_full_pull")
	if err != nil {
		t.Fatalf("GetMetadata() error = %v", err)
	}
	if v != "" {
		t.Errorf("GetMetadata() on empty store = %q, want empty", v)
	}

	if err := s.SetMetadata("last_full_pull", "2026-03-10"); err != nil {
		t.Fatalf("SetMetadata() error = %v", err)
	}
	if err := s.SetMetadata("last_full_pull", "2026-03-11"); err != nil {
		t.Fatalf("SetMetadata() overwrite error = %v", err)
	}

	v, err = s.GetMetadata("last_full_pull")
	if err != nil {
		t.Fatalf("GetMetadata() error = %v", err)
	}
	if v != "2026-03-11" {
		t.Errorf("GetMetadata() = %q, want 2026-03-11", v)
	}
}
