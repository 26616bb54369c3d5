package store

import (
	"errors"
	"path/filepath"
	"testing"
)

type record struct {
	ID   string `json:"_id"`
	Name string `json:"name"`
}

func openTestStore(t *testing.T) *Store {
	t.Helper()
	st, err := New(filepath.Join(t.TempDir(), "test.db"))
	if err != nil {
		t.Fatalf("New() error = %v", err)
	}
	t.Cleanup(func() { st.Close() })
	return st
}

func TestPutGetDelete(t *testing.T) {
	st := openTestStore(t)

	want := record{ID: "contact-000001", Name: "Acme Ltd"}
	if err := st.Put(BucketContacts, want.ID, want); err != nil {
		t.Fatalf("Put() error = %v", err)
	}

	var got record
	if err := st.Get(BucketContacts, want.ID, &got); err != nil {
		t.Fatalf("Get() error = %v", err)
	}
	if got != want {
		t.Errorf("Get() = %+v, want %+v", got, want)
	}

	if err := st.Delete(BucketContacts, want.ID); err != nil {
		t.Fatalf("Delete() error = %v", err)
	}
	if err := st.Get(BucketContacts, want.ID, &got); !errors.Is(err, ErrNotFound) {
		t.Errorf("Get() after delete error = %v, want ErrNotFound", err)
	}
	if err := st.Delete(BucketContacts, want.ID); !errors.Is(err, ErrNotFound) {
		t.Errorf("Delete() of missing record error = %v, want ErrNotFound", err)
	}
}

func TestNextIDSequence(t *testing.T) {
	st := openTestStore(t)

	first, err := st.NextID(BucketInvoices, "inv")
	if err != nil {
		t.Fatalf("NextID() error = %v", err)
	}
	second, err := st.NextID(BucketInvoices, "inv")
	if err != nil {
		t.Fatalf("NextID() error = %v", err)
	}

	if first != "inv-000001" {
		t.Errorf("first ID = %q, want inv-000001", first)
	}
	if second != "inv-000002" {
		t.Errorf("second ID = %q, want inv-000002", second)
	}

	// Sequences are per bucket.
	other, err := st.NextID(BucketBills, "bill")
	if err != nil {
		t.Fatalf("NextID() error = %v", err)
	}
	if other != "bill-000001" {
		t.Errorf("other bucket ID = %q, want bill-000001", other)
	}
}

func TestListAndCount(t *testing.T) {
	st := openTestStore(t)

	for _, r := range []record{
		{ID: "item-000001", Name: "Consulting Hour"},
		{ID: "item-000002", Name: "Printer Paper"},
	} {
		if err := st.Put(BucketItems, r.ID, r); err != nil {
			t.Fatalf("Put() error = %v", err)
		}
	}

	all, err := st.List(BucketItems, nil)
	if err != nil {
		t.Fatalf("List() error = %v", err)
	}
	if len(all) != 2 {
		t.Errorf("List() returned %d records, want 2", len(all))
	}

	n, err := st.Count(BucketItems)
	if err != nil {
		t.Fatalf("Count() error = %v", err)
	}
	if n != 2 {
		t.Errorf("Count() = %d, want 2", n)
	}
}

func TestStringKeys(t *testing.T) {
	st := openTestStore(t)

	if err := st.PutString(BucketTokens, "tok-abc", "admin"); err != nil {
		t.Fatalf("PutString() error = %v", err)
	}
	got, err := st.GetString(BucketTokens, "tok-abc")
	if err != nil {
		t.Fatalf("GetString() error = %v", err)
	}
	if got != "admin" {
		t.Errorf("GetString() = %q, want admin", got)
	}

	if err := st.DeleteString(BucketTokens, "tok-abc"); err != nil {
		t.Fatalf("DeleteString() error = %v", err)
	}
	if _, err := st.GetString(BucketTokens, "tok-abc"); !errors.Is(err, ErrNotFound) {
		t.Errorf("GetString() after delete error = %v, want ErrNotFound", err)
	}
}
