package api

import (
	"context"
	"errors"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
)

func TestListSalesInvoicesEnveloped(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.URL.Path != "/sales-invoices" {
			t.Errorf("unexpected path %s", r.URL.Path)
		}
		if got := r.Header.Get("Authorization"); got != "Bearer tok123" {
			t.Errorf("Authorization = %q, expected bearer token", got)
		}
		w.Header().Set("Content-Type", "application/json")
		w.Write([]byte(`{"success":true,"data":[
			{"_id":"inv1","invoiceNumber":"INV-001","customer":{"_id":"c1","contactName":"Acme"},
			 "issueDate":"2026-01-15","dueDate":"2026-02-14","grandTotal":353,"status":"Sent"}
		]}`))
	}))
	defer server.Close()

	client := NewClient(ClientConfig{BaseURL: server.URL, Token: "tok123"})
	invoices, err := client.ListSalesInvoices(context.Background(), nil)
	if err != nil {
		t.Fatalf("ListSalesInvoices() error = %v", err)
	}
	if len(invoices) != 1 {
		t.Fatalf("expected 1 invoice, got %d", len(invoices))
	}

	inv := invoices[0]
	if inv.ID != "inv1" || inv.InvoiceNumber != "INV-001" {
		t.Errorf("unexpected invoice: %+v", inv)
	}
	if inv.Party().Name != "Acme" {
		t.Errorf("Party().Name = %q, expected Acme", inv.Party().Name)
	}
	if inv.IssueDate.Format("2006-01-02") != "2026-01-15" {
		t.Errorf("IssueDate = %v", inv.IssueDate)
	}
}

func TestListBillsBarePayload(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Write([]byte(`[{"_id":"b1","billNumber":"BILL-001","vendor":"v1","grandTotal":120.5,"status":"Paid"}]`))
	}))
	defer server.Close()

	client := NewClient(ClientConfig{BaseURL: server.URL})
	bills, err := client.ListBills(context.Background(), nil)
	if err != nil {
		t.Fatalf("ListBills() error = %v", err)
	}
	if len(bills) != 1 || bills[0].Party().ID != "v1" {
		t.Errorf("unexpected bills: %+v", bills)
	}
}

func TestErrorUsesBackendMessage(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusBadRequest)
		w.Write([]byte(`{"success":false,"message":"Cannot delete account type in use"}`))
	}))
	defer server.Close()

	client := NewClient(ClientConfig{BaseURL: server.URL})
	err := client.DeleteAccountType(context.Background(), "at1")
	if err == nil {
		t.Fatal("expected error")
	}

	var apiErr *APIError
	if !errors.As(err, &apiErr) {
		t.Fatalf("expected *APIError, got %T", err)
	}
	if apiErr.StatusCode != http.StatusBadRequest {
		t.Errorf("StatusCode = %d", apiErr.StatusCode)
	}
	if apiErr.Message != "Cannot delete account type in use" {
		t.Errorf("Message = %q", apiErr.Message)
	}
}

func TestErrorWithoutMessageFallsBack(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusInternalServerError)
		w.Write([]byte(`<html>boom</html>`))
	}))
	defer server.Close()

	client := NewClient(ClientConfig{BaseURL: server.URL})
	err := client.DeleteContact(context.Background(), "c1")
	if err == nil {
		t.Fatal("expected error")
	}
	if err.Error() != "request failed (status 500)" {
		t.Errorf("Error() = %q", err.Error())
	}
}

func TestListContactsPassesFilter(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if got := r.URL.Query().Get("type"); got != "Customer" {
			t.Errorf("type query = %q, expected Customer", got)
		}
		w.Write([]byte(`{"success":true,"data":[]}`))
	}))
	defer server.Close()

	client := NewClient(ClientConfig{BaseURL: server.URL})
	if _, err := client.ListContacts(context.Background(), map[string]string{"type": "Customer"}); err != nil {
		t.Fatalf("ListContacts() error = %v", err)
	}
}

func TestCreateSalesInvoiceSendsRawLines(t *testing.T) {
	var gotBody []byte
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.Method != http.MethodPost {
			t.Errorf("method = %s", r.Method)
		}
		buf := make([]byte, r.ContentLength)
		r.Body.Read(buf)
		gotBody = buf
		w.Write([]byte(`{"success":true,"data":{"_id":"inv9","invoiceNumber":"INV-009","status":"Draft"}}`))
	}))
	defer server.Close()

	client := NewClient(ClientConfig{BaseURL: server.URL})
	inv, err := client.CreateSalesInvoice(context.Background(), DocumentPayload{
		Contact:         "c1",
		IssueDate:       "2026-03-01",
		DueDate:         "2026-03-31",
		AmountTreatment: "Excluding",
		LineItems:       []LinePayload{{Item: "i1", Qty: 2, Price: 100, Discount: 10, TaxRate: "t1"}},
	})
	if err != nil {
		t.Fatalf("CreateSalesInvoice() error = %v", err)
	}
	if inv.ID != "inv9" {
		t.Errorf("ID = %q", inv.ID)
	}
	for _, derived := range []string{`"subtotal"`, `"grandTotal"`, `"taxAmount"`} {
		if strings.Contains(string(gotBody), derived) {
			t.Errorf("payload should not carry derived field %s: %s", derived, gotBody)
		}
	}
}
