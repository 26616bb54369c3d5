package rest

import (
	"context"
	"errors"
	"net/http/httptest"
	"path/filepath"
	"testing"

	"github.com/smallbooks/books-admin/internal/emulator/store"
	"github.com/smallbooks/books-admin/pkg/api"
)

func startEmulator(t *testing.T) *api.Client {
	t.Helper()

	st, err := store.New(filepath.Join(t.TempDir(), "emulator.db"))
	if err != nil {
		t.Fatalf("store.New() error = %v", err)
	}
	t.Cleanup(func() { st.Close() })

	if err := Seed(st, "admin123"); err != nil {
		t.Fatalf("Seed() error = %v", err)
	}

	srv := httptest.NewServer(NewRouter(st))
	t.Cleanup(srv.Close)

	return api.NewClient(api.ClientConfig{BaseURL: srv.URL + "/api"})
}

func login(t *testing.T, client *api.Client) {
	t.Helper()

	result, err := client.Login(context.Background(), "admin", "admin123")
	if err != nil {
		t.Fatalf("Login() error = %v", err)
	}
	client.SetToken(result.Token)
}

func TestRequiresToken(t *testing.T) {
	client := startEmulator(t)

	_, err := client.ListContacts(context.Background(), nil)
	var apiErr *api.APIError
	if !errors.As(err, &apiErr) || apiErr.StatusCode != 401 {
		t.Fatalf("ListContacts without token: error = %v, expected 401", err)
	}
}

func TestLoginAndProfile(t *testing.T) {
	client := startEmulator(t)
	login(t, client)

	user, err := client.Profile(context.Background())
	if err != nil {
		t.Fatalf("Profile() error = %v", err)
	}
	if user.Username != "admin" {
		t.Errorf("Username = %q, want admin", user.Username)
	}
}

func TestBadLogin(t *testing.T) {
	client := startEmulator(t)

	_, err := client.Login(context.Background(), "admin", "wrong")
	var apiErr *api.APIError
	if !errors.As(err, &apiErr) || apiErr.StatusCode != 401 {
		t.Fatalf("Login with bad password: error = %v, expected 401", err)
	}
}

func TestContactCRUDAndFilter(t *testing.T) {
	client := startEmulator(t)
	login(t, client)
	ctx := context.Background()

	created, err := client.CreateContact(ctx, api.Contact{ContactName: "New Customer", Type: "Customer"})
	if err != nil {
		t.Fatalf("CreateContact() error = %v", err)
	}
	if created.ID == "" {
		t.Fatal("CreateContact() returned empty ID")
	}

	customers, err := client.ListContacts(ctx, map[string]string{"type": "Customer"})
	if err != nil {
		t.Fatalf("ListContacts() error = %v", err)
	}
	for _, c := range customers {
		if c.Type != "Customer" {
			t.Errorf("type filter leaked %q contact %s", c.Type, c.ContactName)
		}
	}

	if err := client.DeleteContact(ctx, created.ID); err != nil {
		t.Fatalf("DeleteContact() error = %v", err)
	}
	if _, err := client.GetContact(ctx, created.ID); err == nil {
		t.Error("GetContact() after delete should fail")
	}
}

// invoicePayload builds a two-line payload against the seeded catalog.
func invoicePayload(t *testing.T, client *api.Client) (api.DocumentPayload, string) {
	t.Helper()
	ctx := context.Background()

	contacts, err := client.ListContacts(ctx, map[string]string{"type": "Customer"})
	if err != nil || len(contacts) == 0 {
		t.Fatalf("seeded customers unavailable: %v", err)
	}
	items, err := client.ListItems(ctx, nil)
	if err != nil || len(items) == 0 {
		t.Fatalf("seeded items unavailable: %v", err)
	}
	taxTypes, err := client.ListTaxTypes(ctx)
	if err != nil || len(taxTypes) == 0 {
		t.Fatalf("seeded tax types unavailable: %v", err)
	}

	var standard api.TaxType
	for _, tt := range taxTypes {
		if tt.TaxPercentage == 10 {
			standard = tt
		}
	}

	return api.DocumentPayload{
		Contact:         contacts[0].ID,
		IssueDate:       "2026-03-01",
		DueDate:         "2026-03-31",
		AmountTreatment: "Excluding",
		LineItems: []api.LinePayload{
			{Item: items[0].ID, Qty: 2, Price: 100, Discount: 10, TaxRate: standard.ID},
			{Item: items[0].ID, Qty: 1, Price: 50},
		},
	}, contacts[0].ContactName
}

func TestInvoiceCreateRecomputesTotals(t *testing.T) {
	client := startEmulator(t)
	login(t, client)
	ctx := context.Background()

	payload, contactName := invoicePayload(t, client)
	inv, err := client.CreateSalesInvoice(ctx, payload)
	if err != nil {
		t.Fatalf("CreateSalesInvoice() error = %v", err)
	}

	// 2x100 -10% = 180 plus 50, tax 10% on 180.
	if inv.Subtotal != 230 {
		t.Errorf("Subtotal = %v, want 230", inv.Subtotal)
	}
	if inv.TotalTax != 18 {
		t.Errorf("TotalTax = %v, want 18", inv.TotalTax)
	}
	if inv.GrandTotal != 248 {
		t.Errorf("GrandTotal = %v, want 248", inv.GrandTotal)
	}
	if inv.Status != api.StatusDraft {
		t.Errorf("Status = %q, want Draft default", inv.Status)
	}
	if inv.InvoiceNumber == "" {
		t.Error("InvoiceNumber not assigned")
	}
	if inv.Party().DisplayName() != contactName {
		t.Errorf("Party() = %q, want %q", inv.Party().DisplayName(), contactName)
	}
	if len(inv.LineItems) != 2 {
		t.Fatalf("LineItems = %d, want 2", len(inv.LineItems))
	}
	if inv.LineItems[0].Amount != 180 || inv.LineItems[0].TaxAmount != 18 {
		t.Errorf("line 0 amounts = %v/%v, want 180/18",
			inv.LineItems[0].Amount, inv.LineItems[0].TaxAmount)
	}
}

func TestInvoiceStatusPatchAndFilter(t *testing.T) {
	client := startEmulator(t)
	login(t, client)
	ctx := context.Background()

	payload, _ := invoicePayload(t, client)
	inv, err := client.CreateSalesInvoice(ctx, payload)
	if err != nil {
		t.Fatalf("CreateSalesInvoice() error = %v", err)
	}

	updated, err := client.UpdateSalesInvoice(ctx, inv.ID, api.DocumentPayload{Status: api.StatusPaid})
	if err != nil {
		t.Fatalf("UpdateSalesInvoice() error = %v", err)
	}
	if updated.Status != api.StatusPaid {
		t.Errorf("Status after patch = %q, want Paid", updated.Status)
	}
	if updated.GrandTotal != inv.GrandTotal {
		t.Errorf("status patch changed GrandTotal %v -> %v", inv.GrandTotal, updated.GrandTotal)
	}

	paid, err := client.ListSalesInvoices(ctx, map[string]string{"status": api.StatusPaid})
	if err != nil {
		t.Fatalf("ListSalesInvoices() error = %v", err)
	}
	if len(paid) != 1 || paid[0].ID != inv.ID {
		t.Errorf("status filter returned %d invoices", len(paid))
	}

	drafts, err := client.ListSalesInvoices(ctx, map[string]string{"status": api.StatusDraft})
	if err != nil {
		t.Fatalf("ListSalesInvoices() error = %v", err)
	}
	if len(drafts) != 0 {
		t.Errorf("draft filter returned %d invoices, want 0", len(drafts))
	}
}

func TestInvoiceCreateRejectsUnknownRefs(t *testing.T) {
	client := startEmulator(t)
	login(t, client)
	ctx := context.Background()

	payload, _ := invoicePayload(t, client)
	payload.LineItems[0].Item = "item-999999"

	_, err := client.CreateSalesInvoice(ctx, payload)
	var apiErr *api.APIError
	if !errors.As(err, &apiErr) || apiErr.StatusCode != 400 {
		t.Fatalf("create with unknown item: error = %v, expected 400", err)
	}
}

func TestBillRoundTrip(t *testing.T) {
	client := startEmulator(t)
	login(t, client)
	ctx := context.Background()

	suppliers, err := client.ListContacts(ctx, map[string]string{"type": "Supplier"})
	if err != nil || len(suppliers) == 0 {
		t.Fatalf("seeded suppliers unavailable: %v", err)
	}
	items, err := client.ListItems(ctx, nil)
	if err != nil {
		t.Fatalf("ListItems() error = %v", err)
	}

	bill, err := client.CreateBill(ctx, api.DocumentPayload{
		Contact:         suppliers[0].ID,
		IssueDate:       "2026-02-01",
		DueDate:         "2026-03-01",
		AmountTreatment: "No Tax",
		LineItems: []api.LinePayload{
			{Item: items[0].ID, Qty: 4, Price: 7.80},
		},
	})
	if err != nil {
		t.Fatalf("CreateBill() error = %v", err)
	}
	if bill.GrandTotal != 31.2 {
		t.Errorf("GrandTotal = %v, want 31.2", bill.GrandTotal)
	}
	if bill.Party().DisplayName() != suppliers[0].ContactName {
		t.Errorf("Party() = %q", bill.Party().DisplayName())
	}

	if err := client.DeleteBill(ctx, bill.ID); err != nil {
		t.Fatalf("DeleteBill() error = %v", err)
	}
}

func TestCatalogGetAndDelete(t *testing.T) {
	client := startEmulator(t)
	login(t, client)
	ctx := context.Background()

	taxTypes, err := client.ListTaxTypes(ctx)
	if err != nil || len(taxTypes) == 0 {
		t.Fatalf("seeded tax types unavailable: %v", err)
	}
	tt, err := client.GetTaxType(ctx, taxTypes[0].ID)
	if err != nil {
		t.Fatalf("GetTaxType() error = %v", err)
	}
	if tt.Name != taxTypes[0].Name || tt.TaxPercentage != taxTypes[0].TaxPercentage {
		t.Errorf("GetTaxType() = %+v, want %+v", tt, taxTypes[0])
	}
	if err := client.DeleteTaxType(ctx, taxTypes[0].ID); err != nil {
		t.Fatalf("DeleteTaxType() error = %v", err)
	}
	remaining, err := client.ListTaxTypes(ctx)
	if err != nil {
		t.Fatalf("ListTaxTypes() error = %v", err)
	}
	if len(remaining) != len(taxTypes)-1 {
		t.Errorf("tax types after delete = %d, want %d", len(remaining), len(taxTypes)-1)
	}

	accounts, err := client.ListAccounts(ctx, nil)
	if err != nil || len(accounts) == 0 {
		t.Fatalf("seeded accounts unavailable: %v", err)
	}
	acct, err := client.GetAccount(ctx, accounts[0].ID)
	if err != nil {
		t.Fatalf("GetAccount() error = %v", err)
	}
	if acct.Code != accounts[0].Code || acct.Name != accounts[0].Name {
		t.Errorf("GetAccount() = %s %s, want %s %s", acct.Code, acct.Name, accounts[0].Code, accounts[0].Name)
	}
	if err := client.DeleteAccount(ctx, accounts[0].ID); err != nil {
		t.Fatalf("DeleteAccount() error = %v", err)
	}

	projects, err := client.ListProjects(ctx)
	if err != nil || len(projects) == 0 {
		t.Fatalf("seeded projects unavailable: %v", err)
	}
	proj, err := client.GetProject(ctx, projects[0].ID)
	if err != nil {
		t.Fatalf("GetProject() error = %v", err)
	}
	if proj.Name != projects[0].Name {
		t.Errorf("GetProject() = %q, want %q", proj.Name, projects[0].Name)
	}
	if err := client.DeleteProject(ctx, projects[0].ID); err != nil {
		t.Fatalf("DeleteProject() error = %v", err)
	}

	items, err := client.ListItems(ctx, nil)
	if err != nil || len(items) == 0 {
		t.Fatalf("seeded items unavailable: %v", err)
	}
	if err := client.DeleteItem(ctx, items[0].ID); err != nil {
		t.Fatalf("DeleteItem() error = %v", err)
	}
	var apiErr *api.APIError
	if _, err := client.GetItem(ctx, items[0].ID); !errors.As(err, &apiErr) || apiErr.StatusCode != 404 {
		t.Errorf("GetItem() after delete: error = %v, expected 404", err)
	}
}

func TestChangePassword(t *testing.T) {
	client := startEmulator(t)
	login(t, client)
	ctx := context.Background()

	if err := client.ChangePassword(ctx, "admin123", "newpass456"); err != nil {
		t.Fatalf("ChangePassword() error = %v", err)
	}

	if _, err := client.Login(ctx, "admin", "admin123"); err == nil {
		t.Error("old password still accepted")
	}
	if _, err := client.Login(ctx, "admin", "newpass456"); err != nil {
		t.Errorf("new password rejected: %v", err)
	}
}
