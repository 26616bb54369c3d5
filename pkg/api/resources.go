package api

import (
	"context"
	"net/http"
)

// Sales invoices.

func (c *Client) ListSalesInvoices(ctx context.Context, params map[string]string) ([]SalesInvoice, error) {
	var out []SalesInvoice
	if err := c.do(ctx, http.MethodGet, "/sales-invoices", query(params), nil, &out); err != nil {
		return nil, err
	}
	return out, nil
}

func (c *Client) GetSalesInvoice(ctx context.Context, id string) (*SalesInvoice, error) {
	var out SalesInvoice
	if err := c.do(ctx, http.MethodGet, "/sales-invoices/"+id, nil, nil, &out); err != nil {
		return nil, err
	}
	return &out, nil
}

func (c *Client) CreateSalesInvoice(ctx context.Context, payload DocumentPayload) (*SalesInvoice, error) {
	var out SalesInvoice
	if err := c.do(ctx, http.MethodPost, "/sales-invoices", nil, payload, &out); err != nil {
		return nil, err
	}
	return &out, nil
}

func (c *Client) UpdateSalesInvoice(ctx context.Context, id string, payload DocumentPayload) (*SalesInvoice, error) {
	var out SalesInvoice
	if err := c.do(ctx, http.MethodPatch, "/sales-invoices/"+id, nil, payload, &out); err != nil {
		return nil, err
	}
	return &out, nil
}

func (c *Client) DeleteSalesInvoice(ctx context.Context, id string) error {
	return c.do(ctx, http.MethodDelete, "/sales-invoices/"+id, nil, nil, nil)
}

// Quotations.

func (c *Client) ListQuotations(ctx context.Context, params map[string]string) ([]Quotation, error) {
	var out []Quotation
	if err := c.do(ctx, http.MethodGet, "/quotations", query(params), nil, &out); err != nil {
		return nil, err
	}
	return out, nil
}

func (c *Client) GetQuotation(ctx context.Context, id string) (*Quotation, error) {
	var out Quotation
	if err := c.do(ctx, http.MethodGet, "/quotations/"+id, nil, nil, &out); err != nil {
		return nil, err
	}
	return &out, nil
}

func (c *Client) CreateQuotation(ctx context.Context, payload DocumentPayload) (*Quotation, error) {
	var out Quotation
	if err := c.do(ctx, http.MethodPost, "/quotations", nil, payload, &out); err != nil {
		return nil, err
	}
	return &out, nil
}

func (c *Client) UpdateQuotation(ctx context.Context, id string, payload DocumentPayload) (*Quotation, error) {
	var out Quotation
	if err := c.do(ctx, http.MethodPatch, "/quotations/"+id, nil, payload, &out); err != nil {
		return nil, err
	}
	return &out, nil
}

func (c *Client) DeleteQuotation(ctx context.Context, id string) error {
	return c.do(ctx, http.MethodDelete, "/quotations/"+id, nil, nil, nil)
}

// Purchase orders.

func (c *Client) ListPurchaseOrders(ctx context.Context, params map[string]string) ([]PurchaseOrder, error) {
	var out []PurchaseOrder
	if err := c.do(ctx, http.MethodGet, "/purchase-orders", query(params), nil, &out); err != nil {
		return nil, err
	}
	return out, nil
}

func (c *Client) GetPurchaseOrder(ctx context.Context, id string) (*PurchaseOrder, error) {
	var out PurchaseOrder
	if err := c.do(ctx, http.MethodGet, "/purchase-orders/"+id, nil, nil, &out); err != nil {
		return nil, err
	}
	return &out, nil
}

func (c *Client) CreatePurchaseOrder(ctx context.Context, payload DocumentPayload) (*PurchaseOrder, error) {
	var out PurchaseOrder
	if err := c.do(ctx, http.MethodPost, "/purchase-orders", nil, payload, &out); err != nil {
		return nil, err
	}
	return &out, nil
}

func (c *Client) UpdatePurchaseOrder(ctx context.Context, id string, payload DocumentPayload) (*PurchaseOrder, error) {
	var out PurchaseOrder
	if err := c.do(ctx, http.MethodPatch, "/purchase-orders/"+id, nil, payload, &out); err != nil {
		return nil, err
	}
	return &out, nil
}

func (c *Client) DeletePurchaseOrder(ctx context.Context, id string) error {
	return c.do(ctx, http.MethodDelete, "/purchase-orders/"+id, nil, nil, nil)
}

// Bills.

func (c *Client) ListBills(ctx context.Context, params map[string]string) ([]Bill, error) {
	var out []Bill
	if err := c.do(ctx, http.MethodGet, "/bills", query(params), nil, &out); err != nil {
		return nil, err
	}
	return out, nil
}

func (c *Client) GetBill(ctx context.Context, id string) (*Bill, error) {
	var out Bill
	if err := c.do(ctx, http.MethodGet, "/bills/"+id, nil, nil, &out); err != nil {
		return nil, err
	}
	return &out, nil
}

func (c *Client) CreateBill(ctx context.Context, payload DocumentPayload) (*Bill, error) {
	var out Bill
	if err := c.do(ctx, http.MethodPost, "/bills", nil, payload, &out); err != nil {
		return nil, err
	}
	return &out, nil
}

func (c *Client) UpdateBill(ctx context.Context, id string, payload DocumentPayload) (*Bill, error) {
	var out Bill
	if err := c.do(ctx, http.MethodPatch, "/bills/"+id, nil, payload, &out); err != nil {
		return nil, err
	}
	return &out, nil
}

func (c *Client) DeleteBill(ctx context.Context, id string) error {
	return c.do(ctx, http.MethodDelete, "/bills/"+id, nil, nil, nil)
}

// Contacts. List accepts filters such as {"type": "Customer"}.

func (c *Client) ListContacts(ctx context.Context, params map[string]string) ([]Contact, error) {
	var out []Contact
	if err := c.do(ctx, http.MethodGet, "/contacts", query(params), nil, &out); err != nil {
		return nil, err
	}
	return out, nil
}

func (c *Client) GetContact(ctx context.Context, id string) (*Contact, error) {
	var out Contact
	if err := c.do(ctx, http.MethodGet, "/contacts/"+id, nil, nil, &out); err != nil {
		return nil, err
	}
	return &out, nil
}

func (c *Client) CreateContact(ctx context.Context, contact Contact) (*Contact, error) {
	var out Contact
	if err := c.do(ctx, http.MethodPost, "/contacts", nil, contact, &out); err != nil {
		return nil, err
	}
	return &out, nil
}

func (c *Client) UpdateContact(ctx context.Context, id string, contact Contact) (*Contact, error) {
	var out Contact
	if err := c.do(ctx, http.MethodPatch, "/contacts/"+id, nil, contact, &out); err != nil {
		return nil, err
	}
	return &out, nil
}

func (c *Client) DeleteContact(ctx context.Context, id string) error {
	return c.do(ctx, http.MethodDelete, "/contacts/"+id, nil, nil, nil)
}

// Items.

func (c *Client) ListItems(ctx context.Context, params map[string]string) ([]Item, error) {
	var out []Item
	if err := c.do(ctx, http.MethodGet, "/items", query(params), nil, &out); err != nil {
		return nil, err
	}
	return out, nil
}

func (c *Client) GetItem(ctx context.Context, id string) (*Item, error) {
	var out Item
	if err := c.do(ctx, http.MethodGet, "/items/"+id, nil, nil, &out); err != nil {
		return nil, err
	}
	return &out, nil
}

// GetItemSaleDetails fetches the sale-side defaults for an item, used to
// auto-populate a line when the item is selected.
func (c *Client) GetItemSaleDetails(ctx context.Context, id string) (*Item, error) {
	var out Item
	if err := c.do(ctx, http.MethodGet, "/items/"+id+"/sale-details", nil, nil, &out); err != nil {
		return nil, err
	}
	return &out, nil
}

func (c *Client) CreateItem(ctx context.Context, item Item) (*Item, error) {
	var out Item
	if err := c.do(ctx, http.MethodPost, "/items", nil, item, &out); err != nil {
		return nil, err
	}
	return &out, nil
}

func (c *Client) UpdateItem(ctx context.Context, id string, item Item) (*Item, error) {
	var out Item
	if err := c.do(ctx, http.MethodPatch, "/items/"+id, nil, item, &out); err != nil {
		return nil, err
	}
	return &out, nil
}

func (c *Client) DeleteItem(ctx context.Context, id string) error {
	return c.do(ctx, http.MethodDelete, "/items/"+id, nil, nil, nil)
}

// Chart of accounts.

func (c *Client) ListAccounts(ctx context.Context, params map[string]string) ([]Account, error) {
	var out []Account
	if err := c.do(ctx, http.MethodGet, "/chart-of-accounts", query(params), nil, &out); err != nil {
		return nil, err
	}
	return out, nil
}

func (c *Client) GetAccount(ctx context.Context, id string) (*Account, error) {
	var out Account
	if err := c.do(ctx, http.MethodGet, "/chart-of-accounts/"+id, nil, nil, &out); err != nil {
		return nil, err
	}
	return &out, nil
}

func (c *Client) CreateAccount(ctx context.Context, account Account) (*Account, error) {
	var out Account
	if err := c.do(ctx, http.MethodPost, "/chart-of-accounts", nil, account, &out); err != nil {
		return nil, err
	}
	return &out, nil
}

func (c *Client) UpdateAccount(ctx context.Context, id string, account Account) (*Account, error) {
	var out Account
	if err := c.do(ctx, http.MethodPatch, "/chart-of-accounts/"+id, nil, account, &out); err != nil {
		return nil, err
	}
	return &out, nil
}

func (c *Client) DeleteAccount(ctx context.Context, id string) error {
	return c.do(ctx, http.MethodDelete, "/chart-of-accounts/"+id, nil, nil, nil)
}

// Account types.

func (c *Client) ListAccountTypes(ctx context.Context) ([]AccountType, error) {
	var out []AccountType
	if err := c.do(ctx, http.MethodGet, "/account-types", nil, nil, &out); err != nil {
		return nil, err
	}
	return out, nil
}

func (c *Client) CreateAccountType(ctx context.Context, at AccountType) (*AccountType, error) {
	var out AccountType
	if err := c.do(ctx, http.MethodPost, "/account-types", nil, at, &out); err != nil {
		return nil, err
	}
	return &out, nil
}

func (c *Client) DeleteAccountType(ctx context.Context, id string) error {
	return c.do(ctx, http.MethodDelete, "/account-types/"+id, nil, nil, nil)
}

// Bank accounts.

func (c *Client) ListBankAccounts(ctx context.Context) ([]BankAccount, error) {
	var out []BankAccount
	if err := c.do(ctx, http.MethodGet, "/bank-accounts", nil, nil, &out); err != nil {
		return nil, err
	}
	return out, nil
}

func (c *Client) GetBankAccount(ctx context.Context, id string) (*BankAccount, error) {
	var out BankAccount
	if err := c.do(ctx, http.MethodGet, "/bank-accounts/"+id, nil, nil, &out); err != nil {
		return nil, err
	}
	return &out, nil
}

func (c *Client) CreateBankAccount(ctx context.Context, ba BankAccount) (*BankAccount, error) {
	var out BankAccount
	if err := c.do(ctx, http.MethodPost, "/bank-accounts", nil, ba, &out); err != nil {
		return nil, err
	}
	return &out, nil
}

func (c *Client) UpdateBankAccount(ctx context.Context, id string, ba BankAccount) (*BankAccount, error) {
	var out BankAccount
	if err := c.do(ctx, http.MethodPatch, "/bank-accounts/"+id, nil, ba, &out); err != nil {
		return nil, err
	}
	return &out, nil
}

func (c *Client) DeleteBankAccount(ctx context.Context, id string) error {
	return c.do(ctx, http.MethodDelete, "/bank-accounts/"+id, nil, nil, nil)
}

// Bank account types.

func (c *Client) ListBankAccountTypes(ctx context.Context) ([]BankAccountType, error) {
	var out []BankAccountType
	if err := c.do(ctx, http.MethodGet, "/bank-account-types", nil, nil, &out); err != nil {
		return nil, err
	}
	return out, nil
}

func (c *Client) CreateBankAccountType(ctx context.Context, bt BankAccountType) (*BankAccountType, error) {
	var out BankAccountType
	if err := c.do(ctx, http.MethodPost, "/bank-account-types", nil, bt, &out); err != nil {
		return nil, err
	}
	return &out, nil
}

func (c *Client) DeleteBankAccountType(ctx context.Context, id string) error {
	return c.do(ctx, http.MethodDelete, "/bank-account-types/"+id, nil, nil, nil)
}

// Tax types.

func (c *Client) ListTaxTypes(ctx context.Context) ([]TaxType, error) {
	var out []TaxType
	if err := c.do(ctx, http.MethodGet, "/tax-types", nil, nil, &out); err != nil {
		return nil, err
	}
	return out, nil
}

func (c *Client) GetTaxType(ctx context.Context, id string) (*TaxType, error) {
	var out TaxType
	if err := c.do(ctx, http.MethodGet, "/tax-types/"+id, nil, nil, &out); err != nil {
		return nil, err
	}
	return &out, nil
}

func (c *Client) CreateTaxType(ctx context.Context, tt TaxType) (*TaxType, error) {
	var out TaxType
	if err := c.do(ctx, http.MethodPost, "/tax-types", nil, tt, &out); err != nil {
		return nil, err
	}
	return &out, nil
}

func (c *Client) DeleteTaxType(ctx context.Context, id string) error {
	return c.do(ctx, http.MethodDelete, "/tax-types/"+id, nil, nil, nil)
}

// TaxRateTable fetches all tax types and returns a rate lookup keyed by
// tax type ID, ready for calc.ResolveTaxPercents.
func (c *Client) TaxRateTable(ctx context.Context) (map[string]float64, error) {
	types, err := c.ListTaxTypes(ctx)
	if err != nil {
		return nil, err
	}
	rates := make(map[string]float64, len(types))
	for _, tt := range types {
		rates[tt.ID] = tt.TaxPercentage
	}
	return rates, nil
}

// Projects.

func (c *Client) ListProjects(ctx context.Context) ([]Project, error) {
	var out []Project
	if err := c.do(ctx, http.MethodGet, "/projects", nil, nil, &out); err != nil {
		return nil, err
	}
	return out, nil
}

func (c *Client) GetProject(ctx context.Context, id string) (*Project, error) {
	var out Project
	if err := c.do(ctx, http.MethodGet, "/projects/"+id, nil, nil, &out); err != nil {
		return nil, err
	}
	return &out, nil
}

func (c *Client) CreateProject(ctx context.Context, p Project) (*Project, error) {
	var out Project
	if err := c.do(ctx, http.MethodPost, "/projects", nil, p, &out); err != nil {
		return nil, err
	}
	return &out, nil
}

func (c *Client) DeleteProject(ctx context.Context, id string) error {
	return c.do(ctx, http.MethodDelete, "/projects/"+id, nil, nil, nil)
}
