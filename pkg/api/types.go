// Package api provides the REST client and wire types for the accounting
// backend. Every collection follows the same CRUD contract: GET list,
// GET by ID, POST create, PATCH update, DELETE remove, with bearer-token
// authentication and a {success, data} response envelope that some
// deployments omit.
package api

import "github.com/smallbooks/books-admin/pkg/calc"

// Document status vocabulary. Not every document type uses every value:
// quotations and purchase orders use Approved where invoices and bills use
// Paid. Transitions are authoritative on the backend; the client only
// requests one and refreshes.
const (
	StatusDraft     = "Draft"
	StatusSent      = "Sent"
	StatusPaid      = "Paid"
	StatusApproved  = "Approved"
	StatusUnpaid    = "Unpaid"
	StatusOverdue   = "Overdue"
	StatusCancelled = "Cancelled"
)

// Contact is a customer or supplier.
type Contact struct {
	ID          string `json:"_id"`
	ContactName string `json:"contactName"`
	Type        string `json:"type"` // Customer or Supplier
	Email       string `json:"email,omitempty"`
	Phone       string `json:"phone,omitempty"`
	Company     string `json:"company,omitempty"`
}

// TaxType is a named tax rate. TaxPercentage is a plain number, e.g. 10
// for 10%.
type TaxType struct {
	ID            string  `json:"_id"`
	Name          string  `json:"name"`
	TaxPercentage float64 `json:"taxPercentage"`
}

// Item is a catalog item with separate sale and purchase defaults.
type Item struct {
	ID                string  `json:"_id"`
	Name              string  `json:"name"`
	Description       string  `json:"description,omitempty"`
	SalePrice         float64 `json:"salePrice"`
	CostPrice         float64 `json:"costPrice"`
	SaleAccount       Ref     `json:"saleAccount"`
	PurchaseAccount   Ref     `json:"purchaseAccount"`
	TaxRateOnSale     Ref     `json:"taxRateOnSale"`
	TaxRateOnPurchase Ref     `json:"taxRateOnPurchase"`
}

// SaleDefaults returns the calculator defaults for selecting this item on
// a sales-side document (invoice, quotation).
func (it Item) SaleDefaults(taxPercent float64) calc.ItemDefaults {
	return calc.ItemDefaults{
		ItemID:      it.ID,
		Description: it.Description,
		UnitPrice:   it.SalePrice,
		AccountID:   it.SaleAccount.ID,
		TaxRateID:   it.TaxRateOnSale.ID,
		TaxPercent:  taxPercent,
	}
}

// PurchaseDefaults returns the calculator defaults for selecting this item
// on a purchase-side document (purchase order, bill).
func (it Item) PurchaseDefaults(taxPercent float64) calc.ItemDefaults {
	return calc.ItemDefaults{
		ItemID:      it.ID,
		Description: it.Description,
		UnitPrice:   it.CostPrice,
		AccountID:   it.PurchaseAccount.ID,
		TaxRateID:   it.TaxRateOnPurchase.ID,
		TaxPercent:  taxPercent,
	}
}

// Account is a ledger account in the chart of accounts.
type Account struct {
	ID          string `json:"_id"`
	Code        string `json:"code"`
	Name        string `json:"name"`
	AccountType Ref    `json:"accountType"`
	Description string `json:"description,omitempty"`
}

// AccountType classifies ledger accounts (Asset, Liability, ...).
type AccountType struct {
	ID   string `json:"_id"`
	Name string `json:"name"`
}

// BankAccount is a bank or payment account.
type BankAccount struct {
	ID            string `json:"_id"`
	BankName      string `json:"bankName"`
	AccountName   string `json:"accountName"`
	AccountNumber string `json:"accountNumber,omitempty"`
	AccountType   Ref    `json:"accountType"`
}

// BankAccountType classifies bank accounts (Checking, Savings, ...).
type BankAccountType struct {
	ID   string `json:"_id"`
	Name string `json:"name"`
}

// Project is an optional per-line cost grouping.
type Project struct {
	ID   string `json:"_id"`
	Name string `json:"name"`
}

// User is a backend user account.
type User struct {
	ID       string `json:"_id"`
	Username string `json:"username"`
	Name     string `json:"name,omitempty"`
	Email    string `json:"email,omitempty"`
	Role     string `json:"role,omitempty"`
}

// LineItem is one priced row of a financial document as it appears on the
// wire. Amount and TaxAmount are backend-derived; create/update payloads
// send only the raw inputs.
type LineItem struct {
	Item        Ref     `json:"item"`
	Description string  `json:"description,omitempty"`
	Qty         float64 `json:"qty"`
	Price       float64 `json:"price"`
	Discount    float64 `json:"discount"`
	Account     Ref     `json:"account"`
	TaxRate     Ref     `json:"taxRate"`
	Project     Ref     `json:"project,omitempty"`
	TaxAmount   float64 `json:"taxAmount,omitempty"`
	Amount      float64 `json:"amount,omitempty"`
}

// CalcLine converts a wire line into calculator input. TaxPercent must
// still be resolved against the tax-type table.
func (li LineItem) CalcLine() calc.Line {
	return calc.Line{
		ItemID:          li.Item.ID,
		Description:     li.Description,
		Quantity:        li.Qty,
		UnitPrice:       li.Price,
		DiscountPercent: li.Discount,
		AccountID:       li.Account.ID,
		TaxRateID:       li.TaxRate.ID,
		ProjectID:       li.Project.ID,
	}
}

// SalesInvoice is a receivable document. Older deployments populate
// Contact, newer ones embed Customer; Party() hides the difference.
type SalesInvoice struct {
	ID              string     `json:"_id"`
	InvoiceNumber   string     `json:"invoiceNumber"`
	Contact         Ref        `json:"contact"`
	Customer        Ref        `json:"customer"`
	IssueDate       Date       `json:"issueDate"`
	DueDate         Date       `json:"dueDate"`
	Reference       string     `json:"reference,omitempty"`
	AmountTreatment string     `json:"amountTreatment,omitempty"`
	LineItems       []LineItem `json:"lineItems,omitempty"`
	Subtotal        float64    `json:"subtotal"`
	TotalTax        float64    `json:"totalTax"`
	GrandTotal      float64    `json:"grandTotal"`
	Status          string     `json:"status"`
	Notes           string     `json:"notes,omitempty"`
}

// Party returns the customer reference regardless of which field the
// backend populated.
func (d SalesInvoice) Party() Ref {
	if !d.Customer.IsZero() {
		return d.Customer
	}
	return d.Contact
}

// TaxMode normalizes the document's amount treatment.
func (d SalesInvoice) TaxMode() calc.TaxMode {
	mode, err := calc.ParseTaxMode(d.AmountTreatment)
	if err != nil {
		return calc.TaxExcluding
	}
	return mode
}

// Quotation is a sales quotation. It has no due date.
type Quotation struct {
	ID              string     `json:"_id"`
	QuotationNumber string     `json:"quotationNumber"`
	Contact         Ref        `json:"contact"`
	IssueDate       Date       `json:"issueDate"`
	Reference       string     `json:"reference,omitempty"`
	AmountTreatment string     `json:"amountTreatment,omitempty"`
	LineItems       []LineItem `json:"lineItems,omitempty"`
	Subtotal        float64    `json:"subtotal"`
	TotalTax        float64    `json:"totalTax"`
	GrandTotal      float64    `json:"grandTotal"`
	Status          string     `json:"status"`
	Notes           string     `json:"notes,omitempty"`
}

// TaxMode normalizes the document's amount treatment.
func (d Quotation) TaxMode() calc.TaxMode {
	mode, err := calc.ParseTaxMode(d.AmountTreatment)
	if err != nil {
		return calc.TaxExcluding
	}
	return mode
}

// PurchaseOrder is a purchase-side order document.
type PurchaseOrder struct {
	ID              string     `json:"_id"`
	OrderNumber     string     `json:"orderNumber"`
	Contact         Ref        `json:"contact"`
	IssueDate       Date       `json:"issueDate"`
	DeliveryDate    Date       `json:"deliveryDate"`
	Reference       string     `json:"reference,omitempty"`
	AmountTreatment string     `json:"amountTreatment,omitempty"`
	LineItems       []LineItem `json:"lineItems,omitempty"`
	Subtotal        float64    `json:"subtotal"`
	TotalTax        float64    `json:"totalTax"`
	GrandTotal      float64    `json:"grandTotal"`
	Status          string     `json:"status"`
	Notes           string     `json:"notes,omitempty"`
}

// TaxMode normalizes the document's amount treatment.
func (d PurchaseOrder) TaxMode() calc.TaxMode {
	mode, err := calc.ParseTaxMode(d.AmountTreatment)
	if err != nil {
		return calc.TaxExcluding
	}
	return mode
}

// Bill is a payable document. Vendor/Contact mirror the customer split on
// invoices.
type Bill struct {
	ID              string     `json:"_id"`
	BillNumber      string     `json:"billNumber"`
	Contact         Ref        `json:"contact"`
	Vendor          Ref        `json:"vendor"`
	IssueDate       Date       `json:"issueDate"`
	DueDate         Date       `json:"dueDate"`
	Reference       string     `json:"reference,omitempty"`
	AmountTreatment string     `json:"amountTreatment,omitempty"`
	LineItems       []LineItem `json:"lineItems,omitempty"`
	Subtotal        float64    `json:"subtotal"`
	TotalTax        float64    `json:"totalTax"`
	GrandTotal      float64    `json:"grandTotal"`
	Status          string     `json:"status"`
	Notes           string     `json:"notes,omitempty"`
}

// Party returns the vendor reference regardless of which field the backend
// populated.
func (d Bill) Party() Ref {
	if !d.Vendor.IsZero() {
		return d.Vendor
	}
	return d.Contact
}

// TaxMode normalizes the document's amount treatment.
func (d Bill) TaxMode() calc.TaxMode {
	mode, err := calc.ParseTaxMode(d.AmountTreatment)
	if err != nil {
		return calc.TaxExcluding
	}
	return mode
}

// DocumentPayload is the create/update body for any of the four financial
// document types. Only raw line values are sent; the backend derives the
// totals.
type DocumentPayload struct {
	Contact         string        `json:"contact"`
	IssueDate       string        `json:"issueDate"`
	DueDate         string        `json:"dueDate,omitempty"`
	Reference       string        `json:"reference,omitempty"`
	AmountTreatment string        `json:"amountTreatment"`
	LineItems       []LinePayload `json:"lineItems"`
	Notes           string        `json:"notes,omitempty"`
	Status          string        `json:"status,omitempty"`
}

// LinePayload is one raw line in a DocumentPayload.
type LinePayload struct {
	Item        string  `json:"item"`
	Description string  `json:"description,omitempty"`
	Qty         float64 `json:"qty"`
	Price       float64 `json:"price"`
	Discount    float64 `json:"discount"`
	Account     string  `json:"account,omitempty"`
	TaxRate     string  `json:"taxRate,omitempty"`
	Project     string  `json:"project,omitempty"`
}

// PayloadLines converts validated calculator lines into payload lines.
func PayloadLines(lines []calc.Line) []LinePayload {
	out := make([]LinePayload, len(lines))
	for i, l := range lines {
		out[i] = LinePayload{
			Item:        l.ItemID,
			Description: l.Description,
			Qty:         l.Quantity,
			Price:       l.UnitPrice,
			Discount:    l.DiscountPercent,
			Account:     l.AccountID,
			TaxRate:     l.TaxRateID,
			Project:     l.ProjectID,
		}
	}
	return out
}
