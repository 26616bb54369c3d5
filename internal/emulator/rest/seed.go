package rest

import (
	"fmt"

	"github.com/smallbooks/books-admin/internal/emulator/auth"
	"github.com/smallbooks/books-admin/internal/emulator/store"
	"github.com/smallbooks/books-admin/pkg/api"
)

// Seed populates an empty store with a small working data set: an admin
// account, reference collections and a few catalog records. A store
// that already has users is left untouched.
func Seed(st *store.Store, adminPassword string) error {
	n, err := st.Count(store.BucketUsers)
	if err != nil {
		return err
	}
	if n > 0 {
		return nil
	}

	users := auth.NewUsers(st)
	if _, err := users.Register("admin", adminPassword, "Administrator", "admin@example.com"); err != nil {
		return fmt.Errorf("failed to seed admin user: %w", err)
	}

	taxTypes := []api.TaxType{
		{Name: "Standard Rate", TaxPercentage: 10},
		{Name: "Reduced Rate", TaxPercentage: 5},
		{Name: "Zero Rated", TaxPercentage: 0},
	}
	taxIDs := make([]string, len(taxTypes))
	for i, tt := range taxTypes {
		id, err := st.NextID(store.BucketTaxTypes, "tax")
		if err != nil {
			return err
		}
		tt.ID = id
		taxIDs[i] = id
		if err := st.Put(store.BucketTaxTypes, id, tt); err != nil {
			return err
		}
	}

	accountTypes := []api.AccountType{
		{Name: "Asset"}, {Name: "Liability"}, {Name: "Equity"},
		{Name: "Income"}, {Name: "Expense"},
	}
	atIDs := make(map[string]string, len(accountTypes))
	for _, at := range accountTypes {
		id, err := st.NextID(store.BucketAccountTypes, "atyp")
		if err != nil {
			return err
		}
		at.ID = id
		atIDs[at.Name] = id
		if err := st.Put(store.BucketAccountTypes, id, at); err != nil {
			return err
		}
	}

	accounts := []api.Account{
		{Code: "4000", Name: "Sales Revenue", AccountType: api.Ref{ID: atIDs["Income"], Name: "Income"}},
		{Code: "5000", Name: "Cost of Goods Sold", AccountType: api.Ref{ID: atIDs["Expense"], Name: "Expense"}},
		{Code: "6000", Name: "Office Expenses", AccountType: api.Ref{ID: atIDs["Expense"], Name: "Expense"}},
	}
	acctIDs := make([]string, len(accounts))
	for i, a := range accounts {
		id, err := st.NextID(store.BucketAccounts, "acct")
		if err != nil {
			return err
		}
		a.ID = id
		acctIDs[i] = id
		if err := st.Put(store.BucketAccounts, id, a); err != nil {
			return err
		}
	}

	bankAccountTypes := []api.BankAccountType{{Name: "Checking"}, {Name: "Savings"}}
	var checkingID string
	for _, bt := range bankAccountTypes {
		id, err := st.NextID(store.BucketBankAccountTypes, "btyp")
		if err != nil {
			return err
		}
		bt.ID = id
		if bt.Name == "Checking" {
			checkingID = id
		}
		if err := st.Put(store.BucketBankAccountTypes, id, bt); err != nil {
			return err
		}
	}

	bankAccount := api.BankAccount{
		BankName:      "First Example Bank",
		AccountName:   "Operating",
		AccountNumber: "000123456",
		AccountType:   api.Ref{ID: checkingID, Name: "Checking"},
	}
	baID, err := st.NextID(store.BucketBankAccounts, "bank")
	if err != nil {
		return err
	}
	bankAccount.ID = baID
	if err := st.Put(store.BucketBankAccounts, baID, bankAccount); err != nil {
		return err
	}

	contacts := []api.Contact{
		{ContactName: "Acme Ltd", Type: "Customer", Email: "billing@acme.example"},
		{ContactName: "Globex Inc", Type: "Customer", Email: "ap@globex.example"},
		{ContactName: "Paper Supplies Co", Type: "Supplier", Email: "sales@papersupplies.example"},
	}
	for _, c := range contacts {
		id, err := st.NextID(store.BucketContacts, "cont")
		if err != nil {
			return err
		}
		c.ID = id
		if err := st.Put(store.BucketContacts, id, c); err != nil {
			return err
		}
	}

	items := []api.Item{
		{
			Name:              "Consulting Hour",
			Description:       "Professional services, billed hourly",
			SalePrice:         150,
			CostPrice:         0,
			SaleAccount:       api.Ref{ID: acctIDs[0], Name: "Sales Revenue"},
			TaxRateOnSale:     api.Ref{ID: taxIDs[0], Name: "Standard Rate"},
			TaxRateOnPurchase: api.Ref{ID: taxIDs[2], Name: "Zero Rated"},
		},
		{
			Name:              "Printer Paper (500 sheets)",
			SalePrice:         12.50,
			CostPrice:         7.80,
			SaleAccount:       api.Ref{ID: acctIDs[0], Name: "Sales Revenue"},
			PurchaseAccount:   api.Ref{ID: acctIDs[2], Name: "Office Expenses"},
			TaxRateOnSale:     api.Ref{ID: taxIDs[0], Name: "Standard Rate"},
			TaxRateOnPurchase: api.Ref{ID: taxIDs[0], Name: "Standard Rate"},
		},
	}
	for _, it := range items {
		id, err := st.NextID(store.BucketItems, "item")
		if err != nil {
			return err
		}
		it.ID = id
		if err := st.Put(store.BucketItems, id, it); err != nil {
			return err
		}
	}

	project := api.Project{Name: "General"}
	projID, err := st.NextID(store.BucketProjects, "proj")
	if err != nil {
		return err
	}
	project.ID = projID
	return st.Put(store.BucketProjects, projID, project)
}
