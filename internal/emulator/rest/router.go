package rest

import (
	"net/http"
	"net/url"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"

	"github.com/smallbooks/books-admin/internal/emulator/auth"
	"github.com/smallbooks/books-admin/internal/emulator/store"
	"github.com/smallbooks/books-admin/pkg/api"
)

// NewRouter builds the emulator's full HTTP surface over a store.
func NewRouter(st *store.Store) chi.Router {
	tokens := auth.NewTokenManager(st)
	users := auth.NewUsers(st)

	usersHandler := NewUsersHandler(users, tokens)

	contacts := NewResource(st, store.BucketContacts, "cont", func(c *api.Contact, id string) { c.ID = id }).
		WithFilter(func(c api.Contact, q url.Values) bool {
			t := q.Get("type")
			return t == "" || c.Type == t
		})
	items := NewResource(st, store.BucketItems, "item", func(v *api.Item, id string) { v.ID = id })
	accounts := NewResource(st, store.BucketAccounts, "acct", func(v *api.Account, id string) { v.ID = id })
	accountTypes := NewResource(st, store.BucketAccountTypes, "atyp", func(v *api.AccountType, id string) { v.ID = id })
	bankAccounts := NewResource(st, store.BucketBankAccounts, "bank", func(v *api.BankAccount, id string) { v.ID = id })
	bankAccountTypes := NewResource(st, store.BucketBankAccountTypes, "btyp", func(v *api.BankAccountType, id string) { v.ID = id })
	taxTypes := NewResource(st, store.BucketTaxTypes, "tax", func(v *api.TaxType, id string) { v.ID = id })
	projects := NewResource(st, store.BucketProjects, "proj", func(v *api.Project, id string) { v.ID = id })

	invoices := NewDocumentsHandler(st, store.BucketInvoices, "inv", "INV", buildInvoice, invoiceMeta, invoicePatch)
	quotations := NewDocumentsHandler(st, store.BucketQuotations, "quo", "QUO", buildQuotation, quotationMeta, quotationPatch)
	purchaseOrders := NewDocumentsHandler(st, store.BucketPurchaseOrders, "po", "PO", buildPurchaseOrder, purchaseOrderMeta, purchaseOrderPatch)
	bills := NewDocumentsHandler(st, store.BucketBills, "bill", "BILL", buildBill, billMeta, billPatch)

	r := chi.NewRouter()

	r.Use(middleware.RequestID)
	r.Use(middleware.RealIP)
	r.Use(middleware.Recoverer)
	r.Use(middleware.Timeout(60 * time.Second))

	r.Route("/api", func(r chi.Router) {
		// Account endpoints that never require a token.
		r.Post("/users/login", usersHandler.Login)
		r.Post("/users/register", usersHandler.Register)

		r.Group(func(r chi.Router) {
			r.Use(AuthMiddleware(tokens))

			r.Get("/users", usersHandler.List)
			r.Delete("/users/{id}", usersHandler.Delete)
			r.Get("/users/profile", usersHandler.Profile)
			r.Patch("/users/profile", usersHandler.UpdateProfile)
			r.Patch("/users/change-password", usersHandler.ChangePassword)

			r.Route("/contacts", contacts.Routes)
			r.Route("/items", func(r chi.Router) {
				items.Routes(r)
				r.Get("/{id}/sale-details", itemSaleDetails(st))
			})
			r.Route("/chart-of-accounts", accounts.Routes)
			r.Route("/account-types", accountTypes.Routes)
			r.Route("/bank-accounts", bankAccounts.Routes)
			r.Route("/bank-account-types", bankAccountTypes.Routes)
			r.Route("/tax-types", taxTypes.Routes)
			r.Route("/projects", projects.Routes)

			r.Route("/sales-invoices", invoices.Routes)
			r.Route("/quotations", quotations.Routes)
			r.Route("/purchase-orders", purchaseOrders.Routes)
			r.Route("/bills", bills.Routes)
		})
	})

	r.Get("/health", func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusOK)
		_, _ = w.Write([]byte("OK"))
	})

	return r
}

// itemSaleDetails serves the sale-side slice of an item. The full item
// record is returned; the client reads the sale fields from it.
func itemSaleDetails(st *store.Store) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		id := chi.URLParam(r, "id")

		var item api.Item
		if err := st.Get(store.BucketItems, id, &item); err != nil {
			if err == store.ErrNotFound {
				writeError(w, http.StatusNotFound, "Item not found")
				return
			}
			writeError(w, http.StatusInternalServerError, "Failed to get item")
			return
		}

		writeData(w, http.StatusOK, item)
	}
}
