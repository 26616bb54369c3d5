package rest

import (
	"encoding/json"
	"fmt"
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"

	"github.com/smallbooks/books-admin/internal/emulator/store"
	"github.com/smallbooks/books-admin/pkg/api"
	"github.com/smallbooks/books-admin/pkg/calc"
)

// resolver looks up referenced records so documents carry display names
// and resolved tax rates, not just IDs.
type resolver struct {
	store *store.Store
}

func (rs *resolver) contact(id string) (api.Ref, error) {
	if id == "" {
		return api.Ref{}, fmt.Errorf("missing contact")
	}
	var c api.Contact
	if err := rs.store.Get(store.BucketContacts, id, &c); err != nil {
		if err == store.ErrNotFound {
			return api.Ref{}, fmt.Errorf("unknown contact %s", id)
		}
		return api.Ref{}, err
	}
	return api.Ref{ID: c.ID, Name: c.ContactName}, nil
}

func (rs *resolver) ref(bucket, id string) api.Ref {
	if id == "" {
		return api.Ref{}
	}
	ref := api.Ref{ID: id}
	switch bucket {
	case store.BucketItems:
		var v api.Item
		if rs.store.Get(bucket, id, &v) == nil {
			ref.Name = v.Name
		}
	case store.BucketAccounts:
		var v api.Account
		if rs.store.Get(bucket, id, &v) == nil {
			ref.Name = v.Name
		}
	case store.BucketProjects:
		var v api.Project
		if rs.store.Get(bucket, id, &v) == nil {
			ref.Name = v.Name
		}
	}
	return ref
}

func (rs *resolver) taxType(id string) (api.Ref, float64) {
	if id == "" {
		return api.Ref{}, 0
	}
	var t api.TaxType
	if rs.store.Get(store.BucketTaxTypes, id, &t) != nil {
		return api.Ref{ID: id}, 0
	}
	return api.Ref{ID: t.ID, Name: t.Name}, t.TaxPercentage
}

// lines resolves payload lines and recomputes their amounts.
func (rs *resolver) lines(payloads []api.LinePayload) ([]api.LineItem, []calc.Line, error) {
	wire := make([]api.LineItem, 0, len(payloads))
	calcLines := make([]calc.Line, 0, len(payloads))

	for i, p := range payloads {
		if p.Item == "" {
			return nil, nil, fmt.Errorf("line %d: missing item", i+1)
		}
		var item api.Item
		if err := rs.store.Get(store.BucketItems, p.Item, &item); err != nil {
			if err == store.ErrNotFound {
				return nil, nil, fmt.Errorf("line %d: unknown item %s", i+1, p.Item)
			}
			return nil, nil, err
		}

		taxRef, taxPercent := rs.taxType(p.TaxRate)
		line := calc.Line{
			ItemID:          p.Item,
			Description:     p.Description,
			Quantity:        p.Qty,
			UnitPrice:       p.Price,
			DiscountPercent: p.Discount,
			AccountID:       p.Account,
			TaxRateID:       p.TaxRate,
			TaxPercent:      taxPercent,
			ProjectID:       p.Project,
		}
		amounts := calc.Amounts(line)

		wire = append(wire, api.LineItem{
			Item:        api.Ref{ID: item.ID, Name: item.Name},
			Description: p.Description,
			Qty:         p.Qty,
			Price:       p.Price,
			Discount:    p.Discount,
			Account:     rs.ref(store.BucketAccounts, p.Account),
			TaxRate:     taxRef,
			Project:     rs.ref(store.BucketProjects, p.Project),
			TaxAmount:   amounts.TaxAmount,
			Amount:      amounts.LineAmount,
		})
		calcLines = append(calcLines, line)
	}

	return wire, calcLines, nil
}

// docPatch is a partial document update: status or notes only, no line
// recalculation.
type docPatch struct {
	Status string `json:"status"`
	Notes  string `json:"notes"`
}

// docMeta carries the identity fields shared by all document types.
type docMeta struct {
	ID     string
	Number string
	Status string
}

// DocumentsHandler serves one financial document collection. Create and
// update recompute every derived amount from the raw line values.
type DocumentsHandler[T any] struct {
	store        *store.Store
	resolver     *resolver
	bucket       string
	idPrefix     string
	numberPrefix string
	build        func(id, number string, p api.DocumentPayload, lines []api.LineItem, totals calc.Totals, contact api.Ref) T
	meta         func(T) docMeta
	applyPatch   func(*T, docPatch)
}

// NewDocumentsHandler creates a handler for one document collection.
func NewDocumentsHandler[T any](
	s *store.Store,
	bucket, idPrefix, numberPrefix string,
	build func(id, number string, p api.DocumentPayload, lines []api.LineItem, totals calc.Totals, contact api.Ref) T,
	meta func(T) docMeta,
	applyPatch func(*T, docPatch),
) *DocumentsHandler[T] {
	return &DocumentsHandler[T]{
		store:        s,
		resolver:     &resolver{store: s},
		bucket:       bucket,
		idPrefix:     idPrefix,
		numberPrefix: numberPrefix,
		build:        build,
		meta:         meta,
		applyPatch:   applyPatch,
	}
}

// List handles GET with an optional ?status= filter.
func (h *DocumentsHandler[T]) List(w http.ResponseWriter, r *http.Request) {
	raws, err := h.store.List(h.bucket, nil)
	if err != nil {
		writeError(w, http.StatusInternalServerError, "Failed to list documents")
		return
	}

	status := r.URL.Query().Get("status")
	docs := make([]T, 0, len(raws))
	for _, raw := range raws {
		var doc T
		if err := json.Unmarshal(raw, &doc); err != nil {
			writeError(w, http.StatusInternalServerError, "Failed to decode document")
			return
		}
		if status != "" && h.meta(doc).Status != status {
			continue
		}
		docs = append(docs, doc)
	}

	writeData(w, http.StatusOK, docs)
}

// Get handles GET /{id}.
func (h *DocumentsHandler[T]) Get(w http.ResponseWriter, r *http.Request) {
	id := chi.URLParam(r, "id")

	var doc T
	if err := h.store.Get(h.bucket, id, &doc); err != nil {
		if err == store.ErrNotFound {
			writeError(w, http.StatusNotFound, "Document not found")
			return
		}
		writeError(w, http.StatusInternalServerError, "Failed to get document")
		return
	}

	writeData(w, http.StatusOK, doc)
}

// Create handles POST. The body is a raw payload; totals are derived
// here, never trusted from the client.
func (h *DocumentsHandler[T]) Create(w http.ResponseWriter, r *http.Request) {
	var payload api.DocumentPayload
	if err := json.NewDecoder(r.Body).Decode(&payload); err != nil {
		writeError(w, http.StatusBadRequest, "Failed to parse request body")
		return
	}
	if len(payload.LineItems) == 0 {
		writeError(w, http.StatusBadRequest, "At least one line item is required")
		return
	}

	doc, status, err := h.assemble("", "", payload)
	if err != nil {
		writeError(w, status, err.Error())
		return
	}

	meta := h.meta(doc)
	if err := h.store.Put(h.bucket, meta.ID, doc); err != nil {
		writeError(w, http.StatusInternalServerError, "Failed to store document")
		return
	}

	writeData(w, http.StatusCreated, doc)
}

// Update handles PATCH /{id}. A body with line items triggers a full
// recompute; a body without them is a status/notes patch.
func (h *DocumentsHandler[T]) Update(w http.ResponseWriter, r *http.Request) {
	id := chi.URLParam(r, "id")

	var existing T
	if err := h.store.Get(h.bucket, id, &existing); err != nil {
		if err == store.ErrNotFound {
			writeError(w, http.StatusNotFound, "Document not found")
			return
		}
		writeError(w, http.StatusInternalServerError, "Failed to get document")
		return
	}

	var raw json.RawMessage
	if err := json.NewDecoder(r.Body).Decode(&raw); err != nil {
		writeError(w, http.StatusBadRequest, "Failed to parse request body")
		return
	}

	var payload api.DocumentPayload
	if err := json.Unmarshal(raw, &payload); err != nil {
		writeError(w, http.StatusBadRequest, "Failed to parse request body")
		return
	}

	meta := h.meta(existing)
	var doc T
	if len(payload.LineItems) == 0 {
		// Partial update.
		var patch docPatch
		if err := json.Unmarshal(raw, &patch); err != nil {
			writeError(w, http.StatusBadRequest, "Failed to parse request body")
			return
		}
		doc = existing
		h.applyPatch(&doc, patch)
	} else {
		if payload.Status == "" {
			payload.Status = meta.Status
		}
		var status int
		var err error
		doc, status, err = h.assemble(meta.ID, meta.Number, payload)
		if err != nil {
			writeError(w, status, err.Error())
			return
		}
	}

	if err := h.store.Put(h.bucket, meta.ID, doc); err != nil {
		writeError(w, http.StatusInternalServerError, "Failed to store document")
		return
	}

	writeData(w, http.StatusOK, doc)
}

// Delete handles DELETE /{id}.
func (h *DocumentsHandler[T]) Delete(w http.ResponseWriter, r *http.Request) {
	id := chi.URLParam(r, "id")

	if err := h.store.Delete(h.bucket, id); err != nil {
		if err == store.ErrNotFound {
			writeError(w, http.StatusNotFound, "Document not found")
			return
		}
		writeError(w, http.StatusInternalServerError, "Failed to delete document")
		return
	}

	writeData(w, http.StatusOK, map[string]string{"_id": id})
}

// assemble resolves references, recomputes amounts and builds the
// stored document. A blank id allocates a new identity.
func (h *DocumentsHandler[T]) assemble(id, number string, payload api.DocumentPayload) (T, int, error) {
	var zero T

	mode, err := calc.ParseTaxMode(payload.AmountTreatment)
	if err != nil {
		return zero, http.StatusBadRequest, err
	}
	contact, err := h.resolver.contact(payload.Contact)
	if err != nil {
		return zero, http.StatusBadRequest, err
	}
	wire, calcLines, err := h.resolver.lines(payload.LineItems)
	if err != nil {
		return zero, http.StatusBadRequest, err
	}
	totals := calc.DocumentTotals(calcLines, mode)

	if id == "" {
		seq, err := h.store.NextSeq(h.bucket)
		if err != nil {
			return zero, http.StatusInternalServerError, fmt.Errorf("failed to allocate ID")
		}
		id = fmt.Sprintf("%s-%06d", h.idPrefix, seq)
		number = fmt.Sprintf("%s-%04d", h.numberPrefix, seq)
	}
	if payload.Status == "" {
		payload.Status = api.StatusDraft
	}
	payload.AmountTreatment = string(mode)

	return h.build(id, number, payload, wire, totals, contact), 0, nil
}

// Routes mounts the CRUD endpoints on a router.
func (h *DocumentsHandler[T]) Routes(r chi.Router) {
	r.Get("/", h.List)
	r.Post("/", h.Create)
	r.Get("/{id}", h.Get)
	r.Patch("/{id}", h.Update)
	r.Delete("/{id}", h.Delete)
}

// parseDate converts a YYYY-MM-DD payload date; a blank or malformed
// value yields the zero date.
func parseDate(s string) api.Date {
	if s == "" {
		return api.Date{}
	}
	t, err := time.Parse("2006-01-02", s)
	if err != nil {
		return api.Date{}
	}
	return api.Date{Time: t}
}

// buildInvoice assembles a sales invoice from resolved parts.
func buildInvoice(id, number string, p api.DocumentPayload, lines []api.LineItem, totals calc.Totals, contact api.Ref) api.SalesInvoice {
	return api.SalesInvoice{
		ID:              id,
		InvoiceNumber:   number,
		Customer:        contact,
		Contact:         contact,
		IssueDate:       parseDate(p.IssueDate),
		DueDate:         parseDate(p.DueDate),
		Reference:       p.Reference,
		AmountTreatment: p.AmountTreatment,
		LineItems:       lines,
		Subtotal:        totals.Subtotal,
		TotalTax:        totals.TotalTax,
		GrandTotal:      totals.GrandTotal,
		Status:          p.Status,
		Notes:           p.Notes,
	}
}

func invoiceMeta(d api.SalesInvoice) docMeta {
	return docMeta{ID: d.ID, Number: d.InvoiceNumber, Status: d.Status}
}

func invoicePatch(d *api.SalesInvoice, p docPatch) {
	if p.Status != "" {
		d.Status = p.Status
	}
	if p.Notes != "" {
		d.Notes = p.Notes
	}
}

// buildQuotation assembles a quotation from resolved parts.
func buildQuotation(id, number string, p api.DocumentPayload, lines []api.LineItem, totals calc.Totals, contact api.Ref) api.Quotation {
	return api.Quotation{
		ID:              id,
		QuotationNumber: number,
		Contact:         contact,
		IssueDate:       parseDate(p.IssueDate),
		Reference:       p.Reference,
		AmountTreatment: p.AmountTreatment,
		LineItems:       lines,
		Subtotal:        totals.Subtotal,
		TotalTax:        totals.TotalTax,
		GrandTotal:      totals.GrandTotal,
		Status:          p.Status,
		Notes:           p.Notes,
	}
}

func quotationMeta(d api.Quotation) docMeta {
	return docMeta{ID: d.ID, Number: d.QuotationNumber, Status: d.Status}
}

func quotationPatch(d *api.Quotation, p docPatch) {
	if p.Status != "" {
		d.Status = p.Status
	}
	if p.Notes != "" {
		d.Notes = p.Notes
	}
}

// buildPurchaseOrder assembles a purchase order from resolved parts.
// The payload's due date doubles as the delivery date.
func buildPurchaseOrder(id, number string, p api.DocumentPayload, lines []api.LineItem, totals calc.Totals, contact api.Ref) api.PurchaseOrder {
	return api.PurchaseOrder{
		ID:              id,
		OrderNumber:     number,
		Contact:         contact,
		IssueDate:       parseDate(p.IssueDate),
		DeliveryDate:    parseDate(p.DueDate),
		Reference:       p.Reference,
		AmountTreatment: p.AmountTreatment,
		LineItems:       lines,
		Subtotal:        totals.Subtotal,
		TotalTax:        totals.TotalTax,
		GrandTotal:      totals.GrandTotal,
		Status:          p.Status,
		Notes:           p.Notes,
	}
}

func purchaseOrderMeta(d api.PurchaseOrder) docMeta {
	return docMeta{ID: d.ID, Number: d.OrderNumber, Status: d.Status}
}

func purchaseOrderPatch(d *api.PurchaseOrder, p docPatch) {
	if p.Status != "" {
		d.Status = p.Status
	}
	if p.Notes != "" {
		d.Notes = p.Notes
	}
}

// buildBill assembles a bill from resolved parts.
func buildBill(id, number string, p api.DocumentPayload, lines []api.LineItem, totals calc.Totals, contact api.Ref) api.Bill {
	return api.Bill{
		ID:              id,
		BillNumber:      number,
		Vendor:          contact,
		Contact:         contact,
		IssueDate:       parseDate(p.IssueDate),
		DueDate:         parseDate(p.DueDate),
		Reference:       p.Reference,
		AmountTreatment: p.AmountTreatment,
		LineItems:       lines,
		Subtotal:        totals.Subtotal,
		TotalTax:        totals.TotalTax,
		GrandTotal:      totals.GrandTotal,
		Status:          p.Status,
		Notes:           p.Notes,
	}
}

func billMeta(d api.Bill) docMeta {
	return docMeta{ID: d.ID, Number: d.BillNumber, Status: d.Status}
}

func billPatch(d *api.Bill, p docPatch) {
	if p.Status != "" {
		d.Status = p.Status
	}
	if p.Notes != "" {
		d.Notes = p.Notes
	}
}
