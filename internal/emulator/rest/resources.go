package rest

import (
	"encoding/json"
	"net/http"
	"net/url"

	"github.com/go-chi/chi/v5"

	"github.com/smallbooks/books-admin/internal/emulator/store"
)

// Resource is a CRUD handler over one bucket of plain records. The
// document collections have their own handler because they recompute
// totals; everything else goes through here.
type Resource[T any] struct {
	store  *store.Store
	bucket string
	prefix string
	setID  func(*T, string)
	match  func(T, url.Values) bool // optional query filter
}

// NewResource creates a CRUD handler for one collection.
func NewResource[T any](s *store.Store, bucket, prefix string, setID func(*T, string)) *Resource[T] {
	return &Resource[T]{store: s, bucket: bucket, prefix: prefix, setID: setID}
}

// WithFilter installs a list query filter.
func (h *Resource[T]) WithFilter(match func(T, url.Values) bool) *Resource[T] {
	h.match = match
	return h
}

// List handles GET /<collection>.
func (h *Resource[T]) List(w http.ResponseWriter, r *http.Request) {
	raws, err := h.store.List(h.bucket, nil)
	if err != nil {
		writeError(w, http.StatusInternalServerError, "Failed to list records")
		return
	}

	query := r.URL.Query()
	records := make([]T, 0, len(raws))
	for _, raw := range raws {
		var record T
		if err := json.Unmarshal(raw, &record); err != nil {
			writeError(w, http.StatusInternalServerError, "Failed to decode record")
			return
		}
		if h.match != nil && !h.match(record, query) {
			continue
		}
		records = append(records, record)
	}

	writeData(w, http.StatusOK, records)
}

// Get handles GET /<collection>/{id}.
func (h *Resource[T]) Get(w http.ResponseWriter, r *http.Request) {
	id := chi.URLParam(r, "id")

	var record T
	if err := h.store.Get(h.bucket, id, &record); err != nil {
		if err == store.ErrNotFound {
			writeError(w, http.StatusNotFound, "Record not found")
			return
		}
		writeError(w, http.StatusInternalServerError, "Failed to get record")
		return
	}

	writeData(w, http.StatusOK, record)
}

// Create handles POST /<collection>.
func (h *Resource[T]) Create(w http.ResponseWriter, r *http.Request) {
	var record T
	if err := json.NewDecoder(r.Body).Decode(&record); err != nil {
		writeError(w, http.StatusBadRequest, "Failed to parse request body")
		return
	}

	id, err := h.store.NextID(h.bucket, h.prefix)
	if err != nil {
		writeError(w, http.StatusInternalServerError, "Failed to allocate ID")
		return
	}
	h.setID(&record, id)

	if err := h.store.Put(h.bucket, id, record); err != nil {
		writeError(w, http.StatusInternalServerError, "Failed to store record")
		return
	}

	writeData(w, http.StatusCreated, record)
}

// Update handles PATCH /<collection>/{id}. The request body is merged
// over the stored record.
func (h *Resource[T]) Update(w http.ResponseWriter, r *http.Request) {
	id := chi.URLParam(r, "id")

	var record T
	if err := h.store.Get(h.bucket, id, &record); err != nil {
		if err == store.ErrNotFound {
			writeError(w, http.StatusNotFound, "Record not found")
			return
		}
		writeError(w, http.StatusInternalServerError, "Failed to get record")
		return
	}

	if err := json.NewDecoder(r.Body).Decode(&record); err != nil {
		writeError(w, http.StatusBadRequest, "Failed to parse request body")
		return
	}
	h.setID(&record, id)

	if err := h.store.Put(h.bucket, id, record); err != nil {
		writeError(w, http.StatusInternalServerError, "Failed to store record")
		return
	}

	writeData(w, http.StatusOK, record)
}

// Delete handles DELETE /<collection>/{id}.
func (h *Resource[T]) Delete(w http.ResponseWriter, r *http.Request) {
	id := chi.URLParam(r, "id")

	if err := h.store.Delete(h.bucket, id); err != nil {
		if err == store.ErrNotFound {
			writeError(w, http.StatusNotFound, "Record not found")
			return
		}
		writeError(w, http.StatusInternalServerError, "Failed to delete record")
		return
	}

	writeData(w, http.StatusOK, map[string]string{"_id": id})
}

// Routes mounts the CRUD endpoints on a router.
func (h *Resource[T]) Routes(r chi.Router) {
	r.Get("/", h.List)
	r.Post("/", h.Create)
	r.Get("/{id}", h.Get)
	r.Patch("/{id}", h.Update)
	r.Delete("/{id}", h.Delete)
}
