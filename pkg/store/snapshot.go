package store

import (
	"database/sql"
	"encoding/json"
	"fmt"
	"time"

	"github.com/smallbooks/books-admin/pkg/api"
)

// DocType identifies a snapshotted document type.
type DocType string

const (
	DocTypeInvoice       DocType = "invoice"
	DocTypeQuotation     DocType = "quotation"
	DocTypePurchaseOrder DocType = "purchase_order"
	DocTypeBill          DocType = "bill"
)

// DocumentRow is one row of the documents table.
type DocumentRow struct {
	ID         int64
	DocType    DocType
	RemoteID   string
	Number     string
	Party      string
	Status     string
	IssueDate  string
	GrandTotal float64
	Payload    []byte
	PulledAt   time.Time
}

// Snapshot manages the local document snapshot.
type Snapshot struct {
	conn *Connection
}

// NewSnapshot creates a new Snapshot instance.
func NewSnapshot(conn *Connection) *Snapshot {
	return &Snapshot{conn: conn}
}

// upsertQuery inserts or refreshes one document row.
const upsertQuery = `
	INSERT INTO documents (doc_type, remote_id, number, party, status, issue_date, grand_total, payload)
	VALUES (?, ?, ?, ?, ?, ?, ?, ?)
	ON CONFLICT(doc_type, remote_id) DO UPDATE SET
		number = excluded.number,
		party = excluded.party,
		status = excluded.status,
		issue_date = excluded.issue_date,
		grand_total = excluded.grand_total,
		payload = excluded.payload,
		pulled_at = CURRENT_TIMESTAMP
`

// SaveRows upserts a batch of document rows in a single transaction.
func (s *Snapshot) SaveRows(rows []DocumentRow) error {
	return s.conn.transaction(func(tx *sql.Tx) error {
		stmt, err := tx.Prepare(upsertQuery)
		if err != nil {
			return fmt.Errorf("failed to prepare upsert: %w", err)
		}
		defer stmt.Close()

		for _, row := range rows {
			if _, err := stmt.Exec(
				string(row.DocType),
				row.RemoteID,
				row.Number,
				row.Party,
				row.Status,
				row.IssueDate,
				row.GrandTotal,
				string(row.Payload),
			); err != nil {
				return fmt.Errorf("failed to upsert document %s/%s: %w", row.DocType, row.RemoteID, err)
			}
		}
		return nil
	})
}

// SaveInvoices snapshots a batch of sales invoices.
func (s *Snapshot) SaveInvoices(docs []api.SalesInvoice) error {
	rows := make([]DocumentRow, 0, len(docs))
	for _, d := range docs {
		payload, err := json.Marshal(d)
		if err != nil {
			return fmt.Errorf("failed to encode invoice %s: %w", d.ID, err)
		}
		rows = append(rows, DocumentRow{
			DocType:    DocTypeInvoice,
			RemoteID:   d.ID,
			Number:     d.InvoiceNumber,
			Party:      d.Party().DisplayName(),
			Status:     d.Status,
			IssueDate:  d.IssueDate.Format("2006-01-02"),
			GrandTotal: d.GrandTotal,
			Payload:    payload,
		})
	}
	return s.SaveRows(rows)
}

// SaveQuotations snapshots a batch of quotations.
func (s *Snapshot) SaveQuotations(docs []api.Quotation) error {
	rows := make([]DocumentRow, 0, len(docs))
	for _, d := range docs {
		payload, err := json.Marshal(d)
		if err != nil {
			return fmt.Errorf("failed to encode quotation %s: %w", d.ID, err)
		}
		rows = append(rows, DocumentRow{
			DocType:    DocTypeQuotation,
			RemoteID:   d.ID,
			Number:     d.QuotationNumber,
			Party:      d.Contact.DisplayName(),
			Status:     d.Status,
			IssueDate:  d.IssueDate.Format("2006-01-02"),
			GrandTotal: d.GrandTotal,
			Payload:    payload,
		})
	}
	return s.SaveRows(rows)
}

// SavePurchaseOrders snapshots a batch of purchase orders.
func (s *Snapshot) SavePurchaseOrders(docs []api.PurchaseOrder) error {
	rows := make([]DocumentRow, 0, len(docs))
	for _, d := range docs {
		payload, err := json.Marshal(d)
		if err != nil {
			return fmt.Errorf("failed to encode purchase order %s: %w", d.ID, err)
		}
		rows = append(rows, DocumentRow{
			DocType:    DocTypePurchaseOrder,
			RemoteID:   d.ID,
			Number:     d.OrderNumber,
			Party:      d.Contact.DisplayName(),
			Status:     d.Status,
			IssueDate:  d.IssueDate.Format("2006-01-02"),
			GrandTotal: d.GrandTotal,
			Payload:    payload,
		})
	}
	return s.SaveRows(rows)
}

// SaveBills snapshots a batch of bills.
func (s *Snapshot) SaveBills(docs []api.Bill) error {
	rows := make([]DocumentRow, 0, len(docs))
	for _, d := range docs {
		payload, err := json.Marshal(d)
		if err != nil {
			return fmt.Errorf("failed to encode bill %s: %w", d.ID, err)
		}
		rows = append(rows, DocumentRow{
			DocType:    DocTypeBill,
			RemoteID:   d.ID,
			Number:     d.BillNumber,
			Party:      d.Party().DisplayName(),
			Status:     d.Status,
			IssueDate:  d.IssueDate.Format("2006-01-02"),
			GrandTotal: d.GrandTotal,
			Payload:    payload,
		})
	}
	return s.SaveRows(rows)
}

// payloads retrieves the stored JSON for every document of one type,
// ordered by issue date descending.
func (s *Snapshot) payloads(docType DocType) ([][]byte, error) {
	rows, err := s.conn.db.Query(
		`SELECT payload FROM documents WHERE doc_type = ? ORDER BY issue_date DESC`,
		string(docType),
	)
	if err != nil {
		return nil, fmt.Errorf("failed to query documents: %w", err)
	}
	defer rows.Close()

	var out [][]byte
	for rows.Next() {
		var payload string
		if err := rows.Scan(&payload); err != nil {
			return nil, fmt.Errorf("failed to scan payload: %w", err)
		}
		out = append(out, []byte(payload))
	}
	return out, rows.Err()
}

// LoadInvoices returns all snapshotted sales invoices.
func (s *Snapshot) LoadInvoices() ([]api.SalesInvoice, error) {
	payloads, err := s.payloads(DocTypeInvoice)
	if err != nil {
		return nil, err
	}
	docs := make([]api.SalesInvoice, 0, len(payloads))
	for _, p := range payloads {
		var d api.SalesInvoice
		if err := json.Unmarshal(p, &d); err != nil {
			return nil, fmt.Errorf("failed to decode invoice snapshot: %w", err)
		}
		docs = append(docs, d)
	}
	return docs, nil
}

// LoadQuotations returns all snapshotted quotations.
func (s *Snapshot) LoadQuotations() ([]api.Quotation, error) {
	payloads, err := s.payloads(DocTypeQuotation)
	if err != nil {
		return nil, err
	}
	docs := make([]api.Quotation, 0, len(payloads))
	for _, p := range payloads {
		var d api.Quotation
		if err := json.Unmarshal(p, &d); err != nil {
			return nil, fmt.Errorf("failed to decode quotation snapshot: %w", err)
		}
		docs = append(docs, d)
	}
	return docs, nil
}

// LoadPurchaseOrders returns all snapshotted purchase orders.
func (s *Snapshot) LoadPurchaseOrders() ([]api.PurchaseOrder, error) {
	payloads, err := s.payloads(DocTypePurchaseOrder)
	if err != nil {
		return nil, err
	}
	docs := make([]api.PurchaseOrder, 0, len(payloads))
	for _, p := range payloads {
		var d api.PurchaseOrder
		if err := json.Unmarshal(p, &d); err != nil {
			return nil, fmt.Errorf("failed to decode purchase order snapshot: %w", err)
		}
		docs = append(docs, d)
	}
	return docs, nil
}

// LoadBills returns all snapshotted bills.
func (s *Snapshot) LoadBills() ([]api.Bill, error) {
	payloads, err := s.payloads(DocTypeBill)
	if err != nil {
		return nil, err
	}
	docs := make([]api.Bill, 0, len(payloads))
	for _, p := range payloads {
		var d api.Bill
		if err := json.Unmarshal(p, &d); err != nil {
			return nil, fmt.Errorf("failed to decode bill snapshot: %w", err)
		}
		docs = append(docs, d)
	}
	return docs, nil
}

// RecordPull records one collection fetch of a pull run.
func (s *Snapshot) RecordPull(collection string, fetched int) error {
	_, err := s.conn.db.Exec(
		`INSERT INTO pull_history (collection, fetched) VALUES (?, ?)`,
		collection, fetched,
	)
	if err != nil {
		return fmt.Errorf("failed to record pull: %w", err)
	}
	return nil
}

// Stats represents snapshot statistics.
type Stats struct {
	TotalInvoices       int
	TotalQuotations     int
	TotalPurchaseOrders int
	TotalBills          int
	TotalPulls          int
	LastPull            sql.NullString
}

// GetStats retrieves snapshot statistics.
func (s *Snapshot) GetStats() (*Stats, error) {
	var stats Stats

	counts := []struct {
		docType DocType
		dest    *int
	}{
		{DocTypeInvoice, &stats.TotalInvoices},
		{DocTypeQuotation, &stats.TotalQuotations},
		{DocTypePurchaseOrder, &stats.TotalPurchaseOrders},
		{DocTypeBill, &stats.TotalBills},
	}
	for _, c := range counts {
		err := s.conn.db.QueryRow(
			`SELECT COUNT(*) FROM documents WHERE doc_type = ?`,
			string(c.docType),
		).Scan(c.dest)
		if err != nil {
			return nil, fmt.Errorf("failed to count %s documents: %w", c.docType, err)
		}
	}

	if err := s.conn.db.QueryRow(`SELECT COUNT(*) FROM pull_history`).Scan(&stats.TotalPulls); err != nil {
		return nil, fmt.Errorf("failed to count pulls: %w", err)
	}

	err := s.conn.db.QueryRow(`SELECT MAX(pulled_at) FROM pull_history`).Scan(&stats.LastPull)
	if err != nil && err != sql.ErrNoRows {
		return nil, fmt.Errorf("failed to get last pull time: %w", err)
	}

	return &stats, nil
}

// GetMetadata retrieves a metadata value.
func (s *Snapshot) GetMetadata(key string) (string, error) {
	var value string
	err := s.conn.db.QueryRow(`SELECT value FROM store_metadata WHERE key = ?`, key).Scan(&value)
	if err == sql.ErrNoRows {
		return "", nil
	}
	if err != nil {
		return "", fmt.Errorf("failed to get metadata: %w", err)
	}
	return value, nil
}

// SetMetadata sets a metadata value.
func (s *Snapshot) SetMetadata(key, value string) error {
	query := `
		INSERT INTO store_metadata (key, value, updated_at)
		VALUES (?, ?, CURRENT_TIMESTAMP)
		ON CONFLICT(key) DO UPDATE SET
			value = excluded.value,
			updated_at = CURRENT_TIMESTAMP
	`
	if _, err := s.conn.db.Exec(query, key, value); err != nil {
		return fmt.Errorf("failed to set metadata: %w", err)
	}
	return nil
}
