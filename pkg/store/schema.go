// Package store provides a local SQLite snapshot of backend documents
// for offline reporting and pull bookkeeping.
package store

// Schema defines the SQL statements to create the snapshot tables.
// Open applies it on every connection; everything is IF NOT EXISTS.
const Schema = `
-- Document snapshot table
-- Holds the last pulled copy of each backend document
CREATE TABLE IF NOT EXISTS documents (
    id INTEGER PRIMARY KEY AUTOINCREMENT,
    doc_type TEXT NOT NULL,            -- 'invoice', 'quotation', 'purchase_order' or 'bill'
    remote_id TEXT NOT NULL,           -- _id from the backend API
    number TEXT,                       -- document number
    party TEXT,                        -- customer or vendor display name
    status TEXT,                       -- backend status value
    issue_date TEXT,                   -- YYYY-MM-DD
    grand_total REAL NOT NULL DEFAULT 0,
    payload TEXT NOT NULL,             -- full document JSON
    pulled_at TIMESTAMP DEFAULT CURRENT_TIMESTAMP,
    UNIQUE(doc_type, remote_id)
);

CREATE INDEX IF NOT EXISTS idx_documents_type_id
    ON documents(doc_type, remote_id);

CREATE INDEX IF NOT EXISTS idx_documents_date
    ON documents(issue_date);

-- Pull history table
-- One row per collection per pull run
CREATE TABLE IF NOT EXISTS pull_history (
    id INTEGER PRIMARY KEY AUTOINCREMENT,
    collection TEXT NOT NULL,          -- backend collection name
    fetched INTEGER NOT NULL,          -- number of documents fetched
    pulled_at TIMESTAMP DEFAULT CURRENT_TIMESTAMP
);

CREATE INDEX IF NOT EXISTS idx_pull_history_collection
    ON pull_history(collection);

-- Store metadata table
-- Stores key-value metadata about pull operations
CREATE TABLE IF NOT EXISTS store_metadata (
    key TEXT PRIMARY KEY,
    value TEXT NOT NULL,
    updated_at TIMESTAMP DEFAULT CURRENT_TIMESTAMP
);
`
