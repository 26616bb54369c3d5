// Package store provides the bbolt database wrapper for the backend
// emulator. Every record is stored as JSON under a string ID.
package store

import (
	"encoding/json"
	"errors"
	"fmt"

	bolt "go.etcd.io/bbolt"
)

var (
	// ErrNotFound is returned when a record is not found.
	ErrNotFound = errors.New("record not found")
)

// Bucket names, one per backend collection plus session tokens.
const (
	BucketTokens           = "tokens"
	BucketUsers            = "users"
	BucketContacts         = "contacts"
	BucketItems            = "items"
	BucketAccounts         = "accounts"
	BucketAccountTypes     = "account_types"
	BucketBankAccounts     = "bank_accounts"
	BucketBankAccountTypes = "bank_account_types"
	BucketTaxTypes         = "tax_types"
	BucketProjects         = "projects"
	BucketInvoices         = "invoices"
	BucketQuotations       = "quotations"
	BucketPurchaseOrders   = "purchase_orders"
	BucketBills            = "bills"
)

// AllBuckets lists every bucket created on open.
var AllBuckets = []string{
	BucketTokens, BucketUsers,
	BucketContacts, BucketItems,
	BucketAccounts, BucketAccountTypes,
	BucketBankAccounts, BucketBankAccountTypes,
	BucketTaxTypes, BucketProjects,
	BucketInvoices, BucketQuotations, BucketPurchaseOrders, BucketBills,
}

// Store represents the bbolt database wrapper.
type Store struct {
	db *bolt.DB
}

// New creates a new Store instance and initializes buckets.
func New(dbPath string) (*Store, error) {
	db, err := bolt.Open(dbPath, 0o600, nil)
	if err != nil {
		return nil, fmt.Errorf("failed to open database: %w", err)
	}

	err = db.Update(func(tx *bolt.Tx) error {
		for _, bucket := range AllBuckets {
			if _, err := tx.CreateBucketIfNotExists([]byte(bucket)); err != nil {
				return fmt.Errorf("failed to create bucket %s: %w", bucket, err)
			}
		}
		return nil
	})
	if err != nil {
		_ = db.Close()
		return nil, err
	}

	return &Store{db: db}, nil
}

// Close closes the database.
func (s *Store) Close() error {
	return s.db.Close()
}

// NextSeq returns the next sequence number for a bucket.
func (s *Store) NextSeq(bucketName string) (uint64, error) {
	var seq uint64
	err := s.db.Update(func(tx *bolt.Tx) error {
		b := tx.Bucket([]byte(bucketName))
		if b == nil {
			return fmt.Errorf("bucket %s not found", bucketName)
		}

		var err error
		seq, err = b.NextSequence()
		return err
	})
	return seq, err
}

// NextID generates the next ID for a bucket, prefixed for readability.
func (s *Store) NextID(bucketName, prefix string) (string, error) {
	seq, err := s.NextSeq(bucketName)
	if err != nil {
		return "", err
	}
	return fmt.Sprintf("%s-%06d", prefix, seq), nil
}

// Put stores a value in the specified bucket with the given ID.
func (s *Store) Put(bucketName, id string, value interface{}) error {
	return s.db.Update(func(tx *bolt.Tx) error {
		b := tx.Bucket([]byte(bucketName))
		if b == nil {
			return fmt.Errorf("bucket %s not found", bucketName)
		}

		data, err := json.Marshal(value)
		if err != nil {
			return fmt.Errorf("failed to marshal value: %w", err)
		}

		return b.Put([]byte(id), data)
	})
}

// Get retrieves a value from the specified bucket with the given ID.
func (s *Store) Get(bucketName, id string, value interface{}) error {
	return s.db.View(func(tx *bolt.Tx) error {
		b := tx.Bucket([]byte(bucketName))
		if b == nil {
			return fmt.Errorf("bucket %s not found", bucketName)
		}

		data := b.Get([]byte(id))
		if data == nil {
			return ErrNotFound
		}

		return json.Unmarshal(data, value)
	})
}

// Delete removes a value from the specified bucket with the given ID.
// It reports ErrNotFound when no record has that ID.
func (s *Store) Delete(bucketName, id string) error {
	return s.db.Update(func(tx *bolt.Tx) error {
		b := tx.Bucket([]byte(bucketName))
		if b == nil {
			return fmt.Errorf("bucket %s not found", bucketName)
		}

		if b.Get([]byte(id)) == nil {
			return ErrNotFound
		}

		return b.Delete([]byte(id))
	})
}

// List retrieves all values from the specified bucket, optionally
// filtered by a predicate over the raw JSON.
func (s *Store) List(bucketName string, filter func(data []byte) bool) ([][]byte, error) {
	var results [][]byte

	err := s.db.View(func(tx *bolt.Tx) error {
		b := tx.Bucket([]byte(bucketName))
		if b == nil {
			return fmt.Errorf("bucket %s not found", bucketName)
		}

		return b.ForEach(func(k, v []byte) error {
			if filter == nil || filter(v) {
				// Copy the value since it's only valid during the transaction.
				copied := make([]byte, len(v))
				copy(copied, v)
				results = append(results, copied)
			}
			return nil
		})
	})

	return results, err
}

// Count returns the number of records in a bucket.
func (s *Store) Count(bucketName string) (int, error) {
	var n int
	err := s.db.View(func(tx *bolt.Tx) error {
		b := tx.Bucket([]byte(bucketName))
		if b == nil {
			return fmt.Errorf("bucket %s not found", bucketName)
		}
		n = b.Stats().KeyN
		return nil
	})
	return n, err
}

// PutString stores a string value with a string key.
func (s *Store) PutString(bucketName, key, value string) error {
	return s.db.Update(func(tx *bolt.Tx) error {
		b := tx.Bucket([]byte(bucketName))
		if b == nil {
			return fmt.Errorf("bucket %s not found", bucketName)
		}

		return b.Put([]byte(key), []byte(value))
	})
}

// GetString retrieves a string value with a string key.
func (s *Store) GetString(bucketName, key string) (string, error) {
	var value string
	err := s.db.View(func(tx *bolt.Tx) error {
		b := tx.Bucket([]byte(bucketName))
		if b == nil {
			return fmt.Errorf("bucket %s not found", bucketName)
		}

		data := b.Get([]byte(key))
		if data == nil {
			return ErrNotFound
		}

		value = string(data)
		return nil
	})
	return value, err
}

// DeleteString removes a value with a string key.
func (s *Store) DeleteString(bucketName, key string) error {
	return s.db.Update(func(tx *bolt.Tx) error {
		b := tx.Bucket([]byte(bucketName))
		if b == nil {
			return fmt.Errorf("bucket %s not found", bucketName)
		}

		return b.Delete([]byte(key))
	})
}
