// Package ledger persists committed transactions and their import records
// as CSV files under the ledger root.
package ledger

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"

	"github.com/ledgerline-dev/ledgerline/internal/accounts"
	"github.com/ledgerline-dev/ledgerline/internal/model"
)

const (
	transactionsPath = "transactions.csv"
	recordsPath      = "imported-records.csv"
)

// ErrAccountNotFound is returned when an account id is not in the chart of
// accounts.
var ErrAccountNotFound = errors.New("account not found")

// Store is a file-backed ledger rooted at a directory. It holds the
// canonical transaction log, the import dedup records, and the chart of
// accounts.
type Store struct {
	root     string
	accounts *accounts.Service
}

// Open opens the ledger at root. The chart of accounts must already exist;
// transactions.csv and imported-records.csv are created on first write.
func Open(root string) (*Store, error) {
	accts, err := accounts.Load(root)
	if err != nil {
		return nil, fmt.Errorf("opening ledger: %w", err)
	}
	return &Store{root: root, accounts: accts}, nil
}

// Root returns the ledger root directory.
func (s *Store) Root() string {
	return s.root
}

// Accounts returns the chart of accounts service.
func (s *Store) Accounts() *accounts.Service {
	return s.accounts
}

// ResolveAccount returns the account for an id, or ErrAccountNotFound.
func (s *Store) ResolveAccount(id string) (model.Account, error) {
	a, ok := s.accounts.Get(id)
	if !ok {
		return model.Account{}, fmt.Errorf("resolving account %q: %w", id, ErrAccountNotFound)
	}
	return a, nil
}

// Transactions returns all persisted transactions.
func (s *Store) Transactions() ([]model.Transaction, error) {
	f, err := os.Open(filepath.Join(s.root, transactionsPath))
	if err != nil {
		if os.IsNotExist(err) {
			return nil, nil
		}
		return nil, fmt.Errorf("opening transactions file: %w", err)
	}
	defer f.Close()
	return ReadTransactions(f)
}

// Records returns all persisted import records.
func (s *Store) Records() ([]model.ImportedRecord, error) {
	f, err := os.Open(filepath.Join(s.root, recordsPath))
	if err != nil {
		if os.IsNotExist(err) {
			return nil, nil
		}
		return nil, fmt.Errorf("opening imported records file: %w", err)
	}
	defer f.Close()
	return ReadRecords(f)
}

// FindImportedRecord returns the import record whose id matches the
// provider transaction id, or nil if none exists.
func (s *Store) FindImportedRecord(providerTransactionID string) (*model.ImportedRecord, error) {
	records, err := s.Records()
	if err != nil {
		return nil, err
	}
	for _, rec := range records {
		if rec.ID == providerTransactionID {
			return &rec, nil
		}
	}
	return nil, nil
}

// Write appends a batch of transactions and their import records. The
// batch is validated first, and a record id that already exists in the
// ledger is rejected so a provider transaction is never imported twice.
// Both files are staged as temp files and renamed into place, so a
// failure before the first rename leaves the ledger untouched.
func (s *Store) Write(txns []model.Transaction, records []model.ImportedRecord) error {
	if err := ValidateTransactions(txns); err != nil {
		return fmt.Errorf("validating transactions: %w", err)
	}

	existingTxns, err := s.Transactions()
	if err != nil {
		return err
	}
	existingRecords, err := s.Records()
	if err != nil {
		return err
	}

	persisted := make(map[string]bool, len(existingRecords))
	for _, rec := range existingRecords {
		persisted[rec.ID] = true
	}
	for _, rec := range records {
		if rec.ID == "" {
			return fmt.Errorf("import record for transaction %s: empty id", rec.TransactionID)
		}
		if persisted[rec.ID] {
			return fmt.Errorf("import record %s: already imported", rec.ID)
		}
		persisted[rec.ID] = true
	}

	txnTmp, err := s.stage("transactions-*.csv", func(f *os.File) error {
		return WriteTransactions(f, append(existingTxns, txns...))
	})
	if err != nil {
		return err
	}
	defer os.Remove(txnTmp)

	recTmp, err := s.stage("imported-records-*.csv", func(f *os.File) error {
		return WriteRecords(f, append(existingRecords, records...))
	})
	if err != nil {
		return err
	}
	defer os.Remove(recTmp)

	if err := os.Rename(txnTmp, filepath.Join(s.root, transactionsPath)); err != nil {
		return fmt.Errorf("replacing transactions file: %w", err)
	}
	if err := os.Rename(recTmp, filepath.Join(s.root, recordsPath)); err != nil {
		return fmt.Errorf("replacing imported records file: %w", err)
	}
	return nil
}

func (s *Store) stage(pattern string, write func(f *os.File) error) (string, error) {
	f, err := os.CreateTemp(s.root, pattern)
	if err != nil {
		return "", fmt.Errorf("creating temp file: %w", err)
	}

	if err := write(f); err != nil {
		f.Close()
		os.Remove(f.Name())
		return "", err
	}
	if err := f.Close(); err != nil {
		os.Remove(f.Name())
		return "", fmt.Errorf("closing temp file: %w", err)
	}
	return f.Name(), nil
}
