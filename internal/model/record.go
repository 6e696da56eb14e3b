package model

import "time"

// ImportOutcome says what happened to an imported source row.
type ImportOutcome string

const (
	OutcomeImported ImportOutcome = "imported"
	OutcomeSkipped  ImportOutcome = "skipped"
)

// ImportedRecord is the persisted dedup marker for one source row. At most one
// record exists per provider transaction id.
type ImportedRecord struct {
	ID            string // provider transaction id; the dedup key
	ImporterID    string
	ImportedAt    time.Time
	Outcome       ImportOutcome
	TransactionID string // set when Outcome == OutcomeImported
}
