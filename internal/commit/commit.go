// Package commit converts accepted drafts into canonical ledger transactions
// and dedup records, submitted as one atomic batch.
package commit

import (
	"errors"
	"fmt"
	"time"

	"github.com/ledgerline-dev/ledgerline/internal/model"
)

// ErrReviewPending blocks a commit while any draft still needs review.
var ErrReviewPending = errors.New("transactions pending review; resolve or skip them first")

// Writer is the ledger write collaborator. Write is all-or-nothing: on error
// no transaction or record has been persisted.
//
//go:generate mockgen -destination=mocks/mock_commit.go -source=commit.go Writer
type Writer interface {
	Write(txns []model.Transaction, records []model.ImportedRecord) error
}

// unattributedAccountName is the display name for a leg whose counterparty
// was never resolved or named.
const unattributedAccountName = "N/A"

// Result summarizes what a successful commit wrote.
type Result struct {
	Transactions []model.Transaction
	Records      []model.ImportedRecord
}

// Processor builds and submits the commit batch for one importer.
type Processor struct {
	ledger     Writer
	importerID string
	now        func() time.Time
	newID      func() string
}

// NewProcessor creates a Processor. now and newID are injectable for tests.
func NewProcessor(ledger Writer, importerID string, now func() time.Time, newID func() string) *Processor {
	return &Processor{ledger: ledger, importerID: importerID, now: now, newID: newID}
}

// Commit writes every ready-to-import draft to the ledger. If any draft is
// still in review the whole commit is rejected with ErrReviewPending: no
// writes, no status changes. On success the returned collection has every
// committed draft flipped to skipped-already-imported, so a repeated commit
// is a no-op.
func (p *Processor) Commit(drafts []model.DraftTransaction) ([]model.DraftTransaction, *Result, error) {
	for _, d := range drafts {
		if d.Status == model.StatusNeedsReview {
			return nil, nil, ErrReviewPending
		}
	}

	now := p.now()
	var txns []model.Transaction
	var records []model.ImportedRecord
	for _, d := range drafts {
		if d.Status != model.StatusReadyToImport {
			continue
		}
		txID := p.newID()
		txns = append(txns, p.materialize(d, txID))
		records = append(records, model.ImportedRecord{
			ID:            d.ProviderTransactionID,
			ImporterID:    p.importerID,
			ImportedAt:    now,
			Outcome:       model.OutcomeImported,
			TransactionID: txID,
		})
	}

	if len(records) > 0 {
		if err := p.ledger.Write(txns, records); err != nil {
			return nil, nil, fmt.Errorf("writing import batch: %w", err)
		}
	}

	out := make([]model.DraftTransaction, len(drafts))
	copy(out, drafts)
	for i := range out {
		if out[i].Status == model.StatusReadyToImport {
			out[i].Status = model.StatusSkippedAlreadyImported
		}
	}
	return out, &Result{Transactions: txns, Records: records}, nil
}

func (p *Processor) materialize(d model.DraftTransaction, txID string) model.Transaction {
	date := p.now().Format("2006-01-02")
	if d.Date != nil {
		date = *d.Date
	}

	var desc, category string
	if d.Description != nil {
		desc = *d.Description
	}
	if d.CategoryID != nil {
		category = *d.CategoryID
	}

	return model.Transaction{
		ID:              txID,
		Description:     desc,
		CategoryID:      category,
		TransactionDate: date,
		AccountingDate:  date,
		From:            materializeLeg(d.From),
		To:              materializeLeg(d.To),
	}
}

func materializeLeg(leg model.Leg) model.TransactionLeg {
	out := model.TransactionLeg{SymbolID: leg.SymbolID}
	if leg.Amount != nil {
		out.Amount = *leg.Amount
	}

	switch {
	case leg.Account.Known():
		out.AccountID = leg.Account.ID
	case leg.Account != nil && leg.Account.Name != "":
		out.AccountName = leg.Account.Name
	default:
		out.AccountName = unattributedAccountName
	}
	return out
}
