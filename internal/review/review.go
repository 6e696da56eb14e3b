// Package review implements the draft review workflow that gates which
// imported rows may be committed to the ledger. The draft collection is only
// ever updated through copy-on-write reducers: every transition and edit
// produces a fresh collection, so derived views of a previous snapshot stay
// valid without locks.
package review

import (
	"fmt"

	"github.com/shopspring/decimal"

	"github.com/ledgerline-dev/ledgerline/internal/model"
	"github.com/ledgerline-dev/ledgerline/internal/notify"
)

// RecordFinder is the dedup lookup collaborator. A nil record (with nil
// error) means the provider transaction id has never been imported.
//
//go:generate mockgen -destination=mocks/mock_review.go -source=review.go RecordFinder
type RecordFinder interface {
	FindImportedRecord(providerTransactionID string) (*model.ImportedRecord, error)
}

// NeedsReview reports whether a parsed transaction is incomplete or
// inconsistent: any required field missing, or the stated type disagreeing
// with what the account references imply. Pure; no collaborators.
func NeedsReview(pt model.ParsedTransaction) bool {
	if pt.Date == nil ||
		pt.Description == nil ||
		pt.CategoryID == nil ||
		pt.From.Amount == nil ||
		pt.From.SymbolID == "" ||
		pt.From.Account == nil ||
		pt.To.Amount == nil ||
		pt.To.SymbolID == "" ||
		pt.To.Account == nil {
		return true
	}
	return model.Classify(pt.From.Account, pt.To.Account) != pt.TransactionType
}

// Initialize assigns the initial status to every parsed transaction: a dedup
// hit wins, then the validity predicate, then ready-to-import.
func Initialize(parsed []model.ParsedTransaction, finder RecordFinder) ([]model.DraftTransaction, error) {
	drafts := make([]model.DraftTransaction, 0, len(parsed))
	for _, pt := range parsed {
		rec, err := finder.FindImportedRecord(pt.ProviderTransactionID)
		if err != nil {
			return nil, fmt.Errorf("looking up imported record %s: %w", pt.ProviderTransactionID, err)
		}

		status := model.StatusReadyToImport
		switch {
		case rec != nil:
			status = model.StatusSkippedAlreadyImported
		case NeedsReview(pt):
			status = model.StatusNeedsReview
		}

		drafts = append(drafts, model.DraftTransaction{ParsedTransaction: pt, Status: status})
	}
	return drafts, nil
}

// apply returns a fresh collection with transform run against the draft
// matching the provider transaction id. The input slice is never mutated.
func apply(drafts []model.DraftTransaction, id string, transform func(*model.DraftTransaction)) []model.DraftTransaction {
	out := make([]model.DraftTransaction, len(drafts))
	copy(out, drafts)
	for i := range out {
		if out[i].ProviderTransactionID == id {
			transform(&out[i])
			break
		}
	}
	return out
}

// MarkReviewed moves a needs-review draft to ready-to-import. If the draft is
// still invalid the status is unchanged and an error notification is emitted.
func MarkReviewed(drafts []model.DraftTransaction, id string, n notify.Notifier) []model.DraftTransaction {
	return apply(drafts, id, func(d *model.DraftTransaction) {
		if d.Status != model.StatusNeedsReview {
			return
		}
		if NeedsReview(d.ParsedTransaction) {
			n.Error("Please fix the errors before marking as reviewed")
			return
		}
		d.Status = model.StatusReadyToImport
	})
}

// Skip moves a pending draft to skipped-temporarily.
func Skip(drafts []model.DraftTransaction, id string) []model.DraftTransaction {
	return apply(drafts, id, func(d *model.DraftTransaction) {
		if d.Status == model.StatusNeedsReview || d.Status == model.StatusReadyToImport {
			d.Status = model.StatusSkippedTemporarily
		}
	})
}

// Unskip brings a skipped draft back, re-running the validity predicate to
// decide between needs-review and ready-to-import.
func Unskip(drafts []model.DraftTransaction, id string) []model.DraftTransaction {
	return apply(drafts, id, func(d *model.DraftTransaction) {
		if d.Status != model.StatusSkippedTemporarily && d.Status != model.StatusSkippedPermanently {
			return
		}
		if NeedsReview(d.ParsedTransaction) {
			d.Status = model.StatusNeedsReview
		} else {
			d.Status = model.StatusReadyToImport
		}
	})
}

// SkipAllPendingReview moves every needs-review draft to skipped-temporarily
// and leaves all other statuses untouched.
func SkipAllPendingReview(drafts []model.DraftTransaction) []model.DraftTransaction {
	out := make([]model.DraftTransaction, len(drafts))
	copy(out, drafts)
	for i := range out {
		if out[i].Status == model.StatusNeedsReview {
			out[i].Status = model.StatusSkippedTemporarily
		}
	}
	return out
}

// SetType changes the stated transaction type. Swapping between expense and
// income reverses the legs (same two parties, opposite direction) and keeps
// the current status; any other change can't be expressed as a swap, so the
// draft is sent back to review with a warning.
func SetType(drafts []model.DraftTransaction, id string, value model.TransactionType, n notify.Notifier) []model.DraftTransaction {
	return apply(drafts, id, func(d *model.DraftTransaction) {
		swappable := (d.TransactionType == model.TypeExpense && value == model.TypeIncome) ||
			(d.TransactionType == model.TypeIncome && value == model.TypeExpense)
		if swappable {
			d.From, d.To = d.To, d.From
		} else if d.Status != model.StatusNeedsReview {
			n.Warning("Transaction moved to the review section")
			d.Status = model.StatusNeedsReview
		}
		d.TransactionType = value
	})
}

// SetDate edits the calendar date in place. No automatic status change.
func SetDate(drafts []model.DraftTransaction, id, date string) []model.DraftTransaction {
	return apply(drafts, id, func(d *model.DraftTransaction) {
		d.Date = &date
	})
}

// SetDescription edits the description in place.
func SetDescription(drafts []model.DraftTransaction, id, description string) []model.DraftTransaction {
	return apply(drafts, id, func(d *model.DraftTransaction) {
		d.Description = &description
	})
}

// SetAmount edits the shared amount: both legs always carry the same
// magnitude.
func SetAmount(drafts []model.DraftTransaction, id string, amount decimal.Decimal) []model.DraftTransaction {
	return apply(drafts, id, func(d *model.DraftTransaction) {
		from, to := amount, amount
		d.From.Amount = &from
		d.To.Amount = &to
	})
}

// SetCategory edits the category; an empty id means explicitly uncategorized.
func SetCategory(drafts []model.DraftTransaction, id, categoryID string) []model.DraftTransaction {
	return apply(drafts, id, func(d *model.DraftTransaction) {
		d.CategoryID = &categoryID
	})
}

// SetFromAccount edits the from-side account reference.
func SetFromAccount(drafts []model.DraftTransaction, id string, ref *model.AccountRef) []model.DraftTransaction {
	return apply(drafts, id, func(d *model.DraftTransaction) {
		d.From.Account = ref
	})
}

// SetToAccount edits the to-side account reference.
func SetToAccount(drafts []model.DraftTransaction, id string, ref *model.AccountRef) []model.DraftTransaction {
	return apply(drafts, id, func(d *model.DraftTransaction) {
		d.To.Account = ref
	})
}

// ByStatus groups a draft collection for per-status views and tab counts.
func ByStatus(drafts []model.DraftTransaction) map[model.DraftStatus][]model.DraftTransaction {
	out := make(map[model.DraftStatus][]model.DraftTransaction)
	for _, d := range drafts {
		out[d.Status] = append(out[d.Status], d)
	}
	return out
}
