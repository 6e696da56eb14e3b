package review

import (
	"github.com/shopspring/decimal"

	"github.com/ledgerline-dev/ledgerline/internal/model"
	"github.com/ledgerline-dev/ledgerline/internal/notify"
)

// Session holds the draft collection for one review run. All mutations go
// through the package's reducers, replacing the collection wholesale.
type Session struct {
	drafts   []model.DraftTransaction
	notifier notify.Notifier
}

// NewSession initializes a review session from freshly parsed transactions.
func NewSession(parsed []model.ParsedTransaction, finder RecordFinder, n notify.Notifier) (*Session, error) {
	drafts, err := Initialize(parsed, finder)
	if err != nil {
		return nil, err
	}
	return &Session{drafts: drafts, notifier: n}, nil
}

// Drafts returns the current collection snapshot.
func (s *Session) Drafts() []model.DraftTransaction { return s.drafts }

// Replace installs a new collection, e.g. the one returned by a commit.
func (s *Session) Replace(drafts []model.DraftTransaction) { s.drafts = drafts }

// ByStatus groups the current collection.
func (s *Session) ByStatus() map[model.DraftStatus][]model.DraftTransaction {
	return ByStatus(s.drafts)
}

func (s *Session) MarkReviewed(id string) {
	s.drafts = MarkReviewed(s.drafts, id, s.notifier)
}

func (s *Session) Skip(id string) {
	s.drafts = Skip(s.drafts, id)
}

func (s *Session) Unskip(id string) {
	s.drafts = Unskip(s.drafts, id)
}

func (s *Session) SkipAllPendingReview() {
	s.drafts = SkipAllPendingReview(s.drafts)
}

func (s *Session) SetType(id string, value model.TransactionType) {
	s.drafts = SetType(s.drafts, id, value, s.notifier)
}

func (s *Session) SetDate(id, date string) {
	s.drafts = SetDate(s.drafts, id, date)
}

func (s *Session) SetDescription(id, description string) {
	s.drafts = SetDescription(s.drafts, id, description)
}

func (s *Session) SetAmount(id string, amount decimal.Decimal) {
	s.drafts = SetAmount(s.drafts, id, amount)
}

func (s *Session) SetCategory(id, categoryID string) {
	s.drafts = SetCategory(s.drafts, id, categoryID)
}

func (s *Session) SetFromAccount(id string, ref *model.AccountRef) {
	s.drafts = SetFromAccount(s.drafts, id, ref)
}

func (s *Session) SetToAccount(id string, ref *model.AccountRef) {
	s.drafts = SetToAccount(s.drafts, id, ref)
}
