package ledger

import (
	"fmt"
	"strings"
	"time"

	"go.uber.org/multierr"

	"github.com/ledgerline-dev/ledgerline/internal/model"
)

// isoDateFormat is the canonical date layout for persisted transactions.
const isoDateFormat = "2006-01-02"

// ValidateTransactions checks canonical transactions before they are
// persisted. All problems are reported, not just the first.
func ValidateTransactions(txns []model.Transaction) error {
	var errs []error
	seen := make(map[string]bool, len(txns))

	for _, txn := range txns {
		if txn.ID == "" {
			errs = append(errs, fmt.Errorf("transaction with description %q: empty id", txn.Description))
			continue
		}
		if seen[txn.ID] {
			errs = append(errs, fmt.Errorf("transaction %s: duplicate id", txn.ID))
		}
		seen[txn.ID] = true

		if _, err := time.Parse(isoDateFormat, txn.TransactionDate); err != nil {
			errs = append(errs, fmt.Errorf("transaction %s: invalid transaction date %q", txn.ID, txn.TransactionDate))
		}
		if _, err := time.Parse(isoDateFormat, txn.AccountingDate); err != nil {
			errs = append(errs, fmt.Errorf("transaction %s: invalid accounting date %q", txn.ID, txn.AccountingDate))
		}

		errs = append(errs, validateLeg(txn.ID, "from", txn.From)...)
		errs = append(errs, validateLeg(txn.ID, "to", txn.To)...)
	}

	return multierr.Combine(errs...)
}

func validateLeg(txnID, side string, leg model.TransactionLeg) []error {
	var errs []error
	if leg.Amount.IsNegative() {
		errs = append(errs, fmt.Errorf("transaction %s: %s amount %s is negative", txnID, side, leg.Amount))
	}
	if !leg.Amount.Equal(leg.Amount.Round(2)) {
		errs = append(errs, fmt.Errorf("transaction %s: %s amount %s has more than two decimal places", txnID, side, leg.Amount))
	}
	if strings.TrimSpace(leg.SymbolID) == "" {
		errs = append(errs, fmt.Errorf("transaction %s: %s leg missing symbol", txnID, side))
	}
	if leg.AccountID == "" && leg.AccountName == "" {
		errs = append(errs, fmt.Errorf("transaction %s: %s leg has neither account id nor account name", txnID, side))
	}
	return errs
}
