package model

import (
	"github.com/shopspring/decimal"
)

// TransactionType is the direction of a transaction relative to the ledger.
type TransactionType string

const (
	TypeIncome   TransactionType = "income"
	TypeExpense  TransactionType = "expense"
	TypeTransfer TransactionType = "transfer"
	TypeUnknown  TransactionType = "unknown"
)

// AccountRef is one side's account reference: either a known ledger account
// (by id) or a free-text counterparty placeholder (by name). A nil *AccountRef
// means the normalizer could not attribute the side at all.
type AccountRef struct {
	ID   string
	Name string
}

// KnownAccount returns a reference to an existing ledger account.
func KnownAccount(id string) *AccountRef { return &AccountRef{ID: id} }

// UnknownAccount returns a free-text counterparty placeholder.
func UnknownAccount(name string) *AccountRef { return &AccountRef{Name: name} }

// Known reports whether the reference points at a ledger account.
func (a *AccountRef) Known() bool { return a != nil && a.ID != "" }

// Leg is one side of a transaction. Amount is an absolute magnitude; the
// direction is conveyed solely by which leg holds a known account, never by
// sign.
type Leg struct {
	Amount   *decimal.Decimal
	SymbolID string
	Account  *AccountRef
}

// ParsedTransaction is the normalized, pre-review representation of one
// imported row.
//
// CategoryID distinguishes "not set" (nil) from "explicitly uncategorized"
// (pointer to empty string). Normalizers always emit the explicit form;
// categorization itself happens later.
type ParsedTransaction struct {
	ProviderTransactionID string
	TransactionType       TransactionType
	Description           *string
	Date                  *string // ISO yyyy-MM-dd
	CategoryID            *string
	From                  Leg
	To                    Leg
}

// Classify derives the transaction direction from which sides reference a
// known account. Pure; shared by normalizers, the review engine, and display.
func Classify(from, to *AccountRef) TransactionType {
	switch {
	case from.Known() && to.Known():
		return TypeTransfer
	case from.Known():
		return TypeExpense
	case to.Known():
		return TypeIncome
	default:
		return TypeUnknown
	}
}
