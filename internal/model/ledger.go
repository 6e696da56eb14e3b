package model

import "github.com/shopspring/decimal"

// TransactionLeg is one resolved side of a canonical transaction. Exactly one
// of AccountID / AccountName is set: an id for a ledger account, a name for an
// external counterparty.
type TransactionLeg struct {
	Amount      decimal.Decimal
	SymbolID    string
	AccountID   string
	AccountName string
}

// Transaction is the canonical ledger-owned transaction created at commit.
type Transaction struct {
	ID              string
	Description     string
	CategoryID      string // empty = uncategorized
	TransactionDate string // ISO yyyy-MM-dd
	AccountingDate  string
	From            TransactionLeg
	To              TransactionLeg
}
