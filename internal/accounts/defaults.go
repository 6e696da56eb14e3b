package accounts

import "github.com/ledgerline-dev/ledgerline/internal/model"

// DefaultChart returns the starter chart of accounts for a new ledger.
func DefaultChart() []model.Account {
	return []model.Account{
		{ID: "acct-checking", Name: "Checking", Type: model.AccountTypeAsset, Description: "Primary checking account"},
		{ID: "acct-savings", Name: "Savings", Type: model.AccountTypeAsset, Description: "Savings account"},
		{ID: "acct-credit-card", Name: "Credit Card", Type: model.AccountTypeLiability, Description: "Credit card"},
		{ID: "acct-opening-balance", Name: "Opening Balances", Type: model.AccountTypeEquity},
		{ID: "acct-salary", Name: "Salary", Type: model.AccountTypeRevenue},
		{ID: "acct-groceries", Name: "Groceries", Type: model.AccountTypeExpense},
		{ID: "acct-dining", Name: "Dining Out", Type: model.AccountTypeExpense},
		{ID: "acct-subscriptions", Name: "Subscriptions", Type: model.AccountTypeExpense, Description: "Recurring software and media"},
	}
}
