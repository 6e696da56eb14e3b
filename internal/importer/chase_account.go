package importer

import (
	"fmt"
	"io"

	"github.com/shopspring/decimal"

	"github.com/ledgerline-dev/ledgerline/internal/model"
	"github.com/ledgerline-dev/ledgerline/internal/tabular"
)

var chaseAccountSchema = tabular.Schema{
	Columns: []tabular.Column{
		{Name: "Details", Enum: []string{"CREDIT", "DEBIT"}},
		{Name: "Posting Date"},
		{Name: "Description"},
		{Name: "Amount"},
		{Name: "Type", Enum: []string{
			"ACH_CREDIT", "ACH_DEBIT", "DEBIT_CARD", "LOAN_PMT", "MISC_CREDIT",
			"ATM", "MISC_DEBIT", "BILLPAY", "CHASE_TO_PARTNERFI",
			"FEE_TRANSACTION", "CHECK_DEPOSIT", "PARTNERFI_TO_CHASE",
		}},
		{Name: "Balance"},
		{Name: "Check or Slip #"},
	},
}

// ChaseAccountImporter normalizes Chase checking/savings account CSV exports.
type ChaseAccountImporter struct {
	cfg Config
}

// NewChaseAccountImporter creates an importer linked to the configured bank
// account and currency.
func NewChaseAccountImporter(cfg Config) *ChaseAccountImporter {
	return &ChaseAccountImporter{cfg: cfg}
}

// Provider returns the provider discriminant.
func (p *ChaseAccountImporter) Provider() string { return "chase-account" }

// GetTransactions parses a Chase account export and returns parsed
// transactions.
func (p *ChaseAccountImporter) GetTransactions(r io.Reader) ([]model.ParsedTransaction, error) {
	rows, err := tabular.Parse(r, chaseAccountSchema)
	if err != nil {
		return nil, err
	}

	txns := make([]model.ParsedTransaction, 0, len(rows))
	for i, row := range rows {
		txn, err := p.normalize(row)
		if err != nil {
			return nil, fmt.Errorf("row %d: %w", i+2, err)
		}
		txns = append(txns, txn)
	}
	return txns, nil
}

func (p *ChaseAccountImporter) normalize(row tabular.Row) (model.ParsedTransaction, error) {
	rawDate := row["Posting Date"]
	rawAmount := row["Amount"]
	desc := row["Description"]

	date, err := chaseDateToISO(rawDate)
	if err != nil {
		return model.ParsedTransaction{}, err
	}

	signed, err := decimal.NewFromString(rawAmount)
	if err != nil {
		return model.ParsedTransaction{}, fmt.Errorf("parsing amount %q: %w", rawAmount, err)
	}
	// Always stored as an absolute value; the row's sign duplicates what the
	// Type column already says.
	amount := signed.Abs()

	var txType model.TransactionType
	var fromAccount, toAccount *model.AccountRef

	switch row["Type"] {
	case "ACH_CREDIT", "MISC_CREDIT":
		txType = model.TypeIncome
		fromAccount = model.UnknownAccount("")
		toAccount = model.KnownAccount(p.cfg.AccountID)
	case "ACH_DEBIT", "DEBIT_CARD", "FEE_TRANSACTION", "MISC_DEBIT":
		txType = model.TypeExpense
		fromAccount = model.KnownAccount(p.cfg.AccountID)
		toAccount = model.UnknownAccount("")
	case "LOAN_PMT":
		txType = model.TypeTransfer
		fromAccount = model.KnownAccount(p.cfg.AccountID)
		toAccount = model.UnknownAccount("")
	default:
		// ATM, BILLPAY and the rest can't be mapped to a direction. Leave
		// both sides unresolved so the draft lands in review.
		txType = model.TypeTransfer
	}

	uncategorized := ""
	return model.ParsedTransaction{
		ProviderTransactionID: fmt.Sprintf("chase-account-%s-%s-%s", rawDate, rawAmount, desc),
		TransactionType:       txType,
		Description:           &desc,
		Date:                  &date,
		CategoryID:            &uncategorized,
		From:                  model.Leg{Amount: &amount, SymbolID: p.cfg.SymbolID, Account: fromAccount},
		To:                    model.Leg{Amount: &amount, SymbolID: p.cfg.SymbolID, Account: toAccount},
	}, nil
}
