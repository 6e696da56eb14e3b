package importer

import (
	"fmt"
	"io"
	"time"

	"github.com/shopspring/decimal"

	"github.com/ledgerline-dev/ledgerline/internal/model"
	"github.com/ledgerline-dev/ledgerline/internal/tabular"
)

// chaseDateFormat is the MM/dd/yyyy format Chase uses in both export types.
const chaseDateFormat = "01/02/2006"

var chaseCardSchema = tabular.Schema{
	Columns: []tabular.Column{
		{Name: "Transaction Date"},
		{Name: "Post Date"},
		{Name: "Description"},
		{Name: "Category"},
		{Name: "Type", Enum: []string{"Sale", "Return", "Payment", "Fee", "Adjustment"}},
		{Name: "Amount"},
		{Name: "Memo"},
	},
}

// ChaseCardImporter normalizes Chase credit card CSV exports.
type ChaseCardImporter struct {
	cfg Config
}

// NewChaseCardImporter creates an importer linked to the configured card
// account and currency.
func NewChaseCardImporter(cfg Config) *ChaseCardImporter {
	return &ChaseCardImporter{cfg: cfg}
}

// Provider returns the provider discriminant.
func (p *ChaseCardImporter) Provider() string { return "chase-card" }

// GetTransactions parses a Chase card export and returns parsed transactions.
func (p *ChaseCardImporter) GetTransactions(r io.Reader) ([]model.ParsedTransaction, error) {
	rows, err := tabular.Parse(r, chaseCardSchema)
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

func (p *ChaseCardImporter) normalize(row tabular.Row) (model.ParsedTransaction, error) {
	rawDate := row["Transaction Date"]
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
	amount := signed.Abs()

	var txType model.TransactionType
	var fromAccount, toAccount *model.AccountRef

	switch {
	case row["Type"] == "Payment":
		// A card payment can't be attributed without more context. Leave both
		// sides unresolved so the draft lands in review.
		txType = model.TypeTransfer
	case signed.IsNegative():
		txType = model.TypeExpense
		fromAccount = model.KnownAccount(p.cfg.AccountID)
		toAccount = model.UnknownAccount(desc)
	default:
		txType = model.TypeIncome
		fromAccount = model.UnknownAccount(desc)
		toAccount = model.KnownAccount(p.cfg.AccountID)
	}

	uncategorized := ""
	return model.ParsedTransaction{
		ProviderTransactionID: fmt.Sprintf("chase-card-%s-%s-%s", rawDate, rawAmount, desc),
		TransactionType:       txType,
		Description:           &desc,
		Date:                  &date,
		CategoryID:            &uncategorized,
		From:                  model.Leg{Amount: &amount, SymbolID: p.cfg.SymbolID, Account: fromAccount},
		To:                    model.Leg{Amount: &amount, SymbolID: p.cfg.SymbolID, Account: toAccount},
	}, nil
}

// chaseDateToISO reformats MM/dd/yyyy into yyyy-MM-dd.
func chaseDateToISO(s string) (string, error) {
	d, err := time.Parse(chaseDateFormat, s)
	if err != nil {
		return "", fmt.Errorf("parsing date %q: %w", s, err)
	}
	return d.Format("2006-01-02"), nil
}
