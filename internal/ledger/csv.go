package ledger

import (
	"encoding/csv"
	"fmt"
	"io"
	"strings"
	"time"

	"github.com/shopspring/decimal"

	"github.com/ledgerline-dev/ledgerline/internal/model"
)

// TransactionsHeader is the CSV header for transactions.csv.
const TransactionsHeader = "transaction_id,transaction_date,accounting_date,description,category_id," +
	"from_amount,from_symbol,from_account_id,from_account_name," +
	"to_amount,to_symbol,to_account_id,to_account_name"

const (
	txnNumFields   = 13
	colTxnID       = 0
	colTxnDate     = 1
	colAcctDate    = 2
	colTxnDesc     = 3
	colTxnCategory = 4
	colFromAmount  = 5
	colFromSymbol  = 6
	colFromAcctID  = 7
	colFromName    = 8
	colToAmount    = 9
	colToSymbol    = 10
	colToAcctID    = 11
	colToName      = 12
)

// RecordsHeader is the CSV header for imported-records.csv.
const RecordsHeader = "record_id,importer_id,imported_at,outcome,transaction_id"

const (
	recNumFields   = 5
	colRecID       = 0
	colRecImporter = 1
	colRecAt       = 2
	colRecOutcome  = 3
	colRecTxnID    = 4
)

// ReadTransactions reads all canonical transactions from a transactions.csv
// reader.
func ReadTransactions(r io.Reader) ([]model.Transaction, error) {
	cr := csv.NewReader(r)
	cr.FieldsPerRecord = txnNumFields

	records, err := cr.ReadAll()
	if err != nil {
		return nil, fmt.Errorf("reading transactions CSV: %w", err)
	}

	if len(records) <= 1 {
		return nil, nil
	}

	var txns []model.Transaction
	for i, rec := range records[1:] {
		txn, err := UnmarshalTransaction(rec)
		if err != nil {
			return nil, fmt.Errorf("row %d: %w", i+2, err)
		}
		txns = append(txns, txn)
	}
	return txns, nil
}

// WriteTransactions writes transactions.csv including the header.
func WriteTransactions(w io.Writer, txns []model.Transaction) error {
	cw := csv.NewWriter(w)
	defer cw.Flush()

	if err := cw.Write(strings.Split(TransactionsHeader, ",")); err != nil {
		return fmt.Errorf("writing header: %w", err)
	}
	for i, txn := range txns {
		if err := cw.Write(MarshalTransaction(txn)); err != nil {
			return fmt.Errorf("writing row %d: %w", i+2, err)
		}
	}
	return cw.Error()
}

// MarshalTransaction converts a Transaction to a CSV row.
func MarshalTransaction(txn model.Transaction) []string {
	row := make([]string, txnNumFields)
	row[colTxnID] = txn.ID
	row[colTxnDate] = txn.TransactionDate
	row[colAcctDate] = txn.AccountingDate
	row[colTxnDesc] = txn.Description
	row[colTxnCategory] = txn.CategoryID
	row[colFromAmount] = txn.From.Amount.StringFixed(2)
	row[colFromSymbol] = txn.From.SymbolID
	row[colFromAcctID] = txn.From.AccountID
	row[colFromName] = txn.From.AccountName
	row[colToAmount] = txn.To.Amount.StringFixed(2)
	row[colToSymbol] = txn.To.SymbolID
	row[colToAcctID] = txn.To.AccountID
	row[colToName] = txn.To.AccountName
	return row
}

// UnmarshalTransaction converts a CSV row to a Transaction.
func UnmarshalTransaction(record []string) (model.Transaction, error) {
	if len(record) != txnNumFields {
		return model.Transaction{}, fmt.Errorf("expected %d fields, got %d", txnNumFields, len(record))
	}

	fromAmount, err := decimal.NewFromString(record[colFromAmount])
	if err != nil {
		return model.Transaction{}, fmt.Errorf("parsing from_amount %q: %w", record[colFromAmount], err)
	}
	toAmount, err := decimal.NewFromString(record[colToAmount])
	if err != nil {
		return model.Transaction{}, fmt.Errorf("parsing to_amount %q: %w", record[colToAmount], err)
	}

	return model.Transaction{
		ID:              record[colTxnID],
		TransactionDate: record[colTxnDate],
		AccountingDate:  record[colAcctDate],
		Description:     record[colTxnDesc],
		CategoryID:      record[colTxnCategory],
		From: model.TransactionLeg{
			Amount:      fromAmount,
			SymbolID:    record[colFromSymbol],
			AccountID:   record[colFromAcctID],
			AccountName: record[colFromName],
		},
		To: model.TransactionLeg{
			Amount:      toAmount,
			SymbolID:    record[colToSymbol],
			AccountID:   record[colToAcctID],
			AccountName: record[colToName],
		},
	}, nil
}

// ReadRecords reads all dedup records from an imported-records.csv reader.
func ReadRecords(r io.Reader) ([]model.ImportedRecord, error) {
	cr := csv.NewReader(r)
	cr.FieldsPerRecord = recNumFields

	records, err := cr.ReadAll()
	if err != nil {
		return nil, fmt.Errorf("reading imported records CSV: %w", err)
	}

	if len(records) <= 1 {
		return nil, nil
	}

	var out []model.ImportedRecord
	for i, rec := range records[1:] {
		parsed, err := UnmarshalRecord(rec)
		if err != nil {
			return nil, fmt.Errorf("row %d: %w", i+2, err)
		}
		out = append(out, parsed)
	}
	return out, nil
}

// WriteRecords writes imported-records.csv including the header.
func WriteRecords(w io.Writer, records []model.ImportedRecord) error {
	cw := csv.NewWriter(w)
	defer cw.Flush()

	if err := cw.Write(strings.Split(RecordsHeader, ",")); err != nil {
		return fmt.Errorf("writing header: %w", err)
	}
	for i, rec := range records {
		if err := cw.Write(MarshalRecord(rec)); err != nil {
			return fmt.Errorf("writing row %d: %w", i+2, err)
		}
	}
	return cw.Error()
}

// MarshalRecord converts an ImportedRecord to a CSV row.
func MarshalRecord(rec model.ImportedRecord) []string {
	row := make([]string, recNumFields)
	row[colRecID] = rec.ID
	row[colRecImporter] = rec.ImporterID
	row[colRecAt] = rec.ImportedAt.UTC().Format(time.RFC3339)
	row[colRecOutcome] = string(rec.Outcome)
	row[colRecTxnID] = rec.TransactionID
	return row
}

// UnmarshalRecord converts a CSV row to an ImportedRecord.
func UnmarshalRecord(record []string) (model.ImportedRecord, error) {
	if len(record) != recNumFields {
		return model.ImportedRecord{}, fmt.Errorf("expected %d fields, got %d", recNumFields, len(record))
	}

	at, err := time.Parse(time.RFC3339, record[colRecAt])
	if err != nil {
		return model.ImportedRecord{}, fmt.Errorf("parsing imported_at %q: %w", record[colRecAt], err)
	}

	outcome := model.ImportOutcome(record[colRecOutcome])
	if outcome != model.OutcomeImported && outcome != model.OutcomeSkipped {
		return model.ImportedRecord{}, fmt.Errorf("invalid outcome %q", record[colRecOutcome])
	}

	return model.ImportedRecord{
		ID:            record[colRecID],
		ImporterID:    record[colRecImporter],
		ImportedAt:    at,
		Outcome:       outcome,
		TransactionID: record[colRecTxnID],
	}, nil
}
