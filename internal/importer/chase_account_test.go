package importer

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/ledgerline-dev/ledgerline/internal/model"
)

const chaseAccountHeader = "Details,Posting Date,Description,Amount,Type,Balance,Check or Slip #\n"

var accountConfig = Config{ImporterID: "imp-2", AccountID: "acct-checking", SymbolID: "USD"}

func TestChaseAccount_CreditTypes(t *testing.T) {
	csv := chaseAccountHeader +
		"CREDIT,01/03/2025,ACME CONSULTING INVOICE 1042,3500.00,ACH_CREDIT,4200.00,\n" +
		"CREDIT,01/04/2025,REFUND,12.00,MISC_CREDIT,4212.00,\n"

	p := NewChaseAccountImporter(accountConfig)
	txns, err := p.GetTransactions(strings.NewReader(csv))
	require.NoError(t, err)
	require.Len(t, txns, 2)

	for _, txn := range txns {
		assert.Equal(t, model.TypeIncome, txn.TransactionType)
		require.NotNil(t, txn.From.Account)
		assert.False(t, txn.From.Account.Known())
		assert.Equal(t, "acct-checking", txn.To.Account.ID)
	}
	assert.Equal(t, "3500", txns[0].From.Amount.String())
}

func TestChaseAccount_DebitTypes(t *testing.T) {
	csv := chaseAccountHeader +
		"DEBIT,01/03/2025,GITHUB *PRO SUBSCRIPTION,-4.00,ACH_DEBIT,100.00,\n" +
		"DEBIT,01/05/2025,CARD PURCHASE,-20.00,DEBIT_CARD,80.00,\n" +
		"DEBIT,01/06/2025,MONTHLY SERVICE FEE,-12.00,FEE_TRANSACTION,68.00,\n" +
		"DEBIT,01/07/2025,MISC WITHDRAWAL,-5.00,MISC_DEBIT,63.00,\n"

	p := NewChaseAccountImporter(accountConfig)
	txns, err := p.GetTransactions(strings.NewReader(csv))
	require.NoError(t, err)
	require.Len(t, txns, 4)

	for _, txn := range txns {
		assert.Equal(t, model.TypeExpense, txn.TransactionType)
		assert.Equal(t, "acct-checking", txn.From.Account.ID)
		require.NotNil(t, txn.To.Account)
		assert.False(t, txn.To.Account.Known())
		assert.False(t, txn.From.Amount.IsNegative(), "amount stored as absolute value")
	}
	assert.Equal(t, "4", txns[0].From.Amount.String())
}

func TestChaseAccount_LoanPaymentIsTransfer(t *testing.T) {
	csv := chaseAccountHeader + "DEBIT,01/10/2025,AUTO LOAN PAYMENT,-250.00,LOAN_PMT,500.00,\n"

	p := NewChaseAccountImporter(accountConfig)
	txns, err := p.GetTransactions(strings.NewReader(csv))
	require.NoError(t, err)
	require.Len(t, txns, 1)

	txn := txns[0]
	assert.Equal(t, model.TypeTransfer, txn.TransactionType)
	assert.Equal(t, "acct-checking", txn.From.Account.ID)
	require.NotNil(t, txn.To.Account)
	assert.False(t, txn.To.Account.Known())
}

func TestChaseAccount_UnmappedTypeForcesReview(t *testing.T) {
	csv := chaseAccountHeader +
		"DEBIT,01/11/2025,ATM WITHDRAWAL,-60.00,ATM,440.00,\n" +
		"DEBIT,01/12/2025,ONLINE BILL PAYMENT,-80.00,BILLPAY,360.00,\n"

	p := NewChaseAccountImporter(accountConfig)
	txns, err := p.GetTransactions(strings.NewReader(csv))
	require.NoError(t, err)
	require.Len(t, txns, 2)

	for _, txn := range txns {
		assert.Equal(t, model.TypeTransfer, txn.TransactionType)
		assert.Nil(t, txn.From.Account)
		assert.Nil(t, txn.To.Account)
	}
}

func TestChaseAccount_ProviderTransactionID(t *testing.T) {
	csv := chaseAccountHeader + "DEBIT,01/03/2025,GITHUB *PRO SUBSCRIPTION,-4.00,ACH_DEBIT,100.00,\n"

	p := NewChaseAccountImporter(accountConfig)
	txns, err := p.GetTransactions(strings.NewReader(csv))
	require.NoError(t, err)
	assert.Equal(t, "chase-account-01/03/2025--4.00-GITHUB *PRO SUBSCRIPTION", txns[0].ProviderTransactionID)
}

func TestChaseAccount_InvalidDetails(t *testing.T) {
	csv := chaseAccountHeader + "TRANSFER,01/03/2025,desc,-4.00,ACH_DEBIT,100.00,\n"

	p := NewChaseAccountImporter(accountConfig)
	txns, err := p.GetTransactions(strings.NewReader(csv))
	assert.Nil(t, txns)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "field Details")
}
