package domain_test

import (
	"testing"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/fintrax/ledger-api/internal/core/domain"
)

func balancedTransfer() domain.Transaction {
	return domain.Transaction{
		TransactionID: "t1",
		FromAccountID: "a1",
		ToAccountID:   "a2",
		Amount:        decimal.NewFromInt(100),
		CurrencyCode:  "USD",
		ExchangeRate:  decimal.NewFromInt(1),
		Kind:          domain.Transfer,
		Entries: []domain.Entry{
			{AccountID: "a1", Amount: decimal.NewFromInt(-100), CurrencyCode: "USD"},
			{AccountID: "a2", Amount: decimal.NewFromInt(100), CurrencyCode: "USD"},
		},
	}
}

func TestTransactionValidate_Balanced(t *testing.T) {
	require.NoError(t, balancedTransfer().Validate())
}

func TestTransactionValidate_SingleEntry(t *testing.T) {
	txn := balancedTransfer()
	txn.Entries = txn.Entries[:1]
	assert.ErrorIs(t, txn.Validate(), domain.ErrEntriesMinCount)
}

func TestTransactionValidate_TwoDebits(t *testing.T) {
	txn := balancedTransfer()
	txn.Entries = []domain.Entry{
		{AccountID: "a1", Amount: decimal.NewFromInt(-50), CurrencyCode: "USD"},
		{AccountID: "a2", Amount: decimal.NewFromInt(-50), CurrencyCode: "USD"},
	}
	assert.ErrorIs(t, txn.Validate(), domain.ErrEntriesMinCount)
}

func TestTransactionValidate_Unbalanced(t *testing.T) {
	txn := balancedTransfer()
	txn.Entries[1].Amount = decimal.NewFromInt(99)
	assert.ErrorIs(t, txn.Validate(), domain.ErrEntriesUnbalanced)
}

func TestTransactionValidate_ZeroAmountEntry(t *testing.T) {
	txn := balancedTransfer()
	txn.Entries = append(txn.Entries, domain.Entry{AccountID: "a3", Amount: decimal.Zero, CurrencyCode: "USD"})
	assert.Error(t, txn.Validate())
}

func TestTransactionValidate_CrossCurrencyBalanced(t *testing.T) {
	// 100 USD out, 91 EUR in at rate 0.91. Expressed in USD the legs cancel.
	txn := domain.Transaction{
		TransactionID: "t2",
		Amount:        decimal.NewFromInt(100),
		CurrencyCode:  "USD",
		ExchangeRate:  decimal.RequireFromString("0.91"),
		Kind:          domain.Transfer,
		Entries: []domain.Entry{
			{AccountID: "a1", Amount: decimal.NewFromInt(-100), CurrencyCode: "USD"},
			{AccountID: "a2", Amount: decimal.RequireFromString("91"), CurrencyCode: "EUR"},
		},
	}
	require.NoError(t, txn.Validate())
}

func TestTransactionValidate_CrossCurrencyWithoutRate(t *testing.T) {
	txn := domain.Transaction{
		TransactionID: "t3",
		CurrencyCode:  "USD",
		Entries: []domain.Entry{
			{AccountID: "a1", Amount: decimal.NewFromInt(-100), CurrencyCode: "USD"},
			{AccountID: "a2", Amount: decimal.NewFromInt(91), CurrencyCode: "EUR"},
		},
	}
	assert.Error(t, txn.Validate())
}

func TestBalanceChanges_SumsPerAccount(t *testing.T) {
	txn := balancedTransfer()
	txn.Entries = append(txn.Entries,
		domain.Entry{AccountID: "a1", Amount: decimal.NewFromInt(-10), CurrencyCode: "USD"},
		domain.Entry{AccountID: "a2", Amount: decimal.NewFromInt(10), CurrencyCode: "USD"},
	)

	changes := txn.BalanceChanges()
	assert.True(t, changes["a1"].Equal(decimal.NewFromInt(-110)))
	assert.True(t, changes["a2"].Equal(decimal.NewFromInt(110)))
}

func TestEntryIsDebit(t *testing.T) {
	assert.True(t, domain.Entry{Amount: decimal.NewFromInt(-1)}.IsDebit())
	assert.False(t, domain.Entry{Amount: decimal.NewFromInt(1)}.IsDebit())
}
