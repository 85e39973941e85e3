package ledger

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/pointbank/passbook/internal/model"
)

func tx(deposit, withdraw int64) model.Transaction {
	return model.Transaction{Deposit: deposit, Withdraw: withdraw}
}

func balances(rows []model.LedgerRow) []int64 {
	out := make([]int64, len(rows))
	for i, r := range rows {
		out[i] = r.Balance
	}
	return out
}

func TestCompute_Example(t *testing.T) {
	rows := Compute([]model.Transaction{tx(100, 0), tx(0, 30), tx(50, 0)})
	assert.Equal(t, []int64{100, 70, 120}, balances(rows))
	assert.Equal(t, []int64{100, -30, 50}, []int64{rows[0].Net, rows[1].Net, rows[2].Net})
	assert.Equal(t, int64(120), CurrentBalance(rows))
}

func TestCompute_Empty(t *testing.T) {
	rows := Compute(nil)
	require.NotNil(t, rows)
	assert.Empty(t, rows)
	assert.Equal(t, int64(0), CurrentBalance(rows))

	rows = Compute([]model.Transaction{})
	assert.Empty(t, rows)
}

func TestCompute_RunningSum(t *testing.T) {
	txs := []model.Transaction{tx(5, 0), tx(0, 12), tx(40, 0), tx(0, 3), tx(7, 0), tx(0, 100)}
	rows := Compute(txs)
	require.Len(t, rows, len(txs))

	assert.Equal(t, txs[0].Deposit-txs[0].Withdraw, rows[0].Balance)
	for i := 1; i < len(rows); i++ {
		want := rows[i-1].Balance + (txs[i].Deposit - txs[i].Withdraw)
		assert.Equal(t, want, rows[i].Balance, "row %d", i)
	}
	assert.Equal(t, int64(-63), CurrentBalance(rows))
}

func TestCompute_Idempotent(t *testing.T) {
	txs := []model.Transaction{
		{ID: "a", Memo: "allowance", Deposit: 100},
		{ID: "b", Memo: "snack", Withdraw: 15},
	}
	first := Compute(txs)
	second := Compute(txs)
	assert.Equal(t, first, second)
}

func TestCompute_KeepsOrderAndInput(t *testing.T) {
	txs := []model.Transaction{
		{ID: "3", Withdraw: 10},
		{ID: "1", Deposit: 50},
		{ID: "2", Deposit: 5},
	}
	orig := append([]model.Transaction(nil), txs...)

	rows := Compute(txs)
	assert.Equal(t, orig, txs, "input must not be modified")
	assert.Equal(t, "3", rows[0].ID)
	assert.Equal(t, "1", rows[1].ID)
	assert.Equal(t, "2", rows[2].ID)
	assert.Equal(t, []int64{-10, 40, 45}, balances(rows))
}

func TestCompute_MalformedRowsStillComputed(t *testing.T) {
	rows := Compute([]model.Transaction{tx(10, 4), tx(0, 0)})
	assert.Equal(t, int64(6), rows[0].Net)
	assert.Equal(t, int64(0), rows[1].Net)
	assert.Equal(t, []int64{6, 6}, balances(rows))
}

func TestTotals(t *testing.T) {
	rows := Compute([]model.Transaction{tx(100, 0), tx(0, 30), tx(50, 0)})
	dep, wd := Totals(rows)
	assert.Equal(t, int64(150), dep)
	assert.Equal(t, int64(30), wd)
}
