package receipt

import (
	"bytes"
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/mmynk/patungan/internal/calculator"
)

func TestFormatRupiah(t *testing.T) {
	tests := []struct {
		amount int64
		want   string
	}{
		{0, "Rp0"},
		{500, "Rp500"},
		{30000, "Rp30.000"},
		{1234567, "Rp1.234.567"},
		{-5000, "-Rp5.000"},
	}
	for _, tt := range tests {
		assert.Equal(t, tt.want, FormatRupiah(tt.amount))
	}
}

func TestRender(t *testing.T) {
	res := calculator.ComputeBill(calculator.Input{
		People: []string{"Ani", "Budi"},
		Expenses: []calculator.Expense{
			{ID: "e1", Item: "Nasi goreng", Amount: 30000, Who: []string{"Ani", "Budi"}, PaidBy: "Ani"},
			{ID: "e2", Item: "Es teh", Amount: 5000, Who: []string{"Budi"}},
		},
		AdditionalExpenses: []calculator.AdditionalExpense{
			{ID: "a1", Name: "Pajak", Amount: 3000, Who: []string{"Ani", "Budi"}, PaidBy: "Ani",
				SplitType: calculator.SplitProportionally},
		},
	})

	var buf bytes.Buffer
	require.NoError(t, Render(&buf, "Makan siang", res))
	out := buf.String()

	assert.Contains(t, out, "Makan siang\n")
	assert.Contains(t, out, "Rp33.000")
	assert.Contains(t, out, "Ani [Si Paling Traktir")
	assert.Contains(t, out, "  - Nasi goreng")
	assert.Contains(t, out, "  - Pajak (prop)")
	assert.Contains(t, out, "Budi -> Ani")
	assert.Contains(t, out, "Rp16.500")
	assert.Contains(t, out, "1 incomplete item(s) skipped.")
}

func TestRender_Settled(t *testing.T) {
	res := calculator.ComputeBill(calculator.Input{People: []string{"Ani"}})

	var buf bytes.Buffer
	require.NoError(t, Render(&buf, "", res))
	assert.Contains(t, buf.String(), "All settled.")
}

type failingWriter struct{}

func (failingWriter) Write([]byte) (int, error) { return 0, errors.New("disk full") }

func TestRender_WriteError(t *testing.T) {
	res := calculator.ComputeBill(calculator.Input{People: []string{"Ani"}})
	assert.Error(t, Render(failingWriter{}, "x", res))
}
