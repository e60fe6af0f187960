package main

import (
	"bytes"
	"encoding/json"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/mmynk/patungan/pkg/api"
)

const billJSON = `{
  "people": ["Ani", "Budi"],
  "expenses": [
    {"item": "Sate", "amount": 60000, "who": ["Ani", "Budi"], "paidBy": "Ani"},
    {"item": "Kopi", "amount": 10000, "who": ["Budi"]}
  ],
  "additionalExpenses": [
    {"name": "Pajak", "amount": 6000, "who": ["Ani", "Budi"], "paidBy": "Ani", "splitType": "proportionally"}
  ]
}`

func TestRun_Receipt(t *testing.T) {
	var out bytes.Buffer
	require.NoError(t, run("", "Sate Pak Kumis", false, strings.NewReader(billJSON), &out))

	assert.Contains(t, out.String(), "Sate Pak Kumis")
	assert.Contains(t, out.String(), "Rp66.000")
	assert.Contains(t, out.String(), "Budi -> Ani")
	assert.Contains(t, out.String(), "Rp33.000")
}

func TestRun_JSONFromFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "bill.json")
	require.NoError(t, os.WriteFile(path, []byte(billJSON), 0o600))

	var out bytes.Buffer
	require.NoError(t, run(path, "", true, strings.NewReader(""), &out))

	var summary api.Summary
	require.NoError(t, json.Unmarshal(out.Bytes(), &summary))
	assert.Equal(t, int64(66000), summary.TotalSpent)
	assert.Equal(t, []string{"e2"}, summary.Excluded)
	assert.Equal(t, []api.SettlementInstruction{{From: "Budi", To: "Ani", Amount: 33000}},
		summary.SettlementInstructions)
}

func TestRun_Errors(t *testing.T) {
	var out bytes.Buffer
	assert.Error(t, run(filepath.Join(t.TempDir(), "missing.json"), "", false, nil, &out))
	assert.Error(t, run("", "", false, strings.NewReader("{not json"), &out))
	assert.Error(t, run("", "", false, strings.NewReader(`{"peeple": []}`), &out))
}
