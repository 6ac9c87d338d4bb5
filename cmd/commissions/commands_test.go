package main

import (
	"bytes"
	"testing"

	commissiondomain "github.com/railzwaylabs/commissions/internal/commission/domain"
	ledgerdomain "github.com/railzwaylabs/commissions/internal/ledger/domain"
	sellerdomain "github.com/railzwaylabs/commissions/internal/seller/domain"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestRootCommandRegistersSubcommands(t *testing.T) {
	root := newRootCmd()
	names := map[string]bool{}
	for _, cmd := range root.Commands() {
		names[cmd.Name()] = true
	}
	for _, want := range []string{"migrate", "serve", "scheduler", "all", "import", "summary", "seed-tiers"} {
		assert.True(t, names[want], want)
	}
}

func TestImportRejectsUnknownLedger(t *testing.T) {
	root := newRootCmd()
	root.SetArgs([]string{"import", "invoices", "x.csv"})
	root.SetOut(&bytes.Buffer{})
	err := root.Execute()
	require.Error(t, err)
	assert.Contains(t, err.Error(), "unknown ledger")
}

func TestPrintSellerSummary(t *testing.T) {
	var buf bytes.Buffer
	printSellerSummary(&buf, []commissiondomain.SellerSummary{
		{SellerName: "Ana", IsInternal: true, OrderCount: 1, TotalSales: 10697.19, TotalCommission: 128.37, AverageCommission: 128.37},
	})
	out := buf.String()
	assert.Contains(t, out, "SELLER")
	assert.Contains(t, out, "Ana")
	assert.Contains(t, out, "internal")
	assert.Contains(t, out, "R$ 10.697,19")
}

func TestPrintCitySummary(t *testing.T) {
	var buf bytes.Buffer
	printCitySummary(&buf, &commissiondomain.CitySummaryResult{
		Cities:   []commissiondomain.CitySummary{{City: "Curitiba", OrderCount: 1, TotalSales: 10697.19, TotalCommission: 128.37, AverageCommission: 128.37}},
		Recorded: 1,
		Rejected: 1,
		Warnings: []string{"seller Davi has no city"},
	})
	out := buf.String()
	assert.Contains(t, out, "Curitiba")
	assert.Contains(t, out, "1 orders recorded, 1 rejected")
	assert.Contains(t, out, "warning: seller Davi has no city")
}

func TestPrintIngest(t *testing.T) {
	var buf bytes.Buffer
	printIngest(&buf, &ledgerdomain.IngestResult{
		Kind:     ledgerdomain.KindSales,
		FileName: "saida.csv",
		Rows:     4,
		BatchID:  "b1",
		Sellers:  &sellerdomain.SyncResult{Created: []string{"Ana", "Bruno"}},
	})
	assert.Contains(t, buf.String(), "saida.csv: 4 rows")
	assert.Contains(t, buf.String(), "sellers: 2 created, 0 updated")
}
