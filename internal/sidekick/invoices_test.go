package sidekick

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestParseAmount(t *testing.T) {
	tests := []struct {
		in   string
		want float64
	}{
		{"", 0},
		{"12", 12},
		{"12,5", 12.5},
		{"12.5", 12.5},
		{"1 000,50", 1000.5},
		{"12abc", 12},
		{"abc", 0},
		{"-3", -3},
		{"1,2,3", 1.2},
		{",5", 0.5},
		{"20 %", 20},
	}
	for _, tt := range tests {
		t.Run(tt.in, func(t *testing.T) {
			assert.InDelta(t, tt.want, ParseAmount(tt.in), 1e-9)
		})
	}
}

func TestComputeTotals(t *testing.T) {
	lines := []InvoiceLine{
		{Description: "Concert", Quantity: "1", UnitPrice: "1000", VATPercent: "5,5"},
		{Description: "Merch", Quantity: "2", UnitPrice: "15", VATPercent: "20"},
		{Description: "Free", Quantity: "", UnitPrice: "10", VATPercent: ""},
	}
	got := ComputeTotals(lines)
	assert.InDelta(t, 1030, got.HT, 1e-9)
	assert.InDelta(t, 1055+36, got.TTC, 1e-9)
}

func TestFormatMoney(t *testing.T) {
	assert.Equal(t, "0,00", FormatMoney(0))
	assert.Equal(t, "1234,50", FormatMoney(1234.5))
	assert.Equal(t, "0,33", FormatMoney(1.0/3))
}

func TestNextInvoiceNumber(t *testing.T) {
	assert.Equal(t, "FAC-2025-001", NextInvoiceNumber(nil, 2025))

	invoices := []Invoice{
		{Number: "FAC-2024-007"},
		{Number: "FAC-2025-002"},
		{Number: "hand written"},
	}
	assert.Equal(t, "FAC-2025-008", NextInvoiceNumber(invoices, 2025))
}

func TestIsOverdue(t *testing.T) {
	today := time.Date(2025, 3, 14, 9, 0, 0, 0, time.Local)

	tests := []struct {
		name string
		inv  Invoice
		want bool
	}{
		{"pending past due", Invoice{Status: InvoicePending, DueDate: "13/03/2025"}, true},
		{"pending due today", Invoice{Status: InvoicePending, DueDate: "14/03/2025"}, false},
		{"pending future", Invoice{Status: InvoicePending, DueDate: "01/04/2025"}, false},
		{"paid past due", Invoice{Status: InvoicePaid, DueDate: "01/01/2025"}, false},
		{"no due date", Invoice{Status: InvoicePending}, false},
		{"unreadable due date", Invoice{Status: InvoicePending, DueDate: "soon"}, false},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, IsOverdue(tt.inv, today))
		})
	}
}

func TestAddInvoice(t *testing.T) {
	now := time.Date(2025, 3, 14, 10, 0, 0, 0, time.UTC)
	existing := []Invoice{{ID: 4, Number: "FAC-2025-004", Client: "Old", Status: InvoicePaid}}

	t.Run("requires a client", func(t *testing.T) {
		got, _, err := AddInvoice(existing, Invoice{Client: "  "}, now)
		assert.ErrorIs(t, err, ErrInvoiceClient)
		assert.Equal(t, existing, got)
	})

	t.Run("numbers and totals", func(t *testing.T) {
		got, inv, err := AddInvoice(existing, Invoice{
			Client: " La Cigale ",
			Lines: []InvoiceLine{
				{Description: "Cachet", Type: LineService, Quantity: "1", UnitPrice: "800", VATPercent: "0"},
				{Description: "", UnitPrice: ""},
				{Description: "Transport", Quantity: "1", UnitPrice: "100", VATPercent: "20"},
			},
		}, now)
		require.NoError(t, err)

		require.Len(t, got, 2)
		assert.Equal(t, inv, got[1])
		assert.Equal(t, int64(5), inv.ID)
		assert.Equal(t, "FAC-2025-005", inv.Number)
		assert.Equal(t, "La Cigale", inv.Client)
		assert.Equal(t, InvoicePending, inv.Status)
		assert.Equal(t, "920,00", inv.Amount)
		require.Len(t, inv.Lines, 2)
		assert.Equal(t, int64(1), inv.Lines[0].ID)
		assert.Equal(t, int64(2), inv.Lines[1].ID)
	})

	t.Run("no lines keeps typed amount", func(t *testing.T) {
		_, inv, err := AddInvoice(nil, Invoice{Client: "Label", Amount: "150,00", Number: "F-1"}, now)
		require.NoError(t, err)
		assert.Equal(t, "150,00", inv.Amount)
		assert.Equal(t, "F-1", inv.Number)
		assert.Nil(t, inv.Lines)
		assert.Equal(t, int64(1), inv.ID)
	})

	t.Run("no lines and no amount", func(t *testing.T) {
		_, inv, err := AddInvoice(nil, Invoice{Client: "Label"}, now)
		require.NoError(t, err)
		assert.Equal(t, "0,00", inv.Amount)
	})

	t.Run("input slice untouched", func(t *testing.T) {
		in := make([]Invoice, 1, 10)
		in[0] = existing[0]
		_, _, err := AddInvoice(in, Invoice{Client: "X"}, now)
		require.NoError(t, err)
		assert.Len(t, in, 1)
	})
}

func TestMarkInvoicePaid(t *testing.T) {
	invoices := []Invoice{{ID: 1, Status: InvoicePending}, {ID: 2, Status: InvoicePending}}
	got := MarkInvoicePaid(invoices, 2)

	assert.Equal(t, InvoicePaid, got[1].Status)
	assert.Equal(t, InvoicePending, got[0].Status)
	assert.Equal(t, InvoicePending, invoices[1].Status, "input is not modified")
}
