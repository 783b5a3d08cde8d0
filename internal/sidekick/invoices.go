package sidekick

import (
	"errors"
	"fmt"
	"math"
	"regexp"
	"strconv"
	"strings"
	"time"
	"unicode"

	"sidekick/internal/datefmt"
)

// ParseAmount reads a user-typed amount. The first comma is taken as the
// decimal separator, whitespace is ignored and anything after the leading
// number is dropped. Text with no leading number is 0.
func ParseAmount(s string) float64 {
	if s == "" {
		s = "0"
	}
	s = strings.Replace(s, ",", ".", 1)
	s = strings.Map(func(r rune) rune {
		if unicode.IsSpace(r) {
			return -1
		}
		return r
	}, s)
	f, err := strconv.ParseFloat(numericPrefix(s), 64)
	if err != nil || math.IsNaN(f) {
		return 0
	}
	return f
}

var numberPrefix = regexp.MustCompile(`^[+-]?(\d+\.?\d*|\.\d+)([eE][+-]?\d+)?`)

func numericPrefix(s string) string {
	return numberPrefix.FindString(s)
}

// Totals are the sums of an invoice's lines before (HT) and after (TTC) VAT.
type Totals struct {
	HT  float64
	TTC float64
}

// ComputeTotals sums quantity × unit price over lines, adding each line's
// VAT percentage for the TTC total.
func ComputeTotals(lines []InvoiceLine) Totals {
	var t Totals
	for _, l := range lines {
		ht := ParseAmount(l.Quantity) * ParseAmount(l.UnitPrice)
		t.HT += ht
		t.TTC += ht * (1 + ParseAmount(l.VATPercent)/100)
	}
	return t
}

// FormatMoney renders n with two decimals and a decimal comma.
func FormatMoney(n float64) string {
	return strings.Replace(strconv.FormatFloat(n, 'f', 2, 64), ".", ",", 1)
}

var invoiceSeq = regexp.MustCompile(`-(\d+)$`)

// NextInvoiceNumber returns FAC-{year}-{NNN} where NNN is one more than the
// largest trailing sequence number among invoices, whatever their year.
func NextInvoiceNumber(invoices []Invoice, year int) string {
	highest := 0
	for _, inv := range invoices {
		m := invoiceSeq.FindStringSubmatch(inv.Number)
		if m == nil {
			continue
		}
		if n, err := strconv.Atoi(m[1]); err == nil && n > highest {
			highest = n
		}
	}
	return fmt.Sprintf("FAC-%d-%03d", year, highest+1)
}

// IsOverdue reports whether a pending invoice's due date is before today.
// Paid invoices and invoices without a readable due date are never overdue.
func IsOverdue(inv Invoice, today time.Time) bool {
	if inv.Status != InvoicePending || inv.DueDate == "" {
		return false
	}
	due, ok := datefmt.ParseDisplayDate(inv.DueDate)
	if !ok {
		return false
	}
	return datefmt.DateKey(due) < datefmt.TodayKey(today)
}

// ErrInvoiceClient is returned when an invoice has no client.
var ErrInvoiceClient = errors.New("invoice client is required")

// AddInvoice appends inv with the next free id and returns the stored
// invoice. An invoice without a number gets the next one for the year of
// now. Lines with neither a description nor a positive unit price are
// dropped; when lines remain, the amount is their TTC total.
func AddInvoice(invoices []Invoice, inv Invoice, now time.Time) ([]Invoice, Invoice, error) {
	inv.Client = strings.TrimSpace(inv.Client)
	if inv.Client == "" {
		return invoices, Invoice{}, ErrInvoiceClient
	}
	inv.Number = strings.TrimSpace(inv.Number)
	if inv.Number == "" {
		inv.Number = NextInvoiceNumber(invoices, now.Year())
	}
	if inv.Status == "" {
		inv.Status = InvoicePending
	}
	inv.Lines = filter(inv.Lines, func(l InvoiceLine) bool {
		return strings.TrimSpace(l.Description) != "" || ParseAmount(l.UnitPrice) > 0
	})
	switch {
	case len(inv.Lines) > 0:
		inv.Amount = FormatMoney(ComputeTotals(inv.Lines).TTC)
		for i := range inv.Lines {
			inv.Lines[i].ID = int64(i + 1)
		}
	case inv.Amount == "":
		inv.Amount = "0,00"
	}
	if len(inv.Lines) == 0 {
		inv.Lines = nil
	}
	inv.ID = NextID(invoices, func(i Invoice) int64 { return i.ID })
	return append(append([]Invoice{}, invoices...), inv), inv, nil
}

// MarkInvoicePaid sets the status of the invoice with id to paid.
func MarkInvoicePaid(invoices []Invoice, id int64) []Invoice {
	out := append([]Invoice(nil), invoices...)
	for i := range out {
		if out[i].ID == id {
			out[i].Status = InvoicePaid
		}
	}
	return out
}
