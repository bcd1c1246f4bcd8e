package model

import (
	"time"

	"github.com/shopspring/decimal"
)

// Invoice is a generated billing document derived from a contract/timesheet,
// for either the consultant or the client side. The panel never edits invoice
// amounts; VAT and totals are recomputed locally only for display parity.
type Invoice struct {
	ID            int64         `json:"id"`
	ContractID    int64         `json:"contract_id"`
	InvoiceNumber string        `json:"invoice_number"`
	InvoiceType   InvoiceType   `json:"invoice_type"`
	Status        InvoiceStatus `json:"status"`

	InvoiceDate Date `json:"invoice_date"`
	PeriodFrom  Date `json:"period_from"`
	PeriodTo    Date `json:"period_to"`

	DaysWorked  decimal.Decimal `json:"days_worked"`
	DailyRate   decimal.Decimal `json:"daily_rate"`
	Subtotal    decimal.Decimal `json:"subtotal"`
	VATRate     decimal.Decimal `json:"vat_rate"`
	VATEnabled  bool            `json:"vat_enabled"`
	TotalAmount decimal.Decimal `json:"total_amount"`

	RecipientName string `json:"recipient_name"`
	PDFURL        string `json:"pdf_url"`
	EmailSent     bool   `json:"email_sent"`
	EmailSentTo   string `json:"email_sent_to"`

	CreatedAt time.Time `json:"created_at"`
}

var oneHundred = decimal.NewFromInt(100)

// VATAmount returns the value-added tax on the subtotal: zero whenever VAT is
// disabled regardless of the rate, otherwise subtotal * rate / 100.
func (inv Invoice) VATAmount() decimal.Decimal {
	if !inv.VATEnabled {
		return decimal.Zero
	}
	return inv.Subtotal.Mul(inv.VATRate).Div(oneHundred)
}

// Total returns subtotal plus VAT.
func (inv Invoice) Total() decimal.Decimal {
	return inv.Subtotal.Add(inv.VATAmount())
}

// InMonth reports whether the invoice date falls in the calendar month
// containing the given instant.
func (inv Invoice) InMonth(now time.Time) bool {
	if inv.InvoiceDate.IsZero() {
		return false
	}
	return inv.InvoiceDate.Year() == now.Year() && inv.InvoiceDate.Month() == now.Month()
}

// MonthlyRevenue summarizes the current calendar month: what was billed to
// clients, what consultants billed us, and the difference.
type MonthlyRevenue struct {
	ClientTotal     decimal.Decimal
	ConsultantTotal decimal.Decimal
	Profit          decimal.Decimal
	ClientCount     int
	ConsultantCount int
}

// RevenueForMonth computes client revenue, consultant cost, and net profit
// over the invoices dated in the calendar month containing now.
func RevenueForMonth(invoices []Invoice, now time.Time) MonthlyRevenue {
	rev := MonthlyRevenue{
		ClientTotal:     decimal.Zero,
		ConsultantTotal: decimal.Zero,
	}

	for _, inv := range invoices {
		if !inv.InMonth(now) {
			continue
		}
		switch inv.InvoiceType {
		case InvoiceTypeClient:
			rev.ClientTotal = rev.ClientTotal.Add(inv.TotalAmount)
			rev.ClientCount++
		case InvoiceTypeConsultant:
			rev.ConsultantTotal = rev.ConsultantTotal.Add(inv.TotalAmount)
			rev.ConsultantCount++
		}
	}

	rev.Profit = rev.ClientTotal.Sub(rev.ConsultantTotal)
	return rev
}
