package model

import (
	"time"

	"github.com/shopspring/decimal"
)

// Contract links one consultant and one client with a billing period and
// day rates for both sides.
type Contract struct {
	ID             int64  `json:"id"`
	ContractNumber string `json:"contract_number"`
	ConsultantID   int64  `json:"consultant_id"`
	ClientID       int64  `json:"client_id"`

	FromDate Date `json:"from_date"`
	ToDate   Date `json:"to_date"`

	PurchasePrice decimal.Decimal `json:"purchase_price"` // Daily rate paid to the consultant.
	SellPrice     decimal.Decimal `json:"sell_price"`     // Daily rate billed to the client.

	ConsultantVATEnabled bool            `json:"consultant_vat_enabled"`
	ConsultantVATRate    decimal.Decimal `json:"consultant_vat_rate"`
	VATEnabled           bool            `json:"vat_enabled"` // Client-side VAT.
	VATRate              decimal.Decimal `json:"vat_rate"`

	// Denormalized display fields served alongside the contract row.
	ConsultantFirstName  string `json:"consultant_first_name"`
	ConsultantLastName   string `json:"consultant_last_name"`
	ConsultantCompany    string `json:"consultant_company_name"`
	ConsultantCompanyVAT string `json:"consultant_company_vat"`
	ClientFirstName      string `json:"client_first_name"`
	ClientLastName       string `json:"client_last_name"`
	ClientCompany        string `json:"client_company_name"`
	ClientCompanyVAT     string `json:"client_company_vat"`

	CreatedAt time.Time `json:"created_at"`
}

// IsActiveOn reports whether the contract's billing period covers the given
// instant, ignoring time-of-day: true from the start of FromDate through the
// end of ToDate, inclusive on both bounds.
func (c Contract) IsActiveOn(now time.Time) bool {
	if c.FromDate.IsZero() || c.ToDate.IsZero() {
		return false
	}

	y, m, d := now.Date()
	today := time.Date(y, m, d, 0, 0, 0, 0, time.UTC)

	from := c.FromDate.Time
	start := time.Date(from.Year(), from.Month(), from.Day(), 0, 0, 0, 0, time.UTC)
	to := c.ToDate.Time
	end := time.Date(to.Year(), to.Month(), to.Day(), 0, 0, 0, 0, time.UTC)

	return !today.Before(start) && !today.After(end)
}

// DurationDays returns the inclusive number of calendar days in the billing
// period.
func (c Contract) DurationDays() int {
	if c.FromDate.IsZero() || c.ToDate.IsZero() {
		return 0
	}
	return int(c.ToDate.Sub(c.FromDate.Time).Hours()/24) + 1
}
