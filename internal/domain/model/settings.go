package model

import (
	"time"

	"github.com/shopspring/decimal"
)

// CompanySettings is the operating company's configuration as stored by the
// remote API: invoice header data, bank details, outgoing mail settings, and
// the timesheet deadline.
type CompanySettings struct {
	Name               string          `json:"name"`
	Address            string          `json:"address"`
	RepresentativeName string          `json:"representative_name"`
	CompanyVAT         string          `json:"company_vat"`
	CompanyEmail       string          `json:"company_email"`
	DefaultVATRate     decimal.Decimal `json:"default_vat_rate"`

	BankName    string `json:"bank_name"`
	BankIBAN    string `json:"bank_iban"`
	BankSWIFT   string `json:"bank_swift"`
	BankAddress string `json:"bank_address"`

	SMTPHost      string `json:"smtp_host"`
	SMTPPort      int    `json:"smtp_port"`
	SMTPUsername  string `json:"smtp_username"`
	SMTPPassword  string `json:"smtp_password"`
	SMTPFromEmail string `json:"smtp_from_email"`
	SMTPFromName  string `json:"smtp_from_name"`
	SMTPSecure    bool   `json:"smtp_secure"`

	// Day of the month by which timesheets must be received (1-31).
	TimesheetDeadlineDay int `json:"timesheet_deadline_day"`
}

// AutomationLog is one entry of the server-side automation trail (mail
// ingestion, invoice generation runs). The panel only displays these.
type AutomationLog struct {
	ID        int64     `json:"id"`
	RunType   string    `json:"run_type"`
	Status    string    `json:"status"`
	Message   string    `json:"message"` // Markdown-ish free text from the automation.
	CreatedAt time.Time `json:"created_at"`
}
