package model

import (
	"time"

	"github.com/shopspring/decimal"
)

// Timesheet is a monthly record of days worked, submitted by email and
// matched to a consultant by sender address. Days may arrive twice: once
// parsed from the attached PDF and once from the email body.
type Timesheet struct {
	ID               int64           `json:"id"`
	SenderEmail      string          `json:"sender_email"`
	Month            string          `json:"month"` // English month name as written in the email.
	Year             int             `json:"year"`
	PDFDays          decimal.Decimal `json:"pdf_days"`
	EmailDays        decimal.Decimal `json:"email_days"`
	FileURL          string          `json:"timesheet_file_url"`
	InvoiceGenerated bool            `json:"invoice_generated"`
	ConsultantID     *int64          `json:"consultant_id"`
	CreatedAt        time.Time       `json:"created_at"`
}

// Days returns the authoritative days-worked figure: PDF days when present,
// otherwise the email figure.
func (ts Timesheet) Days() decimal.Decimal {
	if !ts.PDFDays.IsZero() {
		return ts.PDFDays
	}
	return ts.EmailDays
}

// DaysMatch reports whether the PDF and email figures agree. It returns
// (false, false) when either figure is missing, meaning there is nothing to
// compare.
func (ts Timesheet) DaysMatch() (match, comparable bool) {
	if ts.PDFDays.IsZero() || ts.EmailDays.IsZero() {
		return false, false
	}
	return ts.PDFDays.Equal(ts.EmailDays), true
}

// TimesheetStatus is the per-month submission report served by the remote
// API: which consultants have filed, which are still inside the deadline,
// and which are overdue.
type TimesheetStatus struct {
	CheckingMonth string                  `json:"checking_month"`
	CheckingYear  int                     `json:"checking_year"`
	DeadlineDay   int                     `json:"deadline_day"`
	Consultants   []ConsultantFilingState `json:"consultants"`
}

// ConsultantFilingState is one consultant's row in the submission report.
type ConsultantFilingState struct {
	ID            int64          `json:"id"`
	FirstName     string         `json:"first_name"`
	LastName      string         `json:"last_name"`
	CompanyName   string         `json:"company_name"`
	Email         string         `json:"email"`
	Status        TimesheetState `json:"status"`
	CheckingMonth string         `json:"checking_month"`
	CheckingYear  int            `json:"checking_year"`
}

// FullName returns "First Last".
func (c ConsultantFilingState) FullName() string {
	return c.FirstName + " " + c.LastName
}

// CountByState tallies the consultants in each submission state.
func (s TimesheetStatus) CountByState(state TimesheetState) int {
	var n int
	for _, c := range s.Consultants {
		if c.Status == state {
			n++
		}
	}
	return n
}

// FindTimesheet locates the timesheet matching a consultant's email for the
// month being checked, or nil when none has arrived.
func (c ConsultantFilingState) FindTimesheet(timesheets []Timesheet) *Timesheet {
	for i := range timesheets {
		ts := &timesheets[i]
		if ts.SenderEmail == c.Email && EqualMonthName(ts.Month, c.CheckingMonth) {
			return ts
		}
	}
	return nil
}
