package model

// Role represents an operator's permission level.
type Role string

const (
	RoleAdmin    Role = "admin"
	RoleOperator Role = "operator"
)

// InvoiceType distinguishes the two sides of a contract billing cycle.
type InvoiceType string

const (
	InvoiceTypeConsultant InvoiceType = "consultant" // Invoice received from the consultant (a cost).
	InvoiceTypeClient     InvoiceType = "client"     // Invoice issued to the client (revenue).
)

// InvoiceStatus represents the lifecycle state of a generated invoice.
type InvoiceStatus string

const (
	InvoiceStatusDraft InvoiceStatus = "draft"
	InvoiceStatusSent  InvoiceStatus = "sent"
	InvoiceStatusPaid  InvoiceStatus = "paid"
)

// TimesheetState represents a consultant's submission state for the
// month currently being checked.
type TimesheetState string

const (
	TimesheetReceived TimesheetState = "received"
	TimesheetWaiting  TimesheetState = "waiting"
	TimesheetOverdue  TimesheetState = "overdue"
)
