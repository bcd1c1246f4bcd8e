package driven

import (
	"context"
	"errors"
	"fmt"

	"github.com/dstanchev/invoicepanel/internal/domain/model"
)

// ErrSessionExpired is returned by any InvoiceAPI call after the remote side
// rejects the bearer token. The caller must send the user back to the login
// screen; the client has already invalidated the stored session.
var ErrSessionExpired = errors.New("session expired")

// APIError is a non-2xx response from the invoicing API, carrying the
// human-readable message from the response body's "error" field.
type APIError struct {
	StatusCode int
	Message    string
}

func (e *APIError) Error() string {
	if e.Message != "" {
		return e.Message
	}
	return fmt.Sprintf("api error: status %d", e.StatusCode)
}

// TokenSource supplies the bearer token for outgoing API calls and is
// notified when the remote side no longer accepts it.
type TokenSource interface {
	// Token returns the current bearer token, or "" when no session exists.
	Token() string
	// Invalidate discards the current session after a token rejection.
	Invalidate()
}

// RegisterRequest carries the fields of the operator sign-up form.
type RegisterRequest struct {
	Email       string `json:"email"`
	Password    string `json:"password"`
	FirstName   string `json:"firstName"`
	LastName    string `json:"lastName"`
	CompanyName string `json:"companyName"`
}

// CreateConsultantRequest carries the fields of the new-consultant form.
type CreateConsultantRequest struct {
	FirstName            string `json:"firstName"`
	LastName             string `json:"lastName"`
	CompanyName          string `json:"companyName"`
	CompanyAddress       string `json:"companyAddress"`
	CompanyVAT           string `json:"companyVAT"`
	ConsultantContractID string `json:"consultantContractId"`
	IBAN                 string `json:"iban"`
	SWIFT                string `json:"swift"`
	Email                string `json:"email"`
	Phone                string `json:"phone"`
}

// CreateClientRequest carries the fields of the new-client form.
type CreateClientRequest struct {
	FirstName        string `json:"firstName"`
	LastName         string `json:"lastName"`
	CompanyName      string `json:"companyName"`
	CompanyAddress   string `json:"companyAddress"`
	CompanyVAT       string `json:"companyVAT"`
	ClientContractID string `json:"clientContractId"`
	IBAN             string `json:"iban"`
	SWIFT            string `json:"swift"`
	Email            string `json:"email"`
	Phone            string `json:"phone"`
}

// CreateContractRequest carries the fields of the new-contract form. Prices
// and rates travel as strings so the back end parses them with full precision.
type CreateContractRequest struct {
	ContractNumber       string `json:"contractNumber"`
	ConsultantID         int64  `json:"consultantId"`
	ClientID             int64  `json:"clientId"`
	FromDate             string `json:"fromDate"`
	ToDate               string `json:"toDate"`
	PurchasePrice        string `json:"purchasePrice"`
	SellPrice            string `json:"sellPrice"`
	ConsultantVATEnabled bool   `json:"consultantVatEnabled"`
	ConsultantVATRate    string `json:"consultantVatRate"`
	VATEnabled           bool   `json:"vatEnabled"`
	VATRate              string `json:"vatRate"`
}

// CreateUserRequest carries the fields of the new-operator form.
type CreateUserRequest struct {
	Email     string `json:"email"`
	Password  string `json:"password"`
	FirstName string `json:"firstName"`
	LastName  string `json:"lastName"`
	Role      string `json:"role"`
}

// InvoiceAPI is the driven port onto the remote invoicing back end. Every
// method attaches the bearer token from the configured TokenSource; a 403
// token rejection surfaces as ErrSessionExpired.
type InvoiceAPI interface {
	// Authentication. Login and Register do not require an existing token.
	Login(ctx context.Context, email, password string) (model.Session, error)
	Register(ctx context.Context, req RegisterRequest) (model.Session, error)
	ChangePassword(ctx context.Context, currentPassword, newPassword string) error

	// Core entity collections.
	Consultants(ctx context.Context) ([]model.Consultant, error)
	CreateConsultant(ctx context.Context, req CreateConsultantRequest) error
	Clients(ctx context.Context) ([]model.Client, error)
	CreateClient(ctx context.Context, req CreateClientRequest) error
	Contracts(ctx context.Context) ([]model.Contract, error)
	CreateContract(ctx context.Context, req CreateContractRequest) error

	// Invoices.
	Invoices(ctx context.Context) ([]model.Invoice, error)
	GenerateInvoice(ctx context.Context, contractID int64) error
	UpdateInvoiceNumber(ctx context.Context, invoiceID int64, number string) error
	GenerateInvoicePDF(ctx context.Context, invoiceID int64) error
	SendInvoiceEmail(ctx context.Context, invoiceID int64) error

	// Timesheets.
	Timesheets(ctx context.Context) ([]model.Timesheet, error)
	AllTimesheets(ctx context.Context) ([]model.Timesheet, error)
	TimesheetStatus(ctx context.Context) (model.TimesheetStatus, error)
	UpdateTimesheetDays(ctx context.Context, timesheetID int64, days float64) error
	MatchTimesheet(ctx context.Context, timesheetID, consultantID int64) error
	GenerateTimesheetInvoice(ctx context.Context, timesheetID int64) error

	// Company settings and administration.
	CompanySettings(ctx context.Context) (model.CompanySettings, error)
	UpdateCompanySettings(ctx context.Context, settings model.CompanySettings) error
	Users(ctx context.Context) ([]model.User, error)
	CreateUser(ctx context.Context, req CreateUserRequest) error
	ToggleUserActive(ctx context.Context, userID int64) error
	DeleteUser(ctx context.Context, userID int64) error
	AutomationLogs(ctx context.Context) ([]model.AutomationLog, error)
}
