package invoiceapi

import (
	"context"
	"fmt"
	"net/http"

	"github.com/dstanchev/invoicepanel/internal/domain/model"
	"github.com/dstanchev/invoicepanel/internal/domain/port/driven"
)

// authResponse is the shape of a successful login or register reply.
type authResponse struct {
	Token string         `json:"token"`
	User  model.Identity `json:"user"`
}

// Login authenticates with email and password and returns the new session.
func (c *Client) Login(ctx context.Context, email, password string) (model.Session, error) {
	body := map[string]string{"email": email, "password": password}

	var resp authResponse
	if err := c.do(ctx, http.MethodPost, "/auth/login", body, &resp); err != nil {
		return model.Session{}, err
	}
	return model.Session{Token: resp.Token, Identity: resp.User}, nil
}

// Register creates a new account and returns the session for it.
func (c *Client) Register(ctx context.Context, req driven.RegisterRequest) (model.Session, error) {
	var resp authResponse
	if err := c.do(ctx, http.MethodPost, "/auth/register", req, &resp); err != nil {
		return model.Session{}, err
	}
	return model.Session{Token: resp.Token, Identity: resp.User}, nil
}

// ChangePassword changes the current user's password.
func (c *Client) ChangePassword(ctx context.Context, currentPassword, newPassword string) error {
	body := map[string]string{
		"currentPassword": currentPassword,
		"newPassword":     newPassword,
	}
	return c.do(ctx, http.MethodPut, "/auth/change-password", body, nil)
}

// Consultants returns all consultants.
func (c *Client) Consultants(ctx context.Context) ([]model.Consultant, error) {
	var out []model.Consultant
	if err := c.do(ctx, http.MethodGet, "/consultants", nil, &out); err != nil {
		return nil, err
	}
	return out, nil
}

// CreateConsultant creates a consultant record.
func (c *Client) CreateConsultant(ctx context.Context, req driven.CreateConsultantRequest) error {
	return c.do(ctx, http.MethodPost, "/consultants", req, nil)
}

// Clients returns all clients.
func (c *Client) Clients(ctx context.Context) ([]model.Client, error) {
	var out []model.Client
	if err := c.do(ctx, http.MethodGet, "/clients", nil, &out); err != nil {
		return nil, err
	}
	return out, nil
}

// CreateClient creates a client record.
func (c *Client) CreateClient(ctx context.Context, req driven.CreateClientRequest) error {
	return c.do(ctx, http.MethodPost, "/clients", req, nil)
}

// Contracts returns all contracts.
func (c *Client) Contracts(ctx context.Context) ([]model.Contract, error) {
	var out []model.Contract
	if err := c.do(ctx, http.MethodGet, "/contracts", nil, &out); err != nil {
		return nil, err
	}
	return out, nil
}

// CreateContract creates a contract record.
func (c *Client) CreateContract(ctx context.Context, req driven.CreateContractRequest) error {
	return c.do(ctx, http.MethodPost, "/contracts", req, nil)
}

// Invoices returns all invoices.
func (c *Client) Invoices(ctx context.Context) ([]model.Invoice, error) {
	var out []model.Invoice
	if err := c.do(ctx, http.MethodGet, "/invoices", nil, &out); err != nil {
		return nil, err
	}
	return out, nil
}

// GenerateInvoice asks the back end to generate the invoice pair for a contract.
func (c *Client) GenerateInvoice(ctx context.Context, contractID int64) error {
	return c.do(ctx, http.MethodPost, fmt.Sprintf("/invoices/generate/%d", contractID), nil, nil)
}

// UpdateInvoiceNumber sets the document number of an invoice.
func (c *Client) UpdateInvoiceNumber(ctx context.Context, invoiceID int64, number string) error {
	body := map[string]string{"invoiceNumber": number}
	return c.do(ctx, http.MethodPut, fmt.Sprintf("/invoices/%d/number", invoiceID), body, nil)
}

// GenerateInvoicePDF asks the back end to render the invoice PDF.
func (c *Client) GenerateInvoicePDF(ctx context.Context, invoiceID int64) error {
	return c.do(ctx, http.MethodPost, fmt.Sprintf("/invoices/%d/generate-pdf", invoiceID), nil, nil)
}

// SendInvoiceEmail asks the back end to email the invoice to its recipient.
func (c *Client) SendInvoiceEmail(ctx context.Context, invoiceID int64) error {
	return c.do(ctx, http.MethodPost, fmt.Sprintf("/invoices/%d/send-email", invoiceID), nil, nil)
}

// Timesheets returns the timesheets already matched to consultants.
func (c *Client) Timesheets(ctx context.Context) ([]model.Timesheet, error) {
	var out []model.Timesheet
	if err := c.do(ctx, http.MethodGet, "/timesheets", nil, &out); err != nil {
		return nil, err
	}
	return out, nil
}

// AllTimesheets returns every received timesheet, matched or not.
func (c *Client) AllTimesheets(ctx context.Context) ([]model.Timesheet, error) {
	var out []model.Timesheet
	if err := c.do(ctx, http.MethodGet, "/timesheets/all", nil, &out); err != nil {
		return nil, err
	}
	return out, nil
}

// TimesheetStatus returns the per-consultant filing status for the month
// currently being checked.
func (c *Client) TimesheetStatus(ctx context.Context) (model.TimesheetStatus, error) {
	var out model.TimesheetStatus
	if err := c.do(ctx, http.MethodGet, "/timesheets/status", nil, &out); err != nil {
		return model.TimesheetStatus{}, err
	}
	return out, nil
}

// UpdateTimesheetDays overrides the worked-days figure of a timesheet.
func (c *Client) UpdateTimesheetDays(ctx context.Context, timesheetID int64, days float64) error {
	body := map[string]float64{"days": days}
	return c.do(ctx, http.MethodPut, fmt.Sprintf("/timesheets/%d/days", timesheetID), body, nil)
}

// MatchTimesheet assigns an unmatched timesheet to a consultant.
func (c *Client) MatchTimesheet(ctx context.Context, timesheetID, consultantID int64) error {
	body := map[string]int64{"consultantId": consultantID}
	return c.do(ctx, http.MethodPut, fmt.Sprintf("/timesheets/%d/match", timesheetID), body, nil)
}

// GenerateTimesheetInvoice asks the back end to generate invoices from a
// matched timesheet.
func (c *Client) GenerateTimesheetInvoice(ctx context.Context, timesheetID int64) error {
	return c.do(ctx, http.MethodPost, fmt.Sprintf("/timesheets/%d/generate-invoice", timesheetID), nil, nil)
}

// CompanySettings returns the operating company's settings record.
func (c *Client) CompanySettings(ctx context.Context) (model.CompanySettings, error) {
	var out model.CompanySettings
	if err := c.do(ctx, http.MethodGet, "/company/settings", nil, &out); err != nil {
		return model.CompanySettings{}, err
	}
	return out, nil
}

// UpdateCompanySettings replaces the company settings record.
func (c *Client) UpdateCompanySettings(ctx context.Context, settings model.CompanySettings) error {
	return c.do(ctx, http.MethodPut, "/company/settings", settings, nil)
}

// Users returns all back-office users. Admin only; other roles get a 403
// from the server.
func (c *Client) Users(ctx context.Context) ([]model.User, error) {
	var out []model.User
	if err := c.do(ctx, http.MethodGet, "/users", nil, &out); err != nil {
		return nil, err
	}
	return out, nil
}

// CreateUser creates a back-office user.
func (c *Client) CreateUser(ctx context.Context, req driven.CreateUserRequest) error {
	return c.do(ctx, http.MethodPost, "/users", req, nil)
}

// ToggleUserActive flips a user's active flag.
func (c *Client) ToggleUserActive(ctx context.Context, userID int64) error {
	return c.do(ctx, http.MethodPut, fmt.Sprintf("/users/%d/toggle-active", userID), nil, nil)
}

// DeleteUser removes a user.
func (c *Client) DeleteUser(ctx context.Context, userID int64) error {
	return c.do(ctx, http.MethodDelete, fmt.Sprintf("/users/%d", userID), nil, nil)
}

// AutomationLogs returns the automation run history.
func (c *Client) AutomationLogs(ctx context.Context) ([]model.AutomationLog, error) {
	var out []model.AutomationLog
	if err := c.do(ctx, http.MethodGet, "/automation-logs", nil, &out); err != nil {
		return nil, err
	}
	return out, nil
}
