package application

import (
	"context"
	"fmt"

	"github.com/dstanchev/invoicepanel/internal/domain/model"
	"github.com/dstanchev/invoicepanel/internal/domain/port/driven"
)

// MutationService runs every write against the back end through one pattern:
// call the API, show a notification, and on success resynchronize the whole
// entity cache. No mutation ever patches the cache directly.
type MutationService struct {
	api      driven.InvoiceAPI
	cache    *EntityCache
	notifier *Notifier
}

// NewMutationService creates a new MutationService.
func NewMutationService(api driven.InvoiceAPI, cache *EntityCache, notifier *Notifier) *MutationService {
	return &MutationService{api: api, cache: cache, notifier: notifier}
}

// run executes one mutation under the notify-then-reload pattern. The
// returned error is the mutation's own; a reload failure is surfaced only
// through the cache's logging, matching the fire-and-forget reload this
// pattern had from the start.
func (m *MutationService) run(ctx context.Context, label, successMsg string, mutation func(context.Context) error) error {
	if err := mutation(ctx); err != nil {
		m.notifier.Error(fmt.Sprintf("Failed to %s: %s", label, err))
		return err
	}

	m.notifier.Success(successMsg)
	if err := m.cache.LoadAll(ctx); err != nil {
		return err
	}
	return nil
}

// AddConsultant creates a consultant and reloads.
func (m *MutationService) AddConsultant(ctx context.Context, req driven.CreateConsultantRequest) error {
	return m.run(ctx, "add consultant", "Consultant added successfully!", func(ctx context.Context) error {
		return m.api.CreateConsultant(ctx, req)
	})
}

// AddClient creates a client and reloads.
func (m *MutationService) AddClient(ctx context.Context, req driven.CreateClientRequest) error {
	return m.run(ctx, "add client", "Client added successfully!", func(ctx context.Context) error {
		return m.api.CreateClient(ctx, req)
	})
}

// AddContract creates a contract and reloads.
func (m *MutationService) AddContract(ctx context.Context, req driven.CreateContractRequest) error {
	return m.run(ctx, "add contract", "Contract added successfully!", func(ctx context.Context) error {
		return m.api.CreateContract(ctx, req)
	})
}

// CreateOperator creates a back-office user and reloads.
func (m *MutationService) CreateOperator(ctx context.Context, req driven.CreateUserRequest) error {
	return m.run(ctx, "create operator", "Operator account created successfully!", func(ctx context.Context) error {
		return m.api.CreateUser(ctx, req)
	})
}

// ToggleUserActive flips a user's active flag and reloads.
func (m *MutationService) ToggleUserActive(ctx context.Context, userID int64) error {
	return m.run(ctx, "update user", "User status updated successfully!", func(ctx context.Context) error {
		return m.api.ToggleUserActive(ctx, userID)
	})
}

// DeleteUser removes a user and reloads.
func (m *MutationService) DeleteUser(ctx context.Context, userID int64) error {
	return m.run(ctx, "delete user", "User deleted successfully!", func(ctx context.Context) error {
		return m.api.DeleteUser(ctx, userID)
	})
}

// UpdateSettings replaces the company settings and reloads.
func (m *MutationService) UpdateSettings(ctx context.Context, settings model.CompanySettings) error {
	return m.run(ctx, "update settings", "Settings updated successfully!", func(ctx context.Context) error {
		return m.api.UpdateCompanySettings(ctx, settings)
	})
}

// UpdateInvoiceNumber sets an invoice's document number and reloads.
func (m *MutationService) UpdateInvoiceNumber(ctx context.Context, invoiceID int64, number string) error {
	return m.run(ctx, "update invoice number", "Invoice number updated successfully!", func(ctx context.Context) error {
		return m.api.UpdateInvoiceNumber(ctx, invoiceID, number)
	})
}

// UpdateTimesheetDays overrides a timesheet's worked days and reloads.
func (m *MutationService) UpdateTimesheetDays(ctx context.Context, timesheetID int64, days float64) error {
	return m.run(ctx, "update days", "Days updated successfully!", func(ctx context.Context) error {
		return m.api.UpdateTimesheetDays(ctx, timesheetID, days)
	})
}

// MatchTimesheet assigns a timesheet to a consultant and reloads.
func (m *MutationService) MatchTimesheet(ctx context.Context, timesheetID, consultantID int64) error {
	return m.run(ctx, "match timesheet", "Timesheet matched successfully!", func(ctx context.Context) error {
		return m.api.MatchTimesheet(ctx, timesheetID, consultantID)
	})
}

// GenerateInvoice asks the back end to generate the invoice pair for a
// contract and reloads.
func (m *MutationService) GenerateInvoice(ctx context.Context, contractID int64) error {
	return m.run(ctx, "generate invoice", "Invoice generated successfully!", func(ctx context.Context) error {
		return m.api.GenerateInvoice(ctx, contractID)
	})
}

// GenerateTimesheetInvoice generates invoices from a matched timesheet and
// reloads.
func (m *MutationService) GenerateTimesheetInvoice(ctx context.Context, timesheetID int64) error {
	return m.run(ctx, "generate invoice", "Invoice generated successfully!", func(ctx context.Context) error {
		return m.api.GenerateTimesheetInvoice(ctx, timesheetID)
	})
}

// GeneratePDF renders an invoice's PDF and reloads so the snapshot picks up
// the new URL.
func (m *MutationService) GeneratePDF(ctx context.Context, invoiceID int64) error {
	return m.run(ctx, "generate PDF", "PDF generated successfully!", func(ctx context.Context) error {
		return m.api.GenerateInvoicePDF(ctx, invoiceID)
	})
}

// EnsureInvoicePDF returns the invoice's PDF URL, generating the PDF first
// when none exists yet.
func (m *MutationService) EnsureInvoicePDF(ctx context.Context, invoice model.Invoice) (string, error) {
	if invoice.PDFURL != "" {
		return invoice.PDFURL, nil
	}

	if err := m.GeneratePDF(ctx, invoice.ID); err != nil {
		return "", err
	}

	for _, inv := range m.cache.Snapshot().Invoices {
		if inv.ID == invoice.ID {
			if inv.PDFURL == "" {
				break
			}
			return inv.PDFURL, nil
		}
	}
	return "", fmt.Errorf("invoice %d has no PDF after generation", invoice.ID)
}

// SendInvoiceEmail emails an invoice to its recipient, generating the PDF
// first when the invoice does not have one yet.
func (m *MutationService) SendInvoiceEmail(ctx context.Context, invoice model.Invoice) error {
	if invoice.PDFURL == "" {
		if _, err := m.EnsureInvoicePDF(ctx, invoice); err != nil {
			return err
		}
	}

	return m.run(ctx, "send invoice email", "Invoice email sent successfully!", func(ctx context.Context) error {
		return m.api.SendInvoiceEmail(ctx, invoice.ID)
	})
}
