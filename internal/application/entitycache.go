package application

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"sync"
	"sync/atomic"
	"time"

	"github.com/dstanchev/invoicepanel/internal/domain/model"
	"github.com/dstanchev/invoicepanel/internal/domain/port/driven"
)

// Snapshot is one consistent view of everything the panel renders. Slices
// are never nil; a slot whose fetch failed is an empty slice.
type Snapshot struct {
	Consultants    []model.Consultant
	Clients        []model.Client
	Contracts      []model.Contract
	Invoices       []model.Invoice
	Timesheets     []model.Timesheet
	AutomationLogs []model.AutomationLog
	Users          []model.User

	Settings        model.CompanySettings
	TimesheetStatus model.TimesheetStatus

	LoadedAt time.Time
}

// EntityCache mirrors the server-owned collections in memory. It is only
// ever replaced wholesale: after any mutation the whole snapshot is
// refetched, so there is no partial-update or coherency logic anywhere.
type EntityCache struct {
	api     driven.InvoiceAPI
	session *Session

	mu      sync.RWMutex
	snap    Snapshot
	loading atomic.Bool
}

// NewEntityCache creates an empty cache over the given API.
func NewEntityCache(api driven.InvoiceAPI, session *Session) *EntityCache {
	return &EntityCache{api: api, session: session}
}

// LoadAll refetches every collection. The six independent reads run
// concurrently and fail independently: one failing slot degrades to an empty
// slice and the rest keep their fetched values. The dependent reads (company
// settings, timesheet status, and the user list for admins) then run in
// order. Only a rejected token aborts the load; every other failure is
// logged and swallowed per slot.
func (c *EntityCache) LoadAll(ctx context.Context) error {
	c.loading.Store(true)
	defer c.loading.Store(false)

	snap := Snapshot{
		Consultants:    []model.Consultant{},
		Clients:        []model.Client{},
		Contracts:      []model.Contract{},
		Invoices:       []model.Invoice{},
		Timesheets:     []model.Timesheet{},
		AutomationLogs: []model.AutomationLog{},
		Users:          []model.User{},
	}

	errs := make([]error, 6)
	var wg sync.WaitGroup
	wg.Add(6)

	// Each goroutine writes a distinct snapshot field and its own error slot.
	go func() {
		defer wg.Done()
		errs[0] = loadSlot(ctx, "consultants", c.api.Consultants, &snap.Consultants)
	}()
	go func() {
		defer wg.Done()
		errs[1] = loadSlot(ctx, "clients", c.api.Clients, &snap.Clients)
	}()
	go func() {
		defer wg.Done()
		errs[2] = loadSlot(ctx, "contracts", c.api.Contracts, &snap.Contracts)
	}()
	go func() {
		defer wg.Done()
		errs[3] = loadSlot(ctx, "invoices", c.api.Invoices, &snap.Invoices)
	}()
	go func() {
		defer wg.Done()
		errs[4] = loadSlot(ctx, "timesheets", c.api.Timesheets, &snap.Timesheets)
	}()
	go func() {
		defer wg.Done()
		errs[5] = loadSlot(ctx, "automation logs", c.api.AutomationLogs, &snap.AutomationLogs)
	}()
	wg.Wait()

	for _, err := range errs {
		if errors.Is(err, driven.ErrSessionExpired) {
			return err
		}
	}

	// Dependent reads, in order.
	settings, err := c.api.CompanySettings(ctx)
	if errors.Is(err, driven.ErrSessionExpired) {
		return err
	}
	if err != nil {
		slog.Error("loading company settings failed", "error", err)
	} else {
		snap.Settings = settings
	}

	status, err := c.api.TimesheetStatus(ctx)
	if errors.Is(err, driven.ErrSessionExpired) {
		return err
	}
	if err != nil {
		slog.Error("loading timesheet status failed", "error", err)
	} else {
		snap.TimesheetStatus = status
	}

	if identity, ok := c.session.Current(); ok && identity.IsAdmin() {
		if err := loadSlot(ctx, "users", c.api.Users, &snap.Users); errors.Is(err, driven.ErrSessionExpired) {
			return err
		}
	}

	snap.LoadedAt = time.Now()

	c.mu.Lock()
	c.snap = snap
	c.mu.Unlock()

	return nil
}

// loadSlot fetches one collection into dst, logging and swallowing anything
// but a token rejection.
func loadSlot[T any](ctx context.Context, name string, fetch func(context.Context) ([]T, error), dst *[]T) error {
	items, err := fetch(ctx)
	if err != nil {
		slog.Error("loading "+name+" failed", "error", err)
		return err
	}
	if items != nil {
		*dst = items
	}
	return nil
}

// Snapshot returns the most recent snapshot.
func (c *EntityCache) Snapshot() Snapshot {
	c.mu.RLock()
	defer c.mu.RUnlock()
	return c.snap
}

// Loading reports whether a bulk reload is in flight, for the full-screen
// spinner.
func (c *EntityCache) Loading() bool {
	return c.loading.Load()
}

// TimesheetFileForInvoice resolves the timesheet PDF behind an invoice:
// contract, then consultant, then the timesheet whose sender email and month
// match. It queries the unfiltered timesheet list so already-processed
// timesheets are found too.
func (c *EntityCache) TimesheetFileForInvoice(ctx context.Context, invoice model.Invoice) (string, error) {
	snap := c.Snapshot()

	var contract *model.Contract
	for i := range snap.Contracts {
		if snap.Contracts[i].ID == invoice.ContractID {
			contract = &snap.Contracts[i]
			break
		}
	}
	if contract == nil {
		return "", fmt.Errorf("contract %d not found", invoice.ContractID)
	}

	var consultant *model.Consultant
	for i := range snap.Consultants {
		if snap.Consultants[i].ID == contract.ConsultantID {
			consultant = &snap.Consultants[i]
			break
		}
	}
	if consultant == nil {
		return "", fmt.Errorf("consultant %d not found", contract.ConsultantID)
	}

	all, err := c.api.AllTimesheets(ctx)
	if err != nil {
		return "", err
	}

	month := invoice.PeriodTo.MonthName()
	for _, ts := range all {
		if ts.SenderEmail == consultant.Email && model.EqualMonthName(ts.Month, month) {
			if ts.FileURL == "" {
				return "", fmt.Errorf("timesheet for %s in %s has no file", consultant.Email, month)
			}
			return ts.FileURL, nil
		}
	}
	return "", fmt.Errorf("no timesheet found for %s in %s", consultant.Email, month)
}
