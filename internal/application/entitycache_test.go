package application

import (
	"context"
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/dstanchev/invoicepanel/internal/domain/model"
	"github.com/dstanchev/invoicepanel/internal/domain/port/driven"
)

func loggedInSession(t *testing.T, s model.Session) *Session {
	t.Helper()
	session := NewSession(&memSessionStore{})
	session.Set(context.Background(), s)
	return session
}

func TestEntityCacheLoadAll(t *testing.T) {
	api := newFakeAPI()
	api.consultants = []model.Consultant{{ID: 1, FirstName: "Ana"}}
	api.clients = []model.Client{{ID: 2}}
	api.invoices = []model.Invoice{{ID: 3}}
	api.users = []model.User{{ID: 1, Email: "admin@acme.test"}}
	api.settings = model.CompanySettings{Name: "Acme Ltd"}

	cache := NewEntityCache(api, loggedInSession(t, adminSession()))
	require.NoError(t, cache.LoadAll(context.Background()))

	snap := cache.Snapshot()
	assert.Len(t, snap.Consultants, 1)
	assert.Len(t, snap.Clients, 1)
	assert.Len(t, snap.Invoices, 1)
	assert.Len(t, snap.Users, 1)
	assert.Equal(t, "Acme Ltd", snap.Settings.Name)
	assert.False(t, snap.LoadedAt.IsZero())

	// Empty collections come back as empty slices, not nil.
	assert.NotNil(t, snap.Contracts)
	assert.NotNil(t, snap.Timesheets)
	assert.NotNil(t, snap.AutomationLogs)
}

func TestEntityCacheSlotFailureIsIsolated(t *testing.T) {
	api := newFakeAPI()
	api.consultants = []model.Consultant{{ID: 1}}
	api.invoices = []model.Invoice{{ID: 3}}
	api.failWith["Contracts"] = errors.New("boom")

	cache := NewEntityCache(api, loggedInSession(t, adminSession()))
	require.NoError(t, cache.LoadAll(context.Background()))

	snap := cache.Snapshot()
	assert.Empty(t, snap.Contracts)
	assert.Len(t, snap.Consultants, 1)
	assert.Len(t, snap.Invoices, 1)
}

func TestEntityCacheSkipsUsersForOperators(t *testing.T) {
	api := newFakeAPI()
	api.users = []model.User{{ID: 1}}

	operator := adminSession()
	operator.Identity.Role = model.RoleOperator

	cache := NewEntityCache(api, loggedInSession(t, operator))
	require.NoError(t, cache.LoadAll(context.Background()))

	assert.Empty(t, cache.Snapshot().Users)
	assert.NotContains(t, api.callNames(), "Users")
}

func TestEntityCacheSessionExpiryAbortsLoad(t *testing.T) {
	api := newFakeAPI()
	api.failWith["Invoices"] = driven.ErrSessionExpired

	cache := NewEntityCache(api, loggedInSession(t, adminSession()))
	err := cache.LoadAll(context.Background())
	require.ErrorIs(t, err, driven.ErrSessionExpired)
}

func TestEntityCacheDependentLoadFailureIsSwallowed(t *testing.T) {
	api := newFakeAPI()
	api.consultants = []model.Consultant{{ID: 1}}
	api.failWith["CompanySettings"] = errors.New("boom")
	api.failWith["TimesheetStatus"] = errors.New("boom")

	cache := NewEntityCache(api, loggedInSession(t, adminSession()))
	require.NoError(t, cache.LoadAll(context.Background()))

	snap := cache.Snapshot()
	assert.Len(t, snap.Consultants, 1)
	assert.Zero(t, snap.Settings)
}

func TestTimesheetFileForInvoice(t *testing.T) {
	api := newFakeAPI()
	api.consultants = []model.Consultant{{ID: 5, Email: "ana@acme.test"}}
	api.contracts = []model.Contract{{ID: 9, ConsultantID: 5}}
	api.allTimesheets = []model.Timesheet{
		{ID: 1, SenderEmail: "ana@acme.test", Month: "june", FileURL: "https://files.acme.test/ts.pdf"},
	}

	cache := NewEntityCache(api, loggedInSession(t, adminSession()))
	require.NoError(t, cache.LoadAll(context.Background()))

	invoice := model.Invoice{
		ID:         1,
		ContractID: 9,
		PeriodTo:   model.NewDate(2024, 6, 30),
	}

	t.Run("match is case-insensitive on month", func(t *testing.T) {
		url, err := cache.TimesheetFileForInvoice(context.Background(), invoice)
		require.NoError(t, err)
		assert.Equal(t, "https://files.acme.test/ts.pdf", url)
	})

	t.Run("unknown contract", func(t *testing.T) {
		missing := invoice
		missing.ContractID = 404
		_, err := cache.TimesheetFileForInvoice(context.Background(), missing)
		assert.Error(t, err)
	})

	t.Run("no matching timesheet", func(t *testing.T) {
		other := invoice
		other.PeriodTo = model.NewDate(2024, 2, 29)
		_, err := cache.TimesheetFileForInvoice(context.Background(), other)
		assert.Error(t, err)
	})
}
