package application

import (
	"context"
	"sync"

	"github.com/dstanchev/invoicepanel/internal/domain/model"
	"github.com/dstanchev/invoicepanel/internal/domain/port/driven"
)

// fakeAPI is an in-memory InvoiceAPI. Individual methods can be made to fail
// by name via failWith; every call is recorded in order.
type fakeAPI struct {
	mu sync.Mutex

	consultants   []model.Consultant
	clients       []model.Client
	contracts     []model.Contract
	invoices      []model.Invoice
	timesheets    []model.Timesheet
	allTimesheets []model.Timesheet
	logs          []model.AutomationLog
	users         []model.User
	settings      model.CompanySettings
	status        model.TimesheetStatus

	session model.Session

	calls    []string
	failWith map[string]error
}

var _ driven.InvoiceAPI = (*fakeAPI)(nil)

func newFakeAPI() *fakeAPI {
	return &fakeAPI{
		session: model.Session{
			Token: "tok-1",
			Identity: model.Identity{
				ID: 1, Email: "admin@acme.test", FirstName: "Ana", LastName: "Ivanova", Role: model.RoleAdmin,
			},
		},
		failWith: map[string]error{},
	}
}

func (f *fakeAPI) record(name string) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.calls = append(f.calls, name)
	return f.failWith[name]
}

func (f *fakeAPI) callNames() []string {
	f.mu.Lock()
	defer f.mu.Unlock()
	return append([]string(nil), f.calls...)
}

func (f *fakeAPI) Login(ctx context.Context, email, password string) (model.Session, error) {
	if err := f.record("Login"); err != nil {
		return model.Session{}, err
	}
	return f.session, nil
}

func (f *fakeAPI) Register(ctx context.Context, req driven.RegisterRequest) (model.Session, error) {
	if err := f.record("Register"); err != nil {
		return model.Session{}, err
	}
	return f.session, nil
}

func (f *fakeAPI) ChangePassword(ctx context.Context, currentPassword, newPassword string) error {
	return f.record("ChangePassword")
}

func (f *fakeAPI) Consultants(ctx context.Context) ([]model.Consultant, error) {
	if err := f.record("Consultants"); err != nil {
		return nil, err
	}
	return append([]model.Consultant(nil), f.consultants...), nil
}

func (f *fakeAPI) CreateConsultant(ctx context.Context, req driven.CreateConsultantRequest) error {
	if err := f.record("CreateConsultant"); err != nil {
		return err
	}
	f.mu.Lock()
	defer f.mu.Unlock()
	f.consultants = append(f.consultants, model.Consultant{
		ID:        int64(len(f.consultants) + 1),
		FirstName: req.FirstName,
		LastName:  req.LastName,
		Email:     req.Email,
	})
	return nil
}

func (f *fakeAPI) Clients(ctx context.Context) ([]model.Client, error) {
	if err := f.record("Clients"); err != nil {
		return nil, err
	}
	return append([]model.Client(nil), f.clients...), nil
}

func (f *fakeAPI) CreateClient(ctx context.Context, req driven.CreateClientRequest) error {
	return f.record("CreateClient")
}

func (f *fakeAPI) Contracts(ctx context.Context) ([]model.Contract, error) {
	if err := f.record("Contracts"); err != nil {
		return nil, err
	}
	return append([]model.Contract(nil), f.contracts...), nil
}

func (f *fakeAPI) CreateContract(ctx context.Context, req driven.CreateContractRequest) error {
	return f.record("CreateContract")
}

func (f *fakeAPI) Invoices(ctx context.Context) ([]model.Invoice, error) {
	if err := f.record("Invoices"); err != nil {
		return nil, err
	}
	return append([]model.Invoice(nil), f.invoices...), nil
}

func (f *fakeAPI) GenerateInvoice(ctx context.Context, contractID int64) error {
	return f.record("GenerateInvoice")
}

func (f *fakeAPI) UpdateInvoiceNumber(ctx context.Context, invoiceID int64, number string) error {
	return f.record("UpdateInvoiceNumber")
}

func (f *fakeAPI) GenerateInvoicePDF(ctx context.Context, invoiceID int64) error {
	if err := f.record("GenerateInvoicePDF"); err != nil {
		return err
	}
	f.mu.Lock()
	defer f.mu.Unlock()
	for i := range f.invoices {
		if f.invoices[i].ID == invoiceID {
			f.invoices[i].PDFURL = "https://files.acme.test/invoice.pdf"
		}
	}
	return nil
}

func (f *fakeAPI) SendInvoiceEmail(ctx context.Context, invoiceID int64) error {
	return f.record("SendInvoiceEmail")
}

func (f *fakeAPI) Timesheets(ctx context.Context) ([]model.Timesheet, error) {
	if err := f.record("Timesheets"); err != nil {
		return nil, err
	}
	return append([]model.Timesheet(nil), f.timesheets...), nil
}

func (f *fakeAPI) AllTimesheets(ctx context.Context) ([]model.Timesheet, error) {
	if err := f.record("AllTimesheets"); err != nil {
		return nil, err
	}
	return append([]model.Timesheet(nil), f.allTimesheets...), nil
}

func (f *fakeAPI) TimesheetStatus(ctx context.Context) (model.TimesheetStatus, error) {
	if err := f.record("TimesheetStatus"); err != nil {
		return model.TimesheetStatus{}, err
	}
	return f.status, nil
}

func (f *fakeAPI) UpdateTimesheetDays(ctx context.Context, timesheetID int64, days float64) error {
	return f.record("UpdateTimesheetDays")
}

func (f *fakeAPI) MatchTimesheet(ctx context.Context, timesheetID, consultantID int64) error {
	return f.record("MatchTimesheet")
}

func (f *fakeAPI) GenerateTimesheetInvoice(ctx context.Context, timesheetID int64) error {
	return f.record("GenerateTimesheetInvoice")
}

func (f *fakeAPI) CompanySettings(ctx context.Context) (model.CompanySettings, error) {
	if err := f.record("CompanySettings"); err != nil {
		return model.CompanySettings{}, err
	}
	return f.settings, nil
}

func (f *fakeAPI) UpdateCompanySettings(ctx context.Context, settings model.CompanySettings) error {
	if err := f.record("UpdateCompanySettings"); err != nil {
		return err
	}
	f.mu.Lock()
	defer f.mu.Unlock()
	f.settings = settings
	return nil
}

func (f *fakeAPI) Users(ctx context.Context) ([]model.User, error) {
	if err := f.record("Users"); err != nil {
		return nil, err
	}
	return append([]model.User(nil), f.users...), nil
}

func (f *fakeAPI) CreateUser(ctx context.Context, req driven.CreateUserRequest) error {
	return f.record("CreateUser")
}

func (f *fakeAPI) ToggleUserActive(ctx context.Context, userID int64) error {
	return f.record("ToggleUserActive")
}

func (f *fakeAPI) DeleteUser(ctx context.Context, userID int64) error {
	return f.record("DeleteUser")
}

func (f *fakeAPI) AutomationLogs(ctx context.Context) ([]model.AutomationLog, error) {
	if err := f.record("AutomationLogs"); err != nil {
		return nil, err
	}
	return append([]model.AutomationLog(nil), f.logs...), nil
}

// memSessionStore is an in-memory SessionStore.
type memSessionStore struct {
	mu      sync.Mutex
	session *model.Session
}

var _ driven.SessionStore = (*memSessionStore)(nil)

func (s *memSessionStore) Save(ctx context.Context, session model.Session) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.session = &session
	return nil
}

func (s *memSessionStore) Load(ctx context.Context) (model.Session, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.session == nil {
		return model.Session{}, driven.ErrNoSession
	}
	return *s.session, nil
}

func (s *memSessionStore) Clear(ctx context.Context) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.session = nil
	return nil
}

// memPrefsStore is an in-memory PrefsStore.
type memPrefsStore struct {
	mu  sync.Mutex
	tab string
}

var _ driven.PrefsStore = (*memPrefsStore)(nil)

func (s *memPrefsStore) SaveActiveTab(ctx context.Context, tab string) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.tab = tab
	return nil
}

func (s *memPrefsStore) ActiveTab(ctx context.Context) (string, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.tab, nil
}
