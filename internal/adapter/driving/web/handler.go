// Package web implements the HTML GUI driving adapter with server-rendered
// templates.
package web

import (
	"errors"
	"fmt"
	"html/template"
	"log/slog"
	"net/http"
	"time"

	vm "github.com/dstanchev/invoicepanel/internal/adapter/driving/web/viewmodel"
	"github.com/dstanchev/invoicepanel/internal/application"
	"github.com/dstanchev/invoicepanel/internal/domain/port/driven"
)

// recentLogCount caps the automation trail shown on the dashboard.
const recentLogCount = 5

// pageData is the single payload handed to every template. Only the fields
// the rendered tab needs are populated.
type pageData struct {
	Layout vm.Layout

	Dashboard       vm.Dashboard
	Consultants     []vm.PartyRow
	Clients         []vm.PartyRow
	Contracts       []vm.ContractRow
	Invoices        []vm.InvoiceRow
	Timesheets      []vm.TimesheetRow
	TimesheetStatus vm.TimesheetStatus
	Users           []vm.UserRow
	Logs            []vm.LogRow
	Settings        vm.Settings

	Form       *vm.FormView
	LoginError string
}

// Handler is the web GUI driving adapter.
type Handler struct {
	auth      *application.AuthService
	session   *application.Session
	cache     *application.EntityCache
	mutations *application.MutationService
	viewState *application.ViewState
	notifier  *application.Notifier
	logger    *slog.Logger
	templates *template.Template
}

// NewHandler creates a Handler with all required dependencies and parses the
// embedded templates.
func NewHandler(
	auth *application.AuthService,
	session *application.Session,
	cache *application.EntityCache,
	mutations *application.MutationService,
	viewState *application.ViewState,
	notifier *application.Notifier,
	logger *slog.Logger,
) (*Handler, error) {
	funcs := template.FuncMap{
		"safeHTML": func(s string) template.HTML { return template.HTML(s) },
	}

	templates, err := template.New("").Funcs(funcs).ParseFS(templatesFS, "templates/*.html")
	if err != nil {
		return nil, fmt.Errorf("parse templates: %w", err)
	}

	return &Handler{
		auth:      auth,
		session:   session,
		cache:     cache,
		mutations: mutations,
		viewState: viewState,
		notifier:  notifier,
		logger:    logger,
		templates: templates,
	}, nil
}

// layout assembles the chrome shared by all authenticated pages.
func (h *Handler) layout(w http.ResponseWriter, r *http.Request, title string) vm.Layout {
	identity, _ := h.session.Current()

	activeTab := h.viewState.ActiveTab()
	tabs := make([]vm.Tab, 0, len(application.Tabs))
	for _, name := range application.Tabs {
		if name == "users" && !identity.IsAdmin() {
			continue
		}
		tabs = append(tabs, vm.Tab{Name: name, Label: tabLabels[name], Active: name == activeTab})
	}

	layout := vm.Layout{
		Title:     title,
		ActiveTab: activeTab,
		Tabs:      tabs,
		UserName:  identity.FullName(),
		UserRole:  string(identity.Role),
		IsAdmin:   identity.IsAdmin(),
		CSRFToken: csrfToken(w, r),
		Loading:   h.cache.Loading(),
		OpenModal: h.viewState.OpenModalKind(),
	}
	if note, ok := h.notifier.Current(); ok {
		layout.Notification = &vm.Notification{Message: note.Message, Kind: string(note.Kind)}
	}
	return layout
}

// render executes one page template, failing closed on template errors.
func (h *Handler) render(w http.ResponseWriter, name string, data pageData) {
	if err := h.templates.ExecuteTemplate(w, name, data); err != nil {
		h.logger.Error("render failed", "template", name, "error", err)
		http.Error(w, "internal server error", http.StatusInternalServerError)
	}
}

// LoginPage renders the login form, or sends authenticated users home.
func (h *Handler) LoginPage(w http.ResponseWriter, r *http.Request) {
	if _, ok := h.session.Current(); ok {
		http.Redirect(w, r, "/", http.StatusSeeOther)
		return
	}
	h.render(w, "login.html", pageData{Layout: vm.Layout{Title: "Sign In", CSRFToken: csrfToken(w, r)}})
}

// RegisterPage renders the sign-up form.
func (h *Handler) RegisterPage(w http.ResponseWriter, r *http.Request) {
	if _, ok := h.session.Current(); ok {
		http.Redirect(w, r, "/", http.StatusSeeOther)
		return
	}
	h.render(w, "register.html", pageData{Layout: vm.Layout{Title: "Create Account", CSRFToken: csrfToken(w, r)}})
}

// Home sends the user to their last active tab.
func (h *Handler) Home(w http.ResponseWriter, r *http.Request) {
	http.Redirect(w, r, "/app/"+h.viewState.ActiveTab(), http.StatusSeeOther)
}

// Tab renders one application tab. Navigation doubles as the view-state
// machine's input: the modal and edit query parameters open the modal and the
// inline editor, and their absence closes them.
func (h *Handler) Tab(w http.ResponseWriter, r *http.Request) {
	tab := r.PathValue("tab")
	if !application.ValidTab(tab) {
		http.NotFound(w, r)
		return
	}

	identity, _ := h.session.Current()
	if tab == "users" && !identity.IsAdmin() {
		http.Redirect(w, r, "/app/dashboard", http.StatusSeeOther)
		return
	}

	h.viewState.SetActiveTab(r.Context(), tab)
	h.applyViewQuery(r, tab)

	// First page view after login loads everything; afterwards the cache is
	// refreshed by mutations and the explicit refresh action.
	if h.cache.Snapshot().LoadedAt.IsZero() {
		if err := h.cache.LoadAll(r.Context()); err != nil {
			h.handleMutationErr(w, r, err, tab)
			return
		}
	}

	h.renderTab(w, r, tab, nil, nil)
}

// Refresh reloads every collection and returns to the active tab.
func (h *Handler) Refresh(w http.ResponseWriter, r *http.Request) {
	if err := h.cache.LoadAll(r.Context()); err != nil {
		h.handleMutationErr(w, r, err, h.viewState.ActiveTab())
		return
	}
	http.Redirect(w, r, "/app/"+h.viewState.ActiveTab(), http.StatusSeeOther)
}

// applyViewQuery feeds the modal and inline-editor query parameters into the
// view state.
func (h *Handler) applyViewQuery(r *http.Request, tab string) {
	if modal := r.URL.Query().Get("modal"); modal != "" {
		h.viewState.OpenModal(modal)
	} else {
		h.viewState.CloseModal()
	}

	edit := r.URL.Query().Get("edit")
	if edit == "" {
		h.viewState.FinishEdit()
		return
	}

	id, err := parseID(edit)
	if err != nil {
		h.viewState.FinishEdit()
		return
	}

	snap := h.cache.Snapshot()
	switch tab {
	case "invoices":
		for _, inv := range snap.Invoices {
			if inv.ID == id {
				h.viewState.StartEdit(application.EditorInvoiceNumber, id, inv.InvoiceNumber)
				return
			}
		}
	case "timesheets":
		for _, ts := range snap.Timesheets {
			if ts.ID == id {
				h.viewState.StartEdit(application.EditorTimesheetDays, id, ts.Days().String())
				return
			}
		}
	}
	h.viewState.FinishEdit()
}

// renderTab builds the page data for one tab and renders it. formValues and
// formErrs echo a failed modal submission back into the form.
func (h *Handler) renderTab(w http.ResponseWriter, r *http.Request, tab string, formValues map[string]string, formErrs application.FieldErrors) {
	snap := h.cache.Snapshot()
	now := time.Now()

	var editor *application.InlineEditor
	if e, ok := h.viewState.Editor(); ok {
		editor = &e
	}

	data := pageData{Layout: h.layout(w, r, tabLabels[tab])}

	switch tab {
	case "dashboard":
		data.Dashboard = toDashboard(snap, now)
		data.Contracts = toContractRows(snap.Contracts, now)
		data.TimesheetStatus = toTimesheetStatus(snap.TimesheetStatus)
		logs := snap.AutomationLogs
		if len(logs) > recentLogCount {
			logs = logs[:recentLogCount]
		}
		data.Logs = toLogRows(logs)
	case "consultants":
		data.Consultants = toConsultantRows(snap.Consultants)
	case "clients":
		data.Clients = toClientRows(snap.Clients)
	case "contracts":
		data.Contracts = toContractRows(snap.Contracts, now)
	case "timesheets":
		data.TimesheetStatus = toTimesheetStatus(snap.TimesheetStatus)
		data.Timesheets = toTimesheetRows(snap.Timesheets, snap.Consultants, editor)
		data.Consultants = toConsultantRows(snap.Consultants)
	case "invoices":
		data.Invoices = toInvoiceRows(snap.Invoices, editor)
	case "automation":
		data.Logs = toLogRows(snap.AutomationLogs)
	case "users":
		data.Users = toUserRows(snap.Users)
	}

	if form, action, ok := h.modalForm(snap, formValues); ok {
		fv := toFormView(form, action, formValues, formErrs)
		data.Form = &fv
	}
	data.Settings = toSettings(snap.Settings)

	h.render(w, tab+".html", data)
}

// modalForm resolves the open modal, if any, to its schema form and submit
// action. The settings, deadline, and password modals have dedicated
// templates and are rendered by kind alone.
func (h *Handler) modalForm(snap application.Snapshot, values map[string]string) (application.Form, string, bool) {
	switch h.viewState.OpenModalKind() {
	case application.FormConsultant:
		return application.ConsultantForm(), "/app/consultants", true
	case application.FormClient:
		return application.ClientForm(), "/app/clients", true
	case application.FormContract:
		return application.ContractForm(snap.Consultants, snap.Clients), "/app/contracts", true
	case application.FormOperator:
		return application.OperatorForm(), "/app/operators", true
	default:
		return application.Form{}, "", false
	}
}

// handleMutationErr turns a failed operation into the right navigation: a
// rejected token goes back to the login screen, everything else returns to
// the tab where the notifier shows the error.
func (h *Handler) handleMutationErr(w http.ResponseWriter, r *http.Request, err error, tab string) {
	if errors.Is(err, driven.ErrSessionExpired) {
		http.Redirect(w, r, "/login", http.StatusSeeOther)
		return
	}
	http.Redirect(w, r, "/app/"+tab, http.StatusSeeOther)
}
