package web

import (
	"errors"
	"fmt"
	"net/http"
	"strconv"

	vm "github.com/dstanchev/invoicepanel/internal/adapter/driving/web/viewmodel"
	"github.com/dstanchev/invoicepanel/internal/application"
	"github.com/dstanchev/invoicepanel/internal/domain/model"
	"github.com/dstanchev/invoicepanel/internal/domain/port/driven"
	"github.com/shopspring/decimal"
)

func parseID(raw string) (int64, error) {
	id, err := strconv.ParseInt(raw, 10, 64)
	if err != nil || id <= 0 {
		return 0, fmt.Errorf("invalid id %q", raw)
	}
	return id, nil
}

// pathID reads a numeric path value, writing a 400 when it is malformed.
func pathID(w http.ResponseWriter, r *http.Request, name string) (int64, bool) {
	id, err := parseID(r.PathValue(name))
	if err != nil {
		http.Error(w, "invalid "+name, http.StatusBadRequest)
		return 0, false
	}
	return id, true
}

// formValues flattens the POST form into the map the form schemas validate.
func formValues(r *http.Request) map[string]string {
	values := make(map[string]string, len(r.PostForm))
	for key := range r.PostForm {
		values[key] = r.PostForm.Get(key)
	}
	return values
}

// Login signs the user in and triggers the initial data load.
func (h *Handler) Login(w http.ResponseWriter, r *http.Request) {
	if !h.checkCSRF(w, r) {
		return
	}

	email := r.PostFormValue("email")
	password := r.PostFormValue("password")
	if err := h.auth.Login(r.Context(), email, password); err != nil {
		h.logger.Info("login rejected", "email", email)
		w.WriteHeader(http.StatusUnauthorized)
		h.render(w, "login.html", pageData{
			Layout:     h.loginLayout(w, r, "Sign In"),
			LoginError: err.Error(),
		})
		return
	}

	if err := h.cache.LoadAll(r.Context()); err != nil {
		h.handleMutationErr(w, r, err, h.viewState.ActiveTab())
		return
	}
	http.Redirect(w, r, "/", http.StatusSeeOther)
}

// Register creates the account and signs the user in.
func (h *Handler) Register(w http.ResponseWriter, r *http.Request) {
	if !h.checkCSRF(w, r) {
		return
	}

	req := driven.RegisterRequest{
		Email:       r.PostFormValue("email"),
		Password:    r.PostFormValue("password"),
		FirstName:   r.PostFormValue("firstName"),
		LastName:    r.PostFormValue("lastName"),
		CompanyName: r.PostFormValue("companyName"),
	}
	if err := h.auth.Register(r.Context(), req); err != nil {
		w.WriteHeader(http.StatusUnprocessableEntity)
		h.render(w, "register.html", pageData{
			Layout:     h.loginLayout(w, r, "Create Account"),
			LoginError: err.Error(),
		})
		return
	}

	if err := h.cache.LoadAll(r.Context()); err != nil {
		h.handleMutationErr(w, r, err, h.viewState.ActiveTab())
		return
	}
	http.Redirect(w, r, "/", http.StatusSeeOther)
}

// loginLayout is the minimal chrome for the unauthenticated pages.
func (h *Handler) loginLayout(w http.ResponseWriter, r *http.Request, title string) vm.Layout {
	return vm.Layout{Title: title, CSRFToken: csrfToken(w, r)}
}

func asFieldErrors(err error, target *application.FieldErrors) bool {
	return errors.As(err, target)
}

// checkCSRF rejects state-changing requests whose CSRF form field does not
// match the cookie.
func (h *Handler) checkCSRF(w http.ResponseWriter, r *http.Request) bool {
	if !validateCSRF(r) {
		h.logger.Warn("csrf validation failed", "path", r.URL.Path)
		http.Error(w, "invalid csrf token", http.StatusForbidden)
		return false
	}
	return true
}

// Logout ends the session and returns to the login screen.
func (h *Handler) Logout(w http.ResponseWriter, r *http.Request) {
	if !h.checkCSRF(w, r) {
		return
	}
	h.auth.Logout(r.Context())
	http.Redirect(w, r, "/login", http.StatusSeeOther)
}

// ChangePassword handles the password modal submission.
func (h *Handler) ChangePassword(w http.ResponseWriter, r *http.Request) {
	if !h.checkCSRF(w, r) {
		return
	}

	err := h.auth.ChangePassword(
		r.Context(),
		r.PostFormValue("currentPassword"),
		r.PostFormValue("newPassword"),
		r.PostFormValue("confirmPassword"),
	)
	if err != nil {
		h.notifier.Error("Failed to change password: " + err.Error())
	} else {
		h.notifier.Success("Password changed successfully!")
	}
	http.Redirect(w, r, "/app/"+h.viewState.ActiveTab(), http.StatusSeeOther)
}

// submitModal validates a schema-driven modal form and, when it passes, runs
// the mutation. Validation failures re-render the tab with the modal open and
// the field errors echoed back.
func (h *Handler) submitModal(w http.ResponseWriter, r *http.Request, form application.Form, tab string, mutate func(map[string]string) error) {
	if !h.checkCSRF(w, r) {
		return
	}
	if err := r.ParseForm(); err != nil {
		http.Error(w, "malformed form", http.StatusBadRequest)
		return
	}

	cleaned, err := form.Validate(formValues(r))
	if err != nil {
		var fieldErrs application.FieldErrors
		if !asFieldErrors(err, &fieldErrs) {
			http.Error(w, "invalid form", http.StatusBadRequest)
			return
		}
		h.viewState.SetActiveTab(r.Context(), tab)
		h.viewState.OpenModal(form.Kind)
		w.WriteHeader(http.StatusUnprocessableEntity)
		h.renderTab(w, r, tab, formValues(r), fieldErrs)
		return
	}

	h.viewState.CloseModal()
	if err := mutate(cleaned); err != nil {
		h.handleMutationErr(w, r, err, tab)
		return
	}
	http.Redirect(w, r, "/app/"+tab, http.StatusSeeOther)
}

// AddConsultant handles the consultant modal submission.
func (h *Handler) AddConsultant(w http.ResponseWriter, r *http.Request) {
	h.submitModal(w, r, application.ConsultantForm(), "consultants", func(values map[string]string) error {
		return h.mutations.AddConsultant(r.Context(), application.ConsultantRequest(values))
	})
}

// AddClient handles the client modal submission.
func (h *Handler) AddClient(w http.ResponseWriter, r *http.Request) {
	h.submitModal(w, r, application.ClientForm(), "clients", func(values map[string]string) error {
		return h.mutations.AddClient(r.Context(), application.ClientRequest(values))
	})
}

// AddContract handles the contract modal submission.
func (h *Handler) AddContract(w http.ResponseWriter, r *http.Request) {
	snap := h.cache.Snapshot()
	h.submitModal(w, r, application.ContractForm(snap.Consultants, snap.Clients), "contracts", func(values map[string]string) error {
		return h.mutations.AddContract(r.Context(), application.ContractRequest(values))
	})
}

// CreateOperator handles the operator modal submission. Admin only.
func (h *Handler) CreateOperator(w http.ResponseWriter, r *http.Request) {
	if !h.requireAdmin(w, r) {
		return
	}
	h.submitModal(w, r, application.OperatorForm(), "users", func(values map[string]string) error {
		return h.mutations.CreateOperator(r.Context(), application.OperatorRequest(values))
	})
}

// ToggleUser flips a user's active flag. Admin only.
func (h *Handler) ToggleUser(w http.ResponseWriter, r *http.Request) {
	if !h.requireAdmin(w, r) || !h.checkCSRF(w, r) {
		return
	}
	id, ok := pathID(w, r, "id")
	if !ok {
		return
	}
	if err := h.mutations.ToggleUserActive(r.Context(), id); err != nil {
		h.handleMutationErr(w, r, err, "users")
		return
	}
	http.Redirect(w, r, "/app/users", http.StatusSeeOther)
}

// DeleteUser removes a user. Admin only.
func (h *Handler) DeleteUser(w http.ResponseWriter, r *http.Request) {
	if !h.requireAdmin(w, r) || !h.checkCSRF(w, r) {
		return
	}
	id, ok := pathID(w, r, "id")
	if !ok {
		return
	}
	if err := h.mutations.DeleteUser(r.Context(), id); err != nil {
		h.handleMutationErr(w, r, err, "users")
		return
	}
	http.Redirect(w, r, "/app/users", http.StatusSeeOther)
}

// UpdateSettings saves the settings modal.
func (h *Handler) UpdateSettings(w http.ResponseWriter, r *http.Request) {
	if !h.checkCSRF(w, r) {
		return
	}

	current := h.cache.Snapshot().Settings
	settings, err := settingsFromForm(r, current)
	if err != nil {
		h.notifier.Error("Failed to update settings: " + err.Error())
		http.Redirect(w, r, "/app/"+h.viewState.ActiveTab(), http.StatusSeeOther)
		return
	}

	h.viewState.CloseModal()
	if err := h.mutations.UpdateSettings(r.Context(), settings); err != nil {
		h.handleMutationErr(w, r, err, h.viewState.ActiveTab())
		return
	}
	http.Redirect(w, r, "/app/"+h.viewState.ActiveTab(), http.StatusSeeOther)
}

// UpdateDeadline saves only the timesheet deadline day, keeping the rest of
// the settings untouched.
func (h *Handler) UpdateDeadline(w http.ResponseWriter, r *http.Request) {
	if !h.checkCSRF(w, r) {
		return
	}

	day, err := strconv.Atoi(r.PostFormValue("deadlineDay"))
	if err != nil || day < 1 || day > 31 {
		h.notifier.Error("Deadline day must be between 1 and 31")
		http.Redirect(w, r, "/app/timesheets", http.StatusSeeOther)
		return
	}

	settings := h.cache.Snapshot().Settings
	settings.TimesheetDeadlineDay = day

	h.viewState.CloseModal()
	if err := h.mutations.UpdateSettings(r.Context(), settings); err != nil {
		h.handleMutationErr(w, r, err, "timesheets")
		return
	}
	http.Redirect(w, r, "/app/timesheets", http.StatusSeeOther)
}

// UpdateInvoiceNumber saves the invoice-number inline editor.
func (h *Handler) UpdateInvoiceNumber(w http.ResponseWriter, r *http.Request) {
	if !h.checkCSRF(w, r) {
		return
	}
	id, ok := pathID(w, r, "id")
	if !ok {
		return
	}
	number := r.PostFormValue("invoiceNumber")
	if number == "" {
		h.notifier.Error("Invoice number cannot be empty")
		http.Redirect(w, r, "/app/invoices", http.StatusSeeOther)
		return
	}

	h.viewState.FinishEdit()
	if err := h.mutations.UpdateInvoiceNumber(r.Context(), id, number); err != nil {
		h.handleMutationErr(w, r, err, "invoices")
		return
	}
	http.Redirect(w, r, "/app/invoices", http.StatusSeeOther)
}

// GenerateInvoice requests an invoice pair for a contract.
func (h *Handler) GenerateInvoice(w http.ResponseWriter, r *http.Request) {
	if !h.checkCSRF(w, r) {
		return
	}
	id, ok := pathID(w, r, "contractID")
	if !ok {
		return
	}
	if err := h.mutations.GenerateInvoice(r.Context(), id); err != nil {
		h.handleMutationErr(w, r, err, "contracts")
		return
	}
	http.Redirect(w, r, "/app/invoices", http.StatusSeeOther)
}

// ViewInvoicePDF sends the browser to the invoice's PDF, generating it first
// when the invoice has none yet.
func (h *Handler) ViewInvoicePDF(w http.ResponseWriter, r *http.Request) {
	id, ok := pathID(w, r, "id")
	if !ok {
		return
	}
	invoice, found := h.findInvoice(id)
	if !found {
		http.NotFound(w, r)
		return
	}

	url, err := h.mutations.EnsureInvoicePDF(r.Context(), invoice)
	if err != nil {
		h.handleMutationErr(w, r, err, "invoices")
		return
	}
	http.Redirect(w, r, url, http.StatusSeeOther)
}

// SendInvoiceEmail emails an invoice to its recipient.
func (h *Handler) SendInvoiceEmail(w http.ResponseWriter, r *http.Request) {
	if !h.checkCSRF(w, r) {
		return
	}
	id, ok := pathID(w, r, "id")
	if !ok {
		return
	}
	invoice, found := h.findInvoice(id)
	if !found {
		http.NotFound(w, r)
		return
	}
	if err := h.mutations.SendInvoiceEmail(r.Context(), invoice); err != nil {
		h.handleMutationErr(w, r, err, "invoices")
		return
	}
	http.Redirect(w, r, "/app/invoices", http.StatusSeeOther)
}

// ViewInvoiceTimesheet sends the browser to the timesheet file backing an
// invoice, resolved through the invoice's contract and consultant.
func (h *Handler) ViewInvoiceTimesheet(w http.ResponseWriter, r *http.Request) {
	id, ok := pathID(w, r, "id")
	if !ok {
		return
	}
	invoice, found := h.findInvoice(id)
	if !found {
		http.NotFound(w, r)
		return
	}

	url, err := h.cache.TimesheetFileForInvoice(r.Context(), invoice)
	if err != nil {
		h.notifier.Error("No timesheet found for this invoice")
		h.handleMutationErr(w, r, err, "invoices")
		return
	}
	http.Redirect(w, r, url, http.StatusSeeOther)
}

// UpdateTimesheetDays saves the billed-days inline editor.
func (h *Handler) UpdateTimesheetDays(w http.ResponseWriter, r *http.Request) {
	if !h.checkCSRF(w, r) {
		return
	}
	id, ok := pathID(w, r, "id")
	if !ok {
		return
	}

	days, err := decimal.NewFromString(r.PostFormValue("days"))
	if err != nil || days.IsNegative() {
		h.notifier.Error("Days must be a non-negative number")
		http.Redirect(w, r, "/app/timesheets", http.StatusSeeOther)
		return
	}

	h.viewState.FinishEdit()
	if err := h.mutations.UpdateTimesheetDays(r.Context(), id, days.InexactFloat64()); err != nil {
		h.handleMutationErr(w, r, err, "timesheets")
		return
	}
	http.Redirect(w, r, "/app/timesheets", http.StatusSeeOther)
}

// MatchTimesheet assigns an unmatched timesheet to a consultant.
func (h *Handler) MatchTimesheet(w http.ResponseWriter, r *http.Request) {
	if !h.checkCSRF(w, r) {
		return
	}
	id, ok := pathID(w, r, "id")
	if !ok {
		return
	}
	consultantID, err := parseID(r.PostFormValue("consultantId"))
	if err != nil {
		h.notifier.Error("Select a consultant to match")
		http.Redirect(w, r, "/app/timesheets", http.StatusSeeOther)
		return
	}

	if err := h.mutations.MatchTimesheet(r.Context(), id, consultantID); err != nil {
		h.handleMutationErr(w, r, err, "timesheets")
		return
	}
	http.Redirect(w, r, "/app/timesheets", http.StatusSeeOther)
}

// GenerateTimesheetInvoice creates the invoice pair for a received timesheet.
func (h *Handler) GenerateTimesheetInvoice(w http.ResponseWriter, r *http.Request) {
	if !h.checkCSRF(w, r) {
		return
	}
	id, ok := pathID(w, r, "id")
	if !ok {
		return
	}
	if err := h.mutations.GenerateTimesheetInvoice(r.Context(), id); err != nil {
		h.handleMutationErr(w, r, err, "timesheets")
		return
	}
	http.Redirect(w, r, "/app/invoices", http.StatusSeeOther)
}

func (h *Handler) findInvoice(id int64) (model.Invoice, bool) {
	for _, inv := range h.cache.Snapshot().Invoices {
		if inv.ID == id {
			return inv, true
		}
	}
	return model.Invoice{}, false
}

func (h *Handler) requireAdmin(w http.ResponseWriter, r *http.Request) bool {
	identity, ok := h.session.Current()
	if !ok || !identity.IsAdmin() {
		http.Error(w, "admin access required", http.StatusForbidden)
		return false
	}
	return true
}
