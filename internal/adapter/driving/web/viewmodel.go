package web

import (
	"fmt"
	"time"

	"github.com/shopspring/decimal"

	vm "github.com/dstanchev/invoicepanel/internal/adapter/driving/web/viewmodel"
	"github.com/dstanchev/invoicepanel/internal/application"
	"github.com/dstanchev/invoicepanel/internal/domain/model"
)

// money formats a decimal as a euro amount with two-decimal display rounding.
func money(d decimal.Decimal) string {
	return "€" + d.StringFixed(2)
}

// tabLabels maps tab names to their navigation captions.
var tabLabels = map[string]string{
	"dashboard":   "Dashboard",
	"consultants": "Consultants",
	"clients":     "Clients",
	"contracts":   "Contracts",
	"timesheets":  "Timesheets",
	"invoices":    "Invoices",
	"automation":  "Automation",
	"users":       "Users",
}

// toDashboard summarizes the snapshot for the dashboard tab.
func toDashboard(snap application.Snapshot, now time.Time) vm.Dashboard {
	active := 0
	for _, c := range snap.Contracts {
		if c.IsActiveOn(now) {
			active++
		}
	}

	rev := model.RevenueForMonth(snap.Invoices, now)

	return vm.Dashboard{
		ConsultantCount:        len(snap.Consultants),
		ClientCount:            len(snap.Clients),
		ContractCount:          len(snap.Contracts),
		ActiveContractCount:    active,
		MonthLabel:             fmt.Sprintf("%s %d", now.Month(), now.Year()),
		ClientTotal:            money(rev.ClientTotal),
		ConsultantTotal:        money(rev.ConsultantTotal),
		Profit:                 money(rev.Profit),
		ProfitNegative:         rev.Profit.IsNegative(),
		ClientInvoiceCount:     rev.ClientCount,
		ConsultantInvoiceCount: rev.ConsultantCount,
	}
}

func toConsultantRows(consultants []model.Consultant) []vm.PartyRow {
	rows := make([]vm.PartyRow, 0, len(consultants))
	for _, c := range consultants {
		rows = append(rows, vm.PartyRow{
			ID:         c.ID,
			Name:       c.FullName(),
			Company:    c.CompanyName,
			Address:    c.CompanyAddress,
			VAT:        c.CompanyVAT,
			ContractID: c.ContractID,
			IBAN:       c.IBAN,
			SWIFT:      c.SWIFT,
			Email:      c.Email,
			Phone:      c.Phone,
		})
	}
	return rows
}

func toClientRows(clients []model.Client) []vm.PartyRow {
	rows := make([]vm.PartyRow, 0, len(clients))
	for _, c := range clients {
		rows = append(rows, vm.PartyRow{
			ID:         c.ID,
			Name:       c.FullName(),
			Company:    c.CompanyName,
			Address:    c.CompanyAddress,
			VAT:        c.CompanyVAT,
			ContractID: c.ContractID,
			IBAN:       c.IBAN,
			SWIFT:      c.SWIFT,
			Email:      c.Email,
			Phone:      c.Phone,
		})
	}
	return rows
}

func toContractRows(contracts []model.Contract, now time.Time) []vm.ContractRow {
	rows := make([]vm.ContractRow, 0, len(contracts))
	for _, c := range contracts {
		rows = append(rows, vm.ContractRow{
			ID:            c.ID,
			Number:        c.ContractNumber,
			Consultant:    c.ConsultantFirstName + " " + c.ConsultantLastName,
			Client:        c.ClientCompany,
			Period:        c.FromDate.String() + " to " + c.ToDate.String(),
			DurationDays:  c.DurationDays(),
			PurchasePrice: money(c.PurchasePrice),
			SellPrice:     money(c.SellPrice),
			Active:        c.IsActiveOn(now),
		})
	}
	return rows
}

// toInvoiceRows converts invoices, marking the row held by the open inline
// editor when that editor targets an invoice number.
func toInvoiceRows(invoices []model.Invoice, editor *application.InlineEditor) []vm.InvoiceRow {
	rows := make([]vm.InvoiceRow, 0, len(invoices))
	for _, inv := range invoices {
		row := vm.InvoiceRow{
			ID:          inv.ID,
			Number:      inv.InvoiceNumber,
			Type:        string(inv.InvoiceType),
			Status:      string(inv.Status),
			Date:        inv.InvoiceDate.String(),
			Period:      inv.PeriodFrom.String() + " to " + inv.PeriodTo.String(),
			Days:        inv.DaysWorked.String(),
			Rate:        money(inv.DailyRate),
			Subtotal:    money(inv.Subtotal),
			VATAmount:   money(inv.VATAmount()),
			VATEnabled:  inv.VATEnabled,
			Total:       money(inv.TotalAmount),
			Recipient:   inv.RecipientName,
			HasPDF:      inv.PDFURL != "",
			PDFURL:      inv.PDFURL,
			EmailSent:   inv.EmailSent,
			EmailSentTo: inv.EmailSentTo,
		}
		if editor != nil && editor.Kind == application.EditorInvoiceNumber && editor.RowID == inv.ID {
			row.Editing = true
			row.Draft = editor.Draft
		}
		rows = append(rows, row)
	}
	return rows
}

func toTimesheetRows(timesheets []model.Timesheet, consultants []model.Consultant, editor *application.InlineEditor) []vm.TimesheetRow {
	byID := make(map[int64]model.Consultant, len(consultants))
	for _, c := range consultants {
		byID[c.ID] = c
	}

	rows := make([]vm.TimesheetRow, 0, len(timesheets))
	for _, ts := range timesheets {
		match, comparable := ts.DaysMatch()

		row := vm.TimesheetRow{
			ID:               ts.ID,
			Sender:           ts.SenderEmail,
			Month:            ts.Month,
			Year:             ts.Year,
			Days:             ts.Days().String(),
			DaysMismatch:     comparable && !match,
			Matched:          ts.ConsultantID != nil,
			FileURL:          ts.FileURL,
			InvoiceGenerated: ts.InvoiceGenerated,
		}
		if ts.ConsultantID != nil {
			if c, ok := byID[*ts.ConsultantID]; ok {
				row.Consultant = c.FullName()
			}
		}
		if editor != nil && editor.Kind == application.EditorTimesheetDays && editor.RowID == ts.ID {
			row.Editing = true
			row.Draft = editor.Draft
		}
		rows = append(rows, row)
	}
	return rows
}

func toTimesheetStatus(status model.TimesheetStatus) vm.TimesheetStatus {
	cards := make([]vm.FilingCard, 0, len(status.Consultants))
	for _, c := range status.Consultants {
		cards = append(cards, vm.FilingCard{
			Name:  c.FullName(),
			Email: c.Email,
			State: string(c.Status),
		})
	}

	return vm.TimesheetStatus{
		MonthLabel:  fmt.Sprintf("%s %d", status.CheckingMonth, status.CheckingYear),
		DeadlineDay: status.DeadlineDay,
		Received:    status.CountByState(model.TimesheetReceived),
		Waiting:     status.CountByState(model.TimesheetWaiting),
		Overdue:     status.CountByState(model.TimesheetOverdue),
		Cards:       cards,
	}
}

func toUserRows(users []model.User) []vm.UserRow {
	rows := make([]vm.UserRow, 0, len(users))
	for _, u := range users {
		lastLogin := "Never"
		if u.LastLogin != nil {
			lastLogin = u.LastLogin.Format("2006-01-02 15:04")
		}
		rows = append(rows, vm.UserRow{
			ID:        u.ID,
			Name:      u.FullName(),
			Email:     u.Email,
			Role:      string(u.Role),
			CreatedBy: u.CreatedBy(),
			LastLogin: lastLogin,
			Active:    u.Active,
		})
	}
	return rows
}

func toLogRows(logs []model.AutomationLog) []vm.LogRow {
	rows := make([]vm.LogRow, 0, len(logs))
	for _, l := range logs {
		rows = append(rows, vm.LogRow{
			RunType:     l.RunType,
			Status:      l.Status,
			MessageHTML: RenderMarkdown(l.Message),
			When:        l.CreatedAt.Format("2006-01-02 15:04"),
		})
	}
	return rows
}

func toSettings(s model.CompanySettings) vm.Settings {
	return vm.Settings{
		Name:                 s.Name,
		Address:              s.Address,
		RepresentativeName:   s.RepresentativeName,
		TimesheetDeadlineDay: s.TimesheetDeadlineDay,
		CompanyVAT:           s.CompanyVAT,
		CompanyEmail:         s.CompanyEmail,
		DefaultVATRate:       s.DefaultVATRate.StringFixed(2),
		BankName:             s.BankName,
		BankIBAN:             s.BankIBAN,
		BankSWIFT:            s.BankSWIFT,
		SMTPHost:             s.SMTPHost,
		SMTPPort:             s.SMTPPort,
		SMTPUser:             s.SMTPUsername,
		SMTPSecure:           s.SMTPSecure,
	}
}

// toFormView prepares a schema form for the generic renderer, echoing values
// and per-field errors from a failed submission.
func toFormView(form application.Form, action string, values map[string]string, errs application.FieldErrors) vm.FormView {
	fields := make([]vm.FormField, 0, len(form.Fields))
	for _, f := range form.Fields {
		field := vm.FormField{
			Name:        f.Name,
			Label:       f.Label,
			Placeholder: f.Placeholder,
			Kind:        string(f.Kind),
			Step:        f.Step,
			Value:       values[f.Name],
			Error:       errs[f.Name],
			Required:    f.Required,
			Checked:     f.Kind == application.FieldCheckbox && values[f.Name] == "on",
			EnabledBy:   f.EnabledBy,
			Disabled:    f.EnabledBy != "" && values[f.EnabledBy] != "on",
		}
		for _, opt := range f.Options {
			field.Options = append(field.Options, vm.FormOption{
				Value:    opt.Value,
				Label:    opt.Label,
				Selected: opt.Value == values[f.Name],
			})
		}
		fields = append(fields, field)
	}

	return vm.FormView{
		Kind:   form.Kind,
		Title:  form.Title,
		Action: action,
		Fields: fields,
	}
}
