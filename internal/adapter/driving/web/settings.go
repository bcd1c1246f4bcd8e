package web

import (
	"fmt"
	"net/http"
	"strconv"

	"github.com/dstanchev/invoicepanel/internal/domain/model"
	"github.com/shopspring/decimal"
)

// settingsFromForm builds the company settings from the settings modal,
// starting from the current values so fields left blank are preserved. The
// SMTP password in particular is only overwritten when a new one is typed.
func settingsFromForm(r *http.Request, current model.CompanySettings) (model.CompanySettings, error) {
	if err := r.ParseForm(); err != nil {
		return model.CompanySettings{}, fmt.Errorf("parse settings form: %w", err)
	}

	settings := current
	settings.Name = r.PostFormValue("name")
	settings.Address = r.PostFormValue("address")
	settings.RepresentativeName = r.PostFormValue("representativeName")
	settings.CompanyVAT = r.PostFormValue("companyVat")
	settings.CompanyEmail = r.PostFormValue("companyEmail")

	if raw := r.PostFormValue("defaultVatRate"); raw != "" {
		rate, err := decimal.NewFromString(raw)
		if err != nil || rate.IsNegative() {
			return model.CompanySettings{}, fmt.Errorf("default VAT rate must be a non-negative number")
		}
		settings.DefaultVATRate = rate
	}

	settings.BankName = r.PostFormValue("bankName")
	settings.BankIBAN = r.PostFormValue("bankIban")
	settings.BankSWIFT = r.PostFormValue("bankSwift")
	settings.BankAddress = r.PostFormValue("bankAddress")

	settings.SMTPHost = r.PostFormValue("smtpHost")
	if raw := r.PostFormValue("smtpPort"); raw != "" {
		port, err := strconv.Atoi(raw)
		if err != nil || port < 1 || port > 65535 {
			return model.CompanySettings{}, fmt.Errorf("SMTP port must be between 1 and 65535")
		}
		settings.SMTPPort = port
	}
	settings.SMTPUsername = r.PostFormValue("smtpUsername")
	if pw := r.PostFormValue("smtpPassword"); pw != "" {
		settings.SMTPPassword = pw
	}
	settings.SMTPFromEmail = r.PostFormValue("smtpFromEmail")
	settings.SMTPFromName = r.PostFormValue("smtpFromName")
	settings.SMTPSecure = r.PostFormValue("smtpSecure") == "on" || r.PostFormValue("smtpSecure") == "true"

	return settings, nil
}
