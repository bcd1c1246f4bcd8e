package application

import (
	"fmt"
	"strconv"

	"github.com/dstanchev/invoicepanel/internal/domain/model"
	"github.com/dstanchev/invoicepanel/internal/domain/port/driven"
)

// Modal form kinds.
const (
	FormConsultant = "consultant"
	FormClient     = "client"
	FormContract   = "contract"
	FormOperator   = "operator"
)

// ConsultantForm describes the new-consultant modal.
func ConsultantForm() Form {
	return Form{
		Kind:  FormConsultant,
		Title: "Add New Consultant",
		Fields: []Field{
			{Name: "firstName", Placeholder: "First Name", Kind: FieldText, Required: true},
			{Name: "lastName", Placeholder: "Last Name", Kind: FieldText, Required: true},
			{Name: "companyName", Placeholder: "Company Name", Kind: FieldText},
			{Name: "companyAddress", Placeholder: "Company Address", Kind: FieldText},
			{Name: "companyVAT", Placeholder: "VAT Number", Kind: FieldText},
			{Name: "consultantContractId", Placeholder: "Consultant Contract ID", Kind: FieldText},
			{Name: "iban", Placeholder: "IBAN", Kind: FieldText},
			{Name: "swift", Placeholder: "SWIFT Code", Kind: FieldText},
			{Name: "email", Placeholder: "Email", Kind: FieldEmail, Required: true},
			{Name: "phone", Placeholder: "Phone", Kind: FieldText},
		},
	}
}

// ClientForm describes the new-client modal.
func ClientForm() Form {
	return Form{
		Kind:  FormClient,
		Title: "Add New Client",
		Fields: []Field{
			{Name: "firstName", Placeholder: "First Name", Kind: FieldText, Required: true},
			{Name: "lastName", Placeholder: "Last Name", Kind: FieldText, Required: true},
			{Name: "companyName", Placeholder: "Company Name", Kind: FieldText},
			{Name: "companyAddress", Placeholder: "Company Address", Kind: FieldText},
			{Name: "companyVAT", Placeholder: "VAT Number", Kind: FieldText},
			{Name: "clientContractId", Placeholder: "Client Contract ID", Kind: FieldText},
			{Name: "iban", Placeholder: "IBAN", Kind: FieldText},
			{Name: "swift", Placeholder: "SWIFT Code", Kind: FieldText},
			{Name: "email", Placeholder: "Email", Kind: FieldEmail, Required: true},
			{Name: "phone", Placeholder: "Phone", Kind: FieldText},
		},
	}
}

// ContractForm describes the new-contract modal. The consultant and client
// selects are populated from the current snapshot.
func ContractForm(consultants []model.Consultant, clients []model.Client) Form {
	consultantOpts := make([]Option, 0, len(consultants))
	for _, c := range consultants {
		consultantOpts = append(consultantOpts, Option{
			Value: strconv.FormatInt(c.ID, 10),
			Label: fmt.Sprintf("%s - %s", c.FullName(), c.CompanyName),
		})
	}

	clientOpts := make([]Option, 0, len(clients))
	for _, c := range clients {
		clientOpts = append(clientOpts, Option{
			Value: strconv.FormatInt(c.ID, 10),
			Label: fmt.Sprintf("%s - %s", c.FullName(), c.CompanyName),
		})
	}

	return Form{
		Kind:  FormContract,
		Title: "Add New Contract",
		Fields: []Field{
			{Name: "contractNumber", Placeholder: "Contract Number (e.g., CNT-2024-001)", Kind: FieldText, Required: true},
			{Name: "consultantId", Placeholder: "Select Consultant", Kind: FieldSelect, Required: true, Options: consultantOpts},
			{Name: "clientId", Placeholder: "Select Client", Kind: FieldSelect, Required: true, Options: clientOpts},
			{Name: "fromDate", Label: "Contract Start Date", Kind: FieldDate, Required: true},
			{Name: "toDate", Label: "Contract End Date", Kind: FieldDate, Required: true},
			{Name: "purchasePrice", Placeholder: "Purchase Price (€)", Kind: FieldNumber, Required: true, Step: "0.01"},
			{Name: "sellPrice", Placeholder: "Sell Price (€)", Kind: FieldNumber, Required: true, Step: "0.01"},
			{Name: "consultantVatEnabled", Label: "Enable VAT for Consultant Invoices", Kind: FieldCheckbox},
			{Name: "consultantVatRate", Label: "Consultant VAT Rate (%)", Kind: FieldNumber, Step: "0.01", EnabledBy: "consultantVatEnabled"},
			{Name: "vatEnabled", Label: "Enable VAT for Client Invoices", Kind: FieldCheckbox},
			{Name: "vatRate", Label: "Client VAT Rate (%)", Kind: FieldNumber, Step: "0.01", EnabledBy: "vatEnabled"},
		},
	}
}

// OperatorForm describes the create-operator modal.
func OperatorForm() Form {
	return Form{
		Kind:  FormOperator,
		Title: "Create Operator Account",
		Fields: []Field{
			{Name: "firstName", Placeholder: "First Name", Kind: FieldText, Required: true},
			{Name: "lastName", Placeholder: "Last Name", Kind: FieldText, Required: true},
			{Name: "email", Placeholder: "Email", Kind: FieldEmail, Required: true},
			{Name: "password", Placeholder: "Password", Kind: FieldPassword, Required: true},
		},
	}
}

// ConsultantRequest builds the API request from validated consultant form
// values.
func ConsultantRequest(values map[string]string) driven.CreateConsultantRequest {
	return driven.CreateConsultantRequest{
		FirstName:            values["firstName"],
		LastName:             values["lastName"],
		CompanyName:          values["companyName"],
		CompanyAddress:       values["companyAddress"],
		CompanyVAT:           values["companyVAT"],
		ConsultantContractID: values["consultantContractId"],
		IBAN:                 values["iban"],
		SWIFT:                values["swift"],
		Email:                values["email"],
		Phone:                values["phone"],
	}
}

// ClientRequest builds the API request from validated client form values.
func ClientRequest(values map[string]string) driven.CreateClientRequest {
	return driven.CreateClientRequest{
		FirstName:        values["firstName"],
		LastName:         values["lastName"],
		CompanyName:      values["companyName"],
		CompanyAddress:   values["companyAddress"],
		CompanyVAT:       values["companyVAT"],
		ClientContractID: values["clientContractId"],
		IBAN:             values["iban"],
		SWIFT:            values["swift"],
		Email:            values["email"],
		Phone:            values["phone"],
	}
}

// ContractRequest builds the API request from validated contract form
// values. Select values were already checked against the offered options, so
// the ID parses are unconditional.
func ContractRequest(values map[string]string) driven.CreateContractRequest {
	consultantID, _ := strconv.ParseInt(values["consultantId"], 10, 64)
	clientID, _ := strconv.ParseInt(values["clientId"], 10, 64)

	return driven.CreateContractRequest{
		ContractNumber:       values["contractNumber"],
		ConsultantID:         consultantID,
		ClientID:             clientID,
		FromDate:             values["fromDate"],
		ToDate:               values["toDate"],
		PurchasePrice:        values["purchasePrice"],
		SellPrice:            values["sellPrice"],
		ConsultantVATEnabled: values["consultantVatEnabled"] == "true",
		ConsultantVATRate:    values["consultantVatRate"],
		VATEnabled:           values["vatEnabled"] == "true",
		VATRate:              values["vatRate"],
	}
}

// OperatorRequest builds the API request from validated operator form
// values. Accounts created this way always get the operator role.
func OperatorRequest(values map[string]string) driven.CreateUserRequest {
	return driven.CreateUserRequest{
		FirstName: values["firstName"],
		LastName:  values["lastName"],
		Email:     values["email"],
		Password:  values["password"],
		Role:      string(model.RoleOperator),
	}
}
