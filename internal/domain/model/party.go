package model

import "time"

// Consultant is a service provider billed by the operating company.
type Consultant struct {
	ID             int64     `json:"id"`
	FirstName      string    `json:"first_name"`
	LastName       string    `json:"last_name"`
	CompanyName    string    `json:"company_name"`
	CompanyAddress string    `json:"company_address"`
	CompanyVAT     string    `json:"company_vat"`
	ContractID     string    `json:"consultant_contract_id"`
	IBAN           string    `json:"iban"`
	SWIFT          string    `json:"swift"`
	Email          string    `json:"email"`
	Phone          string    `json:"phone"`
	CreatedAt      time.Time `json:"created_at"`
}

// FullName returns "First Last".
func (c Consultant) FullName() string {
	return c.FirstName + " " + c.LastName
}

// Client is the entity being billed for consultant services.
type Client struct {
	ID             int64     `json:"id"`
	FirstName      string    `json:"first_name"`
	LastName       string    `json:"last_name"`
	CompanyName    string    `json:"company_name"`
	CompanyAddress string    `json:"company_address"`
	CompanyVAT     string    `json:"company_vat"`
	ContractID     string    `json:"client_contract_id"`
	IBAN           string    `json:"iban"`
	SWIFT          string    `json:"swift"`
	Email          string    `json:"email"`
	Phone          string    `json:"phone"`
	CreatedAt      time.Time `json:"created_at"`
}

// FullName returns "First Last".
func (c Client) FullName() string {
	return c.FirstName + " " + c.LastName
}

// User is a panel operator account as served by the user-management
// endpoints. Only admins may list or manage other users.
type User struct {
	ID                 int64      `json:"id"`
	Email              string     `json:"email"`
	FirstName          string     `json:"first_name"`
	LastName           string     `json:"last_name"`
	Role               Role       `json:"role"`
	Active             bool       `json:"active"`
	CreatedByFirstName string     `json:"created_by_first_name"`
	CreatedByLastName  string     `json:"created_by_last_name"`
	LastLogin          *time.Time `json:"last_login"`
}

// FullName returns "First Last".
func (u User) FullName() string {
	return u.FirstName + " " + u.LastName
}

// CreatedBy returns the creating admin's name, or "System" for seeded accounts.
func (u User) CreatedBy() string {
	if u.CreatedByFirstName == "" {
		return "System"
	}
	return u.CreatedByFirstName + " " + u.CreatedByLastName
}
