// Package viewmodel defines the flat, display-ready structures the HTML
// templates render. All money and dates arrive here preformatted; templates
// never touch domain types.
package viewmodel

// Notification is a transient banner.
type Notification struct {
	Message string
	Kind    string // "success" or "error"
}

// Tab is one entry of the top navigation.
type Tab struct {
	Name   string
	Label  string
	Active bool
}

// Layout carries everything the page chrome needs.
type Layout struct {
	Title        string
	ActiveTab    string
	Tabs         []Tab
	UserName     string
	UserRole     string
	IsAdmin      bool
	Notification *Notification
	CSRFToken    string
	Loading      bool
	// OpenModal names the modal to render, or "" when none is open.
	OpenModal string
}

// Dashboard is the summary tab.
type Dashboard struct {
	ConsultantCount     int
	ClientCount         int
	ContractCount       int
	ActiveContractCount int

	MonthLabel             string
	ClientTotal            string
	ConsultantTotal        string
	Profit                 string
	ProfitNegative         bool
	ClientInvoiceCount     int
	ConsultantInvoiceCount int
}

// PartyRow is one consultant or client table row.
type PartyRow struct {
	ID         int64
	Name       string
	Company    string
	Address    string
	VAT        string
	ContractID string
	IBAN       string
	SWIFT      string
	Email      string
	Phone      string
}

// ContractRow is one contract table row.
type ContractRow struct {
	ID            int64
	Number        string
	Consultant    string
	Client        string
	Period        string
	DurationDays  int
	PurchasePrice string
	SellPrice     string
	Active        bool
}

// InvoiceRow is one invoice table row. Editing marks the row whose number
// field is currently the open inline editor.
type InvoiceRow struct {
	ID          int64
	Number      string
	Editing     bool
	Draft       string
	Type        string
	Status      string
	Date        string
	Period      string
	Days        string
	Rate        string
	Subtotal    string
	VATAmount   string
	VATEnabled  bool
	Total       string
	Recipient   string
	HasPDF      bool
	PDFURL      string
	EmailSent   bool
	EmailSentTo string
}

// TimesheetRow is one timesheet table row.
type TimesheetRow struct {
	ID               int64
	Sender           string
	Month            string
	Year             int
	Days             string
	DaysMismatch     bool
	Editing          bool
	Draft            string
	Matched          bool
	Consultant       string
	FileURL          string
	InvoiceGenerated bool
}

// FilingCard is one consultant's filing state on the timesheet status strip.
type FilingCard struct {
	Name  string
	Email string
	State string
}

// TimesheetStatus is the month-checking header of the timesheets tab.
type TimesheetStatus struct {
	MonthLabel  string
	DeadlineDay int
	Received    int
	Waiting     int
	Overdue     int
	Cards       []FilingCard
}

// UserRow is one back-office user table row.
type UserRow struct {
	ID        int64
	Name      string
	Email     string
	Role      string
	CreatedBy string
	LastLogin string
	Active    bool
}

// LogRow is one automation run.
type LogRow struct {
	RunType     string
	Status      string
	MessageHTML string
	When        string
}

// FormOption is one choice of a rendered select.
type FormOption struct {
	Value    string
	Label    string
	Selected bool
}

// FormField is one rendered form input. Kind mirrors the schema variants;
// the template switches on it.
type FormField struct {
	Name        string
	Label       string
	Placeholder string
	Kind        string
	Step        string
	Value       string
	Error       string
	Required    bool
	Checked     bool
	Options     []FormOption
	// EnabledBy names the checkbox that gates this field; Disabled reflects
	// that checkbox's current state.
	EnabledBy string
	Disabled  bool
}

// FormView is a modal form ready for the generic renderer.
type FormView struct {
	Kind   string
	Title  string
	Action string
	Fields []FormField
}

// Settings is the company settings modal.
type Settings struct {
	Name                 string
	Address              string
	RepresentativeName   string
	TimesheetDeadlineDay int
	CompanyVAT           string
	CompanyEmail         string
	DefaultVATRate       string
	BankName             string
	BankIBAN             string
	BankSWIFT            string
	SMTPHost             string
	SMTPPort             int
	SMTPUser             string
	SMTPSecure           bool
}
