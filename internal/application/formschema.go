package application

import (
	"fmt"
	"sort"
	"strings"
	"time"

	"github.com/go-playground/validator/v10"
	"github.com/shopspring/decimal"
)

// FieldKind tags the variant of a form field. The renderer and the validator
// both switch on it; there are no untyped field bags.
type FieldKind string

const (
	FieldText     FieldKind = "text"
	FieldEmail    FieldKind = "email"
	FieldPassword FieldKind = "password"
	FieldNumber   FieldKind = "number"
	FieldSelect   FieldKind = "select"
	FieldCheckbox FieldKind = "checkbox"
	FieldDate     FieldKind = "date"
)

// Option is one choice of a select field.
type Option struct {
	Value string
	Label string
}

// Field describes a single form input. Kind decides which of the optional
// attributes apply: Step to numbers, Options to selects.
type Field struct {
	Name        string
	Label       string
	Placeholder string
	Kind        FieldKind
	Required    bool
	Step        string
	Options     []Option
	// EnabledBy names a checkbox field that gates this one. While the
	// checkbox is unchecked the field is disabled and its value discarded.
	EnabledBy string
}

// Form is a data-driven description of one modal form, interpreted by a
// single generic renderer.
type Form struct {
	Kind   string
	Title  string
	Fields []Field
}

// FieldErrors maps field names to validation messages.
type FieldErrors map[string]string

func (e FieldErrors) Error() string {
	names := make([]string, 0, len(e))
	for name := range e {
		names = append(names, name)
	}
	sort.Strings(names)

	parts := make([]string, 0, len(names))
	for _, name := range names {
		parts = append(parts, name+": "+e[name])
	}
	return "invalid form input: " + strings.Join(parts, "; ")
}

var formValidate = validator.New()

// Validate checks submitted values against the schema and returns the
// cleaned values. Checkbox fields normalize to "true"/"false"; all other
// values are trimmed. A non-nil error is always a FieldErrors.
func (f Form) Validate(values map[string]string) (map[string]string, error) {
	cleaned := make(map[string]string, len(f.Fields))
	errs := FieldErrors{}

	for _, field := range f.Fields {
		value := strings.TrimSpace(values[field.Name])

		if field.Kind == FieldCheckbox {
			cleaned[field.Name] = fmt.Sprint(checkboxChecked(value))
			continue
		}

		if field.EnabledBy != "" && !checkboxChecked(values[field.EnabledBy]) {
			cleaned[field.Name] = ""
			continue
		}

		if value == "" {
			if field.Required {
				errs[field.Name] = "required"
			}
			cleaned[field.Name] = ""
			continue
		}

		if msg := validateValue(field, value); msg != "" {
			errs[field.Name] = msg
			continue
		}
		cleaned[field.Name] = value
	}

	if len(errs) > 0 {
		return nil, errs
	}
	return cleaned, nil
}

// validateValue applies the kind-specific rule to a non-empty value and
// returns a message, or "" when the value is acceptable.
func validateValue(field Field, value string) string {
	switch field.Kind {
	case FieldEmail:
		if err := formValidate.Var(value, "email"); err != nil {
			return "not a valid email address"
		}
	case FieldPassword:
		if len(value) < minPasswordLength {
			return fmt.Sprintf("must be at least %d characters", minPasswordLength)
		}
	case FieldNumber:
		if _, err := decimal.NewFromString(value); err != nil {
			return "not a number"
		}
	case FieldDate:
		if _, err := time.Parse("2006-01-02", value); err != nil {
			return "not a valid date"
		}
	case FieldSelect:
		for _, opt := range field.Options {
			if opt.Value == value {
				return ""
			}
		}
		return "not one of the offered choices"
	}
	return ""
}

// checkboxChecked interprets the value an HTML checkbox submits.
func checkboxChecked(value string) bool {
	switch strings.ToLower(value) {
	case "on", "true", "1", "checked":
		return true
	default:
		return false
	}
}
