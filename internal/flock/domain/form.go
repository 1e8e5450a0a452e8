package domain

import (
	"database/sql/driver"
	"errors"
	"slices"
	"strconv"
	"time"
)

type FormField struct {
	Key      string    `json:"key" validate:"required,max=64"`
	Label    string    `json:"label" validate:"required,max=200"`
	Type     FieldType `json:"type" validate:"required,oneof=text number date select"`
	Required bool      `json:"required"`
	Options  []string  `json:"options,omitempty"`
}

// Check validates a submitted value against the field definition. An empty
// value is only an error when the field is required.
func (f FormField) Check(value string) error {
	if value == "" {
		if f.Required {
			return errors.New("is required")
		}
		return nil
	}
	switch f.Type {
	case FieldNumber:
		if _, err := strconv.ParseFloat(value, 64); err != nil {
			return errors.New("must be a number")
		}
	case FieldDate:
		if _, err := time.Parse(time.DateOnly, value); err != nil {
			return errors.New("must be a date (YYYY-MM-DD)")
		}
	case FieldSelect:
		if !slices.Contains(f.Options, value) {
			return errors.New("must be one of the listed options")
		}
	}
	return nil
}

type FormFields []FormField

func (f FormFields) Value() (driver.Value, error) {
	if f == nil {
		return "[]", nil
	}
	return jsonValue([]FormField(f))
}

func (f *FormFields) Scan(src any) error { return jsonScan(src, (*[]FormField)(f)) }

type Form struct {
	ID          string     `json:"id" db:"id"`
	OrgID       string     `json:"orgId" db:"org_id"`
	Name        string     `json:"name" db:"name"`
	Description string     `json:"description" db:"description"`
	Fields      FormFields `json:"fields" db:"fields"`
	Published   bool       `json:"published" db:"published"`
	CreatedAt   time.Time  `json:"createdAt" db:"created_at"`
	UpdatedAt   time.Time  `json:"updatedAt" db:"updated_at"`
}

// StringMap is a map[string]string stored as a JSON object.
type StringMap map[string]string

func (m StringMap) Value() (driver.Value, error) {
	if m == nil {
		return "{}", nil
	}
	return jsonValue(map[string]string(m))
}

func (m *StringMap) Scan(src any) error { return jsonScan(src, (*map[string]string)(m)) }

type FormSubmission struct {
	ID          string    `json:"id" db:"id"`
	OrgID       string    `json:"orgId" db:"org_id"`
	FormID      string    `json:"formId" db:"form_id"`
	PersonID    *string   `json:"personId,omitempty" db:"person_id"`
	SubmittedBy string    `json:"submittedBy" db:"submitted_by"`
	Data        StringMap `json:"data" db:"data"`
	CreatedAt   time.Time `json:"createdAt" db:"created_at"`
}
