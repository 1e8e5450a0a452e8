package domain

import (
	"database/sql/driver"
	"time"
)

type PersonStatus string

const (
	PersonActive   PersonStatus = "active"
	PersonInactive PersonStatus = "inactive"
	PersonVisitor  PersonStatus = "visitor"
	PersonMember   PersonStatus = "member"
)

func (s PersonStatus) Valid() bool {
	switch s {
	case PersonActive, PersonInactive, PersonVisitor, PersonMember:
		return true
	}
	return false
}

type Person struct {
	ID            string       `json:"id" db:"id"`
	OrgID         string       `json:"orgId" db:"org_id"`
	FirstName     string       `json:"firstName" db:"first_name"`
	LastName      string       `json:"lastName" db:"last_name"`
	PreferredName string       `json:"preferredName,omitempty" db:"preferred_name"`
	Email         string       `json:"email,omitempty" db:"email"`
	Phone         string       `json:"phone,omitempty" db:"phone"`
	BirthDate     string       `json:"birthDate,omitempty" db:"birth_date"` // YYYY-MM-DD
	Gender        string       `json:"gender,omitempty" db:"gender"`
	Status        PersonStatus `json:"status" db:"status"`
	CreatedAt     time.Time    `json:"createdAt" db:"created_at"`
	UpdatedAt     time.Time    `json:"updatedAt" db:"updated_at"`
}

// ContactSet is the contact detail owned by one person.
type ContactSet struct {
	Phones            []PersonPhone      `json:"phones" validate:"omitempty,max=20,dive"`
	Emails            []PersonEmail      `json:"emails" validate:"omitempty,max=20,dive"`
	Addresses         []PersonAddress    `json:"addresses" validate:"omitempty,max=10,dive"`
	EmergencyContacts []EmergencyContact `json:"emergencyContacts" validate:"omitempty,max=10,dive"`
}

// PersonDetail is a person with every owned collection loaded.
type PersonDetail struct {
	Person
	ContactSet
	Tags   []Tag              `json:"tags"`
	Fields []PersonFieldValue `json:"fields"`
}

// MergeReport counts the rows moved from the source person to the target
// and the rows dropped because the target already had an equivalent.
type MergeReport struct {
	Moved   map[string]int64 `json:"moved"`
	Skipped map[string]int64 `json:"skipped"`
}

type PersonPhone struct {
	ID       string `json:"id" db:"id"`
	OrgID    string `json:"-" db:"org_id"`
	PersonID string `json:"personId" db:"person_id"`
	Label    string `json:"label" db:"label"`
	Number   string `json:"number" db:"number" validate:"required,max=40"`
}

type PersonEmail struct {
	ID       string `json:"id" db:"id"`
	OrgID    string `json:"-" db:"org_id"`
	PersonID string `json:"personId" db:"person_id"`
	Label    string `json:"label" db:"label"`
	Address  string `json:"address" db:"address" validate:"required,email"`
}

type PersonAddress struct {
	ID         string `json:"id" db:"id"`
	OrgID      string `json:"-" db:"org_id"`
	PersonID   string `json:"personId" db:"person_id"`
	Label      string `json:"label" db:"label"`
	Street     string `json:"street" db:"street" validate:"required,max=200"`
	City       string `json:"city" db:"city"`
	State      string `json:"state" db:"state"`
	PostalCode string `json:"postalCode" db:"postal_code"`
	Country    string `json:"country" db:"country"`
}

type EmergencyContact struct {
	ID           string `json:"id" db:"id"`
	OrgID        string `json:"-" db:"org_id"`
	PersonID     string `json:"personId" db:"person_id"`
	Name         string `json:"name" db:"name" validate:"required,max=120"`
	Relationship string `json:"relationship" db:"relationship"`
	Phone        string `json:"phone" db:"phone"`
}

type PersonNote struct {
	ID        string    `json:"id" db:"id"`
	OrgID     string    `json:"orgId" db:"org_id"`
	PersonID  string    `json:"personId" db:"person_id"`
	AuthorID  string    `json:"authorId" db:"author_id"`
	Body      string    `json:"body" db:"body"`
	CreatedAt time.Time `json:"createdAt" db:"created_at"`
}

// PersonFilter narrows a people listing.
type PersonFilter struct {
	Query  string // substring of first, last, preferred name or email
	Status PersonStatus
	TagID  string
	Page
}

type FieldType string

const (
	FieldText   FieldType = "text"
	FieldNumber FieldType = "number"
	FieldDate   FieldType = "date"
	FieldSelect FieldType = "select"
)

func (t FieldType) Valid() bool {
	switch t {
	case FieldText, FieldNumber, FieldDate, FieldSelect:
		return true
	}
	return false
}

// CustomField is an org defined extra attribute on people.
type CustomField struct {
	ID        string      `json:"id" db:"id"`
	OrgID     string      `json:"orgId" db:"org_id"`
	Name      string      `json:"name" db:"name"`
	Type      FieldType   `json:"type" db:"type"`
	Options   StringSlice `json:"options" db:"options"`
	CreatedAt time.Time   `json:"createdAt" db:"created_at"`
}

type PersonFieldValue struct {
	OrgID     string    `json:"-" db:"org_id"`
	PersonID  string    `json:"personId" db:"person_id"`
	FieldID   string    `json:"fieldId" db:"field_id"`
	Value     string    `json:"value" db:"value"`
	UpdatedAt time.Time `json:"updatedAt" db:"updated_at"`
}

// StringSlice is a []string stored as a JSON array.
type StringSlice []string

func (s StringSlice) Value() (driver.Value, error) {
	if s == nil {
		return "[]", nil
	}
	return jsonValue([]string(s))
}

func (s *StringSlice) Scan(src any) error { return jsonScan(src, (*[]string)(s)) }
