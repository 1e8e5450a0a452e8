package domain

import (
	"database/sql/driver"
	"time"
)

type TemplateItem struct {
	Kind            ItemKind `json:"kind" validate:"required,oneof=song reading header other"`
	Title           string   `json:"title" validate:"required,max=200"`
	DurationSeconds int      `json:"durationSeconds" validate:"gte=0"`
	Notes           string   `json:"notes,omitempty"`
}

type TemplateItems []TemplateItem

func (t TemplateItems) Value() (driver.Value, error) {
	if t == nil {
		return "[]", nil
	}
	return jsonValue([]TemplateItem(t))
}

func (t *TemplateItems) Scan(src any) error { return jsonScan(src, (*[]TemplateItem)(t)) }

// ServiceTemplate is a reusable running order.
type ServiceTemplate struct {
	ID        string        `json:"id" db:"id"`
	OrgID     string        `json:"orgId" db:"org_id"`
	Name      string        `json:"name" db:"name"`
	Items     TemplateItems `json:"items" db:"items"`
	CreatedAt time.Time     `json:"createdAt" db:"created_at"`
	UpdatedAt time.Time     `json:"updatedAt" db:"updated_at"`
}
