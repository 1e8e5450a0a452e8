package domain

import "time"

type Song struct {
	ID         string    `json:"id" db:"id"`
	OrgID      string    `json:"orgId" db:"org_id"`
	Title      string    `json:"title" db:"title"`
	Artist     string    `json:"artist" db:"artist"`
	CCLINumber string    `json:"ccliNumber" db:"ccli_number"`
	DefaultKey string    `json:"defaultKey" db:"default_key"`
	Tempo      int       `json:"tempo" db:"tempo"`
	Lyrics     string    `json:"lyrics" db:"lyrics"`
	CreatedAt  time.Time `json:"createdAt" db:"created_at"`
	UpdatedAt  time.Time `json:"updatedAt" db:"updated_at"`
}

type Tag struct {
	ID        string    `json:"id" db:"id"`
	OrgID     string    `json:"orgId" db:"org_id"`
	Name      string    `json:"name" db:"name"`
	Color     string    `json:"color" db:"color"`
	CreatedAt time.Time `json:"createdAt" db:"created_at"`
}
