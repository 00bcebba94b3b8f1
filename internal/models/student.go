package models

import "time"

// Student represents a learner identified by the NetID they supplied to the
// capture widget. The NetID is the natural key: case-normalized, unique and
// immutable once created. Rows are never deleted.
type Student struct {
	ID        uint      `gorm:"primaryKey" json:"id"`
	NetID     string    `gorm:"size:64;uniqueIndex;not null" json:"netId"`
	Name      string    `gorm:"size:255" json:"name,omitempty"`
	CreatedAt time.Time `json:"createdAt"`
	UpdatedAt time.Time `json:"updatedAt"`
}
