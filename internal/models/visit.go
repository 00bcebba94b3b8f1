package models

import (
	"time"

	"gorm.io/datatypes"
)

// Well-understood action kinds emitted by the capture widget. The vocabulary
// is open: any other non-empty string is stored as-is.
const (
	ActionLogin            = "login"
	ActionPageView         = "page_view"
	ActionExplanationClick = "explanation_click"
	ActionDefault          = "visit"
)

// Visit is one immutable tracked interaction. VisitedAt is stamped by the
// server at write time; client-supplied timestamps are never trusted.
type Visit struct {
	ID        uint              `gorm:"primaryKey" json:"id"`
	StudentID uint              `gorm:"not null;index" json:"studentId"`
	Student   Student           `json:"student,omitempty"`
	PagePath  string            `gorm:"size:512;not null;index" json:"pagePath"`
	PageTitle string            `gorm:"size:512" json:"pageTitle,omitempty"`
	Action    string            `gorm:"size:64;not null;index" json:"action"`
	Element   string            `gorm:"size:255" json:"element,omitempty"`
	Value     string            `gorm:"size:1024" json:"value,omitempty"`
	SessionID string            `gorm:"size:128" json:"sessionId,omitempty"`
	UserAgent string            `gorm:"size:512" json:"userAgent,omitempty"`
	Metadata  datatypes.JSONMap `gorm:"type:json" json:"metadata,omitempty"`
	VisitedAt time.Time         `gorm:"not null;index:idx_visits_visited_at,sort:desc" json:"visitedAt"`
}
