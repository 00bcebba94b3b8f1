package dto

import (
	"time"

	"github.com/jakesworld/tracking-api/internal/models"
)

// VisitStudent is the student slice joined onto each activity row.
type VisitStudent struct {
	NetID string `json:"netId"`
	Name  string `json:"name,omitempty"`
}

// ActivityVisit is one row of the recent-activity feed.
type ActivityVisit struct {
	ID        uint                   `json:"id"`
	PagePath  string                 `json:"pagePath"`
	PageTitle string                 `json:"pageTitle,omitempty"`
	Action    string                 `json:"action"`
	Element   string                 `json:"element,omitempty"`
	Value     string                 `json:"value,omitempty"`
	SessionID string                 `json:"sessionId,omitempty"`
	UserAgent string                 `json:"userAgent,omitempty"`
	Metadata  map[string]interface{} `json:"metadata,omitempty"`
	VisitedAt time.Time              `json:"visitedAt"`
	Student   VisitStudent           `json:"student"`
}

// ActionCount is one bucket of the per-action histogram.
type ActionCount struct {
	Action string `json:"action"`
	Count  int64  `json:"count"`
}

// PageCount is one bucket of the page-popularity ranking.
type PageCount struct {
	PagePath string `json:"pagePath"`
	Count    int64  `json:"count"`
}

// ActivityOverviewResponse is the payload of GET /api/student/activity.
type ActivityOverviewResponse struct {
	RecentActivity      []ActivityVisit `json:"recentActivity"`
	TodayActivityByType []ActionCount   `json:"todayActivityByType"`
	TodayPageViews      []PageCount     `json:"todayPageViews"`
	Timestamp           time.Time       `json:"timestamp"`
}

// NewActivityVisit maps a visit row plus its preloaded student.
func NewActivityVisit(visit models.Visit) ActivityVisit {
	return ActivityVisit{
		ID:        visit.ID,
		PagePath:  visit.PagePath,
		PageTitle: visit.PageTitle,
		Action:    visit.Action,
		Element:   visit.Element,
		Value:     visit.Value,
		SessionID: visit.SessionID,
		UserAgent: visit.UserAgent,
		Metadata:  map[string]interface{}(visit.Metadata),
		VisitedAt: visit.VisitedAt,
		Student: VisitStudent{
			NetID: visit.Student.NetID,
			Name:  visit.Student.Name,
		},
	}
}
