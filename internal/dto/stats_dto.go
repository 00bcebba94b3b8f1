package dto

import (
	"time"

	"github.com/jakesworld/tracking-api/internal/models"
)

// VisitTotals mirrors the `_count` shape the dashboards expect.
type VisitTotals struct {
	Visits int64 `json:"visits"`
}

// StudentSummary is one entry of the recent-students list.
type StudentSummary struct {
	ID        uint        `json:"id"`
	NetID     string      `json:"netId"`
	Name      string      `json:"name,omitempty"`
	CreatedAt time.Time   `json:"createdAt"`
	UpdatedAt time.Time   `json:"updatedAt"`
	Count     VisitTotals `json:"_count"`
}

// StatsSummaryResponse is the payload of GET /api/student/stats.
type StatsSummaryResponse struct {
	TotalStudents       int64            `json:"totalStudents"`
	TotalVisits         int64            `json:"totalVisits"`
	TodayActivity       int64            `json:"todayActivity"`
	ActiveStudentsToday int64            `json:"activeStudentsToday"`
	RecentStudents      []StudentSummary `json:"recentStudents"`
	PopularPages        []PageCount      `json:"popularPages"`
	ActivityTypes       []ActionCount    `json:"activityTypes"`
}

// VisitDetail is one visit row inside a per-student detail payload.
type VisitDetail struct {
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
}

// StudentDetail is a student joined with its recent visits and lifetime total.
type StudentDetail struct {
	ID        uint          `json:"id"`
	NetID     string        `json:"netId"`
	Name      string        `json:"name,omitempty"`
	CreatedAt time.Time     `json:"createdAt"`
	UpdatedAt time.Time     `json:"updatedAt"`
	Visits    []VisitDetail `json:"visits"`
	Count     VisitTotals   `json:"_count"`
}

// StudentDetailResponse wraps the per-student lookup; Student is null for an
// unknown NetID rather than an error.
type StudentDetailResponse struct {
	Student *StudentDetail `json:"student"`
}

// NewStudentSummary maps a student row and its visit total.
func NewStudentSummary(student models.Student, visitCount int64) StudentSummary {
	return StudentSummary{
		ID:        student.ID,
		NetID:     student.NetID,
		Name:      student.Name,
		CreatedAt: student.CreatedAt,
		UpdatedAt: student.UpdatedAt,
		Count:     VisitTotals{Visits: visitCount},
	}
}

// NewVisitDetail maps a visit row without its student join.
func NewVisitDetail(visit models.Visit) VisitDetail {
	return VisitDetail{
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
	}
}
