package service

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/require"

	"github.com/jakesworld/tracking-api/internal/models"
)

func TestAnalyticsServiceOverviewJoinsStudents(t *testing.T) {
	students := newMemoryStudentRepo()
	visits := &memoryVisitRepo{}
	svc := NewAnalyticsService(students, visits, testLogger())

	jane, err := students.Upsert(context.Background(), "jsmith42", "Jane Smith")
	require.NoError(t, err)

	now := time.Now()
	visits.visits = []models.Visit{
		{ID: 1, StudentID: jane.ID, Student: jane, PagePath: "/chapters/1", Action: models.ActionLogin, VisitedAt: now.Add(-time.Minute)},
		{ID: 2, StudentID: jane.ID, Student: jane, PagePath: "/chapters/1", Action: models.ActionPageView, VisitedAt: now},
	}

	overview, err := svc.Overview(context.Background(), 50, 0)
	require.NoError(t, err)
	require.Len(t, overview.RecentActivity, 2)
	require.Equal(t, models.ActionPageView, overview.RecentActivity[0].Action, "newest first")
	require.Equal(t, "jsmith42", overview.RecentActivity[0].Student.NetID)
	require.NotZero(t, overview.Timestamp)

	require.Len(t, overview.TodayPageViews, 1)
	require.Equal(t, "/chapters/1", overview.TodayPageViews[0].PagePath)
	require.Equal(t, int64(1), overview.TodayPageViews[0].Count, "login rows are not page views")
}

func TestAnalyticsServiceSummaryCounts(t *testing.T) {
	students := newMemoryStudentRepo()
	visits := &memoryVisitRepo{}
	svc := NewAnalyticsService(students, visits, testLogger())

	jane, err := students.Upsert(context.Background(), "jsmith42", "Jane")
	require.NoError(t, err)
	bob, err := students.Upsert(context.Background(), "bjones1", "Bob")
	require.NoError(t, err)

	now := time.Now()
	visits.visits = []models.Visit{
		{ID: 1, StudentID: jane.ID, PagePath: "/", Action: models.ActionLogin, VisitedAt: now},
		{ID: 2, StudentID: jane.ID, PagePath: "/", Action: models.ActionPageView, VisitedAt: now},
		{ID: 3, StudentID: bob.ID, PagePath: "/skills", Action: models.ActionPageView, VisitedAt: now.Add(-72 * time.Hour)},
	}

	summary, err := svc.Summary(context.Background())
	require.NoError(t, err)
	require.Equal(t, int64(2), summary.TotalStudents)
	require.Equal(t, int64(3), summary.TotalVisits)
	require.Equal(t, int64(1), summary.ActiveStudentsToday)
	require.LessOrEqual(t, summary.ActiveStudentsToday, summary.TotalStudents)
	require.LessOrEqual(t, summary.TodayActivity, summary.TotalVisits)
	require.Len(t, summary.RecentStudents, 2)

	var sum int64
	for _, bucket := range summary.ActivityTypes {
		sum += bucket.Count
	}
	require.Equal(t, summary.TotalVisits, sum)
}

func TestAnalyticsServiceStudentDetailUnknownIsNull(t *testing.T) {
	students := newMemoryStudentRepo()
	visits := &memoryVisitRepo{}
	svc := NewAnalyticsService(students, visits, testLogger())

	detail, err := svc.StudentDetail(context.Background(), "unknown")
	require.NoError(t, err)
	require.Nil(t, detail.Student)
}

func TestAnalyticsServiceStudentDetailCountsVisits(t *testing.T) {
	students := newMemoryStudentRepo()
	visits := &memoryVisitRepo{}
	svc := NewAnalyticsService(students, visits, testLogger())

	jane, err := students.Upsert(context.Background(), "jsmith42", "Jane")
	require.NoError(t, err)

	detail, err := svc.StudentDetail(context.Background(), "JSmith42")
	require.NoError(t, err)
	require.NotNil(t, detail.Student, "lookup must normalize the netid")
	require.Equal(t, int64(0), detail.Student.Count.Visits, "no visits before any event is recorded")

	visits.visits = append(visits.visits, models.Visit{ID: 1, StudentID: jane.ID, PagePath: "/", Action: models.ActionLogin, VisitedAt: time.Now()})

	detail, err = svc.StudentDetail(context.Background(), "jsmith42")
	require.NoError(t, err)
	require.Equal(t, int64(1), detail.Student.Count.Visits)
	require.Len(t, detail.Student.Visits, 1)
}
