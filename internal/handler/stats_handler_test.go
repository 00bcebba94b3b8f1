package handler_test

import (
	"context"
	"errors"
	"net/http/httptest"
	"testing"

	"github.com/gofiber/fiber/v2"
	"github.com/stretchr/testify/require"

	"github.com/jakesworld/tracking-api/internal/dto"
)

func TestStatsEndpointSummary(t *testing.T) {
	app, _ := setupTrackingApp(t)

	doTrack(t, app, map[string]interface{}{"netId": "jsmith42", "name": "Jane Smith", "pagePath": "/chapters/1", "action": "login"})
	doTrack(t, app, map[string]interface{}{"netId": "jsmith42", "pagePath": "/chapters/1", "action": "page_view"})
	doTrack(t, app, map[string]interface{}{"netId": "bjones1", "name": "Bob Jones", "pagePath": "/skills", "action": "page_view"})

	req := httptest.NewRequest("GET", "/api/student/stats", nil)
	resp, err := app.Test(req)
	require.NoError(t, err)
	require.Equal(t, fiber.StatusOK, resp.StatusCode)

	var summary dto.StatsSummaryResponse
	decodeResponse(t, resp, &summary)
	require.Equal(t, int64(2), summary.TotalStudents)
	require.Equal(t, int64(3), summary.TotalVisits)
	require.Equal(t, int64(2), summary.ActiveStudentsToday)
	require.LessOrEqual(t, summary.ActiveStudentsToday, summary.TotalStudents)
	require.Len(t, summary.RecentStudents, 2)
	require.NotEmpty(t, summary.PopularPages)
	require.NotEmpty(t, summary.ActivityTypes)

	var histogramTotal int64
	for _, bucket := range summary.ActivityTypes {
		histogramTotal += bucket.Count
	}
	require.Equal(t, summary.TotalVisits, histogramTotal)
}

func TestStatsEndpointStudentDetail(t *testing.T) {
	app, _ := setupTrackingApp(t)

	doTrack(t, app, map[string]interface{}{"netId": "jsmith42", "name": "Jane Smith", "pagePath": "/chapters/1", "action": "login"})
	doTrack(t, app, map[string]interface{}{"netId": "jsmith42", "pagePath": "/chapters/2", "action": "page_view"})

	req := httptest.NewRequest("GET", "/api/student/stats?netId=JSmith42", nil)
	resp, err := app.Test(req)
	require.NoError(t, err)
	require.Equal(t, fiber.StatusOK, resp.StatusCode)

	var detail dto.StudentDetailResponse
	decodeResponse(t, resp, &detail)
	require.NotNil(t, detail.Student)
	require.Equal(t, "jsmith42", detail.Student.NetID)
	require.Equal(t, "Jane Smith", detail.Student.Name)
	require.Equal(t, int64(2), detail.Student.Count.Visits)
	require.Len(t, detail.Student.Visits, 2)
}

func TestStatsEndpointUnknownStudentIsNull(t *testing.T) {
	app, _ := setupTrackingApp(t)

	req := httptest.NewRequest("GET", "/api/student/stats?netId=unknown", nil)
	resp, err := app.Test(req)
	require.NoError(t, err)
	require.Equal(t, fiber.StatusOK, resp.StatusCode)

	var body map[string]interface{}
	decodeResponse(t, resp, &body)
	value, ok := body["student"]
	require.True(t, ok)
	require.Nil(t, value)
}

func TestActivityEndpointFeedAndHistogram(t *testing.T) {
	app, _ := setupTrackingApp(t)

	for i := 0; i < 3; i++ {
		doTrack(t, app, map[string]interface{}{"netId": "jsmith42", "name": "Jane Smith", "pagePath": "/chapters/1", "action": "page_view"})
	}

	req := httptest.NewRequest("GET", "/api/student/activity?limit=2", nil)
	resp, err := app.Test(req)
	require.NoError(t, err)
	require.Equal(t, fiber.StatusOK, resp.StatusCode)

	var overview dto.ActivityOverviewResponse
	decodeResponse(t, resp, &overview)
	require.Len(t, overview.RecentActivity, 2)
	require.Equal(t, "jsmith42", overview.RecentActivity[0].Student.NetID)
	for i := 1; i < len(overview.RecentActivity); i++ {
		require.False(t, overview.RecentActivity[i].VisitedAt.After(overview.RecentActivity[i-1].VisitedAt))
	}
	require.NotEmpty(t, overview.TodayActivityByType)
	require.NotEmpty(t, overview.TodayPageViews)
	require.NotZero(t, overview.Timestamp)
}

func TestActivityEndpointStoreDown(t *testing.T) {
	app, _ := setupTrackingAppWithPinger(t, func(ctx context.Context) error {
		return errors.New("connection refused")
	})

	req := httptest.NewRequest("GET", "/api/student/activity", nil)
	resp, err := app.Test(req)
	require.NoError(t, err)
	require.Equal(t, fiber.StatusServiceUnavailable, resp.StatusCode)

	var body map[string]interface{}
	decodeResponse(t, resp, &body)
	require.Equal(t, "Database not ready", body["error"])
}
