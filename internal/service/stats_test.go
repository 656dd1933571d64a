package service

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/luvi2001/yfcapp/internal/apperr"
	"github.com/luvi2001/yfcapp/internal/model"
	"github.com/luvi2001/yfcapp/internal/store"
	"github.com/luvi2001/yfcapp/internal/store/storetest"
)

func seedMemberMonth(t *testing.T, st *store.Store, memberID int) {
	t.Helper()
	svc := NewReviewService(st)
	weeks := []struct {
		start, end string
		acts       model.Activities
	}{
		{"2025-03-03", "2025-03-09", model.Activities{BibleStudy: true}},
		{"2025-03-10", "2025-03-16", model.Activities{BibleStudy: true}},
		{"2025-03-17", "2025-03-23", model.Activities{BibleStudy: true, Discipleship: true, Visiting: true}},
		{"2025-03-24", "2025-03-30", model.Activities{}},
		// outside the month
		{"2025-04-07", "2025-04-13", model.Activities{Visiting: true}},
	}
	for _, w := range weeks {
		req := goodRequest(w.start, w.end)
		req.Members = []model.MemberActivityInput{{MemberID: model.Int(memberID), Activities: w.acts}}
		_, err := svc.Submit(context.Background(), ann, req)
		require.NoError(t, err)
	}
}

func TestMemberMonthly(t *testing.T) {
	st := storetest.New(t)
	seedMemberMonth(t, st, 9)
	stats := NewStatsService(st, st, 23, 0)

	got, err := stats.MemberMonthly(context.Background(), 9, "3", "2025")
	require.NoError(t, err)

	assert.Equal(t, model.MemberMonthSummary{
		TotalWeeks:        4,
		BibleStudyCount:   3,
		DiscipleshipCount: 1,
		VisitingCount:     1,
		AttendanceRate:    42,
	}, got.Summary)
	require.Len(t, got.Reviews, 4)
	assert.True(t, date("2025-03-03").Equal(got.Reviews[0].WeekStart), "ordered by week")
	assert.Equal(t, model.Activities{BibleStudy: true}, got.Reviews[0].MemberActivities)
}

func TestMemberMonthlyEmptyAndInvalid(t *testing.T) {
	st := storetest.New(t)
	stats := NewStatsService(st, st, 23, 0)
	ctx := context.Background()

	got, err := stats.MemberMonthly(ctx, 9, "3", "2025")
	require.NoError(t, err)
	assert.Zero(t, got.Summary.TotalWeeks)
	assert.Zero(t, got.Summary.AttendanceRate)
	assert.Empty(t, got.Reviews)

	_, err = stats.MemberMonthly(ctx, 9, "0", "2025")
	assert.ErrorIs(t, err, apperr.ErrInvalidInput)
	_, err = stats.MemberMonthly(ctx, 0, "3", "2025")
	assert.ErrorIs(t, err, apperr.ErrInvalidInput)
}

func TestMemberLifetime(t *testing.T) {
	st := storetest.New(t)
	seedMemberMonth(t, st, 9)
	stats := NewStatsService(st, st, 23, 0)

	got, err := stats.MemberLifetime(context.Background(), 9)
	require.NoError(t, err)
	assert.Equal(t, 5, got.TotalWeeks)
	assert.Equal(t, model.ActivityTotals{BibleStudy: 3, Discipleship: 1, Visiting: 2}, got.Activities)
	// 6 of 15
	assert.Equal(t, 40, got.OverallAttendance)
}

func TestTeamWindowEmpty(t *testing.T) {
	st := storetest.New(t)
	stats := NewStatsService(st, st, 23, 0)

	got, err := stats.TeamWindow(context.Background(), model.WindowRequest{StartDate: "2025-03-01", EndDate: "2025-03-31"})
	require.NoError(t, err)
	assert.Zero(t, got.TotalReports)
	assert.Zero(t, got.DevotionPercentage)
	assert.Zero(t, got.PlanningMeetingPercentage)
	assert.Zero(t, got.BibleStudyPercentage)
	assert.Zero(t, got.DisciplerMeetingPercentage)
	assert.Zero(t, got.TeamTotalPercentage)
	assert.Equal(t, 23*7, got.MaxDevotionMarks)
	assert.Empty(t, got.SubmittedBy)
}

func TestTeamWindow(t *testing.T) {
	st := storetest.New(t)
	ctx := context.Background()
	reviews := NewReviewService(st)

	_, err := reviews.Submit(ctx, ann, goodRequest("2025-03-03", "2025-03-09"))
	require.NoError(t, err)

	other := goodRequest("2025-03-03", "2025-03-09")
	other.DevotionDays = 3
	other.PlanningMeeting = "no"
	other.ContributionPaid = "No"
	other.ContributionAmount = nil
	_, err = reviews.Submit(ctx, model.Identity{UserID: 2, UserName: "bob"}, other)
	require.NoError(t, err)

	_, err = reviews.Submit(ctx, ann, goodRequest("2025-03-10", "2025-03-16"))
	require.NoError(t, err)

	stats := NewStatsService(st, st, 4, 0)
	got, err := stats.TeamWindow(ctx, model.WindowRequest{StartDate: "2025-03-01", EndDate: "2025-03-31"})
	require.NoError(t, err)

	assert.Equal(t, 3, got.TotalReports)
	assert.Equal(t, 17, got.TotalDevotionMarks)
	assert.Equal(t, 28, got.MaxDevotionMarks)
	assert.Equal(t, 60.71, got.DevotionPercentage) // 17/28
	assert.Equal(t, 50.0, got.PlanningMeetingPercentage)
	assert.Equal(t, 75.0, got.BibleStudyPercentage)
	assert.Equal(t, 75.0, got.DisciplerMeetingPercentage)
	// 14 + 7 + 14 of 42
	assert.Equal(t, 35, got.TotalPoints)
	assert.Equal(t, 83.33, got.TeamTotalPercentage)
	assert.Equal(t, []string{"ann", "bob"}, got.SubmittedBy)

	limited := NewStatsService(st, st, 4, 1)
	got, err = limited.TeamWindow(ctx, model.WindowRequest{StartDate: "2025-03-01", EndDate: "2025-03-31"})
	require.NoError(t, err)
	assert.Equal(t, 1, got.TotalReports)
}

func TestTeamWindowRejectsBadDates(t *testing.T) {
	st := storetest.New(t)
	stats := NewStatsService(st, st, 23, 0)
	ctx := context.Background()

	_, err := stats.TeamWindow(ctx, model.WindowRequest{StartDate: "nope", EndDate: "2025-03-31"})
	assert.ErrorIs(t, err, apperr.ErrInvalidInput)
	_, err = stats.TeamWindow(ctx, model.WindowRequest{StartDate: "2025-03-31", EndDate: "2025-03-01"})
	assert.ErrorIs(t, err, apperr.ErrInvalidInput)
}

func TestProgressWindow(t *testing.T) {
	st := storetest.New(t)
	ctx := context.Background()
	progress := NewProgressService(st)

	_, err := progress.Submit(ctx, ann, model.ProgressRequest{
		WeekStart: "2025-03-03", WeekEnd: "2025-03-09", DevotionDays: 7,
		MetDisciple: "yes", WentToChurch: "yes", AttendedBibleStudies: "yes",
	})
	require.NoError(t, err)
	_, err = progress.Submit(ctx, model.Identity{UserID: 2, UserName: "bob"}, model.ProgressRequest{
		WeekStart: "2025-03-03", WeekEnd: "2025-03-09", DevotionDays: 2,
		MetDisciple: "no", WentToChurch: "yes", AttendedBibleStudies: "no",
	})
	require.NoError(t, err)

	stats := NewStatsService(st, st, 2, 0)
	got, err := stats.ProgressWindow(ctx, model.WindowRequest{StartDate: "2025-03-01", EndDate: "2025-03-31"})
	require.NoError(t, err)

	assert.Equal(t, 2, got.TotalReports)
	assert.Equal(t, 9, got.TotalDevotionMarks)
	assert.Equal(t, 64.29, got.DevotionPercentage) // 9/14
	assert.Equal(t, 50.0, got.MetDisciplePercentage)
	assert.Equal(t, 100.0, got.WentToChurchPercentage)
	assert.Equal(t, 50.0, got.AttendedBibleStudiesPercentage)
	assert.Equal(t, 13, got.TotalMarks)
	assert.Equal(t, 20, got.MaxMarks)
	assert.Equal(t, 65.0, got.TeamTotalPercentage)
	assert.Equal(t, []string{"ann", "bob"}, got.SubmittedBy)
}

func TestPercent(t *testing.T) {
	assert.Equal(t, 0.0, percent(5, 0))
	assert.Equal(t, 33.33, percent(1, 3))
	assert.Equal(t, 66.67, percent(2, 3))
	assert.Equal(t, 100.0, percent(4, 4))
}
