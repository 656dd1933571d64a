package service

import (
	"context"
	"math"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/luvi2001/yfcapp/internal/apperr"
	"github.com/luvi2001/yfcapp/internal/model"
	"github.com/luvi2001/yfcapp/internal/store/storetest"
)

var ann = model.Identity{UserID: 1, UserName: "ann", Role: model.RoleLeader}

func amount(v float64) *model.Number {
	n := model.Number(v)
	return &n
}

func goodRequest(weekStart, weekEnd string) model.ReviewRequest {
	return model.ReviewRequest{
		WeekStart:          weekStart,
		WeekEnd:            weekEnd,
		DevotionDays:       7,
		PlanningMeeting:    "yes",
		BibleStudy:         "yes",
		DisciplerMeeting:   "yes",
		ContributionPaid:   "Yes",
		ContributionAmount: amount(100),
	}
}

func TestSubmitFullMarks(t *testing.T) {
	svc := NewReviewService(storetest.New(t))

	r, err := svc.Submit(context.Background(), ann, goodRequest("2025-03-03", "2025-03-09"))
	require.NoError(t, err)
	assert.Equal(t, 14, r.Points)
	assert.Equal(t, 14, r.MaxPoints)
	assert.Equal(t, "ann", r.UserName)
	assert.NotZero(t, r.ID)
}

func TestSubmitDuplicateWeek(t *testing.T) {
	svc := NewReviewService(storetest.New(t))
	ctx := context.Background()

	_, err := svc.Submit(ctx, ann, goodRequest("2025-03-03", "2025-03-09"))
	require.NoError(t, err)

	// same canonical week written differently
	_, err = svc.Submit(ctx, ann, goodRequest("Tue Mar 04 2025", "Sat Mar 08 2025"))
	assert.ErrorIs(t, err, apperr.ErrDuplicateSubmission)

	_, err = svc.Submit(ctx, ann, goodRequest("2025-03-10", "2025-03-16"))
	assert.NoError(t, err)

	bob := model.Identity{UserID: 2, UserName: "bob"}
	_, err = svc.Submit(ctx, bob, goodRequest("2025-03-03", "2025-03-09"))
	assert.NoError(t, err)
}

// racingStore hides existing rows from the pre-check so only the unique
// index can catch the second insert.
type racingStore struct{ ReviewStore }

func (racingStore) FindReviewForWeek(context.Context, string, time.Time, time.Time) (*model.Review, error) {
	return nil, nil
}

func TestSubmitDuplicateCaughtByStore(t *testing.T) {
	svc := NewReviewService(racingStore{storetest.New(t)})
	ctx := context.Background()

	_, err := svc.Submit(ctx, ann, goodRequest("2025-03-03", "2025-03-09"))
	require.NoError(t, err)
	_, err = svc.Submit(ctx, ann, goodRequest("2025-03-03", "2025-03-09"))
	assert.ErrorIs(t, err, apperr.ErrDuplicateSubmission)
}

func TestSubmitContributionCreditSameMonthOnly(t *testing.T) {
	svc := NewReviewService(storetest.New(t))
	ctx := context.Background()

	_, err := svc.Submit(ctx, ann, goodRequest("2025-03-03", "2025-03-09"))
	require.NoError(t, err)

	unpaid := func(start, end string) model.ReviewRequest {
		req := goodRequest(start, end)
		req.ContributionPaid = "No"
		req.ContributionAmount = nil
		return req
	}

	week3, err := svc.Submit(ctx, ann, unpaid("2025-03-17", "2025-03-23"))
	require.NoError(t, err)
	assert.Equal(t, 14, week3.Points, "March payment carries over inside March")

	april, err := svc.Submit(ctx, ann, unpaid("2025-04-07", "2025-04-13"))
	require.NoError(t, err)
	assert.Equal(t, 12, april.Points, "no credit in April")
	assert.Equal(t, 14, april.MaxPoints)
}

func TestSubmitValidation(t *testing.T) {
	svc := NewReviewService(storetest.New(t))
	ctx := context.Background()

	cases := []struct {
		field string
		edit  func(*model.ReviewRequest)
	}{
		{"weekStart", func(r *model.ReviewRequest) { r.WeekStart = "not a date" }},
		{"weekEnd", func(r *model.ReviewRequest) { r.WeekEnd = "2025-03-20" }},
		{"devotionDays", func(r *model.ReviewRequest) { r.DevotionDays = -1 }},
		{"planningMeeting", func(r *model.ReviewRequest) { r.PlanningMeeting = "maybe" }},
		{"bibleStudy", func(r *model.ReviewRequest) { r.BibleStudy = "sometimes" }},
		{"reason", func(r *model.ReviewRequest) { r.BibleStudy = "no" }},
		{"otherReasonText", func(r *model.ReviewRequest) { r.BibleStudy = "no"; r.Reason = "other" }},
		{"contributionPaid", func(r *model.ReviewRequest) { r.ContributionPaid = "paid" }},
		{"contributionAmount", func(r *model.ReviewRequest) { r.ContributionAmount = nil }},
		{"contributionAmount", func(r *model.ReviewRequest) { r.ContributionAmount = amount(-5) }},
		{"contributionAmount", func(r *model.ReviewRequest) { r.ContributionAmount = amount(math.NaN()) }},
		{"contributionAmount", func(r *model.ReviewRequest) { r.ContributionAmount = amount(math.Inf(1)) }},
		{"members[1].memberId", func(r *model.ReviewRequest) {
			r.Members = []model.MemberActivityInput{{MemberID: 4}, {MemberID: 4}}
		}},
	}
	for _, tc := range cases {
		req := goodRequest("2025-03-03", "2025-03-09")
		tc.edit(&req)
		_, err := svc.Submit(ctx, ann, req)
		var fe *apperr.FieldError
		if assert.ErrorAs(t, err, &fe, tc.field) {
			assert.Equal(t, tc.field, fe.Field)
		}
		assert.ErrorIs(t, err, apperr.ErrInvalidInput)
	}

	_, err := svc.Submit(ctx, model.Identity{}, goodRequest("2025-03-03", "2025-03-09"))
	assert.ErrorIs(t, err, apperr.ErrAuth)
}

func TestSubmitNormalizesInput(t *testing.T) {
	svc := NewReviewService(storetest.New(t))

	req := goodRequest("2025-03-03", "2025-03-09")
	req.PlanningMeeting = " YES "
	req.BibleStudy = "Someone Else"
	req.OtherCompletedName = "Kim, Lee"
	req.ContributionPaid = "yes"
	req.Members = []model.MemberActivityInput{
		{MemberID: 3, Activities: model.Activities{Visiting: true}},
		{MemberID: 5},
	}

	r, err := svc.Submit(context.Background(), ann, req)
	require.NoError(t, err)
	assert.Equal(t, model.Yes, r.PlanningMeeting)
	assert.Equal(t, model.BibleStudySomeoneElse, r.BibleStudy)
	assert.Equal(t, []string{"Kim", "Lee"}, r.StudyPeople)
	assert.Equal(t, model.ContributionYes, r.ContributionPaid)
	// 7 + 1 + 2 (two leaders) + 2 (one active member) + 2 + 2
	assert.Equal(t, 16, r.Points)
	assert.Equal(t, 18, r.MaxPoints)
}

func TestReviewQueries(t *testing.T) {
	svc := NewReviewService(storetest.New(t))
	ctx := context.Background()
	for _, w := range [][2]string{{"2025-03-03", "2025-03-09"}, {"2025-04-07", "2025-04-13"}} {
		_, err := svc.Submit(ctx, ann, goodRequest(w[0], w[1]))
		require.NoError(t, err)
	}

	all, err := svc.ListByUser(ctx, "ann")
	require.NoError(t, err)
	assert.Len(t, all, 2)

	march, err := svc.ByMonth(ctx, model.MonthQuery{UserName: "ann", Month: "3", Year: "2025"})
	require.NoError(t, err)
	assert.Len(t, march, 1)

	_, err = svc.ByMonth(ctx, model.MonthQuery{UserName: "ann", Month: "13", Year: "2025"})
	assert.ErrorIs(t, err, apperr.ErrInvalidInput)

	users, err := svc.UsersWithReviews(ctx)
	require.NoError(t, err)
	assert.Equal(t, []string{"ann"}, users)
}
