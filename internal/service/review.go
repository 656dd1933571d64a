package service

import (
	"context"
	"errors"
	"fmt"
	"math"
	"strings"
	"time"

	"github.com/luvi2001/yfcapp/internal/apperr"
	"github.com/luvi2001/yfcapp/internal/logger"
	"github.com/luvi2001/yfcapp/internal/model"
)

type ReviewService struct{ store ReviewStore }

func NewReviewService(store ReviewStore) *ReviewService { return &ReviewService{store: store} }

// Submit validates, scores and stores one weekly review for the caller.
// The caller's identity always wins over anything the body claims.
func (s *ReviewService) Submit(ctx context.Context, who model.Identity, req model.ReviewRequest) (*model.Review, error) {
	r, in, err := buildReview(who, req)
	if err != nil {
		return nil, err
	}

	dup, err := s.CheckDuplicate(ctx, r.UserName, r.WeekStart, r.WeekEnd)
	if err != nil {
		return nil, err
	}
	if dup {
		return nil, duplicateWeek(r)
	}

	paid := false
	if r.ContributionPaid != model.ContributionYes {
		from, to := MonthRange(r.WeekStart.Year(), r.WeekStart.Month())
		if paid, err = s.store.HasPaidContribution(ctx, r.UserName, from, to); err != nil {
			return nil, err
		}
	}

	score := ComputeScore(in, paid)
	r.Points, r.MaxPoints = score.Points, score.MaxPoints

	if err := s.store.CreateReview(ctx, r); err != nil {
		if errors.Is(err, apperr.ErrConflict) {
			return nil, duplicateWeek(r)
		}
		return nil, err
	}

	logger.Ctx(ctx).Info("review.submit.ok", "user", r.UserName,
		"week", r.WeekStart.Format(time.DateOnly), "points", r.Points, "max", r.MaxPoints)
	return r, nil
}

// CheckDuplicate reports whether userName already has a review for exactly this week.
func (s *ReviewService) CheckDuplicate(ctx context.Context, userName string, weekStart, weekEnd time.Time) (bool, error) {
	r, err := s.store.FindReviewForWeek(ctx, userName, weekStart, weekEnd)
	if err != nil {
		return false, err
	}
	return r != nil, nil
}

func (s *ReviewService) ListByUser(ctx context.Context, userName string) ([]model.Review, error) {
	if strings.TrimSpace(userName) == "" {
		return nil, apperr.Invalid("userName", "is required")
	}
	return s.store.FindReviewsByUser(ctx, userName, time.Time{}, time.Time{})
}

// ByMonth lists the user's reviews whose week starts in the given month.
func (s *ReviewService) ByMonth(ctx context.Context, q model.MonthQuery) ([]model.Review, error) {
	if strings.TrimSpace(q.UserName) == "" {
		return nil, apperr.Invalid("userName", "is required")
	}
	year, month, err := ParseMonthYear(q.Month, q.Year)
	if err != nil {
		return nil, err
	}
	from, to := MonthRange(year, month)
	return s.store.FindReviewsByUser(ctx, q.UserName, from, to)
}

func (s *ReviewService) UsersWithReviews(ctx context.Context) ([]string, error) {
	return s.store.DistinctReviewUserNames(ctx)
}

func duplicateWeek(r *model.Review) error {
	return fmt.Errorf("review for week %s..%s already submitted: %w",
		r.WeekStart.Format(time.DateOnly), r.WeekEnd.Format(time.DateOnly), apperr.ErrDuplicateSubmission)
}

func buildReview(who model.Identity, req model.ReviewRequest) (*model.Review, ScoreInput, error) {
	var in ScoreInput
	if who.UserName == "" {
		return nil, in, fmt.Errorf("no user on request: %w", apperr.ErrAuth)
	}

	week, err := NormalizeWeek(req.WeekStart, req.WeekEnd)
	if err != nil {
		return nil, in, err
	}
	if req.DevotionDays < 0 {
		return nil, in, apperr.Invalid("devotionDays", "must not be negative")
	}

	r := &model.Review{
		UserID:       who.UserID,
		UserName:     who.UserName,
		WeekStart:    week.Start,
		WeekEnd:      week.End,
		DevotionDays: int(req.DevotionDays),
		CommonLesson: strings.TrimSpace(req.CommonLesson),
		Members:      make([]model.ReviewMember, 0, len(req.Members)),
	}

	var ok bool
	if r.PlanningMeeting, ok = model.ParseYesNo(req.PlanningMeeting); !ok {
		return nil, in, apperr.Invalid("planningMeeting", "must be yes or no")
	}
	if r.DisciplerMeeting, ok = model.ParseYesNo(req.DisciplerMeeting); !ok {
		return nil, in, apperr.Invalid("disciplerMeeting", "must be yes or no")
	}
	if r.BibleStudy, ok = model.ParseBibleStudy(req.BibleStudy); !ok {
		return nil, in, apperr.Invalid("bibleStudy", "must be yes, no or someoneelse")
	}

	switch r.BibleStudy {
	case model.BibleStudyNo:
		r.Reason = strings.TrimSpace(req.Reason)
		if r.Reason == "" {
			return nil, in, apperr.Invalid("reason", "is required when bibleStudy is no")
		}
		if strings.EqualFold(r.Reason, "other") {
			r.OtherReasonText = strings.TrimSpace(req.OtherReasonText)
			if r.OtherReasonText == "" {
				return nil, in, apperr.Invalid("otherReasonText", "is required when reason is other")
			}
		}
	case model.BibleStudySomeoneElse:
		r.OtherCompletedName = strings.TrimSpace(req.OtherCompletedName)
		r.StudyPeople = StudyParticipants(req.StudyPeople, req.OtherCompletedName)
	}

	if r.ContributionPaid, ok = model.ParseContribution(req.ContributionPaid); !ok {
		return nil, in, apperr.Invalid("contributionPaid", "must be Yes or No")
	}
	if req.ContributionAmount != nil {
		amount := float64(*req.ContributionAmount)
		if math.IsNaN(amount) || math.IsInf(amount, 0) {
			return nil, in, apperr.Invalid("contributionAmount", "must be a finite number")
		}
		if amount < 0 {
			return nil, in, apperr.Invalid("contributionAmount", "must not be negative")
		}
		r.ContributionAmount = &amount
	}
	if r.ContributionPaid == model.ContributionYes && r.ContributionAmount == nil {
		return nil, in, apperr.Invalid("contributionAmount", "is required when contributionPaid is Yes")
	}

	seen := make(map[int]bool, len(req.Members))
	acts := make([]model.Activities, 0, len(req.Members))
	for i, m := range req.Members {
		id := int(m.MemberID)
		if id <= 0 {
			return nil, in, apperr.Invalid(fmt.Sprintf("members[%d].memberId", i), "must be a positive id")
		}
		if seen[id] {
			return nil, in, apperr.Invalid(fmt.Sprintf("members[%d].memberId", i), "member %d listed twice", id)
		}
		seen[id] = true
		r.Members = append(r.Members, model.ReviewMember{MemberID: id, Activities: m.Activities})
		acts = append(acts, m.Activities)
	}

	in = ScoreInput{
		DevotionDays:     r.DevotionDays,
		PlanningMeeting:  r.PlanningMeeting,
		BibleStudy:       r.BibleStudy,
		StudyPeople:      r.StudyPeople,
		Members:          acts,
		DisciplerMeeting: r.DisciplerMeeting,
		ContributionPaid: r.ContributionPaid,
	}
	return r, in, nil
}
