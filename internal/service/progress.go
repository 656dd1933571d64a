package service

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/luvi2001/yfcapp/internal/apperr"
	"github.com/luvi2001/yfcapp/internal/logger"
	"github.com/luvi2001/yfcapp/internal/model"
)

// ProgressService records the older three-question weekly form. Marks are
// always computed here, never taken from the client.
type ProgressService struct{ store ProgressStore }

func NewProgressService(store ProgressStore) *ProgressService { return &ProgressService{store: store} }

func (s *ProgressService) Submit(ctx context.Context, who model.Identity, req model.ProgressRequest) (*model.WeeklyProgress, error) {
	if who.UserName == "" {
		return nil, fmt.Errorf("no user on request: %w", apperr.ErrAuth)
	}
	week, err := NormalizeWeek(req.WeekStart, req.WeekEnd)
	if err != nil {
		return nil, err
	}
	if req.DevotionDays < 0 {
		return nil, apperr.Invalid("devotionDays", "must not be negative")
	}

	p := &model.WeeklyProgress{
		UserName:     who.UserName,
		DevotionDays: int(req.DevotionDays),
		WeekStart:    week.Start,
		WeekEnd:      week.End,
	}
	var ok bool
	if p.MetDisciple, ok = model.ParseYesNo(req.MetDisciple); !ok {
		return nil, apperr.Invalid("metDisciple", "must be yes or no")
	}
	if p.WentToChurch, ok = model.ParseYesNo(req.WentToChurch); !ok {
		return nil, apperr.Invalid("wentToChurch", "must be yes or no")
	}
	if p.AttendedBibleStudies, ok = model.ParseYesNo(req.AttendedBibleStudies); !ok {
		return nil, apperr.Invalid("attendedBibleStudies", "must be yes or no")
	}
	p.Marks = LegacyMarks(p.DevotionDays, p.MetDisciple, p.WentToChurch, p.AttendedBibleStudies)

	existing, err := s.store.FindProgressForWeek(ctx, p.UserName, p.WeekStart, p.WeekEnd)
	if err != nil {
		return nil, err
	}
	if existing != nil {
		return nil, duplicateProgress(p)
	}
	if err := s.store.CreateProgress(ctx, p); err != nil {
		if errors.Is(err, apperr.ErrConflict) {
			return nil, duplicateProgress(p)
		}
		return nil, err
	}
	logger.Ctx(ctx).Info("progress.submit.ok", "user", p.UserName, "week", p.WeekStart.Format(time.DateOnly), "marks", p.Marks)
	return p, nil
}

func (s *ProgressService) ListByUser(ctx context.Context, userName string) ([]model.WeeklyProgress, error) {
	return s.store.FindProgressByUser(ctx, userName)
}

func duplicateProgress(p *model.WeeklyProgress) error {
	return fmt.Errorf("progress for week %s already submitted: %w",
		p.WeekStart.Format(time.DateOnly), apperr.ErrDuplicateSubmission)
}
