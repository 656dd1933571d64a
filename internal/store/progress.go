package store

import (
	"context"
	"errors"
	"time"

	"gorm.io/gorm"

	"github.com/luvi2001/yfcapp/internal/model"
)

func (s *Store) FindProgressForWeek(ctx context.Context, userName string, weekStart, weekEnd time.Time) (*model.WeeklyProgress, error) {
	var p model.WeeklyProgress
	err := s.db.WithContext(ctx).
		Where("user_name = ? AND week_start = ? AND week_end = ?", userName, weekStart, weekEnd).
		First(&p).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, nil
	}
	if err != nil {
		return nil, translate("find progress for week", err)
	}
	return &p, nil
}

func (s *Store) CreateProgress(ctx context.Context, p *model.WeeklyProgress) error {
	return translate("create progress", s.db.WithContext(ctx).Create(p).Error)
}

// FindProgressByUser lists the user's progress rows newest first.
func (s *Store) FindProgressByUser(ctx context.Context, userName string) ([]model.WeeklyProgress, error) {
	var out []model.WeeklyProgress
	err := s.db.WithContext(ctx).
		Where("user_name = ?", userName).
		Order("week_start DESC").
		Find(&out).Error
	return out, translate("find progress by user", err)
}

func (s *Store) FindProgressInWindow(ctx context.Context, from, to time.Time, limit int) ([]model.WeeklyProgress, error) {
	q := s.db.WithContext(ctx).
		Where("week_start >= ? AND week_end <= ?", from, to).
		Order("week_start ASC, id ASC")
	if limit > 0 {
		q = q.Limit(limit)
	}
	var out []model.WeeklyProgress
	err := q.Find(&out).Error
	return out, translate("find progress in window", err)
}
