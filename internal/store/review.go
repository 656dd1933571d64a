package store

import (
	"context"
	"errors"
	"time"

	"gorm.io/gorm"

	"github.com/luvi2001/yfcapp/internal/model"
)

// FindReviewForWeek returns the user's review for exactly this week, or nil.
func (s *Store) FindReviewForWeek(ctx context.Context, userName string, weekStart, weekEnd time.Time) (*model.Review, error) {
	var r model.Review
	err := s.db.WithContext(ctx).
		Where("user_name = ? AND week_start = ? AND week_end = ?", userName, weekStart, weekEnd).
		First(&r).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, nil
	}
	if err != nil {
		return nil, translate("find review for week", err)
	}
	return &r, nil
}

// HasPaidContribution reports a "Yes" contribution among the user's reviews
// whose week starts in [from, to).
func (s *Store) HasPaidContribution(ctx context.Context, userName string, from, to time.Time) (bool, error) {
	var n int64
	err := s.db.WithContext(ctx).Model(&model.Review{}).
		Where("user_name = ? AND contribution_paid = ? AND week_start >= ? AND week_start < ?",
			userName, model.ContributionYes, from, to).
		Count(&n).Error
	if err != nil {
		return false, translate("count paid contributions", err)
	}
	return n > 0, nil
}

// CreateReview inserts the review and its member rows in one transaction.
// A second review for the same user and week fails with apperr.ErrConflict.
func (s *Store) CreateReview(ctx context.Context, r *model.Review) error {
	return translate("create review", s.db.WithContext(ctx).Create(r).Error)
}

// FindReviewsByUser lists the user's reviews newest first. Zero from/to
// disables that bound; to is exclusive.
func (s *Store) FindReviewsByUser(ctx context.Context, userName string, from, to time.Time) ([]model.Review, error) {
	q := s.db.WithContext(ctx).Where("user_name = ?", userName)
	q = weekStartBetween(q, from, to)
	var out []model.Review
	err := q.Preload("Members.Member").Order("week_start DESC").Find(&out).Error
	return out, translate("find reviews by user", err)
}

// DistinctReviewUserNames lists every user name that has submitted a review.
func (s *Store) DistinctReviewUserNames(ctx context.Context) ([]string, error) {
	var names []string
	err := s.db.WithContext(ctx).Model(&model.Review{}).
		Distinct().Order("user_name").Pluck("user_name", &names).Error
	return names, translate("distinct review users", err)
}

// FindReviewsForMember lists reviews that carry an entry for memberID,
// oldest first, optionally limited to week starts in [from, to).
func (s *Store) FindReviewsForMember(ctx context.Context, memberID int, from, to time.Time) ([]model.Review, error) {
	db := s.db.WithContext(ctx)
	sub := db.Model(&model.ReviewMember{}).Select("review_id").Where("member_id = ?", memberID)
	q := weekStartBetween(db.Where("id IN (?)", sub), from, to)
	var out []model.Review
	err := q.Preload("Members").Order("week_start ASC, id ASC").Find(&out).Error
	return out, translate("find reviews for member", err)
}

// FindReviewsInWindow lists reviews with weekStart >= from and
// weekEnd <= to. limit <= 0 means no limit.
func (s *Store) FindReviewsInWindow(ctx context.Context, from, to time.Time, limit int) ([]model.Review, error) {
	q := s.db.WithContext(ctx).
		Where("week_start >= ? AND week_end <= ?", from, to).
		Order("week_start ASC, id ASC")
	if limit > 0 {
		q = q.Limit(limit)
	}
	var out []model.Review
	err := q.Preload("Members").Find(&out).Error
	return out, translate("find reviews in window", err)
}

func weekStartBetween(q *gorm.DB, from, to time.Time) *gorm.DB {
	if !from.IsZero() {
		q = q.Where("week_start >= ?", from)
	}
	if !to.IsZero() {
		q = q.Where("week_start < ?", to)
	}
	return q
}
