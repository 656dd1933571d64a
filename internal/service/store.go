package service

import (
	"context"
	"time"

	"github.com/luvi2001/yfcapp/internal/model"
)

// The interfaces below are what the services need from the record store.
// *store.Store satisfies all of them.

type ReviewStore interface {
	FindReviewForWeek(ctx context.Context, userName string, weekStart, weekEnd time.Time) (*model.Review, error)
	HasPaidContribution(ctx context.Context, userName string, from, to time.Time) (bool, error)
	CreateReview(ctx context.Context, r *model.Review) error
	FindReviewsByUser(ctx context.Context, userName string, from, to time.Time) ([]model.Review, error)
	DistinctReviewUserNames(ctx context.Context) ([]string, error)
	FindReviewsForMember(ctx context.Context, memberID int, from, to time.Time) ([]model.Review, error)
	FindReviewsInWindow(ctx context.Context, from, to time.Time, limit int) ([]model.Review, error)
}

type MemberStore interface {
	AddMemberToRoster(ctx context.Context, ownerID int, ownerName string, m *model.Member) (*model.MemberAssignment, error)
	ListMembers(ctx context.Context) ([]model.Member, error)
	DeleteMember(ctx context.Context, id int) (*model.Member, error)
	AssignmentByOwner(ctx context.Context, ownerID int) (*model.MemberAssignment, error)
	ListAssignments(ctx context.Context) ([]model.MemberAssignment, error)
	DeleteAssignment(ctx context.Context, id int) error
	RemoveFromAssignment(ctx context.Context, assignmentID, memberID int) (*model.MemberAssignment, error)
}

type UserStore interface {
	CreateUser(ctx context.Context, u *model.User) error
	UserByID(ctx context.Context, id int) (*model.User, error)
	UserByLogin(ctx context.Context, login string) (*model.User, error)
}

type ProgressStore interface {
	FindProgressForWeek(ctx context.Context, userName string, weekStart, weekEnd time.Time) (*model.WeeklyProgress, error)
	CreateProgress(ctx context.Context, p *model.WeeklyProgress) error
	FindProgressByUser(ctx context.Context, userName string) ([]model.WeeklyProgress, error)
	FindProgressInWindow(ctx context.Context, from, to time.Time, limit int) ([]model.WeeklyProgress, error)
}
