package service

import (
	"context"
	"fmt"
	"strings"

	"github.com/luvi2001/yfcapp/internal/apperr"
	"github.com/luvi2001/yfcapp/internal/logger"
	"github.com/luvi2001/yfcapp/internal/model"
)

// MemberService manages members and the roster each leader owns.
type MemberService struct{ store MemberStore }

func NewMemberService(store MemberStore) *MemberService { return &MemberService{store: store} }

// Add creates a member and appends it to the caller's roster.
func (s *MemberService) Add(ctx context.Context, who model.Identity, req model.AddMemberRequest) (*model.MemberAssignment, error) {
	if who.UserID == 0 {
		return nil, fmt.Errorf("no user on request: %w", apperr.ErrAuth)
	}
	m := &model.Member{
		Name:   strings.TrimSpace(req.Name),
		Age:    int(req.Age),
		Mobile: strings.TrimSpace(req.Mobile),
	}
	switch {
	case m.Name == "":
		return nil, apperr.Invalid("name", "is required")
	case m.Age <= 0:
		return nil, apperr.Invalid("age", "must be positive")
	case m.Mobile == "":
		return nil, apperr.Invalid("mobile", "is required")
	}

	a, err := s.store.AddMemberToRoster(ctx, who.UserID, who.UserName, m)
	if err != nil {
		return nil, err
	}
	logger.Ctx(ctx).Info("member.add.ok", "owner", who.UserName, "member", m.ID, "assignment", a.ID)
	return a, nil
}

// Mine returns the caller's roster members, empty if none were added yet.
func (s *MemberService) Mine(ctx context.Context, who model.Identity) ([]model.Member, error) {
	a, err := s.store.AssignmentByOwner(ctx, who.UserID)
	if err != nil {
		return nil, err
	}
	if a == nil {
		return []model.Member{}, nil
	}
	return a.Members, nil
}

func (s *MemberService) List(ctx context.Context) ([]model.Member, error) {
	return s.store.ListMembers(ctx)
}

func (s *MemberService) Delete(ctx context.Context, id int) (*model.Member, error) {
	m, err := s.store.DeleteMember(ctx, id)
	if err != nil {
		return nil, err
	}
	logger.Ctx(ctx).Info("member.delete.ok", "member", id)
	return m, nil
}

func (s *MemberService) Assignments(ctx context.Context) ([]model.MemberAssignment, error) {
	return s.store.ListAssignments(ctx)
}

func (s *MemberService) DeleteAssignment(ctx context.Context, id int) error {
	if err := s.store.DeleteAssignment(ctx, id); err != nil {
		return err
	}
	logger.Ctx(ctx).Info("assignment.delete.ok", "assignment", id)
	return nil
}

func (s *MemberService) RemoveFromAssignment(ctx context.Context, assignmentID, memberID int) (*model.MemberAssignment, error) {
	return s.store.RemoveFromAssignment(ctx, assignmentID, memberID)
}
