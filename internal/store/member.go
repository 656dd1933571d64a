package store

import (
	"context"
	"fmt"

	"gorm.io/gorm"

	"github.com/luvi2001/yfcapp/internal/apperr"
	"github.com/luvi2001/yfcapp/internal/model"
)

// AddMemberToRoster creates the member and appends it to the owner's
// roster, creating the roster on first use.
func (s *Store) AddMemberToRoster(ctx context.Context, ownerID int, ownerName string, m *model.Member) (*model.MemberAssignment, error) {
	var assignmentID int
	err := s.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if err := tx.Create(m).Error; err != nil {
			return err
		}
		a := model.MemberAssignment{OwnerUserID: ownerID, OwnerName: ownerName}
		if err := tx.Where("owner_user_id = ?", ownerID).FirstOrCreate(&a).Error; err != nil {
			return err
		}
		assignmentID = a.ID

		var next int
		if err := tx.Model(&model.AssignmentMember{}).
			Where("assignment_id = ?", a.ID).
			Select("COALESCE(MAX(position), 0) + 1").
			Scan(&next).Error; err != nil {
			return err
		}
		return tx.Create(&model.AssignmentMember{AssignmentID: a.ID, MemberID: m.ID, Position: next}).Error
	})
	if err != nil {
		return nil, translate("add member to roster", err)
	}
	return s.GetAssignment(ctx, assignmentID)
}

func (s *Store) ListMembers(ctx context.Context) ([]model.Member, error) {
	var out []model.Member
	err := s.db.WithContext(ctx).Order("name ASC, id ASC").Find(&out).Error
	return out, translate("list members", err)
}

// DeleteMember removes the member and its roster slot. Review history keeps
// the member's activity rows.
func (s *Store) DeleteMember(ctx context.Context, id int) (*model.Member, error) {
	var m model.Member
	err := s.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if err := tx.First(&m, id).Error; err != nil {
			return err
		}
		if err := tx.Where("member_id = ?", id).Delete(&model.AssignmentMember{}).Error; err != nil {
			return err
		}
		return tx.Delete(&model.Member{}, id).Error
	})
	if err != nil {
		return nil, translate("delete member", err)
	}
	return &m, nil
}

// AssignmentByOwner returns the owner's roster, or nil if none was created yet.
func (s *Store) AssignmentByOwner(ctx context.Context, ownerID int) (*model.MemberAssignment, error) {
	var out []model.MemberAssignment
	err := s.rosterQuery(ctx).Where("owner_user_id = ?", ownerID).Limit(1).Find(&out).Error
	if err != nil {
		return nil, translate("assignment by owner", err)
	}
	if len(out) == 0 {
		return nil, nil
	}
	fillMembers(&out[0])
	return &out[0], nil
}

func (s *Store) GetAssignment(ctx context.Context, id int) (*model.MemberAssignment, error) {
	var a model.MemberAssignment
	if err := s.rosterQuery(ctx).First(&a, id).Error; err != nil {
		return nil, translate("get assignment", err)
	}
	fillMembers(&a)
	return &a, nil
}

func (s *Store) ListAssignments(ctx context.Context) ([]model.MemberAssignment, error) {
	var out []model.MemberAssignment
	if err := s.rosterQuery(ctx).Order("owner_name ASC, id ASC").Find(&out).Error; err != nil {
		return nil, translate("list assignments", err)
	}
	for i := range out {
		fillMembers(&out[i])
	}
	return out, nil
}

func (s *Store) DeleteAssignment(ctx context.Context, id int) error {
	err := s.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		res := tx.Delete(&model.MemberAssignment{}, id)
		if res.Error != nil {
			return res.Error
		}
		if res.RowsAffected == 0 {
			return gorm.ErrRecordNotFound
		}
		return tx.Where("assignment_id = ?", id).Delete(&model.AssignmentMember{}).Error
	})
	return translate("delete assignment", err)
}

// RemoveFromAssignment drops one member from a roster and returns the roster.
func (s *Store) RemoveFromAssignment(ctx context.Context, assignmentID, memberID int) (*model.MemberAssignment, error) {
	res := s.db.WithContext(ctx).
		Where("assignment_id = ? AND member_id = ?", assignmentID, memberID).
		Delete(&model.AssignmentMember{})
	if res.Error != nil {
		return nil, translate("remove from assignment", res.Error)
	}
	if res.RowsAffected == 0 {
		return nil, fmt.Errorf("member %d in assignment %d: %w", memberID, assignmentID, apperr.ErrNotFound)
	}
	return s.GetAssignment(ctx, assignmentID)
}

func (s *Store) rosterQuery(ctx context.Context) *gorm.DB {
	return s.db.WithContext(ctx).
		Preload("Links", func(db *gorm.DB) *gorm.DB { return db.Order("position ASC") }).
		Preload("Links.Member")
}

func fillMembers(a *model.MemberAssignment) {
	a.Members = make([]model.Member, 0, len(a.Links))
	for _, l := range a.Links {
		if l.Member != nil {
			a.Members = append(a.Members, *l.Member)
		}
	}
}
