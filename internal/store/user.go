package store

import (
	"context"

	"github.com/luvi2001/yfcapp/internal/model"
)

// CreateUser inserts u. A taken email or username fails with apperr.ErrConflict.
func (s *Store) CreateUser(ctx context.Context, u *model.User) error {
	return translate("create user", s.db.WithContext(ctx).Create(u).Error)
}

func (s *Store) UserByID(ctx context.Context, id int) (*model.User, error) {
	var u model.User
	if err := s.db.WithContext(ctx).First(&u, id).Error; err != nil {
		return nil, translate("user by id", err)
	}
	return &u, nil
}

// UserByLogin matches login against email or username.
func (s *Store) UserByLogin(ctx context.Context, login string) (*model.User, error) {
	var u model.User
	err := s.db.WithContext(ctx).
		Where("email = ? OR username = ?", login, login).
		First(&u).Error
	if err != nil {
		return nil, translate("user by login", err)
	}
	return &u, nil
}
