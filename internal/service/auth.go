package service

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"golang.org/x/crypto/bcrypt"

	"github.com/luvi2001/yfcapp/internal/apperr"
	"github.com/luvi2001/yfcapp/internal/model"
)

// AuthService issues bearer tokens and resolves them back to a user.
type AuthService struct {
	users  UserStore
	secret []byte
	ttl    time.Duration
}

func NewAuthService(users UserStore, secret []byte, ttl time.Duration) *AuthService {
	return &AuthService{users: users, secret: secret, ttl: ttl}
}

func (s *AuthService) SignUp(ctx context.Context, req model.SignUpRequest, role string) (*model.User, error) {
	if role != model.RoleLeader && role != model.RoleAdmin {
		return nil, apperr.Invalid("role", "unknown role %q", role)
	}
	u := &model.User{
		Name:     strings.TrimSpace(req.Name),
		Email:    strings.ToLower(strings.TrimSpace(req.Email)),
		Phone:    strings.TrimSpace(req.Phone),
		Division: strings.TrimSpace(req.Division),
		Username: strings.TrimSpace(req.Username),
		Role:     role,
	}
	switch {
	case u.Name == "":
		return nil, apperr.Invalid("name", "is required")
	case u.Email == "":
		return nil, apperr.Invalid("email", "is required")
	case u.Username == "":
		return nil, apperr.Invalid("username", "is required")
	case len(req.Password) < 6:
		return nil, apperr.Invalid("password", "must be at least 6 characters")
	}

	hash, err := bcrypt.GenerateFromPassword([]byte(req.Password), bcrypt.DefaultCost)
	if err != nil {
		return nil, fmt.Errorf("hash password: %w", err)
	}
	u.Password = string(hash)

	if err := s.users.CreateUser(ctx, u); err != nil {
		if errors.Is(err, apperr.ErrConflict) {
			return nil, fmt.Errorf("email or username taken: %w", err)
		}
		return nil, err
	}
	return u, nil
}

// Login accepts either the email or the username as login.
func (s *AuthService) Login(ctx context.Context, login, password string) (*model.LoginResponse, error) {
	u, err := s.users.UserByLogin(ctx, strings.TrimSpace(login))
	if errors.Is(err, apperr.ErrNotFound) {
		return nil, fmt.Errorf("invalid credentials: %w", apperr.ErrAuth)
	}
	if err != nil {
		return nil, err
	}
	if bcrypt.CompareHashAndPassword([]byte(u.Password), []byte(password)) != nil {
		return nil, fmt.Errorf("invalid credentials: %w", apperr.ErrAuth)
	}
	token, err := s.Issue(identityOf(u))
	if err != nil {
		return nil, err
	}
	return &model.LoginResponse{Token: token, User: *u}, nil
}

func (s *AuthService) Issue(id model.Identity) (string, error) {
	token, err := jwt.NewWithClaims(jwt.SigningMethodHS256, jwt.MapClaims{
		"uid":  id.UserID,
		"name": id.UserName,
		"role": id.Role,
		"exp":  time.Now().Add(s.ttl).Unix(),
	}).SignedString(s.secret)
	if err != nil {
		return "", fmt.Errorf("sign token: %w", err)
	}
	return token, nil
}

// Resolve checks the token and reloads the user it names, so deleted users
// and role changes take effect before the token expires.
func (s *AuthService) Resolve(ctx context.Context, raw string) (model.Identity, time.Time, error) {
	token, err := jwt.Parse(raw, func(t *jwt.Token) (any, error) {
		return s.secret, nil
	}, jwt.WithValidMethods([]string{jwt.SigningMethodHS256.Alg()}))
	if err != nil || !token.Valid {
		return model.Identity{}, time.Time{}, fmt.Errorf("invalid token: %w", apperr.ErrAuth)
	}
	claims, _ := token.Claims.(jwt.MapClaims)
	uid, ok := claims["uid"].(float64)
	if !ok {
		return model.Identity{}, time.Time{}, fmt.Errorf("token has no uid: %w", apperr.ErrAuth)
	}
	var exp time.Time
	if t, err := claims.GetExpirationTime(); err == nil && t != nil {
		exp = t.Time
	}

	u, err := s.users.UserByID(ctx, int(uid))
	if errors.Is(err, apperr.ErrNotFound) {
		return model.Identity{}, time.Time{}, fmt.Errorf("user %d gone: %w", int(uid), apperr.ErrAuth)
	}
	if err != nil {
		return model.Identity{}, time.Time{}, err
	}
	return identityOf(u), exp, nil
}

func (s *AuthService) Profile(ctx context.Context, userID int) (*model.User, error) {
	return s.users.UserByID(ctx, userID)
}

// identityOf names a user by username so reviews stay stable if the display name changes.
func identityOf(u *model.User) model.Identity {
	return model.Identity{UserID: u.ID, UserName: u.Username, Role: u.Role}
}
