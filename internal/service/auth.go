package service

import (
	"context"
	"errors"
	"fmt"
	"time"

	"gorm.io/gorm"

	"github.com/Skotchmaster/shop_admin/internal/hash"
	"github.com/Skotchmaster/shop_admin/internal/models"
	"github.com/Skotchmaster/shop_admin/internal/repo"
	"github.com/Skotchmaster/shop_admin/internal/transport"
	"github.com/Skotchmaster/shop_admin/pkg/logging"
	"github.com/Skotchmaster/shop_admin/pkg/tokens"
)

type AuthService struct {
	Repo      *repo.GormRepo
	JWTSecret []byte
	AccessTTL time.Duration
}

// Login checks the bcrypt hash and requires the admin role.
func (s *AuthService) Login(ctx context.Context, email, password string) (*transport.LoginResponse, error) {
	l := logging.FromContext(ctx).With("svc", "auth.login")

	user, err := s.Repo.GetUserByEmail(ctx, email)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			l.Warn("login_failed", "reason", "unknown email")
			return nil, ErrInvalidCredentials
		}
		return nil, err
	}
	if !hash.CheckPassword(user.PasswordHash, password) {
		l.Warn("login_failed", "reason", "wrong password", "user_id", user.ID)
		return nil, ErrInvalidCredentials
	}
	if user.Role != models.RoleAdmin {
		l.Warn("login_failed", "reason", "not an admin", "user_id", user.ID)
		return nil, fmt.Errorf("%w: admin role required", ErrForbidden)
	}

	exp := time.Now().Add(s.AccessTTL).UTC()
	token, err := tokens.SignAccessToken(user.ID, user.Name, user.Role, exp, s.JWTSecret)
	if err != nil {
		return nil, fmt.Errorf("sign token: %w", err)
	}
	return &transport.LoginResponse{AccessToken: token, ExpiresAt: exp, Name: user.Name}, nil
}
