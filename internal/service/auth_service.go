package service

import (
	"context"
	"errors"
	"strings"
	"time"

	"go-pos-terminal/internal/model"
	"go-pos-terminal/internal/repository"

	"github.com/google/uuid"
	"go.uber.org/zap"
	"gorm.io/gorm"
)

// Session is the logged-in operator of the terminal
type Session struct {
	ID        uuid.UUID
	UserID    uint
	Username  string
	FullName  string
	Role      string
	StartedAt time.Time
}

func (s *Session) HasPrivilege(code string) bool {
	for _, p := range model.RolePrivileges[s.Role] {
		if p == code {
			return true
		}
	}
	return false
}

func (s *Session) IsAdmin() bool {
	return s.Role == model.RoleAdmin
}

type AuthService interface {
	Login(ctx context.Context, username, password string) (*Session, error)
	ChangePassword(ctx context.Context, username, oldPassword, newPassword, confirmPassword string) error
	ResetPassword(ctx context.Context, username, newPassword string) error
}

type authService struct {
	userRepo repository.UserRepository
	log      *zap.Logger
}

func NewAuthService(userRepo repository.UserRepository, log *zap.Logger) AuthService {
	return &authService{
		userRepo: userRepo,
		log:      log.Named("auth"),
	}
}

func (s *authService) Login(ctx context.Context, username, password string) (*Session, error) {
	// 1. Find user by username
	user, err := s.userRepo.FindByUsername(ctx, strings.TrimSpace(username))
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrInvalidCredentials
		}
		return nil, err
	}

	// 2. Verify password
	if !user.CheckPassword(password) {
		s.log.Info("login failed", zap.String("username", user.Username))
		return nil, ErrInvalidCredentials
	}

	// 3. Open session
	session := &Session{
		ID:        uuid.New(),
		UserID:    user.ID,
		Username:  user.Username,
		FullName:  user.FullName,
		Role:      user.Role,
		StartedAt: time.Now(),
	}
	s.log.Info("login", zap.String("username", user.Username), zap.String("session_id", session.ID.String()))
	return session, nil
}

// ChangePassword re-authenticates the user before setting the new password
func (s *authService) ChangePassword(ctx context.Context, username, oldPassword, newPassword, confirmPassword string) error {
	user, err := s.userRepo.FindByUsername(ctx, strings.TrimSpace(username))
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return ErrInvalidCredentials
		}
		return err
	}
	if !user.CheckPassword(oldPassword) {
		return ErrInvalidCredentials
	}
	if newPassword != confirmPassword {
		return ErrPasswordMismatch
	}
	if newPassword == "" {
		return ErrValidation
	}

	if err := s.userRepo.UpdatePassword(ctx, user.ID, newPassword); err != nil {
		return translate(err, "user")
	}
	s.log.Info("password changed", zap.String("username", user.Username))
	return nil
}

// ResetPassword sets a password without the old one; used by the maintenance tool
func (s *authService) ResetPassword(ctx context.Context, username, newPassword string) error {
	if newPassword == "" {
		return ErrValidation
	}
	user, err := s.userRepo.FindByUsername(ctx, strings.TrimSpace(username))
	if err != nil {
		return translate(err, "user")
	}
	if err := s.userRepo.UpdatePassword(ctx, user.ID, newPassword); err != nil {
		return translate(err, "user")
	}
	s.log.Info("password reset", zap.String("username", user.Username))
	return nil
}
