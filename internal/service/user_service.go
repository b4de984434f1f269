package service

import (
	"context"
	"fmt"
	"strings"

	"go-pos-terminal/internal/model"
	"go-pos-terminal/internal/repository"

	"go.uber.org/zap"
)

type UserService interface {
	CreateUser(ctx context.Context, req *CreateUserRequest) (*model.User, error)
	UpdateUser(ctx context.Context, id uint, req *UpdateUserRequest) (bool, error)
	DeleteUser(ctx context.Context, id uint) error
	GetAllUsers(ctx context.Context) ([]model.User, error)
	GetUserByID(ctx context.Context, id uint) (*model.User, error)
	SaleCount(ctx context.Context, id uint) (int64, error)
}

type CreateUserRequest struct {
	Username string `json:"username" validate:"required,max=50"`
	Password string `json:"password" validate:"required"`
	FullName string `json:"full_name" validate:"required"`
	Role     string `json:"role"` // unknown roles become cashier
}

// UpdateUserRequest changes only the fields that are set.
// A role other than admin or cashier is ignored.
type UpdateUserRequest struct {
	Username *string `json:"username,omitempty"`
	FullName *string `json:"full_name,omitempty"`
	Role     *string `json:"role,omitempty"`
}

type userService struct {
	userRepo repository.UserRepository
	log      *zap.Logger
}

func NewUserService(userRepo repository.UserRepository, log *zap.Logger) UserService {
	return &userService{
		userRepo: userRepo,
		log:      log.Named("user"),
	}
}

func (s *userService) CreateUser(ctx context.Context, req *CreateUserRequest) (*model.User, error) {
	req.Username = strings.TrimSpace(req.Username)
	req.FullName = strings.TrimSpace(req.FullName)
	if err := validate(req); err != nil {
		return nil, err
	}

	user := &model.User{
		Username: req.Username,
		Password: req.Password,
		FullName: req.FullName,
		Role:     model.NormalizeRole(req.Role),
	}
	if err := s.userRepo.Create(ctx, user); err != nil {
		return nil, translate(err, fmt.Sprintf("username %q", req.Username))
	}

	s.log.Info("user created", zap.Uint("user_id", user.ID), zap.String("username", user.Username), zap.String("role", user.Role))
	return user, nil
}

// UpdateUser reports whether anything was changed
func (s *userService) UpdateUser(ctx context.Context, id uint, req *UpdateUserRequest) (bool, error) {
	user, err := s.userRepo.FindByID(ctx, id)
	if err != nil {
		return false, translate(err, "user")
	}

	fields := map[string]interface{}{}
	if req.Username != nil && strings.TrimSpace(*req.Username) != "" {
		user.Username = strings.TrimSpace(*req.Username)
		fields["username"] = user.Username
	}
	if req.FullName != nil && strings.TrimSpace(*req.FullName) != "" {
		user.FullName = strings.TrimSpace(*req.FullName)
		fields["full_name"] = user.FullName
	}
	if req.Role != nil && model.IsValidRole(*req.Role) {
		user.Role = model.NormalizeRole(*req.Role)
		fields["role"] = user.Role
	}
	if len(fields) == 0 {
		return false, nil
	}
	if err := validate(user); err != nil {
		return false, err
	}

	if err := s.userRepo.Update(ctx, id, fields); err != nil {
		return false, translate(err, fmt.Sprintf("username %q", user.Username))
	}
	s.log.Info("user updated", zap.Uint("user_id", id))
	return true, nil
}

// DeleteUser refuses to remove a user who has rung up sales
func (s *userService) DeleteUser(ctx context.Context, id uint) error {
	user, err := s.userRepo.FindByID(ctx, id)
	if err != nil {
		return translate(err, "user")
	}

	sales, err := s.userRepo.CountSales(ctx, id)
	if err != nil {
		return err
	}
	if sales > 0 {
		return fmt.Errorf("cannot delete user '%s' because they have %d associated sales: %w", user.Username, sales, ErrReferencedByHistory)
	}

	if err := s.userRepo.Delete(ctx, id); err != nil {
		return translate(err, "user")
	}
	s.log.Info("user deleted", zap.Uint("user_id", id), zap.String("username", user.Username))
	return nil
}

func (s *userService) GetAllUsers(ctx context.Context) ([]model.User, error) {
	return s.userRepo.FindAll(ctx)
}

func (s *userService) GetUserByID(ctx context.Context, id uint) (*model.User, error) {
	user, err := s.userRepo.FindByID(ctx, id)
	if err != nil {
		return nil, translate(err, "user")
	}
	return user, nil
}

func (s *userService) SaleCount(ctx context.Context, id uint) (int64, error) {
	return s.userRepo.CountSales(ctx, id)
}
