package user

import (
	"context"
	"fmt"
	"time"

	"github.com/opsdesk/opsdesk-backend-go/internal/domain/activitylog"
	"github.com/opsdesk/opsdesk-backend-go/internal/domain/user"
	"golang.org/x/crypto/bcrypt"
)

type UserServiceImpl struct {
	userRepo    user.UserRepository
	activityLog activitylog.ActivityLogRepository
}

func NewUserService(
	userRepo user.UserRepository,
	activityLog activitylog.ActivityLogRepository,
) user.UserService {
	return &UserServiceImpl{
		userRepo:    userRepo,
		activityLog: activityLog,
	}
}

func (s *UserServiceImpl) Create(ctx context.Context, req user.CreateUserRequest, actorID string) (user.UserResponse, error) {
	if err := req.Validate(); err != nil {
		return user.UserResponse{}, err
	}

	hash, err := bcrypt.GenerateFromPassword([]byte(req.Password), bcrypt.DefaultCost)
	if err != nil {
		return user.UserResponse{}, fmt.Errorf("failed to hash password: %w", err)
	}
	hashStr := string(hash)

	created, err := s.userRepo.Create(ctx, user.User{
		Email:        req.Email,
		PasswordHash: &hashStr,
		FullName:     req.FullName,
		Role:         user.Role(req.Role),
		IsActive:     true,
	})
	if err != nil {
		return user.UserResponse{}, err
	}

	_ = s.activityLog.Append(ctx, activitylog.Entry{
		ActorID:    actorID,
		Action:     activitylog.ActionCreate,
		EntityType: "user",
		EntityID:   &created.ID,
	})

	return mapToResponse(created), nil
}

func (s *UserServiceImpl) UpdateRole(ctx context.Context, req user.UpdateRoleRequest, actorID string) error {
	if err := req.Validate(); err != nil {
		return err
	}

	if err := s.userRepo.UpdateRole(ctx, req.ID, user.Role(req.Role)); err != nil {
		return err
	}

	detail := fmt.Sprintf("role=%s", req.Role)
	_ = s.activityLog.Append(ctx, activitylog.Entry{
		ActorID:    actorID,
		Action:     activitylog.ActionUpdate,
		EntityType: "user",
		EntityID:   &req.ID,
		Detail:     &detail,
	})

	return nil
}

func (s *UserServiceImpl) SetActive(ctx context.Context, id string, active bool, actorID string) error {
	if err := s.userRepo.SetActive(ctx, id, active); err != nil {
		return err
	}

	detail := fmt.Sprintf("is_active=%t", active)
	_ = s.activityLog.Append(ctx, activitylog.Entry{
		ActorID:    actorID,
		Action:     activitylog.ActionUpdate,
		EntityType: "user",
		EntityID:   &id,
		Detail:     &detail,
	})

	return nil
}

func (s *UserServiceImpl) List(ctx context.Context) ([]user.UserResponse, error) {
	users, err := s.userRepo.List(ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to list users: %w", err)
	}

	responses := make([]user.UserResponse, 0, len(users))
	for _, u := range users {
		responses = append(responses, mapToResponse(u))
	}

	return responses, nil
}

func mapToResponse(u user.User) user.UserResponse {
	resp := user.UserResponse{
		ID:       u.ID,
		Email:    u.Email,
		FullName: u.FullName,
		Role:     string(u.Role),
		IsActive: u.IsActive,
	}
	if u.LastLoginAt != nil {
		formatted := u.LastLoginAt.Format(time.RFC3339)
		resp.LastLoginAt = &formatted
	}
	return resp
}
