package user

import "context"

type UserService interface {
	Create(ctx context.Context, req CreateUserRequest, actorID string) (UserResponse, error)
	UpdateRole(ctx context.Context, req UpdateRoleRequest, actorID string) error
	SetActive(ctx context.Context, id string, active bool, actorID string) error
	List(ctx context.Context) ([]UserResponse, error)
}
