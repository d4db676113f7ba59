package user

import (
	"context"

	"github.com/google/uuid"

	"bookmarket-backend/internal/shared/policy"
)

// Service định nghĩa business logic layer contract
type Service interface {
	// Authentication
	Register(ctx context.Context, req RegisterRequest) (*LoginResponse, error)
	Login(ctx context.Context, req LoginRequest) (*LoginResponse, error)
	GetMe(ctx context.Context, userID uuid.UUID) (*UserDTO, error)

	// ResolveActor backs the auth middleware.
	ResolveActor(ctx context.Context, userID uuid.UUID) (policy.Actor, error)

	// Seed creates fixture users (any role, fixed id).
	Seed(ctx context.Context, req SeedUser) (*UserDTO, error)

	// Admin user management
	ListUsers(ctx context.Context, req ListUsersRequest) ([]UserDTO, int64, error)
	GetUser(ctx context.Context, id uuid.UUID) (*UserDTO, error)
	CreateUser(ctx context.Context, req CreateUserRequest) (*UserDTO, error)
	UpdateUser(ctx context.Context, id uuid.UUID, req UpdateUserRequest) (*UserDTO, error)
	DeleteUser(ctx context.Context, actor policy.Actor, id uuid.UUID) error
}
