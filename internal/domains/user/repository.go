package user

import (
	"context"

	"github.com/google/uuid"
)

// Repository định nghĩa contract cho data access layer
type Repository interface {
	// Create tạo user mới
	// Returns: ErrEmailAlreadyExists nếu email đã tồn tại
	Create(ctx context.Context, user *User) error

	// FindByID returns ErrUserNotFound when missing
	FindByID(ctx context.Context, id uuid.UUID) (*User, error)

	// FindByEmail tìm user theo email (dùng cho login)
	FindByEmail(ctx context.Context, email string) (*User, error)

	// List trả về 1 trang user và tổng số bản ghi khớp filter
	List(ctx context.Context, req ListUsersRequest) ([]*User, int64, error)

	// Update ghi name, email, role
	// Returns: ErrUserNotFound, ErrEmailAlreadyExists
	Update(ctx context.Context, user *User) error

	// Delete returns ErrUserHasResources while the user still owns rows.
	Delete(ctx context.Context, id uuid.UUID) error
}
