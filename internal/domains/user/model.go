package user

import (
	"time"

	"github.com/google/uuid"

	"bookmarket-backend/internal/shared/policy"
)

// User là tài khoản đăng nhập. Role lưu trong DB là nguồn sự thật cho phân quyền.
type User struct {
	ID           uuid.UUID   `json:"id" db:"id"`
	Name         string      `json:"name" db:"name"`
	Email        string      `json:"email" db:"email"`
	PasswordHash string      `json:"-" db:"password_hash"`
	Role         policy.Role `json:"role" db:"role"`
	CreatedAt    time.Time   `json:"created_at" db:"created_at"`
}

// Actor converts the stored user into the principal used by policy checks.
func (u *User) Actor() policy.Actor {
	return policy.Actor{ID: u.ID, Email: u.Email, Role: u.Role}
}

func (u *User) ToDTO() UserDTO {
	return UserDTO{
		ID:        u.ID,
		Name:      u.Name,
		Email:     u.Email,
		Role:      string(u.Role),
		CreatedAt: u.CreatedAt,
	}
}
