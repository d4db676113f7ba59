package user

import (
	"errors"
	"strings"
	"time"

	validation "github.com/go-ozzo/ozzo-validation/v4"
	"github.com/go-ozzo/ozzo-validation/v4/is"
	"github.com/google/uuid"

	"bookmarket-backend/internal/shared/policy"
)

// ========================================
// AUTH DTOs
// ========================================

// RegisterRequest - POST /auth/register. Admin không tự đăng ký được.
type RegisterRequest struct {
	Name     string `json:"name"`
	Email    string `json:"email"`
	Password string `json:"password"`
	Role     string `json:"role,omitempty"`
}

func (r *RegisterRequest) Normalize() {
	r.Name = strings.TrimSpace(r.Name)
	r.Email = strings.ToLower(strings.TrimSpace(r.Email))
}

func (r RegisterRequest) Validate() error {
	return validation.ValidateStruct(&r,
		validation.Field(&r.Name,
			validation.Required.Error("please add a name"),
			validation.Length(1, 100),
		),
		validation.Field(&r.Email,
			validation.Required.Error("please add an email"),
			is.Email.Error("please add a valid email"),
			validation.Length(5, 255),
		),
		validation.Field(&r.Password,
			validation.Required.Error("please add a password"),
			validation.Length(6, 128).Error("password must be 6-128 characters"),
		),
		validation.Field(&r.Role,
			validation.In(string(policy.RoleUser), string(policy.RoleContributor)).
				Error("role must be user or contributor"),
		),
	)
}

// LoginRequest - POST /auth/login
type LoginRequest struct {
	Email    string `json:"email"`
	Password string `json:"password"`
}

func (r LoginRequest) Validate() error {
	return validation.ValidateStruct(&r,
		validation.Field(&r.Email, validation.Required.Error("please provide an email"), is.Email),
		validation.Field(&r.Password, validation.Required.Error("please provide a password")),
	)
}

// SeedUser is used by the seeder, which may create admins and keep fixture ids.
type SeedUser struct {
	ID       uuid.UUID `json:"_id"`
	Name     string    `json:"name"`
	Email    string    `json:"email"`
	Password string    `json:"password"`
	Role     string    `json:"role"`
}

func (s SeedUser) Validate() error {
	return validation.ValidateStruct(&s,
		validation.Field(&s.Name, validation.Required),
		validation.Field(&s.Email, validation.Required, is.Email),
		validation.Field(&s.Password, validation.Required),
		validation.Field(&s.Role, validation.Required, validRole),
	)
}

// validRole accepts any role the policy package knows; empty is left to Required.
var validRole = validation.By(func(value interface{}) error {
	role, _ := validation.Indirect(value).(string)
	if role == "" || policy.Role(role).Valid() {
		return nil
	}
	return errors.New("role must be user, contributor or admin")
})

// ========================================
// ADMIN DTOs
// ========================================

// ListUsersRequest - GET /users?page&limit&sort&role&search
type ListUsersRequest struct {
	Page   int
	Limit  int
	Sort   string
	Role   string
	Search string
}

func (r ListUsersRequest) Validate() error {
	return validation.ValidateStruct(&r,
		validation.Field(&r.Page, validation.Min(1)),
		validation.Field(&r.Limit, validation.Min(1), validation.Max(100)),
		validation.Field(&r.Role, validRole),
		validation.Field(&r.Search, validation.Length(0, 100)),
	)
}

// CreateUserRequest - POST /users. Admin có thể tạo user với bất kỳ role nào.
type CreateUserRequest struct {
	Name     string `json:"name"`
	Email    string `json:"email"`
	Password string `json:"password"`
	Role     string `json:"role"`
}

func (r *CreateUserRequest) Normalize() {
	r.Name = strings.TrimSpace(r.Name)
	r.Email = strings.ToLower(strings.TrimSpace(r.Email))
	r.Role = strings.TrimSpace(r.Role)
}

func (r CreateUserRequest) Validate() error {
	return validation.ValidateStruct(&r,
		validation.Field(&r.Name,
			validation.Required.Error("please add a name"),
			validation.Length(1, 100),
		),
		validation.Field(&r.Email,
			validation.Required.Error("please add an email"),
			is.Email.Error("please add a valid email"),
			validation.Length(5, 255),
		),
		validation.Field(&r.Password,
			validation.Required.Error("please add a password"),
			validation.Length(6, 128).Error("password must be 6-128 characters"),
		),
		validation.Field(&r.Role, validRole),
	)
}

// UpdateUserRequest - PUT /users/:id (partial). Password không đổi qua đây.
type UpdateUserRequest struct {
	Name  *string `json:"name,omitempty"`
	Email *string `json:"email,omitempty"`
	Role  *string `json:"role,omitempty"`
}

func (r *UpdateUserRequest) Normalize() {
	if r.Name != nil {
		name := strings.TrimSpace(*r.Name)
		r.Name = &name
	}
	if r.Email != nil {
		email := strings.ToLower(strings.TrimSpace(*r.Email))
		r.Email = &email
	}
	if r.Role != nil {
		role := strings.TrimSpace(*r.Role)
		r.Role = &role
	}
}

func (r UpdateUserRequest) Validate() error {
	return validation.ValidateStruct(&r,
		validation.Field(&r.Name, validation.NilOrNotEmpty.Error("name cannot be blank"), validation.Length(1, 100)),
		validation.Field(&r.Email, validation.NilOrNotEmpty, is.Email, validation.Length(5, 255)),
		validation.Field(&r.Role, validation.NilOrNotEmpty, validRole),
	)
}

func (r UpdateUserRequest) IsEmpty() bool {
	return r.Name == nil && r.Email == nil && r.Role == nil
}

// ========================================
// RESPONSE DTOs
// ========================================

type UserDTO struct {
	ID        uuid.UUID `json:"id"`
	Name      string    `json:"name"`
	Email     string    `json:"email"`
	Role      string    `json:"role"`
	CreatedAt time.Time `json:"created_at"`
}

type LoginResponse struct {
	Token     string    `json:"token"`
	ExpiresAt time.Time `json:"expires_at"`
	User      UserDTO   `json:"user"`
}
