package service

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/google/uuid"
	"golang.org/x/crypto/bcrypt"

	"bookmarket-backend/internal/domains/user"
	"bookmarket-backend/internal/shared/apperror"
	"bookmarket-backend/internal/shared/policy"
)

const bcryptCost = 12

// TokenIssuer is satisfied by *jwt.Manager.
type TokenIssuer interface {
	GenerateAccessToken(userID, email, role string) (string, time.Time, error)
}

// userService implement user.Service interface
type userService struct {
	repo   user.Repository
	tokens TokenIssuer
}

// NewUserService tạo service instance
func NewUserService(repo user.Repository, tokens TokenIssuer) user.Service {
	return &userService{
		repo:   repo,
		tokens: tokens,
	}
}

// ========================================
// AUTHENTICATION
// ========================================

// Register tạo user mới và trả về token luôn
func (s *userService) Register(ctx context.Context, req user.RegisterRequest) (*user.LoginResponse, error) {
	// 1. VALIDATE INPUT (trim trước để chuỗi toàn khoảng trắng bị Required chặn)
	req.Normalize()
	if err := req.Validate(); err != nil {
		return nil, apperror.FromValidation(err)
	}

	role := policy.RoleUser
	if req.Role != "" {
		role = policy.Role(req.Role)
	}

	// 2. HASH PASSWORD
	passwordHash, err := bcrypt.GenerateFromPassword([]byte(req.Password), bcryptCost)
	if err != nil {
		return nil, fmt.Errorf("hash password: %w", err)
	}

	// 3. PERSIST (email trùng → ErrEmailAlreadyExists từ repository)
	newUser := &user.User{
		ID:           uuid.New(),
		Name:         req.Name,
		Email:        req.Email,
		PasswordHash: string(passwordHash),
		Role:         role,
	}
	if err := s.repo.Create(ctx, newUser); err != nil {
		return nil, err
	}

	// 4. ISSUE TOKEN
	return s.issueToken(newUser)
}

// Login xác thực user và trả về JWT token
func (s *userService) Login(ctx context.Context, req user.LoginRequest) (*user.LoginResponse, error) {
	if err := req.Validate(); err != nil {
		return nil, apperror.FromValidation(err)
	}

	u, err := s.repo.FindByEmail(ctx, strings.TrimSpace(req.Email))
	if err != nil {
		if errors.Is(err, user.ErrUserNotFound) {
			return nil, user.ErrInvalidCredentials
		}
		return nil, err
	}

	if err := bcrypt.CompareHashAndPassword([]byte(u.PasswordHash), []byte(req.Password)); err != nil {
		return nil, user.ErrInvalidCredentials
	}

	return s.issueToken(u)
}

func (s *userService) GetMe(ctx context.Context, userID uuid.UUID) (*user.UserDTO, error) {
	u, err := s.repo.FindByID(ctx, userID)
	if err != nil {
		return nil, err
	}
	dto := u.ToDTO()
	return &dto, nil
}

// ResolveActor loads the user behind a token on every authenticated request.
func (s *userService) ResolveActor(ctx context.Context, userID uuid.UUID) (policy.Actor, error) {
	u, err := s.repo.FindByID(ctx, userID)
	if err != nil {
		return policy.Actor{}, err
	}
	return u.Actor(), nil
}

func (s *userService) Seed(ctx context.Context, req user.SeedUser) (*user.UserDTO, error) {
	if err := req.Validate(); err != nil {
		return nil, apperror.FromValidation(err)
	}

	passwordHash, err := bcrypt.GenerateFromPassword([]byte(req.Password), bcrypt.MinCost)
	if err != nil {
		return nil, fmt.Errorf("hash password: %w", err)
	}

	u := &user.User{
		ID:           req.ID,
		Name:         req.Name,
		Email:        strings.ToLower(req.Email),
		PasswordHash: string(passwordHash),
		Role:         policy.Role(req.Role),
	}
	if err := s.repo.Create(ctx, u); err != nil {
		return nil, err
	}
	dto := u.ToDTO()
	return &dto, nil
}

// ========================================
// ADMIN USER MANAGEMENT
// ========================================

func (s *userService) ListUsers(ctx context.Context, req user.ListUsersRequest) ([]user.UserDTO, int64, error) {
	req.Search = strings.TrimSpace(req.Search)
	if err := req.Validate(); err != nil {
		return nil, 0, apperror.FromValidation(err)
	}

	users, total, err := s.repo.List(ctx, req)
	if err != nil {
		return nil, 0, err
	}

	dtos := make([]user.UserDTO, 0, len(users))
	for _, u := range users {
		dtos = append(dtos, u.ToDTO())
	}
	return dtos, total, nil
}

func (s *userService) GetUser(ctx context.Context, id uuid.UUID) (*user.UserDTO, error) {
	u, err := s.repo.FindByID(ctx, id)
	if err != nil {
		return nil, err
	}
	dto := u.ToDTO()
	return &dto, nil
}

// CreateUser tạo tài khoản thay cho người dùng; khác Register ở chỗ cho phép role admin
// và không phát token.
func (s *userService) CreateUser(ctx context.Context, req user.CreateUserRequest) (*user.UserDTO, error) {
	// 1. VALIDATE INPUT
	req.Normalize()
	if err := req.Validate(); err != nil {
		return nil, apperror.FromValidation(err)
	}

	role := policy.RoleUser
	if req.Role != "" {
		role = policy.Role(req.Role)
	}

	// 2. HASH PASSWORD
	passwordHash, err := bcrypt.GenerateFromPassword([]byte(req.Password), bcryptCost)
	if err != nil {
		return nil, fmt.Errorf("hash password: %w", err)
	}

	// 3. PERSIST
	u := &user.User{
		ID:           uuid.New(),
		Name:         req.Name,
		Email:        req.Email,
		PasswordHash: string(passwordHash),
		Role:         role,
	}
	if err := s.repo.Create(ctx, u); err != nil {
		return nil, err
	}
	dto := u.ToDTO()
	return &dto, nil
}

func (s *userService) UpdateUser(ctx context.Context, id uuid.UUID, req user.UpdateUserRequest) (*user.UserDTO, error) {
	// 1. VALIDATE INPUT
	req.Normalize()
	if req.IsEmpty() {
		return nil, user.ErrNoFieldsToUpdate
	}
	if err := req.Validate(); err != nil {
		return nil, apperror.FromValidation(err)
	}

	// 2. LOAD + APPLY
	u, err := s.repo.FindByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if req.Name != nil {
		u.Name = *req.Name
	}
	if req.Email != nil {
		u.Email = *req.Email
	}
	if req.Role != nil {
		u.Role = policy.Role(*req.Role)
	}

	// 3. PERSIST
	if err := s.repo.Update(ctx, u); err != nil {
		return nil, err
	}
	dto := u.ToDTO()
	return &dto, nil
}

func (s *userService) DeleteUser(ctx context.Context, actor policy.Actor, id uuid.UUID) error {
	if actor.ID == id {
		return user.ErrCannotDeleteSelf
	}
	return s.repo.Delete(ctx, id)
}

func (s *userService) issueToken(u *user.User) (*user.LoginResponse, error) {
	token, expiresAt, err := s.tokens.GenerateAccessToken(u.ID.String(), u.Email, string(u.Role))
	if err != nil {
		return nil, fmt.Errorf("generate token: %w", err)
	}
	return &user.LoginResponse{
		Token:     token,
		ExpiresAt: expiresAt,
		User:      u.ToDTO(),
	}, nil
}
