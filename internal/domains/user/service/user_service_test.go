package service

import (
	"context"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
	"golang.org/x/crypto/bcrypt"

	"bookmarket-backend/internal/domains/user"
	"bookmarket-backend/internal/shared/apperror"
	"bookmarket-backend/internal/shared/policy"
	"bookmarket-backend/pkg/jwt"
)

type MockUserRepository struct {
	mock.Mock
}

func (m *MockUserRepository) Create(ctx context.Context, u *user.User) error {
	args := m.Called(ctx, u)
	return args.Error(0)
}

func (m *MockUserRepository) FindByID(ctx context.Context, id uuid.UUID) (*user.User, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*user.User), args.Error(1)
}

func (m *MockUserRepository) FindByEmail(ctx context.Context, email string) (*user.User, error) {
	args := m.Called(ctx, email)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*user.User), args.Error(1)
}

func (m *MockUserRepository) List(ctx context.Context, req user.ListUsersRequest) ([]*user.User, int64, error) {
	args := m.Called(ctx, req)
	if args.Get(0) == nil {
		return nil, 0, args.Error(2)
	}
	return args.Get(0).([]*user.User), args.Get(1).(int64), args.Error(2)
}

func (m *MockUserRepository) Update(ctx context.Context, u *user.User) error {
	return m.Called(ctx, u).Error(0)
}

func (m *MockUserRepository) Delete(ctx context.Context, id uuid.UUID) error {
	return m.Called(ctx, id).Error(0)
}

func newService(repo user.Repository) user.Service {
	return NewUserService(repo, jwt.NewManager("test-secret", time.Hour))
}

func TestRegister_DefaultsToUserRole(t *testing.T) {
	repo := new(MockUserRepository)
	repo.On("Create", mock.Anything, mock.MatchedBy(func(u *user.User) bool {
		return u.Role == policy.RoleUser && u.Email == "jane@example.com" &&
			bcrypt.CompareHashAndPassword([]byte(u.PasswordHash), []byte("secret123")) == nil
	})).Return(nil)

	resp, err := newService(repo).Register(context.Background(), user.RegisterRequest{
		Name: "Jane", Email: "Jane@Example.com", Password: "secret123",
	})
	require.NoError(t, err)
	assert.NotEmpty(t, resp.Token)
	assert.Equal(t, "user", resp.User.Role)
	repo.AssertExpectations(t)
}

func TestRegister_RejectsAdminRole(t *testing.T) {
	repo := new(MockUserRepository)

	_, err := newService(repo).Register(context.Background(), user.RegisterRequest{
		Name: "Mallory", Email: "m@example.com", Password: "secret123", Role: "admin",
	})

	assert.True(t, apperror.Is(err, apperror.KindValidation))
	repo.AssertNotCalled(t, "Create", mock.Anything, mock.Anything)
}

func TestRegister_DuplicateEmail(t *testing.T) {
	repo := new(MockUserRepository)
	repo.On("Create", mock.Anything, mock.Anything).Return(user.ErrEmailAlreadyExists)

	_, err := newService(repo).Register(context.Background(), user.RegisterRequest{
		Name: "Jane", Email: "jane@example.com", Password: "secret123", Role: "contributor",
	})
	assert.ErrorIs(t, err, user.ErrEmailAlreadyExists)
}

func TestLogin(t *testing.T) {
	hash, err := bcrypt.GenerateFromPassword([]byte("secret123"), bcrypt.MinCost)
	require.NoError(t, err)
	stored := &user.User{ID: uuid.New(), Email: "jane@example.com", PasswordHash: string(hash), Role: policy.RoleContributor}

	repo := new(MockUserRepository)
	repo.On("FindByEmail", mock.Anything, "jane@example.com").Return(stored, nil)
	repo.On("FindByEmail", mock.Anything, "ghost@example.com").Return(nil, user.ErrUserNotFound)
	svc := newService(repo)

	resp, err := svc.Login(context.Background(), user.LoginRequest{Email: "jane@example.com", Password: "secret123"})
	require.NoError(t, err)
	assert.Equal(t, stored.ID, resp.User.ID)

	_, err = svc.Login(context.Background(), user.LoginRequest{Email: "jane@example.com", Password: "wrong"})
	assert.ErrorIs(t, err, user.ErrInvalidCredentials)

	_, err = svc.Login(context.Background(), user.LoginRequest{Email: "ghost@example.com", Password: "secret123"})
	assert.ErrorIs(t, err, user.ErrInvalidCredentials)
}

func TestResolveActor_UsesStoredRole(t *testing.T) {
	id := uuid.New()
	repo := new(MockUserRepository)
	repo.On("FindByID", mock.Anything, id).Return(&user.User{ID: id, Email: "a@b.c", Role: policy.RoleAdmin}, nil)

	actor, err := newService(repo).ResolveActor(context.Background(), id)
	require.NoError(t, err)
	assert.Equal(t, policy.Actor{ID: id, Email: "a@b.c", Role: policy.RoleAdmin}, actor)
}

func TestRegister_WhitespaceNameIsRejected(t *testing.T) {
	repo := new(MockUserRepository)

	_, err := newService(repo).Register(context.Background(), user.RegisterRequest{
		Name: "   ", Email: "jane@example.com", Password: "secret123",
	})

	require.Error(t, err)
	assert.True(t, apperror.Is(err, apperror.KindValidation))
	repo.AssertNotCalled(t, "Create", mock.Anything, mock.Anything)
}

// ========================================
// ADMIN USER MANAGEMENT
// ========================================

func TestListUsers(t *testing.T) {
	repo := new(MockUserRepository)
	req := user.ListUsersRequest{Page: 1, Limit: 25, Role: "contributor", Search: "jane"}
	repo.On("List", mock.Anything, req).Return([]*user.User{
		{ID: uuid.New(), Name: "Jane", Email: "jane@example.com", Role: policy.RoleContributor},
	}, int64(1), nil)

	users, total, err := newService(repo).ListUsers(context.Background(), user.ListUsersRequest{
		Page: 1, Limit: 25, Role: "contributor", Search: "  jane ",
	})
	require.NoError(t, err)
	assert.Equal(t, int64(1), total)
	require.Len(t, users, 1)
	assert.Equal(t, "contributor", users[0].Role)
	repo.AssertExpectations(t)
}

func TestListUsers_UnknownRole(t *testing.T) {
	repo := new(MockUserRepository)

	_, _, err := newService(repo).ListUsers(context.Background(), user.ListUsersRequest{Page: 1, Limit: 25, Role: "root"})

	assert.True(t, apperror.Is(err, apperror.KindValidation))
	repo.AssertNotCalled(t, "List", mock.Anything, mock.Anything)
}

func TestCreateUser_AllowsAdminRole(t *testing.T) {
	repo := new(MockUserRepository)
	repo.On("Create", mock.Anything, mock.MatchedBy(func(u *user.User) bool {
		return u.Role == policy.RoleAdmin && u.Name == "Root" && u.Email == "root@example.com"
	})).Return(nil)

	dto, err := newService(repo).CreateUser(context.Background(), user.CreateUserRequest{
		Name: " Root ", Email: "Root@Example.com", Password: "secret123", Role: "admin",
	})
	require.NoError(t, err)
	assert.Equal(t, "admin", dto.Role)
	repo.AssertExpectations(t)
}

func TestCreateUser_Validation(t *testing.T) {
	tests := []struct {
		name string
		req  user.CreateUserRequest
	}{
		{"unknown role", user.CreateUserRequest{Name: "Jane", Email: "jane@example.com", Password: "secret123", Role: "superuser"}},
		{"whitespace name", user.CreateUserRequest{Name: " \t ", Email: "jane@example.com", Password: "secret123"}},
		{"short password", user.CreateUserRequest{Name: "Jane", Email: "jane@example.com", Password: "123"}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			repo := new(MockUserRepository)

			_, err := newService(repo).CreateUser(context.Background(), tt.req)

			assert.True(t, apperror.Is(err, apperror.KindValidation))
			repo.AssertNotCalled(t, "Create", mock.Anything, mock.Anything)
		})
	}
}

func TestUpdateUser_ChangesRole(t *testing.T) {
	id := uuid.New()
	repo := new(MockUserRepository)
	repo.On("FindByID", mock.Anything, id).Return(&user.User{ID: id, Name: "Jane", Email: "jane@example.com", Role: policy.RoleUser}, nil)
	repo.On("Update", mock.Anything, mock.MatchedBy(func(u *user.User) bool {
		return u.ID == id && u.Role == policy.RoleContributor && u.Name == "Jane"
	})).Return(nil)

	role := "contributor"
	dto, err := newService(repo).UpdateUser(context.Background(), id, user.UpdateUserRequest{Role: &role})
	require.NoError(t, err)
	assert.Equal(t, "contributor", dto.Role)
	repo.AssertExpectations(t)
}

func TestUpdateUser_RejectsBadInput(t *testing.T) {
	blank := "   "
	badRole := "owner"
	tests := []struct {
		name string
		req  user.UpdateUserRequest
	}{
		{"empty body", user.UpdateUserRequest{}},
		{"whitespace name", user.UpdateUserRequest{Name: &blank}},
		{"unknown role", user.UpdateUserRequest{Role: &badRole}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			repo := new(MockUserRepository)

			_, err := newService(repo).UpdateUser(context.Background(), uuid.New(), tt.req)

			assert.True(t, apperror.Is(err, apperror.KindValidation))
			repo.AssertNotCalled(t, "FindByID", mock.Anything, mock.Anything)
			repo.AssertNotCalled(t, "Update", mock.Anything, mock.Anything)
		})
	}
}

func TestUpdateUser_NotFound(t *testing.T) {
	id := uuid.New()
	repo := new(MockUserRepository)
	repo.On("FindByID", mock.Anything, id).Return(nil, user.ErrUserNotFound)

	name := "Jane"
	_, err := newService(repo).UpdateUser(context.Background(), id, user.UpdateUserRequest{Name: &name})

	assert.ErrorIs(t, err, user.ErrUserNotFound)
	repo.AssertNotCalled(t, "Update", mock.Anything, mock.Anything)
}

func TestDeleteUser(t *testing.T) {
	admin := policy.Actor{ID: uuid.New(), Role: policy.RoleAdmin}

	t.Run("deletes another user", func(t *testing.T) {
		target := uuid.New()
		repo := new(MockUserRepository)
		repo.On("Delete", mock.Anything, target).Return(nil)

		require.NoError(t, newService(repo).DeleteUser(context.Background(), admin, target))
		repo.AssertExpectations(t)
	})

	t.Run("refuses own account", func(t *testing.T) {
		repo := new(MockUserRepository)

		err := newService(repo).DeleteUser(context.Background(), admin, admin.ID)

		assert.ErrorIs(t, err, user.ErrCannotDeleteSelf)
		repo.AssertNotCalled(t, "Delete", mock.Anything, mock.Anything)
	})

	t.Run("owner of content", func(t *testing.T) {
		target := uuid.New()
		repo := new(MockUserRepository)
		repo.On("Delete", mock.Anything, target).Return(user.ErrUserHasResources)

		err := newService(repo).DeleteUser(context.Background(), admin, target)
		assert.ErrorIs(t, err, user.ErrUserHasResources)
	})
}
