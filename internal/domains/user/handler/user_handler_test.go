package handler

import (
	"bytes"
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"

	"bookmarket-backend/internal/domains/user"
	"bookmarket-backend/internal/shared/middleware"
	"bookmarket-backend/internal/shared/policy"
	"bookmarket-backend/internal/shared/response"
)

func init() {
	gin.SetMode(gin.TestMode)
}

// ========================================
// MOCK SERVICE
// ========================================

type MockUserService struct {
	mock.Mock
}

func (m *MockUserService) Register(ctx context.Context, req user.RegisterRequest) (*user.LoginResponse, error) {
	args := m.Called(ctx, req)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*user.LoginResponse), args.Error(1)
}

func (m *MockUserService) Login(ctx context.Context, req user.LoginRequest) (*user.LoginResponse, error) {
	args := m.Called(ctx, req)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*user.LoginResponse), args.Error(1)
}

func (m *MockUserService) GetMe(ctx context.Context, userID uuid.UUID) (*user.UserDTO, error) {
	args := m.Called(ctx, userID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*user.UserDTO), args.Error(1)
}

func (m *MockUserService) ResolveActor(ctx context.Context, userID uuid.UUID) (policy.Actor, error) {
	args := m.Called(ctx, userID)
	return args.Get(0).(policy.Actor), args.Error(1)
}

func (m *MockUserService) Seed(ctx context.Context, req user.SeedUser) (*user.UserDTO, error) {
	args := m.Called(ctx, req)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*user.UserDTO), args.Error(1)
}

func (m *MockUserService) ListUsers(ctx context.Context, req user.ListUsersRequest) ([]user.UserDTO, int64, error) {
	args := m.Called(ctx, req)
	if args.Get(0) == nil {
		return nil, 0, args.Error(2)
	}
	return args.Get(0).([]user.UserDTO), args.Get(1).(int64), args.Error(2)
}

func (m *MockUserService) GetUser(ctx context.Context, id uuid.UUID) (*user.UserDTO, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*user.UserDTO), args.Error(1)
}

func (m *MockUserService) CreateUser(ctx context.Context, req user.CreateUserRequest) (*user.UserDTO, error) {
	args := m.Called(ctx, req)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*user.UserDTO), args.Error(1)
}

func (m *MockUserService) UpdateUser(ctx context.Context, id uuid.UUID, req user.UpdateUserRequest) (*user.UserDTO, error) {
	args := m.Called(ctx, id, req)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*user.UserDTO), args.Error(1)
}

func (m *MockUserService) DeleteUser(ctx context.Context, actor policy.Actor, id uuid.UUID) error {
	return m.Called(ctx, actor, id).Error(0)
}

// ========================================
// HELPERS
// ========================================

// newAdminRouter mounts the admin routes behind the same role gate as the API router.
func newAdminRouter(svc *MockUserService, actor *policy.Actor) *gin.Engine {
	h := NewUserHandler(svc, "token", false)
	r := gin.New()
	withActor := func(c *gin.Context) {
		if actor != nil {
			c.Set(middleware.ContextActor, *actor)
		}
		c.Next()
	}

	users := r.Group("/users", withActor, middleware.RequireRoles(policy.RoleAdmin))
	users.GET("", h.ListUsers)
	users.GET("/:id", h.GetUser)
	users.POST("", h.CreateUser)
	users.PUT("/:id", h.UpdateUser)
	users.DELETE("/:id", h.DeleteUser)
	return r
}

func decode(t *testing.T, w *httptest.ResponseRecorder) response.Response {
	var body response.Response
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &body))
	return body
}

func jsonRequest(method, target, payload string) *http.Request {
	req := httptest.NewRequest(method, target, bytes.NewBufferString(payload))
	req.Header.Set("Content-Type", "application/json")
	return req
}

// ========================================
// TESTS
// ========================================

func TestAdminRoutes_RejectNonAdmins(t *testing.T) {
	tests := []struct {
		name  string
		actor *policy.Actor
		want  int
	}{
		{"anonymous", nil, http.StatusUnauthorized},
		{"user", &policy.Actor{ID: uuid.New(), Role: policy.RoleUser}, http.StatusForbidden},
		{"contributor", &policy.Actor{ID: uuid.New(), Role: policy.RoleContributor}, http.StatusForbidden},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			svc := new(MockUserService)

			w := httptest.NewRecorder()
			newAdminRouter(svc, tt.actor).ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/users", nil))

			assert.Equal(t, tt.want, w.Code)
			svc.AssertNotCalled(t, "ListUsers", mock.Anything, mock.Anything)
		})
	}
}

func TestListUsers_ParsesFilters(t *testing.T) {
	svc := new(MockUserService)
	admin := policy.Actor{ID: uuid.New(), Role: policy.RoleAdmin}
	svc.On("ListUsers", mock.Anything, user.ListUsersRequest{
		Page: 2, Limit: 10, Sort: "-createdAt", Role: "contributor", Search: "jane",
	}).Return([]user.UserDTO{{ID: uuid.New(), Name: "Jane", Role: "contributor"}}, int64(11), nil)

	w := httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodGet, "/users?page=2&limit=10&sort=-createdAt&role=contributor&search=jane", nil)
	newAdminRouter(svc, &admin).ServeHTTP(w, req)

	require.Equal(t, http.StatusOK, w.Code)
	body := decode(t, w)
	require.NotNil(t, body.Count)
	assert.Equal(t, 1, *body.Count)
	require.NotNil(t, body.Meta)
	assert.EqualValues(t, 11, body.Meta.Total)
	svc.AssertExpectations(t)
}

func TestGetUser_MalformedIDIsNotFound(t *testing.T) {
	svc := new(MockUserService)
	admin := policy.Actor{ID: uuid.New(), Role: policy.RoleAdmin}

	w := httptest.NewRecorder()
	newAdminRouter(svc, &admin).ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/users/42", nil))

	assert.Equal(t, http.StatusNotFound, w.Code)
	body := decode(t, w)
	require.NotNil(t, body.Error)
	assert.Equal(t, "USER_NOT_FOUND", body.Error.Code)
	svc.AssertNotCalled(t, "GetUser", mock.Anything, mock.Anything)
}

func TestCreateUser_ReturnsCreated(t *testing.T) {
	svc := new(MockUserService)
	admin := policy.Actor{ID: uuid.New(), Role: policy.RoleAdmin}
	created := &user.UserDTO{ID: uuid.New(), Name: "Root", Email: "root@example.com", Role: "admin"}
	svc.On("CreateUser", mock.Anything, user.CreateUserRequest{
		Name: "Root", Email: "root@example.com", Password: "secret123", Role: "admin",
	}).Return(created, nil)

	w := httptest.NewRecorder()
	payload := `{"name":"Root","email":"root@example.com","password":"secret123","role":"admin"}`
	newAdminRouter(svc, &admin).ServeHTTP(w, jsonRequest(http.MethodPost, "/users", payload))

	assert.Equal(t, http.StatusCreated, w.Code)
	assert.Equal(t, "/api/v1/users/"+created.ID.String(), w.Header().Get("Location"))
	svc.AssertExpectations(t)
}

func TestCreateUser_DuplicateEmail(t *testing.T) {
	svc := new(MockUserService)
	admin := policy.Actor{ID: uuid.New(), Role: policy.RoleAdmin}
	svc.On("CreateUser", mock.Anything, mock.Anything).Return(nil, user.ErrEmailAlreadyExists)

	w := httptest.NewRecorder()
	payload := `{"name":"Jane","email":"jane@example.com","password":"secret123"}`
	newAdminRouter(svc, &admin).ServeHTTP(w, jsonRequest(http.MethodPost, "/users", payload))

	assert.Equal(t, http.StatusBadRequest, w.Code)
}

func TestUpdateUser_PassesPartialBody(t *testing.T) {
	svc := new(MockUserService)
	admin := policy.Actor{ID: uuid.New(), Role: policy.RoleAdmin}
	id := uuid.New()
	svc.On("UpdateUser", mock.Anything, id, mock.MatchedBy(func(req user.UpdateUserRequest) bool {
		return req.Role != nil && *req.Role == "contributor" && req.Name == nil && req.Email == nil
	})).Return(&user.UserDTO{ID: id, Role: "contributor"}, nil)

	w := httptest.NewRecorder()
	newAdminRouter(svc, &admin).ServeHTTP(w, jsonRequest(http.MethodPut, "/users/"+id.String(), `{"role":"contributor"}`))

	assert.Equal(t, http.StatusOK, w.Code)
	svc.AssertExpectations(t)
}

func TestDeleteUser_StatusCodes(t *testing.T) {
	admin := policy.Actor{ID: uuid.New(), Role: policy.RoleAdmin}

	tests := []struct {
		name string
		err  error
		want int
	}{
		{"deleted", nil, http.StatusOK},
		{"missing", user.ErrUserNotFound, http.StatusNotFound},
		{"self", user.ErrCannotDeleteSelf, http.StatusBadRequest},
		{"owns content", user.ErrUserHasResources, http.StatusBadRequest},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			svc := new(MockUserService)
			id := uuid.New()
			svc.On("DeleteUser", mock.Anything, admin, id).Return(tt.err)

			w := httptest.NewRecorder()
			newAdminRouter(svc, &admin).ServeHTTP(w, httptest.NewRequest(http.MethodDelete, "/users/"+id.String(), nil))

			assert.Equal(t, tt.want, w.Code)
			svc.AssertExpectations(t)
		})
	}
}
