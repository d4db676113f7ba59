package handler

import (
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"

	"bookmarket-backend/internal/domains/user"
	"bookmarket-backend/internal/shared/middleware"
	"bookmarket-backend/internal/shared/response"
	"bookmarket-backend/internal/shared/utils"
)

// UserHandler xử lý HTTP requests cho auth và quản lý user (admin)
type UserHandler struct {
	service      user.Service
	cookieName   string
	secureCookie bool
}

func NewUserHandler(service user.Service, cookieName string, secureCookie bool) *UserHandler {
	return &UserHandler{
		service:      service,
		cookieName:   cookieName,
		secureCookie: secureCookie,
	}
}

// ========================================
// AUTHENTICATION ENDPOINTS
// ========================================

// Register xử lý POST /auth/register
func (h *UserHandler) Register(c *gin.Context) {
	// STEP 1: PARSE REQUEST BODY
	var req user.RegisterRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.BadRequest(c, "Invalid request body")
		return
	}

	// STEP 2: CALL SERVICE LAYER
	resp, err := h.service.Register(c.Request.Context(), req)
	if err != nil {
		response.FromError(c, err)
		return
	}

	// STEP 3: SET COOKIE + RESPONSE
	h.setTokenCookie(c, resp.Token, resp.ExpiresAt)
	response.Success(c, http.StatusCreated, resp)
}

// Login xử lý POST /auth/login
func (h *UserHandler) Login(c *gin.Context) {
	var req user.LoginRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.BadRequest(c, "Invalid request body")
		return
	}

	resp, err := h.service.Login(c.Request.Context(), req)
	if err != nil {
		response.FromError(c, err)
		return
	}

	h.setTokenCookie(c, resp.Token, resp.ExpiresAt)
	response.Success(c, http.StatusOK, resp)
}

// GetMe xử lý GET /auth/me
func (h *UserHandler) GetMe(c *gin.Context) {
	actor, err := middleware.MustActor(c)
	if err != nil {
		response.FromError(c, err)
		return
	}

	me, err := h.service.GetMe(c.Request.Context(), actor.ID)
	if err != nil {
		response.FromError(c, err)
		return
	}
	response.Success(c, http.StatusOK, me)
}

// Logout xử lý GET /auth/logout: xóa cookie token
func (h *UserHandler) Logout(c *gin.Context) {
	c.SetSameSite(http.SameSiteStrictMode)
	c.SetCookie(h.cookieName, "none", 10, "/", "", h.secureCookie, true)
	response.Success(c, http.StatusOK, gin.H{})
}

func (h *UserHandler) setTokenCookie(c *gin.Context, token string, expiresAt time.Time) {
	maxAge := int(time.Until(expiresAt).Seconds())
	c.SetSameSite(http.SameSiteStrictMode)
	c.SetCookie(h.cookieName, token, maxAge, "/", "", h.secureCookie, true)
}

// ========================================
// ADMIN ENDPOINTS (RequireRoles(admin) ở router)
// ========================================

// ListUsers xử lý GET /users
func (h *UserHandler) ListUsers(c *gin.Context) {
	// STEP 1: PARSE QUERY
	page := utils.ParsePagination(c)
	req := user.ListUsersRequest{
		Page:   page.Page,
		Limit:  page.Limit,
		Sort:   c.Query("sort"),
		Role:   c.Query("role"),
		Search: c.Query("search"),
	}

	// STEP 2: CALL SERVICE
	users, total, err := h.service.ListUsers(c.Request.Context(), req)
	if err != nil {
		response.FromError(c, err)
		return
	}

	// STEP 3: RESPONSE
	response.SuccessWithMeta(c, http.StatusOK, len(users), users, response.NewMeta(req.Page, req.Limit, total))
}

// GetUser xử lý GET /users/:id
func (h *UserHandler) GetUser(c *gin.Context) {
	id, ok := parseID(c)
	if !ok {
		return
	}

	u, err := h.service.GetUser(c.Request.Context(), id)
	if err != nil {
		response.FromError(c, err)
		return
	}
	response.Success(c, http.StatusOK, u)
}

// CreateUser xử lý POST /users
func (h *UserHandler) CreateUser(c *gin.Context) {
	var req user.CreateUserRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.BadRequest(c, "Invalid request body")
		return
	}

	u, err := h.service.CreateUser(c.Request.Context(), req)
	if err != nil {
		response.FromError(c, err)
		return
	}

	c.Header("Location", "/api/v1/users/"+u.ID.String())
	response.Success(c, http.StatusCreated, u)
}

// UpdateUser xử lý PUT /users/:id
func (h *UserHandler) UpdateUser(c *gin.Context) {
	id, ok := parseID(c)
	if !ok {
		return
	}

	var req user.UpdateUserRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.BadRequest(c, "Invalid request body")
		return
	}

	u, err := h.service.UpdateUser(c.Request.Context(), id, req)
	if err != nil {
		response.FromError(c, err)
		return
	}
	response.Success(c, http.StatusOK, u)
}

// DeleteUser xử lý DELETE /users/:id
func (h *UserHandler) DeleteUser(c *gin.Context) {
	actor, err := middleware.MustActor(c)
	if err != nil {
		response.FromError(c, err)
		return
	}
	id, ok := parseID(c)
	if !ok {
		return
	}

	if err := h.service.DeleteUser(c.Request.Context(), actor, id); err != nil {
		response.FromError(c, err)
		return
	}
	response.Success(c, http.StatusOK, gin.H{})
}

func parseID(c *gin.Context) (uuid.UUID, bool) {
	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		response.FromError(c, user.ErrUserNotFound)
		return uuid.Nil, false
	}
	return id, true
}
