package middleware

import (
	"context"
	"strings"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"github.com/rs/zerolog/log"

	"bookmarket-backend/internal/shared/apperror"
	"bookmarket-backend/internal/shared/policy"
	"bookmarket-backend/internal/shared/response"
	"bookmarket-backend/pkg/jwt"
)

const (
	ContextActor  = "actor"
	ContextUserID = "user_id"
	ContextRole   = "role"
)

// TokenValidator is satisfied by *jwt.Manager.
type TokenValidator interface {
	ValidateAccessToken(token string) (*jwt.Claims, error)
}

// IdentityResolver loads the current user so the stored role wins over
// whatever the token carried at issue time.
type IdentityResolver interface {
	ResolveActor(ctx context.Context, userID uuid.UUID) (policy.Actor, error)
}

// Auth xác thực JWT token (Bearer header hoặc cookie) và gắn Actor vào context
func Auth(tokens TokenValidator, identities IdentityResolver, cookieName string) gin.HandlerFunc {
	return func(c *gin.Context) {
		// 1. Lấy token
		token := bearerToken(c.GetHeader("Authorization"))
		if token == "" && cookieName != "" {
			token, _ = c.Cookie(cookieName)
		}
		if token == "" {
			response.Unauthorized(c, "Not authorized to access this route")
			c.Abort()
			return
		}

		// 2. Verify và parse JWT
		claims, err := tokens.ValidateAccessToken(token)
		if err != nil {
			log.Debug().Err(err).Msg("access token rejected")
			response.Unauthorized(c, "Not authorized to access this route")
			c.Abort()
			return
		}

		userID, err := uuid.Parse(claims.UserID)
		if err != nil {
			response.Unauthorized(c, "Not authorized to access this route")
			c.Abort()
			return
		}

		// 3. Load user từ DB, role trong DB là nguồn sự thật
		actor, err := identities.ResolveActor(c.Request.Context(), userID)
		if err != nil {
			if apperror.Is(err, apperror.KindNotFound) {
				response.Unauthorized(c, "Not authorized to access this route")
				c.Abort()
				return
			}
			response.FromError(c, err)
			return
		}

		c.Set(ContextActor, actor)
		c.Set(ContextUserID, actor.ID)
		c.Set(ContextRole, string(actor.Role))

		c.Next()
	}
}

// RequireRoles chặn request nếu role của actor không nằm trong danh sách
func RequireRoles(roles ...policy.Role) gin.HandlerFunc {
	return func(c *gin.Context) {
		actor, ok := CurrentActor(c)
		if !ok {
			response.Unauthorized(c, "Not authorized to access this route")
			c.Abort()
			return
		}

		if !policy.HasRole(actor, roles...) {
			response.Forbidden(c, "User role "+string(actor.Role)+" is not authorized to access this route")
			c.Abort()
			return
		}

		c.Next()
	}
}

// CurrentActor returns the actor set by Auth.
func CurrentActor(c *gin.Context) (policy.Actor, bool) {
	v, exists := c.Get(ContextActor)
	if !exists {
		return policy.Actor{}, false
	}
	actor, ok := v.(policy.Actor)
	return actor, ok
}

// MustActor is CurrentActor for handlers mounted behind Auth.
func MustActor(c *gin.Context) (policy.Actor, error) {
	actor, ok := CurrentActor(c)
	if !ok {
		return policy.Actor{}, apperror.Unauthorized("Not authorized to access this route")
	}
	return actor, nil
}

func bearerToken(header string) string {
	parts := strings.SplitN(header, " ", 2)
	if len(parts) != 2 || !strings.EqualFold(parts[0], "Bearer") {
		return ""
	}
	return strings.TrimSpace(parts[1])
}
