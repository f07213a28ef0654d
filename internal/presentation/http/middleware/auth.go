package middleware

import (
	"context"
	"strings"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"github.com/sangkips/xylem-api/internal/domain/entity"
	"github.com/sangkips/xylem-api/internal/presentation/http/dto/response"
	"github.com/sangkips/xylem-api/pkg/apperror"
	"github.com/sangkips/xylem-api/pkg/utils"
)

// context keys
const (
	UserIDKey         = "user_id"
	UsernameKey       = "username"
	IsAdminKey        = "is_admin"
	IsMarketingRepKey = "is_marketing_rep"
	MarketingRepKey   = "marketing_rep"
)

// AuthMiddleware creates a JWT authentication middleware
func AuthMiddleware(jwtManager *utils.JWTManager) gin.HandlerFunc {
	return func(c *gin.Context) {
		authHeader := c.GetHeader("Authorization")
		if authHeader == "" {
			response.Unauthorized(c, "Authentication credentials were not provided.")
			c.Abort()
			return
		}

		// Extract token from "Bearer <token>"
		parts := strings.Split(authHeader, " ")
		if len(parts) != 2 || strings.ToLower(parts[0]) != "bearer" {
			response.Unauthorized(c, "Invalid authorization header format")
			c.Abort()
			return
		}

		claims, err := jwtManager.ValidateAccessToken(parts[1])
		if err != nil {
			response.Unauthorized(c, "Invalid or expired token")
			c.Abort()
			return
		}

		c.Set(UserIDKey, claims.UserID)
		c.Set(UsernameKey, claims.Username)
		c.Set(IsAdminKey, claims.IsAdmin)
		c.Set(IsMarketingRepKey, claims.IsMarketingRep)

		c.Next()
	}
}

// RequireAdmin rejects users without the administrator flag
func RequireAdmin() gin.HandlerFunc {
	return func(c *gin.Context) {
		if !c.GetBool(IsAdminKey) {
			response.Error(c, apperror.NewForbiddenError("User is not an Admin."))
			c.Abort()
			return
		}
		c.Next()
	}
}

// RepResolver finds the representative profile behind a user account
type RepResolver interface {
	ForUser(ctx context.Context, userID uuid.UUID) (*entity.MarketingRepresentative, error)
}

// RequireMarketingRep rejects users without the representative flag and
// stores their profile under MarketingRepKey.
func RequireMarketingRep(resolver RepResolver) gin.HandlerFunc {
	return func(c *gin.Context) {
		userID, ok := CurrentUserID(c)
		if !ok || !c.GetBool(IsMarketingRepKey) {
			response.Error(c, apperror.NewForbiddenError("User is not a Marketing Representative."))
			c.Abort()
			return
		}
		rep, err := resolver.ForUser(c.Request.Context(), userID)
		if err != nil {
			response.Error(c, err)
			c.Abort()
			return
		}
		c.Set(MarketingRepKey, rep)
		c.Next()
	}
}

// CurrentUserID returns the authenticated user's id
func CurrentUserID(c *gin.Context) (uuid.UUID, bool) {
	v, exists := c.Get(UserIDKey)
	if !exists {
		return uuid.Nil, false
	}
	id, ok := v.(uuid.UUID)
	return id, ok
}

// CurrentRep returns the profile stored by RequireMarketingRep
func CurrentRep(c *gin.Context) *entity.MarketingRepresentative {
	v, exists := c.Get(MarketingRepKey)
	if !exists {
		return nil
	}
	rep, _ := v.(*entity.MarketingRepresentative)
	return rep
}
