package middleware

import (
	"strings"

	"github.com/gin-gonic/gin"
	"github.com/garzaro/uniformes-bff/internal/domain/entity"
	"github.com/garzaro/uniformes-bff/internal/presentation/http/dto/response"
	"github.com/garzaro/uniformes-bff/pkg/utils"
)

// Context keys set by the auth middleware.
const (
	ContextOperator = "operator"
)

// AuthMiddleware validates the bearer token and places the operator
// profile in the request context.
func AuthMiddleware(jwtManager *utils.JWTManager) gin.HandlerFunc {
	return func(c *gin.Context) {
		authHeader := c.GetHeader("Authorization")
		if authHeader == "" {
			response.Unauthorized(c, "Authorization header is required")
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

		c.Set(ContextOperator, &entity.OperatorProfile{
			ID:        claims.OperatorID,
			Email:     claims.Email,
			Name:      claims.Name,
			Superuser: claims.Superuser,
			SchoolIDs: claims.SchoolIDs,
		})

		c.Next()
	}
}

// OptionalAuthMiddleware tries to authenticate but doesn't fail if no token is provided
func OptionalAuthMiddleware(jwtManager *utils.JWTManager) gin.HandlerFunc {
	return func(c *gin.Context) {
		authHeader := c.GetHeader("Authorization")
		if authHeader == "" {
			c.Next()
			return
		}

		parts := strings.Split(authHeader, " ")
		if len(parts) != 2 || strings.ToLower(parts[0]) != "bearer" {
			c.Next()
			return
		}

		claims, err := jwtManager.ValidateAccessToken(parts[1])
		if err != nil {
			c.Next()
			return
		}

		c.Set(ContextOperator, &entity.OperatorProfile{
			ID:        claims.OperatorID,
			Email:     claims.Email,
			Name:      claims.Name,
			Superuser: claims.Superuser,
			SchoolIDs: claims.SchoolIDs,
		})

		c.Next()
	}
}

// RequireSuperuser blocks operators without the superuser flag.
func RequireSuperuser() gin.HandlerFunc {
	return func(c *gin.Context) {
		operator := OperatorFrom(c)
		if operator == nil || !operator.Superuser {
			response.Forbidden(c, "Superuser access required")
			c.Abort()
			return
		}
		c.Next()
	}
}

// RequireSchoolGrant blocks operators that have no grant for the school
// named in the :schoolId path segment.
func RequireSchoolGrant() gin.HandlerFunc {
	return func(c *gin.Context) {
		operator := OperatorFrom(c)
		if operator == nil {
			response.Forbidden(c, "Access denied")
			c.Abort()
			return
		}
		schoolID := c.Param("schoolId")
		if schoolID != "" && !operator.HasGrant(schoolID) {
			response.Forbidden(c, "No access to this school")
			c.Abort()
			return
		}
		c.Next()
	}
}

// OperatorFrom returns the authenticated operator, or nil for anonymous
// requests.
func OperatorFrom(c *gin.Context) *entity.OperatorProfile {
	value, exists := c.Get(ContextOperator)
	if !exists {
		return nil
	}
	operator, ok := value.(*entity.OperatorProfile)
	if !ok {
		return nil
	}
	return operator
}
