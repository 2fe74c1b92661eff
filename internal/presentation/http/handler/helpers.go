package handler

import (
	"github.com/gin-gonic/gin"
	"github.com/garzaro/uniformes-bff/internal/domain/entity"
	"github.com/garzaro/uniformes-bff/internal/presentation/http/middleware"
)

// GetOperator extracts the authenticated operator from the Gin context
func GetOperator(c *gin.Context) *entity.OperatorProfile {
	return middleware.OperatorFrom(c)
}

// GetSessionKey resolves the state-store key for this request. Admin
// requests are keyed by the operator identity so POS state follows the
// operator across devices; anonymous storefront requests are keyed by
// the session cookie.
func GetSessionKey(c *gin.Context) string {
	if operator := middleware.OperatorFrom(c); operator != nil {
		return "op:" + operator.ID
	}
	return middleware.SessionKeyFrom(c)
}
