package middleware

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/garzaro/uniformes-bff/internal/config"
	"github.com/garzaro/uniformes-bff/pkg/utils"
)

// ContextSessionKey is the context key holding the storefront session key.
const ContextSessionKey = "session_key"

// SessionMiddleware reads the session cookie, issuing a fresh key and
// cookie when the visitor has none. Every request downstream can rely on
// a non-empty session key.
func SessionMiddleware(cfg *config.SessionConfig) gin.HandlerFunc {
	maxAge := int(cfg.TTLHours.Seconds())
	return func(c *gin.Context) {
		key, err := c.Cookie(cfg.CookieName)
		if err != nil || key == "" {
			key = utils.NewSessionKey()
			http.SetCookie(c.Writer, &http.Cookie{
				Name:     cfg.CookieName,
				Value:    key,
				Path:     "/",
				MaxAge:   maxAge,
				Secure:   cfg.CookieSecure,
				HttpOnly: true,
				SameSite: http.SameSiteLaxMode,
			})
		}
		c.Set(ContextSessionKey, key)
		c.Next()
	}
}

// SessionKeyFrom returns the session key placed by SessionMiddleware, or
// an empty string when the middleware did not run.
func SessionKeyFrom(c *gin.Context) string {
	return c.GetString(ContextSessionKey)
}
