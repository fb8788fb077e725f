package middleware

import (
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"

	"reelvault/internal/pkg/jwt"
	"reelvault/internal/pkg/response"
)

// SessionCookie carries the identity token for browser requests.
const SessionCookie = "__session"

// TokenVerifier turns an identity token into claims.
type TokenVerifier interface {
	ValidateToken(token string) (*jwt.Claims, error)
}

// Identify resolves the caller from "Authorization: Bearer" or the session
// cookie and stores user_id and role in the context. Requests without a valid
// token pass through anonymous; RequireUser and Gate decide what that means.
func Identify(verifier TokenVerifier) gin.HandlerFunc {
	return func(c *gin.Context) {
		token := TokenFromRequest(c.Request)
		if token == "" {
			c.Next()
			return
		}

		claims, err := verifier.ValidateToken(token)
		if err != nil {
			c.Next()
			return
		}

		c.Set("user_id", claims.UserID)
		c.Set("role", claims.Role)
		c.Next()
	}
}

// RequireUser rejects anonymous requests with 401.
func RequireUser() gin.HandlerFunc {
	return func(c *gin.Context) {
		if c.GetString("user_id") == "" {
			response.Abort(c, http.StatusUnauthorized, response.CodeUnauthorized, "Authentication required")
			return
		}
		c.Next()
	}
}

// TokenFromRequest prefers the Authorization header over the cookie.
func TokenFromRequest(r *http.Request) string {
	if header := r.Header.Get("Authorization"); header != "" {
		parts := strings.SplitN(header, " ", 2)
		if len(parts) == 2 && strings.EqualFold(parts[0], "bearer") {
			return strings.TrimSpace(parts[1])
		}
		return ""
	}
	if cookie, err := r.Cookie(SessionCookie); err == nil {
		return strings.TrimSpace(cookie.Value)
	}
	return ""
}
