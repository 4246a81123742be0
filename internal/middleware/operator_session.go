package middleware

import (
	"errors"
	"fmt"
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/fsel/admin-console-api/pkg/jwt"
)

const (
	// OperatorSessionCookieName is the cookie carrying the console session.
	OperatorSessionCookieName = "operator_session"

	// OperatorSessionContextKey stores the validated session in request context.
	OperatorSessionContextKey = "operator_session"
)

var (
	ErrOperatorSessionNotFound = errors.New("operator session not found in context")
	ErrInvalidOperatorSession  = errors.New("invalid operator session type")
)

// OperatorSession is the authenticated operator attached to a request.
type OperatorSession struct {
	Username  string `json:"username"`
	Role      string `json:"role"`
	ExpiresAt int64  `json:"expiresAt"`
	IssuedAt  int64  `json:"issuedAt"`
}

// OperatorSessionMiddleware validates the session cookie and stores the
// session in context. Requests without a valid session never reach the
// gateway-touching handlers.
func OperatorSessionMiddleware(tokenManager *jwt.TokenManager, cookieDomain string, cookieSecure bool) gin.HandlerFunc {
	return func(c *gin.Context) {
		cookie, err := c.Cookie(OperatorSessionCookieName)
		if err != nil {
			_ = c.Error(fmt.Errorf("missing operator session cookie")) //nolint:errcheck
			c.JSON(http.StatusUnauthorized, gin.H{"error": "Unauthorized"})
			c.Abort()
			return
		}

		claims, err := tokenManager.ValidateToken(cookie)
		if err != nil {
			_ = c.Error(fmt.Errorf("invalid operator session token: %w", err)) //nolint:errcheck
			ClearOperatorSessionCookie(c, cookieDomain, cookieSecure)
			if errors.Is(err, jwt.ErrExpiredToken) {
				c.JSON(http.StatusUnauthorized, gin.H{"error": "Session expired"})
			} else {
				c.JSON(http.StatusUnauthorized, gin.H{"error": "Unauthorized"})
			}
			c.Abort()
			return
		}

		session := &OperatorSession{
			Username:  claims.Username,
			Role:      claims.Role,
			ExpiresAt: claims.ExpiresAt.Unix(),
			IssuedAt:  claims.IssuedAt.Unix(),
		}

		c.Set(OperatorSessionContextKey, session)
		c.Next()
	}
}

func GetOperatorSession(c *gin.Context) (*OperatorSession, error) {
	val, exists := c.Get(OperatorSessionContextKey)
	if !exists {
		return nil, ErrOperatorSessionNotFound
	}

	session, ok := val.(*OperatorSession)
	if !ok {
		return nil, ErrInvalidOperatorSession
	}

	return session, nil
}

func SetOperatorSessionCookie(c *gin.Context, token string, ttlSeconds int, domain string, secure bool) {
	c.SetSameSite(http.SameSiteLaxMode)
	c.SetCookie(
		OperatorSessionCookieName,
		token,
		ttlSeconds,
		"/",
		domain,
		secure,
		true,
	)
}

func ClearOperatorSessionCookie(c *gin.Context, domain string, secure bool) {
	c.SetSameSite(http.SameSiteLaxMode)
	c.SetCookie(
		OperatorSessionCookieName,
		"",
		-1,
		"/",
		domain,
		secure,
		true,
	)
}
