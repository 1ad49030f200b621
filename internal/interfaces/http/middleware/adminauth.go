package middleware

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/shopfront/backend/internal/interfaces/http/dto"
)

// CredentialChecker verifies a username/password pair.
type CredentialChecker interface {
	Authenticate(username, password string) error
}

// SessionValidator verifies a session token and returns the username
// it belongs to.
type SessionValidator interface {
	ValidateSessionUser(token string) (string, error)
}

const adminUserKey = "admin_user"

// AdminBasicAuth guards routes with HTTP Basic authentication. Failed
// attempts get a WWW-Authenticate challenge so browsers prompt for
// credentials.
func AdminBasicAuth(checker CredentialChecker, realm string) gin.HandlerFunc {
	if realm == "" {
		realm = "Admin"
	}
	return func(c *gin.Context) {
		username, password, ok := c.Request.BasicAuth()
		if !ok || checker.Authenticate(username, password) != nil {
			c.Header("WWW-Authenticate", `Basic realm="`+realm+`"`)
			c.AbortWithStatusJSON(http.StatusUnauthorized,
				dto.NewErrorResponse("UNAUTHORIZED", "Authentication required"))
			return
		}
		c.Set(adminUserKey, username)
		c.Next()
	}
}

// AdminSessionGuard guards routes with the signed session cookie.
// Requests without a valid session are redirected to the login page.
func AdminSessionGuard(validator SessionValidator, cookieName, loginPath string) gin.HandlerFunc {
	return func(c *gin.Context) {
		token, err := c.Cookie(cookieName)
		if err != nil || token == "" {
			c.Redirect(http.StatusFound, loginPath)
			c.Abort()
			return
		}

		username, err := validator.ValidateSessionUser(token)
		if err != nil {
			c.Redirect(http.StatusFound, loginPath)
			c.Abort()
			return
		}

		c.Set(adminUserKey, username)
		c.Next()
	}
}

// AdminUser returns the authenticated admin username, if any.
func AdminUser(c *gin.Context) string {
	return c.GetString(adminUserKey)
}
