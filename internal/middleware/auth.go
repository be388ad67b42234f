// Package middleware provides the request-pipeline filters: session-based
// authentication, current-user injection and request logging.
package middleware

import (
	"net/http"

	"bbs-manager/internal/service"

	"github.com/gin-contrib/sessions"
	"github.com/gin-gonic/gin"
)

// Session keys. Only these three values are bound to a session.
const (
	SessionUserID   = "user_id"
	SessionUserName = "user_name"
	SessionRole     = "role"
)

// ctxUserKey is the gin context key holding the resolved service.UserContext.
const ctxUserKey = "CurrentUser"

// InjectUser resolves the session into a UserContext for all routes, public
// ones included, so templates can show who is signed in.
func InjectUser() gin.HandlerFunc {
	return func(c *gin.Context) {
		sess := sessions.Default(c)

		if uid, ok := sess.Get(SessionUserID).(uint); ok && uid > 0 {
			name, _ := sess.Get(SessionUserName).(string)
			role, _ := sess.Get(SessionRole).(string)
			c.Set(ctxUserKey, service.UserContext{UserID: uid, Name: name, Role: role})
		}

		c.Next()
	}
}

// RequireAuth aborts with a redirect to the sign-in page when the request
// carries no resolvable session. Protected handlers behind it can rely on
// CurrentUser succeeding.
func RequireAuth() gin.HandlerFunc {
	return func(c *gin.Context) {
		if _, ok := CurrentUser(c); !ok {
			c.Redirect(http.StatusFound, "/login")
			c.Abort()
			return
		}
		c.Next()
	}
}

// CurrentUser returns the identity bound to the request, if any.
func CurrentUser(c *gin.Context) (service.UserContext, bool) {
	v, ok := c.Get(ctxUserKey)
	if !ok {
		return service.UserContext{}, false
	}
	user, ok := v.(service.UserContext)
	return user, ok
}

// SetCurrentUser binds an identity to the request context directly. Exists
// for handler tests that bypass the session store.
func SetCurrentUser(c *gin.Context, user service.UserContext) {
	c.Set(ctxUserKey, user)
}
