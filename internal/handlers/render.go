package handlers

import (
	"bbs-manager/internal/middleware"

	"github.com/gin-gonic/gin"
)

// render wraps c.HTML and makes the signed-in user available to every
// template.
func render(c *gin.Context, status int, tmpl string, data gin.H) {
	if data == nil {
		data = gin.H{}
	}

	if user, ok := middleware.CurrentUser(c); ok {
		data["CurrentUserName"] = user.Name
		data["CurrentUserRole"] = user.Role
	}

	c.HTML(status, tmpl, data)
}
