// Package handlers contains the gin form handlers. They parse input, call
// the services and map domain errors back onto the originating form.
package handlers

import (
	"errors"
	"net/http"

	"bbs-manager/internal/middleware"
	"bbs-manager/internal/service"

	"github.com/gin-contrib/sessions"
	"github.com/gin-gonic/gin"
	"go.uber.org/zap"
)

// AuthHandler serves registration, login and logout.
type AuthHandler struct {
	Auth service.AuthService
	Log  *zap.Logger
}

type registerForm struct {
	Name     string `form:"name"`
	Email    string `form:"email"`
	Password string `form:"password"`
	Phone    string `form:"phone"`
	Address  string `form:"address"`
	DOB      string `form:"dob"`
}

func (h *AuthHandler) ShowRegister(c *gin.Context) {
	render(c, http.StatusOK, "register.html", gin.H{"error": ""})
}

func (h *AuthHandler) Register(c *gin.Context) {
	var form registerForm
	if err := c.ShouldBind(&form); err != nil {
		render(c, http.StatusBadRequest, "register.html", gin.H{"error": "Invalid form data"})
		return
	}

	_, err := h.Auth.Register(c.Request.Context(), service.RegisterInput{
		Name:     form.Name,
		Email:    form.Email,
		Password: form.Password,
		Phone:    form.Phone,
		Address:  form.Address,
		DOB:      form.DOB,
	})

	switch {
	case err == nil:
		c.Redirect(http.StatusFound, "/login")
	case errors.Is(err, service.ErrDuplicateEmail):
		render(c, http.StatusBadRequest, "register.html", gin.H{"error": "Email already exists"})
	case errors.Is(err, service.ErrInvalidInput):
		render(c, http.StatusBadRequest, "register.html", gin.H{"error": err.Error()})
	default:
		h.Log.Error("registration failed", zap.Error(err))
		render(c, http.StatusInternalServerError, "register.html", gin.H{"error": "Registration failed, please try again"})
	}
}

func (h *AuthHandler) ShowLogin(c *gin.Context) {
	render(c, http.StatusOK, "login.html", gin.H{"error": ""})
}

type loginForm struct {
	Email    string `form:"email"`
	Password string `form:"password"`
}

func (h *AuthHandler) Login(c *gin.Context) {
	var form loginForm
	if err := c.ShouldBind(&form); err != nil {
		render(c, http.StatusBadRequest, "login.html", gin.H{"error": "Invalid form data"})
		return
	}

	user, err := h.Auth.Authenticate(c.Request.Context(), form.Email, form.Password)
	if err != nil {
		render(c, http.StatusBadRequest, "login.html", gin.H{"error": "Invalid credentials"})
		return
	}

	sess := sessions.Default(c)
	sess.Set(middleware.SessionUserID, user.ID)
	sess.Set(middleware.SessionUserName, user.Name)
	sess.Set(middleware.SessionRole, user.Role)
	if err := sess.Save(); err != nil {
		h.Log.Error("session save failed", zap.Error(err))
		render(c, http.StatusInternalServerError, "login.html", gin.H{"error": "Login failed, please try again"})
		return
	}

	c.Redirect(http.StatusFound, "/dashboard")
}

func (h *AuthHandler) Logout(c *gin.Context) {
	sess := sessions.Default(c)
	sess.Clear()
	_ = sess.Save()
	c.Redirect(http.StatusFound, "/login")
}
