package api

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"

	"lessoncast/auth"
	"lessoncast/types"
)

type authController struct {
	sessions *auth.Sessions
}

// Register registers account and session endpoints.
func (ac *authController) Register(r *gin.Engine) {
	g := r.Group("/api/auth")
	g.POST("/signup", ac.handleSignup)
	g.POST("/login", ac.handleLogin)
	g.Use(withIdentity(ac.sessions))
	g.GET("/me", ac.handleMe)
	g.POST("/logout", ac.handleLogout)
}

// SignupRequest registers a new account. Role defaults to student; elevated
// roles are assigned out of band.
type SignupRequest struct {
	Email    string `json:"email" binding:"required,email"`
	Name     string `json:"name" binding:"required"`
	Password string `json:"password" binding:"required,min=8"`
}

// LoginRequest exchanges credentials for a session token.
type LoginRequest struct {
	Email    string `json:"email" binding:"required"`
	Password string `json:"password" binding:"required"`
}

func (ac *authController) handleSignup(c *gin.Context) {
	var req SignupRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	u, err := ac.sessions.Signup(c.Request.Context(), req.Email, req.Name, req.Password, types.RoleStudent)
	if err != nil {
		c.JSON(http.StatusConflict, gin.H{"error": err.Error()})
		return
	}
	c.JSON(http.StatusCreated, gin.H{"user": u})
}

func (ac *authController) handleLogin(c *gin.Context) {
	var req LoginRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	token, u, err := ac.sessions.Login(c.Request.Context(), req.Email, req.Password)
	if err != nil {
		if errors.Is(err, auth.ErrInvalidCredentials) {
			c.JSON(http.StatusUnauthorized, gin.H{"error": "invalid credentials"})
			return
		}
		c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
		return
	}

	c.JSON(http.StatusOK, gin.H{"token": token, "user": u})
}

func (ac *authController) handleMe(c *gin.Context) {
	ident := identity(c)
	if ident == nil {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "not signed in"})
		return
	}
	c.JSON(http.StatusOK, gin.H{"user_id": ident.UserID, "role": ident.Role})
}

func (ac *authController) handleLogout(c *gin.Context) {
	if token := sessionToken(c); token != "" {
		ac.sessions.Logout(c.Request.Context(), token)
	}
	c.JSON(http.StatusOK, gin.H{"status": "signed out"})
}
