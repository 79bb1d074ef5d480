package user

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/sirupsen/logrus"

	"tasktracker/internal/auth"
)

type UserController struct {
	service UserServiceInterface
}

func NewUserController(service UserServiceInterface) *UserController {
	return &UserController{service: service}
}

// Register handles user registration
func (uc *UserController) Register(c *gin.Context) {
	var req struct {
		Username string `json:"username" binding:"required"`
		Password string `json:"password" binding:"required"`
	}

	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid request body"})
		return
	}

	if err := uc.service.Register(req.Username, req.Password); err != nil {
		if errors.Is(err, ErrDuplicateUsername) {
			c.JSON(http.StatusConflict, gin.H{"error": "Username already exists"})
			return
		}
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to create user"})
		return
	}

	c.JSON(http.StatusCreated, gin.H{
		"message":  "User created successfully",
		"username": req.Username,
	})
}

// Login handles user login and hands back the session token, both as a
// cookie for browsers and in the response body for API clients.
func (uc *UserController) Login(c *gin.Context) {
	var req struct {
		Username string `json:"username" binding:"required"`
		Password string `json:"password" binding:"required"`
	}

	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid request body"})
		return
	}

	session, err := uc.service.Login(req.Username, req.Password)
	if err != nil {
		if errors.Is(err, ErrInvalidCredentials) {
			c.JSON(http.StatusUnauthorized, gin.H{"error": "Invalid credentials"})
			return
		}
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Login failed"})
		return
	}

	maxAge := int(session.ExpiresAt.Sub(session.LoginTime).Seconds())
	c.SetCookie(auth.SessionCookie, session.Token, maxAge, "/", "", false, true)

	c.JSON(http.StatusOK, gin.H{
		"token":      session.Token,
		"expires_in": maxAge,
	})
}

// Logout discards the current session. It always answers 200: a request
// without a valid session has nothing to discard.
func (uc *UserController) Logout(c *gin.Context) {
	if token := auth.TokenFromRequest(c); token != "" {
		uc.service.Logout(token)
	} else {
		logrus.Debug("Logout without a session token")
	}

	c.SetCookie(auth.SessionCookie, "", -1, "/", "", false, true)
	c.JSON(http.StatusOK, gin.H{"message": "Logged out"})
}
