package handler

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"

	"plantstore/internal/domain"
	"plantstore/internal/service"
)

type registerRequest struct {
	Name     string `json:"name" binding:"required"`
	Email    string `json:"email" binding:"required,email"`
	Password string `json:"password" binding:"required"`
}

type loginRequest struct {
	Email    string `json:"email" binding:"required"`
	Password string `json:"password" binding:"required"`
}

type UserHandler struct {
	auth service.AuthService
	log  *zap.Logger
}

func NewUserHandler(auth service.AuthService, log *zap.Logger) *UserHandler {
	return &UserHandler{
		auth: auth,
		log:  log,
	}
}

func (h *UserHandler) Register(c *gin.Context) {
	var req registerRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusOK, gin.H{"success": false, "message": "Please enter a valid email"})
		return
	}

	user, tok, err := h.auth.Register(c.Request.Context(), req.Name, req.Email, req.Password)
	if err != nil {
		h.authFailure(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"success": true,
		"token":   tok,
		"role":    "user",
		"user":    userEnvelope(user),
		"message": "User registered successfully",
	})
}

func (h *UserHandler) Login(c *gin.Context) {
	var req loginRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusOK, gin.H{"success": false, "message": "Invalid credentials"})
		return
	}

	user, tok, err := h.auth.Login(c.Request.Context(), req.Email, req.Password)
	if err != nil {
		h.authFailure(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"success": true,
		"token":   tok,
		"role":    "user",
		"user":    userEnvelope(user),
		"message": "User login successful",
	})
}

func (h *UserHandler) AdminLogin(c *gin.Context) {
	var req loginRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusOK, gin.H{"success": false, "message": "Invalid admin credentials"})
		return
	}

	tok, err := h.auth.LoginAdmin(c.Request.Context(), req.Email, req.Password)
	if err != nil {
		if errors.Is(err, domain.ErrInvalidCredentials) {
			c.JSON(http.StatusOK, gin.H{"success": false, "message": "Invalid admin credentials"})
			return
		}
		h.log.Error("Admin login failed", zap.Error(err))
		h.fail(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"success": true,
		"token":   tok,
		"role":    "admin",
		"message": "Admin login successful",
	})
}

func (h *UserHandler) AllUsers(c *gin.Context) {
	users, err := h.auth.Users(c.Request.Context())
	if err != nil {
		h.log.Error("Failed to list users", zap.Error(err))
		h.fail(c, err)
		return
	}

	c.JSON(http.StatusOK, users)
}

func (h *UserHandler) UserByID(c *gin.Context) {
	user, err := h.auth.UserByID(c.Request.Context(), c.Param("id"))
	if err != nil {
		h.fail(c, err)
		return
	}

	c.JSON(http.StatusOK, user)
}

// authFailure reports expected login/registration outcomes in the
// success envelope with a 200, keeping the store's client contract;
// unexpected errors fall through to the taxonomy mapping.
func (h *UserHandler) authFailure(c *gin.Context, err error) {
	switch {
	case errors.Is(err, domain.ErrUserExists):
		c.JSON(http.StatusOK, gin.H{"success": false, "message": "User already exists"})
	case errors.Is(err, domain.ErrInvalidCredentials):
		c.JSON(http.StatusOK, gin.H{"success": false, "message": "Invalid credentials"})
	case errors.Is(err, domain.ErrValidation):
		c.JSON(http.StatusOK, gin.H{"success": false, "message": err.Error()})
	default:
		h.log.Error("Auth request failed", zap.Error(err))
		h.fail(c, err)
	}
}

func (h *UserHandler) fail(c *gin.Context, err error) {
	c.JSON(statusForError(err), gin.H{
		"success": false,
		"message": err.Error(),
	})
}

func userEnvelope(user *domain.User) gin.H {
	return gin.H{
		"id":    user.ID,
		"name":  user.Name,
		"email": user.Email,
	}
}
