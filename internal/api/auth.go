package api

import (
	"net/http"

	"foolivery/internal/service"
	"foolivery/internal/session"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"
)

// register creates an account and starts a session for it
func (h *Handler) register(c *gin.Context) {
	var creds service.Credentials
	if err := c.ShouldBindJSON(&creds); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"message": "Invalid input data"})
		return
	}

	user, err := h.authService.Register(c.Request.Context(), &creds)
	if err != nil {
		respondError(c, err)
		return
	}

	if err := h.sessions.Login(c, *user); err != nil {
		h.logger.Error("Failed to start session after registration", zap.Int64("user_id", user.ID), zap.Error(err))
		c.JSON(http.StatusInternalServerError, gin.H{"message": "Error during login after registration"})
		return
	}

	c.JSON(http.StatusCreated, gin.H{
		"message": "User registered successfully",
		"user":    user,
	})
}

// login verifies credentials and starts a session
func (h *Handler) login(c *gin.Context) {
	var creds service.Credentials
	if err := c.ShouldBindJSON(&creds); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"message": "Invalid input data"})
		return
	}

	user, err := h.authService.Login(c.Request.Context(), &creds)
	if err != nil {
		respondError(c, err)
		return
	}

	if err := h.sessions.Login(c, *user); err != nil {
		h.logger.Error("Failed to start session", zap.Int64("user_id", user.ID), zap.Error(err))
		c.JSON(http.StatusInternalServerError, gin.H{"message": "Error during login"})
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"message": "Login successful",
		"user":    user,
	})
}

func (h *Handler) logout(c *gin.Context) {
	if err := h.sessions.Logout(c); err != nil {
		h.logger.Error("Failed to destroy session", zap.Error(err))
		c.JSON(http.StatusInternalServerError, gin.H{"message": "Error during logout"})
		return
	}
	c.JSON(http.StatusOK, gin.H{"message": "Logout successful"})
}

func (h *Handler) profile(c *gin.Context) {
	user, err := h.authService.Profile(c.Request.Context(), session.UserID(c))
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, user)
}
