package handlers

import (
	"net/http"

	"wellness-go/internal/models"

	"github.com/gin-contrib/sessions"
	"github.com/gin-gonic/gin"
	"go.uber.org/zap"
)

// AuthHandler attaches and clears the signed-in identity. Authentication
// itself happens against the upstream service; this layer only binds the
// confirmed identity to the cookie session.
type AuthHandler struct {
	log *zap.Logger
}

func NewAuthHandler(log *zap.Logger) *AuthHandler {
	return &AuthHandler{log: log}
}

type attachRequest struct {
	ID       int    `json:"id" binding:"required"`
	Email    string `json:"email" binding:"required"`
	FullName string `json:"full_name"`
}

// Attach stores the upstream-confirmed identity in the session.
func (h *AuthHandler) Attach(c *gin.Context) {
	var req attachRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid identity payload"})
		return
	}

	sess := sessions.Default(c)
	sess.Set("userID", req.ID)
	sess.Set("userEmail", req.Email)
	sess.Set("userName", req.FullName)
	if err := sess.Save(); err != nil {
		h.log.Error("Failed to save session", zap.Error(err))
		c.JSON(http.StatusInternalServerError, gin.H{"error": "could not establish session"})
		return
	}

	h.log.Info("Session attached", zap.Int("userID", req.ID))
	c.JSON(http.StatusOK, models.User{ID: req.ID, Email: req.Email, FullName: req.FullName})
}

// Detach clears the session.
func (h *AuthHandler) Detach(c *gin.Context) {
	sess := sessions.Default(c)
	sess.Clear()
	sess.Options(sessions.Options{Path: "/", MaxAge: -1})
	if err := sess.Save(); err != nil {
		h.log.Error("Failed to clear session", zap.Error(err))
	}
	c.Status(http.StatusNoContent)
}

// currentUser pulls the identity the router middleware loaded.
func currentUser(c *gin.Context) (models.User, bool) {
	v, exists := c.Get("user")
	if !exists {
		return models.User{}, false
	}
	user, ok := v.(models.User)
	return user, ok
}
