package handlers

import (
	"net/http"

	"wellness-go/internal/services"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"
)

type NotificationsHandler struct {
	log     *zap.Logger
	manager *services.Manager
}

func NewNotificationsHandler(log *zap.Logger, manager *services.Manager) *NotificationsHandler {
	return &NotificationsHandler{log: log, manager: manager}
}

// Dismiss closes the visible score notification ahead of its auto-dismiss.
func (h *NotificationsHandler) Dismiss(c *gin.Context) {
	user, ok := currentUser(c)
	if !ok {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "Session expired. Please sign in again."})
		return
	}
	engine, err := h.manager.Engine(user)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "engine unavailable"})
		return
	}
	engine.DismissNotification()
	c.Status(http.StatusNoContent)
}
