package handlers

import (
	"net/http"

	"wellness-go/internal/services"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"
)

type AssistantHandler struct {
	log     *zap.Logger
	manager *services.Manager
}

func NewAssistantHandler(log *zap.Logger, manager *services.Manager) *AssistantHandler {
	return &AssistantHandler{log: log, manager: manager}
}

type chatRequest struct {
	Message string `json:"message" binding:"required"`
}

type chatResponse struct {
	Intent string `json:"intent"`
	Reply  string `json:"reply"`
}

// Chat answers one message through the scripted assistant.
func (h *AssistantHandler) Chat(c *gin.Context) {
	user, ok := currentUser(c)
	if !ok {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "Session expired. Please sign in again."})
		return
	}

	var req chatRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "message is required"})
		return
	}

	engine, err := h.manager.Engine(user)
	if err != nil {
		h.log.Error("Failed to build engine", zap.Error(err))
		c.JSON(http.StatusInternalServerError, gin.H{"error": "engine unavailable"})
		return
	}

	intent, reply := engine.Chat(req.Message)
	h.log.Debug("Assistant reply", zap.String("intent", intent))
	c.JSON(http.StatusOK, chatResponse{Intent: intent, Reply: reply})
}
