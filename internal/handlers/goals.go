package handlers

import (
	"net/http"
	"strconv"

	"wellness-go/internal/models"
	"wellness-go/internal/services"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"
)

type GoalsHandler struct {
	log     *zap.Logger
	manager *services.Manager
}

func NewGoalsHandler(log *zap.Logger, manager *services.Manager) *GoalsHandler {
	return &GoalsHandler{log: log, manager: manager}
}

type createGoalRequest struct {
	Title    string              `json:"title" binding:"required"`
	Category models.GoalCategory `json:"category" binding:"required"`
}

// Create adds a goal through the upstream service.
func (h *GoalsHandler) Create(c *gin.Context) {
	user, ok := currentUser(c)
	if !ok {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "Session expired. Please sign in again."})
		return
	}

	var req createGoalRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid goal payload"})
		return
	}
	switch req.Category {
	case models.GoalCareer, models.GoalWellness, models.GoalPersonal, models.GoalFinancial:
	default:
		c.JSON(http.StatusBadRequest, gin.H{"error": "unknown goal category"})
		return
	}

	engine, err := h.manager.Engine(user)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "engine unavailable"})
		return
	}
	if err := engine.CreateGoal(c.Request.Context(), req.Title, req.Category); err != nil {
		h.log.Error("Goal creation failed", zap.Error(err), zap.Int("userID", user.ID))
		respondError(c, err)
		return
	}
	c.JSON(http.StatusCreated, engine.Snapshot().Goals)
}

// Complete marks a goal done. Completing an already-completed goal changes
// nothing and awards nothing.
func (h *GoalsHandler) Complete(c *gin.Context) {
	user, ok := currentUser(c)
	if !ok {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "Session expired. Please sign in again."})
		return
	}

	goalID, err := strconv.Atoi(c.Param("id"))
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid goal id"})
		return
	}

	engine, err := h.manager.Engine(user)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "engine unavailable"})
		return
	}
	if err := engine.CompleteGoal(c.Request.Context(), goalID); err != nil {
		h.log.Error("Goal completion failed", zap.Error(err), zap.Int("goalID", goalID))
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, engine.Snapshot())
}
