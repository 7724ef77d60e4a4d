package handlers

import (
	"net/http"

	"wellness-go/internal/models"
	"wellness-go/internal/services"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"
)

// DashboardHandler serves the full dashboard read model and accepts new
// assessment submissions.
type DashboardHandler struct {
	log     *zap.Logger
	manager *services.Manager
}

func NewDashboardHandler(log *zap.Logger, manager *services.Manager) *DashboardHandler {
	return &DashboardHandler{log: log, manager: manager}
}

// Show refreshes the engine from the upstream service and returns the
// snapshot. Refresh transport failures degrade to stale data, so this only
// errors on a broken session.
func (h *DashboardHandler) Show(c *gin.Context) {
	user, ok := currentUser(c)
	if !ok {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "Session expired. Please sign in again."})
		return
	}

	engine, err := h.manager.Engine(user)
	if err != nil {
		h.log.Error("Failed to build engine", zap.Error(err))
		c.JSON(http.StatusInternalServerError, gin.H{"error": "engine unavailable"})
		return
	}

	if err := engine.RefreshAll(c.Request.Context()); err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, engine.Snapshot())
}

// SubmitAssessment forwards answers to the predictor and returns the scored
// record. A transport failure here is blocking and not retried.
func (h *DashboardHandler) SubmitAssessment(c *gin.Context) {
	user, ok := currentUser(c)
	if !ok {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "Session expired. Please sign in again."})
		return
	}

	var input models.AssessmentInput
	if err := c.ShouldBindJSON(&input); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid assessment payload"})
		return
	}

	engine, err := h.manager.Engine(user)
	if err != nil {
		h.log.Error("Failed to build engine", zap.Error(err))
		c.JSON(http.StatusInternalServerError, gin.H{"error": "engine unavailable"})
		return
	}

	record, err := engine.SubmitAssessment(c.Request.Context(), input)
	if err != nil {
		h.log.Error("Assessment submission failed", zap.Error(err), zap.Int("userID", user.ID))
		respondError(c, err)
		return
	}
	c.JSON(http.StatusCreated, record)
}
