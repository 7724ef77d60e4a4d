package handlers

import (
	"net/http"

	"wellness-go/internal/models"
	"wellness-go/internal/services"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"
)

// MoodHandler drives the check-in flow over HTTP. Each endpoint is one
// state-machine transition; the countdown itself advances on scheduler
// ticks, not on requests.
type MoodHandler struct {
	log     *zap.Logger
	manager *services.Manager
	catalog *models.MoodCatalog
}

func NewMoodHandler(log *zap.Logger, manager *services.Manager, catalog *models.MoodCatalog) *MoodHandler {
	return &MoodHandler{log: log, manager: manager, catalog: catalog}
}

// Catalog serves the mood grid definition.
func (h *MoodHandler) Catalog(c *gin.Context) {
	c.JSON(http.StatusOK, h.catalog)
}

type selectMoodRequest struct {
	MoodCategory models.MoodCategory `json:"mood_category" binding:"required"`
}

// Select logs a mood and returns the updated mood snapshot.
func (h *MoodHandler) Select(c *gin.Context) {
	engine, ok := h.engineFor(c)
	if !ok {
		return
	}

	var req selectMoodRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid mood payload"})
		return
	}
	if _, known := h.catalog.Entry(req.MoodCategory); !known {
		c.JSON(http.StatusBadRequest, gin.H{"error": "unknown mood category"})
		return
	}

	if err := engine.SelectMood(c.Request.Context(), req.MoodCategory); err != nil {
		h.log.Error("Mood logging failed", zap.Error(err), zap.String("mood", string(req.MoodCategory)))
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, engine.Snapshot().Mood)
}

// StartActivity begins a countdown for one of the suggested activities.
func (h *MoodHandler) StartActivity(c *gin.Context) {
	engine, ok := h.engineFor(c)
	if !ok {
		return
	}

	var activity models.MoodActivity
	if err := c.ShouldBindJSON(&activity); err != nil || activity.DurationMinutes <= 0 {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid activity payload"})
		return
	}

	if err := engine.StartActivity(activity); err != nil {
		c.JSON(http.StatusConflict, gin.H{"error": err.Error()})
		return
	}
	c.JSON(http.StatusOK, engine.Snapshot().Mood)
}

// CancelActivity discards a running countdown without credit.
func (h *MoodHandler) CancelActivity(c *gin.Context) {
	engine, ok := h.engineFor(c)
	if !ok {
		return
	}
	engine.CancelActivity()
	c.JSON(http.StatusOK, engine.Snapshot().Mood)
}

// Reset returns the flow to mood selection and forgets this session's
// completed activities.
func (h *MoodHandler) Reset(c *gin.Context) {
	engine, ok := h.engineFor(c)
	if !ok {
		return
	}
	engine.ResetMood()
	c.JSON(http.StatusOK, engine.Snapshot().Mood)
}

// Status returns the current flow state and remaining time; the countdown
// display polls this.
func (h *MoodHandler) Status(c *gin.Context) {
	engine, ok := h.engineFor(c)
	if !ok {
		return
	}
	c.JSON(http.StatusOK, engine.Snapshot().Mood)
}

func (h *MoodHandler) engineFor(c *gin.Context) (*services.Engine, bool) {
	user, ok := currentUser(c)
	if !ok {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "Session expired. Please sign in again."})
		return nil, false
	}
	engine, err := h.manager.Engine(user)
	if err != nil {
		h.log.Error("Failed to build engine", zap.Error(err))
		c.JSON(http.StatusInternalServerError, gin.H{"error": "engine unavailable"})
		return nil, false
	}
	return engine, true
}
