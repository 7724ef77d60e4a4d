package handlers

import (
	"net/http"

	"wellness-go/internal/history"
	"wellness-go/internal/models"
	"wellness-go/internal/services"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"

	"github.com/go-echarts/go-echarts/v2/charts"
	"github.com/go-echarts/go-echarts/v2/opts"
)

// ChartsHandler renders echarts option payloads from the derived history
// series. Options only; drawing them is the presentation layer's job.
type ChartsHandler struct {
	log     *zap.Logger
	manager *services.Manager
}

func NewChartsHandler(log *zap.Logger, manager *services.Manager) *ChartsHandler {
	return &ChartsHandler{log: log, manager: manager}
}

// Trend serves the burnout score line for a requested window.
func (h *ChartsHandler) Trend(c *gin.Context) {
	engine, ok := h.engineFor(c)
	if !ok {
		return
	}

	window := history.Window30
	switch c.Query("window") {
	case "7d":
		window = history.Window7
	case "90d":
		window = history.Window90
	}

	snap := engine.Snapshot()
	if len(snap.Trend.Points) == 0 {
		c.JSON(http.StatusOK, gin.H{"empty": true})
		return
	}

	points := history.LastN(snap.Trend.Points, int(window))
	c.JSON(http.StatusOK, gin.H{"options": generateTrendChart(points).JSON()})
}

// SleepStress serves the dual sleep-hours / stress-level series.
func (h *ChartsHandler) SleepStress(c *gin.Context) {
	engine, ok := h.engineFor(c)
	if !ok {
		return
	}

	snap := engine.Snapshot()
	if len(snap.Trend.Points) == 0 {
		c.JSON(http.StatusOK, gin.H{"empty": true})
		return
	}
	c.JSON(http.StatusOK, gin.H{"options": generateSleepStressChart(snap.Trend.Points).JSON()})
}

func (h *ChartsHandler) engineFor(c *gin.Context) (*services.Engine, bool) {
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

func generateTrendChart(points []models.HistoryPoint) *charts.Line {
	line := charts.NewLine()
	line.SetGlobalOptions(
		charts.WithTitleOpts(opts.Title{
			Title:    "Burnout Trends",
			Subtitle: "Risk score over time",
		}),
		charts.WithYAxisOpts(opts.YAxis{
			Type:  "value",
			Max:   100,
			Scale: opts.Bool(true),
		}),
		charts.WithTooltipOpts(opts.Tooltip{Show: opts.Bool(true), Trigger: "axis"}),
		charts.WithDataZoomOpts(opts.DataZoom{Type: "slider"}),
	)

	dates := make([]string, 0, len(points))
	items := make([]opts.LineData, 0, len(points))
	for _, p := range points {
		dates = append(dates, p.Date)
		items = append(items, opts.LineData{Value: p.Score})
	}

	line.SetXAxis(dates).
		AddSeries("Burnout Score", items).
		SetSeriesOptions(charts.WithLineStyleOpts(opts.LineStyle{Width: 2}))
	return line
}

func generateSleepStressChart(points []models.HistoryPoint) *charts.Line {
	line := charts.NewLine()
	line.SetGlobalOptions(
		charts.WithTitleOpts(opts.Title{
			Title:    "Sleep vs Stress",
			Subtitle: "Hours slept against reported stress",
		}),
		charts.WithTooltipOpts(opts.Tooltip{Show: opts.Bool(true), Trigger: "axis"}),
	)

	dates := make([]string, 0, len(points))
	sleep := make([]opts.LineData, 0, len(points))
	stress := make([]opts.LineData, 0, len(points))
	for _, p := range points {
		dates = append(dates, p.Date)
		sleep = append(sleep, opts.LineData{Value: p.SleepHours})
		stress = append(stress, opts.LineData{Value: p.StressLevel})
	}

	line.SetXAxis(dates).
		AddSeries("Sleep (hrs)", sleep).
		AddSeries("Stress (1-10)", stress).
		SetSeriesOptions(charts.WithLineStyleOpts(opts.LineStyle{Width: 2}))
	return line
}
