package services

import (
	"time"

	"wellness-go/internal/gamification"
	"wellness-go/internal/history"
	"wellness-go/internal/models"
	"wellness-go/internal/mood"
)

// TrendSnapshot is the history read model. Stats pointers are nil when the
// dataset is empty; the presentation layer renders its "no data" state
// instead of fabricated zeros.
type TrendSnapshot struct {
	Points   []models.HistoryPoint `json:"points"`
	Current  *models.HistoryPoint  `json:"current,omitempty"`
	Previous *models.HistoryPoint  `json:"previous,omitempty"`
	Week     *history.Stats        `json:"week,omitempty"`
	Month    *history.Stats        `json:"month,omitempty"`
	Quarter  *history.Stats        `json:"quarter,omitempty"`
}

// MoodSnapshot is the mood flow read model.
type MoodSnapshot struct {
	State         string               `json:"state"`
	Selected      models.MoodCategory  `json:"selected,omitempty"`
	Response      *models.MoodResponse `json:"response,omitempty"`
	Active        *models.MoodActivity `json:"active,omitempty"`
	RemainingSecs int                  `json:"remaining_secs"`
	RemainingText string               `json:"remaining_text"`
	CompletedIDs  []int                `json:"completed_ids"`
}

// Snapshot is the full dashboard read model: plain serializable values
// with no embedded behavior.
type Snapshot struct {
	User          models.User                 `json:"user"`
	Trend         TrendSnapshot               `json:"trend"`
	Profile       *models.GamificationProfile `json:"profile,omitempty"`
	Progress      *gamification.Progress      `json:"progress,omitempty"`
	Goals         []models.Goal               `json:"goals"`
	Mood          MoodSnapshot                `json:"mood"`
	Notification  *models.ScoreDelta          `json:"notification,omitempty"`
	LastRefreshed time.Time                   `json:"last_refreshed"`
}

// Snapshot captures the current read models for the presentation layer.
func (e *Engine) Snapshot() Snapshot {
	e.sess.Lock()
	defer e.sess.Unlock()

	snap := Snapshot{
		User:          e.user,
		Goals:         e.tracker.Goals(),
		LastRefreshed: e.lastRefreshed,
	}

	snap.Trend.Points = e.points
	if current, previous, err := history.CurrentAndPrevious(e.points); err == nil {
		snap.Trend.Current = &current
		snap.Trend.Previous = &previous
	}
	for _, w := range []struct {
		window history.Window
		dst    **history.Stats
	}{
		{history.Window7, &snap.Trend.Week},
		{history.Window30, &snap.Trend.Month},
		{history.Window90, &snap.Trend.Quarter},
	} {
		if stats, err := history.WindowStats(e.points, w.window); err == nil {
			s := stats
			*w.dst = &s
		}
	}

	if profile := e.tracker.Profile(); profile != nil {
		snap.Profile = profile
		progress := gamification.DeriveProgress(profile)
		snap.Progress = &progress
	}

	snap.Mood = MoodSnapshot{
		State:         e.flow.State().String(),
		Selected:      e.flow.Selected(),
		Response:      e.flow.Response(),
		Active:        e.flow.Active(),
		RemainingSecs: e.flow.Remaining(),
		RemainingText: mood.FormatTime(e.flow.Remaining()),
		CompletedIDs:  e.sess.CompletedIDs(),
	}

	if delta, ok := e.notifier.Current(); ok {
		snap.Notification = &delta
	}
	return snap
}
