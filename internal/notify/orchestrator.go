// Package notify mediates between the trackers and the presentation layer:
// after a point-earning refresh it builds the ScoreDelta the congratulation
// modal shows and handles its 3-second auto-dismiss.
package notify

import (
	"time"

	"wellness-go/internal/gamification"
	"wellness-go/internal/models"

	"github.com/google/uuid"
	"go.uber.org/zap"
)

// DismissAfter is how long a notification stays up before auto-dismissing.
const DismissAfter = 3 * time.Second

// Orchestrator holds at most one visible notification. A new one replaces
// the old rather than queueing behind it, and replacement abandons the old
// dismiss deadline entirely, so a stale deadline can never close a newer
// notification early. Not safe for concurrent use on its own; the session
// lock serializes callers.
type Orchestrator struct {
	log *zap.Logger
	now func() time.Time

	current   *models.ScoreDelta
	expiresAt time.Time
}

// New creates an orchestrator on the real clock.
func New(log *zap.Logger) *Orchestrator {
	return &Orchestrator{log: log, now: time.Now}
}

// SetClock swaps the time source. Tests freeze it.
func (o *Orchestrator) SetClock(now func() time.Time) { o.now = now }

// OnProfileRefreshed builds a fresh ScoreDelta from the pre-action points
// and the refreshed profile, shows it, and arms a new dismiss deadline.
func (o *Orchestrator) OnProfileRefreshed(previousPoints int, profile *models.GamificationProfile, pointsEarned int) models.ScoreDelta {
	progress := gamification.DeriveProgress(profile)
	delta := models.ScoreDelta{
		ID:                   uuid.NewString(),
		PointsEarned:         pointsEarned,
		PreviousScore:        previousPoints,
		NewScore:             profile.Points,
		CurrentLevel:         profile.Level,
		LevelProgressPercent: progress.LevelProgressPercent,
		NextLevelThreshold:   progress.NextLevelThreshold,
	}

	if o.current != nil {
		o.log.Debug("Replacing visible notification", zap.String("replaced", o.current.ID))
	}
	o.current = &delta
	o.expiresAt = o.now().Add(DismissAfter)
	return delta
}

// Current returns the visible notification, if any.
func (o *Orchestrator) Current() (models.ScoreDelta, bool) {
	if o.current == nil {
		return models.ScoreDelta{}, false
	}
	return *o.current, true
}

// Dismiss closes the notification early. The pending deadline dies with it.
func (o *Orchestrator) Dismiss() {
	o.current = nil
	o.expiresAt = time.Time{}
}

// Sweep auto-dismisses an expired notification. Called by the scheduler on
// every tick; a sweep with nothing visible is a no-op.
func (o *Orchestrator) Sweep(now time.Time) {
	if o.current == nil {
		return
	}
	if !now.Before(o.expiresAt) {
		o.log.Debug("Auto-dismissing notification", zap.String("id", o.current.ID))
		o.Dismiss()
	}
}
