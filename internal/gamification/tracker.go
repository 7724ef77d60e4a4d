// Package gamification derives points, level and goal display state from
// the server-confirmed profile. Point awards happen upstream; this tracker
// never increments anything locally, it only re-reads and re-derives.
package gamification

import (
	"context"
	"errors"
	"time"

	"wellness-go/internal/client"
	"wellness-go/internal/models"

	"go.uber.org/zap"
)

// Point awards, mirrored from the upstream service so notifications can say
// how much an action was worth without waiting for a second round-trip.
const (
	PointsPerGoal     = 50
	PointsPerActivity = 20
)

// Every level spans exactly 100 points. NextLevelThreshold is display-only;
// progress is always points modulo 100, a sawtooth that resets each level.
const pointsPerLevel = 100

// closeToLevelMargin triggers the "so close" nudge.
const closeToLevelMargin = 20

// Progress is the derived display state for a profile.
type Progress struct {
	LevelProgressPercent int  `json:"level_progress_percent"`
	PointsToNextLevel    int  `json:"points_to_next_level"`
	NextLevelThreshold   int  `json:"next_level_threshold"`
	CloseToLevelUp       bool `json:"close_to_level_up"`
}

// LevelProgressPercent returns progress into the current level, 0-99.
func LevelProgressPercent(points int) int {
	return points % pointsPerLevel
}

// PointsToNextLevel returns the points remaining until the next level.
func PointsToNextLevel(points int) int {
	return pointsPerLevel - points%pointsPerLevel
}

// DeriveProgress computes all display values for a profile.
func DeriveProgress(profile *models.GamificationProfile) Progress {
	toNext := PointsToNextLevel(profile.Points)
	return Progress{
		LevelProgressPercent: LevelProgressPercent(profile.Points),
		PointsToNextLevel:    toNext,
		NextLevelThreshold:   profile.Level * pointsPerLevel,
		CloseToLevelUp:       toNext <= closeToLevelMargin,
	}
}

// Service is the slice of the upstream client the tracker needs.
type Service interface {
	Profile(ctx context.Context, userID int) (*models.GamificationProfile, error)
	Goals(ctx context.Context, userID int) ([]models.Goal, error)
	CompleteGoal(ctx context.Context, goalID int) error
	CreateGoal(ctx context.Context, userID int, title string, category models.GoalCategory) error
}

// Tracker owns the cached profile and goal list for one session. It is a
// read-through cache: point-earning actions POST upstream and then refetch;
// a failed refetch keeps the prior state so the display stays consistent,
// just stale.
type Tracker struct {
	svc    Service
	userID int
	log    *zap.Logger

	profile       *models.GamificationProfile
	goals         []models.Goal
	lastRefreshed time.Time
}

// NewTracker creates a tracker for the given user.
func NewTracker(svc Service, userID int, log *zap.Logger) *Tracker {
	return &Tracker{svc: svc, userID: userID, log: log}
}

// Refresh refetches profile and goals. Transport failures retain the prior
// state and are logged, never surfaced to the UI; a bad session propagates.
func (t *Tracker) Refresh(ctx context.Context) error {
	profile, err := t.svc.Profile(ctx, t.userID)
	if err != nil {
		if errors.Is(err, client.ErrSessionInvalid) {
			return err
		}
		t.log.Warn("Profile refresh failed, keeping stale profile", zap.Error(err))
		return nil
	}

	goals, err := t.svc.Goals(ctx, t.userID)
	if err != nil {
		if errors.Is(err, client.ErrSessionInvalid) {
			return err
		}
		t.log.Warn("Goals refresh failed, keeping stale goals", zap.Error(err))
		// The profile fetch succeeded; take it even when goals lagged.
		t.profile = profile
		t.lastRefreshed = time.Now()
		return nil
	}

	t.profile = profile
	t.goals = goals
	t.lastRefreshed = time.Now()
	return nil
}

// Profile returns the latest server-confirmed profile, nil before the first
// successful refresh.
func (t *Tracker) Profile() *models.GamificationProfile { return t.profile }

// Goals returns the cached goal list.
func (t *Tracker) Goals() []models.Goal { return t.goals }

// LastRefreshed marks when the cache was last confirmed against the server.
func (t *Tracker) LastRefreshed() time.Time { return t.lastRefreshed }

// Points returns the confirmed points total, 0 before the first refresh.
func (t *Tracker) Points() int {
	if t.profile == nil {
		return 0
	}
	return t.profile.Points
}

// CompleteGoal marks a goal done upstream and refreshes. Completing an
// already-completed goal is a no-op: no request, no second award. Returns
// the points the action earned (0 for the no-op).
func (t *Tracker) CompleteGoal(ctx context.Context, goal models.Goal) (int, error) {
	if goal.IsCompleted {
		return 0, nil
	}
	if err := t.svc.CompleteGoal(ctx, goal.ID); err != nil {
		// User-initiated write: surface it, do not retry.
		return 0, err
	}
	if err := t.Refresh(ctx); err != nil {
		return PointsPerGoal, err
	}
	return PointsPerGoal, nil
}

// CreateGoal creates a goal upstream and refreshes the list.
func (t *Tracker) CreateGoal(ctx context.Context, title string, category models.GoalCategory) error {
	if err := t.svc.CreateGoal(ctx, t.userID, title, category); err != nil {
		return err
	}
	return t.Refresh(ctx)
}
