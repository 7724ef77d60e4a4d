package services

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"net/http/httptest"
	"sync"
	"testing"
	"time"

	"wellness-go/internal/assistant"
	"wellness-go/internal/client"
	"wellness-go/internal/models"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
)

// fakeUpstream is an in-memory stand-in for the wellness service. Points
// only ever change here, the way the real engine never mutates them.
type fakeUpstream struct {
	mu     sync.Mutex
	points int
	level  int
	goals  []models.Goal

	activityCompletions int
}

func (f *fakeUpstream) handler(t *testing.T) http.Handler {
	mux := http.NewServeMux()

	mux.HandleFunc("GET /api/predictions/user/7", func(w http.ResponseWriter, r *http.Request) {
		base := time.Date(2025, 6, 1, 9, 0, 0, 0, time.UTC)
		records := []models.AssessmentRecord{
			{CreatedAt: base.AddDate(0, 0, 1), BurnoutScore: 55, RiskLevel: models.RiskMedium},
			{CreatedAt: base, BurnoutScore: 48, RiskLevel: models.RiskMedium},
		}
		json.NewEncoder(w).Encode(records)
	})

	mux.HandleFunc("GET /api/gamification/profile/7", func(w http.ResponseWriter, r *http.Request) {
		f.mu.Lock()
		defer f.mu.Unlock()
		json.NewEncoder(w).Encode(models.GamificationProfile{
			Points: f.points,
			Level:  f.level,
			Streak: &models.Streak{CurrentStreak: 2, LongestStreak: 5},
		})
	})

	mux.HandleFunc("GET /api/gamification/goals/7", func(w http.ResponseWriter, r *http.Request) {
		f.mu.Lock()
		defer f.mu.Unlock()
		json.NewEncoder(w).Encode(f.goals)
	})

	mux.HandleFunc("PUT /api/gamification/goals/{id}", func(w http.ResponseWriter, r *http.Request) {
		f.mu.Lock()
		defer f.mu.Unlock()
		for i := range f.goals {
			if fmt.Sprint(f.goals[i].ID) == r.PathValue("id") {
				f.goals[i].IsCompleted = true
				f.points += 50
			}
		}
		w.WriteHeader(http.StatusOK)
	})

	mux.HandleFunc("POST /api/mood/log/7", func(w http.ResponseWriter, r *http.Request) {
		json.NewEncoder(w).Encode(models.MoodResponse{
			ReassuranceMessage: "Rest is productive.",
			SuggestedActivities: []models.MoodActivity{
				{ID: 1031, Title: "10-minute power nap", DurationMinutes: 1},
			},
		})
	})

	mux.HandleFunc("POST /api/mood/activity/7/complete", func(w http.ResponseWriter, r *http.Request) {
		f.mu.Lock()
		defer f.mu.Unlock()
		f.activityCompletions++
		f.points += 20
		w.WriteHeader(http.StatusOK)
	})

	return mux
}

func newTestEngine(t *testing.T) (*Engine, *fakeUpstream) {
	t.Helper()
	upstream := &fakeUpstream{
		points: 120,
		level:  2,
		goals: []models.Goal{
			{ID: 1, Title: "Sleep by 11pm", Category: models.GoalWellness},
		},
	}
	server := httptest.NewServer(upstream.handler(t))
	t.Cleanup(server.Close)

	api := client.New(server.URL, 5*time.Second, zap.NewNop())
	bot, err := assistant.New(&assistant.Script{General: []string{"I'm here with you."}})
	require.NoError(t, err)

	user := models.User{ID: 7, Email: "maya@example.com", FullName: "Maya"}
	return NewEngine(api, user, bot, zap.NewNop()), upstream
}

func TestRefreshAllAndSnapshot(t *testing.T) {
	engine, _ := newTestEngine(t)
	require.NoError(t, engine.RefreshAll(context.Background()))

	snap := engine.Snapshot()
	require.Len(t, snap.Trend.Points, 2)
	assert.Equal(t, 48, snap.Trend.Points[0].Score, "series sorted ascending by creation time")
	require.NotNil(t, snap.Trend.Current)
	assert.Equal(t, 55, snap.Trend.Current.Score)
	require.NotNil(t, snap.Trend.Week)
	assert.Equal(t, 48, snap.Trend.Week.Min)

	require.NotNil(t, snap.Profile)
	assert.Equal(t, 120, snap.Profile.Points)
	require.NotNil(t, snap.Progress)
	assert.Equal(t, 20, snap.Progress.LevelProgressPercent)
	assert.Equal(t, "select", snap.Mood.State)
	assert.Nil(t, snap.Notification)
	assert.False(t, snap.LastRefreshed.IsZero())
}

func TestCompleteGoalRaisesNotification(t *testing.T) {
	engine, upstream := newTestEngine(t)
	require.NoError(t, engine.RefreshAll(context.Background()))

	require.NoError(t, engine.CompleteGoal(context.Background(), 1))

	snap := engine.Snapshot()
	require.NotNil(t, snap.Notification)
	assert.Equal(t, 50, snap.Notification.PointsEarned)
	assert.Equal(t, 120, snap.Notification.PreviousScore)
	assert.Equal(t, 170, snap.Notification.NewScore, "score comes from the refetched profile")
	assert.True(t, snap.Goals[0].IsCompleted)

	// Completing again is a no-op: upstream saw exactly one award.
	require.NoError(t, engine.CompleteGoal(context.Background(), 1))
	assert.Equal(t, 170, upstream.points)
}

func TestMoodCycleThroughEngine(t *testing.T) {
	engine, upstream := newTestEngine(t)
	require.NoError(t, engine.RefreshAll(context.Background()))

	require.NoError(t, engine.SelectMood(context.Background(), models.MoodTired))
	snap := engine.Snapshot()
	assert.Equal(t, "reassure", snap.Mood.State)
	require.NotNil(t, snap.Mood.Response)

	activity := snap.Mood.Response.SuggestedActivities[0]
	require.NoError(t, engine.StartActivity(activity))
	snap = engine.Snapshot()
	assert.Equal(t, "timer", snap.Mood.State)
	assert.Equal(t, 60, snap.Mood.RemainingSecs)
	assert.Equal(t, "1:00", snap.Mood.RemainingText)

	now := time.Date(2025, 6, 1, 10, 0, 0, 0, time.UTC)
	for i := 0; i < 60; i++ {
		now = now.Add(time.Second)
		engine.Tick(now)
	}

	snap = engine.Snapshot()
	assert.Equal(t, "reassure", snap.Mood.State)
	assert.Contains(t, snap.Mood.CompletedIDs, activity.ID)
	assert.Equal(t, 1, upstream.activityCompletions)

	require.NotNil(t, snap.Notification, "confirmed completion raises the score notification")
	assert.Equal(t, 20, snap.Notification.PointsEarned)
	assert.Equal(t, 140, snap.Notification.NewScore)
}

func TestCancelActivityThroughEngine(t *testing.T) {
	engine, upstream := newTestEngine(t)
	require.NoError(t, engine.RefreshAll(context.Background()))
	require.NoError(t, engine.SelectMood(context.Background(), models.MoodTired))

	snap := engine.Snapshot()
	require.NoError(t, engine.StartActivity(snap.Mood.Response.SuggestedActivities[0]))

	now := time.Now()
	for i := 0; i < 10; i++ {
		engine.Tick(now)
	}
	engine.CancelActivity()

	snap = engine.Snapshot()
	assert.Equal(t, "reassure", snap.Mood.State)
	assert.Empty(t, snap.Mood.CompletedIDs)
	assert.Zero(t, upstream.activityCompletions)
}

func TestChatThroughEngine(t *testing.T) {
	engine, _ := newTestEngine(t)
	intent, reply := engine.Chat("anything at all")
	assert.Equal(t, "general", intent)
	assert.NotEmpty(t, reply)
}
