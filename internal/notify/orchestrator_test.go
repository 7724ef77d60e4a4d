package notify

import (
	"testing"
	"time"

	"wellness-go/internal/models"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
)

func frozenClock(at *time.Time) func() time.Time {
	return func() time.Time { return *at }
}

func profile(points, level int) *models.GamificationProfile {
	return &models.GamificationProfile{Points: points, Level: level}
}

func TestOnProfileRefreshed_BuildsDelta(t *testing.T) {
	now := time.Date(2025, 6, 1, 10, 0, 0, 0, time.UTC)
	o := New(zap.NewNop())
	o.SetClock(frozenClock(&now))

	delta := o.OnProfileRefreshed(120, profile(170, 2), 50)

	assert.NotEmpty(t, delta.ID)
	assert.Equal(t, 50, delta.PointsEarned)
	assert.Equal(t, 120, delta.PreviousScore)
	assert.Equal(t, 170, delta.NewScore)
	assert.Equal(t, 2, delta.CurrentLevel)
	assert.Equal(t, 70, delta.LevelProgressPercent)
	assert.Equal(t, 200, delta.NextLevelThreshold)

	visible, ok := o.Current()
	require.True(t, ok)
	assert.Equal(t, delta.ID, visible.ID)
}

func TestAutoDismissAfterThreeSeconds(t *testing.T) {
	now := time.Date(2025, 6, 1, 10, 0, 0, 0, time.UTC)
	o := New(zap.NewNop())
	o.SetClock(frozenClock(&now))

	o.OnProfileRefreshed(0, profile(20, 1), 20)

	o.Sweep(now.Add(2 * time.Second))
	_, ok := o.Current()
	assert.True(t, ok, "still visible before the deadline")

	o.Sweep(now.Add(3 * time.Second))
	_, ok = o.Current()
	assert.False(t, ok, "auto-dismissed at the deadline")
}

func TestReplacementRestartsDismissWindow(t *testing.T) {
	now := time.Date(2025, 6, 1, 10, 0, 0, 0, time.UTC)
	o := New(zap.NewNop())
	o.SetClock(frozenClock(&now))

	first := o.OnProfileRefreshed(0, profile(20, 1), 20)

	// Two seconds later a second delta replaces the first.
	now = now.Add(2 * time.Second)
	second := o.OnProfileRefreshed(20, profile(70, 1), 50)
	assert.NotEqual(t, first.ID, second.ID)

	// The first delta's deadline (t+3s) passes; the second must survive it.
	o.Sweep(now.Add(1500 * time.Millisecond))
	visible, ok := o.Current()
	require.True(t, ok, "stale deadline must not close the newer notification")
	assert.Equal(t, second.ID, visible.ID)

	// The second's own 3-second window expires.
	o.Sweep(now.Add(3 * time.Second))
	_, ok = o.Current()
	assert.False(t, ok)
}

func TestManualDismiss(t *testing.T) {
	now := time.Date(2025, 6, 1, 10, 0, 0, 0, time.UTC)
	o := New(zap.NewNop())
	o.SetClock(frozenClock(&now))

	o.OnProfileRefreshed(0, profile(20, 1), 20)
	o.Dismiss()

	_, ok := o.Current()
	assert.False(t, ok)

	// A sweep after manual dismissal is a harmless no-op.
	o.Sweep(now.Add(time.Minute))
}
