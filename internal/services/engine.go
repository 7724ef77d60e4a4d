package services

import (
	"context"
	"errors"
	"time"

	"wellness-go/internal/assistant"
	"wellness-go/internal/client"
	"wellness-go/internal/gamification"
	"wellness-go/internal/history"
	"wellness-go/internal/models"
	"wellness-go/internal/mood"
	"wellness-go/internal/notify"
	"wellness-go/internal/session"

	"go.uber.org/zap"
)

// upstreamBudget bounds calls made outside a request context (timer-driven
// completions and their follow-up refresh).
const upstreamBudget = 30 * time.Second

// Engine is the per-session wellness state engine: it owns the derived
// history series, the gamification cache, the mood flow and the
// notification slot for one signed-in user, and wires their interactions.
// Every mutation runs under the session lock, which stands in for the
// single-threaded event loop the dashboard logic was designed around.
type Engine struct {
	log  *zap.Logger
	api  *client.Client
	sess *session.State
	user models.User

	tracker   *gamification.Tracker
	flow      *mood.Flow
	notifier  *notify.Orchestrator
	assistant *assistant.Assistant

	points        []models.HistoryPoint
	lastRefreshed time.Time
}

// NewEngine builds and wires an engine for one user.
func NewEngine(api *client.Client, user models.User, bot *assistant.Assistant, log *zap.Logger) *Engine {
	sess := session.New(user.ID)
	e := &Engine{
		log:       log,
		api:       api,
		sess:      sess,
		user:      user,
		tracker:   gamification.NewTracker(api, user.ID, log),
		flow:      mood.NewFlow(api, sess, log),
		notifier:  notify.New(log),
		assistant: bot,
	}

	// A confirmed activity completion re-reads the authoritative profile
	// and raises the score notification from the delta.
	e.flow.OnComplete(func(activity models.MoodActivity) {
		ctx, cancel := context.WithTimeout(context.Background(), upstreamBudget)
		defer cancel()
		e.notifyAfterAward(ctx, gamification.PointsPerActivity)
	})
	return e
}

// notifyAfterAward refreshes the profile and shows the ScoreDelta. Called
// with the session lock already held.
func (e *Engine) notifyAfterAward(ctx context.Context, pointsEarned int) {
	previous := e.tracker.Points()
	if err := e.tracker.Refresh(ctx); err != nil {
		e.log.Warn("Post-award refresh failed", zap.Error(err))
		return
	}
	profile := e.tracker.Profile()
	if profile == nil {
		return
	}
	e.notifier.OnProfileRefreshed(previous, profile, pointsEarned)
}

// RefreshAll re-reads history, profile and goals. Transport failures keep
// the prior state; only a bad session propagates.
func (e *Engine) RefreshAll(ctx context.Context) error {
	e.sess.Lock()
	defer e.sess.Unlock()

	if err := e.refreshHistory(ctx); err != nil {
		return err
	}
	return e.tracker.Refresh(ctx)
}

func (e *Engine) refreshHistory(ctx context.Context) error {
	records, err := e.api.History(ctx, e.sess.UserID())
	if err != nil {
		if errors.Is(err, client.ErrSessionInvalid) {
			return err
		}
		e.log.Warn("History refresh failed, keeping stale series", zap.Error(err))
		return nil
	}
	e.points = history.Aggregate(records)
	e.lastRefreshed = time.Now()
	return nil
}

// SubmitAssessment sends answers to the predictor, then refreshes the
// derived series from the authoritative record set. A failed submission is
// surfaced as-is; nothing is written locally.
func (e *Engine) SubmitAssessment(ctx context.Context, input models.AssessmentInput) (*models.AssessmentRecord, error) {
	e.sess.Lock()
	defer e.sess.Unlock()

	record, err := e.api.SubmitAssessment(ctx, e.sess.UserID(), input)
	if err != nil {
		return nil, err
	}
	if err := e.refreshHistory(ctx); err != nil {
		return nil, err
	}
	return record, nil
}

// CompleteGoal completes a goal upstream, refreshes, and raises the score
// notification. Idempotent for already-completed goals.
func (e *Engine) CompleteGoal(ctx context.Context, goalID int) error {
	e.sess.Lock()
	defer e.sess.Unlock()

	var target *models.Goal
	goals := e.tracker.Goals()
	for i := range goals {
		if goals[i].ID == goalID {
			target = &goals[i]
			break
		}
	}
	if target == nil {
		return errors.New("unknown goal")
	}
	if target.IsCompleted {
		return nil
	}

	previous := e.tracker.Points()
	earned, err := e.tracker.CompleteGoal(ctx, *target)
	if err != nil {
		return err
	}
	if profile := e.tracker.Profile(); profile != nil && earned > 0 {
		e.notifier.OnProfileRefreshed(previous, profile, earned)
	}
	return nil
}

// CreateGoal creates a goal upstream and refreshes the list.
func (e *Engine) CreateGoal(ctx context.Context, title string, category models.GoalCategory) error {
	e.sess.Lock()
	defer e.sess.Unlock()
	return e.tracker.CreateGoal(ctx, title, category)
}

// SelectMood runs the mood flow's first transition.
func (e *Engine) SelectMood(ctx context.Context, category models.MoodCategory) error {
	e.sess.Lock()
	defer e.sess.Unlock()
	return e.flow.SelectMood(ctx, category)
}

// StartActivity begins the countdown for a suggested activity.
func (e *Engine) StartActivity(activity models.MoodActivity) error {
	e.sess.Lock()
	defer e.sess.Unlock()
	return e.flow.StartActivity(activity)
}

// CancelActivity discards a running countdown.
func (e *Engine) CancelActivity() {
	e.sess.Lock()
	defer e.sess.Unlock()
	e.flow.Cancel()
}

// ResetMood returns the flow to Select and clears the completed set.
func (e *Engine) ResetMood() {
	e.sess.Lock()
	defer e.sess.Unlock()
	e.flow.Reset()
}

// DismissNotification closes the visible notification early.
func (e *Engine) DismissNotification() {
	e.sess.Lock()
	defer e.sess.Unlock()
	e.notifier.Dismiss()
}

// Chat answers a message through the scripted assistant.
func (e *Engine) Chat(message string) (intent, reply string) {
	e.sess.Lock()
	defer e.sess.Unlock()
	return e.assistant.Reply(e.user.FullName, message)
}

// Tick advances the time-based machinery by one scheduler beat: the mood
// countdown and the notification auto-dismiss.
func (e *Engine) Tick(now time.Time) {
	e.sess.Lock()
	defer e.sess.Unlock()

	ctx, cancel := context.WithTimeout(context.Background(), upstreamBudget)
	defer cancel()
	e.flow.Tick(ctx)
	e.notifier.Sweep(now)
}
