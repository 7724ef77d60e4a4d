// Package mood implements the check-in flow: pick a mood, read the
// reassurance, run a timed activity, come back. The countdown is a tickable
// state machine driven by an outside scheduler, so tests tick it by hand
// instead of waiting on a wall clock.
package mood

import (
	"context"
	"fmt"

	"wellness-go/internal/models"
	"wellness-go/internal/session"

	"go.uber.org/zap"
)

// State is the flow's current step.
type State int

const (
	// StateSelect shows the mood grid.
	StateSelect State = iota
	// StateReassure shows the reassurance message and suggested activities.
	StateReassure
	// StateTimer runs a single countdown for the active activity.
	StateTimer
)

func (s State) String() string {
	switch s {
	case StateSelect:
		return "select"
	case StateReassure:
		return "reassure"
	case StateTimer:
		return "timer"
	default:
		return fmt.Sprintf("state(%d)", int(s))
	}
}

// Service is the slice of the upstream client the flow needs.
type Service interface {
	LogMood(ctx context.Context, userID int, category models.MoodCategory) (*models.MoodResponse, error)
	CompleteActivity(ctx context.Context, userID int, title string) error
}

// Flow is the mood check-in state machine for one session. Not safe for
// concurrent use on its own; the session lock serializes callers.
type Flow struct {
	svc  Service
	sess *session.State
	log  *zap.Logger

	state    State
	selected models.MoodCategory
	response *models.MoodResponse

	// Countdown. active is non-nil exactly while state == StateTimer,
	// which is what makes a second concurrent countdown impossible:
	// StartActivity is only reachable from StateReassure.
	active    *models.MoodActivity
	remaining int // seconds

	// onComplete fires after a successful completion report upstream.
	// Wired to the gamification refresh + notification.
	onComplete func(activity models.MoodActivity)
}

// NewFlow creates a flow in the Select state.
func NewFlow(svc Service, sess *session.State, log *zap.Logger) *Flow {
	return &Flow{svc: svc, sess: sess, log: log, state: StateSelect}
}

// OnComplete registers the callback fired when an activity's completion has
// been acknowledged upstream.
func (f *Flow) OnComplete(fn func(activity models.MoodActivity)) {
	f.onComplete = fn
}

// State returns the current step.
func (f *Flow) State() State { return f.state }

// Selected returns the mood chosen this session, empty in Select.
func (f *Flow) Selected() models.MoodCategory { return f.selected }

// Response returns the reassurance payload, nil until a mood is logged.
func (f *Flow) Response() *models.MoodResponse { return f.response }

// Active returns the activity being timed, nil outside the Timer state.
func (f *Flow) Active() *models.MoodActivity { return f.active }

// Remaining returns the seconds left on the countdown, 0 when idle.
func (f *Flow) Remaining() int { return f.remaining }

// SelectMood logs the mood upstream and, on success, moves to Reassure with
// the reassurance message and suggested activities attached. On failure the
// flow stays in Select and the error is surfaced to the caller.
func (f *Flow) SelectMood(ctx context.Context, category models.MoodCategory) error {
	if f.state != StateSelect {
		return fmt.Errorf("select mood: flow is in %s, not select", f.state)
	}

	resp, err := f.svc.LogMood(ctx, f.sess.UserID(), category)
	if err != nil {
		return err
	}

	f.selected = category
	f.response = resp
	f.state = StateReassure
	return nil
}

// StartActivity begins the countdown for an activity. Only reachable from
// Reassure; an activity already completed this session is a no-op.
func (f *Flow) StartActivity(activity models.MoodActivity) error {
	if f.state != StateReassure {
		return fmt.Errorf("start activity: flow is in %s, not reassure", f.state)
	}
	if f.sess.IsCompleted(activity.ID) {
		return nil
	}

	a := activity
	f.active = &a
	f.remaining = activity.DurationMinutes * 60
	f.state = StateTimer
	return nil
}

// Tick advances the countdown by one second. Outside the Timer state it
// does nothing, so a tick that arrives late, after a cancel, cannot touch
// anything. When the counter reaches zero the completion fires exactly
// once, because the transition back to Reassure happens in the same call.
func (f *Flow) Tick(ctx context.Context) {
	if f.state != StateTimer || f.active == nil {
		return
	}

	if f.remaining > 0 {
		f.remaining--
	}
	if f.remaining > 0 {
		return
	}

	activity := *f.active
	f.sess.MarkCompleted(activity.ID)
	f.active = nil
	f.remaining = 0
	f.state = StateReassure

	f.log.Info("Mood activity completed",
		zap.Int("activityID", activity.ID),
		zap.String("title", activity.Title),
	)

	// Fire-and-forget: the local completion stands even if the report
	// never lands upstream. Only a confirmed report earns the refresh.
	if err := f.svc.CompleteActivity(ctx, f.sess.UserID(), activity.Title); err != nil {
		f.log.Warn("Failed to report activity completion", zap.Error(err))
		return
	}
	if f.onComplete != nil {
		f.onComplete(activity)
	}
}

// Cancel discards a running countdown and returns to Reassure. No partial
// credit, no resume: the next start reseeds from the full duration.
func (f *Flow) Cancel() {
	if f.state != StateTimer {
		return
	}
	f.active = nil
	f.remaining = 0
	f.state = StateReassure
}

// Reset returns to Select from any state and clears the session's
// completed-activity set along with the mood selection.
func (f *Flow) Reset() {
	f.state = StateSelect
	f.selected = ""
	f.response = nil
	f.active = nil
	f.remaining = 0
	f.sess.Reset()
}

// FormatTime renders seconds as m:ss for the countdown display.
func FormatTime(seconds int) string {
	return fmt.Sprintf("%d:%02d", seconds/60, seconds%60)
}
