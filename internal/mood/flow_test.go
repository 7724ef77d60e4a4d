package mood

import (
	"context"
	"errors"
	"testing"

	"wellness-go/internal/models"
	"wellness-go/internal/session"

	"go.uber.org/zap"
)

// fakeService counts calls and can fail on demand.
type fakeService struct {
	failLog      bool
	failComplete bool

	logCalls      int
	completeCalls int
	lastTitle     string
}

func (f *fakeService) LogMood(ctx context.Context, userID int, category models.MoodCategory) (*models.MoodResponse, error) {
	f.logCalls++
	if f.failLog {
		return nil, errors.New("mood log failed")
	}
	return &models.MoodResponse{
		ReassuranceMessage: "Rest is productive.",
		SuggestedActivities: []models.MoodActivity{
			{ID: 1, Title: "10-minute power nap", DurationMinutes: 5},
			{ID: 2, Title: "Step outside for fresh air", DurationMinutes: 5},
		},
	}, nil
}

func (f *fakeService) CompleteActivity(ctx context.Context, userID int, title string) error {
	if f.failComplete {
		return errors.New("complete failed")
	}
	f.completeCalls++
	f.lastTitle = title
	return nil
}

func newTestFlow(t *testing.T) (*Flow, *fakeService, *session.State) {
	t.Helper()
	svc := &fakeService{}
	sess := session.New(7)
	return NewFlow(svc, sess, zap.NewNop()), svc, sess
}

func TestFullActivityCycle(t *testing.T) {
	flow, svc, sess := newTestFlow(t)
	ctx := context.Background()

	var completed []models.MoodActivity
	flow.OnComplete(func(a models.MoodActivity) { completed = append(completed, a) })

	if err := flow.SelectMood(ctx, models.MoodTired); err != nil {
		t.Fatalf("select mood: %v", err)
	}
	if flow.State() != StateReassure {
		t.Fatalf("expected reassure, got %s", flow.State())
	}

	activity := models.MoodActivity{ID: 1, Title: "10-minute power nap", DurationMinutes: 5}
	if err := flow.StartActivity(activity); err != nil {
		t.Fatalf("start activity: %v", err)
	}
	if flow.State() != StateTimer {
		t.Fatalf("expected timer, got %s", flow.State())
	}
	if flow.Remaining() != 300 {
		t.Fatalf("expected 300 seconds, got %d", flow.Remaining())
	}

	for i := 0; i < 300; i++ {
		flow.Tick(ctx)
	}

	if flow.State() != StateReassure {
		t.Errorf("expected reassure after countdown, got %s", flow.State())
	}
	if !sess.IsCompleted(1) {
		t.Error("activity 1 should be in the completed set")
	}
	if svc.completeCalls != 1 {
		t.Errorf("expected exactly one completion request, got %d", svc.completeCalls)
	}
	if len(completed) != 1 || completed[0].ID != 1 {
		t.Errorf("expected one completion callback for activity 1, got %v", completed)
	}

	// Extra ticks after completion must not fire anything again.
	for i := 0; i < 10; i++ {
		flow.Tick(ctx)
	}
	if svc.completeCalls != 1 {
		t.Errorf("completion fired again on spurious ticks: %d calls", svc.completeCalls)
	}
}

func TestSelectMoodFailureStaysInSelect(t *testing.T) {
	flow, svc, _ := newTestFlow(t)
	svc.failLog = true

	if err := flow.SelectMood(context.Background(), models.MoodSad); err == nil {
		t.Fatal("expected error from failed mood log")
	}
	if flow.State() != StateSelect {
		t.Errorf("expected select after failure, got %s", flow.State())
	}
	if flow.Response() != nil {
		t.Error("no reassurance should be attached after a failed log")
	}
}

func TestStartActivityRejectedWhenCompleted(t *testing.T) {
	flow, _, sess := newTestFlow(t)
	ctx := context.Background()

	if err := flow.SelectMood(ctx, models.MoodBored); err != nil {
		t.Fatalf("select mood: %v", err)
	}
	sess.MarkCompleted(2)

	if err := flow.StartActivity(models.MoodActivity{ID: 2, Title: "done already", DurationMinutes: 5}); err != nil {
		t.Fatalf("re-start of a completed activity should be a quiet no-op: %v", err)
	}
	if flow.State() != StateReassure {
		t.Errorf("expected reassure, got %s", flow.State())
	}
}

func TestStartActivityUnreachableFromTimer(t *testing.T) {
	flow, _, _ := newTestFlow(t)
	ctx := context.Background()

	_ = flow.SelectMood(ctx, models.MoodOkay)
	_ = flow.StartActivity(models.MoodActivity{ID: 1, Title: "a", DurationMinutes: 1})

	if err := flow.StartActivity(models.MoodActivity{ID: 2, Title: "b", DurationMinutes: 1}); err == nil {
		t.Fatal("expected a second countdown to be rejected while one runs")
	}
}

func TestCancelDiscardsCountdown(t *testing.T) {
	flow, svc, sess := newTestFlow(t)
	ctx := context.Background()

	_ = flow.SelectMood(ctx, models.MoodAnxious)
	_ = flow.StartActivity(models.MoodActivity{ID: 1, Title: "breathing", DurationMinutes: 3})

	// Run down to 120 seconds, then cancel.
	for flow.Remaining() > 120 {
		flow.Tick(ctx)
	}
	flow.Cancel()

	if flow.State() != StateReassure {
		t.Fatalf("expected reassure after cancel, got %s", flow.State())
	}
	if sess.IsCompleted(1) {
		t.Error("cancelled activity must not be marked completed")
	}
	if svc.completeCalls != 0 {
		t.Errorf("no completion request expected, got %d", svc.completeCalls)
	}

	// A late tick after cancel must not decrement anything.
	flow.Tick(ctx)
	if flow.Remaining() != 0 {
		t.Errorf("remaining should stay 0 after cancel, got %d", flow.Remaining())
	}
}

func TestCompletionStandsWhenReportFails(t *testing.T) {
	flow, svc, sess := newTestFlow(t)
	ctx := context.Background()
	svc.failComplete = true

	callbacks := 0
	flow.OnComplete(func(models.MoodActivity) { callbacks++ })

	_ = flow.SelectMood(ctx, models.MoodSad)
	_ = flow.StartActivity(models.MoodActivity{ID: 3, Title: "sunlight", DurationMinutes: 1})
	for i := 0; i < 60; i++ {
		flow.Tick(ctx)
	}

	if !sess.IsCompleted(3) {
		t.Error("local completion stands even when the report fails")
	}
	if callbacks != 0 {
		t.Error("refresh callback only fires on a confirmed report")
	}
}

func TestResetClearsSessionSet(t *testing.T) {
	flow, _, sess := newTestFlow(t)
	ctx := context.Background()

	_ = flow.SelectMood(ctx, models.MoodTired)
	sess.MarkCompleted(1)
	flow.Reset()

	if flow.State() != StateSelect {
		t.Fatalf("expected select after reset, got %s", flow.State())
	}
	if flow.Selected() != "" || flow.Response() != nil {
		t.Error("mood selection should be cleared")
	}
	if sess.IsCompleted(1) {
		t.Error("completed set should be cleared by reset")
	}
}

func TestFormatTime(t *testing.T) {
	cases := map[int]string{0: "0:00", 9: "0:09", 60: "1:00", 300: "5:00", 119: "1:59"}
	for seconds, want := range cases {
		if got := FormatTime(seconds); got != want {
			t.Errorf("FormatTime(%d) = %q, want %q", seconds, got, want)
		}
	}
}
