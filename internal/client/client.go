// Package client talks to the external wellness service that owns all
// durable state: assessment records, gamification profiles, goals and mood
// logs. The engine never writes any of these locally; every numeric
// progression value originates from a fetch through this client.
package client

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"time"

	"wellness-go/internal/models"

	"go.uber.org/zap"
)

// Client is a thin JSON client for the upstream service. Safe for
// concurrent use.
type Client struct {
	baseURL string
	http    *http.Client
	log     *zap.Logger
}

// New creates a client against baseURL with the given request timeout.
func New(baseURL string, timeout time.Duration, log *zap.Logger) *Client {
	return &Client{
		baseURL: baseURL,
		http:    &http.Client{Timeout: timeout},
		log:     log,
	}
}

// History fetches all assessment records for a user, unordered.
func (c *Client) History(ctx context.Context, userID int) ([]models.AssessmentRecord, error) {
	if userID <= 0 {
		return nil, ErrSessionInvalid
	}
	var records []models.AssessmentRecord
	err := c.getJSON(ctx, "history", fmt.Sprintf("/api/predictions/user/%d", userID), &records)
	return records, err
}

// Profile fetches the server-confirmed gamification profile.
func (c *Client) Profile(ctx context.Context, userID int) (*models.GamificationProfile, error) {
	if userID <= 0 {
		return nil, ErrSessionInvalid
	}
	var profile models.GamificationProfile
	if err := c.getJSON(ctx, "profile", fmt.Sprintf("/api/gamification/profile/%d", userID), &profile); err != nil {
		return nil, err
	}
	return &profile, nil
}

// Goals fetches the user's goal list.
func (c *Client) Goals(ctx context.Context, userID int) ([]models.Goal, error) {
	if userID <= 0 {
		return nil, ErrSessionInvalid
	}
	var goals []models.Goal
	err := c.getJSON(ctx, "goals", fmt.Sprintf("/api/gamification/goals/%d", userID), &goals)
	return goals, err
}

// LogMood records a mood check-in and returns the reassurance message plus
// suggested activities.
func (c *Client) LogMood(ctx context.Context, userID int, category models.MoodCategory) (*models.MoodResponse, error) {
	if userID <= 0 {
		return nil, ErrSessionInvalid
	}
	body := map[string]string{"mood_category": string(category)}
	var resp models.MoodResponse
	if err := c.postJSON(ctx, "mood/log", http.MethodPost, fmt.Sprintf("/api/mood/log/%d", userID), body, &resp); err != nil {
		return nil, err
	}
	return &resp, nil
}

// CompleteActivity reports a finished mood activity. The upstream awards
// the activity points; the caller refreshes the profile afterwards.
func (c *Client) CompleteActivity(ctx context.Context, userID int, title string) error {
	if userID <= 0 {
		return ErrSessionInvalid
	}
	body := map[string]string{"title": title}
	return c.postJSON(ctx, "mood/activity/complete", http.MethodPost, fmt.Sprintf("/api/mood/activity/%d/complete", userID), body, nil)
}

// CompleteGoal marks a goal completed upstream.
func (c *Client) CompleteGoal(ctx context.Context, goalID int) error {
	body := map[string]bool{"is_completed": true}
	return c.postJSON(ctx, "goals/complete", http.MethodPut, fmt.Sprintf("/api/gamification/goals/%d", goalID), body, nil)
}

// CreateGoal creates a new goal for the user.
func (c *Client) CreateGoal(ctx context.Context, userID int, title string, category models.GoalCategory) error {
	if userID <= 0 {
		return ErrSessionInvalid
	}
	body := map[string]string{"title": title, "category": string(category)}
	return c.postJSON(ctx, "goals/create", http.MethodPost, fmt.Sprintf("/api/gamification/goals/%d", userID), body, nil)
}

// SubmitAssessment sends raw answers to the predictor and returns the
// scored record.
func (c *Client) SubmitAssessment(ctx context.Context, userID int, input models.AssessmentInput) (*models.AssessmentRecord, error) {
	if userID <= 0 {
		return nil, ErrSessionInvalid
	}
	var record models.AssessmentRecord
	if err := c.postJSON(ctx, "predictions", http.MethodPost, fmt.Sprintf("/api/predictions?user_id=%d", userID), input, &record); err != nil {
		return nil, err
	}
	return &record, nil
}

func (c *Client) getJSON(ctx context.Context, op, path string, out any) error {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, c.baseURL+path, nil)
	if err != nil {
		return &TransportError{Op: op, Err: err}
	}
	return c.do(op, req, out)
}

func (c *Client) postJSON(ctx context.Context, op, method, path string, body, out any) error {
	payload, err := json.Marshal(body)
	if err != nil {
		return &TransportError{Op: op, Err: err}
	}
	req, err := http.NewRequestWithContext(ctx, method, c.baseURL+path, bytes.NewReader(payload))
	if err != nil {
		return &TransportError{Op: op, Err: err}
	}
	req.Header.Set("Content-Type", "application/json")
	return c.do(op, req, out)
}

func (c *Client) do(op string, req *http.Request, out any) error {
	resp, err := c.http.Do(req)
	if err != nil {
		return &TransportError{Op: op, Err: err}
	}
	defer resp.Body.Close()

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		return &TransportError{Op: op, Status: resp.StatusCode, Err: fmt.Errorf("unexpected status %d", resp.StatusCode)}
	}

	if out == nil {
		return nil
	}
	if err := json.NewDecoder(resp.Body).Decode(out); err != nil {
		return &TransportError{Op: op, Err: fmt.Errorf("decode response: %w", err)}
	}
	return nil
}
