package models

import "time"

// Streak is consecutive qualifying days of engagement, tracked upstream.
// A nil *Streak on the profile means the upstream has no streak row for the
// user, which is not the same thing as a streak of zero.
type Streak struct {
	CurrentStreak int `json:"current_streak"`
	LongestStreak int `json:"longest_streak"`
}

type Achievement struct {
	ID          int        `json:"id"`
	Name        string     `json:"name"`
	Description string     `json:"description"`
	IconName    string     `json:"icon_name"`
	EarnedAt    *time.Time `json:"earned_at,omitempty"`
}

// GamificationProfile is the server-confirmed points/level state. The engine
// treats fetched values as authoritative and never increments them locally.
type GamificationProfile struct {
	Points       int           `json:"points"`
	Level        int           `json:"level"`
	Streak       *Streak       `json:"streak"`
	Achievements []Achievement `json:"achievements"`
}

type GoalCategory string

const (
	GoalCareer    GoalCategory = "career"
	GoalWellness  GoalCategory = "wellness"
	GoalPersonal  GoalCategory = "personal"
	GoalFinancial GoalCategory = "financial"
)

// Goal transitions one way: incomplete to completed, never back.
type Goal struct {
	ID          int          `json:"id"`
	Title       string       `json:"title"`
	Description string       `json:"description,omitempty"`
	Category    GoalCategory `json:"category"`
	IsCompleted bool         `json:"is_completed"`
}

// ScoreDelta is the ephemeral payload behind a points notification. Built
// fresh per refresh and thrown away once dismissed.
type ScoreDelta struct {
	ID                   string `json:"id"`
	PointsEarned         int    `json:"points_earned"`
	PreviousScore        int    `json:"previous_score"`
	NewScore             int    `json:"new_score"`
	CurrentLevel         int    `json:"current_level"`
	LevelProgressPercent int    `json:"level_progress_percent"`
	NextLevelThreshold   int    `json:"next_level_threshold"`
}
