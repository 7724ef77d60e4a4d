package models

import "time"

// RiskLevel is the categorical banding supplied by the upstream predictor.
type RiskLevel string

const (
	RiskLow    RiskLevel = "low"
	RiskMedium RiskLevel = "medium"
	RiskHigh   RiskLevel = "high"
)

// InputFeatures are the raw answers a record was scored from. The engine
// only reads the two features the dashboard charts care about; the rest
// travel along untouched.
type InputFeatures struct {
	WorkHoursPerWeek      float64 `json:"work_hours_per_week"`
	SleepHoursPerDay      float64 `json:"sleep_hours_per_day"`
	StressLevel           float64 `json:"stress_level"`
	JobSatisfaction       float64 `json:"job_satisfaction"`
	WorkLifeBalance       float64 `json:"work_life_balance"`
	PhysicalActivityHours float64 `json:"physical_activity_hours"`
	SocialSupport         float64 `json:"social_support"`
}

// AssessmentRecord is one scored self-assessment, owned by the upstream
// predictor. Immutable once created; the engine never writes to it.
type AssessmentRecord struct {
	CreatedAt     time.Time     `json:"created_at"`
	BurnoutScore  float64       `json:"burnout_score"`
	RiskLevel     RiskLevel     `json:"risk_level"`
	InputFeatures InputFeatures `json:"input_features"`
}

// AssessmentInput is the submission payload for a new assessment.
type AssessmentInput struct {
	WorkHoursPerWeek      float64 `json:"work_hours_per_week"`
	SleepHoursPerDay      float64 `json:"sleep_hours_per_day"`
	StressLevel           float64 `json:"stress_level"`
	JobSatisfaction       float64 `json:"job_satisfaction"`
	WorkLifeBalance       float64 `json:"work_life_balance"`
	PhysicalActivityHours float64 `json:"physical_activity_hours"`
	SocialSupport         float64 `json:"social_support"`
}

// HistoryPoint is the derived chart row, one per AssessmentRecord. Derived
// on every refresh, never persisted.
type HistoryPoint struct {
	Date        string  `json:"date"`
	Score       int     `json:"score"`
	SleepHours  float64 `json:"sleep_hours"`
	StressLevel float64 `json:"stress_level"`
}

// User is the identity attached to the session by the upstream service.
type User struct {
	ID       int    `json:"id"`
	Email    string `json:"email"`
	FullName string `json:"full_name"`
}
