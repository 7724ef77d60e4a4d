package models

import (
	"fmt"
	"os"

	"gopkg.in/yaml.v3"
)

// MoodCategory is one of the six selectable check-in moods.
type MoodCategory string

const (
	MoodSad     MoodCategory = "sad"
	MoodAngry   MoodCategory = "angry"
	MoodAnxious MoodCategory = "anxious"
	MoodTired   MoodCategory = "tired"
	MoodBored   MoodCategory = "bored"
	MoodOkay    MoodCategory = "okay"
)

// MoodActivity is a short suggested activity with a timed duration.
type MoodActivity struct {
	ID              int    `json:"id" yaml:"id"`
	Title           string `json:"title" yaml:"title"`
	Category        string `json:"category" yaml:"category"`
	DurationMinutes int    `json:"duration_mins" yaml:"duration_mins"`
	IsCompleted     bool   `json:"is_completed" yaml:"-"`
}

// MoodResponse is what the upstream returns after a mood is logged.
type MoodResponse struct {
	ReassuranceMessage  string         `json:"reassurance_message"`
	SuggestedActivities []MoodActivity `json:"suggested_activities"`
}

// MoodEntry describes one mood catalog block in moods.yaml.
type MoodEntry struct {
	Category    MoodCategory   `yaml:"category"`
	Label       string         `yaml:"label"`
	Reassurance string         `yaml:"reassurance"`
	Activities  []MoodActivity `yaml:"activities"`
}

// MoodCatalog holds the canned per-mood activity lists and reassurance
// messages. Served to the presentation layer so it can render the mood grid
// without hardcoding the catalog twice.
type MoodCatalog struct {
	Moods []MoodEntry `yaml:"moods"`
}

// LoadMoodCatalog reads and parses the moods.yaml file.
func LoadMoodCatalog(path string) (*MoodCatalog, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read mood catalog: %w", err)
	}

	var catalog MoodCatalog
	if err := yaml.Unmarshal(data, &catalog); err != nil {
		return nil, fmt.Errorf("failed to unmarshal mood catalog YAML: %w", err)
	}

	return &catalog, nil
}

// Entry returns the catalog block for a category.
func (c *MoodCatalog) Entry(category MoodCategory) (MoodEntry, bool) {
	for _, m := range c.Moods {
		if m.Category == category {
			return m, true
		}
	}
	return MoodEntry{}, false
}
