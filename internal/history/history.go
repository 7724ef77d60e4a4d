// Package history turns raw assessment records into the ordered time series
// and trend statistics the dashboard renders. Everything here is derived on
// every refresh; nothing is cached across sessions.
package history

import (
	"errors"
	"math"
	"sort"

	"wellness-go/internal/models"
)

// ErrEmptyDataset is returned when statistics are requested over zero
// records. Callers render an explicit "no data" state; there is no sentinel
// number.
var ErrEmptyDataset = errors.New("no assessment records")

// Window is a trailing slice of history selected by point count.
type Window int

const (
	Window7  Window = 7
	Window30 Window = 30
	Window90 Window = 90
)

// Stats summarizes burnout scores over a window.
type Stats struct {
	Min int     `json:"min"`
	Max int     `json:"max"`
	Avg float64 `json:"avg"`
}

// Aggregate produces one HistoryPoint per record, sorted ascending by
// creation time. The sort is stable: records with equal timestamps keep
// their original relative order. That tie-break is a contract, not an
// accident of the sort implementation.
func Aggregate(records []models.AssessmentRecord) []models.HistoryPoint {
	sorted := make([]models.AssessmentRecord, len(records))
	copy(sorted, records)
	sort.SliceStable(sorted, func(i, j int) bool {
		return sorted[i].CreatedAt.Before(sorted[j].CreatedAt)
	})

	points := make([]models.HistoryPoint, len(sorted))
	for i, rec := range sorted {
		points[i] = models.HistoryPoint{
			Date:        rec.CreatedAt.Format("1/2/2006"),
			Score:       int(math.Round(rec.BurnoutScore)),
			SleepHours:  rec.InputFeatures.SleepHoursPerDay,
			StressLevel: rec.InputFeatures.StressLevel,
		}
	}
	return points
}

// CurrentAndPrevious returns the latest point and the one before it. With a
// single point the previous equals the current, which defines "no change"
// instead of leaving the delta undefined.
func CurrentAndPrevious(points []models.HistoryPoint) (current, previous models.HistoryPoint, err error) {
	if len(points) == 0 {
		return models.HistoryPoint{}, models.HistoryPoint{}, ErrEmptyDataset
	}
	current = points[len(points)-1]
	previous = current
	if len(points) >= 2 {
		previous = points[len(points)-2]
	}
	return current, previous, nil
}

// LastN returns the trailing n points (all of them when fewer exist).
func LastN(points []models.HistoryPoint, n int) []models.HistoryPoint {
	if n >= len(points) {
		return points
	}
	return points[len(points)-n:]
}

// WindowStats computes min/max/avg burnout score over the last N points by
// count, where N is the window's day count. The "7 Days" label selecting
// the 7 most recent records regardless of date spread is deliberate and
// kept for compatibility with the stored dashboards.
func WindowStats(points []models.HistoryPoint, window Window) (Stats, error) {
	if len(points) == 0 {
		return Stats{}, ErrEmptyDataset
	}

	slice := LastN(points, int(window))

	stats := Stats{Min: slice[0].Score, Max: slice[0].Score}
	sum := 0
	for _, p := range slice {
		if p.Score < stats.Min {
			stats.Min = p.Score
		}
		if p.Score > stats.Max {
			stats.Max = p.Score
		}
		sum += p.Score
	}
	stats.Avg = float64(sum) / float64(len(slice))
	return stats, nil
}
