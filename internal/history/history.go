package history

import (
	"encoding/json"
	"time"

	"github.com/google/uuid"

	"github.com/eyeris-app/eyeris/internal/session"
	"github.com/eyeris-app/eyeris/internal/vision"
)

// Entry is one completed test run as it appears in the saved history.
type Entry struct {
	ID              string      `json:"id"`
	Kind            vision.Kind `json:"testId"`
	Date            string      `json:"date"` // RFC3339
	Score           int         `json:"score"`
	TotalQuestions  int         `json:"totalQuestions"`
	Points          int         `json:"points"`
	DurationSeconds int         `json:"duration"`
	DominantEye     string      `json:"dominantEye,omitempty"`
}

// NewEntry stamps a finished result with a fresh ID and the completion time.
func NewEntry(res session.TestResult, at time.Time) Entry {
	return Entry{
		ID:              uuid.NewString(),
		Kind:            res.Kind,
		Date:            at.Format(time.RFC3339),
		Score:           res.Score,
		TotalQuestions:  res.TotalQuestions,
		Points:          res.Points,
		DurationSeconds: res.DurationSeconds,
		DominantEye:     res.DominantEye,
	}
}

// Store persists completed runs and the running points total. Entries is
// always newest first. Implementations must treat unreadable saved state as
// empty rather than failing: a corrupt file costs the history, never the app.
type Store interface {
	// Record prepends an entry and adds its points to the total.
	Record(entry Entry) error
	// Entries returns all saved runs, newest first.
	Entries() ([]Entry, error)
	// TotalPoints returns the accumulated points across all runs.
	TotalPoints() (int, error)
	// Reset discards all history and zeroes the points total.
	Reset() error
	Close() error
}

// decodeEntries is the shared lenient decoder: malformed payloads read as
// an empty history.
func decodeEntries(raw []byte) []Entry {
	if len(raw) == 0 {
		return nil
	}
	var entries []Entry
	if err := json.Unmarshal(raw, &entries); err != nil {
		return nil
	}
	return entries
}

func encodeEntries(entries []Entry) ([]byte, error) {
	if entries == nil {
		entries = []Entry{}
	}
	return json.Marshal(entries)
}

// TestsTaken counts runs per kind, for the dashboard.
func TestsTaken(entries []Entry) map[vision.Kind]int {
	counts := make(map[vision.Kind]int, len(entries))
	for _, e := range entries {
		counts[e.Kind]++
	}
	return counts
}

// BestScore returns the highest score recorded for a kind, and whether the
// kind has been attempted at all.
func BestScore(entries []Entry, kind vision.Kind) (int, bool) {
	best, found := 0, false
	for _, e := range entries {
		if e.Kind != kind {
			continue
		}
		if !found || e.Score > best {
			best = e.Score
		}
		found = true
	}
	return best, found
}
