package vision

import (
	"fmt"
	"time"
)

// Mode selects how the session controller collects answers for a kind.
type Mode int

const (
	// ModeChoice: one stimulus per question, answered by picking a choice.
	ModeChoice Mode = iota
	// ModeText: one stimulus per question, answered by typed text.
	ModeText
	// ModeReaction: per-round wait/ready sub-machine with latency scoring.
	ModeReaction
	// ModeTimedCount: fixed-duration counter (blink rate); score derived
	// from the final count.
	ModeTimedCount
	// ModeSteps: guided step sequence collecting tags, aggregated at the
	// end (eye dominance).
	ModeSteps
)

// Config is the per-kind shape of a test session: which states are active,
// how long the timed windows are, and how points derive from score.
type Config struct {
	Kind      Kind
	Questions int // number of questions, rounds, or steps

	// HasInstructions gates the pre-roll explanation screen.
	HasInstructions bool

	// CountdownSeconds is the pre-test countdown; 0 skips the state.
	CountdownSeconds int

	// FeedbackDelay is how long the verdict stays on screen before the
	// session advances on its own; 0 skips the feedback state.
	FeedbackDelay time.Duration

	// CompleteHold is the presentational pause between finalizing and the
	// result hand-off.
	CompleteHold time.Duration

	// PointsPerCorrect is the flat multiplier for kinds with uniform
	// scoring. Reaction, blink and dominance use their own formulas (see
	// points.go) and leave this at the value used for display only.
	PointsPerCorrect int

	Mode Mode

	// TrackSeconds is the measurement window for ModeTimedCount.
	TrackSeconds int

	// MaxScore is the highest reachable score, used as TotalQuestions for
	// kinds where the two differ (reaction reports max possible score).
	MaxScore int
}

// ConfigFor returns the session configuration for a test kind. Unknown kinds
// are a programming error, reported immediately rather than mid-session.
func ConfigFor(kind Kind) (Config, error) {
	switch kind {
	case KindColor:
		return Config{Kind: kind, Questions: 10, FeedbackDelay: 1500 * time.Millisecond, PointsPerCorrect: 10, Mode: ModeChoice, MaxScore: 10}, nil
	case KindNumber:
		return Config{Kind: kind, Questions: 10, FeedbackDelay: 1500 * time.Millisecond, PointsPerCorrect: 15, Mode: ModeChoice, MaxScore: 10}, nil
	case KindPressure:
		return Config{Kind: kind, Questions: 8, FeedbackDelay: 2 * time.Second, PointsPerCorrect: 20, Mode: ModeChoice, MaxScore: 8}, nil
	case KindTumbling:
		return Config{Kind: kind, Questions: 12, FeedbackDelay: 1500 * time.Millisecond, PointsPerCorrect: 12, Mode: ModeChoice, MaxScore: 12}, nil
	case KindContrast:
		return Config{Kind: kind, Questions: 10, FeedbackDelay: 1500 * time.Millisecond, PointsPerCorrect: 15, Mode: ModeChoice, MaxScore: 10}, nil
	case KindAmsler:
		return Config{Kind: kind, Questions: 8, HasInstructions: true, FeedbackDelay: 2500 * time.Millisecond, PointsPerCorrect: 18, Mode: ModeChoice, MaxScore: 8}, nil
	case KindReaction:
		return Config{Kind: kind, Questions: 5, HasInstructions: true, FeedbackDelay: time.Second, CompleteHold: 2 * time.Second, PointsPerCorrect: 4, Mode: ModeReaction, MaxScore: 25}, nil
	case KindBlink:
		return Config{Kind: kind, Questions: 1, HasInstructions: true, CountdownSeconds: 3, CompleteHold: 3 * time.Second, PointsPerCorrect: 2, Mode: ModeTimedCount, TrackSeconds: 60, MaxScore: 10}, nil
	case KindLight:
		return Config{Kind: kind, Questions: 10, HasInstructions: true, CountdownSeconds: 3, FeedbackDelay: 1500 * time.Millisecond, PointsPerCorrect: 2, Mode: ModeChoice, MaxScore: 10}, nil
	case KindFocus:
		return Config{Kind: kind, Questions: 10, HasInstructions: true, CountdownSeconds: 3, FeedbackDelay: 1500 * time.Millisecond, PointsPerCorrect: 2, Mode: ModeText, MaxScore: 10}, nil
	case KindDominance:
		return Config{Kind: kind, Questions: 8, HasInstructions: true, Mode: ModeSteps, MaxScore: 1}, nil
	}
	return Config{}, fmt.Errorf("unknown test kind %q", kind)
}
