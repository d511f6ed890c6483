package session

import "github.com/eyeris-app/eyeris/internal/vision"

// TestResult is the immutable outcome of one completed session, handed to
// the history aggregator exactly once.
type TestResult struct {
	Kind            vision.Kind
	Score           int
	TotalQuestions  int
	Points          int
	DurationSeconds int

	// DominantEye is set only by the eye-dominance test.
	DominantEye string
}
