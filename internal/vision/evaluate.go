package vision

import "strings"

// Evaluate returns the verdict for a submitted answer. It is pure and total:
// any string yields a verdict, and an answer outside the question's legal
// domain is simply wrong. Typed answers (focus) are compared case- and
// whitespace-insensitively; everything else is exact-tag equality against
// Expected.
func Evaluate(q Question, submitted string) bool {
	switch q.Kind {
	case KindFocus:
		return strings.EqualFold(strings.TrimSpace(submitted), q.Expected)
	case KindReaction, KindBlink, KindDominance:
		// Scored by latency tiers, count buckets, and majority aggregation
		// respectively; there is no per-question verdict.
		return false
	default:
		return submitted == q.Expected
	}
}
