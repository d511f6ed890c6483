package vision

// Points maps a final score to awarded points via the kind's formula.
// Dominance is a fixed award regardless of score; all other kinds multiply
// by the per-kind rate (reaction's rate applies to its tier-summed score,
// blink's to its bucket score).
func Points(kind Kind, score int) int {
	if kind == KindDominance {
		return 15
	}
	cfg, err := ConfigFor(kind)
	if err != nil {
		return 0
	}
	return score * cfg.PointsPerCorrect
}

// ReactionTier converts a measured reaction latency into the per-round score
// increment: 5 under 200ms down to 1 at 500ms and above.
func ReactionTier(latencyMs int) int {
	switch {
	case latencyMs < 200:
		return 5
	case latencyMs < 300:
		return 4
	case latencyMs < 400:
		return 3
	case latencyMs < 500:
		return 2
	default:
		return 1
	}
}

// ReactionRating is the feedback label for a measured latency.
func ReactionRating(latencyMs int) string {
	switch {
	case latencyMs < 200:
		return "Excellent"
	case latencyMs < 300:
		return "Good"
	case latencyMs < 400:
		return "Average"
	case latencyMs < 500:
		return "Below average"
	default:
		return "Slow"
	}
}

// Blink-rate scoring: the normal range is 15-20 blinks per minute; the score
// drops in bands as the count drifts from it.
const (
	blinkNormalMin = 15
	blinkNormalMax = 20
)

// BlinkScore buckets a one-minute blink count by distance from the normal
// range.
func BlinkScore(blinks int) int {
	within := func(slack int) bool {
		return blinks >= blinkNormalMin-slack && blinks <= blinkNormalMax+slack
	}
	switch {
	case within(0):
		return 10
	case within(3):
		return 8
	case within(5):
		return 6
	case within(8):
		return 4
	default:
		return 2
	}
}

// Dominant aggregates per-step eye picks into the dominant eye: strict
// majority of left vs right, ties (including all-neither) are neither.
func Dominant(picks []string) string {
	var left, right int
	for _, p := range picks {
		switch p {
		case EyeLeft:
			left++
		case EyeRight:
			right++
		}
	}
	switch {
	case left > right:
		return EyeLeft
	case right > left:
		return EyeRight
	default:
		return EyeNeither
	}
}
