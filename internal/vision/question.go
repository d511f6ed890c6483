package vision

// Canonical answer tags. Every Expected value and every answer the UI can
// submit for a given kind is drawn from these (or from strconv-formatted
// integers for the index/number kinds), so the evaluator works over a closed
// domain.
const (
	// Tumbling-E directions.
	AnswerUp    = "up"
	AnswerDown  = "down"
	AnswerLeft  = "left"
	AnswerRight = "right"

	// Stripe orientations.
	AnswerVertical      = "vertical"
	AnswerHorizontal    = "horizontal"
	AnswerDiagonalRight = "diagonal-right"
	AnswerDiagonalLeft  = "diagonal-left"

	// Pressure self-report buckets.
	AnswerNormal   = "normal"
	AnswerElevated = "elevated"
	AnswerHigh     = "high"

	// Yes/no prompts (Amsler grid).
	AnswerYes = "yes"
	AnswerNo  = "no"

	// Light sensitivity.
	AnswerVisible    = "visible"
	AnswerNotVisible = "not-visible"

	// Eye dominance picks.
	EyeLeft    = "left"
	EyeRight   = "right"
	EyeNeither = "neither"

	// Focus shift distances (difficulty parameter, not an answer).
	DistanceNear = "near"
	DistanceFar  = "far"
)

// Question is one stimulus-and-expected-answer unit. It is a tagged union
// over test kinds: Kind selects which of the remaining fields are meaningful.
// Difficulty fields are consumed only by stimulus rendering, never by the
// evaluator.
type Question struct {
	Kind     Kind
	Expected string

	// Prompt carries question text for self-report kinds (amsler) and the
	// step instruction for dominance.
	Prompt string

	// Options holds the selectable choices in display order where the UI
	// presents a fixed multiple choice (number, pressure, amsler, light,
	// dominance).
	Options []string

	// Color test.
	GridSize int // cells per side
	Hue      int // base HSL hue, 0-359
	Sat      int // base HSL saturation, percent
	Lit      int // base HSL lightness, percent
	LitShift int // lightness delta of the odd cell

	// Pressure test.
	Pattern   string  // concentric, radial, grid, wave
	Intensity float64 // 0-1 render intensity, derived from Expected

	// Contrast test.
	Contrast float64 // 0.1-0.9, decreasing over the session

	// Tumbling-E and focus: stimulus size in source pixels.
	SizePx int

	// Light sensitivity.
	Brightness float64 // 0-1, decreasing over the session

	// Light and focus: the displayed glyph.
	Letter string

	// Focus shift.
	Distance string // near or far
}

// PressurePatterns are the four render patterns of the pressure test.
var PressurePatterns = []string{"concentric", "radial", "grid", "wave"}

// Directions lists the tumbling-E directions in UI order.
var Directions = []string{AnswerUp, AnswerDown, AnswerLeft, AnswerRight}

// Orientations lists the contrast stripe orientations in UI order.
var Orientations = []string{AnswerVertical, AnswerHorizontal, AnswerDiagonalRight, AnswerDiagonalLeft}
