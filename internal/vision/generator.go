package vision

import (
	"fmt"
	"math/rand"
	"strconv"
	"time"
)

// Generator produces question sequences for a test kind. It holds its own
// RNG so a session can be replayed from a seed in tests; production sessions
// are wall-clock seeded.
type Generator struct {
	rng *rand.Rand
}

// New creates a generator with an explicit seed.
func New(seed int64) *Generator {
	return &Generator{rng: rand.New(rand.NewSource(seed))}
}

// NewRandom creates a wall-clock seeded generator.
func NewRandom() *Generator {
	return New(time.Now().UnixNano())
}

// Generate returns exactly count questions for kind. A count of 0 uses the
// kind's configured default. Misconfiguration (unknown kind, count not
// servable by the kind's value space) fails here, before a session starts.
func (g *Generator) Generate(kind Kind, count int) ([]Question, error) {
	cfg, err := ConfigFor(kind)
	if err != nil {
		return nil, err
	}
	if count == 0 {
		count = cfg.Questions
	}
	if count < 1 {
		return nil, fmt.Errorf("%s: question count %d out of range", kind, count)
	}

	switch kind {
	case KindColor:
		return g.colorQuestions(count), nil
	case KindNumber:
		return g.numberQuestions(count)
	case KindPressure:
		return g.pressureQuestions(count), nil
	case KindTumbling:
		return g.tumblingQuestions(count), nil
	case KindContrast:
		return g.contrastQuestions(count), nil
	case KindAmsler:
		return fixedTable(kind, count, amslerQuestions)
	case KindReaction:
		return g.reactionRounds(count), nil
	case KindBlink:
		return []Question{{Kind: KindBlink}}, nil
	case KindLight:
		return fixedTable(kind, count, lightQuestions)
	case KindFocus:
		return fixedTable(kind, count, focusQuestions)
	case KindDominance:
		return fixedTable(kind, count, dominanceSteps)
	}
	return nil, fmt.Errorf("unknown test kind %q", kind)
}

// WaitDuration returns a random reaction-round wait in the 2-5s window.
func (g *Generator) WaitDuration() time.Duration {
	return 2*time.Second + time.Duration(g.rng.Int63n(int64(3*time.Second)))
}

// colorQuestions builds odd-one-out grids. Grid size grows every three
// questions; the odd cell's lightness shift narrows after the halfway point
// so later questions are harder.
func (g *Generator) colorQuestions(count int) []Question {
	qs := make([]Question, count)
	for i := range qs {
		grid := 3 + i/3
		shift := 15
		if i >= count/2 {
			shift = 10
		}
		qs[i] = Question{
			Kind:     KindColor,
			GridSize: grid,
			Hue:      g.rng.Intn(360),
			Sat:      60 + g.rng.Intn(30),
			Lit:      50 + g.rng.Intn(20),
			LitShift: shift,
			Expected: strconv.Itoa(g.rng.Intn(grid * grid)),
		}
	}
	return qs
}

// numberQuestions builds hidden-number prompts with four unique two-digit
// options. Duplicate distractors are resampled until uniqueness holds; with
// 90 values and 4 slots that always terminates.
func (g *Generator) numberQuestions(count int) ([]Question, error) {
	const optionCount = 4
	qs := make([]Question, count)
	for i := range qs {
		number := 10 + g.rng.Intn(90)
		opts := []int{number}
		for len(opts) < optionCount {
			candidate := 10 + g.rng.Intn(90)
			if !containsInt(opts, candidate) {
				opts = append(opts, candidate)
			}
		}
		g.rng.Shuffle(len(opts), func(a, b int) { opts[a], opts[b] = opts[b], opts[a] })

		options := make([]string, len(opts))
		for j, o := range opts {
			options[j] = strconv.Itoa(o)
		}
		qs[i] = Question{
			Kind:     KindNumber,
			Expected: strconv.Itoa(number),
			Options:  options,
		}
	}
	return qs, nil
}

// pressureQuestions picks the expected bucket first and derives the render
// intensity from it. The stimulus pattern itself carries no information
// about the expected answer; the source app works the same way and the
// behavior is preserved deliberately (see DESIGN.md).
func (g *Generator) pressureQuestions(count int) []Question {
	buckets := []string{AnswerNormal, AnswerElevated, AnswerHigh}
	intensities := map[string]float64{AnswerNormal: 0.3, AnswerElevated: 0.6, AnswerHigh: 0.9}

	qs := make([]Question, count)
	for i := range qs {
		expected := buckets[g.rng.Intn(len(buckets))]
		qs[i] = Question{
			Kind:      KindPressure,
			Expected:  expected,
			Options:   buckets,
			Pattern:   PressurePatterns[g.rng.Intn(len(PressurePatterns))],
			Intensity: intensities[expected],
		}
	}
	return qs
}

// tumblingQuestions builds the shrinking-E sequence: 200px down by 12 per
// question, clamped at 50. The sweep is the acuity threshold being probed.
func (g *Generator) tumblingQuestions(count int) []Question {
	qs := make([]Question, count)
	for i := range qs {
		size := 200 - i*12
		if size < 50 {
			size = 50
		}
		qs[i] = Question{
			Kind:     KindTumbling,
			Expected: Directions[g.rng.Intn(len(Directions))],
			Options:  Directions,
			SizePx:   size,
		}
	}
	return qs
}

// contrastQuestions builds the fading-stripe sequence: contrast 0.9 down by
// 0.08 per question, clipped at 0.1.
func (g *Generator) contrastQuestions(count int) []Question {
	qs := make([]Question, count)
	for i := range qs {
		contrast := 0.9 - float64(i)*0.08
		if contrast < 0.1 {
			contrast = 0.1
		}
		qs[i] = Question{
			Kind:     KindContrast,
			Expected: Orientations[g.rng.Intn(len(Orientations))],
			Options:  Orientations,
			Contrast: contrast,
		}
	}
	return qs
}

// reactionRounds builds placeholder rounds; the wait window is drawn live by
// the controller via WaitDuration.
func (g *Generator) reactionRounds(count int) []Question {
	qs := make([]Question, count)
	for i := range qs {
		qs[i] = Question{Kind: KindReaction}
	}
	return qs
}

// fixedTable serves kinds whose question sequence is a fixed table. Asking
// for a different count is a kind misconfiguration.
func fixedTable(kind Kind, count int, table []Question) ([]Question, error) {
	if count != len(table) {
		return nil, fmt.Errorf("%s: configured for %d questions, requested %d", kind, len(table), count)
	}
	out := make([]Question, len(table))
	copy(out, table)
	return out, nil
}

func containsInt(s []int, v int) bool {
	for _, x := range s {
		if x == v {
			return true
		}
	}
	return false
}

var yesNo = []string{AnswerYes, AnswerNo}

// amslerQuestions are the fixed self-check prompts. Expected is the
// healthy-vision response for each prompt.
var amslerQuestions = []Question{
	{Kind: KindAmsler, Prompt: "Can you see the center dot clearly?", Expected: AnswerYes, Options: yesNo},
	{Kind: KindAmsler, Prompt: "Are all the grid lines straight and parallel?", Expected: AnswerYes, Options: yesNo},
	{Kind: KindAmsler, Prompt: "Do you see any wavy or curved lines?", Expected: AnswerNo, Options: yesNo},
	{Kind: KindAmsler, Prompt: "Are there any missing or broken areas in the grid?", Expected: AnswerNo, Options: yesNo},
	{Kind: KindAmsler, Prompt: "Do all the squares appear to be the same size?", Expected: AnswerYes, Options: yesNo},
	{Kind: KindAmsler, Prompt: "Is any part of the grid blurry or distorted?", Expected: AnswerNo, Options: yesNo},
	{Kind: KindAmsler, Prompt: "Can you see all four corners of the grid clearly?", Expected: AnswerNo, Options: yesNo},
	{Kind: KindAmsler, Prompt: "Do any lines appear darker or lighter than others?", Expected: AnswerYes, Options: yesNo},
}

var visibility = []string{AnswerVisible, AnswerNotVisible}

// lightQuestions fade from easily visible to below threshold. Letters at or
// above 0.12 brightness are expected visible.
var lightQuestions = []Question{
	{Kind: KindLight, Letter: "E", Brightness: 0.9, Expected: AnswerVisible, Options: visibility},
	{Kind: KindLight, Letter: "F", Brightness: 0.7, Expected: AnswerVisible, Options: visibility},
	{Kind: KindLight, Letter: "P", Brightness: 0.5, Expected: AnswerVisible, Options: visibility},
	{Kind: KindLight, Letter: "T", Brightness: 0.35, Expected: AnswerVisible, Options: visibility},
	{Kind: KindLight, Letter: "O", Brightness: 0.25, Expected: AnswerVisible, Options: visibility},
	{Kind: KindLight, Letter: "Z", Brightness: 0.18, Expected: AnswerVisible, Options: visibility},
	{Kind: KindLight, Letter: "L", Brightness: 0.12, Expected: AnswerVisible, Options: visibility},
	{Kind: KindLight, Letter: "P", Brightness: 0.08, Expected: AnswerNotVisible, Options: visibility},
	{Kind: KindLight, Letter: "E", Brightness: 0.05, Expected: AnswerNotVisible, Options: visibility},
	{Kind: KindLight, Letter: "D", Brightness: 0.03, Expected: AnswerNotVisible, Options: visibility},
}

// focusQuestions run five near letters at reading sizes, then five far
// letters at distance sizes. Size decreases monotonically within each phase.
var focusQuestions = []Question{
	{Kind: KindFocus, Letter: "E", Distance: DistanceNear, SizePx: 80, Expected: "E"},
	{Kind: KindFocus, Letter: "F", Distance: DistanceNear, SizePx: 70, Expected: "F"},
	{Kind: KindFocus, Letter: "P", Distance: DistanceNear, SizePx: 60, Expected: "P"},
	{Kind: KindFocus, Letter: "T", Distance: DistanceNear, SizePx: 50, Expected: "T"},
	{Kind: KindFocus, Letter: "O", Distance: DistanceNear, SizePx: 45, Expected: "O"},
	{Kind: KindFocus, Letter: "Z", Distance: DistanceFar, SizePx: 40, Expected: "Z"},
	{Kind: KindFocus, Letter: "L", Distance: DistanceFar, SizePx: 35, Expected: "L"},
	{Kind: KindFocus, Letter: "P", Distance: DistanceFar, SizePx: 30, Expected: "P"},
	{Kind: KindFocus, Letter: "E", Distance: DistanceFar, SizePx: 28, Expected: "E"},
	{Kind: KindFocus, Letter: "D", Distance: DistanceFar, SizePx: 25, Expected: "D"},
}

var eyePicks = []string{EyeLeft, EyeRight, EyeNeither}

// dominanceSteps are the guided self-test steps. There is no ground truth;
// each step records which eye the user observed, and the majority wins.
var dominanceSteps = []Question{
	{Kind: KindDominance, Prompt: "Miles test: form a small triangle with your hands at arm's length and center a distant object in it. Close your left eye. Which eye keeps the object centered?", Options: eyePicks},
	{Kind: KindDominance, Prompt: "Keep the triangle. Open your left eye and close your right eye instead. Which eye keeps the object centered?", Options: eyePicks},
	{Kind: KindDominance, Prompt: "Shrink the triangle to a coin-sized opening and repeat with the left eye closed. Which eye holds the object?", Options: eyePicks},
	{Kind: KindDominance, Prompt: "Same coin-sized opening, right eye closed. Which eye holds the object?", Options: eyePicks},
	{Kind: KindDominance, Prompt: "Pointing test: point at a distant object with both eyes open, then close your left eye. Does your finger still cover it? Which eye was aligned?", Options: eyePicks},
	{Kind: KindDominance, Prompt: "Point again, then close your right eye instead. Which eye was aligned with your finger?", Options: eyePicks},
	{Kind: KindDominance, Prompt: "Convergence test: focus on your fingertip and bring it slowly toward your nose. Which eye kept it in focus the longest?", Options: eyePicks},
	{Kind: KindDominance, Prompt: "Wink check: sight a distant object and wink each eye in turn. Closing which eye made the object appear to jump?", Options: eyePicks},
}
