package session

import (
	"fmt"
	"time"

	"github.com/eyeris-app/eyeris/internal/vision"
)

// Phase is the top-level controller state.
type Phase int

const (
	PhaseInstructions Phase = iota // pre-roll explanation (skipped for some kinds)
	PhaseCountdown                 // fixed pre-test countdown
	PhaseActive                    // collecting answers
	PhaseFeedback                  // verdict display window, input rejected
	PhaseFinalizing                // result computed, presentational hold
	PhaseComplete                  // terminal; result available exactly once
)

// Stage is the reaction-speed sub-state within PhaseActive.
type Stage int

const (
	StageNone     Stage = iota
	StageWait           // red screen, stimulus pending
	StageReady          // green screen, waiting for the click
	StageTooEarly       // clicked during wait; same round restarts
)

// TimerPurpose tags a scheduled transition so the controller knows what a
// fired timer means.
type TimerPurpose int

const (
	TimerCountdown TimerPurpose = iota // 1s countdown tick
	TimerFeedback                      // end of verdict display window
	TimerWait                          // reaction stimulus becomes ready
	TimerRetry                         // too-early pause before round restart
	TimerTrack                         // 1s tick of the blink measurement window
	TimerHold                          // finalizing hold before Complete
)

// TimerRequest is a scheduled task handle. The owner schedules a single
// callback after Delay and reports it back via TimerFired with the same
// token. Tokens are invalidated by any cancellation (new timer, teardown),
// so a callback that outlives its session is a guaranteed no-op.
type TimerRequest struct {
	Token   int
	Purpose TimerPurpose
	Delay   time.Duration
}

// Controller runs one test session as an event-driven state machine. All
// mutation happens in Start, Submit, TimerFired and Teardown; the owner
// feeds it user input and fired timers and renders from the accessors.
// It is not safe for concurrent use; the Bubble Tea update loop (or a test)
// is expected to be the single caller.
type Controller struct {
	cfg       vision.Config
	questions []vision.Question
	gen       *vision.Generator

	phase Phase
	stage Stage
	idx   int
	score int

	startedAt       time.Time
	awaitingAdvance bool
	countdownLeft   int

	// Reaction speed.
	readyAt     time.Time
	latencies   []int
	lastLatency int

	// Blink rate.
	trackLeft  int
	blinkCount int

	// Eye dominance.
	picks []string

	// Focus shift near/far tally for the summary breakdown.
	nearCorrect int
	farCorrect  int

	lastAnswer  string
	lastCorrect bool

	timerToken int
	pending    *TimerRequest

	result   *TestResult
	emitted  bool
	tornDown bool
}

const (
	countdownTick = time.Second
	trackTick     = time.Second
	tooEarlyPause = 1500 * time.Millisecond
)

// New creates a controller for one run. The question slice must match the
// kind's configured count; a mismatch is a wiring error and fails fast.
// The generator supplies reaction wait windows and may be nil for other
// kinds. The controller starts in PhaseInstructions; kinds without a
// pre-roll screen should have Start called immediately.
func New(cfg vision.Config, questions []vision.Question, gen *vision.Generator) (*Controller, error) {
	if cfg.Mode != vision.ModeTimedCount && len(questions) != cfg.Questions {
		return nil, fmt.Errorf("%s: got %d questions, config wants %d", cfg.Kind, len(questions), cfg.Questions)
	}
	if cfg.Mode == vision.ModeReaction && gen == nil {
		return nil, fmt.Errorf("%s: reaction mode needs a generator for wait windows", cfg.Kind)
	}
	return &Controller{cfg: cfg, questions: questions, gen: gen}, nil
}

// Start begins the run: resets counters, captures the session start time,
// and enters Countdown or Active. Only valid from PhaseInstructions.
func (c *Controller) Start(now time.Time) {
	if c.tornDown || c.phase != PhaseInstructions {
		return
	}
	c.idx = 0
	c.score = 0
	c.startedAt = now

	if c.cfg.CountdownSeconds > 0 {
		c.phase = PhaseCountdown
		c.countdownLeft = c.cfg.CountdownSeconds
		c.arm(TimerCountdown, countdownTick)
		return
	}
	c.enterActive()
}

func (c *Controller) enterActive() {
	c.phase = PhaseActive
	switch c.cfg.Mode {
	case vision.ModeReaction:
		c.startRound()
	case vision.ModeTimedCount:
		c.trackLeft = c.cfg.TrackSeconds
		c.blinkCount = 0
		c.arm(TimerTrack, trackTick)
	}
}

func (c *Controller) startRound() {
	c.stage = StageWait
	c.arm(TimerWait, c.gen.WaitDuration())
}

// Submit feeds a user answer. It returns false when the answer was rejected:
// outside PhaseActive, during the feedback window, or during a too-early
// pause. At most one answer is accepted per question.
func (c *Controller) Submit(answer string, now time.Time) bool {
	if c.tornDown || c.phase != PhaseActive || c.awaitingAdvance {
		return false
	}

	switch c.cfg.Mode {
	case vision.ModeReaction:
		return c.submitReaction(now)
	case vision.ModeTimedCount:
		c.blinkCount++
		return true
	case vision.ModeSteps:
		c.picks = append(c.picks, answer)
		if c.idx >= len(c.questions)-1 {
			c.finalize(now)
		} else {
			c.idx++
		}
		return true
	default:
		return c.submitAnswer(answer, now)
	}
}

func (c *Controller) submitReaction(now time.Time) bool {
	switch c.stage {
	case StageWait:
		// Jumped the gun: cancel the pending stimulus and redo the same
		// round. Index and score are untouched, so anticipatory clicking
		// cannot game the test.
		c.cancelTimer()
		c.stage = StageTooEarly
		c.arm(TimerRetry, tooEarlyPause)
		return true
	case StageReady:
		latency := int(now.Sub(c.readyAt).Milliseconds())
		c.lastLatency = latency
		c.latencies = append(c.latencies, latency)
		c.score += vision.ReactionTier(latency)
		c.awaitingAdvance = true
		c.phase = PhaseFeedback
		c.arm(TimerFeedback, c.cfg.FeedbackDelay)
		return true
	}
	return false
}

func (c *Controller) submitAnswer(answer string, now time.Time) bool {
	q := c.questions[c.idx]
	c.lastAnswer = answer
	c.lastCorrect = vision.Evaluate(q, answer)
	if c.lastCorrect {
		c.score++
		switch q.Distance {
		case vision.DistanceNear:
			c.nearCorrect++
		case vision.DistanceFar:
			c.farCorrect++
		}
	}

	c.awaitingAdvance = true
	if c.cfg.FeedbackDelay > 0 {
		c.phase = PhaseFeedback
		c.arm(TimerFeedback, c.cfg.FeedbackDelay)
	} else {
		c.advance(now)
	}
	return true
}

// advance moves past the feedback window: next question, next reaction
// round, or finalization after the last one.
func (c *Controller) advance(now time.Time) {
	c.awaitingAdvance = false
	if c.idx >= len(c.questions)-1 {
		c.finalize(now)
		return
	}
	c.idx++
	c.phase = PhaseActive
	if c.cfg.Mode == vision.ModeReaction {
		c.startRound()
	}
}

// TimerFired reports that the scheduled task with the given token ran.
// Stale tokens (cancelled timers, torn-down sessions, superseded arms) are
// ignored; the return value says whether any state changed.
func (c *Controller) TimerFired(token int, now time.Time) bool {
	if c.tornDown || c.pending == nil || c.pending.Token != token {
		return false
	}
	purpose := c.pending.Purpose
	c.pending = nil

	switch purpose {
	case TimerCountdown:
		c.countdownLeft--
		if c.countdownLeft <= 0 {
			c.enterActive()
		} else {
			c.arm(TimerCountdown, countdownTick)
		}
	case TimerWait:
		c.stage = StageReady
		c.readyAt = now
	case TimerRetry:
		c.startRound()
	case TimerFeedback:
		c.advance(now)
	case TimerTrack:
		c.trackLeft--
		if c.trackLeft <= 0 {
			c.finalize(now)
		} else {
			c.arm(TimerTrack, trackTick)
		}
	case TimerHold:
		c.phase = PhaseComplete
	}
	return true
}

func (c *Controller) finalize(now time.Time) {
	c.stage = StageNone
	duration := int(now.Sub(c.startedAt).Seconds())

	score := c.score
	var dominant string
	switch c.cfg.Mode {
	case vision.ModeTimedCount:
		score = vision.BlinkScore(c.blinkCount)
	case vision.ModeSteps:
		score = 1
		dominant = vision.Dominant(c.picks)
	}

	c.score = score
	c.result = &TestResult{
		Kind:            c.cfg.Kind,
		Score:           score,
		TotalQuestions:  c.cfg.MaxScore,
		Points:          vision.Points(c.cfg.Kind, score),
		DurationSeconds: duration,
		DominantEye:     dominant,
	}

	c.phase = PhaseFinalizing
	if c.cfg.CompleteHold > 0 {
		c.arm(TimerHold, c.cfg.CompleteHold)
	} else {
		c.phase = PhaseComplete
	}
}

// Teardown abandons the session: all pending timers are cancelled and no
// further event has any effect. An abandoned session never yields a result.
func (c *Controller) Teardown() {
	c.cancelTimer()
	c.tornDown = true
}

// TakeResult hands over the finalized result. It returns non-nil exactly
// once, on the first call after the session reaches PhaseComplete.
func (c *Controller) TakeResult() *TestResult {
	if c.phase != PhaseComplete || c.emitted {
		return nil
	}
	c.emitted = true
	return c.result
}

// PendingTimer returns the timer the owner must schedule, if any. The owner
// should check after every Start/Submit/TimerFired call.
func (c *Controller) PendingTimer() (TimerRequest, bool) {
	if c.pending == nil {
		return TimerRequest{}, false
	}
	return *c.pending, true
}

func (c *Controller) arm(purpose TimerPurpose, delay time.Duration) {
	c.timerToken++
	c.pending = &TimerRequest{Token: c.timerToken, Purpose: purpose, Delay: delay}
}

func (c *Controller) cancelTimer() {
	c.pending = nil
}

// Accessors for rendering.

func (c *Controller) Phase() Phase           { return c.phase }
func (c *Controller) Stage() Stage           { return c.stage }
func (c *Controller) Index() int             { return c.idx }
func (c *Controller) Score() int             { return c.score }
func (c *Controller) Config() vision.Config  { return c.cfg }
func (c *Controller) CountdownLeft() int     { return c.countdownLeft }
func (c *Controller) TrackLeft() int         { return c.trackLeft }
func (c *Controller) BlinkCount() int        { return c.blinkCount }
func (c *Controller) LastCorrect() bool      { return c.lastCorrect }
func (c *Controller) LastAnswer() string     { return c.lastAnswer }
func (c *Controller) LastLatency() int       { return c.lastLatency }
func (c *Controller) Latencies() []int       { return c.latencies }
func (c *Controller) AwaitingAdvance() bool  { return c.awaitingAdvance }
func (c *Controller) NearFar() (int, int)    { return c.nearCorrect, c.farCorrect }
func (c *Controller) QuestionCount() int     { return len(c.questions) }

// Question returns the current question, or nil outside question modes.
func (c *Controller) Question() *vision.Question {
	if c.idx < 0 || c.idx >= len(c.questions) {
		return nil
	}
	return &c.questions[c.idx]
}

// Elapsed returns the running session duration.
func (c *Controller) Elapsed(now time.Time) time.Duration {
	if c.startedAt.IsZero() {
		return 0
	}
	return now.Sub(c.startedAt)
}
