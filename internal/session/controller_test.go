package session

import (
	"testing"
	"time"

	"github.com/eyeris-app/eyeris/internal/vision"
)

var testEpoch = time.Date(2026, 3, 14, 9, 0, 0, 0, time.UTC)

func mustController(t *testing.T, kind vision.Kind) (*Controller, vision.Config) {
	t.Helper()
	cfg, err := vision.ConfigFor(kind)
	if err != nil {
		t.Fatalf("ConfigFor(%s): %v", kind, err)
	}
	gen := vision.New(7)
	questions, err := gen.Generate(kind, 0)
	if err != nil {
		t.Fatalf("Generate(%s): %v", kind, err)
	}
	c, err := New(cfg, questions, gen)
	if err != nil {
		t.Fatalf("New(%s): %v", kind, err)
	}
	return c, cfg
}

// fire runs the pending timer and returns the time at which it fired.
func fire(t *testing.T, c *Controller, now time.Time) time.Time {
	t.Helper()
	req, ok := c.PendingTimer()
	if !ok {
		t.Fatalf("no pending timer in phase %v", c.Phase())
	}
	at := now.Add(req.Delay)
	if !c.TimerFired(req.Token, at) {
		t.Fatalf("TimerFired(%d) ignored", req.Token)
	}
	return at
}

func TestQuestionCountMismatch(t *testing.T) {
	cfg, err := vision.ConfigFor(vision.KindColor)
	if err != nil {
		t.Fatal(err)
	}
	if _, err := New(cfg, nil, nil); err == nil {
		t.Fatal("expected error for empty question slice")
	}
}

func TestColorPerfectRun(t *testing.T) {
	c, cfg := mustController(t, vision.KindColor)
	now := testEpoch
	c.Start(now)
	if c.Phase() != PhaseActive {
		t.Fatalf("phase = %v, want PhaseActive", c.Phase())
	}

	for i := 0; i < cfg.Questions; i++ {
		q := c.Question()
		if q == nil {
			t.Fatalf("no question at index %d", i)
		}
		if !c.Submit(q.Expected, now) {
			t.Fatalf("submit rejected at question %d", i)
		}
		if c.Phase() != PhaseFeedback {
			t.Fatalf("phase after submit = %v, want PhaseFeedback", c.Phase())
		}
		if !c.LastCorrect() {
			t.Fatalf("question %d marked wrong for expected answer", i)
		}
		now = fire(t, c, now)
	}

	if c.Phase() != PhaseComplete {
		t.Fatalf("phase = %v, want PhaseComplete", c.Phase())
	}
	res := c.TakeResult()
	if res == nil {
		t.Fatal("TakeResult returned nil after completion")
	}
	if res.Score != 10 || res.TotalQuestions != 10 {
		t.Errorf("score = %d/%d, want 10/10", res.Score, res.TotalQuestions)
	}
	if res.Points != 100 {
		t.Errorf("points = %d, want 100", res.Points)
	}
	if res.Kind != vision.KindColor {
		t.Errorf("kind = %s, want %s", res.Kind, vision.KindColor)
	}
	if c.TakeResult() != nil {
		t.Error("second TakeResult returned a result; want nil")
	}
}

func TestSubmitRejectedDuringFeedback(t *testing.T) {
	c, _ := mustController(t, vision.KindColor)
	now := testEpoch
	c.Start(now)

	q := c.Question()
	if !c.Submit(q.Expected, now) {
		t.Fatal("first submit rejected")
	}
	if c.Submit(q.Expected, now) {
		t.Fatal("submit accepted during feedback window")
	}
	if c.Score() != 1 {
		t.Fatalf("score = %d after duplicate submit, want 1", c.Score())
	}
	now = fire(t, c, now)
	if c.Index() != 1 {
		t.Fatalf("index = %d after feedback, want 1", c.Index())
	}
}

func TestWrongAnswerDoesNotScore(t *testing.T) {
	c, _ := mustController(t, vision.KindNumber)
	now := testEpoch
	c.Start(now)

	q := c.Question()
	wrong := ""
	for _, opt := range q.Options {
		if opt != q.Expected {
			wrong = opt
			break
		}
	}
	if !c.Submit(wrong, now) {
		t.Fatal("submit rejected")
	}
	if c.LastCorrect() {
		t.Error("wrong answer marked correct")
	}
	if c.Score() != 0 {
		t.Errorf("score = %d, want 0", c.Score())
	}
}

func TestSubmitBeforeStartRejected(t *testing.T) {
	c, _ := mustController(t, vision.KindColor)
	if c.Submit("anything", testEpoch) {
		t.Error("submit accepted before Start")
	}
}

func TestReactionTieredScoring(t *testing.T) {
	c, _ := mustController(t, vision.KindReaction)
	now := testEpoch
	c.Start(now)

	latencies := []int{150, 250, 350, 450, 550}
	wantIncrements := []int{5, 4, 3, 2, 1}
	total := 0
	for round, ms := range latencies {
		if c.Stage() != StageWait {
			t.Fatalf("round %d: stage = %v, want StageWait", round, c.Stage())
		}
		now = fire(t, c, now) // stimulus ready
		if c.Stage() != StageReady {
			t.Fatalf("round %d: stage = %v, want StageReady", round, c.Stage())
		}
		now = now.Add(time.Duration(ms) * time.Millisecond)
		if !c.Submit("", now) {
			t.Fatalf("round %d: click rejected", round)
		}
		if c.LastLatency() != ms {
			t.Errorf("round %d: latency = %d, want %d", round, c.LastLatency(), ms)
		}
		total += wantIncrements[round]
		if c.Score() != total {
			t.Errorf("round %d: score = %d, want %d", round, c.Score(), total)
		}
		now = fire(t, c, now) // feedback
	}

	if c.Phase() != PhaseFinalizing {
		t.Fatalf("phase = %v, want PhaseFinalizing", c.Phase())
	}
	now = fire(t, c, now) // complete hold
	res := c.TakeResult()
	if res == nil {
		t.Fatal("no result after hold")
	}
	if res.Score != 15 || res.TotalQuestions != 25 {
		t.Errorf("score = %d/%d, want 15/25", res.Score, res.TotalQuestions)
	}
	if res.Points != 60 {
		t.Errorf("points = %d, want 60", res.Points)
	}
}

func TestReactionTooEarlyRetriesSameRound(t *testing.T) {
	c, _ := mustController(t, vision.KindReaction)
	now := testEpoch
	c.Start(now)

	waitReq, ok := c.PendingTimer()
	if !ok {
		t.Fatal("no wait timer armed")
	}
	// Click before the stimulus appears.
	if !c.Submit("", now) {
		t.Fatal("too-early click rejected")
	}
	if c.Stage() != StageTooEarly {
		t.Fatalf("stage = %v, want StageTooEarly", c.Stage())
	}
	// The cancelled wait timer firing late must not flip the stage.
	if c.TimerFired(waitReq.Token, now.Add(waitReq.Delay)) {
		t.Error("cancelled wait timer was honored")
	}
	if c.Stage() != StageTooEarly {
		t.Fatalf("stage after stale fire = %v, want StageTooEarly", c.Stage())
	}
	// Clicks during the pause are swallowed.
	if c.Submit("", now) {
		t.Error("click accepted during too-early pause")
	}

	now = fire(t, c, now) // retry pause elapses
	if c.Stage() != StageWait {
		t.Fatalf("stage = %v after pause, want StageWait", c.Stage())
	}
	if c.Index() != 0 {
		t.Errorf("index = %d, want 0 (same round)", c.Index())
	}
	if c.Score() != 0 {
		t.Errorf("score = %d, want 0", c.Score())
	}
}

func TestDominanceMajority(t *testing.T) {
	c, _ := mustController(t, vision.KindDominance)
	now := testEpoch
	c.Start(now)

	picks := []string{
		vision.EyeLeft, vision.EyeLeft, vision.EyeRight, vision.EyeLeft,
		vision.EyeRight, vision.EyeRight, vision.EyeLeft, vision.EyeLeft,
	}
	for i, pick := range picks {
		if !c.Submit(pick, now) {
			t.Fatalf("step %d rejected", i)
		}
	}

	res := c.TakeResult()
	if res == nil {
		t.Fatal("no result after final step")
	}
	if res.DominantEye != vision.EyeLeft {
		t.Errorf("dominant eye = %q, want %q", res.DominantEye, vision.EyeLeft)
	}
	if res.Score != 1 || res.TotalQuestions != 1 {
		t.Errorf("score = %d/%d, want 1/1", res.Score, res.TotalQuestions)
	}
	if res.Points != 15 {
		t.Errorf("points = %d, want 15", res.Points)
	}
}

func TestBlinkCountdownAndWindow(t *testing.T) {
	c, cfg := mustController(t, vision.KindBlink)
	now := testEpoch
	c.Start(now)

	if c.Phase() != PhaseCountdown {
		t.Fatalf("phase = %v, want PhaseCountdown", c.Phase())
	}
	for i := 0; i < cfg.CountdownSeconds; i++ {
		now = fire(t, c, now)
	}
	if c.Phase() != PhaseActive {
		t.Fatalf("phase after countdown = %v, want PhaseActive", c.Phase())
	}
	if c.TrackLeft() != cfg.TrackSeconds {
		t.Fatalf("track window = %ds, want %ds", c.TrackLeft(), cfg.TrackSeconds)
	}

	// 17 blinks over the window sits inside the normal 15-20 range.
	for i := 0; i < 17; i++ {
		if !c.Submit("", now) {
			t.Fatalf("blink %d rejected", i)
		}
	}
	for c.Phase() == PhaseActive {
		now = fire(t, c, now)
	}
	if c.Phase() != PhaseFinalizing {
		t.Fatalf("phase = %v, want PhaseFinalizing", c.Phase())
	}
	now = fire(t, c, now) // complete hold
	res := c.TakeResult()
	if res == nil {
		t.Fatal("no result")
	}
	if res.Score != 10 || res.TotalQuestions != 10 {
		t.Errorf("score = %d/%d, want 10/10", res.Score, res.TotalQuestions)
	}
	if res.Points != 20 {
		t.Errorf("points = %d, want 20", res.Points)
	}
	if res.DurationSeconds < cfg.TrackSeconds {
		t.Errorf("duration = %ds, want at least the %ds window", res.DurationSeconds, cfg.TrackSeconds)
	}
}

func TestFocusNearFarTally(t *testing.T) {
	c, cfg := mustController(t, vision.KindFocus)
	now := testEpoch
	c.Start(now)
	for i := 0; i < cfg.CountdownSeconds; i++ {
		now = fire(t, c, now)
	}

	for i := 0; i < cfg.Questions; i++ {
		q := c.Question()
		answer := q.Expected
		if q.Distance == vision.DistanceFar {
			answer = "?" // miss every far letter
		}
		if !c.Submit(answer, now) {
			t.Fatalf("question %d rejected", i)
		}
		now = fire(t, c, now)
	}

	near, far := c.NearFar()
	if near != 5 || far != 0 {
		t.Errorf("near/far correct = %d/%d, want 5/0", near, far)
	}
	res := c.TakeResult()
	if res == nil {
		t.Fatal("no result")
	}
	if res.Score != 5 {
		t.Errorf("score = %d, want 5", res.Score)
	}
}

func TestTeardownSilencesEverything(t *testing.T) {
	c, _ := mustController(t, vision.KindColor)
	now := testEpoch
	c.Start(now)
	if !c.Submit(c.Question().Expected, now) {
		t.Fatal("submit rejected")
	}
	req, ok := c.PendingTimer()
	if !ok {
		t.Fatal("no feedback timer armed")
	}

	c.Teardown()
	if _, ok := c.PendingTimer(); ok {
		t.Error("pending timer survived teardown")
	}
	if c.TimerFired(req.Token, now.Add(req.Delay)) {
		t.Error("timer honored after teardown")
	}
	if c.Submit("anything", now) {
		t.Error("submit accepted after teardown")
	}
	if c.TakeResult() != nil {
		t.Error("torn-down session yielded a result")
	}
}

func TestScoreNeverDecreases(t *testing.T) {
	c, cfg := mustController(t, vision.KindTumbling)
	now := testEpoch
	c.Start(now)

	prev := 0
	for i := 0; i < cfg.Questions; i++ {
		q := c.Question()
		answer := q.Expected
		if i%2 == 1 {
			answer = "not-a-direction"
		}
		c.Submit(answer, now)
		if c.Score() < prev {
			t.Fatalf("score decreased from %d to %d at question %d", prev, c.Score(), i)
		}
		prev = c.Score()
		now = fire(t, c, now)
	}
	res := c.TakeResult()
	if res == nil {
		t.Fatal("no result")
	}
	if res.Score != 6 {
		t.Errorf("score = %d, want 6 (every other answer correct)", res.Score)
	}
}
