package summary

import (
	"errors"
	"strings"
	"testing"

	tea "charm.land/bubbletea/v2"

	"github.com/eyeris-app/eyeris/internal/history"
	"github.com/eyeris-app/eyeris/internal/vision"
)

func testEntry() history.Entry {
	return history.Entry{
		ID:              "e1",
		Kind:            vision.KindColor,
		Date:            "2026-03-14T09:00:00Z",
		Score:           9,
		TotalQuestions:  10,
		Points:          90,
		DurationSeconds: 95,
	}
}

func TestSummaryScreen_Title(t *testing.T) {
	s := New(testEntry(), nil)
	if s.Title() != "Results" {
		t.Errorf("Title = %q, want %q", s.Title(), "Results")
	}
}

func TestSummaryScreen_Display(t *testing.T) {
	s := New(testEntry(), nil)
	view := s.View(80, 24)
	if !strings.Contains(view, "9 / 10") {
		t.Errorf("view missing score, got:\n%s", view)
	}
	if !strings.Contains(view, "+90 points") {
		t.Errorf("view missing points, got:\n%s", view)
	}
	if !strings.Contains(view, "1:35") {
		t.Errorf("view missing duration, got:\n%s", view)
	}
}

func TestSummaryScreen_DominantEye(t *testing.T) {
	e := testEntry()
	e.Kind = vision.KindDominance
	e.Score = 1
	e.TotalQuestions = 1
	e.DominantEye = vision.EyeLeft
	s := New(e, nil)

	view := s.View(80, 24)
	if !strings.Contains(view, "LEFT") {
		t.Errorf("view missing dominant eye, got:\n%s", view)
	}
	if strings.Contains(view, "1 / 1") {
		t.Error("eye dominance should show the eye, not a score fraction")
	}
}

func TestSummaryScreen_RecordError(t *testing.T) {
	s := New(testEntry(), errors.New("disk full"))
	view := s.View(80, 24)
	if !strings.Contains(view, "disk full") {
		t.Errorf("view missing save failure note, got:\n%s", view)
	}
}

func TestSummaryScreen_Navigation_Enter(t *testing.T) {
	s := New(testEntry(), nil)
	_, cmd := s.Update(tea.KeyPressMsg{Code: tea.KeyEnter})
	if cmd == nil {
		t.Error("expected a command on Enter (pop)")
	}
}
