package home

import (
	"strings"
	"testing"

	tea "charm.land/bubbletea/v2"

	"github.com/eyeris-app/eyeris/internal/history"
	"github.com/eyeris-app/eyeris/internal/router"
	"github.com/eyeris-app/eyeris/internal/vision"
)

func specialKey(code rune) tea.KeyPressMsg {
	return tea.KeyPressMsg{Code: code}
}

func TestMenuListsEveryKind(t *testing.T) {
	h := New(history.NewMemoryStore())

	want := len(vision.AllKinds()) + 2 // plus RESULTS and EXIT
	if len(h.labels) != want {
		t.Fatalf("expected %d menu items, got %d", want, len(h.labels))
	}
	if h.labels[len(h.labels)-1] != "EXIT" {
		t.Errorf("expected last item EXIT, got %q", h.labels[len(h.labels)-1])
	}
}

func TestNavigationClampsAtEdges(t *testing.T) {
	h := New(history.NewMemoryStore())

	h.Update(specialKey(tea.KeyUp))
	if h.selected != 0 {
		t.Errorf("expected selection to stay at 0, got %d", h.selected)
	}

	for i := 0; i < len(h.labels)+5; i++ {
		h.Update(specialKey(tea.KeyDown))
	}
	if h.selected != len(h.labels)-1 {
		t.Errorf("expected selection at %d, got %d", len(h.labels)-1, h.selected)
	}
}

func TestEnterOnKindPushesTestScreen(t *testing.T) {
	h := New(history.NewMemoryStore())

	_, cmd := h.Update(specialKey(tea.KeyEnter))
	if cmd == nil {
		t.Fatal("expected a command from enter on a test kind")
	}
	msg := cmd()
	push, ok := msg.(router.PushScreenMsg)
	if !ok {
		t.Fatalf("expected PushScreenMsg, got %T", msg)
	}
	if push.Screen.Title() != vision.AllKinds()[0].Label() {
		t.Errorf("expected first kind's screen, got %q", push.Screen.Title())
	}
}

func TestEnterOnExitQuits(t *testing.T) {
	h := New(history.NewMemoryStore())
	h.selected = len(h.labels) - 1

	_, cmd := h.Update(specialKey(tea.KeyEnter))
	if cmd == nil {
		t.Fatal("expected quit command")
	}
	if _, ok := cmd().(tea.QuitMsg); !ok {
		t.Error("expected tea.QuitMsg from EXIT")
	}
}

func TestLastRunLine(t *testing.T) {
	store := history.NewMemoryStore()
	h := New(store)

	if got := h.lastRunLine(); got != "" {
		t.Errorf("expected empty line before any run, got %q", got)
	}

	h.Update(statsLoadedMsg{last: &history.Entry{
		Kind:           vision.KindColor,
		Score:          9,
		TotalQuestions: 10,
		Points:         90,
	}})
	got := h.lastRunLine()
	if !strings.Contains(got, "Color Vision") || !strings.Contains(got, "9/10") || !strings.Contains(got, "+90") {
		t.Errorf("unexpected last-run line %q", got)
	}

	h.Update(statsLoadedMsg{last: &history.Entry{
		Kind:        vision.KindDominance,
		Score:       1,
		Points:      15,
		DominantEye: "left",
	}})
	got = h.lastRunLine()
	if !strings.Contains(got, "left eye") {
		t.Errorf("expected dominant eye in line, got %q", got)
	}
}

func TestInitLoadsNewestEntry(t *testing.T) {
	store := history.NewMemoryStore()
	if err := store.Record(history.Entry{ID: "old", Kind: vision.KindColor}); err != nil {
		t.Fatal(err)
	}
	if err := store.Record(history.Entry{ID: "new", Kind: vision.KindBlink}); err != nil {
		t.Fatal(err)
	}

	h := New(store)
	msg := h.Init()()
	loaded, ok := msg.(statsLoadedMsg)
	if !ok {
		t.Fatalf("expected statsLoadedMsg, got %T", msg)
	}
	if loaded.last == nil || loaded.last.ID != "new" {
		t.Errorf("expected newest entry, got %+v", loaded.last)
	}
}
