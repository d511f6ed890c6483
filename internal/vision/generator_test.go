package vision

import (
	"reflect"
	"strconv"
	"testing"
)

func TestGenerate_CountMatchesConfig(t *testing.T) {
	g := New(1)
	for _, kind := range AllKinds() {
		cfg, err := ConfigFor(kind)
		if err != nil {
			t.Fatalf("ConfigFor(%s): %v", kind, err)
		}
		qs, err := g.Generate(kind, 0)
		if err != nil {
			t.Fatalf("Generate(%s): %v", kind, err)
		}
		if len(qs) != cfg.Questions {
			t.Errorf("Generate(%s) returned %d questions, want %d", kind, len(qs), cfg.Questions)
		}
	}
}

func TestGenerate_UnknownKind(t *testing.T) {
	if _, err := New(1).Generate(Kind("squint"), 0); err == nil {
		t.Error("expected error for unknown kind")
	}
}

func TestGenerate_FixedTableCountMismatch(t *testing.T) {
	if _, err := New(1).Generate(KindAmsler, 5); err == nil {
		t.Error("expected misconfiguration error for wrong amsler count")
	}
}

func TestGenerate_Deterministic(t *testing.T) {
	a, err := New(42).Generate(KindColor, 0)
	if err != nil {
		t.Fatal(err)
	}
	b, err := New(42).Generate(KindColor, 0)
	if err != nil {
		t.Fatal(err)
	}
	if !reflect.DeepEqual(a, b) {
		t.Fatal("same-seed runs generated different questions")
	}

	c, err := New(43).Generate(KindColor, 0)
	if err != nil {
		t.Fatal(err)
	}
	if reflect.DeepEqual(a, c) {
		t.Error("different seeds generated identical questions")
	}
}

func TestColorQuestions_ExpectedInGrid(t *testing.T) {
	qs, err := New(7).Generate(KindColor, 0)
	if err != nil {
		t.Fatal(err)
	}
	for i, q := range qs {
		if q.GridSize != 3+i/3 {
			t.Errorf("question %d grid size = %d, want %d", i, q.GridSize, 3+i/3)
		}
		idx, err := strconv.Atoi(q.Expected)
		if err != nil {
			t.Fatalf("question %d expected %q is not an index", i, q.Expected)
		}
		if idx < 0 || idx >= q.GridSize*q.GridSize {
			t.Errorf("question %d expected index %d outside %dx%d grid", i, idx, q.GridSize, q.GridSize)
		}
	}
}

func TestNumberQuestions_UniqueOptionsContainExpected(t *testing.T) {
	qs, err := New(3).Generate(KindNumber, 0)
	if err != nil {
		t.Fatal(err)
	}
	for i, q := range qs {
		if len(q.Options) != 4 {
			t.Fatalf("question %d has %d options, want 4", i, len(q.Options))
		}
		seen := map[string]bool{}
		found := false
		for _, opt := range q.Options {
			if seen[opt] {
				t.Errorf("question %d has duplicate option %s", i, opt)
			}
			seen[opt] = true
			if opt == q.Expected {
				found = true
			}
		}
		if !found {
			t.Errorf("question %d options %v missing expected %s", i, q.Options, q.Expected)
		}
	}
}

func TestTumbling_SizeMonotonicNonIncreasing(t *testing.T) {
	qs, err := New(9).Generate(KindTumbling, 0)
	if err != nil {
		t.Fatal(err)
	}
	for i := 1; i < len(qs); i++ {
		if qs[i].SizePx > qs[i-1].SizePx {
			t.Errorf("size increased at question %d: %d > %d", i, qs[i].SizePx, qs[i-1].SizePx)
		}
	}
	for i, q := range qs {
		if q.SizePx < 50 {
			t.Errorf("question %d size %d below floor", i, q.SizePx)
		}
	}
}

func TestContrast_MonotonicNonIncreasingWithFloor(t *testing.T) {
	qs, err := New(9).Generate(KindContrast, 0)
	if err != nil {
		t.Fatal(err)
	}
	for i := 1; i < len(qs); i++ {
		if qs[i].Contrast > qs[i-1].Contrast {
			t.Errorf("contrast increased at question %d", i)
		}
	}
	for i, q := range qs {
		if q.Contrast < 0.1-1e-9 {
			t.Errorf("question %d contrast %f below floor", i, q.Contrast)
		}
	}
}

func TestLightAndFocus_BrightnessAndSizeMonotonic(t *testing.T) {
	light, err := New(1).Generate(KindLight, 0)
	if err != nil {
		t.Fatal(err)
	}
	for i := 1; i < len(light); i++ {
		if light[i].Brightness > light[i-1].Brightness {
			t.Errorf("brightness increased at question %d", i)
		}
	}

	focus, err := New(1).Generate(KindFocus, 0)
	if err != nil {
		t.Fatal(err)
	}
	// Size decreases within each distance phase.
	for i := 1; i < len(focus); i++ {
		if focus[i].Distance == focus[i-1].Distance && focus[i].SizePx > focus[i-1].SizePx {
			t.Errorf("size increased at question %d within %s phase", i, focus[i].Distance)
		}
	}
}

func TestPressure_IntensityDerivedFromExpected(t *testing.T) {
	qs, err := New(5).Generate(KindPressure, 0)
	if err != nil {
		t.Fatal(err)
	}
	want := map[string]float64{AnswerNormal: 0.3, AnswerElevated: 0.6, AnswerHigh: 0.9}
	for i, q := range qs {
		if q.Intensity != want[q.Expected] {
			t.Errorf("question %d intensity %f does not match expected bucket %s", i, q.Intensity, q.Expected)
		}
	}
}

func TestExpected_AlwaysInClosedDomain(t *testing.T) {
	g := New(11)
	for _, kind := range []Kind{KindNumber, KindPressure, KindTumbling, KindContrast, KindAmsler, KindLight} {
		qs, err := g.Generate(kind, 0)
		if err != nil {
			t.Fatalf("Generate(%s): %v", kind, err)
		}
		for i, q := range qs {
			found := false
			for _, opt := range q.Options {
				if opt == q.Expected {
					found = true
				}
			}
			if !found {
				t.Errorf("%s question %d: expected %q not among options %v", kind, i, q.Expected, q.Options)
			}
		}
	}
}
