package vision

import "testing"

func TestEvaluate(t *testing.T) {
	tests := []struct {
		name      string
		q         Question
		submitted string
		want      bool
	}{
		{"color index match", Question{Kind: KindColor, Expected: "4"}, "4", true},
		{"color index miss", Question{Kind: KindColor, Expected: "4"}, "5", false},
		{"number match", Question{Kind: KindNumber, Expected: "42"}, "42", true},
		{"tumbling direction", Question{Kind: KindTumbling, Expected: AnswerLeft}, AnswerLeft, true},
		{"tumbling wrong direction", Question{Kind: KindTumbling, Expected: AnswerLeft}, AnswerUp, false},
		{"contrast orientation", Question{Kind: KindContrast, Expected: AnswerDiagonalRight}, AnswerDiagonalRight, true},
		{"pressure bucket", Question{Kind: KindPressure, Expected: AnswerElevated}, AnswerElevated, true},
		{"amsler yes", Question{Kind: KindAmsler, Expected: AnswerYes}, AnswerYes, true},
		{"light not visible", Question{Kind: KindLight, Expected: AnswerNotVisible}, AnswerNotVisible, true},
		{"focus case insensitive", Question{Kind: KindFocus, Expected: "E"}, "e", true},
		{"focus trims whitespace", Question{Kind: KindFocus, Expected: "P"}, " p ", true},
		{"focus wrong letter", Question{Kind: KindFocus, Expected: "E"}, "F", false},
		{"garbage input is just wrong", Question{Kind: KindTumbling, Expected: AnswerUp}, "sideways", false},
		{"empty input is just wrong", Question{Kind: KindAmsler, Expected: AnswerYes}, "", false},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := Evaluate(tt.q, tt.submitted); got != tt.want {
				t.Errorf("Evaluate(%v, %q) = %v, want %v", tt.q.Kind, tt.submitted, got, tt.want)
			}
		})
	}
}
