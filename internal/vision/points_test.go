package vision

import "testing"

func TestPoints_FlatMultipliers(t *testing.T) {
	tests := []struct {
		kind  Kind
		score int
		want  int
	}{
		{KindColor, 10, 100},
		{KindNumber, 7, 105},
		{KindPressure, 8, 160},
		{KindTumbling, 12, 144},
		{KindContrast, 6, 90},
		{KindAmsler, 8, 144},
		{KindReaction, 15, 60},
		{KindBlink, 10, 20},
		{KindLight, 9, 18},
		{KindFocus, 10, 20},
		{KindDominance, 1, 15},
		{KindDominance, 0, 15}, // flat award regardless of score
	}
	for _, tt := range tests {
		if got := Points(tt.kind, tt.score); got != tt.want {
			t.Errorf("Points(%s, %d) = %d, want %d", tt.kind, tt.score, got, tt.want)
		}
	}
}

func TestReactionTier(t *testing.T) {
	tests := []struct {
		latency int
		want    int
	}{
		{150, 5},
		{199, 5},
		{200, 4},
		{250, 4},
		{350, 3},
		{450, 2},
		{500, 1},
		{550, 1},
	}
	for _, tt := range tests {
		if got := ReactionTier(tt.latency); got != tt.want {
			t.Errorf("ReactionTier(%d) = %d, want %d", tt.latency, got, tt.want)
		}
	}
}

func TestBlinkScore(t *testing.T) {
	tests := []struct {
		blinks int
		want   int
	}{
		{17, 10}, // in normal range
		{15, 10},
		{20, 10},
		{22, 8},  // within 3
		{12, 8},
		{25, 6},  // within 5
		{10, 6},
		{28, 4},  // within 8
		{7, 4},
		{40, 2},
		{0, 2},
	}
	for _, tt := range tests {
		if got := BlinkScore(tt.blinks); got != tt.want {
			t.Errorf("BlinkScore(%d) = %d, want %d", tt.blinks, got, tt.want)
		}
	}
}

func TestDominant(t *testing.T) {
	tests := []struct {
		name  string
		picks []string
		want  string
	}{
		{"left majority", []string{EyeLeft, EyeLeft, EyeRight, EyeLeft, EyeRight, EyeRight, EyeLeft, EyeLeft}, EyeLeft},
		{"right majority", []string{EyeRight, EyeRight, EyeLeft}, EyeRight},
		{"tie", []string{EyeLeft, EyeRight}, EyeNeither},
		{"all neither", []string{EyeNeither, EyeNeither}, EyeNeither},
		{"empty", nil, EyeNeither},
		{"neither ignored", []string{EyeLeft, EyeNeither, EyeNeither, EyeNeither}, EyeLeft},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := Dominant(tt.picks); got != tt.want {
				t.Errorf("Dominant(%v) = %s, want %s", tt.picks, got, tt.want)
			}
		})
	}
}
