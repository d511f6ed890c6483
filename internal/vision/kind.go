package vision

// Kind identifies one of the vision test types.
type Kind string

const (
	KindColor     Kind = "color"     // spot the odd-colored cell
	KindNumber    Kind = "number"    // hidden number recognition
	KindPressure  Kind = "pressure"  // pattern comfort self-report
	KindTumbling  Kind = "tumbling"  // tumbling-E direction at shrinking sizes
	KindContrast  Kind = "contrast"  // stripe orientation at fading contrast
	KindAmsler    Kind = "amsler"    // Amsler grid self-check
	KindReaction  Kind = "reaction"  // visual reaction speed
	KindBlink     Kind = "blink"     // blink-rate self-count over one minute
	KindLight     Kind = "light"     // letter detection at fading brightness
	KindFocus     Kind = "focus"     // near/far letter recognition
	KindDominance Kind = "dominance" // eye dominance step sequence
)

// AllKinds returns every test kind in dashboard display order.
func AllKinds() []Kind {
	return []Kind{
		KindColor,
		KindNumber,
		KindPressure,
		KindTumbling,
		KindContrast,
		KindAmsler,
		KindReaction,
		KindBlink,
		KindLight,
		KindFocus,
		KindDominance,
	}
}

// Valid reports whether k names a known test kind.
func (k Kind) Valid() bool {
	switch k {
	case KindColor, KindNumber, KindPressure, KindTumbling, KindContrast,
		KindAmsler, KindReaction, KindBlink, KindLight, KindFocus, KindDominance:
		return true
	}
	return false
}

// Label returns the human-readable test name.
func (k Kind) Label() string {
	switch k {
	case KindColor:
		return "Color Vision"
	case KindNumber:
		return "Number Recognition"
	case KindPressure:
		return "Eye Pressure Check"
	case KindTumbling:
		return "Tumbling E"
	case KindContrast:
		return "Contrast Sensitivity"
	case KindAmsler:
		return "Amsler Grid"
	case KindReaction:
		return "Reaction Speed"
	case KindBlink:
		return "Blink Rate"
	case KindLight:
		return "Light Sensitivity"
	case KindFocus:
		return "Focus Shift"
	case KindDominance:
		return "Eye Dominance"
	}
	return string(k)
}
