package swipe

// Anchor is the edge an overlay grows from.
type Anchor int

const (
	AnchorStart Anchor = iota
	AnchorEnd
)

// Overlay describes the directional band drawn over a row while it is
// dragged. Fraction is the share of the row width it covers, and doubles
// as its opacity.
type Overlay struct {
	Visible  bool
	Action   Action
	Label    string
	Anchor   Anchor
	Fraction float64
}

// OverlayFor derives the overlay for a row state.
func OverlayFor(s State, b Bindings) Overlay {
	if s.Direction == None || s.Progress <= 0 {
		return Overlay{}
	}
	action := b.For(s.Direction)
	if action == ActionNone {
		return Overlay{}
	}
	anchor := AnchorStart
	if s.Direction == RightToLeft {
		anchor = AnchorEnd
	}
	return Overlay{
		Visible:  true,
		Action:   action,
		Label:    action.String(),
		Anchor:   anchor,
		Fraction: clamp01(s.Progress),
	}
}

func clamp01(v float64) float64 {
	switch {
	case v < 0:
		return 0
	case v > 1:
		return 1
	default:
		return v
	}
}
