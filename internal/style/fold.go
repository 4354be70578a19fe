package style

// Style is the effective result of applying an attribute sequence in order.
// Nil colors mean "terminal default".
type Style struct {
	Bold          bool
	Dimmed        bool
	Italic        bool
	Underline     bool
	Blink         bool
	Reverse       bool
	Hidden        bool
	Strikethrough bool
	Foreground    *Color
	Background    *Color
}

// IsZero reports whether the style carries no directive at all.
func (s Style) IsZero() bool {
	return s == Style{}
}

// Fold applies attrs left to right. Later colors replace earlier ones, and
// Hidden drops any background accumulated so far so a hidden cell never
// paints the terminal background.
func Fold(attrs []Attribute) Style {
	var s Style
	for _, a := range attrs {
		switch a.Kind {
		case KindBold:
			s.Bold = true
		case KindDimmed:
			s.Dimmed = true
		case KindItalic:
			s.Italic = true
		case KindUnderline:
			s.Underline = true
		case KindBlink:
			s.Blink = true
		case KindReverse:
			s.Reverse = true
		case KindHidden:
			s.Hidden = true
			s.Background = nil
		case KindStrikethrough:
			s.Strikethrough = true
		case KindForeground:
			c := a.Color
			s.Foreground = &c
		case KindBackground:
			c := a.Color
			s.Background = &c
		}
	}
	return s
}
