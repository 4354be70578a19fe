// Package style defines the visual vocabulary shared by themes, calendar
// sources and the renderer: attributes, colors, weighted rules and the fold
// that turns an attribute sequence into one effective style.
package style

import "fmt"

// Kind identifies the category of an Attribute.
type Kind int

const (
	KindBold Kind = iota
	KindDimmed
	KindItalic
	KindUnderline
	KindBlink
	KindReverse
	KindHidden
	KindStrikethrough
	KindForeground
	KindBackground
)

// ColorMode says how a Color is encoded.
type ColorMode int

const (
	ColorNamed ColorMode = iota
	ColorFixed
	ColorRGB
)

// Named terminal colors. The values double as the ANSI palette index.
const (
	Black uint8 = iota
	Red
	Green
	Yellow
	Blue
	Purple
	Cyan
	White
)

var colorNames = [...]string{"Black", "Red", "Green", "Yellow", "Blue", "Purple", "Cyan", "White"}

// Color is one of the eight named colors, a 256-color index or 24-bit RGB.
type Color struct {
	Mode  ColorMode
	Index uint8 // named color or 256-color index
	R     uint8
	G     uint8
	B     uint8
}

func Named(c uint8) Color { return Color{Mode: ColorNamed, Index: c % 8} }

func Fixed(i uint8) Color { return Color{Mode: ColorFixed, Index: i} }

func RGB(r, g, b uint8) Color { return Color{Mode: ColorRGB, R: r, G: g, B: b} }

// Hex renders an RGB color as #rrggbb.
func (c Color) Hex() string { return fmt.Sprintf("#%02x%02x%02x", c.R, c.G, c.B) }

// NameString returns the palette name of a named color.
func (c Color) NameString() string { return colorNames[c.Index%8] }

func (c Color) String() string {
	switch c.Mode {
	case ColorFixed:
		return fmt.Sprintf("Fixed(%d)", c.Index)
	case ColorRGB:
		return fmt.Sprintf("RGB(%d,%d,%d)", c.R, c.G, c.B)
	default:
		return c.NameString()
	}
}

// Attribute is one atomic visual directive. Color is only meaningful for
// KindForeground and KindBackground.
type Attribute struct {
	Kind  Kind
	Color Color
}

var (
	Bold          = Attribute{Kind: KindBold}
	Dimmed        = Attribute{Kind: KindDimmed}
	Italic        = Attribute{Kind: KindItalic}
	Underline     = Attribute{Kind: KindUnderline}
	Blink         = Attribute{Kind: KindBlink}
	Reverse       = Attribute{Kind: KindReverse}
	Hidden        = Attribute{Kind: KindHidden}
	Strikethrough = Attribute{Kind: KindStrikethrough}
)

func FG(c Color) Attribute { return Attribute{Kind: KindForeground, Color: c} }
func BG(c Color) Attribute { return Attribute{Kind: KindBackground, Color: c} }

var effectNames = map[Kind]string{
	KindBold:          "Bold",
	KindDimmed:        "Dimmed",
	KindItalic:        "Italic",
	KindUnderline:     "Underline",
	KindBlink:         "Blink",
	KindReverse:       "Reverse",
	KindHidden:        "Hidden",
	KindStrikethrough: "Strikethrough",
}

// String returns the theme-file spelling, e.g. "Bold", "FGRed",
// "BGFixed(71)" or "FGRGB(17,18,19)".
func (a Attribute) String() string {
	if name, ok := effectNames[a.Kind]; ok {
		return name
	}
	prefix := "FG"
	if a.Kind == KindBackground {
		prefix = "BG"
	}
	switch a.Color.Mode {
	case ColorFixed:
		return fmt.Sprintf("%sFixed(%d)", prefix, a.Color.Index)
	case ColorRGB:
		return fmt.Sprintf("%sRGB(%d,%d,%d)", prefix, a.Color.R, a.Color.G, a.Color.B)
	default:
		return prefix + a.Color.NameString()
	}
}
