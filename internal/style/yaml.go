package style

import (
	"fmt"
	"strings"

	"gopkg.in/yaml.v3"
)

type rgbValue struct {
	R uint8 `yaml:"r"`
	G uint8 `yaml:"g"`
	B uint8 `yaml:"b"`
}

// MarshalYAML writes effects and named colors as plain strings ("Bold",
// "FGRed") and the parameterized colors as single-key maps
// ({FGFixed: 17}, {BGRGB: {r: 1, g: 2, b: 3}}).
func (a Attribute) MarshalYAML() (any, error) {
	if a.Kind != KindForeground && a.Kind != KindBackground {
		return a.String(), nil
	}
	prefix := "FG"
	if a.Kind == KindBackground {
		prefix = "BG"
	}
	switch a.Color.Mode {
	case ColorFixed:
		return map[string]uint8{prefix + "Fixed": a.Color.Index}, nil
	case ColorRGB:
		return map[string]rgbValue{prefix + "RGB": {R: a.Color.R, G: a.Color.G, B: a.Color.B}}, nil
	default:
		return a.String(), nil
	}
}

func (a *Attribute) UnmarshalYAML(value *yaml.Node) error {
	switch value.Kind {
	case yaml.ScalarNode:
		parsed, err := ParseAttribute(value.Value)
		if err != nil {
			return fmt.Errorf("style: line %d: %w", value.Line, err)
		}
		*a = parsed
		return nil

	case yaml.MappingNode:
		if len(value.Content) != 2 {
			return fmt.Errorf("style: line %d: color attribute must have exactly one key", value.Line)
		}
		key := value.Content[0].Value
		kind, rest, err := splitColorPrefix(key)
		if err != nil {
			return fmt.Errorf("style: line %d: %w", value.Line, err)
		}
		switch rest {
		case "Fixed":
			var idx uint8
			if err := value.Content[1].Decode(&idx); err != nil {
				return fmt.Errorf("style: line %d: %s: %w", value.Line, key, err)
			}
			*a = Attribute{Kind: kind, Color: Fixed(idx)}
		case "RGB":
			var v rgbValue
			if err := value.Content[1].Decode(&v); err != nil {
				return fmt.Errorf("style: line %d: %s: %w", value.Line, key, err)
			}
			*a = Attribute{Kind: kind, Color: RGB(v.R, v.G, v.B)}
		default:
			return fmt.Errorf("style: line %d: unknown style name %q", value.Line, key)
		}
		return nil

	default:
		return fmt.Errorf("style: line %d: unsupported style value", value.Line)
	}
}

// ParseAttribute parses the string spelling of an attribute, including the
// inline forms "FGFixed(17)" and "BGRGB(1,2,3)".
func ParseAttribute(s string) (Attribute, error) {
	s = strings.TrimSpace(s)
	for kind, name := range effectNames {
		if s == name {
			return Attribute{Kind: kind}, nil
		}
	}

	kind, rest, err := splitColorPrefix(s)
	if err != nil {
		return Attribute{}, err
	}
	for i, name := range colorNames {
		if rest == name {
			return Attribute{Kind: kind, Color: Named(uint8(i))}, nil
		}
	}

	var idx, r, g, b uint8
	if _, err := fmt.Sscanf(rest, "Fixed(%d)", &idx); err == nil {
		return Attribute{Kind: kind, Color: Fixed(idx)}, nil
	}
	if _, err := fmt.Sscanf(rest, "RGB(%d,%d,%d)", &r, &g, &b); err == nil {
		return Attribute{Kind: kind, Color: RGB(r, g, b)}, nil
	}
	return Attribute{}, fmt.Errorf("unknown style name %q", s)
}

func splitColorPrefix(s string) (Kind, string, error) {
	switch {
	case strings.HasPrefix(s, "FG"):
		return KindForeground, s[2:], nil
	case strings.HasPrefix(s, "BG"):
		return KindBackground, s[2:], nil
	default:
		return 0, "", fmt.Errorf("unknown style name %q", s)
	}
}
