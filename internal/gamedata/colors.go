package gamedata

import (
	"fmt"
	"strconv"
	"strings"

	"github.com/gdamore/tcell/v2"
	"gopkg.in/yaml.v3"
)

// Color is a display color from the data files: "#RRGGBB" or a tcell color
// name such as "purple". The zero Color renders as white.
type Color struct {
	spec  string
	color tcell.Color
}

// ParseColor reads a "#RRGGBB" hex triplet or a tcell color name.
func ParseColor(s string) (Color, error) {
	s = strings.TrimSpace(s)
	if c, ok := tcell.ColorNames[strings.ToLower(s)]; ok {
		return Color{spec: s, color: c}, nil
	}

	hex := strings.TrimPrefix(s, "#")
	if len(hex) != 6 {
		return Color{}, fmt.Errorf("color %q: want #RRGGBB or a color name", s)
	}
	rgb, err := strconv.ParseUint(hex, 16, 32)
	if err != nil {
		return Color{}, fmt.Errorf("color %q: %w", s, err)
	}
	return Color{spec: s, color: tcell.NewHexColor(int32(rgb))}, nil
}

// MustParseColor is ParseColor for literals, panicking on error.
func MustParseColor(s string) Color {
	c, err := ParseColor(s)
	if err != nil {
		panic(err)
	}
	return c
}

// UnmarshalYAML rejects malformed colors when the data is loaded.
func (c *Color) UnmarshalYAML(node *yaml.Node) error {
	var s string
	if err := node.Decode(&s); err != nil {
		return err
	}
	parsed, err := ParseColor(s)
	if err != nil {
		return fmt.Errorf("line %d: %w", node.Line, err)
	}
	*c = parsed
	return nil
}

// TCell returns the terminal color.
func (c Color) TCell() tcell.Color {
	if c.spec == "" {
		return tcell.ColorWhite
	}
	return c.color
}

func (c Color) String() string {
	return c.spec
}
