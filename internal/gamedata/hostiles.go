package gamedata

import "github.com/gdamore/tcell/v2"

// HostileDef defines a hostile type loaded from YAML.
type HostileDef struct {
	ID      string `yaml:"id"`      // Unique identifier (e.g., "lurker")
	Name    string `yaml:"name"`    // Display name (e.g., "Big Lurker")
	Kind    string `yaml:"kind"`    // Type tag consulted by the hostile action table
	Glyph   string `yaml:"glyph"`   // Single character for rendering (e.g., "l")
	Color   Color  `yaml:"color"`   // Hex color code or name (e.g., "#00FF00")
	HP      int    `yaml:"hp"`      // Base hit points
	Attack  int    `yaml:"attack"`  // Base attack power
	Defense int    `yaml:"defense"` // Base defense value
}

// GlyphRune returns the glyph as a rune for rendering.
func (h *HostileDef) GlyphRune() rune {
	if len(h.Glyph) == 0 {
		return '?'
	}
	return rune(h.Glyph[0])
}

// TCellColor returns the color as a tcell.Color.
func (h *HostileDef) TCellColor() tcell.Color {
	return h.Color.TCell()
}

// hostilesFile represents the structure of hostiles.yaml.
type hostilesFile struct {
	Hostiles []HostileDef `yaml:"hostiles"`
}

// LoadHostiles loads hostile definitions from the embedded hostiles.yaml file.
func LoadHostiles() ([]HostileDef, error) {
	file, err := Load[hostilesFile]("hostiles.yaml")
	if err != nil {
		return nil, err
	}
	return file.Hostiles, nil
}
