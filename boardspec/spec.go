package boardspec

import (
	"fmt"
	"image/color"
	"os"
	"path/filepath"
	"strconv"
	"strings"

	"gopkg.in/yaml.v3"
)

// Board describes a prototyping board: the viewport, the pan modifier,
// the initial card set and an optional layout script.
type Board struct {
	Name        string       `yaml:"name"`
	Viewport    ViewportSpec `yaml:"viewport"`
	PanModifier string       `yaml:"pan_modifier"`
	Layout      string       `yaml:"layout"`
	LayoutFile  string       `yaml:"layout_file"`
	Cards       []CardSpec   `yaml:"cards"`
}

type ViewportSpec struct {
	Width  int `yaml:"width"`
	Height int `yaml:"height"`
}

// CardSpec is one overlay card: its world position, footprint and color.
type CardSpec struct {
	Name   string     `yaml:"name"`
	X      float64    `yaml:"x"`
	Y      float64    `yaml:"y"`
	Width  float64    `yaml:"width"`
	Height float64    `yaml:"height"`
	Color  *YAMLColor `yaml:"color"`
}

// Parse unmarshals and validates a board definition.
func Parse(data []byte) (*Board, error) {
	var b Board
	if err := yaml.Unmarshal(data, &b); err != nil {
		return nil, fmt.Errorf("boardspec: unmarshal board: %w", err)
	}
	if err := b.validate(); err != nil {
		return nil, err
	}
	return &b, nil
}

// Load reads a board file from disk. A layout_file reference is
// resolved relative to the board file and inlined into Layout.
func Load(path string) (*Board, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("boardspec: load %s: %w", path, err)
	}
	b, err := Parse(data)
	if err != nil {
		return nil, err
	}
	if b.LayoutFile != "" {
		src, err := os.ReadFile(filepath.Join(filepath.Dir(path), b.LayoutFile))
		if err != nil {
			return nil, fmt.Errorf("boardspec: load layout %s: %w", b.LayoutFile, err)
		}
		b.Layout = string(src)
	}
	return b, nil
}

func (b *Board) validate() error {
	if b.Viewport.Width <= 0 || b.Viewport.Height <= 0 {
		return fmt.Errorf("boardspec: viewport must have positive size, got %dx%d", b.Viewport.Width, b.Viewport.Height)
	}
	seen := make(map[string]bool, len(b.Cards))
	for i, c := range b.Cards {
		if c.Name == "" {
			return fmt.Errorf("boardspec: card %d has no name", i)
		}
		if seen[c.Name] {
			return fmt.Errorf("boardspec: duplicate card name %q", c.Name)
		}
		seen[c.Name] = true
		if c.Width < 0 || c.Height < 0 {
			return fmt.Errorf("boardspec: card %q has negative size", c.Name)
		}
	}
	return nil
}

// YAMLColor parses "#rrggbb" or "#rrggbbaa" scalars.
type YAMLColor struct {
	color.Color
}

func (c *YAMLColor) UnmarshalYAML(value *yaml.Node) error {
	if value.Kind != yaml.ScalarNode {
		return fmt.Errorf("color must be a string")
	}

	s := strings.TrimPrefix(value.Value, "#")

	if len(s) != 6 && len(s) != 8 {
		return fmt.Errorf("invalid color format: %s", value.Value)
	}

	parse := func(start int) (uint8, error) {
		v, err := strconv.ParseUint(s[start:start+2], 16, 8)
		return uint8(v), err
	}

	r, err := parse(0)
	if err != nil {
		return err
	}
	g, err := parse(2)
	if err != nil {
		return err
	}
	b, err := parse(4)
	if err != nil {
		return err
	}

	a := uint8(255)
	if len(s) == 8 {
		a, err = parse(6)
		if err != nil {
			return err
		}
	}

	c.Color = color.NRGBA{R: r, G: g, B: b, A: a}
	return nil
}
