/*
 * Copyright (c) 2025 by Alexander Drost, Oldenburg, Germany.
 * This file is licensed to you under the Apache License, Version 2.0 (the "License"); you may not use this file except in compliance with the License.  You may obtain a copy of the License at
 *   http://www.apache.org/licenses/LICENSE-2.0
 * Unless required by applicable law or agreed to in writing, software distributed under the License is distributed on an
 * "AS IS" BASIS, WITHOUT WARRANTIES OR CONDITIONS OF ANY KIND, either express or implied.  See the License for the specific language governing permissions and limitations under the License.
 */

// Package overlay draws the transformation cage (outline and handle squares)
// to SVG, PNG and PDF targets, and records it for tests.
package overlay

import (
	"fmt"
	"image/color"

	"github.com/lucasb-eyer/go-colorful"

	"cagekit/internal/cage"
	"cagekit/internal/vector"
)

// Renderer receives cage primitives. Every renderer in this package
// satisfies it, and so does anything accepted by BoundingBoxManager.RenderOverlays.
type Renderer = cage.OverlayRenderer

// Style controls colours and sizes. Colours are hex strings such as "#1e88e5".
// Zero values are replaced by DefaultStyle's.
type Style struct {
	Background   string  `yaml:"background" json:"background"`
	Outline      string  `yaml:"outline" json:"outline"`
	HandleFill   string  `yaml:"handleFill" json:"handleFill"`
	HandleStroke string  `yaml:"handleStroke" json:"handleStroke"`
	Selected     string  `yaml:"selected" json:"selected"`
	Content      string  `yaml:"content" json:"content"`
	HandleSize   float64 `yaml:"handleSize" json:"handleSize"`
	LineWidth    float64 `yaml:"lineWidth" json:"lineWidth"`
}

// DefaultStyle mirrors the usual editor look: blue outline, white handles.
func DefaultStyle() Style {
	return Style{
		Background:   "#ffffff",
		Outline:      "#1e88e5",
		HandleFill:   "#ffffff",
		HandleStroke: "#1e88e5",
		Selected:     "#1e88e5",
		Content:      "#9e9e9e",
		HandleSize:   8,
		LineWidth:    1,
	}
}

func (s Style) withDefaults() Style {
	d := DefaultStyle()
	pick := func(v *string, def string) {
		if *v == "" {
			*v = def
		}
	}
	pick(&s.Background, d.Background)
	pick(&s.Outline, d.Outline)
	pick(&s.HandleFill, d.HandleFill)
	pick(&s.HandleStroke, d.HandleStroke)
	pick(&s.Selected, d.Selected)
	pick(&s.Content, d.Content)
	if s.HandleSize <= 0 {
		s.HandleSize = d.HandleSize
	}
	if s.LineWidth <= 0 {
		s.LineWidth = d.LineWidth
	}
	return s
}

// palette is a Style with its colours parsed.
type palette struct {
	Style
	background, outline, fill, stroke, selected, content colorful.Color
}

func (s Style) palette() (palette, error) {
	s = s.withDefaults()
	p := palette{Style: s}
	for _, c := range []struct {
		name string
		hex  string
		dst  *colorful.Color
	}{
		{"background", s.Background, &p.background},
		{"outline", s.Outline, &p.outline},
		{"handleFill", s.HandleFill, &p.fill},
		{"handleStroke", s.HandleStroke, &p.stroke},
		{"selected", s.Selected, &p.selected},
		{"content", s.Content, &p.content},
	} {
		col, err := colorful.Hex(c.hex)
		if err != nil {
			return palette{}, fmt.Errorf("style %s %q: %w", c.name, c.hex, err)
		}
		*c.dst = col
	}
	return p, nil
}

// Validate reports the first malformed colour.
func (s Style) Validate() error {
	_, err := s.palette()
	return err
}

func (p palette) handleFill(selected bool) colorful.Color {
	if selected {
		return p.selected
	}
	return p.fill
}

func toRGBA(c colorful.Color) color.RGBA {
	r, g, b := c.Clamped().RGB255()
	return color.RGBA{R: r, G: g, B: b, A: 255}
}

// squareCorners returns the axis-aligned handle square around c.
func squareCorners(c vector.Pt, size float64) vector.Quad {
	h := size / 2
	return vector.QuadFromBounds(vector.B(c.X-h, c.Y-h, c.X+h, c.Y+h))
}
