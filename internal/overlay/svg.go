/*
 * Copyright (c) 2025 by Alexander Drost, Oldenburg, Germany.
 * This file is licensed to you under the Apache License, Version 2.0 (the "License"); you may not use this file except in compliance with the License.  You may obtain a copy of the License at
 *   http://www.apache.org/licenses/LICENSE-2.0
 * Unless required by applicable law or agreed to in writing, software distributed under the License is distributed on an
 * "AS IS" BASIS, WITHOUT WARRANTIES OR CONDITIONS OF ANY KIND, either express or implied.  See the License for the specific language governing permissions and limitations under the License.
 */

package overlay

import (
	"bytes"
	"fmt"
	"io"
	"math"

	"cagekit/internal/vector"
)

// SVG accumulates cage primitives as SVG markup. Coordinates are screen pixels.
type SVG struct {
	width, height float64
	pal           palette
	body          bytes.Buffer
	err           error
}

// NewSVG starts a document of the given pixel size.
func NewSVG(width, height float64, st Style) (*SVG, error) {
	p, err := st.palette()
	if err != nil {
		return nil, err
	}
	return &SVG{width: width, height: height, pal: p}, nil
}

func (s *SVG) wf(format string, args ...any) {
	if s.err != nil {
		return
	}
	_, s.err = fmt.Fprintf(&s.body, format, args...)
}

func points(q vector.Quad) string {
	var b bytes.Buffer
	for i, p := range q {
		if i > 0 {
			b.WriteByte(' ')
		}
		fmt.Fprintf(&b, "%g,%g", round3(p.X), round3(p.Y))
	}
	return b.String()
}

func round3(v float64) float64 { return math.Round(v*1000) / 1000 }

// Node draws a selected object's outline underneath the cage.
func (s *SVG) Node(q vector.Quad) {
	s.wf("  <polygon points=\"%s\" fill=\"none\" stroke=\"%s\" stroke-width=\"%g\"/>\n", points(q), s.pal.content.Hex(), s.pal.LineWidth)
}

func (s *SVG) Quad(q vector.Quad) {
	s.wf("  <polygon class=\"cage\" points=\"%s\" fill=\"none\" stroke=\"%s\" stroke-width=\"%g\"/>\n", points(q), s.pal.outline.Hex(), s.pal.LineWidth)
}

func (s *SVG) Square(c vector.Pt, selected bool) {
	h := s.pal.HandleSize / 2
	s.wf("  <rect class=\"handle\" x=\"%g\" y=\"%g\" width=\"%g\" height=\"%g\" fill=\"%s\" stroke=\"%s\" stroke-width=\"%g\"/>\n",
		round3(c.X-h), round3(c.Y-h), s.pal.HandleSize, s.pal.HandleSize, s.pal.handleFill(selected).Hex(), s.pal.stroke.Hex(), s.pal.LineWidth)
}

// WriteTo emits the complete document.
func (s *SVG) WriteTo(w io.Writer) (int64, error) {
	if s.err != nil {
		return 0, fmt.Errorf("build svg: %w", s.err)
	}
	var doc bytes.Buffer
	fmt.Fprintf(&doc, "<?xml version=\"1.0\" encoding=\"UTF-8\"?>\n")
	fmt.Fprintf(&doc, "<svg xmlns=\"http://www.w3.org/2000/svg\" version=\"1.1\" width=\"%gpx\" height=\"%gpx\" viewBox=\"0 0 %g %g\">\n", s.width, s.height, s.width, s.height)
	fmt.Fprintf(&doc, "  <rect x=\"0\" y=\"0\" width=\"%g\" height=\"%g\" fill=\"%s\"/>\n", s.width, s.height, s.pal.background.Hex())
	doc.Write(s.body.Bytes())
	doc.WriteString("</svg>\n")
	return doc.WriteTo(w)
}
