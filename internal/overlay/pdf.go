/*
 * Copyright (c) 2025 by Alexander Drost, Oldenburg, Germany.
 * This file is licensed to you under the Apache License, Version 2.0 (the "License"); you may not use this file except in compliance with the License.  You may obtain a copy of the License at
 *   http://www.apache.org/licenses/LICENSE-2.0
 * Unless required by applicable law or agreed to in writing, software distributed under the License is distributed on an
 * "AS IS" BASIS, WITHOUT WARRANTIES OR CONDITIONS OF ANY KIND, either express or implied.  See the License for the specific language governing permissions and limitations under the License.
 */

package overlay

import (
	"fmt"
	"io"

	"github.com/jung-kurt/gofpdf"
	"github.com/lucasb-eyer/go-colorful"

	"cagekit/internal/vector"
)

// PDF draws the cage onto a single page sized in points, one point per pixel.
type PDF struct {
	pdf *gofpdf.Fpdf
	pal palette
}

// NewPDF starts a one-page document of the given size.
func NewPDF(width, height float64, st Style) (*PDF, error) {
	p, err := st.palette()
	if err != nil {
		return nil, err
	}
	pdf := gofpdf.NewCustom(&gofpdf.InitType{
		UnitStr: "pt",
		Size:    gofpdf.SizeType{Wd: width, Ht: height},
	})
	pdf.SetTitle("Transformation cage", false)
	pdf.SetCreator("cagekit", false)
	pdf.AddPageFormat("", gofpdf.SizeType{Wd: width, Ht: height})

	setFillColor(pdf, p.background)
	pdf.Rect(0, 0, width, height, "F")
	pdf.SetLineWidth(p.LineWidth)
	return &PDF{pdf: pdf, pal: p}, nil
}

func setDrawColor(pdf *gofpdf.Fpdf, c colorful.Color) {
	col := toRGBA(c)
	pdf.SetDrawColor(int(col.R), int(col.G), int(col.B))
}

func setFillColor(pdf *gofpdf.Fpdf, c colorful.Color) {
	col := toRGBA(c)
	pdf.SetFillColor(int(col.R), int(col.G), int(col.B))
}

func pdfPoints(q vector.Quad) []gofpdf.PointType {
	out := make([]gofpdf.PointType, len(q))
	for i, p := range q {
		out[i] = gofpdf.PointType{X: p.X, Y: p.Y}
	}
	return out
}

// Node draws a selected object's outline underneath the cage.
func (p *PDF) Node(q vector.Quad) {
	setDrawColor(p.pdf, p.pal.content)
	p.pdf.Polygon(pdfPoints(q), "D")
}

func (p *PDF) Quad(q vector.Quad) {
	setDrawColor(p.pdf, p.pal.outline)
	p.pdf.Polygon(pdfPoints(q), "D")
}

func (p *PDF) Square(c vector.Pt, selected bool) {
	s := p.pal.HandleSize
	setFillColor(p.pdf, p.pal.handleFill(selected))
	setDrawColor(p.pdf, p.pal.stroke)
	p.pdf.Rect(c.X-s/2, c.Y-s/2, s, s, "FD")
}

// Output writes the finished document and closes it.
func (p *PDF) Output(w io.Writer) error {
	if err := p.pdf.Output(w); err != nil {
		return fmt.Errorf("write pdf: %w", err)
	}
	return nil
}
