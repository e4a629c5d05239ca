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
	"image"
	"image/draw"
	"image/png"
	"io"

	"golang.org/x/image/math/f64"
	xvector "golang.org/x/image/vector"

	"cagekit/internal/vector"
)

// Raster draws the cage anti-aliased into an RGBA image.
type Raster struct {
	img *image.RGBA
	pal palette
	z   *xvector.Rasterizer
	xf  vector.Affine2D
}

// NewRaster returns a w×h canvas filled with the style's background.
func NewRaster(w, h int, st Style) (*Raster, error) {
	if w <= 0 || h <= 0 {
		return nil, fmt.Errorf("raster size %dx%d", w, h)
	}
	p, err := st.palette()
	if err != nil {
		return nil, err
	}
	img := image.NewRGBA(image.Rect(0, 0, w, h))
	draw.Draw(img, img.Bounds(), image.NewUniform(toRGBA(p.background)), image.Point{}, draw.Src)
	return &Raster{img: img, pal: p, z: xvector.NewRasterizer(w, h), xf: vector.Identity}, nil
}

func (r *Raster) Image() *image.RGBA { return r.img }

// SetTransform maps incoming coordinates to pixels, for example to scale
// widget units onto a HiDPI canvas. Line width and handle size stay in pixels.
func (r *Raster) SetTransform(a f64.Aff3) { r.xf = vector.FromAff3(a) }

func (r *Raster) fill(poly []vector.Pt, src image.Image) {
	b := r.img.Bounds()
	r.z.Reset(b.Dx(), b.Dy())
	r.z.MoveTo(float32(poly[0].X), float32(poly[0].Y))
	for _, p := range poly[1:] {
		r.z.LineTo(float32(p.X), float32(p.Y))
	}
	r.z.ClosePath()
	r.z.Draw(r.img, b, src, image.Point{})
}

// stroke outlines a closed polygon with one band per segment.
func (r *Raster) stroke(q vector.Quad, width float64, src image.Image) {
	for i := range q {
		a, b := q[i], q[(i+1)%len(q)]
		d := b.Sub(a)
		l := d.Length()
		if l == 0 {
			continue
		}
		n := vector.Pt{X: -d.Y, Y: d.X}.Scale(width / 2 / l)
		// extend along the segment so corners join
		e := d.Scale(width / 2 / l)
		a, b = a.Sub(e), b.Add(e)
		r.fill([]vector.Pt{a.Add(n), b.Add(n), b.Sub(n), a.Sub(n)}, src)
	}
}

// Node draws a selected object's outline underneath the cage.
func (r *Raster) Node(q vector.Quad) {
	r.stroke(r.xf.ApplyQuad(q), r.pal.LineWidth, image.NewUniform(toRGBA(r.pal.content)))
}

func (r *Raster) Quad(q vector.Quad) {
	r.stroke(r.xf.ApplyQuad(q), r.pal.LineWidth, image.NewUniform(toRGBA(r.pal.outline)))
}

func (r *Raster) Square(c vector.Pt, selected bool) {
	sq := squareCorners(r.xf.Apply(c), r.pal.HandleSize)
	r.fill(sq[:], image.NewUniform(toRGBA(r.pal.handleFill(selected))))
	r.stroke(sq, r.pal.LineWidth, image.NewUniform(toRGBA(r.pal.stroke)))
}

// EncodePNG writes the canvas as PNG.
func (r *Raster) EncodePNG(w io.Writer) error {
	if err := png.Encode(w, r.img); err != nil {
		return fmt.Errorf("encode png: %w", err)
	}
	return nil
}
