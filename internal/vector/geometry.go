/*
 * Copyright (c) 2025 by Alexander Drost, Oldenburg, Germany.
 * This file is licensed to you under the Apache License, Version 2.0 (the "License"); you may not use this file except in compliance with the License.  You may obtain a copy of the License at
 *   http://www.apache.org/licenses/LICENSE-2.0
 * Unless required by applicable law or agreed to in writing, software distributed under the License is distributed on an
 * "AS IS" BASIS, WITHOUT WARRANTIES OR CONDITIONS OF ANY KIND, either express or implied.  See the License for the specific language governing permissions and limitations under the License.
 */

package vector

// Basic 2D geometry and transforms for the transformation cage.
// Values use float64 so hit-testing and resize math stay stable on tiny or
// inverted boxes.

import (
	"math"

	"golang.org/x/image/math/f64"
)

// Epsilon is the float64 machine epsilon.
const Epsilon = 0x1p-52

// DegenerateSize is the axis length below which a box is treated as flat.
const DegenerateSize = Epsilon * 1000

// Pt is a 2D point. It doubles as a displacement vector.
type Pt struct{ X, Y float64 }

func P(x, y float64) Pt { return Pt{X: x, Y: y} }

// Splat returns a point with both components set to v.
func Splat(v float64) Pt { return Pt{v, v} }

func (p Pt) Add(q Pt) Pt          { return Pt{p.X + q.X, p.Y + q.Y} }
func (p Pt) Sub(q Pt) Pt          { return Pt{p.X - q.X, p.Y - q.Y} }
func (p Pt) Mul(q Pt) Pt          { return Pt{p.X * q.X, p.Y * q.Y} }
func (p Pt) Div(q Pt) Pt          { return Pt{p.X / q.X, p.Y / q.Y} }
func (p Pt) Scale(s float64) Pt   { return Pt{p.X * s, p.Y * s} }
func (p Pt) Dot(q Pt) float64     { return p.X*q.X + p.Y*q.Y }
func (p Pt) Cross(q Pt) float64   { return p.X*q.Y - p.Y*q.X }
func (p Pt) Length() float64      { return math.Hypot(p.X, p.Y) }
func (p Pt) Min(q Pt) Pt          { return Pt{math.Min(p.X, q.X), math.Min(p.Y, q.Y)} }
func (p Pt) Max(q Pt) Pt          { return Pt{math.Max(p.X, q.X), math.Max(p.Y, q.Y)} }
func (p Pt) Abs() Pt              { return Pt{math.Abs(p.X), math.Abs(p.Y)} }

// Lerp interpolates linearly from p to q.
func (p Pt) Lerp(q Pt, t float64) Pt { return p.Add(q.Sub(p).Scale(t)) }

// Signum returns +1 or -1 per component, following the sign bit (so -0 maps to -1).
// NaN components stay NaN.
func (p Pt) Signum() Pt { return Pt{signum(p.X), signum(p.Y)} }

func signum(v float64) float64 {
	if math.IsNaN(v) {
		return v
	}
	return math.Copysign(1, v)
}

// SafeDiv divides component-wise, replacing any non-finite component with fallback.
func (p Pt) SafeDiv(q Pt, fallback float64) Pt {
	return Pt{SafeDiv(p.X, q.X, fallback), SafeDiv(p.Y, q.Y, fallback)}
}

// AngleBetween returns the signed angle in radians that rotates p onto q.
// Zero-length inputs yield 0.
func (p Pt) AngleBetween(q Pt) float64 {
	return math.Atan2(p.Cross(q), p.Dot(q))
}

// Angle returns the angle of p measured from the positive X axis.
func (p Pt) Angle() float64 { return math.Atan2(p.Y, p.X) }

func (p Pt) IsFinite() bool { return isFinite(p.X) && isFinite(p.Y) }

// SafeDiv returns a/b, or fallback if the quotient is NaN or infinite.
func SafeDiv(a, b, fallback float64) float64 {
	return FiniteOr(a/b, fallback)
}

// FiniteOr returns v unless it is NaN or infinite.
func FiniteOr(v, fallback float64) float64 {
	if !isFinite(v) {
		return fallback
	}
	return v
}

func isFinite(v float64) bool { return !math.IsNaN(v) && !math.IsInf(v, 0) }

// Bounds is a box given by two opposite corners in local space.
// The corners are not required to be ordered; a corner 0 beyond corner 1
// represents a flipped box.
type Bounds [2]Pt

func B(x0, y0, x1, y1 float64) Bounds { return Bounds{{x0, y0}, {x1, y1}} }

// FromRect builds bounds from an origin and a (possibly negative) size.
func FromRect(origin, size Pt) Bounds { return Bounds{origin, origin.Add(size)} }

func (b Bounds) Min() Pt    { return b[0].Min(b[1]) }
func (b Bounds) Max() Pt    { return b[0].Max(b[1]) }
func (b Bounds) Size() Pt   { return b[1].Sub(b[0]) }
func (b Bounds) Center() Pt { return b[0].Add(b[1]).Scale(0.5) }

// Canon returns the bounds ordered as (min, max).
func (b Bounds) Canon() Bounds { return Bounds{b.Min(), b.Max()} }

func (b Bounds) Contains(p Pt) bool {
	mn, mx := b.Min(), b.Max()
	return p.X >= mn.X && p.Y >= mn.Y && p.X <= mx.X && p.Y <= mx.Y
}

// Union returns the minimal ordered bounds containing both.
func (b Bounds) Union(o Bounds) Bounds {
	return Bounds{b.Min().Min(o.Min()), b.Max().Max(o.Max())}
}

// Quad returns the box corners mapped through m.
func (b Bounds) Quad(m Affine2D) Quad { return m.ApplyQuad(QuadFromBounds(b)) }

// Translate shifts both corners by d.
func (b Bounds) Translate(d Pt) Bounds { return Bounds{b[0].Add(d), b[1].Add(d)} }

// Quad is a closed four-point outline, typically a transformed box.
type Quad [4]Pt

// QuadFromBounds returns the box corners in order min, (max.x,min.y), max, (min.x,max.y).
func QuadFromBounds(b Bounds) Quad {
	mn, mx := b[0], b[1]
	return Quad{mn, {mx.X, mn.Y}, mx, {mn.X, mx.Y}}
}

// Bounds returns the axis-aligned bounds of the quad.
func (q Quad) Bounds() Bounds {
	b := Bounds{q[0], q[0]}
	for _, p := range q[1:] {
		b = Bounds{b[0].Min(p), b[1].Max(p)}
	}
	return b
}

// Affine2D represents a 2D affine transform as matrix:
// | a c e |
// | b d f |
// | 0 0 1 |
// stored as [a b c d e f].
type Affine2D struct{ A, B, C, D, E, F float64 }

var Identity = Affine2D{A: 1, D: 1}

// Mul composes m after n: m.Mul(n).Apply(p) == m.Apply(n.Apply(p)).
func (m Affine2D) Mul(n Affine2D) Affine2D {
	return Affine2D{
		A: m.A*n.A + m.C*n.B,
		B: m.B*n.A + m.D*n.B,
		C: m.A*n.C + m.C*n.D,
		D: m.B*n.C + m.D*n.D,
		E: m.A*n.E + m.C*n.F + m.E,
		F: m.B*n.E + m.D*n.F + m.F,
	}
}

func (m Affine2D) Apply(p Pt) Pt {
	return Pt{
		X: m.A*p.X + m.C*p.Y + m.E,
		Y: m.B*p.X + m.D*p.Y + m.F,
	}
}

// ApplyVector transforms a direction, ignoring translation.
func (m Affine2D) ApplyVector(v Pt) Pt {
	return Pt{
		X: m.A*v.X + m.C*v.Y,
		Y: m.B*v.X + m.D*v.Y,
	}
}

func (m Affine2D) ApplyQuad(q Quad) Quad {
	return Quad{m.Apply(q[0]), m.Apply(q[1]), m.Apply(q[2]), m.Apply(q[3])}
}

func (m Affine2D) Det() float64 { return m.A*m.D - m.B*m.C }

// Inverse returns the inverse transform, or Identity when m is singular.
func (m Affine2D) Inverse() Affine2D {
	det := m.Det()
	if det == 0 || !isFinite(det) {
		return Identity
	}
	invDet := 1 / det
	return Affine2D{
		A: m.D * invDet,
		B: -m.B * invDet,
		C: -m.C * invDet,
		D: m.A * invDet,
		E: (m.C*m.F - m.D*m.E) * invDet,
		F: (m.B*m.E - m.A*m.F) * invDet,
	}
}

func (m Affine2D) Translation() Pt { return Pt{m.E, m.F} }

// Aff3 converts to the row-major layout used by golang.org/x/image.
func (m Affine2D) Aff3() f64.Aff3 {
	return f64.Aff3{m.A, m.C, m.E, m.B, m.D, m.F}
}

// FromAff3 is the inverse of Aff3.
func FromAff3(a f64.Aff3) Affine2D {
	return Affine2D{A: a[0], C: a[1], E: a[2], B: a[3], D: a[4], F: a[5]}
}

func Translate(tx, ty float64) Affine2D { return Affine2D{A: 1, D: 1, E: tx, F: ty} }
func TranslateVec(v Pt) Affine2D        { return Translate(v.X, v.Y) }
func Scale(sx, sy float64) Affine2D     { return Affine2D{A: sx, D: sy} }
func ScaleVec(s Pt) Affine2D            { return Scale(s.X, s.Y) }

func Rotate(rad float64) Affine2D {
	c := math.Cos(rad)
	s := math.Sin(rad)
	return Affine2D{A: c, B: s, C: -s, D: c}
}

// About conjugates m so that it acts around pivot instead of the origin.
func About(m Affine2D, pivot Pt) Affine2D {
	return TranslateVec(pivot).Mul(m).Mul(Translate(-pivot.X, -pivot.Y))
}

// FloatRound rounds v to n decimal places deterministically.
func FloatRound(v float64, places int) float64 {
	if places < 0 {
		return v
	}
	pow := math.Pow(10, float64(places))
	return math.Round(v*pow) / pow
}
