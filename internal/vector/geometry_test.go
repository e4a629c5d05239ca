/*
 * Copyright (c) 2025 by Alexander Drost, Oldenburg, Germany.
 * This file is licensed to you under the Apache License, Version 2.0 (the "License"); you may not use this file except in compliance with the License.  You may obtain a copy of the License at
 *   http://www.apache.org/licenses/LICENSE-2.0
 * Unless required by applicable law or agreed to in writing, software distributed under the License is distributed on an
 * "AS IS" BASIS, WITHOUT WARRANTIES OR CONDITIONS OF ANY KIND, either express or implied.  See the License for the specific language governing permissions and limitations under the License.
 */

package vector

import (
	"math"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestBoundsMinMaxOnFlippedBox(t *testing.T) {
	b := B(100, 50, 0, 0)
	assert.Equal(t, Pt{0, 0}, b.Min())
	assert.Equal(t, Pt{100, 50}, b.Max())
	assert.Equal(t, Pt{-100, -50}, b.Size(), "raw size keeps corner identity")
	assert.Equal(t, B(0, 0, 100, 50), b.Canon())
	assert.True(t, b.Contains(Pt{10, 10}))
}

func TestAffineBasic(t *testing.T) {
	m := Translate(10, 5).Mul(Scale(2, 3))
	p := m.Apply(Pt{1, 1})
	assert.Equal(t, Pt{12, 8}, p) // (1*2+10, 1*3+5)

	v := m.ApplyVector(Pt{1, 1})
	assert.Equal(t, Pt{2, 3}, v, "vectors ignore translation")
}

func TestAffineInverseRoundTrip(t *testing.T) {
	m := Translate(40, -7).Mul(Rotate(0.7)).Mul(Scale(3, 0.5))
	inv := m.Inverse()
	p := Pt{12.5, -3}
	q := inv.Apply(m.Apply(p))
	assert.InDelta(t, p.X, q.X, 1e-9)
	assert.InDelta(t, p.Y, q.Y, 1e-9)

	id := m.Mul(inv)
	assert.InDelta(t, 1, id.A, 1e-9)
	assert.InDelta(t, 0, id.B, 1e-9)
	assert.InDelta(t, 0, id.E, 1e-9)
}

func TestAffineSingularInverseIsIdentity(t *testing.T) {
	assert.Equal(t, Identity, Scale(0, 1).Inverse())
}

func TestAff3RoundTrip(t *testing.T) {
	m := Affine2D{A: 1, B: 2, C: 3, D: 4, E: 5, F: 6}
	a := m.Aff3()
	assert.Equal(t, 5.0, a[2], "x translation sits in row 0")
	assert.Equal(t, m, FromAff3(a))
}

func TestAboutKeepsPivotFixed(t *testing.T) {
	pivot := Pt{30, 40}
	m := About(Scale(2, -1), pivot)
	assert.Equal(t, pivot, m.Apply(pivot))
}

func TestSafeDiv(t *testing.T) {
	assert.Equal(t, 2.0, SafeDiv(4, 2, 9))
	assert.Equal(t, 9.0, SafeDiv(4, 0, 9))
	assert.Equal(t, 9.0, SafeDiv(0, 0, 9))
	got := Pt{1, 0}.SafeDiv(Pt{0, 0}, 0)
	assert.Equal(t, Pt{0, 0}, got)
}

func TestSignumFollowsSignBit(t *testing.T) {
	assert.Equal(t, Pt{1, -1}, Pt{0, -3}.Signum())
	assert.Equal(t, -1.0, Pt{math.Copysign(0, -1), 0}.Signum().X)
}

func TestAngleBetween(t *testing.T) {
	x := Pt{1, 0}
	assert.InDelta(t, math.Pi/2, x.AngleBetween(Pt{0, 1}), 1e-12)
	assert.InDelta(t, -math.Pi/2, Pt{0, 1}.AngleBetween(x), 1e-12)
	assert.Equal(t, 0.0, Pt{}.AngleBetween(x))
}

func TestQuadFromBoundsOrder(t *testing.T) {
	q := QuadFromBounds(B(0, 0, 10, 20))
	require.Equal(t, Quad{{0, 0}, {10, 0}, {10, 20}, {0, 20}}, q)
	assert.Equal(t, B(0, 0, 10, 20), q.Bounds())
}

func TestRectNodeHitAndBounds(t *testing.T) {
	n := NewRect(B(0, 0, 100, 50))
	n.SetTransform(Translate(10, 20))
	assert.True(t, n.Hit(Pt{60, 45}))
	assert.Equal(t, B(10, 20, 110, 70), n.Bounds())
	assert.Equal(t, B(0, 0, 100, 50), n.LocalBounds())
}

func TestEllipseNodeHit(t *testing.T) {
	n := NewEllipse(B(0, 0, 100, 100))
	assert.True(t, n.Hit(Pt{50, 50}))
	assert.False(t, n.Hit(Pt{2, 2}), "corner of the box lies outside the ellipse")
}

func TestUnionBounds(t *testing.T) {
	a := NewRect(B(0, 0, 10, 10))
	b := NewRect(B(20, 5, 30, 40))

	u, ok := UnionBounds([]Node{a, b})
	require.True(t, ok)
	assert.Equal(t, B(0, 0, 30, 40), u)
	_, ok = UnionBounds(nil)
	assert.False(t, ok)
}

func TestBoundsQuadAndTranslate(t *testing.T) {
	b := B(0, 0, 10, 20)
	assert.Equal(t, Quad{{5, 5}, {15, 5}, {15, 25}, {5, 25}}, b.Quad(Translate(5, 5)))
	assert.Equal(t, B(1, 2, 11, 22), b.Translate(Pt{1, 2}))
	assert.True(t, b.Contains(Pt{10, 20}), "edges are inside")
}
