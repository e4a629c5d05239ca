/*
 * Copyright (c) 2025 by Alexander Drost, Oldenburg, Germany.
 * This file is licensed to you under the Apache License, Version 2.0 (the "License"); you may not use this file except in compliance with the License.  You may obtain a copy of the License at
 *   http://www.apache.org/licenses/LICENSE-2.0
 * Unless required by applicable law or agreed to in writing, software distributed under the License is distributed on an
 * "AS IS" BASIS, WITHOUT WARRANTIES OR CONDITIONS OF ANY KIND, either express or implied.  See the License for the specific language governing permissions and limitations under the License.
 */

package cage

import (
	"math"
	"testing"

	"github.com/leanovate/gopter"
	"github.com/leanovate/gopter/gen"
	"github.com/leanovate/gopter/prop"

	"cagekit/internal/vector"
)

var corners = []Edges{
	{Top: true, Left: true},
	{Top: true, Right: true},
	{Bottom: true, Left: true},
	{Bottom: true, Right: true},
}

func near(a, b, rel float64) bool {
	return math.Abs(a-b) <= rel*math.Max(1, math.Max(math.Abs(a), math.Abs(b)))
}

func TestConstrainedCornerDragKeepsAspectRatio(t *testing.T) {
	properties := gopter.NewProperties(nil)

	properties.Property("constrained corner drag keeps the start ratio and the opposite corner", prop.ForAll(
		func(w, h, px, py float64, corner int) bool {
			b := vector.B(0, 0, w, h)
			se := NewSelectedEdges(corners[corner], b)
			pivot := se.CalculatePivot()
			if math.Abs(px-pivot.X) < 1e-3 || math.Abs(py-pivot.Y) < 1e-3 {
				return true
			}
			origin, size := se.NewSize(vector.Pt{X: px, Y: py}, vector.Identity, false, vector.Pt{}, true)
			if !near(math.Abs(size.X), se.AspectRatio()*math.Abs(size.Y), 1e-9) {
				return false
			}
			// the untouched corner is pivot; it must be one of the result corners
			end := origin.Add(size)
			okX := near(origin.X, pivot.X, 1e-9) || near(end.X, pivot.X, 1e-9)
			okY := near(origin.Y, pivot.Y, 1e-9) || near(end.Y, pivot.Y, 1e-9)
			return okX && okY
		},
		gen.Float64Range(1, 500),
		gen.Float64Range(1, 500),
		gen.Float64Range(-1000, 1000),
		gen.Float64Range(-1000, 1000),
		gen.IntRange(0, 3),
	))

	properties.TestingRun(t)
}

func TestSnapDragLandsOnStep(t *testing.T) {
	properties := gopter.NewProperties(nil)

	properties.Property("snapped drag keeps length and lies on a step multiple", prop.ForAll(
		func(x, y float64, step int) bool {
			d := vector.Pt{X: x, Y: y}
			if d.Length() < 1e-6 {
				return true
			}
			start := vector.Pt{X: 3, Y: -2}
			got := SnapDrag(true, start.Add(d), start, float64(step)).Sub(start)
			if !near(got.Length(), d.Length(), 1e-9) {
				return false
			}
			k := got.Angle() / (float64(step) * math.Pi / 180)
			return math.Abs(k-math.Round(k)) < 1e-6
		},
		gen.Float64Range(-500, 500),
		gen.Float64Range(-500, 500),
		gen.OneConstOf(5, 15, 30, 45, 90),
	))

	properties.TestingRun(t)
}

func TestScaleTransformAlwaysFinite(t *testing.T) {
	properties := gopter.NewProperties(nil)

	properties.Property("BoundsToScaleTransform never yields NaN or Inf", prop.ForAll(
		func(x0, y0, w, h, px, py, sx, sy float64) bool {
			// collapse small extents to exact zero to hit the flat-box paths
			if math.Abs(w) < 5 {
				w = 0
			}
			if math.Abs(h) < 5 {
				h = 0
			}
			se := NewSelectedEdges(Edges{Bottom: true, Right: true}, vector.B(x0, y0, x0+w, y0+h))
			xf, pivot := se.BoundsToScaleTransform(vector.Pt{X: px, Y: py}, vector.Pt{X: sx, Y: sy})
			return vector.Pt{X: xf.A, Y: xf.D}.IsFinite() && pivot.IsFinite()
		},
		gen.Float64Range(-100, 100),
		gen.Float64Range(-100, 100),
		gen.Float64Range(-50, 50),
		gen.Float64Range(-50, 50),
		gen.Float64Range(-100, 100),
		gen.Float64Range(-100, 100),
		gen.Float64Range(-50, 50),
		gen.Float64Range(-50, 50),
	))

	properties.TestingRun(t)
}

func TestCenteredResizeKeepsCenter(t *testing.T) {
	properties := gopter.NewProperties(nil)

	properties.Property("centered single-edge resize keeps the box center", prop.ForAll(
		func(w, h, px, py float64, edge int) bool {
			b := vector.B(0, 0, w, h)
			e := []Edges{{Top: true}, {Bottom: true}, {Left: true}, {Right: true}}[edge]
			se := NewSelectedEdges(e, b)
			origin, size := se.NewSize(vector.Pt{X: px, Y: py}, vector.Identity, true, b.Center(), false)
			c := origin.Add(size.Scale(0.5))
			return near(c.X, w/2, 1e-9) && near(c.Y, h/2, 1e-9)
		},
		gen.Float64Range(1, 500),
		gen.Float64Range(1, 500),
		gen.Float64Range(-1000, 1000),
		gen.Float64Range(-1000, 1000),
		gen.IntRange(0, 3),
	))

	properties.TestingRun(t)
}

func TestCenteredResizeKeepsAnchorProportion(t *testing.T) {
	properties := gopter.NewProperties(nil)
	handles := append([]Edges{{Top: true}, {Bottom: true}, {Left: true}, {Right: true}}, corners...)

	properties.Property("centered resize around an off-center anchor keeps its relative position", prop.ForAll(
		func(w, h, fx, fy, px, py float64, handle int, constrain bool) bool {
			b := vector.B(0, 0, w, h)
			e := handles[handle]
			anchor := vector.Pt{X: fx * w, Y: fy * h}
			if (e.Vertical() && math.Abs(py-anchor.Y) < 1e-3) || (e.Horizontal() && math.Abs(px-anchor.X) < 1e-3) {
				return true
			}
			se := NewSelectedEdges(e, b)
			origin, size := se.NewSize(vector.Pt{X: px, Y: py}, vector.Identity, true, anchor, constrain)
			if e.Vertical() && !near((anchor.Y-origin.Y)/size.Y, fy, 1e-6) {
				return false
			}
			if e.Horizontal() && !near((anchor.X-origin.X)/size.X, fx, 1e-6) {
				return false
			}
			return true
		},
		gen.Float64Range(1, 500),
		gen.Float64Range(1, 500),
		gen.Float64Range(0.05, 0.95),
		gen.Float64Range(0.05, 0.95),
		gen.Float64Range(-1000, 1000),
		gen.Float64Range(-1000, 1000),
		gen.IntRange(0, 7),
		gen.Bool(),
	))

	properties.TestingRun(t)
}
