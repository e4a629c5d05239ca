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

	"cagekit/internal/vector"
)

// Edges names the sides of the box a resize gesture moves.
type Edges struct {
	Top, Bottom, Left, Right bool
}

func (e Edges) Any() bool        { return e.Top || e.Bottom || e.Left || e.Right }
func (e Edges) Vertical() bool   { return e.Top || e.Bottom }
func (e Edges) Horizontal() bool { return e.Left || e.Right }

// SelectedEdges holds the edges being dragged together with the bounds
// captured when the gesture started. It is read-only for the gesture's lifetime.
type SelectedEdges struct {
	bounds vector.Bounds
	edges  Edges
	// width/height at gesture start, so x:1 = width:height
	aspectRatio float64
}

// NewSelectedEdges snapshots bounds for a resize of the given edges.
// A zero-height box yields a non-finite aspect ratio; constrained resizing is
// then skipped.
func NewSelectedEdges(edges Edges, bounds vector.Bounds) SelectedEdges {
	size := bounds[0].Sub(bounds[1]).Abs()
	return SelectedEdges{
		bounds:      bounds,
		edges:       edges,
		aspectRatio: size.X / size.Y,
	}
}

func (s SelectedEdges) Edges() Edges          { return s.edges }
func (s SelectedEdges) Bounds() vector.Bounds { return s.bounds }
func (s SelectedEdges) AspectRatio() float64  { return s.aspectRatio }

// CalculatePivot returns the point opposite the dragged edges, which stays
// fixed during an ordinary resize.
func (s SelectedEdges) CalculatePivot() vector.Pt {
	return s.pivotFromBounds(s.bounds[0], s.bounds[1])
}

func (s SelectedEdges) pivotFromBounds(min, max vector.Pt) vector.Pt {
	var p vector.Pt
	switch {
	case s.edges.Left:
		p.X = max.X
	case s.edges.Right:
		p.X = min.X
	default:
		p.X = (min.X + max.X) / 2
	}
	switch {
	case s.edges.Top:
		p.Y = max.Y
	case s.edges.Bottom:
		p.Y = min.Y
	default:
		p.Y = (min.Y + max.Y) / 2
	}
	return p
}

// NewSize computes the box produced by dragging the selected edges to the
// screen-space pointer. transform maps the box's local space to the screen.
// With center set the opposite edges mirror the motion around centerAround;
// with constrain set the start aspect ratio is kept. The returned size may be
// negative on either axis when the pointer crossed the opposite edge.
func (s SelectedEdges) NewSize(pointer vector.Pt, transform vector.Affine2D, center bool, centerAround vector.Pt, constrain bool) (origin, size vector.Pt) {
	pointer = transform.Inverse().Apply(pointer)

	min, max := s.bounds[0], s.bounds[1]
	if s.edges.Top {
		min.Y = pointer.Y
	} else if s.edges.Bottom {
		max.Y = pointer.Y
	}
	if s.edges.Left {
		min.X = pointer.X
	} else if s.edges.Right {
		max.X = pointer.X
	}

	pivot := s.pivotFromBounds(min, max)
	if center {
		// ratio is dragged edge distance / original edge distance from the
		// center; a non-finite ratio leaves that axis uncentered.
		if s.edges.Top {
			if ratio, ok := finiteRatio(centerAround.Y-min.Y, centerAround.Y-s.bounds[0].Y); ok {
				max.Y = centerAround.Y + ratio*(s.bounds[1].Y-centerAround.Y)
				pivot.Y = centerAround.Y
			}
		} else if s.edges.Bottom {
			if ratio, ok := finiteRatio(max.Y-centerAround.Y, s.bounds[1].Y-centerAround.Y); ok {
				min.Y = centerAround.Y - ratio*(centerAround.Y-s.bounds[0].Y)
				pivot.Y = centerAround.Y
			}
		}
		if s.edges.Left {
			if ratio, ok := finiteRatio(centerAround.X-min.X, centerAround.X-s.bounds[0].X); ok {
				max.X = centerAround.X + ratio*(s.bounds[1].X-centerAround.X)
				pivot.X = centerAround.X
			}
		} else if s.edges.Right {
			if ratio, ok := finiteRatio(max.X-centerAround.X, s.bounds[1].X-centerAround.X); ok {
				min.X = centerAround.X - ratio*(centerAround.X-s.bounds[0].X)
				pivot.X = centerAround.X
			}
		}
	}

	if constrain && s.aspectRatioUsable() {
		size := max.Sub(min)
		// A flat axis has no meaningful normalized pivot; anchor it at min.
		minPivot := pivot.Sub(min).SafeDiv(size, 0)
		newSize := s.constrainedSize(size)
		delta := newSize.Sub(size)
		min = min.Sub(delta.Mul(minPivot))
		max = min.Add(newSize)
	}

	return min, max.Sub(min)
}

func (s SelectedEdges) constrainedSize(size vector.Pt) vector.Pt {
	ar := s.aspectRatio
	switch {
	case s.edges.Vertical() && s.edges.Horizontal():
		fromWidth := vector.Pt{X: size.X, Y: size.X / ar}.Abs()
		fromHeight := vector.Pt{X: size.Y * ar, Y: size.Y}.Abs()
		return fromWidth.Max(fromHeight).Mul(size.Signum())
	case s.edges.Vertical():
		return vector.Pt{X: size.Y * ar, Y: size.Y}
	case s.edges.Horizontal():
		return vector.Pt{X: size.X, Y: size.X / ar}
	default:
		return size
	}
}

func (s SelectedEdges) aspectRatioUsable() bool {
	ar := s.aspectRatio
	return ar != 0 && !math.IsNaN(ar) && !math.IsInf(ar, 0)
}

func finiteRatio(num, den float64) (float64, bool) {
	r := num / den
	return r, !math.IsNaN(r) && !math.IsInf(r, 0)
}

// BoundsToScaleTransform derives the pure scale, and the pivot it acts
// around, that maps the start bounds onto the box at position with size.
// Degenerate axes fall back to a factor of 1 and a pivot of 0, so the result
// never holds NaN or infinities.
func (s SelectedEdges) BoundsToScaleTransform(position, size vector.Pt) (vector.Affine2D, vector.Pt) {
	oldSize := s.bounds[1].Sub(s.bounds[0])
	factor := size.Div(oldSize)
	if !isFinite(factor.X) || math.Abs(oldSize.X) < vector.DegenerateSize {
		factor.X = 1
	}
	if !isFinite(factor.Y) || math.Abs(oldSize.Y) < vector.DegenerateSize {
		factor.Y = 1
	}
	pivot := s.bounds[0].Mul(factor).Sub(position).SafeDiv(factor.Sub(vector.Splat(1)), 0)
	return vector.ScaleVec(factor), pivot
}

func isFinite(v float64) bool { return !math.IsNaN(v) && !math.IsInf(v, 0) }
