/*
 * Copyright (c) 2025 by Alexander Drost, Oldenburg, Germany.
 * This file is licensed to you under the Apache License, Version 2.0 (the "License"); you may not use this file except in compliance with the License.  You may obtain a copy of the License at
 *   http://www.apache.org/licenses/LICENSE-2.0
 * Unless required by applicable law or agreed to in writing, software distributed under the License is distributed on an
 * "AS IS" BASIS, WITHOUT WARRANTIES OR CONDITIONS OF ANY KIND, either express or implied.  See the License for the specific language governing permissions and limitations under the License.
 */

// Package cage implements the geometry and hit-testing behind the on-canvas
// transformation cage: the bounding box with eight handles used to resize and
// rotate a selection. It has no rendering, input or undo logic of its own.
package cage

import (
	"math"

	"cagekit/internal/vector"
)

// Default screen-space thresholds.
const (
	DefaultSelectThreshold = 10.0 // px around an edge that grabs it
	DefaultRotateThreshold = 20.0 // px outside the box that starts a rotation
	DefaultSnapAngle       = 15.0 // degrees
)

// Thresholds configures hit-testing in screen pixels and the snap step in degrees.
type Thresholds struct {
	Select    float64
	Rotate    float64
	SnapAngle float64
}

// DefaultThresholds returns the stock hit and snap settings.
func DefaultThresholds() Thresholds {
	return Thresholds{Select: DefaultSelectThreshold, Rotate: DefaultRotateThreshold, SnapAngle: DefaultSnapAngle}
}

func (t Thresholds) withDefaults() Thresholds {
	d := DefaultThresholds()
	if t.Select <= 0 {
		t.Select = d.Select
	}
	if t.Rotate <= 0 {
		t.Rotate = d.Rotate
	}
	if t.SnapAngle <= 0 {
		t.SnapAngle = d.SnapAngle
	}
	return t
}

// OverlayRenderer receives the cage outline and handle squares.
type OverlayRenderer interface {
	Quad(q vector.Quad)
	Square(center vector.Pt, selected bool)
}

// BoundingBoxManager owns the cage for one selection: its local bounds, the
// local-to-screen transform and the state of an in-progress gesture.
// It is not safe for concurrent use; one gesture controller owns it.
type BoundingBoxManager struct {
	Bounds                 vector.Bounds
	Transform              vector.Affine2D
	OriginalBoundTransform vector.Affine2D
	Drag                   Drag
	OriginalTransforms     OriginalTransforms
	OppositePivot          vector.Pt
	CenterOfTransformation vector.Pt
	Thresholds             Thresholds
}

// NewBoundingBoxManager returns an idle manager for bounds shown through transform.
func NewBoundingBoxManager(bounds vector.Bounds, transform vector.Affine2D, th Thresholds) *BoundingBoxManager {
	return &BoundingBoxManager{
		Bounds:                 bounds,
		Transform:              transform,
		OriginalBoundTransform: transform,
		Drag:                   Idle{},
		Thresholds:             th.withDefaults(),
	}
}

// HandlePositions returns the eight handles in screen space in the order
// top-left, left, bottom-left, top, bottom, top-right, right, bottom-right.
func (m *BoundingBoxManager) HandlePositions() [8]vector.Pt {
	left, top := m.Bounds[0].X, m.Bounds[0].Y
	right, bottom := m.Bounds[1].X, m.Bounds[1].Y
	midX, midY := (left+right)/2, (top+bottom)/2
	xf := m.Transform
	return [8]vector.Pt{
		xf.Apply(vector.Pt{X: left, Y: top}),
		xf.Apply(vector.Pt{X: left, Y: midY}),
		xf.Apply(vector.Pt{X: left, Y: bottom}),
		xf.Apply(vector.Pt{X: midX, Y: top}),
		xf.Apply(vector.Pt{X: midX, Y: bottom}),
		xf.Apply(vector.Pt{X: right, Y: top}),
		xf.Apply(vector.Pt{X: right, Y: midY}),
		xf.Apply(vector.Pt{X: right, Y: bottom}),
	}
}

// Outline returns the transformed box in screen space.
func (m *BoundingBoxManager) Outline() vector.Quad {
	return m.Transform.ApplyQuad(vector.QuadFromBounds(m.Bounds))
}

// RenderOverlays draws the outline and the handles.
func (m *BoundingBoxManager) RenderOverlays(r OverlayRenderer) {
	r.Quad(m.Outline())
	for _, p := range m.HandlePositions() {
		r.Square(p, false)
	}
}

// localThreshold converts a screen-space distance into the cage's local space
// so hit regions stay the same size on screen at any zoom.
func (m *BoundingBoxManager) localThreshold(inv vector.Affine2D, screen float64) float64 {
	return inv.ApplyVector(vector.Pt{Y: screen}).Length()
}

// CheckSelectedEdges reports which edges lie under the screen-space cursor.
// ok is false when no edge is close enough.
func (m *BoundingBoxManager) CheckSelectedEdges(cursor vector.Pt) (edges Edges, ok bool) {
	inv := m.Transform.Inverse()
	cursor = inv.Apply(cursor)
	t := m.localThreshold(inv, m.Thresholds.withDefaults().Select)

	min, max := m.Bounds.Min(), m.Bounds.Max()
	if !(min.X-cursor.X < t && min.Y-cursor.Y < t && cursor.X-max.X < t && cursor.Y-max.Y < t) {
		return Edges{}, false
	}

	e := Edges{
		Top:    math.Abs(cursor.Y-min.Y) < t,
		Bottom: math.Abs(max.Y-cursor.Y) < t,
		Left:   math.Abs(cursor.X-min.X) < t,
		Right:  math.Abs(max.X-cursor.X) < t,
	}

	// Prefer single-axis handles on boxes thinner than the hit margin.
	if cursor.Y-min.Y+max.Y-cursor.Y < t*2 && (e.Left || e.Right) {
		e.Top, e.Bottom = false, false
	}
	if cursor.X-min.X+max.X-cursor.X < t*2 && (e.Top || e.Bottom) {
		e.Left, e.Right = false, false
	}

	// A flat axis cannot be resized.
	if max.X-min.X < vector.DegenerateSize {
		e.Left, e.Right = false, false
	}
	if max.Y-min.Y < vector.DegenerateSize {
		e.Top, e.Bottom = false, false
	}

	return e, e.Any()
}

// CheckRotate reports whether the cursor is in the ring just outside the box
// that starts a rotation.
func (m *BoundingBoxManager) CheckRotate(cursor vector.Pt) bool {
	inv := m.Transform.Inverse()
	cursor = inv.Apply(cursor)
	t := m.localThreshold(inv, m.Thresholds.withDefaults().Rotate)

	min, max := m.Bounds.Min(), m.Bounds.Max()
	outside := min.X > cursor.X || cursor.X > max.X || min.Y > cursor.Y || cursor.Y > max.Y
	inExtended := min.X-cursor.X < t && min.Y-cursor.Y < t && cursor.X-max.X < t && cursor.Y-max.Y < t
	return outside && inExtended
}

// Cursor resolves the pointer icon: resize handles first, then the rotate
// ring when rotation is enabled.
func (m *BoundingBoxManager) Cursor(pointer vector.Pt, rotate bool) CursorIcon {
	if e, ok := m.CheckSelectedEdges(pointer); ok {
		return cursorForEdges(e)
	}
	if rotate && m.CheckRotate(pointer) {
		return CursorRotate
	}
	return CursorDefault
}

// BeginEdgeDrag starts a resize of edges, snapshotting the current bounds and transform.
func (m *BoundingBoxManager) BeginEdgeDrag(edges Edges) SelectedEdges {
	se := NewSelectedEdges(edges, m.Bounds)
	m.Drag = EdgeDrag{Edges: se}
	m.OriginalBoundTransform = m.Transform
	m.OppositePivot = se.CalculatePivot()
	m.CenterOfTransformation = m.Bounds.Center()
	return se
}

// BeginRotate starts a rotation around the cage center from the screen-space pointer.
func (m *BoundingBoxManager) BeginRotate(pointer vector.Pt) Rotating {
	center := m.Transform.Apply(m.Bounds.Center())
	r := Rotating{Center: center, StartAngle: pointer.Sub(center).Angle()}
	m.Drag = r
	m.OriginalBoundTransform = m.Transform
	m.CenterOfTransformation = m.Bounds.Center()
	return r
}

// SelectedEdges returns the active resize state, if any.
func (m *BoundingBoxManager) SelectedEdges() (SelectedEdges, bool) {
	d, ok := m.Drag.(EdgeDrag)
	return d.Edges, ok
}

// EndDrag drops the gesture state. Snapshot fields are left for restore logic.
func (m *BoundingBoxManager) EndDrag() { m.Drag = Idle{} }

// Active reports whether a gesture is in progress.
func (m *BoundingBoxManager) Active() bool {
	_, idle := m.Drag.(Idle)
	return m.Drag != nil && !idle
}
