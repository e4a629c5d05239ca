/*
 * Copyright (c) 2025 by Alexander Drost, Oldenburg, Germany.
 * This file is licensed to you under the Apache License, Version 2.0 (the "License"); you may not use this file except in compliance with the License.  You may obtain a copy of the License at
 *   http://www.apache.org/licenses/LICENSE-2.0
 * Unless required by applicable law or agreed to in writing, software distributed under the License is distributed on an
 * "AS IS" BASIS, WITHOUT WARRANTIES OR CONDITIONS OF ANY KIND, either express or implied.  See the License for the specific language governing permissions and limitations under the License.
 */

package cage

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"cagekit/internal/vector"
)

func newTestManager(b vector.Bounds) *BoundingBoxManager {
	return NewBoundingBoxManager(b, vector.Identity, Thresholds{Select: 10, Rotate: 20})
}

type recordingRenderer struct {
	quads   []vector.Quad
	squares []vector.Pt
}

func (r *recordingRenderer) Quad(q vector.Quad)         { r.quads = append(r.quads, q) }
func (r *recordingRenderer) Square(p vector.Pt, _ bool) { r.squares = append(r.squares, p) }

func TestHandlePositionsOrder(t *testing.T) {
	m := newTestManager(vector.B(0, 0, 100, 50))
	m.Transform = vector.Translate(10, 20)
	got := m.HandlePositions()
	want := [8]vector.Pt{
		{X: 10, Y: 20}, {X: 10, Y: 45}, {X: 10, Y: 70},
		{X: 60, Y: 20}, {X: 60, Y: 70},
		{X: 110, Y: 20}, {X: 110, Y: 45}, {X: 110, Y: 70},
	}
	assert.Equal(t, want, got)
}

func TestRenderOverlaysDrawsHandlePositions(t *testing.T) {
	m := newTestManager(vector.B(0, 0, 100, 50))
	m.Transform = vector.Rotate(0.3).Mul(vector.Scale(2, 1))
	r := &recordingRenderer{}
	m.RenderOverlays(r)

	require.Len(t, r.quads, 1)
	assert.Equal(t, m.Outline(), r.quads[0])
	handles := m.HandlePositions()
	assert.Equal(t, handles[:], r.squares)
}

func TestCheckSelectedEdgesCorner(t *testing.T) {
	m := newTestManager(vector.B(0, 0, 100, 100))
	e, ok := m.CheckSelectedEdges(vector.Pt{X: 0, Y: 0})
	require.True(t, ok)
	assert.Equal(t, Edges{Top: true, Left: true}, e)

	e, ok = m.CheckSelectedEdges(vector.Pt{X: 103, Y: 97})
	require.True(t, ok)
	assert.Equal(t, Edges{Bottom: true, Right: true}, e)
}

func TestCheckSelectedEdgesSingleEdgeAndMiss(t *testing.T) {
	m := newTestManager(vector.B(0, 0, 100, 100))
	e, ok := m.CheckSelectedEdges(vector.Pt{X: 50, Y: 95})
	require.True(t, ok)
	assert.Equal(t, Edges{Bottom: true}, e)

	_, ok = m.CheckSelectedEdges(vector.Pt{X: 50, Y: 50})
	assert.False(t, ok, "interior is not an edge")
	_, ok = m.CheckSelectedEdges(vector.Pt{X: 50, Y: 115})
	assert.False(t, ok, "beyond the threshold")
}

func TestCheckSelectedEdgesFlippedBounds(t *testing.T) {
	m := newTestManager(vector.B(100, 100, 0, 0))
	e, ok := m.CheckSelectedEdges(vector.Pt{X: 0, Y: 0})
	require.True(t, ok)
	assert.Equal(t, Edges{Top: true, Left: true}, e)
}

func TestCheckSelectedEdgesThinBoxPrefersSingleAxis(t *testing.T) {
	m := newTestManager(vector.B(0, 0, 100, 5))
	e, ok := m.CheckSelectedEdges(vector.Pt{X: 0, Y: 2.5})
	require.True(t, ok)
	assert.Equal(t, Edges{Left: true}, e)

	m = newTestManager(vector.B(0, 0, 5, 100))
	e, ok = m.CheckSelectedEdges(vector.Pt{X: 2.5, Y: 100})
	require.True(t, ok)
	assert.Equal(t, Edges{Bottom: true}, e)
}

func TestCheckSelectedEdgesFlatBox(t *testing.T) {
	m := newTestManager(vector.B(0, 0, 0, 100))
	_, ok := m.CheckSelectedEdges(vector.Pt{X: 0, Y: 50})
	assert.False(t, ok, "zero width disables left/right")

	e, ok := m.CheckSelectedEdges(vector.Pt{X: 0, Y: 0})
	require.True(t, ok)
	assert.Equal(t, Edges{Top: true}, e)
}

func TestCheckSelectedEdgesThresholdIsScreenSpace(t *testing.T) {
	m := newTestManager(vector.B(0, 0, 100, 100))
	m.Transform = vector.Scale(2, 2)
	_, ok := m.CheckSelectedEdges(vector.Pt{X: 215, Y: 100})
	assert.False(t, ok, "15px away on screen")
	e, ok := m.CheckSelectedEdges(vector.Pt{X: 208, Y: 100})
	require.True(t, ok)
	assert.Equal(t, Edges{Right: true}, e)
}

func TestCheckRotate(t *testing.T) {
	m := NewBoundingBoxManager(vector.B(0, 0, 100, 100), vector.Identity, Thresholds{Select: 5, Rotate: 10})
	assert.True(t, m.CheckRotate(vector.Pt{X: 105, Y: 50}))
	assert.False(t, m.CheckRotate(vector.Pt{X: 50, Y: 50}), "inside")
	assert.False(t, m.CheckRotate(vector.Pt{X: 100, Y: 50}), "on the edge counts as inside")
	assert.False(t, m.CheckRotate(vector.Pt{X: 120, Y: 50}), "beyond the ring")
	assert.True(t, m.CheckRotate(vector.Pt{X: -5, Y: -5}))
}

func TestCursor(t *testing.T) {
	m := newTestManager(vector.B(0, 0, 100, 100))
	cases := []struct {
		at     vector.Pt
		rotate bool
		want   CursorIcon
	}{
		{vector.Pt{X: 0, Y: 50}, true, CursorEWResize},
		{vector.Pt{X: 100, Y: 50}, true, CursorEWResize},
		{vector.Pt{X: 50, Y: 0}, true, CursorNSResize},
		{vector.Pt{X: 50, Y: 100}, true, CursorNSResize},
		{vector.Pt{X: 0, Y: 0}, true, CursorNWSEResize},
		{vector.Pt{X: 100, Y: 100}, true, CursorNWSEResize},
		{vector.Pt{X: 100, Y: 0}, true, CursorNESWResize},
		{vector.Pt{X: 0, Y: 100}, true, CursorNESWResize},
		{vector.Pt{X: 115, Y: 50}, true, CursorRotate},
		{vector.Pt{X: 115, Y: 50}, false, CursorDefault},
		{vector.Pt{X: 50, Y: 50}, true, CursorDefault},
		{vector.Pt{X: 500, Y: 500}, true, CursorDefault},
	}
	for _, c := range cases {
		assert.Equal(t, c.want, m.Cursor(c.at, c.rotate), "cursor at %+v rotate=%v", c.at, c.rotate)
	}
}

func TestCursorForEdgesTable(t *testing.T) {
	assert.Equal(t, CursorNSResize, cursorForEdges(Edges{Top: true, Bottom: true}))
	assert.Equal(t, CursorEWResize, cursorForEdges(Edges{Left: true, Right: true}))
	assert.Equal(t, CursorNWSEResize, cursorForEdges(Edges{Top: true, Left: true, Right: true}))
	assert.Equal(t, CursorNESWResize, cursorForEdges(Edges{Bottom: true, Left: true}))
	assert.Equal(t, CursorDefault, cursorForEdges(Edges{}))
	assert.Equal(t, "nesw-resize", CursorNESWResize.String())
}

func TestBeginAndEndEdgeDrag(t *testing.T) {
	m := newTestManager(vector.B(0, 0, 100, 50))
	m.Transform = vector.Translate(5, 5)
	assert.False(t, m.Active())

	se := m.BeginEdgeDrag(Edges{Top: true, Left: true})
	assert.True(t, m.Active())
	got, ok := m.SelectedEdges()
	require.True(t, ok)
	assert.Equal(t, se, got)
	assert.Equal(t, vector.Pt{X: 100, Y: 50}, m.OppositePivot)
	assert.Equal(t, vector.Pt{X: 50, Y: 25}, m.CenterOfTransformation)
	assert.Equal(t, m.Transform, m.OriginalBoundTransform)

	m.EndDrag()
	assert.False(t, m.Active())
	_, ok = m.SelectedEdges()
	assert.False(t, ok)
}

func TestBeginRotate(t *testing.T) {
	m := newTestManager(vector.B(0, 0, 100, 100))
	r := m.BeginRotate(vector.Pt{X: 50, Y: -10})
	assert.Equal(t, vector.Pt{X: 50, Y: 50}, r.Center)
	assert.InDelta(t, -1.5707963267948966, r.StartAngle, 1e-12)
	_, isRot := m.Drag.(Rotating)
	assert.True(t, isRot)
}

func TestThresholdDefaults(t *testing.T) {
	m := NewBoundingBoxManager(vector.B(0, 0, 10, 10), vector.Identity, Thresholds{})
	assert.Equal(t, DefaultThresholds(), m.Thresholds)
}
