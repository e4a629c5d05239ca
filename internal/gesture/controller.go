/*
 * Copyright (c) 2025 by Alexander Drost, Oldenburg, Germany.
 * This file is licensed to you under the Apache License, Version 2.0 (the "License"); you may not use this file except in compliance with the License.  You may obtain a copy of the License at
 *   http://www.apache.org/licenses/LICENSE-2.0
 * Unless required by applicable law or agreed to in writing, software distributed under the License is distributed on an
 * "AS IS" BASIS, WITHOUT WARRANTIES OR CONDITIONS OF ANY KIND, either express or implied.  See the License for the specific language governing permissions and limitations under the License.
 */

// Package gesture drives a transformation cage from pointer input: it picks
// resize, rotate or move on pointer down, applies the resulting transform to
// the selected nodes while dragging, and commits or cancels the result.
package gesture

import (
	"errors"
	"log/slog"
	"maps"
	"math"
	"sync"
	"time"

	"cagekit/internal/cage"
	"cagekit/internal/undo"
	"cagekit/internal/vector"
)

// minResizeFactor is the smallest scale a resize may apply to an axis. It keeps
// a box dragged flat invertible, so its handles can still be grabbed.
const minResizeFactor = 1e-6

// ErrEmptySelection is returned when a controller is built without nodes.
var ErrEmptySelection = errors.New("gesture: empty selection")

// Options configures a Controller. Zero values get sensible defaults.
type Options struct {
	// Selection names the selection in history and events.
	Selection  string
	Thresholds cage.Thresholds
	// View maps document space to screen space.
	View          vector.Affine2D
	DisableRotate bool
	// Anchors are static boxes (document space) that move gestures snap to.
	Anchors []vector.Anchor
	Guides  vector.SnapOptions
	History *undo.Manager
	Logger  *slog.Logger
	Now     func() time.Time
}

// Controller owns one BoundingBoxManager and the nodes it transforms.
// Methods are safe for concurrent use; listeners run on the caller's goroutine
// after the controller lock is released.
type Controller struct {
	mu        sync.Mutex
	mgr       *cage.BoundingBoxManager
	nodes     []vector.Node
	opts      Options
	log       *slog.Logger
	listeners []func(Event)

	kind      Kind
	mods      Modifiers
	start     vector.Pt
	startDoc  vector.Bounds
	startCage undo.Frame
	guides    []vector.GuideLine
}

// New fits a cage around nodes.
func New(nodes []vector.Node, opts Options) (*Controller, error) {
	if len(nodes) == 0 {
		return nil, ErrEmptySelection
	}
	if opts.View == (vector.Affine2D{}) {
		opts.View = vector.Identity
	}
	if opts.Selection == "" {
		opts.Selection = "selection"
	}
	if opts.Now == nil {
		opts.Now = time.Now
	}
	if opts.History == nil {
		opts.History = undo.NewManager(undo.Config{})
	}
	l := opts.Logger
	if l == nil {
		l = slog.Default()
	}
	c := &Controller{
		nodes: append([]vector.Node(nil), nodes...),
		opts:  opts,
		log:   l.With(slog.String("component", "gesture"), slog.String("selection", opts.Selection)),
	}
	c.mgr = cage.NewBoundingBoxManager(vector.Bounds{}, vector.Identity, opts.Thresholds)
	c.fitLocked()
	return c, nil
}

// fitLocked places the cage: a single node keeps its own local frame so the
// cage follows its rotation; several nodes share their document-space union.
func (c *Controller) fitLocked() {
	if len(c.nodes) == 1 {
		n := c.nodes[0]
		c.mgr.Bounds = n.LocalBounds()
		c.mgr.Transform = c.opts.View.Mul(n.Transform())
	} else {
		b, _ := vector.UnionBounds(c.nodes)
		c.mgr.Bounds = b
		c.mgr.Transform = c.opts.View
	}
	c.mgr.OriginalBoundTransform = c.mgr.Transform
}

// State is a copy of the cage and the selection taken under the controller
// lock. Renderers draw from it instead of touching live nodes.
type State struct {
	Cage cage.BoundingBoxManager
	View vector.Affine2D
	// Outlines holds each node's local bounds mapped to screen space.
	Outlines []vector.Quad
	// Bounds is the document-space union of the selection.
	Bounds vector.Bounds
}

// State returns a snapshot of the cage and the selection.
func (c *Controller) State() State {
	c.mu.Lock()
	defer c.mu.Unlock()
	st := State{
		Cage:     *c.mgr,
		View:     c.opts.View,
		Outlines: make([]vector.Quad, len(c.nodes)),
	}
	st.Cage.OriginalTransforms = maps.Clone(c.mgr.OriginalTransforms)
	for i, n := range c.nodes {
		st.Outlines[i] = n.LocalBounds().Quad(c.opts.View.Mul(n.Transform()))
	}
	st.Bounds, _ = vector.UnionBounds(c.nodes)
	return st
}

// View returns the document-to-screen transform.
func (c *Controller) View() vector.Affine2D {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.opts.View
}

// SetView changes the document-to-screen transform and refits the cage.
// It is ignored during a gesture.
func (c *Controller) SetView(view vector.Affine2D) {
	c.mu.Lock()
	defer c.mu.Unlock()
	if c.kind != KindNone {
		return
	}
	c.opts.View = view
	c.fitLocked()
}

// Subscribe registers fn for every Event. The returned func removes it.
func (c *Controller) Subscribe(fn func(Event)) (unsubscribe func()) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.listeners = append(c.listeners, fn)
	idx := len(c.listeners) - 1
	return func() {
		c.mu.Lock()
		defer c.mu.Unlock()
		if idx < len(c.listeners) {
			c.listeners[idx] = nil
		}
	}
}

func (c *Controller) emit(ev Event, listeners []func(Event)) {
	for _, fn := range listeners {
		if fn != nil {
			fn(ev)
		}
	}
}

func (c *Controller) eventLocked(phase Phase) Event {
	ev := Event{
		Selection: c.opts.Selection,
		Kind:      c.kind,
		Phase:     phase,
		Modifiers: c.mods,
		From:      c.startDoc,
		Outline:   c.mgr.Outline(),
		Guides:    append([]vector.GuideLine(nil), c.guides...),
	}
	ev.To, _ = vector.UnionBounds(c.nodes)
	if se, ok := c.mgr.SelectedEdges(); ok {
		ev.Edges = se.Edges()
	}
	return ev
}

func (c *Controller) snapshotListeners() []func(Event) {
	return append([]func(Event){}, c.listeners...)
}

// Cursor returns the icon for the pointer. During a drag the gesture's own
// icon is kept.
func (c *Controller) Cursor(pos vector.Pt) cage.CursorIcon {
	c.mu.Lock()
	defer c.mu.Unlock()
	switch c.kind {
	case KindResize:
		se, _ := c.mgr.SelectedEdges()
		return se.Edges().Cursor()
	case KindRotate:
		return cage.CursorRotate
	case KindMove:
		return cage.CursorDefault
	}
	return c.mgr.Cursor(pos, !c.opts.DisableRotate)
}

// Active reports the running gesture, KindNone when idle.
func (c *Controller) Active() Kind {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.kind
}

// PointerDown starts a gesture at the screen position: an edge hit resizes,
// the ring outside the box rotates, a hit on a selected node moves. It returns KindNone
// when the pointer misses the cage or a gesture is already running.
func (c *Controller) PointerDown(pos vector.Pt) Kind {
	c.mu.Lock()
	if c.kind != KindNone {
		c.mu.Unlock()
		return KindNone
	}
	kind := KindNone
	if edges, ok := c.mgr.CheckSelectedEdges(pos); ok {
		c.mgr.BeginEdgeDrag(edges)
		kind = KindResize
	} else if !c.opts.DisableRotate && c.mgr.CheckRotate(pos) {
		c.mgr.BeginRotate(pos)
		kind = KindRotate
	} else if c.hitLocked(pos) {
		c.mgr.OriginalBoundTransform = c.mgr.Transform
		kind = KindMove
	}
	if kind == KindNone {
		c.mu.Unlock()
		return KindNone
	}

	c.kind = kind
	c.mods = Modifiers{}
	c.start = pos
	c.guides = nil
	c.startDoc, _ = vector.UnionBounds(c.nodes)
	c.startCage = undo.Frame{Bounds: c.mgr.Bounds, Transform: c.mgr.Transform}
	c.mgr.OriginalTransforms = make(cage.OriginalTransforms, len(c.nodes))
	for i, n := range c.nodes {
		c.mgr.OriginalTransforms[i] = n.Transform()
	}
	ev := c.eventLocked(PhaseStart)
	ls := c.snapshotListeners()
	c.log.Debug("gesture start", slog.String("kind", kind.String()), slog.Float64("x", pos.X), slog.Float64("y", pos.Y))
	c.mu.Unlock()

	c.emit(ev, ls)
	return kind
}

// hitLocked reports whether pos lands on any selected node's shape.
func (c *Controller) hitLocked(pos vector.Pt) bool {
	doc := c.opts.View.Inverse().Apply(pos)
	for _, n := range c.nodes {
		if n.Hit(doc) {
			return true
		}
	}
	return false
}

// PointerMove updates the running gesture for the screen position.
func (c *Controller) PointerMove(pos vector.Pt, mods Modifiers) {
	c.mu.Lock()
	if c.kind == KindNone {
		c.mu.Unlock()
		return
	}
	c.mods = mods
	switch c.kind {
	case KindResize:
		c.resizeLocked(pos, mods)
	case KindRotate:
		c.rotateLocked(pos, mods)
	case KindMove:
		c.moveLocked(pos, mods)
	}
	ev := c.eventLocked(PhaseUpdate)
	ls := c.snapshotListeners()
	c.mu.Unlock()

	c.emit(ev, ls)
}

func (c *Controller) resizeLocked(pos vector.Pt, mods Modifiers) {
	se, ok := c.mgr.SelectedEdges()
	if !ok {
		return
	}
	origin, size := se.NewSize(pos, c.mgr.OriginalBoundTransform, mods.Center, c.mgr.CenterOfTransformation, mods.Constrain)
	b := se.Bounds()
	if clamped, ok := clampCollapsed(size, b[1].Sub(b[0])); ok {
		c.log.Debug("resize clamped to minimum extent", slog.Float64("w", size.X), slog.Float64("h", size.Y))
		size = clamped
	}
	scale, pivot := se.BoundsToScaleTransform(origin, size)
	local := vector.About(scale, pivot)

	obt := c.mgr.OriginalBoundTransform
	c.mgr.Transform = obt.Mul(local)
	c.applyScreenLocked(obt.Mul(local).Mul(obt.Inverse()))
}

// clampCollapsed widens any axis of size that shrank below minResizeFactor of
// the start size. Flat start axes are left alone.
func clampCollapsed(size, start vector.Pt) (vector.Pt, bool) {
	changed := false
	clamp := func(v, ref float64) float64 {
		m := math.Abs(ref) * minResizeFactor
		if math.Abs(v) >= m || math.Abs(ref) < vector.DegenerateSize {
			return v
		}
		changed = true
		return math.Copysign(m, v)
	}
	out := vector.Pt{X: clamp(size.X, start.X), Y: clamp(size.Y, start.Y)}
	return out, changed
}

func (c *Controller) rotateLocked(pos vector.Pt, mods Modifiers) {
	r, ok := c.mgr.Drag.(cage.Rotating)
	if !ok {
		return
	}
	angle := pos.Sub(r.Center).Angle() - r.StartAngle
	angle = cage.SnapAngle(mods.AxisAlign, angle, c.mgr.Thresholds.SnapAngle)
	delta := vector.About(vector.Rotate(angle), r.Center)

	c.mgr.Transform = delta.Mul(c.mgr.OriginalBoundTransform)
	c.applyScreenLocked(delta)
}

func (c *Controller) moveLocked(pos vector.Pt, mods Modifiers) {
	target := cage.SnapDrag(mods.AxisAlign, pos, c.start, c.mgr.Thresholds.SnapAngle)
	d := target.Sub(c.start)

	c.guides = nil
	if len(c.opts.Anchors) > 0 {
		view := c.opts.View
		docD := view.Inverse().ApplyVector(d)
		offset, guides := vector.ComputeSmartGuides(c.startDoc.Translate(docD), c.opts.Anchors, c.opts.Guides)
		d = d.Add(view.ApplyVector(offset))
		c.guides = guides
	}

	delta := vector.TranslateVec(d)
	c.mgr.Transform = delta.Mul(c.mgr.OriginalBoundTransform)
	c.applyScreenLocked(delta)
}

// applyScreenLocked sets every node to its original transform followed by the
// screen-space delta, expressed in document space.
func (c *Controller) applyScreenLocked(screen vector.Affine2D) {
	view := c.opts.View
	doc := view.Inverse().Mul(screen).Mul(view)
	for i, n := range c.nodes {
		n.SetTransform(doc.Mul(c.mgr.OriginalTransforms[i]))
	}
}

// PointerUp commits the running gesture and records it for undo.
// ok is false when no gesture was running.
func (c *Controller) PointerUp() (ev Event, ok bool) {
	c.mu.Lock()
	if c.kind == KindNone {
		c.mu.Unlock()
		return Event{}, false
	}
	before := make([]vector.Affine2D, len(c.nodes))
	after := make([]vector.Affine2D, len(c.nodes))
	changed := false
	for i, n := range c.nodes {
		before[i] = c.mgr.OriginalTransforms[i]
		after[i] = n.Transform()
		if before[i] != after[i] {
			changed = true
		}
	}
	ev = c.eventLocked(PhaseCommit)
	if changed {
		c.opts.History.Push(undo.Snapshot{
			Selection: c.opts.Selection,
			Kind:      c.kind.String(),
			Before:    before,
			After:     after,
			CageFrom:  c.startCage,
			CageTo:    undo.Frame{Bounds: c.mgr.Bounds, Transform: c.mgr.Transform},
			TS:        c.opts.Now(),
		})
	}
	c.log.Debug("gesture commit", slog.String("kind", c.kind.String()), slog.Bool("changed", changed))
	c.endLocked()
	ls := c.snapshotListeners()
	c.mu.Unlock()

	c.emit(ev, ls)
	return ev, true
}

// Cancel aborts the running gesture and restores every node and the cage.
func (c *Controller) Cancel() {
	c.mu.Lock()
	if c.kind == KindNone {
		c.mu.Unlock()
		return
	}
	for i, n := range c.nodes {
		n.SetTransform(c.mgr.OriginalTransforms[i])
	}
	c.mgr.Bounds = c.startCage.Bounds
	c.mgr.Transform = c.startCage.Transform
	c.guides = nil
	ev := c.eventLocked(PhaseCancel)
	c.log.Debug("gesture cancel", slog.String("kind", c.kind.String()))
	c.endLocked()
	ls := c.snapshotListeners()
	c.mu.Unlock()

	c.emit(ev, ls)
}

func (c *Controller) endLocked() {
	c.mgr.EndDrag()
	c.mgr.OriginalBoundTransform = c.mgr.Transform
	c.kind = KindNone
	c.guides = nil
}

// Undo reverts the latest committed gesture. A running gesture is cancelled first.
func (c *Controller) Undo() bool { return c.history(PhaseUndo) }

// Redo re-applies the latest undone gesture.
func (c *Controller) Redo() bool { return c.history(PhaseRedo) }

func (c *Controller) history(phase Phase) bool {
	c.Cancel()
	c.mu.Lock()
	var (
		s  undo.Snapshot
		ok bool
	)
	if phase == PhaseUndo {
		s, ok = c.opts.History.Undo(c.opts.Selection)
	} else {
		s, ok = c.opts.History.Redo(c.opts.Selection)
	}
	if !ok || len(s.Before) != len(c.nodes) {
		c.mu.Unlock()
		return false
	}
	from, _ := vector.UnionBounds(c.nodes)
	xfs, frame := s.After, s.CageTo
	if phase == PhaseUndo {
		xfs, frame = s.Before, s.CageFrom
	}
	for i, n := range c.nodes {
		n.SetTransform(xfs[i])
	}
	c.mgr.Bounds = frame.Bounds
	c.mgr.Transform = frame.Transform
	c.mgr.OriginalBoundTransform = frame.Transform
	c.startDoc = from
	ev := c.eventLocked(phase)
	ev.Kind = kindFromString(s.Kind)
	ls := c.snapshotListeners()
	c.log.Debug("gesture "+phase.String(), slog.String("kind", s.Kind))
	c.mu.Unlock()

	c.emit(ev, ls)
	return true
}

func kindFromString(s string) Kind {
	for _, k := range []Kind{KindResize, KindRotate, KindMove} {
		if k.String() == s {
			return k
		}
	}
	return KindNone
}
