/*
 * Copyright (c) 2025 by Alexander Drost, Oldenburg, Germany.
 * This file is licensed to you under the Apache License, Version 2.0 (the "License"); you may not use this file except in compliance with the License.  You may obtain a copy of the License at
 *   http://www.apache.org/licenses/LICENSE-2.0
 * Unless required by applicable law or agreed to in writing, software distributed under the License is distributed on an
 * "AS IS" BASIS, WITHOUT WARRANTIES OR CONDITIONS OF ANY KIND, either express or implied.  See the License for the specific language governing permissions and limitations under the License.
 */

package scenario

import (
	"context"
	"fmt"
	"log/slog"

	"cagekit/internal/cage"
	"cagekit/internal/config"
	"cagekit/internal/gesture"
	applog "cagekit/internal/log"
	"cagekit/internal/overlay"
	"cagekit/internal/vector"
)

// StepResult is the state observed right after a step ran.
type StepResult struct {
	Index  int
	Action string
	Kind   gesture.Kind
	Cursor cage.CursorIcon
	// Applied is false for an up, cancel, undo or redo that had nothing to act on.
	Applied bool
	Bounds  vector.Bounds
}

// Result is a finished replay.
type Result struct {
	Name  string
	Steps []StepResult
	Final vector.Bounds

	ctl *gesture.Controller
}

// Controller returns the controller the scenario ran on.
func (r *Result) Controller() *gesture.Controller { return r.ctl }

// Canvas is an overlay renderer that can also outline content nodes.
type Canvas interface {
	overlay.Renderer
	Node(q vector.Quad)
}

// Draw renders the selection's nodes and the final cage in screen space.
func (r *Result) Draw(c Canvas) {
	st := r.ctl.State()
	for _, q := range st.Outlines {
		c.Node(q)
	}
	st.Cage.RenderOverlays(c)
}

// Run replays sc through a new gesture controller configured from cfg.
// The scenario's own thresholds and rotate flag win over cfg. Listeners
// receive every gesture event.
func Run(ctx context.Context, sc *Scenario, cfg config.AppConfig, listeners ...func(gesture.Event)) (*Result, error) {
	l := applog.WithOperation(applog.WithComponent("scenario"), "run").With(slog.String("scenario", sc.Name))

	th := cfg.Thresholds()
	if t := sc.Thresholds; t != nil {
		if t.Select > 0 {
			th.Select = t.Select
		}
		if t.Rotate > 0 {
			th.Rotate = t.Rotate
		}
		if t.SnapAngle > 0 {
			th.SnapAngle = t.SnapAngle
		}
	}
	rotate := cfg.Cage.RotateEnabled
	if sc.Rotate != nil {
		rotate = *sc.Rotate
	}
	guides := vector.SnapOptions{SnapToEdges: true, SnapToCenters: true}
	if g := sc.Guides; g != nil {
		guides = vector.SnapOptions{Threshold: g.Threshold, SnapToEdges: g.Edges, SnapToCenters: g.Centers}
	}

	ctl, err := gesture.New(sc.BuildNodes(), gesture.Options{
		Selection:     sc.Name,
		Thresholds:    th,
		View:          sc.View(),
		DisableRotate: !rotate,
		Anchors:       sc.anchors(),
		Guides:        guides,
		Logger:        l,
	})
	if err != nil {
		return nil, fmt.Errorf("scenario %q: %w", sc.Name, err)
	}
	for _, fn := range listeners {
		ctl.Subscribe(fn)
	}

	res := &Result{Name: sc.Name, ctl: ctl}
	var last vector.Pt
	for i, st := range sc.Steps {
		if err := ctx.Err(); err != nil {
			return nil, fmt.Errorf("scenario %q step %d: %w", sc.Name, i, err)
		}
		if p, ok := st.point(); ok {
			last = p
		}
		sr := StepResult{Index: i, Action: st.Action, Applied: true}
		switch st.Action {
		case ActionHover:
		case ActionDown:
			sr.Applied = ctl.PointerDown(last) != gesture.KindNone
		case ActionMove:
			sr.Applied = ctl.Active() != gesture.KindNone
			ctl.PointerMove(last, st.Modifiers)
		case ActionUp:
			ev, ok := ctl.PointerUp()
			sr.Applied = ok
			sr.Kind = ev.Kind
		case ActionCancel:
			sr.Applied = ctl.Active() != gesture.KindNone
			ctl.Cancel()
		case ActionUndo:
			sr.Applied = ctl.Undo()
		case ActionRedo:
			sr.Applied = ctl.Redo()
		}
		if st.Action != ActionUp {
			sr.Kind = ctl.Active()
		}
		sr.Cursor = ctl.Cursor(last)
		sr.Bounds = ctl.State().Bounds
		res.Steps = append(res.Steps, sr)
	}
	res.Final = ctl.State().Bounds
	l.Debug("replayed", slog.Int("steps", len(res.Steps)))
	return res, nil
}
