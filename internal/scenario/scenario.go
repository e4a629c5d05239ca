/*
 * Copyright (c) 2025 by Alexander Drost, Oldenburg, Germany.
 * This file is licensed to you under the Apache License, Version 2.0 (the "License"); you may not use this file except in compliance with the License.  You may obtain a copy of the License at
 *   http://www.apache.org/licenses/LICENSE-2.0
 * Unless required by applicable law or agreed to in writing, software distributed under the License is distributed on an
 * "AS IS" BASIS, WITHOUT WARRANTIES OR CONDITIONS OF ANY KIND, either express or implied.  See the License for the specific language governing permissions and limitations under the License.
 */

// Package scenario loads scripted cage sessions (a selection, a view and a
// list of pointer steps) and replays them through a gesture controller.
package scenario

import (
	_ "embed"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	gojsonschema "github.com/xeipuuv/gojsonschema"
	"gopkg.in/yaml.v3"

	"cagekit/internal/gesture"
	"cagekit/internal/vector"
)

//go:embed schema.json
var schemaJSON []byte

// ErrInvalid marks a scenario that does not parse or fails validation.
var ErrInvalid = errors.New("invalid scenario")

// Step actions.
const (
	ActionHover  = "hover"
	ActionDown   = "down"
	ActionMove   = "move"
	ActionUp     = "up"
	ActionCancel = "cancel"
	ActionUndo   = "undo"
	ActionRedo   = "redo"
)

// Scenario is one scripted session. Rects are [x0, y0, x1, y1], points
// [x, y] and affine matrices [a, b, c, d, e, f].
type Scenario struct {
	Name       string          `yaml:"name"`
	Width      float64         `yaml:"width"`
	Height     float64         `yaml:"height"`
	ViewMatrix []float64       `yaml:"view"`
	Rotate     *bool           `yaml:"rotate"`
	Thresholds *ThresholdsSpec `yaml:"thresholds"`
	Guides     *GuidesSpec     `yaml:"guides"`
	Anchors    [][]float64     `yaml:"anchors"`
	Nodes      []NodeSpec      `yaml:"nodes"`
	Steps      []Step          `yaml:"steps"`
}

type ThresholdsSpec struct {
	Select    float64 `yaml:"select"`
	Rotate    float64 `yaml:"rotate"`
	SnapAngle float64 `yaml:"snapAngle"`
}

type GuidesSpec struct {
	Threshold float64 `yaml:"threshold"`
	Edges     bool    `yaml:"edges"`
	Centers   bool    `yaml:"centers"`
}

type NodeSpec struct {
	Shape     string    `yaml:"shape"`
	Bounds    []float64 `yaml:"bounds"`
	Transform []float64 `yaml:"transform"`
}

// Step is one pointer or history action. At is required for hover, down and move.
type Step struct {
	Action    string            `yaml:"action"`
	At        []float64         `yaml:"at"`
	Modifiers gesture.Modifiers `yaml:"modifiers"`
}

// Load reads and parses a scenario file.
func Load(path string) (*Scenario, error) {
	b, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("read scenario: %w", err)
	}
	sc, err := Parse(b)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", filepath.Base(path), err)
	}
	return sc, nil
}

// Parse decodes YAML or JSON and validates it against the embedded schema.
func Parse(data []byte) (*Scenario, error) {
	var doc any
	if err := yaml.Unmarshal(data, &doc); err != nil {
		return nil, fmt.Errorf("%w: %v", ErrInvalid, err)
	}
	if doc == nil {
		return nil, fmt.Errorf("%w: empty document", ErrInvalid)
	}
	res, err := gojsonschema.Validate(gojsonschema.NewBytesLoader(schemaJSON), gojsonschema.NewGoLoader(doc))
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrInvalid, err)
	}
	if !res.Valid() {
		msgs := make([]string, 0, len(res.Errors()))
		for _, e := range res.Errors() {
			msgs = append(msgs, e.String())
		}
		return nil, fmt.Errorf("%w: %s", ErrInvalid, strings.Join(msgs, "; "))
	}

	var sc Scenario
	if err := yaml.Unmarshal(data, &sc); err != nil {
		return nil, fmt.Errorf("%w: %v", ErrInvalid, err)
	}
	if err := sc.check(); err != nil {
		return nil, err
	}
	return &sc, nil
}

// check covers what the schema cannot express.
func (sc *Scenario) check() error {
	for i, st := range sc.Steps {
		switch st.Action {
		case ActionHover, ActionDown, ActionMove:
			if len(st.At) != 2 {
				return fmt.Errorf("%w: step %d: %s needs at", ErrInvalid, i, st.Action)
			}
		}
	}
	if v := sc.View(); v.Det() == 0 {
		return fmt.Errorf("%w: view is not invertible", ErrInvalid)
	}
	return nil
}

func affine(v []float64) vector.Affine2D {
	if len(v) != 6 {
		return vector.Identity
	}
	return vector.Affine2D{A: v[0], B: v[1], C: v[2], D: v[3], E: v[4], F: v[5]}
}

func rect(v []float64) vector.Bounds { return vector.B(v[0], v[1], v[2], v[3]) }

// View is the document-to-screen transform, identity unless set.
func (sc *Scenario) View() vector.Affine2D { return affine(sc.ViewMatrix) }

// Size is the canvas size used when rendering, 800x600 unless set.
func (sc *Scenario) Size() (w, h float64) {
	w, h = sc.Width, sc.Height
	if w <= 0 {
		w = 800
	}
	if h <= 0 {
		h = 600
	}
	return w, h
}

// BuildNodes creates fresh nodes for the selection.
func (sc *Scenario) BuildNodes() []vector.Node {
	nodes := make([]vector.Node, 0, len(sc.Nodes))
	for _, ns := range sc.Nodes {
		var n vector.Node
		if ns.Shape == "ellipse" {
			n = vector.NewEllipse(rect(ns.Bounds))
		} else {
			n = vector.NewRect(rect(ns.Bounds))
		}
		n.SetTransform(affine(ns.Transform))
		nodes = append(nodes, n)
	}
	return nodes
}

func (sc *Scenario) anchors() []vector.Anchor {
	out := make([]vector.Anchor, 0, len(sc.Anchors))
	for _, a := range sc.Anchors {
		out = append(out, vector.Anchor{Bounds: rect(a), Weight: 1})
	}
	return out
}

func (st Step) point() (vector.Pt, bool) {
	if len(st.At) != 2 {
		return vector.Pt{}, false
	}
	return vector.Pt{X: st.At[0], Y: st.At[1]}, true
}
