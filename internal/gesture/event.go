/*
 * Copyright (c) 2025 by Alexander Drost, Oldenburg, Germany.
 * This file is licensed to you under the Apache License, Version 2.0 (the "License"); you may not use this file except in compliance with the License.  You may obtain a copy of the License at
 *   http://www.apache.org/licenses/LICENSE-2.0
 * Unless required by applicable law or agreed to in writing, software distributed under the License is distributed on an
 * "AS IS" BASIS, WITHOUT WARRANTIES OR CONDITIONS OF ANY KIND, either express or implied.  See the License for the specific language governing permissions and limitations under the License.
 */

package gesture

import (
	"cagekit/internal/cage"
	"cagekit/internal/vector"
)

// Modifiers are the keyboard modifiers held during a pointer move.
type Modifiers struct {
	Center    bool `yaml:"center" json:"center"`
	Constrain bool `yaml:"constrain" json:"constrain"`
	AxisAlign bool `yaml:"axisAlign" json:"axisAlign"`
}

// Kind is the gesture chosen on pointer down.
type Kind uint8

const (
	KindNone Kind = iota
	KindResize
	KindRotate
	KindMove
)

func (k Kind) String() string {
	switch k {
	case KindResize:
		return "resize"
	case KindRotate:
		return "rotate"
	case KindMove:
		return "move"
	default:
		return "none"
	}
}

// Phase says where in its lifecycle an Event was emitted.
type Phase uint8

const (
	PhaseStart Phase = iota
	PhaseUpdate
	PhaseCommit
	PhaseCancel
	PhaseUndo
	PhaseRedo
)

func (p Phase) String() string {
	return [...]string{"start", "update", "commit", "cancel", "undo", "redo"}[p]
}

// Event is the read-only view listeners get of the cage. From and To are
// document-space bounds of the selection; Outline is the cage on screen.
type Event struct {
	Selection string
	Kind      Kind
	Phase     Phase
	Edges     cage.Edges
	Modifiers Modifiers
	From      vector.Bounds
	To        vector.Bounds
	Outline   vector.Quad
	Guides    []vector.GuideLine
}
