/*
 * Copyright (c) 2025 by Alexander Drost, Oldenburg, Germany.
 * This file is licensed to you under the Apache License, Version 2.0 (the "License"); you may not use this file except in compliance with the License.  You may obtain a copy of the License at
 *   http://www.apache.org/licenses/LICENSE-2.0
 * Unless required by applicable law or agreed to in writing, software distributed under the License is distributed on an
 * "AS IS" BASIS, WITHOUT WARRANTIES OR CONDITIONS OF ANY KIND, either express or implied.  See the License for the specific language governing permissions and limitations under the License.
 */

package overlay

import "cagekit/internal/vector"

// Square is one recorded handle.
type Square struct {
	Center   vector.Pt
	Selected bool
}

// Recorder keeps every primitive it is given, in order.
type Recorder struct {
	Quads   []vector.Quad
	Squares []Square
}

func (r *Recorder) Quad(q vector.Quad) { r.Quads = append(r.Quads, q) }

func (r *Recorder) Square(c vector.Pt, selected bool) {
	r.Squares = append(r.Squares, Square{Center: c, Selected: selected})
}

// Centers returns the recorded handle centres.
func (r *Recorder) Centers() []vector.Pt {
	out := make([]vector.Pt, len(r.Squares))
	for i, s := range r.Squares {
		out[i] = s.Center
	}
	return out
}

// Reset drops everything recorded so far.
func (r *Recorder) Reset() {
	r.Quads = r.Quads[:0]
	r.Squares = r.Squares[:0]
}
