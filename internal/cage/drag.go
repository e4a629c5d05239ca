/*
 * Copyright (c) 2025 by Alexander Drost, Oldenburg, Germany.
 * This file is licensed to you under the Apache License, Version 2.0 (the "License"); you may not use this file except in compliance with the License.  You may obtain a copy of the License at
 *   http://www.apache.org/licenses/LICENSE-2.0
 * Unless required by applicable law or agreed to in writing, software distributed under the License is distributed on an
 * "AS IS" BASIS, WITHOUT WARRANTIES OR CONDITIONS OF ANY KIND, either express or implied.  See the License for the specific language governing permissions and limitations under the License.
 */

package cage

import "cagekit/internal/vector"

// Drag is the manager's transient gesture state: Idle, EdgeDrag or Rotating.
type Drag interface {
	isDrag()
}

// Idle means no gesture is in progress.
type Idle struct{}

// EdgeDrag is an active resize.
type EdgeDrag struct {
	Edges SelectedEdges
}

// Rotating is an active rotation around Center (screen space).
type Rotating struct {
	Center     vector.Pt
	StartAngle float64
}

func (Idle) isDrag()     {}
func (EdgeDrag) isDrag() {}
func (Rotating) isDrag() {}

// OriginalTransforms is the per-object transform snapshot taken when a
// gesture starts, keyed by selection index. The manager only carries it.
type OriginalTransforms map[int]vector.Affine2D
