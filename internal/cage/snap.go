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

// AxisSnapper snaps drag directions to multiples of StepDegrees.
type AxisSnapper struct {
	StepDegrees float64
}

// Snap is SnapDrag using the snapper's step.
func (a AxisSnapper) Snap(enabled bool, position, start vector.Pt) vector.Pt {
	return SnapDrag(enabled, position, start, a.StepDegrees)
}

// SnapDrag aligns the drag from start to position to the closest multiple of
// stepDegrees measured from the positive X axis, keeping the drag length.
// A non-positive step uses DefaultSnapAngle.
func SnapDrag(enabled bool, position, start vector.Pt, stepDegrees float64) vector.Pt {
	if !enabled {
		return position
	}
	d := position.Sub(start)
	length := d.Length()
	if length == 0 {
		return start
	}
	if stepDegrees <= 0 {
		stepDegrees = DefaultSnapAngle
	}
	step := stepDegrees * math.Pi / 180
	angle := -d.AngleBetween(vector.Pt{X: 1})
	snapped := math.Round(angle/step) * step
	return vector.Pt{X: math.Cos(snapped), Y: math.Sin(snapped)}.Scale(length).Add(start)
}

// SnapAngle rounds a rotation angle in radians to the closest step.
func SnapAngle(enabled bool, radians, stepDegrees float64) float64 {
	if !enabled {
		return radians
	}
	if stepDegrees <= 0 {
		stepDegrees = DefaultSnapAngle
	}
	step := stepDegrees * math.Pi / 180
	return math.Round(radians/step) * step
}
