/*
 * Copyright (c) 2025 by Alexander Drost, Oldenburg, Germany.
 * This file is licensed to you under the Apache License, Version 2.0 (the "License"); you may not use this file except in compliance with the License.  You may obtain a copy of the License at
 *   http://www.apache.org/licenses/LICENSE-2.0
 * Unless required by applicable law or agreed to in writing, software distributed under the License is distributed on an
 * "AS IS" BASIS, WITHOUT WARRANTIES OR CONDITIONS OF ANY KIND, either express or implied.  See the License for the specific language governing permissions and limitations under the License.
 */

package vector

// Smart guides snap a moving selection against static anchors while it is
// dragged. X and Y are resolved independently.

import "math"

// SnapOptions controls which guide candidates are considered and the threshold.
type SnapOptions struct {
	// Threshold is the maximum distance in document units at which snapping occurs.
	Threshold     float64
	SnapToEdges   bool
	SnapToCenters bool
}

// Anchor is a static reference box. Higher Weight wins ties.
type Anchor struct {
	Bounds Bounds
	Weight float64
}

// GuideLine describes a visual guide generated during a snap alignment.
// Orientation is "vertical" or "horizontal"; Kind is "edge" or "center".
type GuideLine struct {
	Orientation string
	Kind        string
	Position    float64
	From        Pt
	To          Pt
}

type axisCandidate struct {
	delta float64
	dist  float64
	guide GuideLine
}

// ComputeSmartGuides returns the offset that snaps moving onto the closest
// anchor features, plus the guides to draw for it.
func ComputeSmartGuides(moving Bounds, anchors []Anchor, opts SnapOptions) (Pt, []GuideLine) {
	if opts.Threshold <= 0 {
		opts.Threshold = 6
	}
	moving = moving.Canon()
	mMin, mMax, mC := moving.Min(), moving.Max(), moving.Center()

	bestX := axisCandidate{dist: math.Inf(1)}
	bestY := axisCandidate{dist: math.Inf(1)}

	for _, a := range anchors {
		ab := a.Bounds.Canon()
		aMin, aMax, aC := ab.Min(), ab.Max(), ab.Center()
		if opts.SnapToEdges {
			for _, pair := range [][2]float64{{mMin.X, aMin.X}, {mMax.X, aMax.X}, {mMin.X, aMax.X}, {mMax.X, aMin.X}} {
				consider(&bestX, pair[1]-pair[0], opts.Threshold, a.Weight, vertical(pair[1], moving, ab, "edge"))
			}
			for _, pair := range [][2]float64{{mMin.Y, aMin.Y}, {mMax.Y, aMax.Y}, {mMin.Y, aMax.Y}, {mMax.Y, aMin.Y}} {
				consider(&bestY, pair[1]-pair[0], opts.Threshold, a.Weight, horizontal(pair[1], moving, ab, "edge"))
			}
		}
		if opts.SnapToCenters {
			consider(&bestX, aC.X-mC.X, opts.Threshold, a.Weight, vertical(aC.X, moving, ab, "center"))
			consider(&bestY, aC.Y-mC.Y, opts.Threshold, a.Weight, horizontal(aC.Y, moving, ab, "center"))
		}
	}

	var offset Pt
	var guides []GuideLine
	if bestX.dist <= opts.Threshold {
		offset.X = FloatRound(bestX.delta, 6)
		guides = append(guides, bestX.guide)
	}
	if bestY.dist <= opts.Threshold {
		offset.Y = FloatRound(bestY.delta, 6)
		guides = append(guides, bestY.guide)
	}
	return offset, guides
}

func consider(best *axisCandidate, delta, threshold, weight float64, g GuideLine) {
	dist := math.Abs(delta)
	if dist > threshold {
		return
	}
	if dist/math.Max(1, weight) < best.dist {
		*best = axisCandidate{delta: delta, dist: dist, guide: g}
	}
}

func vertical(x float64, a, b Bounds, kind string) GuideLine {
	minY := math.Min(a.Min().Y, b.Min().Y)
	maxY := math.Max(a.Max().Y, b.Max().Y)
	return GuideLine{Orientation: "vertical", Kind: kind, Position: x, From: Pt{x, minY}, To: Pt{x, maxY}}
}

func horizontal(y float64, a, b Bounds, kind string) GuideLine {
	minX := math.Min(a.Min().X, b.Min().X)
	maxX := math.Max(a.Max().X, b.Max().X)
	return GuideLine{Orientation: "horizontal", Kind: kind, Position: y, From: Pt{minX, y}, To: Pt{maxX, y}}
}
