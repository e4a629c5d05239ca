/*
 * Copyright (c) 2025 by Alexander Drost, Oldenburg, Germany.
 * This file is licensed to you under the Apache License, Version 2.0 (the "License"); you may not use this file except in compliance with the License.  You may obtain a copy of the License at
 *   http://www.apache.org/licenses/LICENSE-2.0
 * Unless required by applicable law or agreed to in writing, software distributed under the License is distributed on an
 * "AS IS" BASIS, WITHOUT WARRANTIES OR CONDITIONS OF ANY KIND, either express or implied.  See the License for the specific language governing permissions and limitations under the License.
 */

package vector

// Node is a selectable scene item. LocalBounds is expressed before the
// node transform is applied; Bounds is the axis-aligned box in document space.
type Node interface {
	LocalBounds() Bounds
	Bounds() Bounds
	Transform() Affine2D
	SetTransform(Affine2D)
	Hit(p Pt) bool
}

type baseNode struct {
	xf Affine2D
}

func (b *baseNode) Transform() Affine2D     { return b.xf }
func (b *baseNode) SetTransform(m Affine2D) { b.xf = m }

// transformedBounds maps the four corners of lb through xf.
func transformedBounds(xf Affine2D, lb Bounds) Bounds {
	return xf.ApplyQuad(QuadFromBounds(lb)).Bounds()
}

// RectNode is an axis-aligned rectangle before transform.
type RectNode struct {
	baseNode
	rect Bounds
}

func NewRect(r Bounds) *RectNode {
	return &RectNode{baseNode: baseNode{xf: Identity}, rect: r.Canon()}
}

func (n *RectNode) LocalBounds() Bounds { return n.rect }
func (n *RectNode) Bounds() Bounds      { return transformedBounds(n.xf, n.rect) }

func (n *RectNode) Hit(p Pt) bool {
	q := n.xf.Inverse().Apply(p)
	return n.rect.Contains(q)
}

// EllipseNode is an ellipse inscribed in its local rect.
type EllipseNode struct {
	baseNode
	rect Bounds
}

func NewEllipse(r Bounds) *EllipseNode {
	return &EllipseNode{baseNode: baseNode{xf: Identity}, rect: r.Canon()}
}

func (n *EllipseNode) LocalBounds() Bounds { return n.rect }
func (n *EllipseNode) Bounds() Bounds      { return transformedBounds(n.xf, n.rect) }

func (n *EllipseNode) Hit(p Pt) bool {
	q := n.xf.Inverse().Apply(p)
	c := n.rect.Center()
	r := n.rect.Size().Scale(0.5)
	if r.X == 0 || r.Y == 0 {
		return false
	}
	d := q.Sub(c).Div(r)
	return d.Dot(d) <= 1
}

// UnionBounds returns the document-space bounds of all nodes.
func UnionBounds(nodes []Node) (Bounds, bool) {
	if len(nodes) == 0 {
		return Bounds{}, false
	}
	b := nodes[0].Bounds()
	for _, n := range nodes[1:] {
		b = b.Union(n.Bounds())
	}
	return b, true
}
