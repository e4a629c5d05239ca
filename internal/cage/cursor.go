/*
 * Copyright (c) 2025 by Alexander Drost, Oldenburg, Germany.
 * This file is licensed to you under the Apache License, Version 2.0 (the "License"); you may not use this file except in compliance with the License.  You may obtain a copy of the License at
 *   http://www.apache.org/licenses/LICENSE-2.0
 * Unless required by applicable law or agreed to in writing, software distributed under the License is distributed on an
 * "AS IS" BASIS, WITHOUT WARRANTIES OR CONDITIONS OF ANY KIND, either express or implied.  See the License for the specific language governing permissions and limitations under the License.
 */

package cage

// CursorIcon is the pointer feedback for the cage under the cursor.
type CursorIcon uint8

const (
	CursorDefault CursorIcon = iota
	CursorNSResize
	CursorEWResize
	CursorNWSEResize
	CursorNESWResize
	CursorRotate
)

func (c CursorIcon) String() string {
	switch c {
	case CursorNSResize:
		return "ns-resize"
	case CursorEWResize:
		return "ew-resize"
	case CursorNWSEResize:
		return "nwse-resize"
	case CursorNESWResize:
		return "nesw-resize"
	case CursorRotate:
		return "rotate"
	default:
		return "default"
	}
}

// cursorForEdges maps hit edges to a resize icon. Cases are ordered; the first
// match wins.
func cursorForEdges(e Edges) CursorIcon {
	switch {
	case (e.Top || e.Bottom) && !e.Left && !e.Right:
		return CursorNSResize
	case !e.Top && !e.Bottom && (e.Left || e.Right):
		return CursorEWResize
	case (e.Top && e.Left) || (e.Bottom && e.Right):
		return CursorNWSEResize
	case (e.Top && e.Right) || (e.Bottom && e.Left):
		return CursorNESWResize
	default:
		return CursorDefault
	}
}

// Cursor is the resize icon for the edges, used while a drag keeps them fixed.
func (e Edges) Cursor() CursorIcon { return cursorForEdges(e) }
