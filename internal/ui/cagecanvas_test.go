//go:build fyne && cgo

/*
 * Copyright (c) 2025 by Alexander Drost, Oldenburg, Germany.
 * This file is licensed to you under the Apache License, Version 2.0 (the "License"); you may not use this file except in compliance with the License.  You may obtain a copy of the License at
 *   http://www.apache.org/licenses/LICENSE-2.0
 * Unless required by applicable law or agreed to in writing, software distributed under the License is distributed on an
 * "AS IS" BASIS, WITHOUT WARRANTIES OR CONDITIONS OF ANY KIND, either express or implied.  See the License for the specific language governing permissions and limitations under the License.
 */


// These tests validate the Fyne-based cage canvas. They are gated behind the
// "fyne" build tag so CI (which is headless) does not need Fyne or a display.
// To run locally:
//
//	go test -tags fyne ./internal/ui
package ui

import (
	"testing"

	"fyne.io/fyne/v2"
	"fyne.io/fyne/v2/driver/desktop"
	"fyne.io/fyne/v2/test"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"cagekit/internal/cage"
	"cagekit/internal/gesture"
	"cagekit/internal/overlay"
	"cagekit/internal/vector"
)

func newTestCanvas(t *testing.T) (*CageCanvas, vector.Node) {
	t.Helper()
	a := test.NewApp()
	t.Cleanup(a.Quit)
	n := vector.NewRect(vector.B(0, 0, 100, 50))
	ctl, err := gesture.New([]vector.Node{n}, gesture.Options{})
	require.NoError(t, err)
	return NewCageCanvas(ctl, overlay.DefaultStyle()), n
}

func mouse(x, y float32, mod fyne.KeyModifier) *desktop.MouseEvent {
	return &desktop.MouseEvent{
		PointEvent: fyne.PointEvent{Position: fyne.NewPos(x, y)},
		Button:     desktop.MouseButtonPrimary,
		Modifier:   mod,
	}
}

func TestCageCanvas_HoverCursor(t *testing.T) {
	cc, _ := newTestCanvas(t)
	cc.MouseMoved(mouse(100, 25, 0))
	assert.Equal(t, desktop.HResizeCursor, cc.Cursor())
	cc.MouseMoved(mouse(50, 0, 0))
	assert.Equal(t, desktop.VResizeCursor, cc.Cursor())
	cc.MouseOut()
	assert.Equal(t, desktop.DefaultCursor, cc.Cursor())
}

func TestCageCanvas_DragResizes(t *testing.T) {
	cc, n := newTestCanvas(t)
	cc.MouseDown(mouse(100, 25, 0))
	cc.Dragged(&fyne.DragEvent{PointEvent: fyne.PointEvent{Position: fyne.NewPos(150, 25)}})
	cc.DragEnd()
	assert.Equal(t, vector.B(0, 0, 150, 50), n.Bounds())
	assert.Equal(t, gesture.KindNone, cc.ctl.Active())
}

func TestCageCanvas_ShiftConstrains(t *testing.T) {
	cc, n := newTestCanvas(t)
	cc.MouseDown(mouse(100, 50, fyne.KeyModifierShift))
	assert.True(t, cc.mods.Constrain)
	cc.Dragged(&fyne.DragEvent{PointEvent: fyne.PointEvent{Position: fyne.NewPos(200, 60)}})
	b := n.Bounds()
	assert.InDelta(t, 2.0, b.Size().X/b.Size().Y, 1e-9)
	cc.Cancel()
	assert.Equal(t, vector.B(0, 0, 100, 50), n.Bounds())
}

func TestCageCanvas_KeyModifiers(t *testing.T) {
	cc, _ := newTestCanvas(t)
	cc.KeyDown(&fyne.KeyEvent{Name: desktop.KeyAltLeft})
	assert.True(t, cc.mods.Center)
	cc.KeyDown(&fyne.KeyEvent{Name: desktop.KeyControlRight})
	assert.True(t, cc.mods.AxisAlign)
	cc.KeyUp(&fyne.KeyEvent{Name: desktop.KeyAltLeft})
	assert.False(t, cc.mods.Center)
}

func TestCageCanvas_DrawSize(t *testing.T) {
	cc, _ := newTestCanvas(t)
	img := cc.draw(320, 200)
	assert.Equal(t, 320, img.Bounds().Dx())
	assert.Equal(t, 200, img.Bounds().Dy())
}

func TestDesktopCursor(t *testing.T) {
	assert.Equal(t, desktop.VResizeCursor, desktopCursor(cage.CursorNSResize))
	assert.Equal(t, desktop.HResizeCursor, desktopCursor(cage.CursorEWResize))
	assert.Equal(t, desktop.CrosshairCursor, desktopCursor(cage.CursorNWSEResize))
	assert.Equal(t, desktop.CrosshairCursor, desktopCursor(cage.CursorNESWResize))
	assert.Equal(t, desktop.PointerCursor, desktopCursor(cage.CursorRotate))
	assert.Equal(t, desktop.DefaultCursor, desktopCursor(cage.CursorDefault))
}
