//go:build fyne && cgo

/*
 * Copyright (c) 2025 by Alexander Drost, Oldenburg, Germany.
 * This file is licensed to you under the Apache License, Version 2.0 (the "License"); you may not use this file except
 * in compliance with the License.  You may obtain a copy of the License at
 *   http://www.apache.org/licenses/LICENSE-2.0
 * Unless required by applicable law or agreed to in writing, software distributed under the License is distributed on an
 * "AS IS" BASIS, WITHOUT WARRANTIES OR CONDITIONS OF ANY KIND, either express or implied.  See the License for the
 *  specific language governing permissions and limitations under the License.
 */

package ui

import (
	"image"

	"fyne.io/fyne/v2"
	"fyne.io/fyne/v2/canvas"
	"fyne.io/fyne/v2/driver/desktop"
	"fyne.io/fyne/v2/widget"

	"cagekit/internal/cage"
	"cagekit/internal/gesture"
	"cagekit/internal/overlay"
	"cagekit/internal/vector"
)

// CageCanvas shows a selection with its transformation cage and forwards
// pointer input to a gesture controller. The scene is rasterised with the
// overlay package on every refresh.
type CageCanvas struct {
	widget.BaseWidget

	ctl     *gesture.Controller
	style   overlay.Style
	pointer vector.Pt
	mods    gesture.Modifiers
	cursor  desktop.Cursor
}

func NewCageCanvas(ctl *gesture.Controller, st overlay.Style) *CageCanvas {
	c := &CageCanvas{ctl: ctl, style: st, cursor: desktop.DefaultCursor}
	c.ExtendBaseWidget(c)
	return c
}

func (c *CageCanvas) CreateRenderer() fyne.WidgetRenderer {
	r := &cageCanvasRenderer{cc: c}
	r.raster = canvas.NewRaster(c.draw)
	return r
}

// PreferredSize sets a decent default size for the widget.
func (c *CageCanvas) PreferredSize() fyne.Size { return fyne.NewSize(800, 600) }

// Cursor implements desktop.Cursorable.
func (c *CageCanvas) Cursor() desktop.Cursor { return c.cursor }

func (c *CageCanvas) MouseIn(e *desktop.MouseEvent) { c.hover(e.Position) }

func (c *CageCanvas) MouseMoved(e *desktop.MouseEvent) { c.hover(e.Position) }

func (c *CageCanvas) MouseOut() { c.cursor = desktop.DefaultCursor }

func (c *CageCanvas) hover(pos fyne.Position) {
	c.pointer = toPt(pos)
	c.cursor = desktopCursor(c.ctl.Cursor(c.pointer))
}

func (c *CageCanvas) MouseDown(e *desktop.MouseEvent) {
	if e.Button != desktop.MouseButtonPrimary {
		return
	}
	c.mods = modifiersFrom(e.Modifier)
	c.pointer = toPt(e.Position)
	if c.ctl.PointerDown(c.pointer) != gesture.KindNone {
		c.cursor = desktopCursor(c.ctl.Cursor(c.pointer))
	}
}

func (c *CageCanvas) MouseUp(_ *desktop.MouseEvent) { c.commit() }

func (c *CageCanvas) Dragged(e *fyne.DragEvent) {
	c.pointer = toPt(e.Position)
	if c.ctl.Active() == gesture.KindNone {
		return
	}
	c.ctl.PointerMove(c.pointer, c.mods)
	c.Refresh()
}

// DragEnd commits as well; MouseUp is not delivered on every driver after a drag.
func (c *CageCanvas) DragEnd() { c.commit() }

func (c *CageCanvas) commit() {
	if _, ok := c.ctl.PointerUp(); ok {
		c.cursor = desktopCursor(c.ctl.Cursor(c.pointer))
		c.Refresh()
	}
}

// KeyDown and KeyUp track held modifiers; hook them to the window's desktop.Canvas.
func (c *CageCanvas) KeyDown(e *fyne.KeyEvent) { c.setModifier(e.Name, true) }

func (c *CageCanvas) KeyUp(e *fyne.KeyEvent) { c.setModifier(e.Name, false) }

func (c *CageCanvas) setModifier(k fyne.KeyName, down bool) {
	switch k {
	case desktop.KeyShiftLeft, desktop.KeyShiftRight:
		c.mods.Constrain = down
	case desktop.KeyAltLeft, desktop.KeyAltRight:
		c.mods.Center = down
	case desktop.KeyControlLeft, desktop.KeyControlRight:
		c.mods.AxisAlign = down
	default:
		return
	}
	if c.ctl.Active() != gesture.KindNone {
		c.ctl.PointerMove(c.pointer, c.mods)
		c.Refresh()
	}
}

// Cancel aborts the running gesture.
func (c *CageCanvas) Cancel() {
	c.ctl.Cancel()
	c.Refresh()
}

func (c *CageCanvas) draw(w, h int) image.Image {
	r, err := overlay.NewRaster(w, h, c.style)
	if err != nil {
		return image.NewRGBA(image.Rect(0, 0, w, h))
	}
	s := 1.0
	if sz := c.Size(); sz.Width > 0 {
		s = float64(w) / float64(sz.Width)
	}
	r.SetTransform(vector.Scale(s, s).Aff3())
	st := c.ctl.State()
	for _, q := range st.Outlines {
		r.Node(q)
	}
	st.Cage.RenderOverlays(r)
	return r.Image()
}

type cageCanvasRenderer struct {
	cc     *CageCanvas
	raster *canvas.Raster
}

func (r *cageCanvasRenderer) Destroy()                     {}
func (r *cageCanvasRenderer) Objects() []fyne.CanvasObject { return []fyne.CanvasObject{r.raster} }
func (r *cageCanvasRenderer) MinSize() fyne.Size           { return r.cc.PreferredSize() }
func (r *cageCanvasRenderer) Refresh()                     { canvas.Refresh(r.raster) }

func (r *cageCanvasRenderer) Layout(size fyne.Size) {
	r.raster.Resize(size)
	r.raster.Move(fyne.NewPos(0, 0))
}

func toPt(p fyne.Position) vector.Pt { return vector.Pt{X: float64(p.X), Y: float64(p.Y)} }

// modifiersFrom maps Shift to constrain, Alt to center and Control to axis align.
func modifiersFrom(m fyne.KeyModifier) gesture.Modifiers {
	return gesture.Modifiers{
		Constrain: m&fyne.KeyModifierShift != 0,
		Center:    m&fyne.KeyModifierAlt != 0,
		AxisAlign: m&fyne.KeyModifierControl != 0,
	}
}

// desktopCursor maps cage icons onto the cursors Fyne provides. Fyne has no
// diagonal or rotate cursors.
func desktopCursor(icon cage.CursorIcon) desktop.Cursor {
	switch icon {
	case cage.CursorNSResize:
		return desktop.VResizeCursor
	case cage.CursorEWResize:
		return desktop.HResizeCursor
	case cage.CursorNWSEResize, cage.CursorNESWResize:
		return desktop.CrosshairCursor
	case cage.CursorRotate:
		return desktop.PointerCursor
	default:
		return desktop.DefaultCursor
	}
}
