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

// Package ui hosts the desktop cage demo. The Fyne build is gated behind the
// "fyne" tag so headless builds stay free of OpenGL.
package ui

import (
	"fmt"
	"log/slog"

	"fyne.io/fyne/v2"
	"fyne.io/fyne/v2/app"
	"fyne.io/fyne/v2/container"
	"fyne.io/fyne/v2/driver/desktop"
	"fyne.io/fyne/v2/theme"
	"fyne.io/fyne/v2/widget"

	"cagekit/internal/config"
	"cagekit/internal/gesture"
	applog "cagekit/internal/log"
	"cagekit/internal/scenario"
	"cagekit/internal/vector"
)

// Run opens the cage demo window. scenarioPath optionally names a scenario
// whose selection and view are loaded instead of the built-in demo.
func Run(cfg config.AppConfig, scenarioPath string) error {
	l := applog.WithComponent("ui")
	l.Info("starting UI", slog.String("scenario", scenarioPath))

	nodes, opts, err := selection(scenarioPath)
	if err != nil {
		return err
	}
	opts.Thresholds = cfg.Thresholds()
	opts.DisableRotate = !cfg.Cage.RotateEnabled
	opts.Logger = l
	ctl, err := gesture.New(nodes, opts)
	if err != nil {
		return fmt.Errorf("ui: %w", err)
	}

	fyneApp := app.NewWithID("io.cagekit.demo")
	w := fyneApp.NewWindow("cagekit")
	prefs := fyneApp.Preferences()
	w.Resize(fyne.NewSize(float32(prefs.IntWithFallback("window.width", 1000)), float32(prefs.IntWithFallback("window.height", 700))))

	status := widget.NewLabel("Ready")
	cc := NewCageCanvas(ctl, cfg.OverlayStyle())
	ctl.Subscribe(func(ev gesture.Event) { status.SetText(describe(ev)) })

	undo := func() {
		ctl.Undo()
		cc.Refresh()
	}
	redo := func() {
		ctl.Redo()
		cc.Refresh()
	}
	toolbar := widget.NewToolbar(
		widget.NewToolbarAction(theme.ContentUndoIcon(), undo),
		widget.NewToolbarAction(theme.ContentRedoIcon(), redo),
	)
	w.SetContent(container.NewBorder(toolbar, status, nil, nil, cc))

	w.Canvas().AddShortcut(&desktop.CustomShortcut{KeyName: fyne.KeyZ, Modifier: fyne.KeyModifierShortcutDefault}, func(fyne.Shortcut) { undo() })
	w.Canvas().AddShortcut(&desktop.CustomShortcut{KeyName: fyne.KeyY, Modifier: fyne.KeyModifierShortcutDefault}, func(fyne.Shortcut) { redo() })
	w.Canvas().SetOnTypedKey(func(k *fyne.KeyEvent) {
		if k.Name == fyne.KeyEscape {
			cc.Cancel()
		}
	})
	if dc, ok := w.Canvas().(desktop.Canvas); ok {
		dc.SetOnKeyDown(cc.KeyDown)
		dc.SetOnKeyUp(cc.KeyUp)
	}

	w.SetOnClosed(func() {
		sz := w.Canvas().Size()
		prefs.SetInt("window.width", int(sz.Width))
		prefs.SetInt("window.height", int(sz.Height))
	})
	w.ShowAndRun()
	return nil
}

func selection(scenarioPath string) ([]vector.Node, gesture.Options, error) {
	if scenarioPath == "" {
		r1 := vector.NewRect(vector.B(150, 150, 350, 300))
		r2 := vector.NewEllipse(vector.B(450, 200, 600, 320))
		r2.SetTransform(vector.About(vector.Rotate(0.2), vector.Pt{X: 525, Y: 260}))
		return []vector.Node{r1, r2}, gesture.Options{Selection: "demo"}, nil
	}
	sc, err := scenario.Load(scenarioPath)
	if err != nil {
		return nil, gesture.Options{}, fmt.Errorf("ui: %w", err)
	}
	return sc.BuildNodes(), gesture.Options{Selection: sc.Name, View: sc.View()}, nil
}

func describe(ev gesture.Event) string {
	sz := ev.To.Size()
	return fmt.Sprintf("%s %s  %.1f x %.1f", ev.Kind, ev.Phase, sz.X, sz.Y)
}
