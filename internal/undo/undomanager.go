/*
 * Copyright (c) 2025 by Alexander Drost, Oldenburg, Germany.
 * This file is licensed to you under the Apache License, Version 2.0 (the "License"); you may not use this file except
 * in compliance with the License.  You may obtain a copy of the License at
 *   http://www.apache.org/licenses/LICENSE-2.0
 * Unless required by applicable law or agreed to in writing, software distributed under the License is distributed on an
 * "AS IS" BASIS, WITHOUT WARRANTIES OR CONDITIONS OF ANY KIND, either express or implied.  See the License for the
 *  specific language governing permissions and limitations under the License.
 */

// Package undo keeps per-selection undo/redo history of committed cage gestures.
package undo

import (
	"sync"
	"time"

	"cagekit/internal/vector"
)

// affineBytes is the in-memory size of one vector.Affine2D.
const affineBytes = 6 * 8

// Frame is the cage placement at one end of a gesture.
type Frame struct {
	Bounds    vector.Bounds
	Transform vector.Affine2D
}

// Snapshot is one committed gesture on a selection: node transforms and cage
// placement before and after. Before and After are indexed like the selection.
type Snapshot struct {
	Selection string
	Kind      string
	Before    []vector.Affine2D
	After     []vector.Affine2D
	CageFrom  Frame
	CageTo    Frame
	TS        time.Time
}

// Size estimates the snapshot's memory footprint.
func (s Snapshot) Size() int {
	return (len(s.Before) + len(s.After) + 2) * affineBytes
}

// Config controls memory and depth caps and coalescing behavior.
type Config struct {
	// MaxBytes is a soft cap; older entries are pruned when exceeded.
	MaxBytes int
	// MaxPerSelection limits snapshots kept per selection (0 means unlimited).
	MaxPerSelection int
	// MinInterval merges a commit into the previous one on the same selection
	// when they are closer than this. The merged entry undoes to the earlier Before.
	MinInterval time.Duration
}

// Manager provides in-memory undo/redo stacks per selection.
// It is safe for concurrent use.
type Manager struct {
	cfg  Config
	mu   sync.Mutex
	undo map[string][]Snapshot
	redo map[string][]Snapshot

	totalBytes int
}

func NewManager(cfg Config) *Manager {
	if cfg.MaxBytes <= 0 {
		cfg.MaxBytes = 4 * 1024 * 1024
	}
	if cfg.MinInterval < 0 {
		cfg.MinInterval = 0
	}
	return &Manager{cfg: cfg, undo: make(map[string][]Snapshot), redo: make(map[string][]Snapshot)}
}

// Push records a committed gesture and clears the selection's redo stack.
func (m *Manager) Push(s Snapshot) {
	m.mu.Lock()
	defer m.mu.Unlock()
	stack := m.undo[s.Selection]
	if n := len(stack); n > 0 && m.cfg.MinInterval > 0 {
		last := stack[n-1]
		if s.TS.Sub(last.TS) < m.cfg.MinInterval && len(last.Before) == len(s.Before) {
			s.Before = last.Before
			s.CageFrom = last.CageFrom
			m.totalBytes += s.Size() - last.Size()
			stack[n-1] = s
			m.redo[s.Selection] = nil
			m.enforceCapsLocked(s.Selection)
			return
		}
	}
	m.undo[s.Selection] = append(stack, s)
	m.totalBytes += s.Size()
	m.redo[s.Selection] = nil
	m.enforceCapsLocked(s.Selection)
}

// Undo moves the newest snapshot of a selection to its redo stack and returns it.
// Callers restore Before and CageFrom.
func (m *Manager) Undo(selection string) (Snapshot, bool) {
	m.mu.Lock()
	defer m.mu.Unlock()
	stack := m.undo[selection]
	if len(stack) == 0 {
		return Snapshot{}, false
	}
	s := stack[len(stack)-1]
	m.undo[selection] = stack[:len(stack)-1]
	m.totalBytes -= s.Size()
	m.redo[selection] = append(m.redo[selection], s)
	return s, true
}

// Redo re-applies the most recently undone snapshot. Callers restore After and CageTo.
func (m *Manager) Redo(selection string) (Snapshot, bool) {
	m.mu.Lock()
	defer m.mu.Unlock()
	r := m.redo[selection]
	if len(r) == 0 {
		return Snapshot{}, false
	}
	s := r[len(r)-1]
	m.redo[selection] = r[:len(r)-1]
	m.undo[selection] = append(m.undo[selection], s)
	m.totalBytes += s.Size()
	m.enforceCapsLocked(selection)
	return s, true
}

// CanUndo and CanRedo report whether the selection has history in that direction.
func (m *Manager) CanUndo(selection string) bool {
	m.mu.Lock()
	defer m.mu.Unlock()
	return len(m.undo[selection]) > 0
}

func (m *Manager) CanRedo(selection string) bool {
	m.mu.Lock()
	defer m.mu.Unlock()
	return len(m.redo[selection]) > 0
}

// Clear drops a selection's history.
func (m *Manager) Clear(selection string) {
	m.mu.Lock()
	defer m.mu.Unlock()
	for _, s := range m.undo[selection] {
		m.totalBytes -= s.Size()
	}
	delete(m.undo, selection)
	delete(m.redo, selection)
	if m.totalBytes < 0 {
		m.totalBytes = 0
	}
}

// Stats returns current sizes for diagnostics.
func (m *Manager) Stats() (totalBytes int, selections int, totalSnapshots int) {
	m.mu.Lock()
	defer m.mu.Unlock()
	selections = len(m.undo)
	for _, v := range m.undo {
		totalSnapshots += len(v)
	}
	return m.totalBytes, selections, totalSnapshots
}

func (m *Manager) enforceCapsLocked(selection string) {
	if m.cfg.MaxPerSelection > 0 {
		stack := m.undo[selection]
		if len(stack) > m.cfg.MaxPerSelection {
			toDrop := len(stack) - m.cfg.MaxPerSelection
			for i := 0; i < toDrop; i++ {
				m.totalBytes -= stack[i].Size()
			}
			m.undo[selection] = append([]Snapshot{}, stack[toDrop:]...)
		}
	}
	// Global memory cap: prune the oldest entry across all selections.
	for m.totalBytes > m.cfg.MaxBytes {
		oldestSel := ""
		found := false
		var oldestTS time.Time
		for sel, stack := range m.undo {
			if len(stack) == 0 {
				continue
			}
			if !found || stack[0].TS.Before(oldestTS) {
				oldestSel, oldestTS, found = sel, stack[0].TS, true
			}
		}
		if !found {
			break
		}
		stack := m.undo[oldestSel]
		m.totalBytes -= stack[0].Size()
		m.undo[oldestSel] = stack[1:]
		if len(m.undo[oldestSel]) == 0 {
			delete(m.undo, oldestSel)
		}
	}
}
