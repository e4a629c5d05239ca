/*
 * Copyright (c) 2025 by Alexander Drost, Oldenburg, Germany.
 * This file is licensed to you under the Apache License, Version 2.0 (the "License"); you may not use this file except
 * in compliance with the License.  You may obtain a copy of the License at
 *   http://www.apache.org/licenses/LICENSE-2.0
 * Unless required by applicable law or agreed to in writing, software distributed under the License is distributed on an
 * "AS IS" BASIS, WITHOUT WARRANTIES OR CONDITIONS OF ANY KIND, either express or implied.  See the License for the
 *  specific language governing permissions and limitations under the License.
 */

package undo

import (
	"testing"
	"time"

	"cagekit/internal/vector"
)

func snap(sel string, before, after float64, ts time.Time) Snapshot {
	return Snapshot{
		Selection: sel,
		Kind:      "resize",
		Before:    []vector.Affine2D{vector.Scale(before, before)},
		After:     []vector.Affine2D{vector.Scale(after, after)},
		TS:        ts,
	}
}

func TestUndoRedoBasic(t *testing.T) {
	m := NewManager(Config{MaxPerSelection: 10, MinInterval: 10 * time.Millisecond})
	t0 := time.Now()
	m.Push(snap("a", 1, 2, t0))
	m.Push(snap("a", 2, 3, t0.Add(20*time.Millisecond)))
	if _, sels, total := m.Stats(); sels != 1 || total != 2 {
		t.Fatalf("expected 1 selection and 2 snapshots, got selections=%d total=%d", sels, total)
	}
	s, ok := m.Undo("a")
	if !ok || s.Before[0] != vector.Scale(2, 2) {
		t.Fatalf("undo expected before=2x, got ok=%v %+v", ok, s.Before)
	}
	if !m.CanRedo("a") {
		t.Fatalf("expected redo to be available")
	}
	s, ok = m.Redo("a")
	if !ok || s.After[0] != vector.Scale(3, 3) {
		t.Fatalf("redo expected after=3x, got ok=%v %+v", ok, s.After)
	}
}

func TestCoalesceKeepsEarliestBefore(t *testing.T) {
	m := NewManager(Config{MaxPerSelection: 10, MinInterval: 50 * time.Millisecond})
	t0 := time.Now()
	m.Push(snap("a", 1, 2, t0))
	m.Push(snap("a", 2, 4, t0.Add(10*time.Millisecond)))
	_, _, total := m.Stats()
	if total != 1 {
		t.Fatalf("expected coalesced to 1 snapshot, got %d", total)
	}
	s, _ := m.Undo("a")
	if s.Before[0] != vector.Scale(1, 1) || s.After[0] != vector.Scale(4, 4) {
		t.Fatalf("expected merged 1x->4x, got %+v -> %+v", s.Before, s.After)
	}
}

func TestPushClearsRedo(t *testing.T) {
	m := NewManager(Config{})
	t0 := time.Now()
	m.Push(snap("a", 1, 2, t0))
	m.Undo("a")
	m.Push(snap("a", 1, 5, t0.Add(time.Second)))
	if m.CanRedo("a") {
		t.Fatalf("new commit must invalidate redo")
	}
}

func TestCaps(t *testing.T) {
	m := NewManager(Config{MaxPerSelection: 2, MinInterval: time.Millisecond})
	t0 := time.Now()
	for i := 0; i < 10; i++ {
		m.Push(snap("a", 1, 2, t0.Add(time.Duration(i)*time.Second)))
	}
	_, _, total := m.Stats()
	if total != 2 {
		t.Fatalf("expected MaxPerSelection cap to limit to 2, got %d", total)
	}
}
