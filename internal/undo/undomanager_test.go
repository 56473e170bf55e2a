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
	"errors"
	"fmt"
	"testing"
)

func snap(s string) Snapshot { return Snapshot{Blob: []byte(s)} }

func TestUndoRedoBasic(t *testing.T) {
	h := NewHistory(Config{})
	h.Reset(snap("a"))
	h.Push(snap("b"))
	h.Push(snap("c"))
	var got string
	apply := func(s Snapshot) error { got = string(s.Blob); return nil }

	if ok, err := h.Undo(apply); !ok || err != nil || got != "b" {
		t.Fatalf("undo expected 'b', got ok=%v err=%v blob=%q", ok, err, got)
	}
	if ok, _ := h.Undo(apply); !ok || got != "a" {
		t.Fatalf("undo expected 'a', got ok=%v blob=%q", ok, got)
	}
	if ok, _ := h.Undo(apply); ok {
		t.Fatalf("undo at the first entry must be a no-op")
	}
	if ok, _ := h.Redo(apply); !ok || got != "b" {
		t.Fatalf("redo expected 'b', got ok=%v blob=%q", ok, got)
	}
	if ok, _ := h.Redo(apply); !ok || got != "c" {
		t.Fatalf("redo expected 'c', got ok=%v blob=%q", ok, got)
	}
	if ok, _ := h.Redo(apply); ok {
		t.Fatalf("redo at the latest entry must be a no-op")
	}
}

func TestPushTruncatesRedoBranch(t *testing.T) {
	h := NewHistory(Config{})
	h.Reset(snap("a"))
	h.Push(snap("b"))
	h.Push(snap("c"))
	nop := func(Snapshot) error { return nil }
	_, _ = h.Undo(nop)
	_, _ = h.Undo(nop)
	h.Push(snap("d"))
	if h.CanRedo() || h.Len() != 2 {
		t.Fatalf("expected redo branch dropped, len=%d canRedo=%v", h.Len(), h.CanRedo())
	}
	if cur, _ := h.Current(); string(cur.Blob) != "d" {
		t.Fatalf("expected current 'd', got %q", cur.Blob)
	}
	if tb, _, _ := h.Stats(); tb != 2 {
		t.Fatalf("expected byte accounting of 2, got %d", tb)
	}
}

func TestDepthCap(t *testing.T) {
	h := NewHistory(Config{})
	h.Reset(snap("base"))
	for i := 0; i < 60; i++ {
		h.Push(snap(fmt.Sprintf("s%d", i)))
	}
	if h.Len() != 50 {
		t.Fatalf("expected 50 entries, got %d", h.Len())
	}
	undos := 0
	for {
		ok, _ := h.Undo(func(Snapshot) error { return nil })
		if !ok {
			break
		}
		undos++
	}
	if undos != 49 {
		t.Fatalf("expected 49 undos, got %d", undos)
	}
}

func TestFailedApplyKeepsPointer(t *testing.T) {
	h := NewHistory(Config{})
	h.Reset(snap("a"))
	h.Push(snap("b"))
	boom := errors.New("boom")
	ok, err := h.Undo(func(Snapshot) error { return boom })
	if ok || !errors.Is(err, boom) {
		t.Fatalf("expected failed undo, got ok=%v err=%v", ok, err)
	}
	if h.Pointer() != 1 {
		t.Fatalf("pointer must not move on failure, got %d", h.Pointer())
	}
}

func TestByteCapKeepsCurrent(t *testing.T) {
	h := NewHistory(Config{MaxBytes: 10})
	h.Reset(snap("xxxxx"))
	h.Push(snap("yyyyy"))
	h.Push(snap("zzzzzzzzzzzz"))
	if h.Len() != 1 || h.Pointer() != 0 {
		t.Fatalf("expected only the current entry left, len=%d ptr=%d", h.Len(), h.Pointer())
	}
	if cur, _ := h.Current(); string(cur.Blob) != "zzzzzzzzzzzz" {
		t.Fatalf("unexpected current %q", cur.Blob)
	}
}
