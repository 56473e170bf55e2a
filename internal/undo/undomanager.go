/*
 * Copyright (c) 2025 by Alexander Drost, Oldenburg, Germany.
 * This file is licensed to you under the Apache License, Version 2.0 (the "License"); you may not use this file except
 * in compliance with the License.  You may obtain a copy of the License at
 *   http://www.apache.org/licenses/LICENSE-2.0
 * Unless required by applicable law or agreed to in writing, software distributed under the License is distributed on an
 * "AS IS" BASIS, WITHOUT WARRANTIES OR CONDITIONS OF ANY KIND, either express or implied.  See the License for the
 *  specific language governing permissions and limitations under the License.
 */

// Package undo keeps a bounded, pointer-based history of scene snapshots.
package undo

import (
	"sync"
	"time"
)

// Snapshot represents a reversible state blob for the scene.
// Blob content is opaque to the history; size is estimated as len(Blob).
// TS is when the snapshot was captured.
type Snapshot struct {
	Blob  []byte
	Label string
	TS    time.Time
}

// Config controls memory and depth caps.
type Config struct {
	// MaxEntries limits the number of snapshots kept (0 means the default of 50).
	MaxEntries int
	// MaxBytes is a soft cap; the oldest entries are pruned when exceeded (0 means unlimited).
	// The current entry is never pruned.
	MaxBytes int
}

const DefaultMaxEntries = 50

// History is a linear undo/redo stack with a pointer at the current entry.
// entries[0..ptr] is the undo chain, entries[ptr+1..] the redo branch.
// It is safe for concurrent use.
type History struct {
	cfg     Config
	mu      sync.Mutex
	entries []Snapshot
	ptr     int
	// accounting
	totalBytes int
}

func NewHistory(cfg Config) *History {
	if cfg.MaxEntries <= 0 {
		cfg.MaxEntries = DefaultMaxEntries
	}
	return &History{cfg: cfg, ptr: -1}
}

// Reset drops everything and installs baseline as the only entry.
func (h *History) Reset(baseline Snapshot) {
	h.mu.Lock()
	defer h.mu.Unlock()
	h.entries = []Snapshot{baseline}
	h.ptr = 0
	h.totalBytes = len(baseline.Blob)
}

// Push records s after the current entry. Any redo branch is discarded.
func (h *History) Push(s Snapshot) {
	h.mu.Lock()
	defer h.mu.Unlock()
	if s.TS.IsZero() {
		s.TS = time.Now()
	}
	for _, r := range h.entries[h.ptr+1:] {
		h.totalBytes -= len(r.Blob)
	}
	h.entries = append(h.entries[:h.ptr+1], s)
	h.ptr = len(h.entries) - 1
	h.totalBytes += len(s.Blob)
	h.enforceCapsLocked()
}

// Undo moves the pointer back one slot after apply accepts the previous snapshot.
// At the first entry it is a no-op returning false. If apply fails the pointer stays.
func (h *History) Undo(apply func(Snapshot) error) (bool, error) {
	h.mu.Lock()
	defer h.mu.Unlock()
	if h.ptr <= 0 {
		return false, nil
	}
	if err := apply(h.entries[h.ptr-1]); err != nil {
		return false, err
	}
	h.ptr--
	return true, nil
}

// Redo is symmetric to Undo.
func (h *History) Redo(apply func(Snapshot) error) (bool, error) {
	h.mu.Lock()
	defer h.mu.Unlock()
	if h.ptr < 0 || h.ptr >= len(h.entries)-1 {
		return false, nil
	}
	if err := apply(h.entries[h.ptr+1]); err != nil {
		return false, err
	}
	h.ptr++
	return true, nil
}

// Current returns the entry the scene is expected to match.
func (h *History) Current() (Snapshot, bool) {
	h.mu.Lock()
	defer h.mu.Unlock()
	if h.ptr < 0 {
		return Snapshot{}, false
	}
	return h.entries[h.ptr], true
}

func (h *History) CanUndo() bool {
	h.mu.Lock()
	defer h.mu.Unlock()
	return h.ptr > 0
}

func (h *History) CanRedo() bool {
	h.mu.Lock()
	defer h.mu.Unlock()
	return h.ptr >= 0 && h.ptr < len(h.entries)-1
}

func (h *History) Len() int {
	h.mu.Lock()
	defer h.mu.Unlock()
	return len(h.entries)
}

func (h *History) Pointer() int {
	h.mu.Lock()
	defer h.mu.Unlock()
	return h.ptr
}

// Stats returns current sizes for diagnostics.
func (h *History) Stats() (totalBytes int, entries int, pointer int) {
	h.mu.Lock()
	defer h.mu.Unlock()
	return h.totalBytes, len(h.entries), h.ptr
}

func (h *History) enforceCapsLocked() {
	// Depth cap: drop the oldest extras
	if extra := len(h.entries) - h.cfg.MaxEntries; extra > 0 {
		h.dropOldestLocked(extra)
	}
	// Memory cap: prune oldest but keep the current entry
	for h.cfg.MaxBytes > 0 && h.totalBytes > h.cfg.MaxBytes && h.ptr > 0 {
		h.dropOldestLocked(1)
	}
}

func (h *History) dropOldestLocked(n int) {
	for i := 0; i < n; i++ {
		h.totalBytes -= len(h.entries[i].Blob)
	}
	h.entries = append([]Snapshot{}, h.entries[n:]...)
	h.ptr -= n
	if h.ptr < 0 {
		h.ptr = 0
	}
}
