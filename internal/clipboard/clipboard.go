/*
 * Copyright (c) 2025 by Alexander Drost, Oldenburg, Germany.
 * This file is licensed to you under the Apache License, Version 2.0 (the "License"); you may not use this file except in compliance with the License.  You may obtain a copy of the License at
 *   http://www.apache.org/licenses/LICENSE-2.0
 * Unless required by applicable law or agreed to in writing, software distributed under the License is distributed on an
 * "AS IS" BASIS, WITHOUT WARRANTIES OR CONDITIONS OF ANY KIND, either express or implied.  See the License for the specific language governing permissions and limitations under the License.
 */

// Package clipboard holds the last copied element set and places pastes with a
// cumulative offset so repeated pastes do not overlap exactly.
package clipboard

import (
	"garmentsketch/internal/scene"
	"garmentsketch/internal/vector"
)

// DefaultOffset is the paste displacement unit in scene units.
const DefaultOffset = 16

// Manager is the clipboard buffer plus its paste counter.
type Manager struct {
	Offset float32
	items  []*scene.Element
	pastes int
}

func New(offset float32) *Manager {
	if offset <= 0 {
		offset = DefaultOffset
	}
	return &Manager{Offset: offset}
}

// Copy clones elems into the buffer and resets the paste counter. Elements that
// cannot be cloned are skipped; the number kept is returned.
func (m *Manager) Copy(elems []*scene.Element) int {
	var kept []*scene.Element
	for _, e := range elems {
		c, err := e.Clone()
		if err != nil {
			continue
		}
		kept = append(kept, c)
	}
	if len(kept) == 0 {
		return 0
	}
	m.items = kept
	m.pastes = 0
	return len(kept)
}

func (m *Manager) Empty() bool { return len(m.items) == 0 }
func (m *Manager) Len() int    { return len(m.items) }

// Paste returns fresh clones with new ids from s, moved by Offset times the
// number of pastes since the last copy.
func (m *Manager) Paste(s *scene.Scene) []*scene.Element {
	if m.Empty() {
		return nil
	}
	m.pastes++
	d := float32(m.pastes) * m.Offset
	return Place(s, m.items, vector.Pt{X: d, Y: d})
}

// Place clones elems with fresh ids and moves them by d. Clone failures are filtered.
func Place(s *scene.Scene, elems []*scene.Element, d vector.Pt) []*scene.Element {
	var out []*scene.Element
	for _, e := range elems {
		c, err := s.CloneFresh(e)
		if err != nil {
			continue
		}
		c.Move(d)
		c.Name = copyName(e.Name)
		out = append(out, c)
	}
	return out
}

func copyName(n string) string {
	if n == "" {
		return n
	}
	return n + " copy"
}
