/*
 * Copyright (c) 2025 by Alexander Drost, Oldenburg, Germany.
 * This file is licensed to you under the Apache License, Version 2.0 (the "License"); you may not use this file except in compliance with the License.  You may obtain a copy of the License at
 *   http://www.apache.org/licenses/LICENSE-2.0
 * Unless required by applicable law or agreed to in writing, software distributed under the License is distributed on an
 * "AS IS" BASIS, WITHOUT WARRANTIES OR CONDITIONS OF ANY KIND, either express or implied.  See the License for the specific language governing permissions and limitations under the License.
 */

package clipboard

import (
	"math"
	"testing"

	"garmentsketch/internal/scene"
	"garmentsketch/internal/vector"
)

func TestPasteOffsetsAccumulate(t *testing.T) {
	s := scene.New()
	e := s.Add(s.NewElement(scene.KindRectangle, vector.R(10, 10, 5, 5)))
	m := New(10)
	if n := m.Copy([]*scene.Element{e}); n != 1 {
		t.Fatalf("expected 1 copied, got %d", n)
	}
	e.Geometry.X = 999 // later edits must not leak into the buffer

	first := m.Paste(s)
	second := m.Paste(s)
	if len(first) != 1 || len(second) != 1 {
		t.Fatalf("expected one element per paste")
	}
	if first[0].Geometry.X != 20 || second[0].Geometry.X != 30 {
		t.Fatalf("unexpected offsets: %v %v", first[0].Geometry.X, second[0].Geometry.X)
	}
	if first[0].ID == e.ID || first[0].ID == second[0].ID {
		t.Fatalf("pastes need fresh ids: %s %s", first[0].ID, second[0].ID)
	}

	m.Copy([]*scene.Element{first[0]})
	if again := m.Paste(s); again[0].Geometry.X != 30 {
		t.Fatalf("copy must reset the paste counter, got %v", again[0].Geometry.X)
	}
}

func TestCopyFiltersUncloneable(t *testing.T) {
	s := scene.New()
	good := s.Add(s.NewElement(scene.KindEllipse, vector.R(0, 0, 5, 5)))
	bad := s.Add(s.NewElement(scene.KindEllipse, vector.R(0, 0, 5, 5)))
	bad.Geometry.W = float32(math.Inf(1))
	m := New(0)
	if n := m.Copy([]*scene.Element{good, bad}); n != 1 {
		t.Fatalf("expected partial copy of 1, got %d", n)
	}
	if got := m.Paste(s); len(got) != 1 || got[0].Geometry.X != DefaultOffset {
		t.Fatalf("unexpected paste %+v", got)
	}
}
