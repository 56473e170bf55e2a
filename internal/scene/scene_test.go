/*
 * Copyright (c) 2025 by Alexander Drost, Oldenburg, Germany.
 * This file is licensed to you under the Apache License, Version 2.0 (the "License"); you may not use this file except in compliance with the License.  You may obtain a copy of the License at
 *   http://www.apache.org/licenses/LICENSE-2.0
 * Unless required by applicable law or agreed to in writing, software distributed under the License is distributed on an
 * "AS IS" BASIS, WITHOUT WARRANTIES OR CONDITIONS OF ANY KIND, either express or implied.  See the License for the specific language governing permissions and limitations under the License.
 */

package scene

import (
	"bytes"
	"errors"
	"math"
	"testing"

	"garmentsketch/internal/vector"
)

func rect(s *Scene, x, y, w, h float32) *Element {
	return s.Add(s.NewElement(KindRectangle, vector.R(x, y, w, h)))
}

func ids(list []*Element) []string {
	out := make([]string, len(list))
	for i, e := range list {
		out[i] = e.ID
	}
	return out
}

func TestIDsAreMonotonicPerScene(t *testing.T) {
	a, b := New(), New()
	e1 := rect(a, 0, 0, 1, 1)
	e2 := rect(a, 0, 0, 1, 1)
	e3 := rect(b, 0, 0, 1, 1)
	if e1.ID != "rectangle-1" || e2.ID != "rectangle-2" {
		t.Fatalf("unexpected ids %q %q", e1.ID, e2.ID)
	}
	if e3.ID != "rectangle-1" {
		t.Fatalf("counters must be per scene, got %q", e3.ID)
	}
	if a.DocID == "" || a.DocID == b.DocID {
		t.Fatalf("expected distinct document ids")
	}
}

func TestZOrderOps(t *testing.T) {
	s := New()
	a, b, c := rect(s, 0, 0, 1, 1), rect(s, 0, 0, 1, 1), rect(s, 0, 0, 1, 1)
	if err := s.BringToFront(a.ID); err != nil {
		t.Fatalf("bring to front: %v", err)
	}
	if got := ids(s.Elements()); got[2] != a.ID {
		t.Fatalf("expected %s in front, got %v", a.ID, got)
	}
	_ = s.SendToBack(c.ID)
	_ = s.BringForward(c.ID)
	if got := ids(s.Elements()); got[0] != b.ID || got[1] != c.ID || got[2] != a.ID {
		t.Fatalf("unexpected order %v", got)
	}
	if err := s.SendBackward("nope"); !errors.Is(err, ErrNotFound) {
		t.Fatalf("expected ErrNotFound, got %v", err)
	}
}

func TestGroupUngroup(t *testing.T) {
	s := New()
	a := rect(s, 0, 0, 10, 10)
	mid := rect(s, 100, 100, 5, 5)
	b := rect(s, 20, 20, 10, 10)
	g, err := s.Group([]string{b.ID, a.ID})
	if err != nil {
		t.Fatalf("group: %v", err)
	}
	if got := ids(s.Elements()); len(got) != 2 || got[0] != mid.ID || got[1] != g.ID {
		t.Fatalf("group must take the front-most member's slot, got %v", got)
	}
	if g.Children[0] != a || g.Children[1] != b {
		t.Fatalf("children must keep z-order")
	}
	if bb := g.Bounds(); bb.X != 0 || bb.Y != 0 || bb.W != 30 || bb.H != 30 {
		t.Fatalf("unexpected group bounds %+v", bb)
	}
	g.Move(vector.Pt{X: 5, Y: 5})
	if a.Geometry.X != 5 || b.Geometry.X != 25 {
		t.Fatalf("moving a group must move its children")
	}
	children, err := s.Ungroup(g.ID)
	if err != nil || len(children) != 2 {
		t.Fatalf("ungroup: %v", err)
	}
	if got := ids(s.Elements()); len(got) != 3 || got[1] != a.ID || got[2] != b.ID {
		t.Fatalf("children must be reparented at the group index, got %v", got)
	}
	if _, err := s.Ungroup(a.ID); !errors.Is(err, ErrNotGroup) {
		t.Fatalf("expected ErrNotGroup, got %v", err)
	}
}

func TestRemoveNestedDropsEmptyGroup(t *testing.T) {
	s := New()
	a, b := rect(s, 0, 0, 1, 1), rect(s, 5, 5, 1, 1)
	g, _ := s.Group([]string{a.ID, b.ID})
	s.Remove(a.ID)
	if g.Geometry.X != 5 {
		t.Fatalf("group bounds must refresh after child removal: %+v", g.Geometry)
	}
	s.Remove(b.ID)
	if s.Len() != 0 || s.Find(g.ID) != nil {
		t.Fatalf("empty group should be removed")
	}
}

func TestLayersFrontMostFirst(t *testing.T) {
	s := New()
	a, b := rect(s, 0, 0, 1, 1), rect(s, 5, 5, 1, 1)
	c := rect(s, 9, 9, 1, 1)
	g, _ := s.Group([]string{a.ID, b.ID})
	collapsed := s.Layers(nil)
	if len(collapsed) != 2 || collapsed[0].ID != c.ID || collapsed[1].ID != g.ID || !collapsed[1].HasChildren {
		t.Fatalf("unexpected collapsed layers %+v", collapsed)
	}
	open := s.Layers(map[string]bool{g.ID: true})
	if len(open) != 4 || open[2].ID != b.ID || open[3].ID != a.ID || open[3].Depth != 1 {
		t.Fatalf("unexpected expanded layers %+v", open)
	}
}

func TestSnapshotRoundTrip(t *testing.T) {
	s := New()
	rect(s, 1, 2, 3, 4)
	line := s.NewElement(KindArrow, vector.R(0, 0, 100, 0))
	line.Geometry.Points = []vector.Pt{{X: 0, Y: 0}, {X: 100, Y: 0}}
	s.Add(line)
	pen := s.NewElement(KindPen, vector.R(0, 0, 10, 10))
	out := vector.Pt{X: 5, Y: 0}
	pen.Geometry.Anchors = []vector.Anchor{{X: 0, Y: 0, Out: &out}, {X: 10, Y: 10}}
	s.Add(pen)

	data, err := s.Snapshot()
	if err != nil {
		t.Fatalf("snapshot: %v", err)
	}
	if err := Validate(data); err != nil {
		t.Fatalf("snapshot must satisfy the schema: %v", err)
	}
	other := New()
	if err := other.Load(data); err != nil {
		t.Fatalf("load: %v", err)
	}
	again, _ := other.Snapshot()
	if !bytes.Equal(data, again) {
		t.Fatalf("round trip mismatch:\n%s\n%s", data, again)
	}
	if other.DocID != s.DocID || other.Counter() != s.Counter() {
		t.Fatalf("doc id and counter must survive import")
	}
}

func TestRestoreIsAtomicAndMonotonic(t *testing.T) {
	s := New()
	rect(s, 0, 0, 1, 1)
	early, _ := s.Snapshot()
	rect(s, 0, 0, 1, 1)
	if err := s.Restore([]byte(`{"format":"nope"}`)); !errors.Is(err, ErrInvalidSnapshot) {
		t.Fatalf("expected ErrInvalidSnapshot, got %v", err)
	}
	if s.Len() != 2 {
		t.Fatalf("failed restore must not touch the scene")
	}
	if err := s.Restore(early); err != nil {
		t.Fatalf("restore: %v", err)
	}
	if s.Len() != 1 || s.Counter() != 2 {
		t.Fatalf("expected 1 element and counter 2, got %d/%d", s.Len(), s.Counter())
	}
	if e := rect(s, 0, 0, 1, 1); e.ID != "rectangle-3" {
		t.Fatalf("ids must not be reused after restore, got %q", e.ID)
	}
}

func TestCloneFailsOnNonFinite(t *testing.T) {
	s := New()
	e := rect(s, 0, 0, 1, 1)
	c, err := e.Clone()
	if err != nil || c == e || c.ID != e.ID {
		t.Fatalf("clone: %v", err)
	}
	e.Geometry.X = float32(math.NaN())
	if _, err := e.Clone(); err == nil {
		t.Fatalf("expected clone of NaN geometry to fail")
	}
}

func TestHitAndResize(t *testing.T) {
	s := New()
	el := s.Add(s.NewElement(KindEllipse, vector.R(0, 0, 100, 50)))
	if s.HitTest(vector.Pt{X: 50, Y: 25}, 0) != el {
		t.Fatalf("expected hit at ellipse center")
	}
	if s.HitTest(vector.Pt{X: -20, Y: -20}, 0) != nil {
		t.Fatalf("expected miss")
	}
	fh := s.NewElement(KindFreehand, vector.R(0, 0, 10, 10))
	fh.Geometry.Points = []vector.Pt{{X: 0, Y: 0}, {X: 10, Y: 10}}
	fh.Resize(vector.R(0, 0, 20, 20))
	if p := fh.Geometry.Points[1]; p.X != 20 || p.Y != 20 {
		t.Fatalf("resize must scale local points, got %+v", p)
	}
}
