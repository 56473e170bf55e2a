/*
 * Copyright (c) 2025 by Alexander Drost, Oldenburg, Germany.
 * This file is licensed to you under the Apache License, Version 2.0 (the "License"); you may not use this file except in compliance with the License.  You may obtain a copy of the License at
 *   http://www.apache.org/licenses/LICENSE-2.0
 * Unless required by applicable law or agreed to in writing, software distributed under the License is distributed on an
 * "AS IS" BASIS, WITHOUT WARRANTIES OR CONDITIONS OF ANY KIND, either express or implied.  See the License for the specific language governing permissions and limitations under the License.
 */

package pen

import (
	"testing"

	"garmentsketch/internal/scene"
	"garmentsketch/internal/vector"
)

func click(b *Builder, x, y float32) *Result {
	p := vector.Pt{X: x, Y: y}
	r := b.PointerDown(p, 1, Modifiers{})
	b.PointerUp(p, 1)
	return r
}

func TestClickNearFirstAnchorCloses(t *testing.T) {
	b := NewBuilder(Options{})
	click(b, 0, 0)
	click(b, 100, 0)
	click(b, 100, 100)
	r := click(b, 3, 2)
	if r == nil || !r.Closed {
		t.Fatalf("expected a closed result, got %+v", r)
	}
	p := r.Path()
	if n := p.SegmentCount(); n != 3 {
		t.Fatalf("expected 3 segments including the closing one, got %d", n)
	}
	if b.Active() {
		t.Fatalf("draft must be cleared after closing")
	}
	if aids := b.Aids(1); aids.Preview != nil || aids.ClosingHint != nil || len(aids.HandleGuides) != 0 {
		t.Fatalf("aids must not survive finalize: %+v", aids)
	}
}

func TestClickOutsideToleranceAppends(t *testing.T) {
	b := NewBuilder(Options{})
	click(b, 0, 0)
	click(b, 100, 0)
	click(b, 100, 100)
	if r := click(b, 30, 30); r != nil {
		t.Fatalf("did not expect the path to close")
	}
	if n := len(b.Anchors()); n != 4 {
		t.Fatalf("expected 4 anchors, got %d", n)
	}
}

func TestCloseToleranceScalesWithZoom(t *testing.T) {
	b := NewBuilder(Options{CloseRadius: 10})
	click(b, 0, 0)
	click(b, 100, 0)
	click(b, 100, 100)
	// 8 scene units away: inside at zoom 1, outside at zoom 2 (radius 5)
	if r := b.PointerDown(vector.Pt{X: 8}, 2, Modifiers{}); r != nil {
		t.Fatalf("expected append at zoom 2")
	}
}

func TestDragSetsMirroredHandles(t *testing.T) {
	b := NewBuilder(Options{})
	click(b, 0, 0)
	b.PointerDown(vector.Pt{X: 100}, 1, Modifiers{})
	b.PointerMove(vector.Pt{X: 120, Y: 10}, 1, Modifiers{})
	b.PointerUp(vector.Pt{X: 120, Y: 10}, 1)
	a := b.Anchors()[1]
	if a.Out == nil || a.In == nil || *a.Out != (vector.Pt{X: 120, Y: 10}) || *a.In != (vector.Pt{X: 80, Y: -10}) {
		t.Fatalf("expected mirrored handles, got in=%v out=%v", a.In, a.Out)
	}
	if aids := b.Aids(1); len(aids.HandleGuides) != 2 {
		t.Fatalf("expected two handle guides, got %d", len(aids.HandleGuides))
	}

	// click on the last anchor converts it to a corner (outbound handle cleared)
	click(b, 101, 1)
	a = b.Anchors()[1]
	if a.Out != nil || a.In == nil || len(b.Anchors()) != 2 {
		t.Fatalf("expected corner conversion, got in=%v out=%v n=%d", a.In, a.Out, len(b.Anchors()))
	}
}

func TestAsymmetricAndSubThresholdDrag(t *testing.T) {
	b := NewBuilder(Options{})
	click(b, 0, 0)
	b.PointerDown(vector.Pt{X: 50}, 1, Modifiers{})
	b.PointerMove(vector.Pt{X: 70}, 1, Modifiers{Asymmetric: true})
	b.PointerUp(vector.Pt{X: 70}, 1)
	if a := b.Anchors()[1]; a.Out == nil || a.In != nil {
		t.Fatalf("asymmetric drag sets only the outbound handle, got in=%v out=%v", a.In, a.Out)
	}

	b.PointerDown(vector.Pt{X: 200}, 1, Modifiers{})
	b.PointerMove(vector.Pt{X: 230}, 1, Modifiers{})
	b.PointerUp(vector.Pt{X: 202}, 1)
	if a := b.Anchors()[2]; a.Out != nil || a.In != nil {
		t.Fatalf("sub-threshold release must clear handles, got in=%v out=%v", a.In, a.Out)
	}
}

func TestSegmentRule(t *testing.T) {
	out := vector.Pt{X: 30, Y: -30}
	r := Result{Anchors: []vector.Anchor{{X: 0, Y: 0}, {X: 100, Y: 0}, {X: 200, Y: 0}}}
	p := r.Path()
	if p.Cmds[1].Op != vector.LineTo || p.Cmds[2].Op != vector.LineTo {
		t.Fatalf("handle-less anchors produce straight lines")
	}
	r.Anchors[0].Out = &out
	p = r.Path()
	if p.Cmds[1].Op != vector.CubicTo || p.Cmds[2].Op != vector.LineTo {
		t.Fatalf("expected cubic then line, got %+v", p.Cmds)
	}
	if p.Cmds[1].Data[0] != 30 || p.Cmds[1].Data[2] != 100 {
		t.Fatalf("cubic must use the earlier out handle and the later anchor as in, got %+v", p.Cmds[1])
	}
}

func TestFinalizeBackspaceCancel(t *testing.T) {
	b := NewBuilder(Options{})
	click(b, 0, 0)
	if _, ok := b.Finalize(); ok {
		t.Fatalf("finalize needs two anchors")
	}
	click(b, 10, 10)
	click(b, 20, 0)
	b.Backspace()
	r, ok := b.Finalize()
	if !ok || r.Closed || len(r.Anchors) != 2 {
		t.Fatalf("unexpected finalize result %+v", r)
	}
	click(b, 5, 5)
	b.Cancel()
	if b.Active() {
		t.Fatalf("cancel must discard the draft")
	}

	s := scene.New()
	e := Commit(s, r)
	if e.Kind != scene.KindPen || e.Geometry.X != 0 || e.Geometry.W != 10 || e.Geometry.H != 10 {
		t.Fatalf("unexpected committed element %+v", e.Geometry)
	}
}

func TestConstrainAppend(t *testing.T) {
	b := NewBuilder(Options{})
	click(b, 0, 0)
	b.PointerDown(vector.Pt{X: 100, Y: 8}, 1, Modifiers{Constrain: true})
	b.PointerUp(vector.Pt{X: 100, Y: 8}, 1)
	if a := b.Anchors()[1]; a.Y > 1e-3 || a.Y < -1e-3 {
		t.Fatalf("expected constrained horizontal anchor, got %+v", a)
	}
}
