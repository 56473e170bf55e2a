/*
 * Copyright (c) 2025 by Alexander Drost, Oldenburg, Germany.
 * This file is licensed to you under the Apache License, Version 2.0 (the "License"); you may not use this file except in compliance with the License.  You may obtain a copy of the License at
 *   http://www.apache.org/licenses/LICENSE-2.0
 * Unless required by applicable law or agreed to in writing, software distributed under the License is distributed on an
 * "AS IS" BASIS, WITHOUT WARRANTIES OR CONDITIONS OF ANY KIND, either express or implied.  See the License for the specific language governing permissions and limitations under the License.
 */

package vector

import "testing"

func TestPath_TranslateAndBounds(t *testing.T) {
	var p Path
	p.MoveTo(0, 0)
	p.LineTo(10, 0)
	p.LineTo(0, 10)
	p.Close()

	b := p.Bounds()
	if b.X != 0 || b.Y != 0 || b.W != 10 || b.H != 10 {
		t.Fatalf("unexpected bounds: %+v", b)
	}
	moved := p.Translate(5, 5)
	bb := moved.Bounds()
	if bb.X != 5 || bb.Y != 5 || bb.W != 10 || bb.H != 10 {
		t.Fatalf("unexpected translated bounds: %+v", bb)
	}
	if p.Cmds[1].Data[0] != 10 {
		t.Fatalf("translate must not mutate the receiver")
	}
	if n := p.SegmentCount(); n != 3 {
		t.Fatalf("expected 3 segments (2 lines + close), got %d", n)
	}
}

func TestPath_FlattenSubpaths(t *testing.T) {
	p := RectPath(R(0, 0, 10, 10), 0)
	p.Append(EllipsePath(R(20, 20, 10, 10)))
	contours, closed := p.Flatten(8)
	if len(contours) != 2 {
		t.Fatalf("expected 2 contours, got %d", len(contours))
	}
	if !closed[0] || !closed[1] {
		t.Fatalf("expected both contours closed: %v", closed)
	}
	if len(contours[0]) != 5 {
		t.Fatalf("rect contour should have 5 points (incl. closing lineTo), got %d", len(contours[0]))
	}
	// 4 cubic segments * 8 steps + start point
	if len(contours[1]) != 33 {
		t.Fatalf("ellipse contour should have 33 points, got %d", len(contours[1]))
	}
	for _, q := range contours[1] {
		if q.X < 19.9 || q.X > 30.1 || q.Y < 19.9 || q.Y > 30.1 {
			t.Fatalf("flattened ellipse point outside its box: %+v", q)
		}
	}
}

func TestShapes_Hit(t *testing.T) {
	if !HitEllipse(R(0, 0, 100, 100), Pt{50, 50}) {
		t.Fatalf("center should hit")
	}
	if HitEllipse(R(0, 0, 100, 100), Pt{2, 2}) {
		t.Fatalf("corner should miss the ellipse")
	}
	if !HitRoundedRect(R(0, 0, 100, 100), 20, Pt{10, 10}) {
		t.Fatalf("expected hit near corner")
	}
	if HitRoundedRect(R(0, 0, 100, 100), 20, Pt{1, 1}) {
		t.Fatalf("expected miss in the cut corner")
	}
	tri := []Pt{{5, 0}, {10, 10}, {0, 10}}
	if !PointInPolygon(tri, Pt{5, 5}) || PointInPolygon(tri, Pt{0, 0}) {
		t.Fatalf("unexpected point-in-polygon result")
	}
	if !HitPolyline([]Pt{{0, 0}, {10, 0}}, Pt{5, 2}, 3) {
		t.Fatalf("expected polyline hit within tolerance")
	}
}
