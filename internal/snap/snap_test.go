/*
 * Copyright (c) 2025 by Alexander Drost, Oldenburg, Germany.
 * This file is licensed to you under the Apache License, Version 2.0 (the "License"); you may not use this file except in compliance with the License.  You may obtain a copy of the License at
 *   http://www.apache.org/licenses/LICENSE-2.0
 * Unless required by applicable law or agreed to in writing, software distributed under the License is distributed on an
 * "AS IS" BASIS, WITHOUT WARRANTIES OR CONDITIONS OF ANY KIND, either express or implied.  See the License for the specific language governing permissions and limitations under the License.
 */

package snap

import (
	"testing"

	"garmentsketch/internal/vector"
)

func pair() []Target {
	return []Target{
		{ID: "a", Rect: vector.R(0, 0, 10, 10)},
		{ID: "b", Rect: vector.R(10, 0, 10, 10)},
	}
}

func TestAlign_SingleXGuideAtSharedEdge(t *testing.T) {
	moving := vector.R(10, 200, 4, 4)
	_, guides := Align(moving, pair(), Options{Tolerance: 6, Zoom: 1})
	var xs []Guide
	for _, g := range guides {
		if g.Axis == AxisX {
			xs = append(xs, g)
		}
	}
	if len(xs) != 1 {
		t.Fatalf("expected exactly one x guide, got %d: %+v", len(xs), xs)
	}
	if xs[0].Position != 10 {
		t.Fatalf("expected guide at x=10, got %v", xs[0].Position)
	}
	if xs[0].Label != "left↔right" {
		t.Fatalf("expected first closest match (a's right edge), got %q", xs[0].Label)
	}
	if xs[0].From.Y != 0 || xs[0].To.Y != 204 {
		t.Fatalf("guide must span both participants: %+v", xs[0])
	}
}

func TestAlign_NoGuideFarAway(t *testing.T) {
	moving := vector.R(50, 200, 4, 4)
	snapped, guides := Align(moving, pair(), Options{Tolerance: 6, Zoom: 1})
	if len(guides) != 0 {
		t.Fatalf("expected no guides, got %+v", guides)
	}
	if snapped != moving {
		t.Fatalf("expected unchanged box, got %+v", snapped)
	}
}

func TestAlign_ZoomShrinksTolerance(t *testing.T) {
	moving := vector.R(13, 200, 4, 4) // 3 units from a's right edge
	if snapped, gs := Align(moving, pair()[:1], Options{Tolerance: 6, Zoom: 1}); len(gs) != 1 || snapped.X != 10 {
		t.Fatalf("expected snap at zoom 1: %+v %+v", snapped, gs)
	}
	if _, gs := Align(moving, pair()[:1], Options{Tolerance: 6, Zoom: 4}); len(gs) != 0 {
		t.Fatalf("expected no snap at zoom 4 (tolerance 1.5): %+v", gs)
	}
}

func TestAlign_ViewportTarget(t *testing.T) {
	moving := vector.R(397, 100, 6, 6) // center 400
	_, gs := Align(moving, nil, Options{Tolerance: 6, Zoom: 1, Viewport: vector.R(0, 0, 800, 600)})
	if len(gs) == 0 || gs[0].TargetID != "viewport" || gs[0].Label != "center↔center" {
		t.Fatalf("expected viewport center guide, got %+v", gs)
	}
}

func TestDistances_NearestPerDirection(t *testing.T) {
	subject := vector.R(100, 100, 20, 20)
	targets := []Target{
		{ID: "near", Rect: vector.R(130, 105, 10, 10)},
		{ID: "far", Rect: vector.R(200, 105, 10, 10)},
		{ID: "offaxis", Rect: vector.R(125, 300, 10, 10)},
		{ID: "above", Rect: vector.R(100, 40, 20, 20)},
	}
	gs := Distances(subject, targets)
	byDir := map[Direction]DistanceGuide{}
	for _, g := range gs {
		byDir[g.Direction] = g
	}
	r, ok := byDir[Right]
	if !ok || r.TargetID != "near" || r.Gap != 10 || r.Label != "10" {
		t.Fatalf("unexpected right guide: %+v", r)
	}
	if r.LabelAt.X != 125 {
		t.Fatalf("label must sit at the gap midpoint, got %+v", r.LabelAt)
	}
	if u, ok := byDir[Up]; !ok || u.Gap != 40 {
		t.Fatalf("unexpected up guide: %+v", u)
	}
	if _, ok := byDir[Left]; ok {
		t.Fatalf("no target on the left")
	}
}

func TestGridRect(t *testing.T) {
	r := GridRect(vector.R(12, 17, 33, 2), 10, true)
	if r.X != 10 || r.Y != 20 || r.W != 30 || r.H != 10 {
		t.Fatalf("unexpected grid rect: %+v", r)
	}
	if p := GridPoint(vector.Pt{X: 4, Y: 6}, 10); p.X != 0 || p.Y != 10 {
		t.Fatalf("unexpected grid point: %+v", p)
	}
}
