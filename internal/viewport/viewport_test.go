/*
 * Copyright (c) 2025 by Alexander Drost, Oldenburg, Germany.
 * This file is licensed to you under the Apache License, Version 2.0 (the "License"); you may not use this file except in compliance with the License.  You may obtain a copy of the License at
 *   http://www.apache.org/licenses/LICENSE-2.0
 * Unless required by applicable law or agreed to in writing, software distributed under the License is distributed on an
 * "AS IS" BASIS, WITHOUT WARRANTIES OR CONDITIONS OF ANY KIND, either express or implied.  See the License for the specific language governing permissions and limitations under the License.
 */

package viewport

import (
	"math"
	"testing"

	"garmentsketch/internal/vector"
)

func almostEq(a, b, eps float32) bool { return float32(math.Abs(float64(a-b))) <= eps }

func TestZoomAtKeepsAnchor(t *testing.T) {
	v := New(vector.Size{W: 800, H: 600})
	v.Pan(vector.Pt{X: 30, Y: -20})
	anchor := vector.Pt{X: 400, Y: 300}
	before := v.ToScene(anchor)
	v.ZoomAt(2.5, anchor)
	after := v.ToScene(anchor)
	if !almostEq(before.X, after.X, 1e-3) || !almostEq(before.Y, after.Y, 1e-3) {
		t.Fatalf("anchor moved: %+v -> %+v", before, after)
	}
}

func TestScaleClamped(t *testing.T) {
	v := New(vector.Size{W: 100, H: 100})
	v.ZoomAt(50, vector.Pt{})
	if v.Scale != 5 {
		t.Fatalf("expected max 5, got %v", v.Scale)
	}
	v.ZoomAt(0.001, vector.Pt{})
	if !almostEq(v.Scale, 0.1, 1e-6) {
		t.Fatalf("expected min 0.1, got %v", v.Scale)
	}
	for i := 0; i < 100; i++ {
		v.Wheel(-1, vector.Pt{})
	}
	if v.Scale != 5 {
		t.Fatalf("wheel zoom must stay clamped, got %v", v.Scale)
	}
}

func TestPanGesture(t *testing.T) {
	v := New(vector.Size{W: 100, H: 100})
	v.PanTo(vector.Pt{X: 50}) // ignored outside a gesture
	v.BeginPan(vector.Pt{X: 10, Y: 10})
	v.PanTo(vector.Pt{X: 25, Y: 5})
	v.PanTo(vector.Pt{X: 30, Y: 5})
	if v.Offset != (vector.Pt{X: 20, Y: -5}) {
		t.Fatalf("unexpected offset %+v", v.Offset)
	}
	v.Cancel()
	if v.Gesture() != Idle {
		t.Fatalf("cancel must reset the gesture")
	}
}

func TestPinch(t *testing.T) {
	v := New(vector.Size{W: 800, H: 600})
	v.BeginPinch(vector.Pt{X: 100, Y: 100}, vector.Pt{X: 200, Y: 100})
	v.PinchTo(vector.Pt{X: 50, Y: 100}, vector.Pt{X: 250, Y: 100})
	if !almostEq(v.Scale, 2, 1e-5) {
		t.Fatalf("expected scale 2, got %v", v.Scale)
	}
	// midpoint (150,100) stays on the same scene point
	if p := v.ToScene(vector.Pt{X: 150, Y: 100}); !almostEq(p.X, 150, 1e-3) || !almostEq(p.Y, 100, 1e-3) {
		t.Fatalf("pinch must anchor at the midpoint, got %+v", p)
	}
	v.PinchTo(vector.Pt{X: 60, Y: 100}, vector.Pt{X: 260, Y: 100})
	if p := v.ToScene(vector.Pt{X: 160, Y: 100}); !almostEq(p.X, 150, 1e-3) {
		t.Fatalf("midpoint drift must pan the view, got %+v", p)
	}
	v.End()
	if v.Gesture() != Idle {
		t.Fatalf("expected idle after end")
	}
}

func TestTapThreshold(t *testing.T) {
	v := New(vector.Size{})
	v.TapStart(vector.Pt{X: 10, Y: 10})
	v.TapMove(vector.Pt{X: 12, Y: 11})
	if !v.IsTap(vector.Pt{X: 12, Y: 11}) {
		t.Fatalf("small movement is still a tap")
	}
	v.TapMove(vector.Pt{X: 40, Y: 10})
	if v.IsTap(vector.Pt{X: 11, Y: 10}) {
		t.Fatalf("a drag that returns is not a tap")
	}
}
