/*
 * Copyright (c) 2025 by Alexander Drost, Oldenburg, Germany.
 * This file is licensed to you under the Apache License, Version 2.0 (the "License"); you may not use this file except in compliance with the License.  You may obtain a copy of the License at
 *   http://www.apache.org/licenses/LICENSE-2.0
 * Unless required by applicable law or agreed to in writing, software distributed under the License is distributed on an
 * "AS IS" BASIS, WITHOUT WARRANTIES OR CONDITIONS OF ANY KIND, either express or implied.  See the License for the specific language governing permissions and limitations under the License.
 */

package vector

import (
	"math"
	"testing"
)

func TestRectContainsAndInset(t *testing.T) {
	r := R(10, 20, 100, 50)
	if !r.Contains(Pt{10, 20}) || !r.Contains(Pt{110, 70}) {
		t.Fatalf("expected edge points to be contained")
	}
	in := r.Inset(5, 5)
	if in.X != 15 || in.Y != 25 || in.W != 90 || in.H != 40 {
		t.Fatalf("unexpected inset: %+v", in)
	}
}

func TestAffineBasic(t *testing.T) {
	m := Translate(10, 5).Mul(Scale(2, 3))
	p := m.Apply(Pt{1, 1})
	if p.X != 12 || p.Y != 8 { // (1*2+10, 1*3+5)
		t.Fatalf("unexpected transform result: %+v", p)
	}
	back := m.Invert().Apply(p)
	if !almostEq(back.X, 1, 1e-5) || !almostEq(back.Y, 1, 1e-5) {
		t.Fatalf("inverse did not round-trip: %+v", back)
	}
}

func TestRectFromPointsNormalizes(t *testing.T) {
	r := RectFromPoints(Pt{10, 10}, Pt{0, 4})
	if r.X != 0 || r.Y != 4 || r.W != 10 || r.H != 6 {
		t.Fatalf("unexpected rect: %+v", r)
	}
}

func TestSnapAngle(t *testing.T) {
	p := SnapAngle(Pt{0, 0}, Pt{90, 110}, 45)
	if !almostEq(p.X, p.Y, 1e-3) {
		t.Fatalf("expected point on the 45° diagonal, got %+v", p)
	}
	want := float32(math.Hypot(90, 110))
	if !almostEq(Pt{}.Dist(p), want, 1e-3) {
		t.Fatalf("snap must keep distance %v, got %v", want, Pt{}.Dist(p))
	}
	q := SnapAngle(Pt{10, 10}, Pt{20, 11}, 15)
	if q.Y != 10 {
		t.Fatalf("expected horizontal snap, got %+v", q)
	}
}

func TestRotateAbout(t *testing.T) {
	m := RotateAbout(float32(math.Pi/2), Pt{5, 5})
	p := m.Apply(Pt{10, 5})
	if !almostEq(p.X, 5, 1e-4) || !almostEq(p.Y, 10, 1e-4) {
		t.Fatalf("unexpected rotated point: %+v", p)
	}
}
