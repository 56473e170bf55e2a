/*
 * Copyright (c) 2025 by Alexander Drost, Oldenburg, Germany.
 * This file is licensed to you under the Apache License, Version 2.0 (the "License"); you may not use this file except in compliance with the License.  You may obtain a copy of the License at
 *   http://www.apache.org/licenses/LICENSE-2.0
 * Unless required by applicable law or agreed to in writing, software distributed under the License is distributed on an
 * "AS IS" BASIS, WITHOUT WARRANTIES OR CONDITIONS OF ANY KIND, either express or implied.  See the License for the specific language governing permissions and limitations under the License.
 */

package vector

import "testing"

func TestFlattenSplitsContoursAndKeepsClosure(t *testing.T) {
	var p Path
	p.MoveTo(0, 0)
	p.LineTo(10, 0)
	p.LineTo(10, 10)
	p.Close()
	p.MoveTo(20, 0)
	p.CubicTo(25, 10, 35, 10, 40, 0)

	contours, closed := p.Flatten(8)
	if len(contours) != 2 {
		t.Fatalf("expected 2 contours, got %d", len(contours))
	}
	if !closed[0] || closed[1] {
		t.Fatalf("closure flags = %v, want [true false]", closed)
	}
	last := contours[1][len(contours[1])-1]
	if last.Dist(Pt{X: 40, Y: 0}) > 1e-4 {
		t.Fatalf("curve must end on its end point, got %v", last)
	}
}

func TestTranslateMovesEveryPoint(t *testing.T) {
	var p Path
	p.MoveTo(1, 2)
	p.QuadTo(3, 4, 5, 6)
	moved := p.Translate(10, -2)
	b := moved.Bounds()
	if b.X != 11 || b.Y != 0 || b.W != 4 || b.H != 4 {
		t.Fatalf("unexpected bounds after translate: %+v", b)
	}
}
