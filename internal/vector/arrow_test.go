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

func almostEq(a, b, eps float32) bool { return float32(math.Abs(float64(a-b))) <= eps }

func TestComputeArrow_Horizontal(t *testing.T) {
	geo := ComputeArrow(Pt{0, 0}, Pt{100, 0}, DefaultArrowOptions())
	if !almostEq(geo.HeadLen, 20, 1e-4) {
		t.Fatalf("expected head length 20 (20%% of 100), got %v", geo.HeadLen)
	}
	// wings behind the tip, mirrored across the shaft
	if geo.Left.X >= 100 || geo.Right.X >= 100 {
		t.Fatalf("wings must lie behind the tip: %+v %+v", geo.Left, geo.Right)
	}
	if !almostEq(geo.Left.Y, -geo.Right.Y, 1e-3) || geo.Left.Y == 0 {
		t.Fatalf("wings must be symmetric about the shaft: %+v %+v", geo.Left, geo.Right)
	}
	// line + chevron: M L M L L
	if len(geo.Path.Cmds) != 5 || geo.Path.Cmds[2].Op != MoveTo {
		t.Fatalf("unexpected path shape: %+v", geo.Path.Cmds)
	}
}

func TestArrowOptions_HeadLengthClamp(t *testing.T) {
	o := DefaultArrowOptions()
	if h := o.HeadLength(20); h != 8 {
		t.Fatalf("short arrows use the minimum head, got %v", h)
	}
	if h := o.HeadLength(10); h != 5 {
		t.Fatalf("head must be capped to half the length, got %v", h)
	}
	if h := o.HeadLength(1000); h != 200 {
		t.Fatalf("expected proportional head, got %v", h)
	}
}

func TestComputeArrow_ZeroLength(t *testing.T) {
	geo := ComputeArrow(Pt{5, 5}, Pt{5, 5}, ArrowOptions{})
	if geo.HeadLen != 0 || len(geo.Path.Cmds) != 2 {
		t.Fatalf("zero-length arrow should have no chevron: %+v", geo)
	}
}
