/*
 * Copyright (c) 2025 by Alexander Drost, Oldenburg, Germany.
 * This file is licensed to you under the Apache License, Version 2.0 (the "License"); you may not use this file except in compliance with the License.  You may obtain a copy of the License at
 *   http://www.apache.org/licenses/LICENSE-2.0
 * Unless required by applicable law or agreed to in writing, software distributed under the License is distributed on an
 * "AS IS" BASIS, WITHOUT WARRANTIES OR CONDITIONS OF ANY KIND, either express or implied.  See the License for the specific language governing permissions and limitations under the License.
 */

package textlayout

import "testing"

func TestMeasure_Basic(t *testing.T) {
	b := Measure(BasicProvider{}, "ABC", 12)
	if b.Width != 21 || b.Lines != 1 {
		t.Fatalf("expected 3 glyphs of 7px on one line, got %+v", b)
	}
	two := Measure(BasicProvider{}, "AB\nABCD", 12)
	if two.Width != 28 || two.Lines != 2 || two.Height <= b.Height {
		t.Fatalf("unexpected two-line box %+v", two)
	}
}

func TestMeasure_GoRegularScalesWithSize(t *testing.T) {
	small := Measure(Default(), "Placeholder", 12)
	large := Measure(Default(), "Placeholder", 24)
	if small.Width <= 0 || large.Width <= small.Width*1.5 {
		t.Fatalf("expected width to grow with size: %v vs %v", small.Width, large.Width)
	}
	if large.Height <= small.Height {
		t.Fatalf("expected taller box for larger size")
	}
}

func TestWrap(t *testing.T) {
	lines := Wrap(BasicProvider{}, "Hello world from Go", 12, 50)
	if len(lines) < 2 {
		t.Fatalf("expected wrapping into multiple lines, got %v", lines)
	}
	if got := Wrap(BasicProvider{}, "a b", 12, 0); len(got) != 1 || got[0] != "a b" {
		t.Fatalf("no wrapping without a width, got %v", got)
	}
}
