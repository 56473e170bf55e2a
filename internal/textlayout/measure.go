/*
 * Copyright (c) 2025 by Alexander Drost, Oldenburg, Germany.
 * This file is licensed to you under the Apache License, Version 2.0 (the "License"); you may not use this file except in compliance with the License.  You may obtain a copy of the License at
 *   http://www.apache.org/licenses/LICENSE-2.0
 * Unless required by applicable law or agreed to in writing, software distributed under the License is distributed on an
 * "AS IS" BASIS, WITHOUT WARRANTIES OR CONDITIONS OF ANY KIND, either express or implied.  See the License for the specific language governing permissions and limitations under the License.
 */

package textlayout

import (
	"strings"

	"golang.org/x/image/font"
)

// Box is the measured size of a text block.
type Box struct {
	Width  float32
	Height float32
	Lines  int
}

// Measure returns the unwrapped size of text; lines are split on newlines only.
// Empty text still occupies one line.
func Measure(p Provider, text string, sizePt float32) Box {
	if p == nil {
		p = Default()
	}
	face, met := p.Face(sizePt)
	d := &font.Drawer{Face: face}
	lines := strings.Split(text, "\n")
	var box Box
	for _, l := range lines {
		box.Width = max(box.Width, advance(d, l))
	}
	box.Lines = len(lines)
	box.Height = float32(len(lines))*met.LineHeight() - met.LineGap
	return box
}

// Wrap breaks text on spaces so no line exceeds maxWidth, unless a single word
// does. maxWidth <= 0 disables wrapping.
func Wrap(p Provider, text string, sizePt, maxWidth float32) []string {
	if p == nil {
		p = Default()
	}
	face, _ := p.Face(sizePt)
	d := &font.Drawer{Face: face}
	var out []string
	for _, para := range strings.Split(text, "\n") {
		if maxWidth <= 0 {
			out = append(out, para)
			continue
		}
		cur := ""
		for _, w := range strings.Fields(para) {
			next := w
			if cur != "" {
				next = cur + " " + w
			}
			if cur != "" && advance(d, next) > maxWidth {
				out = append(out, cur)
				cur = w
				continue
			}
			cur = next
		}
		out = append(out, cur)
	}
	return out
}

func advance(d *font.Drawer, s string) float32 {
	return float32(d.MeasureString(s)) / 64 // fixed.Int26_6 to px
}
