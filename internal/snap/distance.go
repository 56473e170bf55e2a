/*
 * Copyright (c) 2025 by Alexander Drost, Oldenburg, Germany.
 * This file is licensed to you under the Apache License, Version 2.0 (the "License"); you may not use this file except in compliance with the License.  You may obtain a copy of the License at
 *   http://www.apache.org/licenses/LICENSE-2.0
 * Unless required by applicable law or agreed to in writing, software distributed under the License is distributed on an
 * "AS IS" BASIS, WITHOUT WARRANTIES OR CONDITIONS OF ANY KIND, either express or implied.  See the License for the specific language governing permissions and limitations under the License.
 */

package snap

import (
	"fmt"
	"math"

	"garmentsketch/internal/vector"
)

// Direction of a distance measurement from the subject box.
type Direction uint8

const (
	Left Direction = iota
	Right
	Up
	Down
)

func (d Direction) String() string {
	switch d {
	case Left:
		return "left"
	case Right:
		return "right"
	case Up:
		return "up"
	default:
		return "down"
	}
}

// DistanceGuide is a gap line between the subject and its nearest neighbour.
type DistanceGuide struct {
	Direction Direction
	From      vector.Pt
	To        vector.Pt
	Gap       float32
	Label     string
	LabelAt   vector.Pt
	TargetID  string
}

// Distances finds, for each direction, the nearest target that overlaps the
// subject on the perpendicular axis and lies strictly outside it on the measured axis.
func Distances(subject vector.Rect, targets []Target) []DistanceGuide {
	var out []DistanceGuide
	for _, dir := range []Direction{Left, Right, Up, Down} {
		best := float32(math.MaxFloat32)
		var g DistanceGuide
		found := false
		for _, t := range targets {
			gap, ok := gapTo(subject, t.Rect, dir)
			if !ok || gap >= best {
				continue
			}
			best = gap
			g = gapLine(subject, t, dir, gap)
			found = true
		}
		if found {
			out = append(out, g)
		}
	}
	return out
}

func gapTo(s, o vector.Rect, dir Direction) (float32, bool) {
	switch dir {
	case Left, Right:
		if !(o.Y < s.Bottom() && o.Bottom() > s.Y) {
			return 0, false
		}
		if dir == Right && o.X >= s.Right() {
			return o.X - s.Right(), true
		}
		if dir == Left && o.Right() <= s.X {
			return s.X - o.Right(), true
		}
	default:
		if !(o.X < s.Right() && o.Right() > s.X) {
			return 0, false
		}
		if dir == Down && o.Y >= s.Bottom() {
			return o.Y - s.Bottom(), true
		}
		if dir == Up && o.Bottom() <= s.Y {
			return s.Y - o.Bottom(), true
		}
	}
	return 0, false
}

// The line sits in the middle of the shared span on the perpendicular axis.
func gapLine(s vector.Rect, t Target, dir Direction, gap float32) DistanceGuide {
	o := t.Rect
	g := DistanceGuide{Direction: dir, Gap: gap, Label: fmt.Sprintf("%d", int(math.Round(float64(gap)))), TargetID: t.ID}
	switch dir {
	case Left, Right:
		y := (max(s.Y, o.Y) + min(s.Bottom(), o.Bottom())) / 2
		if dir == Right {
			g.From, g.To = vector.Pt{X: s.Right(), Y: y}, vector.Pt{X: o.X, Y: y}
		} else {
			g.From, g.To = vector.Pt{X: o.Right(), Y: y}, vector.Pt{X: s.X, Y: y}
		}
	default:
		x := (max(s.X, o.X) + min(s.Right(), o.Right())) / 2
		if dir == Down {
			g.From, g.To = vector.Pt{X: x, Y: s.Bottom()}, vector.Pt{X: x, Y: o.Y}
		} else {
			g.From, g.To = vector.Pt{X: x, Y: o.Bottom()}, vector.Pt{X: x, Y: s.Y}
		}
	}
	g.LabelAt = g.From.Lerp(g.To, 0.5)
	return g
}
