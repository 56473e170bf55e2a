/*
 * Copyright (c) 2025 by Alexander Drost, Oldenburg, Germany.
 * This file is licensed to you under the Apache License, Version 2.0 (the "License"); you may not use this file except in compliance with the License.  You may obtain a copy of the License at
 *   http://www.apache.org/licenses/LICENSE-2.0
 * Unless required by applicable law or agreed to in writing, software distributed under the License is distributed on an
 * "AS IS" BASIS, WITHOUT WARRANTIES OR CONDITIONS OF ANY KIND, either express or implied.  See the License for the specific language governing permissions and limitations under the License.
 */

package snap

import (
	"math"

	"garmentsketch/internal/vector"
)

// Round snaps v to the nearest multiple of unit.
func Round(v, unit float32) float32 {
	if unit <= 0 {
		return v
	}
	return float32(math.Round(float64(v/unit))) * unit
}

// GridPoint snaps both coordinates of p.
func GridPoint(p vector.Pt, unit float32) vector.Pt {
	return vector.Pt{X: Round(p.X, unit), Y: Round(p.Y, unit)}
}

// GridRect snaps the position of r and, when size is set, its width and height too.
// Sizes never collapse below one unit.
func GridRect(r vector.Rect, unit float32, size bool) vector.Rect {
	out := r
	out.X, out.Y = Round(r.X, unit), Round(r.Y, unit)
	if size && unit > 0 {
		out.W = max(unit, Round(r.W, unit))
		out.H = max(unit, Round(r.H, unit))
	}
	return out
}

// Overlay is the transient guide state shown during a gesture.
type Overlay struct {
	Guides    []Guide
	Distances []DistanceGuide
}

func (o *Overlay) Clear()     { o.Guides, o.Distances = nil, nil }
func (o Overlay) Empty() bool { return len(o.Guides) == 0 && len(o.Distances) == 0 }

// XGuides returns the guides that constrain the x coordinate.
func (o Overlay) XGuides() []Guide {
	var out []Guide
	for _, g := range o.Guides {
		if g.Axis == AxisX {
			out = append(out, g)
		}
	}
	return out
}
