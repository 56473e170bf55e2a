/*
 * Copyright (c) 2025 by Alexander Drost, Oldenburg, Germany.
 * This file is licensed to you under the Apache License, Version 2.0 (the "License"); you may not use this file except in compliance with the License.  You may obtain a copy of the License at
 *   http://www.apache.org/licenses/LICENSE-2.0
 * Unless required by applicable law or agreed to in writing, software distributed under the License is distributed on an
 * "AS IS" BASIS, WITHOUT WARRANTIES OR CONDITIONS OF ANY KIND, either express or implied.  See the License for the specific language governing permissions and limitations under the License.
 */

package vector

import "math"

// ArrowOptions controls the generated chevron geometry.
// Deterministic results are ensured by rounding output points to 3 decimals.
type ArrowOptions struct {
	// HeadRatio sizes the chevron as a fraction of the segment length.
	HeadRatio float32
	// HeadMin is the smallest chevron length in scene units.
	HeadMin float32
	// HeadMaxFraction caps the chevron to this fraction of the segment length.
	HeadMaxFraction float32
	// HeadAngle is the half-opening of the chevron in degrees.
	HeadAngle float32
}

// DefaultArrowOptions returns the sizing used by the arrow tool.
func DefaultArrowOptions() ArrowOptions {
	return ArrowOptions{HeadRatio: 0.2, HeadMin: 8, HeadMaxFraction: 0.5, HeadAngle: 30}
}

// ArrowGeometry describes a segment plus its two-stroke chevron at the tip.
type ArrowGeometry struct {
	Tail    Pt
	Tip     Pt
	Left    Pt // chevron wing end, counter-clockwise side
	Right   Pt
	HeadLen float32
	Angle   float32 // radians, direction from tail to tip
	Path    Path
}

// HeadLength returns clamp(len*ratio, min, len*maxFraction).
// When the cap is below the minimum the cap wins so the chevron never outgrows the segment.
func (o ArrowOptions) HeadLength(length float32) float32 {
	h := length * o.HeadRatio
	if h < o.HeadMin {
		h = o.HeadMin
	}
	if capLen := length * o.HeadMaxFraction; h > capLen {
		h = capLen
	}
	return h
}

// ComputeArrow builds the open path tail→tip plus the chevron strokes.
// Zero-length input produces a path with a single degenerate segment and no wings.
func ComputeArrow(tail, tip Pt, opts ArrowOptions) ArrowGeometry {
	if opts.HeadRatio <= 0 {
		opts = DefaultArrowOptions()
	}
	geo := ArrowGeometry{
		Tail: Pt{X: FloatRound(tail.X, 3), Y: FloatRound(tail.Y, 3)},
		Tip:  Pt{X: FloatRound(tip.X, 3), Y: FloatRound(tip.Y, 3)},
	}
	geo.Path.MoveTo(geo.Tail.X, geo.Tail.Y)
	geo.Path.LineTo(geo.Tip.X, geo.Tip.Y)

	length := tail.Dist(tip)
	if length == 0 {
		geo.Left, geo.Right = geo.Tip, geo.Tip
		return geo
	}
	ux, uy := (tip.X-tail.X)/length, (tip.Y-tail.Y)/length
	geo.Angle = float32(math.Atan2(float64(uy), float64(ux)))
	geo.HeadLen = opts.HeadLength(length)

	// Wings: back along the shaft, spread by the opening angle on both sides.
	half := float64(opts.HeadAngle) * math.Pi / 180
	along := geo.HeadLen * float32(math.Cos(half))
	spread := geo.HeadLen * float32(math.Sin(half))
	px, py := -uy, ux
	bx, by := tip.X-ux*along, tip.Y-uy*along
	geo.Left = Pt{X: FloatRound(bx+px*spread, 3), Y: FloatRound(by+py*spread, 3)}
	geo.Right = Pt{X: FloatRound(bx-px*spread, 3), Y: FloatRound(by-py*spread, 3)}

	geo.Path.MoveTo(geo.Left.X, geo.Left.Y)
	geo.Path.LineTo(geo.Tip.X, geo.Tip.Y)
	geo.Path.LineTo(geo.Right.X, geo.Right.Y)
	return geo
}
