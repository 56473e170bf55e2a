/*
 * Copyright (c) 2025 by Alexander Drost, Oldenburg, Germany.
 * This file is licensed to you under the Apache License, Version 2.0 (the "License"); you may not use this file except in compliance with the License.  You may obtain a copy of the License at
 *   http://www.apache.org/licenses/LICENSE-2.0
 * Unless required by applicable law or agreed to in writing, software distributed under the License is distributed on an
 * "AS IS" BASIS, WITHOUT WARRANTIES OR CONDITIONS OF ANY KIND, either express or implied.  See the License for the specific language governing permissions and limitations under the License.
 */

package asset

import (
	"bytes"
	"fmt"

	"github.com/srwiley/oksvg"
	"github.com/srwiley/rasterx"
	"golang.org/x/image/math/fixed"

	"garmentsketch/internal/scene"
	"garmentsketch/internal/vector"
)

// DecodeSVG parses markup with oksvg and returns one outline per drawable path in viewBox
// space (origin shifted to the viewBox minimum) together with the viewBox size.
// Per-path transforms and paint are not carried over.
func DecodeSVG(data []byte) ([]vector.Path, vector.Size, error) {
	icon, err := oksvg.ReadIconStream(bytes.NewReader(data), oksvg.WarnErrorMode)
	if err != nil {
		return nil, vector.Size{}, fmt.Errorf("decode svg: %w", ErrUnsupported)
	}
	vb := icon.ViewBox
	var out []vector.Path
	for _, sp := range icon.SVGPaths {
		p := convertPath(sp.Path, float32(vb.X), float32(vb.Y))
		if p.Empty() || !p.Finite() {
			continue
		}
		out = append(out, p)
	}
	if len(out) == 0 {
		return nil, vector.Size{}, ErrEmpty
	}
	size := vector.Size{W: float32(vb.W), H: float32(vb.H)}
	if size.W <= 0 || size.H <= 0 {
		b := out[0].Bounds()
		for _, p := range out[1:] {
			b = b.Union(p.Bounds())
		}
		size = vector.Size{W: b.Right(), H: b.Bottom()}
	}
	return out, size, nil
}

func unfix(v fixed.Int26_6) float32 { return float32(v) / 64 }

// convertPath walks the rasterx command stream. Each command is followed by its
// fixed-point coordinates.
func convertPath(rp rasterx.Path, ox, oy float32) vector.Path {
	var p vector.Path
	pt := func(i int) (float32, float32) { return unfix(rp[i]) - ox, unfix(rp[i+1]) - oy }
	for i := 0; i < len(rp); {
		switch rasterx.PathCommand(rp[i]) {
		case rasterx.PathMoveTo:
			x, y := pt(i + 1)
			p.MoveTo(x, y)
			i += 3
		case rasterx.PathLineTo:
			x, y := pt(i + 1)
			p.LineTo(x, y)
			i += 3
		case rasterx.PathQuadTo:
			cx, cy := pt(i + 1)
			x, y := pt(i + 3)
			p.QuadTo(cx, cy, x, y)
			i += 5
		case rasterx.PathCubicTo:
			c1x, c1y := pt(i + 1)
			c2x, c2y := pt(i + 3)
			x, y := pt(i + 5)
			p.CubicTo(c1x, c1y, c2x, c2y, x, y)
			i += 7
		case rasterx.PathClose:
			p.Close()
			i++
		default:
			// unknown command; the stream cannot be resynchronized
			return p
		}
	}
	return p
}

// vectorElement fits all outlines into VectorFit of the canvas, centered, and wraps more
// than one outline in a group.
func vectorElement(s *scene.Scene, a *Asset, canvas vector.Size) (*scene.Element, error) {
	paths, size, err := DecodeSVG(a.Data)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", a.Name, err)
	}
	a.Width, a.Height = size.W, size.H

	bounds := paths[0].Bounds()
	for _, p := range paths[1:] {
		bounds = bounds.Union(p.Bounds())
	}
	k := fitScale(bounds.W, bounds.H, canvas, VectorFit, true)
	c := bounds.Center()
	m := vector.Translate(canvas.W/2, canvas.H/2).Mul(vector.Scale(k, k)).Mul(vector.Translate(-c.X, -c.Y))

	pens := make([]*scene.Element, 0, len(paths))
	for i, p := range paths {
		world := p.Transform(m)
		b := world.Bounds()
		local := world.Translate(-b.X, -b.Y)
		el := s.NewElement(scene.KindPen, b)
		el.Geometry.Path = &local
		el.Name = a.Name
		if len(paths) > 1 {
			el.Name = fmt.Sprintf("%s %d", a.Name, i+1)
		}
		pens = append(pens, el)
	}
	if len(pens) == 1 {
		return pens[0], nil
	}
	g := s.NewElement(scene.KindGroup, vector.Rect{})
	g.Name = a.Name
	g.Style = vector.Style{}
	g.Children = pens
	g.RefreshBounds()
	return g, nil
}
