/*
 * Copyright (c) 2025 by Alexander Drost, Oldenburg, Germany.
 * This file is licensed to you under the Apache License, Version 2.0 (the "License"); you may not use this file except in compliance with the License.  You may obtain a copy of the License at
 *   http://www.apache.org/licenses/LICENSE-2.0
 * Unless required by applicable law or agreed to in writing, software distributed under the License is distributed on an
 * "AS IS" BASIS, WITHOUT WARRANTIES OR CONDITIONS OF ANY KIND, either express or implied.  See the License for the specific language governing permissions and limitations under the License.
 */

package vector

// Outline builders and hit-testing for the primitive shapes. All functions work in
// the shape's local (untransformed) coordinate space; callers apply inverse transforms.

// kappa approximates a quarter circle with a cubic bezier.
const kappa = 0.5522847

// RectPath outlines r, rounding corners by radius (clamped to half the short side).
func RectPath(r Rect, radius float32) Path {
	var p Path
	rad := min(radius, min(r.W, r.H)/2)
	if rad <= 0 {
		p.MoveTo(r.X, r.Y)
		p.LineTo(r.X+r.W, r.Y)
		p.LineTo(r.X+r.W, r.Y+r.H)
		p.LineTo(r.X, r.Y+r.H)
		p.Close()
		return p
	}
	k := rad * kappa
	x0, y0, x1, y1 := r.X, r.Y, r.X+r.W, r.Y+r.H
	p.MoveTo(x0+rad, y0)
	p.LineTo(x1-rad, y0)
	p.CubicTo(x1-rad+k, y0, x1, y0+rad-k, x1, y0+rad)
	p.LineTo(x1, y1-rad)
	p.CubicTo(x1, y1-rad+k, x1-rad+k, y1, x1-rad, y1)
	p.LineTo(x0+rad, y1)
	p.CubicTo(x0+rad-k, y1, x0, y1-rad+k, x0, y1-rad)
	p.LineTo(x0, y0+rad)
	p.CubicTo(x0, y0+rad-k, x0+rad-k, y0, x0+rad, y0)
	p.Close()
	return p
}

// EllipsePath outlines the ellipse inscribed in r with four cubic segments.
func EllipsePath(r Rect) Path {
	var p Path
	cx, cy := r.X+r.W/2, r.Y+r.H/2
	rx, ry := r.W/2, r.H/2
	kx, ky := rx*kappa, ry*kappa
	p.MoveTo(cx+rx, cy)
	p.CubicTo(cx+rx, cy+ky, cx+kx, cy+ry, cx, cy+ry)
	p.CubicTo(cx-kx, cy+ry, cx-rx, cy+ky, cx-rx, cy)
	p.CubicTo(cx-rx, cy-ky, cx-kx, cy-ry, cx, cy-ry)
	p.CubicTo(cx+kx, cy-ry, cx+rx, cy-ky, cx+rx, cy)
	p.Close()
	return p
}

// TrianglePath outlines an isosceles triangle with its apex at the top center of r.
func TrianglePath(r Rect) Path {
	var p Path
	p.MoveTo(r.X+r.W/2, r.Y)
	p.LineTo(r.X+r.W, r.Y+r.H)
	p.LineTo(r.X, r.Y+r.H)
	p.Close()
	return p
}

// PolylinePath connects pts with straight segments.
func PolylinePath(pts []Pt, closed bool) Path {
	var p Path
	for i, q := range pts {
		if i == 0 {
			p.MoveTo(q.X, q.Y)
			continue
		}
		p.LineTo(q.X, q.Y)
	}
	if closed && len(pts) > 2 {
		p.Close()
	}
	return p
}

// HitEllipse reports whether p lies inside the ellipse inscribed in r.
func HitEllipse(r Rect, p Pt) bool {
	// point-in-ellipse: ((x-cx)/rx)^2 + ((y-cy)/ry)^2 <= 1
	rx, ry := r.W/2, r.H/2
	if rx == 0 || ry == 0 {
		return false
	}
	dx := (p.X - (r.X + rx)) / rx
	dy := (p.Y - (r.Y + ry)) / ry
	return dx*dx+dy*dy <= 1
}

// HitRoundedRect tests p against r with uniform corner radius.
func HitRoundedRect(r Rect, radius float32, p Pt) bool {
	if !r.Contains(p) {
		return false
	}
	rad := min(radius, min(r.W, r.H)/2)
	if rad <= 0 {
		return true
	}
	// If inside the core (rect inset by r), it's a hit
	core := r.Inset(rad, rad)
	if core.W >= 0 && core.H >= 0 && (p.X >= core.X && p.X <= core.Right() || p.Y >= core.Y && p.Y <= core.Bottom()) {
		return true
	}
	// Otherwise test the four quarter-circles
	cx := []float32{r.X + rad, r.X + r.W - rad}
	cy := []float32{r.Y + rad, r.Y + r.H - rad}
	r2 := rad * rad
	for _, x := range cx {
		for _, y := range cy {
			dx := p.X - x
			dy := p.Y - y
			if dx*dx+dy*dy <= r2 {
				return true
			}
		}
	}
	return false
}

// PointInPolygon uses the even-odd rule.
func PointInPolygon(poly []Pt, p Pt) bool {
	in := false
	for i, j := 0, len(poly)-1; i < len(poly); j, i = i, i+1 {
		a, b := poly[i], poly[j]
		if (a.Y > p.Y) != (b.Y > p.Y) && p.X < (b.X-a.X)*(p.Y-a.Y)/(b.Y-a.Y)+a.X {
			in = !in
		}
	}
	return in
}

// SegmentDist returns the distance from p to segment ab.
func SegmentDist(a, b, p Pt) float32 {
	ab := b.Sub(a)
	l2 := ab.X*ab.X + ab.Y*ab.Y
	if l2 == 0 {
		return a.Dist(p)
	}
	t := ((p.X-a.X)*ab.X + (p.Y-a.Y)*ab.Y) / l2
	t = max(0, min(1, t))
	return a.Lerp(b, t).Dist(p)
}

// HitPolyline reports whether p lies within tol of any segment of pts.
func HitPolyline(pts []Pt, p Pt, tol float32) bool {
	if len(pts) == 1 {
		return pts[0].Dist(p) <= tol
	}
	for i := 1; i < len(pts); i++ {
		if SegmentDist(pts[i-1], pts[i], p) <= tol {
			return true
		}
	}
	return false
}
