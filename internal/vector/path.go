/*
 * Copyright (c) 2025 by Alexander Drost, Oldenburg, Germany.
 * This file is licensed to you under the Apache License, Version 2.0 (the "License"); you may not use this file except in compliance with the License.  You may obtain a copy of the License at
 *   http://www.apache.org/licenses/LICENSE-2.0
 * Unless required by applicable law or agreed to in writing, software distributed under the License is distributed on an
 * "AS IS" BASIS, WITHOUT WARRANTIES OR CONDITIONS OF ANY KIND, either express or implied.  See the License for the specific language governing permissions and limitations under the License.
 */

package vector

// Path commands and shapes.

type PathOp uint8

const (
	MoveTo PathOp = iota
	LineTo
	QuadTo  // quadratic bezier (cx, cy, x, y)
	CubicTo // cubic bezier (cx1, cy1, cx2, cy2, x, y)
	Close
)

type PathCmd struct {
	Op   PathOp     `json:"op"`
	Data [6]float32 `json:"d"` // enough for cubic; unused slots are zero
}

type Path struct {
	Cmds []PathCmd `json:"cmds"`
}

func (p *Path) MoveTo(x, y float32) {
	p.Cmds = append(p.Cmds, PathCmd{Op: MoveTo, Data: [6]float32{x, y}})
}
func (p *Path) LineTo(x, y float32) {
	p.Cmds = append(p.Cmds, PathCmd{Op: LineTo, Data: [6]float32{x, y}})
}
func (p *Path) QuadTo(cx, cy, x, y float32) {
	p.Cmds = append(p.Cmds, PathCmd{Op: QuadTo, Data: [6]float32{cx, cy, x, y}})
}
func (p *Path) CubicTo(cx1, cy1, cx2, cy2, x, y float32) {
	p.Cmds = append(p.Cmds, PathCmd{Op: CubicTo, Data: [6]float32{cx1, cy1, cx2, cy2, x, y}})
}
func (p *Path) Close() { p.Cmds = append(p.Cmds, PathCmd{Op: Close}) }

// Append adds all commands of o to p.
func (p *Path) Append(o Path) { p.Cmds = append(p.Cmds, o.Cmds...) }

func (p *Path) Empty() bool { return len(p.Cmds) == 0 }

// SegmentCount counts drawing commands (everything except MoveTo). A Close adds one
// segment when it returns to a distinct subpath start.
func (p *Path) SegmentCount() int {
	n := 0
	var start, pos Pt
	for _, c := range p.Cmds {
		switch c.Op {
		case MoveTo:
			start = Pt{c.Data[0], c.Data[1]}
			pos = start
		case Close:
			if !pos.Eq(start) {
				n++
			}
			pos = start
		default:
			n++
			k := pointsPerOp(c.Op) - 1
			pos = Pt{c.Data[2*k], c.Data[2*k+1]}
		}
	}
	return n
}

// Transform returns a copy of p with every point mapped through m.
func (p Path) Transform(m Affine2D) Path {
	out := Path{Cmds: make([]PathCmd, len(p.Cmds))}
	for i, c := range p.Cmds {
		nc := PathCmd{Op: c.Op}
		for j := 0; j < pointsPerOp(c.Op); j++ {
			q := m.Apply(Pt{c.Data[2*j], c.Data[2*j+1]})
			nc.Data[2*j], nc.Data[2*j+1] = q.X, q.Y
		}
		out.Cmds[i] = nc
	}
	return out
}

// Translate returns p moved by dx,dy.
func (p Path) Translate(dx, dy float32) Path { return p.Transform(Translate(dx, dy)) }

func pointsPerOp(op PathOp) int {
	switch op {
	case MoveTo, LineTo:
		return 1
	case QuadTo:
		return 2
	case CubicTo:
		return 3
	default:
		return 0
	}
}

// Flatten converts the path into polylines, one per subpath. Curves are approximated
// with a fixed number of steps. Closed reports, per contour, whether it ended with Close.
func (p *Path) Flatten(steps int) (contours [][]Pt, closed []bool) {
	if steps < 1 {
		steps = 16
	}
	var cur []Pt
	var start, pos Pt
	flush := func(isClosed bool) {
		if len(cur) > 0 {
			contours = append(contours, cur)
			closed = append(closed, isClosed)
		}
		cur = nil
	}
	for _, c := range p.Cmds {
		switch c.Op {
		case MoveTo:
			flush(false)
			pos = Pt{c.Data[0], c.Data[1]}
			start = pos
			cur = append(cur, pos)
		case LineTo:
			if len(cur) == 0 {
				cur = append(cur, pos)
			}
			pos = Pt{c.Data[0], c.Data[1]}
			cur = append(cur, pos)
		case QuadTo:
			if len(cur) == 0 {
				cur = append(cur, pos)
			}
			c1, end := Pt{c.Data[0], c.Data[1]}, Pt{c.Data[2], c.Data[3]}
			for i := 1; i <= steps; i++ {
				t := float32(i) / float32(steps)
				a := pos.Lerp(c1, t)
				b := c1.Lerp(end, t)
				cur = append(cur, a.Lerp(b, t))
			}
			pos = end
		case CubicTo:
			if len(cur) == 0 {
				cur = append(cur, pos)
			}
			c1, c2, end := Pt{c.Data[0], c.Data[1]}, Pt{c.Data[2], c.Data[3]}, Pt{c.Data[4], c.Data[5]}
			for i := 1; i <= steps; i++ {
				cur = append(cur, CubicPoint(pos, c1, c2, end, float32(i)/float32(steps)))
			}
			pos = end
		case Close:
			flush(true)
			pos = start
		}
	}
	flush(false)
	return contours, closed
}

// CubicPoint evaluates a cubic bezier at t.
func CubicPoint(p0, p1, p2, p3 Pt, t float32) Pt {
	u := 1 - t
	a := u * u * u
	b := 3 * u * u * t
	c := 3 * u * t * t
	d := t * t * t
	return Pt{
		X: a*p0.X + b*p1.X + c*p2.X + d*p3.X,
		Y: a*p0.Y + b*p1.Y + c*p2.Y + d*p3.Y,
	}
}

// Finite reports whether every coordinate in the path is finite.
func (p *Path) Finite() bool {
	for _, c := range p.Cmds {
		for _, v := range c.Data {
			if !Finite(v) {
				return false
			}
		}
	}
	return true
}

// Bounds returns an axis-aligned bounding box of the path using a simple
// approximation by considering control points. This is sufficient for UI layout
// and selection rectangles; exporters can use tighter bounds later.
func (p *Path) Bounds() Rect {
	minX, minY := float32(+1e9), float32(+1e9)
	maxX, maxY := float32(-1e9), float32(-1e9)
	grow := func(q Pt) {
		minX, minY = min(minX, q.X), min(minY, q.Y)
		maxX, maxY = max(maxX, q.X), max(maxY, q.Y)
	}
	cur := Pt{}
	for _, c := range p.Cmds {
		switch c.Op {
		case MoveTo, LineTo:
			cur = Pt{c.Data[0], c.Data[1]}
			grow(cur)
		case QuadTo:
			grow(cur)
			grow(Pt{c.Data[0], c.Data[1]})
			cur = Pt{c.Data[2], c.Data[3]}
			grow(cur)
		case CubicTo:
			grow(cur)
			grow(Pt{c.Data[0], c.Data[1]})
			grow(Pt{c.Data[2], c.Data[3]})
			cur = Pt{c.Data[4], c.Data[5]}
			grow(cur)
		case Close:
			// no-op for bounds
		}
	}
	if minX > maxX || minY > maxY {
		return Rect{}
	}
	return Rect{X: minX, Y: minY, W: maxX - minX, H: maxY - minY}
}
