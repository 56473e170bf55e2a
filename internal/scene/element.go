/*
 * Copyright (c) 2025 by Alexander Drost, Oldenburg, Germany.
 * This file is licensed to you under the Apache License, Version 2.0 (the "License"); you may not use this file except in compliance with the License.  You may obtain a copy of the License at
 *   http://www.apache.org/licenses/LICENSE-2.0
 * Unless required by applicable law or agreed to in writing, software distributed under the License is distributed on an
 * "AS IS" BASIS, WITHOUT WARRANTIES OR CONDITIONS OF ANY KIND, either express or implied.  See the License for the specific language governing permissions and limitations under the License.
 */

package scene

import (
	"encoding/json"
	"fmt"

	"garmentsketch/internal/vector"
)

// Kind is the explicit element type assigned at creation time.
type Kind string

const (
	KindRectangle Kind = "rectangle"
	KindEllipse   Kind = "ellipse"
	KindTriangle  Kind = "triangle"
	KindLine      Kind = "line"
	KindArrow     Kind = "arrow"
	KindFreehand  Kind = "freehand-path"
	KindPen       Kind = "pen-path"
	KindText      Kind = "text"
	KindImage     Kind = "image"
	KindGroup     Kind = "group"
)

// Kinds lists every known kind in a stable order.
var Kinds = []Kind{KindRectangle, KindEllipse, KindTriangle, KindLine, KindArrow, KindFreehand, KindPen, KindText, KindImage, KindGroup}

func (k Kind) Valid() bool {
	for _, v := range Kinds {
		if v == k {
			return true
		}
	}
	return false
}

// IsLinear reports whether the kind is defined by two endpoints.
func (k Kind) IsLinear() bool { return k == KindLine || k == KindArrow }

// IsPath reports whether the kind carries free-form path data.
func (k Kind) IsPath() bool { return k == KindFreehand || k == KindPen }

// Geometry holds position plus kind-specific shape data.
// Points, Anchors and Path are local to (X, Y); rotation is about the box center.
type Geometry struct {
	X        float32         `json:"x"`
	Y        float32         `json:"y"`
	W        float32         `json:"w"`
	H        float32         `json:"h"`
	Rotation float32         `json:"rotation,omitempty"` // radians
	Points   []vector.Pt     `json:"points,omitempty"`
	Anchors  []vector.Anchor `json:"anchors,omitempty"`
	Closed   bool            `json:"closed,omitempty"`
	Path     *vector.Path    `json:"path,omitempty"`
}

// ImageRef points at an asset stored by the upload collaborator.
type ImageRef struct {
	Ref      string  `json:"ref"`
	MIME     string  `json:"mime,omitempty"`
	NaturalW float32 `json:"naturalW"`
	NaturalH float32 `json:"naturalH"`
}

// Element is a drawable scene member. Groups own Children, which keep scene coordinates.
type Element struct {
	ID       string       `json:"id"`
	Name     string       `json:"name"`
	Kind     Kind         `json:"kind"`
	Geometry Geometry     `json:"geometry"`
	Style    vector.Style `json:"style"`
	Text     string       `json:"text,omitempty"`
	FontSize float32      `json:"fontSize,omitempty"`
	Image    *ImageRef    `json:"image,omitempty"`
	Visible  bool         `json:"visible"`
	Locked   bool         `json:"locked"`
	Children []*Element   `json:"children,omitempty"`
}

// Box returns the untransformed box in scene coordinates.
func (e *Element) Box() vector.Rect {
	g := e.Geometry
	return vector.R(g.X, g.Y, g.W, g.H)
}

// Transform maps local coordinates to scene coordinates.
func (e *Element) Transform() vector.Affine2D {
	g := e.Geometry
	m := vector.Translate(g.X, g.Y)
	if g.Rotation != 0 {
		m = m.Mul(vector.RotateAbout(g.Rotation, vector.Pt{X: g.W / 2, Y: g.H / 2}))
	}
	return m
}

// Outline returns the element's shape in local coordinates. Groups and images
// without path data fall back to their box.
func (e *Element) Outline() vector.Path {
	g := e.Geometry
	box := vector.R(0, 0, g.W, g.H)
	if g.Path != nil {
		return *g.Path
	}
	switch e.Kind {
	case KindRectangle, KindText, KindImage:
		return vector.RectPath(box, e.Style.CornerRadius)
	case KindEllipse:
		return vector.EllipsePath(box)
	case KindTriangle:
		return vector.TrianglePath(box)
	case KindLine, KindArrow, KindFreehand:
		return vector.PolylinePath(g.Points, false)
	case KindPen:
		return vector.AnchorPath(g.Anchors, g.Closed)
	}
	return vector.RectPath(box, 0)
}

// WorldPath returns the outline in scene coordinates; groups concatenate their children.
func (e *Element) WorldPath() vector.Path {
	if e.Kind == KindGroup {
		var p vector.Path
		for _, c := range e.Children {
			p.Append(c.WorldPath())
		}
		return p
	}
	return e.Outline().Transform(e.Transform())
}

// Bounds returns the axis-aligned scene bounds (rotation included).
func (e *Element) Bounds() vector.Rect {
	if e.Kind == KindGroup {
		return childBounds(e.Children)
	}
	return e.Transform().ApplyRect(vector.R(0, 0, e.Geometry.W, e.Geometry.H))
}

func childBounds(children []*Element) vector.Rect {
	var b vector.Rect
	for i, c := range children {
		if i == 0 {
			b = c.Bounds()
			continue
		}
		b = b.Union(c.Bounds())
	}
	return b
}

// Endpoints returns the scene-space tail and tip of a line or arrow.
func (e *Element) Endpoints() (tail, tip vector.Pt, ok bool) {
	pts := e.Geometry.Points
	if !e.Kind.IsLinear() || len(pts) < 2 {
		return vector.Pt{}, vector.Pt{}, false
	}
	m := e.Transform()
	return m.Apply(pts[0]), m.Apply(pts[len(pts)-1]), true
}

// Move translates the element (and any children) by d.
func (e *Element) Move(d vector.Pt) {
	e.Geometry.X += d.X
	e.Geometry.Y += d.Y
	for _, c := range e.Children {
		c.Move(d)
	}
}

// Resize fits the element into r, scaling local point, anchor and path data.
// Children of groups are scaled relative to the group's previous box.
func (e *Element) Resize(r vector.Rect) {
	g := &e.Geometry
	sx, sy := float32(1), float32(1)
	if g.W != 0 {
		sx = r.W / g.W
	}
	if g.H != 0 {
		sy = r.H / g.H
	}
	if e.Kind == KindGroup {
		old := e.Box()
		m := vector.Translate(r.X, r.Y).Mul(vector.Scale(sx, sy)).Mul(vector.Translate(-old.X, -old.Y))
		for _, c := range e.Children {
			c.transformBox(m, sx, sy)
		}
	}
	scale := vector.Scale(sx, sy)
	for i, p := range g.Points {
		g.Points[i] = scale.Apply(p)
	}
	for i, a := range g.Anchors {
		g.Anchors[i] = a.Transform(scale)
	}
	if g.Path != nil {
		p := g.Path.Transform(scale)
		g.Path = &p
	}
	g.X, g.Y, g.W, g.H = r.X, r.Y, r.W, r.H
}

func (e *Element) transformBox(m vector.Affine2D, sx, sy float32) {
	b := e.Box()
	p := m.Apply(b.Min())
	e.Resize(vector.R(p.X, p.Y, b.W*sx, b.H*sy))
}

// Hit reports whether scene point p touches the element. tol widens thin strokes.
func (e *Element) Hit(p vector.Pt, tol float32) bool {
	if e.Kind == KindGroup {
		for i := len(e.Children) - 1; i >= 0; i-- {
			if e.Children[i].Visible && e.Children[i].Hit(p, tol) {
				return true
			}
		}
		return false
	}
	lp := e.Transform().Invert().Apply(p)
	g := e.Geometry
	box := vector.R(0, 0, g.W, g.H)
	reach := tol + e.Style.Stroke.Width/2
	switch {
	case g.Path != nil || e.Kind == KindPen:
		return hitPath(e.Outline(), lp, reach)
	case e.Kind == KindRectangle:
		return vector.HitRoundedRect(box.Inset(-reach, -reach), e.Style.CornerRadius+reach, lp)
	case e.Kind == KindEllipse:
		return vector.HitEllipse(box.Inset(-reach, -reach), lp)
	case e.Kind == KindTriangle:
		return hitPath(e.Outline(), lp, reach)
	case e.Kind.IsLinear() || e.Kind == KindFreehand:
		return vector.HitPolyline(g.Points, lp, reach)
	default:
		return box.Inset(-tol, -tol).Contains(lp)
	}
}

func hitPath(p vector.Path, lp vector.Pt, reach float32) bool {
	contours, closed := p.Flatten(12)
	for i, c := range contours {
		if closed[i] && vector.PointInPolygon(c, lp) {
			return true
		}
		if vector.HitPolyline(c, lp, reach) {
			return true
		}
	}
	return false
}

// Clone deep-copies the element through its JSON form. Non-finite geometry cannot be
// encoded and makes the clone fail.
func (e *Element) Clone() (*Element, error) {
	b, err := json.Marshal(e)
	if err != nil {
		return nil, fmt.Errorf("clone %s: %w", e.ID, err)
	}
	var out Element
	if err := json.Unmarshal(b, &out); err != nil {
		return nil, fmt.Errorf("clone %s: %w", e.ID, err)
	}
	return &out, nil
}

// Walk visits e and its descendants depth-first; returning false stops descent.
func (e *Element) Walk(fn func(el *Element, depth int) bool) { e.walk(fn, 0) }

func (e *Element) walk(fn func(*Element, int) bool, depth int) {
	if !fn(e, depth) {
		return
	}
	for _, c := range e.Children {
		c.walk(fn, depth+1)
	}
}

// RefreshBounds recomputes a group's box from its children.
func (e *Element) RefreshBounds() {
	if e.Kind != KindGroup || len(e.Children) == 0 {
		return
	}
	b := childBounds(e.Children)
	e.Geometry.X, e.Geometry.Y, e.Geometry.W, e.Geometry.H = b.X, b.Y, b.W, b.H
}
