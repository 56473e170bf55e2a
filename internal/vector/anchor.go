/*
 * Copyright (c) 2025 by Alexander Drost, Oldenburg, Germany.
 * This file is licensed to you under the Apache License, Version 2.0 (the "License"); you may not use this file except in compliance with the License.  You may obtain a copy of the License at
 *   http://www.apache.org/licenses/LICENSE-2.0
 * Unless required by applicable law or agreed to in writing, software distributed under the License is distributed on an
 * "AS IS" BASIS, WITHOUT WARRANTIES OR CONDITIONS OF ANY KIND, either express or implied.  See the License for the specific language governing permissions and limitations under the License.
 */

package vector

// Anchor is a pen-path point with optional cubic bezier handles.
// Handles are absolute positions in the same space as the anchor.
type Anchor struct {
	X   float32 `json:"x"`
	Y   float32 `json:"y"`
	In  *Pt     `json:"in,omitempty"`
	Out *Pt     `json:"out,omitempty"`
}

func (a Anchor) Pt() Pt { return Pt{a.X, a.Y} }

// InOrSelf returns the inbound handle, or the anchor itself when there is none.
func (a Anchor) InOrSelf() Pt {
	if a.In != nil {
		return *a.In
	}
	return a.Pt()
}

// OutOrSelf returns the outbound handle, or the anchor itself when there is none.
func (a Anchor) OutOrSelf() Pt {
	if a.Out != nil {
		return *a.Out
	}
	return a.Pt()
}

// Translate returns a copy moved by d, handles included.
func (a Anchor) Translate(d Pt) Anchor {
	out := Anchor{X: a.X + d.X, Y: a.Y + d.Y}
	if a.In != nil {
		p := a.In.Add(d)
		out.In = &p
	}
	if a.Out != nil {
		p := a.Out.Add(d)
		out.Out = &p
	}
	return out
}

// Transform applies m to the anchor and its handles.
func (a Anchor) Transform(m Affine2D) Anchor {
	p := m.Apply(a.Pt())
	out := Anchor{X: p.X, Y: p.Y}
	if a.In != nil {
		q := m.Apply(*a.In)
		out.In = &q
	}
	if a.Out != nil {
		q := m.Apply(*a.Out)
		out.Out = &q
	}
	return out
}

// AnchorPath converts anchors to path commands. A segment is a straight line when
// both control points coincide with their endpoints, otherwise a cubic using the
// earlier anchor's outbound handle and the later anchor's inbound handle.
// A closed chain gets an explicit segment back to the first anchor before Close.
func AnchorPath(anchors []Anchor, closed bool) Path {
	var p Path
	if len(anchors) == 0 {
		return p
	}
	p.MoveTo(anchors[0].X, anchors[0].Y)
	for i := 1; i < len(anchors); i++ {
		appendSegment(&p, anchors[i-1], anchors[i])
	}
	if closed && len(anchors) > 1 {
		appendSegment(&p, anchors[len(anchors)-1], anchors[0])
		p.Close()
	}
	return p
}

func appendSegment(p *Path, a, b Anchor) {
	c1, c2 := a.OutOrSelf(), b.InOrSelf()
	if c1.Eq(a.Pt()) && c2.Eq(b.Pt()) {
		p.LineTo(b.X, b.Y)
		return
	}
	p.CubicTo(c1.X, c1.Y, c2.X, c2.Y, b.X, b.Y)
}

// CloneAnchors deep-copies handles so edits do not alias.
func CloneAnchors(in []Anchor) []Anchor {
	if in == nil {
		return nil
	}
	out := make([]Anchor, len(in))
	for i, a := range in {
		out[i] = a.Translate(Pt{})
	}
	return out
}
