/*
 * Copyright (c) 2025 by Alexander Drost, Oldenburg, Germany.
 * This file is licensed to you under the Apache License, Version 2.0 (the "License"); you may not use this file except in compliance with the License.  You may obtain a copy of the License at
 *   http://www.apache.org/licenses/LICENSE-2.0
 * Unless required by applicable law or agreed to in writing, software distributed under the License is distributed on an
 * "AS IS" BASIS, WITHOUT WARRANTIES OR CONDITIONS OF ANY KIND, either express or implied.  See the License for the specific language governing permissions and limitations under the License.
 */

// Package pen builds bezier paths from clicks and drags. The draft lives only in the
// builder until it is finalized; preview aids are derived on demand and never
// become scene members.
package pen

import (
	"garmentsketch/internal/scene"
	"garmentsketch/internal/vector"
)

// Options are screen-space radii, divided by zoom at use.
type Options struct {
	HitRadius     float32 // corner conversion on the last anchor
	CloseRadius   float32 // closing zone around the first anchor
	DragThreshold float32 // handle drag vs click
}

func DefaultOptions() Options { return Options{HitRadius: 8, CloseRadius: 10, DragThreshold: 4} }

// Modifiers carried by pointer events.
type Modifiers struct {
	Constrain  bool // 45° steps from the previous anchor
	Asymmetric bool // set only the outbound handle
}

// Result is a finalized path in scene coordinates.
type Result struct {
	Anchors []vector.Anchor
	Closed  bool
}

// Path converts the result into drawing commands.
func (r Result) Path() vector.Path { return vector.AnchorPath(r.Anchors, r.Closed) }

// Builder is the pen draft state machine.
type Builder struct {
	opts    Options
	anchors []vector.Anchor
	down    bool
	downAt  vector.Pt
	dragIdx int
	cursor  vector.Pt
	hover   bool
}

func NewBuilder(opts Options) *Builder {
	d := DefaultOptions()
	if opts.HitRadius <= 0 {
		opts.HitRadius = d.HitRadius
	}
	if opts.CloseRadius <= 0 {
		opts.CloseRadius = d.CloseRadius
	}
	if opts.DragThreshold <= 0 {
		opts.DragThreshold = d.DragThreshold
	}
	return &Builder{opts: opts, dragIdx: -1}
}

// Active reports whether a draft exists.
func (b *Builder) Active() bool { return len(b.anchors) > 0 }

// Anchors returns a copy of the draft anchors.
func (b *Builder) Anchors() []vector.Anchor { return vector.CloneAnchors(b.anchors) }

func scaled(v, zoom float32) float32 {
	if zoom <= 0 {
		zoom = 1
	}
	return v / zoom
}

// PointerDown handles a click at p. It returns a result when the click closes the path.
func (b *Builder) PointerDown(p vector.Pt, zoom float32, mods Modifiers) *Result {
	b.down, b.downAt, b.cursor, b.hover = true, p, p, true
	n := len(b.anchors)
	if n == 0 {
		b.anchors = append(b.anchors, vector.Anchor{X: p.X, Y: p.Y})
		b.dragIdx = 0
		return nil
	}
	last := &b.anchors[n-1]
	if last.Out != nil && last.Pt().Dist(p) <= scaled(b.opts.HitRadius, zoom) {
		last.Out = nil
		b.dragIdx = -1
		return nil
	}
	if n >= 2 && b.anchors[0].Pt().Dist(p) <= scaled(b.opts.CloseRadius, zoom) {
		r := &Result{Anchors: b.Anchors(), Closed: true}
		b.Cancel()
		return r
	}
	if mods.Constrain {
		p = vector.SnapAngle(last.Pt(), p, 45)
	}
	b.anchors = append(b.anchors, vector.Anchor{X: p.X, Y: p.Y})
	b.dragIdx = n
	b.downAt = p
	return nil
}

// PointerMove updates the preview cursor and, while dragging from a fresh anchor,
// its handles: mirrored through the anchor, or outbound only when asymmetric.
func (b *Builder) PointerMove(p vector.Pt, zoom float32, mods Modifiers) {
	b.cursor, b.hover = p, true
	if !b.down || b.dragIdx < 0 || b.dragIdx >= len(b.anchors) {
		return
	}
	a := &b.anchors[b.dragIdx]
	if b.downAt.Dist(p) <= scaled(b.opts.DragThreshold, zoom) {
		a.In, a.Out = nil, nil
		return
	}
	out := p
	a.Out = &out
	if mods.Asymmetric {
		return
	}
	in := p.Mirror(a.Pt())
	a.In = &in
}

// PointerUp ends a drag. A sub-threshold drag counts as a click and clears handles.
func (b *Builder) PointerUp(p vector.Pt, zoom float32) {
	if b.down && b.dragIdx >= 0 && b.dragIdx < len(b.anchors) && b.downAt.Dist(p) <= scaled(b.opts.DragThreshold, zoom) {
		a := &b.anchors[b.dragIdx]
		a.In, a.Out = nil, nil
	}
	b.down = false
	b.dragIdx = -1
}

// Finalize commits an open path with at least two anchors.
func (b *Builder) Finalize() (*Result, bool) {
	if len(b.anchors) < 2 {
		return nil, false
	}
	r := &Result{Anchors: b.Anchors()}
	b.Cancel()
	return r, true
}

// Backspace removes the last anchor; removing the only anchor cancels the draft.
func (b *Builder) Backspace() bool {
	if len(b.anchors) == 0 {
		return false
	}
	b.anchors = b.anchors[:len(b.anchors)-1]
	if len(b.anchors) == 0 {
		b.Cancel()
	}
	b.dragIdx = -1
	return true
}

// Cancel discards the draft and every transient aid.
func (b *Builder) Cancel() {
	b.anchors = nil
	b.down = false
	b.dragIdx = -1
	b.hover = false
}

// Aids are the transient construction overlays.
type Aids struct {
	Preview      *[2]vector.Pt  // last anchor to cursor
	HandleGuides [][2]vector.Pt // anchor to handle
	Handles      []vector.Pt
	ClosingHint  *vector.Pt // first anchor, when the cursor is in the closing zone
}

// Aids derives the overlays for the current draft; empty when no draft exists.
func (b *Builder) Aids(zoom float32) Aids {
	var out Aids
	n := len(b.anchors)
	if n == 0 {
		return out
	}
	for _, a := range b.anchors {
		for _, h := range []*vector.Pt{a.In, a.Out} {
			if h != nil {
				out.HandleGuides = append(out.HandleGuides, [2]vector.Pt{a.Pt(), *h})
				out.Handles = append(out.Handles, *h)
			}
		}
	}
	if b.hover && !b.down {
		seg := [2]vector.Pt{b.anchors[n-1].Pt(), b.cursor}
		out.Preview = &seg
	}
	if n >= 2 && b.hover && b.anchors[0].Pt().Dist(b.cursor) <= scaled(b.opts.CloseRadius, zoom) {
		first := b.anchors[0].Pt()
		out.ClosingHint = &first
	}
	return out
}

// Commit turns a result into a pen-path element with anchors local to its bounds.
func Commit(s *scene.Scene, r *Result) *scene.Element {
	path := r.Path()
	b := path.Bounds()
	e := s.NewElement(scene.KindPen, b)
	e.Style = vector.DefaultLineStyle()
	if r.Closed {
		e.Style = vector.DefaultShapeStyle()
	}
	d := b.Min().Mul(-1)
	e.Geometry.Anchors = make([]vector.Anchor, len(r.Anchors))
	for i, a := range r.Anchors {
		e.Geometry.Anchors[i] = a.Translate(d)
	}
	e.Geometry.Closed = r.Closed
	return e
}
