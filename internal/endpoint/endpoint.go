/*
 * Copyright (c) 2025 by Alexander Drost, Oldenburg, Germany.
 * This file is licensed to you under the Apache License, Version 2.0 (the "License"); you may not use this file except in compliance with the License.  You may obtain a copy of the License at
 *   http://www.apache.org/licenses/LICENSE-2.0
 * Unless required by applicable law or agreed to in writing, software distributed under the License is distributed on an
 * "AS IS" BASIS, WITHOUT WARRANTIES OR CONDITIONS OF ANY KIND, either express or implied.  See the License for the specific language governing permissions and limitations under the License.
 */

// Package endpoint edits the two defining points of line and arrow elements.
package endpoint

import (
	"errors"
	"math"

	"garmentsketch/internal/scene"
	"garmentsketch/internal/vector"
)

var ErrNotLinear = errors.New("endpoint: element is not a line or arrow")

// DefaultSnapStep is the angle increment used while the snap modifier is held.
const DefaultSnapStep = 15

// Handle selects what a drag manipulates.
type Handle uint8

const (
	Tail Handle = iota
	Tip
	Rotate
)

// SetEndpoints writes scene-space endpoints into e. The origin is normalized to the
// endpoints' bounding box minimum and path data is regenerated in the same local
// space, so the rendered position follows the endpoints exactly.
func SetEndpoints(e *scene.Element, tail, tip vector.Pt, opts vector.ArrowOptions) {
	b := vector.BoundsOf([]vector.Pt{tail, tip})
	g := &e.Geometry
	g.X, g.Y, g.W, g.H, g.Rotation = b.X, b.Y, b.W, b.H, 0
	o := b.Min()
	lt, lp := tail.Sub(o), tip.Sub(o)
	g.Points = []vector.Pt{lt, lp}
	g.Path = nil
	if e.Kind == scene.KindArrow {
		p := vector.ComputeArrow(lt, lp, opts).Path
		g.Path = &p
	}
}

// Drag is an in-progress endpoint or rotate gesture on one element.
type Drag struct {
	ID     string
	Handle Handle
	Step   float32
	Arrow  vector.ArrowOptions

	origTail, origTip vector.Pt
	startAngle        float32
	changed           bool
}

// Begin captures the element's current endpoints. grab is the pointer position
// (only used by rotate drags).
func Begin(e *scene.Element, h Handle, grab vector.Pt) (*Drag, error) {
	tail, tip, ok := e.Endpoints()
	if !ok {
		return nil, ErrNotLinear
	}
	d := &Drag{ID: e.ID, Handle: h, Step: DefaultSnapStep, Arrow: vector.DefaultArrowOptions(), origTail: tail, origTip: tip}
	if h == Rotate {
		d.startAngle = vector.Angle(tail.Lerp(tip, 0.5), grab)
	}
	return d, nil
}

// Update moves the dragged handle to p. With snap held the moved endpoint lands on
// the nearest Step-degree ray from the fixed endpoint, keeping its distance; rotate
// drags snap the segment direction instead.
func (d *Drag) Update(e *scene.Element, p vector.Pt, snap bool) {
	tail, tip := d.origTail, d.origTip
	switch d.Handle {
	case Tail:
		tail = p
		if snap {
			tail = vector.SnapAngle(tip, p, d.Step)
		}
	case Tip:
		tip = p
		if snap {
			tip = vector.SnapAngle(tail, p, d.Step)
		}
	case Rotate:
		mid := tail.Lerp(tip, 0.5)
		delta := vector.Angle(mid, p) - d.startAngle
		if snap {
			dir := vector.Angle(tail, tip) + delta
			step := float64(d.Step) * math.Pi / 180
			delta = float32(math.Round(float64(dir)/step)*step) - vector.Angle(tail, tip)
		}
		m := vector.RotateAbout(delta, mid)
		tail, tip = m.Apply(tail), m.Apply(tip)
	}
	d.changed = !tail.Eq(d.origTail) || !tip.Eq(d.origTip)
	SetEndpoints(e, tail, tip, d.Arrow)
}

// Changed reports whether the last update moved anything.
func (d *Drag) Changed() bool { return d.changed }

// Cancel restores the endpoints captured by Begin.
func (d *Drag) Cancel(e *scene.Element) {
	SetEndpoints(e, d.origTail, d.origTip, d.Arrow)
	d.changed = false
}

// NearestHandle returns the endpoint handle within radius of p, if any.
func NearestHandle(e *scene.Element, p vector.Pt, radius float32) (Handle, bool) {
	tail, tip, ok := e.Endpoints()
	if !ok {
		return 0, false
	}
	dt, dp := tail.Dist(p), tip.Dist(p)
	switch {
	case dp <= radius && dp <= dt:
		return Tip, true
	case dt <= radius:
		return Tail, true
	}
	return 0, false
}

// RotateHandlePos places the rotate handle perpendicular to the segment midpoint.
func RotateHandlePos(e *scene.Element, offset float32) (vector.Pt, bool) {
	tail, tip, ok := e.Endpoints()
	if !ok {
		return vector.Pt{}, false
	}
	mid := tail.Lerp(tip, 0.5)
	l := tail.Dist(tip)
	if l == 0 {
		return vector.Pt{X: mid.X, Y: mid.Y - offset}, true
	}
	n := vector.Pt{X: -(tip.Y - tail.Y) / l, Y: (tip.X - tail.X) / l}
	return mid.Sub(n.Mul(offset)), true
}
