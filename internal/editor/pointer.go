/*
 * Copyright (c) 2025 by Alexander Drost, Oldenburg, Germany.
 * This file is licensed to you under the Apache License, Version 2.0 (the "License"); you may not use this file except in compliance with the License.  You may obtain a copy of the License at
 *   http://www.apache.org/licenses/LICENSE-2.0
 * Unless required by applicable law or agreed to in writing, software distributed under the License is distributed on an
 * "AS IS" BASIS, WITHOUT WARRANTIES OR CONDITIONS OF ANY KIND, either express or implied.  See the License for the specific language governing permissions and limitations under the License.
 */

package editor

import (
	"log/slog"
	"math"
	"strings"

	"garmentsketch/internal/capability"
	"garmentsketch/internal/endpoint"
	"garmentsketch/internal/pen"
	"garmentsketch/internal/scene"
	"garmentsketch/internal/snap"
	"garmentsketch/internal/vector"
)

// dragState is everything a single pointer gesture needs between down and up.
type dragState struct {
	start   vector.Pt // scene
	screen  ScreenPt  // screen position at down
	moved   bool      // passed the drag threshold
	changed bool      // geometry differs from the committed state

	id      string // element being drawn, rotated or endpoint-dragged
	handle  capability.Handle
	applied vector.Pt // translation already applied while moving
	points  []vector.Pt

	startBox   vector.Rect               // selection box at down (unrotated for single elements)
	frame      vector.Affine2D           // local frame of startBox
	originals  map[string]*scene.Element // pre-gesture clones for scaling
	startRot   float32
	startAngle float32
	ep         *endpoint.Drag
	additive   bool // marquee with shift
}

// PointerDown starts a gesture according to the active tool, held keys and what lies under p.
func (e *Editor) PointerDown(ev PointerEvent) {
	if e.gesture == Pinching {
		return
	}
	p := e.toScene(ev.Pos)
	e.view.TapStart(ev.Pos)
	e.overlay.Clear()
	e.drag = dragState{start: p, screen: ev.Pos}

	if ev.Button == ButtonMiddle || e.spaceHeld {
		e.gesture = Panning
		e.view.BeginPan(ev.Pos)
		return
	}
	if ev.Button != ButtonPrimary {
		return
	}
	if e.editing != "" {
		e.EndTextEdit()
	}

	if kind, ok := e.tool.shapeKind(); ok {
		e.beginShape(kind, p)
		return
	}
	switch e.tool {
	case ToolText:
		e.gesture = TextTap
	case ToolFreehand:
		e.gesture = Freehand
		e.drag.points = []vector.Pt{p}
	case ToolPen:
		e.gesture = BuildingPen
		if r := e.pen.PointerDown(p, e.view.Scale, pen.Modifiers{Constrain: ev.Shift, Asymmetric: ev.Alt}); r != nil {
			e.commitPen(r)
		}
	default:
		e.selectDown(p, ev)
	}
}

// PointerMove advances the gesture; without a gesture it only feeds pen hover and inspect.
func (e *Editor) PointerMove(ev PointerEvent) {
	p := e.toScene(ev.Pos)
	if e.gesture != Idle && !e.drag.moved && e.drag.screen.Dist(ev.Pos) > e.opts.DragThreshold {
		e.drag.moved = true
	}
	e.view.TapMove(ev.Pos)

	switch e.gesture {
	case Idle:
		if e.tool == ToolPen {
			e.pen.PointerMove(p, e.view.Scale, pen.Modifiers{Constrain: ev.Shift, Asymmetric: ev.Alt})
		}
		if e.altHeld {
			e.inspect()
		}
	case Panning:
		e.view.PanTo(ev.Pos)
	case Drawing:
		e.updateShape(p, ev.Shift)
	case Freehand:
		if last := e.drag.points[len(e.drag.points)-1]; last.Dist(p) >= e.px(1) {
			e.drag.points = append(e.drag.points, p)
		}
	case BuildingPen:
		e.pen.PointerMove(p, e.view.Scale, pen.Modifiers{Constrain: ev.Shift, Asymmetric: ev.Alt})
	case Moving:
		e.updateMove(p, ev.Grid)
	case Scaling:
		e.updateScale(p, ev.Shift, ev.Grid)
	case Rotating:
		e.updateRotate(p, ev.Shift)
	case DraggingEndpoint:
		if el := e.scene.Find(e.drag.id); el != nil && e.drag.ep != nil {
			e.drag.ep.Update(el, p, ev.Shift)
			e.drag.changed = e.drag.ep.Changed()
		}
	case Marquee:
		r := vector.RectFromPoints(e.drag.start, p)
		e.marquee = &r
	}
}

// PointerUp finishes the gesture, committing when something changed.
func (e *Editor) PointerUp(ev PointerEvent) {
	p := e.toScene(ev.Pos)
	g := e.gesture
	switch g {
	case Idle:
		return
	case Panning:
		e.view.End()
	case Pinching:
		return
	case Drawing:
		e.finishShape()
	case Freehand:
		e.finishFreehand()
	case TextTap:
		if e.view.IsTap(ev.Pos) {
			e.createText(p)
		}
	case BuildingPen:
		e.pen.PointerUp(p, e.view.Scale)
		if e.pen.Active() {
			// the draft keeps the gesture until finalize or cancel
			e.drag = dragState{}
			e.overlay.Clear()
			return
		}
	case Moving:
		if e.drag.changed {
			e.commit("move")
		}
	case Scaling:
		if e.drag.changed {
			e.commit("resize")
		}
	case Rotating:
		if e.drag.changed {
			e.commit("rotate")
		}
	case DraggingEndpoint:
		if e.drag.changed {
			e.commit("edit endpoint")
		}
	case Marquee:
		e.finishMarquee(p)
	}
	if e.gesture == g {
		e.resetTransient()
	}
}

// PointerCancel abandons the gesture (lost capture, second pointer, OS interruption).
func (e *Editor) PointerCancel() { e.Cancel() }

// Wheel zooms around the screen anchor.
func (e *Editor) Wheel(deltaY float32, at ScreenPt) { e.view.Wheel(deltaY, at) }

// PinchStart begins a two-finger gesture; a gesture in progress is abandoned first.
func (e *Editor) PinchStart(a, b ScreenPt) {
	if e.gesture != Idle && e.gesture != Pinching {
		e.Cancel()
	}
	e.gesture = Pinching
	e.view.BeginPinch(a, b)
}

func (e *Editor) PinchMove(a, b ScreenPt) {
	if e.gesture == Pinching {
		e.view.PinchTo(a, b)
	}
}

func (e *Editor) PinchEnd() {
	if e.gesture == Pinching {
		e.view.End()
		e.gesture = Idle
	}
}

// --- shape tools

func (e *Editor) beginShape(kind scene.Kind, p vector.Pt) {
	el := e.scene.NewElement(kind, vector.R(p.X, p.Y, 0, 0))
	if kind.IsLinear() {
		endpoint.SetEndpoints(el, p, p, vector.DefaultArrowOptions())
	}
	e.scene.Add(el)
	e.drag.id = el.ID
	e.gesture = Drawing
}

func (e *Editor) updateShape(p vector.Pt, constrain bool) {
	el := e.scene.Find(e.drag.id)
	if el == nil {
		return
	}
	start := e.drag.start
	if el.Kind.IsLinear() {
		tip := p
		if constrain {
			tip = vector.SnapAngle(start, p, 45)
		}
		endpoint.SetEndpoints(el, start, tip, vector.DefaultArrowOptions())
		return
	}
	if constrain {
		d := p.Sub(start)
		side := float32(math.Max(math.Abs(float64(d.X)), math.Abs(float64(d.Y))))
		p = vector.Pt{X: start.X + sign(d.X)*side, Y: start.Y + sign(d.Y)*side}
	}
	r := vector.RectFromPoints(start, p)
	el.Geometry.X, el.Geometry.Y, el.Geometry.W, el.Geometry.H = r.X, r.Y, r.W, r.H
}

func sign(v float32) float32 {
	if v < 0 {
		return -1
	}
	return 1
}

// finishShape commits a drawn shape, or discards it when the pointer never dragged.
func (e *Editor) finishShape() {
	el := e.scene.Find(e.drag.id)
	if el == nil {
		return
	}
	if !e.drag.moved || degenerate(el) {
		e.scene.Remove(el.ID)
		e.log.Debug("degenerate shape discarded", slog.String("kind", string(el.Kind)))
		return
	}
	e.Select(el.ID)
	e.commit("draw " + string(el.Kind))
	e.afterCommitTool()
}

func degenerate(el *scene.Element) bool {
	if tail, tip, ok := el.Endpoints(); ok {
		return tail.Dist(tip) < 1
	}
	return el.Geometry.W < 1 && el.Geometry.H < 1
}

func (e *Editor) afterCommitTool() {
	if !e.tool.Sticky() {
		e.tool = ToolSelect
	}
}

func (e *Editor) finishFreehand() {
	pts := e.drag.points
	if len(pts) < 2 || !e.drag.moved {
		return
	}
	b := vector.BoundsOf(pts)
	el := e.scene.NewElement(scene.KindFreehand, b)
	local := make([]vector.Pt, len(pts))
	for i, q := range pts {
		local[i] = q.Sub(b.Min())
	}
	el.Geometry.Points = local
	e.scene.Add(el)
	e.Select(el.ID)
	e.commit("draw freehand")
}

func (e *Editor) commitPen(r *pen.Result) {
	el := pen.Commit(e.scene, r)
	e.scene.Add(el)
	e.Select(el.ID)
	e.commit("draw pen path")
	e.resetTransient()
}

// finishPen commits an open pen draft; false when fewer than two anchors exist.
func (e *Editor) finishPen() bool {
	r, ok := e.pen.Finalize()
	if !ok {
		return false
	}
	e.commitPen(r)
	return true
}

// --- select tool

func (e *Editor) selectDown(p vector.Pt, ev PointerEvent) {
	if h, ok := e.hitHandle(p); ok {
		e.beginHandle(h, p)
		return
	}
	hit := e.scene.HitTest(p, e.px(4))
	if hit == nil {
		e.gesture = Marquee
		e.drag.additive = ev.Shift
		if !ev.Shift {
			e.ClearSelection()
		}
		r := vector.R(p.X, p.Y, 0, 0)
		e.marquee = &r
		return
	}
	if ev.Shift {
		e.toggle(hit.ID)
		if !e.isSelected(hit.ID) {
			return
		}
	} else if !e.isSelected(hit.ID) {
		e.Select(hit.ID)
	}
	e.beginMove(p)
}

func (e *Editor) beginMove(p vector.Pt) {
	sel := e.movable()
	if len(sel) == 0 {
		return
	}
	e.gesture = Moving
	e.drag.startBox = unionBounds(sel)
}

// movable returns the selected elements that a body drag may translate.
func (e *Editor) movable() []*scene.Element {
	var out []*scene.Element
	for _, el := range e.selectedElements() {
		if !el.Locked && capability.CanMove(el.Kind) {
			out = append(out, el)
		}
	}
	return out
}

func (e *Editor) beginHandle(h HandleView, p vector.Pt) {
	switch h.Handle {
	case capability.HandleTail, capability.HandleTip, capability.HandleRotate:
		el := e.scene.Find(h.ID)
		if el == nil {
			return
		}
		if el.Kind.IsLinear() {
			eh := endpoint.Tail
			switch h.Handle {
			case capability.HandleTip:
				eh = endpoint.Tip
			case capability.HandleRotate:
				eh = endpoint.Rotate
			}
			d, err := endpoint.Begin(el, eh, p)
			if err != nil {
				return
			}
			e.drag.ep = d
			e.drag.id = el.ID
			e.gesture = DraggingEndpoint
			if eh == endpoint.Rotate {
				e.gesture = Rotating
			}
			return
		}
		e.drag.id = el.ID
		e.drag.startRot = el.Geometry.Rotation
		e.drag.startAngle = vector.Angle(el.Box().Center(), p)
		e.gesture = Rotating
	default:
		e.beginScale(h)
	}
}

func (e *Editor) beginScale(h HandleView) {
	sel := e.selectedElements()
	if len(sel) == 0 {
		return
	}
	e.drag.handle = h.Handle
	e.drag.originals = make(map[string]*scene.Element, len(sel))
	for _, el := range sel {
		c, err := el.Clone()
		if err != nil {
			e.log.Warn("scale clone failed", slog.String("id", el.ID), slog.Any("err", err))
			return
		}
		e.drag.originals[el.ID] = c
	}
	if len(sel) == 1 {
		el := sel[0]
		e.drag.startBox = el.Box()
		e.drag.frame = el.Transform()
	} else {
		e.drag.startBox = unionBounds(sel)
		e.drag.frame = vector.Translate(e.drag.startBox.X, e.drag.startBox.Y)
	}
	e.gesture = Scaling
}

// snapTargets are the visible root elements outside the selection.
func (e *Editor) snapTargets() []snap.Target {
	var out []snap.Target
	for _, el := range e.scene.Elements() {
		if el.Visible && !e.isSelected(el.ID) {
			out = append(out, snap.Target{ID: el.ID, Rect: el.Bounds()})
		}
	}
	return out
}

func (e *Editor) snapOptions() snap.Options {
	return snap.Options{Tolerance: e.opts.SnapTolerance, Zoom: e.view.Scale, Viewport: e.view.VisibleBounds()}
}

func (e *Editor) updateMove(p vector.Pt, grid bool) {
	if !e.drag.moved {
		return
	}
	want := e.drag.startBox.Translate(p.Sub(e.drag.start))
	e.overlay.Clear()
	var box vector.Rect
	if grid {
		box = snap.GridRect(want, e.opts.GridUnit, false)
	} else {
		targets := e.snapTargets()
		box, e.overlay.Guides = snap.Align(want, targets, e.snapOptions())
		e.overlay.Distances = snap.Distances(box, targets)
	}
	d := box.Min().Sub(e.drag.startBox.Min())
	step := d.Sub(e.drag.applied)
	if step.X == 0 && step.Y == 0 {
		return
	}
	for _, el := range e.movable() {
		_ = e.scene.Update(el.ID, func(x *scene.Element) { x.Move(step) })
	}
	e.drag.applied = d
	e.drag.changed = d.X != 0 || d.Y != 0
}

func (e *Editor) updateScale(p vector.Pt, uniform, grid bool) {
	sb := e.drag.startBox
	// pointer in the frame of the unscaled box
	lp := e.drag.frame.Invert().Apply(p)
	west, east, north, south := handleEdges(e.drag.handle)
	x0, y0, x1, y1 := float32(0), float32(0), sb.W, sb.H
	if west {
		x0 = lp.X
	}
	if east {
		x1 = lp.X
	}
	if north {
		y0 = lp.Y
	}
	if south {
		y1 = lp.Y
	}
	if uniform && sb.W > 0 && sb.H > 0 {
		k := float32(math.Max(math.Abs(float64((x1-x0)/sb.W)), math.Abs(float64((y1-y0)/sb.H))))
		if (west || east) && !(north || south) {
			k = float32(math.Abs(float64((x1 - x0) / sb.W)))
		} else if (north || south) && !(west || east) {
			k = float32(math.Abs(float64((y1 - y0) / sb.H)))
		}
		w, h := sb.W*k, sb.H*k
		if west {
			x0 = x1 - w
		} else {
			x1 = x0 + w
		}
		if north {
			y0 = y1 - h
		} else {
			y1 = y0 + h
		}
	}
	r := vector.RectFromPoints(vector.Pt{X: x0, Y: y0}, vector.Pt{X: x1, Y: y1}).Translate(sb.Min())

	e.overlay.Clear()
	if grid {
		r = snap.GridRect(r, e.opts.GridUnit, uniform)
	} else {
		var guides []snap.Guide
		_, guides = snap.Align(r, e.snapTargets(), e.snapOptions())
		r = snapEdges(r, guides, west, east, north, south)
		e.overlay.Guides = guides
	}
	if r.W < 0.5 && r.H < 0.5 {
		return
	}
	for id, orig := range e.drag.originals {
		target := mapRect(orig.Box(), sb, r)
		_ = e.scene.Update(id, func(x *scene.Element) {
			c, err := orig.Clone()
			if err != nil {
				return
			}
			*x = *c
			x.Resize(target)
		})
	}
	e.drag.changed = r != sb
}

// snapEdges applies guide corrections only to the edges the handle moves.
func snapEdges(r vector.Rect, guides []snap.Guide, west, east, north, south bool) vector.Rect {
	for _, g := range guides {
		role, _, _ := strings.Cut(g.Label, "↔")
		switch {
		case g.Axis == snap.AxisX && west && role == "left":
			r.X += g.Delta
			r.W -= g.Delta
		case g.Axis == snap.AxisX && east && role == "right":
			r.W += g.Delta
		case g.Axis == snap.AxisY && north && role == "top":
			r.Y += g.Delta
			r.H -= g.Delta
		case g.Axis == snap.AxisY && south && role == "bottom":
			r.H += g.Delta
		}
	}
	return r
}

// mapRect maps box from the from-rect onto the to-rect proportionally.
func mapRect(box, from, to vector.Rect) vector.Rect {
	sx, sy := float32(1), float32(1)
	if from.W != 0 {
		sx = to.W / from.W
	}
	if from.H != 0 {
		sy = to.H / from.H
	}
	return vector.R(to.X+(box.X-from.X)*sx, to.Y+(box.Y-from.Y)*sy, box.W*sx, box.H*sy)
}

func (e *Editor) updateRotate(p vector.Pt, snapAngle bool) {
	el := e.scene.Find(e.drag.id)
	if el == nil {
		return
	}
	if e.drag.ep != nil {
		e.drag.ep.Update(el, p, snapAngle)
		e.drag.changed = e.drag.ep.Changed()
		return
	}
	rot := e.drag.startRot + vector.Angle(el.Box().Center(), p) - e.drag.startAngle
	if snapAngle {
		step := float64(endpoint.DefaultSnapStep) * math.Pi / 180
		rot = float32(math.Round(float64(rot)/step) * step)
	}
	_ = e.scene.Update(el.ID, func(x *scene.Element) { x.Geometry.Rotation = rot })
	e.drag.changed = rot != e.drag.startRot
}

func (e *Editor) finishMarquee(p vector.Pt) {
	r := vector.RectFromPoints(e.drag.start, p)
	if !e.drag.moved {
		return
	}
	for _, el := range e.scene.Intersecting(r) {
		if !e.isSelected(el.ID) {
			e.selection = append(e.selection, el.ID)
		}
	}
}

// inspect fills the distance overlay for the selection without a drag.
func (e *Editor) inspect() {
	sel := e.selectedElements()
	e.overlay.Clear()
	if len(sel) == 0 {
		return
	}
	e.overlay.Distances = snap.Distances(unionBounds(sel), e.snapTargets())
}
