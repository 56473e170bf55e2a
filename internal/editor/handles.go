/*
 * Copyright (c) 2025 by Alexander Drost, Oldenburg, Germany.
 * This file is licensed to you under the Apache License, Version 2.0 (the "License"); you may not use this file except in compliance with the License.  You may obtain a copy of the License at
 *   http://www.apache.org/licenses/LICENSE-2.0
 * Unless required by applicable law or agreed to in writing, software distributed under the License is distributed on an
 * "AS IS" BASIS, WITHOUT WARRANTIES OR CONDITIONS OF ANY KIND, either express or implied.  See the License for the specific language governing permissions and limitations under the License.
 */

package editor

import (
	"garmentsketch/internal/capability"
	"garmentsketch/internal/endpoint"
	"garmentsketch/internal/scene"
	"garmentsketch/internal/vector"
)

// HandleView is one on-canvas handle of the current selection, in scene coordinates.
type HandleView struct {
	ID      string // element id, empty for a multi-selection box
	Control string // resolved control id: box, rotate, endpoints
	Handle  capability.Handle
	At      vector.Pt
}

// handlePriority orders hit-testing: endpoints, then box handles, then rotate.
var handlePriority = map[string]int{"endpoints": 0, "box": 1, "rotate": 2}

// Handles lists the handles for the selection using the capability registry.
// A single element gets its own controls; several resizable elements share one box.
func (e *Editor) Handles() []HandleView {
	sel := e.selectedElements()
	switch {
	case len(sel) == 1 && !sel[0].Locked:
		return e.elementHandles(sel[0])
	case len(sel) > 1:
		for _, el := range sel {
			if el.Locked || !capability.Of(el.Kind).Has(capability.Resizable) {
				return nil
			}
		}
		b := unionBounds(sel)
		return boxHandles("", vector.Translate(b.X, b.Y), b.W, b.H)
	}
	return nil
}

func (e *Editor) elementHandles(el *scene.Element) []HandleView {
	var out []HandleView
	for _, c := range e.caps.Resolve(el.Kind) {
		switch c.ID {
		case "endpoints":
			tail, tip, ok := el.Endpoints()
			if !ok {
				continue
			}
			out = append(out,
				HandleView{ID: el.ID, Control: c.ID, Handle: capability.HandleTail, At: tail},
				HandleView{ID: el.ID, Control: c.ID, Handle: capability.HandleTip, At: tip})
		case "box":
			for _, h := range boxHandles(el.ID, el.Transform(), el.Geometry.W, el.Geometry.H) {
				if containsHandle(c.Handles, h.Handle) {
					out = append(out, h)
				}
			}
		case "rotate":
			if p, ok := e.rotateHandlePos(el); ok {
				out = append(out, HandleView{ID: el.ID, Control: c.ID, Handle: capability.HandleRotate, At: p})
			}
		}
	}
	stableSortHandles(out)
	return out
}

func containsHandle(hs []capability.Handle, h capability.Handle) bool {
	for _, x := range hs {
		if x == h {
			return true
		}
	}
	return false
}

func stableSortHandles(hs []HandleView) {
	for i := 1; i < len(hs); i++ {
		for j := i; j > 0 && handlePriority[hs[j].Control] < handlePriority[hs[j-1].Control]; j-- {
			hs[j], hs[j-1] = hs[j-1], hs[j]
		}
	}
}

// boxHandles places the eight resize handles of a w×h local box mapped by m.
func boxHandles(id string, m vector.Affine2D, w, h float32) []HandleView {
	local := map[capability.Handle]vector.Pt{
		capability.HandleNW: {X: 0, Y: 0},
		capability.HandleN:  {X: w / 2, Y: 0},
		capability.HandleNE: {X: w, Y: 0},
		capability.HandleE:  {X: w, Y: h / 2},
		capability.HandleSE: {X: w, Y: h},
		capability.HandleS:  {X: w / 2, Y: h},
		capability.HandleSW: {X: 0, Y: h},
		capability.HandleW:  {X: 0, Y: h / 2},
	}
	out := make([]HandleView, 0, len(capability.BoxHandles))
	for _, hd := range capability.BoxHandles {
		out = append(out, HandleView{ID: id, Control: "box", Handle: hd, At: m.Apply(local[hd])})
	}
	return out
}

func (e *Editor) rotateHandlePos(el *scene.Element) (vector.Pt, bool) {
	off := e.px(e.opts.RotateOffset)
	if el.Kind.IsLinear() {
		return endpoint.RotateHandlePos(el, off)
	}
	return el.Transform().Apply(vector.Pt{X: el.Geometry.W / 2, Y: -off}), true
}

// hitHandle returns the first handle within the zoom-adjusted radius of p.
func (e *Editor) hitHandle(p vector.Pt) (HandleView, bool) {
	r := e.px(e.opts.HandleRadius)
	for _, h := range e.Handles() {
		if h.At.Dist(p) <= r {
			return h, true
		}
	}
	return HandleView{}, false
}

func unionBounds(els []*scene.Element) vector.Rect {
	var b vector.Rect
	for i, el := range els {
		if i == 0 {
			b = el.Bounds()
			continue
		}
		b = b.Union(el.Bounds())
	}
	return b
}

// handleEdges reports which box edges a handle moves.
func handleEdges(h capability.Handle) (west, east, north, south bool) {
	switch h {
	case capability.HandleNW:
		return true, false, true, false
	case capability.HandleN:
		return false, false, true, false
	case capability.HandleNE:
		return false, true, true, false
	case capability.HandleE:
		return false, true, false, false
	case capability.HandleSE:
		return false, true, false, true
	case capability.HandleS:
		return false, false, false, true
	case capability.HandleSW:
		return true, false, false, true
	case capability.HandleW:
		return true, false, false, false
	}
	return
}
