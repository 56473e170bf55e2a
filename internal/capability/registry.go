/*
 * Copyright (c) 2025 by Alexander Drost, Oldenburg, Germany.
 * This file is licensed to you under the Apache License, Version 2.0 (the "License"); you may not use this file except in compliance with the License.  You may obtain a copy of the License at
 *   http://www.apache.org/licenses/LICENSE-2.0
 * Unless required by applicable law or agreed to in writing, software distributed under the License is distributed on an
 * "AS IS" BASIS, WITHOUT WARRANTIES OR CONDITIONS OF ANY KIND, either express or implied.  See the License for the specific language governing permissions and limitations under the License.
 */

package capability

import "garmentsketch/internal/scene"

// Handle names an interactive point on a selection outline.
type Handle string

const (
	HandleNW     Handle = "nw"
	HandleN      Handle = "n"
	HandleNE     Handle = "ne"
	HandleE      Handle = "e"
	HandleSE     Handle = "se"
	HandleS      Handle = "s"
	HandleSW     Handle = "sw"
	HandleW      Handle = "w"
	HandleRotate Handle = "rotate"
	HandleTail   Handle = "tail"
	HandleTip    Handle = "tip"
	HandleAnchor Handle = "anchor"
	HandleCaret  Handle = "caret"
)

// BoxHandles are the eight resize handles in clockwise order from top-left.
var BoxHandles = []Handle{HandleNW, HandleN, HandleNE, HandleE, HandleSE, HandleS, HandleSW, HandleW}

// Control is one resolved control group for a selection.
type Control struct {
	ID      string
	Handles []Handle
}

// Factory yields a control when it applies to the kind and capabilities.
type Factory struct {
	ID      string
	Applies func(kind scene.Kind, caps Set) bool
	Handles func(kind scene.Kind) []Handle
}

// Registry holds ordered control factories.
type Registry struct {
	factories []Factory
}

// NewRegistry returns a registry with the built-in box, rotate, endpoints, path and
// text factories.
func NewRegistry() *Registry {
	r := &Registry{}
	r.Register(Factory{
		ID:      "box",
		Applies: func(_ scene.Kind, c Set) bool { return c.Has(Resizable) },
		Handles: func(scene.Kind) []Handle { return append([]Handle(nil), BoxHandles...) },
	})
	r.Register(Factory{
		ID:      "rotate",
		Applies: func(_ scene.Kind, c Set) bool { return c.Has(Rotatable) || c.Has(EndpointEditable) },
		Handles: func(scene.Kind) []Handle { return []Handle{HandleRotate} },
	})
	r.Register(Factory{
		ID:      "endpoints",
		Applies: func(_ scene.Kind, c Set) bool { return c.Has(EndpointEditable) },
		Handles: func(scene.Kind) []Handle { return []Handle{HandleTail, HandleTip} },
	})
	r.Register(Factory{
		ID:      "path",
		Applies: func(_ scene.Kind, c Set) bool { return c.Has(PathEditable) },
		Handles: func(scene.Kind) []Handle { return []Handle{HandleAnchor} },
	})
	r.Register(Factory{
		ID:      "text",
		Applies: func(_ scene.Kind, c Set) bool { return c.Has(TextEditable) },
		Handles: func(scene.Kind) []Handle { return []Handle{HandleCaret} },
	})
	return r
}

// Register appends f; later factories resolve after earlier ones.
func (r *Registry) Register(f Factory) { r.factories = append(r.factories, f) }

// Resolve lists the controls for kind in registration order.
func (r *Registry) Resolve(kind scene.Kind) []Control {
	caps := Of(kind)
	var out []Control
	for _, f := range r.factories {
		if f.Applies == nil || !f.Applies(kind, caps) {
			continue
		}
		var hs []Handle
		if f.Handles != nil {
			hs = f.Handles(kind)
		}
		out = append(out, Control{ID: f.ID, Handles: hs})
	}
	return out
}

// Has reports whether kind resolves a control with the given id.
func (r *Registry) Has(kind scene.Kind, id string) bool {
	for _, c := range r.Resolve(kind) {
		if c.ID == id {
			return true
		}
	}
	return false
}
