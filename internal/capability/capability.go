/*
 * Copyright (c) 2025 by Alexander Drost, Oldenburg, Germany.
 * This file is licensed to you under the Apache License, Version 2.0 (the "License"); you may not use this file except in compliance with the License.  You may obtain a copy of the License at
 *   http://www.apache.org/licenses/LICENSE-2.0
 * Unless required by applicable law or agreed to in writing, software distributed under the License is distributed on an
 * "AS IS" BASIS, WITHOUT WARRANTIES OR CONDITIONS OF ANY KIND, either express or implied.  See the License for the specific language governing permissions and limitations under the License.
 */

// Package capability maps element kinds to the interactions they allow and
// resolves the interactive controls attached to a selection outline.
package capability

import "garmentsketch/internal/scene"

// Set is a bitset of capabilities.
type Set uint8

const (
	Movable Set = 1 << iota
	Resizable
	Rotatable
	EndpointEditable
	PathEditable
	TextEditable
)

func (s Set) Has(c Set) bool { return s&c == c }

func (s Set) String() string {
	names := []string{"movable", "resizable", "rotatable", "endpoint-editable", "path-editable", "text-editable"}
	out := ""
	for i, n := range names {
		if s&(1<<i) != 0 {
			if out != "" {
				out += "|"
			}
			out += n
		}
	}
	return out
}

const shape = Movable | Resizable | Rotatable

// Of returns the fixed capability set for kind.
func Of(k scene.Kind) Set {
	switch k {
	case scene.KindLine, scene.KindArrow:
		return EndpointEditable
	case scene.KindFreehand, scene.KindPen:
		return shape | PathEditable
	case scene.KindText:
		return shape | TextEditable
	default:
		return shape
	}
}

// BodyDrag is the set of capabilities that let a body drag translate an element.
// Linear kinds are endpoint-editable only; dragging their body moves both endpoints
// by the same delta, which leaves the segment's shape as is.
const BodyDrag = Movable | EndpointEditable

// CanMove reports whether a body drag may translate elements of kind. It is the only
// place the editor asks this question.
func CanMove(k scene.Kind) bool { return Of(k)&BodyDrag != 0 }
