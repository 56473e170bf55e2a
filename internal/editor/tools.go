/*
 * Copyright (c) 2025 by Alexander Drost, Oldenburg, Germany.
 * This file is licensed to you under the Apache License, Version 2.0 (the "License"); you may not use this file except in compliance with the License.  You may obtain a copy of the License at
 *   http://www.apache.org/licenses/LICENSE-2.0
 * Unless required by applicable law or agreed to in writing, software distributed under the License is distributed on an
 * "AS IS" BASIS, WITHOUT WARRANTIES OR CONDITIONS OF ANY KIND, either express or implied.  See the License for the specific language governing permissions and limitations under the License.
 */

package editor

import "garmentsketch/internal/scene"

// Tool is the active drawing tool.
type Tool string

const (
	ToolSelect    Tool = "select"
	ToolText      Tool = "text"
	ToolRectangle Tool = "rectangle"
	ToolEllipse   Tool = "ellipse"
	ToolTriangle  Tool = "triangle"
	ToolLine      Tool = "line"
	ToolArrow     Tool = "arrow"
	ToolFreehand  Tool = "freehand"
	ToolPen       Tool = "pen"
)

// Sticky tools stay active after a commit; the others revert to select.
func (t Tool) Sticky() bool { return t == ToolSelect || t == ToolFreehand || t == ToolPen }

// shapeKind maps the press-drag-release tools to the kind they create.
func (t Tool) shapeKind() (scene.Kind, bool) {
	switch t {
	case ToolRectangle:
		return scene.KindRectangle, true
	case ToolEllipse:
		return scene.KindEllipse, true
	case ToolTriangle:
		return scene.KindTriangle, true
	case ToolLine:
		return scene.KindLine, true
	case ToolArrow:
		return scene.KindArrow, true
	}
	return "", false
}

// toolKeys are the single-letter shortcuts.
var toolKeys = map[string]Tool{
	"v": ToolSelect,
	"t": ToolText,
	"r": ToolRectangle,
	"o": ToolEllipse,
	"y": ToolTriangle,
	"l": ToolLine,
	"a": ToolArrow,
	"f": ToolFreehand,
	"p": ToolPen,
}

// Gesture is the pointer state machine position.
type Gesture uint8

const (
	Idle Gesture = iota
	Drawing
	Freehand
	Moving
	Scaling
	Rotating
	Marquee
	DraggingEndpoint
	BuildingPen
	Panning
	Pinching
	TextTap
)

var gestureNames = [...]string{
	"idle", "drawing", "freehand", "moving", "scaling", "rotating", "marquee",
	"dragging-endpoint", "building-pen-path", "panning", "pinching", "text-tap",
}

func (g Gesture) String() string {
	if int(g) < len(gestureNames) {
		return gestureNames[g]
	}
	return "unknown"
}

// Button identifies the pointer button.
type Button uint8

const (
	ButtonPrimary Button = iota
	ButtonMiddle
	ButtonSecondary
)

// PointerEvent carries a screen-space position and held modifiers.
// Shift constrains (45° lines, square boxes, 15° endpoint/rotate steps) and toggles selection,
// Alt sets asymmetric pen handles, Grid snaps to the grid.
type PointerEvent struct {
	Pos    ScreenPt
	Button Button
	Shift  bool
	Alt    bool
	Grid   bool
}

// KeyEvent is a key press. Key is a letter ("v"), "Space", "Alt", "Enter", "Escape",
// "Delete", "Backspace" or an arrow ("ArrowLeft"...). Mod is Ctrl or Cmd.
type KeyEvent struct {
	Key   string
	Shift bool
	Alt   bool
	Mod   bool
}
