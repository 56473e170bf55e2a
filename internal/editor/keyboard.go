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
	"strings"

	"garmentsketch/internal/vector"
)

// Key names used by KeyDown besides single letters.
const (
	KeyEscape    = "Escape"
	KeyEnter     = "Enter"
	KeyDelete    = "Delete"
	KeyBackspace = "Backspace"
	KeySpace     = "Space"
	KeyAlt       = "Alt"
	KeyLeft      = "ArrowLeft"
	KeyRight     = "ArrowRight"
	KeyUp        = "ArrowUp"
	KeyDown      = "ArrowDown"
)

var nudges = map[string]vector.Pt{
	KeyLeft:  {X: -1},
	KeyRight: {X: 1},
	KeyUp:    {Y: -1},
	KeyDown:  {Y: 1},
}

// SetTextFocus is called by the host when one of its text inputs gains or loses focus.
func (e *Editor) SetTextFocus(focused bool) { e.fieldFocus = focused }

// KeyDown dispatches a key press. It reports whether the key was handled.
func (e *Editor) KeyDown(ev KeyEvent) bool {
	if ev.Key == KeyEscape {
		e.escape()
		return true
	}
	if e.fieldFocus || e.editing != "" {
		return false
	}
	if ev.Mod {
		return e.chord(ev)
	}
	switch ev.Key {
	case KeySpace:
		e.spaceHeld = true
		return true
	case KeyAlt:
		e.altHeld = true
		if e.gesture == Idle {
			e.inspect()
		}
		return true
	case KeyEnter:
		if e.pen.Active() {
			if !e.finishPen() {
				e.Cancel()
			}
			return true
		}
		return false
	case KeyBackspace:
		if e.pen.Active() {
			e.pen.Backspace()
			if !e.pen.Active() {
				e.resetTransient()
			}
			return true
		}
		return e.Delete() > 0
	case KeyDelete:
		return e.Delete() > 0
	}
	if d, ok := nudges[ev.Key]; ok {
		return e.Nudge(d) > 0
	}
	if t, ok := toolKeys[strings.ToLower(ev.Key)]; ok && !ev.Alt {
		e.SetTool(t)
		return true
	}
	return false
}

// KeyUp releases held modifiers.
func (e *Editor) KeyUp(ev KeyEvent) {
	switch ev.Key {
	case KeySpace:
		e.spaceHeld = false
	case KeyAlt:
		e.altHeld = false
		if e.gesture == Idle {
			e.overlay.Clear()
		}
	}
}

func (e *Editor) chord(ev KeyEvent) bool {
	var err error
	switch strings.ToLower(ev.Key) {
	case "c":
		e.Copy()
	case "v":
		e.Paste()
	case "d":
		e.Duplicate()
	case "g":
		if ev.Shift {
			err = e.Ungroup()
		} else {
			_, err = e.Group()
		}
	case "z":
		if ev.Shift {
			_, err = e.Redo()
		} else {
			_, err = e.Undo()
		}
	case "y":
		_, err = e.Redo()
	case "a":
		e.SelectAll()
	default:
		return false
	}
	if err != nil {
		e.log.Debug("shortcut failed", slog.String("key", ev.Key), slog.Any("err", err))
	}
	return true
}

// escape unwinds one level: pen draft, gesture, text edit, then the selection.
func (e *Editor) escape() {
	switch {
	case e.pen.Active(), e.gesture != Idle:
		e.Cancel()
	case e.editing != "":
		e.EndTextEdit()
	default:
		e.ClearSelection()
	}
}
