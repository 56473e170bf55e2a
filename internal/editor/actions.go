/*
 * Copyright (c) 2025 by Alexander Drost, Oldenburg, Germany.
 * This file is licensed to you under the Apache License, Version 2.0 (the "License"); you may not use this file except in compliance with the License.  You may obtain a copy of the License at
 *   http://www.apache.org/licenses/LICENSE-2.0
 * Unless required by applicable law or agreed to in writing, software distributed under the License is distributed on an
 * "AS IS" BASIS, WITHOUT WARRANTIES OR CONDITIONS OF ANY KIND, either express or implied.  See the License for the specific language governing permissions and limitations under the License.
 */

package editor

import (
	"fmt"
	"log/slog"

	"garmentsketch/internal/asset"
	"garmentsketch/internal/boolean"
	"garmentsketch/internal/clipboard"
	"garmentsketch/internal/scene"
	"garmentsketch/internal/textlayout"
	"garmentsketch/internal/undo"
	"garmentsketch/internal/vector"
)

// Copy places the selection on the clipboard and returns how many elements were kept.
func (e *Editor) Copy() int {
	return e.clip.Copy(e.scene.ByZOrder(e.selection))
}

// Paste inserts the clipboard contents, offset by the paste count, and selects them.
func (e *Editor) Paste() []string {
	return e.place(e.clip.Paste(e.scene), "paste")
}

// Duplicate clones the selection in place offset by the paste offset. The clipboard is untouched.
func (e *Editor) Duplicate() []string {
	d := e.opts.PasteOffset
	if d <= 0 {
		d = e.clip.Offset
	}
	return e.place(clipboard.Place(e.scene, e.scene.ByZOrder(e.selection), vector.Pt{X: d, Y: d}), "duplicate")
}

func (e *Editor) place(elems []*scene.Element, label string) []string {
	if len(elems) == 0 {
		return nil
	}
	ids := make([]string, 0, len(elems))
	for _, el := range elems {
		e.scene.Add(el)
		ids = append(ids, el.ID)
	}
	e.Select(ids...)
	e.commit(label)
	return ids
}

// SelectAll selects every unlocked root element.
func (e *Editor) SelectAll() {
	var ids []string
	for _, el := range e.scene.Elements() {
		if !el.Locked {
			ids = append(ids, el.ID)
		}
	}
	e.Select(ids...)
}

// Group wraps the selected root elements into a new group and selects it.
func (e *Editor) Group() (*scene.Element, error) {
	if len(e.selection) < 2 {
		return nil, ErrNothingSelected
	}
	g, err := e.scene.Group(e.selection)
	if err != nil {
		return nil, err
	}
	e.Select(g.ID)
	e.commit("group")
	return g, nil
}

// Ungroup dissolves every selected group and selects the released children.
// Nothing changes unless every selected group can be dissolved.
func (e *Editor) Ungroup() error {
	var groups []*scene.Element
	for _, el := range e.selectedElements() {
		if el.Kind != scene.KindGroup {
			continue
		}
		switch {
		case el.Locked:
			return fmt.Errorf("ungroup %s: %w", el.ID, scene.ErrLocked)
		case e.scene.IndexOf(el.ID) < 0:
			return fmt.Errorf("ungroup %s: %w", el.ID, scene.ErrNotRoot)
		}
		groups = append(groups, el)
	}
	if len(groups) == 0 {
		return ErrNothingSelected
	}
	var released []string
	for _, g := range groups {
		children, err := e.scene.Ungroup(g.ID)
		if err != nil {
			e.restoreCurrent()
			return err
		}
		delete(e.expanded, g.ID)
		for _, c := range children {
			released = append(released, c.ID)
		}
	}
	e.Select(released...)
	e.commit("ungroup")
	return nil
}

// Delete removes the unlocked selected elements and returns how many were removed.
func (e *Editor) Delete() int {
	var ids []string
	for _, el := range e.selectedElements() {
		if !el.Locked {
			ids = append(ids, el.ID)
		}
	}
	if len(ids) == 0 {
		return 0
	}
	removed := e.scene.Remove(ids...)
	e.pruneSelection()
	e.commit("delete")
	return len(removed)
}

// Nudge moves the movable selection by d scene units.
func (e *Editor) Nudge(d vector.Pt) int {
	els := e.movable()
	for _, el := range els {
		_ = e.scene.Update(el.ID, func(x *scene.Element) { x.Move(d) })
	}
	if len(els) > 0 {
		e.commit("nudge")
	}
	return len(els)
}

// Undo steps back one history entry. It reports false at the oldest entry.
func (e *Editor) Undo() (bool, error) {
	e.abandon()
	ok, err := e.history.Undo(e.apply)
	if err != nil {
		e.log.Warn("undo failed", slog.Any("err", err))
		return false, err
	}
	if ok {
		e.pruneSelection()
		e.log.Debug("undo", slog.Int("ptr", e.history.Pointer()))
	}
	return ok, nil
}

// Redo re-applies the next history entry. It reports false at the newest entry.
func (e *Editor) Redo() (bool, error) {
	e.abandon()
	ok, err := e.history.Redo(e.apply)
	if err != nil {
		e.log.Warn("redo failed", slog.Any("err", err))
		return false, err
	}
	if ok {
		e.pruneSelection()
		e.log.Debug("redo", slog.Int("ptr", e.history.Pointer()))
	}
	return ok, nil
}

func (e *Editor) apply(s undo.Snapshot) error { return e.scene.Restore(s.Blob) }

// abandon drops any in-flight gesture before a history jump.
func (e *Editor) abandon() {
	if e.gesture != Idle || e.pen.Active() {
		e.Cancel()
	}
}

// Boolean combines the selected shapes. Failures leave the scene and history untouched.
func (e *Editor) Boolean(op boolean.Op) (*scene.Element, error) {
	out, err := boolean.Apply(e.scene, e.selection, op)
	if err != nil {
		e.log.Warn("boolean failed", slog.String("op", string(op)), slog.Any("err", err))
		return nil, err
	}
	e.Select(out.ID)
	e.commit("boolean " + string(op))
	e.log.Debug("boolean", slog.String("op", string(op)), slog.String("id", out.ID))
	return out, nil
}

func (e *Editor) BringForward(id string) error {
	return e.mutate(id, "bring forward", e.scene.BringForward)
}

func (e *Editor) SendBackward(id string) error {
	return e.mutate(id, "send backward", e.scene.SendBackward)
}

func (e *Editor) BringToFront(id string) error {
	return e.mutate(id, "bring to front", e.scene.BringToFront)
}

func (e *Editor) SendToBack(id string) error {
	return e.mutate(id, "send to back", e.scene.SendToBack)
}

func (e *Editor) SetVisible(id string, v bool) error {
	return e.mutate(id, "visibility", func(id string) error { return e.scene.SetVisible(id, v) })
}

func (e *Editor) SetLocked(id string, v bool) error {
	return e.mutate(id, "lock", func(id string) error { return e.scene.SetLocked(id, v) })
}

func (e *Editor) Rename(id, name string) error {
	return e.mutate(id, "rename", func(id string) error { return e.scene.Rename(id, name) })
}

// SetProperty applies fn to an unlocked element as one committed action.
func (e *Editor) SetProperty(id, label string, fn func(el *scene.Element)) error {
	if el := e.scene.Find(id); el != nil && el.Locked {
		return fmt.Errorf("%s %s: %w", label, id, scene.ErrLocked)
	}
	return e.mutate(id, label, func(id string) error { return e.scene.Update(id, fn) })
}

func (e *Editor) mutate(id, label string, fn func(string) error) error {
	if err := fn(id); err != nil {
		return err
	}
	e.pruneSelection()
	e.commit(label)
	return nil
}

// createText drops a placeholder text element at p and opens it for editing.
func (e *Editor) createText(p vector.Pt) {
	m := textlayout.Measure(e.opts.Fonts, e.opts.Placeholder, e.opts.FontSize)
	el := e.scene.NewElement(scene.KindText, vector.R(p.X, p.Y, m.Width, m.Height))
	el.Text = e.opts.Placeholder
	el.FontSize = e.opts.FontSize
	e.scene.Add(el)
	e.Select(el.ID)
	e.commit("add text")
	e.editing = el.ID
	e.textAllSel = true
	e.afterCommitTool()
}

// EditText replaces the content of the text element in edit mode and resizes it to fit.
func (e *Editor) EditText(content string) error {
	if e.editing == "" {
		return ErrNothingSelected
	}
	id := e.editing
	el := e.scene.Find(id)
	if el == nil {
		e.EndTextEdit()
		return fmt.Errorf("edit text %s: %w", id, scene.ErrNotFound)
	}
	if el.Text == content {
		e.textAllSel = false
		return nil
	}
	size := el.FontSize
	if size <= 0 {
		size = e.opts.FontSize
	}
	m := textlayout.Measure(e.opts.Fonts, content, size)
	err := e.scene.Update(el.ID, func(x *scene.Element) {
		x.Text = content
		x.Geometry.W, x.Geometry.H = m.Width, m.Height
	})
	if err != nil {
		return err
	}
	e.textAllSel = false
	e.commit("edit text")
	return nil
}

// BeginTextEdit opens an existing text element for editing.
func (e *Editor) BeginTextEdit(id string) error {
	el := e.scene.Find(id)
	if el == nil {
		return fmt.Errorf("edit text %s: %w", id, scene.ErrNotFound)
	}
	if el.Kind != scene.KindText || el.Locked {
		return fmt.Errorf("edit text %s: %w", id, scene.ErrLocked)
	}
	e.abandon()
	e.Select(id)
	e.editing = id
	e.textAllSel = false
	return nil
}

// EndTextEdit leaves edit mode; content was already committed by EditText.
func (e *Editor) EndTextEdit() {
	e.editing = ""
	e.textAllSel = false
}

// ExportSnapshot serializes the scene for the persistence collaborator.
func (e *Editor) ExportSnapshot() ([]byte, error) { return e.scene.Snapshot() }

// ImportSnapshot validates and loads data, replacing the scene and resetting history to one entry.
func (e *Editor) ImportSnapshot(data []byte) error {
	if err := scene.Validate(data); err != nil {
		return err
	}
	e.pen.Cancel()
	e.view.Cancel()
	if err := e.scene.Load(data); err != nil {
		return err
	}
	e.resetTransient()
	e.ClearSelection()
	e.EndTextEdit()
	e.expanded = map[string]bool{}
	e.resetHistory("import")
	e.log.Debug("imported", slog.String("doc", e.scene.DocID), slog.Int("elements", e.scene.Len()))
	return nil
}

// IngestAsset decodes an uploaded file into the scene and selects the new element.
// The returned asset carries the raw bytes for the upload collaborator.
func (e *Editor) IngestAsset(name string, data []byte) (*asset.Asset, error) {
	el, a, err := asset.Ingest(e.scene, name, data, e.opts.Canvas)
	if err != nil {
		e.log.Warn("ingest failed", slog.String("name", name), slog.Any("err", err))
		return nil, err
	}
	e.abandon()
	e.scene.Add(el)
	e.Select(el.ID)
	e.commit("ingest " + a.Kind.String())
	return a, nil
}
