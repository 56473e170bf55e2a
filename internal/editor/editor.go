/*
 * Copyright (c) 2025 by Alexander Drost, Oldenburg, Germany.
 * This file is licensed to you under the Apache License, Version 2.0 (the "License"); you may not use this file except in compliance with the License.  You may obtain a copy of the License at
 *   http://www.apache.org/licenses/LICENSE-2.0
 * Unless required by applicable law or agreed to in writing, software distributed under the License is distributed on an
 * "AS IS" BASIS, WITHOUT WARRANTIES OR CONDITIONS OF ANY KIND, either express or implied.  See the License for the specific language governing permissions and limitations under the License.
 */

// Package editor is the tool controller: it turns pointer, keyboard and command input into
// scene mutations, keeps the selection and transient overlays, and pushes one history
// snapshot per committed action. An Editor is not safe for concurrent use.
package editor

import (
	"errors"
	"log/slog"
	"time"

	"garmentsketch/internal/capability"
	"garmentsketch/internal/clipboard"
	"garmentsketch/internal/config"
	applog "garmentsketch/internal/log"
	"garmentsketch/internal/pen"
	"garmentsketch/internal/scene"
	"garmentsketch/internal/snap"
	"garmentsketch/internal/textlayout"
	"garmentsketch/internal/undo"
	"garmentsketch/internal/vector"
	"garmentsketch/internal/viewport"
)

// ScreenPt is a point in screen pixels; scene points use vector.Pt directly.
type ScreenPt = vector.Pt

var ErrNothingSelected = errors.New("editor: nothing selected")

// Options are the editor tunables. Zero values pick the defaults.
type Options struct {
	HistoryDepth    int
	HistoryMaxBytes int
	SnapTolerance   float32 // screen px
	GridUnit        float32 // scene units
	PasteOffset     float32
	MinZoom         float32
	MaxZoom         float32
	Pen             pen.Options
	DragThreshold   float32 // screen px
	TapThreshold    float32 // screen px
	HandleRadius    float32 // screen px
	RotateOffset    float32 // screen px above the box
	Canvas          vector.Size
	Screen          vector.Size
	FontSize        float32
	Placeholder     string
	Fonts           textlayout.Provider
	Logger          *slog.Logger
}

// OptionsFromConfig maps the persisted editor settings.
func OptionsFromConfig(c config.EditorConfig) Options {
	return Options{
		HistoryDepth:    c.HistoryDepth,
		HistoryMaxBytes: c.HistoryMaxBytes,
		SnapTolerance:   c.SnapTolerancePx,
		GridUnit:        c.GridUnit,
		PasteOffset:     c.PasteOffset,
		MinZoom:         c.MinZoom,
		MaxZoom:         c.MaxZoom,
		Pen:             pen.Options{HitRadius: c.PenHitRadius, CloseRadius: c.PenCloseRadius, DragThreshold: c.DragThreshold},
		DragThreshold:   c.DragThreshold,
		TapThreshold:    c.TapThreshold,
		Canvas:          vector.Size{W: c.CanvasWidth, H: c.CanvasHeight},
	}
}

func (o *Options) defaults() {
	def := func(v *float32, d float32) {
		if *v <= 0 {
			*v = d
		}
	}
	def(&o.SnapTolerance, 6)
	def(&o.GridUnit, 10)
	def(&o.DragThreshold, 4)
	def(&o.TapThreshold, viewport.DefaultTapThreshold)
	def(&o.HandleRadius, 8)
	def(&o.RotateOffset, 24)
	def(&o.Canvas.W, 800)
	def(&o.Canvas.H, 600)
	def(&o.FontSize, 16)
	if o.Screen.W <= 0 || o.Screen.H <= 0 {
		o.Screen = o.Canvas
	}
	if o.Placeholder == "" {
		o.Placeholder = "Text"
	}
	if o.Fonts == nil {
		o.Fonts = textlayout.Default()
	}
	if o.Logger == nil {
		o.Logger = applog.WithComponent("editor")
	}
}

// Editor owns one scene and everything needed to edit it.
type Editor struct {
	opts    Options
	log     *slog.Logger
	scene   *scene.Scene
	history *undo.History
	clip    *clipboard.Manager
	caps    *capability.Registry
	view    *viewport.Viewport
	pen     *pen.Builder

	tool      Tool
	gesture   Gesture
	selection []string
	expanded  map[string]bool
	overlay   snap.Overlay
	marquee   *vector.Rect

	editing    string // id of the text element in edit mode
	textAllSel bool   // edit mode opened with the content pre-selected
	fieldFocus bool   // host text input has focus
	spaceHeld  bool
	altHeld    bool
	drag       dragState
}

// New returns an editor over an empty scene with a single baseline history entry.
func New(opts Options) *Editor {
	opts.defaults()
	e := &Editor{
		opts:     opts,
		log:      opts.Logger,
		scene:    scene.New(),
		history:  undo.NewHistory(undo.Config{MaxEntries: opts.HistoryDepth, MaxBytes: opts.HistoryMaxBytes}),
		clip:     clipboard.New(opts.PasteOffset),
		caps:     capability.NewRegistry(),
		view:     viewport.New(opts.Screen),
		pen:      pen.NewBuilder(opts.Pen),
		tool:     ToolSelect,
		expanded: map[string]bool{},
	}
	e.view.SetLimits(opts.MinZoom, opts.MaxZoom, opts.TapThreshold)
	e.resetHistory("new document")
	return e
}

func (e *Editor) Scene() *scene.Scene                { return e.scene }
func (e *Editor) History() *undo.History             { return e.history }
func (e *Editor) Viewport() *viewport.Viewport       { return e.view }
func (e *Editor) Capabilities() *capability.Registry { return e.caps }
func (e *Editor) Tool() Tool                         { return e.tool }
func (e *Editor) Gesture() Gesture                   { return e.gesture }
func (e *Editor) EditingText() string                { return e.editing }
func (e *Editor) TextPreselected() bool              { return e.editing != "" && e.textAllSel }

// Overlay returns the current snap and distance guides. It is never persisted.
func (e *Editor) Overlay() snap.Overlay { return e.overlay }

// Marquee returns the live marquee rectangle in scene coordinates.
func (e *Editor) Marquee() (vector.Rect, bool) {
	if e.marquee == nil {
		return vector.Rect{}, false
	}
	return *e.marquee, true
}

// PenAids exposes the pen draft overlays.
func (e *Editor) PenAids() pen.Aids { return e.pen.Aids(e.view.Scale) }

// PenDraft returns a copy of the anchors placed so far.
func (e *Editor) PenDraft() []vector.Anchor { return e.pen.Anchors() }

// SetTool switches tools, abandoning any gesture or pen draft in progress.
func (e *Editor) SetTool(t Tool) {
	if t == e.tool {
		return
	}
	if e.gesture != Idle || e.pen.Active() {
		e.Cancel()
	}
	e.tool = t
}

// Selection returns the selected ids in selection order.
func (e *Editor) Selection() []string { return append([]string(nil), e.selection...) }

// Select replaces the selection; unknown ids are dropped.
func (e *Editor) Select(ids ...string) {
	e.selection = e.selection[:0]
	seen := map[string]bool{}
	for _, id := range ids {
		if !seen[id] && e.scene.Find(id) != nil {
			e.selection = append(e.selection, id)
			seen[id] = true
		}
	}
}

func (e *Editor) ClearSelection() { e.selection = nil }

func (e *Editor) isSelected(id string) bool {
	for _, s := range e.selection {
		if s == id {
			return true
		}
	}
	return false
}

func (e *Editor) toggle(id string) {
	for i, s := range e.selection {
		if s == id {
			e.selection = append(e.selection[:i], e.selection[i+1:]...)
			return
		}
	}
	e.selection = append(e.selection, id)
}

func (e *Editor) selectedElements() []*scene.Element {
	out := make([]*scene.Element, 0, len(e.selection))
	for _, id := range e.selection {
		if el := e.scene.Find(id); el != nil {
			out = append(out, el)
		}
	}
	return out
}

// pruneSelection drops ids that no longer exist (after undo, redo or restore).
func (e *Editor) pruneSelection() {
	kept := e.selection[:0]
	for _, id := range e.selection {
		if e.scene.Find(id) != nil {
			kept = append(kept, id)
		}
	}
	e.selection = kept
	if e.editing != "" && e.scene.Find(e.editing) == nil {
		e.editing = ""
	}
}

// Layers is the layer panel projection, front-most first.
func (e *Editor) Layers() []scene.LayerItem { return e.scene.Layers(e.expanded) }

// ToggleLayerExpanded flips a group's disclosure state in the layer panel.
func (e *Editor) ToggleLayerExpanded(id string) bool {
	el := e.scene.Find(id)
	if el == nil || el.Kind != scene.KindGroup {
		return false
	}
	e.expanded[id] = !e.expanded[id]
	if !e.expanded[id] {
		delete(e.expanded, id)
	}
	return true
}

// commit pushes the current scene as one history entry.
func (e *Editor) commit(label string) {
	blob, err := e.scene.Snapshot()
	if err != nil {
		e.log.Warn("snapshot failed", slog.String("action", label), slog.Any("err", err))
		return
	}
	e.history.Push(undo.Snapshot{Blob: blob, Label: label, TS: time.Now()})
	bytes, entries, ptr := e.history.Stats()
	e.log.Debug("commit", slog.String("action", label), slog.Int("entries", entries), slog.Int("ptr", ptr), slog.Int("bytes", bytes))
}

func (e *Editor) resetHistory(label string) {
	blob, err := e.scene.Snapshot()
	if err != nil {
		e.log.Warn("baseline snapshot failed", slog.Any("err", err))
		return
	}
	e.history.Reset(undo.Snapshot{Blob: blob, Label: label, TS: time.Now()})
}

// restoreCurrent rolls the scene back to the current history entry.
func (e *Editor) restoreCurrent() {
	cur, ok := e.history.Current()
	if !ok {
		return
	}
	if err := e.scene.Restore(cur.Blob); err != nil {
		e.log.Warn("restore current failed", slog.Any("err", err))
	}
	e.pruneSelection()
}

// resetTransient clears every gesture-scoped field.
func (e *Editor) resetTransient() {
	e.gesture = Idle
	e.drag = dragState{}
	e.overlay.Clear()
	e.marquee = nil
}

// Cancel abandons the current gesture, pen draft and text edit. Uncommitted scene changes are
// discarded by restoring the current history entry.
func (e *Editor) Cancel() {
	wasActive := e.gesture != Idle || e.pen.Active()
	e.pen.Cancel()
	e.view.Cancel()
	e.resetTransient()
	e.editing = ""
	e.textAllSel = false
	if wasActive {
		e.restoreCurrent()
		e.log.Debug("gesture cancelled")
	}
}

// Blur is called when the host window loses focus.
func (e *Editor) Blur() {
	e.spaceHeld, e.altHeld = false, false
	e.Cancel()
}

// toScene converts a screen point into scene coordinates.
func (e *Editor) toScene(p ScreenPt) vector.Pt { return e.view.ToScene(p) }

// px converts a screen distance into scene units at the current zoom.
func (e *Editor) px(v float32) float32 {
	if e.view.Scale <= 0 {
		return v
	}
	return v / e.view.Scale
}
