/*
 * Copyright (c) 2025 by Alexander Drost, Oldenburg, Germany.
 * This file is licensed to you under the Apache License, Version 2.0 (the "License"); you may not use this file except in compliance with the License.  You may obtain a copy of the License at
 *   http://www.apache.org/licenses/LICENSE-2.0
 * Unless required by applicable law or agreed to in writing, software distributed under the License is distributed on an
 * "AS IS" BASIS, WITHOUT WARRANTIES OR CONDITIONS OF ANY KIND, either express or implied.  See the License for the specific language governing permissions and limitations under the License.
 */

// Package snap computes alignment, distance and grid overlays for interactive
// move and scale gestures. It only reads geometry; callers apply the results.
package snap

import (
	"math"

	"garmentsketch/internal/vector"
)

// Axis identifies which coordinate a guide constrains.
type Axis uint8

const (
	AxisX Axis = iota // vertical guide line at x = Position
	AxisY             // horizontal guide line at y = Position
)

// Target is a static reference box (another element or the viewport).
type Target struct {
	ID   string
	Rect vector.Rect
}

// Options controls tolerance and the extra viewport target.
type Options struct {
	// Tolerance is in screen pixels; it is divided by Zoom so the feel does not change with zoom.
	Tolerance float32
	Zoom      float32
	// Viewport, when non-empty, is treated as one more target (scene coordinates).
	Viewport vector.Rect
}

// Guide describes one alignment match for rendering.
// Values are rounded to 3 decimal places for deterministic output.
type Guide struct {
	Axis     Axis
	Position float32
	From     vector.Pt
	To       vector.Pt
	Label    string // moving role ↔ target role, e.g. "left↔right"
	TargetID string
	Delta    float32 // correction applied to the moving box
}

type candidate struct {
	role string
	v    float32
}

func xCandidates(r vector.Rect) [3]candidate {
	return [3]candidate{{"left", r.X}, {"center", r.X + r.W/2}, {"right", r.X + r.W}}
}

func yCandidates(r vector.Rect) [3]candidate {
	return [3]candidate{{"top", r.Y}, {"middle", r.Y + r.H/2}, {"bottom", r.Y + r.H}}
}

// EffectiveTolerance converts a screen-space tolerance to scene units.
func EffectiveTolerance(px, zoom float32) float32 {
	if px <= 0 {
		px = 6
	}
	if zoom <= 0 {
		zoom = 1
	}
	return px / zoom
}

// Align snaps moving against targets independently per axis and returns the
// snapped box and at most one guide per axis. The first closest match wins ties.
func Align(moving vector.Rect, targets []Target, opts Options) (vector.Rect, []Guide) {
	tol := EffectiveTolerance(opts.Tolerance, opts.Zoom)
	all := targets
	if !opts.Viewport.Empty() {
		all = append(append([]Target(nil), targets...), Target{ID: "viewport", Rect: opts.Viewport})
	}

	bestX, bestY := float32(math.MaxFloat32), float32(math.MaxFloat32)
	var gx, gy Guide
	for _, t := range all {
		for _, m := range xCandidates(moving) {
			for _, c := range xCandidates(t.Rect) {
				d := m.v - c.v
				if dist := abs(d); dist <= tol && dist < bestX {
					bestX = dist
					gx = verticalGuide(c.v, moving, t, m.role+"↔"+c.role, d)
				}
			}
		}
		for _, m := range yCandidates(moving) {
			for _, c := range yCandidates(t.Rect) {
				d := m.v - c.v
				if dist := abs(d); dist <= tol && dist < bestY {
					bestY = dist
					gy = horizontalGuide(c.v, moving, t, m.role+"↔"+c.role, d)
				}
			}
		}
	}

	snapped := moving
	var guides []Guide
	if bestX <= tol {
		snapped.X = vector.FloatRound(moving.X-gx.Delta, 3)
		guides = append(guides, gx)
	}
	if bestY <= tol {
		snapped.Y = vector.FloatRound(moving.Y-gy.Delta, 3)
		guides = append(guides, gy)
	}
	return snapped, guides
}

// The guide spans the union of both participants along the other axis.
func verticalGuide(x float32, a vector.Rect, t Target, label string, delta float32) Guide {
	b := t.Rect
	x = vector.FloatRound(x, 3)
	return Guide{
		Axis:     AxisX,
		Position: x,
		From:     vector.Pt{X: x, Y: min(a.Y, b.Y)},
		To:       vector.Pt{X: x, Y: max(a.Bottom(), b.Bottom())},
		Label:    label,
		TargetID: t.ID,
		Delta:    delta,
	}
}

func horizontalGuide(y float32, a vector.Rect, t Target, label string, delta float32) Guide {
	b := t.Rect
	y = vector.FloatRound(y, 3)
	return Guide{
		Axis:     AxisY,
		Position: y,
		From:     vector.Pt{X: min(a.X, b.X), Y: y},
		To:       vector.Pt{X: max(a.Right(), b.Right()), Y: y},
		Label:    label,
		TargetID: t.ID,
		Delta:    delta,
	}
}

func abs(v float32) float32 {
	if v < 0 {
		return -v
	}
	return v
}
