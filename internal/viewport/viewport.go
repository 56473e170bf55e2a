/*
 * Copyright (c) 2025 by Alexander Drost, Oldenburg, Germany.
 * This file is licensed to you under the Apache License, Version 2.0 (the "License"); you may not use this file except in compliance with the License.  You may obtain a copy of the License at
 *   http://www.apache.org/licenses/LICENSE-2.0
 * Unless required by applicable law or agreed to in writing, software distributed under the License is distributed on an
 * "AS IS" BASIS, WITHOUT WARRANTIES OR CONDITIONS OF ANY KIND, either express or implied.  See the License for the specific language governing permissions and limitations under the License.
 */

// Package viewport maps between screen and scene coordinates and handles zoom,
// pan and pinch gestures.
package viewport

import "garmentsketch/internal/vector"

const (
	DefaultMinScale     = 0.1
	DefaultMaxScale     = 5.0
	DefaultTapThreshold = 5
	// WheelStep is the zoom factor applied per wheel notch.
	WheelStep = 1.1
)

// Gesture is the viewport's own gesture state.
type Gesture uint8

const (
	Idle Gesture = iota
	Panning
	Pinching
)

type pinchState struct {
	initialDist float32
	startScale  float32
	prevMid     vector.Pt
}

// Viewport is a scale + translate transform: screen = scene*Scale + Offset.
type Viewport struct {
	Scale    float32
	Offset   vector.Pt
	MinScale float32
	MaxScale float32
	// Size is the screen size in pixels, used for visible bounds.
	Size vector.Size

	gesture   Gesture
	panLast   vector.Pt
	pinch     pinchState
	tapStart  vector.Pt
	tapMoved  bool
	tapThresh float32
}

func New(size vector.Size) *Viewport {
	return &Viewport{Scale: 1, MinScale: DefaultMinScale, MaxScale: DefaultMaxScale, Size: size, tapThresh: DefaultTapThreshold}
}

// SetLimits overrides the scale range and tap threshold; zero keeps the defaults.
func (v *Viewport) SetLimits(minScale, maxScale, tapThreshold float32) {
	if minScale > 0 {
		v.MinScale = minScale
	}
	if maxScale > 0 {
		v.MaxScale = maxScale
	}
	if tapThreshold > 0 {
		v.tapThresh = tapThreshold
	}
	v.Scale = v.clamp(v.Scale)
}

func (v *Viewport) clamp(s float32) float32 { return max(v.MinScale, min(v.MaxScale, s)) }

// Matrix returns the scene→screen transform.
func (v *Viewport) Matrix() vector.Affine2D {
	return vector.Translate(v.Offset.X, v.Offset.Y).Mul(vector.Scale(v.Scale, v.Scale))
}

func (v *Viewport) ToScene(p vector.Pt) vector.Pt {
	return vector.Pt{X: (p.X - v.Offset.X) / v.Scale, Y: (p.Y - v.Offset.Y) / v.Scale}
}

func (v *Viewport) ToScreen(p vector.Pt) vector.Pt {
	return vector.Pt{X: p.X*v.Scale + v.Offset.X, Y: p.Y*v.Scale + v.Offset.Y}
}

// VisibleBounds returns the scene rectangle currently on screen.
func (v *Viewport) VisibleBounds() vector.Rect {
	return vector.RectFromPoints(v.ToScene(vector.Pt{}), v.ToScene(vector.Pt{X: v.Size.W, Y: v.Size.H}))
}

// ZoomAt sets the scale (clamped) keeping the scene point under screen anchor fixed.
func (v *Viewport) ZoomAt(scale float32, anchor vector.Pt) {
	at := v.ToScene(anchor)
	v.Scale = v.clamp(scale)
	v.Offset = vector.Pt{X: anchor.X - at.X*v.Scale, Y: anchor.Y - at.Y*v.Scale}
}

// ZoomBy multiplies the scale around anchor.
func (v *Viewport) ZoomBy(factor float32, anchor vector.Pt) { v.ZoomAt(v.Scale*factor, anchor) }

// Wheel zooms one step in (negative delta) or out (positive delta) around anchor.
func (v *Viewport) Wheel(deltaY float32, anchor vector.Pt) {
	switch {
	case deltaY < 0:
		v.ZoomBy(WheelStep, anchor)
	case deltaY > 0:
		v.ZoomBy(1/WheelStep, anchor)
	}
}

// Pan moves the view by a raw screen delta.
func (v *Viewport) Pan(d vector.Pt) { v.Offset = v.Offset.Add(d) }

// Reset restores scale 1 with no offset.
func (v *Viewport) Reset() {
	v.Scale, v.Offset = 1, vector.Pt{}
	v.Cancel()
}

func (v *Viewport) Gesture() Gesture { return v.gesture }

// BeginPan starts a pan gesture at screen point p.
func (v *Viewport) BeginPan(p vector.Pt) {
	v.gesture = Panning
	v.panLast = p
}

// PanTo continues a pan gesture; it is a no-op outside of one.
func (v *Viewport) PanTo(p vector.Pt) {
	if v.gesture != Panning {
		return
	}
	v.Pan(p.Sub(v.panLast))
	v.panLast = p
}

// BeginPinch starts a two-pointer gesture.
func (v *Viewport) BeginPinch(a, b vector.Pt) {
	d := a.Dist(b)
	if d == 0 {
		d = 1
	}
	v.gesture = Pinching
	v.pinch = pinchState{initialDist: d, startScale: v.Scale, prevMid: a.Lerp(b, 0.5)}
}

// PinchTo scales by current/initial distance times the start scale, anchored at the
// midpoint, and pans by the midpoint delta since the previous frame.
func (v *Viewport) PinchTo(a, b vector.Pt) {
	if v.gesture != Pinching {
		return
	}
	mid := a.Lerp(b, 0.5)
	v.Pan(mid.Sub(v.pinch.prevMid))
	v.ZoomAt(v.pinch.startScale*a.Dist(b)/v.pinch.initialDist, mid)
	v.pinch.prevMid = mid
}

// End finishes the pan or pinch gesture.
func (v *Viewport) End() { v.gesture = Idle }

// Cancel resets all gesture state (pointer cancel, window blur).
func (v *Viewport) Cancel() {
	v.gesture = Idle
	v.pinch = pinchState{}
	v.panLast = vector.Pt{}
	v.tapMoved = false
}

// TapStart records a possible tap at screen point p.
func (v *Viewport) TapStart(p vector.Pt) { v.tapStart, v.tapMoved = p, false }

// TapMove marks the tap as a drag once movement exceeds the threshold.
func (v *Viewport) TapMove(p vector.Pt) {
	if v.tapStart.Dist(p) > v.tapThresh {
		v.tapMoved = true
	}
}

// IsTap reports whether the pointer released at p still counts as a tap.
func (v *Viewport) IsTap(p vector.Pt) bool {
	return !v.tapMoved && v.tapStart.Dist(p) <= v.tapThresh
}
