/*
 * Copyright (c) 2025 by Alexander Drost, Oldenburg, Germany.
 * This file is licensed to you under the Apache License, Version 2.0 (the "License"); you may not use this file except in compliance with the License.  You may obtain a copy of the License at
 *   http://www.apache.org/licenses/LICENSE-2.0
 * Unless required by applicable law or agreed to in writing, software distributed under the License is distributed on an
 * "AS IS" BASIS, WITHOUT WARRANTIES OR CONDITIONS OF ANY KIND, either express or implied.  See the License for the specific language governing permissions and limitations under the License.
 */

package vector

import (
	"fmt"
	"strconv"
	"strings"
)

// Styles and paint definitions.

type Color struct {
	R uint8 `json:"r"`
	G uint8 `json:"g"`
	B uint8 `json:"b"`
	A uint8 `json:"a"`
}

var (
	Black       = Color{0, 0, 0, 255}
	White       = Color{255, 255, 255, 255}
	Transparent = Color{0, 0, 0, 0}
)

// Hex renders the color as #rrggbb (alpha is reported separately by Opacity).
func (c Color) Hex() string { return fmt.Sprintf("#%02x%02x%02x", c.R, c.G, c.B) }

// Opacity returns alpha in [0,1].
func (c Color) Opacity() float32 { return float32(c.A) / 255 }

// ParseHex accepts #rgb, #rrggbb and #rrggbbaa.
func ParseHex(s string) (Color, error) {
	h := strings.TrimPrefix(strings.TrimSpace(s), "#")
	if len(h) == 3 {
		h = string([]byte{h[0], h[0], h[1], h[1], h[2], h[2]})
	}
	if len(h) == 6 {
		h += "ff"
	}
	if len(h) != 8 {
		return Color{}, fmt.Errorf("parse color %q: bad length", s)
	}
	v, err := strconv.ParseUint(h, 16, 32)
	if err != nil {
		return Color{}, fmt.Errorf("parse color %q: %w", s, err)
	}
	return Color{R: uint8(v >> 24), G: uint8(v >> 16), B: uint8(v >> 8), A: uint8(v)}, nil
}

type FillRule uint8

const (
	NonZero FillRule = iota
	EvenOdd
)

type Fill struct {
	Color   Color    `json:"color"`
	Rule    FillRule `json:"rule,omitempty"`
	Enabled bool     `json:"enabled"`
}

type LineCap uint8

const (
	CapButt LineCap = iota
	CapRound
	CapSquare
)

func (c LineCap) String() string {
	switch c {
	case CapRound:
		return "round"
	case CapSquare:
		return "square"
	default:
		return "butt"
	}
}

type LineJoin uint8

const (
	JoinMiter LineJoin = iota
	JoinRound
	JoinBevel
)

func (j LineJoin) String() string {
	switch j {
	case JoinRound:
		return "round"
	case JoinBevel:
		return "bevel"
	default:
		return "miter"
	}
}

type Stroke struct {
	Color    Color    `json:"color"`
	Width    float32  `json:"width"`
	Cap      LineCap  `json:"cap,omitempty"`
	Join     LineJoin `json:"join,omitempty"`
	MiterLim float32  `json:"miterLimit,omitempty"`
	Enabled  bool     `json:"enabled"`
}

// Style is the paint applied to a drawable element.
type Style struct {
	Fill         Fill    `json:"fill"`
	Stroke       Stroke  `json:"stroke"`
	CornerRadius float32 `json:"cornerRadius,omitempty"`
}

// DefaultShapeStyle is used for newly drawn closed shapes.
func DefaultShapeStyle() Style {
	return Style{
		Fill:   Fill{Color: Color{230, 230, 230, 255}, Enabled: true},
		Stroke: Stroke{Color: Black, Width: 2, Join: JoinMiter, MiterLim: 4, Enabled: true},
	}
}

// DefaultLineStyle is used for lines, arrows and freehand strokes.
func DefaultLineStyle() Style {
	return Style{Stroke: Stroke{Color: Black, Width: 2, Cap: CapRound, Join: JoinRound, Enabled: true}}
}
