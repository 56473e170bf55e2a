/*
 * Copyright (c) 2025 by Alexander Drost, Oldenburg, Germany.
 * This file is licensed to you under the Apache License, Version 2.0 (the "License"); you may not use this file except in compliance with the License.  You may obtain a copy of the License at
 *   http://www.apache.org/licenses/LICENSE-2.0
 * Unless required by applicable law or agreed to in writing, software distributed under the License is distributed on an
 * "AS IS" BASIS, WITHOUT WARRANTIES OR CONDITIONS OF ANY KIND, either express or implied.  See the License for the specific language governing permissions and limitations under the License.
 */

// Package boolean combines selected elements into one compound path using
// polygon clipping. Curves are flattened before clipping.
package boolean

import (
	"errors"
	"fmt"
	"math"

	polyclip "github.com/ctessum/polyclip-go"

	"garmentsketch/internal/scene"
	"garmentsketch/internal/vector"
)

var (
	ErrTooFewShapes = errors.New("boolean: fewer than two convertible shapes")
	ErrEmptyResult  = errors.New("boolean: empty result")
	ErrGeometry     = errors.New("boolean: geometry library failure")
)

// Op is a boolean operator.
type Op string

const (
	Union         Op = "union"
	SubtractFront Op = "subtract-front"
	Intersect     Op = "intersect"
	Exclude       Op = "exclude"
)

// FlattenSteps is the number of line segments per curve segment.
const FlattenSteps = 16

func (o Op) clipOp() polyclip.Op {
	switch o {
	case SubtractFront:
		return polyclip.DIFFERENCE
	case Intersect:
		return polyclip.INTERSECTION
	case Exclude:
		return polyclip.XOR
	default:
		return polyclip.UNION
	}
}

func (o Op) Valid() bool {
	return o == Union || o == SubtractFront || o == Intersect || o == Exclude
}

// Eligible reports whether e may take part in a boolean operation.
func Eligible(e *scene.Element) bool {
	return e.Visible && !e.Locked && e.Kind != scene.KindText && e.Kind != scene.KindImage
}

// Result is the outcome of Combine.
type Result struct {
	Path  vector.Path      // scene coordinates, even-odd filled
	Donor *scene.Element   // style source
	Used  []*scene.Element // inputs that converted, back to front
}

// Combine folds inputs (already in z-order, back to front) with op. Inputs that
// cannot be converted are dropped.
func Combine(inputs []*scene.Element, op Op) (Result, error) {
	var shapes []polyclip.Polygon
	var used []*scene.Element
	for _, e := range inputs {
		if !Eligible(e) {
			continue
		}
		p, ok := toPolygon(e)
		if !ok {
			continue
		}
		shapes = append(shapes, p)
		used = append(used, e)
	}
	if len(shapes) < 2 {
		return Result{}, ErrTooFewShapes
	}
	res, err := fold(shapes, op.clipOp())
	if err != nil {
		return Result{}, err
	}
	path := toPath(res)
	if path.Empty() || Area(path) <= 1e-6 {
		return Result{}, ErrEmptyResult
	}
	donor := used[len(used)-1]
	if op == SubtractFront {
		donor = used[0]
	}
	return Result{Path: path, Donor: donor, Used: used}, nil
}

func fold(shapes []polyclip.Polygon, op polyclip.Op) (res polyclip.Polygon, err error) {
	defer func() {
		if r := recover(); r != nil {
			err = fmt.Errorf("%w: %v", ErrGeometry, r)
		}
	}()
	res = shapes[0]
	for _, s := range shapes[1:] {
		res = res.Construct(op, s)
	}
	return res, nil
}

// toPolygon flattens the element into closed contours. Group children are converted one
// by one and unioned, so overlapping children form one compound shape.
func toPolygon(e *scene.Element) (polyclip.Polygon, bool) {
	if e.Kind == scene.KindGroup {
		var parts []polyclip.Polygon
		for _, c := range e.Children {
			if !Eligible(c) {
				continue
			}
			if poly, ok := toPolygon(c); ok {
				parts = append(parts, poly)
			}
		}
		if len(parts) == 0 {
			return nil, false
		}
		poly, err := fold(parts, polyclip.UNION)
		if err != nil {
			return nil, false
		}
		return poly, len(poly) > 0
	}
	path := e.WorldPath()
	if !path.Finite() {
		return nil, false
	}
	var poly polyclip.Polygon
	contours, _ := path.Flatten(FlattenSteps)
	for _, c := range contours {
		c = dedupe(c)
		if len(c) < 3 || math.Abs(float64(signedArea(c))) < 1e-9 {
			continue
		}
		var pc polyclip.Contour
		for _, p := range c {
			pc = append(pc, polyclip.Point{X: float64(p.X), Y: float64(p.Y)})
		}
		poly = append(poly, pc)
	}
	return poly, len(poly) > 0
}

// dedupe drops consecutive duplicates and a closing point equal to the start.
func dedupe(c []vector.Pt) []vector.Pt {
	var out []vector.Pt
	for _, p := range c {
		if len(out) > 0 && out[len(out)-1].Eq(p) {
			continue
		}
		out = append(out, p)
	}
	if len(out) > 1 && out[0].Eq(out[len(out)-1]) {
		out = out[:len(out)-1]
	}
	return out
}

func toPath(poly polyclip.Polygon) vector.Path {
	var p vector.Path
	for _, c := range poly {
		if len(c) < 3 {
			continue
		}
		for i, q := range c {
			if i == 0 {
				p.MoveTo(float32(q.X), float32(q.Y))
				continue
			}
			p.LineTo(float32(q.X), float32(q.Y))
		}
		p.Close()
	}
	return p
}

func signedArea(c []vector.Pt) float32 {
	var a float32
	for i := range c {
		j := (i + 1) % len(c)
		a += c[i].X*c[j].Y - c[j].X*c[i].Y
	}
	return a / 2
}

// Area returns the even-odd filled area of a closed path: contours nested an odd
// number of times count as holes.
func Area(p vector.Path) float64 {
	contours, _ := p.Flatten(FlattenSteps)
	var total float64
	for i, c := range contours {
		c = dedupe(c)
		if len(c) < 3 {
			continue
		}
		a := math.Abs(float64(signedArea(c)))
		depth := 0
		for j, o := range contours {
			if j != i && vector.PointInPolygon(o, c[0]) {
				depth++
			}
		}
		if depth%2 == 1 {
			a = -a
		}
		total += a
	}
	return total
}
