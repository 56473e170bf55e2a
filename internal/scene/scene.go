/*
 * Copyright (c) 2025 by Alexander Drost, Oldenburg, Germany.
 * This file is licensed to you under the Apache License, Version 2.0 (the "License"); you may not use this file except in compliance with the License.  You may obtain a copy of the License at
 *   http://www.apache.org/licenses/LICENSE-2.0
 * Unless required by applicable law or agreed to in writing, software distributed under the License is distributed on an
 * "AS IS" BASIS, WITHOUT WARRANTIES OR CONDITIONS OF ANY KIND, either express or implied.  See the License for the specific language governing permissions and limitations under the License.
 */

// Package scene owns the ordered element list of a sketch page, element identity,
// grouping, the layer projection and snapshot encoding.
// Later elements are in front. The store is not safe for concurrent mutation.
package scene

import (
	"errors"
	"fmt"
	"strconv"
	"strings"

	"github.com/google/uuid"

	"garmentsketch/internal/vector"
)

var (
	ErrNotFound        = errors.New("scene: element not found")
	ErrLocked          = errors.New("scene: element is locked")
	ErrNotGroup        = errors.New("scene: element is not a group")
	ErrNotRoot         = errors.New("scene: element is not a root element")
	ErrInvalidSnapshot = errors.New("scene: invalid snapshot")
)

// Scene is the ordered root element list plus the id counter.
type Scene struct {
	DocID    string
	elements []*Element
	counter  int
}

// New returns an empty scene with a fresh document id.
func New() *Scene { return &Scene{DocID: uuid.NewString()} }

// NextID issues the next id for kind. Ids are never reused within a scene.
func (s *Scene) NextID(kind Kind) string {
	s.counter++
	return fmt.Sprintf("%s-%d", kind, s.counter)
}

// Counter exposes the last issued id number.
func (s *Scene) Counter() int { return s.counter }

// Elements returns the root list; callers must not modify the slice.
func (s *Scene) Elements() []*Element { return s.elements }

func (s *Scene) Len() int { return len(s.elements) }

// NewElement builds a visible element of kind with a fresh id and default name.
func (s *Scene) NewElement(kind Kind, box vector.Rect) *Element {
	id := s.NextID(kind)
	st := vector.DefaultShapeStyle()
	if kind.IsLinear() || kind == KindFreehand {
		st = vector.DefaultLineStyle()
	}
	return &Element{
		ID:       id,
		Name:     defaultName(kind, s.counter),
		Kind:     kind,
		Geometry: Geometry{X: box.X, Y: box.Y, W: box.W, H: box.H},
		Style:    st,
		Visible:  true,
	}
}

func defaultName(kind Kind, n int) string {
	k := strings.ReplaceAll(string(kind), "-", " ")
	return strings.ToUpper(k[:1]) + k[1:] + " " + strconv.Itoa(n)
}

// Add appends e at the front-most position, assigning an id when missing.
func (s *Scene) Add(e *Element) *Element {
	s.Insert(len(s.elements), e)
	return e
}

// Insert places e at root index i (clamped).
func (s *Scene) Insert(i int, e *Element) {
	if e.ID == "" {
		e.ID = s.NextID(e.Kind)
	}
	i = max(0, min(i, len(s.elements)))
	s.elements = append(s.elements, nil)
	copy(s.elements[i+1:], s.elements[i:])
	s.elements[i] = e
}

// Find returns the element with id anywhere in the tree.
func (s *Scene) Find(id string) *Element {
	e, _, _ := s.locate(id)
	return e
}

// IndexOf returns the root index of id or -1.
func (s *Scene) IndexOf(id string) int {
	for i, e := range s.elements {
		if e.ID == id {
			return i
		}
	}
	return -1
}

// Parent returns the group owning id, nil for roots.
func (s *Scene) Parent(id string) *Element {
	_, p, _ := s.locate(id)
	return p
}

// RootOf returns the root element that contains id (itself when id is a root).
func (s *Scene) RootOf(id string) *Element {
	for _, r := range s.elements {
		found := false
		r.Walk(func(el *Element, _ int) bool {
			if el.ID == id {
				found = true
			}
			return !found
		})
		if found {
			return r
		}
	}
	return nil
}

// locate finds id, its parent group (nil for roots) and its index in the owning list.
func (s *Scene) locate(id string) (*Element, *Element, int) {
	var find func(list []*Element, parent *Element) (*Element, *Element, int)
	find = func(list []*Element, parent *Element) (*Element, *Element, int) {
		for i, e := range list {
			if e.ID == id {
				return e, parent, i
			}
			if len(e.Children) > 0 {
				if f, p, j := find(e.Children, e); f != nil {
					return f, p, j
				}
			}
		}
		return nil, nil, -1
	}
	return find(s.elements, nil)
}

func (s *Scene) ownerList(parent *Element) *[]*Element {
	if parent == nil {
		return &s.elements
	}
	return &parent.Children
}

// Remove deletes the given ids wherever they live and returns the removed elements.
// Groups left empty are removed too.
func (s *Scene) Remove(ids ...string) []*Element {
	var removed []*Element
	for _, id := range ids {
		e, parent, i := s.locate(id)
		if e == nil {
			continue
		}
		list := s.ownerList(parent)
		*list = append((*list)[:i], (*list)[i+1:]...)
		removed = append(removed, e)
		if parent != nil {
			if len(parent.Children) == 0 {
				removed = append(removed, s.Remove(parent.ID)...)
			} else {
				parent.RefreshBounds()
			}
		}
	}
	return removed
}

// Reorder moves id to index within its owning list (clamped).
func (s *Scene) Reorder(id string, index int) error {
	e, parent, i := s.locate(id)
	if e == nil {
		return fmt.Errorf("reorder %s: %w", id, ErrNotFound)
	}
	list := s.ownerList(parent)
	l := *list
	index = max(0, min(index, len(l)-1))
	l = append(l[:i], l[i+1:]...)
	l = append(l, nil)
	copy(l[index+1:], l[index:])
	l[index] = e
	*list = l
	return nil
}

func (s *Scene) shift(id string, delta int, absolute bool) error {
	_, parent, i := s.locate(id)
	if i < 0 {
		return fmt.Errorf("reorder %s: %w", id, ErrNotFound)
	}
	target := i + delta
	if absolute {
		target = delta
		if delta < 0 {
			target = len(*s.ownerList(parent)) - 1
		}
	}
	return s.Reorder(id, target)
}

func (s *Scene) BringForward(id string) error { return s.shift(id, 1, false) }
func (s *Scene) SendBackward(id string) error { return s.shift(id, -1, false) }
func (s *Scene) BringToFront(id string) error { return s.shift(id, -1, true) }
func (s *Scene) SendToBack(id string) error   { return s.shift(id, 0, true) }

// Update applies fn to the element. Group bounds are refreshed afterwards.
func (s *Scene) Update(id string, fn func(e *Element)) error {
	e, parent, _ := s.locate(id)
	if e == nil {
		return fmt.Errorf("update %s: %w", id, ErrNotFound)
	}
	fn(e)
	e.RefreshBounds()
	for p := parent; p != nil; p = s.Parent(p.ID) {
		p.RefreshBounds()
	}
	return nil
}

func (s *Scene) SetVisible(id string, v bool) error {
	return s.Update(id, func(e *Element) { e.Visible = v })
}

func (s *Scene) SetLocked(id string, v bool) error {
	return s.Update(id, func(e *Element) { e.Locked = v })
}

func (s *Scene) Rename(id, name string) error {
	return s.Update(id, func(e *Element) { e.Name = name })
}

// Walk visits every element depth-first in z-order (back to front).
func (s *Scene) Walk(fn func(e *Element, depth int) bool) {
	for _, e := range s.elements {
		e.Walk(fn)
	}
}

// HitTest returns the top-most visible root element under p.
func (s *Scene) HitTest(p vector.Pt, tol float32) *Element {
	for i := len(s.elements) - 1; i >= 0; i-- {
		e := s.elements[i]
		if e.Visible && e.Hit(p, tol) {
			return e
		}
	}
	return nil
}

// Intersecting returns visible, unlocked root elements whose bounds touch r, in z-order.
func (s *Scene) Intersecting(r vector.Rect) []*Element {
	var out []*Element
	for _, e := range s.elements {
		if e.Visible && !e.Locked && e.Bounds().Intersects(r) {
			out = append(out, e)
		}
	}
	return out
}

// CloneFresh deep-copies e and assigns fresh ids to it and all descendants.
func (s *Scene) CloneFresh(e *Element) (*Element, error) {
	c, err := e.Clone()
	if err != nil {
		return nil, err
	}
	c.Walk(func(el *Element, _ int) bool {
		el.ID = s.NextID(el.Kind)
		return true
	})
	return c, nil
}

// ByZOrder returns the root elements for ids sorted back to front; unknown ids are skipped.
func (s *Scene) ByZOrder(ids []string) []*Element {
	want := make(map[string]bool, len(ids))
	for _, id := range ids {
		want[id] = true
	}
	var out []*Element
	for _, e := range s.elements {
		if want[e.ID] {
			out = append(out, e)
		}
	}
	return out
}
