/*
 * Copyright (c) 2025 by Alexander Drost, Oldenburg, Germany.
 * This file is licensed to you under the Apache License, Version 2.0 (the "License"); you may not use this file except in compliance with the License.  You may obtain a copy of the License at
 *   http://www.apache.org/licenses/LICENSE-2.0
 * Unless required by applicable law or agreed to in writing, software distributed under the License is distributed on an
 * "AS IS" BASIS, WITHOUT WARRANTIES OR CONDITIONS OF ANY KIND, either express or implied.  See the License for the specific language governing permissions and limitations under the License.
 */

package scene

import (
	"errors"
	"fmt"
)

// Group wraps the given root elements into a new group placed at the slot of the
// front-most member. Children keep their z-order and scene coordinates.
func (s *Scene) Group(ids []string) (*Element, error) {
	members := s.ByZOrder(ids)
	if len(members) < 2 {
		return nil, errors.New("scene: group needs at least two root elements")
	}
	for _, m := range members {
		if m.Locked {
			return nil, fmt.Errorf("group %s: %w", m.ID, ErrLocked)
		}
	}
	slot := s.IndexOf(members[len(members)-1].ID) - (len(members) - 1)
	for _, m := range members {
		s.Remove(m.ID)
	}
	g := s.NewElement(KindGroup, members[0].Bounds())
	g.Children = members
	g.Style = members[len(members)-1].Style
	g.RefreshBounds()
	s.Insert(slot, g)
	return g, nil
}

// Ungroup dissolves a root group; its children are reparented to the roots at the
// group's index, keeping their order.
func (s *Scene) Ungroup(id string) ([]*Element, error) {
	i := s.IndexOf(id)
	if i < 0 {
		if s.Find(id) != nil {
			return nil, fmt.Errorf("ungroup %s: %w", id, ErrNotRoot)
		}
		return nil, fmt.Errorf("ungroup %s: %w", id, ErrNotFound)
	}
	g := s.elements[i]
	if g.Kind != KindGroup {
		return nil, fmt.Errorf("ungroup %s: %w", id, ErrNotGroup)
	}
	if g.Locked {
		return nil, fmt.Errorf("ungroup %s: %w", id, ErrLocked)
	}
	children := g.Children
	rest := append([]*Element{}, s.elements[i+1:]...)
	s.elements = append(append(s.elements[:i], children...), rest...)
	return children, nil
}
