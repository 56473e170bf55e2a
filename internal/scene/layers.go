/*
 * Copyright (c) 2025 by Alexander Drost, Oldenburg, Germany.
 * This file is licensed to you under the Apache License, Version 2.0 (the "License"); you may not use this file except in compliance with the License.  You may obtain a copy of the License at
 *   http://www.apache.org/licenses/LICENSE-2.0
 * Unless required by applicable law or agreed to in writing, software distributed under the License is distributed on an
 * "AS IS" BASIS, WITHOUT WARRANTIES OR CONDITIONS OF ANY KIND, either express or implied.  See the License for the specific language governing permissions and limitations under the License.
 */

package scene

// LayerItem is one row of the flattened layer panel projection.
type LayerItem struct {
	ID          string
	Name        string
	Kind        Kind
	Depth       int
	HasChildren bool
	Expanded    bool
	Visible     bool
	Locked      bool
}

// Layers flattens the scene front-most first. Children are listed only for
// groups whose id is in expanded.
func (s *Scene) Layers(expanded map[string]bool) []LayerItem {
	var out []LayerItem
	var visit func(list []*Element, depth int)
	visit = func(list []*Element, depth int) {
		for i := len(list) - 1; i >= 0; i-- {
			e := list[i]
			item := LayerItem{
				ID:          e.ID,
				Name:        e.Name,
				Kind:        e.Kind,
				Depth:       depth,
				HasChildren: len(e.Children) > 0,
				Expanded:    expanded[e.ID],
				Visible:     e.Visible,
				Locked:      e.Locked,
			}
			out = append(out, item)
			if item.HasChildren && item.Expanded {
				visit(e.Children, depth+1)
			}
		}
	}
	visit(s.elements, 0)
	return out
}
