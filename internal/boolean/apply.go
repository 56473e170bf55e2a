/*
 * Copyright (c) 2025 by Alexander Drost, Oldenburg, Germany.
 * This file is licensed to you under the Apache License, Version 2.0 (the "License"); you may not use this file except in compliance with the License.  You may obtain a copy of the License at
 *   http://www.apache.org/licenses/LICENSE-2.0
 * Unless required by applicable law or agreed to in writing, software distributed under the License is distributed on an
 * "AS IS" BASIS, WITHOUT WARRANTIES OR CONDITIONS OF ANY KIND, either express or implied.  See the License for the specific language governing permissions and limitations under the License.
 */

package boolean

import (
	"garmentsketch/internal/scene"
	"garmentsketch/internal/vector"
)

// Apply runs op over the root elements ids and, on success, replaces the used inputs
// with one pen-path element at the slot of the front-most input. On error the scene
// is unchanged.
func Apply(s *scene.Scene, ids []string, op Op) (*scene.Element, error) {
	res, err := Combine(s.ByZOrder(ids), op)
	if err != nil {
		return nil, err
	}
	front := res.Used[len(res.Used)-1]
	slot := s.IndexOf(front.ID) - (len(res.Used) - 1)

	b := res.Path.Bounds()
	out := s.NewElement(scene.KindPen, b)
	out.Name = res.Donor.Name
	out.Style = res.Donor.Style
	out.Style.Fill.Rule = vector.EvenOdd
	local := res.Path.Translate(-b.X, -b.Y)
	out.Geometry.Path = &local
	out.Geometry.Closed = true

	for _, e := range res.Used {
		s.Remove(e.ID)
	}
	s.Insert(slot, out)
	return out, nil
}
