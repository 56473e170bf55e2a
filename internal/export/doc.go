/*
 * Copyright (c) 2025 by Alexander Drost, Oldenburg, Germany.
 * This file is licensed to you under the Apache License, Version 2.0 (the "License"); you may not use this file except in compliance with the License.  You may obtain a copy of the License at
 *   http://www.apache.org/licenses/LICENSE-2.0
 * Unless required by applicable law or agreed to in writing, software distributed under the License is distributed on an
 * "AS IS" BASIS, WITHOUT WARRANTIES OR CONDITIONS OF ANY KIND, either express or implied.  See the License for the specific language governing permissions and limitations under the License.
 */

// Package export writes a scene as SVG, PDF or PNG. All sinks draw the same flattened list of
// visible leaf elements in z-order using the elements' scene-space outlines.
package export

import (
	"errors"

	"garmentsketch/internal/scene"
	"garmentsketch/internal/vector"
)

var ErrNoPage = errors.New("export: page size must be positive")

// item is one visible leaf element with its scene-space outline.
type item struct {
	el   *scene.Element
	path vector.Path
}

// items flattens visible elements; hidden groups hide their children.
func items(s *scene.Scene) []item {
	var out []item
	s.Walk(func(e *scene.Element, _ int) bool {
		if !e.Visible {
			return false
		}
		if e.Kind == scene.KindGroup {
			return true
		}
		out = append(out, item{el: e, path: e.WorldPath()})
		return true
	})
	return out
}

func checkSize(size vector.Size) error {
	if size.W <= 0 || size.H <= 0 {
		return ErrNoPage
	}
	return nil
}
