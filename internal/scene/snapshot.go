/*
 * Copyright (c) 2025 by Alexander Drost, Oldenburg, Germany.
 * This file is licensed to you under the Apache License, Version 2.0 (the "License"); you may not use this file except in compliance with the License.  You may obtain a copy of the License at
 *   http://www.apache.org/licenses/LICENSE-2.0
 * Unless required by applicable law or agreed to in writing, software distributed under the License is distributed on an
 * "AS IS" BASIS, WITHOUT WARRANTIES OR CONDITIONS OF ANY KIND, either express or implied.  See the License for the specific language governing permissions and limitations under the License.
 */

package scene

import (
	"bytes"
	_ "embed"
	"encoding/json"
	"fmt"
	"math"
	"strconv"
	"strings"

	gojsonschema "github.com/xeipuuv/gojsonschema"
)

// Format identifies exported scene documents.
const (
	Format        = "garmentsketch.scene"
	FormatVersion = 1
)

//go:embed scene.schema.json
var schemaJSON []byte

var schemaLoader = gojsonschema.NewBytesLoader(schemaJSON)

// document is the serialized form of a scene.
type document struct {
	Format   string     `json:"format"`
	Version  int        `json:"version"`
	DocID    string     `json:"docId"`
	Counter  int        `json:"counter"`
	Elements []*Element `json:"elements"`
}

// Snapshot encodes the full scene. Output is deterministic for equal scenes.
func (s *Scene) Snapshot() ([]byte, error) {
	doc := document{Format: Format, Version: FormatVersion, DocID: s.DocID, Counter: s.counter, Elements: s.elements}
	if doc.Elements == nil {
		doc.Elements = []*Element{}
	}
	b, err := json.Marshal(doc)
	if err != nil {
		return nil, fmt.Errorf("encode scene: %w", err)
	}
	return b, nil
}

// Decode parses and checks a snapshot without touching any live scene.
func Decode(data []byte) (*Scene, error) {
	var doc document
	dec := json.NewDecoder(bytes.NewReader(data))
	dec.DisallowUnknownFields()
	if err := dec.Decode(&doc); err != nil {
		return nil, fmt.Errorf("%w: %v", ErrInvalidSnapshot, err)
	}
	if doc.Format != Format || doc.Version != FormatVersion {
		return nil, fmt.Errorf("%w: unsupported format %q v%d", ErrInvalidSnapshot, doc.Format, doc.Version)
	}
	s := &Scene{DocID: doc.DocID, elements: doc.Elements, counter: doc.Counter}
	if s.elements == nil {
		s.elements = []*Element{}
	}
	seen := map[string]bool{}
	var bad error
	s.Walk(func(e *Element, _ int) bool {
		if bad != nil {
			return false
		}
		switch {
		case e.ID == "" || seen[e.ID]:
			bad = fmt.Errorf("%w: duplicate or empty id %q", ErrInvalidSnapshot, e.ID)
		case !e.Kind.Valid():
			bad = fmt.Errorf("%w: unknown kind %q", ErrInvalidSnapshot, e.Kind)
		case e.Kind == KindGroup && len(e.Children) == 0:
			bad = fmt.Errorf("%w: empty group %q", ErrInvalidSnapshot, e.ID)
		}
		seen[e.ID] = true
		// keep future ids clear of every id already present
		s.counter = max(s.counter, idNumber(e.ID))
		return true
	})
	if bad != nil {
		return nil, bad
	}
	return s, nil
}

func idNumber(id string) int {
	i := strings.LastIndexByte(id, '-')
	if i < 0 {
		return 0
	}
	n, err := strconv.Atoi(id[i+1:])
	if err != nil || n < 0 || n > math.MaxInt32 {
		return 0
	}
	return n
}

// Restore replaces the scene content with a decoded snapshot. Decoding completes
// before anything is swapped, so a failed restore leaves the scene untouched.
// The id counter never decreases.
func (s *Scene) Restore(data []byte) error {
	next, err := Decode(data)
	if err != nil {
		return err
	}
	s.elements = next.elements
	s.counter = max(s.counter, next.counter)
	if next.DocID != "" {
		s.DocID = next.DocID
	}
	return nil
}

// Load replaces the scene with an imported document, taking its counter and id as-is.
func (s *Scene) Load(data []byte) error {
	next, err := Decode(data)
	if err != nil {
		return err
	}
	*s = *next
	return nil
}

// Validate checks data against the embedded JSON schema.
func Validate(data []byte) error {
	result, err := gojsonschema.Validate(schemaLoader, gojsonschema.NewBytesLoader(data))
	if err != nil {
		return fmt.Errorf("%w: %v", ErrInvalidSnapshot, err)
	}
	if !result.Valid() {
		msgs := make([]string, 0, len(result.Errors()))
		for _, e := range result.Errors() {
			msgs = append(msgs, e.String())
		}
		return fmt.Errorf("%w: %s", ErrInvalidSnapshot, strings.Join(msgs, "; "))
	}
	return nil
}
