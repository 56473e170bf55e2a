/*
 * Copyright (c) 2025 by Alexander Drost, Oldenburg, Germany.
 * This file is licensed to you under the Apache License, Version 2.0 (the "License"); you may not use this file except in compliance with the License.  You may obtain a copy of the License at
 *   http://www.apache.org/licenses/LICENSE-2.0
 * Unless required by applicable law or agreed to in writing, software distributed under the License is distributed on an
 * "AS IS" BASIS, WITHOUT WARRANTIES OR CONDITIONS OF ANY KIND, either express or implied.  See the License for the specific language governing permissions and limitations under the License.
 */

// Package asset turns uploaded bytes into scene elements. Vector markup becomes pen-path
// outlines (grouped when there are several); raster images become image elements that
// reference the stored bytes by a generated ref.
package asset

import (
	"bytes"
	"errors"
	"fmt"
	"image"
	"path/filepath"
	"strings"

	// raster decoders registered for image.DecodeConfig
	_ "image/gif"
	_ "image/jpeg"
	_ "image/png"

	_ "golang.org/x/image/bmp"
	_ "golang.org/x/image/tiff"
	_ "golang.org/x/image/webp"

	"github.com/google/uuid"

	"garmentsketch/internal/scene"
	"garmentsketch/internal/vector"
)

var (
	ErrUnsupported = errors.New("asset: unsupported content")
	ErrEmpty       = errors.New("asset: no drawable content")
)

// Fit fractions of the canvas.
const (
	VectorFit = 0.7
	RasterFit = 0.5
)

type Kind uint8

const (
	Vector Kind = iota + 1
	Raster
)

func (k Kind) String() string {
	switch k {
	case Vector:
		return "vector"
	case Raster:
		return "raster"
	}
	return "unknown"
}

// Asset describes ingested bytes. Data is handed back so the caller can store it under Ref.
type Asset struct {
	Ref    string
	Name   string
	MIME   string
	Kind   Kind
	Width  float32
	Height float32
	Data   []byte
}

// Detect classifies data by content, using the file name only to break ties for markup.
func Detect(name string, data []byte) (Kind, string, error) {
	if len(bytes.TrimSpace(data)) == 0 {
		return 0, "", ErrEmpty
	}
	if looksLikeSVG(name, data) {
		return Vector, "image/svg+xml", nil
	}
	_, format, err := image.DecodeConfig(bytes.NewReader(data))
	if err != nil {
		return 0, "", fmt.Errorf("%s: %w", name, ErrUnsupported)
	}
	return Raster, "image/" + format, nil
}

func looksLikeSVG(name string, data []byte) bool {
	head := data
	if len(head) > 1024 {
		head = head[:1024]
	}
	if bytes.Contains(bytes.ToLower(head), []byte("<svg")) {
		return true
	}
	return strings.EqualFold(filepath.Ext(name), ".svg") && bytes.HasPrefix(bytes.TrimSpace(head), []byte("<"))
}

// BaseName derives an element name from a file name.
func BaseName(name string) string {
	base := filepath.Base(strings.ReplaceAll(name, "\\", "/"))
	base = strings.TrimSuffix(base, filepath.Ext(base))
	base = strings.TrimSpace(base)
	if base == "" || base == "." || base == "/" {
		return "Asset"
	}
	return base
}

// Ingest decodes data and builds the element to insert; the scene supplies ids but is not modified.
func Ingest(s *scene.Scene, name string, data []byte, canvas vector.Size) (*scene.Element, *Asset, error) {
	kind, mime, err := Detect(name, data)
	if err != nil {
		return nil, nil, err
	}
	a := &Asset{Ref: uuid.NewString(), Name: BaseName(name), MIME: mime, Kind: kind, Data: data}
	var el *scene.Element
	switch kind {
	case Vector:
		el, err = vectorElement(s, a, canvas)
	default:
		el, err = rasterElement(s, a, canvas)
	}
	if err != nil {
		return nil, nil, err
	}
	return el, a, nil
}

// fitScale returns the scale placing w×h inside frac of the canvas. Raster content is never enlarged.
func fitScale(w, h float32, canvas vector.Size, frac float32, enlarge bool) float32 {
	if w <= 0 || h <= 0 || canvas.W <= 0 || canvas.H <= 0 {
		return 1
	}
	s := min(canvas.W*frac/w, canvas.H*frac/h)
	if !enlarge && s > 1 {
		return 1
	}
	return s
}

func rasterElement(s *scene.Scene, a *Asset, canvas vector.Size) (*scene.Element, error) {
	cfg, _, err := image.DecodeConfig(bytes.NewReader(a.Data))
	if err != nil {
		return nil, fmt.Errorf("%s: %w", a.Name, ErrUnsupported)
	}
	if cfg.Width <= 0 || cfg.Height <= 0 {
		return nil, fmt.Errorf("%s: %w", a.Name, ErrEmpty)
	}
	a.Width, a.Height = float32(cfg.Width), float32(cfg.Height)
	k := fitScale(a.Width, a.Height, canvas, RasterFit, false)
	w, h := a.Width*k, a.Height*k
	el := s.NewElement(scene.KindImage, vector.R((canvas.W-w)/2, (canvas.H-h)/2, w, h))
	el.Name = a.Name
	el.Style = vector.Style{}
	el.Image = &scene.ImageRef{Ref: a.Ref, MIME: a.MIME, NaturalW: a.Width, NaturalH: a.Height}
	return el, nil
}
