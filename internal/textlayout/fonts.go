/*
 * Copyright (c) 2025 by Alexander Drost, Oldenburg, Germany.
 * This file is licensed to you under the Apache License, Version 2.0 (the "License"); you may not use this file except in compliance with the License.  You may obtain a copy of the License at
 *   http://www.apache.org/licenses/LICENSE-2.0
 * Unless required by applicable law or agreed to in writing, software distributed under the License is distributed on an
 * "AS IS" BASIS, WITHOUT WARRANTIES OR CONDITIONS OF ANY KIND, either express or implied.  See the License for the specific language governing permissions and limitations under the License.
 */

// Package textlayout measures text for sizing text elements. Measurement is
// isolated behind a Provider so tests can use a fixed bitmap face.
package textlayout

import (
	"fmt"
	"sync"

	"golang.org/x/image/font"
	"golang.org/x/image/font/basicfont"
	"golang.org/x/image/font/gofont/goregular"
	"golang.org/x/image/font/opentype"
)

// Metrics provides vertical font metrics in pixels for a resolved face.
type Metrics struct {
	Ascent, Descent, LineGap float32
}

// LineHeight is the baseline-to-baseline distance.
func (m Metrics) LineHeight() float32 { return m.Ascent + m.Descent + m.LineGap }

// Provider maps a point size to a concrete font.Face.
type Provider interface {
	Face(sizePt float32) (font.Face, Metrics)
}

func metricsOf(f font.Face) Metrics {
	m := f.Metrics()
	return Metrics{
		Ascent:  float32(m.Ascent.Round()),
		Descent: float32(m.Descent.Round()),
		LineGap: float32(m.Height.Round() - m.Ascent.Round() - m.Descent.Round()),
	}
}

// BasicProvider uses x/image/basicfont Face7x13 regardless of size, for deterministic tests.
type BasicProvider struct{}

func (BasicProvider) Face(float32) (font.Face, Metrics) {
	return basicfont.Face7x13, metricsOf(basicfont.Face7x13)
}

// OTProvider renders with an OpenType font and caches one face per size.
// It is safe for concurrent use.
type OTProvider struct {
	font *opentype.Font
	dpi  float64

	mu    sync.Mutex
	faces map[float32]font.Face
}

// NewOTProvider parses data (a TTF/OTF file). dpi defaults to 72 so one point is one scene unit.
func NewOTProvider(data []byte, dpi float64) (*OTProvider, error) {
	f, err := opentype.Parse(data)
	if err != nil {
		return nil, fmt.Errorf("parse font: %w", err)
	}
	if dpi <= 0 {
		dpi = 72
	}
	return &OTProvider{font: f, dpi: dpi, faces: make(map[float32]font.Face)}, nil
}

var (
	defaultOnce sync.Once
	defaultProv Provider
)

// Default returns the Go Regular provider, falling back to BasicProvider if the
// embedded font cannot be parsed.
func Default() Provider {
	defaultOnce.Do(func() {
		p, err := NewOTProvider(goregular.TTF, 72)
		if err != nil {
			defaultProv = BasicProvider{}
			return
		}
		defaultProv = p
	})
	return defaultProv
}

func (p *OTProvider) Face(sizePt float32) (font.Face, Metrics) {
	if sizePt <= 0 {
		sizePt = 12
	}
	p.mu.Lock()
	defer p.mu.Unlock()
	if f, ok := p.faces[sizePt]; ok {
		return f, metricsOf(f)
	}
	f, err := opentype.NewFace(p.font, &opentype.FaceOptions{Size: float64(sizePt), DPI: p.dpi, Hinting: font.HintingFull})
	if err != nil {
		return BasicProvider{}.Face(sizePt)
	}
	p.faces[sizePt] = f
	return f, metricsOf(f)
}
