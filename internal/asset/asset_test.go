/*
 * Copyright (c) 2025 by Alexander Drost, Oldenburg, Germany.
 * This file is licensed to you under the Apache License, Version 2.0 (the "License"); you may not use this file except in compliance with the License.  You may obtain a copy of the License at
 *   http://www.apache.org/licenses/LICENSE-2.0
 * Unless required by applicable law or agreed to in writing, software distributed under the License is distributed on an
 * "AS IS" BASIS, WITHOUT WARRANTIES OR CONDITIONS OF ANY KIND, either express or implied.  See the License for the specific language governing permissions and limitations under the License.
 */

package asset

import (
	"bytes"
	"errors"
	"image"
	"image/png"
	"math"
	"testing"

	"garmentsketch/internal/scene"
	"garmentsketch/internal/vector"
)

var canvas = vector.Size{W: 1000, H: 800}

const twoRects = `<svg xmlns="http://www.w3.org/2000/svg" viewBox="0 0 100 50">
  <rect x="0" y="0" width="40" height="50"/>
  <rect x="60" y="0" width="40" height="50"/>
</svg>`

func near(a, b float32) bool { return math.Abs(float64(a-b)) < 0.05 }

func pngBytes(t *testing.T, w, h int) []byte {
	t.Helper()
	var buf bytes.Buffer
	if err := png.Encode(&buf, image.NewRGBA(image.Rect(0, 0, w, h))); err != nil {
		t.Fatal(err)
	}
	return buf.Bytes()
}

func TestDetect(t *testing.T) {
	if k, mime, err := Detect("x.svg", []byte(twoRects)); err != nil || k != Vector || mime != "image/svg+xml" {
		t.Fatalf("svg detect = %v %q %v", k, mime, err)
	}
	if k, mime, err := Detect("photo", pngBytes(t, 4, 4)); err != nil || k != Raster || mime != "image/png" {
		t.Fatalf("png detect = %v %q %v", k, mime, err)
	}
	if _, _, err := Detect("notes.txt", []byte("plain words")); !errors.Is(err, ErrUnsupported) {
		t.Fatalf("expected ErrUnsupported, got %v", err)
	}
	if _, _, err := Detect("empty.png", nil); !errors.Is(err, ErrEmpty) {
		t.Fatalf("expected ErrEmpty, got %v", err)
	}
}

func TestIngestSVGBuildsCenteredGroup(t *testing.T) {
	s := scene.New()
	el, a, err := Ingest(s, "uploads/collar.svg", []byte(twoRects), canvas)
	if err != nil {
		t.Fatalf("Ingest: %v", err)
	}
	if el.Kind != scene.KindGroup || len(el.Children) != 2 {
		t.Fatalf("expected group of 2, got %s with %d children", el.Kind, len(el.Children))
	}
	if el.Name != "collar" || el.Children[0].Name != "collar 1" {
		t.Fatalf("names = %q, %q", el.Name, el.Children[0].Name)
	}
	if a.Kind != Vector || a.Ref == "" || len(a.Data) == 0 {
		t.Fatalf("asset = %+v", a)
	}
	b := el.Bounds()
	// 100x50 scaled to 70% of 1000 wide -> 700x350, centered
	if !near(b.W, 700) || !near(b.H, 350) {
		t.Fatalf("fit size = %vx%v", b.W, b.H)
	}
	if c := b.Center(); !near(c.X, 500) || !near(c.Y, 400) {
		t.Fatalf("not centered: %+v", c)
	}
	for _, ch := range el.Children {
		if ch.Kind != scene.KindPen || ch.Geometry.Path == nil {
			t.Fatalf("child not a pen path outline: %+v", ch)
		}
	}
	if s.Len() != 0 {
		t.Fatalf("Ingest must not insert into the scene")
	}
}

func TestIngestSinglePathIsPen(t *testing.T) {
	svg := `<svg xmlns="http://www.w3.org/2000/svg" viewBox="10 10 20 20"><path d="M10 10 L30 10 L30 30 Z"/></svg>`
	el, _, err := Ingest(scene.New(), "dart.svg", []byte(svg), canvas)
	if err != nil {
		t.Fatalf("Ingest: %v", err)
	}
	if el.Kind != scene.KindPen || el.Name != "dart" {
		t.Fatalf("got %s %q", el.Kind, el.Name)
	}
	if b := el.Bounds(); !near(b.H, 560) {
		t.Fatalf("height = %v, want 560", b.H)
	}
}

func TestIngestRasterFitsHalfCanvas(t *testing.T) {
	el, a, err := Ingest(scene.New(), "swatch.png", pngBytes(t, 2000, 1000), canvas)
	if err != nil {
		t.Fatalf("Ingest: %v", err)
	}
	if el.Kind != scene.KindImage || el.Image == nil || el.Image.Ref != a.Ref {
		t.Fatalf("bad image element: %+v", el)
	}
	if !near(el.Geometry.W, 500) || !near(el.Geometry.H, 250) {
		t.Fatalf("fit = %vx%v", el.Geometry.W, el.Geometry.H)
	}
	if el.Image.NaturalW != 2000 || a.MIME != "image/png" {
		t.Fatalf("natural size or mime wrong: %+v", el.Image)
	}

	small, _, err := Ingest(scene.New(), "tiny.png", pngBytes(t, 20, 10), canvas)
	if err != nil {
		t.Fatal(err)
	}
	if small.Geometry.W != 20 || small.Geometry.H != 10 {
		t.Fatalf("small raster should keep its size, got %vx%v", small.Geometry.W, small.Geometry.H)
	}
}

func TestBaseName(t *testing.T) {
	for in, want := range map[string]string{"a/b/front.svg": "front", "C:\\x\\sleeve.png": "sleeve", "": "Asset"} {
		if got := BaseName(in); got != want {
			t.Fatalf("BaseName(%q) = %q, want %q", in, got, want)
		}
	}
}
