/*
 * Copyright (c) 2025 by Alexander Drost, Oldenburg, Germany.
 * This file is licensed to you under the Apache License, Version 2.0 (the "License"); you may not use this file except in compliance with the License.  You may obtain a copy of the License at
 *   http://www.apache.org/licenses/LICENSE-2.0
 * Unless required by applicable law or agreed to in writing, software distributed under the License is distributed on an
 * "AS IS" BASIS, WITHOUT WARRANTIES OR CONDITIONS OF ANY KIND, either express or implied.  See the License for the specific language governing permissions and limitations under the License.
 */

package export

import (
	"fmt"
	"image"
	"image/color"
	"image/draw"
	"image/png"
	"io"
	"math"
	"strings"

	"github.com/srwiley/rasterx"
	"golang.org/x/image/font"
	"golang.org/x/image/math/fixed"

	"garmentsketch/internal/scene"
	"garmentsketch/internal/textlayout"
	"garmentsketch/internal/vector"
)

// PNGOptions controls raster preview output.
// Scale maps scene units to pixels (default 1). Fonts defaults to textlayout.Default().
type PNGOptions struct {
	Scale float32
	Fonts textlayout.Provider
}

// WritePNG rasterizes the scene with rasterx onto a white page. Text is drawn unrotated
// and images as framed placeholders.
func WritePNG(w io.Writer, s *scene.Scene, size vector.Size, opt PNGOptions) error {
	if err := checkSize(size); err != nil {
		return err
	}
	scale := opt.Scale
	if scale <= 0 {
		scale = 1
	}
	fonts := opt.Fonts
	if fonts == nil {
		fonts = textlayout.Default()
	}
	pw := int(math.Ceil(float64(size.W * scale)))
	ph := int(math.Ceil(float64(size.H * scale)))
	img := image.NewRGBA(image.Rect(0, 0, pw, ph))
	draw.Draw(img, img.Bounds(), image.White, image.Point{}, draw.Src)

	scanner := rasterx.NewScannerGV(pw, ph, img, img.Bounds())
	filler := rasterx.NewFiller(pw, ph, scanner)
	dasher := rasterx.NewDasher(pw, ph, scanner)
	m := vector.Scale(scale, scale)

	for _, it := range items(s) {
		e := it.el
		switch e.Kind {
		case scene.KindText:
			drawRasterText(img, e, fonts, scale)
			continue
		case scene.KindImage:
			frame := vector.Style{Stroke: vector.Stroke{Color: vector.Color{R: 150, G: 150, B: 150, A: 255}, Width: 1, Enabled: true}}
			b := vector.R(0, 0, e.Geometry.W, e.Geometry.H)
			p := vector.RectPath(b, 0)
			p.MoveTo(0, 0)
			p.LineTo(b.W, b.H)
			p.MoveTo(b.W, 0)
			p.LineTo(0, b.H)
			paintRaster(filler, dasher, p.Transform(m.Mul(e.Transform())), frame, scale)
			continue
		}
		paintRaster(filler, dasher, it.path.Transform(m), e.Style, scale)
	}
	if err := png.Encode(w, img); err != nil {
		return fmt.Errorf("encode png: %w", err)
	}
	return nil
}

func toFixed(x, y float32) fixed.Point26_6 {
	return fixed.Point26_6{X: fixed.Int26_6(x * 64), Y: fixed.Int26_6(y * 64)}
}

func rgba(c vector.Color) color.NRGBA { return color.NRGBA{R: c.R, G: c.G, B: c.B, A: c.A} }

func paintRaster(filler *rasterx.Filler, dasher *rasterx.Dasher, p vector.Path, st vector.Style, scale float32) {
	if p.Empty() {
		return
	}
	if st.Fill.Enabled {
		filler.Clear()
		filler.SetWinding(st.Fill.Rule == vector.NonZero)
		filler.SetColor(rgba(st.Fill.Color))
		traceRaster(filler, p)
		filler.Draw()
	}
	if st.Stroke.Enabled && st.Stroke.Width > 0 {
		capFn := rasterx.ButtCap
		switch st.Stroke.Cap {
		case vector.CapRound:
			capFn = rasterx.RoundCap
		case vector.CapSquare:
			capFn = rasterx.SquareCap
		}
		join := rasterx.Miter
		switch st.Stroke.Join {
		case vector.JoinRound:
			join = rasterx.Round
		case vector.JoinBevel:
			join = rasterx.Bevel
		}
		miter := st.Stroke.MiterLim
		if miter <= 0 {
			miter = 4
		}
		dasher.Clear()
		dasher.SetStroke(fixed.Int26_6(st.Stroke.Width*scale*64), fixed.Int26_6(miter*64), capFn, capFn, rasterx.RoundGap, join, nil, 0)
		dasher.SetColor(rgba(st.Stroke.Color))
		traceRaster(dasher, p)
		dasher.Draw()
	}
}

// traceRaster feeds path commands to a rasterx adder, stopping each open subpath.
func traceRaster(a rasterx.Adder, p vector.Path) {
	open := false
	for _, c := range p.Cmds {
		d := c.Data
		switch c.Op {
		case vector.MoveTo:
			if open {
				a.Stop(false)
			}
			a.Start(toFixed(d[0], d[1]))
			open = true
		case vector.LineTo:
			a.Line(toFixed(d[0], d[1]))
		case vector.QuadTo:
			a.QuadBezier(toFixed(d[0], d[1]), toFixed(d[2], d[3]))
		case vector.CubicTo:
			a.CubeBezier(toFixed(d[0], d[1]), toFixed(d[2], d[3]), toFixed(d[4], d[5]))
		case vector.Close:
			a.Stop(true)
			open = false
		}
	}
	if open {
		a.Stop(false)
	}
}

func drawRasterText(img draw.Image, e *scene.Element, fonts textlayout.Provider, scale float32) {
	fs := e.FontSize
	if fs <= 0 {
		fs = 16
	}
	face, met := fonts.Face(fs * scale)
	col := e.Style.Fill.Color
	if !e.Style.Fill.Enabled {
		col = vector.Black
	}
	d := &font.Drawer{Dst: img, Src: image.NewUniform(rgba(col)), Face: face}
	x := e.Geometry.X * scale
	y := e.Geometry.Y*scale + met.Ascent
	for _, line := range strings.Split(e.Text, "\n") {
		d.Dot = toFixed(x, y)
		d.DrawString(line)
		y += met.LineHeight()
	}
}
