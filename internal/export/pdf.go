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
	"io"
	"math"
	"strings"

	"github.com/jung-kurt/gofpdf"

	"garmentsketch/internal/scene"
	"garmentsketch/internal/vector"
)

// PDFOptions controls PDF export behavior. Units are points; the scene maps 1:1.
// Built-in Helvetica keeps text vector without embedding.
type PDFOptions struct {
	Title  string
	Author string
}

// WritePDF renders the scene onto a single page of the given size.
func WritePDF(w io.Writer, s *scene.Scene, size vector.Size, opt PDFOptions) error {
	if err := checkSize(size); err != nil {
		return err
	}
	pdf := gofpdf.NewCustom(&gofpdf.InitType{
		UnitStr: "pt",
		Size:    gofpdf.SizeType{Wd: float64(size.W), Ht: float64(size.H)},
	})
	if opt.Title != "" {
		pdf.SetTitle(opt.Title, true)
	}
	author := opt.Author
	if author == "" {
		author = "Garment Sketch"
	}
	pdf.SetAuthor(author, true)
	pdf.SetFont("Helvetica", "", 12)
	pdf.AddPage()

	for _, it := range items(s) {
		e := it.el
		switch e.Kind {
		case scene.KindText:
			drawPDFText(pdf, e)
		case scene.KindImage:
			drawPDFImagePlaceholder(pdf, e)
		default:
			drawPDFPath(pdf, it.path, e.Style)
		}
	}
	if err := pdf.Error(); err != nil {
		return fmt.Errorf("build pdf: %w", err)
	}
	if err := pdf.Output(w); err != nil {
		return fmt.Errorf("write pdf: %w", err)
	}
	return nil
}

func setDrawColor(pdf *gofpdf.Fpdf, c vector.Color) {
	pdf.SetDrawColor(int(c.R), int(c.G), int(c.B))
}

func setFillColor(pdf *gofpdf.Fpdf, c vector.Color) {
	pdf.SetFillColor(int(c.R), int(c.G), int(c.B))
}

// tracePDF emits the path commands; it reports false for an empty path.
func tracePDF(pdf *gofpdf.Fpdf, p vector.Path) bool {
	if p.Empty() {
		return false
	}
	f := func(v float32) float64 { return float64(v) }
	for _, c := range p.Cmds {
		d := c.Data
		switch c.Op {
		case vector.MoveTo:
			pdf.MoveTo(f(d[0]), f(d[1]))
		case vector.LineTo:
			pdf.LineTo(f(d[0]), f(d[1]))
		case vector.QuadTo:
			pdf.CurveTo(f(d[0]), f(d[1]), f(d[2]), f(d[3]))
		case vector.CubicTo:
			pdf.CurveBezierCubicTo(f(d[0]), f(d[1]), f(d[2]), f(d[3]), f(d[4]), f(d[5]))
		case vector.Close:
			pdf.ClosePath()
		}
	}
	return true
}

func drawPDFPath(pdf *gofpdf.Fpdf, p vector.Path, st vector.Style) {
	fill := st.Fill.Enabled
	stroke := st.Stroke.Enabled && st.Stroke.Width > 0
	if !fill && !stroke {
		return
	}
	if !tracePDF(pdf, p) {
		return
	}
	if fill {
		setFillColor(pdf, st.Fill.Color)
	}
	if stroke {
		setDrawColor(pdf, st.Stroke.Color)
		pdf.SetLineWidth(float64(st.Stroke.Width))
		pdf.SetLineCapStyle(st.Stroke.Cap.String())
		pdf.SetLineJoinStyle(st.Stroke.Join.String())
	}
	alpha := 1.0
	if fill && st.Fill.Color.A < 255 {
		alpha = float64(st.Fill.Color.Opacity())
	} else if !fill && st.Stroke.Color.A < 255 {
		alpha = float64(st.Stroke.Color.Opacity())
	}
	pdf.SetAlpha(alpha, "Normal")
	pdf.DrawPath(pdfOp(fill, stroke, st.Fill.Rule == vector.EvenOdd))
	pdf.SetAlpha(1, "Normal")
}

// pdfOp picks the paint operator; starred forms select the even-odd rule.
func pdfOp(fill, stroke, evenOdd bool) string {
	switch {
	case fill && stroke && evenOdd:
		return "DF*"
	case fill && stroke:
		return "DF"
	case fill && evenOdd:
		return "F*"
	case fill:
		return "F"
	default:
		return "D"
	}
}

func rotateBegin(pdf *gofpdf.Fpdf, e *scene.Element) func() {
	if e.Geometry.Rotation == 0 {
		return func() {}
	}
	c := e.Box().Center()
	pdf.TransformBegin()
	// gofpdf rotates counter-clockwise; scene rotation is clockwise in y-down space.
	pdf.TransformRotate(-float64(e.Geometry.Rotation)*180/math.Pi, float64(c.X), float64(c.Y))
	return pdf.TransformEnd
}

func drawPDFText(pdf *gofpdf.Fpdf, e *scene.Element) {
	g := e.Geometry
	fs := float64(e.FontSize)
	if fs <= 0 {
		fs = 16
	}
	col := e.Style.Fill.Color
	if !e.Style.Fill.Enabled {
		col = vector.Black
	}
	end := rotateBegin(pdf, e)
	defer end()
	pdf.SetFont("Helvetica", "", fs)
	pdf.SetTextColor(int(col.R), int(col.G), int(col.B))
	y := float64(g.Y) + fs
	for _, line := range strings.Split(e.Text, "\n") {
		pdf.Text(float64(g.X), y, line)
		y += fs * 1.2
	}
}

// drawPDFImagePlaceholder frames the image box with a cross; asset bytes are not embedded.
func drawPDFImagePlaceholder(pdf *gofpdf.Fpdf, e *scene.Element) {
	g := e.Geometry
	end := rotateBegin(pdf, e)
	defer end()
	setDrawColor(pdf, vector.Color{R: 150, G: 150, B: 150, A: 255})
	pdf.SetLineWidth(0.5)
	x, y, w, h := float64(g.X), float64(g.Y), float64(g.W), float64(g.H)
	pdf.Rect(x, y, w, h, "D")
	pdf.Line(x, y, x+w, y+h)
	pdf.Line(x+w, y, x, y+h)
}
