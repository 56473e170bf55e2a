/*
 * Copyright (c) 2025 by Alexander Drost, Oldenburg, Germany.
 * This file is licensed to you under the Apache License, Version 2.0 (the "License"); you may not use this file except in compliance with the License.  You may obtain a copy of the License at
 *   http://www.apache.org/licenses/LICENSE-2.0
 * Unless required by applicable law or agreed to in writing, software distributed under the License is distributed on an
 * "AS IS" BASIS, WITHOUT WARRANTIES OR CONDITIONS OF ANY KIND, either express or implied.  See the License for the specific language governing permissions and limitations under the License.
 */

package export

import (
	"bufio"
	"encoding/xml"
	"fmt"
	"io"
	"math"
	"strings"

	"garmentsketch/internal/scene"
	"garmentsketch/internal/vector"
)

// WriteSVG serializes the scene as a standalone SVG document of the given page size.
// Image elements reference their asset by ref; the bytes live with the upload collaborator.
func WriteSVG(w io.Writer, s *scene.Scene, size vector.Size) error {
	if err := checkSize(size); err != nil {
		return err
	}
	bw := bufio.NewWriter(w)
	var werr error
	wf := func(format string, args ...any) {
		if werr != nil {
			return
		}
		_, werr = fmt.Fprintf(bw, format, args...)
	}

	wf("<?xml version=\"1.0\" encoding=\"UTF-8\"?>\n")
	wf("<svg xmlns=\"http://www.w3.org/2000/svg\" version=\"1.1\" width=\"%g\" height=\"%g\" viewBox=\"0 0 %g %g\">\n", size.W, size.H, size.W, size.H)
	wf("  <rect x=\"0\" y=\"0\" width=\"%g\" height=\"%g\" fill=\"#ffffff\"/>\n", size.W, size.H)

	for _, it := range items(s) {
		e := it.el
		switch e.Kind {
		case scene.KindText:
			writeSVGText(wf, e)
		case scene.KindImage:
			g := e.Geometry
			ref := ""
			if e.Image != nil {
				ref = e.Image.Ref
			}
			wf("  <image id=\"%s\" x=\"%g\" y=\"%g\" width=\"%g\" height=\"%g\" href=\"asset:%s\"%s/>\n",
				esc(e.ID), g.X, g.Y, g.W, g.H, esc(ref), rotateAttr(e))
		default:
			wf("  <path id=\"%s\" d=\"%s\"%s/>\n", esc(e.ID), pathData(it.path), paintAttrs(e.Style))
		}
	}
	wf("</svg>\n")
	if werr != nil {
		return fmt.Errorf("build svg: %w", werr)
	}
	return bw.Flush()
}

func writeSVGText(wf func(string, ...any), e *scene.Element) {
	g := e.Geometry
	fs := e.FontSize
	if fs <= 0 {
		fs = 16
	}
	col := e.Style.Fill.Color
	if !e.Style.Fill.Enabled {
		col = vector.Black
	}
	wf("  <text id=\"%s\" x=\"%g\" y=\"%g\" font-family=\"Go, Helvetica, Arial, sans-serif\" font-size=\"%g\" fill=\"%s\"%s>",
		esc(e.ID), g.X, g.Y+fs, fs, col.Hex(), rotateAttr(e))
	for i, line := range strings.Split(e.Text, "\n") {
		dy := float32(0)
		if i > 0 {
			dy = fs * 1.2
		}
		wf("<tspan x=\"%g\" dy=\"%g\">%s</tspan>", g.X, dy, esc(line))
	}
	wf("</text>\n")
}

func rotateAttr(e *scene.Element) string {
	g := e.Geometry
	if g.Rotation == 0 {
		return ""
	}
	c := e.Box().Center()
	return fmt.Sprintf(" transform=\"rotate(%g %g %g)\"", float64(g.Rotation)*180/math.Pi, c.X, c.Y)
}

func paintAttrs(st vector.Style) string {
	var b strings.Builder
	if st.Fill.Enabled {
		fmt.Fprintf(&b, " fill=\"%s\"", st.Fill.Color.Hex())
		if st.Fill.Color.A < 255 {
			fmt.Fprintf(&b, " fill-opacity=\"%.3g\"", st.Fill.Color.Opacity())
		}
		if st.Fill.Rule == vector.EvenOdd {
			b.WriteString(" fill-rule=\"evenodd\"")
		}
	} else {
		b.WriteString(" fill=\"none\"")
	}
	if st.Stroke.Enabled && st.Stroke.Width > 0 {
		fmt.Fprintf(&b, " stroke=\"%s\" stroke-width=\"%g\" stroke-linecap=\"%s\" stroke-linejoin=\"%s\"",
			st.Stroke.Color.Hex(), st.Stroke.Width, st.Stroke.Cap, st.Stroke.Join)
		if st.Stroke.Color.A < 255 {
			fmt.Fprintf(&b, " stroke-opacity=\"%.3g\"", st.Stroke.Color.Opacity())
		}
	}
	return b.String()
}

// pathData renders path commands as an SVG d attribute.
func pathData(p vector.Path) string {
	var b strings.Builder
	for i, c := range p.Cmds {
		if i > 0 {
			b.WriteByte(' ')
		}
		d := c.Data
		switch c.Op {
		case vector.MoveTo:
			fmt.Fprintf(&b, "M%g %g", d[0], d[1])
		case vector.LineTo:
			fmt.Fprintf(&b, "L%g %g", d[0], d[1])
		case vector.QuadTo:
			fmt.Fprintf(&b, "Q%g %g %g %g", d[0], d[1], d[2], d[3])
		case vector.CubicTo:
			fmt.Fprintf(&b, "C%g %g %g %g %g %g", d[0], d[1], d[2], d[3], d[4], d[5])
		case vector.Close:
			b.WriteByte('Z')
		}
	}
	return b.String()
}

func esc(s string) string {
	var b strings.Builder
	_ = xml.EscapeText(&b, []byte(s))
	return b.String()
}
