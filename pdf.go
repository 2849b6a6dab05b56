// seehuhn.de/go/mems - geometry for MEMS mask layouts
// Copyright (C) 2026  Jochen Voss <voss@seehuhn.de>
//
// This program is free software: you can redistribute it and/or modify
// it under the terms of the GNU General Public License as published by
// the Free Software Foundation, either version 3 of the License, or
// (at your option) any later version.
//
// This program is distributed in the hope that it will be useful,
// but WITHOUT ANY WARRANTY; without even the implied warranty of
// MERCHANTABILITY or FITNESS FOR A PARTICULAR PURPOSE.  See the
// GNU General Public License for more details.
//
// You should have received a copy of the GNU General Public License
// along with this program.  If not, see <https://www.gnu.org/licenses/>.

package mems

import (
	"seehuhn.de/go/geom/matrix"
	"seehuhn.de/go/pdf"
	"seehuhn.de/go/pdf/document"
	"seehuhn.de/go/pdf/graphics/color"
)

// pdfMargin is the white space around the drawing, in PDF points.
const pdfMargin = 18

// layerGray gives the fill colour of each layer in PDF previews.  Layers
// are painted in this order, so that the core geometry covers the
// deep-etch rectangle.
var layerGray = []struct {
	layer Layer
	gray  float64
}{
	{LayerDeepEtch, 0.8},
	{LayerCore, 0},
}

// WritePDF writes a one-page PDF file showing the polygons of c.
// One layout unit is drawn as scale PDF points.
func WritePDF(fname string, c *Cell, scale float64) error {
	if !(scale > 0) {
		return malformed("invalid PDF scale %g", scale)
	}
	box, ok := c.BBox()
	if !ok {
		return malformed("cell %q has no geometry", c.Name)
	}

	paper := &pdf.Rectangle{
		URx: (box.URx-box.LLx)*scale + 2*pdfMargin,
		URy: (box.URy-box.LLy)*scale + 2*pdfMargin,
	}
	page, err := document.CreateSinglePage(fname, paper, pdf.V1_7, nil)
	if err != nil {
		return err
	}

	page.Transform(matrix.Matrix{
		scale, 0, 0, scale,
		pdfMargin - box.LLx*scale, pdfMargin - box.LLy*scale,
	})
	for _, lg := range layerGray {
		var polys []Polygon
		for _, poly := range c.Polygons {
			if poly.Layer == lg.layer && len(poly.Points) >= 3 {
				polys = append(polys, poly)
			}
		}
		if len(polys) == 0 {
			continue
		}

		// colours must be set before the path is constructed
		page.SetFillColor(color.DeviceGray(lg.gray))
		for _, poly := range polys {
			page.MoveTo(poly.Points[0].X, poly.Points[0].Y)
			for _, v := range poly.Points[1:] {
				page.LineTo(v.X, v.Y)
			}
			page.ClosePath()
		}
		page.Fill()
	}

	return page.Close()
}
