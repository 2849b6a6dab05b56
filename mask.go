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
	"errors"
	"image"
	"image/png"
	"io"
	"math"

	"gonum.org/v1/gonum/floats"
	"seehuhn.de/go/geom/matrix"
	"seehuhn.de/go/geom/rect"
)

// maxMaskPixels limits the size of rendered masks.
const maxMaskPixels = 1 << 26

// Mask is a rasterised mask layer.  Pixel values give the covered fraction
// of each pixel, from 0 to 255.  Row 0 is at the top, i.e. at the largest
// y coordinate of the layout.
type Mask struct {
	Img *image.Alpha

	// CTM maps layout coordinates to pixel coordinates.
	CTM matrix.Matrix

	// PixelSize is the edge length of one pixel in layout units.
	PixelSize float64
}

// NewMask allocates an empty mask covering the bounding box of all layers
// of c, with the given pixel size.  The mask grid is aligned to multiples
// of pixelSize in layout coordinates, so that masks of different cells
// rendered at the same pixel size line up.
func NewMask(c *Cell, pixelSize float64) (*Mask, error) {
	if !(pixelSize > 0) || math.IsInf(pixelSize, 0) {
		return nil, malformed("invalid pixel size %g", pixelSize)
	}
	box, ok := c.BBox()
	if !ok {
		return nil, malformed("cell %q has no geometry", c.Name)
	}

	x0 := math.Floor(box.LLx/pixelSize) * pixelSize
	y1 := math.Ceil(box.URy/pixelSize) * pixelSize
	w := int(math.Ceil((box.URx - x0) / pixelSize))
	h := int(math.Ceil((y1 - box.LLy) / pixelSize))
	w, h = max(w, 1), max(h, 1)
	if w*h > maxMaskPixels || w <= 0 || h <= 0 {
		return nil, malformed("mask of %dx%d pixels is too large", w, h)
	}

	s := 1 / pixelSize
	return &Mask{
		Img:       image.NewAlpha(image.Rect(0, 0, w, h)),
		CTM:       matrix.Matrix{s, 0, 0, -s, -x0 * s, y1 * s},
		PixelSize: pixelSize,
	}, nil
}

// RenderMask rasterises the polygons of c on the given layer.
func RenderMask(c *Cell, layer Layer, pixelSize float64) (*Mask, error) {
	m, err := NewMask(c, pixelSize)
	if err != nil {
		return nil, err
	}
	m.Fill(NewRasteriser(rect.Rect{}), c, layer)
	return m, nil
}

// RenderDeepEtch rasterises the deep-etch region of c: the deep-etch
// polygons minus the core geometry.
func RenderDeepEtch(c *Cell, pixelSize float64) (*Mask, error) {
	etch, err := NewMask(c, pixelSize)
	if err != nil {
		return nil, err
	}
	core, err := NewMask(c, pixelSize)
	if err != nil {
		return nil, err
	}

	r := NewRasteriser(rect.Rect{})
	etch.Fill(r, c, LayerDeepEtch)
	core.Fill(r, c, LayerCore)
	if err := etch.Subtract(core); err != nil {
		return nil, err
	}
	return etch, nil
}

// Fill adds the polygons of c on the given layer to the mask, using the
// nonzero winding rule.  The rasteriser r is reset before use.
func (m *Mask) Fill(r *Rasteriser, c *Cell, layer Layer) {
	b := m.Img.Bounds()
	r.Reset(rect.Rect{URx: float64(b.Dx()), URy: float64(b.Dy())})
	r.CTM = m.CTM

	img := m.Img
	r.FillNonZero(c.Path(layer), func(y, xMin int, coverage []float32) {
		row := img.Pix[y*img.Stride+xMin:]
		for i, cov := range coverage {
			v := int(row[i]) + int(cov*255+0.5)
			row[i] = uint8(min(v, 255))
		}
	})
}

// errMaskSize is returned when two masks of different geometry are
// combined.
var errMaskSize = errors.New("masks have different geometry")

// Subtract removes the coverage of o from m, clamping at zero.
// Both masks must have the same size and transformation.
func (m *Mask) Subtract(o *Mask) error {
	if m.Img.Bounds() != o.Img.Bounds() || m.CTM != o.CTM {
		return errMaskSize
	}
	for i, v := range o.Img.Pix {
		m.Img.Pix[i] = uint8(max(int(m.Img.Pix[i])-int(v), 0))
	}
	return nil
}

// Area returns the covered area of the mask, in squared layout units.
func (m *Mask) Area() float64 {
	vals := make([]float64, len(m.Img.Pix))
	for i, v := range m.Img.Pix {
		vals[i] = float64(v) / 255
	}
	return floats.Sum(vals) * m.PixelSize * m.PixelSize
}

// WritePNG writes the mask as an 8-bit grayscale PNG image.
func (m *Mask) WritePNG(w io.Writer) error {
	b := m.Img.Bounds()
	gray := image.NewGray(b)
	copy(gray.Pix, m.Img.Pix)
	return png.Encode(w, gray)
}
