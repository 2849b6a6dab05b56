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
	"cmp"
	"math"
	"slices"

	"seehuhn.de/go/geom/matrix"
	"seehuhn.de/go/geom/path"
	"seehuhn.de/go/geom/rect"
	"seehuhn.de/go/geom/vec"
)

// edge is a non-horizontal line segment in device coordinates.
type edge struct {
	x0, y0 float64
	x1, y1 float64
	dxdy   float64 // (x1-x0)/(y1-y0)
	yMin   float64
	yMax   float64
}

// Rasteriser converts filled paths to pixel coverage values, the fraction
// of each pixel covered by the path.  Internal buffers are reused between
// calls.
//
// A Rasteriser is not safe for concurrent use.
type Rasteriser struct {
	// CTM maps user space (layout units) to device space (pixels).
	// Must be non-singular.
	CTM matrix.Matrix

	// Clip limits the output to this device-space rectangle.
	// Coordinates must be integers.
	Clip rect.Rect

	// Flatness is the maximal distance, in pixels, between a curve and
	// the line segments used to approximate it.  Must be positive.
	Flatness float64

	cover     []float32 // per-pixel change of winding, reused as output
	area      []float32 // per-pixel area to the right of the crossing
	edges     []edge
	active    []int   // indices of edges crossing the current scanline
	crossings []float64

	bbox      rect.Rect // device-space bounds of edges
	bboxEmpty bool
}

// NewRasteriser returns a Rasteriser for the given clip rectangle, with
// the identity transformation.
func NewRasteriser(clip rect.Rect) *Rasteriser {
	return &Rasteriser{
		CTM:      matrix.Identity,
		Clip:     clip,
		Flatness: defaultFlatness,
	}
}

// Reset restores the default parameters and sets a new clip rectangle,
// keeping the allocated buffers.
func (r *Rasteriser) Reset(clip rect.Rect) {
	r.CTM = matrix.Identity
	r.Clip = clip
	r.Flatness = defaultFlatness

	r.cover = r.cover[:0]
	r.area = r.area[:0]
	r.edges = r.edges[:0]
	r.active = r.active[:0]
	r.crossings = r.crossings[:0]
}

// FillNonZero rasterises p using the nonzero winding rule.  Coverage is
// passed to emit one scanline at a time; the slice is only valid during
// the call.
func (r *Rasteriser) FillNonZero(p *path.Data, emit func(y, xMin int, coverage []float32)) {
	r.fill(p, integrateNonZero, emit)
}

// FillEvenOdd rasterises p using the even-odd rule.  Coverage is passed to
// emit one scanline at a time; the slice is only valid during the call.
func (r *Rasteriser) FillEvenOdd(p *path.Data, emit func(y, xMin int, coverage []float32)) {
	r.fill(p, integrateEvenOdd, emit)
}

func (r *Rasteriser) fill(p *path.Data, integrate func(cover, area []float32), emit func(y, xMin int, coverage []float32)) {
	r.collectEdges(p)
	if len(r.edges) == 0 {
		return
	}

	xMin := max(int(math.Floor(r.bbox.LLx)), int(r.Clip.LLx))
	xMax := min(int(math.Floor(r.bbox.URx))+1, int(r.Clip.URx))
	yMin := max(int(math.Floor(r.bbox.LLy)), int(r.Clip.LLy))
	yMax := min(int(math.Floor(r.bbox.URy))+1, int(r.Clip.URy))
	if xMin >= xMax || yMin >= yMax {
		return
	}
	width := xMax - xMin

	r.cover = slices.Grow(r.cover[:0], width)[:width]
	r.area = slices.Grow(r.area[:0], width)[:width]

	slices.SortFunc(r.edges, func(a, b edge) int {
		return cmp.Compare(a.yMin, b.yMin)
	})
	r.active = r.active[:0]
	next := 0

	for y := yMin; y < yMax; y++ {
		yTop := float64(y)
		yBot := float64(y + 1)

		for next < len(r.edges) && r.edges[next].yMin < yBot {
			r.active = append(r.active, next)
			next++
		}
		if len(r.active) == 0 {
			continue
		}

		clear(r.cover)
		clear(r.area)
		touched := false
		for i := 0; i < len(r.active); {
			e := &r.edges[r.active[i]]
			if e.yMax <= yTop {
				r.active[i] = r.active[len(r.active)-1]
				r.active = r.active[:len(r.active)-1]
				continue
			}
			if r.accumulate(e, yTop, yBot, xMin, xMax) {
				touched = true
			}
			i++
		}
		if !touched {
			continue
		}

		integrate(r.cover, r.area)
		if row, offset := trimZeros(r.cover); row != nil {
			emit(y, xMin+offset, row)
		}
	}
}

// collectEdges flattens p into device-space edges and records their
// bounding box.
func (r *Rasteriser) collectEdges(p *path.Data) {
	r.edges = r.edges[:0]
	r.bboxEmpty = true

	var cur, start vec.Vec2
	k := 0
	for _, cmd := range p.Cmds {
		switch cmd {
		case path.CmdMoveTo:
			cur = p.Coords[k]
			start = cur
			k++
		case path.CmdLineTo:
			r.addEdge(cur, p.Coords[k])
			cur = p.Coords[k]
			k++
		case path.CmdQuadTo:
			// degree elevation
			q1, q2 := p.Coords[k], p.Coords[k+1]
			c1 := cur.Add(q1.Sub(cur).Mul(2.0 / 3))
			c2 := q2.Add(q1.Sub(q2).Mul(2.0 / 3))
			r.flattenCubic(cur, c1, c2, q2)
			cur = q2
			k += 2
		case path.CmdCubeTo:
			r.flattenCubic(cur, p.Coords[k], p.Coords[k+1], p.Coords[k+2])
			cur = p.Coords[k+2]
			k += 3
		case path.CmdClose:
			if cur != start {
				r.addEdge(cur, start)
			}
			cur = start
		}
	}
}

// flattenCubic approximates a cubic Bézier curve by line segments.
// The number of segments follows Wang's formula, applied in device space.
func (r *Rasteriser) flattenCubic(p0, p1, p2, p3 vec.Vec2) {
	d1 := r.linear(p0.Sub(p1.Mul(2)).Add(p2))
	d2 := r.linear(p1.Sub(p2.Mul(2)).Add(p3))
	dev := max(d1.Length(), d2.Length())

	n := 1
	if dev > 0 {
		n = max(1, int(math.Ceil(math.Sqrt(3*dev/(4*r.Flatness)))))
	}

	ctrl := [4]vec.Vec2{p0, p1, p2, p3}
	prev := p0
	for i := 1; i <= n; i++ {
		pt := evalCubic(ctrl, float64(i)/float64(n))
		r.addEdge(prev, pt)
		prev = pt
	}
}

// linear applies the linear part of the CTM to v.
func (r *Rasteriser) linear(v vec.Vec2) vec.Vec2 {
	return vec.Vec2{
		X: r.CTM[0]*v.X + r.CTM[2]*v.Y,
		Y: r.CTM[1]*v.X + r.CTM[3]*v.Y,
	}
}

// addEdge adds the user-space segment from p0 to p1.
func (r *Rasteriser) addEdge(p0, p1 vec.Vec2) {
	a := apply(r.CTM, p0)
	b := apply(r.CTM, p1)

	dy := b.Y - a.Y
	if math.Abs(dy) < horizontalEdgeThreshold {
		return
	}
	r.edges = append(r.edges, edge{
		x0: a.X, y0: a.Y,
		x1: b.X, y1: b.Y,
		dxdy: (b.X - a.X) / dy,
		yMin: min(a.Y, b.Y),
		yMax: max(a.Y, b.Y),
	})

	box := rect.Rect{
		LLx: min(a.X, b.X), LLy: min(a.Y, b.Y),
		URx: max(a.X, b.X), URy: max(a.Y, b.Y),
	}
	if r.bboxEmpty {
		r.bbox = box
		r.bboxEmpty = false
		return
	}
	r.bbox.LLx = min(r.bbox.LLx, box.LLx)
	r.bbox.LLy = min(r.bbox.LLy, box.LLy)
	r.bbox.URx = max(r.bbox.URx, box.URx)
	r.bbox.URy = max(r.bbox.URy, box.URy)
}

// Each edge contributes to two per-pixel accumulators on a scanline:
//
//	cover: the signed height of the edge within the pixel column,
//	       +dy for downward edges and -dy for upward edges
//	area:  cover scaled by the fraction of the pixel right of the edge
//
// Integrating from left to right, the coverage of pixel i is
// sum(cover[:i]) + area[i].

// accumulate adds the part of e inside the scanline [yTop, yBot) to the
// accumulators.  It reports whether anything was added.
func (r *Rasteriser) accumulate(e *edge, yTop, yBot float64, xMin, xMax int) bool {
	yTop = max(yTop, e.yMin)
	yBot = min(yBot, e.yMax)
	if yBot <= yTop {
		return false
	}

	sign := float32(1)
	if e.y1 < e.y0 {
		sign = -1
	}

	xa := e.x0 + e.dxdy*(yTop-e.y0)
	xb := e.x0 + e.dxdy*(yBot-e.y0)
	pixLeft := int(math.Floor(min(xa, xb)))
	pixRight := int(math.Floor(max(xa, xb)))

	if pixLeft >= xMax {
		return false
	}
	if pixLeft == pixRight || pixRight < xMin {
		r.addPiece(e, yTop, yBot, sign, xMin, xMax)
		return true
	}

	// split the edge where it crosses vertical pixel boundaries
	r.crossings = append(r.crossings[:0], yTop, yBot)
	dydx := 1 / e.dxdy
	for x := pixLeft + 1; x <= pixRight; x++ {
		y := e.y0 + dydx*(float64(x)-e.x0)
		if y > yTop && y < yBot {
			r.crossings = append(r.crossings, y)
		}
	}
	slices.Sort(r.crossings)
	for i := range len(r.crossings) - 1 {
		r.addPiece(e, r.crossings[i], r.crossings[i+1], sign, xMin, xMax)
	}
	return true
}

// addPiece adds the part of e between y0 and y1, which must lie within a
// single pixel column.
func (r *Rasteriser) addPiece(e *edge, y0, y1 float64, sign float32, xMin, xMax int) {
	if y1 <= y0 {
		return
	}
	c := sign * float32(y1-y0)

	xMid := e.x0 + e.dxdy*((y0+y1)/2-e.y0)
	pix := int(math.Floor(xMid))
	switch {
	case pix < xMin:
		r.cover[0] += c
		r.area[0] += c
	case pix < xMax:
		frac := xMid - float64(pix)
		r.cover[pix-xMin] += c
		r.area[pix-xMin] += c * float32(1-frac)
	}
}

// integrateNonZero turns accumulated values into nonzero-rule coverage,
// in place.
func integrateNonZero(cover, area []float32) {
	var acc float32
	for i := range cover {
		raw := acc + area[i]
		acc += cover[i]
		cover[i] = min(abs32(raw), 1)
	}
}

// integrateEvenOdd turns accumulated values into even-odd coverage, in
// place.
func integrateEvenOdd(cover, area []float32) {
	var acc float32
	for i := range cover {
		raw := abs32(acc + area[i])
		acc += cover[i]
		mod := raw - 2*float32(int(raw/2))
		cover[i] = 1 - abs32(1-mod)
	}
}

func abs32(x float32) float32 {
	if x < 0 {
		return -x
	}
	return x
}

// trimZeros strips leading and trailing zeros from a coverage row.
// It returns nil if the row is entirely zero.
func trimZeros(row []float32) ([]float32, int) {
	lo := 0
	for lo < len(row) && row[lo] == 0 {
		lo++
	}
	if lo == len(row) {
		return nil, 0
	}
	hi := len(row) - 1
	for row[hi] == 0 {
		hi--
	}
	return row[lo : hi+1], lo
}

const (
	// defaultFlatness is the default curve tolerance in pixels.
	defaultFlatness = 0.25

	// horizontalEdgeThreshold is the smallest vertical extent of an edge
	// which contributes to coverage.
	horizontalEdgeThreshold = 1e-10
)
