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
	"fmt"
	"math"
	"slices"

	"seehuhn.de/go/geom/matrix"
	"seehuhn.de/go/geom/path"
	"seehuhn.de/go/geom/rect"
	"seehuhn.de/go/geom/vec"
)

// Layer names a mask layer.
type Layer string

// Layers used by the builders in this package.
const (
	LayerCore     Layer = "WG"        // device layer
	LayerDeepEtch Layer = "DEEP_ETCH" // region etched through, around the device
)

// Polygon is a closed polygon on a mask layer.  The closing edge from the
// last point back to the first point is implicit.
type Polygon struct {
	Layer  Layer
	Points []vec.Vec2
}

// Port is a named connection point on the boundary of a cell.
type Port struct {
	Name   string
	Center vec.Vec2
	Width  float64

	// Orientation is the direction (in degrees, counter-clockwise from the
	// positive x-axis) in which the port faces away from the cell.
	Orientation float64
}

// Cell is a piece of mask geometry, made of polygons and ports.
type Cell struct {
	Name     string
	Polygons []Polygon
	Ports    []Port
}

// Port returns the port with the given name.
func (c *Cell) Port(name string) (Port, bool) {
	for _, p := range c.Ports {
		if p.Name == name {
			return p, true
		}
	}
	return Port{}, false
}

// Clone returns a deep copy of c.
func (c *Cell) Clone() *Cell {
	res := &Cell{
		Name:     c.Name,
		Polygons: make([]Polygon, len(c.Polygons)),
		Ports:    slices.Clone(c.Ports),
	}
	for i, p := range c.Polygons {
		res.Polygons[i] = Polygon{Layer: p.Layer, Points: slices.Clone(p.Points)}
	}
	return res
}

// AddCell copies the polygons of other into c.  Ports are not copied.
func (c *Cell) AddCell(other *Cell) {
	for _, p := range other.Polygons {
		c.Polygons = append(c.Polygons, Polygon{Layer: p.Layer, Points: slices.Clone(p.Points)})
	}
}

// Transform maps all polygons and ports of c through m.
func (c *Cell) Transform(m matrix.Matrix) {
	for _, p := range c.Polygons {
		for i, v := range p.Points {
			p.Points[i] = apply(m, v)
		}
	}
	for i := range c.Ports {
		p := &c.Ports[i]
		p.Center = apply(m, p.Center)
		r := rotationDeg(p.Orientation) // first column is the port direction
		dx := m[0]*r[0] + m[2]*r[1]
		dy := m[1]*r[0] + m[3]*r[1]
		deg := math.Atan2(dy, dx) * 180 / math.Pi
		if rounded := math.Round(deg); math.Abs(deg-rounded) < angleSnap {
			deg = rounded
		}
		p.Orientation = normalizeDeg(deg)
	}
}

// Connect moves c such that its port portName sits on target, facing in
// the opposite direction.
func (c *Cell) Connect(portName string, target Port) error {
	p, ok := c.Port(portName)
	if !ok {
		return fmt.Errorf("cell %q: %w: no port %q", c.Name, ErrMalformed, portName)
	}

	m := rotationDeg(target.Orientation + 180 - p.Orientation)
	rc := apply(m, p.Center)
	m[4] = target.Center.X - rc.X
	m[5] = target.Center.Y - rc.Y
	c.Transform(m)
	return nil
}

// Layers returns the layers used by c, in sorted order.
func (c *Cell) Layers() []Layer {
	var res []Layer
	for _, p := range c.Polygons {
		if !slices.Contains(res, p.Layer) {
			res = append(res, p.Layer)
		}
	}
	slices.Sort(res)
	return res
}

// BBox returns the bounding box of all polygons of c on the given layers.
// If no layers are given, all layers are included.  The second return
// value is false if there are no points.
func (c *Cell) BBox(layers ...Layer) (rect.Rect, bool) {
	var box rect.Rect
	first := true
	for _, p := range c.Polygons {
		if len(layers) > 0 && !slices.Contains(layers, p.Layer) {
			continue
		}
		for _, v := range p.Points {
			if first {
				box = rect.Rect{LLx: v.X, LLy: v.Y, URx: v.X, URy: v.Y}
				first = false
				continue
			}
			box.LLx = min(box.LLx, v.X)
			box.LLy = min(box.LLy, v.Y)
			box.URx = max(box.URx, v.X)
			box.URy = max(box.URy, v.Y)
		}
	}
	return box, !first
}

// AddDeepEtch adds a deep-etch polygon covering the bounding box of the
// core layer, grown by dx on the left and right and by dy at the bottom
// and top.  A zero offset leaves the etch flush with the core geometry,
// as needed at anchored ends.  The deep-etch region proper is this
// rectangle minus the core geometry, see [RenderDeepEtch].
func (c *Cell) AddDeepEtch(dx, dy float64) {
	box, ok := c.BBox(LayerCore)
	if !ok {
		return
	}
	x0, y0 := box.LLx-dx, box.LLy-dy
	x1, y1 := box.URx+dx, box.URy+dy
	c.Polygons = append(c.Polygons, Polygon{
		Layer: LayerDeepEtch,
		Points: []vec.Vec2{
			{X: x0, Y: y0},
			{X: x1, Y: y0},
			{X: x1, Y: y1},
			{X: x0, Y: y1},
		},
	})
}

// Path returns the polygons of c on the given layer as a path, one closed
// subpath per polygon.
func (c *Cell) Path(layer Layer) *path.Data {
	p := &path.Data{}
	for _, poly := range c.Polygons {
		if poly.Layer != layer || len(poly.Points) == 0 {
			continue
		}
		p.MoveTo(poly.Points[0])
		for _, v := range poly.Points[1:] {
			p.LineTo(v)
		}
		p.Close()
	}
	return p
}

// angleSnap is the distance (in degrees) below which port orientations are
// rounded to whole degrees after a transformation.
const angleSnap = 1e-9

// rotationDeg returns the rotation by deg degrees about the origin.
// Multiples of 90 degrees are represented exactly.
func rotationDeg(deg float64) matrix.Matrix {
	switch normalizeDeg(deg) {
	case 0:
		return matrix.Identity
	case 90:
		return matrix.Matrix{0, 1, -1, 0, 0, 0}
	case 180:
		return matrix.Matrix{-1, 0, 0, -1, 0, 0}
	case 270:
		return matrix.Matrix{0, -1, 1, 0, 0, 0}
	}
	sin, cos := math.Sincos(deg * math.Pi / 180)
	return matrix.Matrix{cos, sin, -sin, cos, 0, 0}
}

// normalizeDeg maps an angle in degrees to the range [0, 360).
func normalizeDeg(deg float64) float64 {
	deg = math.Mod(deg, 360)
	if deg < 0 {
		deg += 360
	}
	if deg == 360 {
		deg = 0
	}
	return deg
}
