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

// Package cells contains a catalog of named reference cells.
//
// The catalog is used by the tests of the mask rasteriser and by the
// commands which export the cells as JSON and PDF for visual inspection.
package cells

import (
	"seehuhn.de/go/geom/vec"
	"seehuhn.de/go/mems"
)

// Case is one reference cell.
type Case struct {
	Name      string                    // lowercase a-z, 0-9 and _ only
	Build     func() (*mems.Cell, error) // constructs the cell
	PixelSize float64                   // pixel size for mask rendering, in layout units
}

// pt is a helper to create a vec.Vec2 from x, y coordinates.
func pt(x, y float64) vec.Vec2 {
	return vec.Vec2{X: x, Y: y}
}
