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

package cells

import (
	"seehuhn.de/go/geom/vec"
	"seehuhn.de/go/mems"
)

var pathCases = []Case{
	{
		Name: "dogleg",
		Build: func() (*mems.Cell, error) {
			return region("dogleg", []vec.Vec2{pt(0, 0), pt(5, 0), pt(5, 5), pt(10, 5)},
				mems.Uniform(1), mems.Uniform(1), pt(10, 0))
		},
		PixelSize: 0.1,
	},
	{
		Name: "asymmetric_corner",
		Build: func() (*mems.Cell, error) {
			return region("asymmetric_corner", []vec.Vec2{pt(0, 0), pt(10, 0), pt(20, 10)},
				mems.Uniform(6), mems.Uniform(2), pt(20, 0))
		},
		PixelSize: 0.1,
	},
	{
		Name: "zigzag_per_bend",
		Build: func() (*mems.Cell, error) {
			return region("zigzag_per_bend",
				[]vec.Vec2{pt(0, 0), pt(10, 8), pt(20, 0), pt(30, 8), pt(40, 0)},
				mems.PerBend(2, 4, 1), mems.PerBend(1, 3, 4), pt(20, -4))
		},
		PixelSize: 0.1,
	},
	{
		Name: "sharp_reversal",
		Build: func() (*mems.Cell, error) {
			return region("sharp_reversal",
				[]vec.Vec2{pt(0, 0), pt(20, 1), pt(0, 4)},
				mems.Uniform(3), mems.Uniform(3))
		},
		PixelSize: 0.05,
	},
}

// region builds a cell with a single core polygon, bounded by the smoothed
// path through waypoints and closed through the extra points.
func region(name string, waypoints []vec.Vec2, r1, r2 mems.Tangents, closing ...vec.Vec2) (*mems.Cell, error) {
	pts, err := mems.SmoothPath(waypoints, r1, r2, 0)
	if err != nil {
		return nil, err
	}
	pts = append(pts, closing...)
	return &mems.Cell{
		Name:     name,
		Polygons: []mems.Polygon{{Layer: mems.LayerCore, Points: pts}},
	}, nil
}
