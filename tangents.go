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

import "math"

// Tangents gives the tangent length (r1 or r2) of every bend of a path.
// Use [Uniform] to apply one value to all bends, or [PerBend] to give one
// value per interior waypoint.
type Tangents struct {
	uniform float64
	perBend []float64
	isList  bool
}

// Uniform returns tangent lengths which are r for every bend.
func Uniform(r float64) Tangents {
	return Tangents{uniform: r}
}

// PerBend returns tangent lengths with one entry per bend.  The number of
// values must equal the number of interior waypoints of the path.
func PerBend(r ...float64) Tangents {
	return Tangents{perBend: r, isList: true}
}

// expand returns one tangent length per bend.
func (t Tangents) expand(name string, nBends int) ([]float64, error) {
	var res []float64
	if t.isList {
		if len(t.perBend) != nBends {
			return nil, malformed("%d %s values for %d bends", len(t.perBend), name, nBends)
		}
		res = make([]float64, nBends)
		copy(res, t.perBend)
	} else {
		res = make([]float64, nBends)
		for i := range res {
			res[i] = t.uniform
		}
	}

	for i, r := range res {
		if r < 0 || math.IsNaN(r) || math.IsInf(r, 0) {
			return nil, malformed("%s[%d] = %g is not a valid tangent length", name, i, r)
		}
	}
	return res, nil
}
