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
	"math"

	"gonum.org/v1/gonum/floats"
	"seehuhn.de/go/geom/vec"
)

// DefaultSamples is the number of points used to sample one bend when the
// caller does not specify a sample count.
const DefaultSamples = 101

// BendControls returns the control points P0, P1, P2, P3 of the cubic
// Bézier curve which connects a straight segment along the positive x-axis
// to a straight segment with direction angle (in degrees, counter-clockwise).
//
// The curve starts at the origin.  The two tangent lines meet at (r1, 0),
// and the curve ends at distance r2 from this point along the outgoing
// direction.  The inner control points lie at 2/3 of the way from each end
// point towards the tangent intersection.
func BendControls(angle, r1, r2 float64) [4]vec.Vec2 {
	sin, cos := math.Sincos(angle * math.Pi / 180)

	p0 := vec.Vec2{}
	v := vec.Vec2{X: r1}
	p3 := v.Add(vec.Vec2{X: r2 * cos, Y: r2 * sin})

	p1 := p0.Add(v.Sub(p0).Mul(2.0 / 3))
	p2 := p3.Sub(p3.Sub(v).Mul(2.0 / 3))

	return [4]vec.Vec2{p0, p1, p2, p3}
}

// BendSpline samples the bend curve described by [BendControls] at n
// uniformly spaced parameter values t ∈ [0, 1].  The first point is the
// origin and the last point is (r1 + r2·cos θ, r2·sin θ).
//
// For n ≤ 0 the result is nil, for n = 1 it contains only the origin.
func BendSpline(angle, r1, r2 float64, n int) []vec.Vec2 {
	if n <= 0 {
		return nil
	}
	ctrl := BendControls(angle, r1, r2)
	if n == 1 {
		return []vec.Vec2{ctrl[0]}
	}

	ts := floats.Span(make([]float64, n), 0, 1)
	pts := make([]vec.Vec2, n)
	for i, t := range ts {
		pts[i] = evalCubic(ctrl, t)
	}
	return pts
}

// evalCubic evaluates a cubic Bézier curve in Bernstein form.
func evalCubic(p [4]vec.Vec2, t float64) vec.Vec2 {
	// B(t) = (1-t)³P0 + 3(1-t)²tP1 + 3(1-t)t²P2 + t³P3
	omt := 1 - t
	omt2 := omt * omt
	omt3 := omt2 * omt
	t2 := t * t
	t3 := t2 * t
	return p[0].Mul(omt3).Add(p[1].Mul(3 * omt2 * t)).Add(p[2].Mul(3 * omt * t2)).Add(p[3].Mul(t3))
}
