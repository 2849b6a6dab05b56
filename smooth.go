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
	"slices"

	"seehuhn.de/go/geom/matrix"
	"seehuhn.de/go/geom/vec"
)

// Smooth replaces every interior corner of the polyline through waypoints
// by a bend curve, using the same tangent lengths r1 (before the corner)
// and r2 (after the corner) for all bends.  Each bend is sampled at n
// points; n = 0 selects [DefaultSamples].
//
// See [SmoothPath] for details.
func Smooth(waypoints []vec.Vec2, r1, r2 float64, n int) ([]vec.Vec2, error) {
	return SmoothPath(waypoints, Uniform(r1), Uniform(r2), n)
}

// SmoothEach is like [Smooth], but takes one pair of tangent lengths per
// interior waypoint.
func SmoothEach(waypoints []vec.Vec2, r1, r2 []float64, n int) ([]vec.Vec2, error) {
	return SmoothPath(waypoints, PerBend(r1...), PerBend(r2...), n)
}

// SmoothPath replaces every interior corner of the polyline through
// waypoints by a bend curve (see [BendSpline]).  The bend at waypoint i+1
// starts at distance r1[i] before the corner and ends at distance r2[i]
// after the corner, measured along the adjacent straight segments.
//
// The result consists of, for every bend, the two end points of the
// straight run leading to the bend followed by the n points of the bend,
// and finally the two end points of the last straight run.  Points shared
// between a straight run and a bend are repeated.  Paths with fewer than
// three waypoints have no bends and are returned unchanged.
//
// All parameters are checked before any geometry is generated.  If the
// parameters are unusable, the returned error wraps [ErrMalformed].  If a
// segment is too short to hold the tangent lengths of its two bends, the
// error is an [*InfeasibleError].
func SmoothPath(waypoints []vec.Vec2, r1, r2 Tangents, n int) ([]vec.Vec2, error) {
	if len(waypoints) < 2 {
		return nil, malformed("need at least 2 waypoints, got %d", len(waypoints))
	}
	nBends := len(waypoints) - 2
	if nBends == 0 {
		return slices.Clone(waypoints), nil
	}

	if n == 0 {
		n = DefaultSamples
	} else if n < 2 {
		return nil, malformed("invalid sample count %d", n)
	}
	r1List, err := r1.expand("r1", nBends)
	if err != nil {
		return nil, err
	}
	r2List, err := r2.expand("r2", nBends)
	if err != nil {
		return nil, err
	}

	segs, err := makeSegments(waypoints)
	if err != nil {
		return nil, err
	}
	if err := checkClearance(segs, r1List, r2List); err != nil {
		return nil, err
	}

	res := make([]vec.Vec2, 0, 2*len(segs)+n*nBends)
	cur := waypoints[0]
	for i := range nBends {
		turn := turnAngle(segs[i].Heading, segs[i+1].Heading)
		var pts []vec.Vec2
		pts, cur = bendStep(cur, segs[i], turn, r1List[i], r2List[i], n)
		res = append(res, pts...)
	}
	res = append(res, cur, waypoints[len(waypoints)-1])

	return res, nil
}

// segment is one straight piece of the polyline through the waypoints.
type segment struct {
	A, B    vec.Vec2 // end points
	T       vec.Vec2 // unit tangent (A→B direction)
	Length  float64
	Heading float64 // direction angle of T in degrees
}

func makeSegments(waypoints []vec.Vec2) ([]segment, error) {
	segs := make([]segment, len(waypoints)-1)
	for i := range segs {
		a, b := waypoints[i], waypoints[i+1]
		d := b.Sub(a)
		length := d.Length()
		if !(length > 0) || math.IsInf(length, 0) {
			return nil, malformed("waypoints %d and %d do not define a segment", i, i+1)
		}
		t := d.Mul(1 / length)
		segs[i] = segment{
			A:       a,
			B:       b,
			T:       t,
			Length:  length,
			Heading: math.Atan2(t.Y, t.X) * 180 / math.Pi,
		}
	}
	return segs, nil
}

// checkClearance verifies that every segment can hold r2 of the bend at its
// start and r1 of the bend at its end.
func checkClearance(segs []segment, r1, r2 []float64) error {
	for i, seg := range segs {
		var need float64
		if i > 0 {
			need += r2[i-1]
		}
		if i < len(r1) {
			need += r1[i]
		}
		if seg.Length < need {
			return &InfeasibleError{Segment: i, Length: seg.Length, Clearance: need}
		}
	}
	return nil
}

// turnAngle returns the signed rotation from heading h0 to heading h1,
// in degrees, normalised to the range (-180, 180].
func turnAngle(h0, h1 float64) float64 {
	d := math.Mod(h1-h0+180, 360)
	if d <= 0 {
		d += 360
	}
	return d - 180
}

// bendStep emits the straight run from cur to the start of the bend at the
// end of seg, followed by the points of the bend.  The bend is built in its
// local frame and then rotated by the heading of seg and moved to the end
// of the straight run.  The second return value is the last point of the
// bend, where the next straight run starts.
func bendStep(cur vec.Vec2, seg segment, turn, r1, r2 float64, n int) ([]vec.Vec2, vec.Vec2) {
	start := seg.B.Sub(seg.T.Mul(r1))

	// rotation by the heading of seg, followed by a translation to start
	m := matrix.Matrix{seg.T.X, seg.T.Y, -seg.T.Y, seg.T.X, start.X, start.Y}

	bend := BendSpline(turn, r1, r2, n)
	pts := make([]vec.Vec2, 0, 2+len(bend))
	pts = append(pts, cur, start)
	for _, p := range bend {
		pts = append(pts, apply(m, p))
	}
	return pts, pts[len(pts)-1]
}

// apply maps v through the affine transformation m.
func apply(m matrix.Matrix, v vec.Vec2) vec.Vec2 {
	return vec.Vec2{
		X: m[0]*v.X + m[2]*v.Y + m[4],
		Y: m[1]*v.X + m[3]*v.Y + m[5],
	}
}
