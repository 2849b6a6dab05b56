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
	"slices"

	"seehuhn.de/go/geom/vec"
)

// SupportSamples is the number of points per bend used for the curved
// flanks of a transition support.
const SupportSamples = 10

// Support describes the transition support which anchors a beam.
// The support widens from the beam width to Width over a distance of
// Height, along a curved flank on either side.
type Support struct {
	Width  float64 // width at the anchored base
	Height float64 // distance from the base to the beam
}

// UniformSupport returns a support whose base width equals its height.
func UniformSupport(l float64) Support {
	return Support{Width: l, Height: l}
}

// TransitionSupport builds a support which connects a beam of width
// beamWidth to an anchor.  The base of the support is centred at the
// origin and the beam end is at (0, s.Height).  Each flank is a smoothed
// corner with tangent lengths (s.Width-beamWidth)/2 along the base and
// s.Height along the beam, sampled at n points.
//
// The cell has two ports: "W1" at the base, facing down, and "W2" at the
// beam end, facing up.
func TransitionSupport(s Support, beamWidth float64, n int) (*Cell, error) {
	w1, w2, h := s.Width, beamWidth, s.Height
	if !(w2 > 0) || !(w1 > w2) || !(h > 0) {
		return nil, malformed("support %gx%g does not fit beam width %g", w1, h, w2)
	}

	right, err := Smooth([]vec.Vec2{
		{X: w1 / 2, Y: 0},
		{X: w2 / 2, Y: 0},
		{X: w2 / 2, Y: h},
	}, (w1-w2)/2, h, n)
	if err != nil {
		return nil, err
	}

	// Counter-clockwise, as the beam body.  Edges shared with a connected
	// beam must cancel under the nonzero winding rule.
	outline := slices.Grow(slices.Clone(right), len(right))
	for _, v := range slices.Backward(right) {
		outline = append(outline, vec.Vec2{X: -v.X, Y: v.Y})
	}

	return &Cell{
		Name:     "transition_support",
		Polygons: []Polygon{{Layer: LayerCore, Points: outline}},
		Ports: []Port{
			{Name: "W1", Center: vec.Vec2{}, Width: w1, Orientation: 270},
			{Name: "W2", Center: vec.Vec2{Y: h}, Width: w2, Orientation: 90},
		},
	}, nil
}

// DoublyClampedBeam builds a straight beam of the given width and length,
// along the positive x-axis and centred on it, with a transition support
// at both ends.
//
// Ports: "w1" and "e1" at the support bases, "s1" and "n1" at the middle
// of the lower and upper beam edges.
func DoublyClampedBeam(width, length float64, s Support) (*Cell, error) {
	c, err := beamBody("doubly_clamped_beam", width, length)
	if err != nil {
		return nil, err
	}

	left, err := TransitionSupport(s, width, SupportSamples)
	if err != nil {
		return nil, err
	}
	right := left.Clone()

	err = left.Connect("W2", Port{Width: width, Orientation: 180})
	if err != nil {
		return nil, err
	}
	err = right.Connect("W2", Port{Center: vec.Vec2{X: length}, Width: width, Orientation: 0})
	if err != nil {
		return nil, err
	}
	c.AddCell(left)
	c.AddCell(right)

	w1, _ := left.Port("W1")
	e1, _ := right.Port("W1")
	w1.Name = "w1"
	e1.Name = "e1"
	c.Ports = append([]Port{w1, e1}, c.Ports...)
	return c, nil
}

// CantileverBeam builds a beam like [DoublyClampedBeam], but with a
// transition support at the left (fixed) end only.
//
// Ports: "w1" at the support base, "e1" at the free end, "s1" and "n1" at
// the middle of the lower and upper beam edges.
func CantileverBeam(width, length float64, s Support) (*Cell, error) {
	c, err := beamBody("cantilever_beam", width, length)
	if err != nil {
		return nil, err
	}

	left, err := TransitionSupport(s, width, SupportSamples)
	if err != nil {
		return nil, err
	}
	err = left.Connect("W2", Port{Width: width, Orientation: 180})
	if err != nil {
		return nil, err
	}
	c.AddCell(left)

	w1, _ := left.Port("W1")
	w1.Name = "w1"
	e1 := Port{Name: "e1", Center: vec.Vec2{X: length}, Width: width, Orientation: 0}
	c.Ports = append([]Port{w1, e1}, c.Ports...)
	return c, nil
}

// beamBody returns the rectangular beam [0, length] × [-width/2, width/2]
// with ports at the middle of its long edges.
func beamBody(name string, width, length float64) (*Cell, error) {
	if !(width > 0) || !(length > 0) {
		return nil, malformed("beam %gx%g", length, width)
	}
	hw := width / 2
	return &Cell{
		Name: name,
		Polygons: []Polygon{{
			Layer: LayerCore,
			Points: []vec.Vec2{
				{X: 0, Y: -hw},
				{X: length, Y: -hw},
				{X: length, Y: hw},
				{X: 0, Y: hw},
			},
		}},
		Ports: []Port{
			{Name: "s1", Center: vec.Vec2{X: length / 2, Y: -hw}, Width: width, Orientation: 270},
			{Name: "n1", Center: vec.Vec2{X: length / 2, Y: hw}, Width: width, Orientation: 90},
		},
	}, nil
}
