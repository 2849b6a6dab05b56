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
	"fmt"
)

// ErrMalformed is returned (wrapped) when the parameters of a geometry
// builder are unusable, independently of the geometry they describe.
// Examples are a tangent list whose length does not match the number of
// bends, or a negative tangent length.
var ErrMalformed = errors.New("malformed parameters")

// InfeasibleError is returned when a straight segment of a smoothed path is
// too short to hold the tangent lengths of the bends at both of its ends.
type InfeasibleError struct {
	// Segment is the index of the offending segment.  Segment i connects
	// waypoint i and waypoint i+1.
	Segment int

	Length    float64 // length of the segment
	Clearance float64 // r2 of the bend at the start plus r1 of the bend at the end
}

func (err *InfeasibleError) Error() string {
	return fmt.Sprintf("segment %d is too short (length %g < clearance %g)",
		err.Segment, err.Length, err.Clearance)
}

func malformed(format string, args ...any) error {
	return fmt.Errorf("%w: "+format, append([]any{ErrMalformed}, args...)...)
}
