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

// Package mems builds mask geometry for MEMS devices.
//
// The numerical core is an asymmetric path smoother: [Smooth],
// [SmoothEach] and [SmoothPath] replace every interior corner of a
// polyline with a cubic Bézier transition (see [BendSpline]) whose in- and
// out-tangent lengths can be chosen independently. The transition
// supports of clamped beams are built from these paths ([TransitionSupport],
// [DoublyClampedBeam], [CantileverBeam]).
//
// Cells are collections of polygons on named layers, together with named
// ports used to place cells next to each other.  A [Rasteriser] converts
// the polygons of one layer into an anti-aliased coverage [Mask]; the
// deep-etch mask of a cell is obtained by subtracting the core coverage
// from the deep-etch coverage ([RenderDeepEtch]).
package mems

//go:generate go run ./cells/export
//go:generate go run ./cells/genpdf
