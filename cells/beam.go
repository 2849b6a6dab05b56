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
	"seehuhn.de/go/mems"
)

var supportCases = []Case{
	{
		Name: "uniform",
		Build: func() (*mems.Cell, error) {
			return mems.TransitionSupport(mems.UniformSupport(4), 0.5, mems.SupportSamples)
		},
		PixelSize: 0.02,
	},
	{
		Name: "wide_flat",
		Build: func() (*mems.Cell, error) {
			return mems.TransitionSupport(mems.Support{Width: 8, Height: 2}, 0.3, mems.SupportSamples)
		},
		PixelSize: 0.02,
	},
	{
		Name: "fine_sampling",
		Build: func() (*mems.Cell, error) {
			return mems.TransitionSupport(mems.UniformSupport(4), 0.5, mems.DefaultSamples)
		},
		PixelSize: 0.02,
	},
}

var beamCases = []Case{
	{
		Name: "doubly_clamped",
		Build: func() (*mems.Cell, error) {
			return mems.DoublyClampedBeam(0.5, 40, mems.UniformSupport(3))
		},
		PixelSize: 0.05,
	},
	{
		Name: "doubly_clamped_deep_etch",
		Build: func() (*mems.Cell, error) {
			c, err := mems.DoublyClampedBeam(0.5, 40, mems.Support{Width: 4, Height: 2})
			if err != nil {
				return nil, err
			}
			c.AddDeepEtch(0, 1)
			return c, nil
		},
		PixelSize: 0.05,
	},
	{
		Name: "cantilever_deep_etch",
		Build: func() (*mems.Cell, error) {
			c, err := mems.CantileverBeam(0.3, 25, mems.UniformSupport(2))
			if err != nil {
				return nil, err
			}
			c.AddDeepEtch(1, 1)
			return c, nil
		},
		PixelSize: 0.05,
	},
}
