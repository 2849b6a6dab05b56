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

// Command genpdf writes a PDF preview and a PNG mask of every reference
// cell to testdata/cells/.  Run from the module root directory.
package main

import (
	"fmt"
	"maps"
	"os"
	"path/filepath"
	"slices"

	"seehuhn.de/go/mems"
	"seehuhn.de/go/mems/cells"
)

const outDir = "testdata/cells"

// scale is the PDF scale, in points per layout unit.
const scale = 20

func main() {
	if err := os.MkdirAll(outDir, 0755); err != nil {
		panic(err)
	}

	for _, category := range slices.Sorted(maps.Keys(cells.All)) {
		for _, tc := range cells.All[category] {
			name := category + "_" + tc.Name
			if err := generate(outDir, tc, name); err != nil {
				panic(fmt.Errorf("%s: %w", name, err))
			}
		}
	}
}

// generate writes NAME.pdf and NAME.png for the given case to dir.
func generate(dir string, tc cells.Case, name string) error {
	c, err := tc.Build()
	if err != nil {
		return err
	}

	err = mems.WritePDF(filepath.Join(dir, name+".pdf"), c, scale)
	if err != nil {
		return err
	}

	m, err := mems.RenderMask(c, mems.LayerCore, tc.PixelSize)
	if err != nil {
		return err
	}
	f, err := os.Create(filepath.Join(dir, name+".png"))
	if err != nil {
		return err
	}
	if err := m.WritePNG(f); err != nil {
		f.Close()
		return err
	}
	return f.Close()
}
