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

// Command export writes the reference cells to JSON, for use by external
// layout tools.  Run from the module root directory.
package main

import (
	"encoding/json"
	"fmt"
	"maps"
	"os"
	"slices"

	"seehuhn.de/go/mems"
	"seehuhn.de/go/mems/cells"
)

func main() {
	var out struct {
		Cells []jsonCell `json:"cells"`
	}

	for _, category := range slices.Sorted(maps.Keys(cells.All)) {
		for _, tc := range cells.All[category] {
			name := category + "_" + tc.Name
			c, err := tc.Build()
			if err != nil {
				panic(fmt.Errorf("%s: %w", name, err))
			}
			out.Cells = append(out.Cells, toJSON(name, c))
		}
	}

	if err := os.MkdirAll("testdata", 0755); err != nil {
		panic(err)
	}
	f, err := os.Create("testdata/cells.json")
	if err != nil {
		panic(err)
	}
	defer f.Close()

	enc := json.NewEncoder(f)
	enc.SetIndent("", "  ")
	if err := enc.Encode(out); err != nil {
		panic(err)
	}
}

type jsonCell struct {
	Name     string        `json:"name"`
	Polygons []jsonPolygon `json:"polygons"`
	Ports    []jsonPort    `json:"ports,omitempty"`
}

type jsonPolygon struct {
	Layer  string      `json:"layer"`
	Points [][]float64 `json:"points"`
}

type jsonPort struct {
	Name        string    `json:"name"`
	Center      []float64 `json:"center"`
	Width       float64   `json:"width"`
	Orientation float64   `json:"orientation"`
}

func toJSON(name string, c *mems.Cell) jsonCell {
	jc := jsonCell{Name: name}
	for _, poly := range c.Polygons {
		jp := jsonPolygon{
			Layer:  string(poly.Layer),
			Points: make([][]float64, len(poly.Points)),
		}
		for i, v := range poly.Points {
			jp.Points[i] = []float64{v.X, v.Y}
		}
		jc.Polygons = append(jc.Polygons, jp)
	}
	for _, p := range c.Ports {
		jc.Ports = append(jc.Ports, jsonPort{
			Name:        p.Name,
			Center:      []float64{p.Center.X, p.Center.Y},
			Width:       p.Width,
			Orientation: p.Orientation,
		})
	}
	return jc
}
