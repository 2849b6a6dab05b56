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

// Command memsgen builds the smoothed paths and beams described in a TOML
// job file and writes them to an output directory.
//
// Usage:
//
//	memsgen -job job.toml -out build/
//
// For every path, NAME.json holds the list of path points.  For every
// beam, NAME.pdf is a preview, NAME_core.png the rasterised device layer
// and, if deep_etch_offset is set, NAME_deep_etch.png the deep-etch mask.
// The deep-etch margin of a doubly clamped beam only extends across the
// beam, not beyond the anchored support bases.  Names must not contain
// path separators.
//
// Example job file:
//
//	pixel_size = 0.05
//	deep_etch_offset = 1.0
//
//	[[path]]
//	name = "dogleg"
//	waypoints = [[0.0, 0.0], [5.0, 0.0], [5.0, 5.0], [10.0, 5.0]]
//	r1 = 1.0
//	r2 = [1.0, 2.0]
//	samples = 21
//
//	[[beam]]
//	name = "bridge"
//	kind = "doubly_clamped"
//	width = 0.5
//	length = 40.0
//	support = [4, 2]
package main

import (
	"encoding/json"
	"flag"
	"log"
	"os"
	"path/filepath"

	"seehuhn.de/go/mems"
)

func main() {
	log.SetFlags(0)
	log.SetPrefix("memsgen: ")

	jobFile := flag.String("job", "job.toml", "job file")
	outDir := flag.String("out", ".", "output directory")
	flag.Parse()

	job, err := loadJob(*jobFile)
	if err != nil {
		log.Fatal(err)
	}
	if err := run(job, *outDir); err != nil {
		log.Fatal(err)
	}
}

// run builds everything in the job.  All geometry is built before the
// first file is written.
func run(job *Job, outDir string) error {
	points := make(map[string][][2]float64, len(job.Paths))
	for i := range job.Paths {
		p := &job.Paths[i]
		pts, err := p.Build()
		if err != nil {
			return err
		}
		xy := make([][2]float64, len(pts))
		for j, v := range pts {
			xy[j] = [2]float64{v.X, v.Y}
		}
		points[p.Name] = xy
	}

	beams := make([]*mems.Cell, 0, len(job.Beams))
	for i := range job.Beams {
		c, err := job.Beams[i].Build()
		if err != nil {
			return err
		}
		if job.DeepEtchOffset > 0 {
			c.AddDeepEtch(job.Beams[i].etchMargins(job.DeepEtchOffset))
		}
		beams = append(beams, c)
	}

	if err := os.MkdirAll(outDir, 0755); err != nil {
		return err
	}
	for _, p := range job.Paths {
		if err := writePoints(filepath.Join(outDir, p.Name+".json"), points[p.Name]); err != nil {
			return err
		}
	}
	for _, c := range beams {
		if err := writeBeam(outDir, c, job); err != nil {
			return err
		}
	}
	return nil
}

func writePoints(fname string, pts [][2]float64) error {
	data, err := json.MarshalIndent(pts, "", "  ")
	if err != nil {
		return err
	}
	log.Printf("writing %s (%d points)", fname, len(pts))
	return os.WriteFile(fname, append(data, '\n'), 0644)
}

func writeBeam(outDir string, c *mems.Cell, job *Job) error {
	base := filepath.Join(outDir, c.Name)

	log.Printf("writing %s.pdf", base)
	if err := mems.WritePDF(base+".pdf", c, job.PDFScale); err != nil {
		return err
	}

	core, err := mems.RenderMask(c, mems.LayerCore, job.PixelSize)
	if err != nil {
		return err
	}
	if err := writePNG(base+"_core.png", core); err != nil {
		return err
	}

	if job.DeepEtchOffset > 0 {
		etch, err := mems.RenderDeepEtch(c, job.PixelSize)
		if err != nil {
			return err
		}
		if err := writePNG(base+"_deep_etch.png", etch); err != nil {
			return err
		}
	}
	return nil
}

func writePNG(fname string, m *mems.Mask) error {
	log.Printf("writing %s (area %.3g)", fname, m.Area())
	f, err := os.Create(fname)
	if err != nil {
		return err
	}
	if err := m.WritePNG(f); err != nil {
		f.Close()
		return err
	}
	return f.Close()
}
