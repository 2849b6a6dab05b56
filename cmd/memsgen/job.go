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

package main

import (
	"errors"
	"fmt"
	"os"
	"strings"

	"github.com/pelletier/go-toml/v2"
	"seehuhn.de/go/geom/vec"
	"seehuhn.de/go/mems"
)

// Job is the contents of a job file.
type Job struct {
	PixelSize      float64 `toml:"pixel_size"`       // mask pixel size, in layout units
	PDFScale       float64 `toml:"pdf_scale"`        // PDF points per layout unit
	DeepEtchOffset float64 `toml:"deep_etch_offset"` // 0 disables deep-etch masks

	Paths []PathJob `toml:"path"`
	Beams []BeamJob `toml:"beam"`
}

// PathJob describes one smoothed path.
type PathJob struct {
	Name      string      `toml:"name"`
	Waypoints [][]float64 `toml:"waypoints"`
	R1        any         `toml:"r1"` // number, or one number per bend
	R2        any         `toml:"r2"` // number, or one number per bend
	Samples   int         `toml:"samples"`
}

// BeamJob describes one beam with transition supports.
type BeamJob struct {
	Name    string  `toml:"name"`
	Kind    string  `toml:"kind"` // "doubly_clamped" or "cantilever"
	Width   float64 `toml:"width"`
	Length  float64 `toml:"length"`
	Support any     `toml:"support"` // number, or [width, height]
}

// Defaults for job settings which are not given in the file.
const (
	defaultPixelSize = 0.05
	defaultPDFScale  = 20
	defaultTangent   = 4
)

var errJob = errors.New("invalid job")

// loadJob reads and checks a job file.
func loadJob(fname string) (*Job, error) {
	f, err := os.Open(fname)
	if err != nil {
		return nil, err
	}
	defer f.Close()

	job := &Job{
		PixelSize: defaultPixelSize,
		PDFScale:  defaultPDFScale,
	}
	dec := toml.NewDecoder(f).DisallowUnknownFields()
	if err := dec.Decode(job); err != nil {
		return nil, fmt.Errorf("%s: %w", fname, err)
	}

	if job.PixelSize <= 0 || job.PDFScale <= 0 || job.DeepEtchOffset < 0 {
		return nil, fmt.Errorf("%s: %w: pixel_size, pdf_scale and deep_etch_offset out of range", fname, errJob)
	}
	names := make(map[string]bool)
	for _, name := range job.names() {
		if name == "" {
			return nil, fmt.Errorf("%s: %w: missing name", fname, errJob)
		}
		if strings.ContainsAny(name, `/\`) || name == "." || name == ".." {
			return nil, fmt.Errorf("%s: %w: invalid name %q", fname, errJob, name)
		}
		if names[name] {
			return nil, fmt.Errorf("%s: %w: duplicate name %q", fname, errJob, name)
		}
		names[name] = true
	}
	return job, nil
}

func (job *Job) names() []string {
	var res []string
	for _, p := range job.Paths {
		res = append(res, p.Name)
	}
	for _, b := range job.Beams {
		res = append(res, b.Name)
	}
	return res
}

// Build computes the smoothed path.
func (p *PathJob) Build() ([]vec.Vec2, error) {
	waypoints := make([]vec.Vec2, len(p.Waypoints))
	for i, w := range p.Waypoints {
		if len(w) != 2 {
			return nil, fmt.Errorf("path %q: %w: waypoint %d has %d coordinates", p.Name, errJob, i, len(w))
		}
		waypoints[i] = vec.Vec2{X: w[0], Y: w[1]}
	}
	r1, err := tangents(p.R1)
	if err != nil {
		return nil, fmt.Errorf("path %q: r1: %w", p.Name, err)
	}
	r2, err := tangents(p.R2)
	if err != nil {
		return nil, fmt.Errorf("path %q: r2: %w", p.Name, err)
	}

	pts, err := mems.SmoothPath(waypoints, r1, r2, p.Samples)
	if err != nil {
		return nil, fmt.Errorf("path %q: %w", p.Name, err)
	}
	return pts, nil
}

// Build constructs the beam cell.
func (b *BeamJob) Build() (*mems.Cell, error) {
	s, err := support(b.Support)
	if err != nil {
		return nil, fmt.Errorf("beam %q: support: %w", b.Name, err)
	}

	var c *mems.Cell
	switch b.Kind {
	case "doubly_clamped", "":
		c, err = mems.DoublyClampedBeam(b.Width, b.Length, s)
	case "cantilever":
		c, err = mems.CantileverBeam(b.Width, b.Length, s)
	default:
		err = fmt.Errorf("%w: unknown beam kind %q", errJob, b.Kind)
	}
	if err != nil {
		return nil, fmt.Errorf("beam %q: %w", b.Name, err)
	}
	c.Name = b.Name
	return c, nil
}

// etchMargins returns the horizontal and vertical deep-etch margins for
// the beam.  Both ends of a doubly clamped beam are anchored, so the etch
// ends flush with the support bases.
func (b *BeamJob) etchMargins(offset float64) (dx, dy float64) {
	if b.Kind == "cantilever" {
		return offset, offset
	}
	return 0, offset
}

// tangents converts a TOML value into tangent lengths.
func tangents(v any) (mems.Tangents, error) {
	switch v := v.(type) {
	case nil:
		return mems.Uniform(defaultTangent), nil
	case []any:
		rs := make([]float64, len(v))
		for i, x := range v {
			r, ok := number(x)
			if !ok {
				return mems.Tangents{}, fmt.Errorf("%w: entry %d is not a number", errJob, i)
			}
			rs[i] = r
		}
		return mems.PerBend(rs...), nil
	default:
		r, ok := number(v)
		if !ok {
			return mems.Tangents{}, fmt.Errorf("%w: %v is not a number or list", errJob, v)
		}
		return mems.Uniform(r), nil
	}
}

// support converts a TOML value into a support description.
func support(v any) (mems.Support, error) {
	if l, ok := number(v); ok {
		return mems.UniformSupport(l), nil
	}
	if list, ok := v.([]any); ok && len(list) == 2 {
		w, okW := number(list[0])
		h, okH := number(list[1])
		if okW && okH {
			return mems.Support{Width: w, Height: h}, nil
		}
	}
	return mems.Support{}, fmt.Errorf("%w: need a number or [width, height]", errJob)
}

func number(v any) (float64, bool) {
	switch v := v.(type) {
	case float64:
		return v, true
	case int64:
		return float64(v), true
	}
	return 0, false
}
