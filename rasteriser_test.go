package mems

import (
	"math"
	"testing"

	"seehuhn.de/go/geom/matrix"
	"seehuhn.de/go/geom/path"
	"seehuhn.de/go/geom/rect"
	"seehuhn.de/go/geom/vec"
)

func rectPath(p *path.Data, x0, y0, x1, y1 float64) *path.Data {
	return p.
		MoveTo(vec.Vec2{X: x0, Y: y0}).
		LineTo(vec.Vec2{X: x1, Y: y0}).
		LineTo(vec.Vec2{X: x1, Y: y1}).
		LineTo(vec.Vec2{X: x0, Y: y1}).
		Close()
}

// circlePath approximates a circle by four cubic Bézier arcs.
func circlePath(cx, cy, radius float64) *path.Data {
	const k = 0.5522847498
	r, kr := radius, k*radius
	return (&path.Data{}).
		MoveTo(vec.Vec2{X: cx + r, Y: cy}).
		CubeTo(vec.Vec2{X: cx + r, Y: cy + kr}, vec.Vec2{X: cx + kr, Y: cy + r}, vec.Vec2{X: cx, Y: cy + r}).
		CubeTo(vec.Vec2{X: cx - kr, Y: cy + r}, vec.Vec2{X: cx - r, Y: cy + kr}, vec.Vec2{X: cx - r, Y: cy}).
		CubeTo(vec.Vec2{X: cx - r, Y: cy - kr}, vec.Vec2{X: cx - kr, Y: cy - r}, vec.Vec2{X: cx, Y: cy - r}).
		CubeTo(vec.Vec2{X: cx + kr, Y: cy - r}, vec.Vec2{X: cx + r, Y: cy - kr}, vec.Vec2{X: cx + r, Y: cy}).
		Close()
}

// coverage rasterises p and returns the pixel values as a map.
func coverage(t *testing.T, r *Rasteriser, p *path.Data, evenOdd bool) map[[2]int]float64 {
	t.Helper()
	res := make(map[[2]int]float64)
	emit := func(y, xMin int, row []float32) {
		if y < int(r.Clip.LLy) || y >= int(r.Clip.URy) {
			t.Errorf("row %d outside the clip rectangle", y)
		}
		if xMin < int(r.Clip.LLx) || xMin+len(row) > int(r.Clip.URx) {
			t.Errorf("row %d: columns [%d, %d) outside the clip rectangle", y, xMin, xMin+len(row))
		}
		for i, c := range row {
			if c < 0 || c > 1 {
				t.Errorf("pixel (%d, %d): coverage %g", xMin+i, y, c)
			}
			res[[2]int{xMin + i, y}] = float64(c)
		}
	}
	if evenOdd {
		r.FillEvenOdd(p, emit)
	} else {
		r.FillNonZero(p, emit)
	}
	return res
}

func total(pix map[[2]int]float64) float64 {
	var sum float64
	for _, c := range pix {
		sum += c
	}
	return sum
}

func TestRasteriserRect(t *testing.T) {
	r := NewRasteriser(rect.Rect{URx: 10, URy: 10})
	pix := coverage(t, r, rectPath(&path.Data{}, 2, 3, 6, 7), false)

	if got := total(pix); math.Abs(got-16) > 1e-4 {
		t.Errorf("area %g, want 16", got)
	}
	for y := range 10 {
		for x := range 10 {
			want := 0.0
			if x >= 2 && x < 6 && y >= 3 && y < 7 {
				want = 1
			}
			if got := pix[[2]int{x, y}]; math.Abs(got-want) > 1e-5 {
				t.Errorf("pixel (%d, %d): got %g, want %g", x, y, got, want)
			}
		}
	}
}

func TestRasteriserSubpixel(t *testing.T) {
	r := NewRasteriser(rect.Rect{URx: 10, URy: 10})
	pix := coverage(t, r, rectPath(&path.Data{}, 2.5, 3, 6.5, 7), false)

	if got := total(pix); math.Abs(got-16) > 1e-4 {
		t.Errorf("area %g, want 16", got)
	}
	for _, x := range []int{2, 6} {
		if got := pix[[2]int{x, 4}]; math.Abs(got-0.5) > 1e-5 {
			t.Errorf("pixel (%d, 4): got %g, want 0.5", x, got)
		}
	}
	if got := pix[[2]int{4, 4}]; math.Abs(got-1) > 1e-5 {
		t.Errorf("pixel (4, 4): got %g, want 1", got)
	}
}

func TestRasteriserFillRules(t *testing.T) {
	// two nested squares with the same orientation
	p := rectPath(&path.Data{}, 1, 1, 9, 9)
	p = rectPath(p, 3, 3, 7, 7)

	r := NewRasteriser(rect.Rect{URx: 10, URy: 10})
	if got := total(coverage(t, r, p, false)); math.Abs(got-64) > 1e-4 {
		t.Errorf("nonzero: area %g, want 64", got)
	}
	r.Reset(rect.Rect{URx: 10, URy: 10})
	pix := coverage(t, r, p, true)
	if got := total(pix); math.Abs(got-48) > 1e-4 {
		t.Errorf("even-odd: area %g, want 48", got)
	}
	if got := pix[[2]int{5, 5}]; got != 0 {
		t.Errorf("even-odd: hole has coverage %g", got)
	}
}

func TestRasteriserCircle(t *testing.T) {
	r := NewRasteriser(rect.Rect{URx: 100, URy: 100})
	got := total(coverage(t, r, circlePath(50, 50, 40), false))
	want := math.Pi * 40 * 40

	// flattening cuts off a thin sliver along the boundary
	if math.Abs(got-want) > 0.01*want {
		t.Errorf("area %g, want %g", got, want)
	}
}

func TestRasteriserCTM(t *testing.T) {
	r := NewRasteriser(rect.Rect{URx: 20, URy: 20})
	r.CTM = matrix.Matrix{4, 0, 0, -4, 2, 18}
	pix := coverage(t, r, rectPath(&path.Data{}, 0, 0, 2, 3), false)

	if got := total(pix); math.Abs(got-96) > 1e-3 {
		t.Errorf("area %g, want 96", got)
	}
	if pix[[2]int{3, 17}] != 1 || pix[[2]int{3, 18}] != 0 {
		t.Error("rectangle is not placed at the device origin")
	}
}

func TestRasteriserClip(t *testing.T) {
	r := NewRasteriser(rect.Rect{URx: 10, URy: 10})
	pix := coverage(t, r, rectPath(&path.Data{}, -5, -5, 5, 5), false)
	if got := total(pix); math.Abs(got-25) > 1e-4 {
		t.Errorf("area %g, want 25", got)
	}

	r.Reset(rect.Rect{URx: 10, URy: 10})
	pix = coverage(t, r, rectPath(&path.Data{}, 12, 2, 15, 4), false)
	if len(pix) != 0 {
		t.Errorf("path outside the clip rectangle produced %d pixels", len(pix))
	}
}

func TestRasteriserEmpty(t *testing.T) {
	r := NewRasteriser(rect.Rect{URx: 10, URy: 10})
	r.FillNonZero(&path.Data{}, func(y, xMin int, coverage []float32) {
		t.Error("empty path produced output")
	})

	// a degenerate, horizontal polygon
	p := (&path.Data{}).
		MoveTo(vec.Vec2{X: 1, Y: 1}).
		LineTo(vec.Vec2{X: 8, Y: 1}).
		Close()
	r.FillNonZero(p, func(y, xMin int, coverage []float32) {
		t.Error("degenerate path produced output")
	})
}
