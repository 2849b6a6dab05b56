package mems

import (
	"bytes"
	"errors"
	"image/png"
	"math"
	"testing"

	"seehuhn.de/go/geom/vec"
)

// polygonArea returns the area of a simple polygon, using the shoelace
// formula.
func polygonArea(pts []vec.Vec2) float64 {
	return math.Abs(signedArea(pts))
}

func TestMaskOrientation(t *testing.T) {
	c := &Cell{
		Polygons: []Polygon{
			square(LayerCore, 0, 1, 1),
			square(LayerCore, 1, 0, 1),
		},
	}
	m, err := RenderMask(c, LayerCore, 1)
	if err != nil {
		t.Fatal(err)
	}

	if b := m.Img.Bounds(); b.Dx() != 2 || b.Dy() != 2 {
		t.Fatalf("mask size %v, want 2x2", b)
	}
	want := [2][2]uint8{{255, 0}, {0, 255}}
	for y := range 2 {
		for x := range 2 {
			if got := m.Img.AlphaAt(x, y).A; got != want[y][x] {
				t.Errorf("pixel (%d, %d): got %d, want %d", x, y, got, want[y][x])
			}
		}
	}
}

func TestMaskArea(t *testing.T) {
	c := &Cell{Polygons: []Polygon{square(LayerCore, 0.1, 0.3, 2)}}
	m, err := RenderMask(c, LayerCore, 0.25)
	if err != nil {
		t.Fatal(err)
	}
	if got := m.Area(); math.Abs(got-4) > 1e-2 {
		t.Errorf("area %g, want 4", got)
	}

	s, err := TransitionSupport(Support{Width: 4, Height: 3}, 0.5, SupportSamples)
	if err != nil {
		t.Fatal(err)
	}
	m, err = RenderMask(s, LayerCore, 0.02)
	if err != nil {
		t.Fatal(err)
	}
	want := polygonArea(s.Polygons[0].Points)
	if got := m.Area(); math.Abs(got-want) > 0.005*want {
		t.Errorf("support area %g, want %g", got, want)
	}
}

func TestRenderDeepEtch(t *testing.T) {
	c := &Cell{Polygons: []Polygon{square(LayerCore, 0, 0, 2)}}
	c.AddDeepEtch(1, 1)

	m, err := RenderDeepEtch(c, 0.25)
	if err != nil {
		t.Fatal(err)
	}
	if got := m.Area(); math.Abs(got-12) > 1e-2 {
		t.Errorf("deep etch area %g, want 12", got)
	}

	// the mask covers [-1, 3]², pixel (7, 7) lies inside the core
	if got := m.Img.AlphaAt(7, 7).A; got != 0 {
		t.Errorf("core pixel has etch value %d", got)
	}
	if got := m.Img.AlphaAt(0, 0).A; got != 255 {
		t.Errorf("corner pixel has etch value %d", got)
	}
}

func TestDeepEtchBeam(t *testing.T) {
	c, err := DoublyClampedBeam(0.5, 20, Support{Width: 4, Height: 2})
	if err != nil {
		t.Fatal(err)
	}
	c.AddDeepEtch(2, 2)

	core, err := RenderMask(c, LayerCore, 0.05)
	if err != nil {
		t.Fatal(err)
	}
	etch, err := RenderDeepEtch(c, 0.05)
	if err != nil {
		t.Fatal(err)
	}

	box, _ := c.BBox(LayerDeepEtch)
	boxArea := (box.URx - box.LLx) * (box.URy - box.LLy)
	got := core.Area() + etch.Area()
	if math.Abs(got-boxArea) > 0.005*boxArea {
		t.Errorf("core + etch area %g, want %g", got, boxArea)
	}
}

// TestBeamSeams checks that the joins between beam body and supports are
// filled when they do not fall on a pixel boundary.
func TestBeamSeams(t *testing.T) {
	const ps = 0.05
	cases := []struct {
		length float64
		s      Support
	}{
		{40, UniformSupport(3)},
		{40.025, UniformSupport(3)},
		{40.025, Support{Width: 3, Height: 2.97}},
		{17.3, Support{Width: 2.5, Height: 1.01}},
	}
	for _, tc := range cases {
		c, err := DoublyClampedBeam(0.5, tc.length, tc.s)
		if err != nil {
			t.Fatal(err)
		}
		c.AddDeepEtch(0, 1)

		core, err := RenderMask(c, LayerCore, ps)
		if err != nil {
			t.Fatal(err)
		}
		etch, err := RenderDeepEtch(c, ps)
		if err != nil {
			t.Fatal(err)
		}

		// the pixel row just above the beam axis, from the left support
		// base to the right support base
		left := apply(core.CTM, vec.Vec2{X: -tc.s.Height})
		right := apply(core.CTM, vec.Vec2{X: tc.length + tc.s.Height})
		y := int(math.Floor(left.Y)) - 1
		for x := int(math.Ceil(left.X)) + 1; x < int(math.Floor(right.X))-1; x++ {
			if v := core.Img.AlphaAt(x, y).A; v != 255 {
				t.Errorf("length %g, support %v: core pixel (%d, %d) is %d",
					tc.length, tc.s, x, y, v)
			}
			if v := etch.Img.AlphaAt(x, y).A; v != 0 {
				t.Errorf("length %g, support %v: etch pixel (%d, %d) is %d",
					tc.length, tc.s, x, y, v)
			}
		}

		// the seam at the right end of the beam body
		seam := apply(core.CTM, vec.Vec2{X: tc.length})
		x := int(math.Floor(seam.X))
		if v := core.Img.AlphaAt(x, y).A; v != 255 {
			t.Errorf("length %g: seam pixel is %d in the core mask", tc.length, v)
		}
		if v := etch.Img.AlphaAt(x, y).A; v != 0 {
			t.Errorf("length %g: seam pixel is %d in the deep-etch mask", tc.length, v)
		}
	}
}

func TestMaskErrors(t *testing.T) {
	c := &Cell{Polygons: []Polygon{square(LayerCore, 0, 0, 1)}}
	for _, ps := range []float64{0, -1, math.NaN(), math.Inf(1)} {
		if _, err := NewMask(c, ps); !errors.Is(err, ErrMalformed) {
			t.Errorf("pixel size %g: got %v", ps, err)
		}
	}
	if _, err := NewMask(&Cell{}, 1); !errors.Is(err, ErrMalformed) {
		t.Errorf("empty cell: got %v", err)
	}
	if _, err := NewMask(c, 1e-6); !errors.Is(err, ErrMalformed) {
		t.Errorf("huge mask: got %v", err)
	}

	a, _ := NewMask(c, 0.5)
	b, _ := NewMask(c, 0.25)
	if err := a.Subtract(b); err != errMaskSize {
		t.Errorf("mismatched masks: got %v", err)
	}
}

func TestMaskPNG(t *testing.T) {
	c := &Cell{Polygons: []Polygon{square(LayerCore, 0, 0, 3)}}
	m, err := RenderMask(c, LayerCore, 0.5)
	if err != nil {
		t.Fatal(err)
	}

	buf := &bytes.Buffer{}
	if err := m.WritePNG(buf); err != nil {
		t.Fatal(err)
	}
	img, err := png.Decode(buf)
	if err != nil {
		t.Fatal(err)
	}
	if img.Bounds() != m.Img.Bounds() {
		t.Errorf("PNG bounds %v, want %v", img.Bounds(), m.Img.Bounds())
	}
	r, _, _, _ := img.At(2, 3).RGBA()
	if r != 0xffff {
		t.Errorf("PNG pixel value %#x, want 0xffff", r)
	}
}
