package floor

import (
	"math"
	"testing"

	"github.com/google/go-cmp/cmp"
	"github.com/google/go-cmp/cmp/cmpopts"
)

var approx = cmpopts.EquateApprox(0, 1e-9)

func TestDerivFromDifferentials(t *testing.T) {
	got := DerivFromDifferentials(V2(3, 1), V2(4, -1))
	want := V2(5, math.Sqrt2)
	if diff := cmp.Diff(want, got, approx); diff != "" {
		t.Errorf("DerivFromDifferentials mismatch (-want +got):\n%s", diff)
	}
}

func TestAffineMap_Deriv(t *testing.T) {
	tests := []struct {
		name string
		m    Matrix
		want Vec2
	}{
		{"identity", Identity(), V2(1, 1)},
		{"scale", Scale(0.01, 0.02), V2(0.01, 0.02)},
		{"flip", Scale(0.5, -0.5), V2(0.5, 0.5)},
		{"translate has no effect", Translate(3, 4).Multiply(Scale(2, 3)), V2(2, 3)},
		{"rotate 90", Rotate(math.Pi / 2), V2(1, 1)},
		{"rotate 45", Scale(0.1, 0.1).Multiply(Rotate(math.Pi / 4)), V2(0.1, 0.1)},
		{"shear", Matrix{A: 1, B: 1, D: 0, E: 1}, V2(math.Sqrt2, 1)},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			a := AffineMap{M: tt.m}
			if diff := cmp.Diff(tt.want, a.Deriv(17, 3), approx); diff != "" {
				t.Errorf("Deriv mismatch (-want +got):\n%s", diff)
			}
			if diff := cmp.Diff(a.BaseDeriv(), FiniteDifference(a, 17, 3), approx); diff != "" {
				t.Errorf("FiniteDifference disagrees with analytic derivative (-want +got):\n%s", diff)
			}
		})
	}
}

func TestSampleAt_UsesAnalyticDerivative(t *testing.T) {
	a := AffineMap{M: Scale(-0.25, 0.5)}
	s := SampleAt(a, 2, 4)

	if s.Coord != V2(-0.5, 2) {
		t.Errorf("Coord = %v, want (-0.5, 2)", s.Coord)
	}
	if s.Deriv != V2(0.25, 0.5) {
		t.Errorf("Deriv = %v, want (0.25, 0.5)", s.Deriv)
	}
}

func TestSampleAt_FiniteDifference(t *testing.T) {
	// A non-affine map: the derivative grows with distance.
	m := MapFunc(func(px, py float64) Vec2 {
		return V2(px*px/100, py/10)
	})

	s := SampleAt(m, 10, 0)
	want := Sample{Coord: V2(1, 0), Deriv: V2(0.21, 0.1)}
	if diff := cmp.Diff(want, s, approx); diff != "" {
		t.Errorf("SampleAt mismatch (-want +got):\n%s", diff)
	}
}

func TestView_Map(t *testing.T) {
	cfg := DefaultConfig()
	cfg.FloorSize = 100

	v := View{CenterX: 10, CenterY: -20, PixelsPerUnit: 4}
	m := v.Map(cfg, 200, 100)

	tests := []struct {
		name   string
		px, py float64
		want   Vec2
	}{
		// Image center shows the view center.
		{"center", 100, 50, V2(0.5+10.0/100, 0.5-20.0/100)},
		// 40 px right is 10 world units.
		{"right", 140, 50, V2(0.5+20.0/100, 0.5-20.0/100)},
		// Up the image is +Y in the world.
		{"up", 100, 10, V2(0.5+10.0/100, 0.5-10.0/100)},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if diff := cmp.Diff(tt.want, m.Coord(tt.px, tt.py), approx); diff != "" {
				t.Errorf("Coord mismatch (-want +got):\n%s", diff)
			}
		})
	}

	if diff := cmp.Diff(V2(1.0/400, 1.0/400), m.BaseDeriv(), approx); diff != "" {
		t.Errorf("BaseDeriv mismatch (-want +got):\n%s", diff)
	}
}

func TestView_MapOriginIsAxisIntersection(t *testing.T) {
	cfg := DefaultConfig()
	v := View{PixelsPerUnit: 20}
	m := v.Map(cfg, 64, 64)

	s := SampleAt(m, 32, 32)
	if diff := cmp.Diff(V2(0.5, 0.5), s.Coord, approx); diff != "" {
		t.Fatalf("origin mismatch (-want +got):\n%s", diff)
	}
	if l := EvaluateLayers(s, cfg); l.Axis != 1 {
		t.Errorf("axis occupancy at world origin = %v, want 1", l.Axis)
	}
}

func TestView_MapGuardsZoom(t *testing.T) {
	cfg := DefaultConfig()
	got := View{PixelsPerUnit: 0}.Map(cfg, 10, 10).BaseDeriv()
	want := View{PixelsPerUnit: 1}.Map(cfg, 10, 10).BaseDeriv()
	if diff := cmp.Diff(want, got, approx); diff != "" {
		t.Errorf("zero zoom mismatch (-want +got):\n%s", diff)
	}
}

func TestView_MapRotation(t *testing.T) {
	cfg := DefaultConfig()
	cfg.FloorSize = 10

	m := View{PixelsPerUnit: 1, Rotation: math.Pi / 2}.Map(cfg, 20, 20)
	// One pixel right turns into one world unit along +Y.
	if diff := cmp.Diff(V2(0.5, 0.5+0.1), m.Coord(11, 10), approx); diff != "" {
		t.Errorf("rotated Coord mismatch (-want +got):\n%s", diff)
	}
}

func TestView_WorldPixelInverse(t *testing.T) {
	views := []View{
		{PixelsPerUnit: 4},
		{CenterX: 12, CenterY: -3, PixelsPerUnit: 0.5},
		{CenterX: -1, CenterY: 7, PixelsPerUnit: 16, Rotation: 0.7},
	}
	for _, v := range views {
		for _, px := range []Vec2{V2(0, 0), V2(50, 25), V2(99.5, 0.5)} {
			w := v.World(px.X, px.Y, 100, 60)
			if diff := cmp.Diff(px, v.Pixel(w, 100, 60), approx); diff != "" {
				t.Errorf("%+v: Pixel(World(%v)) mismatch (-want +got):\n%s", v, px, diff)
			}
		}
	}
}

func TestView_WorldAtCenter(t *testing.T) {
	v := View{CenterX: 3, CenterY: 4, PixelsPerUnit: 10}
	if diff := cmp.Diff(V2(3, 4), v.World(50, 30, 100, 60), approx); diff != "" {
		t.Errorf("World at image center mismatch (-want +got):\n%s", diff)
	}
	// World +Y points up the image.
	if diff := cmp.Diff(V2(3, 5), v.World(50, 20, 100, 60), approx); diff != "" {
		t.Errorf("World above center mismatch (-want +got):\n%s", diff)
	}
}

func TestView_ZoomAt(t *testing.T) {
	tests := []struct {
		name   string
		v      View
		factor float64
		px, py float64
	}{
		{"zoom in at corner", View{PixelsPerUnit: 8}, 2, 0, 0},
		{"zoom out off center", View{CenterX: 5, CenterY: 1, PixelsPerUnit: 8}, 0.5, 70, 10},
		{"rotated", View{PixelsPerUnit: 3, Rotation: 1.2}, 1.25, 20, 45},
		{"unset zoom", View{}, 4, 90, 50},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			before := tt.v.World(tt.px, tt.py, 100, 60)
			z := tt.v.ZoomAt(tt.factor, tt.px, tt.py, 100, 60)
			if diff := cmp.Diff(before, z.World(tt.px, tt.py, 100, 60), approx); diff != "" {
				t.Errorf("anchor moved (-want +got):\n%s", diff)
			}
			if want := tt.v.zoom() * tt.factor; z.PixelsPerUnit != want {
				t.Errorf("PixelsPerUnit = %v, want %v", z.PixelsPerUnit, want)
			}
		})
	}
}
