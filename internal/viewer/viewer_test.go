package viewer

import (
	"context"
	"strings"
	"testing"

	"github.com/google/go-cmp/cmp"
	"github.com/google/go-cmp/cmp/cmpopts"

	"github.com/gogpu/floor"
)

func newTestController(t *testing.T) *Controller {
	t.Helper()
	r := floor.NewRenderer(floor.WithWorkers(2))
	t.Cleanup(r.Close)
	return New(floor.NewStore(floor.DefaultParams()), r, floor.View{PixelsPerUnit: 8}, 32, 24)
}

func TestFrame_RendersOnlyOnChange(t *testing.T) {
	c := newTestController(t)
	ctx := context.Background()

	steps := []struct {
		name   string
		change func()
		w, h   int
		want   bool
	}{
		{"first frame", func() {}, 32, 24, true},
		{"unchanged", func() {}, 32, 24, false},
		{"pan", func() { c.Pan(3, 0) }, 32, 24, true},
		{"unchanged after pan", func() {}, 32, 24, false},
		{"zoom", func() { c.Zoom(2, 16, 12) }, 32, 24, true},
		{"resize", func() {}, 40, 24, true},
		{"thickness", func() { c.AdjustThickness(1) }, 40, 24, true},
		{"select only", func() { c.Select(LayerAxis) }, 40, 24, false},
	}
	for _, s := range steps {
		s.change()
		pm, rendered, err := c.Frame(ctx, s.w, s.h)
		if err != nil {
			t.Fatalf("%s: Frame() error = %v", s.name, err)
		}
		if rendered != s.want {
			t.Errorf("%s: rendered = %v, want %v", s.name, rendered, s.want)
		}
		if pm.Width() != s.w || pm.Height() != s.h {
			t.Errorf("%s: frame size = %dx%d, want %dx%d", s.name, pm.Width(), pm.Height(), s.w, s.h)
		}
	}
}

func TestFrame_ExternalPublication(t *testing.T) {
	store := floor.NewStore(floor.DefaultParams())
	r := floor.NewRenderer(floor.WithWorkers(1))
	defer r.Close()
	c := New(store, r, floor.View{PixelsPerUnit: 8}, 16, 16)

	if _, _, err := c.Frame(context.Background(), 16, 16); err != nil {
		t.Fatal(err)
	}
	p := floor.DefaultParams()
	p.LightColor = "#000000"
	store.Publish(p)

	pm, rendered, err := c.Frame(context.Background(), 16, 16)
	if err != nil {
		t.Fatal(err)
	}
	if !rendered {
		t.Error("publication did not trigger a render")
	}
	if got := pm.GetPixel(1, 1); got.R > 0.5 {
		t.Errorf("pixel = %+v, want the dark light color", got)
	}
}

func TestFrame_InvalidSize(t *testing.T) {
	c := newTestController(t)
	if _, _, err := c.Frame(context.Background(), 0, 10); err == nil {
		t.Error("Frame(0x10) succeeded, want error")
	}
}

func TestAdjustThickness(t *testing.T) {
	tests := []struct {
		layer Layer
		steps int
		get   func(floor.Params) float64
		want  float64
	}{
		{LayerMinor, 2, func(p floor.Params) float64 { return p.MinorGridlineThickness }, 1.45 + 2*ThicknessNudge},
		{LayerMajor, -3, func(p floor.Params) float64 { return p.MajorGridlineThickness }, 1 - 3*ThicknessNudge},
		{LayerAxis, 5, func(p floor.Params) float64 { return p.AxisThickness }, 0.5 + 5*AxisNudge},
		{LayerAxis, -100, func(p floor.Params) float64 { return p.AxisThickness }, floor.Ranges.AxisThickness.Min},
		{LayerMinor, 1000, func(p floor.Params) float64 { return p.MinorGridlineThickness }, floor.Ranges.MinorGridlineThickness.Max},
	}
	for _, tt := range tests {
		t.Run(tt.layer.String(), func(t *testing.T) {
			c := newTestController(t)
			c.Select(tt.layer)
			if gen := c.AdjustThickness(tt.steps); gen != 2 {
				t.Errorf("generation = %d, want 2", gen)
			}
			if diff := cmp.Diff(tt.want, tt.get(c.store.Params()), cmpopts.EquateApprox(0, 1e-12)); diff != "" {
				t.Errorf("thickness mismatch (-want +got):\n%s", diff)
			}
		})
	}
}

func TestSelect_IgnoresUnknownLayer(t *testing.T) {
	c := newTestController(t)
	c.Select(LayerMajor)
	c.Select(Layer(7))
	if c.Layer() != LayerMajor {
		t.Errorf("Layer() = %v, want major", c.Layer())
	}
	if got := Layer(7).String(); got != "Layer(7)" {
		t.Errorf("String() = %q", got)
	}
}

func TestPan(t *testing.T) {
	c := newTestController(t)
	before := c.View().World(10, 10, 32, 24)
	c.Pan(5, -2)
	// The world point that was at (10, 10) is now at (15, 8).
	after := c.View().World(15, 8, 32, 24)
	if diff := cmp.Diff(before, after, cmpopts.EquateApprox(0, 1e-9)); diff != "" {
		t.Errorf("pan mismatch (-want +got):\n%s", diff)
	}
}

func TestZoom_IgnoresNonPositiveFactor(t *testing.T) {
	c := newTestController(t)
	v := c.View()
	c.Zoom(0, 1, 1)
	c.Zoom(-2, 1, 1)
	if c.View() != v {
		t.Errorf("View() = %+v, want unchanged %+v", c.View(), v)
	}
}

func TestStatus(t *testing.T) {
	c := newTestController(t)
	c.Select(LayerAxis)
	s := c.Status(16, 12)
	for _, want := range []string{"zoom 8", "cursor (0.00, 0.00)", "axis thickness 0.500", "gen 1"} {
		if !strings.Contains(s, want) {
			t.Errorf("Status() = %q, missing %q", s, want)
		}
	}
}
