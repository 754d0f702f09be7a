// Command floorview shows the procedural floor in a window and lets the
// grid be tuned live.
//
// Keys:
//
//	arrows      pan
//	Q / E       zoom out / in (mouse wheel zooms at the cursor)
//	1 / 2 / 3   select the minor, major or axis layer
//	= / -       thicken or thin the selected layer
//	Escape      quit
package main

import (
	"context"
	"errors"
	"flag"
	"fmt"
	"log"
	"log/slog"
	"os"

	"github.com/hajimehoshi/ebiten/v2"
	"github.com/hajimehoshi/ebiten/v2/ebitenutil"
	"github.com/hajimehoshi/ebiten/v2/inpututil"

	"github.com/gogpu/floor"
	"github.com/gogpu/floor/hclconfig"
	"github.com/gogpu/floor/internal/viewer"
)

const (
	panSpeed  = 8     // pixels per tick
	zoomStep  = 1.02  // per tick while Q or E is held
	wheelStep = 1.125 // per wheel notch
)

var errQuit = errors.New("quit")

func main() {
	var (
		config  = flag.String("config", "", "HCL configuration file (defaults when empty)")
		width   = flag.Int("width", 1024, "window width")
		height  = flag.Int("height", 640, "window height")
		ppu     = flag.Float64("ppu", 8, "initial pixels per world unit")
		workers = flag.Int("workers", 0, "render workers (0 = GOMAXPROCS)")
		verbose = flag.Bool("v", false, "verbose logging")
	)
	flag.Parse()

	level := slog.LevelWarn
	if *verbose {
		level = slog.LevelDebug
	}
	floor.SetLogger(slog.New(slog.NewTextHandler(os.Stderr, &slog.HandlerOptions{Level: level})))

	params := floor.DefaultParams()
	if *config != "" {
		p, err := hclconfig.Load(*config)
		if err != nil {
			log.Fatalf("floorview: %v", err)
		}
		params = p
	}

	r := floor.NewRenderer(floor.WithWorkers(*workers))
	defer r.Close()

	g := &game{
		ctl: viewer.New(floor.NewStore(params), r, floor.View{PixelsPerUnit: *ppu}, *width, *height),
	}
	ebiten.SetWindowTitle("floorview")
	ebiten.SetWindowSize(*width, *height)
	ebiten.SetWindowResizingMode(ebiten.WindowResizingModeEnabled)
	ebiten.SetTPS(60)
	if err := ebiten.RunGame(g); err != nil && !errors.Is(err, errQuit) {
		log.Fatalf("floorview: %v", err)
	}
}

type game struct {
	ctl *viewer.Controller

	img           *ebiten.Image
	width, height int
}

func (g *game) Update() error {
	if inpututil.IsKeyJustPressed(ebiten.KeyEscape) {
		return errQuit
	}

	var dx, dy float64
	if ebiten.IsKeyPressed(ebiten.KeyArrowLeft) {
		dx += panSpeed
	}
	if ebiten.IsKeyPressed(ebiten.KeyArrowRight) {
		dx -= panSpeed
	}
	if ebiten.IsKeyPressed(ebiten.KeyArrowUp) {
		dy += panSpeed
	}
	if ebiten.IsKeyPressed(ebiten.KeyArrowDown) {
		dy -= panSpeed
	}
	if dx != 0 || dy != 0 {
		g.ctl.Pan(dx, dy)
	}

	cx, cy := float64(g.width)/2, float64(g.height)/2
	if ebiten.IsKeyPressed(ebiten.KeyE) {
		g.ctl.Zoom(zoomStep, cx, cy)
	}
	if ebiten.IsKeyPressed(ebiten.KeyQ) {
		g.ctl.Zoom(1/zoomStep, cx, cy)
	}
	if _, wy := ebiten.Wheel(); wy != 0 {
		mx, my := ebiten.CursorPosition()
		f := wheelStep
		if wy < 0 {
			f = 1 / wheelStep
		}
		g.ctl.Zoom(f, float64(mx), float64(my))
	}

	for key, layer := range map[ebiten.Key]viewer.Layer{
		ebiten.Key1: viewer.LayerMinor,
		ebiten.Key2: viewer.LayerMajor,
		ebiten.Key3: viewer.LayerAxis,
	} {
		if inpututil.IsKeyJustPressed(key) {
			g.ctl.Select(layer)
		}
	}
	if inpututil.IsKeyJustPressed(ebiten.KeyEqual) {
		g.ctl.AdjustThickness(1)
	}
	if inpututil.IsKeyJustPressed(ebiten.KeyMinus) {
		g.ctl.AdjustThickness(-1)
	}
	return nil
}

func (g *game) Draw(screen *ebiten.Image) {
	pm, rendered, err := g.ctl.Frame(context.Background(), g.width, g.height)
	if err != nil {
		ebitenutil.DebugPrint(screen, fmt.Sprintf("render failed: %v", err))
		return
	}
	if g.img == nil || g.img.Bounds().Dx() != pm.Width() || g.img.Bounds().Dy() != pm.Height() {
		if g.img != nil {
			g.img.Deallocate()
		}
		g.img = ebiten.NewImage(pm.Width(), pm.Height())
		rendered = true
	}
	if rendered {
		g.img.WritePixels(pm.Data())
	}
	screen.DrawImage(g.img, nil)

	mx, my := ebiten.CursorPosition()
	ebitenutil.DebugPrint(screen, g.ctl.Status(float64(mx), float64(my)))
}

func (g *game) Layout(outsideWidth, outsideHeight int) (int, int) {
	g.width, g.height = max(outsideWidth, 1), max(outsideHeight, 1)
	return g.width, g.height
}
