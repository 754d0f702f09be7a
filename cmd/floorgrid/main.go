// Command floorgrid renders the procedural floor grid to an image file.
//
// Usage:
//
//	floorgrid -config floor.hcl -width 1280 -height 720 -ppu 12 -out floor.png
//	floorgrid -profile profile.png
//	floorgrid -dump-config > floor.hcl
package main

import (
	"context"
	"errors"
	"flag"
	"fmt"
	"io"
	"log"
	"log/slog"
	"os"
	"os/signal"

	"github.com/gogpu/floor"
	"github.com/gogpu/floor/hclconfig"
	"github.com/gogpu/floor/profile"
)

func main() {
	if err := run(os.Args[1:], os.Stdout); err != nil {
		if errors.Is(err, flag.ErrHelp) {
			os.Exit(2)
		}
		log.Fatalf("floorgrid: %v", err)
	}
}

type options struct {
	config     string
	width      int
	height     int
	centerX    float64
	centerY    float64
	ppu        float64
	rotation   float64
	out        string
	linear     bool
	workers    int
	profile    string
	samples    int
	dumpConfig bool
	verbose    bool
}

func parseFlags(args []string, output io.Writer) (options, error) {
	var o options
	fs := flag.NewFlagSet("floorgrid", flag.ContinueOnError)
	fs.SetOutput(output)
	fs.StringVar(&o.config, "config", "", "HCL configuration file (defaults when empty)")
	fs.IntVar(&o.width, "width", 800, "image width")
	fs.IntVar(&o.height, "height", 600, "image height")
	fs.Float64Var(&o.centerX, "center-x", 0, "world x at the image center")
	fs.Float64Var(&o.centerY, "center-y", 0, "world y at the image center")
	fs.Float64Var(&o.ppu, "ppu", 8, "pixels per world unit")
	fs.Float64Var(&o.rotation, "rotation", 0, "floor rotation in radians")
	fs.StringVar(&o.out, "out", "floor.png", "output file (.png, .bmp, .tif)")
	fs.BoolVar(&o.linear, "linear", false, "write linear values without sRGB encoding")
	fs.IntVar(&o.workers, "workers", 0, "render workers (0 = GOMAXPROCS)")
	fs.StringVar(&o.profile, "profile", "", "write an occupancy chart of the center row to this file")
	fs.IntVar(&o.samples, "samples", 1024, "points in the profile chart")
	fs.BoolVar(&o.dumpConfig, "dump-config", false, "print the effective configuration as HCL and exit")
	fs.BoolVar(&o.verbose, "v", false, "verbose logging")
	if err := fs.Parse(args); err != nil {
		return o, err
	}
	if fs.NArg() > 0 {
		return o, fmt.Errorf("unexpected arguments: %v", fs.Args())
	}
	if !o.dumpConfig {
		if _, err := floor.FormatOf(o.out); err != nil {
			return o, fmt.Errorf("-out %s: %w", o.out, err)
		}
	}
	return o, nil
}

func run(args []string, stdout io.Writer) error {
	o, err := parseFlags(args, stdout)
	if err != nil {
		return err
	}

	level := slog.LevelWarn
	if o.verbose {
		level = slog.LevelDebug
	}
	floor.SetLogger(slog.New(slog.NewTextHandler(os.Stderr, &slog.HandlerOptions{Level: level})))
	defer floor.SetLogger(nil)

	params := floor.DefaultParams()
	if o.config != "" {
		params, err = hclconfig.Load(o.config)
		if err != nil {
			return err
		}
	}
	cfg := floor.Bind(params)

	if o.dumpConfig {
		_, err := stdout.Write(hclconfig.Encode(cfg.Params()))
		return err
	}

	view := floor.View{CenterX: o.centerX, CenterY: o.centerY, PixelsPerUnit: o.ppu, Rotation: o.rotation}
	m := view.Map(cfg, o.width, o.height)

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt)
	defer stop()

	r := floor.NewRenderer(floor.WithWorkers(o.workers), floor.WithLinearOutput(o.linear))
	defer r.Close()

	pm, err := r.Render(ctx, cfg, m, o.width, o.height)
	if err != nil {
		return err
	}
	if err := pm.Save(o.out); err != nil {
		return fmt.Errorf("save %s: %w", o.out, err)
	}
	fmt.Fprintf(stdout, "floor saved to %s (%dx%d)\n", o.out, o.width, o.height)

	if o.profile != "" {
		y := float64(o.height) / 2
		from := m.Coord(0, y)
		to := m.Coord(float64(o.width), y)
		p := profile.Sample(cfg, from, to, m.BaseDeriv(), o.samples)
		if err := p.Plot(o.profile); err != nil {
			return err
		}
		cov := p.Coverage()
		fmt.Fprintf(stdout, "profile saved to %s (coverage minor=%.4f major=%.4f axis=%.4f)\n",
			o.profile, cov.Minor, cov.Major, cov.Axis)
	}
	return nil
}
