package floor

// RendererOption configures a Renderer during creation.
//
// Example:
//
//	// Default: GOMAXPROCS workers, sRGB output
//	r := floor.NewRenderer()
//
//	// Linear output for further compositing
//	r := floor.NewRenderer(floor.WithWorkers(2), floor.WithLinearOutput(true))
type RendererOption func(*rendererOptions)

// rendererOptions holds optional configuration for Renderer creation.
type rendererOptions struct {
	workers      int
	linearOutput bool
}

// defaultOptions returns the default renderer options.
func defaultOptions() rendererOptions {
	return rendererOptions{
		workers:      0, // GOMAXPROCS
		linearOutput: false,
	}
}

// WithWorkers sets the number of goroutines that shade tiles.
// Values <= 0 select GOMAXPROCS.
func WithWorkers(n int) RendererOption {
	return func(o *rendererOptions) {
		o.workers = n
	}
}

// WithLinearOutput stores linear color values in the Pixmap instead of
// sRGB-encoded ones. Use it when the result is composited further in
// linear space.
func WithLinearOutput(linear bool) RendererOption {
	return func(o *rendererOptions) {
		o.linearOutput = linear
	}
}
