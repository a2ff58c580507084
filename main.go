package main

import (
	"context"
	"errors"
	"flag"
	"fmt"
	"io"
	"os"
	"os/signal"
	"path/filepath"
	"time"

	"github.com/df07/go-bvh-pathtracer/pkg/geometry"
	"github.com/df07/go-bvh-pathtracer/pkg/renderer"
	"github.com/df07/go-bvh-pathtracer/pkg/scene"
)

// options holds the parsed command line
type options struct {
	sceneID    string
	outPath    string
	format     renderer.Format
	width      int
	samples    int
	depth      int
	workers    int
	seed       int64
	textureDir string
	list       bool
	help       bool
}

func parseOptions(args []string, output io.Writer) (options, *flag.FlagSet, error) {
	var opts options
	var format string

	fs := flag.NewFlagSet("pathtracer", flag.ContinueOnError)
	fs.SetOutput(output)
	fs.StringVar(&opts.sceneID, "scene", "default", "Scene to render (see -list)")
	fs.StringVar(&opts.outPath, "out", "", "Output file (default output/<scene>/render_<timestamp>.<format>)")
	fs.StringVar(&format, "format", "ppm", "Output format: 'ppm' or 'png'")
	fs.IntVar(&opts.width, "width", 0, "Image width in pixels (0 = scene default)")
	fs.IntVar(&opts.samples, "samples", 0, "Samples per pixel (0 = scene default)")
	fs.IntVar(&opts.depth, "depth", 0, "Maximum ray bounces (0 = scene default)")
	fs.IntVar(&opts.workers, "workers", 0, "Number of parallel workers (0 = auto-detect)")
	fs.Int64Var(&opts.seed, "seed", renderer.DefaultConfig().Seed, "Random seed for scene layout and sampling")
	fs.StringVar(&opts.textureDir, "texture-dir", "textures", "Directory containing image textures")
	fs.BoolVar(&opts.list, "list", false, "List available scenes")
	fs.BoolVar(&opts.help, "help", false, "Show help information")

	if err := fs.Parse(args); err != nil {
		return opts, fs, err
	}
	if fs.NArg() > 0 {
		return opts, fs, fmt.Errorf("unexpected arguments: %v", fs.Args())
	}
	for name, value := range map[string]int{"width": opts.width, "samples": opts.samples, "depth": opts.depth, "workers": opts.workers} {
		if value < 0 {
			return opts, fs, fmt.Errorf("-%s must not be negative, got %d", name, value)
		}
	}

	parsed, err := renderer.ParseFormat(format)
	if err != nil {
		return opts, fs, err
	}
	opts.format = parsed

	return opts, fs, nil
}

func printHelp(w io.Writer, fs *flag.FlagSet) {
	fmt.Fprintln(w, "BVH Path Tracer")
	fmt.Fprintln(w, "Usage: pathtracer [options]")
	fmt.Fprintln(w)
	fmt.Fprintln(w, "Options:")
	fs.SetOutput(w)
	fs.PrintDefaults()
	fmt.Fprintln(w)
	printScenes(w)
}

func printScenes(w io.Writer) {
	fmt.Fprintln(w, "Available scenes:")
	for _, id := range scene.Names() {
		info, _ := scene.Lookup(id)
		fmt.Fprintf(w, "  %-18s %s\n", id, info.Description)
	}
}

// defaultOutputPath returns output/<scene>/render_<timestamp>.<format>
func defaultOutputPath(sceneID string, format renderer.Format, now time.Time) string {
	filename := fmt.Sprintf("render_%s.%s", now.Format("20060102_150405"), format)
	return filepath.Join("output", sceneID, filename)
}

func run(ctx context.Context, args []string, stdout io.Writer) error {
	opts, fs, err := parseOptions(args, stdout)
	if err != nil {
		if errors.Is(err, flag.ErrHelp) {
			return nil
		}
		return err
	}
	if opts.help {
		printHelp(stdout, fs)
		return nil
	}
	if opts.list {
		printScenes(stdout)
		return nil
	}

	logger := renderer.NewWriterLogger(stdout)
	logger.Printf("Starting BVH Path Tracer...\n")

	s, err := scene.Build(opts.sceneID, scene.Options{
		Seed:       opts.seed,
		TextureDir: opts.textureDir,
		Camera: geometry.CameraConfig{
			ImageWidth:      opts.width,
			SamplesPerPixel: opts.samples,
			MaxDepth:        opts.depth,
		},
		Logger: logger,
	})
	if err != nil {
		return err
	}

	if info, err := renderer.GetSystemInfo(); err != nil {
		logger.Printf("Warning: %v\n", err)
	} else {
		logger.Printf("Host: %s\n", info)
	}

	config := renderer.DefaultConfig()
	config.NumWorkers = opts.workers
	config.Seed = opts.seed

	raytracer := renderer.NewRaytracer(s, config, logger)
	frame, stats, err := raytracer.Render(ctx)
	if err != nil {
		return fmt.Errorf("render failed: %w", err)
	}
	logger.Printf("Samples per pixel: %.1f\n", stats.AverageSamples())

	outPath := opts.outPath
	if outPath == "" {
		outPath = defaultOutputPath(opts.sceneID, opts.format, time.Now())
	}
	if err := saveFrame(outPath, frame, opts.format); err != nil {
		return err
	}

	logger.Printf("Render saved as %s\n", outPath)
	return nil
}

func saveFrame(path string, frame *renderer.Frame, format renderer.Format) error {
	if err := os.MkdirAll(filepath.Dir(path), 0755); err != nil {
		return fmt.Errorf("error creating output directory: %w", err)
	}

	file, err := os.Create(path)
	if err != nil {
		return fmt.Errorf("error creating file: %w", err)
	}

	if err := renderer.Write(file, frame, format); err != nil {
		file.Close()
		return err
	}
	if err := file.Close(); err != nil {
		return fmt.Errorf("error closing %s: %w", path, err)
	}
	return nil
}

func main() {
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt)
	defer stop()

	if err := run(ctx, os.Args[1:], os.Stdout); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
}
