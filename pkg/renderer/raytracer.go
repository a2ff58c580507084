package renderer

import (
	"context"
	"fmt"
	"time"

	"github.com/df07/go-bvh-pathtracer/pkg/core"
	"github.com/df07/go-bvh-pathtracer/pkg/geometry"
	"github.com/df07/go-bvh-pathtracer/pkg/integrator"
	"github.com/df07/go-bvh-pathtracer/pkg/scene"
)

// Raytracer handles the rendering process for one scene
type Raytracer struct {
	scene      *scene.Scene
	camera     *geometry.Camera
	integrator integrator.Integrator
	config     Config
	logger     core.Logger
}

// NewRaytracer creates a raytracer for s, building its BVH if that hasn't happened yet.
// A nil logger discards output.
func NewRaytracer(s *scene.Scene, config Config, logger core.Logger) *Raytracer {
	if logger == nil {
		logger = core.NopLogger{}
	}
	if s.BVH == nil {
		s.Preprocess(logger)
	}

	return &Raytracer{
		scene:      s,
		camera:     geometry.NewCamera(s.CameraConfig),
		integrator: integrator.NewPathTracingIntegrator(s.CameraConfig.MaxDepth),
		config:     config.withDefaults(),
		logger:     logger,
	}
}

// SetIntegrator replaces the light transport algorithm
func (rt *Raytracer) SetIntegrator(integratorInst integrator.Integrator) {
	rt.integrator = integratorInst
}

// Camera returns the camera rays are generated from
func (rt *Raytracer) Camera() *geometry.Camera {
	return rt.camera
}

// Config returns the effective configuration, with defaults resolved
func (rt *Raytracer) Config() Config {
	return rt.config
}

// Render traces the whole image in parallel tiles. When ctx is cancelled no
// further tiles are started and ctx.Err() is returned.
func (rt *Raytracer) Render(ctx context.Context) (*Frame, RenderStats, error) {
	startTime := time.Now()
	width, height := rt.camera.ImageWidth(), rt.camera.ImageHeight()
	samples := max(rt.scene.CameraConfig.SamplesPerPixel, 1)

	tiles := NewTileGrid(width, height, rt.config.TileSize, rt.config.Seed)
	frame := NewFrame(width, height)
	stats := RenderStats{TotalTiles: len(tiles)}

	tileRenderer := NewTileRenderer(rt.scene, rt.camera, rt.integrator, samples)
	pool := NewWorkerPool(ctx, tileRenderer, frame, rt.config.NumWorkers, len(tiles))

	rt.logger.Printf("Rendering %q: %dx%d, %d samples/pixel, max depth %d, %d tiles on %d workers\n",
		rt.scene.Name, width, height, samples, rt.scene.CameraConfig.MaxDepth, len(tiles), pool.GetNumWorkers())

	pool.Start()
	for i, tile := range tiles {
		pool.SubmitTask(TileTask{Tile: tile, TaskID: i})
	}

	var firstErr error
	lastDecile := 0
	for range tiles {
		result, ok := pool.GetResult()
		if !ok {
			firstErr = fmt.Errorf("worker pool closed unexpectedly")
			break
		}
		if result.Error != nil {
			if firstErr == nil {
				firstErr = result.Error
			}
			continue
		}

		stats.Add(result.Stats)
		if decile := stats.TilesCompleted * 10 / len(tiles); decile > lastDecile {
			lastDecile = decile
			rt.logger.Printf("Progress: %d%% (%d/%d tiles)\n", decile*10, stats.TilesCompleted, len(tiles))
		}
	}
	pool.Stop()

	stats.Duration = time.Since(startTime)
	if firstErr != nil {
		rt.logger.Printf("Render stopped after %d/%d tiles: %v\n", stats.TilesCompleted, len(tiles), firstErr)
		return nil, stats, firstErr
	}

	rt.logger.Printf("Render completed: %s\n", stats)
	return frame, stats, nil
}
