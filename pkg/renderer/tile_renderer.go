package renderer

import (
	"github.com/df07/go-bvh-pathtracer/pkg/core"
	"github.com/df07/go-bvh-pathtracer/pkg/geometry"
	"github.com/df07/go-bvh-pathtracer/pkg/integrator"
	"github.com/df07/go-bvh-pathtracer/pkg/scene"
)

// TileRenderer renders individual tiles using an integrator
type TileRenderer struct {
	scene           *scene.Scene
	camera          *geometry.Camera
	integrator      integrator.Integrator
	samplesPerPixel int
}

// NewTileRenderer creates a tile renderer. samplesPerPixel below 1 is raised to 1.
func NewTileRenderer(s *scene.Scene, camera *geometry.Camera, integratorInst integrator.Integrator, samplesPerPixel int) *TileRenderer {
	return &TileRenderer{
		scene:           s,
		camera:          camera,
		integrator:      integratorInst,
		samplesPerPixel: max(samplesPerPixel, 1),
	}
}

// RenderTile averages samplesPerPixel rays for every pixel of the tile and
// stores the result in frame. Tiles never overlap, so concurrent calls on
// distinct tiles are safe.
func (tr *TileRenderer) RenderTile(tile *Tile, frame *Frame) RenderStats {
	sampler := core.NewRandomSampler(tile.Random)
	bounds := tile.Bounds

	for j := bounds.Min.Y; j < bounds.Max.Y; j++ {
		for i := bounds.Min.X; i < bounds.Max.X; i++ {
			var ps PixelStats
			for sample := 0; sample < tr.samplesPerPixel; sample++ {
				ray := tr.camera.GetRay(i, j, sampler)
				ps.AddSample(tr.integrator.RayColor(ray, tr.scene, sampler))
			}
			frame.Set(i, j, ps.GetColor())
		}
	}

	pixels := bounds.Dx() * bounds.Dy()
	return RenderStats{
		TotalPixels:    pixels,
		TotalSamples:   pixels * tr.samplesPerPixel,
		TilesCompleted: 1,
	}
}
