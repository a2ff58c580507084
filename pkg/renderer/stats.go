package renderer

import (
	"fmt"
	"time"

	"github.com/df07/go-bvh-pathtracer/pkg/core"
)

// RenderStats contains statistics about the rendering process
type RenderStats struct {
	TotalPixels    int           // Total number of pixels rendered
	TotalSamples   int           // Total number of camera rays traced
	TilesCompleted int           // Tiles that finished rendering
	TotalTiles     int           // Tiles in the image
	Duration       time.Duration // Wall-clock render time
}

// AverageSamples returns samples per pixel
func (s RenderStats) AverageSamples() float64 {
	if s.TotalPixels == 0 {
		return 0
	}
	return float64(s.TotalSamples) / float64(s.TotalPixels)
}

// Add merges the counts of another stats block, e.g. from a finished tile
func (s *RenderStats) Add(other RenderStats) {
	s.TotalPixels += other.TotalPixels
	s.TotalSamples += other.TotalSamples
	s.TilesCompleted += other.TilesCompleted
}

func (s RenderStats) String() string {
	return fmt.Sprintf("%d pixels, %.1f samples/pixel, %d/%d tiles in %v",
		s.TotalPixels, s.AverageSamples(), s.TilesCompleted, s.TotalTiles, s.Duration.Round(time.Millisecond))
}

// PixelStats accumulates the samples of a single pixel
type PixelStats struct {
	ColorAccum  core.Vec3 // RGB accumulator for final result
	SampleCount int       // Number of samples taken
}

// AddSample adds a new color sample to the pixel statistics
func (ps *PixelStats) AddSample(color core.Vec3) {
	ps.ColorAccum = ps.ColorAccum.Add(color)
	ps.SampleCount++
}

// GetColor returns the current average color for this pixel
func (ps *PixelStats) GetColor() core.Vec3 {
	if ps.SampleCount == 0 {
		return core.Vec3{}
	}
	return ps.ColorAccum.Multiply(1.0 / float64(ps.SampleCount))
}
