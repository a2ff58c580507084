package scene

import (
	"github.com/df07/go-bvh-pathtracer/pkg/core"
	"github.com/df07/go-bvh-pathtracer/pkg/geometry"
	"github.com/df07/go-bvh-pathtracer/pkg/lights"
	"github.com/df07/go-bvh-pathtracer/pkg/material"
)

// Scene contains all the elements needed for rendering
type Scene struct {
	Name         string
	World        *geometry.World       // Objects in the scene
	CameraConfig geometry.CameraConfig // Camera and sampling parameters
	Background   lights.Background     // Optional; nil uses CameraConfig.Background
	BVH          *geometry.BVH         // Acceleration structure, built by Preprocess
}

// New creates an empty scene whose camera is base overlaid with the first override
func New(name string, base geometry.CameraConfig, cameraOverrides ...geometry.CameraConfig) *Scene {
	cameraConfig := base
	if len(cameraOverrides) > 0 {
		cameraConfig = geometry.MergeCameraConfig(base, cameraOverrides[0])
	}
	return &Scene{
		Name:         name,
		World:        geometry.NewWorld(),
		CameraConfig: cameraConfig,
	}
}

// Add appends objects to the scene. The BVH is stale until the next Preprocess.
func (s *Scene) Add(objects ...geometry.Hittable) {
	for _, obj := range objects {
		s.World.Add(obj)
	}
}

// NewGroundQuad creates a large horizontal quad centered at center with its normal pointing up
func NewGroundQuad(center core.Vec3, size float64, mat material.Material) *geometry.Quad {
	corner := core.NewVec3(center.X-size/2, center.Y, center.Z-size/2)
	// u × v = (0, size², 0) points up
	u := core.NewVec3(0, 0, size)
	v := core.NewVec3(size, 0, 0)
	return geometry.NewQuad(corner, u, v, mat)
}

// Preprocess prepares the scene for rendering by building the BVH
func (s *Scene) Preprocess(logger core.Logger) {
	if logger == nil {
		logger = core.NopLogger{}
	}
	s.BVH = geometry.NewBVHFromWorld(s.World)
	logger.Printf("Scene %q: %d objects (%d primitives), BVH %s\n",
		s.Name, s.World.Len(), s.PrimitiveCount(), s.BVH.Stats())
}

// Hittable returns what rays should be traced against: the BVH once built, otherwise the flat list
func (s *Scene) Hittable() geometry.Hittable {
	if s.BVH != nil {
		return s.BVH
	}
	return s.World
}

// BackgroundColor returns the radiance of a ray that escapes the scene
func (s *Scene) BackgroundColor(ray core.Ray) core.Vec3 {
	if s.Background != nil {
		return s.Background.Emit(ray)
	}
	return s.CameraConfig.Background
}

// PrimitiveCount returns the number of leaf objects, looking inside nested lists and instances
func (s *Scene) PrimitiveCount() int {
	count := 0
	for _, obj := range s.World.Objects() {
		count += countPrimitives(obj)
	}
	return count
}

func countPrimitives(obj geometry.Hittable) int {
	switch o := obj.(type) {
	case *geometry.World:
		count := 0
		for _, child := range o.Objects() {
			count += countPrimitives(child)
		}
		return count
	case *geometry.Translate:
		return countPrimitives(o.Object)
	case *geometry.RotateY:
		return countPrimitives(o.Object)
	default:
		return 1
	}
}
