package scene

import (
	"github.com/df07/go-bvh-pathtracer/pkg/core"
	"github.com/df07/go-bvh-pathtracer/pkg/geometry"
	"github.com/df07/go-bvh-pathtracer/pkg/lights"
	"github.com/df07/go-bvh-pathtracer/pkg/material"
)

// NewDefaultScene creates a small moving sphere resting on a huge ground sphere
func NewDefaultScene(seed int64, cameraOverrides ...geometry.CameraConfig) *Scene {
	defaultCameraConfig := geometry.CameraConfig{
		AspectRatio:     16.0 / 9.0,
		ImageWidth:      400,
		SamplesPerPixel: 100,
		MaxDepth:        50,
		VFov:            20,
		LookFrom:        core.NewVec3(-2, 2, 1),
		LookAt:          core.NewVec3(0, 0, -1),
		VUp:             core.NewVec3(0, 1, 0),
	}

	s := New("default", defaultCameraConfig, cameraOverrides...)
	s.Background = lights.NewSkyLight()

	sampler := core.NewSeededSampler(seed)

	ground := material.NewLambertian(core.NewVec3(0.2, 0.8, 0.8))
	center := material.NewLambertian(core.NewVec3(0.1, 0.2, 0.5))

	// The center sphere bounces upward during the shutter interval
	start := core.NewVec3(0.0, 0.001, -1.2)
	end := core.NewVec3(0.0, 0.0, -1.2).Add(core.NewVec3(0, core.RandomRange(sampler, 0, 0.1), 0))

	s.Add(
		geometry.NewSphere(core.NewVec3(0.0, -100.5, -1.0), 100.0, ground),
		geometry.NewMovingSphere(start, end, 0.5, center),
	)

	return s
}
