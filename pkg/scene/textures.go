package scene

import (
	"path/filepath"

	"github.com/df07/go-bvh-pathtracer/pkg/core"
	"github.com/df07/go-bvh-pathtracer/pkg/geometry"
	"github.com/df07/go-bvh-pathtracer/pkg/lights"
	"github.com/df07/go-bvh-pathtracer/pkg/loaders"
	"github.com/df07/go-bvh-pathtracer/pkg/material"
)

// EarthTextureFile is the image the earth scene looks for in its texture directory
const EarthTextureFile = "earthmap.jpg"

func textureSceneCamera() geometry.CameraConfig {
	return geometry.CameraConfig{
		AspectRatio:     16.0 / 9.0,
		ImageWidth:      400,
		SamplesPerPixel: 100,
		MaxDepth:        50,
		VFov:            20,
		LookFrom:        core.NewVec3(13, 2, 3),
		LookAt:          core.NewVec3(0, 0, 0),
		VUp:             core.NewVec3(0, 1, 0),
	}
}

// NewCheckeredSpheresScene creates two large spheres sharing one solid checker pattern
func NewCheckeredSpheresScene(cameraOverrides ...geometry.CameraConfig) *Scene {
	s := New("checkered-spheres", textureSceneCamera(), cameraOverrides...)
	s.Background = lights.NewSkyLight()

	checker := material.NewTexturedLambertian(
		material.NewCheckerColors(0.32, core.NewVec3(0.2, 0.3, 0.1), core.NewVec3(0.9, 0.9, 0.9)),
	)
	s.Add(
		geometry.NewSphere(core.NewVec3(0, -10, 0), 10, checker),
		geometry.NewSphere(core.NewVec3(0, 10, 0), 10, checker),
	)
	return s
}

// NewEarthScene creates a globe textured with textureDir/earthmap.jpg.
// A missing or unreadable image is logged and renders as debug cyan.
func NewEarthScene(textureDir string, logger core.Logger, cameraOverrides ...geometry.CameraConfig) *Scene {
	if logger == nil {
		logger = core.NopLogger{}
	}

	defaultCameraConfig := textureSceneCamera()
	defaultCameraConfig.LookFrom = core.NewVec3(0, 0, 12)

	s := New("earth", defaultCameraConfig, cameraOverrides...)
	s.Background = lights.NewSkyLight()

	var texture *material.ImageTexture
	path := filepath.Join(textureDir, EarthTextureFile)
	img, err := loaders.LoadImage(path)
	if err != nil {
		logger.Printf("Warning: %v; using placeholder texture\n", err)
		texture = material.NewImageTexture(nil)
	} else {
		texture = material.NewImageTexture(img)
	}

	s.Add(geometry.NewSphere(core.NewVec3(0, 0, 0), 2, material.NewTexturedLambertian(texture)))
	return s
}

// NewPerlinSpheresScene creates a marble sphere on a marble ground
func NewPerlinSpheresScene(seed int64, cameraOverrides ...geometry.CameraConfig) *Scene {
	s := New("perlin-spheres", textureSceneCamera(), cameraOverrides...)
	s.Background = lights.NewSkyLight()

	addPerlinSpheres(s, seed)
	return s
}

func addPerlinSpheres(s *Scene, seed int64) {
	noise := material.NewPerlin(core.NewSeededSampler(seed))
	marble := material.NewTexturedLambertian(material.NewMarbleTexture(noise, 4))
	s.Add(
		geometry.NewSphere(core.NewVec3(0, -1000, 0), 1000, marble),
		geometry.NewSphere(core.NewVec3(0, 2, 0), 2, marble),
	)
}

// NewNoiseSpheresScene shows the two plain noise textures: a turbulence ground
// under a value noise sphere
func NewNoiseSpheresScene(seed int64, cameraOverrides ...geometry.CameraConfig) *Scene {
	s := New("noise-spheres", textureSceneCamera(), cameraOverrides...)
	s.Background = lights.NewSkyLight()

	noise := material.NewPerlin(core.NewSeededSampler(seed))
	s.Add(
		geometry.NewSphere(core.NewVec3(0, -1000, 0), 1000, material.NewTexturedLambertian(material.NewNoiseTexture(noise, 4))),
		geometry.NewSphere(core.NewVec3(0, 2, 0), 2, material.NewTexturedLambertian(material.NewValueNoiseTexture(noise, 4))),
	)
	return s
}
