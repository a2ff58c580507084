package scene

import (
	"github.com/df07/go-bvh-pathtracer/pkg/core"
	"github.com/df07/go-bvh-pathtracer/pkg/geometry"
	"github.com/df07/go-bvh-pathtracer/pkg/material"
)

// cornellBoxSize is the edge length of the standard Cornell box
const cornellBoxSize = 555.0

// NewCornellScene creates a classic Cornell box with quad walls, a ceiling
// light and two rotated white blocks
func NewCornellScene(cameraOverrides ...geometry.CameraConfig) *Scene {
	defaultCameraConfig := geometry.CameraConfig{
		AspectRatio:     1.0,
		ImageWidth:      400,
		SamplesPerPixel: 200,
		MaxDepth:        50,
		VFov:            40,
		LookFrom:        core.NewVec3(278, 278, -800), // Outside the open side, looking in
		LookAt:          core.NewVec3(278, 278, 0),
		VUp:             core.NewVec3(0, 1, 0),
	}

	// Black background: all light comes from the ceiling panel
	s := New("cornell-box", defaultCameraConfig, cameraOverrides...)

	white := material.NewLambertian(core.NewVec3(0.73, 0.73, 0.73))
	red := material.NewLambertian(core.NewVec3(0.65, 0.05, 0.05))
	green := material.NewLambertian(core.NewVec3(0.12, 0.45, 0.15))
	light := material.NewEmissive(core.NewVec3(15, 15, 15))

	size := cornellBoxSize
	s.Add(
		// Left wall (green) at x=size
		geometry.NewQuad(core.NewVec3(size, 0, 0), core.NewVec3(0, size, 0), core.NewVec3(0, 0, size), green),
		// Right wall (red) at x=0
		geometry.NewQuad(core.NewVec3(0, 0, 0), core.NewVec3(0, size, 0), core.NewVec3(0, 0, size), red),
		// Ceiling light, centered and just below the ceiling
		geometry.NewQuad(core.NewVec3(343, size-1, 332), core.NewVec3(-130, 0, 0), core.NewVec3(0, 0, -105), light),
		// Floor
		geometry.NewQuad(core.NewVec3(0, 0, 0), core.NewVec3(size, 0, 0), core.NewVec3(0, 0, size), white),
		// Ceiling
		geometry.NewQuad(core.NewVec3(size, size, size), core.NewVec3(-size, 0, 0), core.NewVec3(0, 0, -size), white),
		// Back wall
		geometry.NewQuad(core.NewVec3(0, 0, size), core.NewVec3(size, 0, 0), core.NewVec3(0, size, 0), white),
	)

	tall := geometry.NewBox(core.NewVec3(0, 0, 0), core.NewVec3(165, 330, 165), white)
	s.Add(geometry.NewTranslate(geometry.NewRotateY(tall, 15), core.NewVec3(265, 0, 295)))

	short := geometry.NewBox(core.NewVec3(0, 0, 0), core.NewVec3(165, 165, 165), white)
	s.Add(geometry.NewTranslate(geometry.NewRotateY(short, -18), core.NewVec3(130, 0, 65)))

	return s
}
