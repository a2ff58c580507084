package lights

import (
	"github.com/df07/go-bvh-pathtracer/pkg/core"
)

// GradientInfiniteLight blends from BottomColor straight down to TopColor
// straight up, the classic sky background
type GradientInfiniteLight struct {
	TopColor    core.Vec3
	BottomColor core.Vec3
}

// NewGradientInfiniteLight creates a new gradient infinite light
func NewGradientInfiniteLight(topColor, bottomColor core.Vec3) *GradientInfiniteLight {
	return &GradientInfiniteLight{TopColor: topColor, BottomColor: bottomColor}
}

// NewSkyLight returns the white-to-blue sky gradient
func NewSkyLight() *GradientInfiniteLight {
	return NewGradientInfiniteLight(core.NewVec3(0.5, 0.7, 1.0), core.NewVec3(1.0, 1.0, 1.0))
}

// Emit blends by the height of the ray direction
func (gil *GradientInfiniteLight) Emit(ray core.Ray) core.Vec3 {
	direction := ray.Direction.Normalize()
	t := 0.5 * (direction.Y + 1.0) // Map Y from [-1,1] to [0,1]
	return gil.BottomColor.Lerp(gil.TopColor, t)
}
