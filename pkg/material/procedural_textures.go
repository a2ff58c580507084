package material

import (
	"math"

	"github.com/df07/go-bvh-pathtracer/pkg/core"
)

// turbulenceOctaves is the octave count used by the noise textures
const turbulenceOctaves = 7

// NoiseTexture shades white by Perlin turbulence
type NoiseTexture struct {
	Noise *Perlin
	Scale float64
}

// NewNoiseTexture creates a turbulence texture with the given spatial frequency
func NewNoiseTexture(noise *Perlin, scale float64) *NoiseTexture {
	return &NoiseTexture{Noise: noise, Scale: scale}
}

// Evaluate returns a grey level from the turbulence at the scaled point
func (t *NoiseTexture) Evaluate(uv core.Vec2, point core.Vec3) core.Vec3 {
	turb := t.Noise.Turbulence(point.Multiply(t.Scale), turbulenceOctaves)
	return core.NewVec3(1, 1, 1).Multiply(turb)
}

// ValueNoiseTexture shades white by smoothed lattice noise, the blocky
// precursor of the gradient noise textures
type ValueNoiseTexture struct {
	Noise *Perlin
	Scale float64
}

// NewValueNoiseTexture creates a value noise texture with the given spatial frequency
func NewValueNoiseTexture(noise *Perlin, scale float64) *ValueNoiseTexture {
	return &ValueNoiseTexture{Noise: noise, Scale: scale}
}

// Evaluate returns a grey level in [0, 1]
func (t *ValueNoiseTexture) Evaluate(uv core.Vec2, point core.Vec3) core.Vec3 {
	return core.NewVec3(1, 1, 1).Multiply(t.Noise.ValueNoise(point.Multiply(t.Scale)))
}

// MarbleTexture phase-shifts a sine wave along z with turbulence,
// giving marble-like veins
type MarbleTexture struct {
	Noise *Perlin
	Scale float64
}

// NewMarbleTexture creates a marble texture with the given spatial frequency
func NewMarbleTexture(noise *Perlin, scale float64) *MarbleTexture {
	return &MarbleTexture{Noise: noise, Scale: scale}
}

// Evaluate returns a grey level in [0, 1]
func (t *MarbleTexture) Evaluate(uv core.Vec2, point core.Vec3) core.Vec3 {
	phase := t.Scale*point.Z + 10*t.Noise.Turbulence(point, turbulenceOctaves)
	return core.NewVec3(0.5, 0.5, 0.5).Multiply(1 + math.Sin(phase))
}

// NewUVDebugTexture returns a texture showing UV coordinates as colors.
// U maps to red channel, V maps to green channel.
func NewUVDebugTexture() Texture {
	return uvDebugTexture{}
}

type uvDebugTexture struct{}

func (uvDebugTexture) Evaluate(uv core.Vec2, point core.Vec3) core.Vec3 {
	return core.NewVec3(uv.X, uv.Y, 0)
}
