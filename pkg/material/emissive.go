package material

import (
	"github.com/df07/go-bvh-pathtracer/pkg/core"
)

// Emissive represents a light-emitting material
type Emissive struct {
	Emission Texture // Emitted light color/intensity
}

// NewEmissive creates a new emissive material with a constant emission
func NewEmissive(emission core.Vec3) *Emissive {
	return &Emissive{Emission: NewSolidColor(emission)}
}

// NewTexturedEmissive creates an emissive material whose radiance varies over the surface
func NewTexturedEmissive(emission Texture) *Emissive {
	return &Emissive{Emission: emission}
}

// Scatter implements the Material interface for emissive materials.
// Lights absorb every incoming ray; the path ends at them.
func (e *Emissive) Scatter(rayIn core.Ray, hit HitRecord, sampler core.Sampler) (ScatterResult, bool) {
	return ScatterResult{}, false
}

// Emit returns the emitted light for this material
func (e *Emissive) Emit(uv core.Vec2, point core.Vec3) core.Vec3 {
	return e.Emission.Evaluate(uv, point)
}
