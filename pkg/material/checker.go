package material

import (
	"fmt"
	"math"

	"github.com/df07/go-bvh-pathtracer/pkg/core"
)

// CheckerTexture alternates between two textures on a 3D lattice of cubes
type CheckerTexture struct {
	invScale float64
	Even     Texture
	Odd      Texture
}

// NewCheckerTexture creates a checker with cubes of edge length scale.
// A non-positive scale or a nil sub-texture is a programming error.
func NewCheckerTexture(scale float64, even, odd Texture) *CheckerTexture {
	if scale <= 0 || math.IsNaN(scale) {
		panic(fmt.Sprintf("material: checker scale must be positive, got %v", scale))
	}
	if even == nil || odd == nil {
		panic("material: checker requires both sub-textures")
	}
	return &CheckerTexture{invScale: 1.0 / scale, Even: even, Odd: odd}
}

// NewCheckerColors creates a checker alternating between two solid colors
func NewCheckerColors(scale float64, even, odd core.Vec3) *CheckerTexture {
	return NewCheckerTexture(scale, NewSolidColor(even), NewSolidColor(odd))
}

// Evaluate picks the sub-texture by the parity of the lattice cell containing point
func (c *CheckerTexture) Evaluate(uv core.Vec2, point core.Vec3) core.Vec3 {
	x := int(math.Floor(c.invScale * point.X))
	y := int(math.Floor(c.invScale * point.Y))
	z := int(math.Floor(c.invScale * point.Z))

	if (x+y+z)%2 == 0 {
		return c.Even.Evaluate(uv, point)
	}
	return c.Odd.Evaluate(uv, point)
}
