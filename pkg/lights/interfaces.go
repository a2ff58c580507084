package lights

import "github.com/df07/go-bvh-pathtracer/pkg/core"

// Background is radiance arriving from infinitely far away. The integrator
// returns it for every ray that leaves the scene without a hit.
type Background interface {
	// Emit evaluates emission in the direction of the given ray
	Emit(ray core.Ray) core.Vec3
}
