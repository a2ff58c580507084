package material

import (
	"testing"

	"github.com/df07/go-bvh-pathtracer/pkg/core"
	"go.viam.com/test"
)

// fixedSampler replays a scripted sequence of draws, wrapping around at the end
type fixedSampler struct {
	values []float64
	next   int
}

func newFixedSampler(values ...float64) *fixedSampler {
	return &fixedSampler{values: values}
}

func (s *fixedSampler) Get1D() float64 {
	v := s.values[s.next%len(s.values)]
	s.next++
	return v
}

func (s *fixedSampler) Get2D() core.Vec2 {
	return core.NewVec2(s.Get1D(), s.Get1D())
}

func (s *fixedSampler) Get3D() core.Vec3 {
	return core.NewVec3(s.Get1D(), s.Get1D(), s.Get1D())
}

func vecAlmostEqual(t *testing.T, got, want core.Vec3, tolerance float64) {
	t.Helper()
	test.That(t, got.X, test.ShouldAlmostEqual, want.X, tolerance)
	test.That(t, got.Y, test.ShouldAlmostEqual, want.Y, tolerance)
	test.That(t, got.Z, test.ShouldAlmostEqual, want.Z, tolerance)
}

// frontHit builds a front-face hit at the origin for a ray travelling along dir
func frontHit(dir, outwardNormal core.Vec3, mat Material) (core.Ray, HitRecord) {
	ray := core.NewRayAtTime(dir.Negate(), dir, 0.3)
	hit := HitRecord{Point: core.NewVec3(0, 0, 0), T: 1, Material: mat}
	hit.SetFaceNormal(ray, outwardNormal)
	return ray, hit
}
