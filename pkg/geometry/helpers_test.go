package geometry

import (
	"testing"

	"github.com/df07/go-bvh-pathtracer/pkg/core"
	"github.com/df07/go-bvh-pathtracer/pkg/material"
	"go.viam.com/test"
)

var testMaterial = material.NewLambertian(core.NewVec3(0.5, 0.5, 0.5))

func vecAlmostEqual(t *testing.T, got, want core.Vec3, tolerance float64) {
	t.Helper()
	test.That(t, got.X, test.ShouldAlmostEqual, want.X, tolerance)
	test.That(t, got.Y, test.ShouldAlmostEqual, want.Y, tolerance)
	test.That(t, got.Z, test.ShouldAlmostEqual, want.Z, tolerance)
}

// countingHittable records how often it is tested and always misses
type countingHittable struct {
	box   core.AABB
	calls int
}

func (c *countingHittable) Hit(ray core.Ray, rayT core.Interval) (*material.HitRecord, bool) {
	c.calls++
	return nil, false
}

func (c *countingHittable) BoundingBox() core.AABB {
	return c.box
}

// fixedHittable reports a hit at a fixed distance whenever the interval allows it
type fixedHittable struct {
	t   float64
	box core.AABB
}

func (f *fixedHittable) Hit(ray core.Ray, rayT core.Interval) (*material.HitRecord, bool) {
	if !rayT.Surrounds(f.t) {
		return nil, false
	}
	return &material.HitRecord{T: f.t, Point: ray.At(f.t)}, true
}

func (f *fixedHittable) BoundingBox() core.AABB {
	return f.box
}

// randomSphereScene scatters n small spheres in a 20-unit cube
func randomSphereScene(seed int64, n int) []Hittable {
	sampler := core.NewSeededSampler(seed)
	objects := make([]Hittable, 0, n)
	for i := 0; i < n; i++ {
		center := core.RandomVec3(sampler, -10, 10)
		radius := core.RandomRange(sampler, 0.2, 1.5)
		if i%5 == 0 {
			motion := core.RandomVec3(sampler, -1, 1)
			objects = append(objects, NewMovingSphere(center, center.Add(motion), radius, testMaterial))
			continue
		}
		objects = append(objects, NewSphere(center, radius, testMaterial))
	}
	return objects
}

// randomQuadScene scatters n quads with random orientation
func randomQuadScene(seed int64, n int) []Hittable {
	sampler := core.NewSeededSampler(seed)
	objects := make([]Hittable, 0, n)
	for i := 0; i < n; i++ {
		corner := core.RandomVec3(sampler, -10, 10)
		u := core.RandomVec3(sampler, -2, 2)
		v := core.RandomVec3(sampler, -2, 2)
		if i%4 == 0 {
			// Axis-aligned, so its box is degenerate before padding
			u = core.NewVec3(u.X, 0, 0)
			v = core.NewVec3(0, 0, v.Z)
		}
		objects = append(objects, NewQuad(corner, u, v, testMaterial))
	}
	return objects
}

// randomRays generates rays from outside and inside the scene volume
func randomRays(seed int64, n int) []core.Ray {
	sampler := core.NewSeededSampler(seed)
	rays := make([]core.Ray, n)
	for i := range rays {
		origin := core.RandomVec3(sampler, -15, 15)
		target := core.RandomVec3(sampler, -8, 8)
		rays[i] = core.NewRayAtTime(origin, target.Subtract(origin), sampler.Get1D())
	}
	return rays
}
