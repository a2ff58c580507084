package material

import (
	"math"
	"testing"

	"github.com/df07/go-bvh-pathtracer/pkg/core"
	"go.viam.com/test"
)

func samplePoints() []core.Vec3 {
	sampler := core.NewSeededSampler(99)
	points := make([]core.Vec3, 200)
	for i := range points {
		points[i] = core.RandomVec3(sampler, -20, 20)
	}
	return points
}

func TestPerlin_DeterministicForSeed(t *testing.T) {
	a := NewPerlin(core.NewSeededSampler(5))
	b := NewPerlin(core.NewSeededSampler(5))
	for _, p := range samplePoints() {
		test.That(t, a.Noise(p), test.ShouldEqual, b.Noise(p))
		test.That(t, a.ValueNoise(p), test.ShouldEqual, b.ValueNoise(p))
	}
}

func TestPerlin_PermutationsArePermutations(t *testing.T) {
	p := NewPerlin(core.NewSeededSampler(1))
	for _, perm := range [][perlinPointCount]int{p.permX, p.permY, p.permZ} {
		seen := make(map[int]bool, perlinPointCount)
		for _, v := range perm {
			test.That(t, v, test.ShouldBeBetweenOrEqual, 0, perlinPointCount-1)
			seen[v] = true
		}
		test.That(t, len(seen), test.ShouldEqual, perlinPointCount)
	}
	for _, g := range p.gradients {
		test.That(t, g.Length(), test.ShouldAlmostEqual, 1.0, 1e-9)
	}
}

func TestPerlin_GradientNoiseVanishesOnLattice(t *testing.T) {
	p := NewPerlin(core.NewSeededSampler(2))
	for _, point := range []core.Vec3{{}, core.NewVec3(3, -4, 17), core.NewVec3(-1, -1, -1)} {
		test.That(t, p.Noise(point), test.ShouldAlmostEqual, 0.0, 1e-12)
	}
}

func TestPerlin_Ranges(t *testing.T) {
	p := NewPerlin(core.NewSeededSampler(3))
	for _, point := range samplePoints() {
		test.That(t, math.Abs(p.Noise(point)), test.ShouldBeLessThanOrEqualTo, 2.0)
		test.That(t, p.ValueNoise(point), test.ShouldBeBetweenOrEqual, 0.0, 1.0)
		test.That(t, p.Turbulence(point, 7), test.ShouldBeGreaterThanOrEqualTo, 0.0)
	}
}

func TestPerlin_TurbulenceSumsDoubledOctaves(t *testing.T) {
	p := NewPerlin(core.NewSeededSampler(4))
	for _, point := range samplePoints()[:20] {
		test.That(t, p.Turbulence(point, 1), test.ShouldAlmostEqual, math.Abs(p.Noise(point)), 1e-12)

		expected := math.Abs(p.Noise(point) + 0.5*p.Noise(point.Multiply(2)) + 0.25*p.Noise(point.Multiply(4)))
		test.That(t, p.Turbulence(point, 3), test.ShouldAlmostEqual, expected, 1e-12)
	}
}

func TestNoiseTextures(t *testing.T) {
	p := NewPerlin(core.NewSeededSampler(6))
	noise := NewNoiseTexture(p, 4)
	marble := NewMarbleTexture(p, 4)
	value := NewValueNoiseTexture(p, 4)

	for _, point := range samplePoints() {
		c := noise.Evaluate(core.Vec2{}, point)
		test.That(t, c.X, test.ShouldEqual, c.Y)
		test.That(t, c.Y, test.ShouldEqual, c.Z)
		test.That(t, c.X, test.ShouldBeGreaterThanOrEqualTo, 0.0)

		v := value.Evaluate(core.Vec2{}, point)
		test.That(t, v, test.ShouldResemble, core.NewVec3(1, 1, 1).Multiply(p.ValueNoise(point.Multiply(4))))
		test.That(t, v.X, test.ShouldBeBetweenOrEqual, 0.0, 1.0)

		m := marble.Evaluate(core.Vec2{}, point)
		test.That(t, m.X, test.ShouldBeBetweenOrEqual, 0.0, 1.0)
	}
}
