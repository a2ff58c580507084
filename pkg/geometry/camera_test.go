package geometry

import (
	"math"
	"testing"

	"github.com/df07/go-bvh-pathtracer/pkg/core"
	"go.viam.com/test"
)

func TestDefaultCameraConfig(t *testing.T) {
	config := DefaultCameraConfig()
	test.That(t, config.AspectRatio, test.ShouldEqual, 1.0)
	test.That(t, config.ImageWidth, test.ShouldEqual, 100)
	test.That(t, config.SamplesPerPixel, test.ShouldEqual, 10)
	test.That(t, config.MaxDepth, test.ShouldEqual, 10)
	test.That(t, config.VFov, test.ShouldEqual, 90.0)
	test.That(t, config.LookFrom, test.ShouldResemble, core.NewVec3(0, 0, 0))
	test.That(t, config.LookAt, test.ShouldResemble, core.NewVec3(0, 0, -1))
	test.That(t, config.VUp, test.ShouldResemble, core.NewVec3(0, 1, 0))
	test.That(t, config.Background, test.ShouldResemble, core.NewVec3(0, 0, 0))
}

func TestMergeCameraConfig(t *testing.T) {
	base := DefaultCameraConfig()
	merged := MergeCameraConfig(base, CameraConfig{
		ImageWidth: 400,
		VFov:       20,
		LookFrom:   core.NewVec3(13, 2, 3),
		Background: core.NewVec3(0.7, 0.8, 1.0),
	})

	test.That(t, merged.ImageWidth, test.ShouldEqual, 400)
	test.That(t, merged.VFov, test.ShouldEqual, 20.0)
	test.That(t, merged.LookFrom, test.ShouldResemble, core.NewVec3(13, 2, 3))
	test.That(t, merged.Background, test.ShouldResemble, core.NewVec3(0.7, 0.8, 1.0))

	// Zero fields keep the base values
	test.That(t, merged.SamplesPerPixel, test.ShouldEqual, base.SamplesPerPixel)
	test.That(t, merged.LookAt, test.ShouldResemble, base.LookAt)
	test.That(t, merged.AspectRatio, test.ShouldEqual, base.AspectRatio)

	test.That(t, MergeCameraConfig(base, CameraConfig{}), test.ShouldResemble, base)
}

func TestCamera_ImageHeight(t *testing.T) {
	tests := []struct {
		width    int
		aspect   float64
		expected int
	}{
		{100, 1.0, 100},
		{400, 16.0 / 9.0, 225},
		{10, 100, 1}, // never below one row
	}
	for _, tt := range tests {
		config := DefaultCameraConfig()
		config.ImageWidth = tt.width
		config.AspectRatio = tt.aspect
		test.That(t, NewCamera(config).ImageHeight(), test.ShouldEqual, tt.expected)
	}
}

func TestCamera_CenterRayLooksAtTarget(t *testing.T) {
	config := DefaultCameraConfig()
	config.ImageWidth = 101
	config.LookFrom = core.NewVec3(1, 2, 3)
	config.LookAt = core.NewVec3(1, 2, -7)
	camera := NewCamera(config)

	// Draws of 0.5 remove the jitter
	ray := camera.GetRay(50, 50, &constantSampler{value: 0.5})
	test.That(t, ray.Origin, test.ShouldResemble, config.LookFrom)
	vecAlmostEqual(t, ray.Direction.Normalize(), core.NewVec3(0, 0, -1), 1e-9)
	test.That(t, ray.Time, test.ShouldEqual, 0.5)
}

func TestCamera_PixelGridOrientation(t *testing.T) {
	camera := NewCamera(DefaultCameraConfig())
	center := &constantSampler{value: 0.5}

	topLeft := camera.GetRay(0, 0, center).Direction
	bottomRight := camera.GetRay(99, 99, center).Direction

	// Row 0 is the top of the image, column 0 the left
	test.That(t, topLeft.X, test.ShouldBeLessThan, 0.0)
	test.That(t, topLeft.Y, test.ShouldBeGreaterThan, 0.0)
	test.That(t, bottomRight.X, test.ShouldBeGreaterThan, 0.0)
	test.That(t, bottomRight.Y, test.ShouldBeLessThan, 0.0)

	// 90 degree field of view at focal length 1 spans [-1, 1]
	test.That(t, topLeft.X, test.ShouldAlmostEqual, -0.99, 1e-9)
	test.That(t, topLeft.Y, test.ShouldAlmostEqual, 0.99, 1e-9)
}

func TestCamera_JitterStaysInsidePixel(t *testing.T) {
	camera := NewCamera(DefaultCameraConfig())
	sampler := core.NewSeededSampler(3)

	for i := 0; i < 200; i++ {
		ray := camera.GetRay(10, 20, sampler)
		// Direction hits the z=-1 viewport; pixel (10,20) spans x∈[-0.8,-0.78], y∈[0.58,0.6]
		test.That(t, ray.Direction.Z, test.ShouldAlmostEqual, -1.0, 1e-12)
		test.That(t, ray.Direction.X, test.ShouldBeBetweenOrEqual, -0.8-1e-9, -0.78+1e-9)
		test.That(t, ray.Direction.Y, test.ShouldBeBetweenOrEqual, 0.58-1e-9, 0.6+1e-9)
		test.That(t, ray.Time, test.ShouldBeBetweenOrEqual, 0.0, 1.0)
	}
}

func TestCamera_DefocusMovesOriginWithinDisk(t *testing.T) {
	config := DefaultCameraConfig()
	config.DefocusAngle = 10
	config.FocusDist = 4
	camera := NewCamera(config)
	sampler := core.NewSeededSampler(4)

	radius := 4 * math.Tan(core.DegreesToRadians(5))
	moved := false
	for i := 0; i < 100; i++ {
		ray := camera.GetRay(50, 50, sampler)
		offset := ray.Origin.Subtract(config.LookFrom)
		test.That(t, offset.Z, test.ShouldAlmostEqual, 0.0, 1e-12)
		test.That(t, offset.Length(), test.ShouldBeLessThanOrEqualTo, radius+1e-9)
		if offset.Length() > 1e-6 {
			moved = true
		}
	}
	test.That(t, moved, test.ShouldBeTrue)
}

type constantSampler struct {
	value float64
}

func (c *constantSampler) Get1D() float64 { return c.value }
func (c *constantSampler) Get2D() core.Vec2 {
	return core.NewVec2(c.value, c.value)
}
func (c *constantSampler) Get3D() core.Vec3 {
	return core.NewVec3(c.value, c.value, c.value)
}
