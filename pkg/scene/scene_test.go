package scene

import (
	"errors"
	"fmt"
	"image"
	"image/color"
	"image/png"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"go.viam.com/test"

	"github.com/df07/go-bvh-pathtracer/pkg/core"
	"github.com/df07/go-bvh-pathtracer/pkg/geometry"
	"github.com/df07/go-bvh-pathtracer/pkg/material"
)

type recordingLogger struct {
	lines []string
}

func (l *recordingLogger) Printf(format string, args ...interface{}) {
	l.lines = append(l.lines, fmt.Sprintf(format, args...))
}

func (l *recordingLogger) String() string {
	return strings.Join(l.lines, "")
}

func smallCamera() geometry.CameraConfig {
	return geometry.CameraConfig{ImageWidth: 32, SamplesPerPixel: 1}
}

func TestBuild_EveryRegisteredScene(t *testing.T) {
	for _, name := range Names() {
		t.Run(name, func(t *testing.T) {
			logger := &recordingLogger{}
			s, err := Build(name, Options{Seed: 1, TextureDir: t.TempDir(), Camera: smallCamera(), Logger: logger})
			test.That(t, err, test.ShouldBeNil)

			test.That(t, s.Name, test.ShouldEqual, name)
			test.That(t, s.World.Len(), test.ShouldBeGreaterThan, 0)
			test.That(t, s.BVH, test.ShouldNotBeNil)
			test.That(t, s.BVH.BoundingBox().IsEmpty(), test.ShouldBeFalse)
			test.That(t, s.Hittable(), test.ShouldEqual, s.BVH)

			test.That(t, s.CameraConfig.ImageWidth, test.ShouldEqual, 32)
			test.That(t, s.CameraConfig.SamplesPerPixel, test.ShouldEqual, 1)
			test.That(t, s.CameraConfig.MaxDepth, test.ShouldBeGreaterThan, 0)

			test.That(t, logger.String(), test.ShouldContainSubstring, "BVH")
		})
	}
}

func TestNames_AreUniqueAndLookupable(t *testing.T) {
	names := Names()
	test.That(t, len(names), test.ShouldEqual, 10)

	seen := map[string]bool{}
	for _, name := range names {
		test.That(t, seen[name], test.ShouldBeFalse)
		seen[name] = true

		info, err := Lookup(name)
		test.That(t, err, test.ShouldBeNil)
		test.That(t, info.ID, test.ShouldEqual, name)
		test.That(t, info.DisplayName, test.ShouldNotBeEmpty)
	}
}

func TestUnknownScene(t *testing.T) {
	_, err := Lookup("teapot")
	test.That(t, errors.Is(err, ErrUnknownScene), test.ShouldBeTrue)
	test.That(t, err.Error(), test.ShouldContainSubstring, "cornell-box")

	s, err := Build("teapot", Options{})
	test.That(t, s, test.ShouldBeNil)
	test.That(t, errors.Is(err, ErrUnknownScene), test.ShouldBeTrue)
}

func TestListAllScenes(t *testing.T) {
	response := ListAllScenes()
	test.That(t, len(response.Groups), test.ShouldEqual, 2)
	test.That(t, response.Groups[0].Name, test.ShouldEqual, "Classic Scenes")
	test.That(t, response.Groups[1].Name, test.ShouldEqual, "Showcase")

	total := 0
	for _, group := range response.Groups {
		total += len(group.Scenes)
	}
	test.That(t, total, test.ShouldEqual, len(Names()))

	info, err := Lookup("cornell-box")
	test.That(t, err, test.ShouldBeNil)
	test.That(t, info.DisplayName, test.ShouldEqual, "Cornell Box")
}

func TestBuild_IsDeterministicForSeed(t *testing.T) {
	a, err := Build("bouncing-spheres", Options{Seed: 7})
	test.That(t, err, test.ShouldBeNil)
	b, err := Build("bouncing-spheres", Options{Seed: 7})
	test.That(t, err, test.ShouldBeNil)

	test.That(t, a.World.Len(), test.ShouldEqual, b.World.Len())
	test.That(t, a.BVH.BoundingBox(), test.ShouldResemble, b.BVH.BoundingBox())
}

func TestCameraOverridesKeepSceneDefaults(t *testing.T) {
	s := NewQuadsScene(geometry.CameraConfig{ImageWidth: 64})
	test.That(t, s.CameraConfig.ImageWidth, test.ShouldEqual, 64)
	test.That(t, s.CameraConfig.VFov, test.ShouldEqual, 80.0)
	test.That(t, s.CameraConfig.LookFrom, test.ShouldResemble, core.NewVec3(0, 0, 9))

	s = NewQuadsScene()
	test.That(t, s.CameraConfig.ImageWidth, test.ShouldEqual, 400)
}

func TestBackgroundColor(t *testing.T) {
	up := core.NewRay(core.NewVec3(0, 0, 0), core.NewVec3(0, 1, 0))

	sky := NewDefaultScene(1)
	got := sky.BackgroundColor(up)
	test.That(t, got.X, test.ShouldAlmostEqual, 0.5, 1e-12)
	test.That(t, got.Y, test.ShouldAlmostEqual, 0.7, 1e-12)
	test.That(t, got.Z, test.ShouldAlmostEqual, 1.0, 1e-12)

	// Without a background object the camera's color is used
	cornell := NewCornellScene()
	test.That(t, cornell.BackgroundColor(up), test.ShouldResemble, core.NewVec3(0, 0, 0))

	custom := New("custom", geometry.CameraConfig{Background: core.NewVec3(0.1, 0.2, 0.3)})
	test.That(t, custom.BackgroundColor(up), test.ShouldResemble, core.NewVec3(0.1, 0.2, 0.3))
}

func TestCornellScene_Contents(t *testing.T) {
	s := NewCornellScene()
	s.Preprocess(nil)

	// Six quads plus two instanced boxes of six faces each
	test.That(t, s.World.Len(), test.ShouldEqual, 8)
	test.That(t, s.PrimitiveCount(), test.ShouldEqual, 18)
	test.That(t, s.BVH.BoundingBox().Contains(core.NewVec3(278, 278, 278)), test.ShouldBeTrue)

	// A ray straight up from above both blocks reaches the light
	hit, ok := s.Hittable().Hit(core.NewRay(core.NewVec3(278, 400, 278), core.NewVec3(0, 1, 0)), core.NewInterval(0.001, core.Infinity))
	test.That(t, ok, test.ShouldBeTrue)
	test.That(t, hit.Point.Y, test.ShouldAlmostEqual, cornellBoxSize-1, 1e-9)
	test.That(t, material.EmittedLight(hit.Material, hit.UV, hit.Point), test.ShouldResemble, core.NewVec3(15, 15, 15))
}

func TestHittable_FallsBackToWorldBeforePreprocess(t *testing.T) {
	s := NewCheckeredSpheresScene()
	test.That(t, s.BVH, test.ShouldBeNil)
	test.That(t, s.Hittable(), test.ShouldEqual, s.World)
}

func TestNewGroundQuad_FacesUp(t *testing.T) {
	q := NewGroundQuad(core.NewVec3(1, 2, 3), 10, material.NewLambertian(core.NewVec3(0.5, 0.5, 0.5)))
	test.That(t, q.Normal.Y, test.ShouldAlmostEqual, 1.0, 1e-12)

	hit, ok := q.Hit(core.NewRay(core.NewVec3(1, 5, 3), core.NewVec3(0, -1, 0)), core.NewInterval(0.001, core.Infinity))
	test.That(t, ok, test.ShouldBeTrue)
	test.That(t, hit.FrontFace, test.ShouldBeTrue)
	test.That(t, hit.Point.Y, test.ShouldAlmostEqual, 2.0, 1e-12)
}

func earthAlbedoAtFront(t *testing.T, s *Scene) core.Vec3 {
	t.Helper()
	s.Preprocess(nil)
	ray := core.NewRay(core.NewVec3(0, 0, 12), core.NewVec3(0, 0, -1))
	hit, ok := s.Hittable().Hit(ray, core.NewInterval(0.001, core.Infinity))
	test.That(t, ok, test.ShouldBeTrue)

	lambertian, ok := hit.Material.(*material.Lambertian)
	test.That(t, ok, test.ShouldBeTrue)
	return lambertian.Albedo.Evaluate(hit.UV, hit.Point)
}

func TestEarthScene_MissingTextureIsCyan(t *testing.T) {
	logger := &recordingLogger{}
	s := NewEarthScene(t.TempDir(), logger)

	test.That(t, earthAlbedoAtFront(t, s), test.ShouldResemble, core.NewVec3(0, 1, 1))
	test.That(t, logger.String(), test.ShouldContainSubstring, "Warning")
	test.That(t, logger.String(), test.ShouldContainSubstring, EarthTextureFile)
}

func TestEarthScene_LoadsTexture(t *testing.T) {
	dir := t.TempDir()
	img := image.NewRGBA(image.Rect(0, 0, 1, 1))
	img.Set(0, 0, color.RGBA{R: 255, A: 255})

	// The decoder sniffs the format, so PNG bytes under the .jpg name load fine
	f, err := os.Create(filepath.Join(dir, EarthTextureFile))
	test.That(t, err, test.ShouldBeNil)
	test.That(t, png.Encode(f, img), test.ShouldBeNil)
	test.That(t, f.Close(), test.ShouldBeNil)

	logger := &recordingLogger{}
	s := NewEarthScene(dir, logger)
	test.That(t, earthAlbedoAtFront(t, s), test.ShouldResemble, core.NewVec3(1, 0, 0))
	test.That(t, logger.String(), test.ShouldNotContainSubstring, "Warning")
}

func TestNoiseSpheresScene_UsesBothNoiseTextures(t *testing.T) {
	s := NewNoiseSpheresScene(3)
	s.Preprocess(nil)
	rayT := core.NewInterval(0.001, core.Infinity)

	textureAt := func(ray core.Ray) material.Texture {
		hit, ok := s.Hittable().Hit(ray, rayT)
		test.That(t, ok, test.ShouldBeTrue)
		lambertian, ok := hit.Material.(*material.Lambertian)
		test.That(t, ok, test.ShouldBeTrue)
		return lambertian.Albedo
	}

	sphere := textureAt(core.NewRay(core.NewVec3(0, 2, 12), core.NewVec3(0, 0, -1)))
	_, ok := sphere.(*material.ValueNoiseTexture)
	test.That(t, ok, test.ShouldBeTrue)

	ground := textureAt(core.NewRay(core.NewVec3(6, 5, 6), core.NewVec3(0, -1, 0)))
	_, ok = ground.(*material.NoiseTexture)
	test.That(t, ok, test.ShouldBeTrue)
}

func TestOklchToRGB_StaysInGamut(t *testing.T) {
	for hue := 0.0; hue < 360; hue += 15 {
		c := oklchToRGB(0.65, 0.25, hue)
		for _, v := range []float64{c.X, c.Y, c.Z} {
			test.That(t, v, test.ShouldBeBetweenOrEqual, 0.0, 1.0)
		}
	}
	// Zero chroma is a neutral gray
	gray := oklchToRGB(0.5, 0, 0)
	test.That(t, gray.X, test.ShouldAlmostEqual, gray.Y, 1e-6)
	test.That(t, gray.Y, test.ShouldAlmostEqual, gray.Z, 1e-6)
}
