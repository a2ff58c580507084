package server

import (
	"bytes"
	"encoding/base64"
	"encoding/json"
	"image/png"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"go.viam.com/test"

	"github.com/df07/go-bvh-pathtracer/pkg/geometry"
	"github.com/df07/go-bvh-pathtracer/pkg/renderer"
	"github.com/df07/go-bvh-pathtracer/pkg/scene"
)

func get(t *testing.T, target string) *httptest.ResponseRecorder {
	t.Helper()
	s := NewServer(0, t.TempDir())
	req := httptest.NewRequest(http.MethodGet, target, nil)
	rec := httptest.NewRecorder()
	s.Handler().ServeHTTP(rec, req)
	return rec
}

func decodeJSON(t *testing.T, rec *httptest.ResponseRecorder, v interface{}) {
	t.Helper()
	test.That(t, rec.Header().Get("Content-Type"), test.ShouldContainSubstring, "application/json")
	test.That(t, json.Unmarshal(rec.Body.Bytes(), v), test.ShouldBeNil)
}

func TestHealth(t *testing.T) {
	rec := get(t, "/api/health")
	test.That(t, rec.Code, test.ShouldEqual, http.StatusOK)

	var body map[string]string
	decodeJSON(t, rec, &body)
	test.That(t, body["status"], test.ShouldEqual, "ok")
}

func TestScenes(t *testing.T) {
	rec := get(t, "/api/scenes")
	test.That(t, rec.Code, test.ShouldEqual, http.StatusOK)

	var body scene.ScenesResponse
	decodeJSON(t, rec, &body)
	test.That(t, body, test.ShouldResemble, scene.ListAllScenes())
}

func TestSystem(t *testing.T) {
	rec := get(t, "/api/system")
	test.That(t, rec.Code, test.ShouldEqual, http.StatusOK)

	var info renderer.SystemInfo
	decodeJSON(t, rec, &info)
	test.That(t, info.LogicalCores, test.ShouldBeGreaterThan, 0)
}

func TestRender_PNG(t *testing.T) {
	rec := get(t, "/api/render?scene=quads&width=8&samples=1&depth=2")
	test.That(t, rec.Code, test.ShouldEqual, http.StatusOK)
	test.That(t, rec.Header().Get("Content-Type"), test.ShouldEqual, "image/png")

	img, err := png.Decode(rec.Body)
	test.That(t, err, test.ShouldBeNil)
	test.That(t, img.Bounds().Dx(), test.ShouldEqual, 8)
	test.That(t, img.Bounds().Dy(), test.ShouldEqual, 8)
}

func TestRender_PPM(t *testing.T) {
	rec := get(t, "/api/render?scene=quads&width=4&samples=1&depth=2&format=PPM")
	test.That(t, rec.Code, test.ShouldEqual, http.StatusOK)
	test.That(t, rec.Header().Get("Content-Type"), test.ShouldEqual, "image/x-portable-pixmap")
	test.That(t, strings.HasPrefix(rec.Body.String(), "P3\n4 4\n255\n"), test.ShouldBeTrue)
}

func TestRender_JSONIncludesConsole(t *testing.T) {
	rec := get(t, "/api/render?scene=earth&width=16&samples=1&depth=2&format=json")
	test.That(t, rec.Code, test.ShouldEqual, http.StatusOK)

	var body RenderResponse
	decodeJSON(t, rec, &body)
	test.That(t, body.Scene, test.ShouldEqual, "earth")
	test.That(t, body.Width, test.ShouldEqual, 16)
	test.That(t, body.Height, test.ShouldEqual, 9)
	test.That(t, body.Stats.TotalPixels, test.ShouldEqual, 16*9)
	test.That(t, body.Stats.AverageSamples, test.ShouldEqual, 1.0)

	// The texture directory is empty, so the fallback shows up as a warning
	var levels []string
	var text strings.Builder
	for _, msg := range body.Console {
		levels = append(levels, msg.Level)
		text.WriteString(msg.Message)
	}
	test.That(t, levels, test.ShouldContain, "warning")
	test.That(t, text.String(), test.ShouldContainSubstring, "Render completed")

	data, err := base64.StdEncoding.DecodeString(body.ImageData)
	test.That(t, err, test.ShouldBeNil)
	img, err := png.Decode(bytes.NewReader(data))
	test.That(t, err, test.ShouldBeNil)
	test.That(t, img.Bounds().Dx(), test.ShouldEqual, 16)
}

func TestRender_BadRequests(t *testing.T) {
	tests := []struct {
		name   string
		target string
		want   string
	}{
		{"unknown scene", "/api/render?scene=teapot", "unknown scene"},
		{"width not a number", "/api/render?width=wide", "invalid width"},
		{"width too large", "/api/render?width=5000", "width must be between"},
		{"zero samples", "/api/render?samples=0", "samples must be between"},
		{"bad format", "/api/render?format=exr", "unsupported output format"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			rec := get(t, tt.target)
			test.That(t, rec.Code, test.ShouldEqual, http.StatusBadRequest)

			var body map[string]string
			decodeJSON(t, rec, &body)
			test.That(t, body["error"], test.ShouldContainSubstring, tt.want)
		})
	}
}

func TestInspect_HitsBackQuad(t *testing.T) {
	rec := get(t, "/api/inspect?scene=quads&width=8&x=4&y=4")
	test.That(t, rec.Code, test.ShouldEqual, http.StatusOK)

	var body InspectResponse
	decodeJSON(t, rec, &body)
	test.That(t, body.Hit, test.ShouldBeTrue)
	test.That(t, body.MaterialType, test.ShouldEqual, "lambertian")
	test.That(t, body.GeometryType, test.ShouldEqual, "quad")
	test.That(t, body.FrontFace, test.ShouldBeTrue)
	test.That(t, body.Point[2], test.ShouldAlmostEqual, 0.0, 1e-9)
	test.That(t, body.Normal, test.ShouldResemble, [3]float64{0, 0, 1})
	test.That(t, body.Distance, test.ShouldBeGreaterThan, 9.0)

	materialProps := body.Properties["material"].(map[string]interface{})
	test.That(t, materialProps["color"], test.ShouldEqual, "#33ff33")
	geometryProps := body.Properties["geometry"].(map[string]interface{})
	test.That(t, geometryProps["corner"], test.ShouldResemble, []interface{}{-2.0, -2.0, 0.0})
}

func TestInspect_BadRequests(t *testing.T) {
	for _, target := range []string{
		"/api/inspect?scene=quads&width=8&x=8&y=0",
		"/api/inspect?scene=quads&width=8&x=0&y=8",
		"/api/inspect?scene=quads&width=8",
		"/api/inspect?scene=teapot&x=0&y=0",
	} {
		rec := get(t, target)
		test.That(t, rec.Code, test.ShouldEqual, http.StatusBadRequest)
	}
}

func TestInspectPixel_EmptySceneMisses(t *testing.T) {
	s := scene.New("empty", geometry.DefaultCameraConfig())
	s.Preprocess(nil)

	result := inspectPixel(s, geometry.NewCamera(s.CameraConfig), 0, 0)
	test.That(t, result.Hit, test.ShouldBeFalse)
	test.That(t, result.HitRecord, test.ShouldBeNil)
}
