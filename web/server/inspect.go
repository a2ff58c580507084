package server

import (
	"fmt"
	"net/http"

	"github.com/labstack/echo/v4"

	"github.com/df07/go-bvh-pathtracer/pkg/core"
	"github.com/df07/go-bvh-pathtracer/pkg/geometry"
	"github.com/df07/go-bvh-pathtracer/pkg/material"
	"github.com/df07/go-bvh-pathtracer/pkg/scene"
)

// InspectResponse represents the JSON response for object inspection
type InspectResponse struct {
	Hit          bool                   `json:"hit"`
	MaterialType string                 `json:"materialType,omitempty"`
	GeometryType string                 `json:"geometryType,omitempty"`
	Point        [3]float64             `json:"point"`
	Normal       [3]float64             `json:"normal"`
	Distance     float64                `json:"distance"`
	FrontFace    bool                   `json:"frontFace"`
	Properties   map[string]interface{} `json:"properties,omitempty"`
}

// InspectResult contains the first surface seen through a pixel
type InspectResult struct {
	Hit       bool
	Ray       core.Ray
	HitRecord *material.HitRecord
	Object    geometry.Hittable // Top-level scene object that was hit, nil if unknown
}

// pixelCenterSampler aims camera rays through the exact pixel center, from the
// lens center, at mid shutter
type pixelCenterSampler struct{}

func (pixelCenterSampler) Get1D() float64 { return 0.5 }
func (pixelCenterSampler) Get2D() core.Vec2 {
	return core.NewVec2(0.5, 0.5)
}
func (pixelCenterSampler) Get3D() core.Vec3 {
	return core.NewVec3(0.5, 0.5, 0.5)
}

func vecArray(v core.Vec3) [3]float64 {
	return [3]float64{v.X, v.Y, v.Z}
}

func hexColor(c core.Vec3) string {
	return fmt.Sprintf("#%02x%02x%02x",
		int(core.Clamp(c.X, 0, 1)*255), int(core.Clamp(c.Y, 0, 1)*255), int(core.Clamp(c.Z, 0, 1)*255))
}

// inspectPixel casts a ray through the center of pixel (x, y) and returns the first object hit
func inspectPixel(sceneObj *scene.Scene, camera *geometry.Camera, x, y int) InspectResult {
	ray := camera.GetRay(x, y, pixelCenterSampler{})
	rayT := core.NewInterval(0.001, core.Infinity)

	hit, isHit := sceneObj.Hittable().Hit(ray, rayT)
	if !isHit {
		return InspectResult{Ray: ray}
	}

	// The BVH only reports the hit record, so find the object at the same distance
	for _, obj := range sceneObj.World.Objects() {
		if objHit, ok := obj.Hit(ray, core.NewInterval(rayT.Min, hit.T+1e-9)); ok && objHit.T == hit.T {
			return InspectResult{Hit: true, Ray: ray, HitRecord: hit, Object: obj}
		}
	}
	return InspectResult{Hit: true, Ray: ray, HitRecord: hit}
}

// extractMaterialInfo describes a material as evaluated at the hit point
func extractMaterialInfo(mat material.Material, hit *material.HitRecord) (string, map[string]interface{}) {
	properties := make(map[string]interface{})

	switch m := mat.(type) {
	case *material.Lambertian:
		albedo := m.Albedo.Evaluate(hit.UV, hit.Point)
		properties["albedo"] = vecArray(albedo)
		properties["color"] = hexColor(albedo)
		return "lambertian", properties

	case *material.Metal:
		properties["albedo"] = vecArray(m.Albedo)
		properties["color"] = hexColor(m.Albedo)
		properties["fuzzness"] = m.Fuzzness
		return "metal", properties

	case *material.Dielectric:
		properties["refractiveIndex"] = m.RefractiveIndex
		properties["color"] = "#ffffff"
		return "dielectric", properties

	case *material.Emissive:
		emission := m.Emit(hit.UV, hit.Point)
		properties["emission"] = vecArray(emission)
		properties["color"] = hexColor(emission)
		return "emissive", properties

	default:
		if emitter, ok := mat.(material.Emitter); ok {
			emission := emitter.Emit(hit.UV, hit.Point)
			properties["emission"] = vecArray(emission)
			return "emissive", properties
		}
		return "unknown", properties
	}
}

// extractGeometryInfo describes a top-level scene object
func extractGeometryInfo(obj geometry.Hittable) (string, map[string]interface{}) {
	properties := make(map[string]interface{})

	switch geom := obj.(type) {
	case *geometry.Sphere:
		properties["center"] = vecArray(geom.Center)
		properties["radius"] = geom.Radius
		if geom.IsMoving() {
			properties["motion"] = vecArray(geom.Motion)
			return "moving_sphere", properties
		}
		return "sphere", properties

	case *geometry.Quad:
		properties["corner"] = vecArray(geom.Corner)
		properties["u"] = vecArray(geom.U)
		properties["v"] = vecArray(geom.V)
		properties["normal"] = vecArray(geom.Normal)
		return "quad", properties

	case *geometry.World:
		properties["objects"] = geom.Len()
		return "group", properties

	case *geometry.Translate, *geometry.RotateY:
		return "instance", properties

	default:
		return "unknown", properties
	}
}

// handleInspect reports what the camera sees through one pixel
func (s *Server) handleInspect(c echo.Context) error {
	sceneID := c.QueryParam("scene")
	if sceneID == "" {
		sceneID = "cornell-box"
	}
	width, err := intParam(c, "width", 400, 1, 2000)
	if err != nil {
		return jsonError(c, http.StatusBadRequest, err)
	}
	seed, err := intParam(c, "seed", 42, 0, 1<<31-1)
	if err != nil {
		return jsonError(c, http.StatusBadRequest, err)
	}
	x, err := intParam(c, "x", -1, 0, width-1)
	if err != nil {
		return jsonError(c, http.StatusBadRequest, err)
	}

	sceneObj, err := scene.Build(sceneID, scene.Options{
		Seed:       int64(seed),
		TextureDir: s.textureDir,
		Camera:     geometry.CameraConfig{ImageWidth: width},
		Logger:     NewWebLogger("inspect", nil),
	})
	if err != nil {
		return jsonError(c, http.StatusBadRequest, err)
	}

	camera := geometry.NewCamera(sceneObj.CameraConfig)
	y, err := intParam(c, "y", -1, 0, camera.ImageHeight()-1)
	if err != nil {
		return jsonError(c, http.StatusBadRequest, err)
	}
	if x < 0 || y < 0 {
		return jsonError(c, http.StatusBadRequest, fmt.Errorf("x and y are required"))
	}

	result := inspectPixel(sceneObj, camera, x, y)
	if !result.Hit {
		return c.JSON(http.StatusOK, InspectResponse{Hit: false})
	}

	hit := result.HitRecord
	materialType, materialProps := extractMaterialInfo(hit.Material, hit)
	geometryType, geometryProps := extractGeometryInfo(result.Object)

	return c.JSON(http.StatusOK, InspectResponse{
		Hit:          true,
		MaterialType: materialType,
		GeometryType: geometryType,
		Point:        vecArray(hit.Point),
		Normal:       vecArray(hit.Normal),
		Distance:     hit.T * result.Ray.Direction.Length(),
		FrontFace:    hit.FrontFace,
		Properties: map[string]interface{}{
			"material": materialProps,
			"geometry": geometryProps,
		},
	})
}
