package scene

import (
	"errors"
	"fmt"
	"sort"
	"strings"

	"github.com/df07/go-bvh-pathtracer/pkg/core"
	"github.com/df07/go-bvh-pathtracer/pkg/geometry"
)

// ErrUnknownScene is returned when a scene ID is not registered
var ErrUnknownScene = errors.New("unknown scene")

// Options carries the inputs a scene builder may need besides its own defaults
type Options struct {
	Seed       int64                 // Seeds any randomness used to lay out the scene
	TextureDir string                // Directory searched for image textures
	Camera     geometry.CameraConfig // Non-zero fields override the scene's camera
	Logger     core.Logger
}

// SceneInfo represents a registered scene with its metadata
type SceneInfo struct {
	ID          string `json:"id"`          // Unique identifier
	DisplayName string `json:"displayName"` // UI display name
	Description string `json:"description"` // Optional description
	Group       string `json:"group"`       // Grouping category
}

// SceneGroup represents a group of related scenes
type SceneGroup struct {
	Name   string      `json:"name"`
	Scenes []SceneInfo `json:"scenes"`
}

// ScenesResponse represents the complete response for /api/scenes
type ScenesResponse struct {
	Groups []SceneGroup `json:"groups"`
}

type entry struct {
	info  SceneInfo
	build func(opts Options) *Scene
}

const (
	groupClassic  = "Classic Scenes"
	groupShowcase = "Showcase"
)

var registry = []entry{
	{
		info: SceneInfo{ID: "default", Description: "Moving sphere on a ground sphere", Group: groupClassic},
		build: func(o Options) *Scene {
			return NewDefaultScene(o.Seed, o.Camera)
		},
	},
	{
		info: SceneInfo{ID: "bouncing-spheres", Description: "Random field of spheres with motion blur and defocus", Group: groupClassic},
		build: func(o Options) *Scene {
			return NewBouncingSpheresScene(o.Seed, o.Camera)
		},
	},
	{
		info: SceneInfo{ID: "checkered-spheres", Description: "Two spheres sharing a 3D checker texture", Group: groupClassic},
		build: func(o Options) *Scene {
			return NewCheckeredSpheresScene(o.Camera)
		},
	},
	{
		info: SceneInfo{ID: "earth", Description: "Image-textured globe", Group: groupClassic},
		build: func(o Options) *Scene {
			return NewEarthScene(o.TextureDir, o.Logger, o.Camera)
		},
	},
	{
		info: SceneInfo{ID: "perlin-spheres", Description: "Marble noise texture", Group: groupClassic},
		build: func(o Options) *Scene {
			return NewPerlinSpheresScene(o.Seed, o.Camera)
		},
	},
	{
		info: SceneInfo{ID: "noise-spheres", Description: "Turbulence and value noise textures", Group: groupClassic},
		build: func(o Options) *Scene {
			return NewNoiseSpheresScene(o.Seed, o.Camera)
		},
	},
	{
		info: SceneInfo{ID: "quads", Description: "Five quads around the camera", Group: groupClassic},
		build: func(o Options) *Scene {
			return NewQuadsScene(o.Camera)
		},
	},
	{
		info: SceneInfo{ID: "simple-light", Description: "Marble spheres lit by emissive shapes", Group: groupClassic},
		build: func(o Options) *Scene {
			return NewSimpleLightScene(o.Seed, o.Camera)
		},
	},
	{
		info: SceneInfo{ID: "cornell-box", Description: "Cornell box with two rotated blocks", Group: groupClassic},
		build: func(o Options) *Scene {
			return NewCornellScene(o.Camera)
		},
	},
	{
		info: SceneInfo{ID: "sphere-grid", Description: "Grid of colored metal spheres", Group: groupShowcase},
		build: func(o Options) *Scene {
			return NewSphereGridScene(o.Camera)
		},
	},
}

func init() {
	for i := range registry {
		registry[i].info.DisplayName = titleCase(registry[i].info.ID)
	}
}

// Names returns every registered scene ID in registration order
func Names() []string {
	names := make([]string, len(registry))
	for i, e := range registry {
		names[i] = e.info.ID
	}
	return names
}

// Lookup returns the metadata of a registered scene
func Lookup(id string) (SceneInfo, error) {
	for _, e := range registry {
		if e.info.ID == id {
			return e.info, nil
		}
	}
	return SceneInfo{}, fmt.Errorf("%w: %q (available: %s)", ErrUnknownScene, id, strings.Join(Names(), ", "))
}

// Build constructs the scene registered under id and preprocesses it
func Build(id string, opts Options) (*Scene, error) {
	for _, e := range registry {
		if e.info.ID == id {
			s := e.build(opts)
			s.Preprocess(opts.Logger)
			return s, nil
		}
	}
	_, err := Lookup(id)
	return nil, err
}

// ListAllScenes returns the registered scenes grouped by category, groups sorted by name
func ListAllScenes() ScenesResponse {
	groupMap := make(map[string][]SceneInfo)
	for _, e := range registry {
		groupMap[e.info.Group] = append(groupMap[e.info.Group], e.info)
	}

	groupNames := make([]string, 0, len(groupMap))
	for name := range groupMap {
		groupNames = append(groupNames, name)
	}
	sort.Strings(groupNames)

	var response ScenesResponse
	for _, name := range groupNames {
		response.Groups = append(response.Groups, SceneGroup{Name: name, Scenes: groupMap[name]})
	}
	return response
}

// titleCase converts an ID to title case, e.g. "cornell-box" -> "Cornell Box"
func titleCase(s string) string {
	s = strings.ReplaceAll(s, "-", " ")
	s = strings.ReplaceAll(s, "_", " ")

	words := strings.Fields(s)
	for i, word := range words {
		words[i] = strings.ToUpper(word[:1]) + strings.ToLower(word[1:])
	}
	return strings.Join(words, " ")
}
