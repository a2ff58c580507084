package material

import (
	"github.com/df07/go-bvh-pathtracer/pkg/core"
)

// Image is a decoded picture addressed by pixel, row 0 at the top
type Image interface {
	Width() int
	Height() int
	Pixel(x, y int) (r, g, b uint8)
}

// missingImageColor is returned when a texture has no usable image, so
// the problem is visible in the render instead of silently black
var missingImageColor = core.NewVec3(0, 1, 1)

// ImageTexture provides color from a 2D image
type ImageTexture struct {
	Image Image
}

// NewImageTexture creates a new image texture. img may be nil, in which
// case the texture evaluates to cyan.
func NewImageTexture(img Image) *ImageTexture {
	return &ImageTexture{Image: img}
}

// Evaluate samples the texture at given UV coordinates using nearest-neighbor filtering
func (t *ImageTexture) Evaluate(uv core.Vec2, point core.Vec3) core.Vec3 {
	if t.Image == nil || t.Image.Height() <= 0 || t.Image.Width() <= 0 {
		return missingImageColor
	}

	u := core.Clamp(uv.X, 0.0, 1.0)
	// V=0 is bottom, V=1 is top; image rows start at the top
	v := 1.0 - core.Clamp(uv.Y, 0.0, 1.0)

	width, height := t.Image.Width(), t.Image.Height()
	x := core.Clamp(int(u*float64(width)), 0, width-1)
	y := core.Clamp(int(v*float64(height)), 0, height-1)

	r, g, b := t.Image.Pixel(x, y)
	return core.NewVec3(float64(r)/255, float64(g)/255, float64(b)/255)
}
