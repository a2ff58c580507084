package renderer

import (
	"image"
	"image/color"
	"math"

	"github.com/df07/go-bvh-pathtracer/pkg/core"
)

// Frame is a rendered image of linear radiance, one averaged color per pixel,
// stored row-major from the top-left
type Frame struct {
	Width  int
	Height int
	Pixels []core.Vec3
}

// NewFrame creates a black frame
func NewFrame(width, height int) *Frame {
	return &Frame{
		Width:  width,
		Height: height,
		Pixels: make([]core.Vec3, width*height),
	}
}

// At returns the color of pixel (x, y)
func (f *Frame) At(x, y int) core.Vec3 {
	return f.Pixels[y*f.Width+x]
}

// Set stores the color of pixel (x, y)
func (f *Frame) Set(x, y int, c core.Vec3) {
	f.Pixels[y*f.Width+x] = c
}

// quantizeInterval keeps 1.0 from rounding up to 256
var quantizeInterval = core.NewInterval(0.000, 0.999)

// linearToGamma applies gamma 2. Negative and NaN components map to black.
func linearToGamma(linear float64) float64 {
	if linear > 0 {
		return math.Sqrt(linear)
	}
	return 0
}

// toByte converts one linear channel to its 8-bit output value
func toByte(linear float64) uint8 {
	return uint8(256 * quantizeInterval.Clamp(linearToGamma(linear)))
}

// ToBytes converts a linear color to gamma-corrected 8-bit channels
func ToBytes(c core.Vec3) (r, g, b uint8) {
	return toByte(c.X), toByte(c.Y), toByte(c.Z)
}

// ToRGBA converts the frame to an 8-bit image with the same quantization as the PPM writer
func (f *Frame) ToRGBA() *image.RGBA {
	img := image.NewRGBA(image.Rect(0, 0, f.Width, f.Height))
	for y := 0; y < f.Height; y++ {
		for x := 0; x < f.Width; x++ {
			r, g, b := ToBytes(f.At(x, y))
			img.SetRGBA(x, y, color.RGBA{R: r, G: g, B: b, A: 255})
		}
	}
	return img
}
