package loaders

import (
	"fmt"
	"image"
	_ "image/jpeg" // JPEG decoder
	_ "image/png"  // PNG decoder
	"io"
	"os"

	"github.com/df07/go-bvh-pathtracer/pkg/core"
)

// ImageData holds a decoded image as packed 8-bit RGB, row-major from the top row.
// It satisfies material.Image.
type ImageData struct {
	width  int
	height int
	pixels []uint8
}

// NewImageData wraps packed RGB bytes. len(pixels) must be 3*width*height.
func NewImageData(width, height int, pixels []uint8) (*ImageData, error) {
	if width < 0 || height < 0 || len(pixels) != 3*width*height {
		return nil, fmt.Errorf("invalid image data: %dx%d with %d bytes", width, height, len(pixels))
	}
	return &ImageData{width: width, height: height, pixels: pixels}, nil
}

// Width returns the image width in pixels
func (d *ImageData) Width() int { return d.width }

// Height returns the image height in pixels
func (d *ImageData) Height() int { return d.height }

// Pixel returns the 8-bit channels at (x, y). Out-of-range coordinates are
// clamped to the nearest edge pixel.
func (d *ImageData) Pixel(x, y int) (uint8, uint8, uint8) {
	if d.width == 0 || d.height == 0 {
		return 0, 0, 0
	}
	x = core.Clamp(x, 0, d.width-1)
	y = core.Clamp(y, 0, d.height-1)
	i := 3 * (y*d.width + x)
	return d.pixels[i], d.pixels[i+1], d.pixels[i+2]
}

// LoadImage loads a PNG or JPEG file
func LoadImage(filename string) (*ImageData, error) {
	file, err := os.Open(filename)
	if err != nil {
		return nil, fmt.Errorf("failed to open image file: %w", err)
	}
	defer file.Close()

	data, err := DecodeImage(file)
	if err != nil {
		return nil, fmt.Errorf("failed to load %s: %w", filename, err)
	}
	return data, nil
}

// DecodeImage decodes a PNG or JPEG stream, detecting the format from its header
func DecodeImage(r io.Reader) (*ImageData, error) {
	img, _, err := image.Decode(r)
	if err != nil {
		return nil, fmt.Errorf("failed to decode image: %w", err)
	}

	bounds := img.Bounds()
	width := bounds.Dx()
	height := bounds.Dy()
	pixels := make([]uint8, 0, 3*width*height)

	for y := 0; y < height; y++ {
		for x := 0; x < width; x++ {
			// RGBA returns 16-bit channels
			r, g, b, _ := img.At(x+bounds.Min.X, y+bounds.Min.Y).RGBA()
			pixels = append(pixels, uint8(r>>8), uint8(g>>8), uint8(b>>8))
		}
	}

	return &ImageData{width: width, height: height, pixels: pixels}, nil
}
