// package common contains common types that are used throughout this engine. They are not interface-wrapped structs, just plain structs that express
// commonly used data-types.
package common

import (
	"bytes"
	"fmt"
	"image"
	"image/draw"
	_ "image/jpeg"
	_ "image/png"
	"os"

	"github.com/cogentcore/webgpu/wgpu"
)

// TextureStagingData holds RGBA pixel data for a texture binding pending GPU upload.
// This is primarily used by the atlas to stage packed pixel data before creating the GPU texture and bind group.
type TextureStagingData struct {
	// Pixels is the byte slice representing the actual pixel data for the texture. It should be in RGBA format, with 4 bytes per pixel.
	Pixels []byte
	// Width is the width of the texture in pixels. This is required to correctly create the GPU texture and interpret the pixel data.
	Width uint32
	// Height is the height of the texture in pixels. This is required to correctly create the GPU texture and interpret the pixel data.
	Height uint32
}

// SamplerStagingData holds the configuration for a sampler binding pending GPU creation.
// This is primarily used by the atlas to stage sampler data before creating the GPU sampler and bind group.
type SamplerStagingData struct {
	// AddressModeU, AddressModeV, AddressModeW specify the addressing mode for texture coordinates outside the [0, 1] range in each dimension (U, V, W).
	AddressModeU, AddressModeV, AddressModeW wgpu.AddressMode
	// MagFilter and MinFilter specify the filtering mode for magnification and minification.
	MagFilter, MinFilter wgpu.FilterMode
	// MipmapFilter specifies the filtering mode for mipmap level selection.
	MipmapFilter wgpu.MipmapFilterMode
	// LodMinClamp and LodMaxClamp specify the minimum and maximum level of detail (LOD) for mipmapping.
	LodMinClamp, LodMaxClamp float32
	// Compare specifies the comparison function for comparison samplers, used in shadow mapping and similar techniques.
	Compare wgpu.CompareFunction
	// MaxAnisotropy specifies the maximum anisotropy level for anisotropic filtering, which can improve texture quality at oblique viewing angles.
	MaxAnisotropy uint16
}

// Color3 is a normalized RGB color with components in [0, 1].
type Color3 [3]float32

// Gray returns a Color3 with all three channels set to v.
//
// Parameters:
//   - v: channel intensity in [0, 1]
//
// Returns:
//   - Color3: the gray color
func Gray(v float32) Color3 {
	return Color3{v, v, v}
}

// WGPU converts the color to a wgpu.Color with full alpha, for use as a
// render-pass clear value.
//
// Returns:
//   - wgpu.Color: the color with alpha 1
func (c Color3) WGPU() wgpu.Color {
	return wgpu.Color{R: float64(c[0]), G: float64(c[1]), B: float64(c[2]), A: 1}
}

// SheetImage represents a source image for a sprite sheet.
// For embedded images the Data field contains raw image bytes; otherwise the
// Path field names a file on disk.
type SheetImage struct {
	// Name is an identifier for this sheet (e.g., "tiles", "characters").
	Name string

	// Path is the file path for on-disk images (empty for embedded).
	Path string

	// Data contains raw image bytes for embedded images (PNG/JPEG).
	Data []byte

	// Width is the image width in pixels (populated after Decode).
	Width int

	// Height is the image height in pixels (populated after Decode).
	Height int
}

// Decode decodes the sheet image to raw RGBA pixel data.
// Uses either embedded Data bytes or loads from Path on disk.
// Supports PNG and JPEG formats.
// Reference: https://pkg.go.dev/image
//
// Returns:
//   - []byte: raw RGBA pixel data (4 bytes per pixel, row-major order)
//   - uint32: image width in pixels
//   - uint32: image height in pixels
//   - error: error if decoding fails
func (t *SheetImage) Decode() ([]byte, uint32, uint32, error) {
	if t == nil {
		return nil, 0, 0, fmt.Errorf("sheet image is nil")
	}

	var img image.Image
	var err error

	if len(t.Data) > 0 {
		img, _, err = image.Decode(bytes.NewReader(t.Data))
		if err != nil {
			return nil, 0, 0, fmt.Errorf("failed to decode embedded image: %w", err)
		}
	} else if t.Path != "" {
		file, fileErr := os.Open(t.Path)
		if fileErr != nil {
			return nil, 0, 0, fmt.Errorf("failed to open sheet image %s: %w", t.Path, fileErr)
		}
		defer file.Close()

		img, _, err = image.Decode(file)
		if err != nil {
			return nil, 0, 0, fmt.Errorf("failed to decode sheet image %s: %w", t.Path, err)
		}
	} else {
		return nil, 0, 0, fmt.Errorf("sheet image has neither data nor path")
	}

	bounds := img.Bounds()
	width := bounds.Dx()
	height := bounds.Dy()

	rgba := image.NewRGBA(bounds)
	draw.Draw(rgba, bounds, img, bounds.Min, draw.Src)

	t.Width = width
	t.Height = height

	return rgba.Pix, uint32(width), uint32(height), nil
}
