package output

import (
	"image"
	"image/draw"
	"path/filepath"
	"strings"

	"github.com/nfnt/resize"
)

// Preview downscales img to the given width, preserving the aspect ratio.
// Images already narrower than width are copied unchanged.
func Preview(img *image.RGBA, width int) *image.RGBA {
	if width <= 0 || width >= img.Bounds().Dx() {
		return toRGBA(img)
	}
	return toRGBA(resize.Resize(uint(width), 0, img, resize.Bilinear))
}

// PreviewPath returns the sibling path a preview of path is written to,
// e.g. "out/render.png" -> "out/render_preview.png"
func PreviewPath(path string) string {
	ext := filepath.Ext(path)
	return strings.TrimSuffix(path, ext) + "_preview" + ext
}

func toRGBA(img image.Image) *image.RGBA {
	bounds := img.Bounds()
	rgba := image.NewRGBA(image.Rect(0, 0, bounds.Dx(), bounds.Dy()))
	draw.Draw(rgba, rgba.Bounds(), img, bounds.Min, draw.Src)
	return rgba
}
