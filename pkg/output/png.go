package output

import (
	"image"
	"image/png"
	"io"
)

// WritePNG encodes img as PNG
func WritePNG(w io.Writer, img image.Image) error {
	return png.Encode(w, img)
}
