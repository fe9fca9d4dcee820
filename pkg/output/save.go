package output

import (
	"bytes"
	"fmt"
	"image"
	"os"
	"path/filepath"
	"strings"
)

// Format identifies an on-disk image encoding
type Format string

const (
	FormatPNG Format = "png"
	FormatPPM Format = "ppm"
)

// FormatForPath picks the encoding from the file extension; anything other
// than .ppm is written as PNG
func FormatForPath(path string) Format {
	if strings.EqualFold(filepath.Ext(path), ".ppm") {
		return FormatPPM
	}
	return FormatPNG
}

// ContentType returns the MIME type for the format
func (f Format) ContentType() string {
	if f == FormatPPM {
		return "image/x-portable-pixmap"
	}
	return "image/png"
}

// Encode renders img in the given format
func Encode(img *image.RGBA, format Format) ([]byte, error) {
	var buf bytes.Buffer
	var err error
	switch format {
	case FormatPPM:
		err = WritePPM(&buf, img)
	case FormatPNG:
		err = WritePNG(&buf, img)
	default:
		return nil, fmt.Errorf("unsupported image format %q", format)
	}
	if err != nil {
		return nil, fmt.Errorf("error encoding %s: %w", format, err)
	}
	return buf.Bytes(), nil
}

// Save encodes img according to the extension of path and writes it,
// creating the parent directory if needed. It returns the encoded bytes so
// callers can reuse them without re-encoding.
func Save(path string, img *image.RGBA) ([]byte, error) {
	data, err := Encode(img, FormatForPath(path))
	if err != nil {
		return nil, fmt.Errorf("error saving %s: %w", path, err)
	}

	if dir := filepath.Dir(path); dir != "." {
		if err := os.MkdirAll(dir, 0755); err != nil {
			return nil, fmt.Errorf("error creating output directory for %s: %w", path, err)
		}
	}
	if err := os.WriteFile(path, data, 0644); err != nil {
		return nil, fmt.Errorf("error saving %s: %w", path, err)
	}
	return data, nil
}
