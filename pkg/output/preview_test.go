package output

import "testing"

func TestPreview_Downscales(t *testing.T) {
	img := testImage(20, 10)
	preview := Preview(img, 8)

	bounds := preview.Bounds()
	if bounds.Dx() != 8 || bounds.Dy() != 4 {
		t.Errorf("Expected 8x4 preview, got %dx%d", bounds.Dx(), bounds.Dy())
	}
	if bounds.Min.X != 0 || bounds.Min.Y != 0 {
		t.Errorf("Preview should start at the origin, got %v", bounds.Min)
	}
}

func TestPreview_NoUpscale(t *testing.T) {
	img := testImage(6, 3)
	for _, width := range []int{0, 6, 100} {
		preview := Preview(img, width)
		if preview.Bounds() != img.Bounds() {
			t.Errorf("width %d: expected unchanged bounds %v, got %v", width, img.Bounds(), preview.Bounds())
		}
		if preview == img {
			t.Errorf("width %d: preview should be a copy", width)
		}
		if preview.RGBAAt(5, 2) != img.RGBAAt(5, 2) {
			t.Errorf("width %d: copied pixels differ", width)
		}
	}
}

func TestPreviewPath(t *testing.T) {
	tests := map[string]string{
		"render.png":    "render_preview.png",
		"out/final.ppm": "out/final_preview.ppm",
		"no-extension":  "no-extension_preview",
	}
	for input, expected := range tests {
		if got := PreviewPath(input); got != expected {
			t.Errorf("PreviewPath(%q) = %q, want %q", input, got, expected)
		}
	}
}
