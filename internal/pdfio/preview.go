package pdfio

import (
	"bytes"
	"fmt"
	"image"
	"image/png"

	xdraw "golang.org/x/image/draw"
)

// Thumbnail downsamples a page preview so its longest edge is at most
// maxPx, preserving aspect ratio. Previews no larger than maxPx are
// re-encoded unchanged.
func Thumbnail(preview PagePreview, maxPx int) (PagePreview, error) {
	if maxPx <= 0 {
		return PagePreview{}, fmt.Errorf("thumbnail size must be positive, got %d", maxPx)
	}

	src, err := png.Decode(bytes.NewReader(preview.PNG))
	if err != nil {
		return PagePreview{}, fmt.Errorf("failed to decode preview: %w", err)
	}

	bounds := src.Bounds()
	w, h := bounds.Dx(), bounds.Dy()
	longest := max(w, h)
	if longest <= maxPx {
		return preview, nil
	}

	scale := float64(maxPx) / float64(longest)
	dst := image.NewRGBA(image.Rect(0, 0, int(float64(w)*scale), int(float64(h)*scale)))
	xdraw.CatmullRom.Scale(dst, dst.Bounds(), src, bounds, xdraw.Over, nil)

	var buf bytes.Buffer
	if err := png.Encode(&buf, dst); err != nil {
		return PagePreview{}, fmt.Errorf("failed to encode thumbnail: %w", err)
	}
	return PagePreview{PageUID: preview.PageUID, PNG: buf.Bytes()}, nil
}

// Thumbnails maps Thumbnail over a preview list, keeping page order.
func Thumbnails(previews []PagePreview, maxPx int) ([]PagePreview, error) {
	out := make([]PagePreview, 0, len(previews))
	for _, p := range previews {
		thumb, err := Thumbnail(p, maxPx)
		if err != nil {
			return nil, fmt.Errorf("page %s: %w", p.PageUID, err)
		}
		out = append(out, thumb)
	}
	return out, nil
}
