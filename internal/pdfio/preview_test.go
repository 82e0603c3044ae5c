package pdfio

import (
	"bytes"
	"image"
	"image/png"
	"testing"
)

func previewOf(t *testing.T, uid string, w, h int) PagePreview {
	t.Helper()
	var buf bytes.Buffer
	if err := png.Encode(&buf, image.NewRGBA(image.Rect(0, 0, w, h))); err != nil {
		t.Fatalf("failed to encode preview: %v", err)
	}
	return PagePreview{PageUID: uid, PNG: buf.Bytes()}
}

func decodeSize(t *testing.T, data []byte) (int, int) {
	t.Helper()
	img, err := png.Decode(bytes.NewReader(data))
	if err != nil {
		t.Fatalf("failed to decode thumbnail: %v", err)
	}
	b := img.Bounds()
	return b.Dx(), b.Dy()
}

func TestThumbnail_Downscales(t *testing.T) {
	thumb, err := Thumbnail(previewOf(t, "p1", 400, 200), 100)
	if err != nil {
		t.Fatalf("Thumbnail() error = %v", err)
	}

	w, h := decodeSize(t, thumb.PNG)
	if w != 100 || h != 50 {
		t.Errorf("expected 100x50, got %dx%d", w, h)
	}
	if thumb.PageUID != "p1" {
		t.Error("thumbnail lost its page uid")
	}
}

func TestThumbnail_PortraitUsesLongestEdge(t *testing.T) {
	thumb, err := Thumbnail(previewOf(t, "p1", 200, 400), 100)
	if err != nil {
		t.Fatalf("Thumbnail() error = %v", err)
	}

	w, h := decodeSize(t, thumb.PNG)
	if w != 50 || h != 100 {
		t.Errorf("expected 50x100, got %dx%d", w, h)
	}
}

func TestThumbnail_SmallPreviewPassesThrough(t *testing.T) {
	src := previewOf(t, "p1", 80, 60)
	thumb, err := Thumbnail(src, 100)
	if err != nil {
		t.Fatalf("Thumbnail() error = %v", err)
	}
	if !bytes.Equal(thumb.PNG, src.PNG) {
		t.Error("previews within the limit should pass through unchanged")
	}
}

func TestThumbnail_InvalidInputs(t *testing.T) {
	if _, err := Thumbnail(previewOf(t, "p1", 10, 10), 0); err == nil {
		t.Error("expected error for non-positive size")
	}
	if _, err := Thumbnail(PagePreview{PageUID: "p1", PNG: []byte("junk")}, 100); err == nil {
		t.Error("expected error for undecodable preview")
	}
}

func TestThumbnails_KeepsOrder(t *testing.T) {
	in := []PagePreview{
		previewOf(t, "a", 400, 200),
		previewOf(t, "b", 50, 50),
		previewOf(t, "c", 200, 400),
	}

	out, err := Thumbnails(in, 100)
	if err != nil {
		t.Fatalf("Thumbnails() error = %v", err)
	}
	if len(out) != 3 {
		t.Fatalf("expected 3 thumbnails, got %d", len(out))
	}
	for i, uid := range []string{"a", "b", "c"} {
		if out[i].PageUID != uid {
			t.Errorf("position %d: got uid %s, want %s", i, out[i].PageUID, uid)
		}
	}
}
