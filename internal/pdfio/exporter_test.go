package pdfio

import (
	"bytes"
	"image"
	"image/color"
	"image/png"
	"os"
	"path/filepath"
	"testing"

	"github.com/yamaryu999/pdf-editor/internal/document"
)

func TestParseHexColor(t *testing.T) {
	tests := []struct {
		in      string
		r, g, b uint8
	}{
		{"#ff0000", 255, 0, 0},
		{"00ff00", 0, 255, 0},
		{"#0000FF", 0, 0, 255},
		{"#336699", 0x33, 0x66, 0x99},
		{"#000000", 0, 0, 0},
		// Malformed input falls back to black.
		{"", 0, 0, 0},
		{"#fff", 0, 0, 0},
		{"#gggggg", 0, 0, 0},
		{"not-a-color", 0, 0, 0},
	}
	for _, tt := range tests {
		r, g, b := ParseHexColor(tt.in)
		if r != tt.r || g != tt.g || b != tt.b {
			t.Errorf("ParseHexColor(%q) = (%d, %d, %d), want (%d, %d, %d)",
				tt.in, r, g, b, tt.r, tt.g, tt.b)
		}
	}
}

func encodePNG(t *testing.T, img image.Image) []byte {
	t.Helper()
	var buf bytes.Buffer
	if err := png.Encode(&buf, img); err != nil {
		t.Fatalf("failed to encode test image: %v", err)
	}
	return buf.Bytes()
}

func TestApplyOpacity_ScalesAlpha(t *testing.T) {
	src := image.NewNRGBA(image.Rect(0, 0, 2, 2))
	for y := 0; y < 2; y++ {
		for x := 0; x < 2; x++ {
			src.SetNRGBA(x, y, color.NRGBA{R: 200, G: 100, B: 50, A: 255})
		}
	}

	out, err := applyOpacity(encodePNG(t, src), 0.5)
	if err != nil {
		t.Fatalf("applyOpacity() error = %v", err)
	}

	decoded, err := png.Decode(bytes.NewReader(out))
	if err != nil {
		t.Fatalf("output is not a valid PNG: %v", err)
	}
	faded, ok := decoded.(*image.NRGBA)
	if !ok {
		t.Fatalf("expected NRGBA output, got %T", decoded)
	}
	a := faded.NRGBAAt(0, 0).A
	if a != 127 {
		t.Errorf("expected alpha 127 at opacity 0.5, got %d", a)
	}
}

func TestApplyOpacity_ClampsNegative(t *testing.T) {
	src := image.NewNRGBA(image.Rect(0, 0, 1, 1))
	src.SetNRGBA(0, 0, color.NRGBA{R: 1, G: 2, B: 3, A: 255})

	out, err := applyOpacity(encodePNG(t, src), -0.5)
	if err != nil {
		t.Fatalf("applyOpacity() error = %v", err)
	}
	decoded, _ := png.Decode(bytes.NewReader(out))
	if a := decoded.(*image.NRGBA).NRGBAAt(0, 0).A; a != 0 {
		t.Errorf("negative opacity should clamp to fully transparent, got alpha %d", a)
	}
}

func TestApplyOpacity_RejectsGarbage(t *testing.T) {
	if _, err := applyOpacity([]byte("not an image"), 0.5); err == nil {
		t.Error("expected error for undecodable input")
	}
}

func TestExport_EmptyDocumentFails(t *testing.T) {
	ex := NewExporter(nil, "")

	if err := ex.Export(nil, "out.pdf"); err == nil {
		t.Error("expected error for nil document")
	}
	if err := ex.Export(document.New(""), "out.pdf"); err == nil {
		t.Error("expected error for document with no pages")
	}
}

func TestExport_BlankPages(t *testing.T) {
	ex := NewExporter(nil, "")

	doc := document.New("")
	doc.AppendPage(document.NewPage(200, 300))
	doc.AppendPage(document.NewPage(400, 400))

	target := filepath.Join(t.TempDir(), "nested", "out.pdf")
	if err := ex.Export(doc, target); err != nil {
		t.Fatalf("Export() error = %v", err)
	}

	data, err := os.ReadFile(target)
	if err != nil {
		t.Fatalf("output file missing: %v", err)
	}
	if !bytes.HasPrefix(data, []byte("%PDF")) {
		t.Error("output does not start with a PDF header")
	}
}

func TestExport_InvisibleImageSkipped(t *testing.T) {
	ex := NewExporter(nil, "")

	doc := document.New("")
	page := document.NewPage(200, 200)
	doc.AppendPage(page)

	// Garbage bytes would make drawImage fail, so a successful export
	// proves the hidden element was never drawn.
	hidden := document.NewImageElement(10, 10, 50, 50, "", []byte("junk"))
	hidden.Visible = false
	page.AddElement(hidden)

	target := filepath.Join(t.TempDir(), "out.pdf")
	if err := ex.Export(doc, target); err != nil {
		t.Fatalf("Export() error = %v", err)
	}
}

func TestExport_MissingSourceFails(t *testing.T) {
	ex := NewExporter(nil, "")

	doc := document.New(filepath.Join(t.TempDir(), "gone.pdf"))
	doc.AppendPage(document.NewSourcePage(595, 842, 0, 0))

	if err := ex.Export(doc, filepath.Join(t.TempDir(), "out.pdf")); err == nil {
		t.Error("expected error when the source file is gone")
	}
}

func TestNeedsSource(t *testing.T) {
	doc := document.New("/tmp/a.pdf")
	doc.AppendPage(document.NewPage(100, 100))
	if needsSource(doc) {
		t.Error("blank-only document should not need the source")
	}

	doc.AppendPage(document.NewSourcePage(100, 100, 0, 0))
	if !needsSource(doc) {
		t.Error("document with a source page needs the source")
	}
}
