package document

import (
	"testing"

	"github.com/google/go-cmp/cmp"
)

func TestNewImageElement_Defaults(t *testing.T) {
	el := NewImageElement(10, 20, 100, 50, "/tmp/cat.png", []byte{1, 2, 3})

	if el.ID == "" {
		t.Error("element should get an id at creation")
	}
	if el.Opacity != 1.0 {
		t.Errorf("expected opacity 1.0, got %g", el.Opacity)
	}
	if !el.Visible {
		t.Error("new elements should be visible")
	}
	if el.Locked {
		t.Error("new elements should not be locked")
	}
	if el.Rect.Right() != 110 || el.Rect.Bottom() != 70 {
		t.Errorf("unexpected derived edges: right=%g bottom=%g", el.Rect.Right(), el.Rect.Bottom())
	}
}

func TestNewElement_UniqueIDs(t *testing.T) {
	seen := make(map[string]bool)
	for i := 0; i < 100; i++ {
		el := NewTextElement(0, 0, 10, 10, "x")
		if seen[el.ID] {
			t.Fatalf("duplicate element id %s", el.ID)
		}
		seen[el.ID] = true
	}
}

func TestBaseElement_MoveTo(t *testing.T) {
	el := NewTextElement(1, 2, 10, 10, "x")
	el.MoveTo(30, 40)

	if el.Rect.X != 30 || el.Rect.Y != 40 {
		t.Errorf("expected position (30, 40), got (%g, %g)", el.Rect.X, el.Rect.Y)
	}
	if el.Rect.Width != 10 || el.Rect.Height != 10 {
		t.Error("move must not change size")
	}
}

func TestBaseElement_ResizeClampsToMinimum(t *testing.T) {
	tests := []struct {
		name           string
		width, height  float64
		wantW, wantH   float64
	}{
		{"normal", 200, 100, 200, 100},
		{"zero", 0, 0, 1, 1},
		{"negative", -5, -10, 1, 1},
		{"one axis tiny", 50, 0.25, 50, 1},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			el := NewImageElement(0, 0, 10, 10, "", nil)
			el.Resize(tt.width, tt.height)
			if el.Rect.Width != tt.wantW || el.Rect.Height != tt.wantH {
				t.Errorf("Resize(%g, %g) = %gx%g, want %gx%g",
					tt.width, tt.height, el.Rect.Width, el.Rect.Height, tt.wantW, tt.wantH)
			}
		})
	}
}

func TestCloneElement_ImageIsolation(t *testing.T) {
	orig := NewImageElement(5, 5, 50, 50, "/tmp/a.png", []byte{1, 2, 3})
	orig.Opacity = 0.5

	clone := CloneElement(orig).(*ImageElement)

	if diff := cmp.Diff(orig.BaseElement, clone.BaseElement); diff != "" {
		t.Errorf("clone shared fields mismatch (-orig +clone):\n%s", diff)
	}
	if clone.SourcePath != orig.SourcePath {
		t.Errorf("expected source path %q, got %q", orig.SourcePath, clone.SourcePath)
	}

	// Mutating the clone must not touch the original, including bytes.
	clone.ImageBytes[0] = 99
	clone.MoveTo(100, 100)
	clone.Opacity = 0.1

	if orig.ImageBytes[0] != 1 {
		t.Error("clone shares image bytes with original")
	}
	if orig.Rect.X != 5 || orig.Opacity != 0.5 {
		t.Error("mutating clone changed the original")
	}

	// And vice versa.
	orig.ImageBytes[1] = 77
	if clone.ImageBytes[1] != 2 {
		t.Error("original shares image bytes with clone")
	}
}

func TestCloneElement_Text(t *testing.T) {
	orig := NewTextElement(0, 0, 100, 40, "hello\nworld")
	orig.FontFamily = "Courier"
	orig.FontSize = 18
	orig.Color = "ff0000"

	clone := CloneElement(orig).(*TextElement)

	if diff := cmp.Diff(orig, clone); diff != "" {
		t.Errorf("text clone mismatch (-orig +clone):\n%s", diff)
	}

	clone.Text = "changed"
	if orig.Text != "hello\nworld" {
		t.Error("mutating clone changed the original text")
	}
}

func TestCloneElement_UnknownKindKeepsSharedFields(t *testing.T) {
	base := &BaseElement{ID: "raw", Opacity: 0.7, Visible: true}
	clone := CloneElement(base)

	got := clone.Base()
	if got.ID != "raw" || got.Opacity != 0.7 || !got.Visible {
		t.Errorf("base clone lost shared fields: %+v", got)
	}
	if got == base {
		t.Error("clone must be a detached copy")
	}
}
