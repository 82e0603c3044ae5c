package document

import (
	"github.com/google/uuid"

	"github.com/yamaryu999/pdf-editor/internal/geom"
)

// MinElementSize is the smallest width or height an element can be resized
// to, in page-space points.
const MinElementSize = 1.0

// Element is the closed set of objects that can be placed on a page.
// Concrete kinds are *ImageElement and *TextElement; *BaseElement exists so
// that shared-field-only clones of an unknown kind remain representable.
//
// Every site that inspects the concrete kind (cloning, export) must switch
// over all three types; adding a new kind means extending those switches.
type Element interface {
	// Base returns the shared state common to all element kinds.
	Base() *BaseElement

	// kind seals the interface to this package's variants.
	kind() string
}

// BaseElement holds the state shared by every element kind.
type BaseElement struct {
	// ID is assigned at creation and never reused; all lookups go
	// through it, never through slice positions.
	ID       string    `json:"id"`
	Rect     geom.Rect `json:"rect"`
	Rotation float64   `json:"rotation"`
	Opacity  float64   `json:"opacity"`
	Locked   bool      `json:"locked"`
	Visible  bool      `json:"visible"`
}

func (e *BaseElement) Base() *BaseElement { return e }
func (e *BaseElement) kind() string      { return "base" }

// MoveTo sets the element's position.
func (e *BaseElement) MoveTo(x, y float64) {
	e.Rect.X = x
	e.Rect.Y = y
}

// Resize sets the element's size, clamping each dimension to MinElementSize.
func (e *BaseElement) Resize(width, height float64) {
	e.Rect.Width = max(MinElementSize, width)
	e.Rect.Height = max(MinElementSize, height)
}

// ImageElement is an encoded raster image drawn on a page.
type ImageElement struct {
	BaseElement

	// SourcePath is advisory, kept for export naming and diagnostics.
	SourcePath string `json:"source_path"`

	// ImageBytes is the encoded payload (PNG or JPEG). Treated as
	// immutable after creation; clones copy the bytes.
	ImageBytes []byte `json:"-"`
}

func (e *ImageElement) kind() string { return "image" }

// TextElement is a wrapped text box drawn on a page.
type TextElement struct {
	BaseElement

	Text       string  `json:"text"`
	FontFamily string  `json:"font_family"`
	FontSize   float64 `json:"font_size"`

	// Color is a 6-hex-digit RGB string, leading '#' optional.
	Color string `json:"color"`
}

func (e *TextElement) kind() string { return "text" }

func newBase(x, y, width, height float64) BaseElement {
	return BaseElement{
		ID:      uuid.NewString(),
		Rect:    geom.NewRect(x, y, width, height),
		Opacity: 1.0,
		Visible: true,
	}
}

// NewImageElement creates an image element with a fresh ID.
func NewImageElement(x, y, width, height float64, sourcePath string, imageBytes []byte) *ImageElement {
	return &ImageElement{
		BaseElement: newBase(x, y, width, height),
		SourcePath:  sourcePath,
		ImageBytes:  imageBytes,
	}
}

// NewTextElement creates a text element with a fresh ID.
func NewTextElement(x, y, width, height float64, text string) *TextElement {
	return &TextElement{
		BaseElement: newBase(x, y, width, height),
		Text:        text,
		FontFamily:  "Helvetica",
		FontSize:    14,
		Color:       "#000000",
	}
}

// CloneElement returns a fully detached deep copy of el sharing no mutable
// state with the original. This is the single place where the variant set
// is handled exhaustively; an unknown kind degrades to a shared-fields-only
// copy.
func CloneElement(el Element) Element {
	switch e := el.(type) {
	case *ImageElement:
		clone := *e
		clone.ImageBytes = append([]byte(nil), e.ImageBytes...)
		return &clone
	case *TextElement:
		clone := *e
		return &clone
	default:
		clone := *el.Base()
		return &clone
	}
}
