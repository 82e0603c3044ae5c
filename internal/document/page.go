package document

import "github.com/google/uuid"

// Page is one page of an editable document. Elements is the z-order:
// index 0 is the bottom of the stack.
type Page struct {
	// UID is assigned at creation and used for all page lookups. The
	// page's slice position changes under reorder/insert/delete and must
	// never be used as an identity.
	UID string `json:"uid"`

	Width    float64 `json:"width"`
	Height   float64 `json:"height"`
	Rotation int     `json:"rotation"`

	// SourceIndex is the page's position in the originally imported PDF,
	// used by export to re-embed the original content. Nil for a blank
	// page with no backing source page.
	SourceIndex *int `json:"source_index,omitempty"`

	// Label and Note are free-text metadata with no effect on export.
	Label string `json:"label,omitempty"`
	Note  string `json:"note,omitempty"`

	Elements []Element `json:"elements"`
}

// NewPage creates a page with a fresh UID and no elements.
func NewPage(width, height float64) *Page {
	return &Page{
		UID:    uuid.NewString(),
		Width:  width,
		Height: height,
	}
}

// NewSourcePage creates a page backed by page sourceIndex of the original
// PDF.
func NewSourcePage(width, height float64, rotation, sourceIndex int) *Page {
	p := NewPage(width, height)
	p.Rotation = rotation
	idx := sourceIndex
	p.SourceIndex = &idx
	return p
}

// AddElement appends an element to the top of the z-order.
func (p *Page) AddElement(el Element) {
	p.Elements = append(p.Elements, el)
}

// InsertElement inserts an element at the given z-order position, clamping
// the index into range.
func (p *Page) InsertElement(index int, el Element) {
	if index < 0 {
		index = 0
	}
	if index > len(p.Elements) {
		index = len(p.Elements)
	}
	p.Elements = append(p.Elements, nil)
	copy(p.Elements[index+1:], p.Elements[index:])
	p.Elements[index] = el
}

// FindElement returns the element with the given id, or nil. A miss is a
// normal outcome, not an error.
func (p *Page) FindElement(id string) Element {
	for _, el := range p.Elements {
		if el.Base().ID == id {
			return el
		}
	}
	return nil
}

// RemoveElement removes and returns the element with the given id, or nil
// if no such element exists.
func (p *Page) RemoveElement(id string) Element {
	for i, el := range p.Elements {
		if el.Base().ID == id {
			p.Elements = append(p.Elements[:i], p.Elements[i+1:]...)
			return el
		}
	}
	return nil
}
