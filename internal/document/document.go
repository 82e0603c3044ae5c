// Package document holds the editable in-memory model of a PDF: an ordered
// list of pages, each carrying an ordered list of overlay elements. Pages
// and elements are located exclusively by stable identity, never by slice
// position. The model performs no I/O; the pdfio adapters build and consume
// it.
package document

// Document is an editable PDF document. It is created atomically by the
// import adapter and mutated in place; every structural edit is immediately
// visible.
type Document struct {
	// SourcePath is the originating PDF, read again at export time to
	// re-embed unedited page content.
	SourcePath string  `json:"source_path"`
	Pages      []*Page `json:"pages"`
}

// New creates an empty document for the given source path.
func New(sourcePath string) *Document {
	return &Document{SourcePath: sourcePath}
}

// PageCount returns the number of pages.
func (d *Document) PageCount() int {
	return len(d.Pages)
}

// FindPage returns the page with the given uid, or nil.
func (d *Document) FindPage(uid string) *Page {
	for _, p := range d.Pages {
		if p.UID == uid {
			return p
		}
	}
	return nil
}

// IndexOfPage returns the current position of the page with the given uid,
// or -1. Positions are transient; callers must not store them across edits.
func (d *Document) IndexOfPage(uid string) int {
	for i, p := range d.Pages {
		if p.UID == uid {
			return i
		}
	}
	return -1
}

// AppendPage adds a page at the end of the document.
func (d *Document) AppendPage(p *Page) {
	d.Pages = append(d.Pages, p)
}

// InsertPage inserts a page at the given position, clamping the index into
// range.
func (d *Document) InsertPage(index int, p *Page) {
	if index < 0 {
		index = 0
	}
	if index > len(d.Pages) {
		index = len(d.Pages)
	}
	d.Pages = append(d.Pages, nil)
	copy(d.Pages[index+1:], d.Pages[index:])
	d.Pages[index] = p
}

// RemovePage removes and returns the page with the given uid, or nil if no
// such page exists.
func (d *Document) RemovePage(uid string) *Page {
	for i, p := range d.Pages {
		if p.UID == uid {
			d.Pages = append(d.Pages[:i], d.Pages[i+1:]...)
			return p
		}
	}
	return nil
}

// MovePage moves the page with the given uid to newIndex, clamped into
// range. It reports whether the page was found.
func (d *Document) MovePage(uid string, newIndex int) bool {
	p := d.RemovePage(uid)
	if p == nil {
		return false
	}
	d.InsertPage(newIndex, p)
	return true
}
