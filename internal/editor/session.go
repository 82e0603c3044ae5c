// Package editor orchestrates one open document: it owns the model, the
// undo history, the snap engine and the change bus, and exposes the
// operations a GUI (or the CLI) drives. All model access is serialized with
// a mutex because autosave reads the document from its own goroutine.
package editor

import (
	"bytes"
	"fmt"
	"image"
	_ "image/jpeg"
	_ "image/png"
	"os"
	"path/filepath"
	"strings"
	"sync"

	"github.com/yamaryu999/pdf-editor/internal/config"
	"github.com/yamaryu999/pdf-editor/internal/document"
	"github.com/yamaryu999/pdf-editor/internal/history"
	"github.com/yamaryu999/pdf-editor/internal/logger"
	"github.com/yamaryu999/pdf-editor/internal/pdfio"
	"github.com/yamaryu999/pdf-editor/internal/snap"
)

// TextOptions carries the optional styling for a new text element. Zero
// values fall back to the element defaults.
type TextOptions struct {
	FontFamily string
	FontSize   float64
	Color      string
}

// Session is the editing state for one open document.
type Session struct {
	mu sync.RWMutex

	cfg      *config.Config
	logger   *logger.Logger
	importer *pdfio.Importer
	exporter *pdfio.Exporter
	snapper  *snap.Engine
	history  *history.Engine
	bus      *document.Bus

	doc      *document.Document
	previews map[string][]byte
	dirty    bool
}

// NewSession creates a session with no document open.
func NewSession(cfg *config.Config, log *logger.Logger) *Session {
	if log == nil {
		log = logger.Get()
	}
	return &Session{
		cfg:      cfg,
		logger:   log,
		importer: pdfio.NewImporter(log),
		exporter: pdfio.NewExporter(log, cfg.FontFile),
		snapper:  snap.NewEngine(),
		history:  history.NewEngine(),
		bus:      document.NewBus(),
		previews: make(map[string][]byte),
	}
}

// Subscribe registers a change listener; the returned function removes it.
func (s *Session) Subscribe(l *document.Listener) func() {
	return s.bus.Subscribe(l)
}

// Open imports the PDF at path and replaces the session's document
// wholesale: previews, history and the dirty flag all reset. On failure
// the previous state is untouched.
func (s *Session) Open(path string) error {
	doc, previews, err := s.importer.Load(path)
	if err != nil {
		return err
	}

	s.mu.Lock()
	defer s.mu.Unlock()
	s.doc = doc
	s.previews = make(map[string][]byte, len(previews))
	for _, p := range previews {
		s.previews[p.PageUID] = p.PNG
	}
	s.history.Reset()
	s.dirty = false
	s.logger.WithDocument(path).Info("Opened document")
	return nil
}

// Document returns the open document, or nil. Callers on other goroutines
// must not mutate it; all edits go through session operations.
func (s *Session) Document() *document.Document {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.doc
}

// Preview returns the raster preview PNG for a page, or nil.
func (s *Session) Preview(pageUID string) []byte {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.previews[pageUID]
}

// Dirty reports whether there are changes since the last export.
func (s *Session) Dirty() bool {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.dirty
}

// InsertImage reads an image file and places it centered on the page,
// scaled down to at most 60% of the page width. The insert is journaled
// for undo.
func (s *Session) InsertImage(pageUID, imagePath string) (document.Element, error) {
	data, err := os.ReadFile(imagePath)
	if err != nil {
		return nil, fmt.Errorf("failed to read image file: %w", err)
	}
	imgCfg, _, err := image.DecodeConfig(bytes.NewReader(data))
	if err != nil {
		return nil, fmt.Errorf("unreadable image %s: %w", imagePath, err)
	}

	s.mu.Lock()
	defer s.mu.Unlock()
	page, err := s.page(pageUID)
	if err != nil {
		return nil, err
	}

	targetWidth := min(float64(imgCfg.Width), page.Width*0.6)
	scale := targetWidth / max(1, float64(imgCfg.Width))
	targetHeight := max(1, float64(imgCfg.Height)*scale)
	x := max(0, (page.Width-targetWidth)/2)
	y := max(0, (page.Height-targetHeight)/2)

	el := document.NewImageElement(x, y, targetWidth, targetHeight, imagePath, data)
	page.AddElement(el)
	s.history.Record(history.Insert, page.UID, el)
	s.dirty = true
	s.bus.ElementAdded(page.UID, el)
	s.logger.WithPage(page.UID).WithElement(el.ID).Debug("Inserted image element")
	return el, nil
}

// InsertText places a new text box centered on the page. Empty or
// whitespace-only text is rejected with no state change. The insert is
// journaled for undo.
func (s *Session) InsertText(pageUID, text string, opts TextOptions) (document.Element, error) {
	if strings.TrimSpace(text) == "" {
		return nil, fmt.Errorf("text cannot be empty")
	}

	s.mu.Lock()
	defer s.mu.Unlock()
	page, err := s.page(pageUID)
	if err != nil {
		return nil, err
	}

	width := page.Width * 0.4
	fontSize := opts.FontSize
	if fontSize <= 0 {
		fontSize = 14
	}
	height := max(40, fontSize*2)
	x := max(0, (page.Width-width)/2)
	y := max(0, (page.Height-height)/2)

	el := document.NewTextElement(x, y, width, height, text)
	if opts.FontFamily != "" {
		el.FontFamily = opts.FontFamily
	}
	el.FontSize = fontSize
	if opts.Color != "" {
		el.Color = opts.Color
	}

	page.AddElement(el)
	s.history.Record(history.Insert, page.UID, el)
	s.dirty = true
	s.bus.ElementAdded(page.UID, el)
	s.logger.WithPage(page.UID).WithElement(el.ID).Debug("Inserted text element")
	return el, nil
}

// DeleteElement removes an element and journals the delete. A missing page
// or element is a silent no-op.
func (s *Session) DeleteElement(pageUID, elementID string) bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	page, err := s.page(pageUID)
	if err != nil {
		return false
	}
	el := page.RemoveElement(elementID)
	if el == nil {
		return false
	}
	s.history.Record(history.Delete, page.UID, el)
	s.dirty = true
	s.bus.ElementRemoved(page.UID, elementID)
	return true
}

// MoveElement handles one drag delta: the candidate position is snapped
// against page bounds and sibling edges, the element is moved, and the
// active guides are returned for rendering. Locked elements do not move.
func (s *Session) MoveElement(pageUID, elementID string, x, y float64) []snap.Guide {
	s.mu.Lock()
	defer s.mu.Unlock()
	page, err := s.page(pageUID)
	if err != nil {
		return nil
	}
	el := page.FindElement(elementID)
	if el == nil || el.Base().Locked {
		return nil
	}

	base := el.Base()
	sx, sy, guides := s.snapper.Snap(page, elementID, x, y, base.Rect.Width, base.Rect.Height)
	base.MoveTo(sx, sy)
	s.dirty = true
	s.bus.ElementChanged(page.UID, el)
	return guides
}

// ResizeElement sets an element's size (clamped to the model minimum).
// Locked elements do not resize. Resizes are not journaled.
func (s *Session) ResizeElement(pageUID, elementID string, width, height float64) bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	page, err := s.page(pageUID)
	if err != nil {
		return false
	}
	el := page.FindElement(elementID)
	if el == nil || el.Base().Locked {
		return false
	}
	el.Base().Resize(width, height)
	s.dirty = true
	s.bus.ElementChanged(page.UID, el)
	return true
}

// UpdateElement applies fn to an element under the session lock and
// publishes a change. Property edits (opacity, lock, visibility, text
// styling) go through here and are not journaled.
func (s *Session) UpdateElement(pageUID, elementID string, fn func(document.Element)) bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	page, err := s.page(pageUID)
	if err != nil {
		return false
	}
	el := page.FindElement(elementID)
	if el == nil {
		return false
	}
	fn(el)
	s.dirty = true
	s.bus.ElementChanged(page.UID, el)
	return true
}

// Undo reverses the newest journaled edit. Returns false when there is
// nothing to undo.
func (s *Session) Undo() bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.doc == nil {
		return false
	}
	cmd, ok := s.history.Undo(s.doc)
	if !ok {
		return false
	}
	s.dirty = true
	s.publishHistory(cmd, true)
	return true
}

// Redo re-applies the newest undone edit. Returns false when there is
// nothing to redo.
func (s *Session) Redo() bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.doc == nil {
		return false
	}
	cmd, ok := s.history.Redo(s.doc)
	if !ok {
		return false
	}
	s.dirty = true
	s.publishHistory(cmd, false)
	return true
}

// publishHistory emits the bus event matching the effective direction of a
// replayed command.
func (s *Session) publishHistory(cmd history.Command, inverted bool) {
	inserted := cmd.Action == history.Insert
	if inverted {
		inserted = !inserted
	}
	id := cmd.Element.Base().ID
	if inserted {
		if page := s.doc.FindPage(cmd.PageUID); page != nil {
			if el := page.FindElement(id); el != nil {
				s.bus.ElementAdded(cmd.PageUID, el)
				return
			}
		}
		return
	}
	s.bus.ElementRemoved(cmd.PageUID, id)
}

// AddBlankPage inserts a synthetic page with no backing source content at
// the given position, sized from preferences.
func (s *Session) AddBlankPage(index int) (*document.Page, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.doc == nil {
		return nil, fmt.Errorf("no document open")
	}
	page := document.NewPage(s.cfg.DefaultPageWidth, s.cfg.DefaultPageHeight)
	s.doc.InsertPage(index, page)
	s.dirty = true
	s.bus.PageChanged(page.UID)
	s.bus.PagesReordered()
	return page, nil
}

// RemovePage deletes a page. Not journaled: page structural changes are
// outside undo coverage.
func (s *Session) RemovePage(pageUID string) bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.doc == nil || s.doc.RemovePage(pageUID) == nil {
		return false
	}
	delete(s.previews, pageUID)
	s.dirty = true
	s.bus.PageChanged(pageUID)
	s.bus.PagesReordered()
	return true
}

// MovePage reorders a page to newIndex.
func (s *Session) MovePage(pageUID string, newIndex int) bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.doc == nil || !s.doc.MovePage(pageUID, newIndex) {
		return false
	}
	s.dirty = true
	s.bus.PagesReordered()
	return true
}

// SetPageMeta updates a page's label and note.
func (s *Session) SetPageMeta(pageUID, label, note string) bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	page, err := s.page(pageUID)
	if err != nil {
		return false
	}
	page.Label = label
	page.Note = note
	s.dirty = true
	s.bus.PageChanged(pageUID)
	return true
}

// Export writes the document to targetPath and clears the dirty flag on
// success.
func (s *Session) Export(targetPath string) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.doc == nil {
		return fmt.Errorf("no document open")
	}
	if err := s.exporter.Export(s.doc, targetPath); err != nil {
		return err
	}
	s.dirty = false
	return nil
}

// AutosavePath derives the autosave target from the source file name:
// <cache-dir>/<source-stem>_autosave.pdf.
func (s *Session) AutosavePath() string {
	s.mu.RLock()
	defer s.mu.RUnlock()
	if s.doc == nil {
		return ""
	}
	stem := strings.TrimSuffix(filepath.Base(s.doc.SourcePath), filepath.Ext(s.doc.SourcePath))
	return filepath.Join(s.cfg.CacheDir, stem+"_autosave.pdf")
}

// page resolves a page uid; callers hold the session lock.
func (s *Session) page(pageUID string) (*document.Page, error) {
	if s.doc == nil {
		return nil, fmt.Errorf("no document open")
	}
	page := s.doc.FindPage(pageUID)
	if page == nil {
		return nil, fmt.Errorf("unknown page %s", pageUID)
	}
	return page, nil
}
