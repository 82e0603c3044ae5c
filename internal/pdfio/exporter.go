package pdfio

import (
	"bytes"
	"fmt"
	"image"
	"image/draw"
	_ "image/jpeg"
	"image/png"
	"os"
	"path/filepath"
	"strings"

	"github.com/signintech/gopdf"

	"github.com/yamaryu999/pdf-editor/internal/document"
	"github.com/yamaryu999/pdf-editor/internal/logger"
)

// overlayFont is the gopdf family name under which the export font is
// registered.
const overlayFont = "overlay"

// defaultFontCandidates are probed when no font file is configured.
var defaultFontCandidates = []string{
	"/usr/share/fonts/truetype/dejavu/DejaVuSans.ttf",
	"/usr/share/fonts/TTF/DejaVuSans.ttf",
	"/Library/Fonts/Arial.ttf",
	"/System/Library/Fonts/Supplemental/Arial.ttf",
	"C:\\Windows\\Fonts\\arial.ttf",
}

// Exporter writes document models back to PDF files.
type Exporter struct {
	logger *logger.Logger

	// fontFile is the TTF used for text elements; empty means probe
	// defaultFontCandidates when a text element is encountered.
	fontFile string
}

// NewExporter creates an exporter; a nil logger uses the global one.
func NewExporter(log *logger.Logger, fontFile string) *Exporter {
	if log == nil {
		log = logger.Get()
	}
	return &Exporter{logger: log, fontFile: fontFile}
}

// Export composes doc into a new PDF at targetPath. Original source pages
// are stamped first for pages that have a SourceIndex, then visible overlay
// elements are drawn in ascending z-order. The document is never mutated.
// Output is written to a temp file and renamed into place, so a failed
// export never leaves a plausible-looking partial file behind.
func (ex *Exporter) Export(doc *document.Document, targetPath string) (err error) {
	if doc == nil || doc.PageCount() == 0 {
		return fmt.Errorf("cannot export an empty document")
	}

	log := ex.logger.WithDocument(doc.SourcePath).WithOperation("export")
	log.WithFields("target", targetPath).Debug("Exporting document")

	if needsSource(doc) {
		if err := validatePDF(doc.SourcePath); err != nil {
			return fmt.Errorf("source PDF unusable: %w", err)
		}
	}

	// The gofpdi importer underneath ImportPage panics instead of
	// returning errors on unparsable source files.
	defer func() {
		if r := recover(); r != nil {
			err = fmt.Errorf("failed to embed source pages: %v", r)
		}
	}()

	pdf := gopdf.GoPdf{}
	pdf.Start(gopdf.Config{PageSize: gopdf.Rect{W: doc.Pages[0].Width, H: doc.Pages[0].Height}})

	fontReady := false
	for _, page := range doc.Pages {
		pdf.AddPageWithOption(gopdf.PageOption{PageSize: &gopdf.Rect{W: page.Width, H: page.Height}})

		if page.SourceIndex != nil {
			tpl := pdf.ImportPage(doc.SourcePath, *page.SourceIndex+1, "/MediaBox")
			pdf.UseImportedTemplate(tpl, 0, 0, page.Width, page.Height)
		}

		// Ascending element order: index 0 is the bottom of the stack.
		for _, el := range page.Elements {
			if !el.Base().Visible {
				continue
			}
			switch e := el.(type) {
			case *document.ImageElement:
				if err := ex.drawImage(&pdf, e); err != nil {
					return fmt.Errorf("failed to draw image %s: %w", e.ID, err)
				}
			case *document.TextElement:
				if !fontReady {
					if err := ex.loadFont(&pdf); err != nil {
						return err
					}
					fontReady = true
				}
				if err := ex.drawText(&pdf, e); err != nil {
					return fmt.Errorf("failed to draw text %s: %w", e.ID, err)
				}
			default:
				// Shared-fields-only elements have nothing to draw.
			}
		}
	}

	if err := writeAtomically(&pdf, targetPath); err != nil {
		return err
	}

	log.WithFields("target", targetPath, "pages", doc.PageCount()).Info("Exported document")
	return nil
}

// needsSource reports whether any page re-embeds original PDF content.
func needsSource(doc *document.Document) bool {
	for _, page := range doc.Pages {
		if page.SourceIndex != nil {
			return true
		}
	}
	return false
}

// drawImage embeds an image element at its rect with non-uniform scaling.
// Opacity below ~1 is premultiplied into the alpha channel first, since the
// embedding call has no per-draw opacity parameter.
func (ex *Exporter) drawImage(pdf *gopdf.GoPdf, el *document.ImageElement) error {
	if len(el.ImageBytes) == 0 {
		return nil
	}

	data := el.ImageBytes
	if el.Opacity < 0.999 {
		faded, err := applyOpacity(data, el.Opacity)
		if err != nil {
			return fmt.Errorf("failed to apply opacity: %w", err)
		}
		data = faded
	}

	holder, err := gopdf.ImageHolderByBytes(data)
	if err != nil {
		return fmt.Errorf("failed to read image data: %w", err)
	}
	rect := el.Rect
	return pdf.ImageByHolder(holder, rect.X, rect.Y, &gopdf.Rect{W: rect.Width, H: rect.Height})
}

// drawText draws a text element as a left/top aligned, word-wrapped box.
func (ex *Exporter) drawText(pdf *gopdf.GoPdf, el *document.TextElement) error {
	size := el.FontSize
	if size <= 0 {
		size = 12
	}
	if err := pdf.SetFont(overlayFont, "", size); err != nil {
		return fmt.Errorf("failed to select font: %w", err)
	}

	r, g, b := ParseHexColor(el.Color)
	pdf.SetTextColor(r, g, b)

	rect := el.Rect
	lineHeight := size * 1.2
	y := rect.Y

	for _, paragraph := range strings.Split(el.Text, "\n") {
		lines, err := pdf.SplitTextWithWordWrap(paragraph, rect.Width)
		if err != nil {
			// A word wider than the box wraps nothing; draw as-is.
			lines = []string{paragraph}
		}
		for _, line := range lines {
			if y+lineHeight > rect.Bottom() {
				return nil // clipped at the box bottom
			}
			pdf.SetXY(rect.X, y)
			if err := pdf.Cell(nil, line); err != nil {
				return fmt.Errorf("failed to draw text line: %w", err)
			}
			y += lineHeight
		}
	}
	return nil
}

// loadFont registers the export TTF with the PDF writer.
func (ex *Exporter) loadFont(pdf *gopdf.GoPdf) error {
	candidates := defaultFontCandidates
	if ex.fontFile != "" {
		candidates = []string{ex.fontFile}
	}
	for _, path := range candidates {
		if _, err := os.Stat(path); err != nil {
			continue
		}
		if err := pdf.AddTTFFont(overlayFont, path); err != nil {
			return fmt.Errorf("failed to load font %s: %w", path, err)
		}
		ex.logger.WithFields("font", path).Debug("Loaded export font")
		return nil
	}
	return fmt.Errorf("no usable TTF font found for text export; set font-file in preferences")
}

// applyOpacity decodes an encoded image, scales its alpha channel by
// opacity and re-encodes it as PNG.
func applyOpacity(data []byte, opacity float64) ([]byte, error) {
	if opacity < 0 {
		opacity = 0
	}
	src, _, err := image.Decode(bytes.NewReader(data))
	if err != nil {
		return nil, fmt.Errorf("failed to decode image: %w", err)
	}

	bounds := src.Bounds()
	dst := image.NewNRGBA(bounds)
	draw.Draw(dst, bounds, src, bounds.Min, draw.Src)

	for i := 3; i < len(dst.Pix); i += 4 {
		dst.Pix[i] = uint8(float64(dst.Pix[i]) * opacity)
	}

	var buf bytes.Buffer
	if err := png.Encode(&buf, dst); err != nil {
		return nil, fmt.Errorf("failed to encode image: %w", err)
	}
	return buf.Bytes(), nil
}

// ParseHexColor decodes a 6-hex-digit RGB string, leading '#' optional.
// Malformed input falls back to black.
func ParseHexColor(color string) (r, g, b uint8) {
	color = strings.TrimPrefix(color, "#")
	if len(color) != 6 {
		return 0, 0, 0
	}
	var rv, gv, bv int
	if _, err := fmt.Sscanf(color, "%02x%02x%02x", &rv, &gv, &bv); err != nil {
		return 0, 0, 0
	}
	return uint8(rv), uint8(gv), uint8(bv)
}

// writeAtomically writes the composed PDF next to targetPath and renames it
// into place, removing the temp file on any failure.
func writeAtomically(pdf *gopdf.GoPdf, targetPath string) error {
	dir := filepath.Dir(targetPath)
	if err := os.MkdirAll(dir, 0755); err != nil {
		return fmt.Errorf("failed to create output directory: %w", err)
	}

	tmp, err := os.CreateTemp(dir, ".export-*.pdf")
	if err != nil {
		return fmt.Errorf("failed to create temp output file: %w", err)
	}
	tmpPath := tmp.Name()

	if err := pdf.Write(tmp); err != nil {
		tmp.Close()
		os.Remove(tmpPath)
		return fmt.Errorf("failed to write PDF: %w", err)
	}
	if err := tmp.Close(); err != nil {
		os.Remove(tmpPath)
		return fmt.Errorf("failed to finish PDF write: %w", err)
	}
	if err := os.Rename(tmpPath, targetPath); err != nil {
		os.Remove(tmpPath)
		return fmt.Errorf("failed to move PDF into place: %w", err)
	}
	return nil
}
