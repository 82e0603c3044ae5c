// Package pdfio converts between external PDF libraries and the document
// model. The importer reads a source PDF into a Document plus rasterized
// page previews; the exporter composes the model back into a new PDF.
package pdfio

import (
	"bytes"
	"fmt"
	"image/png"
	"os"

	"github.com/pdfcpu/pdfcpu/pkg/api"
	"github.com/pdfcpu/pdfcpu/pkg/pdfcpu/model"
	"github.com/unidoc/unipdf/v3/common"
	unipdf "github.com/unidoc/unipdf/v3/model"
	"github.com/unidoc/unipdf/v3/render"

	"github.com/yamaryu999/pdf-editor/internal/document"
	"github.com/yamaryu999/pdf-editor/internal/logger"
)

func init() {
	common.SetLogger(common.NewConsoleLogger(common.LogLevelError))
}

// PagePreview holds the rendered preview for one page, keyed by the page's
// uid rather than its position so reorders do not orphan it.
type PagePreview struct {
	PageUID string
	PNG     []byte
}

// Importer loads PDF files into editable document models.
type Importer struct {
	logger *logger.Logger
}

// NewImporter creates an importer; a nil logger uses the global one.
func NewImporter(log *logger.Logger) *Importer {
	if log == nil {
		log = logger.Get()
	}
	return &Importer{logger: log}
}

// Load reads the PDF at path and returns the document model together with
// one preview per page, in page order. Previews are rendered at 1:1 scale
// (72 DPI) so raster pixel coordinates equal page-space points, which keeps
// overlay alignment pixel-exact. On any failure no partial document is
// returned.
func (im *Importer) Load(path string) (*document.Document, []PagePreview, error) {
	im.logger.WithDocument(path).Debug("Loading PDF")

	if err := validatePDF(path); err != nil {
		return nil, nil, err
	}

	f, err := os.Open(path)
	if err != nil {
		return nil, nil, fmt.Errorf("failed to open PDF: %w", err)
	}
	defer f.Close()

	reader, err := unipdf.NewPdfReaderLazy(f)
	if err != nil {
		return nil, nil, fmt.Errorf("failed to create PDF reader: %w", err)
	}

	numPages, err := reader.GetNumPages()
	if err != nil {
		return nil, nil, fmt.Errorf("failed to get page count: %w", err)
	}

	doc := document.New(path)
	previews := make([]PagePreview, 0, numPages)

	for i := 1; i <= numPages; i++ {
		page, err := reader.GetPage(i)
		if err != nil {
			return nil, nil, fmt.Errorf("failed to get page %d: %w", i, err)
		}

		mediaBox, err := page.GetMediaBox()
		if err != nil {
			return nil, nil, fmt.Errorf("failed to get media box of page %d: %w", i, err)
		}
		width := mediaBox.Urx - mediaBox.Llx
		height := mediaBox.Ury - mediaBox.Lly

		rotation := 0
		if page.Rotate != nil {
			rotation = int(*page.Rotate)
		}

		pageModel := document.NewSourcePage(width, height, rotation, i-1)
		doc.AppendPage(pageModel)

		pngBytes, err := renderPagePNG(page, width)
		if err != nil {
			return nil, nil, fmt.Errorf("failed to render page %d: %w", i, err)
		}
		previews = append(previews, PagePreview{PageUID: pageModel.UID, PNG: pngBytes})

		im.logger.WithPage(pageModel.UID).WithFields("page", i, "width", width, "height", height).
			Debug("Imported page")
	}

	im.logger.WithDocument(path).WithFields("page_count", numPages).Info("Loaded PDF")
	return doc, previews, nil
}

// renderPagePNG rasterizes one page at a width of one pixel per point.
func renderPagePNG(page *unipdf.PdfPage, widthPts float64) ([]byte, error) {
	device := render.NewImageDevice()
	device.OutputWidth = int(widthPts)

	img, err := device.Render(page)
	if err != nil {
		return nil, fmt.Errorf("failed to render page: %w", err)
	}

	var buf bytes.Buffer
	if err := png.Encode(&buf, img); err != nil {
		return nil, fmt.Errorf("failed to encode preview: %w", err)
	}
	return buf.Bytes(), nil
}

// validatePDF runs a relaxed pdfcpu validation before the heavier unipdf
// parse, so malformed files fail early with a clear error.
func validatePDF(path string) error {
	if _, err := os.Stat(path); err != nil {
		return fmt.Errorf("PDF file not readable: %w", err)
	}

	conf := model.NewDefaultConfiguration()
	conf.ValidationMode = model.ValidationRelaxed
	if err := api.ValidateFile(path, conf); err != nil {
		return fmt.Errorf("PDF validation failed: %w", err)
	}
	return nil
}
