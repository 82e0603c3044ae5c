package pdfio

import (
	"fmt"
	"os"

	"github.com/pdfcpu/pdfcpu/pkg/api"
)

// PageDim is the size of a single source page in points.
type PageDim struct {
	Width  float64
	Height float64
}

// Info describes a PDF file without building a document model for it.
type Info struct {
	Path      string
	FileSize  int64
	PageCount int
	Version   string
	Encrypted bool
	Pages     []PageDim
}

// Inspect reads basic metadata and per-page dimensions from the PDF at
// path using pdfcpu only; no rasterization happens.
func Inspect(path string) (*Info, error) {
	ctx, err := api.ReadContextFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read PDF: %w", err)
	}

	info := &Info{
		Path:      path,
		PageCount: ctx.PageCount,
		Encrypted: ctx.Encrypt != nil,
	}
	if ctx.HeaderVersion != nil {
		info.Version = ctx.HeaderVersion.String()
	}
	if stat, err := os.Stat(path); err == nil {
		info.FileSize = stat.Size()
	}

	dims, err := ctx.PageDims()
	if err != nil {
		return nil, fmt.Errorf("failed to read page dimensions: %w", err)
	}
	for _, d := range dims {
		info.Pages = append(info.Pages, PageDim{Width: d.Width, Height: d.Height})
	}

	return info, nil
}
