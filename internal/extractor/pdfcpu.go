package extractor

import (
	"context"
	"fmt"
	"io"
	"mime"
	"os"
	"sort"
	"strings"

	"github.com/pdfcpu/pdfcpu/pkg/api"
	"github.com/pdfcpu/pdfcpu/pkg/pdfcpu/model"
)

// PDFCPURasterizer returns the images embedded in each page. Scanned resumes are
// stored as one image per page, so this is enough for OCR without a renderer.
type PDFCPURasterizer struct{}

func NewPDFCPURasterizer() *PDFCPURasterizer {
	return &PDFCPURasterizer{}
}

func (r *PDFCPURasterizer) Rasterize(ctx context.Context, path string) ([]Image, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("open pdf: %w", err)
	}
	defer f.Close()

	cfg := model.NewDefaultConfiguration()
	cfg.ValidationMode = model.ValidationRelaxed

	pages, err := api.ExtractImagesRaw(f, nil, cfg)
	if err != nil {
		return nil, fmt.Errorf("extract page images: %w", err)
	}

	images := make([]Image, 0, len(pages))
	for _, page := range pages {
		objNrs := make([]int, 0, len(page))
		for objNr := range page {
			objNrs = append(objNrs, objNr)
		}
		sort.Ints(objNrs)

		for _, objNr := range objNrs {
			if err := ctx.Err(); err != nil {
				return nil, err
			}

			img := page[objNr]
			data, err := io.ReadAll(img)
			if err != nil {
				return nil, fmt.Errorf("read image %d on page %d: %w", objNr, img.PageNr, err)
			}

			images = append(images, Image{
				Page:     img.PageNr,
				Data:     data,
				MIMEType: imageMIMEType(img.FileType),
			})
		}
	}

	sort.SliceStable(images, func(i, j int) bool {
		return images[i].Page < images[j].Page
	})

	return images, nil
}

func imageMIMEType(fileType string) string {
	ext := "." + strings.TrimPrefix(strings.ToLower(fileType), ".")
	switch ext {
	case ".jpg", ".jpeg":
		return "image/jpeg"
	case ".tif", ".tiff":
		return "image/tiff"
	case ".png":
		return "image/png"
	}
	if t := mime.TypeByExtension(ext); t != "" {
		return t
	}
	return "application/octet-stream"
}
