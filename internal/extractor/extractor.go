// Package extractor turns a PDF resume into plain text. It reads the embedded text
// layer first and falls back to OCR of the page images when that layer is empty.
package extractor

import (
	"context"
	"fmt"
	"strings"

	"go.uber.org/zap"
)

// Method tells which extraction path produced the text.
type Method string

const (
	MethodStructured Method = "structured"
	MethodOCR        Method = "ocr"
	MethodNone       Method = "none"
)

// Image is a single rasterized page.
type Image struct {
	Page     int
	Data     []byte
	MIMEType string
}

// TextSource returns the embedded text of every page in page order.
type TextSource interface {
	PageTexts(path string) ([]string, error)
}

// Rasterizer returns one image per page in page order.
type Rasterizer interface {
	Rasterize(ctx context.Context, path string) ([]Image, error)
}

// Recognizer runs optical character recognition on a single page image.
type Recognizer interface {
	Recognize(ctx context.Context, img Image) (string, error)
}

// Extractor combines a text source with an OCR fallback.
type Extractor struct {
	source     TextSource
	rasterizer Rasterizer
	recognizer Recognizer
	logger     *zap.Logger
}

// New creates an Extractor. A nil rasterizer or recognizer disables the OCR fallback.
func New(source TextSource, rasterizer Rasterizer, recognizer Recognizer, logger *zap.Logger) *Extractor {
	if logger == nil {
		logger = zap.NewNop()
	}
	if source == nil {
		source = NewPDFTextSource()
	}

	return &Extractor{
		source:     source,
		rasterizer: rasterizer,
		recognizer: recognizer,
		logger:     logger,
	}
}

// Extract returns the trimmed text of the PDF at path. It never fails: an empty
// string means no text could be recovered.
func (e *Extractor) Extract(ctx context.Context, path string) string {
	text, _ := e.ExtractWithMethod(ctx, path)
	return text
}

// ExtractWithMethod works like Extract and also reports which path produced the text.
func (e *Extractor) ExtractWithMethod(ctx context.Context, path string) (string, Method) {
	logger := e.logger.With(zap.String("path", path))

	text, err := e.structured(path)
	if err != nil {
		logger.Warn("direct text extraction failed", zap.Error(err))
	}

	if trimmed := strings.TrimSpace(text); trimmed != "" {
		logger.Debug("text extracted from text layer", zap.Int("length", len(trimmed)))
		return trimmed, MethodStructured
	}

	if e.rasterizer == nil || e.recognizer == nil {
		logger.Warn("no text layer found and OCR is not configured")
		return "", MethodNone
	}

	logger.Info("falling back to OCR for image-based PDF")

	// Any text gathered by the structured step is whitespace only, so OCR output
	// simply follows it and trimming removes it again.
	ocrText, err := e.ocr(ctx, path)
	if err != nil {
		logger.Warn("OCR failed", zap.Error(err))
	}

	result := strings.TrimSpace(text + ocrText)
	if result == "" {
		return "", MethodNone
	}

	logger.Debug("text extracted with OCR", zap.Int("length", len(result)))
	return result, MethodOCR
}

func (e *Extractor) structured(path string) (text string, err error) {
	defer func() {
		if r := recover(); r != nil {
			err = fmt.Errorf("reading text layer: %v", r)
		}
	}()

	pages, err := e.source.PageTexts(path)
	if err != nil {
		return "", err
	}

	var builder strings.Builder
	for _, page := range pages {
		builder.WriteString(page)
	}
	return builder.String(), nil
}

// ocr returns the text accumulated so far together with the first error that stopped it.
func (e *Extractor) ocr(ctx context.Context, path string) (text string, err error) {
	var builder strings.Builder

	defer func() {
		if r := recover(); r != nil {
			err = fmt.Errorf("ocr: %v", r)
		}
		text = builder.String()
	}()

	images, err := e.rasterizer.Rasterize(ctx, path)
	if err != nil {
		return "", fmt.Errorf("rasterize: %w", err)
	}

	for _, img := range images {
		pageText, err := e.recognizer.Recognize(ctx, img)
		if err != nil {
			return "", fmt.Errorf("recognize page %d: %w", img.Page, err)
		}
		builder.WriteString(pageText)
		builder.WriteString("\n")
	}

	return "", nil
}
