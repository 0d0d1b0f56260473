package gemini

import (
	"context"
	"errors"
	"fmt"

	"github.com/spigell/resume-analyzer/internal/extractor"
	"go.uber.org/zap"
)

const transcribeInstruction = `Transcribe all text visible in this scanned resume page verbatim.
Keep the reading order and line breaks. Do not add commentary, headings or formatting.
If the page contains no text, answer with an empty response.`

type imageGenerator interface {
	GenerateFromImage(ctx context.Context, instruction string, data []byte, mimeType string) (string, error)
}

// Recognizer performs OCR of page images with Gemini vision.
type Recognizer struct {
	generator imageGenerator
	logger    *zap.Logger
}

func NewRecognizer(generator imageGenerator, logger *zap.Logger) *Recognizer {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &Recognizer{generator: generator, logger: logger}
}

func (r *Recognizer) Recognize(ctx context.Context, img extractor.Image) (string, error) {
	if r.generator == nil {
		return "", errors.New("gemini recognizer is not initialized")
	}

	mimeType := img.MIMEType
	if mimeType == "" {
		mimeType = "image/png"
	}

	text, err := r.generator.GenerateFromImage(ctx, transcribeInstruction, img.Data, mimeType)
	if errors.Is(err, ErrEmptyResponse) {
		return "", nil
	}
	if err != nil {
		return "", fmt.Errorf("gemini ocr page %d: %w", img.Page, err)
	}

	r.logger.Debug("gemini ocr page recognized",
		zap.Int("page", img.Page),
		zap.Int("length", len(text)),
	)

	return text, nil
}
