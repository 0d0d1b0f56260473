package gemini

import (
	"context"
	"errors"
	"testing"

	"github.com/spigell/resume-analyzer/internal/extractor"
)

type stubImageGenerator struct {
	text     string
	err      error
	mimeType string
}

func (s *stubImageGenerator) GenerateFromImage(_ context.Context, _ string, _ []byte, mimeType string) (string, error) {
	s.mimeType = mimeType
	return s.text, s.err
}

func TestRecognizer(t *testing.T) {
	stub := &stubImageGenerator{text: "Jane Roe\nData Engineer"}
	r := NewRecognizer(stub, nil)

	text, err := r.Recognize(context.Background(), extractor.Image{Page: 1, Data: []byte{1}})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if text != "Jane Roe\nData Engineer" {
		t.Fatalf("unexpected text: %q", text)
	}
	if stub.mimeType != "image/png" {
		t.Fatalf("expected png default mime type, got %q", stub.mimeType)
	}
}

func TestRecognizerBlankPage(t *testing.T) {
	r := NewRecognizer(&stubImageGenerator{err: ErrEmptyResponse}, nil)

	text, err := r.Recognize(context.Background(), extractor.Image{Page: 2, Data: []byte{1}, MIMEType: "image/jpeg"})
	if err != nil {
		t.Fatalf("blank page must not fail OCR: %v", err)
	}
	if text != "" {
		t.Fatalf("expected empty text, got %q", text)
	}
}

func TestRecognizerError(t *testing.T) {
	r := NewRecognizer(&stubImageGenerator{err: errors.New("permission denied")}, nil)

	if _, err := r.Recognize(context.Background(), extractor.Image{Page: 3, Data: []byte{1}}); err == nil {
		t.Fatal("expected error")
	}

	if _, err := NewRecognizer(nil, nil).Recognize(context.Background(), extractor.Image{}); err == nil {
		t.Fatal("expected error for missing generator")
	}
}
