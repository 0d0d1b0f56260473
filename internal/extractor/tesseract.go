package extractor

import (
	"bytes"
	"context"
	"errors"
	"fmt"
	"os/exec"
	"strings"
)

const defaultTesseractPath = "tesseract"

// TesseractRecognizer runs the tesseract CLI, feeding the image on stdin and
// reading the recognized text from stdout.
type TesseractRecognizer struct {
	Binary   string
	Language string
}

func NewTesseractRecognizer(binary, language string) *TesseractRecognizer {
	if strings.TrimSpace(binary) == "" {
		binary = defaultTesseractPath
	}
	return &TesseractRecognizer{Binary: binary, Language: strings.TrimSpace(language)}
}

func (t *TesseractRecognizer) Recognize(ctx context.Context, img Image) (string, error) {
	if len(img.Data) == 0 {
		return "", errors.New("image is empty")
	}

	args := []string{"stdin", "stdout"}
	if t.Language != "" {
		args = append(args, "-l", t.Language)
	}

	var stdout, stderr bytes.Buffer
	cmd := exec.CommandContext(ctx, t.Binary, args...)
	cmd.Stdin = bytes.NewReader(img.Data)
	cmd.Stdout = &stdout
	cmd.Stderr = &stderr

	if err := cmd.Run(); err != nil {
		return "", fmt.Errorf("run %s: %w: %s", t.Binary, err, strings.TrimSpace(stderr.String()))
	}

	return stdout.String(), nil
}
