package cmd

import (
	"context"
	"fmt"
	"strings"

	"go.uber.org/zap"

	"github.com/spigell/resume-analyzer/internal/ai/gemini"
	"github.com/spigell/resume-analyzer/internal/analyzer"
	"github.com/spigell/resume-analyzer/internal/extractor"
	"github.com/spigell/resume-analyzer/internal/logger"
	"github.com/spigell/resume-analyzer/internal/secrets"
)

const (
	providerGemini = "gemini"

	ocrPDFCPU    = "pdfcpu"
	ocrPdftoppm  = "pdftoppm"
	ocrTesseract = "tesseract"
	ocrGemini    = "gemini"
	ocrNone      = "none"
)

var apiKeyEnv = []string{"GOOGLE_API_KEY", "GEMINI_API_KEY"}

// newAnalyzer wires the extractor, the Gemini evaluator and the analyzer from config.
func newAnalyzer(ctx context.Context, config *Config, log *zap.Logger) (*analyzer.Analyzer, error) {
	generator, err := newGenerator(ctx, config.AI, log)
	if err != nil {
		return nil, err
	}

	aiLogger := logger.WithCommonFields(log, providerGemini, generator.Model())

	evaluator := gemini.NewEvaluator(generator, gemini.Config{
		Model:        generator.Model(),
		Timeout:      config.AI.Gemini.Timeout,
		MaxLogLength: config.AI.Gemini.MaxLogLength,
	}, aiLogger)

	ex, err := newExtractor(config.OCR, generator, log)
	if err != nil {
		return nil, err
	}

	return analyzer.New(ex, evaluator, analyzer.Config{
		TempDir:       config.Analyzer.TempDir,
		MaxUploadSize: config.Analyzer.MaxUploadSize,
	}, log), nil
}

func newGenerator(ctx context.Context, cfg *AIConfig, log *zap.Logger) (*gemini.Generator, error) {
	provider := strings.TrimSpace(strings.ToLower(cfg.Provider))
	if provider != "" && provider != providerGemini {
		return nil, fmt.Errorf("unsupported ai provider: %s", cfg.Provider)
	}

	apiKey, err := secrets.Load(secrets.Source{
		Name:  "gemini api key",
		Value: cfg.Gemini.APIKey,
		File:  cfg.Gemini.APIKeyFile,
		Env:   apiKeyEnv,
	})
	if err != nil {
		return nil, fmt.Errorf("%w (set ai.gemini.api-key-file, GEMINI_API_KEY_FILE or GOOGLE_API_KEY)", err)
	}

	return gemini.NewGenerator(ctx, apiKey, cfg.Gemini.Model, logger.WithCommonFields(log, providerGemini, cfg.Gemini.Model))
}

// newExtractor builds the text extractor. The OCR fallback stays disabled when either
// the rasterizer or the recognizer is set to none.
func newExtractor(cfg *OCRConfig, generator *gemini.Generator, log *zap.Logger) (*extractor.Extractor, error) {
	var rasterizer extractor.Rasterizer
	switch name := normalize(cfg.Rasterizer, ocrPDFCPU); name {
	case ocrPDFCPU:
		rasterizer = extractor.NewPDFCPURasterizer()
	case ocrPdftoppm:
		rasterizer = extractor.NewPdftoppmRasterizer(cfg.PdftoppmPath, cfg.DPI)
	case ocrNone:
	default:
		return nil, fmt.Errorf("unsupported ocr rasterizer: %s", name)
	}

	var recognizer extractor.Recognizer
	switch name := normalize(cfg.Recognizer, ocrTesseract); name {
	case ocrTesseract:
		recognizer = extractor.NewTesseractRecognizer(cfg.TesseractPath, cfg.Language)
	case ocrGemini:
		if generator == nil {
			return nil, fmt.Errorf("ocr recognizer %s requires a gemini client", name)
		}
		recognizer = gemini.NewRecognizer(generator, logger.WithCommonFields(log, providerGemini, generator.Model()))
	case ocrNone:
	default:
		return nil, fmt.Errorf("unsupported ocr recognizer: %s", name)
	}

	if rasterizer == nil || recognizer == nil {
		log.Debug("ocr fallback disabled",
			zap.String("rasterizer", cfg.Rasterizer),
			zap.String("recognizer", cfg.Recognizer),
		)
		rasterizer, recognizer = nil, nil
	}

	return extractor.New(extractor.NewPDFTextSource(), rasterizer, recognizer, log), nil
}

func normalize(value, fallback string) string {
	value = strings.TrimSpace(strings.ToLower(value))
	if value == "" {
		return fallback
	}
	return value
}
